package util

import (
	"regexp"
	"testing"
)

func TestHashUserKeyStableHex(t *testing.T) {
	id := "f3f9f6a1-7f0c-4a5e-9d32-0d1c2b3a4e5f"
	got := HashUserKey(id)
	if got != HashUserKey(id) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	if !regexp.MustCompile(`^[0-9a-f]{64}$`).MatchString(got) {
		t.Fatalf("expected 64 lowercase hex characters, got %q", got)
	}
	if got == HashUserKey("someone-else") {
		t.Fatal("expected distinct hashes for distinct ids")
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in, want string
		wantErr  bool
	}{
		{in: "resume.pdf", want: "resume.pdf"},
		{in: "  my resume.docx ", want: "my resume.docx"},
		{in: "a/b\\c.pdf", want: "a_b_c.pdf"},
		{in: "../etc/passwd", wantErr: true},
		{in: "   ", wantErr: true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("SanitizeFileName(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("SanitizeFileName(%q) unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
