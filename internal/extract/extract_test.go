package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/mahdi67436/cv-maker-web/internal/shared/storage/object/local"
)

func buildDocx(t *testing.T, paragraphs []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	rels, err := zw.Create("word/_rels/document.xml.rels")
	if err != nil {
		t.Fatalf("create document.xml.rels: %v", err)
	}
	if _, err := rels.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`)); err != nil {
		t.Fatalf("write document.xml.rels: %v", err)
	}
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create document.xml: %v", err)
	}
	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	doc.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		doc.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	doc.WriteString(`</w:body></w:document>`)
	if _, err := w.Write([]byte(doc.String())); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestTextFromDocx(t *testing.T) {
	data := buildDocx(t, []string{"Jane Doe", "Backend Engineer"})

	text, err := Text(context.Background(), data, mimeDOCX, "resume.docx")
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	if !strings.Contains(text, "Jane Doe") || !strings.Contains(text, "Backend Engineer") {
		t.Fatalf("unexpected text: %q", text)
	}
	if !strings.Contains(text, "\n") {
		t.Fatalf("expected paragraph break, got %q", text)
	}
}

func TestTextNormalizesZipMimeToDocx(t *testing.T) {
	data := buildDocx(t, []string{"Hello"})

	text, err := Text(context.Background(), data, "application/zip", "resume.docx")
	if err != nil {
		t.Fatalf("expected zip-typed docx to extract, got: %v", err)
	}
	if !strings.Contains(text, "Hello") {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestTextRejectsPlainZip(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = Text(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got: %v", err)
	}
}

func TestTextRejectsUnknownMime(t *testing.T) {
	_, err := Text(context.Background(), []byte("plain"), "text/plain", "notes.txt")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got: %v", err)
	}
}

func TestFromStorePersistsDerivedText(t *testing.T) {
	store := local.New(t.TempDir())
	ctx := context.Background()

	data := buildDocx(t, []string{"Stored resume"})
	key, _, mimeType, err := store.Save(ctx, "u1", "resume.docx", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	text, err := FromStore(ctx, store, key, mimeType, "resume.docx")
	if err != nil {
		t.Fatalf("extract from store: %v", err)
	}
	if !strings.Contains(text, "Stored resume") {
		t.Fatalf("unexpected text: %q", text)
	}

	derived, err := store.Open(ctx, key+".extracted.txt")
	if err != nil {
		t.Fatalf("open derived text: %v", err)
	}
	defer derived.Close()
	raw, err := io.ReadAll(derived)
	if err != nil {
		t.Fatalf("read derived text: %v", err)
	}
	if !strings.Contains(string(raw), "Stored resume") {
		t.Fatalf("derived text mismatch: %q", raw)
	}
}
