package s3

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyPrefix(t *testing.T) {
	cases := []struct {
		prefix, key, want string
	}{
		{"", "a/b.pdf", "a/b.pdf"},
		{"exports", "a/b.pdf", "exports/a/b.pdf"},
		{"/exports/", "/a/b.pdf", "exports/a/b.pdf"},
		{"exports", "", "exports"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, applyPrefix(tc.prefix, tc.key))
	}
}

func TestCountingReader(t *testing.T) {
	c := &countingReader{r: strings.NewReader("hello world")}
	buf := make([]byte, 4)
	total := 0
	for {
		n, err := c.Read(buf)
		total += n
		if err != nil {
			break
		}
	}
	assert.Equal(t, int64(total), c.n)
	assert.Equal(t, int64(11), c.n)
}
