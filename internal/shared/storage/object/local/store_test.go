package local

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())

	key, size, mime, err := store.Save(context.Background(), "user-1", "resume.pdf", strings.NewReader("%PDF-1.4 test"))
	require.NoError(t, err)
	assert.Equal(t, int64(13), size)
	assert.NotEmpty(t, mime)

	rc, err := store.Open(context.Background(), key)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(data))
}

func TestSaveRejectsTraversalNames(t *testing.T) {
	store := New(t.TempDir())
	_, _, _, err := store.Save(context.Background(), "user-1", "../../etc/passwd", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestOpenRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Open(context.Background(), "../outside")
	assert.Error(t, err)

	_, err = store.Open(context.Background(), "/absolute/path")
	assert.Error(t, err)
}

func TestSaveWithKeyWritesAtKey(t *testing.T) {
	store := New(t.TempDir())

	n, err := store.SaveWithKey(context.Background(), "exports/u1/r1.pdf", "application/pdf", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	rc, err := store.Open(context.Background(), "exports/u1/r1.pdf")
	require.NoError(t, err)
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "data", string(data))
}
