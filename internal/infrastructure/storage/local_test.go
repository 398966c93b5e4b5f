package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_GuardaYElimina(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s := NewLocalStorage(dir, "/static/uploads/")
	ctx := context.Background()

	url, err := s.Save(ctx, "cv_3.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/cv_3.pdf", url)

	data, err := os.ReadFile(filepath.Join(dir, "cv_3.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, s.Remove(ctx, url))
	_, err = os.Stat(filepath.Join(dir, "cv_3.pdf"))
	assert.True(t, os.IsNotExist(err))

	// segunda vez no falla
	assert.NoError(t, s.Remove(ctx, url))
}

func TestLocalStorage_DescartaDirectorios(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir, "/static/uploads")

	url, err := s.Save(context.Background(), "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/passwd", url)
	_, err = os.Stat(filepath.Join(dir, "passwd"))
	assert.NoError(t, err)
}

func TestLocalStorage_IgnoraURLAjena(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "/static/uploads")
	assert.NoError(t, s.Remove(context.Background(), "https://example.com/a.pdf"))
}

func TestLocalStorage_NombreUnico(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "/static/uploads")

	a := s.UniqueName("Propuesta Técnica Año 1.PDF")
	b := s.UniqueName("Propuesta Técnica Año 1.PDF")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, "_propuesta_tecnica_ano_1.pdf"), a)

	assert.True(t, strings.HasSuffix(s.UniqueName("???.png"), ".png"))
}
