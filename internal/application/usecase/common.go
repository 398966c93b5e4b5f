package usecase

import (
	"context"
	"io"

	"github.com/softlink/softlink-api/internal/domain"
)

// FileStore puerto de almacenamiento de archivos subidos.
type FileStore interface {
	// Save guarda el contenido con el nombre dado y devuelve la URL pública.
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	// Remove borra el archivo a partir de su URL pública.
	Remove(ctx context.Context, url string) error
	// UniqueName genera un nombre sin colisiones conservando la extensión.
	UniqueName(original string) string
}

// FileUpload archivo recibido por multipart.
type FileUpload struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// found convierte el (nil, nil) de los repos en ErrNotFound.
func found[T any](v *T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func mapAll[E any, R any](list []*E, fn func(*E) *R) []R {
	out := make([]R, 0, len(list))
	for _, e := range list {
		out = append(out, *fn(e))
	}
	return out
}
