package postgres

import (
	"context"
	"fmt"

	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `id_doc, id_iniciativa, nombre_archivo, ruta_archivo, tipo`

// DocumentRepo documentos adjuntos a iniciativas.
type DocumentRepo struct {
	q Querier
}

func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

func scanDocument(r rowScanner) (*entity.InitiativeDocument, error) {
	var d entity.InitiativeDocument
	if err := r.Scan(&d.ID, &d.InitiativeID, &d.FileName, &d.Path, &d.Type); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepo) Create(ctx context.Context, d *entity.InitiativeDocument) error {
	query := `
		INSERT INTO documentos_iniciativa (id_iniciativa, nombre_archivo, ruta_archivo, tipo)
		VALUES ($1, $2, $3, $4) RETURNING id_doc`
	if err := r.q.QueryRow(ctx, query, d.InitiativeID, d.FileName, d.Path, d.Type).Scan(&d.ID); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepo) GetByID(ctx context.Context, id int64) (*entity.InitiativeDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM documentos_iniciativa WHERE id_doc = $1`
	return scanOne(r.q.QueryRow(ctx, query, id), scanDocument, "get document")
}

func (r *DocumentRepo) ListByInitiative(ctx context.Context, initiativeID int64, limit, offset int) ([]*entity.InitiativeDocument, error) {
	query := `
		SELECT ` + documentColumns + ` FROM documentos_iniciativa
		WHERE id_iniciativa = $1 ORDER BY id_doc LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, initiativeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return collect(rows, scanDocument, "list documents")
}

func (r *DocumentRepo) Update(ctx context.Context, d *entity.InitiativeDocument) error {
	query := `UPDATE documentos_iniciativa SET nombre_archivo = $2, ruta_archivo = $3, tipo = $4 WHERE id_doc = $1`
	tag, err := r.q.Exec(ctx, query, d.ID, d.FileName, d.Path, d.Type)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DocumentRepo) Delete(ctx context.Context, id int64) (*entity.InitiativeDocument, error) {
	query := `DELETE FROM documentos_iniciativa WHERE id_doc = $1 RETURNING ` + documentColumns
	return scanOne(r.q.QueryRow(ctx, query, id), scanDocument, "delete document")
}
