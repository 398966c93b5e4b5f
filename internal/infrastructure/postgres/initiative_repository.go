package postgres

import (
	"context"
	"fmt"

	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

var _ repository.InitiativeRepository = (*InitiativeRepo)(nil)

const initiativeColumns = `id_iniciativa, nombre, descripcion, categoria, impacto, estado, id_usuario, fecha_creacion`

// InitiativeRepo implementación del puerto InitiativeRepository sobre PostgreSQL.
type InitiativeRepo struct {
	q Querier
}

// NewInitiativeRepository construye el adaptador de persistencia para iniciativas.
func NewInitiativeRepository(q Querier) *InitiativeRepo {
	return &InitiativeRepo{q: q}
}

func scanInitiative(r rowScanner) (*entity.Initiative, error) {
	var in entity.Initiative
	err := r.Scan(&in.ID, &in.Name, &in.Description, &in.Category, &in.Impact, &in.Status, &in.UserID, &in.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// Create persiste una iniciativa.
func (r *InitiativeRepo) Create(ctx context.Context, in *entity.Initiative) error {
	query := `
		INSERT INTO iniciativas (nombre, descripcion, categoria, impacto, estado, id_usuario)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_iniciativa, fecha_creacion`
	err := r.q.QueryRow(ctx, query, in.Name, in.Description, in.Category, in.Impact, in.Status, in.UserID).
		Scan(&in.ID, &in.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert initiative: %w", err)
	}
	return nil
}

// GetByID obtiene una iniciativa por ID.
func (r *InitiativeRepo) GetByID(ctx context.Context, id int64) (*entity.Initiative, error) {
	query := `SELECT ` + initiativeColumns + ` FROM iniciativas WHERE id_iniciativa = $1`
	return scanOne(r.q.QueryRow(ctx, query, id), scanInitiative, "get initiative")
}

// GetForUpdate obtiene la iniciativa con bloqueo de fila (usar dentro de una transacción).
func (r *InitiativeRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Initiative, error) {
	query := `SELECT ` + initiativeColumns + ` FROM iniciativas WHERE id_iniciativa = $1 FOR UPDATE`
	return scanOne(r.q.QueryRow(ctx, query, id), scanInitiative, "get initiative for update")
}

// List lista iniciativas con filtros opcionales por estado y dueño.
func (r *InitiativeRepo) List(ctx context.Context, f repository.InitiativeFilter, limit, offset int) ([]*entity.Initiative, error) {
	query := `
		SELECT ` + initiativeColumns + ` FROM iniciativas
		WHERE ($1 = '' OR estado = $1) AND ($2::bigint IS NULL OR id_usuario = $2)
		ORDER BY id_iniciativa LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, f.Status, f.UserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list initiatives: %w", err)
	}
	return collect(rows, scanInitiative, "list initiatives")
}

// Update reescribe los campos editables.
func (r *InitiativeRepo) Update(ctx context.Context, in *entity.Initiative) error {
	query := `
		UPDATE iniciativas SET nombre = $2, descripcion = $3, categoria = $4, impacto = $5, estado = $6
		WHERE id_iniciativa = $1`
	tag, err := r.q.Exec(ctx, query, in.ID, in.Name, in.Description, in.Category, in.Impact, in.Status)
	if err != nil {
		return fmt.Errorf("update initiative: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la iniciativa (cascada a postulaciones, documentos y proyecto).
func (r *InitiativeRepo) Delete(ctx context.Context, id int64) (*entity.Initiative, error) {
	query := `DELETE FROM iniciativas WHERE id_iniciativa = $1 RETURNING ` + initiativeColumns
	return scanOne(r.q.QueryRow(ctx, query, id), scanInitiative, "delete initiative")
}

// CountByStatus cuenta iniciativas en un estado.
func (r *InitiativeRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM iniciativas WHERE estado = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("count initiatives: %w", err)
	}
	return n, nil
}
