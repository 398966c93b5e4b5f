package postgres

import (
	"context"
	"fmt"

	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

var _ repository.PostulacionRepository = (*PostulacionRepo)(nil)

const postulacionColumns = `id_postulacion, id_iniciativa, id_estudiante, fecha_postulacion, estado, mensaje`

// PostulacionRepo implementación del puerto PostulacionRepository sobre PostgreSQL.
type PostulacionRepo struct {
	q Querier
}

// NewPostulacionRepository construye el adaptador de persistencia para postulaciones.
func NewPostulacionRepository(q Querier) *PostulacionRepo {
	return &PostulacionRepo{q: q}
}

func scanPostulacion(r rowScanner) (*entity.Postulacion, error) {
	var p entity.Postulacion
	if err := r.Scan(&p.ID, &p.InitiativeID, &p.StudentID, &p.CreatedAt, &p.Status, &p.Message); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste una postulación.
func (r *PostulacionRepo) Create(ctx context.Context, p *entity.Postulacion) error {
	query := `
		INSERT INTO postulaciones (id_iniciativa, id_estudiante, estado, mensaje)
		VALUES ($1, $2, $3, $4)
		RETURNING id_postulacion, fecha_postulacion`
	err := r.q.QueryRow(ctx, query, p.InitiativeID, p.StudentID, p.Status, p.Message).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert postulacion: %w", err)
	}
	return nil
}

// GetByID obtiene una postulación por ID.
func (r *PostulacionRepo) GetByID(ctx context.Context, id int64) (*entity.Postulacion, error) {
	query := `SELECT ` + postulacionColumns + ` FROM postulaciones WHERE id_postulacion = $1`
	return scanOne(r.q.QueryRow(ctx, query, id), scanPostulacion, "get postulacion")
}

// GetByStudentAndInitiative postulación previa del estudiante a la iniciativa, si existe.
func (r *PostulacionRepo) GetByStudentAndInitiative(ctx context.Context, studentID, initiativeID int64) (*entity.Postulacion, error) {
	query := `
		SELECT ` + postulacionColumns + ` FROM postulaciones
		WHERE id_estudiante = $1 AND id_iniciativa = $2 LIMIT 1`
	return scanOne(r.q.QueryRow(ctx, query, studentID, initiativeID), scanPostulacion, "get postulacion by student")
}

// List lista postulaciones con filtros opcionales.
func (r *PostulacionRepo) List(ctx context.Context, f repository.PostulacionFilter, limit, offset int) ([]*entity.Postulacion, error) {
	query := `
		SELECT ` + postulacionColumns + ` FROM postulaciones
		WHERE ($1::bigint IS NULL OR id_estudiante = $1)
		  AND ($2::bigint IS NULL OR id_iniciativa = $2)
		  AND ($3 = '' OR estado = $3)
		ORDER BY id_postulacion LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, f.StudentID, f.InitiativeID, f.Status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list postulaciones: %w", err)
	}
	return collect(rows, scanPostulacion, "list postulaciones")
}

// Update actualiza estado y mensaje.
func (r *PostulacionRepo) Update(ctx context.Context, p *entity.Postulacion) error {
	tag, err := r.q.Exec(ctx, `UPDATE postulaciones SET estado = $2, mensaje = $3 WHERE id_postulacion = $1`,
		p.ID, p.Status, p.Message)
	if err != nil {
		return fmt.Errorf("update postulacion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la postulación y devuelve la fila previa.
func (r *PostulacionRepo) Delete(ctx context.Context, id int64) (*entity.Postulacion, error) {
	query := `DELETE FROM postulaciones WHERE id_postulacion = $1 RETURNING ` + postulacionColumns
	return scanOne(r.q.QueryRow(ctx, query, id), scanPostulacion, "delete postulacion")
}
