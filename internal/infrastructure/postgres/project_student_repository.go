package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

var _ repository.ProjectStudentRepository = (*ProjectStudentRepo)(nil)

// ProjectStudentRepo vínculos proyecto-estudiante (PK compuesta).
type ProjectStudentRepo struct {
	q Querier
}

func NewProjectStudentRepository(q Querier) *ProjectStudentRepo {
	return &ProjectStudentRepo{q: q}
}

func scanProjectStudent(r rowScanner) (*entity.ProjectStudent, error) {
	var l entity.ProjectStudent
	if err := r.Scan(&l.ProjectID, &l.StudentID, &l.Role); err != nil {
		return nil, err
	}
	return &l, nil
}

// Attach inserta el vínculo; si ya existe no hace nada y devuelve created=false.
func (r *ProjectStudentRepo) Attach(ctx context.Context, l *entity.ProjectStudent) (bool, error) {
	query := `
		INSERT INTO proyectos_estudiantes (id_proyecto, id_estudiante, rol_en_proyecto)
		VALUES ($1, $2, $3)
		ON CONFLICT (id_proyecto, id_estudiante) DO NOTHING
		RETURNING id_proyecto`
	var id int64
	err := r.q.QueryRow(ctx, query, l.ProjectID, l.StudentID, l.Role).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		if isForeignKeyViolation(err) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("attach project student: %w", err)
	}
	return true, nil
}

func (r *ProjectStudentRepo) Get(ctx context.Context, projectID, studentID int64) (*entity.ProjectStudent, error) {
	query := `
		SELECT id_proyecto, id_estudiante, rol_en_proyecto FROM proyectos_estudiantes
		WHERE id_proyecto = $1 AND id_estudiante = $2`
	return scanOne(r.q.QueryRow(ctx, query, projectID, studentID), scanProjectStudent, "get project student")
}

func (r *ProjectStudentRepo) ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]*entity.ProjectStudent, error) {
	query := `
		SELECT id_proyecto, id_estudiante, rol_en_proyecto FROM proyectos_estudiantes
		WHERE id_proyecto = $1 ORDER BY id_estudiante LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list project students: %w", err)
	}
	return collect(rows, scanProjectStudent, "list project students")
}

func (r *ProjectStudentRepo) ListByStudent(ctx context.Context, studentID int64, limit, offset int) ([]*entity.ProjectStudent, error) {
	query := `
		SELECT id_proyecto, id_estudiante, rol_en_proyecto FROM proyectos_estudiantes
		WHERE id_estudiante = $1 ORDER BY id_proyecto LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, studentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list student projects: %w", err)
	}
	return collect(rows, scanProjectStudent, "list student projects")
}

func (r *ProjectStudentRepo) Update(ctx context.Context, l *entity.ProjectStudent) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE proyectos_estudiantes SET rol_en_proyecto = $3
		WHERE id_proyecto = $1 AND id_estudiante = $2`, l.ProjectID, l.StudentID, l.Role)
	if err != nil {
		return fmt.Errorf("update project student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProjectStudentRepo) Delete(ctx context.Context, projectID, studentID int64) (*entity.ProjectStudent, error) {
	query := `
		DELETE FROM proyectos_estudiantes WHERE id_proyecto = $1 AND id_estudiante = $2
		RETURNING id_proyecto, id_estudiante, rol_en_proyecto`
	return scanOne(r.q.QueryRow(ctx, query, projectID, studentID), scanProjectStudent, "delete project student")
}
