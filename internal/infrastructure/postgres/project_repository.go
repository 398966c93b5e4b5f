package postgres

import (
	"context"
	"fmt"

	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

const projectColumns = `p.id_proyecto, p.id_iniciativa, p.titulo, p.descripcion, p.estado, p.fecha_inicio,
	p.fecha_fin, p.progreso, p.id_coordinador`

// ProjectRepo implementación del puerto ProjectRepository sobre PostgreSQL.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador de persistencia para proyectos.
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

func scanProject(r rowScanner) (*entity.Project, error) {
	var p entity.Project
	err := r.Scan(&p.ID, &p.InitiativeID, &p.Title, &p.Description, &p.Status, &p.StartDate,
		&p.EndDate, &p.Progress, &p.CoordinatorID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un proyecto. Un segundo proyecto para la misma iniciativa es ErrDuplicate.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	query := `
		INSERT INTO proyectos (id_iniciativa, titulo, descripcion, estado, fecha_inicio, fecha_fin, progreso, id_coordinador)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id_proyecto`
	err := r.q.QueryRow(ctx, query,
		p.InitiativeID, p.Title, p.Description, p.Status, p.StartDate, p.EndDate, p.Progress, p.CoordinatorID,
	).Scan(&p.ID)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		case isCheckViolation(err):
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto por ID.
func (r *ProjectRepo) GetByID(ctx context.Context, id int64) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM proyectos p WHERE p.id_proyecto = $1`
	return scanOne(r.q.QueryRow(ctx, query, id), scanProject, "get project")
}

// GetByInitiative proyecto asociado a la iniciativa (único por FK).
func (r *ProjectRepo) GetByInitiative(ctx context.Context, initiativeID int64) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM proyectos p WHERE p.id_iniciativa = $1`
	return scanOne(r.q.QueryRow(ctx, query, initiativeID), scanProject, "get project by initiative")
}

// List lista proyectos.
func (r *ProjectRepo) List(ctx context.Context, limit, offset int) ([]*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM proyectos p ORDER BY p.id_proyecto LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return collect(rows, scanProject, "list projects")
}

// ListByStudent proyectos donde participa el estudiante.
func (r *ProjectRepo) ListByStudent(ctx context.Context, studentID int64, limit, offset int) ([]*entity.Project, error) {
	query := `
		SELECT ` + projectColumns + ` FROM proyectos p
		JOIN proyectos_estudiantes pe ON pe.id_proyecto = p.id_proyecto
		WHERE pe.id_estudiante = $1
		ORDER BY p.id_proyecto LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, studentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list projects by student: %w", err)
	}
	return collect(rows, scanProject, "list projects by student")
}

// ListByInitiativeOwner proyectos de las iniciativas publicadas por el usuario.
func (r *ProjectRepo) ListByInitiativeOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*entity.Project, error) {
	query := `
		SELECT ` + projectColumns + ` FROM proyectos p
		JOIN iniciativas i ON i.id_iniciativa = p.id_iniciativa
		WHERE i.id_usuario = $1
		ORDER BY p.id_proyecto LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list projects by owner: %w", err)
	}
	return collect(rows, scanProject, "list projects by owner")
}

// Update reescribe los campos editables.
func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	query := `
		UPDATE proyectos SET titulo = $2, descripcion = $3, estado = $4, fecha_inicio = $5, fecha_fin = $6,
			progreso = $7, id_coordinador = $8
		WHERE id_proyecto = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.Status, p.StartDate, p.EndDate, p.Progress, p.CoordinatorID)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.ErrInvalidInput
		case isCheckViolation(err):
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el proyecto (cascada a hitos, vínculos, comentarios y evaluaciones).
func (r *ProjectRepo) Delete(ctx context.Context, id int64) (*entity.Project, error) {
	query := `DELETE FROM proyectos p WHERE p.id_proyecto = $1 RETURNING ` + projectColumns
	return scanOne(r.q.QueryRow(ctx, query, id), scanProject, "delete project")
}
