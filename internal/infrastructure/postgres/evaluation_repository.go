package postgres

import (
	"context"
	"fmt"

	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

var (
	_ repository.CriterionRepository  = (*CriterionRepo)(nil)
	_ repository.EvaluationRepository = (*EvaluationRepo)(nil)
)

const evaluationColumns = `id_eval, id_proyecto, id_evaluador, id_criterio, puntuacion, observaciones`

// CriterionRepo criterios de evaluación. El peso es NUMERIC(4,2) mapeado a decimal.
type CriterionRepo struct {
	q Querier
}

func NewCriterionRepository(q Querier) *CriterionRepo {
	return &CriterionRepo{q: q}
}

func scanCriterion(r rowScanner) (*entity.Criterion, error) {
	var c entity.Criterion
	if err := r.Scan(&c.ID, &c.Name, &c.Description, &c.Weight); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CriterionRepo) Create(ctx context.Context, c *entity.Criterion) error {
	query := `INSERT INTO criterios (nombre, descripcion, peso) VALUES ($1, $2, $3) RETURNING id_criterio`
	if err := r.q.QueryRow(ctx, query, c.Name, c.Description, c.Weight).Scan(&c.ID); err != nil {
		if isNumericOutOfRange(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert criterion: %w", err)
	}
	return nil
}

func (r *CriterionRepo) GetByID(ctx context.Context, id int64) (*entity.Criterion, error) {
	row := r.q.QueryRow(ctx, `SELECT id_criterio, nombre, descripcion, peso FROM criterios WHERE id_criterio = $1`, id)
	return scanOne(row, scanCriterion, "get criterion")
}

func (r *CriterionRepo) List(ctx context.Context, limit, offset int) ([]*entity.Criterion, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id_criterio, nombre, descripcion, peso FROM criterios
		ORDER BY id_criterio LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list criteria: %w", err)
	}
	return collect(rows, scanCriterion, "list criteria")
}

func (r *CriterionRepo) Update(ctx context.Context, c *entity.Criterion) error {
	tag, err := r.q.Exec(ctx, `UPDATE criterios SET nombre = $2, descripcion = $3, peso = $4 WHERE id_criterio = $1`,
		c.ID, c.Name, c.Description, c.Weight)
	if err != nil {
		if isNumericOutOfRange(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update criterion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CriterionRepo) Delete(ctx context.Context, id int64) (*entity.Criterion, error) {
	row := r.q.QueryRow(ctx, `DELETE FROM criterios WHERE id_criterio = $1 RETURNING id_criterio, nombre, descripcion, peso`, id)
	return scanOne(row, scanCriterion, "delete criterion")
}

// EvaluationRepo evaluaciones de proyectos.
type EvaluationRepo struct {
	q Querier
}

func NewEvaluationRepository(q Querier) *EvaluationRepo {
	return &EvaluationRepo{q: q}
}

func scanEvaluation(r rowScanner) (*entity.Evaluation, error) {
	var e entity.Evaluation
	if err := r.Scan(&e.ID, &e.ProjectID, &e.EvaluatorID, &e.CriterionID, &e.Score, &e.Observations); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EvaluationRepo) Create(ctx context.Context, e *entity.Evaluation) error {
	query := `
		INSERT INTO evaluaciones (id_proyecto, id_evaluador, id_criterio, puntuacion, observaciones)
		VALUES ($1, $2, $3, $4, $5) RETURNING id_eval`
	err := r.q.QueryRow(ctx, query, e.ProjectID, e.EvaluatorID, e.CriterionID, e.Score, e.Observations).Scan(&e.ID)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		case isCheckViolation(err):
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert evaluation: %w", err)
	}
	return nil
}

func (r *EvaluationRepo) GetByID(ctx context.Context, id int64) (*entity.Evaluation, error) {
	query := `SELECT ` + evaluationColumns + ` FROM evaluaciones WHERE id_eval = $1`
	return scanOne(r.q.QueryRow(ctx, query, id), scanEvaluation, "get evaluation")
}

func (r *EvaluationRepo) ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]*entity.Evaluation, error) {
	query := `
		SELECT ` + evaluationColumns + ` FROM evaluaciones
		WHERE id_proyecto = $1 ORDER BY id_eval LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	return collect(rows, scanEvaluation, "list evaluations")
}

func (r *EvaluationRepo) Update(ctx context.Context, e *entity.Evaluation) error {
	query := `
		UPDATE evaluaciones SET id_evaluador = $2, id_criterio = $3, puntuacion = $4, observaciones = $5
		WHERE id_eval = $1`
	tag, err := r.q.Exec(ctx, query, e.ID, e.EvaluatorID, e.CriterionID, e.Score, e.Observations)
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		case isCheckViolation(err):
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update evaluation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EvaluationRepo) Delete(ctx context.Context, id int64) (*entity.Evaluation, error) {
	query := `DELETE FROM evaluaciones WHERE id_eval = $1 RETURNING ` + evaluationColumns
	return scanOne(r.q.QueryRow(ctx, query, id), scanEvaluation, "delete evaluation")
}
