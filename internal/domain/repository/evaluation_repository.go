package repository

import (
	"context"

	"github.com/softlink/softlink-api/internal/domain/entity"
)

// CriterionRepository criterios de evaluación.
type CriterionRepository interface {
	Create(ctx context.Context, c *entity.Criterion) error
	GetByID(ctx context.Context, id int64) (*entity.Criterion, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Criterion, error)
	Update(ctx context.Context, c *entity.Criterion) error
	Delete(ctx context.Context, id int64) (*entity.Criterion, error)
}

// EvaluationRepository evaluaciones de proyectos.
type EvaluationRepository interface {
	Create(ctx context.Context, e *entity.Evaluation) error
	GetByID(ctx context.Context, id int64) (*entity.Evaluation, error)
	ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]*entity.Evaluation, error)
	Update(ctx context.Context, e *entity.Evaluation) error
	Delete(ctx context.Context, id int64) (*entity.Evaluation, error)
}
