package memstore

import (
	"context"

	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

var (
	_ repository.CriterionRepository  = (*criterionRepo)(nil)
	_ repository.EvaluationRepository = (*evaluationRepo)(nil)
)

func criteriaT(t *tables) *table[entity.Criterion]     { return t.criteria }
func evaluationsT(t *tables) *table[entity.Evaluation] { return t.evaluations }

type criterionRepo struct{ s *Store }

func (s *Store) Criteria() repository.CriterionRepository { return &criterionRepo{s} }

func (r *criterionRepo) Create(_ context.Context, c *entity.Criterion) error {
	return create(r.s, "criteria.create", criteriaT, c, func(v *entity.Criterion, id int64) { v.ID = id })
}

func (r *criterionRepo) GetByID(_ context.Context, id int64) (*entity.Criterion, error) {
	return getByID(r.s, criteriaT, id)
}

func (r *criterionRepo) List(_ context.Context, limit, offset int) ([]*entity.Criterion, error) {
	return listWhere(r.s, criteriaT, nil, limit, offset)
}

func (r *criterionRepo) Update(_ context.Context, c *entity.Criterion) error {
	return update(r.s, "criteria.update", criteriaT, c.ID, c)
}

func (r *criterionRepo) Delete(_ context.Context, id int64) (*entity.Criterion, error) {
	return remove(r.s, "criteria.delete", criteriaT, id)
}

type evaluationRepo struct{ s *Store }

func (s *Store) Evaluations() repository.EvaluationRepository { return &evaluationRepo{s} }

func (r *evaluationRepo) Create(_ context.Context, e *entity.Evaluation) error {
	return create(r.s, "evaluations.create", evaluationsT, e, func(v *entity.Evaluation, id int64) { v.ID = id })
}

func (r *evaluationRepo) GetByID(_ context.Context, id int64) (*entity.Evaluation, error) {
	return getByID(r.s, evaluationsT, id)
}

func (r *evaluationRepo) ListByProject(_ context.Context, projectID int64, limit, offset int) ([]*entity.Evaluation, error) {
	return listWhere(r.s, evaluationsT, func(x entity.Evaluation) bool { return x.ProjectID == projectID }, limit, offset)
}

func (r *evaluationRepo) Update(_ context.Context, e *entity.Evaluation) error {
	return update(r.s, "evaluations.update", evaluationsT, e.ID, e)
}

func (r *evaluationRepo) Delete(_ context.Context, id int64) (*entity.Evaluation, error) {
	return remove(r.s, "evaluations.delete", evaluationsT, id)
}
