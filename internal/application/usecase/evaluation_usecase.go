package usecase

import (
	"context"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

// summaryPageSize tope de evaluaciones consideradas en el resumen.
const summaryPageSize = 1000

// EvaluationUseCase evaluaciones de proyectos.
type EvaluationUseCase struct {
	evaluations repository.EvaluationRepository
	criteria    repository.CriterionRepository
	projects    repository.ProjectRepository
}

func NewEvaluationUseCase(evaluations repository.EvaluationRepository, criteria repository.CriterionRepository, projects repository.ProjectRepository) *EvaluationUseCase {
	return &EvaluationUseCase{evaluations: evaluations, criteria: criteria, projects: projects}
}

// Create el evaluador por defecto es quien llama.
func (uc *EvaluationUseCase) Create(ctx context.Context, actor entity.Principal, in dto.CreateEvaluationRequest) (*dto.EvaluationResponse, error) {
	if _, err := found(uc.projects.GetByID(ctx, in.ProjectID)); err != nil {
		return nil, err
	}
	if in.CriterionID != nil {
		if _, err := found(uc.criteria.GetByID(ctx, *in.CriterionID)); err != nil {
			return nil, err
		}
	}
	evaluator := in.EvaluatorID
	if evaluator == nil {
		id := actor.UserID
		evaluator = &id
	}
	e := &entity.Evaluation{
		ProjectID:    in.ProjectID,
		EvaluatorID:  evaluator,
		CriterionID:  in.CriterionID,
		Observations: in.Observations,
	}
	if in.Score != nil {
		e.Score = *in.Score
	}
	if err := uc.evaluations.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEvaluationResponse(e), nil
}

func (uc *EvaluationUseCase) ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]dto.EvaluationResponse, error) {
	list, err := uc.evaluations.ListByProject(ctx, projectID, limit, offset)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toEvaluationResponse), nil
}

func (uc *EvaluationUseCase) GetByID(ctx context.Context, id int64) (*dto.EvaluationResponse, error) {
	e, err := found(uc.evaluations.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toEvaluationResponse(e), nil
}

func (uc *EvaluationUseCase) Update(ctx context.Context, id int64, in dto.UpdateEvaluationRequest) (*dto.EvaluationResponse, error) {
	e, err := found(uc.evaluations.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if in.CriterionID != nil {
		if _, err := found(uc.criteria.GetByID(ctx, *in.CriterionID)); err != nil {
			return nil, err
		}
		e.CriterionID = in.CriterionID
	}
	if in.Score != nil {
		e.Score = *in.Score
	}
	if in.Observations != nil {
		e.Observations = *in.Observations
	}
	if err := uc.evaluations.Update(ctx, e); err != nil {
		return nil, err
	}
	return toEvaluationResponse(e), nil
}

func (uc *EvaluationUseCase) Delete(ctx context.Context, id int64) (*dto.EvaluationResponse, error) {
	e, err := found(uc.evaluations.Delete(ctx, id))
	if err != nil {
		return nil, err
	}
	return toEvaluationResponse(e), nil
}

// Summary promedio ponderado por el peso de cada criterio.
func (uc *EvaluationUseCase) Summary(ctx context.Context, projectID int64) (*dto.EvaluationSummaryResponse, error) {
	if _, err := found(uc.projects.GetByID(ctx, projectID)); err != nil {
		return nil, err
	}
	evals, err := uc.evaluations.ListByProject(ctx, projectID, summaryPageSize, 0)
	if err != nil {
		return nil, err
	}
	criteria, err := uc.criteriaFor(ctx, evals)
	if err != nil {
		return nil, err
	}
	return &dto.EvaluationSummaryResponse{
		ProjectID:       projectID,
		Count:           len(evals),
		WeightedAverage: entity.WeightedScore(evals, criteria),
	}, nil
}

func (uc *EvaluationUseCase) criteriaFor(ctx context.Context, evals []*entity.Evaluation) (map[int64]*entity.Criterion, error) {
	out := make(map[int64]*entity.Criterion)
	for _, e := range evals {
		if e.CriterionID == nil {
			continue
		}
		if _, ok := out[*e.CriterionID]; ok {
			continue
		}
		c, err := uc.criteria.GetByID(ctx, *e.CriterionID)
		if err != nil {
			return nil, err
		}
		if c != nil {
			out[c.ID] = c
		}
	}
	return out, nil
}

func toEvaluationResponse(e *entity.Evaluation) *dto.EvaluationResponse {
	return &dto.EvaluationResponse{
		ID:           e.ID,
		ProjectID:    e.ProjectID,
		EvaluatorID:  e.EvaluatorID,
		CriterionID:  e.CriterionID,
		Score:        e.Score,
		Observations: e.Observations,
	}
}
