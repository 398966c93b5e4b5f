package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

// maxWeight máximo representable en NUMERIC(4,2).
var maxWeight = decimal.RequireFromString("99.99")

// CriterionUseCase criterios de evaluación.
type CriterionUseCase struct {
	repo repository.CriterionRepository
}

func NewCriterionUseCase(repo repository.CriterionRepository) *CriterionUseCase {
	return &CriterionUseCase{repo: repo}
}

// Create peso por defecto 1.
func (uc *CriterionUseCase) Create(ctx context.Context, in dto.CreateCriterionRequest) (*dto.CriterionResponse, error) {
	weight := decimal.NewFromInt(1)
	if in.Weight != nil {
		weight = *in.Weight
	}
	weight, err := checkWeight(weight)
	if err != nil {
		return nil, err
	}
	c := &entity.Criterion{Name: in.Name, Description: in.Description, Weight: weight}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCriterionResponse(c), nil
}

func (uc *CriterionUseCase) List(ctx context.Context, limit, offset int) ([]dto.CriterionResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toCriterionResponse), nil
}

func (uc *CriterionUseCase) GetByID(ctx context.Context, id int64) (*dto.CriterionResponse, error) {
	c, err := found(uc.repo.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toCriterionResponse(c), nil
}

func (uc *CriterionUseCase) Update(ctx context.Context, id int64, in dto.UpdateCriterionRequest) (*dto.CriterionResponse, error) {
	c, err := found(uc.repo.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Weight != nil {
		w, err := checkWeight(*in.Weight)
		if err != nil {
			return nil, err
		}
		c.Weight = w
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCriterionResponse(c), nil
}

func (uc *CriterionUseCase) Delete(ctx context.Context, id int64) (*dto.CriterionResponse, error) {
	c, err := found(uc.repo.Delete(ctx, id))
	if err != nil {
		return nil, err
	}
	return toCriterionResponse(c), nil
}

// checkWeight redondea a dos decimales y exige 0 <= peso <= 99.99.
func checkWeight(w decimal.Decimal) (decimal.Decimal, error) {
	w = w.Round(2)
	if w.IsNegative() || w.GreaterThan(maxWeight) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return w, nil
}

func toCriterionResponse(c *entity.Criterion) *dto.CriterionResponse {
	return &dto.CriterionResponse{ID: c.ID, Name: c.Name, Description: c.Description, Weight: c.Weight}
}
