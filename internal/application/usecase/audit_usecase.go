package usecase

import (
	"context"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

// AuditUseCase bitácora de auditoría (solo coordinadores).
type AuditUseCase struct {
	repo repository.AuditRepository
}

func NewAuditUseCase(repo repository.AuditRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

func (uc *AuditUseCase) Create(ctx context.Context, actor entity.Principal, in dto.CreateAuditRequest) (*dto.AuditResponse, error) {
	user := in.UserID
	if user == nil {
		id := actor.UserID
		user = &id
	}
	a := &entity.Audit{Table: in.Table, Action: in.Action, UserID: user, Details: in.Details}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return ToAuditResponse(a), nil
}

func (uc *AuditUseCase) List(ctx context.Context, limit, offset int) ([]dto.AuditResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return mapAll(list, ToAuditResponse), nil
}

func (uc *AuditUseCase) GetByID(ctx context.Context, id int64) (*dto.AuditResponse, error) {
	a, err := found(uc.repo.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return ToAuditResponse(a), nil
}

func (uc *AuditUseCase) Delete(ctx context.Context, id int64) (*dto.AuditResponse, error) {
	a, err := found(uc.repo.Delete(ctx, id))
	if err != nil {
		return nil, err
	}
	return ToAuditResponse(a), nil
}

// ToAuditResponse mapea la entidad al DTO.
func ToAuditResponse(a *entity.Audit) *dto.AuditResponse {
	return &dto.AuditResponse{
		ID:        a.ID,
		Table:     a.Table,
		Action:    a.Action,
		UserID:    a.UserID,
		CreatedAt: a.CreatedAt,
		Details:   a.Details,
	}
}
