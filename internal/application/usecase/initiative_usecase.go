package usecase

import (
	"context"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

// InitiativeUseCase casos de uso CRUD para iniciativas.
type InitiativeUseCase struct {
	repo repository.InitiativeRepository
}

// NewInitiativeUseCase construye el caso de uso.
func NewInitiativeUseCase(repo repository.InitiativeRepository) *InitiativeUseCase {
	return &InitiativeUseCase{repo: repo}
}

// Create publica una iniciativa a nombre de quien la crea, en estado pendiente.
func (uc *InitiativeUseCase) Create(ctx context.Context, actor entity.Principal, in dto.CreateInitiativeRequest) (*dto.InitiativeResponse, error) {
	initiative := &entity.Initiative{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Impact:      in.Impact,
		Status:      entity.InitiativePending,
		UserID:      actor.UserID,
	}
	if err := uc.repo.Create(ctx, initiative); err != nil {
		return nil, err
	}
	return toInitiativeResponse(initiative), nil
}

// GetByID obtiene una iniciativa por ID.
func (uc *InitiativeUseCase) GetByID(ctx context.Context, id int64) (*dto.InitiativeResponse, error) {
	in, err := found(uc.repo.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toInitiativeResponse(in), nil
}

// List lista iniciativas con filtros opcionales.
func (uc *InitiativeUseCase) List(ctx context.Context, f repository.InitiativeFilter, limit, offset int) ([]dto.InitiativeResponse, error) {
	list, err := uc.repo.List(ctx, f, limit, offset)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toInitiativeResponse), nil
}

// Update actualización parcial; solo el dueño o un coordinador.
func (uc *InitiativeUseCase) Update(ctx context.Context, actor entity.Principal, id int64, in dto.UpdateInitiativeRequest) (*dto.InitiativeResponse, error) {
	initiative, err := found(uc.repo.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(initiative.UserID) {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		initiative.Name = *in.Name
	}
	if in.Description != nil {
		initiative.Description = *in.Description
	}
	if in.Category != nil {
		initiative.Category = *in.Category
	}
	if in.Impact != nil {
		initiative.Impact = *in.Impact
	}
	if in.Status != nil {
		initiative.Status = *in.Status
	}
	if err := uc.repo.Update(ctx, initiative); err != nil {
		return nil, err
	}
	return toInitiativeResponse(initiative), nil
}

// Delete elimina la iniciativa; solo el dueño o un coordinador.
func (uc *InitiativeUseCase) Delete(ctx context.Context, actor entity.Principal, id int64) (*dto.InitiativeResponse, error) {
	initiative, err := found(uc.repo.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(initiative.UserID) {
		return nil, domain.ErrForbidden
	}
	deleted, err := found(uc.repo.Delete(ctx, id))
	if err != nil {
		return nil, err
	}
	return toInitiativeResponse(deleted), nil
}

func toInitiativeResponse(in *entity.Initiative) *dto.InitiativeResponse {
	if in == nil {
		return nil
	}
	return &dto.InitiativeResponse{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Impact:      in.Impact,
		Status:      in.Status,
		UserID:      in.UserID,
		CreatedAt:   in.CreatedAt,
	}
}
