package usecase

import (
	"context"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

// MilestoneUseCase hitos de proyecto.
type MilestoneUseCase struct {
	milestones repository.MilestoneRepository
	projects   repository.ProjectRepository
}

func NewMilestoneUseCase(milestones repository.MilestoneRepository, projects repository.ProjectRepository) *MilestoneUseCase {
	return &MilestoneUseCase{milestones: milestones, projects: projects}
}

// Create crea un hito en un proyecto existente; estado por defecto pendiente.
func (uc *MilestoneUseCase) Create(ctx context.Context, projectID int64, in dto.CreateMilestoneRequest) (*dto.MilestoneResponse, error) {
	if in.ProjectID != 0 && in.ProjectID != projectID {
		return nil, domain.ErrInvalidInput
	}
	if _, err := found(uc.projects.GetByID(ctx, projectID)); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.MilestonePending
	}
	m := &entity.Milestone{
		ProjectID:   projectID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate.TimePtr(),
		Status:      status,
	}
	if err := uc.milestones.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMilestoneResponse(m), nil
}

func (uc *MilestoneUseCase) ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]dto.MilestoneResponse, error) {
	if _, err := found(uc.projects.GetByID(ctx, projectID)); err != nil {
		return nil, err
	}
	list, err := uc.milestones.ListByProject(ctx, projectID, limit, offset)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toMilestoneResponse), nil
}

// GetByID obtiene un hito; projectID 0 omite la verificación de pertenencia.
func (uc *MilestoneUseCase) GetByID(ctx context.Context, projectID, id int64) (*dto.MilestoneResponse, error) {
	m, err := uc.get(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	return toMilestoneResponse(m), nil
}

func (uc *MilestoneUseCase) Update(ctx context.Context, projectID, id int64, in dto.UpdateMilestoneRequest) (*dto.MilestoneResponse, error) {
	m, err := uc.get(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.DueDate != nil {
		m.DueDate = in.DueDate.TimePtr()
	}
	if in.Status != nil {
		m.Status = *in.Status
	}
	if err := uc.milestones.Update(ctx, m); err != nil {
		return nil, err
	}
	return toMilestoneResponse(m), nil
}

func (uc *MilestoneUseCase) Delete(ctx context.Context, projectID, id int64) (*dto.MilestoneResponse, error) {
	if _, err := uc.get(ctx, projectID, id); err != nil {
		return nil, err
	}
	m, err := found(uc.milestones.Delete(ctx, id))
	if err != nil {
		return nil, err
	}
	return toMilestoneResponse(m), nil
}

func (uc *MilestoneUseCase) get(ctx context.Context, projectID, id int64) (*entity.Milestone, error) {
	m, err := found(uc.milestones.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if projectID != 0 && m.ProjectID != projectID {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

func toMilestoneResponse(m *entity.Milestone) *dto.MilestoneResponse {
	return &dto.MilestoneResponse{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Title:       m.Title,
		Description: m.Description,
		DueDate:     dto.NewDate(m.DueDate),
		Status:      m.Status,
	}
}
