package usecase

import (
	"context"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

// ProjectUseCase casos de uso CRUD para proyectos.
type ProjectUseCase struct {
	projects    repository.ProjectRepository
	initiatives repository.InitiativeRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(projects repository.ProjectRepository, initiatives repository.InitiativeRepository) *ProjectUseCase {
	return &ProjectUseCase{projects: projects, initiatives: initiatives}
}

// Create alta manual. Si se indica iniciativa, debe existir y no tener proyecto.
func (uc *ProjectUseCase) Create(ctx context.Context, actor entity.Principal, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if in.InitiativeID != nil {
		if _, err := found(uc.initiatives.GetByID(ctx, *in.InitiativeID)); err != nil {
			return nil, err
		}
		existing, err := uc.projects.GetByInitiative(ctx, *in.InitiativeID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	status := in.Status
	if status == "" {
		status = entity.ProjectActive
	}
	coordinator := in.CoordinatorID
	if coordinator == nil {
		id := actor.UserID
		coordinator = &id
	}
	p := &entity.Project{
		InitiativeID:  in.InitiativeID,
		Title:         in.Title,
		Description:   in.Description,
		Status:        status,
		StartDate:     in.StartDate.TimePtr(),
		EndDate:       in.EndDate.TimePtr(),
		Progress:      in.Progress,
		CoordinatorID: coordinator,
	}
	if err := validDates(p); err != nil {
		return nil, err
	}
	if err := uc.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// GetByID obtiene un proyecto.
func (uc *ProjectUseCase) GetByID(ctx context.Context, id int64) (*dto.ProjectResponse, error) {
	p, err := found(uc.projects.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// List lista todos los proyectos.
func (uc *ProjectUseCase) List(ctx context.Context, limit, offset int) ([]dto.ProjectResponse, error) {
	list, err := uc.projects.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toProjectResponse), nil
}

// ListMine proyectos visibles para el usuario según su rol:
// estudiante los asignados, empresa los de sus iniciativas, coordinador todos.
func (uc *ProjectUseCase) ListMine(ctx context.Context, actor entity.Principal, limit, offset int) ([]dto.ProjectResponse, error) {
	var (
		list []*entity.Project
		err  error
	)
	switch actor.RoleID {
	case entity.RoleCoordinator:
		list, err = uc.projects.List(ctx, limit, offset)
	case entity.RoleStudent:
		list, err = uc.projects.ListByStudent(ctx, actor.UserID, limit, offset)
	case entity.RoleCompany:
		list, err = uc.projects.ListByInitiativeOwner(ctx, actor.UserID, limit, offset)
	default:
		return []dto.ProjectResponse{}, nil
	}
	if err != nil {
		return nil, err
	}
	return mapAll(list, toProjectResponse), nil
}

// Update actualización parcial.
func (uc *ProjectUseCase) Update(ctx context.Context, id int64, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	p, err := found(uc.projects.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.StartDate != nil {
		p.StartDate = in.StartDate.TimePtr()
	}
	if in.EndDate != nil {
		p.EndDate = in.EndDate.TimePtr()
	}
	if in.Progress != nil {
		p.Progress = *in.Progress
	}
	if in.CoordinatorID != nil {
		id := *in.CoordinatorID
		p.CoordinatorID = &id
	}
	if err := validDates(p); err != nil {
		return nil, err
	}
	if err := uc.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// Delete elimina el proyecto y devuelve su estado previo.
func (uc *ProjectUseCase) Delete(ctx context.Context, id int64) (*dto.ProjectResponse, error) {
	p, err := found(uc.projects.Delete(ctx, id))
	if err != nil {
		return nil, err
	}
	return toProjectResponse(p), nil
}

// validDates fecha_fin no puede ser anterior a fecha_inicio.
func validDates(p *entity.Project) error {
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return domain.ErrInvalidInput
	}
	return nil
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:            p.ID,
		InitiativeID:  p.InitiativeID,
		Title:         p.Title,
		Description:   p.Description,
		Status:        p.Status,
		StartDate:     dto.NewDate(p.StartDate),
		EndDate:       dto.NewDate(p.EndDate),
		Progress:      p.Progress,
		CoordinatorID: p.CoordinatorID,
	}
}
