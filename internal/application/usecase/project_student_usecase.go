package usecase

import (
	"context"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

// ProjectStudentUseCase vínculos estudiante-proyecto.
type ProjectStudentUseCase struct {
	links    repository.ProjectStudentRepository
	projects repository.ProjectRepository
	users    repository.UserRepository
}

// NewProjectStudentUseCase construye el caso de uso.
func NewProjectStudentUseCase(links repository.ProjectStudentRepository, projects repository.ProjectRepository, users repository.UserRepository) *ProjectStudentUseCase {
	return &ProjectStudentUseCase{links: links, projects: projects, users: users}
}

// Create vincula un estudiante. El par (proyecto, estudiante) es único.
func (uc *ProjectStudentUseCase) Create(ctx context.Context, in dto.CreateProjectStudentRequest) (*dto.ProjectStudentResponse, error) {
	if _, err := found(uc.projects.GetByID(ctx, in.ProjectID)); err != nil {
		return nil, err
	}
	student, err := found(uc.users.GetByID(ctx, in.StudentID))
	if err != nil {
		return nil, err
	}
	if student.Role() != entity.RoleStudent {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.DefaultProjectRole
	}
	link := &entity.ProjectStudent{ProjectID: in.ProjectID, StudentID: in.StudentID, Role: role}
	created, err := uc.links.Attach(ctx, link)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, domain.ErrDuplicate
	}
	return toProjectStudentResponse(link), nil
}

// ListByProject estudiantes de un proyecto.
func (uc *ProjectStudentUseCase) ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]dto.ProjectStudentResponse, error) {
	if _, err := found(uc.projects.GetByID(ctx, projectID)); err != nil {
		return nil, err
	}
	list, err := uc.links.ListByProject(ctx, projectID, limit, offset)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toProjectStudentResponse), nil
}

// ListByStudent proyectos de un estudiante. Un estudiante solo consulta los suyos.
func (uc *ProjectStudentUseCase) ListByStudent(ctx context.Context, actor entity.Principal, studentID int64, limit, offset int) ([]dto.ProjectStudentResponse, error) {
	if !actor.CanManage(studentID) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.links.ListByStudent(ctx, studentID, limit, offset)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toProjectStudentResponse), nil
}

// Get obtiene un vínculo.
func (uc *ProjectStudentUseCase) Get(ctx context.Context, projectID, studentID int64) (*dto.ProjectStudentResponse, error) {
	link, err := found(uc.links.Get(ctx, projectID, studentID))
	if err != nil {
		return nil, err
	}
	return toProjectStudentResponse(link), nil
}

// Update cambia el rol en el proyecto.
func (uc *ProjectStudentUseCase) Update(ctx context.Context, projectID, studentID int64, in dto.UpdateProjectStudentRequest) (*dto.ProjectStudentResponse, error) {
	link, err := found(uc.links.Get(ctx, projectID, studentID))
	if err != nil {
		return nil, err
	}
	if in.Role != nil {
		link.Role = *in.Role
	}
	if err := uc.links.Update(ctx, link); err != nil {
		return nil, err
	}
	return toProjectStudentResponse(link), nil
}

// Delete desvincula al estudiante.
func (uc *ProjectStudentUseCase) Delete(ctx context.Context, projectID, studentID int64) (*dto.ProjectStudentResponse, error) {
	link, err := found(uc.links.Delete(ctx, projectID, studentID))
	if err != nil {
		return nil, err
	}
	return toProjectStudentResponse(link), nil
}

func toProjectStudentResponse(l *entity.ProjectStudent) *dto.ProjectStudentResponse {
	return &dto.ProjectStudentResponse{ProjectID: l.ProjectID, StudentID: l.StudentID, Role: l.Role}
}
