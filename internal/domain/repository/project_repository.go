package repository

import (
	"context"

	"github.com/softlink/softlink-api/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para Project (DIP).
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	GetByID(ctx context.Context, id int64) (*entity.Project, error)
	GetByInitiative(ctx context.Context, initiativeID int64) (*entity.Project, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Project, error)
	// ListByStudent proyectos en los que participa el estudiante.
	ListByStudent(ctx context.Context, studentID int64, limit, offset int) ([]*entity.Project, error)
	// ListByInitiativeOwner proyectos nacidos de iniciativas del usuario.
	ListByInitiativeOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*entity.Project, error)
	Update(ctx context.Context, p *entity.Project) error
	Delete(ctx context.Context, id int64) (*entity.Project, error)
}

// ProjectStudentRepository vínculos proyecto-estudiante.
type ProjectStudentRepository interface {
	// Attach inserta el vínculo si no existe. created=false si ya existía.
	Attach(ctx context.Context, link *entity.ProjectStudent) (created bool, err error)
	Get(ctx context.Context, projectID, studentID int64) (*entity.ProjectStudent, error)
	ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]*entity.ProjectStudent, error)
	ListByStudent(ctx context.Context, studentID int64, limit, offset int) ([]*entity.ProjectStudent, error)
	Update(ctx context.Context, link *entity.ProjectStudent) error
	Delete(ctx context.Context, projectID, studentID int64) (*entity.ProjectStudent, error)
}

// MilestoneRepository hitos de proyecto.
type MilestoneRepository interface {
	Create(ctx context.Context, m *entity.Milestone) error
	GetByID(ctx context.Context, id int64) (*entity.Milestone, error)
	ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]*entity.Milestone, error)
	Update(ctx context.Context, m *entity.Milestone) error
	Delete(ctx context.Context, id int64) (*entity.Milestone, error)
}

// DeliveryRepository entregas sobre hitos.
type DeliveryRepository interface {
	Create(ctx context.Context, d *entity.Delivery) error
	GetByID(ctx context.Context, id int64) (*entity.Delivery, error)
	ListByMilestone(ctx context.Context, milestoneID int64, limit, offset int) ([]*entity.Delivery, error)
	Update(ctx context.Context, d *entity.Delivery) error
	Delete(ctx context.Context, id int64) (*entity.Delivery, error)
}
