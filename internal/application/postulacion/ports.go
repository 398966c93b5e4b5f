package postulacion

import (
	"context"

	"github.com/softlink/softlink-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Postulaciones   repository.PostulacionRepository
	Initiatives     repository.InitiativeRepository
	Projects        repository.ProjectRepository
	ProjectStudents repository.ProjectStudentRepository
	Audits          repository.AuditRepository
	Notifications   repository.NotificationRepository
}

// TxRunner ejecuta fn dentro de una transacción; si fn retorna error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// ReviewRecorder observa las revisiones confirmadas (métricas).
type ReviewRecorder interface {
	ObservePostulacionReview(status string, projectCreated bool)
}

type nopRecorder struct{}

func (nopRecorder) ObservePostulacionReview(string, bool) {}
