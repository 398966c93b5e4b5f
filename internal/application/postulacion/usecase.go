package postulacion

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

const auditTable = "postulaciones"

// UseCase postulaciones de estudiantes y flujo de aceptación a proyecto.
type UseCase struct {
	postulaciones repository.PostulacionRepository
	initiatives   repository.InitiativeRepository
	tx            TxRunner
	recorder      ReviewRecorder
	now           func() time.Time
}

// NewUseCase construye el caso de uso. recorder puede ser nil.
func NewUseCase(postulaciones repository.PostulacionRepository, initiatives repository.InitiativeRepository, tx TxRunner, recorder ReviewRecorder) *UseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &UseCase{
		postulaciones: postulaciones,
		initiatives:   initiatives,
		tx:            tx,
		recorder:      recorder,
		now:           time.Now,
	}
}

// Create solo estudiantes; una postulación por (estudiante, iniciativa).
func (uc *UseCase) Create(ctx context.Context, actor entity.Principal, in dto.CreatePostulacionRequest) (*dto.PostulacionResponse, error) {
	if !actor.IsStudent() {
		return nil, domain.ErrForbidden
	}
	initiative, err := uc.initiatives.GetByID(ctx, in.InitiativeID)
	if err != nil {
		return nil, err
	}
	if initiative == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.postulaciones.GetByStudentAndInitiative(ctx, actor.UserID, in.InitiativeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	p := &entity.Postulacion{
		InitiativeID: in.InitiativeID,
		StudentID:    actor.UserID,
		Status:       entity.PostulacionPending,
		Message:      in.Message,
	}
	if err := uc.postulaciones.Create(ctx, p); err != nil {
		return nil, err
	}
	return toResponse(p, nil), nil
}

// List coordinador ve todas, estudiante las propias, cualquier otro rol lista vacía.
func (uc *UseCase) List(ctx context.Context, actor entity.Principal, limit, offset int) ([]dto.PostulacionResponse, error) {
	switch {
	case actor.IsCoordinator():
		return uc.list(ctx, repository.PostulacionFilter{}, limit, offset)
	case actor.IsStudent():
		return uc.ListMine(ctx, actor, limit, offset)
	default:
		return []dto.PostulacionResponse{}, nil
	}
}

// ListMine postulaciones del usuario autenticado.
func (uc *UseCase) ListMine(ctx context.Context, actor entity.Principal, limit, offset int) ([]dto.PostulacionResponse, error) {
	id := actor.UserID
	return uc.list(ctx, repository.PostulacionFilter{StudentID: &id}, limit, offset)
}

// ListPending postulaciones por revisar.
func (uc *UseCase) ListPending(ctx context.Context, limit, offset int) ([]dto.PostulacionResponse, error) {
	return uc.list(ctx, repository.PostulacionFilter{Status: entity.PostulacionPending}, limit, offset)
}

// ListByInitiative solo el dueño de la iniciativa o un coordinador.
func (uc *UseCase) ListByInitiative(ctx context.Context, actor entity.Principal, initiativeID int64, limit, offset int) ([]dto.PostulacionResponse, error) {
	initiative, err := uc.initiatives.GetByID(ctx, initiativeID)
	if err != nil {
		return nil, err
	}
	if initiative == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanManage(initiative.UserID) {
		return nil, domain.ErrForbidden
	}
	return uc.list(ctx, repository.PostulacionFilter{InitiativeID: &initiativeID}, limit, offset)
}

// GetByID solo el postulante o un coordinador.
func (uc *UseCase) GetByID(ctx context.Context, actor entity.Principal, id int64) (*dto.PostulacionResponse, error) {
	p, err := uc.get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toResponse(p, nil), nil
}

// Update revisión por un coordinador. Al aceptar crea (o reutiliza) el proyecto de la
// iniciativa y vincula al estudiante; todo en una sola transacción.
func (uc *UseCase) Update(ctx context.Context, actor entity.Principal, id int64, in dto.UpdatePostulacionRequest) (*dto.PostulacionResponse, error) {
	if !actor.IsCoordinator() {
		return nil, domain.ErrForbidden
	}

	var (
		out            *entity.Postulacion
		projectID      *int64
		projectCreated bool
		changed        bool
	)
	err := uc.tx.Run(ctx, func(r Repos) error {
		p, err := r.Postulaciones.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		previous := p.Status
		if in.Message != nil {
			p.Message = *in.Message
		}
		if in.Status != nil {
			p.Status = *in.Status
		}

		// 1) Aceptación: proyecto de la iniciativa + vínculo del estudiante.
		if p.Status == entity.PostulacionAccepted {
			project, created, err := uc.accept(ctx, r, actor, p)
			if err != nil {
				return err
			}
			projectID = &project.ID
			projectCreated = created
		}

		// 2) Persistir el nuevo estado.
		if err := r.Postulaciones.Update(ctx, p); err != nil {
			return err
		}

		// 3) Auditoría y aviso al estudiante solo si el estado cambió.
		changed = previous != p.Status
		if changed {
			if err := uc.record(ctx, r, actor, p, previous); err != nil {
				return err
			}
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	if changed {
		uc.recorder.ObservePostulacionReview(out.Status, projectCreated)
		log.Info().
			Int64("id_postulacion", out.ID).
			Str("estado", out.Status).
			Bool("proyecto_creado", projectCreated).
			Msg("postulación revisada")
	}
	return toResponse(out, projectID), nil
}

// accept obtiene o crea el proyecto de la iniciativa y vincula al estudiante.
// La iniciativa se bloquea para serializar aceptaciones concurrentes.
func (uc *UseCase) accept(ctx context.Context, r Repos, actor entity.Principal, p *entity.Postulacion) (*entity.Project, bool, error) {
	initiative, err := r.Initiatives.GetForUpdate(ctx, p.InitiativeID)
	if err != nil {
		return nil, false, err
	}
	if initiative == nil {
		return nil, false, domain.ErrNotFound
	}
	project, err := r.Projects.GetByInitiative(ctx, initiative.ID)
	if err != nil {
		return nil, false, err
	}
	created := false
	if project == nil {
		today := uc.now().UTC().Truncate(24 * time.Hour)
		coordinator := actor.UserID
		initiativeID := initiative.ID
		project = &entity.Project{
			InitiativeID:  &initiativeID,
			Title:         initiative.Name,
			Description:   initiative.Description,
			Status:        entity.ProjectActive,
			StartDate:     &today,
			CoordinatorID: &coordinator,
		}
		if err := r.Projects.Create(ctx, project); err != nil {
			return nil, false, fmt.Errorf("crear proyecto: %w", err)
		}
		created = true
		if initiative.Status == entity.InitiativePending || initiative.Status == entity.InitiativeApproved {
			initiative.Status = entity.InitiativeInProgress
			if err := r.Initiatives.Update(ctx, initiative); err != nil {
				return nil, false, err
			}
		}
	}
	link := &entity.ProjectStudent{ProjectID: project.ID, StudentID: p.StudentID, Role: entity.DefaultProjectRole}
	if _, err := r.ProjectStudents.Attach(ctx, link); err != nil {
		return nil, false, fmt.Errorf("vincular estudiante: %w", err)
	}
	return project, created, nil
}

func (uc *UseCase) record(ctx context.Context, r Repos, actor entity.Principal, p *entity.Postulacion, previous string) error {
	actorID := actor.UserID
	if err := r.Audits.Create(ctx, &entity.Audit{
		Table:   auditTable,
		Action:  "UPDATE",
		UserID:  &actorID,
		Details: fmt.Sprintf("postulación %d: %s -> %s", p.ID, previous, p.Status),
	}); err != nil {
		return err
	}
	return r.Notifications.Create(ctx, &entity.Notification{
		UserID:  p.StudentID,
		Title:   "Postulación " + p.Status,
		Message: fmt.Sprintf("Tu postulación a la iniciativa %d fue %s.", p.InitiativeID, p.Status),
	})
}

// Delete solo el postulante o un coordinador.
func (uc *UseCase) Delete(ctx context.Context, actor entity.Principal, id int64) (*dto.PostulacionResponse, error) {
	if _, err := uc.get(ctx, actor, id); err != nil {
		return nil, err
	}
	p, err := uc.postulaciones.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(p, nil), nil
}

func (uc *UseCase) get(ctx context.Context, actor entity.Principal, id int64) (*entity.Postulacion, error) {
	p, err := uc.postulaciones.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.CanManage(p.StudentID) {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

func (uc *UseCase) list(ctx context.Context, f repository.PostulacionFilter, limit, offset int) ([]dto.PostulacionResponse, error) {
	list, err := uc.postulaciones.List(ctx, f, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PostulacionResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toResponse(p, nil))
	}
	return out, nil
}

func toResponse(p *entity.Postulacion, projectID *int64) *dto.PostulacionResponse {
	return &dto.PostulacionResponse{
		ID:           p.ID,
		InitiativeID: p.InitiativeID,
		StudentID:    p.StudentID,
		CreatedAt:    p.CreatedAt,
		Status:       p.Status,
		Message:      p.Message,
		ProjectID:    projectID,
	}
}
