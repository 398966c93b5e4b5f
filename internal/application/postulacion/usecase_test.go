package postulacion_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/application/postulacion"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/testutil/memstore"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) ObservePostulacionReview(status string, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf("%s:%t", status, created))
}

type fixture struct {
	store       *memstore.Store
	uc          *postulacion.UseCase
	rec         *recorder
	coordinator entity.Principal
	company     entity.Principal
	ana, luis   entity.Principal
	initiative  *entity.Initiative
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memstore.New()
	rec := &recorder{}
	f := &fixture{store: s, rec: rec, uc: postulacion.NewUseCase(s.Postulaciones(), s.Initiatives(), s, rec)}

	mk := func(name string, role int) entity.Principal {
		u := &entity.User{Name: name, Email: name + "@softlink.test", RoleID: &role}
		require.NoError(t, s.Users().Create(ctx, u))
		return entity.PrincipalOf(u)
	}
	f.coordinator = mk("coord", entity.RoleCoordinator)
	f.company = mk("acme", entity.RoleCompany)
	f.ana = mk("ana", entity.RoleStudent)
	f.luis = mk("luis", entity.RoleStudent)

	f.initiative = &entity.Initiative{
		Name:        "App de reciclaje",
		Description: "Rutas de recolección",
		Status:      entity.InitiativePending,
		UserID:      f.company.UserID,
	}
	require.NoError(t, s.Initiatives().Create(ctx, f.initiative))
	return f
}

func (f *fixture) apply(t *testing.T, student entity.Principal) *dto.PostulacionResponse {
	t.Helper()
	p, err := f.uc.Create(context.Background(), student, dto.CreatePostulacionRequest{InitiativeID: f.initiative.ID, Message: "me interesa"})
	require.NoError(t, err)
	return p
}

func (f *fixture) review(id int64, status string) (*dto.PostulacionResponse, error) {
	return f.uc.Update(context.Background(), f.coordinator, id, dto.UpdatePostulacionRequest{Status: &status})
}

func TestCreate_Reglas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, f.company, dto.CreatePostulacionRequest{InitiativeID: f.initiative.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Create(ctx, f.ana, dto.CreatePostulacionRequest{InitiativeID: 999})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p := f.apply(t, f.ana)
	assert.Equal(t, entity.PostulacionPending, p.Status)
	assert.Equal(t, f.ana.UserID, p.StudentID)

	_, err = f.uc.Create(ctx, f.ana, dto.CreatePostulacionRequest{InitiativeID: f.initiative.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdate_AceptarCreaProyectoYVinculo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.apply(t, f.ana)

	out, err := f.review(p.ID, entity.PostulacionAccepted)
	require.NoError(t, err)
	require.NotNil(t, out.ProjectID)
	assert.Equal(t, entity.PostulacionAccepted, out.Status)

	project, err := f.store.Projects().GetByInitiative(ctx, f.initiative.ID)
	require.NoError(t, err)
	require.NotNil(t, project)
	assert.Equal(t, *out.ProjectID, project.ID)
	assert.Equal(t, f.initiative.Name, project.Title)
	assert.Equal(t, f.initiative.Description, project.Description)
	assert.Equal(t, entity.ProjectActive, project.Status)
	require.NotNil(t, project.StartDate)
	require.NotNil(t, project.CoordinatorID)
	assert.Equal(t, f.coordinator.UserID, *project.CoordinatorID)

	link, err := f.store.ProjectStudents().Get(ctx, project.ID, f.ana.UserID)
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, entity.DefaultProjectRole, link.Role)

	initiative, _ := f.store.Initiatives().GetByID(ctx, f.initiative.ID)
	assert.Equal(t, entity.InitiativeInProgress, initiative.Status)

	audits, _ := f.store.Audits().List(ctx, 100, 0)
	assert.Len(t, audits, 1)
	notes, _ := f.store.Notifications().ListByUser(ctx, f.ana.UserID, 100, 0)
	assert.Len(t, notes, 1)
	assert.Equal(t, []string{"aceptada:true"}, f.rec.calls)
}

func TestUpdate_SegundaAceptacionReusaProyecto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p1 := f.apply(t, f.ana)
	p2 := f.apply(t, f.luis)

	out1, err := f.review(p1.ID, entity.PostulacionAccepted)
	require.NoError(t, err)
	out2, err := f.review(p2.ID, entity.PostulacionAccepted)
	require.NoError(t, err)
	assert.Equal(t, *out1.ProjectID, *out2.ProjectID)

	projects, _ := f.store.Projects().List(ctx, 100, 0)
	assert.Len(t, projects, 1)
	links, _ := f.store.ProjectStudents().ListByProject(ctx, *out1.ProjectID, 100, 0)
	assert.Len(t, links, 2)
	assert.Equal(t, []string{"aceptada:true", "aceptada:false"}, f.rec.calls)
}

func TestUpdate_ReaceptarEsIdempotente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.apply(t, f.ana)

	first, err := f.review(p.ID, entity.PostulacionAccepted)
	require.NoError(t, err)
	again, err := f.review(p.ID, entity.PostulacionAccepted)
	require.NoError(t, err)
	assert.Equal(t, *first.ProjectID, *again.ProjectID)

	projects, _ := f.store.Projects().List(ctx, 100, 0)
	assert.Len(t, projects, 1)
	links, _ := f.store.ProjectStudents().ListByProject(ctx, *first.ProjectID, 100, 0)
	assert.Len(t, links, 1)
	audits, _ := f.store.Audits().List(ctx, 100, 0)
	assert.Len(t, audits, 1, "sin cambio de estado no hay nueva auditoría")
}

func TestUpdate_RechazarNoCreaProyecto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.apply(t, f.ana)

	out, err := f.review(p.ID, entity.PostulacionRejected)
	require.NoError(t, err)
	assert.Nil(t, out.ProjectID)
	assert.Equal(t, entity.PostulacionRejected, out.Status)

	project, _ := f.store.Projects().GetByInitiative(ctx, f.initiative.ID)
	assert.Nil(t, project)
	notes, _ := f.store.Notifications().ListByUser(ctx, f.ana.UserID, 100, 0)
	assert.Len(t, notes, 1)
	assert.Equal(t, []string{"rechazada:false"}, f.rec.calls)
}

func TestUpdate_FalloRevierteTodo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.apply(t, f.ana)

	boom := errors.New("notificaciones caídas")
	f.store.Fail = func(op string) error {
		if op == "notifications.create" {
			return boom
		}
		return nil
	}
	_, err := f.review(p.ID, entity.PostulacionAccepted)
	require.ErrorIs(t, err, boom)

	project, _ := f.store.Projects().GetByInitiative(ctx, f.initiative.ID)
	assert.Nil(t, project)
	got, _ := f.store.Postulaciones().GetByID(ctx, p.ID)
	assert.Equal(t, entity.PostulacionPending, got.Status)
	initiative, _ := f.store.Initiatives().GetByID(ctx, f.initiative.ID)
	assert.Equal(t, entity.InitiativePending, initiative.Status)
	links, _ := f.store.ProjectStudents().ListByStudent(ctx, f.ana.UserID, 100, 0)
	assert.Empty(t, links)
	assert.Empty(t, f.rec.calls)
}

func TestUpdate_SoloCoordinador(t *testing.T) {
	f := newFixture(t)
	p := f.apply(t, f.ana)
	status := entity.PostulacionAccepted

	for _, actor := range []entity.Principal{f.ana, f.company} {
		_, err := f.uc.Update(context.Background(), actor, p.ID, dto.UpdatePostulacionRequest{Status: &status})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	}
	_, err := f.review(999, entity.PostulacionAccepted)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_Visibilidad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.apply(t, f.ana)
	f.apply(t, f.luis)

	all, err := f.uc.List(ctx, f.coordinator, 100, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := f.uc.List(ctx, f.ana, 100, 0)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, f.ana.UserID, own[0].StudentID)

	none, err := f.uc.List(ctx, f.company, 100, 0)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	pending, err := f.uc.ListPending(ctx, 100, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	byInitiative, err := f.uc.ListByInitiative(ctx, f.company, f.initiative.ID, 100, 0)
	require.NoError(t, err)
	assert.Len(t, byInitiative, 2)
	_, err = f.uc.ListByInitiative(ctx, f.ana, f.initiative.ID, 100, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetDelete_PostulanteOCoordinador(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.apply(t, f.ana)

	_, err := f.uc.GetByID(ctx, f.luis, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	got, err := f.uc.GetByID(ctx, f.coordinator, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = f.uc.Delete(ctx, f.luis, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	deleted, err := f.uc.Delete(ctx, f.ana, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, deleted.ID)
	_, err = f.uc.GetByID(ctx, f.ana, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
