package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/application/usecase"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/testutil/memstore"
)

type world struct {
	s           *memstore.Store
	files       *memstore.Files
	coordinator entity.Principal
	company     entity.Principal
	student     entity.Principal
	other       entity.Principal
}

func newWorld(t *testing.T) *world {
	t.Helper()
	w := &world{s: memstore.New(), files: memstore.NewFiles()}
	mk := func(name string, role int) entity.Principal {
		u := &entity.User{Name: name, Email: name + "@softlink.test", RoleID: &role}
		require.NoError(t, w.s.Users().Create(context.Background(), u))
		return entity.PrincipalOf(u)
	}
	w.coordinator = mk("coord", entity.RoleCoordinator)
	w.company = mk("acme", entity.RoleCompany)
	w.student = mk("ana", entity.RoleStudent)
	w.other = mk("luis", entity.RoleStudent)
	return w
}

func (w *world) initiative(t *testing.T, owner entity.Principal, status string) *entity.Initiative {
	t.Helper()
	in := &entity.Initiative{Name: "Iniciativa", Status: status, UserID: owner.UserID}
	require.NoError(t, w.s.Initiatives().Create(context.Background(), in))
	return in
}

func (w *world) project(t *testing.T, initiativeID *int64) *entity.Project {
	t.Helper()
	p := &entity.Project{InitiativeID: initiativeID, Title: "Proyecto", Status: entity.ProjectActive}
	require.NoError(t, w.s.Projects().Create(context.Background(), p))
	return p
}

func ptr[T any](v T) *T { return &v }

func TestUserUseCase_ActualizaPerfil(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewUserUseCase(w.s.Users(), w.s.Roles())
	ctx := context.Background()

	out, err := uc.Update(ctx, w.student, w.student.UserID, dto.UpdateUserRequest{Bio: ptr("backend"), Password: ptr("secreto1")})
	require.NoError(t, err)
	assert.Equal(t, "backend", out.Bio)
	u, _ := w.s.Users().GetByID(ctx, w.student.UserID)
	assert.NotEmpty(t, u.PasswordHash)

	_, err = uc.Update(ctx, w.student, w.other.UserID, dto.UpdateUserRequest{Bio: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Update(ctx, w.student, w.student.UserID, dto.UpdateUserRequest{RoleID: ptr(entity.RoleCoordinator)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err = uc.Update(ctx, w.coordinator, w.other.UserID, dto.UpdateUserRequest{RoleID: ptr(entity.RoleCompany)})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCompany, *out.RoleID)

	_, err = uc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	roles, err := uc.Roles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 3)
}

func TestInitiativeUseCase_ReglasDePropietario(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewInitiativeUseCase(w.s.Initiatives())
	ctx := context.Background()

	in, err := uc.Create(ctx, w.company, dto.CreateInitiativeRequest{Name: "Huerta urbana"})
	require.NoError(t, err)
	assert.Equal(t, entity.InitiativePending, in.Status)
	assert.Equal(t, w.company.UserID, in.UserID)

	_, err = uc.Update(ctx, w.student, in.ID, dto.UpdateInitiativeRequest{Name: ptr("otra")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	upd, err := uc.Update(ctx, w.coordinator, in.ID, dto.UpdateInitiativeRequest{Status: ptr(entity.InitiativeApproved)})
	require.NoError(t, err)
	assert.Equal(t, entity.InitiativeApproved, upd.Status)

	deleted, err := uc.Delete(ctx, w.company, in.ID)
	require.NoError(t, err)
	assert.Equal(t, in.ID, deleted.ID)
	_, err = uc.GetByID(ctx, in.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectUseCase_CreaYListaPropios(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewProjectUseCase(w.s.Projects(), w.s.Initiatives())
	ctx := context.Background()
	in := w.initiative(t, w.company, entity.InitiativeApproved)

	p, err := uc.Create(ctx, w.coordinator, dto.CreateProjectRequest{InitiativeID: &in.ID, Title: "Piloto"})
	require.NoError(t, err)
	assert.Equal(t, entity.ProjectActive, p.Status)
	assert.Equal(t, w.coordinator.UserID, *p.CoordinatorID)

	_, err = uc.Create(ctx, w.coordinator, dto.CreateProjectRequest{InitiativeID: &in.ID, Title: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.Create(ctx, w.coordinator, dto.CreateProjectRequest{InitiativeID: ptr(int64(999)), Title: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = w.s.ProjectStudents().Attach(ctx, &entity.ProjectStudent{ProjectID: p.ID, StudentID: w.student.UserID, Role: "Backend"})
	require.NoError(t, err)
	w.project(t, nil)

	mine, err := uc.ListMine(ctx, w.student, 100, 0)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, p.ID, mine[0].ID)

	owned, err := uc.ListMine(ctx, w.company, 100, 0)
	require.NoError(t, err)
	assert.Len(t, owned, 1)

	all, err := uc.ListMine(ctx, w.coordinator, 100, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := uc.ListMine(ctx, w.other, 100, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProjectStudentUseCase_VinculoDuplicado(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewProjectStudentUseCase(w.s.ProjectStudents(), w.s.Projects(), w.s.Users())
	ctx := context.Background()
	p := w.project(t, nil)

	link, err := uc.Create(ctx, dto.CreateProjectStudentRequest{ProjectID: p.ID, StudentID: w.student.UserID})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultProjectRole, link.Role)

	_, err = uc.Create(ctx, dto.CreateProjectStudentRequest{ProjectID: p.ID, StudentID: w.student.UserID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.Create(ctx, dto.CreateProjectStudentRequest{ProjectID: p.ID, StudentID: w.company.UserID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ListByStudent(ctx, w.other, w.student.UserID, 100, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	own, err := uc.ListByStudent(ctx, w.student, w.student.UserID, 100, 0)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	upd, err := uc.Update(ctx, p.ID, w.student.UserID, dto.UpdateProjectStudentRequest{Role: ptr("Líder")})
	require.NoError(t, err)
	assert.Equal(t, "Líder", upd.Role)

	_, err = uc.Delete(ctx, p.ID, w.student.UserID)
	require.NoError(t, err)
	_, err = uc.Delete(ctx, p.ID, w.student.UserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeliveryUseCase_Entrega(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	milestones := usecase.NewMilestoneUseCase(w.s.Milestones(), w.s.Projects())
	uc := usecase.NewDeliveryUseCase(w.s.Deliveries(), w.s.Milestones(), w.s.ProjectStudents(), w.files)

	p := w.project(t, nil)
	other := w.project(t, nil)
	m, err := milestones.Create(ctx, p.ID, dto.CreateMilestoneRequest{Title: "Prototipo"})
	require.NoError(t, err)
	assert.Equal(t, entity.MilestonePending, m.Status)
	_, err = w.s.ProjectStudents().Attach(ctx, &entity.ProjectStudent{ProjectID: p.ID, StudentID: w.student.UserID, Role: entity.DefaultProjectRole})
	require.NoError(t, err)

	// no vinculado
	_, err = uc.Submit(ctx, w.other, p.ID, m.ID, dto.CreateDeliveryRequest{FileURL: "https://x/y.zip"}, nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// hito de otro proyecto
	_, err = uc.Submit(ctx, w.student, other.ID, m.ID, dto.CreateDeliveryRequest{FileURL: "https://x/y.zip"}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// sin archivo ni url
	_, err = uc.Submit(ctx, w.student, p.ID, m.ID, dto.CreateDeliveryRequest{}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	d, err := uc.Submit(ctx, w.student, p.ID, m.ID, dto.CreateDeliveryRequest{Comment: "v1"}, &usecase.FileUpload{
		Name: "avance.pdf", ContentType: "application/pdf", Reader: strings.NewReader("%PDF"),
	})
	require.NoError(t, err)
	assert.True(t, w.files.Has(d.FileURL))
	assert.Equal(t, w.student.UserID, d.StudentID)
	assert.False(t, d.DeliveredAt.IsZero())

	list, err := uc.ListByMilestone(ctx, p.ID, m.ID, 100, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.Update(ctx, w.other, d.ID, dto.UpdateDeliveryRequest{Comment: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Delete(ctx, w.coordinator, d.ID)
	require.NoError(t, err)
}

func TestMilestoneUseCase_ProyectoDebeExistir(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewMilestoneUseCase(w.s.Milestones(), w.s.Projects())
	ctx := context.Background()

	_, err := uc.Create(ctx, 42, dto.CreateMilestoneRequest{Title: "Hito"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p := w.project(t, nil)
	m, err := uc.Create(ctx, p.ID, dto.CreateMilestoneRequest{Title: "Hito"})
	require.NoError(t, err)
	_, err = uc.GetByID(ctx, p.ID+1, m.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	upd, err := uc.Update(ctx, 0, m.ID, dto.UpdateMilestoneRequest{Status: ptr(entity.MilestoneDone)})
	require.NoError(t, err)
	assert.Equal(t, entity.MilestoneDone, upd.Status)
}

func TestEvaluationUseCase_ResumenPonderado(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	criteria := usecase.NewCriterionUseCase(w.s.Criteria())
	evals := usecase.NewEvaluationUseCase(w.s.Evaluations(), w.s.Criteria(), w.s.Projects())

	_, err := criteria.Create(ctx, dto.CreateCriterionRequest{Name: "X", Weight: ptr(decimal.NewFromInt(100))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	def, err := criteria.Create(ctx, dto.CreateCriterionRequest{Name: "Documentación"})
	require.NoError(t, err)
	assert.True(t, def.Weight.Equal(decimal.NewFromInt(1)))
	quality, err := criteria.Create(ctx, dto.CreateCriterionRequest{Name: "Calidad", Weight: ptr(decimal.NewFromInt(3))})
	require.NoError(t, err)

	p := w.project(t, nil)
	e, err := evals.Create(ctx, w.coordinator, dto.CreateEvaluationRequest{ProjectID: p.ID, CriterionID: &quality.ID, Score: ptr(100)})
	require.NoError(t, err)
	assert.Equal(t, w.coordinator.UserID, *e.EvaluatorID)
	_, err = evals.Create(ctx, w.coordinator, dto.CreateEvaluationRequest{ProjectID: p.ID, CriterionID: &def.ID, Score: ptr(60)})
	require.NoError(t, err)

	_, err = evals.Create(ctx, w.coordinator, dto.CreateEvaluationRequest{ProjectID: p.ID, CriterionID: ptr(int64(999)), Score: ptr(50)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	sum, err := evals.Summary(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Count)
	assert.Equal(t, "90", sum.WeightedAverage.String())
}

func TestMessageUseCase_SoloParticipantes(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewMessageUseCase(w.s.Messages(), w.s.Users())
	ctx := context.Background()

	_, err := uc.Send(ctx, w.student, dto.CreateMessageRequest{RecipientID: 999, Content: "hola"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	m, err := uc.Send(ctx, w.student, dto.CreateMessageRequest{RecipientID: w.company.UserID, Subject: "Consulta", Content: "hola"})
	require.NoError(t, err)
	assert.False(t, m.Read)

	_, err = uc.GetByID(ctx, w.other, m.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.GetByID(ctx, w.coordinator, m.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	read, err := uc.Update(ctx, w.company, m.ID, dto.UpdateMessageRequest{Read: ptr(true)})
	require.NoError(t, err)
	assert.True(t, read.Read)

	// El destinatario no reescribe el mensaje ajeno.
	_, err = uc.Update(ctx, w.company, m.ID, dto.UpdateMessageRequest{Content: ptr("otro texto")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Update(ctx, w.company, m.ID, dto.UpdateMessageRequest{Subject: ptr("Spam"), Read: ptr(false)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	got, err := uc.GetByID(ctx, w.student, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "hola", got.Content)
	assert.True(t, got.Read)

	edited, err := uc.Update(ctx, w.student, m.ID, dto.UpdateMessageRequest{Content: ptr("hola de nuevo")})
	require.NoError(t, err)
	assert.Equal(t, "hola de nuevo", edited.Content)

	inbox, err := uc.ListMine(ctx, w.company, 100, 0)
	require.NoError(t, err)
	assert.Len(t, inbox, 1)
	sent, err := uc.ListMine(ctx, w.student, 100, 0)
	require.NoError(t, err)
	assert.Len(t, sent, 1)
}

func TestCommentNotificationUseCase_Propietario(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	comments := usecase.NewCommentUseCase(w.s.Comments(), w.s.Projects())
	notes := usecase.NewNotificationUseCase(w.s.Notifications(), w.s.Users())
	p := w.project(t, nil)

	c, err := comments.Create(ctx, w.student, dto.CreateCommentRequest{ProjectID: p.ID, Content: "Avance listo"})
	require.NoError(t, err)
	assert.Equal(t, w.student.UserID, c.UserID)
	_, err = comments.Update(ctx, w.other, c.ID, dto.UpdateCommentRequest{Content: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = comments.Delete(ctx, w.coordinator, c.ID)
	require.NoError(t, err)

	n, err := notes.Create(ctx, dto.CreateNotificationRequest{UserID: w.student.UserID, Title: "Bienvenida"})
	require.NoError(t, err)
	_, err = notes.Update(ctx, w.other, n.ID, dto.UpdateNotificationRequest{Read: ptr(true)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	upd, err := notes.Update(ctx, w.student, n.ID, dto.UpdateNotificationRequest{Read: ptr(true)})
	require.NoError(t, err)
	assert.True(t, upd.Read)
	mine, err := notes.ListMine(ctx, w.student, 100, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestDocumentUseCase_LimpiaArchivoSiFalla(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	uc := usecase.NewDocumentUseCase(w.s.Documents(), w.s.Initiatives(), w.files)
	in := w.initiative(t, w.company, entity.InitiativePending)

	_, err := uc.Upload(ctx, w.student, in.ID, "propuesta", usecase.FileUpload{Name: "a.pdf", Reader: strings.NewReader("x")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	boom := errors.New("db caída")
	w.s.Fail = func(op string) error {
		if op == "documents.create" {
			return boom
		}
		return nil
	}
	_, err = uc.Upload(ctx, w.company, in.ID, "propuesta", usecase.FileUpload{Name: "a.pdf", Reader: strings.NewReader("x")})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, w.files.Data)

	w.s.Fail = nil
	doc, err := uc.Upload(ctx, w.company, in.ID, "propuesta", usecase.FileUpload{Name: "a.pdf", Reader: strings.NewReader("x")})
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", doc.FileName)
	assert.True(t, w.files.Has(doc.Path))

	_, err = uc.Delete(ctx, doc.ID)
	require.NoError(t, err)
	assert.False(t, w.files.Has(doc.Path))
}

func TestUploadUseCase_FotoYHojaDeVida(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	uc := usecase.NewUploadUseCase(w.s.Users(), w.files)

	_, err := uc.ProfileImage(ctx, w.student, usecase.FileUpload{Name: "yo.pdf", ContentType: "application/pdf", Reader: strings.NewReader("x")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	img, err := uc.ProfileImage(ctx, w.student, usecase.FileUpload{Name: "Yo.JPG", ContentType: "image/jpeg", Reader: strings.NewReader("x")})
	require.NoError(t, err)
	assert.Equal(t, "profile_3.jpg", img.Filename)

	// La extensión del cliente no basta: html con tipo image/* se rechaza.
	_, err = uc.ProfileImage(ctx, w.student, usecase.FileUpload{Name: "x.html", ContentType: "image/png", Reader: strings.NewReader("<script>")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.ProfileImage(ctx, w.student, usecase.FileUpload{Name: "x.svg", ContentType: "image/svg+xml", Reader: strings.NewReader("<svg/>")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	noExt, err := uc.ProfileImage(ctx, w.student, usecase.FileUpload{Name: "foto", ContentType: "image/webp", Reader: strings.NewReader("x")})
	require.NoError(t, err)
	assert.Equal(t, "profile_3.webp", noExt.Filename)

	cv, err := uc.CV(ctx, w.student, usecase.FileUpload{Name: "hv.pdf", ContentType: "application/pdf", Reader: strings.NewReader("%PDF")})
	require.NoError(t, err)
	assert.Equal(t, "cv_3.pdf", cv.Filename)

	u, _ := w.s.Users().GetByID(ctx, w.student.UserID)
	assert.Equal(t, noExt.URL, u.Photo)
	assert.Equal(t, cv.URL, u.CV)
}

func TestDashboardUseCase_Estadisticas(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		w.initiative(t, w.company, entity.InitiativePending)
	}
	w.initiative(t, w.company, entity.InitiativeApproved)

	stats, err := usecase.NewDashboardUseCase(w.s.Users(), w.s.Initiatives()).Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 1, stats.TotalCompanies)
	assert.Equal(t, 7, stats.PendingInitiativesCount)
	assert.Len(t, stats.PendingInitiatives, 5)
}

func TestAuditUseCase_UsuarioPorDefecto(t *testing.T) {
	w := newWorld(t)
	uc := usecase.NewAuditUseCase(w.s.Audits())
	a, err := uc.Create(context.Background(), w.coordinator, dto.CreateAuditRequest{Table: "usuarios", Action: "DELETE"})
	require.NoError(t, err)
	assert.Equal(t, w.coordinator.UserID, *a.UserID)
}

func TestCriterionUseCase_LimitesDePeso(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	uc := usecase.NewCriterionUseCase(w.s.Criteria())
	dec := decimal.RequireFromString

	// Se redondea antes de validar: 99.996 sería 100.00 y no cabe en NUMERIC(4,2).
	_, err := uc.Create(ctx, dto.CreateCriterionRequest{Name: "alto", Weight: ptr(dec("99.996"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, dto.CreateCriterionRequest{Name: "negativo", Weight: ptr(dec("-0.01"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	top, err := uc.Create(ctx, dto.CreateCriterionRequest{Name: "tope", Weight: ptr(dec("99.994"))})
	require.NoError(t, err)
	assert.Equal(t, "99.99", top.Weight.StringFixed(2))

	zero, err := uc.Create(ctx, dto.CreateCriterionRequest{Name: "cero", Weight: ptr(decimal.Zero)})
	require.NoError(t, err)
	assert.True(t, zero.Weight.IsZero())

	_, err = uc.Update(ctx, zero.ID, dto.UpdateCriterionRequest{Weight: ptr(dec("99.995"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	upd, err := uc.Update(ctx, zero.ID, dto.UpdateCriterionRequest{Weight: ptr(dec("99.99"))})
	require.NoError(t, err)
	assert.Equal(t, "99.99", upd.Weight.StringFixed(2))
}
