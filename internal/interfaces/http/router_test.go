package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softlink/softlink-api/internal/application/auth"
	"github.com/softlink/softlink-api/internal/application/postulacion"
	"github.com/softlink/softlink-api/internal/application/report"
	"github.com/softlink/softlink-api/internal/application/usecase"
	apphttp "github.com/softlink/softlink-api/internal/interfaces/http"
	"github.com/softlink/softlink-api/internal/testutil/memstore"
	"github.com/softlink/softlink-api/pkg/validator"
)

type stubGenerator struct{}

func (stubGenerator) GenerateProjectReport(_ context.Context, r *report.ProjectReport) ([]byte, error) {
	return []byte("%PDF-1.4 " + r.Project.Title), nil
}

type server struct {
	app   *fiber.App
	store *memstore.Store
	files *memstore.Files
}

func newServer(t *testing.T) *server {
	t.Helper()
	s := memstore.New()
	files := memstore.NewFiles()
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(s.Users(), s.Tokens(), auth.Config{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer, AllowCoordinatorSignup: true,
		}),
		UserUC:          usecase.NewUserUseCase(s.Users(), s.Roles()),
		UploadUC:        usecase.NewUploadUseCase(s.Users(), files),
		DashboardUC:     usecase.NewDashboardUseCase(s.Users(), s.Initiatives()),
		InitiativeUC:    usecase.NewInitiativeUseCase(s.Initiatives()),
		DocumentUC:      usecase.NewDocumentUseCase(s.Documents(), s.Initiatives(), files),
		PostulacionUC:   postulacion.NewUseCase(s.Postulaciones(), s.Initiatives(), s, nil),
		ProjectUC:       usecase.NewProjectUseCase(s.Projects(), s.Initiatives()),
		ProjectStudents: usecase.NewProjectStudentUseCase(s.ProjectStudents(), s.Projects(), s.Users()),
		MilestoneUC:     usecase.NewMilestoneUseCase(s.Milestones(), s.Projects()),
		DeliveryUC:      usecase.NewDeliveryUseCase(s.Deliveries(), s.Milestones(), s.ProjectStudents(), files),
		CriterionUC:     usecase.NewCriterionUseCase(s.Criteria()),
		EvaluationUC:    usecase.NewEvaluationUseCase(s.Evaluations(), s.Criteria(), s.Projects()),
		CommentUC:       usecase.NewCommentUseCase(s.Comments(), s.Projects()),
		MessageUC:       usecase.NewMessageUseCase(s.Messages(), s.Users()),
		NotificationUC:  usecase.NewNotificationUseCase(s.Notifications(), s.Users()),
		AuditUC:         usecase.NewAuditUseCase(s.Audits()),
		ReportUC: report.NewUseCase(s.Projects(), s.Initiatives(), s.ProjectStudents(), s.Users(),
			s.Milestones(), s.Evaluations(), s.Criteria(), stubGenerator{}),
		Validator: validator.New(),
		Users:     s.Users(),
		JWTSecret: testJWTSecret,
	})
	return &server{app: app, store: s, files: files}
}

// do envía JSON (body != nil) con token opcional y decodifica la respuesta en out si no es nil.
func (s *server) do(t *testing.T, method, path, token string, body, out interface{}) int {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(t, req, token, out)
}

func (s *server) send(t *testing.T, req *http.Request, token string, out interface{}) int {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// signup registra y hace login; devuelve token e id.
func (s *server) signup(t *testing.T, name string, role int) (string, int64) {
	t.Helper()
	email := name + "@softlink.test"
	status := s.do(t, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"nombre": name, "email": email, "password": "secreto1", "id_rol": role,
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	var login struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		RoleID      int    `json:"id_rol"`
		User        struct {
			ID int64 `json:"id_usuario"`
		} `json:"user"`
	}
	status = s.do(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{"email": email, "password": "secreto1"}, &login)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "bearer", login.TokenType)
	require.Equal(t, role, login.RoleID)
	return login.AccessToken, login.User.ID
}

func TestRouter_FlujoPostulacionAProyecto(t *testing.T) {
	s := newServer(t)
	coord, _ := s.signup(t, "coord", 1)
	student, studentID := s.signup(t, "ana", 2)
	company, _ := s.signup(t, "acme", 3)

	// La empresa publica una iniciativa; el listado es público.
	var ini map[string]interface{}
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/v1/iniciativas/", company,
		fiber.Map{"nombre": "App de reciclaje", "descripcion": "Rutas"}, &ini))
	assert.Equal(t, "pendiente", ini["estado"])
	iniID := int64(ini["id_iniciativa"].(float64))

	var list []map[string]interface{}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/iniciativas/", "", nil, &list))
	assert.Len(t, list, 1)

	// Solo estudiantes se postulan, una vez por iniciativa.
	body := fiber.Map{"id_iniciativa": iniID, "mensaje": "me interesa"}
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPost, "/api/v1/postulaciones/", company, body, nil))
	var post map[string]interface{}
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/v1/postulaciones/", student, body, &post))
	var dup map[string]interface{}
	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/api/v1/postulaciones/", student, body, &dup))
	assert.Equal(t, "CONFLICT", dup["code"])
	postID := int64(post["id_postulacion"].(float64))

	// La empresa no revisa; el coordinador acepta y se crea el proyecto.
	path := fmt.Sprintf("/api/v1/postulaciones/%d", postID)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPut, path, company, fiber.Map{"estado": "aceptada"}, nil))
	var accepted map[string]interface{}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPut, path, coord, fiber.Map{"estado": "aceptada"}, &accepted))
	assert.Equal(t, "aceptada", accepted["estado"])
	require.NotNil(t, accepted["id_proyecto"])
	projectID := int64(accepted["id_proyecto"].(float64))

	var mine []map[string]interface{}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/proyectos/me", student, nil, &mine))
	require.Len(t, mine, 1)
	assert.EqualValues(t, projectID, mine[0]["id_proyecto"])

	var ini2 map[string]interface{}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/iniciativas/%d", iniID), "", nil, &ini2))
	assert.Equal(t, "en_progreso", ini2["estado"])

	var links []map[string]interface{}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/proyectos-estudiantes/proyecto/%d", projectID), student, nil, &links))
	require.Len(t, links, 1)
	assert.EqualValues(t, studentID, links[0]["id_estudiante"])
	assert.Equal(t, "Estudiante", links[0]["rol_en_proyecto"])

	var notes []map[string]interface{}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/notificaciones/me", student, nil, &notes))
	assert.Len(t, notes, 1)

	var audits []map[string]interface{}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/auditoria/", coord, nil, &audits))
	assert.Len(t, audits, 1)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/v1/auditoria/", student, nil, nil))

	// Hito anidado y entrega del estudiante vinculado.
	var hito map[string]interface{}
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/proyectos/%d/hitos", projectID), coord,
		fiber.Map{"titulo": "Prototipo", "fecha_entrega": "2026-11-30"}, &hito))
	hitoID := int64(hito["id_hito"].(float64))

	entregas := fmt.Sprintf("/api/v1/proyectos/%d/hitos/%d/entregas", projectID, hitoID)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPost, entregas, coord, fiber.Map{"archivo_url": "https://x/y.zip"}, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, entregas, student, fiber.Map{"comentario": "sin archivo"}, nil))
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, entregas, student, fiber.Map{"archivo_url": "https://x/y.zip"}, nil))
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost,
		fmt.Sprintf("/api/v1/proyectos/%d/hitos/%d/entregas", projectID+1, hitoID), student, fiber.Map{"archivo_url": "https://x"}, nil))

	var delivered []map[string]interface{}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, entregas, student, nil, &delivered))
	assert.Len(t, delivered, 1)

	// Evaluación fuera de rango y resumen.
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/v1/evaluaciones/", coord,
		fiber.Map{"id_proyecto": projectID, "puntuacion": 150}, nil))
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/v1/evaluaciones/", coord,
		fiber.Map{"id_proyecto": projectID, "puntuacion": 80}, nil))
	var summary map[string]interface{}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/evaluaciones/proyecto/%d/resumen", projectID), student, nil, &summary))
	assert.EqualValues(t, 1, summary["total_evaluaciones"])

	// Reporte PDF.
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/proyectos/%d/reporte", projectID), nil)
	req.Header.Set("Authorization", "Bearer "+student)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), fmt.Sprintf("proyecto_%d.pdf", projectID))
	pdf, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
}

func TestRouter_NivelesDeAcceso(t *testing.T) {
	s := newServer(t)
	student, _ := s.signup(t, "ana", 2)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/roles", "", nil, nil))
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/proyectos/public", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/v1/users/", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/v1/proyectos/", "", nil, nil))
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/v1/proyectos/", student, nil, nil))
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/v1/dashboard/stats", student, nil, nil))
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/v1/postulaciones/pending", student, nil, nil))
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/v1/proyectos/999", "", nil, nil))
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/v1/proyectos/abc", "", nil, nil))

	var empty []interface{}
	require.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/postulaciones/", student, nil, &empty))
	assert.Empty(t, empty)
}

func TestRouter_AuthErrores(t *testing.T) {
	s := newServer(t)
	s.signup(t, "ana", 2)

	var e map[string]interface{}
	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"nombre": "ana", "email": "ana@softlink.test", "password": "secreto1", "id_rol": 2,
	}, &e))
	assert.Equal(t, "EMAIL_EXISTS", e["code"])

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/v1/auth/register", "", fiber.Map{
		"nombre": "x", "email": "no-es-email", "password": "123", "id_rol": 9,
	}, &e))
	assert.Equal(t, "VALIDATION", e["code"])

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email": "ana@softlink.test", "password": "incorrecta",
	}, nil))

	// Login por formulario username/password.
	form := url.Values{"username": {"ana@softlink.test"}, "password": {"secreto1"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	var login map[string]interface{}
	require.Equal(t, http.StatusOK, s.send(t, req, "", &login))
	assert.NotEmpty(t, login["access_token"])
	assert.Equal(t, 2, s.store.TokenCount())
}

func TestRouter_UploadImagen(t *testing.T) {
	s := newServer(t)
	student, studentID := s.signup(t, "ana", 2)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="file"; filename="Foto.JPG"`}
	h["Content-Type"] = []string{"image/jpeg"}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, _ = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	var out map[string]interface{}
	require.Equal(t, http.StatusOK, s.send(t, req, student, &out))
	assert.Equal(t, fmt.Sprintf("profile_%d.jpg", studentID), out["filename"])
	assert.True(t, s.files.Has(out["url"].(string)))
}

func TestRouter_CriterioPeso(t *testing.T) {
	s := newServer(t)
	coord, _ := s.signup(t, "coord", 1)

	var e map[string]interface{}
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/v1/criterios/", coord,
		fiber.Map{"nombre": "c", "peso": 99.996}, &e))
	assert.Equal(t, "INVALID_INPUT", e["code"])

	var c map[string]interface{}
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/v1/criterios/", coord,
		fiber.Map{"nombre": "c", "peso": 0}, &c))
	assert.Equal(t, "0", fmt.Sprint(c["peso"]))
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/v1/criterios/", coord,
		fiber.Map{"nombre": "d", "peso": 99.99}, &c))
	assert.Equal(t, "99.99", fmt.Sprint(c["peso"]))
}
