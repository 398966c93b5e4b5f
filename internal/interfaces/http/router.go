package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/softlink/softlink-api/internal/application/auth"
	"github.com/softlink/softlink-api/internal/application/postulacion"
	"github.com/softlink/softlink-api/internal/application/report"
	"github.com/softlink/softlink-api/internal/application/usecase"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/pkg/validator"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	UserUC          *usecase.UserUseCase
	UploadUC        *usecase.UploadUseCase
	DashboardUC     *usecase.DashboardUseCase
	InitiativeUC    *usecase.InitiativeUseCase
	DocumentUC      *usecase.DocumentUseCase
	PostulacionUC   *postulacion.UseCase
	ProjectUC       *usecase.ProjectUseCase
	ProjectStudents *usecase.ProjectStudentUseCase
	MilestoneUC     *usecase.MilestoneUseCase
	DeliveryUC      *usecase.DeliveryUseCase
	CriterionUC     *usecase.CriterionUseCase
	EvaluationUC    *usecase.EvaluationUseCase
	CommentUC       *usecase.CommentUseCase
	MessageUC       *usecase.MessageUseCase
	NotificationUC  *usecase.NotificationUseCase
	AuditUC         *usecase.AuditUseCase
	ReportUC        *report.UseCase
	Validator       *validator.Validator
	Users           UserLoader
	JWTSecret       string
}

// Router registra las rutas de la API bajo /api/v1.
// Los middlewares de auth se aplican por ruta: pública, autenticada (authn),
// solo coordinador (coord) o solo estudiante (student).
func Router(app *fiber.App, deps RouterDeps) {
	v := deps.Validator
	if v == nil {
		v = validator.New()
	}
	authn := AuthMiddleware(deps.JWTSecret, deps.Users)
	coord := []fiber.Handler{authn, RequireRole(entity.RoleCoordinator)}
	student := []fiber.Handler{authn, RequireRole(entity.RoleStudent)}

	api := app.Group("/api/v1")

	// Auth y roles (público)
	authHandler := NewAuthHandler(deps.AuthUC, v)
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)

	userHandler := NewUserHandler(deps.UserUC, deps.UploadUC, deps.DashboardUC, v)
	api.Get("/roles", userHandler.Roles)

	users := api.Group("/users")
	users.Get("/", authn, userHandler.List)
	users.Get("/me", authn, userHandler.Me)
	users.Put("/me", authn, userHandler.UpdateMe)
	users.Get("/:id", authn, userHandler.GetByID)
	users.Put("/:id", authn, userHandler.Update)
	users.Delete("/:id", with(coord, userHandler.Delete)...)

	upload := api.Group("/upload")
	upload.Post("/image", authn, userHandler.UploadImage)
	upload.Post("/document", authn, userHandler.UploadDocument)

	api.Get("/dashboard/stats", with(coord, userHandler.Stats)...)

	// Iniciativas y documentos
	initiativeHandler := NewInitiativeHandler(deps.InitiativeUC, deps.DocumentUC, v)
	postulacionHandler := NewPostulacionHandler(deps.PostulacionUC, v)
	initiatives := api.Group("/iniciativas")
	initiatives.Get("/", initiativeHandler.List)
	initiatives.Get("/:id", initiativeHandler.GetByID)
	initiatives.Post("/", authn, initiativeHandler.Create)
	initiatives.Put("/:id", authn, initiativeHandler.Update)
	initiatives.Delete("/:id", authn, initiativeHandler.Delete)
	initiatives.Get("/:id/postulaciones", authn, postulacionHandler.ListByInitiative)

	documents := api.Group("/documentos")
	documents.Get("/iniciativa/:id", authn, initiativeHandler.ListDocuments)
	documents.Get("/:id", authn, initiativeHandler.GetDocument)
	documents.Post("/", authn, initiativeHandler.UploadDocument)
	documents.Put("/:id", authn, initiativeHandler.UpdateDocument)
	documents.Delete("/:id", with(coord, initiativeHandler.DeleteDocument)...)

	// Postulaciones
	postulaciones := api.Group("/postulaciones")
	postulaciones.Post("/", with(student, postulacionHandler.Create)...)
	postulaciones.Get("/", authn, postulacionHandler.List)
	postulaciones.Get("/me", authn, postulacionHandler.ListMine)
	postulaciones.Get("/pending", with(coord, postulacionHandler.ListPending)...)
	postulaciones.Get("/:id", authn, postulacionHandler.GetByID)
	postulaciones.Put("/:id", with(coord, postulacionHandler.Update)...)
	postulaciones.Delete("/:id", authn, postulacionHandler.Delete)

	// Proyectos, hitos anidados, entregas y reporte
	projectHandler := NewProjectHandler(deps.ProjectUC, deps.ProjectStudents, deps.ReportUC, v)
	milestoneHandler := NewMilestoneHandler(deps.MilestoneUC, deps.DeliveryUC, v)
	projects := api.Group("/proyectos")
	projects.Get("/public", projectHandler.List)
	projects.Get("/me", authn, projectHandler.ListMine)
	projects.Get("/", with(coord, projectHandler.List)...)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Post("/", with(coord, projectHandler.Create)...)
	projects.Put("/:id", with(coord, projectHandler.Update)...)
	projects.Delete("/:id", with(coord, projectHandler.Delete)...)
	projects.Get("/:id/reporte", authn, projectHandler.Report)
	projects.Get("/:id/hitos", authn, milestoneHandler.ListByProject)
	projects.Post("/:id/hitos", with(coord, milestoneHandler.CreateForProject)...)
	projects.Get("/:id/hitos/:hito_id/entregas", authn, milestoneHandler.ListProjectDeliveries)
	projects.Post("/:id/hitos/:hito_id/entregas", with(student, milestoneHandler.Submit)...)

	links := api.Group("/proyectos-estudiantes")
	links.Get("/proyecto/:id", authn, projectHandler.ListStudents)
	links.Get("/estudiante/:id", authn, projectHandler.ListByStudent)
	links.Post("/", with(coord, projectHandler.Link)...)
	links.Put("/:project_id/:student_id", with(coord, projectHandler.UpdateLink)...)
	links.Delete("/:project_id/:student_id", with(coord, projectHandler.Unlink)...)

	milestones := api.Group("/hitos")
	milestones.Get("/proyecto/:id", authn, milestoneHandler.ListByProject)
	milestones.Get("/:id", authn, milestoneHandler.GetByID)
	milestones.Post("/", with(coord, milestoneHandler.Create)...)
	milestones.Put("/:id", with(coord, milestoneHandler.Update)...)
	milestones.Delete("/:id", with(coord, milestoneHandler.Delete)...)

	deliveries := api.Group("/entregas")
	deliveries.Get("/hito/:id", authn, milestoneHandler.ListDeliveries)
	deliveries.Get("/:id", authn, milestoneHandler.GetDelivery)
	deliveries.Put("/:id", authn, milestoneHandler.UpdateDelivery)
	deliveries.Delete("/:id", authn, milestoneHandler.DeleteDelivery)

	// Criterios y evaluaciones
	evaluationHandler := NewEvaluationHandler(deps.CriterionUC, deps.EvaluationUC, v)
	criteria := api.Group("/criterios")
	criteria.Get("/", authn, evaluationHandler.ListCriteria)
	criteria.Get("/:id", authn, evaluationHandler.GetCriterion)
	criteria.Post("/", with(coord, evaluationHandler.CreateCriterion)...)
	criteria.Put("/:id", with(coord, evaluationHandler.UpdateCriterion)...)
	criteria.Delete("/:id", with(coord, evaluationHandler.DeleteCriterion)...)

	evaluations := api.Group("/evaluaciones")
	evaluations.Get("/proyecto/:id", authn, evaluationHandler.ListByProject)
	evaluations.Get("/proyecto/:id/resumen", authn, evaluationHandler.Summary)
	evaluations.Get("/:id", authn, evaluationHandler.GetByID)
	evaluations.Post("/", with(coord, evaluationHandler.Create)...)
	evaluations.Put("/:id", with(coord, evaluationHandler.Update)...)
	evaluations.Delete("/:id", with(coord, evaluationHandler.Delete)...)

	// Comunicación y auditoría
	comm := NewCommunicationHandler(deps.CommentUC, deps.MessageUC, deps.NotificationUC, deps.AuditUC, v)
	comments := api.Group("/comentarios", authn)
	comments.Get("/proyecto/:id", comm.ListComments)
	comments.Get("/:id", comm.GetComment)
	comments.Post("/", comm.CreateComment)
	comments.Put("/:id", comm.UpdateComment)
	comments.Delete("/:id", comm.DeleteComment)

	messages := api.Group("/mensajes", authn)
	messages.Get("/me", comm.ListMessages)
	messages.Get("/:id", comm.GetMessage)
	messages.Post("/", comm.SendMessage)
	messages.Put("/:id", comm.UpdateMessage)
	messages.Delete("/:id", comm.DeleteMessage)

	notifications := api.Group("/notificaciones", authn)
	notifications.Get("/me", comm.ListNotifications)
	notifications.Post("/", comm.CreateNotification)
	notifications.Put("/:id", comm.UpdateNotification)
	notifications.Delete("/:id", comm.DeleteNotification)

	audits := api.Group("/auditoria", coord...)
	audits.Get("/", comm.ListAudits)
	audits.Get("/:id", comm.GetAudit)
	audits.Post("/", comm.CreateAudit)
	audits.Delete("/:id", comm.DeleteAudit)
}

// with antepone la cadena de middlewares al handler final.
func with(chain []fiber.Handler, h fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(chain)+1)
	return append(append(out, chain...), h)
}
