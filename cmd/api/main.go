package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/softlink/softlink-api/internal/application/auth"
	"github.com/softlink/softlink-api/internal/application/postulacion"
	"github.com/softlink/softlink-api/internal/application/report"
	"github.com/softlink/softlink-api/internal/application/usecase"
	"github.com/softlink/softlink-api/internal/infrastructure/metrics"
	infrapdf "github.com/softlink/softlink-api/internal/infrastructure/pdf"
	"github.com/softlink/softlink-api/internal/infrastructure/postgres"
	"github.com/softlink/softlink-api/internal/infrastructure/storage"
	httpRouter "github.com/softlink/softlink-api/internal/interfaces/http"
	"github.com/softlink/softlink-api/pkg/config"
	"github.com/softlink/softlink-api/pkg/logger"
	"github.com/softlink/softlink-api/pkg/validator"
)

const swaggerFile = "./docs/swagger.json"

// @title                       SoftLink API
// @version                     1.0
// @description                 Vinculación universidad-empresa: iniciativas, postulaciones, proyectos y evaluaciones.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// peso y promedio_ponderado salen como número JSON
	decimal.MarshalJSONWithoutQuotes = true

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	tokenRepo := postgres.NewTokenRepository(pool)
	initiativeRepo := postgres.NewInitiativeRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	postulacionRepo := postgres.NewPostulacionRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	linkRepo := postgres.NewProjectStudentRepository(pool)
	milestoneRepo := postgres.NewMilestoneRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	criterionRepo := postgres.NewCriterionRepository(pool)
	evaluationRepo := postgres.NewEvaluationRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	m := metrics.New()
	files := storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.StaticPrefix+"/uploads")

	authUC := auth.NewAuthUseCase(userRepo, tokenRepo, auth.Config{
		Secret:                 cfg.JWT.Secret,
		ExpMinutes:             cfg.JWT.Expiration,
		Issuer:                 cfg.JWT.Issuer,
		AllowCoordinatorSignup: cfg.Signup.AllowCoordinator,
	})

	// Reporte PDF del proyecto (estudiantes, hitos, evaluaciones)
	reportUC := report.NewUseCase(
		projectRepo, initiativeRepo, linkRepo, userRepo,
		milestoneRepo, evaluationRepo, criterionRepo,
		infrapdf.NewMarotoReportGenerator(),
	)

	deps := httpRouter.RouterDeps{
		AuthUC:          authUC,
		UserUC:          usecase.NewUserUseCase(userRepo, roleRepo),
		UploadUC:        usecase.NewUploadUseCase(userRepo, files),
		DashboardUC:     usecase.NewDashboardUseCase(userRepo, initiativeRepo),
		InitiativeUC:    usecase.NewInitiativeUseCase(initiativeRepo),
		DocumentUC:      usecase.NewDocumentUseCase(documentRepo, initiativeRepo, files),
		PostulacionUC:   postulacion.NewUseCase(postulacionRepo, initiativeRepo, txRunner, m),
		ProjectUC:       usecase.NewProjectUseCase(projectRepo, initiativeRepo),
		ProjectStudents: usecase.NewProjectStudentUseCase(linkRepo, projectRepo, userRepo),
		MilestoneUC:     usecase.NewMilestoneUseCase(milestoneRepo, projectRepo),
		DeliveryUC:      usecase.NewDeliveryUseCase(deliveryRepo, milestoneRepo, linkRepo, files),
		CriterionUC:     usecase.NewCriterionUseCase(criterionRepo),
		EvaluationUC:    usecase.NewEvaluationUseCase(evaluationRepo, criterionRepo, projectRepo),
		CommentUC:       usecase.NewCommentUseCase(commentRepo, projectRepo),
		MessageUC:       usecase.NewMessageUseCase(messageRepo, userRepo),
		NotificationUC:  usecase.NewNotificationUseCase(notificationRepo, userRepo),
		AuditUC:         usecase.NewAuditUseCase(auditRepo),
		ReportUC:        reportUC,
		Validator:       validator.New(),
		Users:           userRepo,
		JWTSecret:       cfg.JWT.Secret,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.HTTP.CORSOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))
	app.Use(httpRouter.RequestLogger(log.Zerolog()))
	app.Use(httpRouter.Instrument(m))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "SoftLink API",
		}))
	} else {
		log.Warn().Str("archivo", swaggerFile).Msg("swagger deshabilitado")
	}

	app.Static(cfg.Upload.StaticPrefix+"/uploads", cfg.Upload.Dir)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Bienvenido a la API de SoftLink", "docs": "/docs"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
