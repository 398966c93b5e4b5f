// seed crea la cuenta inicial de coordinador. Si el email ya existe no hace nada.
//
// Uso: go run ./cmd/seed <email> <password> [nombre]
// Usa la misma configuración (DB_*, DATABASE_URL) que la API y aplica migraciones si DB_AUTO_MIGRATE=true.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/softlink/softlink-api/internal/application/auth"
	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/infrastructure/postgres"
	"github.com/softlink/softlink-api/pkg/config"
	"github.com/softlink/softlink-api/pkg/logger"
	"github.com/softlink/softlink-api/pkg/validator"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "uso: seed <email> <password> [nombre]")
		os.Exit(2)
	}
	in := dto.RegisterRequest{
		Name:     "Coordinador",
		Email:    os.Args[1],
		Password: os.Args[2],
		RoleID:   entity.RoleCoordinator,
	}
	if len(os.Args) > 3 {
		in.Name = os.Args[3]
	}
	if err := validator.New().Validate(&in); err != nil {
		fmt.Fprintf(os.Stderr, "datos inválidos: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), postgres.NewTokenRepository(pool), auth.Config{
		Secret:                 cfg.JWT.Secret,
		ExpMinutes:             cfg.JWT.Expiration,
		Issuer:                 cfg.JWT.Issuer,
		AllowCoordinatorSignup: true,
	})
	user, err := uc.Register(ctx, in)
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Str("email", in.Email).Msg("coordinador ya existe, nada que hacer")
	case err != nil:
		log.Fatal().Err(err).Msg("crear coordinador")
	default:
		log.Info().Int64("id_usuario", user.ID).Str("email", user.Email).Msg("coordinador creado")
	}
}
