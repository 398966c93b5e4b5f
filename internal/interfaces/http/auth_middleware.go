package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/pkg/jwt"
)

// Locals keys del usuario autenticado en Fiber.
const (
	LocalUserID = "user_id"
	LocalRoleID = "id_rol"
)

// UserLoader recarga el usuario del token; lo implementa repository.UserRepository.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token JWT, recarga el usuario de la base y deja
// UserID y RoleID en c.Locals. Cualquier fallo responde 401.
func AuthMiddleware(jwtSecret string, users UserLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "MISSING_TOKEN", "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized(c, "MISSING_TOKEN", "token vacío")
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return unauthorized(c, "INVALID_TOKEN", "token inválido o expirado")
		}
		user, err := users.GetByID(c.UserContext(), claims.UserID)
		if err != nil {
			log.Error().Err(err).Int64("id_usuario", claims.UserID).Msg("auth: recargar usuario")
			return unauthorized(c, "INVALID_TOKEN", "no se pudo validar las credenciales")
		}
		if user == nil {
			return unauthorized(c, "INVALID_TOKEN", "usuario del token no existe")
		}
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalRoleID, user.Role())
		return c.Next()
	}
}

// RequireRole permite el paso solo a los roles indicados. Debe ir DESPUÉS de AuthMiddleware.
//   - 401 si no hay usuario en el contexto.
//   - 403 FORBIDDEN si el rol no está permitido.
func RequireRole(roles ...int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := principal(c)
		if !ok {
			return unauthorized(c, "UNAUTHORIZED", "usuario no autenticado")
		}
		for _, r := range roles {
			if p.RoleID == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "rol sin permiso para este recurso",
		})
	}
}

// GetPrincipal devuelve el usuario autenticado (después del middleware de auth).
func GetPrincipal(c *fiber.Ctx) entity.Principal {
	p, _ := principal(c)
	return p
}

// GetUserID devuelve el id del usuario autenticado o 0.
func GetUserID(c *fiber.Ctx) int64 {
	return GetPrincipal(c).UserID
}

func principal(c *fiber.Ctx) (entity.Principal, bool) {
	id, ok := c.Locals(LocalUserID).(int64)
	if !ok || id == 0 {
		return entity.Principal{}, false
	}
	role, _ := c.Locals(LocalRoleID).(int)
	return entity.Principal{UserID: id, RoleID: role}, true
}

func unauthorized(c *fiber.Ctx, code, msg string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
