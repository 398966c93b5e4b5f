package repository

import (
	"context"

	"github.com/softlink/softlink-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// GetByID/GetByEmail devuelven (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, roleID *int, limit, offset int) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int64) (*entity.User, error)
	CountByRole(ctx context.Context, roleID int) (int, error)
}

// RoleRepository catálogo de roles.
type RoleRepository interface {
	List(ctx context.Context) ([]*entity.Role, error)
	GetByID(ctx context.Context, id int) (*entity.Role, error)
}

// TokenRepository registro de tokens emitidos.
type TokenRepository interface {
	Create(ctx context.Context, token *entity.Token) error
}
