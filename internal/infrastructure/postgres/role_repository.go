package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

var (
	_ repository.RoleRepository  = (*RoleRepo)(nil)
	_ repository.TokenRepository = (*TokenRepo)(nil)
)

// RoleRepo catálogo de roles (sembrado por migración).
type RoleRepo struct {
	q Querier
}

func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

func scanRole(r rowScanner) (*entity.Role, error) {
	var role entity.Role
	if err := r.Scan(&role.ID, &role.Name, &role.Description); err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	rows, err := r.q.Query(ctx, `SELECT id_rol, nombre, descripcion FROM roles ORDER BY id_rol`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return collect(rows, scanRole, "list roles")
}

func (r *RoleRepo) GetByID(ctx context.Context, id int) (*entity.Role, error) {
	row := r.q.QueryRow(ctx, `SELECT id_rol, nombre, descripcion FROM roles WHERE id_rol = $1`, id)
	return scanOne(row, scanRole, "get role")
}

// TokenRepo registro de tokens emitidos en login.
type TokenRepo struct {
	q Querier
}

func NewTokenRepository(q Querier) *TokenRepo {
	return &TokenRepo{q: q}
}

// Create guarda el token; fecha_creacion la asigna la base.
func (r *TokenRepo) Create(ctx context.Context, t *entity.Token) error {
	query := `
		INSERT INTO tokens (id_usuario, token, tipo, fecha_expiracion)
		VALUES ($1, $2, $3, $4)
		RETURNING id_token, fecha_creacion`
	var created time.Time
	if err := r.q.QueryRow(ctx, query, t.UserID, t.Token, t.Type, t.ExpiresAt).Scan(&t.ID, &created); err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	t.CreatedAt = created
	return nil
}
