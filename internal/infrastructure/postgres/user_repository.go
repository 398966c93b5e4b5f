package postgres

import (
	"context"
	"fmt"

	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id_usuario, nombre, email, password, telefono, github, tecnologias, foto, hoja_vida,
	bio, sitio_web, direccion, identificador_fiscal, id_rol, fecha_registro`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(r rowScanner) (*entity.User, error) {
	var u entity.User
	err := r.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Github, &u.Technologies, &u.Photo, &u.CV,
		&u.Bio, &u.Website, &u.Address, &u.TaxID, &u.RoleID, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario y completa ID y fecha de registro.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO usuarios (nombre, email, password, telefono, github, tecnologias, foto, hoja_vida,
			bio, sitio_web, direccion, identificador_fiscal, id_rol)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id_usuario, fecha_registro`
	err := r.q.QueryRow(ctx, query,
		u.Name, u.Email, u.PasswordHash, u.Phone, u.Github, u.Technologies, u.Photo, u.CV,
		u.Bio, u.Website, u.Address, u.TaxID, u.RoleID,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE id_usuario = $1`
	return scanOne(r.q.QueryRow(ctx, query, id), scanUser, "get user by id")
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE email = $1 LIMIT 1`
	return scanOne(r.q.QueryRow(ctx, query, email), scanUser, "get user by email")
}

// List lista usuarios, opcionalmente por rol.
func (r *UserRepo) List(ctx context.Context, roleID *int, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + ` FROM usuarios
		WHERE ($1::int IS NULL OR id_rol = $1)
		ORDER BY id_usuario LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, roleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return collect(rows, scanUser, "list users")
}

// Update reescribe los campos editables del usuario.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE usuarios SET nombre = $2, email = $3, password = $4, telefono = $5, github = $6,
			tecnologias = $7, foto = $8, hoja_vida = $9, bio = $10, sitio_web = $11, direccion = $12,
			identificador_fiscal = $13, id_rol = $14
		WHERE id_usuario = $1`
	tag, err := r.q.Exec(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Phone, u.Github, u.Technologies, u.Photo, u.CV,
		u.Bio, u.Website, u.Address, u.TaxID, u.RoleID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un usuario y devuelve la fila eliminada (nil si no existía).
func (r *UserRepo) Delete(ctx context.Context, id int64) (*entity.User, error) {
	query := `DELETE FROM usuarios WHERE id_usuario = $1 RETURNING ` + userColumns
	return scanOne(r.q.QueryRow(ctx, query, id), scanUser, "delete user")
}

// CountByRole cuenta usuarios con un rol.
func (r *UserRepo) CountByRole(ctx context.Context, roleID int) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM usuarios WHERE id_rol = $1`, roleID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return n, nil
}
