package usecase

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios y roles.
type UserUseCase struct {
	users repository.UserRepository
	roles repository.RoleRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(users repository.UserRepository, roles repository.RoleRepository) *UserUseCase {
	return &UserUseCase{users: users, roles: roles}
}

// List lista usuarios, opcionalmente filtrando por rol.
func (uc *UserUseCase) List(ctx context.Context, roleID *int, limit, offset int) ([]dto.UserResponse, error) {
	list, err := uc.users.List(ctx, roleID, limit, offset)
	if err != nil {
		return nil, err
	}
	return mapAll(list, ToUserResponse), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := found(uc.users.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

// Update actualiza el perfil. Solo el propio usuario o un coordinador; el rol solo lo cambia un coordinador.
func (uc *UserUseCase) Update(ctx context.Context, actor entity.Principal, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !actor.CanManage(id) {
		return nil, domain.ErrForbidden
	}
	u, err := found(uc.users.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if in.RoleID != nil && !actor.IsCoordinator() {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Github != nil {
		u.Github = *in.Github
	}
	if in.Technologies != nil {
		u.Technologies = *in.Technologies
	}
	if in.Photo != nil {
		u.Photo = *in.Photo
	}
	if in.CV != nil {
		u.CV = *in.CV
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if in.Website != nil {
		u.Website = *in.Website
	}
	if in.Address != nil {
		u.Address = *in.Address
	}
	if in.TaxID != nil {
		u.TaxID = *in.TaxID
	}
	if in.RoleID != nil {
		role := *in.RoleID
		u.RoleID = &role
	}
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

// Delete elimina un usuario y devuelve su estado previo.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := found(uc.users.Delete(ctx, id))
	if err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

// Roles lista el catálogo de roles.
func (uc *UserUseCase) Roles(ctx context.Context) ([]dto.RoleResponse, error) {
	list, err := uc.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(list, func(r *entity.Role) *dto.RoleResponse {
		return &dto.RoleResponse{ID: r.ID, Name: r.Name, Description: r.Description}
	}), nil
}

// ToUserResponse mapea la entidad a la salida pública (sin hash de password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Github:       u.Github,
		Technologies: u.Technologies,
		Photo:        u.Photo,
		CV:           u.CV,
		Bio:          u.Bio,
		Website:      u.Website,
		Address:      u.Address,
		TaxID:        u.TaxID,
		RoleID:       u.RoleID,
		CreatedAt:    u.CreatedAt,
	}
}
