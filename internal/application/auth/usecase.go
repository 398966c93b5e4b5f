package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/application/usecase"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
	"github.com/softlink/softlink-api/pkg/jwt"
)

// Config configuración para generación de tokens y registro.
type Config struct {
	Secret                 string
	ExpMinutes             int
	Issuer                 string
	AllowCoordinatorSignup bool
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	cfg    Config
	now    func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, tokens repository.TokenRepository, cfg Config) *AuthUseCase {
	return &AuthUseCase{users: users, tokens: tokens, cfg: cfg, now: time.Now}
}

// Register crea un usuario: hashea password con bcrypt y persiste. ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.RoleID == entity.RoleCoordinator && !uc.cfg.AllowCoordinatorSignup {
		return nil, domain.ErrForbidden
	}
	email := strings.TrimSpace(in.Email)
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.RoleID
	user := &entity.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Github:       in.Github,
		Technologies: in.Technologies,
		Bio:          in.Bio,
		Website:      in.Website,
		Address:      in.Address,
		TaxID:        in.TaxID,
		RoleID:       &role,
	}
	// la unicidad final la garantiza el índice: Create devuelve ErrEmailAlreadyExists en carrera
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return usecase.ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT, registra el token y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.cfg.Secret, user.ID, user.Role(), uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if err := uc.tokens.Create(ctx, &entity.Token{
		UserID:    user.ID,
		Token:     token,
		Type:      entity.TokenTypeAuth,
		ExpiresAt: now.Add(time.Duration(uc.cfg.ExpMinutes) * time.Minute),
	}); err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		RoleID:      user.Role(),
		User:        *usecase.ToUserResponse(user),
	}, nil
}
