package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/testutil/memstore"
	"github.com/softlink/softlink-api/pkg/jwt"
)

const testSecret = "test-secret"

func newAuth(allowCoordinator bool) (*AuthUseCase, *memstore.Store) {
	s := memstore.New()
	uc := NewAuthUseCase(s.Users(), s.Tokens(), Config{
		Secret:                 testSecret,
		ExpMinutes:             60,
		Issuer:                 "softlink-test",
		AllowCoordinatorSignup: allowCoordinator,
	})
	return uc, s
}

func TestAuthUseCase_RegistroYLogin(t *testing.T) {
	uc, s := newAuth(true)
	ctx := context.Background()

	user, err := uc.Register(ctx, dto.RegisterRequest{
		Name: "Ana", Email: "ana@uni.edu", Password: "secreto1", RoleID: entity.RoleStudent,
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@uni.edu", user.Email)
	assert.Equal(t, entity.RoleStudent, *user.RoleID)

	stored, _ := s.Users().GetByEmail(ctx, "ana@uni.edu")
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto1", stored.PasswordHash)

	_, err = uc.Register(ctx, dto.RegisterRequest{Name: "Ana 2", Email: "ana@uni.edu", Password: "otro123", RoleID: entity.RoleStudent})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@uni.edu", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", out.TokenType)
	assert.Equal(t, entity.RoleStudent, out.RoleID)
	assert.Equal(t, user.ID, out.User.ID)
	assert.Equal(t, 1, s.TokenCount())

	claims, err := jwt.Parse(testSecret, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, entity.RoleStudent, claims.RoleID)
}

func TestAuthUseCase_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth(true)
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{Name: "Ana", Email: "ana@uni.edu", Password: "secreto1", RoleID: entity.RoleStudent})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@uni.edu", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@uni.edu", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthUseCase_RegistroDeCoordinadorRestringido(t *testing.T) {
	closed, _ := newAuth(false)
	_, err := closed.Register(context.Background(), dto.RegisterRequest{Name: "C", Email: "c@uni.edu", Password: "secreto1", RoleID: entity.RoleCoordinator})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	open, _ := newAuth(true)
	u, err := open.Register(context.Background(), dto.RegisterRequest{Name: "C", Email: "c@uni.edu", Password: "secreto1", RoleID: entity.RoleCoordinator})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCoordinator, *u.RoleID)
}
