package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func pgErr(code string) error { return &pgconn.PgError{Code: code} }

// anyArgs acepta n parámetros cualesquiera.
func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestUserRepo_Create_AsignaID(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()
	role := entity.RoleStudent

	u := &entity.User{Name: "Ana", Email: "ana@softlink.test", PasswordHash: "hash", RoleID: &role}
	mock.ExpectQuery(`INSERT INTO usuarios`).
		WithArgs("Ana", "ana@softlink.test", "hash", "", "", "", "", "", "", "", "", "", &role).
		WillReturnRows(pgxmock.NewRows([]string{"id_usuario", "fecha_registro"}).AddRow(int64(7), now))

	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, now, u.CreatedAt)
}

func TestUserRepo_Create_EmailDuplicado(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`INSERT INTO usuarios`).
		WithArgs(anyArgs(13)...).
		WillReturnError(pgErr(codeUniqueViolation))

	err := repo.Create(context.Background(), &entity.User{Email: "ana@softlink.test"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserRepo_GetByID_NoExiste(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM usuarios WHERE id_usuario = \$1`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	u, err := repo.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepo_Update_SinFilas(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(`UPDATE usuarios SET`).
		WithArgs(int64(3), "", "x@softlink.test", "", "", "", "", "", "", "", "", "", "", (*int)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &entity.User{ID: 3, Email: "x@softlink.test"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_CountByRole_FiltraRol(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM usuarios WHERE id_rol = \$1`).
		WithArgs(entity.RoleCompany).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.CountByRole(context.Background(), entity.RoleCompany)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestProjectStudentRepo_Attach_SinDuplicar(t *testing.T) {
	mock := newMock(t)
	repo := NewProjectStudentRepository(mock)
	link := &entity.ProjectStudent{ProjectID: 1, StudentID: 2, Role: entity.DefaultProjectRole}

	mock.ExpectQuery(`ON CONFLICT \(id_proyecto, id_estudiante\) DO NOTHING`).
		WithArgs(int64(1), int64(2), entity.DefaultProjectRole).
		WillReturnRows(pgxmock.NewRows([]string{"id_proyecto"}).AddRow(int64(1)))
	created, err := repo.Attach(context.Background(), link)
	require.NoError(t, err)
	assert.True(t, created)

	// Segundo intento: ON CONFLICT DO NOTHING no devuelve filas.
	mock.ExpectQuery(`ON CONFLICT \(id_proyecto, id_estudiante\) DO NOTHING`).
		WithArgs(int64(1), int64(2), entity.DefaultProjectRole).
		WillReturnError(pgx.ErrNoRows)
	created, err = repo.Attach(context.Background(), link)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestProjectStudentRepo_Attach_ProyectoInexistente(t *testing.T) {
	mock := newMock(t)
	repo := NewProjectStudentRepository(mock)

	mock.ExpectQuery(`INSERT INTO proyectos_estudiantes`).
		WithArgs(int64(9), int64(2), "").
		WillReturnError(pgErr(codeForeignKeyViolation))

	_, err := repo.Attach(context.Background(), &entity.ProjectStudent{ProjectID: 9, StudentID: 2})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInitiativeRepo_GetForUpdate_BloqueaFila(t *testing.T) {
	mock := newMock(t)
	repo := NewInitiativeRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`FROM iniciativas WHERE id_iniciativa = \$1 FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id_iniciativa", "nombre", "descripcion", "categoria", "impacto", "estado", "id_usuario", "fecha_creacion",
		}).AddRow(int64(5), "Reciclaje", "Rutas", "ambiente", "alto", entity.InitiativePending, int64(2), now))

	in, err := repo.GetForUpdate(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, in)
	assert.Equal(t, "Reciclaje", in.Name)
	assert.Equal(t, entity.InitiativePending, in.Status)
	assert.Equal(t, int64(2), in.UserID)
}

func TestInitiativeRepo_List_Filtros(t *testing.T) {
	mock := newMock(t)
	repo := NewInitiativeRepository(mock)

	mock.ExpectQuery(`FROM iniciativas\s+WHERE \(\$1 = '' OR estado = \$1\)`).
		WithArgs(entity.InitiativePending, (*int64)(nil), 100, 0).
		WillReturnRows(pgxmock.NewRows([]string{
			"id_iniciativa", "nombre", "descripcion", "categoria", "impacto", "estado", "id_usuario", "fecha_creacion",
		}).
			AddRow(int64(1), "A", "", "", "", entity.InitiativePending, int64(2), time.Now()).
			AddRow(int64(2), "B", "", "", "", entity.InitiativePending, int64(2), time.Now()))

	list, err := repo.List(context.Background(), repository.InitiativeFilter{Status: entity.InitiativePending}, 100, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestPostulacionRepo_Create_Duplicada(t *testing.T) {
	mock := newMock(t)
	repo := NewPostulacionRepository(mock)

	mock.ExpectQuery(`INSERT INTO postulaciones`).
		WithArgs(int64(1), int64(2), "", "").
		WillReturnError(pgErr(codeUniqueViolation))

	err := repo.Create(context.Background(), &entity.Postulacion{InitiativeID: 1, StudentID: 2})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestEvaluationRepo_Create_PuntuacionFueraDeRango(t *testing.T) {
	mock := newMock(t)
	repo := NewEvaluationRepository(mock)

	mock.ExpectQuery(`INSERT INTO evaluaciones`).
		WithArgs(int64(1), (*int64)(nil), (*int64)(nil), 150, "").
		WillReturnError(pgErr(codeCheckViolation))

	err := repo.Create(context.Background(), &entity.Evaluation{ProjectID: 1, Score: 150})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRepo_ErrorDeConexion(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	boom := errors.New("conexión cerrada")

	mock.ExpectQuery(`FROM usuarios`).
		WithArgs((*int)(nil), 10, 0).
		WillReturnError(boom)

	_, err := repo.List(context.Background(), nil, 10, 0)
	assert.ErrorIs(t, err, boom)
}

func TestCriterionRepo_PesoDesbordado(t *testing.T) {
	mock := newMock(t)
	repo := NewCriterionRepository(mock)
	c := &entity.Criterion{ID: 4, Name: "Calidad", Weight: decimal.NewFromInt(100)}

	mock.ExpectQuery(`INSERT INTO criterios`).
		WithArgs("Calidad", "", pgxmock.AnyArg()).
		WillReturnError(pgErr(codeNumericOutOfRange))
	assert.ErrorIs(t, repo.Create(context.Background(), c), domain.ErrInvalidInput)

	mock.ExpectExec(`UPDATE criterios SET`).
		WithArgs(int64(4), "Calidad", "", pgxmock.AnyArg()).
		WillReturnError(pgErr(codeNumericOutOfRange))
	assert.ErrorIs(t, repo.Update(context.Background(), c), domain.ErrInvalidInput)
}
