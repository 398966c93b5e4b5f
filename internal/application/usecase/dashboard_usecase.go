package usecase

import (
	"context"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

// dashboardPending cuántas iniciativas pendientes se muestran en el panel.
const dashboardPending = 5

// DashboardUseCase estadísticas del panel del coordinador.
type DashboardUseCase struct {
	users       repository.UserRepository
	initiatives repository.InitiativeRepository
}

func NewDashboardUseCase(users repository.UserRepository, initiatives repository.InitiativeRepository) *DashboardUseCase {
	return &DashboardUseCase{users: users, initiatives: initiatives}
}

func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	students, err := uc.users.CountByRole(ctx, entity.RoleStudent)
	if err != nil {
		return nil, err
	}
	companies, err := uc.users.CountByRole(ctx, entity.RoleCompany)
	if err != nil {
		return nil, err
	}
	pendingCount, err := uc.initiatives.CountByStatus(ctx, entity.InitiativePending)
	if err != nil {
		return nil, err
	}
	pending, err := uc.initiatives.List(ctx, repository.InitiativeFilter{Status: entity.InitiativePending}, dashboardPending, 0)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardStatsResponse{
		TotalStudents:           students,
		TotalCompanies:          companies,
		PendingInitiativesCount: pendingCount,
		PendingInitiatives:      mapAll(pending, toInitiativeResponse),
	}, nil
}
