package usecase

import (
	"context"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

// NotificationUseCase notificaciones por usuario.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
}

func NewNotificationUseCase(notifications repository.NotificationRepository, users repository.UserRepository) *NotificationUseCase {
	return &NotificationUseCase{notifications: notifications, users: users}
}

func (uc *NotificationUseCase) Create(ctx context.Context, in dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	if _, err := found(uc.users.GetByID(ctx, in.UserID)); err != nil {
		return nil, err
	}
	n := &entity.Notification{UserID: in.UserID, Title: in.Title, Message: in.Message}
	if err := uc.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return toNotificationResponse(n), nil
}

func (uc *NotificationUseCase) ListMine(ctx context.Context, actor entity.Principal, limit, offset int) ([]dto.NotificationResponse, error) {
	list, err := uc.notifications.ListByUser(ctx, actor.UserID, limit, offset)
	if err != nil {
		return nil, err
	}
	return mapAll(list, toNotificationResponse), nil
}

// Update típicamente marcar como leída.
func (uc *NotificationUseCase) Update(ctx context.Context, actor entity.Principal, id int64, in dto.UpdateNotificationRequest) (*dto.NotificationResponse, error) {
	n, err := uc.get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		n.Title = *in.Title
	}
	if in.Message != nil {
		n.Message = *in.Message
	}
	if in.Read != nil {
		n.Read = *in.Read
	}
	if err := uc.notifications.Update(ctx, n); err != nil {
		return nil, err
	}
	return toNotificationResponse(n), nil
}

func (uc *NotificationUseCase) Delete(ctx context.Context, actor entity.Principal, id int64) (*dto.NotificationResponse, error) {
	if _, err := uc.get(ctx, actor, id); err != nil {
		return nil, err
	}
	n, err := found(uc.notifications.Delete(ctx, id))
	if err != nil {
		return nil, err
	}
	return toNotificationResponse(n), nil
}

func (uc *NotificationUseCase) get(ctx context.Context, actor entity.Principal, id int64) (*entity.Notification, error) {
	n, err := found(uc.notifications.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(n.UserID) {
		return nil, domain.ErrForbidden
	}
	return n, nil
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
		Read:      n.Read,
	}
}
