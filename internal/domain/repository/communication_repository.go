package repository

import (
	"context"

	"github.com/softlink/softlink-api/internal/domain/entity"
)

// CommentRepository comentarios de proyectos.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id int64) (*entity.Comment, error)
	ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]*entity.Comment, error)
	Update(ctx context.Context, c *entity.Comment) error
	Delete(ctx context.Context, id int64) (*entity.Comment, error)
}

// MessageRepository mensajes directos.
type MessageRepository interface {
	Create(ctx context.Context, m *entity.Message) error
	GetByID(ctx context.Context, id int64) (*entity.Message, error)
	// ListByUser mensajes enviados o recibidos por el usuario.
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*entity.Message, error)
	Update(ctx context.Context, m *entity.Message) error
	Delete(ctx context.Context, id int64) (*entity.Message, error)
}

// NotificationRepository notificaciones de usuario.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByID(ctx context.Context, id int64) (*entity.Notification, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*entity.Notification, error)
	Update(ctx context.Context, n *entity.Notification) error
	Delete(ctx context.Context, id int64) (*entity.Notification, error)
}

// AuditRepository bitácora de auditoría.
type AuditRepository interface {
	Create(ctx context.Context, a *entity.Audit) error
	GetByID(ctx context.Context, id int64) (*entity.Audit, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Audit, error)
	Delete(ctx context.Context, id int64) (*entity.Audit, error)
}
