package memstore

import (
	"context"

	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

var (
	_ repository.CommentRepository      = (*commentRepo)(nil)
	_ repository.MessageRepository      = (*messageRepo)(nil)
	_ repository.NotificationRepository = (*notificationRepo)(nil)
	_ repository.AuditRepository        = (*auditRepo)(nil)
)

func commentsT(t *tables) *table[entity.Comment]           { return t.comments }
func messagesT(t *tables) *table[entity.Message]           { return t.messages }
func notificationsT(t *tables) *table[entity.Notification] { return t.notifications }
func auditsT(t *tables) *table[entity.Audit]               { return t.audits }

type commentRepo struct{ s *Store }

func (s *Store) Comments() repository.CommentRepository { return &commentRepo{s} }

func (r *commentRepo) Create(_ context.Context, c *entity.Comment) error {
	return create(r.s, "comments.create", commentsT, c, func(v *entity.Comment, id int64) {
		v.ID = id
		v.CreatedAt = r.s.now()
	})
}

func (r *commentRepo) GetByID(_ context.Context, id int64) (*entity.Comment, error) {
	return getByID(r.s, commentsT, id)
}

func (r *commentRepo) ListByProject(_ context.Context, projectID int64, limit, offset int) ([]*entity.Comment, error) {
	return listWhere(r.s, commentsT, func(x entity.Comment) bool { return x.ProjectID == projectID }, limit, offset)
}

func (r *commentRepo) Update(_ context.Context, c *entity.Comment) error {
	return update(r.s, "comments.update", commentsT, c.ID, c)
}

func (r *commentRepo) Delete(_ context.Context, id int64) (*entity.Comment, error) {
	return remove(r.s, "comments.delete", commentsT, id)
}

type messageRepo struct{ s *Store }

func (s *Store) Messages() repository.MessageRepository { return &messageRepo{s} }

func (r *messageRepo) Create(_ context.Context, m *entity.Message) error {
	return create(r.s, "messages.create", messagesT, m, func(v *entity.Message, id int64) {
		v.ID = id
		v.SentAt = r.s.now()
	})
}

func (r *messageRepo) GetByID(_ context.Context, id int64) (*entity.Message, error) {
	return getByID(r.s, messagesT, id)
}

func (r *messageRepo) ListByUser(_ context.Context, userID int64, limit, offset int) ([]*entity.Message, error) {
	return listWhere(r.s, messagesT, func(x entity.Message) bool {
		return (x.SenderID != nil && *x.SenderID == userID) || (x.RecipientID != nil && *x.RecipientID == userID)
	}, limit, offset)
}

func (r *messageRepo) Update(_ context.Context, m *entity.Message) error {
	return update(r.s, "messages.update", messagesT, m.ID, m)
}

func (r *messageRepo) Delete(_ context.Context, id int64) (*entity.Message, error) {
	return remove(r.s, "messages.delete", messagesT, id)
}

type notificationRepo struct{ s *Store }

func (s *Store) Notifications() repository.NotificationRepository { return &notificationRepo{s} }

func (r *notificationRepo) Create(_ context.Context, n *entity.Notification) error {
	return create(r.s, "notifications.create", notificationsT, n, func(v *entity.Notification, id int64) {
		v.ID = id
		v.CreatedAt = r.s.now()
	})
}

func (r *notificationRepo) GetByID(_ context.Context, id int64) (*entity.Notification, error) {
	return getByID(r.s, notificationsT, id)
}

func (r *notificationRepo) ListByUser(_ context.Context, userID int64, limit, offset int) ([]*entity.Notification, error) {
	return listWhere(r.s, notificationsT, func(x entity.Notification) bool { return x.UserID == userID }, limit, offset)
}

func (r *notificationRepo) Update(_ context.Context, n *entity.Notification) error {
	return update(r.s, "notifications.update", notificationsT, n.ID, n)
}

func (r *notificationRepo) Delete(_ context.Context, id int64) (*entity.Notification, error) {
	return remove(r.s, "notifications.delete", notificationsT, id)
}

type auditRepo struct{ s *Store }

func (s *Store) Audits() repository.AuditRepository { return &auditRepo{s} }

func (r *auditRepo) Create(_ context.Context, a *entity.Audit) error {
	return create(r.s, "audits.create", auditsT, a, func(v *entity.Audit, id int64) {
		v.ID = id
		v.CreatedAt = r.s.now()
	})
}

func (r *auditRepo) GetByID(_ context.Context, id int64) (*entity.Audit, error) {
	return getByID(r.s, auditsT, id)
}

func (r *auditRepo) List(_ context.Context, limit, offset int) ([]*entity.Audit, error) {
	return listWhere(r.s, auditsT, nil, limit, offset)
}

func (r *auditRepo) Delete(_ context.Context, id int64) (*entity.Audit, error) {
	return remove(r.s, "audits.delete", auditsT, id)
}
