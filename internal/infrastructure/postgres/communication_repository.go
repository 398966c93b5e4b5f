package postgres

import (
	"context"
	"fmt"

	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

var (
	_ repository.CommentRepository      = (*CommentRepo)(nil)
	_ repository.MessageRepository      = (*MessageRepo)(nil)
	_ repository.NotificationRepository = (*NotificationRepo)(nil)
	_ repository.AuditRepository        = (*AuditRepo)(nil)
)

const (
	commentColumns      = `id_comentario, id_usuario, id_proyecto, contenido, fecha`
	messageColumns      = `id_mensaje, id_remitente, id_destinatario, asunto, contenido, fecha_envio, leido`
	notificationColumns = `id_notificacion, id_usuario, titulo, mensaje, fecha, leido`
	auditColumns        = `id_log, tabla_afectada, accion, id_usuario, fecha, detalles`
)

// ── Comentarios ───────────────────────────────────────────────────────────────

type CommentRepo struct {
	q Querier
}

func NewCommentRepository(q Querier) *CommentRepo {
	return &CommentRepo{q: q}
}

func scanComment(r rowScanner) (*entity.Comment, error) {
	var c entity.Comment
	if err := r.Scan(&c.ID, &c.UserID, &c.ProjectID, &c.Content, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepo) Create(ctx context.Context, c *entity.Comment) error {
	query := `
		INSERT INTO comentarios (id_usuario, id_proyecto, contenido)
		VALUES ($1, $2, $3) RETURNING id_comentario, fecha`
	if err := r.q.QueryRow(ctx, query, c.UserID, c.ProjectID, c.Content).Scan(&c.ID, &c.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *CommentRepo) GetByID(ctx context.Context, id int64) (*entity.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comentarios WHERE id_comentario = $1`
	return scanOne(r.q.QueryRow(ctx, query, id), scanComment, "get comment")
}

func (r *CommentRepo) ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]*entity.Comment, error) {
	query := `
		SELECT ` + commentColumns + ` FROM comentarios
		WHERE id_proyecto = $1 ORDER BY fecha, id_comentario LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return collect(rows, scanComment, "list comments")
}

func (r *CommentRepo) Update(ctx context.Context, c *entity.Comment) error {
	tag, err := r.q.Exec(ctx, `UPDATE comentarios SET contenido = $2 WHERE id_comentario = $1`, c.ID, c.Content)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CommentRepo) Delete(ctx context.Context, id int64) (*entity.Comment, error) {
	query := `DELETE FROM comentarios WHERE id_comentario = $1 RETURNING ` + commentColumns
	return scanOne(r.q.QueryRow(ctx, query, id), scanComment, "delete comment")
}

// ── Mensajes ──────────────────────────────────────────────────────────────────

type MessageRepo struct {
	q Querier
}

func NewMessageRepository(q Querier) *MessageRepo {
	return &MessageRepo{q: q}
}

func scanMessage(r rowScanner) (*entity.Message, error) {
	var m entity.Message
	if err := r.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Subject, &m.Content, &m.SentAt, &m.Read); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MessageRepo) Create(ctx context.Context, m *entity.Message) error {
	query := `
		INSERT INTO mensajes (id_remitente, id_destinatario, asunto, contenido, leido)
		VALUES ($1, $2, $3, $4, $5) RETURNING id_mensaje, fecha_envio`
	err := r.q.QueryRow(ctx, query, m.SenderID, m.RecipientID, m.Subject, m.Content, m.Read).Scan(&m.ID, &m.SentAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *MessageRepo) GetByID(ctx context.Context, id int64) (*entity.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM mensajes WHERE id_mensaje = $1`
	return scanOne(r.q.QueryRow(ctx, query, id), scanMessage, "get message")
}

func (r *MessageRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*entity.Message, error) {
	query := `
		SELECT ` + messageColumns + ` FROM mensajes
		WHERE id_remitente = $1 OR id_destinatario = $1
		ORDER BY fecha_envio DESC, id_mensaje DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return collect(rows, scanMessage, "list messages")
}

func (r *MessageRepo) Update(ctx context.Context, m *entity.Message) error {
	tag, err := r.q.Exec(ctx, `UPDATE mensajes SET asunto = $2, contenido = $3, leido = $4 WHERE id_mensaje = $1`,
		m.ID, m.Subject, m.Content, m.Read)
	if err != nil {
		return fmt.Errorf("update message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MessageRepo) Delete(ctx context.Context, id int64) (*entity.Message, error) {
	query := `DELETE FROM mensajes WHERE id_mensaje = $1 RETURNING ` + messageColumns
	return scanOne(r.q.QueryRow(ctx, query, id), scanMessage, "delete message")
}

// ── Notificaciones ────────────────────────────────────────────────────────────

type NotificationRepo struct {
	q Querier
}

func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

func scanNotification(r rowScanner) (*entity.Notification, error) {
	var n entity.Notification
	if err := r.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.CreatedAt, &n.Read); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notificaciones (id_usuario, titulo, mensaje, leido)
		VALUES ($1, $2, $3, $4) RETURNING id_notificacion, fecha`
	if err := r.q.QueryRow(ctx, query, n.UserID, n.Title, n.Message, n.Read).Scan(&n.ID, &n.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepo) GetByID(ctx context.Context, id int64) (*entity.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notificaciones WHERE id_notificacion = $1`
	return scanOne(r.q.QueryRow(ctx, query, id), scanNotification, "get notification")
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT ` + notificationColumns + ` FROM notificaciones
		WHERE id_usuario = $1 ORDER BY fecha DESC, id_notificacion DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return collect(rows, scanNotification, "list notifications")
}

func (r *NotificationRepo) Update(ctx context.Context, n *entity.Notification) error {
	tag, err := r.q.Exec(ctx, `UPDATE notificaciones SET titulo = $2, mensaje = $3, leido = $4 WHERE id_notificacion = $1`,
		n.ID, n.Title, n.Message, n.Read)
	if err != nil {
		return fmt.Errorf("update notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *NotificationRepo) Delete(ctx context.Context, id int64) (*entity.Notification, error) {
	query := `DELETE FROM notificaciones WHERE id_notificacion = $1 RETURNING ` + notificationColumns
	return scanOne(r.q.QueryRow(ctx, query, id), scanNotification, "delete notification")
}

// ── Auditoría ─────────────────────────────────────────────────────────────────

type AuditRepo struct {
	q Querier
}

func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

func scanAudit(r rowScanner) (*entity.Audit, error) {
	var a entity.Audit
	if err := r.Scan(&a.ID, &a.Table, &a.Action, &a.UserID, &a.CreatedAt, &a.Details); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AuditRepo) Create(ctx context.Context, a *entity.Audit) error {
	query := `
		INSERT INTO auditoria (tabla_afectada, accion, id_usuario, detalles)
		VALUES ($1, $2, $3, $4) RETURNING id_log, fecha`
	if err := r.q.QueryRow(ctx, query, a.Table, a.Action, a.UserID, a.Details).Scan(&a.ID, &a.CreatedAt); err != nil {
		return fmt.Errorf("insert audit: %w", err)
	}
	return nil
}

func (r *AuditRepo) GetByID(ctx context.Context, id int64) (*entity.Audit, error) {
	query := `SELECT ` + auditColumns + ` FROM auditoria WHERE id_log = $1`
	return scanOne(r.q.QueryRow(ctx, query, id), scanAudit, "get audit")
}

func (r *AuditRepo) List(ctx context.Context, limit, offset int) ([]*entity.Audit, error) {
	query := `SELECT ` + auditColumns + ` FROM auditoria ORDER BY fecha DESC, id_log DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audits: %w", err)
	}
	return collect(rows, scanAudit, "list audits")
}

func (r *AuditRepo) Delete(ctx context.Context, id int64) (*entity.Audit, error) {
	query := `DELETE FROM auditoria WHERE id_log = $1 RETURNING ` + auditColumns
	return scanOne(r.q.QueryRow(ctx, query, id), scanAudit, "delete audit")
}
