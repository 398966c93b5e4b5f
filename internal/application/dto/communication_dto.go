package dto

import "time"

// CreateCommentRequest comentario sobre un proyecto; el autor es quien lo crea.
type CreateCommentRequest struct {
	ProjectID int64  `json:"id_proyecto" validate:"required,gt=0"`
	Content   string `json:"contenido" validate:"required,min=1"`
}

// UpdateCommentRequest edición del contenido.
type UpdateCommentRequest struct {
	Content *string `json:"contenido" validate:"omitempty,min=1"`
}

// CommentResponse salida de un comentario.
type CommentResponse struct {
	ID        int64     `json:"id_comentario"`
	UserID    int64     `json:"id_usuario"`
	ProjectID int64     `json:"id_proyecto"`
	Content   string    `json:"contenido"`
	CreatedAt time.Time `json:"fecha"`
}

// CreateMessageRequest mensaje directo; el remitente es quien lo envía.
type CreateMessageRequest struct {
	RecipientID int64  `json:"id_destinatario" validate:"required,gt=0"`
	Subject     string `json:"asunto" validate:"omitempty,max=150"`
	Content     string `json:"contenido" validate:"required,min=1"`
}

// UpdateMessageRequest actualización parcial (p. ej. marcar leído).
type UpdateMessageRequest struct {
	Subject *string `json:"asunto" validate:"omitempty,max=150"`
	Content *string `json:"contenido" validate:"omitempty,min=1"`
	Read    *bool   `json:"leido"`
}

// MessageResponse salida de un mensaje.
type MessageResponse struct {
	ID          int64     `json:"id_mensaje"`
	SenderID    *int64    `json:"id_remitente"`
	RecipientID *int64    `json:"id_destinatario"`
	Subject     string    `json:"asunto"`
	Content     string    `json:"contenido"`
	SentAt      time.Time `json:"fecha_envio"`
	Read        bool      `json:"leido"`
}

// CreateNotificationRequest notificación para un usuario.
type CreateNotificationRequest struct {
	UserID  int64  `json:"id_usuario" validate:"required,gt=0"`
	Title   string `json:"titulo" validate:"required,min=1,max=150"`
	Message string `json:"mensaje"`
}

// UpdateNotificationRequest actualización parcial.
type UpdateNotificationRequest struct {
	Title   *string `json:"titulo" validate:"omitempty,min=1,max=150"`
	Message *string `json:"mensaje"`
	Read    *bool   `json:"leido"`
}

// NotificationResponse salida de una notificación.
type NotificationResponse struct {
	ID        int64     `json:"id_notificacion"`
	UserID    int64     `json:"id_usuario"`
	Title     string    `json:"titulo"`
	Message   string    `json:"mensaje"`
	CreatedAt time.Time `json:"fecha"`
	Read      bool      `json:"leido"`
}

// CreateAuditRequest registro manual de auditoría.
type CreateAuditRequest struct {
	Table   string `json:"tabla_afectada" validate:"required,min=1,max=50"`
	Action  string `json:"accion" validate:"required,min=1,max=50"`
	UserID  *int64 `json:"id_usuario" validate:"omitempty,gt=0"`
	Details string `json:"detalles"`
}

// AuditResponse salida de un registro de auditoría.
type AuditResponse struct {
	ID        int64     `json:"id_log"`
	Table     string    `json:"tabla_afectada"`
	Action    string    `json:"accion"`
	UserID    *int64    `json:"id_usuario"`
	CreatedAt time.Time `json:"fecha"`
	Details   string    `json:"detalles"`
}
