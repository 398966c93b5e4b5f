package entity

import "time"

// Comment comentario de un usuario sobre un proyecto.
type Comment struct {
	ID        int64
	UserID    int64
	ProjectID int64
	Content   string
	CreatedAt time.Time
}

// Message mensaje directo entre usuarios. Remitente/destinatario quedan en nil si se eliminan.
type Message struct {
	ID          int64
	SenderID    *int64
	RecipientID *int64
	Subject     string
	Content     string
	SentAt      time.Time
	Read        bool
}

// Notification aviso dirigido a un usuario.
type Notification struct {
	ID        int64
	UserID    int64
	Title     string
	Message   string
	CreatedAt time.Time
	Read      bool
}

// Audit registro de auditoría de una acción sobre una tabla.
type Audit struct {
	ID        int64
	Table     string
	Action    string
	UserID    *int64
	CreatedAt time.Time
	Details   string
}
