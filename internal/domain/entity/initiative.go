package entity

import "time"

// Estados de una iniciativa.
const (
	InitiativePending    = "pendiente"
	InitiativeApproved   = "aprobada"
	InitiativeInProgress = "en_progreso"
	InitiativeFinished   = "finalizada"
	InitiativeRejected   = "rechazada"
)

// Initiative propuesta publicada por una empresa o estudiante.
type Initiative struct {
	ID          int64
	Name        string
	Description string
	Category    string
	Impact      string
	Status      string
	UserID      int64 // dueño
	CreatedAt   time.Time
}

// InitiativeDocument archivo adjunto a una iniciativa.
type InitiativeDocument struct {
	ID           int64
	InitiativeID int64
	FileName     string
	Path         string // URL pública del archivo
	Type         string
}
