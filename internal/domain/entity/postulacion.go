package entity

import "time"

// Estados de una postulación.
const (
	PostulacionPending  = "pendiente"
	PostulacionAccepted = "aceptada"
	PostulacionRejected = "rechazada"
)

// Postulacion solicitud de un estudiante para trabajar en una iniciativa.
// La unicidad (estudiante, iniciativa) se valida en la capa de aplicación.
type Postulacion struct {
	ID           int64
	InitiativeID int64
	StudentID    int64
	CreatedAt    time.Time
	Status       string
	Message      string
}
