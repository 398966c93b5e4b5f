package entity

import "time"

// Estados de proyecto y de hito.
const (
	ProjectActive   = "activo"
	ProjectPaused   = "pausado"
	ProjectFinished = "finalizado"

	MilestonePending    = "pendiente"
	MilestoneInProgress = "en_progreso"
	MilestoneDone       = "completado"
)

// DefaultProjectRole rol con el que se vincula un estudiante aceptado.
const DefaultProjectRole = "Estudiante"

// Project vehículo de ejecución de una iniciativa (a lo sumo uno por iniciativa).
type Project struct {
	ID            int64
	InitiativeID  *int64
	Title         string
	Description   string
	Status        string
	StartDate     *time.Time
	EndDate       *time.Time
	Progress      int
	CoordinatorID *int64
}

// ProjectStudent vínculo proyecto-estudiante.
type ProjectStudent struct {
	ProjectID int64
	StudentID int64
	Role      string
}

// Milestone hito programado dentro de un proyecto.
type Milestone struct {
	ID          int64
	ProjectID   int64
	Title       string
	Description string
	DueDate     *time.Time
	Status      string
}

// Delivery entrega de un estudiante sobre un hito.
type Delivery struct {
	ID          int64
	MilestoneID int64
	StudentID   int64
	FileURL     string
	Comment     string
	DeliveredAt time.Time
}
