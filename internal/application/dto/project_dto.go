package dto

import "time"

// CreateProjectRequest alta manual de proyecto (coordinador).
type CreateProjectRequest struct {
	InitiativeID  *int64 `json:"id_iniciativa" validate:"omitempty,gt=0"`
	Title         string `json:"titulo" validate:"required,min=1,max=100"`
	Description   string `json:"descripcion"`
	Status        string `json:"estado" validate:"omitempty,oneof=activo pausado finalizado"`
	StartDate     *Date  `json:"fecha_inicio"`
	EndDate       *Date  `json:"fecha_fin"`
	Progress      int    `json:"progreso" validate:"gte=0,lte=100"`
	CoordinatorID *int64 `json:"id_coordinador" validate:"omitempty,gt=0"`
}

// UpdateProjectRequest actualización parcial.
type UpdateProjectRequest struct {
	Title         *string `json:"titulo" validate:"omitempty,min=1,max=100"`
	Description   *string `json:"descripcion"`
	Status        *string `json:"estado" validate:"omitempty,oneof=activo pausado finalizado"`
	StartDate     *Date   `json:"fecha_inicio"`
	EndDate       *Date   `json:"fecha_fin"`
	Progress      *int    `json:"progreso" validate:"omitempty,gte=0,lte=100"`
	CoordinatorID *int64  `json:"id_coordinador" validate:"omitempty,gt=0"`
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ID            int64  `json:"id_proyecto"`
	InitiativeID  *int64 `json:"id_iniciativa"`
	Title         string `json:"titulo"`
	Description   string `json:"descripcion"`
	Status        string `json:"estado"`
	StartDate     *Date  `json:"fecha_inicio"`
	EndDate       *Date  `json:"fecha_fin"`
	Progress      int    `json:"progreso"`
	CoordinatorID *int64 `json:"id_coordinador"`
}

// CreateProjectStudentRequest vincula un estudiante a un proyecto.
type CreateProjectStudentRequest struct {
	ProjectID int64  `json:"id_proyecto" validate:"required,gt=0"`
	StudentID int64  `json:"id_estudiante" validate:"required,gt=0"`
	Role      string `json:"rol_en_proyecto" validate:"omitempty,max=50"`
}

// UpdateProjectStudentRequest cambia el rol dentro del proyecto.
type UpdateProjectStudentRequest struct {
	Role *string `json:"rol_en_proyecto" validate:"omitempty,min=1,max=50"`
}

// ProjectStudentResponse salida de un vínculo proyecto-estudiante.
type ProjectStudentResponse struct {
	ProjectID int64  `json:"id_proyecto"`
	StudentID int64  `json:"id_estudiante"`
	Role      string `json:"rol_en_proyecto"`
}

// CreateMilestoneRequest alta de hito. En la ruta anidada id_proyecto sale de la URL.
type CreateMilestoneRequest struct {
	ProjectID   int64  `json:"id_proyecto"`
	Title       string `json:"titulo" validate:"required,min=1,max=100"`
	Description string `json:"descripcion"`
	DueDate     *Date  `json:"fecha_entrega"`
	Status      string `json:"estado" validate:"omitempty,oneof=pendiente en_progreso completado"`
}

// UpdateMilestoneRequest actualización parcial.
type UpdateMilestoneRequest struct {
	Title       *string `json:"titulo" validate:"omitempty,min=1,max=100"`
	Description *string `json:"descripcion"`
	DueDate     *Date   `json:"fecha_entrega"`
	Status      *string `json:"estado" validate:"omitempty,oneof=pendiente en_progreso completado"`
}

// MilestoneResponse salida de un hito.
type MilestoneResponse struct {
	ID          int64  `json:"id_hito"`
	ProjectID   int64  `json:"id_proyecto"`
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
	DueDate     *Date  `json:"fecha_entrega"`
	Status      string `json:"estado"`
}

// CreateDeliveryRequest entrega por URL; con multipart el archivo reemplaza archivo_url.
type CreateDeliveryRequest struct {
	FileURL string `json:"archivo_url" form:"archivo_url" validate:"omitempty,max=255"`
	Comment string `json:"comentario" form:"comentario"`
}

// UpdateDeliveryRequest actualización parcial.
type UpdateDeliveryRequest struct {
	FileURL *string `json:"archivo_url" validate:"omitempty,min=1,max=255"`
	Comment *string `json:"comentario"`
}

// DeliveryResponse salida de una entrega.
type DeliveryResponse struct {
	ID          int64     `json:"id_entrega"`
	MilestoneID int64     `json:"id_hito"`
	StudentID   int64     `json:"id_estudiante"`
	FileURL     string    `json:"archivo_url"`
	Comment     string    `json:"comentario"`
	DeliveredAt time.Time `json:"fecha_entrega"`
}
