package dto

import "time"

// CreateInitiativeRequest entrada para publicar una iniciativa; el dueño es quien la crea.
type CreateInitiativeRequest struct {
	Name        string `json:"nombre" validate:"required,min=1,max=100"`
	Description string `json:"descripcion"`
	Category    string `json:"categoria" validate:"omitempty,max=50"`
	Impact      string `json:"impacto"`
}

// UpdateInitiativeRequest actualización parcial.
type UpdateInitiativeRequest struct {
	Name        *string `json:"nombre" validate:"omitempty,min=1,max=100"`
	Description *string `json:"descripcion"`
	Category    *string `json:"categoria" validate:"omitempty,max=50"`
	Impact      *string `json:"impacto"`
	Status      *string `json:"estado" validate:"omitempty,oneof=pendiente aprobada en_progreso finalizada rechazada"`
}

// InitiativeResponse salida de una iniciativa.
type InitiativeResponse struct {
	ID          int64     `json:"id_iniciativa"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	Category    string    `json:"categoria"`
	Impact      string    `json:"impacto"`
	Status      string    `json:"estado"`
	UserID      int64     `json:"id_usuario"`
	CreatedAt   time.Time `json:"fecha_creacion"`
}

// UpdateDocumentRequest metadatos editables de un documento.
type UpdateDocumentRequest struct {
	FileName *string `json:"nombre_archivo" validate:"omitempty,min=1,max=255"`
	Type     *string `json:"tipo" validate:"omitempty,max=50"`
}

// DocumentResponse salida de un documento de iniciativa.
type DocumentResponse struct {
	ID           int64  `json:"id_doc"`
	InitiativeID int64  `json:"id_iniciativa"`
	FileName     string `json:"nombre_archivo"`
	Path         string `json:"ruta_archivo"`
	Type         string `json:"tipo"`
}

// CreatePostulacionRequest un estudiante aplica a una iniciativa.
type CreatePostulacionRequest struct {
	InitiativeID int64  `json:"id_iniciativa" validate:"required,gt=0"`
	Message      string `json:"mensaje"`
}

// UpdatePostulacionRequest cambio de estado (solo coordinador) y/o mensaje.
type UpdatePostulacionRequest struct {
	Status  *string `json:"estado" validate:"omitempty,oneof=pendiente aceptada rechazada"`
	Message *string `json:"mensaje"`
}

// PostulacionResponse salida de una postulación. ProjectID se informa al aceptar.
type PostulacionResponse struct {
	ID           int64     `json:"id_postulacion"`
	InitiativeID int64     `json:"id_iniciativa"`
	StudentID    int64     `json:"id_estudiante"`
	CreatedAt    time.Time `json:"fecha_postulacion"`
	Status       string    `json:"estado"`
	Message      string    `json:"mensaje"`
	ProjectID    *int64    `json:"id_proyecto,omitempty"`
}
