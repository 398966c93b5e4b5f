package dto

import "github.com/shopspring/decimal"

// CreateCriterionRequest alta de criterio; peso por defecto 1.
type CreateCriterionRequest struct {
	Name        string           `json:"nombre" validate:"required,min=1,max=100"`
	Description string           `json:"descripcion"`
	Weight      *decimal.Decimal `json:"peso"`
}

// UpdateCriterionRequest actualización parcial.
type UpdateCriterionRequest struct {
	Name        *string          `json:"nombre" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"descripcion"`
	Weight      *decimal.Decimal `json:"peso"`
}

// CriterionResponse salida de un criterio.
type CriterionResponse struct {
	ID          int64           `json:"id_criterio"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Weight      decimal.Decimal `json:"peso"`
}

// CreateEvaluationRequest puntuación 0-100 de un proyecto; el evaluador por defecto es quien crea.
type CreateEvaluationRequest struct {
	ProjectID    int64  `json:"id_proyecto" validate:"required,gt=0"`
	EvaluatorID  *int64 `json:"id_evaluador" validate:"omitempty,gt=0"`
	CriterionID  *int64 `json:"id_criterio" validate:"omitempty,gt=0"`
	Score        *int   `json:"puntuacion" validate:"required,gte=0,lte=100"`
	Observations string `json:"observaciones"`
}

// UpdateEvaluationRequest actualización parcial.
type UpdateEvaluationRequest struct {
	CriterionID  *int64  `json:"id_criterio" validate:"omitempty,gt=0"`
	Score        *int    `json:"puntuacion" validate:"omitempty,gte=0,lte=100"`
	Observations *string `json:"observaciones"`
}

// EvaluationResponse salida de una evaluación.
type EvaluationResponse struct {
	ID           int64  `json:"id_eval"`
	ProjectID    int64  `json:"id_proyecto"`
	EvaluatorID  *int64 `json:"id_evaluador"`
	CriterionID  *int64 `json:"id_criterio"`
	Score        int    `json:"puntuacion"`
	Observations string `json:"observaciones"`
}

// EvaluationSummaryResponse promedio ponderado por peso de criterio.
type EvaluationSummaryResponse struct {
	ProjectID       int64           `json:"id_proyecto"`
	Count           int             `json:"total_evaluaciones"`
	WeightedAverage decimal.Decimal `json:"promedio_ponderado"`
}
