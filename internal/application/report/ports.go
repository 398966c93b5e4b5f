package report

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/softlink/softlink-api/internal/domain/entity"
)

// StudentLine estudiante vinculado con su rol en el proyecto.
type StudentLine struct {
	Name  string
	Email string
	Role  string
}

// EvaluationLine evaluación con el nombre y peso del criterio ya resueltos.
type EvaluationLine struct {
	Criterion    string
	Weight       decimal.Decimal
	Score        int
	Observations string
}

// ProjectReport datos de entrada para el PDF del proyecto.
type ProjectReport struct {
	Project         *entity.Project
	Initiative      *entity.Initiative
	Students        []StudentLine
	Milestones      []*entity.Milestone
	Evaluations     []EvaluationLine
	WeightedAverage decimal.Decimal
}

// Generator produce el documento del reporte.
type Generator interface {
	GenerateProjectReport(ctx context.Context, r *ProjectReport) ([]byte, error)
}
