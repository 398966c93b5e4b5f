package entity

import "github.com/shopspring/decimal"

// Criterion criterio de evaluación con su peso relativo.
type Criterion struct {
	ID          int64
	Name        string
	Description string
	Weight      decimal.Decimal
}

// Evaluation puntuación (0-100) de un proyecto frente a un criterio.
type Evaluation struct {
	ID           int64
	ProjectID    int64
	EvaluatorID  *int64
	CriterionID  *int64
	Score        int
	Observations string
}

// WeightedScore promedio ponderado de las evaluaciones. Las evaluaciones sin criterio
// (o con un criterio ya eliminado) pesan 1. Devuelve cero si no hay evaluaciones.
func WeightedScore(evals []*Evaluation, criteria map[int64]*Criterion) decimal.Decimal {
	one := decimal.NewFromInt(1)
	sum := decimal.Zero
	weights := decimal.Zero
	for _, e := range evals {
		w := one
		if e.CriterionID != nil {
			if c, ok := criteria[*e.CriterionID]; ok {
				w = c.Weight
			}
		}
		sum = sum.Add(decimal.NewFromInt(int64(e.Score)).Mul(w))
		weights = weights.Add(w)
	}
	if weights.IsZero() {
		return decimal.Zero
	}
	return sum.Div(weights).Round(2)
}
