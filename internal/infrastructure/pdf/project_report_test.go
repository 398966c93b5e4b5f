package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softlink/softlink-api/internal/application/report"
	"github.com/softlink/softlink-api/internal/domain/entity"
)

func TestGenerateProjectReport_Completo(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	r := &report.ProjectReport{
		Project:    &entity.Project{ID: 7, Title: "Plataforma de tutorías", Status: entity.ProjectActive, StartDate: &start, Progress: 40},
		Initiative: &entity.Initiative{ID: 3, Name: "Tutorías", Category: "Educación"},
		Students:   []report.StudentLine{{Name: "Ana", Email: "ana@uni.edu", Role: entity.DefaultProjectRole}},
		Milestones: []*entity.Milestone{{ID: 1, Title: "Prototipo", Status: entity.MilestonePending}},
		Evaluations: []report.EvaluationLine{
			{Criterion: "Calidad", Weight: decimal.NewFromInt(3), Score: 90},
		},
		WeightedAverage: decimal.NewFromInt(90),
	}

	doc, err := NewMarotoReportGenerator().GenerateProjectReport(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestGenerateProjectReport_SeccionesVacias(t *testing.T) {
	r := &report.ProjectReport{Project: &entity.Project{ID: 1, Title: "Solo", Status: entity.ProjectPaused}}

	doc, err := NewMarotoReportGenerator().GenerateProjectReport(context.Background(), r)
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}

func TestGenerateProjectReport_SinProyecto(t *testing.T) {
	_, err := NewMarotoReportGenerator().GenerateProjectReport(context.Background(), &report.ProjectReport{})
	assert.Error(t, err)
}
