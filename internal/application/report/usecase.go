package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/internal/domain/repository"
)

// pageSize tope de filas por sección del reporte.
const pageSize = 500

// UseCase arma el reporte PDF de un proyecto: estudiantes, hitos y evaluaciones.
type UseCase struct {
	projects    repository.ProjectRepository
	initiatives repository.InitiativeRepository
	links       repository.ProjectStudentRepository
	users       repository.UserRepository
	milestones  repository.MilestoneRepository
	evaluations repository.EvaluationRepository
	criteria    repository.CriterionRepository
	generator   Generator
}

// NewUseCase construye el caso de uso inyectando todas sus dependencias.
func NewUseCase(
	projects repository.ProjectRepository,
	initiatives repository.InitiativeRepository,
	links repository.ProjectStudentRepository,
	users repository.UserRepository,
	milestones repository.MilestoneRepository,
	evaluations repository.EvaluationRepository,
	criteria repository.CriterionRepository,
	generator Generator,
) *UseCase {
	return &UseCase{
		projects:    projects,
		initiatives: initiatives,
		links:       links,
		users:       users,
		milestones:  milestones,
		evaluations: evaluations,
		criteria:    criteria,
		generator:   generator,
	}
}

// Generate devuelve los bytes del PDF y el nombre sugerido del archivo.
// domain.ErrNotFound si el proyecto no existe.
func (uc *UseCase) Generate(ctx context.Context, projectID int64) ([]byte, string, error) {
	r, err := uc.build(ctx, projectID)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.generator.GenerateProjectReport(ctx, r)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar pdf: %w", err)
	}
	return doc, fmt.Sprintf("proyecto_%d.pdf", projectID), nil
}

func (uc *UseCase) build(ctx context.Context, projectID int64) (*ProjectReport, error) {
	// 1. Proyecto e iniciativa de origen
	project, err := uc.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("reporte: obtener proyecto: %w", err)
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	r := &ProjectReport{Project: project}
	if project.InitiativeID != nil {
		if r.Initiative, err = uc.initiatives.GetByID(ctx, *project.InitiativeID); err != nil {
			return nil, err
		}
	}

	// 2. Estudiantes
	links, err := uc.links.ListByProject(ctx, projectID, pageSize, 0)
	if err != nil {
		return nil, err
	}
	for _, l := range links {
		line := StudentLine{Name: fmt.Sprintf("Estudiante %d", l.StudentID), Role: l.Role}
		u, err := uc.users.GetByID(ctx, l.StudentID)
		if err != nil {
			return nil, err
		}
		if u != nil {
			line.Name, line.Email = u.Name, u.Email
		}
		r.Students = append(r.Students, line)
	}

	// 3. Hitos
	if r.Milestones, err = uc.milestones.ListByProject(ctx, projectID, pageSize, 0); err != nil {
		return nil, err
	}

	// 4. Evaluaciones y promedio ponderado
	evals, err := uc.evaluations.ListByProject(ctx, projectID, pageSize, 0)
	if err != nil {
		return nil, err
	}
	criteria := make(map[int64]*entity.Criterion)
	for _, e := range evals {
		line := EvaluationLine{Criterion: "General", Weight: decimal.NewFromInt(1), Score: e.Score, Observations: e.Observations}
		if e.CriterionID != nil {
			c, ok := criteria[*e.CriterionID]
			if !ok {
				if c, err = uc.criteria.GetByID(ctx, *e.CriterionID); err != nil {
					return nil, err
				}
				if c != nil {
					criteria[c.ID] = c
				}
			}
			if c != nil {
				line.Criterion, line.Weight = c.Name, c.Weight
			}
		}
		r.Evaluations = append(r.Evaluations, line)
	}
	r.WeightedAverage = entity.WeightedScore(evals, criteria)
	return r, nil
}
