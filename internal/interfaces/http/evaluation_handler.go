package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/application/usecase"
	"github.com/softlink/softlink-api/pkg/validator"
)

// EvaluationHandler criterios y evaluaciones de proyectos.
type EvaluationHandler struct {
	criteria    *usecase.CriterionUseCase
	evaluations *usecase.EvaluationUseCase
	v           *validator.Validator
}

func NewEvaluationHandler(criteria *usecase.CriterionUseCase, evaluations *usecase.EvaluationUseCase, v *validator.Validator) *EvaluationHandler {
	return &EvaluationHandler{criteria: criteria, evaluations: evaluations, v: v}
}

// ListCriteria godoc
// @Summary   Listar criterios
// @Tags      criterios
// @Security  Bearer
// @Produce   json
// @Success   200  {array}  dto.CriterionResponse
// @Router    /api/v1/criterios [get]
func (h *EvaluationHandler) ListCriteria(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.criteria.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetCriterion godoc
// @Summary   Obtener criterio
// @Tags      criterios
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del criterio"
// @Success   200  {object}  dto.CriterionResponse
// @Router    /api/v1/criterios/{id} [get]
func (h *EvaluationHandler) GetCriterion(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.criteria.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateCriterion godoc
// @Summary   Crear criterio (coordinador)
// @Tags      criterios
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     body  body  dto.CreateCriterionRequest  true  "Nombre y peso"
// @Success   201   {object}  dto.CriterionResponse
// @Router    /api/v1/criterios [post]
func (h *EvaluationHandler) CreateCriterion(c *fiber.Ctx) error {
	var in dto.CreateCriterionRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.criteria.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateCriterion godoc
// @Summary   Actualizar criterio (coordinador)
// @Tags      criterios
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     id    path  int  true  "ID del criterio"
// @Param     body  body  dto.UpdateCriterionRequest  true  "Campos a actualizar"
// @Success   200   {object}  dto.CriterionResponse
// @Router    /api/v1/criterios/{id} [put]
func (h *EvaluationHandler) UpdateCriterion(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateCriterionRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.criteria.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteCriterion godoc
// @Summary   Eliminar criterio (coordinador)
// @Tags      criterios
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del criterio"
// @Success   200  {object}  dto.CriterionResponse
// @Router    /api/v1/criterios/{id} [delete]
func (h *EvaluationHandler) DeleteCriterion(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.criteria.Delete(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByProject godoc
// @Summary   Evaluaciones de un proyecto
// @Tags      evaluaciones
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del proyecto"
// @Success   200  {array}  dto.EvaluationResponse
// @Router    /api/v1/evaluaciones/proyecto/{id} [get]
func (h *EvaluationHandler) ListByProject(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	limit, offset := page(c)
	out, err := h.evaluations.ListByProject(c.UserContext(), id, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary   Promedio ponderado de las evaluaciones del proyecto
// @Tags      evaluaciones
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del proyecto"
// @Success   200  {object}  dto.EvaluationSummaryResponse
// @Router    /api/v1/evaluaciones/proyecto/{id}/resumen [get]
func (h *EvaluationHandler) Summary(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.evaluations.Summary(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary   Obtener evaluación
// @Tags      evaluaciones
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID de la evaluación"
// @Success   200  {object}  dto.EvaluationResponse
// @Router    /api/v1/evaluaciones/{id} [get]
func (h *EvaluationHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.evaluations.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary   Evaluar proyecto (coordinador)
// @Tags      evaluaciones
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     body  body  dto.CreateEvaluationRequest  true  "Puntuación 0..100"
// @Success   201   {object}  dto.EvaluationResponse
// @Failure   400   {object}  dto.ErrorResponse
// @Router    /api/v1/evaluaciones [post]
func (h *EvaluationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEvaluationRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.evaluations.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary   Actualizar evaluación (coordinador)
// @Tags      evaluaciones
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     id    path  int  true  "ID de la evaluación"
// @Param     body  body  dto.UpdateEvaluationRequest  true  "Campos a actualizar"
// @Success   200   {object}  dto.EvaluationResponse
// @Router    /api/v1/evaluaciones/{id} [put]
func (h *EvaluationHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateEvaluationRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.evaluations.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary   Eliminar evaluación (coordinador)
// @Tags      evaluaciones
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID de la evaluación"
// @Success   200  {object}  dto.EvaluationResponse
// @Router    /api/v1/evaluaciones/{id} [delete]
func (h *EvaluationHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.evaluations.Delete(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
