package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/application/usecase"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/pkg/validator"
)

// MilestoneHandler hitos y entregas, tanto en rutas propias como anidadas bajo /proyectos/:id.
type MilestoneHandler struct {
	milestones *usecase.MilestoneUseCase
	deliveries *usecase.DeliveryUseCase
	v          *validator.Validator
}

func NewMilestoneHandler(milestones *usecase.MilestoneUseCase, deliveries *usecase.DeliveryUseCase, v *validator.Validator) *MilestoneHandler {
	return &MilestoneHandler{milestones: milestones, deliveries: deliveries, v: v}
}

// ListByProject godoc
// @Summary   Hitos de un proyecto
// @Tags      hitos
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del proyecto"
// @Success   200  {array}  dto.MilestoneResponse
// @Router    /api/v1/hitos/proyecto/{id} [get]
// @Router    /api/v1/proyectos/{id}/hitos [get]
func (h *MilestoneHandler) ListByProject(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	limit, offset := page(c)
	out, err := h.milestones.ListByProject(c.UserContext(), id, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary   Crear hito (coordinador)
// @Tags      hitos
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     body  body  dto.CreateMilestoneRequest  true  "Hito con id_proyecto"
// @Success   201   {object}  dto.MilestoneResponse
// @Router    /api/v1/hitos [post]
func (h *MilestoneHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMilestoneRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	if in.ProjectID <= 0 {
		return writeError(c, fmt.Errorf("%w: id_proyecto requerido", domain.ErrInvalidInput))
	}
	return h.create(c, in.ProjectID, in)
}

// CreateForProject godoc
// @Summary   Crear hito en un proyecto (coordinador)
// @Tags      hitos
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     id    path  int  true  "ID del proyecto"
// @Param     body  body  dto.CreateMilestoneRequest  true  "Hito"
// @Success   201   {object}  dto.MilestoneResponse
// @Failure   404   {object}  dto.ErrorResponse
// @Router    /api/v1/proyectos/{id}/hitos [post]
func (h *MilestoneHandler) CreateForProject(c *fiber.Ctx) error {
	projectID, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateMilestoneRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	return h.create(c, projectID, in)
}

func (h *MilestoneHandler) create(c *fiber.Ctx, projectID int64, in dto.CreateMilestoneRequest) error {
	out, err := h.milestones.Create(c.UserContext(), projectID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary   Obtener hito
// @Tags      hitos
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del hito"
// @Success   200  {object}  dto.MilestoneResponse
// @Router    /api/v1/hitos/{id} [get]
func (h *MilestoneHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.milestones.GetByID(c.UserContext(), 0, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary   Actualizar hito (coordinador)
// @Tags      hitos
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     id    path  int  true  "ID del hito"
// @Param     body  body  dto.UpdateMilestoneRequest  true  "Campos a actualizar"
// @Success   200   {object}  dto.MilestoneResponse
// @Router    /api/v1/hitos/{id} [put]
func (h *MilestoneHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateMilestoneRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.milestones.Update(c.UserContext(), 0, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary   Eliminar hito (coordinador)
// @Tags      hitos
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del hito"
// @Success   200  {object}  dto.MilestoneResponse
// @Router    /api/v1/hitos/{id} [delete]
func (h *MilestoneHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.milestones.Delete(c.UserContext(), 0, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListDeliveries godoc
// @Summary   Entregas de un hito
// @Tags      entregas
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del hito"
// @Success   200  {array}  dto.DeliveryResponse
// @Router    /api/v1/entregas/hito/{id} [get]
func (h *MilestoneHandler) ListDeliveries(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	return h.listDeliveries(c, 0, id)
}

// ListProjectDeliveries godoc
// @Summary   Entregas de un hito del proyecto
// @Tags      entregas
// @Security  Bearer
// @Produce   json
// @Param     id       path  int  true  "ID del proyecto"
// @Param     hito_id  path  int  true  "ID del hito"
// @Success   200  {array}  dto.DeliveryResponse
// @Failure   404  {object}  dto.ErrorResponse
// @Router    /api/v1/proyectos/{id}/hitos/{hito_id}/entregas [get]
func (h *MilestoneHandler) ListProjectDeliveries(c *fiber.Ctx) error {
	projectID, milestoneID, err := nestedIDs(c)
	if err != nil {
		return writeError(c, err)
	}
	return h.listDeliveries(c, projectID, milestoneID)
}

func (h *MilestoneHandler) listDeliveries(c *fiber.Ctx, projectID, milestoneID int64) error {
	limit, offset := page(c)
	out, err := h.deliveries.ListByMilestone(c.UserContext(), projectID, milestoneID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Registrar entrega (estudiante vinculado)
// @Description  JSON con archivo_url o multipart con file (+ comentario).
// @Tags         entregas
// @Security     Bearer
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Param        id       path  int  true  "ID del proyecto"
// @Param        hito_id  path  int  true  "ID del hito"
// @Param        body     body  dto.CreateDeliveryRequest  false  "Entrega por URL"
// @Success      201  {object}  dto.DeliveryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/proyectos/{id}/hitos/{hito_id}/entregas [post]
func (h *MilestoneHandler) Submit(c *fiber.Ctx) error {
	projectID, milestoneID, err := nestedIDs(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateDeliveryRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	var file *usecase.FileUpload
	if isMultipart(c) {
		f, closeFile, err := formFile(c)
		if err != nil {
			return writeError(c, err)
		}
		defer closeFile()
		file = f
	}
	out, err := h.deliveries.Submit(c.UserContext(), GetPrincipal(c), projectID, milestoneID, in, file)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetDelivery godoc
// @Summary   Obtener entrega
// @Tags      entregas
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID de la entrega"
// @Success   200  {object}  dto.DeliveryResponse
// @Router    /api/v1/entregas/{id} [get]
func (h *MilestoneHandler) GetDelivery(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.deliveries.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateDelivery godoc
// @Summary   Actualizar entrega (autor o coordinador)
// @Tags      entregas
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     id    path  int  true  "ID de la entrega"
// @Param     body  body  dto.UpdateDeliveryRequest  true  "Campos a actualizar"
// @Success   200   {object}  dto.DeliveryResponse
// @Router    /api/v1/entregas/{id} [put]
func (h *MilestoneHandler) UpdateDelivery(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateDeliveryRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.deliveries.Update(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteDelivery godoc
// @Summary   Eliminar entrega (autor o coordinador)
// @Tags      entregas
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID de la entrega"
// @Success   200  {object}  dto.DeliveryResponse
// @Router    /api/v1/entregas/{id} [delete]
func (h *MilestoneHandler) DeleteDelivery(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.deliveries.Delete(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func nestedIDs(c *fiber.Ctx) (projectID, milestoneID int64, err error) {
	if projectID, err = paramID(c, "id"); err != nil {
		return 0, 0, err
	}
	if milestoneID, err = paramID(c, "hito_id"); err != nil {
		return 0, 0, err
	}
	return projectID, milestoneID, nil
}
