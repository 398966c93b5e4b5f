package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/application/postulacion"
	"github.com/softlink/softlink-api/pkg/validator"
)

// PostulacionHandler postulaciones de estudiantes a iniciativas.
type PostulacionHandler struct {
	uc *postulacion.UseCase
	v  *validator.Validator
}

func NewPostulacionHandler(uc *postulacion.UseCase, v *validator.Validator) *PostulacionHandler {
	return &PostulacionHandler{uc: uc, v: v}
}

// Create godoc
// @Summary   Postularse a una iniciativa (solo estudiantes)
// @Tags      postulaciones
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     body  body  dto.CreatePostulacionRequest  true  "Iniciativa y mensaje"
// @Success   201   {object}  dto.PostulacionResponse
// @Failure   404   {object}  dto.ErrorResponse
// @Failure   409   {object}  dto.ErrorResponse
// @Router    /api/v1/postulaciones [post]
func (h *PostulacionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePostulacionRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar postulaciones
// @Description  Coordinador ve todas, estudiante las propias, empresa lista vacía.
// @Tags         postulaciones
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PostulacionResponse
// @Router       /api/v1/postulaciones [get]
func (h *PostulacionHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.UserContext(), GetPrincipal(c), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary   Postulaciones del usuario autenticado
// @Tags      postulaciones
// @Security  Bearer
// @Produce   json
// @Success   200  {array}  dto.PostulacionResponse
// @Router    /api/v1/postulaciones/me [get]
func (h *PostulacionHandler) ListMine(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.ListMine(c.UserContext(), GetPrincipal(c), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListPending godoc
// @Summary   Postulaciones pendientes (coordinador)
// @Tags      postulaciones
// @Security  Bearer
// @Produce   json
// @Success   200  {array}  dto.PostulacionResponse
// @Router    /api/v1/postulaciones/pending [get]
func (h *PostulacionHandler) ListPending(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.ListPending(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByInitiative godoc
// @Summary   Postulaciones de una iniciativa (dueño o coordinador)
// @Tags      iniciativas
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID de la iniciativa"
// @Success   200  {array}  dto.PostulacionResponse
// @Router    /api/v1/iniciativas/{id}/postulaciones [get]
func (h *PostulacionHandler) ListByInitiative(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	limit, offset := page(c)
	out, err := h.uc.ListByInitiative(c.UserContext(), GetPrincipal(c), id, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary   Obtener postulación (postulante o coordinador)
// @Tags      postulaciones
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID de la postulación"
// @Success   200  {object}  dto.PostulacionResponse
// @Router    /api/v1/postulaciones/{id} [get]
func (h *PostulacionHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Revisar postulación (coordinador)
// @Description  Con estado=aceptada crea o reutiliza el proyecto de la iniciativa y vincula al estudiante en una sola transacción.
// @Tags         postulaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la postulación"
// @Param        body  body  dto.UpdatePostulacionRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.PostulacionResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/v1/postulaciones/{id} [put]
func (h *PostulacionHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdatePostulacionRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary   Retirar postulación (postulante o coordinador)
// @Tags      postulaciones
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID de la postulación"
// @Success   200  {object}  dto.PostulacionResponse
// @Router    /api/v1/postulaciones/{id} [delete]
func (h *PostulacionHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Delete(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
