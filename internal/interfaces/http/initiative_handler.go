package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/application/usecase"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/repository"
	"github.com/softlink/softlink-api/pkg/validator"
)

// InitiativeHandler iniciativas y sus documentos.
type InitiativeHandler struct {
	initiatives *usecase.InitiativeUseCase
	documents   *usecase.DocumentUseCase
	v           *validator.Validator
}

func NewInitiativeHandler(initiatives *usecase.InitiativeUseCase, documents *usecase.DocumentUseCase, v *validator.Validator) *InitiativeHandler {
	return &InitiativeHandler{initiatives: initiatives, documents: documents, v: v}
}

// List godoc
// @Summary  Listar iniciativas
// @Tags     iniciativas
// @Produce  json
// @Param    estado      query  string  false  "Filtrar por estado"
// @Param    id_usuario  query  int     false  "Filtrar por dueño"
// @Param    skip        query  int     false  "Offset"  default(0)
// @Param    limit       query  int     false  "Límite"  default(100)
// @Success  200  {array}  dto.InitiativeResponse
// @Router   /api/v1/iniciativas [get]
func (h *InitiativeHandler) List(c *fiber.Ctx) error {
	owner, err := queryID(c, "id_usuario")
	if err != nil {
		return writeError(c, err)
	}
	limit, offset := page(c)
	out, err := h.initiatives.List(c.UserContext(), repository.InitiativeFilter{Status: c.Query("estado"), UserID: owner}, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary  Obtener iniciativa
// @Tags     iniciativas
// @Produce  json
// @Param    id   path  int  true  "ID de la iniciativa"
// @Success  200  {object}  dto.InitiativeResponse
// @Failure  404  {object}  dto.ErrorResponse
// @Router   /api/v1/iniciativas/{id} [get]
func (h *InitiativeHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.initiatives.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary   Crear iniciativa
// @Tags      iniciativas
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     body  body  dto.CreateInitiativeRequest  true  "Datos de la iniciativa"
// @Success   201   {object}  dto.InitiativeResponse
// @Failure   400   {object}  dto.ErrorResponse
// @Router    /api/v1/iniciativas [post]
func (h *InitiativeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInitiativeRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.initiatives.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary   Actualizar iniciativa (dueño o coordinador)
// @Tags      iniciativas
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     id    path  int  true  "ID de la iniciativa"
// @Param     body  body  dto.UpdateInitiativeRequest  true  "Campos a actualizar"
// @Success   200   {object}  dto.InitiativeResponse
// @Failure   403   {object}  dto.ErrorResponse
// @Router    /api/v1/iniciativas/{id} [put]
func (h *InitiativeHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateInitiativeRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.initiatives.Update(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary   Eliminar iniciativa (dueño o coordinador)
// @Tags      iniciativas
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID de la iniciativa"
// @Success   200  {object}  dto.InitiativeResponse
// @Router    /api/v1/iniciativas/{id} [delete]
func (h *InitiativeHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.initiatives.Delete(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListDocuments godoc
// @Summary   Documentos de una iniciativa
// @Tags      documentos
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID de la iniciativa"
// @Success   200  {array}  dto.DocumentResponse
// @Router    /api/v1/documentos/iniciativa/{id} [get]
func (h *InitiativeHandler) ListDocuments(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	limit, offset := page(c)
	out, err := h.documents.ListByInitiative(c.UserContext(), id, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetDocument godoc
// @Summary   Obtener documento
// @Tags      documentos
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del documento"
// @Success   200  {object}  dto.DocumentResponse
// @Router    /api/v1/documentos/{id} [get]
func (h *InitiativeHandler) GetDocument(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.documents.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UploadDocument godoc
// @Summary   Adjuntar documento a una iniciativa
// @Tags      documentos
// @Security  Bearer
// @Accept    multipart/form-data
// @Produce   json
// @Param     file           formData  file    true   "Archivo"
// @Param     id_iniciativa  formData  int     true   "ID de la iniciativa"
// @Param     tipo           formData  string  false  "Tipo de documento"
// @Success   201  {object}  dto.DocumentResponse
// @Router    /api/v1/documentos [post]
func (h *InitiativeHandler) UploadDocument(c *fiber.Ctx) error {
	initiativeID, err := formID(c, "id_iniciativa")
	if err != nil {
		return writeError(c, err)
	}
	file, closeFile, err := formFile(c)
	if err != nil {
		return writeError(c, err)
	}
	defer closeFile()
	if file == nil {
		return writeError(c, fmt.Errorf("%w: archivo 'file' requerido", domain.ErrInvalidInput))
	}
	out, err := h.documents.Upload(c.UserContext(), GetPrincipal(c), initiativeID, c.FormValue("tipo"), *file)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateDocument godoc
// @Summary   Actualizar metadatos del documento
// @Tags      documentos
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     id    path  int  true  "ID del documento"
// @Param     body  body  dto.UpdateDocumentRequest  true  "Campos a actualizar"
// @Success   200   {object}  dto.DocumentResponse
// @Router    /api/v1/documentos/{id} [put]
func (h *InitiativeHandler) UpdateDocument(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateDocumentRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.documents.Update(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteDocument godoc
// @Summary   Eliminar documento y archivo
// @Tags      documentos
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del documento"
// @Success   200  {object}  dto.DocumentResponse
// @Router    /api/v1/documentos/{id} [delete]
func (h *InitiativeHandler) DeleteDocument(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.documents.Delete(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
