package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/application/usecase"
	"github.com/softlink/softlink-api/pkg/validator"
)

// CommunicationHandler comentarios, mensajes, notificaciones y auditoría.
type CommunicationHandler struct {
	comments      *usecase.CommentUseCase
	messages      *usecase.MessageUseCase
	notifications *usecase.NotificationUseCase
	audits        *usecase.AuditUseCase
	v             *validator.Validator
}

func NewCommunicationHandler(
	comments *usecase.CommentUseCase,
	messages *usecase.MessageUseCase,
	notifications *usecase.NotificationUseCase,
	audits *usecase.AuditUseCase,
	v *validator.Validator,
) *CommunicationHandler {
	return &CommunicationHandler{comments: comments, messages: messages, notifications: notifications, audits: audits, v: v}
}

// ListComments godoc
// @Summary   Comentarios de un proyecto
// @Tags      comentarios
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del proyecto"
// @Success   200  {array}  dto.CommentResponse
// @Router    /api/v1/comentarios/proyecto/{id} [get]
func (h *CommunicationHandler) ListComments(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	limit, offset := page(c)
	out, err := h.comments.ListByProject(c.UserContext(), id, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetComment godoc
// @Summary   Obtener comentario
// @Tags      comentarios
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del comentario"
// @Success   200  {object}  dto.CommentResponse
// @Router    /api/v1/comentarios/{id} [get]
func (h *CommunicationHandler) GetComment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.comments.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateComment godoc
// @Summary   Comentar un proyecto
// @Tags      comentarios
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     body  body  dto.CreateCommentRequest  true  "Proyecto y contenido"
// @Success   201   {object}  dto.CommentResponse
// @Router    /api/v1/comentarios [post]
func (h *CommunicationHandler) CreateComment(c *fiber.Ctx) error {
	var in dto.CreateCommentRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.comments.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateComment godoc
// @Summary   Editar comentario (autor o coordinador)
// @Tags      comentarios
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     id    path  int  true  "ID del comentario"
// @Param     body  body  dto.UpdateCommentRequest  true  "Contenido"
// @Success   200   {object}  dto.CommentResponse
// @Router    /api/v1/comentarios/{id} [put]
func (h *CommunicationHandler) UpdateComment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateCommentRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.comments.Update(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteComment godoc
// @Summary   Eliminar comentario (autor o coordinador)
// @Tags      comentarios
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del comentario"
// @Success   200  {object}  dto.CommentResponse
// @Router    /api/v1/comentarios/{id} [delete]
func (h *CommunicationHandler) DeleteComment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.comments.Delete(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMessages godoc
// @Summary   Mensajes enviados y recibidos
// @Tags      mensajes
// @Security  Bearer
// @Produce   json
// @Success   200  {array}  dto.MessageResponse
// @Router    /api/v1/mensajes/me [get]
func (h *CommunicationHandler) ListMessages(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.messages.ListMine(c.UserContext(), GetPrincipal(c), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetMessage godoc
// @Summary   Obtener mensaje (emisor o receptor)
// @Tags      mensajes
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del mensaje"
// @Success   200  {object}  dto.MessageResponse
// @Failure   403  {object}  dto.ErrorResponse
// @Router    /api/v1/mensajes/{id} [get]
func (h *CommunicationHandler) GetMessage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.messages.GetByID(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SendMessage godoc
// @Summary   Enviar mensaje
// @Tags      mensajes
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     body  body  dto.CreateMessageRequest  true  "Receptor y contenido"
// @Success   201   {object}  dto.MessageResponse
// @Router    /api/v1/mensajes [post]
func (h *CommunicationHandler) SendMessage(c *fiber.Ctx) error {
	var in dto.CreateMessageRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.messages.Send(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateMessage godoc
// @Summary   Actualizar mensaje (p. ej. marcar leído)
// @Tags      mensajes
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     id    path  int  true  "ID del mensaje"
// @Param     body  body  dto.UpdateMessageRequest  true  "Campos a actualizar"
// @Success   200   {object}  dto.MessageResponse
// @Router    /api/v1/mensajes/{id} [put]
func (h *CommunicationHandler) UpdateMessage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateMessageRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.messages.Update(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteMessage godoc
// @Summary   Eliminar mensaje (emisor o receptor)
// @Tags      mensajes
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del mensaje"
// @Success   200  {object}  dto.MessageResponse
// @Router    /api/v1/mensajes/{id} [delete]
func (h *CommunicationHandler) DeleteMessage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.messages.Delete(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListNotifications godoc
// @Summary   Notificaciones del usuario autenticado
// @Tags      notificaciones
// @Security  Bearer
// @Produce   json
// @Success   200  {array}  dto.NotificationResponse
// @Router    /api/v1/notificaciones/me [get]
func (h *CommunicationHandler) ListNotifications(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.notifications.ListMine(c.UserContext(), GetPrincipal(c), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateNotification godoc
// @Summary   Crear notificación
// @Tags      notificaciones
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     body  body  dto.CreateNotificationRequest  true  "Destinatario y mensaje"
// @Success   201   {object}  dto.NotificationResponse
// @Router    /api/v1/notificaciones [post]
func (h *CommunicationHandler) CreateNotification(c *fiber.Ctx) error {
	var in dto.CreateNotificationRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.notifications.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateNotification godoc
// @Summary   Actualizar notificación (destinatario o coordinador)
// @Tags      notificaciones
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     id    path  int  true  "ID de la notificación"
// @Param     body  body  dto.UpdateNotificationRequest  true  "Campos a actualizar"
// @Success   200   {object}  dto.NotificationResponse
// @Router    /api/v1/notificaciones/{id} [put]
func (h *CommunicationHandler) UpdateNotification(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateNotificationRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.notifications.Update(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteNotification godoc
// @Summary   Eliminar notificación (destinatario o coordinador)
// @Tags      notificaciones
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID de la notificación"
// @Success   200  {object}  dto.NotificationResponse
// @Router    /api/v1/notificaciones/{id} [delete]
func (h *CommunicationHandler) DeleteNotification(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.notifications.Delete(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListAudits godoc
// @Summary   Registro de auditoría (coordinador)
// @Tags      auditoria
// @Security  Bearer
// @Produce   json
// @Success   200  {array}  dto.AuditResponse
// @Router    /api/v1/auditoria [get]
func (h *CommunicationHandler) ListAudits(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.audits.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetAudit godoc
// @Summary   Obtener registro de auditoría (coordinador)
// @Tags      auditoria
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del registro"
// @Success   200  {object}  dto.AuditResponse
// @Router    /api/v1/auditoria/{id} [get]
func (h *CommunicationHandler) GetAudit(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.audits.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateAudit godoc
// @Summary   Registrar auditoría manual (coordinador)
// @Tags      auditoria
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     body  body  dto.CreateAuditRequest  true  "Acción y tabla"
// @Success   201   {object}  dto.AuditResponse
// @Router    /api/v1/auditoria [post]
func (h *CommunicationHandler) CreateAudit(c *fiber.Ctx) error {
	var in dto.CreateAuditRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.audits.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteAudit godoc
// @Summary   Eliminar registro de auditoría (coordinador)
// @Tags      auditoria
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del registro"
// @Success   200  {object}  dto.AuditResponse
// @Router    /api/v1/auditoria/{id} [delete]
func (h *CommunicationHandler) DeleteAudit(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.audits.Delete(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
