package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/application/usecase"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/internal/domain/entity"
	"github.com/softlink/softlink-api/pkg/validator"
)

// UserHandler usuarios, roles, subida de archivos de perfil y panel.
type UserHandler struct {
	users     *usecase.UserUseCase
	uploads   *usecase.UploadUseCase
	dashboard *usecase.DashboardUseCase
	v         *validator.Validator
}

func NewUserHandler(users *usecase.UserUseCase, uploads *usecase.UploadUseCase, dashboard *usecase.DashboardUseCase, v *validator.Validator) *UserHandler {
	return &UserHandler{users: users, uploads: uploads, dashboard: dashboard, v: v}
}

// Roles godoc
// @Summary  Listar roles
// @Tags     roles
// @Produce  json
// @Success  200  {array}  dto.RoleResponse
// @Router   /api/v1/roles [get]
func (h *UserHandler) Roles(c *fiber.Ctx) error {
	out, err := h.users.Roles(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary   Listar usuarios
// @Tags      users
// @Security  Bearer
// @Produce   json
// @Param     id_rol  query  int  false  "Filtrar por rol"
// @Param     skip    query  int  false  "Offset"  default(0)
// @Param     limit   query  int  false  "Límite"  default(100)
// @Success   200     {array}  dto.UserResponse
// @Router    /api/v1/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var role *int
	if raw := c.QueryInt("id_rol", 0); raw > 0 {
		role = &raw
	}
	limit, offset := page(c)
	out, err := h.users.List(c.UserContext(), role, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary   Obtener usuario
// @Tags      users
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del usuario"
// @Success   200  {object}  dto.UserResponse
// @Failure   404  {object}  dto.ErrorResponse
// @Router    /api/v1/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.users.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary   Perfil del usuario autenticado
// @Tags      users
// @Security  Bearer
// @Produce   json
// @Success   200  {object}  dto.UserResponse
// @Router    /api/v1/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	out, err := h.users.GetByID(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateMe godoc
// @Summary   Actualizar mi perfil
// @Tags      users
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     body  body  dto.UpdateUserRequest  true  "Campos a actualizar"
// @Success   200   {object}  dto.UserResponse
// @Router    /api/v1/users/me [put]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	return h.update(c, GetUserID(c))
}

// Update godoc
// @Summary   Actualizar usuario (propio o coordinador)
// @Tags      users
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     id    path  int  true  "ID del usuario"
// @Param     body  body  dto.UpdateUserRequest  true  "Campos a actualizar"
// @Success   200   {object}  dto.UserResponse
// @Failure   403   {object}  dto.ErrorResponse
// @Router    /api/v1/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	return h.update(c, id)
}

func (h *UserHandler) update(c *fiber.Ctx, id int64) error {
	var in dto.UpdateUserRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.users.Update(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary   Eliminar usuario
// @Tags      users
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del usuario"
// @Success   200  {object}  dto.UserResponse
// @Router    /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.users.Delete(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UploadImage godoc
// @Summary   Subir foto de perfil
// @Tags      upload
// @Security  Bearer
// @Accept    multipart/form-data
// @Produce   json
// @Param     file  formData  file  true  "Imagen"
// @Success   200   {object}  dto.UploadResponse
// @Router    /api/v1/upload/image [post]
func (h *UserHandler) UploadImage(c *fiber.Ctx) error {
	return h.upload(c, h.uploads.ProfileImage)
}

// UploadDocument godoc
// @Summary   Subir hoja de vida (PDF)
// @Tags      upload
// @Security  Bearer
// @Accept    multipart/form-data
// @Produce   json
// @Param     file  formData  file  true  "PDF"
// @Success   200   {object}  dto.UploadResponse
// @Router    /api/v1/upload/document [post]
func (h *UserHandler) UploadDocument(c *fiber.Ctx) error {
	return h.upload(c, h.uploads.CV)
}

type uploadFunc func(ctx context.Context, actor entity.Principal, file usecase.FileUpload) (*dto.UploadResponse, error)

func (h *UserHandler) upload(c *fiber.Ctx, save uploadFunc) error {
	file, closeFile, err := formFile(c)
	if err != nil {
		return writeError(c, err)
	}
	defer closeFile()
	if file == nil {
		return writeError(c, fmt.Errorf("%w: archivo 'file' requerido", domain.ErrInvalidInput))
	}
	out, err := save(c.UserContext(), GetPrincipal(c), *file)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary   Estadísticas del panel del coordinador
// @Tags      dashboard
// @Security  Bearer
// @Produce   json
// @Success   200  {object}  dto.DashboardStatsResponse
// @Router    /api/v1/dashboard/stats [get]
func (h *UserHandler) Stats(c *fiber.Ctx) error {
	out, err := h.dashboard.Stats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
