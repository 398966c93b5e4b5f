package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/application/report"
	"github.com/softlink/softlink-api/internal/application/usecase"
	"github.com/softlink/softlink-api/pkg/validator"
)

// ProjectHandler proyectos, vínculos proyecto-estudiante y reporte PDF.
type ProjectHandler struct {
	projects *usecase.ProjectUseCase
	links    *usecase.ProjectStudentUseCase
	reports  *report.UseCase
	v        *validator.Validator
}

func NewProjectHandler(projects *usecase.ProjectUseCase, links *usecase.ProjectStudentUseCase, reports *report.UseCase, v *validator.Validator) *ProjectHandler {
	return &ProjectHandler{projects: projects, links: links, reports: reports, v: v}
}

// List godoc
// @Summary   Listar proyectos
// @Tags      proyectos
// @Produce   json
// @Param     skip   query  int  false  "Offset"  default(0)
// @Param     limit  query  int  false  "Límite"  default(100)
// @Success   200  {array}  dto.ProjectResponse
// @Router    /api/v1/proyectos [get]
// @Router    /api/v1/proyectos/public [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.projects.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary      Proyectos del usuario autenticado
// @Description  Estudiante: asignados. Empresa: de sus iniciativas. Coordinador: todos.
// @Tags         proyectos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProjectResponse
// @Router       /api/v1/proyectos/me [get]
func (h *ProjectHandler) ListMine(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.projects.ListMine(c.UserContext(), GetPrincipal(c), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary  Obtener proyecto
// @Tags     proyectos
// @Produce  json
// @Param    id   path  int  true  "ID del proyecto"
// @Success  200  {object}  dto.ProjectResponse
// @Failure  404  {object}  dto.ErrorResponse
// @Router   /api/v1/proyectos/{id} [get]
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.projects.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary   Crear proyecto (coordinador)
// @Tags      proyectos
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     body  body  dto.CreateProjectRequest  true  "Datos del proyecto"
// @Success   201   {object}  dto.ProjectResponse
// @Failure   409   {object}  dto.ErrorResponse
// @Router    /api/v1/proyectos [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.projects.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary   Actualizar proyecto (coordinador)
// @Tags      proyectos
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     id    path  int  true  "ID del proyecto"
// @Param     body  body  dto.UpdateProjectRequest  true  "Campos a actualizar"
// @Success   200   {object}  dto.ProjectResponse
// @Router    /api/v1/proyectos/{id} [put]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateProjectRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.projects.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary   Eliminar proyecto (coordinador)
// @Tags      proyectos
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del proyecto"
// @Success   200  {object}  dto.ProjectResponse
// @Router    /api/v1/proyectos/{id} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.projects.Delete(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary   Reporte PDF del proyecto
// @Tags      proyectos
// @Security  Bearer
// @Produce   application/pdf
// @Param     id   path  int  true  "ID del proyecto"
// @Success   200  {file}  binary
// @Failure   404  {object}  dto.ErrorResponse
// @Router    /api/v1/proyectos/{id}/reporte [get]
func (h *ProjectHandler) Report(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	doc, filename, err := h.reports.Generate(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(doc)
}

// ListStudents godoc
// @Summary   Estudiantes vinculados a un proyecto
// @Tags      proyectos-estudiantes
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del proyecto"
// @Success   200  {array}  dto.ProjectStudentResponse
// @Router    /api/v1/proyectos-estudiantes/proyecto/{id} [get]
func (h *ProjectHandler) ListStudents(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	limit, offset := page(c)
	out, err := h.links.ListByProject(c.UserContext(), id, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByStudent godoc
// @Summary   Proyectos de un estudiante (él mismo o coordinador)
// @Tags      proyectos-estudiantes
// @Security  Bearer
// @Produce   json
// @Param     id   path  int  true  "ID del estudiante"
// @Success   200  {array}  dto.ProjectStudentResponse
// @Router    /api/v1/proyectos-estudiantes/estudiante/{id} [get]
func (h *ProjectHandler) ListByStudent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	limit, offset := page(c)
	out, err := h.links.ListByStudent(c.UserContext(), GetPrincipal(c), id, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Link godoc
// @Summary   Vincular estudiante a proyecto (coordinador)
// @Tags      proyectos-estudiantes
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     body  body  dto.CreateProjectStudentRequest  true  "Proyecto, estudiante y rol"
// @Success   201   {object}  dto.ProjectStudentResponse
// @Failure   409   {object}  dto.ErrorResponse
// @Router    /api/v1/proyectos-estudiantes [post]
func (h *ProjectHandler) Link(c *fiber.Ctx) error {
	var in dto.CreateProjectStudentRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.links.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateLink godoc
// @Summary   Cambiar rol del estudiante en el proyecto (coordinador)
// @Tags      proyectos-estudiantes
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     project_id  path  int  true  "ID del proyecto"
// @Param     student_id  path  int  true  "ID del estudiante"
// @Param     body        body  dto.UpdateProjectStudentRequest  true  "Rol"
// @Success   200   {object}  dto.ProjectStudentResponse
// @Router    /api/v1/proyectos-estudiantes/{project_id}/{student_id} [put]
func (h *ProjectHandler) UpdateLink(c *fiber.Ctx) error {
	projectID, studentID, err := linkIDs(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateProjectStudentRequest
	if err := bind(c, h.v, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.links.Update(c.UserContext(), projectID, studentID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Unlink godoc
// @Summary   Desvincular estudiante (coordinador)
// @Tags      proyectos-estudiantes
// @Security  Bearer
// @Produce   json
// @Param     project_id  path  int  true  "ID del proyecto"
// @Param     student_id  path  int  true  "ID del estudiante"
// @Success   200   {object}  dto.ProjectStudentResponse
// @Router    /api/v1/proyectos-estudiantes/{project_id}/{student_id} [delete]
func (h *ProjectHandler) Unlink(c *fiber.Ctx) error {
	projectID, studentID, err := linkIDs(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.links.Delete(c.UserContext(), projectID, studentID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func linkIDs(c *fiber.Ctx) (int64, int64, error) {
	projectID, err := paramID(c, "project_id")
	if err != nil {
		return 0, 0, err
	}
	studentID, err := paramID(c, "student_id")
	if err != nil {
		return 0, 0, err
	}
	return projectID, studentID, nil
}
