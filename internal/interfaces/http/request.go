package http

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/softlink/softlink-api/internal/application/dto"
	"github.com/softlink/softlink-api/internal/application/usecase"
	"github.com/softlink/softlink-api/internal/domain"
	"github.com/softlink/softlink-api/pkg/validator"
)

var errInvalidBody = errors.New("cuerpo inválido")

// page lee skip/limit (por defecto 0/100, máximo 100).
func page(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", dto.DefaultLimit)
	offset = c.QueryInt("skip", 0)
	if limit <= 0 {
		limit = dto.DefaultLimit
	}
	if limit > dto.MaxLimit {
		limit = dto.MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// paramID lee un id numérico positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return id, nil
}

// queryID lee un id opcional de la query; nil si no viene.
func queryID(c *fiber.Ctx, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return &id, nil
}

// bind decodifica el cuerpo (JSON o formulario) y lo valida.
func bind(c *fiber.Ctx, v *validator.Validator, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return v.Validate(out)
}

// formFile lee el archivo multipart "file"; nil si no viene.
func formFile(c *fiber.Ctx) (*usecase.FileUpload, func(), error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, func() {}, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &usecase.FileUpload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Reader:      f,
	}, func() { _ = f.Close() }, nil
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

// formID lee un id positivo de un campo de formulario.
func formID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.FormValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s requerido", domain.ErrInvalidInput, name)
	}
	return id, nil
}
