package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestObserver recibe cada petición terminada (lo implementa metrics.Metrics).
type RequestObserver interface {
	InFlight() func()
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// RequestLogger registra método, ruta, status y duración de cada petición.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("elapsed", time.Since(start)).
			Int64("id_usuario", GetUserID(c)).
			Msg("http")
		return err
	}
}

// Instrument alimenta las métricas HTTP. La etiqueta de ruta es el patrón registrado.
func Instrument(obs RequestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}
		done := obs.InFlight()
		defer done()
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		route := ""
		if r := c.Route(); r != nil && r.Path != "/" {
			route = r.Path
		}
		obs.ObserveRequest(c.Method(), route, status, time.Since(start))
		return err
	}
}
