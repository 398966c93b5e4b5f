package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Paginación skip/limit: por defecto 100, máximo 100.
const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// ErrorResponse cuerpo de error HTTP. Fields solo en errores de validación.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// DateLayout formato de fechas sin hora en el API.
const DateLayout = "2006-01-02"

// Date fecha sin hora (YYYY-MM-DD). Acepta también RFC3339 al decodificar.
type Date struct {
	time.Time
}

// MarshalJSON serializa como "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON decodifica "YYYY-MM-DD" o un timestamp RFC3339.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("fecha inválida: %w", err)
	}
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("fecha inválida %q: se espera YYYY-MM-DD", s)
	}
	y, m, day := t.Date()
	d.Time = time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return nil
}

// NewDate convierte un *time.Time del dominio (nil se mantiene nil).
func NewDate(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	return &Date{Time: *t}
}

// TimePtr devuelve la fecha como *time.Time del dominio.
func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
