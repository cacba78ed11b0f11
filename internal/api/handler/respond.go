package handler

import "github.com/labstack/echo/v4"

// envelope is the canonical response wrapper: every response carries success
// plus either data/mensaje or error/errores.
type envelope struct {
	Success  bool         `json:"success"`
	Mensaje  string       `json:"mensaje,omitempty"`
	Data     interface{}  `json:"data,omitempty"`
	Error    string       `json:"error,omitempty"`
	Errores  []FieldError `json:"errores,omitempty"`
	Detalles string       `json:"detalles,omitempty"`
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Campo   string `json:"campo"`
	Mensaje string `json:"mensaje"`
}

func respondData(c echo.Context, status int, mensaje string, data interface{}) error {
	return c.JSON(status, envelope{Success: true, Mensaje: mensaje, Data: data})
}

func respondError(c echo.Context, status int, msg string) error {
	return c.JSON(status, envelope{Success: false, Error: msg})
}

func respondValidation(c echo.Context, status int, errores []FieldError) error {
	return c.JSON(status, envelope{Success: false, Errores: errores})
}
