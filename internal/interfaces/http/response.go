package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/relojeria-admin/internal/application/dto"
	"github.com/jhoicas/relojeria-admin/internal/domain"
)

// ok responde {data, error: null}.
func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.Envelope{Data: data})
}

// fail responde {data: null, error} con el código HTTP indicado.
func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.Envelope{Error: &dto.ErrorResponse{Code: code, Message: message}})
}

// failErr traduce un error de dominio a su respuesta HTTP.
func failErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fail(c, fiber.StatusConflict, "EMAIL_EXISTS", err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		return fail(c, fiber.StatusConflict, "DUPLICATE", err.Error())
	case errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, "CONFLICT", err.Error())
	}
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", err.Error())
}

// invalidBody respuesta estándar para un cuerpo que no se puede decodificar.
func invalidBody(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
}
