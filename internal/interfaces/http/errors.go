package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jmcastro/stockpilot-api/internal/application/dto"
	"github.com/jmcastro/stockpilot-api/internal/domain"
	"github.com/jmcastro/stockpilot-api/pkg/logger"
)

var (
	errLogger          *logger.Logger
	hideInternalDetail bool
)

// ConfigureErrors fija el logger del mapeo de errores y el modo de la
// aplicación. En production los errores internos se registran con contexto y
// el cliente recibe un mensaje genérico. Llamar una vez durante el arranque.
func ConfigureErrors(log *logger.Logger, env string) {
	errLogger = log
	hideInternalDetail = env == "production"
}

// respondError mapea errores de dominio a códigos HTTP. Los mensajes de
// transición inválida llegan envueltos con el estado ofensor, así el cliente
// sabe exactamente qué paso rechazó la tabla.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrOverReceipt):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "OVER_RECEIPT", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	default:
		if errLogger != nil {
			errLogger.Error().
				Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error interno")
		}
		msg := err.Error()
		if hideInternalDetail {
			msg = "error interno del servidor"
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: msg})
	}
}

// pageFromQuery lee limit/offset con defaults.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	p.DefaultPage()
	return p
}
