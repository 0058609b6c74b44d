package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Brewlog-api/internal/application/dto"
	"github.com/jhoicas/Brewlog-api/internal/application/validation"
	"github.com/jhoicas/Brewlog-api/internal/domain"
	"github.com/jhoicas/Brewlog-api/pkg/logger"
)

// errorMapping traduce un error de dominio a status HTTP y código. El orden importa:
// ErrUserNotFound se evalúa antes que los errores genéricos.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrUnauthenticated, fiber.StatusUnauthorized, "UNAUTHENTICATED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrValidation, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrSubmissionInFlight, fiber.StatusConflict, "SUBMISSION_IN_FLIGHT"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrStoreUnavailable, fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
	{domain.ErrAnalysisFailed, fiber.StatusBadGateway, "ANALYSIS_FAILED"},
}

// internalMessage único texto que ve el cliente en un 500; la causa queda en el log de la petición.
const internalMessage = "error interno, inténtalo de nuevo más tarde"

// writeError responde con el status del error de dominio. El mensaje de un error mapeado se muestra
// tal cual al usuario; un error no mapeado responde 500 con internalMessage.
func writeError(c *fiber.Ctx, err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		fields := make([]dto.FieldErrorResponse, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, dto.FieldErrorResponse{Field: f.Field, Message: f.Message})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: verr.Error(), Fields: fields})
	}
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	logger.FromContext(c.UserContext()).Error().Err(err).Msg("error no mapeado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: internalMessage})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
