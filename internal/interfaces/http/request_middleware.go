package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Brewlog-api/internal/application/controller"
	"github.com/jhoicas/Brewlog-api/internal/application/dto"
	"github.com/jhoicas/Brewlog-api/pkg/logger"
)

// Cabeceras de petición reconocidas por la API.
const (
	HeaderRequestID      = "X-Request-ID"
	HeaderIdempotencyKey = "Idempotency-Key"
)

const maxIdempotencyKey = 128

// RequestLogger deja en c.UserContext() un logger con request_id, método y ruta, y registra
// cada petición al terminar. El request_id se toma de X-Request-ID o se genera.
func RequestLogger(base zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(HeaderRequestID, reqID)
		c.SetUserContext(logger.Request(c.UserContext(), base, reqID, c.Method(), c.Path()))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// el ErrorHandler de Fiber aún no escribió la respuesta
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		ev := logger.FromContext(c.UserContext()).Info()
		if status >= fiber.StatusInternalServerError {
			ev = logger.FromContext(c.UserContext()).Warn()
		}
		ev.Int("status", status).Dur("latency", time.Since(start)).Msg("petición")
		return err
	}
}

// SubmissionKey pasa la cabecera Idempotency-Key al guard de envío de formularios: el cliente
// genera una clave por instancia de formulario y la repite en los reintentos.
func SubmissionKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Get(HeaderIdempotencyKey))
		if len(key) > maxIdempotencyKey {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_HEADER", Message: "Idempotency-Key demasiado larga"})
		}
		if key != "" {
			c.SetUserContext(controller.WithSubmissionKey(c.UserContext(), key))
		}
		return c.Next()
	}
}
