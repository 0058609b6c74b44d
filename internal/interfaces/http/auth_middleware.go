package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Brewlog-api/internal/application/dto"
	"github.com/jhoicas/Brewlog-api/internal/application/session"
	"github.com/jhoicas/Brewlog-api/pkg/jwt"
)

// Locals keys que carga AuthMiddleware en Fiber.
const (
	LocalUserID   = "user_id"
	LocalEmail    = "email"
	LocalTokenID  = "token_id"
	LocalTokenExp = "token_exp"
)

// RevocationChecker indica si un token (jti) fue revocado en logout. Lo implementa *auth.Denylist.
type RevocationChecker interface {
	IsRevoked(jti string) bool
}

// AuthMiddleware valida el Bearer Token JWT, rechaza tokens revocados y deja la identidad
// en c.Locals y en c.UserContext() (session.WithIdentity).
func AuthMiddleware(jwtSecret string, revoked RevocationChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if revoked != nil && claims.ID != "" && revoked.IsRevoked(claims.ID) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "REVOKED_TOKEN", Message: "la sesión fue cerrada"})
		}

		id := session.Identity{UserID: claims.UserID, Email: claims.Email}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalTokenID, claims.ID)
		c.Locals(LocalTokenExp, claims.ExpiresAtTime())
		c.SetUserContext(session.WithIdentity(c.UserContext(), id))
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetIdentity identidad de la petición; session.Anonymous fuera de las rutas protegidas.
func GetIdentity(c *fiber.Ctx) session.Identity {
	return session.FromContext(c.UserContext())
}

func tokenOf(c *fiber.Ctx) (string, time.Time) {
	jti, _ := c.Locals(LocalTokenID).(string)
	exp, _ := c.Locals(LocalTokenExp).(time.Time)
	return jti, exp
}
