package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Brewlog-api/internal/application/controller"
	"github.com/jhoicas/Brewlog-api/internal/application/dto"
)

// ProfileHandler perfil del usuario en sesión.
type ProfileHandler struct {
	ctrl *controller.ProfileController
}

// NewProfileHandler construye el handler.
func NewProfileHandler(ctrl *controller.ProfileController) *ProfileHandler {
	return &ProfileHandler{ctrl: ctrl}
}

// Me godoc
// @Summary      Perfil del usuario en sesión
// @Tags         profile
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	out, err := h.ctrl.Me(c.UserContext(), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar perfil (nombre y avatar)
// @Tags         profile
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateUserRequest  true  "name, avatar, remove_avatar"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/me [put]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ctrl.Update(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
