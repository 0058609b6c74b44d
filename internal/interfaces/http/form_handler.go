package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Brewlog-api/internal/application/controller"
	"github.com/jhoicas/Brewlog-api/internal/application/dto"
)

// FormHandler expone el estado de los formularios del usuario (envío en curso y borrador).
type FormHandler struct {
	core *controller.Core
}

// NewFormHandler construye el handler.
func NewFormHandler(core *controller.Core) *FormHandler {
	return &FormHandler{core: core}
}

// Draft godoc
// @Summary      Estado de un formulario
// @Description  Indica si hay un envío en curso y devuelve la última entrada que falló.
// @Tags         forms
// @Security     Bearer
// @Produce      json
// @Param        form  path  string  true  "Formulario (ej. bean.create)"
// @Success      200   {object}  dto.DraftResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/forms/{form}/draft [get]
func (h *FormHandler) Draft(c *fiber.Ctx) error {
	form := c.Params("form")
	if !controller.IsForm(form) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "formulario desconocido"})
	}
	id := GetIdentity(c)
	draft, _ := h.core.Draft(id, form)
	return c.JSON(dto.DraftResponse{Form: form, InFlight: h.core.InFlight(id, form), Draft: draft})
}
