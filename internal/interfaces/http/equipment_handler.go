package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Brewlog-api/internal/application/controller"
	"github.com/jhoicas/Brewlog-api/internal/application/dto"
)

// RoasteryHandler maneja las peticiones HTTP para Roastery (protegido).
type RoasteryHandler struct {
	ctrl *controller.RoasteryController
}

// NewRoasteryHandler construye el handler.
func NewRoasteryHandler(ctrl *controller.RoasteryController) *RoasteryHandler {
	return &RoasteryHandler{ctrl: ctrl}
}

// List godoc
// @Summary      Listar tostadores
// @Tags         roasteries
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.RoasteryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/roasteries [get]
func (h *RoasteryHandler) List(c *fiber.Ctx) error {
	out, err := h.ctrl.List(c.UserContext(), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener tostador por ID
// @Tags         roasteries
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.RoasteryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roasteries/{id} [get]
func (h *RoasteryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.ctrl.Get(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear tostador
// @Tags         roasteries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRoasteryRequest  true  "Datos"
// @Success      201   {object}  dto.RoasteryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/roasteries [post]
func (h *RoasteryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRoasteryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ctrl.Create(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar tostador
// @Tags         roasteries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.UpdateRoasteryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.RoasteryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/roasteries/{id} [put]
func (h *RoasteryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRoasteryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ctrl.Update(c.UserContext(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tostador
// @Tags         roasteries
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roasteries/{id} [delete]
func (h *RoasteryHandler) Delete(c *fiber.Ctx) error {
	if err := h.ctrl.Delete(c.UserContext(), GetIdentity(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GrinderHandler maneja las peticiones HTTP para Grinder (protegido).
type GrinderHandler struct {
	ctrl *controller.GrinderController
}

// NewGrinderHandler construye el handler.
func NewGrinderHandler(ctrl *controller.GrinderController) *GrinderHandler {
	return &GrinderHandler{ctrl: ctrl}
}

// List godoc
// @Summary      Listar molinos
// @Tags         grinders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.GrinderResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/grinders [get]
func (h *GrinderHandler) List(c *fiber.Ctx) error {
	out, err := h.ctrl.List(c.UserContext(), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener molino por ID
// @Tags         grinders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.GrinderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/grinders/{id} [get]
func (h *GrinderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.ctrl.Get(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear molino
// @Tags         grinders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGrinderRequest  true  "Datos"
// @Success      201   {object}  dto.GrinderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/grinders [post]
func (h *GrinderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateGrinderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ctrl.Create(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar molino
// @Tags         grinders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.UpdateGrinderRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.GrinderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/grinders/{id} [put]
func (h *GrinderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateGrinderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ctrl.Update(c.UserContext(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar molino
// @Tags         grinders
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/grinders/{id} [delete]
func (h *GrinderHandler) Delete(c *fiber.Ctx) error {
	if err := h.ctrl.Delete(c.UserContext(), GetIdentity(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BrewerHandler maneja las peticiones HTTP para Brewer (protegido).
type BrewerHandler struct {
	ctrl *controller.BrewerController
}

// NewBrewerHandler construye el handler.
func NewBrewerHandler(ctrl *controller.BrewerController) *BrewerHandler {
	return &BrewerHandler{ctrl: ctrl}
}

// List godoc
// @Summary      Listar métodos de preparación
// @Tags         brewers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.BrewerResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/brewers [get]
func (h *BrewerHandler) List(c *fiber.Ctx) error {
	out, err := h.ctrl.List(c.UserContext(), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener método de preparación por ID
// @Tags         brewers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.BrewerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brewers/{id} [get]
func (h *BrewerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.ctrl.Get(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear método de preparación
// @Tags         brewers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBrewerRequest  true  "Datos"
// @Success      201   {object}  dto.BrewerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/brewers [post]
func (h *BrewerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBrewerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ctrl.Create(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar método de preparación
// @Tags         brewers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.UpdateBrewerRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.BrewerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/brewers/{id} [put]
func (h *BrewerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBrewerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ctrl.Update(c.UserContext(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar método de preparación
// @Tags         brewers
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brewers/{id} [delete]
func (h *BrewerHandler) Delete(c *fiber.Ctx) error {
	if err := h.ctrl.Delete(c.UserContext(), GetIdentity(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
