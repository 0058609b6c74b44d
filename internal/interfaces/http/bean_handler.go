package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Brewlog-api/internal/application/controller"
	"github.com/jhoicas/Brewlog-api/internal/application/dto"
)

// BeanHandler maneja las peticiones HTTP para Bean y sus fechas de tueste (protegido).
type BeanHandler struct {
	ctrl *controller.BeanController
}

// NewBeanHandler construye el handler.
func NewBeanHandler(ctrl *controller.BeanController) *BeanHandler {
	return &BeanHandler{ctrl: ctrl}
}

// List godoc
// @Summary      Listar cafés
// @Tags         beans
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.BeanResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/beans [get]
func (h *BeanHandler) List(c *fiber.Ctx) error {
	out, err := h.ctrl.List(c.UserContext(), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener café por ID
// @Tags         beans
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del café"
// @Success      200  {object}  dto.BeanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/beans/{id} [get]
func (h *BeanHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.ctrl.Get(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear café
// @Description  roast_date (opcional) crea la primera fecha de tueste en la misma transacción.
// @Tags         beans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBeanRequest  true  "Datos del café"
// @Success      201   {object}  dto.BeanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/beans [post]
func (h *BeanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBeanRequest
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
// @Summary      Actualizar café
// @Tags         beans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del café"
// @Param        body  body  dto.UpdateBeanRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.BeanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/beans/{id} [put]
func (h *BeanHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBeanRequest
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
// @Summary      Eliminar café
// @Description  Elimina también sus fechas de tueste; los brews conservan su copia de la fecha.
// @Tags         beans
// @Security     Bearer
// @Param        id   path  string  true  "ID del café"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/beans/{id} [delete]
func (h *BeanHandler) Delete(c *fiber.Ctx) error {
	if err := h.ctrl.Delete(c.UserContext(), GetIdentity(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListRoastDates godoc
// @Summary      Fechas de tueste de un café
// @Tags         beans
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del café"
// @Success      200  {array}   dto.RoastDateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/beans/{id}/roast-dates [get]
func (h *BeanHandler) ListRoastDates(c *fiber.Ctx) error {
	out, err := h.ctrl.ListRoastDates(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddRoastDate godoc
// @Summary      Agregar fecha de tueste
// @Tags         beans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del café"
// @Param        body  body  dto.RoastDateRequest  true  "date (YYYY-MM-DD)"
// @Success      201   {object}  dto.RoastDateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/beans/{id}/roast-dates [post]
func (h *BeanHandler) AddRoastDate(c *fiber.Ctx) error {
	var in dto.RoastDateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ctrl.AddRoastDate(c.UserContext(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateRoastDate godoc
// @Summary      Corregir fecha de tueste
// @Tags         beans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id           path  string                true  "ID del café"
// @Param        roastDateID  path  string                true  "ID de la fecha"
// @Param        body         body  dto.RoastDateRequest  true  "date (YYYY-MM-DD)"
// @Success      200   {object}  dto.RoastDateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/beans/{id}/roast-dates/{roastDateID} [put]
func (h *BeanHandler) UpdateRoastDate(c *fiber.Ctx) error {
	var in dto.RoastDateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ctrl.UpdateRoastDate(c.UserContext(), GetIdentity(c), c.Params("id"), c.Params("roastDateID"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveRoastDate godoc
// @Summary      Eliminar fecha de tueste
// @Tags         beans
// @Security     Bearer
// @Param        id           path  string  true  "ID del café"
// @Param        roastDateID  path  string  true  "ID de la fecha"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/beans/{id}/roast-dates/{roastDateID} [delete]
func (h *BeanHandler) RemoveRoastDate(c *fiber.Ctx) error {
	if err := h.ctrl.RemoveRoastDate(c.UserContext(), GetIdentity(c), c.Params("id"), c.Params("roastDateID")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
