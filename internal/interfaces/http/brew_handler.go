package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Brewlog-api/internal/application/controller"
	"github.com/jhoicas/Brewlog-api/internal/application/dto"
)

// BrewHandler maneja las peticiones HTTP para Brew (protegido).
type BrewHandler struct {
	ctrl *controller.BrewController
}

// NewBrewHandler construye el handler.
func NewBrewHandler(ctrl *controller.BrewController) *BrewHandler {
	return &BrewHandler{ctrl: ctrl}
}

// List godoc
// @Summary      Listar brews
// @Description  Ordenados por fecha de preparación, más recientes primero.
// @Tags         brews
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.BrewResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/brews [get]
func (h *BrewHandler) List(c *fiber.Ctx) error {
	out, err := h.ctrl.List(c.UserContext(), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// New godoc
// @Summary      Valores iniciales del formulario de nuevo brew
// @Description  Opciones de café, molino y método, con el café elegido (o el más reciente)
// @Description  y su fecha de tueste más cercana a hoy.
// @Tags         brews
// @Security     Bearer
// @Produce      json
// @Param        bean_id  query  string  false  "Café preseleccionado"
// @Success      200  {object}  dto.NewBrewDefaults
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/brews/new [get]
func (h *BrewHandler) New(c *fiber.Ctx) error {
	out, err := h.ctrl.NewBrewDefaults(c.UserContext(), GetIdentity(c), c.Query("bean_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener brew por ID
// @Tags         brews
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del brew"
// @Success      200  {object}  dto.BrewResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brews/{id} [get]
func (h *BrewHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.ctrl.Get(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar brew
// @Description  Si analyze=true se piden sugerencias al LLM; si el análisis falla el brew se guarda igual.
// @Tags         brews
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBrewRequest  true  "Datos del brew"
// @Success      201   {object}  dto.BrewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/brews [post]
func (h *BrewHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBrewRequest
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
// @Summary      Actualizar brew
// @Tags         brews
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del brew"
// @Param        body  body  dto.UpdateBrewRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.BrewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/brews/{id} [put]
func (h *BrewHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBrewRequest
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
// @Summary      Eliminar brew
// @Tags         brews
// @Security     Bearer
// @Param        id   path  string  true  "ID del brew"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brews/{id} [delete]
func (h *BrewHandler) Delete(c *fiber.Ctx) error {
	if err := h.ctrl.Delete(c.UserContext(), GetIdentity(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Analyze godoc
// @Summary      Analizar brew con IA
// @Description  Reemplaza las sugerencias del brew. 502 si el servicio de análisis falla o excede el timeout.
// @Tags         brews
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del brew"
// @Success      200  {object}  dto.BrewAnalysisResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/brews/{id}/analysis [post]
func (h *BrewHandler) Analyze(c *fiber.Ctx) error {
	out, err := h.ctrl.Analyze(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Card godoc
// @Summary      Ficha PDF del brew
// @Tags         brews
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del brew"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/brews/{id}/card.pdf [get]
func (h *BrewHandler) Card(c *fiber.Ctx) error {
	pdf, err := h.ctrl.Card(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="brew-`+c.Params("id")+`.pdf"`)
	return c.Send(pdf)
}
