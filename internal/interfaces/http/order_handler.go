package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/relojeria-admin/internal/application/dto"
	"github.com/jhoicas/relojeria-admin/internal/application/usecase"
	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
)

// OrderHandler maneja las peticiones HTTP para órdenes.
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// List godoc
// @Summary      Listar órdenes con usuario y producto
// @Tags         orders
// @Produce      json
// @Param        user_id  query  string  false  "Filtrar por usuario"
// @Success      200  {object}  dto.Envelope{data=[]entity.Order}
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var (
		out []entity.Order
		err error
	)
	if userID := c.Query("user_id"); userID != "" {
		out, err = h.uc.ListByUser(c.UserContext(), userID)
	} else {
		out, err = h.uc.List(c.UserContext())
	}
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// GetByID godoc
// @Summary      Obtener orden por ID
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.Envelope{data=entity.Order}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Crear orden
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Order  true  "Datos de la orden (users/products se ignoran)"
// @Success      201   {object}  dto.Envelope{data=entity.Order}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in entity.Order
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// Update godoc
// @Summary      Actualizar orden (parcial)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la orden"
// @Param        body  body  entity.OrderPatch  true  "Campos a actualizar"
// @Success      200   {object}  dto.Envelope{data=entity.Order}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/orders/{id} [patch]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var patch entity.OrderPatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// UpdateStatus godoc
// @Summary      Cambiar solo el estado de una orden
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la orden"
// @Param        body  body  dto.StatusUpdateRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.Envelope{data=entity.Order}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.StatusUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar orden
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"id": id})
}
