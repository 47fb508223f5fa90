package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/relojeria-admin/internal/application/usecase"
	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
)

// ServiceRequestHandler maneja las peticiones HTTP para órdenes de servicio técnico.
type ServiceRequestHandler struct {
	uc      *usecase.ServiceRequestUseCase
	tickets *usecase.ServiceTicketUseCase
}

// NewServiceRequestHandler construye el handler.
func NewServiceRequestHandler(uc *usecase.ServiceRequestUseCase, tickets *usecase.ServiceTicketUseCase) *ServiceRequestHandler {
	return &ServiceRequestHandler{uc: uc, tickets: tickets}
}

// List godoc
// @Summary      Listar órdenes de servicio
// @Tags         service-requests
// @Produce      json
// @Param        status  query  string  false  "received|in_progress|completed|delivered|cancelled"
// @Success      200  {object}  dto.Envelope{data=[]entity.ServiceRequest}
// @Failure      400  {object}  dto.Envelope
// @Router       /api/service-requests [get]
func (h *ServiceRequestHandler) List(c *fiber.Ctx) error {
	var (
		out []entity.ServiceRequest
		err error
	)
	if status := c.Query("status"); status != "" {
		out, err = h.uc.ListByStatus(c.UserContext(), status)
	} else {
		out, err = h.uc.List(c.UserContext())
	}
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// GetByID godoc
// @Summary      Obtener orden de servicio por ID
// @Tags         service-requests
// @Produce      json
// @Param        id   path  string  true  "ID de la orden de servicio"
// @Success      200  {object}  dto.Envelope{data=entity.ServiceRequest}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/service-requests/{id} [get]
func (h *ServiceRequestHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Registrar orden de servicio
// @Tags         service-requests
// @Accept       json
// @Produce      json
// @Param        body  body  entity.ServiceRequest  true  "Datos de la orden de servicio"
// @Success      201   {object}  dto.Envelope{data=entity.ServiceRequest}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/service-requests [post]
func (h *ServiceRequestHandler) Create(c *fiber.Ctx) error {
	var in entity.ServiceRequest
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
// @Summary      Actualizar orden de servicio (parcial)
// @Tags         service-requests
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la orden de servicio"
// @Param        body  body  entity.ServiceRequestPatch  true  "Campos a actualizar"
// @Success      200   {object}  dto.Envelope{data=entity.ServiceRequest}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/service-requests/{id} [patch]
func (h *ServiceRequestHandler) Update(c *fiber.Ctx) error {
	var patch entity.ServiceRequestPatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar orden de servicio
// @Tags         service-requests
// @Produce      json
// @Param        id   path  string  true  "ID de la orden de servicio"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/service-requests/{id} [delete]
func (h *ServiceRequestHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"id": id})
}

// DownloadPDF godoc
// @Summary      Descargar comprobante PDF de la orden de servicio
// @Tags         service-requests
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden de servicio"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.Envelope
// @Router       /api/service-requests/{id}/pdf [get]
func (h *ServiceRequestHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.tickets.Download(c.UserContext(), c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
