package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/relojeria-admin/internal/application/usecase"
	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
)

// UserHandler maneja las peticiones HTTP para User.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios (o buscar por email)
// @Tags         users
// @Produce      json
// @Param        email  query  string  false  "Filtrar por email exacto"
// @Success      200  {object}  dto.Envelope{data=[]entity.User}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	if email := c.Query("email"); email != "" {
		u, err := h.uc.GetByEmail(c.UserContext(), email)
		if err != nil {
			return failErr(c, err)
		}
		return ok(c, fiber.StatusOK, []entity.User{u})
	}
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.Envelope{data=entity.User}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  entity.User  true  "Datos del usuario (id y created_at se ignoran)"
// @Success      201   {object}  dto.Envelope{data=entity.User}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in entity.User
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
// @Summary      Actualizar usuario (parcial)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID del usuario"
// @Param        body  body  entity.UserPatch  true  "Campos a actualizar"
// @Success      200   {object}  dto.Envelope{data=entity.User}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/users/{id} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var patch entity.UserPatch
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
// @Summary      Eliminar usuario
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Failure      409  {object}  dto.Envelope
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"id": id})
}
