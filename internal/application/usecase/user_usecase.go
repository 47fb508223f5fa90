package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/jhoicas/relojeria-admin/internal/domain"
	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
	"github.com/jhoicas/relojeria-admin/internal/domain/outcome"
)

// UserUseCase accesor de usuarios.
type UserUseCase struct {
	*base
}

// List devuelve todos los usuarios, más recientes primero.
func (uc *UserUseCase) List(ctx context.Context) ([]entity.User, error) {
	return run(ctx, uc.base, "users.list", uc.remote.Users.List, uc.local.Users.List)
}

// GetByID obtiene un usuario.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (entity.User, error) {
	return run(ctx, uc.base, "users.get",
		func(ctx context.Context) outcome.Result[entity.User] { return uc.remote.Users.GetByID(ctx, id) },
		func(ctx context.Context) (entity.User, error) { return uc.local.Users.Get(ctx, id) },
	)
}

// GetByEmail busca un usuario por email (sin distinguir mayúsculas).
func (uc *UserUseCase) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return run(ctx, uc.base, "users.get_by_email",
		func(ctx context.Context) outcome.Result[entity.User] {
			res := uc.remote.Users.Where(ctx, "email", email)
			if res.Kind != outcome.KindOK {
				return outcome.Map(res, func([]entity.User) entity.User { return entity.User{} })
			}
			if len(res.Value) == 0 {
				return outcome.NotFound[entity.User](fmt.Errorf("usuario %s: %w", email, domain.ErrNotFound))
			}
			return outcome.OK(res.Value[0])
		},
		func(ctx context.Context) (entity.User, error) {
			found, err := uc.local.Users.Find(ctx, func(u *entity.User) bool { return strings.EqualFold(u.Email, email) })
			if err != nil {
				return entity.User{}, err
			}
			if len(found) == 0 {
				return entity.User{}, fmt.Errorf("usuario %s: %w", email, domain.ErrNotFound)
			}
			return found[0], nil
		},
	)
}

// Create valida y crea un usuario. Rol vacío o "user" equivale a customer.
func (uc *UserUseCase) Create(ctx context.Context, in entity.User) (entity.User, error) {
	in.ID, in.CreatedAt = "", time.Time{}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	in.Role = entity.NormalizeRole(in.Role)
	if in.Role == "" {
		in.Role = entity.RoleCustomer
	}
	if err := validateUser(in); err != nil {
		return entity.User{}, err
	}
	return run(ctx, uc.base, "users.create",
		func(ctx context.Context) outcome.Result[entity.User] { return uc.remote.Users.Create(ctx, in) },
		func(ctx context.Context) (entity.User, error) { return uc.local.Users.Insert(ctx, in) },
	)
}

// Update aplica una actualización parcial.
func (uc *UserUseCase) Update(ctx context.Context, id string, patch entity.UserPatch) (entity.User, error) {
	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		patch.Email = &email
	}
	if patch.Role != nil {
		role := entity.NormalizeRole(*patch.Role)
		patch.Role = &role
	}
	if err := firstErr(
		optional(patch.Email, validEmail),
		optional(patch.Name, func(v string) error { return required("name", v) }),
		optional(patch.Role, validRole),
	); err != nil {
		return entity.User{}, err
	}
	return run(ctx, uc.base, "users.update",
		func(ctx context.Context) outcome.Result[entity.User] { return uc.remote.Users.Update(ctx, id, patch) },
		func(ctx context.Context) (entity.User, error) {
			return uc.local.Users.Put(ctx, id, func(u *entity.User) error {
				patch.Apply(u)
				return nil
			})
		},
	)
}

// Delete elimina un usuario. En el espejo local falla con ErrConflict si tiene órdenes.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	_, err := run(ctx, uc.base, "users.delete",
		func(ctx context.Context) outcome.Result[struct{}] { return uc.remote.Users.Delete(ctx, id) },
		func(ctx context.Context) (struct{}, error) {
			if _, err := uc.local.Users.Get(ctx, id); err != nil {
				return struct{}{}, err
			}
			if err := ensureUnreferenced(ctx, uc.local.Orders, "órdenes",
				func(o *entity.Order) bool { return o.UserID == id }); err != nil {
				return struct{}{}, err
			}
			return struct{}{}, uc.local.Users.Remove(ctx, id)
		},
	)
	return err
}

func validateUser(u entity.User) error {
	return firstErr(validEmail(u.Email), required("name", u.Name), validRole(u.Role))
}

func validEmail(email string) error {
	if err := required("email", email); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return invalid("email %q no es válido", email)
	}
	return nil
}

func validRole(role string) error {
	if !entity.ValidRole(role) {
		return invalid("rol %q no es válido", role)
	}
	return nil
}
