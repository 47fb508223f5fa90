package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
	"github.com/jhoicas/relojeria-admin/internal/domain/outcome"
)

// OrderUseCase accesor de órdenes. Las lecturas adjuntan users/products resueltos en la
// misma fuente que sirvió la orden; las escrituras devuelven la forma persistida (sin joins).
type OrderUseCase struct {
	*base
}

// List devuelve todas las órdenes con sus joins, más recientes primero.
func (uc *OrderUseCase) List(ctx context.Context) ([]entity.Order, error) {
	return run(ctx, uc.base, "orders.list",
		func(ctx context.Context) outcome.Result[[]entity.Order] {
			return uc.joinRemote(ctx, uc.remote.Orders.List(ctx))
		},
		func(ctx context.Context) ([]entity.Order, error) {
			return uc.joinLocal(ctx)(uc.local.Orders.List(ctx))
		},
	)
}

// ListByUser órdenes de un usuario, con joins.
func (uc *OrderUseCase) ListByUser(ctx context.Context, userID string) ([]entity.Order, error) {
	return run(ctx, uc.base, "orders.list_by_user",
		func(ctx context.Context) outcome.Result[[]entity.Order] {
			return uc.joinRemote(ctx, uc.remote.Orders.Where(ctx, "user_id", userID))
		},
		func(ctx context.Context) ([]entity.Order, error) {
			return uc.joinLocal(ctx)(uc.local.Orders.Find(ctx, func(o *entity.Order) bool { return o.UserID == userID }))
		},
	)
}

// GetByID obtiene una orden con sus joins.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (entity.Order, error) {
	return run(ctx, uc.base, "orders.get",
		func(ctx context.Context) outcome.Result[entity.Order] {
			res := uc.remote.Orders.GetByID(ctx, id)
			if res.Kind != outcome.KindOK {
				return res
			}
			joined := uc.joinRemote(ctx, outcome.OK([]entity.Order{res.Value}))
			return outcome.Map(joined, func(list []entity.Order) entity.Order { return list[0] })
		},
		func(ctx context.Context) (entity.Order, error) {
			o, err := uc.local.Orders.Get(ctx, id)
			if err != nil {
				return entity.Order{}, err
			}
			list, err := uc.joinLocal(ctx)([]entity.Order{o}, nil)
			if err != nil {
				return entity.Order{}, err
			}
			return list[0], nil
		},
	)
}

// Create valida y crea una orden. Estado vacío equivale a pending.
// En el espejo local user_id y product_id deben existir.
func (uc *OrderUseCase) Create(ctx context.Context, in entity.Order) (entity.Order, error) {
	in = in.StripJoins()
	in.ID, in.CreatedAt = "", time.Time{}
	if in.Status == "" {
		in.Status = entity.OrderStatusPending
	}
	if err := firstErr(
		required("user_id", in.UserID),
		required("product_id", in.ProductID),
		validOrderStatus(in.Status),
		nonNegative("total_price", in.TotalPrice),
		validPaymentMethod(in.PaymentMethod),
	); err != nil {
		return entity.Order{}, err
	}
	return run(ctx, uc.base, "orders.create",
		func(ctx context.Context) outcome.Result[entity.Order] { return uc.remote.Orders.Create(ctx, in) },
		func(ctx context.Context) (entity.Order, error) {
			if err := firstErr(
				ensureExists(ctx, uc.local.Users, "user_id", in.UserID),
				ensureExists(ctx, uc.local.Products, "product_id", in.ProductID),
			); err != nil {
				return entity.Order{}, err
			}
			return uc.local.Orders.Insert(ctx, in)
		},
	)
}

// Update aplica una actualización parcial.
func (uc *OrderUseCase) Update(ctx context.Context, id string, patch entity.OrderPatch) (entity.Order, error) {
	if err := firstErr(
		optional(patch.UserID, func(v string) error { return required("user_id", v) }),
		optional(patch.ProductID, func(v string) error { return required("product_id", v) }),
		optional(patch.Status, validOrderStatus),
		optional(patch.TotalPrice, func(v decimal.Decimal) error { return nonNegative("total_price", v) }),
		optional(patch.PaymentMethod, validPaymentMethod),
	); err != nil {
		return entity.Order{}, err
	}
	return uc.update(ctx, "orders.update", id, patch)
}

// UpdateStatus cambia solo el estado de la orden; el resto de campos queda intacto.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id, status string) (entity.Order, error) {
	if err := validOrderStatus(status); err != nil {
		return entity.Order{}, err
	}
	return uc.update(ctx, "orders.update_status", id, entity.OrderPatch{Status: &status})
}

func (uc *OrderUseCase) update(ctx context.Context, op, id string, patch entity.OrderPatch) (entity.Order, error) {
	return run(ctx, uc.base, op,
		func(ctx context.Context) outcome.Result[entity.Order] { return uc.remote.Orders.Update(ctx, id, patch) },
		func(ctx context.Context) (entity.Order, error) {
			if err := firstErr(
				optional(patch.UserID, func(v string) error { return ensureExists(ctx, uc.local.Users, "user_id", v) }),
				optional(patch.ProductID, func(v string) error { return ensureExists(ctx, uc.local.Products, "product_id", v) }),
			); err != nil {
				return entity.Order{}, err
			}
			return uc.local.Orders.Put(ctx, id, func(o *entity.Order) error {
				patch.Apply(o)
				*o = o.StripJoins()
				return nil
			})
		},
	)
}

// Delete elimina una orden.
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	_, err := run(ctx, uc.base, "orders.delete",
		func(ctx context.Context) outcome.Result[struct{}] { return uc.remote.Orders.Delete(ctx, id) },
		func(ctx context.Context) (struct{}, error) { return struct{}{}, uc.local.Orders.Remove(ctx, id) },
	)
	return err
}

// ── Joins ─────────────────────────────────────────────────────────────────────

func orderUser(o *entity.Order) string                  { return o.UserID }
func orderProduct(o *entity.Order) string               { return o.ProductID }
func attachUser(o *entity.Order, u *entity.User)        { o.Users = u }
func attachProduct(o *entity.Order, p *entity.Product) { o.Products = p }

// joinRemote resuelve los joins contra el remoto. Si no se pueden resolver, la operación
// completa se considera no disponible y pasa al espejo: nunca se mezclan fuentes.
func (uc *OrderUseCase) joinRemote(ctx context.Context, res outcome.Result[[]entity.Order]) outcome.Result[[]entity.Order] {
	if res.Kind != outcome.KindOK {
		return res
	}
	orders := res.Value
	if err := firstErrFn(
		func() error {
			return resolveRefs(ctx, orders, orderUser, remoteFetch[entity.User, *entity.User](uc.remote.Users), attachUser)
		},
		func() error {
			return resolveRefs(ctx, orders, orderProduct, remoteFetch[entity.Product, *entity.Product](uc.remote.Products), attachProduct)
		},
	); err != nil {
		return outcome.Unavailable[[]entity.Order](err)
	}
	return outcome.OK(orders)
}

// joinLocal resuelve los joins contra el espejo local.
func (uc *OrderUseCase) joinLocal(ctx context.Context) func([]entity.Order, error) ([]entity.Order, error) {
	return func(orders []entity.Order, err error) ([]entity.Order, error) {
		if err != nil {
			return nil, err
		}
		if err := firstErrFn(
			func() error { return resolveRefs(ctx, orders, orderUser, uc.local.Users.GetMany, attachUser) },
			func() error { return resolveRefs(ctx, orders, orderProduct, uc.local.Products.GetMany, attachProduct) },
		); err != nil {
			return nil, err
		}
		return orders, nil
	}
}

func validOrderStatus(s string) error {
	if !entity.ValidOrderStatus(s) {
		return invalid("estado de orden %q no es válido", s)
	}
	return nil
}

func validPaymentMethod(m string) error {
	if !entity.ValidPaymentMethod(m) {
		return invalid("medio de pago %q no es válido", m)
	}
	return nil
}
