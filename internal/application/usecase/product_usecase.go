package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
	"github.com/jhoicas/relojeria-admin/internal/domain/outcome"
)

// ProductUseCase accesor del catálogo de relojes.
type ProductUseCase struct {
	*base
}

// List devuelve el catálogo, más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context) ([]entity.Product, error) {
	return run(ctx, uc.base, "products.list", uc.remote.Products.List, uc.local.Products.List)
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (entity.Product, error) {
	return run(ctx, uc.base, "products.get",
		func(ctx context.Context) outcome.Result[entity.Product] { return uc.remote.Products.GetByID(ctx, id) },
		func(ctx context.Context) (entity.Product, error) { return uc.local.Products.Get(ctx, id) },
	)
}

// Create valida y crea un producto.
func (uc *ProductUseCase) Create(ctx context.Context, in entity.Product) (entity.Product, error) {
	in.ID, in.CreatedAt = "", time.Time{}
	if in.Complications == nil {
		in.Complications = []string{}
	}
	if err := firstErr(
		required("name", in.Name),
		required("brand", in.Brand),
		nonNegative("price", in.Price),
		validInventory(in.InventoryCount),
	); err != nil {
		return entity.Product{}, err
	}
	return run(ctx, uc.base, "products.create",
		func(ctx context.Context) outcome.Result[entity.Product] { return uc.remote.Products.Create(ctx, in) },
		func(ctx context.Context) (entity.Product, error) { return uc.local.Products.Insert(ctx, in) },
	)
}

// Update aplica una actualización parcial.
func (uc *ProductUseCase) Update(ctx context.Context, id string, patch entity.ProductPatch) (entity.Product, error) {
	if err := firstErr(
		optional(patch.Name, func(v string) error { return required("name", v) }),
		optional(patch.Brand, func(v string) error { return required("brand", v) }),
		optional(patch.Price, func(v decimal.Decimal) error { return nonNegative("price", v) }),
		optional(patch.InventoryCount, validInventory),
	); err != nil {
		return entity.Product{}, err
	}
	return run(ctx, uc.base, "products.update",
		func(ctx context.Context) outcome.Result[entity.Product] {
			return uc.remote.Products.Update(ctx, id, patch)
		},
		func(ctx context.Context) (entity.Product, error) {
			return uc.local.Products.Put(ctx, id, func(p *entity.Product) error {
				patch.Apply(p)
				return nil
			})
		},
	)
}

// Delete elimina un producto. En el espejo local falla con ErrConflict si tiene órdenes.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	_, err := run(ctx, uc.base, "products.delete",
		func(ctx context.Context) outcome.Result[struct{}] { return uc.remote.Products.Delete(ctx, id) },
		func(ctx context.Context) (struct{}, error) {
			if _, err := uc.local.Products.Get(ctx, id); err != nil {
				return struct{}{}, err
			}
			if err := ensureUnreferenced(ctx, uc.local.Orders, "órdenes",
				func(o *entity.Order) bool { return o.ProductID == id }); err != nil {
				return struct{}{}, err
			}
			return struct{}{}, uc.local.Products.Remove(ctx, id)
		},
	)
	return err
}

func validInventory(n int) error {
	if n < 0 {
		return invalid("inventory_count no puede ser negativo")
	}
	return nil
}
