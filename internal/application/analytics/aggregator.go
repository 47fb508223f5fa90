// Package analytics deriva el snapshot de ventas e inventario a partir de las colecciones
// que entregan los accesores. No tiene almacenamiento propio ni habla con las fuentes.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/relojeria-admin/internal/application/dto"
	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
)

// OrderLister puerto de lectura de órdenes (implementado por usecase.OrderUseCase).
type OrderLister interface {
	List(ctx context.Context) ([]entity.Order, error)
}

// ProductLister puerto de lectura del catálogo (implementado por usecase.ProductUseCase).
type ProductLister interface {
	List(ctx context.Context) ([]entity.Product, error)
}

// Aggregator calcula snapshots bajo demanda.
type Aggregator struct {
	orders   OrderLister
	products ProductLister
	clock    func() time.Time
}

// NewAggregator construye el agregador.
func NewAggregator(orders OrderLister, products ProductLister) *Aggregator {
	return &Aggregator{orders: orders, products: products, clock: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (a *Aggregator) WithClock(clock func() time.Time) *Aggregator {
	a.clock = clock
	return a
}

// ComputeSnapshot obtiene órdenes y productos en paralelo y agrega sobre rng.
func (a *Aggregator) ComputeSnapshot(ctx context.Context, rng TimeRange, topN int) (*dto.SnapshotDTO, error) {
	type ordersResult struct {
		orders []entity.Order
		err    error
	}
	type productsResult struct {
		products []entity.Product
		err      error
	}

	ordersCh := make(chan ordersResult, 1)
	productsCh := make(chan productsResult, 1)

	go func() {
		orders, err := a.orders.List(ctx)
		ordersCh <- ordersResult{orders, err}
	}()
	go func() {
		products, err := a.products.List(ctx)
		productsCh <- productsResult{products, err}
	}()

	orders := <-ordersCh
	products := <-productsCh

	if orders.err != nil {
		return nil, fmt.Errorf("snapshot: órdenes: %w", orders.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("snapshot: productos: %w", products.err)
	}

	snap := BuildSnapshot(orders.orders, products.products, rng, a.clock().UTC(), topN)
	return &snap, nil
}
