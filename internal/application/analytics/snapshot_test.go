package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/relojeria-admin/internal/application/analytics"
	"github.com/jhoicas/relojeria-admin/internal/application/dto"
	"github.com/jhoicas/relojeria-admin/internal/domain"
	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
)

var now = time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func order(id, user, product, status, total, payment string, age time.Duration) entity.Order {
	return entity.Order{
		ID: id, UserID: user, ProductID: product, Status: status,
		TotalPrice: dec(total), PaymentMethod: payment, CreatedAt: now.Add(-age),
	}
}

func product(id, brand, price string, stock int, created time.Time) entity.Product {
	return entity.Product{ID: id, Name: "Modelo " + id, Brand: brand, Price: dec(price), InventoryCount: stock, CreatedAt: created}
}

// ──────────────────────────────────────────────────────────────────────────────
// BuildSnapshot
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildSnapshot_DosOrdenes(t *testing.T) {
	orders := []entity.Order{
		order("o1", "u1", "p1", entity.OrderStatusCompleted, "100", "", time.Hour),
		order("o2", "u2", "p1", entity.OrderStatusPending, "200", "", time.Hour),
	}

	snap := analytics.BuildSnapshot(orders, nil, analytics.RangeAll, now, 0)

	assert.Equal(t, 2, snap.OrderCount)
	assert.True(t, dec("300").Equal(snap.TotalSales))
	assert.True(t, dec("150").Equal(snap.AverageOrderValue))
	assert.Equal(t, []dto.StatusCountDTO{
		{Status: entity.OrderStatusCompleted, Count: 1, Percentage: 50},
		{Status: entity.OrderStatusPending, Count: 1, Percentage: 50},
	}, snap.OrderStatus)
}

func TestBuildSnapshot_VacioEsCero(t *testing.T) {
	snap := analytics.BuildSnapshot(nil, nil, analytics.Range7Days, now, 5)

	assert.Zero(t, snap.OrderCount)
	assert.True(t, snap.TotalSales.IsZero())
	assert.True(t, snap.AverageOrderValue.IsZero())
	assert.NotNil(t, snap.OrderStatus)
	assert.Empty(t, snap.OrderStatus)
	assert.Empty(t, snap.TopProducts)
	assert.Empty(t, snap.BrandShare)
	assert.Equal(t, dto.CustomerSplitDTO{}, snap.Customers)
	require.NotNil(t, snap.From)
	assert.Equal(t, now.AddDate(0, 0, -7), *snap.From)
}

func TestBuildSnapshot_FiltraPorRango(t *testing.T) {
	orders := []entity.Order{
		order("o1", "u1", "p1", entity.OrderStatusCompleted, "100", "", 2*24*time.Hour),
		order("o2", "u1", "p1", entity.OrderStatusCompleted, "900", "", 40*24*time.Hour),
	}

	week := analytics.BuildSnapshot(orders, nil, analytics.Range7Days, now, 0)
	assert.Equal(t, 1, week.OrderCount)
	assert.True(t, dec("100").Equal(week.TotalSales))

	all := analytics.BuildSnapshot(orders, nil, analytics.RangeAll, now, 0)
	assert.Equal(t, 2, all.OrderCount)
	assert.Nil(t, all.From)

	old := analytics.BuildSnapshot(orders[1:], nil, analytics.Range30Days, now, 0)
	assert.Zero(t, old.OrderCount, "un rango sin órdenes produce ceros")
}

func TestBuildSnapshot_TopProductosDesempataPorAlta(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	products := []entity.Product{
		product("pB", "Omega", "5000", 1, t0.Add(time.Hour)), // dado de alta después
		product("pA", "Rolex", "9000", 1, t0),
		product("pC", "Cartier", "3000", 1, t0.Add(2*time.Hour)),
	}
	orders := []entity.Order{
		order("o1", "u1", "pB", entity.OrderStatusCompleted, "5000", "", time.Hour),
		order("o2", "u1", "pA", entity.OrderStatusCompleted, "9000", "", time.Hour),
		order("o3", "u2", "pC", entity.OrderStatusCompleted, "3000", "", time.Hour),
		order("o4", "u3", "pC", entity.OrderStatusCompleted, "3000", "", time.Hour),
	}

	snap := analytics.BuildSnapshot(orders, products, analytics.RangeAll, now, 2)

	require.Len(t, snap.TopProducts, 2)
	assert.Equal(t, "pC", snap.TopProducts[0].ProductID)
	assert.Equal(t, 2, snap.TopProducts[0].UnitsSold)
	assert.True(t, dec("6000").Equal(snap.TopProducts[0].Revenue))
	assert.Equal(t, "pA", snap.TopProducts[1].ProductID, "empate a 1 unidad: gana el más antiguo")
	assert.Equal(t, 2, snap.TopProducts[1].Rank)
	assert.Equal(t, "Rolex", snap.TopProducts[1].Brand)
}

func TestBuildSnapshot_MarcasClientesYPagos(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	products := []entity.Product{
		product("p1", "Rolex", "10000", 2, t0),
		product("p2", "Omega", "5000", 4, t0),
	}
	orders := []entity.Order{
		order("o1", "u1", "p1", entity.OrderStatusCompleted, "10000", entity.PaymentCard, time.Hour),
		order("o2", "u1", "p2", entity.OrderStatusShipped, "5000", "", time.Hour),
		order("o3", "u2", "p2", entity.OrderStatusCompleted, "5000", entity.PaymentCard, time.Hour),
		order("o4", "u3", "p-x", entity.OrderStatusCancelled, "0", entity.PaymentCash, time.Hour),
	}

	snap := analytics.BuildSnapshot(orders, products, analytics.RangeAll, now, 0)

	assert.Equal(t, 2, snap.TotalProducts)
	assert.Equal(t, 6, snap.InventoryUnits)
	assert.True(t, dec("40000").Equal(snap.InventoryValue))

	require.Len(t, snap.BrandShare, 3)
	assert.Equal(t, "Omega", snap.BrandShare[0].Brand, "empate en ingresos: orden alfabético")
	assert.True(t, dec("50").Equal(snap.BrandShare[0].Percentage))
	assert.Equal(t, "Rolex", snap.BrandShare[1].Brand)
	assert.Equal(t, analytics.UnknownBrand, snap.BrandShare[2].Brand)

	assert.Equal(t, dto.CustomerSplitDTO{New: 2, Returning: 1}, snap.Customers)

	require.Len(t, snap.PaymentMethods, 3)
	assert.Equal(t, entity.PaymentCard, snap.PaymentMethods[0].Method)
	assert.Equal(t, 2, snap.PaymentMethods[0].Count)
	assert.Equal(t, 50, snap.PaymentMethods[0].Percentage)
	assert.Equal(t, analytics.PaymentUnspecified, snap.PaymentMethods[1].Method)
	assert.Equal(t, 25, snap.PaymentMethods[1].Percentage)
}

func TestBuildSnapshot_PorcentajesRedondeados(t *testing.T) {
	orders := []entity.Order{
		order("o1", "u1", "p1", entity.OrderStatusPending, "1", "", time.Hour),
		order("o2", "u2", "p1", entity.OrderStatusPending, "1", "", time.Hour),
		order("o3", "u3", "p1", entity.OrderStatusShipped, "1", "", time.Hour),
	}
	snap := analytics.BuildSnapshot(orders, nil, analytics.RangeAll, now, 0)
	assert.Equal(t, 67, snap.OrderStatus[0].Percentage)
	assert.Equal(t, 33, snap.OrderStatus[1].Percentage)
	assert.True(t, dec("1").Equal(snap.AverageOrderValue))
}

// ──────────────────────────────────────────────────────────────────────────────
// TimeRange
// ──────────────────────────────────────────────────────────────────────────────

func TestParseTimeRange(t *testing.T) {
	r, err := analytics.ParseTimeRange("")
	require.NoError(t, err)
	assert.Equal(t, analytics.DefaultRange, r)

	r, err = analytics.ParseTimeRange(" 90D ")
	require.NoError(t, err)
	assert.Equal(t, analytics.Range90Days, r)

	_, err = analytics.ParseTimeRange("2w")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aggregator
// ──────────────────────────────────────────────────────────────────────────────

type listerFunc[T any] func(ctx context.Context) ([]T, error)

func (f listerFunc[T]) List(ctx context.Context) ([]T, error) { return f(ctx) }

func TestAggregator_ComputeSnapshot(t *testing.T) {
	orders := listerFunc[entity.Order](func(context.Context) ([]entity.Order, error) {
		return []entity.Order{order("o1", "u1", "p1", entity.OrderStatusCompleted, "250.555", "", time.Hour)}, nil
	})
	products := listerFunc[entity.Product](func(context.Context) ([]entity.Product, error) {
		return []entity.Product{product("p1", "Tudor", "250", 3, now)}, nil
	})

	snap, err := analytics.NewAggregator(orders, products).
		WithClock(func() time.Time { return now }).
		ComputeSnapshot(context.Background(), analytics.Range30Days, 0)

	require.NoError(t, err)
	assert.Equal(t, "30d", snap.Range)
	assert.Equal(t, 1, snap.OrderCount)
	assert.True(t, dec("250.56").Equal(snap.AverageOrderValue))
	assert.Equal(t, now, snap.GeneratedAt)
}

func TestAggregator_PropagaErrores(t *testing.T) {
	boom := errors.New("espejo ilegible")
	orders := listerFunc[entity.Order](func(context.Context) ([]entity.Order, error) { return nil, boom })
	products := listerFunc[entity.Product](func(context.Context) ([]entity.Product, error) { return nil, nil })

	_, err := analytics.NewAggregator(orders, products).ComputeSnapshot(context.Background(), analytics.RangeAll, 0)
	assert.ErrorIs(t, err, boom)
}
