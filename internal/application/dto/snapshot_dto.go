package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Snapshot de analítica ─────────────────────────────────────────────────────

// SnapshotRequest parámetros para GET /api/analytics/snapshot.
type SnapshotRequest struct {
	Range string `query:"range"` // 7d|30d|90d|365d|all (default 30d)
	Top   int    `query:"top"`   // N del ranking de productos (default 5)
}

// SnapshotDTO agregado derivado de órdenes y productos; no se persiste.
type SnapshotDTO struct {
	Range             string          `json:"range"`
	From              *time.Time      `json:"from,omitempty"` // nil con range=all
	GeneratedAt       time.Time       `json:"generated_at"`
	TotalSales        decimal.Decimal `json:"total_sales"`
	OrderCount        int             `json:"order_count"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"` // redondeado a 2 decimales

	TotalProducts  int             `json:"total_products"`
	InventoryUnits int             `json:"inventory_units"`
	InventoryValue decimal.Decimal `json:"inventory_value"` // Σ price * inventory_count

	BrandShare     []BrandShareDTO    `json:"brand_share"`
	TopProducts    []TopProductDTO    `json:"top_products"`
	OrderStatus    []StatusCountDTO   `json:"order_status"`
	Customers      CustomerSplitDTO   `json:"customers"`
	PaymentMethods []PaymentMethodDTO `json:"payment_methods"`
}

// BrandShareDTO ingresos por marca y su participación sobre el total.
type BrandShareDTO struct {
	Brand      string          `json:"brand"`
	Revenue    decimal.Decimal `json:"revenue"`
	Percentage decimal.Decimal `json:"percentage"` // 0-100, 2 decimales
}

// TopProductDTO producto del ranking por unidades vendidas (una orden = una unidad).
type TopProductDTO struct {
	Rank      int             `json:"rank"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	UnitsSold int             `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// StatusCountDTO entrada del histograma de estados.
type StatusCountDTO struct {
	Status     string `json:"status"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"` // count / total, redondeado al entero más cercano
}

// CustomerSplitDTO clientes con una sola orden (new) frente a los que repiten (returning).
type CustomerSplitDTO struct {
	New       int `json:"new"`
	Returning int `json:"returning"`
}

// PaymentMethodDTO desglose por medio de pago ("unspecified" si la orden no lo trae).
type PaymentMethodDTO struct {
	Method     string          `json:"method"`
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
	Percentage int             `json:"percentage"`
}
