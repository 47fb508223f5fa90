package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/relojeria-admin/internal/application/dto"
	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
)

// DefaultTopN tamaño del ranking de productos si no se indica.
const DefaultTopN = 5

// PaymentUnspecified etiqueta de las órdenes sin medio de pago.
const PaymentUnspecified = "unspecified"

// UnknownBrand marca de las órdenes cuyo producto no se encuentra.
const UnknownBrand = "unknown"

var hundred = decimal.NewFromInt(100)

// BuildSnapshot calcula el snapshot a partir de las órdenes y productos dados.
// Función pura: el resultado depende solo de sus argumentos.
//
//   - Las órdenes se filtran por created_at según rng antes de agregar.
//   - Estados y medios de pago se listan en orden de primera aparición.
//   - El ranking de productos desempata por orden de alta del producto (created_at ascendente).
//   - Un conjunto vacío produce agregados en cero, nunca error.
func BuildSnapshot(orders []entity.Order, products []entity.Product, rng TimeRange, now time.Time, topN int) dto.SnapshotDTO {
	if topN <= 0 {
		topN = DefaultTopN
	}
	snap := dto.SnapshotDTO{
		Range:             string(rng),
		GeneratedAt:       now,
		TotalSales:        decimal.Zero,
		AverageOrderValue: decimal.Zero,
		InventoryValue:    decimal.Zero,
		BrandShare:        []dto.BrandShareDTO{},
		TopProducts:       []dto.TopProductDTO{},
		OrderStatus:       []dto.StatusCountDTO{},
		PaymentMethods:    []dto.PaymentMethodDTO{},
	}
	if from, ok := rng.Since(now); ok {
		snap.From = &from
	}

	// ── Inventario ─────────────────────────────────────────────────────────────
	byID := make(map[string]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
		snap.TotalProducts++
		snap.InventoryUnits += p.InventoryCount
		snap.InventoryValue = snap.InventoryValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.InventoryCount))))
	}

	// ── Filtro por rango ───────────────────────────────────────────────────────
	filtered := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if rng.Contains(now, o.CreatedAt) {
			filtered = append(filtered, o)
		}
	}
	snap.OrderCount = len(filtered)
	if snap.OrderCount == 0 {
		return snap
	}

	for _, o := range filtered {
		snap.TotalSales = snap.TotalSales.Add(o.TotalPrice)
	}
	snap.AverageOrderValue = snap.TotalSales.Div(decimal.NewFromInt(int64(snap.OrderCount))).Round(2)

	snap.BrandShare = brandShare(filtered, byID, snap.TotalSales)
	snap.TopProducts = topProducts(filtered, products, byID, topN)
	snap.OrderStatus = statusHistogram(filtered)
	snap.Customers = customerSplit(filtered)
	snap.PaymentMethods = paymentBreakdown(filtered)
	return snap
}

// percent redondea count/total*100 al entero más cercano.
func percent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) * 100 / float64(total)))
}

// productOf resuelve el producto de la orden: primero el join, luego el catálogo.
func productOf(o entity.Order, byID map[string]entity.Product) (entity.Product, bool) {
	if o.Products != nil {
		return *o.Products, true
	}
	p, ok := byID[o.ProductID]
	return p, ok
}

func brandShare(orders []entity.Order, byID map[string]entity.Product, total decimal.Decimal) []dto.BrandShareDTO {
	revenue := make(map[string]decimal.Decimal)
	for _, o := range orders {
		brand := UnknownBrand
		if p, ok := productOf(o, byID); ok && p.Brand != "" {
			brand = p.Brand
		}
		revenue[brand] = revenue[brand].Add(o.TotalPrice)
	}
	out := make([]dto.BrandShareDTO, 0, len(revenue))
	for brand, rev := range revenue {
		pct := decimal.Zero
		if !total.IsZero() {
			pct = rev.Div(total).Mul(hundred).Round(2)
		}
		out = append(out, dto.BrandShareDTO{Brand: brand, Revenue: rev, Percentage: pct})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].Brand < out[j].Brand
	})
	return out
}

func topProducts(orders []entity.Order, products []entity.Product, byID map[string]entity.Product, topN int) []dto.TopProductDTO {
	type tally struct {
		id      string
		units   int
		revenue decimal.Decimal
	}
	tallies := make(map[string]*tally)
	for _, o := range orders {
		t, ok := tallies[o.ProductID]
		if !ok {
			t = &tally{id: o.ProductID, revenue: decimal.Zero}
			tallies[o.ProductID] = t
		}
		t.units++
		t.revenue = t.revenue.Add(o.TotalPrice)
	}

	// Orden de alta: posición por created_at ascendente; desconocidos al final.
	insertion := make(map[string]int, len(products))
	byAge := make([]entity.Product, len(products))
	copy(byAge, products)
	sort.SliceStable(byAge, func(i, j int) bool {
		if !byAge[i].CreatedAt.Equal(byAge[j].CreatedAt) {
			return byAge[i].CreatedAt.Before(byAge[j].CreatedAt)
		}
		return byAge[i].ID < byAge[j].ID
	})
	for i, p := range byAge {
		insertion[p.ID] = i
	}
	rank := func(id string) int {
		if i, ok := insertion[id]; ok {
			return i
		}
		return math.MaxInt
	}

	list := make([]*tally, 0, len(tallies))
	for _, t := range tallies {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].units != list[j].units {
			return list[i].units > list[j].units
		}
		if ri, rj := rank(list[i].id), rank(list[j].id); ri != rj {
			return ri < rj
		}
		return list[i].id < list[j].id
	})
	if len(list) > topN {
		list = list[:topN]
	}

	out := make([]dto.TopProductDTO, 0, len(list))
	for i, t := range list {
		item := dto.TopProductDTO{Rank: i + 1, ProductID: t.id, UnitsSold: t.units, Revenue: t.revenue}
		if p, ok := byID[t.id]; ok {
			item.Name, item.Brand = p.Name, p.Brand
		}
		out = append(out, item)
	}
	return out
}

func statusHistogram(orders []entity.Order) []dto.StatusCountDTO {
	index := make(map[string]int)
	out := make([]dto.StatusCountDTO, 0)
	for _, o := range orders {
		i, ok := index[o.Status]
		if !ok {
			i = len(out)
			index[o.Status] = i
			out = append(out, dto.StatusCountDTO{Status: o.Status})
		}
		out[i].Count++
	}
	for i := range out {
		out[i].Percentage = percent(out[i].Count, len(orders))
	}
	return out
}

func customerSplit(orders []entity.Order) dto.CustomerSplitDTO {
	perUser := make(map[string]int)
	for _, o := range orders {
		perUser[o.UserID]++
	}
	var split dto.CustomerSplitDTO
	for _, n := range perUser {
		if n > 1 {
			split.Returning++
		} else {
			split.New++
		}
	}
	return split
}

func paymentBreakdown(orders []entity.Order) []dto.PaymentMethodDTO {
	index := make(map[string]int)
	out := make([]dto.PaymentMethodDTO, 0)
	for _, o := range orders {
		method := o.PaymentMethod
		if method == "" {
			method = PaymentUnspecified
		}
		i, ok := index[method]
		if !ok {
			i = len(out)
			index[method] = i
			out = append(out, dto.PaymentMethodDTO{Method: method, Total: decimal.Zero})
		}
		out[i].Count++
		out[i].Total = out[i].Total.Add(o.TotalPrice)
	}
	for i := range out {
		out[i].Percentage = percent(out[i].Count, len(orders))
	}
	return out
}
