package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un reloj del catálogo.
// Price es no negativo; InventoryCount son unidades disponibles.
type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Brand           string          `json:"brand"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	InventoryCount  int             `json:"inventory_count"`
	ImageURL        string          `json:"image_url"`
	MovementType    string          `json:"movement_type"`   // automatic, manual, quartz
	CaseMaterial    string          `json:"case_material"`
	WaterResistance string          `json:"water_resistance"` // ej: "100m"
	Complications   []string        `json:"complications"`
	Diameter        string          `json:"diameter"` // ej: "41mm"
	ReferenceNumber string          `json:"reference_number"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (p *Product) RecordID() string           { return p.ID }
func (p *Product) RecordCreatedAt() time.Time { return p.CreatedAt }
func (p *Product) AssignIdentity(id string, createdAt time.Time) {
	p.ID = id
	p.CreatedAt = createdAt
}

// ProductPatch actualización parcial de Product.
type ProductPatch struct {
	Name            *string          `json:"name"`
	Brand           *string          `json:"brand"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	InventoryCount  *int             `json:"inventory_count"`
	ImageURL        *string          `json:"image_url"`
	MovementType    *string          `json:"movement_type"`
	CaseMaterial    *string          `json:"case_material"`
	WaterResistance *string          `json:"water_resistance"`
	Complications   *[]string        `json:"complications"`
	Diameter        *string          `json:"diameter"`
	ReferenceNumber *string          `json:"reference_number"`
}

// Apply copia los campos presentes del patch sobre p.
func (pt ProductPatch) Apply(p *Product) {
	for _, f := range pt.Fields() {
		switch f.Column {
		case "name":
			p.Name = f.Value.(string)
		case "brand":
			p.Brand = f.Value.(string)
		case "description":
			p.Description = f.Value.(string)
		case "price":
			p.Price = f.Value.(decimal.Decimal)
		case "inventory_count":
			p.InventoryCount = f.Value.(int)
		case "image_url":
			p.ImageURL = f.Value.(string)
		case "movement_type":
			p.MovementType = f.Value.(string)
		case "case_material":
			p.CaseMaterial = f.Value.(string)
		case "water_resistance":
			p.WaterResistance = f.Value.(string)
		case "complications":
			p.Complications = f.Value.([]string)
		case "diameter":
			p.Diameter = f.Value.(string)
		case "reference_number":
			p.ReferenceNumber = f.Value.(string)
		}
	}
}

// Fields devuelve las columnas presentes en el patch.
func (pt ProductPatch) Fields() []Field {
	var f []Field
	add := func(col string, present bool, v func() any) {
		if present {
			f = append(f, Field{Column: col, Value: v()})
		}
	}
	add("name", pt.Name != nil, func() any { return *pt.Name })
	add("brand", pt.Brand != nil, func() any { return *pt.Brand })
	add("description", pt.Description != nil, func() any { return *pt.Description })
	add("price", pt.Price != nil, func() any { return *pt.Price })
	add("inventory_count", pt.InventoryCount != nil, func() any { return *pt.InventoryCount })
	add("image_url", pt.ImageURL != nil, func() any { return *pt.ImageURL })
	add("movement_type", pt.MovementType != nil, func() any { return *pt.MovementType })
	add("case_material", pt.CaseMaterial != nil, func() any { return *pt.CaseMaterial })
	add("water_resistance", pt.WaterResistance != nil, func() any { return *pt.WaterResistance })
	add("complications", pt.Complications != nil, func() any { return *pt.Complications })
	add("diameter", pt.Diameter != nil, func() any { return *pt.Diameter })
	add("reference_number", pt.ReferenceNumber != nil, func() any { return *pt.ReferenceNumber })
	return f
}
