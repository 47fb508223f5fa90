package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de Order.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Medios de pago admitidos (opcional en la orden).
const (
	PaymentCard      = "card"
	PaymentCash      = "cash"
	PaymentTransfer  = "transfer"
	PaymentFinancing = "financing"
)

// ValidOrderStatus indica si s es un estado de orden admitido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentMethod indica si m es un medio de pago admitido. Vacío es válido (sin especificar).
func ValidPaymentMethod(m string) bool {
	switch m {
	case "", PaymentCard, PaymentCash, PaymentTransfer, PaymentFinancing:
		return true
	}
	return false
}

// Order pedido de un usuario sobre un producto.
// Users y Products son joins desnormalizados que se llenan al leer, desde la misma fuente que la orden;
// nunca se persisten.
type Order struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	ProductID     string          `json:"product_id"`
	Status        string          `json:"status"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`

	Users    *User    `json:"users,omitempty"`
	Products *Product `json:"products,omitempty"`
}

func (o *Order) RecordID() string           { return o.ID }
func (o *Order) RecordCreatedAt() time.Time { return o.CreatedAt }
func (o *Order) AssignIdentity(id string, createdAt time.Time) {
	o.ID = id
	o.CreatedAt = createdAt
}

// StripJoins devuelve la orden sin los joins (forma persistida).
func (o Order) StripJoins() Order {
	o.Users = nil
	o.Products = nil
	return o
}

// OrderPatch actualización parcial de Order.
type OrderPatch struct {
	UserID        *string          `json:"user_id"`
	ProductID     *string          `json:"product_id"`
	Status        *string          `json:"status"`
	TotalPrice    *decimal.Decimal `json:"total_price"`
	PaymentMethod *string          `json:"payment_method"`
}

// Apply copia los campos presentes del patch sobre o.
func (p OrderPatch) Apply(o *Order) {
	if p.UserID != nil {
		o.UserID = *p.UserID
	}
	if p.ProductID != nil {
		o.ProductID = *p.ProductID
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.TotalPrice != nil {
		o.TotalPrice = *p.TotalPrice
	}
	if p.PaymentMethod != nil {
		o.PaymentMethod = *p.PaymentMethod
	}
}

// Fields devuelve las columnas presentes en el patch.
func (p OrderPatch) Fields() []Field {
	var f []Field
	if p.UserID != nil {
		f = append(f, Field{Column: "user_id", Value: *p.UserID})
	}
	if p.ProductID != nil {
		f = append(f, Field{Column: "product_id", Value: *p.ProductID})
	}
	if p.Status != nil {
		f = append(f, Field{Column: "status", Value: *p.Status})
	}
	if p.TotalPrice != nil {
		f = append(f, Field{Column: "total_price", Value: *p.TotalPrice})
	}
	if p.PaymentMethod != nil {
		f = append(f, Field{Column: "payment_method", Value: *p.PaymentMethod})
	}
	return f
}
