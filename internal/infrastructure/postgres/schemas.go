package postgres

import (
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
	"github.com/jhoicas/relojeria-admin/internal/domain/repository"
)

// Tablas remotas tipadas por entidad.
type (
	UserTable           = Table[entity.User, entity.UserPatch]
	ProductTable        = Table[entity.Product, entity.ProductPatch]
	OrderTable          = Table[entity.Order, entity.OrderPatch]
	ServiceRequestTable = Table[entity.ServiceRequest, entity.ServiceRequestPatch]
)

// NewUserTable tabla remota users.
func NewUserTable(c *Client) *UserTable { return newTable[entity.User, entity.UserPatch](c, userSchema) }

// NewProductTable tabla remota products.
func NewProductTable(c *Client) *ProductTable {
	return newTable[entity.Product, entity.ProductPatch](c, productSchema)
}

// NewOrderTable tabla remota orders. Los joins no se leen aquí: los resuelve el caso de uso.
func NewOrderTable(c *Client) *OrderTable {
	return newTable[entity.Order, entity.OrderPatch](c, orderSchema)
}

// NewServiceRequestTable tabla remota service_requests.
func NewServiceRequestTable(c *Client) *ServiceRequestTable {
	return newTable[entity.ServiceRequest, entity.ServiceRequestPatch](c, serviceRequestSchema)
}

// nullIfEmpty guarda NULL en columnas opcionales de texto.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// ── users ──────────────────────────────────────────────────────────────────

var userSchema = schema[entity.User]{
	table:      "users",
	selectList: `id::text, email, COALESCE(name, ''), role, created_at`,
	insert: func(u *entity.User) ([]string, []any) {
		return []string{"email", "name", "role"}, []any{u.Email, u.Name, u.Role}
	},
	scan: func(row pgx.Row) (entity.User, error) {
		var u entity.User
		err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt)
		return u, err
	},
}

// ── products ───────────────────────────────────────────────────────────────

var productSchema = schema[entity.Product]{
	table: "products",
	selectList: `id::text, name, COALESCE(brand, ''), COALESCE(description, ''), price, inventory_count,
		COALESCE(image_url, ''), COALESCE(movement_type, ''), COALESCE(case_material, ''),
		COALESCE(water_resistance, ''), COALESCE(complications, '{}'::text[]), COALESCE(diameter, ''),
		COALESCE(reference_number, ''), created_at`,
	insert: func(p *entity.Product) ([]string, []any) {
		complications := p.Complications
		if complications == nil {
			complications = []string{}
		}
		return []string{
				"name", "brand", "description", "price", "inventory_count", "image_url",
				"movement_type", "case_material", "water_resistance", "complications", "diameter", "reference_number",
			}, []any{
				p.Name, p.Brand, p.Description, p.Price, p.InventoryCount, p.ImageURL,
				p.MovementType, p.CaseMaterial, p.WaterResistance, complications, p.Diameter, p.ReferenceNumber,
			}
	},
	scan: func(row pgx.Row) (entity.Product, error) {
		var p entity.Product
		err := row.Scan(
			&p.ID, &p.Name, &p.Brand, &p.Description, &p.Price, &p.InventoryCount,
			&p.ImageURL, &p.MovementType, &p.CaseMaterial, &p.WaterResistance, &p.Complications,
			&p.Diameter, &p.ReferenceNumber, &p.CreatedAt,
		)
		return p, err
	},
}

// ── orders ─────────────────────────────────────────────────────────────────

var orderSchema = schema[entity.Order]{
	table:      "orders",
	selectList: `id::text, user_id::text, product_id::text, status, total_price, COALESCE(payment_method, ''), created_at`,
	insert: func(o *entity.Order) ([]string, []any) {
		return []string{"user_id", "product_id", "status", "total_price", "payment_method"},
			[]any{o.UserID, o.ProductID, o.Status, o.TotalPrice, nullIfEmpty(o.PaymentMethod)}
	},
	scan: func(row pgx.Row) (entity.Order, error) {
		var o entity.Order
		err := row.Scan(&o.ID, &o.UserID, &o.ProductID, &o.Status, &o.TotalPrice, &o.PaymentMethod, &o.CreatedAt)
		return o, err
	},
}

// ── service_requests ───────────────────────────────────────────────────────

var serviceRequestSchema = schema[entity.ServiceRequest]{
	table: "service_requests",
	selectList: `id::text, customer_name, COALESCE(customer_email, ''), COALESCE(customer_phone, ''),
		COALESCE(watch_brand, ''), COALESCE(watch_model, ''), COALESCE(serial_number, ''),
		COALESCE(service_type, ''), COALESCE(issue_description, ''), COALESCE(estimated_cost, 0),
		status, COALESCE(technician, ''), received_date, completion_date, created_at`,
	insert: func(s *entity.ServiceRequest) ([]string, []any) {
		return []string{
				"customer_name", "customer_email", "customer_phone", "watch_brand", "watch_model",
				"serial_number", "service_type", "issue_description", "estimated_cost", "status",
				"technician", "received_date", "completion_date",
			}, []any{
				s.CustomerName, s.CustomerEmail, s.CustomerPhone, s.WatchBrand, s.WatchModel,
				s.SerialNumber, s.ServiceType, s.IssueDescription, s.EstimatedCost, s.Status,
				s.Technician, s.ReceivedDate, s.CompletionDate,
			}
	},
	scan: func(row pgx.Row) (entity.ServiceRequest, error) {
		var s entity.ServiceRequest
		err := row.Scan(
			&s.ID, &s.CustomerName, &s.CustomerEmail, &s.CustomerPhone,
			&s.WatchBrand, &s.WatchModel, &s.SerialNumber,
			&s.ServiceType, &s.IssueDescription, &s.EstimatedCost,
			&s.Status, &s.Technician, &s.ReceivedDate, &s.CompletionDate, &s.CreatedAt,
		)
		return s, err
	},
}

var (
	_ repository.RemoteRepository[entity.User, entity.UserPatch]                     = (*UserTable)(nil)
	_ repository.RemoteRepository[entity.Product, entity.ProductPatch]               = (*ProductTable)(nil)
	_ repository.RemoteRepository[entity.Order, entity.OrderPatch]                   = (*OrderTable)(nil)
	_ repository.RemoteRepository[entity.ServiceRequest, entity.ServiceRequestPatch] = (*ServiceRequestTable)(nil)
)

// NewRemoteSet construye las tablas remotas de todas las entidades sobre c.
func NewRemoteSet(c *Client) repository.RemoteSet {
	return repository.RemoteSet{
		Users:           NewUserTable(c),
		Products:        NewProductTable(c),
		Orders:          NewOrderTable(c),
		ServiceRequests: NewServiceRequestTable(c),
	}
}
