package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
)

// Data conjunto inicial del espejo local.
type Data struct {
	Users           []entity.User
	Products        []entity.Product
	Orders          []entity.Order
	ServiceRequests []entity.ServiceRequest
}

// IDs fijos de la semilla. Nunca colisionan con los generados (UUIDv7 local, UUIDv4 remoto).
const (
	UserAdminID    = "seed-usr-001"
	UserManagerID  = "seed-usr-002"
	UserCustomer1  = "seed-usr-003"
	UserCustomer2  = "seed-usr-004"
	ProductSubmID  = "seed-prd-001"
	ProductSpeedID = "seed-prd-002"
	ProductNautID  = "seed-prd-003"
	ProductRoyalID = "seed-prd-004"
	ProductSeaID   = "seed-prd-005"
	ProductTankID  = "seed-prd-006"
)

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Dataset devuelve una copia nueva del conjunto inicial (relojería de lujo).
func Dataset() Data {
	return Data{
		Users: []entity.User{
			{ID: UserAdminID, Email: "admin@relojeria.co", Name: "Laura Gómez", Role: entity.RoleAdmin, CreatedAt: at("2025-01-05T09:00:00Z")},
			{ID: UserManagerID, Email: "gerencia@relojeria.co", Name: "Andrés Pardo", Role: entity.RoleManager, CreatedAt: at("2025-01-06T09:00:00Z")},
			{ID: UserCustomer1, Email: "camila.rios@example.com", Name: "Camila Ríos", Role: entity.RoleCustomer, CreatedAt: at("2025-02-11T15:30:00Z")},
			{ID: UserCustomer2, Email: "julian.mora@example.com", Name: "Julián Mora", Role: entity.RoleCustomer, CreatedAt: at("2025-03-02T18:45:00Z")},
		},
		Products: []entity.Product{
			{
				ID: ProductSubmID, Name: "Submariner Date", Brand: "Rolex",
				Description: "Reloj de buceo con bisel giratorio Cerachrom.",
				Price:       money("10250.00"), InventoryCount: 3,
				ImageURL:     "https://images.relojeria.co/submariner.jpg",
				MovementType: "automatic", CaseMaterial: "Oystersteel", WaterResistance: "300m",
				Complications: []string{"date"}, Diameter: "41mm", ReferenceNumber: "126610LN",
				CreatedAt: at("2025-01-10T10:00:00Z"),
			},
			{
				ID: ProductSpeedID, Name: "Speedmaster Moonwatch", Brand: "Omega",
				Description: "Cronógrafo de carga manual certificado por la NASA.",
				Price:       money("7000.00"), InventoryCount: 5,
				ImageURL:     "https://images.relojeria.co/speedmaster.jpg",
				MovementType: "manual", CaseMaterial: "Acero inoxidable", WaterResistance: "50m",
				Complications: []string{"chronograph", "tachymeter"}, Diameter: "42mm", ReferenceNumber: "310.30.42.50.01.001",
				CreatedAt: at("2025-01-10T11:00:00Z"),
			},
			{
				ID: ProductNautID, Name: "Nautilus", Brand: "Patek Philippe",
				Description: "Deportivo de lujo con esfera azul degradada.",
				Price:       money("35000.00"), InventoryCount: 1,
				ImageURL:     "https://images.relojeria.co/nautilus.jpg",
				MovementType: "automatic", CaseMaterial: "Acero inoxidable", WaterResistance: "120m",
				Complications: []string{"date"}, Diameter: "40mm", ReferenceNumber: "5711/1A-010",
				CreatedAt: at("2025-01-12T09:30:00Z"),
			},
			{
				ID: ProductRoyalID, Name: "Royal Oak", Brand: "Audemars Piguet",
				Description: "Bisel octogonal y brazalete integrado.",
				Price:       money("29900.00"), InventoryCount: 2,
				ImageURL:     "https://images.relojeria.co/royaloak.jpg",
				MovementType: "automatic", CaseMaterial: "Acero inoxidable", WaterResistance: "50m",
				Complications: []string{"date"}, Diameter: "41mm", ReferenceNumber: "15510ST.OO.1320ST.06",
				CreatedAt: at("2025-01-15T14:00:00Z"),
			},
			{
				ID: ProductSeaID, Name: "Seamaster Diver 300M", Brand: "Omega",
				Description: "Buceo con válvula de helio y esfera de olas.",
				Price:       money("5600.00"), InventoryCount: 8,
				ImageURL:     "https://images.relojeria.co/seamaster.jpg",
				MovementType: "automatic", CaseMaterial: "Acero inoxidable", WaterResistance: "300m",
				Complications: []string{"helium escape valve"}, Diameter: "42mm", ReferenceNumber: "210.30.42.20.03.001",
				CreatedAt: at("2025-02-01T10:00:00Z"),
			},
			{
				ID: ProductTankID, Name: "Tank Must", Brand: "Cartier",
				Description: "Caja rectangular clásica, movimiento de cuarzo.",
				Price:       money("3150.00"), InventoryCount: 6,
				ImageURL:     "https://images.relojeria.co/tank.jpg",
				MovementType: "quartz", CaseMaterial: "Acero inoxidable", WaterResistance: "30m",
				Complications: []string{}, Diameter: "33.7mm", ReferenceNumber: "WSTA0041",
				CreatedAt: at("2025-02-03T12:00:00Z"),
			},
		},
		Orders: []entity.Order{
			{ID: "seed-ord-001", UserID: UserCustomer1, ProductID: ProductSubmID, Status: entity.OrderStatusCompleted, TotalPrice: money("10250.00"), PaymentMethod: entity.PaymentCard, CreatedAt: at("2025-03-01T16:20:00Z")},
			{ID: "seed-ord-002", UserID: UserCustomer2, ProductID: ProductSpeedID, Status: entity.OrderStatusShipped, TotalPrice: money("7000.00"), PaymentMethod: entity.PaymentTransfer, CreatedAt: at("2025-03-05T10:10:00Z")},
			{ID: "seed-ord-003", UserID: UserCustomer1, ProductID: ProductSeaID, Status: entity.OrderStatusCompleted, TotalPrice: money("5600.00"), PaymentMethod: entity.PaymentCard, CreatedAt: at("2025-03-18T11:00:00Z")},
			{ID: "seed-ord-004", UserID: UserCustomer2, ProductID: ProductTankID, Status: entity.OrderStatusPending, TotalPrice: money("3150.00"), PaymentMethod: entity.PaymentCash, CreatedAt: at("2025-04-02T09:40:00Z")},
			{ID: "seed-ord-005", UserID: UserCustomer1, ProductID: ProductSpeedID, Status: entity.OrderStatusProcessing, TotalPrice: money("7000.00"), PaymentMethod: entity.PaymentFinancing, CreatedAt: at("2025-04-10T17:25:00Z")},
			{ID: "seed-ord-006", UserID: UserCustomer2, ProductID: ProductRoyalID, Status: entity.OrderStatusCancelled, TotalPrice: money("29900.00"), PaymentMethod: entity.PaymentTransfer, CreatedAt: at("2025-04-21T13:05:00Z")},
			{ID: "seed-ord-007", UserID: UserCustomer1, ProductID: ProductSeaID, Status: entity.OrderStatusPending, TotalPrice: money("5600.00"), CreatedAt: at("2025-05-03T08:15:00Z")},
			{ID: "seed-ord-008", UserID: UserCustomer2, ProductID: ProductSubmID, Status: entity.OrderStatusCompleted, TotalPrice: money("10250.00"), PaymentMethod: entity.PaymentCard, CreatedAt: at("2025-05-12T19:30:00Z")},
		},
		ServiceRequests: []entity.ServiceRequest{
			{
				ID: "seed-srv-001", CustomerName: "Mariana Torres", CustomerEmail: "mariana.torres@example.com", CustomerPhone: "+57 300 555 0101",
				WatchBrand: "Rolex", WatchModel: "Datejust 36", SerialNumber: "K1234567",
				ServiceType: "overhaul", IssueDescription: "Atrasa 40 segundos diarios.",
				EstimatedCost: money("850.00"), Status: entity.ServiceStatusInProgress, Technician: "Hernán Castillo",
				ReceivedDate: at("2025-04-01T10:00:00Z"), CreatedAt: at("2025-04-01T10:00:00Z"),
			},
			{
				ID: "seed-srv-002", CustomerName: "Felipe Arango", CustomerEmail: "felipe.arango@example.com", CustomerPhone: "+57 310 555 0202",
				WatchBrand: "Omega", WatchModel: "Seamaster Aqua Terra", SerialNumber: "81234567",
				ServiceType: "water_resistance", IssueDescription: "Condensación bajo el cristal.",
				EstimatedCost: money("420.00"), Status: entity.ServiceStatusReceived,
				ReceivedDate: at("2025-04-15T15:00:00Z"), CreatedAt: at("2025-04-15T15:00:00Z"),
			},
			{
				ID: "seed-srv-003", CustomerName: "Sofía Medina", CustomerEmail: "sofia.medina@example.com", CustomerPhone: "+57 315 555 0303",
				WatchBrand: "Cartier", WatchModel: "Tank Solo", SerialNumber: "3169XXXX",
				ServiceType: "battery", IssueDescription: "Cambio de batería y sellos.",
				EstimatedCost: money("90.00"), Status: entity.ServiceStatusDelivered, Technician: "Natalia Ruiz",
				ReceivedDate: at("2025-03-20T09:00:00Z"), CompletionDate: ptr(at("2025-03-22T16:00:00Z")),
				CreatedAt: at("2025-03-20T09:00:00Z"),
			},
			{
				ID: "seed-srv-004", CustomerName: "Ricardo Vélez", CustomerEmail: "ricardo.velez@example.com", CustomerPhone: "+57 320 555 0404",
				WatchBrand: "TAG Heuer", WatchModel: "Carrera", SerialNumber: "WV2111",
				ServiceType: "polishing", IssueDescription: "Rayones en caja y brazalete.",
				EstimatedCost: money("300.00"), Status: entity.ServiceStatusCompleted, Technician: "Hernán Castillo",
				ReceivedDate: at("2025-05-02T11:30:00Z"), CompletionDate: ptr(at("2025-05-09T17:00:00Z")),
				CreatedAt: at("2025-05-02T11:30:00Z"),
			},
		},
	}
}

func ptr[T any](v T) *T { return &v }
