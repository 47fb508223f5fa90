package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de ServiceRequest (orden de servicio técnico).
const (
	ServiceStatusReceived   = "received"
	ServiceStatusInProgress = "in_progress"
	ServiceStatusCompleted  = "completed"
	ServiceStatusDelivered  = "delivered"
	ServiceStatusCancelled  = "cancelled"
)

// ValidServiceStatus indica si s es un estado de servicio admitido.
func ValidServiceStatus(s string) bool {
	switch s {
	case ServiceStatusReceived, ServiceStatusInProgress, ServiceStatusCompleted, ServiceStatusDelivered, ServiceStatusCancelled:
		return true
	}
	return false
}

// ServiceRequest orden de servicio técnico sobre el reloj de un cliente.
type ServiceRequest struct {
	ID               string          `json:"id"`
	CustomerName     string          `json:"customer_name"`
	CustomerEmail    string          `json:"customer_email"`
	CustomerPhone    string          `json:"customer_phone"`
	WatchBrand       string          `json:"watch_brand"`
	WatchModel       string          `json:"watch_model"`
	SerialNumber     string          `json:"serial_number"`
	ServiceType      string          `json:"service_type"` // ej: overhaul, battery, polishing
	IssueDescription string          `json:"issue_description"`
	EstimatedCost    decimal.Decimal `json:"estimated_cost"`
	Status           string          `json:"status"`
	Technician       string          `json:"technician"`
	ReceivedDate     time.Time       `json:"received_date"`
	CompletionDate   *time.Time      `json:"completion_date"`
	CreatedAt        time.Time       `json:"created_at"`
}

func (s *ServiceRequest) RecordID() string           { return s.ID }
func (s *ServiceRequest) RecordCreatedAt() time.Time { return s.CreatedAt }
func (s *ServiceRequest) AssignIdentity(id string, createdAt time.Time) {
	s.ID = id
	s.CreatedAt = createdAt
}

// ServiceRequestPatch actualización parcial de ServiceRequest.
type ServiceRequestPatch struct {
	CustomerName     *string          `json:"customer_name"`
	CustomerEmail    *string          `json:"customer_email"`
	CustomerPhone    *string          `json:"customer_phone"`
	WatchBrand       *string          `json:"watch_brand"`
	WatchModel       *string          `json:"watch_model"`
	SerialNumber     *string          `json:"serial_number"`
	ServiceType      *string          `json:"service_type"`
	IssueDescription *string          `json:"issue_description"`
	EstimatedCost    *decimal.Decimal `json:"estimated_cost"`
	Status           *string          `json:"status"`
	Technician       *string          `json:"technician"`
	ReceivedDate     *time.Time       `json:"received_date"`
	CompletionDate   *time.Time       `json:"completion_date"`

	// ClearCompletionDate borra la fecha de entrega (p. ej. al reabrir la orden).
	// Excluyente con CompletionDate.
	ClearCompletionDate bool `json:"clear_completion_date"`
}

// Apply copia los campos presentes del patch sobre s.
func (p ServiceRequestPatch) Apply(s *ServiceRequest) {
	setStr := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setStr(&s.CustomerName, p.CustomerName)
	setStr(&s.CustomerEmail, p.CustomerEmail)
	setStr(&s.CustomerPhone, p.CustomerPhone)
	setStr(&s.WatchBrand, p.WatchBrand)
	setStr(&s.WatchModel, p.WatchModel)
	setStr(&s.SerialNumber, p.SerialNumber)
	setStr(&s.ServiceType, p.ServiceType)
	setStr(&s.IssueDescription, p.IssueDescription)
	setStr(&s.Status, p.Status)
	setStr(&s.Technician, p.Technician)
	if p.EstimatedCost != nil {
		s.EstimatedCost = *p.EstimatedCost
	}
	if p.ReceivedDate != nil {
		s.ReceivedDate = *p.ReceivedDate
	}
	if p.CompletionDate != nil {
		t := *p.CompletionDate
		s.CompletionDate = &t
	}
	if p.ClearCompletionDate {
		s.CompletionDate = nil
	}
}

// Fields devuelve las columnas presentes en el patch.
func (p ServiceRequestPatch) Fields() []Field {
	var f []Field
	str := func(col string, v *string) {
		if v != nil {
			f = append(f, Field{Column: col, Value: *v})
		}
	}
	str("customer_name", p.CustomerName)
	str("customer_email", p.CustomerEmail)
	str("customer_phone", p.CustomerPhone)
	str("watch_brand", p.WatchBrand)
	str("watch_model", p.WatchModel)
	str("serial_number", p.SerialNumber)
	str("service_type", p.ServiceType)
	str("issue_description", p.IssueDescription)
	if p.EstimatedCost != nil {
		f = append(f, Field{Column: "estimated_cost", Value: *p.EstimatedCost})
	}
	str("status", p.Status)
	str("technician", p.Technician)
	if p.ReceivedDate != nil {
		f = append(f, Field{Column: "received_date", Value: *p.ReceivedDate})
	}
	if p.CompletionDate != nil {
		f = append(f, Field{Column: "completion_date", Value: *p.CompletionDate})
	}
	if p.ClearCompletionDate {
		f = append(f, Field{Column: "completion_date", Value: nil})
	}
	return f
}
