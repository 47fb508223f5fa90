package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
	"github.com/jhoicas/relojeria-admin/internal/domain/outcome"
)

// ServiceRequestUseCase accesor de órdenes de servicio técnico.
type ServiceRequestUseCase struct {
	*base
}

// List devuelve todas las órdenes de servicio, más recientes primero.
func (uc *ServiceRequestUseCase) List(ctx context.Context) ([]entity.ServiceRequest, error) {
	return run(ctx, uc.base, "service_requests.list", uc.remote.ServiceRequests.List, uc.local.ServiceRequests.List)
}

// ListByStatus filtra por estado.
func (uc *ServiceRequestUseCase) ListByStatus(ctx context.Context, status string) ([]entity.ServiceRequest, error) {
	if err := validServiceStatus(status); err != nil {
		return nil, err
	}
	return run(ctx, uc.base, "service_requests.list_by_status",
		func(ctx context.Context) outcome.Result[[]entity.ServiceRequest] {
			return uc.remote.ServiceRequests.Where(ctx, "status", status)
		},
		func(ctx context.Context) ([]entity.ServiceRequest, error) {
			return uc.local.ServiceRequests.Find(ctx, func(s *entity.ServiceRequest) bool { return s.Status == status })
		},
	)
}

// GetByID obtiene una orden de servicio.
func (uc *ServiceRequestUseCase) GetByID(ctx context.Context, id string) (entity.ServiceRequest, error) {
	return run(ctx, uc.base, "service_requests.get",
		func(ctx context.Context) outcome.Result[entity.ServiceRequest] {
			return uc.remote.ServiceRequests.GetByID(ctx, id)
		},
		func(ctx context.Context) (entity.ServiceRequest, error) { return uc.local.ServiceRequests.Get(ctx, id) },
	)
}

// Create valida y registra una orden de servicio. Estado vacío equivale a received y
// sin fecha de recepción se usa la actual.
func (uc *ServiceRequestUseCase) Create(ctx context.Context, in entity.ServiceRequest) (entity.ServiceRequest, error) {
	in.ID, in.CreatedAt = "", time.Time{}
	if in.Status == "" {
		in.Status = entity.ServiceStatusReceived
	}
	if in.ReceivedDate.IsZero() {
		in.ReceivedDate = uc.clock().UTC()
	}
	if err := firstErr(
		required("customer_name", in.CustomerName),
		required("watch_brand", in.WatchBrand),
		required("service_type", in.ServiceType),
		nonNegative("estimated_cost", in.EstimatedCost),
		validServiceStatus(in.Status),
		validCompletion(in.ReceivedDate, in.CompletionDate),
	); err != nil {
		return entity.ServiceRequest{}, err
	}
	if in.CustomerEmail != "" {
		if err := validEmail(in.CustomerEmail); err != nil {
			return entity.ServiceRequest{}, err
		}
	}
	return run(ctx, uc.base, "service_requests.create",
		func(ctx context.Context) outcome.Result[entity.ServiceRequest] {
			return uc.remote.ServiceRequests.Create(ctx, in)
		},
		func(ctx context.Context) (entity.ServiceRequest, error) { return uc.local.ServiceRequests.Insert(ctx, in) },
	)
}

// Update aplica una actualización parcial.
func (uc *ServiceRequestUseCase) Update(ctx context.Context, id string, patch entity.ServiceRequestPatch) (entity.ServiceRequest, error) {
	if err := firstErr(
		optional(patch.CustomerName, func(v string) error { return required("customer_name", v) }),
		optional(patch.WatchBrand, func(v string) error { return required("watch_brand", v) }),
		optional(patch.ServiceType, func(v string) error { return required("service_type", v) }),
		optional(patch.EstimatedCost, func(v decimal.Decimal) error { return nonNegative("estimated_cost", v) }),
		optional(patch.Status, validServiceStatus),
	); err != nil {
		return entity.ServiceRequest{}, err
	}
	if patch.ClearCompletionDate && patch.CompletionDate != nil {
		return entity.ServiceRequest{}, invalid("completion_date y clear_completion_date son excluyentes")
	}
	return run(ctx, uc.base, "service_requests.update",
		func(ctx context.Context) outcome.Result[entity.ServiceRequest] {
			return uc.remote.ServiceRequests.Update(ctx, id, patch)
		},
		func(ctx context.Context) (entity.ServiceRequest, error) {
			return uc.local.ServiceRequests.Put(ctx, id, func(s *entity.ServiceRequest) error {
				patch.Apply(s)
				return validCompletion(s.ReceivedDate, s.CompletionDate)
			})
		},
	)
}

// Delete elimina una orden de servicio.
func (uc *ServiceRequestUseCase) Delete(ctx context.Context, id string) error {
	_, err := run(ctx, uc.base, "service_requests.delete",
		func(ctx context.Context) outcome.Result[struct{}] { return uc.remote.ServiceRequests.Delete(ctx, id) },
		func(ctx context.Context) (struct{}, error) { return struct{}{}, uc.local.ServiceRequests.Remove(ctx, id) },
	)
	return err
}

func validServiceStatus(s string) error {
	if !entity.ValidServiceStatus(s) {
		return invalid("estado de servicio %q no es válido", s)
	}
	return nil
}

// validCompletion la fecha de entrega no puede ser anterior a la de recepción.
func validCompletion(received time.Time, completion *time.Time) error {
	if completion != nil && completion.Before(received) {
		return invalid("completion_date anterior a received_date")
	}
	return nil
}
