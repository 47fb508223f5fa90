package repository

import (
	"context"

	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
	"github.com/jhoicas/relojeria-admin/internal/domain/outcome"
)

// RemoteRepository define el puerto hacia el backend remoto para una entidad T con patch P.
// Ningún método retorna error suelto: el resultado dice si la respuesta es autoritativa.
type RemoteRepository[T any, P any] interface {
	List(ctx context.Context) outcome.Result[[]T]
	Where(ctx context.Context, column string, value any) outcome.Result[[]T]
	GetByID(ctx context.Context, id string) outcome.Result[T]
	GetByIDs(ctx context.Context, ids []string) outcome.Result[[]T]
	Create(ctx context.Context, rec T) outcome.Result[T]
	Update(ctx context.Context, id string, patch P) outcome.Result[T]
	Delete(ctx context.Context, id string) outcome.Result[struct{}]
}

// RemoteSet tablas remotas de todas las entidades.
type RemoteSet struct {
	Users           RemoteRepository[entity.User, entity.UserPatch]
	Products        RemoteRepository[entity.Product, entity.ProductPatch]
	Orders          RemoteRepository[entity.Order, entity.OrderPatch]
	ServiceRequests RemoteRepository[entity.ServiceRequest, entity.ServiceRequestPatch]
}
