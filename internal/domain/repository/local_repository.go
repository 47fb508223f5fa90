package repository

import (
	"context"

	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
)

// LocalRepository define el puerto hacia el espejo local para una entidad T.
// Los errores siguen la convención de domain (ErrNotFound, ErrDuplicate, ...).
type LocalRepository[T any] interface {
	List(ctx context.Context) ([]T, error)
	Find(ctx context.Context, match func(*T) bool) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	GetMany(ctx context.Context, ids []string) (map[string]T, error)
	Insert(ctx context.Context, rec T) (T, error)
	Put(ctx context.Context, id string, mutate func(*T) error) (T, error)
	Remove(ctx context.Context, id string) error
}

// LocalSet colecciones del espejo local.
type LocalSet struct {
	Users           LocalRepository[entity.User]
	Products        LocalRepository[entity.Product]
	Orders          LocalRepository[entity.Order]
	ServiceRequests LocalRepository[entity.ServiceRequest]
}
