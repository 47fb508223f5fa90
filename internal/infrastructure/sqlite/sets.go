package sqlite

import (
	"strings"

	"github.com/jhoicas/relojeria-admin/internal/domain"
	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
	"github.com/jhoicas/relojeria-admin/internal/domain/repository"
)

var (
	_ repository.LocalRepository[entity.User]           = (*Table[entity.User, *entity.User])(nil)
	_ repository.LocalRepository[entity.Product]        = (*Table[entity.Product, *entity.Product])(nil)
	_ repository.LocalRepository[entity.Order]          = (*Table[entity.Order, *entity.Order])(nil)
	_ repository.LocalRepository[entity.ServiceRequest] = (*Table[entity.ServiceRequest, *entity.ServiceRequest])(nil)
)

// NewLocalSet construye las colecciones del espejo sobre s. El email de usuario es único
// (sin distinguir mayúsculas).
func NewLocalSet(s *Store) repository.LocalSet {
	return repository.LocalSet{
		Users: NewTable[entity.User](s, BucketUsers,
			Unique(func(u *entity.User) string { return strings.ToLower(u.Email) }, domain.ErrEmailAlreadyExists)),
		Products:        NewTable[entity.Product](s, BucketProducts),
		Orders:          NewTable[entity.Order](s, BucketOrders),
		ServiceRequests: NewTable[entity.ServiceRequest](s, BucketServiceRequests),
	}
}
