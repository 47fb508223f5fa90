package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/relojeria-admin/internal/application/fallback"
	"github.com/jhoicas/relojeria-admin/internal/domain"
	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
	"github.com/jhoicas/relojeria-admin/internal/domain/outcome"
	"github.com/jhoicas/relojeria-admin/internal/domain/repository"
)

// Accessors casos de uso por entidad. Todos comparten el coordinador de fallback y las
// mismas fuentes, de modo que los joins siempre se resuelven en la fuente del registro.
type Accessors struct {
	Users           *UserUseCase
	Products        *ProductUseCase
	Orders          *OrderUseCase
	ServiceRequests *ServiceRequestUseCase
}

// Option configura los casos de uso.
type Option func(*base)

// WithClock reemplaza el reloj usado para valores por defecto (fecha de recepción).
func WithClock(clock func() time.Time) Option {
	return func(b *base) { b.clock = clock }
}

// NewAccessors construye los casos de uso sobre remote y local.
func NewAccessors(fb *fallback.Coordinator, remote repository.RemoteSet, local repository.LocalSet, opts ...Option) *Accessors {
	b := &base{fb: fb, remote: remote, local: local, clock: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return &Accessors{
		Users:           &UserUseCase{base: b},
		Products:        &ProductUseCase{base: b},
		Orders:          &OrderUseCase{base: b},
		ServiceRequests: &ServiceRequestUseCase{base: b},
	}
}

// base dependencias compartidas.
type base struct {
	fb     *fallback.Coordinator
	remote repository.RemoteSet
	local  repository.LocalSet
	clock  func() time.Time
}

// run ejecuta op con fallback y descarta la fuente.
func run[T any](ctx context.Context, b *base, op string,
	remote func(ctx context.Context) outcome.Result[T],
	local func(ctx context.Context) (T, error),
) (T, error) {
	v, _, err := fallback.Execute(ctx, b.fb, op, remote, local)
	return v, err
}

// ── Joins ─────────────────────────────────────────────────────────────────────

// resolveRefs resuelve la referencia ref de cada item contra fetch (misma fuente que items)
// y la adjunta con attach. Referencias colgantes quedan sin adjuntar.
func resolveRefs[T, R any](
	ctx context.Context,
	items []T,
	ref func(*T) string,
	fetch func(ctx context.Context, ids []string) (map[string]R, error),
	attach func(*T, *R),
) error {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for i := range items {
		id := ref(&items[i])
		if id == "" {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	found, err := fetch(ctx, ids)
	if err != nil {
		return err
	}
	for i := range items {
		if r, ok := found[ref(&items[i])]; ok {
			attach(&items[i], &r)
		}
	}
	return nil
}

// remoteFetch adapta GetByIDs remoto al contrato de resolveRefs. Cualquier resultado
// distinto de OK invalida el join.
func remoteFetch[T any, PT interface {
	*T
	entity.Record
}, P any](repo repository.RemoteRepository[T, P]) func(context.Context, []string) (map[string]T, error) {
	return func(ctx context.Context, ids []string) (map[string]T, error) {
		res := repo.GetByIDs(ctx, ids)
		if res.Kind != outcome.KindOK {
			return nil, res.Err
		}
		out := make(map[string]T, len(res.Value))
		for _, v := range res.Value {
			out[PT(&v).RecordID()] = v
		}
		return out, nil
	}
}

// ── Validación ────────────────────────────────────────────────────────────────

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid("%s es obligatorio", field)
	}
	return nil
}

func nonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return invalid("%s no puede ser negativo", field)
	}
	return nil
}

// optional valida un campo de patch solo si está presente.
func optional[V any](v *V, check func(V) error) error {
	if v == nil {
		return nil
	}
	return check(*v)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ensureExists comprueba una referencia en el espejo local.
func ensureExists[T any](ctx context.Context, repo repository.LocalRepository[T], field, id string) error {
	if _, err := repo.Get(ctx, id); err != nil {
		if isNotFound(err) {
			return invalid("%s %q no existe", field, id)
		}
		return err
	}
	return nil
}

// ensureUnreferenced devuelve ErrConflict si algún registro de repo cumple match.
func ensureUnreferenced[T any](ctx context.Context, repo repository.LocalRepository[T], what string, match func(*T) bool) error {
	refs, err := repo.Find(ctx, match)
	if err != nil {
		return err
	}
	if len(refs) > 0 {
		return fmt.Errorf("%w: %d %s lo referencian", domain.ErrConflict, len(refs), what)
	}
	return nil
}

// firstErrFn ejecuta fns en orden hasta el primer error.
func firstErrFn(fns ...func() error) error {
	for _, fn := range fns {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}
