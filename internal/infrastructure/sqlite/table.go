package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jhoicas/relojeria-admin/internal/domain"
	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
)

// Table acceso tipado a una colección del espejo. PT es *T e implementa entity.Record.
type Table[T any, PT interface {
	*T
	entity.Record
}] struct {
	s      *Store
	bucket string
	unique []uniqueKey[T]
}

type uniqueKey[T any] struct {
	key func(*T) string
	err error
}

// TableOption configura una Table.
type TableOption[T any] func(*uniqueKeys[T])

type uniqueKeys[T any] struct{ keys []uniqueKey[T] }

// Unique declara una clave única dentro de la colección; err se devuelve al violarla.
// Claves vacías no se comparan.
func Unique[T any](key func(*T) string, err error) TableOption[T] {
	return func(u *uniqueKeys[T]) { u.keys = append(u.keys, uniqueKey[T]{key: key, err: err}) }
}

// NewTable construye el acceso a la colección bucket.
func NewTable[T any, PT interface {
	*T
	entity.Record
}](s *Store, bucket string, opts ...TableOption[T]) *Table[T, PT] {
	var u uniqueKeys[T]
	for _, opt := range opts {
		opt(&u)
	}
	return &Table[T, PT]{s: s, bucket: bucket, unique: u.keys}
}

// Bucket nombre de la colección.
func (t *Table[T, PT]) Bucket() string { return t.bucket }

// List devuelve todos los registros, más recientes primero. Nunca devuelve nil.
func (t *Table[T, PT]) List(ctx context.Context) ([]T, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	items, err := t.loadLocked(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst[T, PT](items)
	return items, nil
}

// Find devuelve los registros que cumplen match, más recientes primero.
func (t *Table[T, PT]) Find(ctx context.Context, match func(*T) bool) ([]T, error) {
	items, err := t.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for i := range items {
		if match(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out, nil
}

// Get obtiene un registro por id o domain.ErrNotFound.
func (t *Table[T, PT]) Get(ctx context.Context, id string) (T, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var zero T
	items, err := t.loadLocked(ctx)
	if err != nil {
		return zero, err
	}
	if i := indexOf[T, PT](items, id); i >= 0 {
		return items[i], nil
	}
	return zero, fmt.Errorf("%s %s: %w", t.bucket, id, domain.ErrNotFound)
}

// GetMany resuelve varios ids a la vez; los ausentes simplemente no aparecen en el mapa.
func (t *Table[T, PT]) GetMany(ctx context.Context, ids []string) (map[string]T, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	items, err := t.loadLocked(ctx)
	if err != nil {
		return nil, err
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make(map[string]T, len(ids))
	for _, it := range items {
		id := PT(&it).RecordID()
		if _, ok := want[id]; ok {
			out[id] = it
		}
	}
	return out, nil
}

// Insert agrega rec. Si no trae ID se genera uno nuevo; si no trae created_at se asigna
// uno estrictamente posterior a todos los emitidos por este almacén.
func (t *Table[T, PT]) Insert(ctx context.Context, rec T) (T, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var zero T
	items, err := t.loadLocked(ctx)
	if err != nil {
		return zero, err
	}

	p := PT(&rec)
	id := p.RecordID()
	if id == "" {
		if id, err = t.s.newID(); err != nil {
			return zero, err
		}
	} else if indexOf[T, PT](items, id) >= 0 {
		return zero, fmt.Errorf("%s %s: %w", t.bucket, id, domain.ErrDuplicate)
	}
	createdAt := p.RecordCreatedAt()
	if createdAt.IsZero() {
		createdAt = t.s.stampLocked()
	} else if createdAt.After(t.s.last) {
		t.s.last = createdAt
	}
	p.AssignIdentity(id, createdAt)

	if err := t.checkUnique(items, &rec, -1); err != nil {
		return zero, err
	}
	if err := t.saveLocked(ctx, append(items, rec)); err != nil {
		return zero, err
	}
	return rec, nil
}

// Put busca el registro id y le aplica mutate (actualización parcial). ID y created_at
// se conservan aunque mutate los cambie. Si mutate falla no se escribe nada.
// Última escritura gana: no hay control de concurrencia optimista.
func (t *Table[T, PT]) Put(ctx context.Context, id string, mutate func(*T) error) (T, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var zero T
	items, err := t.loadLocked(ctx)
	if err != nil {
		return zero, err
	}
	i := indexOf[T, PT](items, id)
	if i < 0 {
		return zero, fmt.Errorf("%s %s: %w", t.bucket, id, domain.ErrNotFound)
	}

	updated := items[i]
	createdAt := PT(&items[i]).RecordCreatedAt()
	if err := mutate(&updated); err != nil {
		return zero, err
	}
	PT(&updated).AssignIdentity(id, createdAt)
	if err := t.checkUnique(items, &updated, i); err != nil {
		return zero, err
	}

	next := make([]T, len(items))
	copy(next, items)
	next[i] = updated
	if err := t.saveLocked(ctx, next); err != nil {
		return zero, err
	}
	return updated, nil
}

// Remove elimina el registro id o devuelve domain.ErrNotFound.
func (t *Table[T, PT]) Remove(ctx context.Context, id string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	items, err := t.loadLocked(ctx)
	if err != nil {
		return err
	}
	i := indexOf[T, PT](items, id)
	if i < 0 {
		return fmt.Errorf("%s %s: %w", t.bucket, id, domain.ErrNotFound)
	}
	next := make([]T, 0, len(items)-1)
	next = append(next, items[:i]...)
	next = append(next, items[i+1:]...)
	return t.saveLocked(ctx, next)
}

// loadLocked decodifica la colección. Un documento corrupto se trata como colección
// vacía y se reinicializa en disco.
func (t *Table[T, PT]) loadLocked(ctx context.Context) ([]T, error) {
	raw, ok := t.s.docs[t.bucket]
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		t.s.log.Warn().Err(err).Str("bucket", t.bucket).Msg("documento local corrupto, se reinicializa la colección")
		if err := t.s.writeLocked(ctx, t.bucket, []byte("[]")); err != nil {
			return nil, err
		}
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (t *Table[T, PT]) saveLocked(ctx context.Context, items []T) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", t.bucket, err)
	}
	return t.s.writeLocked(ctx, t.bucket, payload)
}

func (t *Table[T, PT]) checkUnique(items []T, rec *T, skip int) error {
	for _, u := range t.unique {
		k := u.key(rec)
		if k == "" {
			continue
		}
		for i := range items {
			if i != skip && u.key(&items[i]) == k {
				return u.err
			}
		}
	}
	return nil
}

func indexOf[T any, PT interface {
	*T
	entity.Record
}](items []T, id string) int {
	for i := range items {
		if PT(&items[i]).RecordID() == id {
			return i
		}
	}
	return -1
}

// sortNewestFirst ordena por created_at descendente; empates por id descendente.
func sortNewestFirst[T any, PT interface {
	*T
	entity.Record
}](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := PT(&items[i]), PT(&items[j])
		ta, tb := a.RecordCreatedAt(), b.RecordCreatedAt()
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		return a.RecordID() > b.RecordID()
	})
}
