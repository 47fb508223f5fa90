package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/relojeria-admin/internal/domain"
	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
	"github.com/jhoicas/relojeria-admin/internal/domain/outcome"
)

// fakeRemote backend remoto en memoria. down simula un remoto inaccesible.
type fakeRemote[T any, PT interface {
	*T
	entity.Record
}, P interface{ Apply(PT) }] struct {
	mu     sync.Mutex
	items  []T
	seq    int
	down   bool
	reject error
	field  func(rec *T, column string) string
	calls  int
}

func (f *fakeRemote[T, PT, P]) begin() bool {
	f.mu.Lock()
	f.calls++
	return !f.down
}

func (f *fakeRemote[T, PT, P]) List(context.Context) outcome.Result[[]T] {
	defer f.mu.Unlock()
	if !f.begin() {
		return outcome.Unavailable[[]T](domain.ErrRemoteUnavailable)
	}
	return outcome.OK(f.sorted(func(*T) bool { return true }))
}

func (f *fakeRemote[T, PT, P]) Where(_ context.Context, column string, value any) outcome.Result[[]T] {
	defer f.mu.Unlock()
	if !f.begin() {
		return outcome.Unavailable[[]T](domain.ErrRemoteUnavailable)
	}
	want := fmt.Sprint(value)
	return outcome.OK(f.sorted(func(rec *T) bool { return f.field(rec, column) == want }))
}

func (f *fakeRemote[T, PT, P]) GetByID(_ context.Context, id string) outcome.Result[T] {
	defer f.mu.Unlock()
	if !f.begin() {
		return outcome.Unavailable[T](domain.ErrRemoteUnavailable)
	}
	if i := f.index(id); i >= 0 {
		return outcome.OK(f.items[i])
	}
	return outcome.NotFound[T](nil)
}

func (f *fakeRemote[T, PT, P]) GetByIDs(_ context.Context, ids []string) outcome.Result[[]T] {
	defer f.mu.Unlock()
	if !f.begin() {
		return outcome.Unavailable[[]T](domain.ErrRemoteUnavailable)
	}
	out := []T{}
	for _, id := range ids {
		if i := f.index(id); i >= 0 {
			out = append(out, f.items[i])
		}
	}
	return outcome.OK(out)
}

func (f *fakeRemote[T, PT, P]) Create(_ context.Context, rec T) outcome.Result[T] {
	defer f.mu.Unlock()
	if !f.begin() {
		return outcome.Unavailable[T](domain.ErrRemoteUnavailable)
	}
	if f.reject != nil {
		return outcome.Rejected[T](f.reject)
	}
	f.seq++
	PT(&rec).AssignIdentity(fmt.Sprintf("remote-%03d", f.seq), time.Date(2026, 1, 1, 0, 0, f.seq, 0, time.UTC))
	f.items = append(f.items, rec)
	return outcome.OK(rec)
}

func (f *fakeRemote[T, PT, P]) Update(_ context.Context, id string, patch P) outcome.Result[T] {
	defer f.mu.Unlock()
	if !f.begin() {
		return outcome.Unavailable[T](domain.ErrRemoteUnavailable)
	}
	i := f.index(id)
	if i < 0 {
		return outcome.NotFound[T](nil)
	}
	patch.Apply(PT(&f.items[i]))
	return outcome.OK(f.items[i])
}

func (f *fakeRemote[T, PT, P]) Delete(_ context.Context, id string) outcome.Result[struct{}] {
	defer f.mu.Unlock()
	if !f.begin() {
		return outcome.Unavailable[struct{}](domain.ErrRemoteUnavailable)
	}
	i := f.index(id)
	if i < 0 {
		return outcome.NotFound[struct{}](nil)
	}
	f.items = append(f.items[:i], f.items[i+1:]...)
	return outcome.OK(struct{}{})
}

// seedItems agrega registros ya identificados.
func (f *fakeRemote[T, PT, P]) seedItems(items ...T) *fakeRemote[T, PT, P] {
	f.items = append(f.items, items...)
	return f
}

func (f *fakeRemote[T, PT, P]) index(id string) int {
	for i := range f.items {
		if PT(&f.items[i]).RecordID() == id {
			return i
		}
	}
	return -1
}

func (f *fakeRemote[T, PT, P]) sorted(match func(*T) bool) []T {
	out := []T{}
	for i := range f.items {
		if match(&f.items[i]) {
			out = append(out, f.items[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return PT(&out[i]).RecordCreatedAt().After(PT(&out[j]).RecordCreatedAt())
	})
	return out
}

type (
	fakeUsers           = fakeRemote[entity.User, *entity.User, entity.UserPatch]
	fakeProducts        = fakeRemote[entity.Product, *entity.Product, entity.ProductPatch]
	fakeOrders          = fakeRemote[entity.Order, *entity.Order, entity.OrderPatch]
	fakeServiceRequests = fakeRemote[entity.ServiceRequest, *entity.ServiceRequest, entity.ServiceRequestPatch]
)

func orderField(o *entity.Order, column string) string {
	switch column {
	case "user_id":
		return o.UserID
	case "product_id":
		return o.ProductID
	case "status":
		return o.Status
	}
	return ""
}

func userField(u *entity.User, column string) string {
	if column == "email" {
		return u.Email
	}
	return ""
}

func serviceField(s *entity.ServiceRequest, column string) string {
	if column == "status" {
		return s.Status
	}
	return ""
}
