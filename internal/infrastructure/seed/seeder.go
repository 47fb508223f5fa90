// Package seed puebla el espejo local con el conjunto inicial fijo, una única vez por
// vida del almacén. La bandera persistida "seeded" es la única compuerta: una vez
// puesta, nunca se sobrescriben los datos locales aunque el dataset cambie entre versiones.
package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/relojeria-admin/internal/infrastructure/sqlite"
	"github.com/jhoicas/relojeria-admin/pkg/logger"
)

// Target almacén que admite la siembra atómica (implementado por *sqlite.Store).
type Target interface {
	SeedOnce(ctx context.Context, docs map[string][]byte) (bool, error)
}

// Seeder inicializador del espejo local.
type Seeder struct {
	target  Target
	dataset Data
	log     *logger.Logger
}

// NewSeeder construye el inicializador con el dataset indicado.
func NewSeeder(target Target, dataset Data, log *logger.Logger) *Seeder {
	if log == nil {
		log = logger.Nop()
	}
	return &Seeder{target: target, dataset: dataset, log: log}
}

// EnsureSeeded es idempotente: la primera llamada (bandera ausente) escribe cada colección
// y la bandera; las siguientes no hacen nada. Retorna true si sembró en esta llamada.
func (s *Seeder) EnsureSeeded(ctx context.Context) (bool, error) {
	docs, err := s.dataset.documents()
	if err != nil {
		return false, err
	}
	seeded, err := s.target.SeedOnce(ctx, docs)
	if err != nil {
		return false, fmt.Errorf("sembrar espejo local: %w", err)
	}
	if seeded {
		s.log.Info().
			Int("users", len(s.dataset.Users)).
			Int("products", len(s.dataset.Products)).
			Int("orders", len(s.dataset.Orders)).
			Int("service_requests", len(s.dataset.ServiceRequests)).
			Msg("espejo local sembrado")
	}
	return seeded, nil
}

// OpenSeeded abre el espejo y lo siembra como paso explícito del ciclo de vida.
func OpenSeeded(ctx context.Context, path string, log *logger.Logger, opts ...sqlite.Option) (*sqlite.Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	opts = append([]sqlite.Option{sqlite.WithLogger(log)}, opts...)
	store, err := sqlite.Open(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := NewSeeder(store, Dataset(), log).EnsureSeeded(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func (d Data) documents() (map[string][]byte, error) {
	docs := make(map[string][]byte, len(sqlite.Buckets))
	parts := map[string]any{
		sqlite.BucketUsers:           nonNil(d.Users),
		sqlite.BucketProducts:        nonNil(d.Products),
		sqlite.BucketOrders:          nonNil(d.Orders),
		sqlite.BucketServiceRequests: nonNil(d.ServiceRequests),
	}
	for bucket, v := range parts {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("serializar semilla %s: %w", bucket, err)
		}
		docs[bucket] = b
	}
	return docs, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
