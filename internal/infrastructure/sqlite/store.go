// Package sqlite implementa el espejo local: un almacén clave-valor persistido en un
// único archivo SQLite, con una fila por colección (documento JSON) más la bandera "seeded".
//
// Todas las operaciones trabajan sobre la representación en memoria y persisten el
// resultado antes de retornar. El espejo es de un solo cliente; no hay consistencia
// entre procesos.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // driver SQLite en Go puro

	"github.com/jhoicas/relojeria-admin/pkg/logger"
)

// Nombres de las colecciones persistidas.
const (
	BucketUsers           = "users"
	BucketProducts        = "products"
	BucketOrders          = "orders"
	BucketServiceRequests = "service_requests"

	bucketSeeded = "seeded"
)

// Buckets colecciones de entidades en orden de dependencia (hojas primero).
var Buckets = []string{BucketUsers, BucketProducts, BucketOrders, BucketServiceRequests}

const defaultPath = "data/mirror.db"

// Store espejo local persistido.
type Store struct {
	db    *sql.DB
	mu    sync.Mutex
	path  string
	docs  map[string][]byte
	last  time.Time // último created_at emitido o cargado
	clock func() time.Time
	newID func() (string, error)
	log   *logger.Logger
}

// Option configura el Store.
type Option func(*Store)

// WithClock reemplaza el reloj (tests).
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// WithIDGenerator reemplaza el generador de IDs (tests).
func WithIDGenerator(fn func() (string, error)) Option {
	return func(s *Store) { s.newID = fn }
}

// WithLogger inyecta el logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewID genera un identificador local: UUIDv7 (milisegundos desde epoch + bits aleatorios).
// Los IDs remotos son UUIDv4, así que ambos espacios no se solapan.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generar id local: %w", err)
	}
	return id.String(), nil
}

// Open abre (o crea) el espejo en path y carga en memoria las colecciones persistidas.
// No siembra datos: eso es responsabilidad explícita de seed.Seeder.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("crear directorios: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// Una sola conexión: evita SQLITE_BUSY y mantiene :memory: en la misma base.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket  TEXT PRIMARY KEY,
		payload TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("crear tabla state: %w", err)
	}

	s := &Store{
		db:    db,
		path:  path,
		docs:  make(map[string][]byte),
		clock: time.Now,
		newID: NewID,
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.load(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return fmt.Errorf("leer state: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var bucket, payload string
		if err := rows.Scan(&bucket, &payload); err != nil {
			return fmt.Errorf("scan state: %w", err)
		}
		s.docs[bucket] = []byte(payload)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterar state: %w", err)
	}

	s.recomputeLastLocked()
	return nil
}

// Close cierra la base subyacente.
func (s *Store) Close() error { return s.db.Close() }

// Path ruta del archivo del espejo.
func (s *Store) Path() string { return s.path }

// DB expone el sql.DB (tests de integración).
func (s *Store) DB() *sql.DB { return s.db }

// Seeded indica si la bandera de siembra está persistida.
func (s *Store) Seeded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seededLocked()
}

func (s *Store) seededLocked() bool {
	return string(s.docs[bucketSeeded]) == "true"
}

// SeedOnce escribe docs (bucket -> documento JSON) y la bandera "seeded" en una sola
// transacción, solo si la bandera no existe. Retorna false si ya estaba sembrado.
func (s *Store) SeedOnce(ctx context.Context, docs map[string][]byte) (seeded bool, retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seededLocked() {
		return false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("iniciar transacción: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, b := range Buckets {
		payload, ok := docs[b]
		if !ok {
			continue
		}
		if err := upsert(ctx, tx, b, payload); err != nil {
			return false, err
		}
	}
	if err := upsert(ctx, tx, bucketSeeded, []byte("true")); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit siembra: %w", err)
	}

	for b, payload := range docs {
		s.docs[b] = payload
	}
	s.docs[bucketSeeded] = []byte("true")
	s.recomputeLastLocked()
	return true, nil
}

// Clear borra todas las colecciones y la bandera. Es la única forma de destruir el espejo.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM state`); err != nil {
		return fmt.Errorf("limpiar state: %w", err)
	}
	s.docs = make(map[string][]byte)
	s.last = time.Time{}
	return nil
}

// Counts número de registros por colección (documentos corruptos cuentan 0).
func (s *Store) Counts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(Buckets))
	for _, b := range Buckets {
		var items []json.RawMessage
		if err := json.Unmarshal(s.docs[b], &items); err == nil {
			out[b] = len(items)
		} else {
			out[b] = 0
		}
	}
	return out
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, db execer, bucket string, payload []byte) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO state(bucket, payload) VALUES(?, ?) ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`,
		bucket, string(payload))
	if err != nil {
		return fmt.Errorf("upsert %s: %w", bucket, err)
	}
	return nil
}

// writeLocked persiste el documento y solo entonces actualiza la copia en memoria.
func (s *Store) writeLocked(ctx context.Context, bucket string, payload []byte) error {
	if err := upsert(ctx, s.db, bucket, payload); err != nil {
		return err
	}
	s.docs[bucket] = payload
	return nil
}

// recomputeLastLocked recupera el último created_at persistido para que los nuevos
// sean estrictamente posteriores.
func (s *Store) recomputeLastLocked() {
	for _, b := range Buckets {
		var stamps []struct {
			CreatedAt time.Time `json:"created_at"`
		}
		if err := json.Unmarshal(s.docs[b], &stamps); err != nil {
			continue
		}
		for _, st := range stamps {
			if st.CreatedAt.After(s.last) {
				s.last = st.CreatedAt
			}
		}
	}
}

// stampLocked devuelve un created_at estrictamente posterior a todos los emitidos.
func (s *Store) stampLocked() time.Time {
	now := s.clock().UTC()
	if !now.After(s.last) {
		now = s.last.Add(time.Microsecond)
	}
	s.last = now
	return now
}
