package postgres

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/relojeria-admin/internal/domain"
	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
	"github.com/jhoicas/relojeria-admin/internal/domain/outcome"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba
// ──────────────────────────────────────────────────────────────────────────────

// fakeRow fila con valores fijos o con un error de Scan.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinos para %d columnas", len(dest), len(r.values))
	}
	for i, v := range r.values {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

// fakeRows implementa pgx.Rows sobre un slice de filas.
type fakeRows struct {
	rows []fakeRow
	pos  int
	err  error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }
func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}
func (r *fakeRows) Scan(dest ...any) error { return r.rows[r.pos-1].Scan(dest...) }

// fakeQuerier registra la última consulta y devuelve respuestas programadas.
type fakeQuerier struct {
	lastSQL  string
	lastArgs []any

	row      fakeRow
	rows     []fakeRow
	queryErr error
	tag      pgconn.CommandTag
	execErr  error
	panicMsg string
}

func (q *fakeQuerier) record(sql string, args []any) {
	q.lastSQL, q.lastArgs = sql, args
	if q.panicMsg != "" {
		panic(q.panicMsg)
	}
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.record(sql, args)
	return q.tag, q.execErr
}

func (q *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.record(sql, args)
	if q.queryErr != nil {
		return nil, q.queryErr
	}
	return &fakeRows{rows: q.rows}, nil
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.record(sql, args)
	return q.row
}

func userRow(id, email string) fakeRow {
	return fakeRow{values: []any{id, email, "Nombre", entity.RoleCustomer, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}}
}

func pgErr(code, constraint, msg string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint, Message: msg}
}

// ──────────────────────────────────────────────────────────────────────────────
// classify
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify(t *testing.T) {
	cases := map[string]struct {
		err  error
		kind outcome.Kind
		is   error
	}{
		"sin filas":          {pgx.ErrNoRows, outcome.KindNotFound, domain.ErrNotFound},
		"uuid invalido":      {pgErr("22P02", "", "invalid input syntax for type uuid"), outcome.KindNotFound, domain.ErrNotFound},
		"email duplicado":    {pgErr("23505", "users_email_key", "duplicate key"), outcome.KindRejected, domain.ErrEmailAlreadyExists},
		"otro duplicado":     {pgErr("23505", "products_reference_key", "duplicate key"), outcome.KindRejected, domain.ErrDuplicate},
		"fk al borrar":       {pgErr("23503", "orders_user_id_fkey", "update or delete on table \"users\" violates foreign key"), outcome.KindRejected, domain.ErrConflict},
		"fk al insertar":     {pgErr("23503", "orders_user_id_fkey", "insert or update on table \"orders\" violates foreign key"), outcome.KindRejected, domain.ErrInvalidInput},
		"check":              {pgErr("23514", "products_price_check", "violates check constraint"), outcome.KindRejected, domain.ErrInvalidInput},
		"tabla inexistente":  {pgErr("42P01", "", "relation \"orders\" does not exist"), outcome.KindUnavailable, domain.ErrRemoteUnavailable},
		"permiso denegado":   {pgErr("42501", "", "permission denied"), outcome.KindUnavailable, domain.ErrRemoteUnavailable},
		"conexion rechazada": {errors.New("dial tcp: connection refused"), outcome.KindUnavailable, domain.ErrRemoteUnavailable},
		"contexto cancelado": {context.DeadlineExceeded, outcome.KindUnavailable, domain.ErrRemoteUnavailable},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			res := classify[entity.User]("users.get", tc.err)
			assert.Equal(t, tc.kind, res.Kind)
			assert.ErrorIs(t, res.Err, tc.is)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Client
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_SinConfigurarDevuelveUnavailable(t *testing.T) {
	users := NewUserTable(NewClient(nil, nil))
	assert.False(t, NewClient(nil, nil).Configured())

	res := users.List(context.Background())
	assert.Equal(t, outcome.KindUnavailable, res.Kind)
	assert.ErrorIs(t, res.Err, domain.ErrRemoteNotConfigured)

	del := users.Delete(context.Background(), "x")
	assert.Equal(t, outcome.KindUnavailable, del.Kind)
}

func TestClient_PanicSeConvierteEnUnavailable(t *testing.T) {
	q := &fakeQuerier{panicMsg: "driver roto"}
	res := NewUserTable(NewClient(q, nil)).GetByID(context.Background(), "u1")
	assert.Equal(t, outcome.KindUnavailable, res.Kind)
	assert.ErrorIs(t, res.Err, domain.ErrRemoteUnavailable)
	assert.Contains(t, res.Err.Error(), "driver roto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Table
// ──────────────────────────────────────────────────────────────────────────────

func TestTable_ListOrdenaPorCreatedAtDesc(t *testing.T) {
	q := &fakeQuerier{rows: []fakeRow{userRow("u2", "b@x.co"), userRow("u1", "a@x.co")}}
	res := NewUserTable(NewClient(q, nil)).List(context.Background())

	require.Equal(t, outcome.KindOK, res.Kind)
	assert.Len(t, res.Value, 2)
	assert.Equal(t, "u2", res.Value[0].ID)
	assert.Contains(t, q.lastSQL, "FROM users ORDER BY created_at DESC, id DESC")
}

func TestTable_ListVacioNoEsNil(t *testing.T) {
	q := &fakeQuerier{}
	res := NewUserTable(NewClient(q, nil)).List(context.Background())
	require.Equal(t, outcome.KindOK, res.Kind)
	assert.NotNil(t, res.Value)
	assert.Empty(t, res.Value)
}

func TestTable_RespuestaMalformadaEsUnavailable(t *testing.T) {
	q := &fakeQuerier{rows: []fakeRow{{values: []any{"solo-una-columna"}}}}
	res := NewUserTable(NewClient(q, nil)).List(context.Background())
	assert.Equal(t, outcome.KindUnavailable, res.Kind)
}

func TestTable_GetByIDSinFilasEsNotFound(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}
	res := NewUserTable(NewClient(q, nil)).GetByID(context.Background(), "nope")
	assert.Equal(t, outcome.KindNotFound, res.Kind)
	assert.ErrorIs(t, res.Err, domain.ErrNotFound)
}

func TestTable_CreateUsaReturning(t *testing.T) {
	q := &fakeQuerier{row: userRow("remote-1", "nuevo@x.co")}
	res := NewUserTable(NewClient(q, nil)).Create(context.Background(), entity.User{Email: "nuevo@x.co", Name: "N", Role: entity.RoleCustomer})

	require.Equal(t, outcome.KindOK, res.Kind)
	assert.Equal(t, "remote-1", res.Value.ID)
	assert.True(t, strings.HasPrefix(q.lastSQL, "INSERT INTO users (email, name, role) VALUES ($1, $2, $3) RETURNING"))
	assert.Equal(t, []any{"nuevo@x.co", "N", entity.RoleCustomer}, q.lastArgs)
}

func TestTable_UpdateSoloColumnasPresentes(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{values: []any{"o1", "u1", "p1", entity.OrderStatusShipped, decimalZero(), "", time.Now()}}}
	status := entity.OrderStatusShipped
	res := NewOrderTable(NewClient(q, nil)).Update(context.Background(), "o1", entity.OrderPatch{Status: &status})

	require.Equal(t, outcome.KindOK, res.Kind)
	assert.True(t, strings.HasPrefix(q.lastSQL, "UPDATE orders SET status = $2 WHERE id = $1 RETURNING"))
	assert.Equal(t, []any{"o1", entity.OrderStatusShipped}, q.lastArgs)
}

func TestTable_UpdateIDInexistenteEsNotFound(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}
	name := "x"
	res := NewUserTable(NewClient(q, nil)).Update(context.Background(), "nope", entity.UserPatch{Name: &name})
	assert.Equal(t, outcome.KindNotFound, res.Kind)
}

func TestTable_UpdateBorraFechaDeEntregaConNull(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}
	NewServiceRequestTable(NewClient(q, nil)).Update(context.Background(), "s1", entity.ServiceRequestPatch{ClearCompletionDate: true})

	assert.True(t, strings.HasPrefix(q.lastSQL, "UPDATE service_requests SET completion_date = $2 WHERE id = $1 RETURNING"), q.lastSQL)
	assert.Equal(t, []any{"s1", nil}, q.lastArgs)
}

// El UPDATE pudo confirmarse aunque la fila devuelta no se pueda leer: se reporta como
// no disponible y el llamador aplica el patch también en el espejo.
func TestTable_UpdateConFilaIlegibleEsUnavailable(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{values: []any{"solo-una"}}}
	status := entity.OrderStatusShipped
	res := NewOrderTable(NewClient(q, nil)).Update(context.Background(), "o1", entity.OrderPatch{Status: &status})
	assert.Equal(t, outcome.KindUnavailable, res.Kind)
}

func TestTable_DeleteSinFilasAfectadasEsNotFound(t *testing.T) {
	q := &fakeQuerier{tag: pgconn.NewCommandTag("DELETE 0")}
	res := NewProductTable(NewClient(q, nil)).Delete(context.Background(), "nope")
	assert.Equal(t, outcome.KindNotFound, res.Kind)

	q.tag = pgconn.NewCommandTag("DELETE 1")
	res = NewProductTable(NewClient(q, nil)).Delete(context.Background(), "p1")
	assert.Equal(t, outcome.KindOK, res.Kind)
}

func TestTable_GetByIDsSinIDsNoConsulta(t *testing.T) {
	q := &fakeQuerier{}
	res := NewUserTable(NewClient(q, nil)).GetByIDs(context.Background(), nil)
	require.Equal(t, outcome.KindOK, res.Kind)
	assert.Empty(t, res.Value)
	assert.Empty(t, q.lastSQL)
}

func decimalZero() decimal.Decimal { return decimal.Zero }
