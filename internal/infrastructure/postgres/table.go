package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
	"github.com/jhoicas/relojeria-admin/internal/domain/outcome"
)

// Patch actualización parcial que sabe listar sus columnas presentes.
type Patch interface {
	Fields() []entity.Field
}

// schema describe cómo mapear una entidad a su tabla remota.
type schema[T any] struct {
	table string
	// selectList expresiones del SELECT/RETURNING, en el orden que espera scan.
	selectList string
	// insert devuelve columnas y valores para el INSERT (sin id ni created_at: los genera el remoto).
	insert func(rec *T) ([]string, []any)
	scan   func(row pgx.Row) (T, error)
}

// Table operaciones CRUD remotas sobre una tabla. Cada método devuelve un outcome.Result
// y nunca un error suelto ni un panic.
type Table[T any, P Patch] struct {
	c  *Client
	sc schema[T]
}

func newTable[T any, P Patch](c *Client, sc schema[T]) *Table[T, P] {
	return &Table[T, P]{c: c, sc: sc}
}

func (t *Table[T, P]) op(name string) string { return t.sc.table + "." + name }

// List devuelve todas las filas, más recientes primero. Nunca devuelve nil en éxito.
func (t *Table[T, P]) List(ctx context.Context) outcome.Result[[]T] {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC, id DESC`, t.sc.selectList, t.sc.table)
	return call(ctx, t.c, t.op("list"), func(ctx context.Context, q Querier) outcome.Result[[]T] {
		return t.queryAll(ctx, q, t.op("list"), query)
	})
}

// Where filtra por igualdad en una columna, más recientes primero.
func (t *Table[T, P]) Where(ctx context.Context, column string, value any) outcome.Result[[]T] {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s::text = $1 ORDER BY created_at DESC, id DESC`, t.sc.selectList, t.sc.table, column)
	return call(ctx, t.c, t.op("where_"+column), func(ctx context.Context, q Querier) outcome.Result[[]T] {
		return t.queryAll(ctx, q, t.op("where_"+column), query, value)
	})
}

// GetByID obtiene una fila por id. Id inexistente o con formato inválido: NotFound.
func (t *Table[T, P]) GetByID(ctx context.Context, id string) outcome.Result[T] {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, t.sc.selectList, t.sc.table)
	return call(ctx, t.c, t.op("get"), func(ctx context.Context, q Querier) outcome.Result[T] {
		rec, err := t.sc.scan(q.QueryRow(ctx, query, id))
		if err != nil {
			return classify[T](t.op("get"), err)
		}
		return outcome.OK(rec)
	})
}

// GetByIDs resuelve varios ids en una sola consulta (joins). Los ausentes no aparecen.
func (t *Table[T, P]) GetByIDs(ctx context.Context, ids []string) outcome.Result[[]T] {
	if len(ids) == 0 {
		return outcome.OK([]T{})
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id::text = ANY($1::text[])`, t.sc.selectList, t.sc.table)
	return call(ctx, t.c, t.op("get_many"), func(ctx context.Context, q Querier) outcome.Result[[]T] {
		return t.queryAll(ctx, q, t.op("get_many"), query, ids)
	})
}

// Create inserta rec; el remoto genera id y created_at.
func (t *Table[T, P]) Create(ctx context.Context, rec T) outcome.Result[T] {
	cols, vals := t.sc.insert(&rec)
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
		t.sc.table, strings.Join(cols, ", "), strings.Join(placeholders, ", "), t.sc.selectList)
	return call(ctx, t.c, t.op("create"), func(ctx context.Context, q Querier) outcome.Result[T] {
		created, err := t.sc.scan(q.QueryRow(ctx, query, vals...))
		if err != nil {
			return classify[T](t.op("create"), err)
		}
		return outcome.OK(created)
	})
}

// Update aplica las columnas presentes en patch (update-by-id). Sin filas afectadas: NotFound.
// Un patch vacío equivale a GetByID.
func (t *Table[T, P]) Update(ctx context.Context, id string, patch P) outcome.Result[T] {
	fields := patch.Fields()
	if len(fields) == 0 {
		return t.GetByID(ctx, id)
	}
	sets := make([]string, len(fields))
	args := make([]any, 0, len(fields)+1)
	args = append(args, id)
	for i, f := range fields {
		sets[i] = fmt.Sprintf("%s = $%d", f.Column, i+2)
		args = append(args, f.Value)
	}
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $1 RETURNING %s`, t.sc.table, strings.Join(sets, ", "), t.sc.selectList)
	return call(ctx, t.c, t.op("update"), func(ctx context.Context, q Querier) outcome.Result[T] {
		updated, err := t.sc.scan(q.QueryRow(ctx, query, args...))
		if err != nil {
			return classify[T](t.op("update"), err)
		}
		return outcome.OK(updated)
	})
}

// Delete elimina por id. Sin filas afectadas: NotFound.
func (t *Table[T, P]) Delete(ctx context.Context, id string) outcome.Result[struct{}] {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.sc.table)
	return call(ctx, t.c, t.op("delete"), func(ctx context.Context, q Querier) outcome.Result[struct{}] {
		tag, err := q.Exec(ctx, query, id)
		if err != nil {
			return classify[struct{}](t.op("delete"), err)
		}
		if tag.RowsAffected() == 0 {
			return classify[struct{}](t.op("delete"), pgx.ErrNoRows)
		}
		return outcome.OK(struct{}{})
	})
}

func (t *Table[T, P]) queryAll(ctx context.Context, q Querier, op, query string, args ...any) outcome.Result[[]T] {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return classify[[]T](op, err)
	}
	defer rows.Close()
	list := make([]T, 0)
	for rows.Next() {
		rec, err := t.sc.scan(rows)
		if err != nil {
			return outcome.Unavailable[[]T](fmt.Errorf("%s: scan: %w", op, err))
		}
		list = append(list, rec)
	}
	if err := rows.Err(); err != nil {
		return classify[[]T](op, err)
	}
	return outcome.OK(list)
}
