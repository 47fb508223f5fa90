package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/relojeria-admin/internal/domain"
	"github.com/jhoicas/relojeria-admin/internal/domain/outcome"
	"github.com/jhoicas/relojeria-admin/pkg/logger"
)

// Querier abstrae pool o tx de pgx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Client envoltorio delgado sobre el backend remoto. Nunca propaga errores ni panics:
// todo termina en un outcome.Result.
// Con q nil el cliente queda "sin configurar" y cada llamada devuelve Unavailable.
type Client struct {
	q   Querier
	log *logger.Logger
}

// NewClient construye el cliente. q puede ser nil (remoto sin configurar).
func NewClient(q Querier, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{q: q, log: log}
}

// Configured indica si hay un backend remoto configurado.
func (c *Client) Configured() bool { return c != nil && c.q != nil }

// call ejecuta fn protegiendo la frontera: remoto sin configurar y panics se convierten
// en Unavailable igual que los errores devueltos.
func call[T any](ctx context.Context, c *Client, op string, fn func(ctx context.Context, q Querier) outcome.Result[T]) (res outcome.Result[T]) {
	if !c.Configured() {
		return outcome.Unavailable[T](domain.ErrRemoteNotConfigured)
	}
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Str("operation", op).Interface("panic", r).Msg("panic en llamada remota")
			res = outcome.Unavailable[T](fmt.Errorf("%s: panic: %v", op, r))
		}
	}()
	res = fn(ctx, c.q)
	if res.Kind != outcome.KindOK {
		c.log.Debug().Str("operation", op).Str("outcome", res.Kind.String()).Err(res.Err).Msg("llamada remota sin éxito")
	}
	return res
}

// classify traduce un error de pgx al resultado correspondiente.
//   - sin filas / id con formato inválido: NotFound.
//   - violaciones de restricciones: Rejected con el error de dominio.
//   - todo lo demás (conexión, tabla inexistente, permisos, decodificación): Unavailable.
func classify[T any](op string, err error) outcome.Result[T] {
	if errors.Is(err, pgx.ErrNoRows) {
		return outcome.NotFound[T](fmt.Errorf("%s: %w", op, domain.ErrNotFound))
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "P0002", "22P02": // no_data_found, invalid_text_representation (id no es uuid)
			return outcome.NotFound[T](fmt.Errorf("%s: %w", op, domain.ErrNotFound))
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "email") {
				return outcome.Rejected[T](domain.ErrEmailAlreadyExists)
			}
			return outcome.Rejected[T](fmt.Errorf("%w: %s", domain.ErrDuplicate, pgErr.ConstraintName))
		case "23503": // foreign_key_violation
			if strings.HasPrefix(pgErr.Message, "update or delete") {
				return outcome.Rejected[T](fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.Detail))
			}
			return outcome.Rejected[T](fmt.Errorf("%w: referencia inexistente (%s)", domain.ErrInvalidInput, pgErr.ConstraintName))
		case "23502", "23514", "22001", "22003": // not_null, check, string_data_right_truncation, numeric_value_out_of_range
			return outcome.Rejected[T](fmt.Errorf("%w: %s", domain.ErrInvalidInput, pgErr.Message))
		}
	}
	return outcome.Unavailable[T](fmt.Errorf("%s: %w", op, err))
}
