// Package fallback decide, llamada a llamada, si una operación se sirve desde el backend
// remoto o desde el espejo local.
//
// Reglas:
//   - El remoto se intenta siempre primero; no se recuerda "remoto caído" entre llamadas.
//   - OK se devuelve intacto y el espejo no se consulta ni se modifica.
//   - NotFound y Rejected son respuestas autoritativas: se devuelven sin fallback.
//   - Unavailable (cualquier causa) redirige la misma operación lógica al espejo local.
package fallback

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/relojeria-admin/internal/domain/outcome"
	"github.com/jhoicas/relojeria-admin/pkg/logger"
)

// Source origen que sirvió una operación.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Coordinator política de fallback compartida por todos los casos de uso.
type Coordinator struct {
	log       *logger.Logger
	calls     *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
}

// NewCoordinator construye el coordinador. reg puede ser nil (métricas sin registrar).
func NewCoordinator(log *logger.Logger, reg prometheus.Registerer) *Coordinator {
	if log == nil {
		log = logger.Nop()
	}
	c := &Coordinator{
		log: log.Component("fallback"),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relojeria",
			Name:      "remote_calls_total",
			Help:      "Llamadas al backend remoto por operación y resultado.",
		}, []string{"operation", "outcome"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relojeria",
			Name:      "fallbacks_total",
			Help:      "Operaciones servidas desde el espejo local por operación.",
		}, []string{"operation"}),
	}
	if reg != nil {
		reg.MustRegister(c.calls, c.fallbacks)
	}
	return c
}

// Execute aplica la política: intenta remote y, solo si es Unavailable, ejecuta local.
// El error devuelto es el de la respuesta autoritativa del remoto o el del espejo local.
func Execute[T any](
	ctx context.Context,
	c *Coordinator,
	op string,
	remote func(ctx context.Context) outcome.Result[T],
	local func(ctx context.Context) (T, error),
) (T, Source, error) {
	res := remote(ctx)
	c.calls.WithLabelValues(op, res.Kind.String()).Inc()

	switch res.Kind {
	case outcome.KindOK:
		return res.Value, SourceRemote, nil
	case outcome.KindNotFound, outcome.KindRejected:
		var zero T
		return zero, SourceRemote, res.Err
	}

	c.fallbacks.WithLabelValues(op).Inc()
	c.log.Warn().Str("operation", op).Err(res.Err).Msg("remoto no disponible, se usa el espejo local")

	v, err := local(ctx)
	if err != nil {
		c.log.Error().Str("operation", op).Err(err).Msg("el espejo local también falló")
		var zero T
		return zero, SourceLocal, err
	}
	return v, SourceLocal, nil
}
