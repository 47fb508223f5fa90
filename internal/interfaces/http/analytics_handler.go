package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/relojeria-admin/internal/application/analytics"
	"github.com/jhoicas/relojeria-admin/internal/application/dto"
)

const maxTopN = 50

// AnalyticsHandler expone el snapshot de ventas e inventario.
type AnalyticsHandler struct {
	agg *analytics.Aggregator
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(agg *analytics.Aggregator) *AnalyticsHandler {
	return &AnalyticsHandler{agg: agg}
}

// Snapshot godoc
// @Summary      Snapshot de analítica
// @Description  Totales, participación por marca, top de productos, histograma de estados,
// @Description  clientes nuevos/recurrentes y desglose por medio de pago sobre la ventana indicada.
// @Tags         analytics
// @Produce      json
// @Param        range  query  string  false  "7d|30d|90d|365d|all"  default(30d)
// @Param        top    query  int     false  "Tamaño del ranking"   default(5)
// @Success      200  {object}  dto.Envelope{data=dto.SnapshotDTO}
// @Failure      400  {object}  dto.Envelope
// @Router       /api/analytics/snapshot [get]
func (h *AnalyticsHandler) Snapshot(c *fiber.Ctx) error {
	var q dto.SnapshotRequest
	if err := c.QueryParser(&q); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_QUERY", "parámetros inválidos")
	}
	rng, err := analytics.ParseTimeRange(q.Range)
	if err != nil {
		return failErr(c, err)
	}
	if q.Top > maxTopN {
		q.Top = maxTopN
	}
	out, err := h.agg.ComputeSnapshot(c.UserContext(), rng, q.Top)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}
