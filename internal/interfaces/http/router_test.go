package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/relojeria-admin/internal/application/analytics"
	"github.com/jhoicas/relojeria-admin/internal/application/fallback"
	"github.com/jhoicas/relojeria-admin/internal/application/usecase"
	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
	"github.com/jhoicas/relojeria-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/relojeria-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/relojeria-admin/internal/infrastructure/seed"
	"github.com/jhoicas/relojeria-admin/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/relojeria-admin/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp aplicación completa sobre un espejo sembrado y remoto sin configurar.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store, err := seed.OpenSeeded(context.Background(), filepath.Join(t.TempDir(), "mirror.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	reg := prometheus.NewRegistry()
	accessors := usecase.NewAccessors(
		fallback.NewCoordinator(nil, reg),
		postgres.NewRemoteSet(postgres.NewClient(nil, nil)),
		sqlite.NewLocalSet(store),
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ServiceName: "relojeria-admin-test",
		Accessors:   accessors,
		Analytics:   analytics.NewAggregator(accessors.Orders, accessors.Products),
		Tickets:     usecase.NewServiceTicketUseCase(accessors.ServiceRequests, pdf.NewTicketGenerator("Test")),
		Metrics:     reg,
	})
	return app
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// doRequest lanza la petición y decodifica el sobre {data, error}.
func doRequest(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "not_configured", body["remote"])
}

func TestListProducts_SobreConDataYErrorNulo(t *testing.T) {
	app := buildTestApp(t)
	resp, env := doRequest(t, app, http.MethodGet, "/api/products", "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Nil(t, env.Error)
	var products []entity.Product
	require.NoError(t, json.Unmarshal(env.Data, &products))
	assert.Len(t, products, len(seed.Dataset().Products))
}

func TestCreateUser_Y_Conflicto(t *testing.T) {
	app := buildTestApp(t)

	resp, env := doRequest(t, app, http.MethodPost, "/api/users", `{"email":"nueva@x.co","name":"Nueva"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var u entity.User
	require.NoError(t, json.Unmarshal(env.Data, &u))
	assert.NotEmpty(t, u.ID)

	resp, env = doRequest(t, app, http.MethodPost, "/api/users", `{"email":"nueva@x.co","name":"Otra"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "EMAIL_EXISTS", env.Error.Code)
	assert.Equal(t, "null", string(env.Data))
}

func TestGetUser_NoEncontrado(t *testing.T) {
	app := buildTestApp(t)
	resp, env := doRequest(t, app, http.MethodGet, "/api/users/no-existe", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestCreateProduct_Validacion(t *testing.T) {
	app := buildTestApp(t)
	resp, env := doRequest(t, app, http.MethodPost, "/api/products", `{"name":"Sin marca","price":10}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION", env.Error.Code)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/products", `{"name":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateOrderStatus(t *testing.T) {
	app := buildTestApp(t)
	resp, env := doRequest(t, app, http.MethodPatch, "/api/orders/seed-ord-004/status", `{"status":"shipped"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var o entity.Order
	require.NoError(t, json.Unmarshal(env.Data, &o))
	assert.Equal(t, entity.OrderStatusShipped, o.Status)
	assert.Equal(t, seed.UserCustomer2, o.UserID)

	resp, _ = doRequest(t, app, http.MethodPatch, "/api/orders/seed-ord-004/status", `{"status":"perdida"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListOrders_ConJoinsYFiltro(t *testing.T) {
	app := buildTestApp(t)
	resp, env := doRequest(t, app, http.MethodGet, "/api/orders?user_id="+seed.UserCustomer1, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var orders []entity.Order
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	require.NotEmpty(t, orders)
	for _, o := range orders {
		assert.Equal(t, seed.UserCustomer1, o.UserID)
		require.NotNil(t, o.Users)
		require.NotNil(t, o.Products)
	}
}

func TestDeleteUser_ConOrdenesEsConflicto(t *testing.T) {
	app := buildTestApp(t)
	resp, env := doRequest(t, app, http.MethodDelete, "/api/users/"+seed.UserCustomer1, "")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestSnapshot(t *testing.T) {
	app := buildTestApp(t)
	resp, env := doRequest(t, app, http.MethodGet, "/api/analytics/snapshot?range=all&top=3", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var snap struct {
		OrderCount  int               `json:"order_count"`
		TopProducts []json.RawMessage `json:"top_products"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, len(seed.Dataset().Orders), snap.OrderCount)
	assert.Len(t, snap.TopProducts, 3)

	resp, env = doRequest(t, app, http.MethodGet, "/api/analytics/snapshot?range=2w", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
}

func TestServiceRequestPDF(t *testing.T) {
	app := buildTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/service-requests/seed-srv-001/pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "orden-servicio-seed-srv-001.pdf")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func TestMetrics_CuentaFallbacks(t *testing.T) {
	app := buildTestApp(t)
	doRequest(t, app, http.MethodGet, "/api/products", "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `relojeria_fallbacks_total{operation="products.list"} 1`)
}
