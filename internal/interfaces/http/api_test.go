package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Inventario-distribucion/internal/application/activity"
	"github.com/jhoicas/Inventario-distribucion/internal/application/analytics"
	"github.com/jhoicas/Inventario-distribucion/internal/application/auth"
	"github.com/jhoicas/Inventario-distribucion/internal/application/dto"
	"github.com/jhoicas/Inventario-distribucion/internal/application/inventory"
	"github.com/jhoicas/Inventario-distribucion/internal/application/movement"
	"github.com/jhoicas/Inventario-distribucion/internal/application/usecase"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
	"github.com/jhoicas/Inventario-distribucion/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-distribucion/internal/infrastructure/pdf"
	infraredis "github.com/jhoicas/Inventario-distribucion/internal/infrastructure/redis"
	apphttp "github.com/jhoicas/Inventario-distribucion/internal/interfaces/http"
)

type apiFixture struct {
	app   *fiber.App
	store *memory.Store

	admin, warehouse, distributor, agent, storeMgr string
}

func newAPI(t *testing.T, health ...apphttp.HealthChecker) apiFixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	for _, l := range []entity.Location{
		{ID: "loc-w", Name: "Bodega Central", Type: entity.LocationTypeWarehouse},
		{ID: "loc-d", Name: "Distribuidor Norte", Type: entity.LocationTypeDistributor},
		{ID: "loc-a", Name: "Agente Sur", Type: entity.LocationTypeSalesAgent},
		{ID: "loc-s", Name: "Tienda Centro", Type: entity.LocationTypeStore},
	} {
		l := l
		require.NoError(t, s.Locations().Create(ctx, &l))
	}
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "prod-1", Name: "Arroz", SKU: "ARZ", UnitPrice: decimal.NewFromInt(5)}))

	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	users := []entity.User{
		{ID: "u-admin", Email: "admin@example.com", Name: "Admin", Role: entity.RoleSuperAdmin},
		{ID: "u-w", Email: "bodega@example.com", Name: "Ana", Role: entity.RoleWarehouseManager, LocationID: "loc-w"},
		{ID: "u-d", Email: "dist@example.com", Name: "Beto", Role: entity.RoleDistributor, LocationID: "loc-d"},
		{ID: "u-a", Email: "agente@example.com", Name: "Carla", Role: entity.RoleSalesAgent, LocationID: "loc-a"},
		{ID: "u-s", Email: "tienda@example.com", Name: "Dario", Role: entity.RoleStoreManager, LocationID: "loc-s"},
	}
	for _, u := range users {
		u := u
		u.PasswordHash = string(hash)
		u.Status = "active"
		require.NoError(t, s.Users().Create(ctx, &u))
	}

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	runner := memory.NewTxRunner(s)
	deps := apphttp.RouterDeps{
		AppName: "test",
		MovementUC: movement.NewMovementUseCase(runner, s.Movements(), infraredis.NewIdempotencyStore(client),
			pdf.NewDeliveryNoteGenerator("test"), movement.Config{}, zerolog.Nop()),
		LedgerUC:   inventory.NewLedgerUseCase(runner, s.Inventory()),
		TrailUC:    activity.NewTrailUseCase(s.ActivityLog()),
		LocationUC: usecase.NewLocationUseCase(s.Locations()),
		ProductUC:  usecase.NewProductUseCase(s.Products()),
		AuthUC: auth.NewAuthUseCase(s.Users(), s.Locations(), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		Dashboard: analytics.NewDashboardUseCase(s.Analytics()),
		JWTSecret: testJWTSecret,
		Health:    health,
		Logger:    zerolog.Nop(),
	}
	return apiFixture{
		app:         apphttp.NewApp(deps),
		store:       s,
		admin:       tokenFor(t, "u-admin", entity.RoleSuperAdmin, ""),
		warehouse:   tokenFor(t, "u-w", entity.RoleWarehouseManager, "loc-w"),
		distributor: tokenFor(t, "u-d", entity.RoleDistributor, "loc-d"),
		agent:       tokenFor(t, "u-a", entity.RoleSalesAgent, "loc-a"),
		storeMgr:    tokenFor(t, "u-s", entity.RoleStoreManager, "loc-s"),
	}
}

func (f apiFixture) do(t *testing.T, method, path, token string, body any, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func (f apiFixture) seedStock(t *testing.T, qty int) {
	t.Helper()
	resp, body := f.do(t, http.MethodPost, "/api/inventory/initial-stock", f.warehouse,
		dto.InitialStockRequest{LocationID: "loc-w", ProductID: "prod-1", Quantity: qty})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
}

func (f apiFixture) createMovement(t *testing.T, token, from, to string, qty int) dto.MovementResponse {
	t.Helper()
	price := decimal.NewFromInt(6)
	resp, body := f.do(t, http.MethodPost, "/api/movements", token, dto.CreateMovementRequest{
		FromLocationID: from, ToLocationID: to,
		Items: []dto.MovementItemRequest{{ProductID: "prod-1", Quantity: qty, UnitPrice: &price}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var m dto.MovementResponse
	require.NoError(t, json.Unmarshal(body, &m))
	return m
}

func decodeError(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func (f apiFixture) quantity(t *testing.T, loc string) int {
	t.Helper()
	q, err := inventory.NewLedgerUseCase(memory.NewTxRunner(f.store), f.store.Inventory()).GetQuantity(context.Background(), loc, "prod-1")
	require.NoError(t, err)
	return q
}

func TestAPI_FlujoCompletoBodegaADistribuidor(t *testing.T) {
	f := newAPI(t)
	f.seedStock(t, 100)

	m := f.createMovement(t, f.warehouse, "loc-w", "loc-d", 30)
	assert.Equal(t, entity.MovementStatusPending, m.Status)
	assert.Equal(t, 100, f.quantity(t, "loc-w"), "crear no mueve inventario")

	resp, body := f.do(t, http.MethodPut, "/api/movements/"+m.ID, f.distributor, dto.UpdateMovementRequest{Status: "approved"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = f.do(t, http.MethodPut, "/api/movements/"+m.ID, f.distributor, dto.UpdateMovementRequest{Status: "received"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var got dto.MovementResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, entity.MovementStatusReceived, got.Status)
	assert.Len(t, got.Activities, 3)

	assert.Equal(t, 70, f.quantity(t, "loc-w"))
	assert.Equal(t, 30, f.quantity(t, "loc-d"))

	resp, body = f.do(t, http.MethodGet, "/api/inventory", f.distributor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []dto.InventoryRecordResponse
	require.NoError(t, json.Unmarshal(body, &rows))
	require.Len(t, rows, 1, "el distribuidor solo ve su ubicación")
	assert.Equal(t, "loc-d", rows[0].LocationID)
	assert.True(t, rows[0].UnitPrice.Equal(decimal.NewFromInt(6)), "el destino toma el precio snapshot de la línea")
}

func TestAPI_StockInsuficiente(t *testing.T) {
	f := newAPI(t)
	f.seedStock(t, 10)

	resp, body := f.do(t, http.MethodPost, "/api/movements", f.warehouse, dto.CreateMovementRequest{
		FromLocationID: "loc-w", ToLocationID: "loc-d",
		Items: []dto.MovementItemRequest{{ProductID: "prod-1", Quantity: 15}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, body)
	assert.Equal(t, "INSUFFICIENT_STOCK", e["code"])
	details, ok := e["details"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 15, details["required"])
	assert.EqualValues(t, 10, details["available"])
}

func TestAPI_JerarquiaTiendaABodega(t *testing.T) {
	f := newAPI(t)

	resp, body := f.do(t, http.MethodPost, "/api/movements", f.admin, dto.CreateMovementRequest{
		FromLocationID: "loc-s", ToLocationID: "loc-w",
		Items: []dto.MovementItemRequest{{ProductID: "prod-1", Quantity: 1}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), `"allowedTypes":[]`)
	e := decodeError(t, body)
	assert.Equal(t, "HIERARCHY_VIOLATION", e["code"])
	assert.NotEmpty(t, e["error"])
	assert.Equal(t, e["message"], e["error"])
}

func TestAPI_CanceladoNoSeAprueba(t *testing.T) {
	f := newAPI(t)
	f.seedStock(t, 20)
	m := f.createMovement(t, f.warehouse, "loc-w", "loc-d", 5)

	resp, body := f.do(t, http.MethodPut, "/api/movements/"+m.ID, f.warehouse, dto.UpdateMovementRequest{Status: "cancelled"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = f.do(t, http.MethodPut, "/api/movements/"+m.ID, f.distributor, dto.UpdateMovementRequest{Status: "approved"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", decodeError(t, body)["code"])
	assert.Equal(t, 20, f.quantity(t, "loc-w"))
}

func TestAPI_CodigosDeError(t *testing.T) {
	f := newAPI(t)
	f.seedStock(t, 10)

	resp, _ := f.do(t, http.MethodGet, "/api/movements", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := f.do(t, http.MethodGet, "/api/movements/no-existe", f.admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, body)["code"])

	resp, _ = f.do(t, http.MethodPost, "/api/movements", f.distributor, dto.CreateMovementRequest{
		FromLocationID: "loc-w", ToLocationID: "loc-d",
		Items: []dto.MovementItemRequest{{ProductID: "prod-1", Quantity: 1}},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "solo se origina desde la ubicación propia")

	resp, body = f.do(t, http.MethodPost, "/api/movements", f.warehouse, dto.CreateMovementRequest{
		FromLocationID: "loc-w", ToLocationID: "loc-d",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, body)
	assert.Equal(t, "VALIDATION", e["code"])
	assert.Contains(t, e["message"], "items")
	assert.Equal(t, e["message"], e["error"])

	resp, _ = f.do(t, http.MethodPut, "/api/movements/x", f.admin, dto.UpdateMovementRequest{Status: "shipped"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/api/movements", bytes.NewBufferString("{no json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", f.warehouse)
	raw, err := f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestAPI_SoloElReceptorRecibe(t *testing.T) {
	f := newAPI(t)
	f.seedStock(t, 10)
	m := f.createMovement(t, f.warehouse, "loc-w", "loc-d", 5)

	resp, _ := f.do(t, http.MethodPut, "/api/movements/"+m.ID, f.warehouse, dto.UpdateMovementRequest{Status: "approved"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = f.do(t, http.MethodGet, "/api/movements/"+m.ID, f.storeMgr, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "la tienda no participa del movimiento")
}

func TestAPI_AnotacionYListadoConAlcance(t *testing.T) {
	f := newAPI(t)
	f.seedStock(t, 10)
	m := f.createMovement(t, f.warehouse, "loc-w", "loc-d", 5)

	resp, body := f.do(t, http.MethodPut, "/api/movements/"+m.ID, f.distributor,
		dto.UpdateMovementRequest{Action: "Llamada", Description: "confirma entrega el lunes"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var got dto.MovementResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, entity.MovementStatusPending, got.Status)
	require.Len(t, got.Activities, 2)
	assert.Equal(t, "Llamada", got.Activities[1].Action)

	var list []dto.MovementResponse
	resp, body = f.do(t, http.MethodGet, "/api/movements?status=pending", f.distributor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)

	resp, body = f.do(t, http.MethodGet, "/api/movements", f.agent, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Empty(t, list)

	resp, _ = f.do(t, http.MethodGet, "/api/movements?status=lost", f.admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_IdempotencyKey(t *testing.T) {
	f := newAPI(t)
	f.seedStock(t, 10)
	req := dto.CreateMovementRequest{
		FromLocationID: "loc-w", ToLocationID: "loc-d",
		Items: []dto.MovementItemRequest{{ProductID: "prod-1", Quantity: 2}},
	}

	resp, body := f.do(t, http.MethodPost, "/api/movements", f.warehouse, req, apphttp.HeaderIdempotencyKey, "k-1")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = f.do(t, http.MethodPost, "/api/movements", f.warehouse, req, apphttp.HeaderIdempotencyKey, "k-1")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_REQUEST", decodeError(t, body)["code"])

	// Una creación fallida libera la clave.
	bad := req
	bad.Items = []dto.MovementItemRequest{{ProductID: "prod-1", Quantity: 99}}
	resp, _ = f.do(t, http.MethodPost, "/api/movements", f.warehouse, bad, apphttp.HeaderIdempotencyKey, "k-2")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = f.do(t, http.MethodPost, "/api/movements", f.warehouse, req, apphttp.HeaderIdempotencyKey, "k-2")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestAPI_Remision(t *testing.T) {
	f := newAPI(t)
	f.seedStock(t, 10)
	m := f.createMovement(t, f.warehouse, "loc-w", "loc-d", 3)

	resp, body := f.do(t, http.MethodGet, "/api/movements/"+m.ID+"/delivery-note", f.distributor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "remision-")
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestAPI_Jerarquia(t *testing.T) {
	f := newAPI(t)

	resp, body := f.do(t, http.MethodGet, "/api/hierarchy", f.storeMgr, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var table dto.HierarchyResponse
	require.NoError(t, json.Unmarshal(body, &table))
	require.Len(t, table.Edges, 4)
	assert.Equal(t, entity.LocationTypeWarehouse, table.Edges[0].FromType)
	assert.Equal(t, []string{entity.LocationTypeDistributor}, table.Edges[0].AllowedTypes)
	assert.Contains(t, string(body), `"allowedTypes":[]`)

	resp, body = f.do(t, http.MethodGet, "/api/hierarchy?from_type=sales_agent", f.storeMgr, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var edge dto.HierarchyEdge
	require.NoError(t, json.Unmarshal(body, &edge))
	assert.Equal(t, []string{entity.LocationTypeStore}, edge.AllowedTypes)

	resp, _ = f.do(t, http.MethodGet, "/api/hierarchy?from_type=factory", f.storeMgr, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_InventarioYBitacora(t *testing.T) {
	f := newAPI(t)
	f.seedStock(t, 10)

	resp, _ := f.do(t, http.MethodPost, "/api/inventory/initial-stock", f.distributor,
		dto.InitialStockRequest{LocationID: "loc-d", ProductID: "prod-1", Quantity: 1})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = f.do(t, http.MethodPost, "/api/inventory/adjust", f.warehouse,
		dto.AdjustStockRequest{LocationID: "loc-w", ProductID: "prod-1", Delta: -1})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "el ajuste manual es solo admin")

	resp, body := f.do(t, http.MethodPost, "/api/inventory/adjust", f.admin,
		dto.AdjustStockRequest{LocationID: "loc-w", ProductID: "prod-1", Delta: -4, Reason: "merma"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, 6, f.quantity(t, "loc-w"))

	resp, body = f.do(t, http.MethodPost, "/api/inventory/adjust", f.admin,
		dto.AdjustStockRequest{LocationID: "loc-w", ProductID: "prod-1", Delta: -7})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeError(t, body)["code"])

	resp, _ = f.do(t, http.MethodGet, "/api/inventory?location_id=loc-w", f.distributor, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = f.do(t, http.MethodPost, "/api/activity-logs", f.distributor, dto.RecordActivityRequest{Action: "Exported Report"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var logs []dto.ActivityLogResponse
	resp, body = f.do(t, http.MethodGet, "/api/activity-logs?limit=10", f.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &logs))
	actions := make([]string, 0, len(logs))
	for _, l := range logs {
		actions = append(actions, l.Action)
	}
	assert.Contains(t, actions, inventory.ActionInitialStock)
	assert.Contains(t, actions, inventory.ActionAdjusted)
	assert.Contains(t, actions, "Exported Report")

	resp, body = f.do(t, http.MethodGet, "/api/activity-logs", f.distributor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &logs))
	require.Len(t, logs, 1, "un usuario no admin solo ve sus entradas")
	assert.Equal(t, "u-d", logs[0].UserID)
}

func TestAPI_LoginYUsoDelToken(t *testing.T) {
	f := newAPI(t)

	resp, _ := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "dist@example.com", Password: "mala-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "DIST@example.com", Password: "secreto123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &login))
	assert.Equal(t, "loc-d", login.User.LocationID)

	resp, _ = f.do(t, http.MethodGet, "/api/inventory", "Bearer "+login.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	newUser := dto.RegisterRequest{Email: "nuevo@example.com", Password: "secreto123", Role: entity.RoleStoreManager, LocationID: "loc-s"}
	resp, _ = f.do(t, http.MethodPost, "/api/auth/register", "Bearer "+login.Token, newUser)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, body = f.do(t, http.MethodPost, "/api/auth/register", f.admin, newUser)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	resp, _ = f.do(t, http.MethodPost, "/api/auth/register", f.admin, newUser)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_Catalogo(t *testing.T) {
	f := newAPI(t)

	resp, body := f.do(t, http.MethodPost, "/api/locations", f.admin, dto.CreateLocationRequest{Name: "Tienda Este", Type: entity.LocationTypeStore})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, _ = f.do(t, http.MethodPost, "/api/locations", f.admin, dto.CreateLocationRequest{Name: "Fábrica", Type: "factory"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = f.do(t, http.MethodPost, "/api/products", f.warehouse, dto.CreateProductRequest{Name: "Sal"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = f.do(t, http.MethodPost, "/api/products", f.admin, dto.CreateProductRequest{Name: "Otro arroz", SKU: "arz"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var locs []dto.LocationResponse
	resp, body = f.do(t, http.MethodGet, "/api/locations", f.storeMgr, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &locs))
	assert.Len(t, locs, 5)

	resp, _ = f.do(t, http.MethodGet, "/api/products/no-existe", f.storeMgr, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_Health(t *testing.T) {
	f := newAPI(t)
	resp, body := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)

	down := newAPI(t, apphttp.HealthChecker{Name: "postgres", Check: func(context.Context) error { return errors.New("sin conexión") }})
	resp, body = down.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(body), "sin conexión")
}

func TestAPI_DashboardStats(t *testing.T) {
	f := newAPI(t)
	f.seedStock(t, 100)
	f.createMovement(t, f.warehouse, "loc-w", "loc-d", 30)

	stats := func(token string) dto.DashboardStatsDTO {
		t.Helper()
		resp, body := f.do(t, http.MethodGet, "/api/dashboard/stats", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		var out dto.DashboardResponse
		require.NoError(t, json.Unmarshal(body, &out))
		return out.Stats
	}

	admin := stats(f.admin)
	assert.Equal(t, 1, admin.TotalProducts)
	assert.EqualValues(t, 100, admin.TotalInventory)
	assert.True(t, admin.TotalValue.Equal(decimal.NewFromInt(500)), admin.TotalValue.String())
	assert.True(t, admin.AvgValue.Equal(decimal.NewFromInt(5)), admin.AvgValue.String())
	assert.Equal(t, 1, admin.UniqueProducts)
	assert.Equal(t, 1, admin.PendingMovements)
	assert.Equal(t, 2, admin.ActivityLogs, "stock inicial y creación del movimiento")

	dist := stats(f.distributor)
	assert.EqualValues(t, 0, dist.TotalInventory, "crear no mueve inventario")
	assert.Equal(t, 1, dist.PendingMovements, "el destino ve el pendiente")
	assert.Equal(t, 0, dist.ActivityLogs)

	agent := stats(f.agent)
	assert.Equal(t, 0, agent.PendingMovements)
	assert.True(t, agent.AvgValue.IsZero())

	resp, _ := f.do(t, http.MethodGet, "/api/dashboard/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
