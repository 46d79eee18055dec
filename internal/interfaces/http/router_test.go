package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastro/stockpilot-api/internal/application/adjustments"
	"github.com/jmcastro/stockpilot-api/internal/application/auth"
	"github.com/jmcastro/stockpilot-api/internal/application/cyclecount"
	"github.com/jmcastro/stockpilot-api/internal/application/ledger"
	"github.com/jmcastro/stockpilot-api/internal/application/purchasing"
	"github.com/jmcastro/stockpilot-api/internal/application/reports"
	"github.com/jmcastro/stockpilot-api/internal/application/returns"
	"github.com/jmcastro/stockpilot-api/internal/application/sales"
	"github.com/jmcastro/stockpilot-api/internal/application/transfers"
	"github.com/jmcastro/stockpilot-api/internal/application/usecase"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/infrastructure/memory"
	apphttp "github.com/jmcastro/stockpilot-api/internal/interfaces/http"
	"github.com/jmcastro/stockpilot-api/pkg/config"
)

// buildRouterApp monta el router completo sobre el store en memoria.
func buildRouterApp() *fiber.App {
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	repos := store.Repos()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewUseCase(memory.NewUserRepo(store), memory.NewCompanyRepo(store), config.JWTConfig{
			Secret: testJWTSecret, Issuer: testIssuer, Expiration: testExpMin,
		}),
		ProductUC:    usecase.NewProductUseCase(repos.Products),
		LocationUC:   usecase.NewLocationUseCase(nil),
		CategoryUC:   usecase.NewCategoryUseCase(nil),
		SupplierUC:   usecase.NewSupplierUseCase(memory.NewSupplierRepo(store)),
		CustomerUC:   usecase.NewCustomerUseCase(nil),
		CompanyUC:    usecase.NewCompanyUseCase(memory.NewCompanyRepo(store)),
		InventoryUC:  usecase.NewInventoryUseCase(repos.Inventory),
		Ledger:       ledger.NewService(tx, repos.Movements),
		PurchasingUC: purchasing.NewUseCase(tx, repos.PurchaseOrders),
		SalesUC:      sales.NewUseCase(tx, repos.SalesOrders),
		ReturnsUC:    returns.NewUseCase(tx, repos.Returns),
		TransfersUC:  transfers.NewUseCase(tx, repos.Transfers),
		AdjustUC:     adjustments.NewUseCase(tx, repos.Adjustments),
		CycleCountUC: cyclecount.NewUseCase(tx, repos.CycleCounts, repos.Inventory),
		ReportsUC:    reports.NewUseCase(memory.NewReportRepo(store), memory.NewAlertRepo(store)),
		JWTSecret:    testJWTSecret,
	})
	return app
}

func routerRequest(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Las operaciones sobre documentos existentes van por PATCH; POST queda
// reservado para creación.
func TestRouter_OperacionesDeDocumentoUsanPatch(t *testing.T) {
	app := buildRouterApp()
	id := uuid.New().String()

	cases := []struct {
		name string
		path string
		body string
	}{
		{"completar traslado", "/api/stock-transfers/" + id + "/complete", ""},
		{"registrar conteo", "/api/cycle-counts/" + id + "/items", `{"items":[{"item_id":"x","counted_qty":1}]}`},
		{"cerrar conteo", "/api/cycle-counts/" + id + "/complete", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := routerRequest(t, app, http.MethodPatch, tc.path, tc.body)
			assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "la ruta PATCH existe; el documento no")

			resp = routerRequest(t, app, http.MethodPost, tc.path, tc.body)
			assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode, "POST no está registrado para la operación")
		})
	}
}
