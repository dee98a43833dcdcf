package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/invoiceboard/internal/clock"
	"github.com/smallbiznis/invoiceboard/internal/config"
	customerrepo "github.com/smallbiznis/invoiceboard/internal/customer/repository"
	customersvc "github.com/smallbiznis/invoiceboard/internal/customer/service"
	dashboardsvc "github.com/smallbiznis/invoiceboard/internal/dashboard/service"
	invoicerepo "github.com/smallbiznis/invoiceboard/internal/invoice/repository"
	invoicesvc "github.com/smallbiznis/invoiceboard/internal/invoice/service"
	"github.com/smallbiznis/invoiceboard/internal/observability"
	obsmetrics "github.com/smallbiznis/invoiceboard/internal/observability/metrics"
	"github.com/smallbiznis/invoiceboard/internal/revalidate"
	"github.com/smallbiznis/invoiceboard/internal/seed/seedtest"
	"github.com/smallbiznis/invoiceboard/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	engine   *gin.Engine
	store    repository.Store
	recorder *revalidate.Recorder
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	_, store := seedtest.Open(t)
	seedtest.InsertCustomer(t, store, "c1", "Amy Burns", "amy@burns.com")
	seedtest.InsertCustomer(t, store, "c2", "Lee Robinson", "lee@robinson.com")

	httpMetrics, err := obsmetrics.NewHTTPMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	log := zap.NewNop()
	display := config.NewStaticDisplayConfigHolder(config.DefaultDisplayConfig())
	recorder := &revalidate.Recorder{}
	invoices := invoicerepo.Provide(store)

	engine := NewEngine(observability.Config{}, httpMetrics)
	NewServer(ServerParams{
		Gin:     engine,
		Display: display,
		InvoiceQuery: invoicesvc.NewQueryService(invoicesvc.QueryParams{
			Log: log, Repo: invoices, Display: display,
		}),
		InvoiceMutation: invoicesvc.NewMutationService(invoicesvc.MutationParams{
			Log:         log,
			Repo:        invoices,
			Clock:       clock.NewFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)),
			Invalidator: recorder,
		}),
		CustomerSvc: customersvc.New(customersvc.Params{
			Log: log, Repo: customerrepo.Provide(store), Display: display,
		}),
		DashboardSvc: dashboardsvc.NewService(dashboardsvc.Params{
			Store: store, Log: log, Display: display,
		}),
	})

	return testServer{engine: engine, store: store, recorder: recorder}
}

func (ts testServer) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)

	var body map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	}
	return w, body
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	w, body := ts.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestCreateListUpdateDeleteOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	w, body := ts.do(t, postForm("/api/invoices", url.Values{
		"customerId": {"c1"},
		"amount":     {"49.99"},
		"status":     {"pending"},
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := body["data"].(map[string]any)
	id := data["id"].(string)
	assert.Equal(t, "/dashboard/invoices", data["redirect_to"])

	w, body = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/invoices?query=amy&page=1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["total_pages"])
	assert.EqualValues(t, 1, body["page"])
	rows := body["data"].([]any)
	require.Len(t, rows, 1)
	row := rows[0].(map[string]any)
	assert.Equal(t, "$49.99", row["formatted_amount"])
	assert.Equal(t, "2024-06-01", row["date"])

	req := httptest.NewRequest(http.MethodPut, "/api/invoices/"+id,
		strings.NewReader(`{"customerId":"c2","amount":"10","status":"paid"}`))
	req.Header.Set("Content-Type", "application/json")
	w, _ = ts.do(t, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, body = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/invoices/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code)
	form := body["data"].(map[string]any)
	assert.Equal(t, "10.00", form["amount"])
	assert.Equal(t, "paid", form["status"])

	w, _ = ts.do(t, httptest.NewRequest(http.MethodDelete, "/api/invoices/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code)

	w, body = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/invoices/"+id, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", body["error"].(map[string]any)["type"])

	assert.Equal(t, 3, ts.recorder.Count(revalidate.InvoicesPath))
}

func TestCreateValidationErrorShape(t *testing.T) {
	ts := newTestServer(t)

	w, body := ts.do(t, postForm("/api/invoices", url.Values{
		"customerId": {""},
		"amount":     {"0"},
		"status":     {"paid"},
	}))
	require.Equal(t, http.StatusBadRequest, w.Code)

	payload := body["error"].(map[string]any)
	assert.Equal(t, "validation_error", payload["type"])
	assert.Equal(t, "Missing Fields. Failed to Create Invoice.", payload["message"])
	errs := payload["errors"].(map[string]any)
	assert.Equal(t, []any{"Please select a customer."}, errs["customerId"])
	assert.Equal(t, []any{"Please enter an amount greater than $0."}, errs["amount"])
	assert.Empty(t, ts.recorder.Paths())
}

func TestUpdateUnknownInvoiceIsOpaqueServerError(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPut, "/api/invoices/missing",
		strings.NewReader(`{"customerId":"c1","amount":"10","status":"paid"}`))
	req.Header.Set("Content-Type", "application/json")
	w, body := ts.do(t, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", body["error"].(map[string]any)["message"])
}

func TestListInvoicesClampsPage(t *testing.T) {
	ts := newTestServer(t)
	for i := 0; i < 7; i++ {
		seedtest.InsertInvoice(t, ts.store, "inv-"+string(rune('a'+i)), "c1", 100, "paid", "2024-01-01")
	}

	_, body := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/invoices?page=-4", nil))
	assert.EqualValues(t, 1, body["page"])
	assert.Len(t, body["data"], 6)

	_, body = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/invoices?page=99", nil))
	assert.EqualValues(t, 2, body["page"])
	assert.EqualValues(t, 2, body["total_pages"])
	assert.Len(t, body["data"], 1)

	w, body := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/invoices?page=two", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"].(map[string]any)["errors"], "page")
}

func TestCustomerRoutes(t *testing.T) {
	ts := newTestServer(t)
	seedtest.InsertInvoice(t, ts.store, "i1", "c2", 2500, "pending", "2024-01-01")

	w, body := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/customers", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["data"], 2)

	w, body = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/customers/table?query=lee", nil))
	require.Equal(t, http.StatusOK, w.Code)
	rows := body["data"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "$25.00", rows[0].(map[string]any)["formatted_pending"])

	w, body = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/customers/c1", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Amy Burns", body["data"].(map[string]any)["name"])

	w, _ = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/customers/nobody", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardRoutes(t *testing.T) {
	ts := newTestServer(t)
	seedtest.InsertInvoice(t, ts.store, "i1", "c1", 123456, "paid", "2024-01-01")

	w, body := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/dashboard/cards", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cards := body["data"].(map[string]any)
	assert.EqualValues(t, 1, cards["number_of_invoices"])
	assert.EqualValues(t, 2, cards["number_of_customers"])
	assert.Equal(t, "$1,234.56", cards["total_paid_invoices"])
	assert.Equal(t, "$0.00", cards["total_pending_invoices"])

	w, body = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/dashboard/revenue", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["data"])

	w, body = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/invoices/latest", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["data"], 1)
}

func TestCardSummarySurvivesLargestInvoices(t *testing.T) {
	ts := newTestServer(t)

	for i := 0; i < 2; i++ {
		w, _ := ts.do(t, postForm("/api/invoices", url.Values{
			"customerId": {"c1"},
			"amount":     {"10000000000"},
			"status":     {"paid"},
		}))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w, body := ts.do(t, postForm("/api/invoices", url.Values{
		"customerId": {"c1"},
		"amount":     {"92233720368547758.07"},
		"status":     {"paid"},
	}))
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := body["error"].(map[string]any)["errors"].(map[string]any)
	assert.Equal(t, []any{"Amount is too large."}, errs["amount"])

	w, body = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/dashboard/cards", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cards := body["data"].(map[string]any)
	assert.EqualValues(t, 2_000_000_000_000, cards["total_paid_cents"])
	assert.Equal(t, "$20,000,000,000.00", cards["total_paid_invoices"])

	w, body = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/customers/table?query=amy", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rows := body["data"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "$20,000,000,000.00", rows[0].(map[string]any)["formatted_paid"])
}
