package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/fixture"
	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishEvent(ctx context.Context, event queue.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockProducer) PublishInvoiceDelivery(ctx context.Context, payload queue.InvoiceDeliveryPayload) error {
	return m.Called(ctx, payload).Error(0)
}

type brokerDown struct{}

func (brokerDown) IsClosed() bool { return true }

type testServer struct {
	handler  http.Handler
	store    *database.Store
	producer *MockProducer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	data := fixture.LoadInitialData()
	store := database.NewStore()
	store.Load(data.Leads, data.Deals, data.Products, data.Invoices)

	producer := new(MockProducer)
	producer.On("PublishEvent", mock.Anything, mock.Anything).Return(nil).Maybe()

	policy := usecase.NewTransitionPolicy(false)
	metrics := usecase.NopMetrics{}
	reports := usecase.NewReportUseCase(store.Leads, store.Deals, store.Products, store.Invoices)

	h := Handlers{
		Leads:    NewLeadHandler(usecase.NewLeadUseCase(store.Leads, producer, metrics, log), log),
		Deals:    NewDealHandler(usecase.NewDealUseCase(store.Deals, store.Leads, producer, metrics, policy, log), reports, log),
		Products: NewProductHandler(usecase.NewProductUseCase(store.Products, log), reports, log),
		Invoices: NewInvoiceHandler(usecase.NewInvoiceUseCase(store.Invoices, store.Leads, store.Products, producer, metrics, policy, log), reports, log),
		Reports:  NewReportHandler(reports, log),
		Health:   NewHealthHandler(store.Counts, nil, false),
	}

	return &testServer{
		handler:  NewRouter(h, RouterOptions{AllowedOrigins: []string{"*"}, Log: log}),
		store:    store,
		producer: producer,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestLeadRoutes(t *testing.T) {
	s := newTestServer(t)

	t.Run("create applies defaults", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/leads", `{"name":"Ana Souza","email":"ana@example.com"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		lead := decode[entity.Lead](t, rec)
		assert.Equal(t, entity.LeadStatusNew, lead.Status)
		assert.Equal(t, entity.SourceWebsite, lead.Source)
	})

	t.Run("validation errors carry field details", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/leads", `{"name":""}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		resp := decode[ErrorResponse](t, rec)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error)
		assert.Len(t, resp.Details, 2)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/leads", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("filter by status", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/leads?status=qualified", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[[]entity.Lead](t, rec), 2)
	})

	t.Run("update and get", func(t *testing.T) {
		rec := s.do(t, http.MethodPut, "/api/leads/2", `{"status":"qualified"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = s.do(t, http.MethodGet, "/api/leads/2", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, entity.LeadStatusQualified, decode[entity.Lead](t, rec).Status)
	})

	t.Run("missing lead", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/leads/404", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", decode[ErrorResponse](t, rec).Error)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/leads/5", "").Code)
		assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/leads/5", "").Code)
	})
}

func TestDealRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPatch, "/api/deals/2/stage", `{"stage":"quote-sent"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.StageQuoteSent, decode[entity.Deal](t, rec).Stage)

	rec = s.do(t, http.MethodGet, "/api/deals/pipeline", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cols := decode[[]map[string]any](t, rec)
	require.Len(t, cols, 6)
	assert.Equal(t, "new-lead", cols[0]["stage"])

	rec = s.do(t, http.MethodPost, "/api/deals", `{"lead_id":"3","value":1200,"probability":150}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/deals", `{"lead_id":"3","value":1200.5}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	deal := decode[entity.Deal](t, rec)
	assert.Equal(t, "Emma Wilson", deal.LeadName)
	assert.Equal(t, "1200.5", deal.Value.String())
}

func TestProductRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/products/1/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[entity.Product](t, rec).IsActive)

	rec = s.do(t, http.MethodGet, "/api/products?active=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]entity.Product](t, rec), 4)

	rec = s.do(t, http.MethodGet, "/api/products/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 4)
}

func TestInvoiceRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/invoices",
		`{"lead_id":"2","due_date":"2025-02-01","items":[{"product_id":"3","product_name":"Domain Registration","quantity":3,"price":15}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	inv := decode[entity.Invoice](t, rec)
	assert.Equal(t, "INV-003", inv.InvoiceNumber)
	assert.Equal(t, "45", inv.Amount.String())

	// amount is serialised as a JSON number
	assert.Contains(t, rec.Body.String(), `"amount":45`)

	rec = s.do(t, http.MethodPost, "/api/invoices", `{"lead_id":"2","items":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	s.producer.On("PublishInvoiceDelivery", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
	rec = s.do(t, http.MethodPost, "/api/invoices/"+inv.ID+"/send", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	s.producer.On("PublishInvoiceDelivery", mock.Anything, mock.Anything).Return(nil).Once()
	rec = s.do(t, http.MethodPost, "/api/invoices/"+inv.ID+"/send", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, entity.InvoiceSent, decode[entity.Invoice](t, rec).Status)

	rec = s.do(t, http.MethodPost, "/api/invoices/1/send", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, usecase.CodeInvoicePaid, decode[ErrorResponse](t, rec).Error)

	rec = s.do(t, http.MethodGet, "/api/invoices/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[map[string]any](t, rec)
	assert.EqualValues(t, 3620, summary["paid"])
	assert.EqualValues(t, 3, summary["count"])
}

func TestInvoiceDraftRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/invoice-drafts/items",
		`{"change":"product_id","item":{"id":"x1","product_id":"2","quantity":2,"price":0}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	item := decode[entity.InvoiceItem](t, rec)
	assert.Equal(t, "E-commerce Website", item.ProductName)
	assert.Equal(t, "7000", item.Total.String())
}

func TestReportRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/reports/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	dash := decode[map[string]any](t, rec)
	assert.EqualValues(t, 3620, dash["total_revenue"])
	assert.EqualValues(t, 7300, dash["pipeline_value"])
	assert.EqualValues(t, 5, dash["total_leads"])

	rec = s.do(t, http.MethodGet, "/api/reports/analytics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "facebook", decode[map[string]any](t, rec)["top_lead_source"])

	rec = s.do(t, http.MethodGet, "/api/reports/export.xlsx", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "crm-report-")
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Invoices")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[HealthResponse](t, rec)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 5, resp.Records["leads"])
	assert.Equal(t, "not configured", resp.Dependencies["rabbitmq"])

	h := NewHealthHandler(s.store.Counts, brokerDown{}, true)
	h.StartTime = time.Now().Add(-time.Minute)
	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
