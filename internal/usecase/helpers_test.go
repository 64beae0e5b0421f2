package usecase

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/fixture"
	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

var fixedNow = time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishEvent(ctx context.Context, event queue.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockProducer) PublishInvoiceDelivery(ctx context.Context, payload queue.InvoiceDeliveryPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// quietProducer accepts every event.
func quietProducer() *MockProducer {
	p := new(MockProducer)
	p.On("PublishEvent", mock.Anything, mock.Anything).Return(nil).Maybe()
	return p
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) LeadCreated(source entity.LeadSource) { m.Called(source) }

func (m *MockMetrics) DealStageMoved(from, to entity.DealStage) { m.Called(from, to) }

func (m *MockMetrics) InvoiceStatusChanged(from, to entity.InvoiceStatus) { m.Called(from, to) }

func (m *MockMetrics) InvoiceDelivery(result string) { m.Called(result) }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func fixtureStore() *database.Store {
	data := fixture.LoadInitialData()
	store := database.NewStore()
	store.Load(data.Leads, data.Deals, data.Products, data.Invoices)
	return store
}

func ptr[T any](v T) *T { return &v }
