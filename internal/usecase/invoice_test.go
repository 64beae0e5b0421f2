package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

func newInvoiceUseCase(store *database.Store, producer *MockProducer, policy TransitionPolicy) *InvoiceUseCase {
	uc := NewInvoiceUseCase(store.Invoices, store.Leads, store.Products, producer, NopMetrics{}, policy, quietLogger())
	uc.Now = fixedClock
	return uc
}

func TestInvoiceUseCase_Create(t *testing.T) {
	ctx := context.Background()
	store := fixtureStore()
	uc := newInvoiceUseCase(store, quietProducer(), OpenTransitions{})

	inv, err := uc.Create(ctx, CreateInvoiceInput{
		LeadID:  "3",
		DueDate: "2025-04-01",
		Items: []InvoiceItemInput{
			{ProductID: "3", ProductName: "Domain Registration", Quantity: 2, Price: decimal.NewFromInt(15)},
			{ProductName: "Custom logo", Quantity: 1, Price: decimal.RequireFromString("249.50")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "INV-003", inv.InvoiceNumber, "numbering continues after the fixtures")
	assert.Equal(t, entity.InvoiceDraft, inv.Status)
	assert.Equal(t, "Emma Wilson", inv.LeadName)
	assert.Equal(t, fixedNow, inv.CreatedAt)
	assert.Equal(t, "30", inv.Items[0].Total.String())
	assert.Equal(t, "279.5", inv.Amount.String())
	assert.True(t, inv.Amount.Equal(inv.ItemsTotal()))
	assert.NotEmpty(t, inv.Items[1].ID)

	next, err := uc.Create(ctx, CreateInvoiceInput{
		LeadID: "ghost",
		Items:  []InvoiceItemInput{{ProductName: "x", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-004", next.InvoiceNumber)
	assert.Equal(t, "", next.LeadName, "unknown lead leaves the name empty")
	assert.Equal(t, fixedNow, next.DueDate)
}

func TestInvoiceUseCase_CreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateInvoiceInput
		field string
	}{
		{"no items", CreateInvoiceInput{LeadID: "1"}, "items"},
		{"empty items", CreateInvoiceInput{LeadID: "1", Items: []InvoiceItemInput{}}, "items"},
		{"no lead", CreateInvoiceInput{Items: []InvoiceItemInput{{Quantity: 1}}}, "lead_id"},
		{"zero quantity", CreateInvoiceInput{LeadID: "1", Items: []InvoiceItemInput{{Quantity: 0}}}, "items[0].quantity"},
		{"negative price", CreateInvoiceInput{LeadID: "1", Items: []InvoiceItemInput{{Quantity: 1, Price: decimal.NewFromInt(-5)}}}, "items[0].price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := fixtureStore()
			_, err := newInvoiceUseCase(store, quietProducer(), OpenTransitions{}).Create(context.Background(), tt.input)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Errors[0].Field)
			assert.Equal(t, 2, store.Invoices.Count())
		})
	}
}

func TestInvoiceUseCase_UpdateRecomputesAmount(t *testing.T) {
	ctx := context.Background()
	uc := newInvoiceUseCase(fixtureStore(), quietProducer(), OpenTransitions{})

	// status-only edits keep the stored amount, even when it disagrees with the items
	inv, err := uc.Update(ctx, "2", UpdateInvoiceInput{Status: ptr(entity.InvoicePaid)})
	require.NoError(t, err)
	assert.Equal(t, "2060", inv.Amount.String())

	inv, err = uc.Update(ctx, "2", UpdateInvoiceInput{Items: &[]InvoiceItemInput{
		{ID: "3", ProductID: "1", ProductName: "Basic Website Package", Quantity: 2, Price: decimal.NewFromInt(1500)},
	}})
	require.NoError(t, err)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "3000", inv.Items[0].Total.String())
	assert.Equal(t, "3000", inv.Amount.String())

	_, err = uc.Update(ctx, "2", UpdateInvoiceInput{Items: &[]InvoiceItemInput{}})
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = uc.Update(ctx, "42", UpdateInvoiceInput{Status: ptr(entity.InvoicePaid)})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestInvoiceUseCase_StatusTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("open policy allows paid back to draft", func(t *testing.T) {
		uc := newInvoiceUseCase(fixtureStore(), quietProducer(), OpenTransitions{})
		inv, err := uc.Update(ctx, "1", UpdateInvoiceInput{Status: ptr(entity.InvoiceDraft)})
		require.NoError(t, err)
		assert.Equal(t, entity.InvoiceDraft, inv.Status)
	})

	t.Run("strict policy refuses paid back to draft", func(t *testing.T) {
		uc := newInvoiceUseCase(fixtureStore(), quietProducer(), StrictTransitions{})
		_, err := uc.Update(ctx, "1", UpdateInvoiceInput{Status: ptr(entity.InvoiceDraft)})
		assert.True(t, IsDomainError(err))
	})

	t.Run("status change is published", func(t *testing.T) {
		producer := new(MockProducer)
		producer.On("PublishEvent", mock.Anything, mock.MatchedBy(func(e queue.Event) bool {
			return e.Type == queue.EventInvoiceStatusChanged && e.Data["to"] == "paid"
		})).Return(nil).Once()

		uc := newInvoiceUseCase(fixtureStore(), producer, StrictTransitions{})
		_, err := uc.Update(ctx, "2", UpdateInvoiceInput{Status: ptr(entity.InvoicePaid)})

		require.NoError(t, err)
		producer.AssertExpectations(t)
	})
}

func draftInvoice(t *testing.T, uc *InvoiceUseCase, leadID string) *entity.Invoice {
	t.Helper()
	inv, err := uc.Create(context.Background(), CreateInvoiceInput{
		LeadID: leadID,
		Items:  []InvoiceItemInput{{ProductID: "5", ProductName: "Web Hosting", Quantity: 1, Price: decimal.NewFromInt(120)}},
	})
	require.NoError(t, err)
	return inv
}

func TestInvoiceUseCase_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("marks sent and queues delivery", func(t *testing.T) {
		producer := quietProducer()
		producer.On("PublishInvoiceDelivery", mock.Anything, mock.MatchedBy(func(p queue.InvoiceDeliveryPayload) bool {
			return p.Email == "emma@lawfirm.com" && p.InvoiceNumber == "INV-003" && len(p.Items) == 1
		})).Return(nil).Once()

		uc := newInvoiceUseCase(fixtureStore(), producer, StrictTransitions{})
		draft := draftInvoice(t, uc, "3")

		sent, err := uc.Send(ctx, draft.ID)

		require.NoError(t, err)
		assert.Equal(t, entity.InvoiceSent, sent.Status)
		producer.AssertExpectations(t)
	})

	t.Run("restores status when delivery cannot be queued", func(t *testing.T) {
		producer := quietProducer()
		producer.On("PublishInvoiceDelivery", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

		store := fixtureStore()
		uc := newInvoiceUseCase(store, producer, OpenTransitions{})
		draft := draftInvoice(t, uc, "3")

		_, err := uc.Send(ctx, draft.ID)

		var te *TechnicalError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, CodePublishFailed, te.Code)
		stored, _ := store.Invoices.FindByID(ctx, draft.ID)
		assert.Equal(t, entity.InvoiceDraft, stored.Status)
	})

	t.Run("lead deleted", func(t *testing.T) {
		store := fixtureStore()
		uc := newInvoiceUseCase(store, quietProducer(), OpenTransitions{})
		draft := draftInvoice(t, uc, "3")
		require.NoError(t, store.Leads.Remove(ctx, "3"))

		_, err := uc.Send(ctx, draft.ID)

		var de *DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, CodeLeadNotFound, de.Code)
	})

	t.Run("paid by another request before the write", func(t *testing.T) {
		for _, policy := range []TransitionPolicy{OpenTransitions{}, StrictTransitions{}} {
			producer := quietProducer()
			store := fixtureStore()
			uc := newInvoiceUseCase(store, producer, policy)
			draft := draftInvoice(t, uc, "3")
			uc.Repo = &payFirstRepo{InvoiceRepository: store.Invoices}

			_, err := uc.Send(ctx, draft.ID)

			var de *DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, CodeInvoicePaid, de.Code)
			stored, _ := store.Invoices.FindByID(ctx, draft.ID)
			assert.Equal(t, entity.InvoicePaid, stored.Status)
			producer.AssertNotCalled(t, "PublishInvoiceDelivery", mock.Anything, mock.Anything)
		}
	})

	t.Run("undo keeps a payment recorded meanwhile", func(t *testing.T) {
		store := fixtureStore()
		producer := quietProducer()
		uc := newInvoiceUseCase(store, producer, OpenTransitions{})
		draft := draftInvoice(t, uc, "3")
		producer.On("PublishInvoiceDelivery", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) {
				_, err := store.Invoices.Update(ctx, draft.ID, func(inv *entity.Invoice) error {
					inv.Status = entity.InvoicePaid
					return nil
				})
				require.NoError(t, err)
			}).
			Return(errors.New("connection reset"))

		_, err := uc.Send(ctx, draft.ID)

		var te *TechnicalError
		require.ErrorAs(t, err, &te)
		stored, _ := store.Invoices.FindByID(ctx, draft.ID)
		assert.Equal(t, entity.InvoicePaid, stored.Status)
	})

	t.Run("paid invoice", func(t *testing.T) {
		uc := newInvoiceUseCase(fixtureStore(), quietProducer(), OpenTransitions{})
		_, err := uc.Send(ctx, "1")

		var de *DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, CodeInvoicePaid, de.Code)
	})

	t.Run("missing invoice", func(t *testing.T) {
		uc := newInvoiceUseCase(fixtureStore(), quietProducer(), OpenTransitions{})
		_, err := uc.Send(ctx, "nope")
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})
}

func TestInvoiceUseCase_MarkOverdue(t *testing.T) {
	ctx := context.Background()
	store := fixtureStore()
	uc := newInvoiceUseCase(store, quietProducer(), OpenTransitions{})

	n, err := uc.MarkOverdue(ctx, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, n, "due date not yet passed")

	n, err = uc.MarkOverdue(ctx, time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	inv, _ := store.Invoices.FindByID(ctx, "2")
	assert.Equal(t, entity.InvoiceOverdue, inv.Status)
	paid, _ := store.Invoices.FindByID(ctx, "1")
	assert.Equal(t, entity.InvoicePaid, paid.Status)

	n, err = uc.MarkOverdue(ctx, time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestInvoiceUseCase_ListFilters(t *testing.T) {
	uc := newInvoiceUseCase(fixtureStore(), quietProducer(), OpenTransitions{})

	got, err := uc.List(context.Background(), InvoiceFilter{Search: "inv-002"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Sarah Johnson", got[0].LeadName)

	got, err = uc.List(context.Background(), InvoiceFilter{Status: "paid"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "INV-001", got[0].InvoiceNumber)
}

// payFirstRepo marks the invoice paid right before the first update reaches
// the store, the way a concurrent request would.
type payFirstRepo struct {
	*database.InvoiceRepository
	paid bool
}

func (r *payFirstRepo) Update(ctx context.Context, id string, apply func(*entity.Invoice) error) (*entity.Invoice, error) {
	if !r.paid {
		r.paid = true
		if _, err := r.InvoiceRepository.Update(ctx, id, func(inv *entity.Invoice) error {
			inv.Status = entity.InvoicePaid
			return nil
		}); err != nil {
			return nil, err
		}
	}
	return r.InvoiceRepository.Update(ctx, id, apply)
}
