package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

type InvoiceUseCase struct {
	Repo     entity.InvoiceRepositoryInterface
	Leads    entity.LeadRepositoryInterface
	Products entity.ProductRepositoryInterface
	Producer queue.QueueProducerInterface
	Metrics  MetricsRecorder
	Policy   TransitionPolicy
	Now      Clock
	log      *logrus.Entry
}

func NewInvoiceUseCase(
	repo entity.InvoiceRepositoryInterface,
	leads entity.LeadRepositoryInterface,
	products entity.ProductRepositoryInterface,
	producer queue.QueueProducerInterface,
	metrics MetricsRecorder,
	policy TransitionPolicy,
	log *logrus.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		Repo:     repo,
		Leads:    leads,
		Products: products,
		Producer: producer,
		Metrics:  metrics,
		Policy:   policy,
		Now:      time.Now,
		log:      log.WithField("usecase", "invoice"),
	}
}

// Create stores a draft invoice with a freshly generated number. The amount
// is always the sum of the line totals.
func (uc *InvoiceUseCase) Create(ctx context.Context, input CreateInvoiceInput) (*entity.Invoice, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := uc.Now()
	dueDate, err := parseDate("due_date", input.DueDate, now)
	if err != nil {
		return nil, err
	}

	invoice, err := entity.NewInvoice(uc.Repo.NextInvoiceNumber(), input.LeadID,
		uc.leadName(ctx, input.LeadID), dueDate, toItems(input.Items), now)
	if err != nil {
		return nil, err
	}

	saved, err := uc.Repo.Insert(ctx, invoice)
	if err != nil {
		return nil, fmt.Errorf("insert invoice: %w", err)
	}
	uc.log.WithFields(logrus.Fields{
		"invoice": saved.InvoiceNumber,
		"amount":  saved.Amount.String(),
	}).Info("invoice created")
	return saved, nil
}

// Update recomputes the amount whenever items are supplied. Changing the
// lead re-reads its name.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, input UpdateInvoiceInput) (*entity.Invoice, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var dueDate time.Time
	if input.DueDate != nil {
		var err error
		if dueDate, err = parseDate("due_date", *input.DueDate, uc.Now()); err != nil {
			return nil, err
		}
	}
	var leadName string
	if input.LeadID != nil {
		leadName = uc.leadName(ctx, *input.LeadID)
	}

	var from entity.InvoiceStatus
	updated, err := uc.Repo.Update(ctx, id, func(inv *entity.Invoice) error {
		from = inv.Status
		if input.Status != nil && !uc.Policy.AllowStatus(inv.Status, *input.Status) {
			return invalidTransition("invoice", inv.Status, *input.Status)
		}

		if input.LeadID != nil {
			inv.LeadID = *input.LeadID
			inv.LeadName = leadName
		}
		if input.DueDate != nil {
			inv.DueDate = dueDate
		}
		if input.Status != nil {
			inv.Status = *input.Status
		}
		if input.Items != nil {
			inv.Items = toItems(*input.Items)
			inv.Recalculate()
		}
		return inv.Validate()
	})
	if err != nil {
		return nil, err
	}

	uc.statusChanged(ctx, updated, from)
	return updated, nil
}

func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Repo.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove invoice %s: %w", id, err)
	}
	return nil
}

func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*entity.Invoice, error) {
	return uc.Repo.FindByID(ctx, id)
}

func (uc *InvoiceUseCase) List(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, error) {
	invoices, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if !inv.Matches(filter.Search) {
			continue
		}
		if !isAll(filter.Status) && string(inv.Status) != filter.Status {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

// Send marks the invoice as sent and queues the e-mail to the lead. If the
// delivery request cannot be published the previous status is restored.
// Resending a sent or overdue invoice keeps its status.
func (uc *InvoiceUseCase) Send(ctx context.Context, id string) (*entity.Invoice, error) {
	invoice, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status == entity.InvoicePaid {
		return nil, &DomainError{Code: CodeInvoicePaid, Message: fmt.Sprintf("invoice %s is already paid", invoice.InvoiceNumber)}
	}

	lead, err := uc.Leads.FindByID(ctx, invoice.LeadID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, &DomainError{Code: CodeLeadNotFound, Message: fmt.Sprintf("lead %s of invoice %s no longer exists", invoice.LeadID, invoice.InvoiceNumber)}
		}
		return nil, err
	}
	if lead.Email == "" {
		return nil, &DomainError{Code: CodeLeadWithoutEmail, Message: fmt.Sprintf("lead %s has no e-mail address", lead.ID)}
	}

	from := invoice.Status
	next := from
	if from == entity.InvoiceDraft {
		next = entity.InvoiceSent
	}
	if !uc.Policy.AllowStatus(from, next) {
		return nil, invalidTransition("invoice", from, next)
	}

	var sent *entity.Invoice
	tx := NewTransaction(uc.log.WithField("invoice", invoice.InvoiceNumber))
	tx.AddStep("mark invoice sent",
		func(ctx context.Context) error {
			var err error
			sent, err = uc.Repo.Update(ctx, id, func(inv *entity.Invoice) error {
				if inv.Status != from {
					return statusChangedUnderneath(inv, from)
				}
				inv.Status = next
				return nil
			})
			return err
		},
		func(ctx context.Context) error {
			_, err := uc.Repo.Update(ctx, id, func(inv *entity.Invoice) error {
				// a newer write wins over the undo
				if inv.Status != next {
					return errSkip
				}
				inv.Status = from
				return nil
			})
			if errors.Is(err, errSkip) {
				return nil
			}
			return err
		},
	)
	tx.AddStep("publish delivery request",
		func(ctx context.Context) error {
			return uc.Producer.PublishInvoiceDelivery(ctx, deliveryPayload(sent, lead.Email))
		},
		nil,
	)

	if err := tx.Execute(ctx); err != nil {
		var de *DomainError
		if errors.As(err, &de) {
			return nil, de
		}
		uc.Metrics.InvoiceDelivery("failed")
		return nil, &TechnicalError{Code: CodePublishFailed, Message: "invoice delivery could not be queued", Err: err}
	}

	uc.Metrics.InvoiceDelivery("queued")
	uc.statusChanged(ctx, sent, from)
	uc.log.WithFields(logrus.Fields{"invoice": sent.InvoiceNumber, "to": lead.Email}).Info("invoice delivery queued")
	return sent, nil
}

// MarkOverdue flags sent invoices whose due date has passed and returns how
// many were changed.
func (uc *InvoiceUseCase) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	invoices, err := uc.Repo.List(ctx)
	if err != nil {
		return 0, err
	}

	marked := 0
	for _, inv := range invoices {
		if inv.Status != entity.InvoiceSent || !inv.DueDate.Before(now) {
			continue
		}

		updated, err := uc.Repo.Update(ctx, inv.ID, func(cur *entity.Invoice) error {
			if cur.Status != entity.InvoiceSent {
				return errSkip
			}
			cur.Status = entity.InvoiceOverdue
			return nil
		})
		switch {
		case errors.Is(err, errSkip), errors.Is(err, entity.ErrNotFound):
			continue
		case err != nil:
			return marked, fmt.Errorf("mark invoice %s overdue: %w", inv.InvoiceNumber, err)
		}

		marked++
		uc.statusChanged(ctx, updated, entity.InvoiceSent)
	}
	return marked, nil
}

var errSkip = errors.New("skip")

// statusChangedUnderneath reports that another request moved the invoice
// after Send read it.
func statusChangedUnderneath(inv *entity.Invoice, read entity.InvoiceStatus) *DomainError {
	if inv.Status == entity.InvoicePaid {
		return &DomainError{Code: CodeInvoicePaid, Message: fmt.Sprintf("invoice %s is already paid", inv.InvoiceNumber)}
	}
	return &DomainError{
		Code:    CodeStatusChanged,
		Message: fmt.Sprintf("invoice %s changed from %s to %s while sending", inv.InvoiceNumber, read, inv.Status),
	}
}

func (uc *InvoiceUseCase) statusChanged(ctx context.Context, inv *entity.Invoice, from entity.InvoiceStatus) {
	if inv.Status == from {
		return
	}
	uc.Metrics.InvoiceStatusChanged(from, inv.Status)
	notify(ctx, uc.Producer, uc.log, queue.EventInvoiceStatusChanged, inv.ID, uc.Now(), map[string]string{
		"invoice_number": inv.InvoiceNumber,
		"from":           string(from),
		"to":             string(inv.Status),
	})
}

// leadName returns the lead's name, or "" when the lead is unknown.
func (uc *InvoiceUseCase) leadName(ctx context.Context, leadID string) string {
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return ""
	}
	return lead.Name
}

func toItems(in []InvoiceItemInput) []entity.InvoiceItem {
	items := make([]entity.InvoiceItem, 0, len(in))
	for _, it := range in {
		id := it.ID
		if id == "" {
			id = newItemID()
		}
		items = append(items, entity.InvoiceItem{
			ID:          id,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	return items
}

func deliveryPayload(inv *entity.Invoice, email string) queue.InvoiceDeliveryPayload {
	items := make([]queue.DeliveryItem, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, queue.DeliveryItem{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Total:       it.Total,
		})
	}
	return queue.InvoiceDeliveryPayload{
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		LeadName:      inv.LeadName,
		Email:         email,
		Amount:        inv.Amount,
		DueDate:       inv.DueDate,
		Items:         items,
	}
}
