package usecase

import (
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// TransitionPolicy decides whether a deal stage or invoice status may move.
type TransitionPolicy interface {
	AllowStage(from, to entity.DealStage) bool
	AllowStatus(from, to entity.InvoiceStatus) bool
}

// OpenTransitions allows every move. It is the default.
type OpenTransitions struct{}

func (OpenTransitions) AllowStage(from, to entity.DealStage) bool      { return true }
func (OpenTransitions) AllowStatus(from, to entity.InvoiceStatus) bool { return true }

// StrictTransitions follows a fixed graph: open deals may move between any
// open stage or close, closed deals stay closed. Paid invoices are final.
type StrictTransitions struct{}

var invoiceTransitions = map[entity.InvoiceStatus][]entity.InvoiceStatus{
	entity.InvoiceDraft:   {entity.InvoiceSent},
	entity.InvoiceSent:    {entity.InvoicePaid, entity.InvoiceOverdue},
	entity.InvoiceOverdue: {entity.InvoicePaid, entity.InvoiceSent},
	entity.InvoicePaid:    {},
}

func (StrictTransitions) AllowStage(from, to entity.DealStage) bool {
	if from == to {
		return true
	}
	return from.IsOpen()
}

func (StrictTransitions) AllowStatus(from, to entity.InvoiceStatus) bool {
	if from == to {
		return true
	}
	for _, next := range invoiceTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NewTransitionPolicy returns the strict graph when enforce is set.
func NewTransitionPolicy(enforce bool) TransitionPolicy {
	if enforce {
		return StrictTransitions{}
	}
	return OpenTransitions{}
}

func invalidTransition(kind string, from, to any) *DomainError {
	return &DomainError{
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("%s cannot move from %v to %v", kind, from, to),
	}
}
