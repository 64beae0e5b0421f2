package usecase

import (
	"errors"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// ValidationError lists the offending fields and unwraps to
// entity.ErrValidation.
type ValidationError = entity.ValidationError

// DomainError is a business refusal, e.g. a forbidden status move.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError reports an infrastructure failure (broker, smtp).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error { return e.Err }

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

const (
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeLeadNotFound      = "LEAD_NOT_FOUND"
	CodeLeadWithoutEmail  = "LEAD_WITHOUT_EMAIL"
	CodeInvoicePaid       = "INVOICE_ALREADY_PAID"
	CodeStatusChanged     = "INVOICE_STATUS_CHANGED"
	CodePublishFailed     = "PUBLISH_FAILED"
)
