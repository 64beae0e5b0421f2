package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// MetricsRecorder receives domain counters. The HTTP metrics middleware
// provides the Prometheus implementation.
type MetricsRecorder interface {
	LeadCreated(source entity.LeadSource)
	DealStageMoved(from, to entity.DealStage)
	InvoiceStatusChanged(from, to entity.InvoiceStatus)
	InvoiceDelivery(result string)
}

type NopMetrics struct{}

func (NopMetrics) LeadCreated(entity.LeadSource)                      {}
func (NopMetrics) DealStageMoved(from, to entity.DealStage)           {}
func (NopMetrics) InvoiceStatusChanged(from, to entity.InvoiceStatus) {}
func (NopMetrics) InvoiceDelivery(result string)                      {}

// Clock returns the current time; tests swap it for a fixed one.
type Clock func() time.Time

func newItemID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
