package entity

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Deal is a sales opportunity. LeadName is a snapshot taken at creation and
// is never re-synced with the lead.
type Deal struct {
	ID          string          `json:"id"`
	LeadID      string          `json:"lead_id"`
	LeadName    string          `json:"lead_name"`
	Stage       DealStage       `json:"stage"`
	Value       decimal.Decimal `json:"value"`
	Products    []string        `json:"products"`
	Probability int             `json:"probability"`
	CloseDate   time.Time       `json:"close_date"`
	CreatedAt   time.Time       `json:"created_at"`
	Notes       string          `json:"notes"`
}

// NewDeal always starts the deal in the new-lead stage.
func NewDeal(leadID, leadName string, value decimal.Decimal, products []string, probability int, closeDate time.Time, notes string, now time.Time) (*Deal, error) {
	deal := &Deal{
		LeadID:      leadID,
		LeadName:    strings.TrimSpace(leadName),
		Stage:       StageNewLead,
		Value:       value,
		Products:    cleanLines(products),
		Probability: probability,
		CloseDate:   closeDate,
		CreatedAt:   now,
		Notes:       notes,
	}

	if err := deal.Validate(); err != nil {
		return nil, err
	}
	return deal, nil
}

func (d *Deal) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(d.LeadName) == "" {
		verr.Add("lead_name", "is required")
	}
	if d.Value.IsNegative() {
		verr.Add("value", "must not be negative")
	}
	if d.Probability < 0 || d.Probability > 100 {
		verr.Add("probability", "must be between 0 and 100")
	}
	if !d.Stage.IsValid() {
		verr.Add("stage", "is invalid")
	}
	return verr.OrNil()
}

func (d Deal) Clone() Deal {
	out := d
	out.Products = append([]string{}, d.Products...)
	return out
}

type DealRepositoryInterface interface {
	List(ctx context.Context) ([]*Deal, error)
	FindByID(ctx context.Context, id string) (*Deal, error)
	Insert(ctx context.Context, deal *Deal) (*Deal, error)
	Update(ctx context.Context, id string, apply func(*Deal) error) (*Deal, error)
	Remove(ctx context.Context, id string) error
}

// cleanLines drops blank entries, mirroring how multi-line inputs are split.
func cleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}
