package entity

import (
	"context"
	"strings"
	"time"
)

type Interaction struct {
	ID      string          `json:"id"`
	Type    InteractionType `json:"type"`
	Date    time.Time       `json:"date"`
	Subject string          `json:"subject"`
	Notes   string          `json:"notes"`
}

type Lead struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	BusinessType string        `json:"business_type"`
	Segment      LeadSegment   `json:"segment"`
	Source       LeadSource    `json:"source"`
	Status       LeadStatus    `json:"status"` // new, contacted, qualified, converted
	CreatedAt    time.Time     `json:"created_at"`
	LastContact  time.Time     `json:"last_contact"`
	Notes        string        `json:"notes"`
	Interactions []Interaction `json:"interactions"`
}

// NewLead applies the creation defaults: status new, both timestamps set to
// now and no interactions.
func NewLead(name, email, phone, businessType string, segment LeadSegment, source LeadSource, notes string, now time.Time) (*Lead, error) {
	if segment == "" {
		segment = SegmentColdLead
	}
	if source == "" {
		source = SourceWebsite
	}

	lead := &Lead{
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		Phone:        phone,
		BusinessType: businessType,
		Segment:      segment,
		Source:       source,
		Status:       LeadStatusNew,
		CreatedAt:    now,
		LastContact:  now,
		Notes:        notes,
		Interactions: []Interaction{},
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}
	return lead, nil
}

func (l *Lead) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(l.Name) == "" {
		verr.Add("name", "is required")
	}
	if strings.TrimSpace(l.Email) == "" {
		verr.Add("email", "is required")
	}
	if !l.Segment.IsValid() {
		verr.Add("segment", "is invalid")
	}
	if !l.Source.IsValid() {
		verr.Add("source", "is invalid")
	}
	if !l.Status.IsValid() {
		verr.Add("status", "is invalid")
	}
	return verr.OrNil()
}

// Matches reports whether term appears in the name, email or business type,
// ignoring case. An empty term matches everything.
func (l *Lead) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Name), term) ||
		strings.Contains(strings.ToLower(l.Email), term) ||
		strings.Contains(strings.ToLower(l.BusinessType), term)
}

func (l Lead) Clone() Lead {
	out := l
	out.Interactions = append([]Interaction(nil), l.Interactions...)
	if out.Interactions == nil {
		out.Interactions = []Interaction{}
	}
	return out
}

type LeadRepositoryInterface interface {
	List(ctx context.Context) ([]*Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	Insert(ctx context.Context, lead *Lead) (*Lead, error)
	Update(ctx context.Context, id string, apply func(*Lead) error) (*Lead, error)
	Remove(ctx context.Context, id string) error
}
