package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

type LeadUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Producer queue.QueueProducerInterface
	Metrics  MetricsRecorder
	Now      Clock
	log      *logrus.Entry
}

func NewLeadUseCase(repo entity.LeadRepositoryInterface, producer queue.QueueProducerInterface, metrics MetricsRecorder, log *logrus.Logger) *LeadUseCase {
	return &LeadUseCase{
		Repo:     repo,
		Producer: producer,
		Metrics:  metrics,
		Now:      time.Now,
		log:      log.WithField("usecase", "lead"),
	}
}

func (uc *LeadUseCase) Create(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	lead, err := entity.NewLead(input.Name, input.Email, input.Phone, input.BusinessType,
		input.Segment, input.Source, input.Notes, uc.Now())
	if err != nil {
		return nil, err
	}

	saved, err := uc.Repo.Insert(ctx, lead)
	if err != nil {
		return nil, fmt.Errorf("insert lead: %w", err)
	}

	uc.Metrics.LeadCreated(saved.Source)
	notify(ctx, uc.Producer, uc.log, queue.EventLeadCreated, saved.ID, saved.CreatedAt, map[string]string{
		"name":   saved.Name,
		"source": string(saved.Source),
	})
	uc.log.WithFields(logrus.Fields{"lead_id": saved.ID, "source": saved.Source}).Info("lead created")
	return saved, nil
}

// Update overwrites only the fields present in input. Deals and invoices
// keep their copy of the old name.
func (uc *LeadUseCase) Update(ctx context.Context, id string, input UpdateLeadInput) (*entity.Lead, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	return uc.Repo.Update(ctx, id, func(l *entity.Lead) error {
		if input.Name != nil {
			l.Name = *input.Name
		}
		if input.Email != nil {
			l.Email = *input.Email
		}
		if input.Phone != nil {
			l.Phone = *input.Phone
		}
		if input.BusinessType != nil {
			l.BusinessType = *input.BusinessType
		}
		if input.Segment != nil {
			l.Segment = *input.Segment
		}
		if input.Source != nil {
			l.Source = *input.Source
		}
		if input.Status != nil {
			l.Status = *input.Status
		}
		if input.Notes != nil {
			l.Notes = *input.Notes
		}
		return l.Validate()
	})
}

// Delete is a no-op for unknown ids. Referencing deals and invoices are left
// as they are.
func (uc *LeadUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Repo.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove lead %s: %w", id, err)
	}
	return nil
}

func (uc *LeadUseCase) Get(ctx context.Context, id string) (*entity.Lead, error) {
	return uc.Repo.FindByID(ctx, id)
}

func (uc *LeadUseCase) List(ctx context.Context, filter LeadFilter) ([]*entity.Lead, error) {
	leads, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Lead, 0, len(leads))
	for _, l := range leads {
		if !l.Matches(filter.Search) {
			continue
		}
		if !isAll(filter.Segment) && string(l.Segment) != filter.Segment {
			continue
		}
		if !isAll(filter.Status) && string(l.Status) != filter.Status {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
