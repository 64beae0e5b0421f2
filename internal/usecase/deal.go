package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

const defaultProbability = 50

type DealUseCase struct {
	Repo     entity.DealRepositoryInterface
	Leads    entity.LeadRepositoryInterface
	Producer queue.QueueProducerInterface
	Metrics  MetricsRecorder
	Policy   TransitionPolicy
	Now      Clock
	log      *logrus.Entry
}

func NewDealUseCase(repo entity.DealRepositoryInterface, leads entity.LeadRepositoryInterface, producer queue.QueueProducerInterface, metrics MetricsRecorder, policy TransitionPolicy, log *logrus.Logger) *DealUseCase {
	return &DealUseCase{
		Repo:     repo,
		Leads:    leads,
		Producer: producer,
		Metrics:  metrics,
		Policy:   policy,
		Now:      time.Now,
		log:      log.WithField("usecase", "deal"),
	}
}

// Create starts the deal in the new-lead stage. When no lead name is given
// it is copied from the referenced lead, if that lead exists.
func (uc *DealUseCase) Create(ctx context.Context, input CreateDealInput) (*entity.Deal, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	now := uc.Now()
	closeDate, err := parseDate("close_date", input.CloseDate, now)
	if err != nil {
		return nil, err
	}
	probability := defaultProbability
	if input.Probability != nil {
		probability = *input.Probability
	}
	leadName := input.LeadName
	if strings.TrimSpace(leadName) == "" {
		leadName = uc.leadName(ctx, input.LeadID)
	}

	deal, err := entity.NewDeal(input.LeadID, leadName, *input.Value, input.Products,
		probability, closeDate, input.Notes, now)
	if err != nil {
		return nil, err
	}

	saved, err := uc.Repo.Insert(ctx, deal)
	if err != nil {
		return nil, fmt.Errorf("insert deal: %w", err)
	}
	uc.log.WithFields(logrus.Fields{"deal_id": saved.ID, "value": saved.Value.String()}).Info("deal created")
	return saved, nil
}

func (uc *DealUseCase) Update(ctx context.Context, id string, input UpdateDealInput) (*entity.Deal, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var closeDate time.Time
	if input.CloseDate != nil {
		var err error
		if closeDate, err = parseDate("close_date", *input.CloseDate, uc.Now()); err != nil {
			return nil, err
		}
	}
	var resolvedName string
	if input.LeadID != nil && input.LeadName == nil {
		resolvedName = uc.leadName(ctx, *input.LeadID)
	}

	var from entity.DealStage
	updated, err := uc.Repo.Update(ctx, id, func(d *entity.Deal) error {
		from = d.Stage
		if input.Stage != nil && !uc.Policy.AllowStage(d.Stage, *input.Stage) {
			return invalidTransition("deal", d.Stage, *input.Stage)
		}

		if input.LeadID != nil {
			d.LeadID = *input.LeadID
			if input.LeadName == nil && resolvedName != "" {
				d.LeadName = resolvedName
			}
		}
		if input.LeadName != nil {
			d.LeadName = *input.LeadName
		}
		if input.Stage != nil {
			d.Stage = *input.Stage
		}
		if input.Value != nil {
			d.Value = *input.Value
		}
		if input.Products != nil {
			d.Products = append([]string{}, *input.Products...)
		}
		if input.Probability != nil {
			d.Probability = *input.Probability
		}
		if input.CloseDate != nil {
			d.CloseDate = closeDate
		}
		if input.Notes != nil {
			d.Notes = *input.Notes
		}
		return d.Validate()
	})
	if err != nil {
		return nil, err
	}

	uc.stageChanged(ctx, updated, from)
	return updated, nil
}

// MoveStage changes only the stage, as a pipeline drag and drop does.
func (uc *DealUseCase) MoveStage(ctx context.Context, id string, input MoveStageInput) (*entity.Deal, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	stage := input.Stage
	return uc.Update(ctx, id, UpdateDealInput{Stage: &stage})
}

func (uc *DealUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Repo.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove deal %s: %w", id, err)
	}
	return nil
}

func (uc *DealUseCase) Get(ctx context.Context, id string) (*entity.Deal, error) {
	return uc.Repo.FindByID(ctx, id)
}

func (uc *DealUseCase) List(ctx context.Context, filter DealFilter) ([]*entity.Deal, error) {
	deals, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if isAll(filter.Stage) {
		return deals, nil
	}

	out := make([]*entity.Deal, 0, len(deals))
	for _, d := range deals {
		if string(d.Stage) == filter.Stage {
			out = append(out, d)
		}
	}
	return out, nil
}

func (uc *DealUseCase) stageChanged(ctx context.Context, d *entity.Deal, from entity.DealStage) {
	if d.Stage == from {
		return
	}
	uc.Metrics.DealStageMoved(from, d.Stage)
	notify(ctx, uc.Producer, uc.log, queue.EventDealStageChanged, d.ID, uc.Now(), map[string]string{
		"from": string(from),
		"to":   string(d.Stage),
	})
	uc.log.WithFields(logrus.Fields{"deal_id": d.ID, "from": from, "to": d.Stage}).Info("deal stage changed")
}

// leadName returns the current name of the lead, or "" when it is unknown.
func (uc *DealUseCase) leadName(ctx context.Context, leadID string) string {
	if leadID == "" {
		return ""
	}
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return ""
	}
	return lead.Name
}
