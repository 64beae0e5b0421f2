package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// notify publishes an informational event. A failed publish is logged and
// otherwise ignored.
func notify(ctx context.Context, producer queue.QueueProducerInterface, log *logrus.Entry, eventType, entityID string, at time.Time, data map[string]string) {
	err := producer.PublishEvent(ctx, queue.Event{
		Type:       eventType,
		EntityID:   entityID,
		OccurredAt: at,
		Data:       data,
	})
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"event":     eventType,
			"entity_id": entityID,
		}).Warn("event not published")
	}
}
