package events

import (
	"context"
	"encoding/json"
	"fmt"

	"servana/models"

	"github.com/hibiken/asynq"
)

// AsynqPublisher enqueues each domain event as an asynq task; the background
// worker consumes the queue and fans events out to collaborators. Delivery is
// at-least-once, so consumers dedupe on booking id plus event type.
type AsynqPublisher struct {
	Client *asynq.Client
}

func NewAsynqPublisher(client *asynq.Client) *AsynqPublisher {
	return &AsynqPublisher{Client: client}
}

func (p *AsynqPublisher) Publish(ctx context.Context, event models.BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s for booking %s: %w", event.Type, event.BookingID, err)
	}

	task := asynq.NewTask(event.Type, payload)
	if _, err := p.Client.EnqueueContext(ctx, task, asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("failed to enqueue event %s for booking %s: %w", event.Type, event.BookingID, err)
	}
	return nil
}
