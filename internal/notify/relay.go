package notify

import (
	"context"
	"encoding/json"
	"time"

	"medstory-be/internal/pkg/logger"
	"medstory-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

const busPublishTimeout = 5 * time.Second

// UserSender pushes a typed message to every connection of a user.
type UserSender interface {
	SendToUser(userID string, eventType string, payload interface{})
}

// EventPublisher forwards events to the external bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Relay consumes upload events and fans them out to websocket clients and, when set, the bus.
type Relay struct {
	subscriber message.Subscriber
	sender     UserSender
	bus        EventPublisher
	logger     logger.ILogger
}

func NewRelay(subscriber message.Subscriber, sender UserSender, bus EventPublisher, log logger.ILogger) *Relay {
	return &Relay{
		subscriber: subscriber,
		sender:     sender,
		bus:        bus,
		logger:     log,
	}
}

// Run subscribes and processes messages in the background until ctx is done.
func (r *Relay) Run(ctx context.Context) error {
	messages, err := r.subscriber.Subscribe(ctx, TopicUploadCompleted)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			r.handle(ctx, msg)
		}
	}()

	r.logger.Info(notifyModule, "Upload relay started", map[string]interface{}{"topic": TopicUploadCompleted})
	return nil
}

func (r *Relay) handle(ctx context.Context, msg *message.Message) {
	// Ack in every branch: a malformed or undeliverable event is not retried.
	defer msg.Ack()

	var evt UploadCompleted
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		r.logger.Error(notifyModule, "Failed to unmarshal upload event", map[string]interface{}{"error": err.Error()})
		return
	}

	if r.sender != nil {
		r.sender.SendToUser(evt.Uid, MessageTypeUploadCompleted, evt)
	}

	if r.bus != nil {
		pubCtx, cancel := context.WithTimeout(ctx, busPublishTimeout)
		defer cancel()
		busEvt := events.NewUploadCompleted(evt.Uid, evt.ImageRef, evt.Section, evt.FullDate, evt.OccurredAt)
		if err := r.bus.Publish(pubCtx, busEvt); err != nil {
			r.logger.Warn(notifyModule, "Failed to publish upload event to bus", map[string]interface{}{
				"user_id": evt.Uid,
				"error":   err.Error(),
			})
		}
	}
}
