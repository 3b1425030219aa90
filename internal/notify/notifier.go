// Package notify carries the "upload completed" signal from the note service to
// connected clients and the event bus.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const (
	notifyModule = "NOTIFY"

	// TopicUploadCompleted is the in-process topic for finished uploads.
	TopicUploadCompleted = "upload.completed"
	// MessageTypeUploadCompleted is the websocket message type clients listen for.
	MessageTypeUploadCompleted = "upload_completed"
)

type UploadCompleted struct {
	Uid        string    `json:"uid"`
	ImageRef   string    `json:"image_ref"`
	Section    string    `json:"section"`
	FullDate   string    `json:"full_date"`
	OccurredAt time.Time `json:"occurred_at"`
}

type INotifier interface {
	UploadCompleted(ctx context.Context, evt UploadCompleted) error
}

type WatermillNotifier struct {
	publisher message.Publisher
}

func NewWatermillNotifier(publisher message.Publisher) *WatermillNotifier {
	return &WatermillNotifier{publisher: publisher}
}

func (n *WatermillNotifier) UploadCompleted(ctx context.Context, evt UploadCompleted) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return n.publisher.Publish(TopicUploadCompleted, msg)
}
