package queue

import "context"

type Consumer interface {
	Start(ctx context.Context) error
}

type Publisher interface {
	Publish(ctx context.Context, payload []byte, routingKey string) error
}

// EventPayload is the queued wire form of a room event, shared by the
// publisher endpoint and the consumer.
type EventPayload struct {
	Type         string `json:"type"`
	RoomID       string `json:"room_id"`
	SenderID     string `json:"sender_id"`
	SenderName   string `json:"sender_name,omitempty"`
	Title        string `json:"title,omitempty"`
	Body         string `json:"body,omitempty"`
	Content      string `json:"content,omitempty"`
	MessageID    string `json:"message_id,omitempty"`
	RoomName     string `json:"room_name,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	Link         string `json:"link,omitempty"`
	SenderAvatar string `json:"sender_avatar,omitempty"`
}
