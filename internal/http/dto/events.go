package dto

import "roompush/internal/model"

// RoomNotificationRequest is the body of the alert/call endpoint.
type RoomNotificationRequest struct {
	RoomID     string `json:"room_id"`
	SenderID   string `json:"sender_id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	SenderName string `json:"sender_name"`
	ImageURL   string `json:"image_url"`
	Link       string `json:"link"`
}

// RoomMessageRequest is the body of the chat-message endpoint.
type RoomMessageRequest struct {
	RoomID       string `json:"room_id"`
	MessageID    string `json:"message_id"`
	SenderID     string `json:"sender_id"`
	SenderName   string `json:"sender_name"`
	Content      string `json:"content"`
	RoomName     string `json:"room_name"`
	SenderAvatar string `json:"sender_avatar"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse reports a benign no-op (short-circuit) or a queued event.
type StatusResponse struct {
	Message string `json:"message"`
}

// DispatchResponse reports a dispatch that attempted sends.
// RecipientsCount counts successful deliveries only.
type DispatchResponse struct {
	Message         string                  `json:"message"`
	RecipientsCount int                     `json:"recipients_count"`
	Failures        []model.DispatchFailure `json:"failures"`
}
