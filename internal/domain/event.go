package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"roompush/internal/model"
)

const (
	EventTypeRoomAlert   = "room_notification"
	EventTypeRoomMessage = "room_chat_message"
)

var (
	ErrMissingIdentifiers = errors.New("room_id and sender_id are required")
	ErrInvalidSenderID    = errors.New("invalid sender_id format")
)

// SanitizeUUID strips stray quote characters and surrounding whitespace.
// Some clients double-encode identifiers, so raw values may arrive as `"id"`.
func SanitizeUUID(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, `"`, ""))
}

// IsValidUUID reports whether value is in canonical UUID form: hex groups
// with dashes at positions 8/13/18/23, case-insensitive.
func IsValidUUID(value string) bool {
	if len(value) != 36 {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}

// Normalize sanitizes every field of the event once at the ingress boundary
// so downstream components never re-check quoting or whitespace.
func Normalize(event model.RoomEvent) model.RoomEvent {
	event.RoomID = SanitizeUUID(event.RoomID)
	event.SenderID = SanitizeUUID(event.SenderID)
	event.SenderName = strings.TrimSpace(event.SenderName)
	event.Title = strings.TrimSpace(event.Title)
	event.Body = strings.TrimSpace(event.Body)
	event.Content = strings.TrimSpace(event.Content)
	event.MessageID = strings.TrimSpace(event.MessageID)
	event.RoomName = strings.TrimSpace(event.RoomName)
	event.ImageURL = strings.TrimSpace(event.ImageURL)
	event.Link = strings.TrimSpace(event.Link)
	event.SenderAvatar = strings.TrimSpace(event.SenderAvatar)
	return event
}

// ValidateEvent enforces the ingress invariants: both identifiers present
// and a syntactically valid sender UUID. The event must be normalized first.
func ValidateEvent(event model.RoomEvent) error {
	if event.RoomID == "" || event.SenderID == "" {
		return ErrMissingIdentifiers
	}
	if !IsValidUUID(event.SenderID) {
		return ErrInvalidSenderID
	}
	return nil
}
