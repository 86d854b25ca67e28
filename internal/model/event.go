package model

// RoomEvent is the normalized form of an inbound notification request.
// Kind carries one of the domain event type constants.
type RoomEvent struct {
	Kind         string
	RoomID       string
	SenderID     string
	SenderName   string
	Title        string
	Body         string
	Content      string
	MessageID    string
	RoomName     string
	ImageURL     string
	Link         string
	SenderAvatar string
}

type PushToken struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// DispatchResult is the outcome of one send attempt for one device token.
type DispatchResult struct {
	Token  string
	UserID string
	OK     bool
	Status int
	Body   string
}

// DispatchFailure is the wire form of a failed send, reported in the
// aggregated response.
type DispatchFailure struct {
	Token  string `json:"token"`
	Status int    `json:"status"`
	Body   string `json:"body"`
	UserID string `json:"user_id,omitempty"`
}
