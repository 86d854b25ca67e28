package resp

// Response copy is part of the contract with existing clients; the strings
// must match what the mobile app already parses.
const (
	MsgProcessed    = "Notifications processed"
	MsgNoMembers    = "No other members in the room"
	MsgNoRecipients = "No recipients for this message"
	MsgNoTokens     = "No FCM tokens found for room members"
	MsgQueued       = "queued"

	ErrInvalidJSON     = "invalid json"
	ErrMissingIDs      = "room_id and sender_id are required"
	ErrInvalidSenderID = "Invalid sender_id format"
	ErrPublishFailed   = "failed to publish room event"
)
