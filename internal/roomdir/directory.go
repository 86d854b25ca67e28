package roomdir

import (
	"context"

	"roompush/internal/model"
)

// Directory is the read-only view of the externally owned membership and
// token store. Implementations must return empty results, not errors, when
// a room simply has no members or tokens.
type Directory interface {
	// RoomMembers returns the user ids registered in the room.
	RoomMembers(ctx context.Context, roomID string) ([]string, error)
	// PushTokens returns one row per registered device for the given users.
	PushTokens(ctx context.Context, userIDs []string) ([]model.PushToken, error)
	// RoomName returns the display name of the room, or "" when unknown.
	RoomName(ctx context.Context, roomID string) (string, error)
}
