package memory

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"roompush/internal/model"
)

// Directory is an in-memory stand-in for the membership/token store, used
// in tests and when no backing store is configured.
type Directory struct {
	mu      sync.Mutex
	members map[string][]string
	tokens  map[string][]string
	names   map[string]string
	log     *zap.Logger
}

func New(logger *zap.Logger) *Directory {
	return &Directory{
		members: make(map[string][]string),
		tokens:  make(map[string][]string),
		names:   make(map[string]string),
		log:     logger,
	}
}

func (d *Directory) AddMember(roomID, userID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.members[roomID] = append(d.members[roomID], userID)
}

func (d *Directory) AddToken(userID, token string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tokens[userID] = append(d.tokens[userID], token)
}

func (d *Directory) SetRoomName(roomID, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names[roomID] = name
}

func (d *Directory) RoomMembers(_ context.Context, roomID string) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.members[roomID]...), nil
}

func (d *Directory) PushTokens(_ context.Context, userIDs []string) ([]model.PushToken, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var result []model.PushToken
	for _, id := range userIDs {
		for _, token := range d.tokens[id] {
			result = append(result, model.PushToken{UserID: id, Token: token})
		}
	}
	return result, nil
}

func (d *Directory) RoomName(_ context.Context, roomID string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.names[roomID], nil
}
