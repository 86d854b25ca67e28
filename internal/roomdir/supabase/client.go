package supabase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"roompush/internal/model"
)

// Directory reads room membership and device tokens through the Supabase
// PostgREST API using the privileged service-role key.
type Directory struct {
	rc  *resty.Client
	log *zap.Logger
}

func New(baseURL, serviceKey string, logger *zap.Logger) *Directory {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("apikey", serviceKey).
		SetAuthToken(serviceKey).
		SetTimeout(10 * time.Second)
	return &Directory{rc: rc, log: logger}
}

type memberRow struct {
	UserID string `json:"user_id"`
}

type tokenRow struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

type roomRow struct {
	Name string `json:"name"`
}

func (d *Directory) RoomMembers(ctx context.Context, roomID string) ([]string, error) {
	var rows []memberRow
	resp, err := d.rc.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"select":  "user_id",
			"room_id": "eq." + roomID,
		}).
		SetResult(&rows).
		Get("/rest/v1/room_members")
	if err != nil {
		return nil, fmt.Errorf("room members query: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("room members query: status %d %s", resp.StatusCode(), resp.String())
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.UserID != "" {
			ids = append(ids, row.UserID)
		}
	}
	return ids, nil
}

func (d *Directory) PushTokens(ctx context.Context, userIDs []string) ([]model.PushToken, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var rows []tokenRow
	resp, err := d.rc.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"select":  "user_id,token",
			"user_id": "in.(" + strings.Join(userIDs, ",") + ")",
		}).
		SetResult(&rows).
		Get("/rest/v1/user_tokens")
	if err != nil {
		return nil, fmt.Errorf("push tokens query: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("push tokens query: status %d %s", resp.StatusCode(), resp.String())
	}

	tokens := make([]model.PushToken, 0, len(rows))
	for _, row := range rows {
		if row.Token == "" {
			continue
		}
		tokens = append(tokens, model.PushToken{UserID: row.UserID, Token: row.Token})
	}
	return tokens, nil
}

func (d *Directory) RoomName(ctx context.Context, roomID string) (string, error) {
	var rows []roomRow
	resp, err := d.rc.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"select": "name",
			"id":     "eq." + roomID,
			"limit":  "1",
		}).
		SetResult(&rows).
		Get("/rest/v1/rooms")
	if err != nil {
		return "", fmt.Errorf("room name query: %w", err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("room name query: status %d %s", resp.StatusCode(), resp.String())
	}
	if len(rows) == 0 {
		return "", nil
	}
	return strings.TrimSpace(rows[0].Name), nil
}
