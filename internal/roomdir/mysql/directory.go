package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"
	"roompush/internal/model"
)

func (d *Directory) RoomMembers(ctx context.Context, roomID string) ([]string, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT user_id FROM room_members WHERE room_id = ?", roomID)
	if err != nil {
		d.log.Error("sql room members failed", zap.String("room_id", roomID), zap.Error(err))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, rows.Err()
}

func (d *Directory) PushTokens(ctx context.Context, userIDs []string) ([]model.PushToken, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(userIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(userIDs))
	for i, id := range userIDs {
		args[i] = id
	}

	rows, err := d.db.QueryContext(ctx,
		"SELECT user_id, token FROM user_tokens WHERE user_id IN ("+placeholders+")", args...)
	if err != nil {
		d.log.Error("sql push tokens failed", zap.Int("users", len(userIDs)), zap.Error(err))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var tokens []model.PushToken
	for rows.Next() {
		var row model.PushToken
		if err := rows.Scan(&row.UserID, &row.Token); err != nil {
			return nil, err
		}
		if row.Token != "" {
			tokens = append(tokens, row)
		}
	}
	return tokens, rows.Err()
}

func (d *Directory) RoomName(ctx context.Context, roomID string) (string, error) {
	var name string
	err := d.db.QueryRowContext(ctx,
		"SELECT name FROM rooms WHERE id = ?", roomID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		d.log.Error("sql room name failed", zap.String("room_id", roomID), zap.Error(err))
		return "", err
	}
	return strings.TrimSpace(name), nil
}
