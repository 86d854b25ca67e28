package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"roompush/internal/config"
	"roompush/internal/fcm"
	"roompush/internal/roomdir/memory"
	"roompush/internal/service/dispatch"
)

const (
	senderID = "11111111-1111-1111-1111-111111111111"
	memberID = "22222222-2222-2222-2222-222222222222"
)

type stubMinter struct {
	err error
}

func (s *stubMinter) Mint(ctx context.Context, sa fcm.ServiceAccount) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "ya29.tok", nil
}

type stubSender struct {
	mu       sync.Mutex
	statuses map[string]int
	sent     []string
}

func (s *stubSender) Send(ctx context.Context, accessToken, projectID string, msg *fcm.Message) (int, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg.Token)
	if status, ok := s.statuses[msg.Token]; ok {
		return status, `{"error":"rejected"}`, nil
	}
	return http.StatusOK, "{}", nil
}

type stubPublisher struct {
	mu         sync.Mutex
	err        error
	payloads   [][]byte
	routingKey string
}

func (p *stubPublisher) Publish(ctx context.Context, payload []byte, routingKey string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	p.routingKey = routingKey
	return nil
}

type fixture struct {
	dir    *memory.Directory
	sender *stubSender
	minter *stubMinter
	pub    *stubPublisher
	router *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		FCMServiceAccount:   `{"client_email":"svc@demo.iam.gserviceaccount.com","private_key":"unused","project_id":"demo-project"}`,
		SendTimeout:         time.Second,
		SendConcurrency:     4,
		RabbitPublishPrefix: "room",
	}
	f := &fixture{
		dir:    memory.New(zap.NewNop()),
		sender: &stubSender{statuses: map[string]int{}},
		minter: &stubMinter{},
		pub:    &stubPublisher{},
	}
	svc := dispatch.NewService(cfg, f.dir, f.minter, f.sender, zap.NewNop())
	handler := NewHandler(cfg, svc, zap.NewNop(), f.pub)

	router := gin.New()
	router.POST("/functions/room-notification", handler.RoomNotification)
	router.POST("/functions/room-message", handler.RoomMessage)
	router.POST("/functions/room-message/publish", handler.PublishRoomMessage)
	f.router = router
	return f
}

func (f *fixture) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestRoomNotificationValidation(t *testing.T) {
	f := newFixture(t)

	t.Run("invalid json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/functions/room-notification", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "invalid json", decodeJSON(t, rec)["error"])
	})

	t.Run("missing identifiers", func(t *testing.T) {
		rec := f.post(t, "/functions/room-notification", map[string]string{"title": "hi"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "room_id and sender_id are required", decodeJSON(t, rec)["error"])
		require.Empty(t, f.sender.sent)
	})

	t.Run("malformed sender uuid", func(t *testing.T) {
		rec := f.post(t, "/functions/room-notification", map[string]string{
			"room_id":   "room-1",
			"sender_id": "not-a-uuid",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Invalid sender_id format", decodeJSON(t, rec)["error"])
		require.Empty(t, f.sender.sent)
	})

	t.Run("quoted sender uuid accepted", func(t *testing.T) {
		rec := f.post(t, "/functions/room-notification", map[string]string{
			"room_id":   "room-1",
			"sender_id": `"` + senderID + `"`,
		})
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRoomNotificationDispatch(t *testing.T) {
	body := map[string]string{"room_id": "room-1", "sender_id": senderID, "sender_name": "Omar"}

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.dir.AddMember("room-1", senderID)
		f.dir.AddMember("room-1", memberID)
		f.dir.AddToken(memberID, "tok-a")

		rec := f.post(t, "/functions/room-notification", body)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decodeJSON(t, rec)
		require.Equal(t, "Notifications processed", got["message"])
		require.Equal(t, float64(1), got["recipients_count"])
		require.Equal(t, []any{}, got["failures"])
		require.Equal(t, []string{"tok-a"}, f.sender.sent)
	})

	t.Run("empty room", func(t *testing.T) {
		f := newFixture(t)
		rec := f.post(t, "/functions/room-notification", body)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "No other members in the room", decodeJSON(t, rec)["message"])
	})

	t.Run("sender is the only member", func(t *testing.T) {
		f := newFixture(t)
		f.dir.AddMember("room-1", senderID)
		rec := f.post(t, "/functions/room-notification", body)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "No other members in the room", decodeJSON(t, rec)["message"])
	})

	t.Run("members without tokens", func(t *testing.T) {
		f := newFixture(t)
		f.dir.AddMember("room-1", senderID)
		f.dir.AddMember("room-1", memberID)
		rec := f.post(t, "/functions/room-notification", body)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "No FCM tokens found for room members", decodeJSON(t, rec)["message"])
	})

	t.Run("partial failure returns 207", func(t *testing.T) {
		f := newFixture(t)
		f.dir.AddMember("room-1", memberID)
		f.dir.AddMember("room-1", "33333333-3333-3333-3333-333333333333")
		f.dir.AddToken(memberID, "tok-a")
		f.dir.AddToken("33333333-3333-3333-3333-333333333333", "tok-bad")
		f.sender.statuses["tok-bad"] = http.StatusNotFound

		rec := f.post(t, "/functions/room-notification", body)
		require.Equal(t, http.StatusMultiStatus, rec.Code)
		got := decodeJSON(t, rec)
		require.Equal(t, "Notifications processed", got["message"])
		require.Equal(t, float64(1), got["recipients_count"])
		failures := got["failures"].([]any)
		require.Len(t, failures, 1)
		failure := failures[0].(map[string]any)
		require.Equal(t, "tok-bad", failure["token"])
		require.Equal(t, float64(http.StatusNotFound), failure["status"])
	})

	t.Run("mint failure returns 500", func(t *testing.T) {
		f := newFixture(t)
		f.dir.AddMember("room-1", memberID)
		f.dir.AddToken(memberID, "tok-a")
		f.minter.err = errors.New("invalid_grant")

		rec := f.post(t, "/functions/room-notification", body)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, decodeJSON(t, rec)["error"], "mint access token")
	})
}

func TestRoomMessageDispatch(t *testing.T) {
	body := map[string]string{
		"room_id":     "room-1",
		"sender_id":   senderID,
		"sender_name": "Huda",
		"content":     "your turn",
		"message_id":  "msg-9",
	}

	t.Run("success with room name lookup", func(t *testing.T) {
		f := newFixture(t)
		f.dir.AddMember("room-1", memberID)
		f.dir.AddToken(memberID, "tok-a")
		f.dir.SetRoomName("room-1", "Friday Dominoes")

		rec := f.post(t, "/functions/room-message", body)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decodeJSON(t, rec)
		require.Equal(t, "Notifications processed", got["message"])
		require.Equal(t, float64(1), got["recipients_count"])
	})

	t.Run("no recipients message copy", func(t *testing.T) {
		f := newFixture(t)
		f.dir.AddMember("room-1", senderID)
		rec := f.post(t, "/functions/room-message", body)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "No recipients for this message", decodeJSON(t, rec)["message"])
	})
}

func TestPublishRoomMessage(t *testing.T) {
	body := map[string]string{
		"room_id":   "room-1",
		"sender_id": senderID,
		"content":   "your turn",
	}

	t.Run("queued", func(t *testing.T) {
		f := newFixture(t)
		rec := f.post(t, "/functions/room-message/publish", body)
		require.Equal(t, http.StatusAccepted, rec.Code)
		require.Equal(t, "queued", decodeJSON(t, rec)["message"])
		require.Equal(t, "room.message", f.pub.routingKey)
		require.Len(t, f.pub.payloads, 1)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(f.pub.payloads[0], &payload))
		require.Equal(t, "room_chat_message", payload["type"])
		require.Equal(t, "room-1", payload["room_id"])
		require.Equal(t, senderID, payload["sender_id"])
		require.Empty(t, f.sender.sent)
	})

	t.Run("validation still applies", func(t *testing.T) {
		f := newFixture(t)
		rec := f.post(t, "/functions/room-message/publish", map[string]string{"content": "hi"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Empty(t, f.pub.payloads)
	})

	t.Run("broker failure", func(t *testing.T) {
		f := newFixture(t)
		f.pub.err = errors.New("amqp down")
		rec := f.post(t, "/functions/room-message/publish", body)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "failed to publish room event", decodeJSON(t, rec)["error"])
	})
}
