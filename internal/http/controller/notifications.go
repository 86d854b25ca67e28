package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"roompush/internal/config"
	"roompush/internal/domain"
	"roompush/internal/http/dto"
	"roompush/internal/http/resp"
	"roompush/internal/model"
	"roompush/internal/queue"
	"roompush/internal/service/dispatch"
)

type Handler struct {
	cfg *config.Config
	svc *dispatch.Service
	log *zap.Logger
	pub queue.Publisher
}

func NewHandler(cfg *config.Config, svc *dispatch.Service, logger *zap.Logger, publisher queue.Publisher) *Handler {
	return &Handler{cfg: cfg, svc: svc, log: logger, pub: publisher}
}

// RoomNotification handles the alert/call flavor: a room member pings the
// rest of the room.
func (h *Handler) RoomNotification(c *gin.Context) {
	var req dto.RoomNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: resp.ErrInvalidJSON})
		return
	}

	event := domain.Normalize(model.RoomEvent{
		Kind:       domain.EventTypeRoomAlert,
		RoomID:     req.RoomID,
		SenderID:   req.SenderID,
		SenderName: req.SenderName,
		Title:      req.Title,
		Body:       req.Body,
		ImageURL:   req.ImageURL,
		Link:       req.Link,
	})
	if !h.validated(c, event) {
		return
	}

	h.dispatch(c, event)
}

// RoomMessage handles the chat-message flavor: a new message in a room is
// pushed to every other member's devices.
func (h *Handler) RoomMessage(c *gin.Context) {
	var req dto.RoomMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: resp.ErrInvalidJSON})
		return
	}

	event := domain.Normalize(model.RoomEvent{
		Kind:         domain.EventTypeRoomMessage,
		RoomID:       req.RoomID,
		SenderID:     req.SenderID,
		SenderName:   req.SenderName,
		Content:      req.Content,
		MessageID:    req.MessageID,
		RoomName:     req.RoomName,
		SenderAvatar: req.SenderAvatar,
	})
	if !h.validated(c, event) {
		return
	}

	h.dispatch(c, event)
}

// PublishRoomMessage enqueues the event for asynchronous dispatch instead
// of sending inline.
func (h *Handler) PublishRoomMessage(c *gin.Context) {
	var req dto.RoomMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: resp.ErrInvalidJSON})
		return
	}

	event := domain.Normalize(model.RoomEvent{
		Kind:         domain.EventTypeRoomMessage,
		RoomID:       req.RoomID,
		SenderID:     req.SenderID,
		SenderName:   req.SenderName,
		Content:      req.Content,
		MessageID:    req.MessageID,
		RoomName:     req.RoomName,
		SenderAvatar: req.SenderAvatar,
	})
	if !h.validated(c, event) {
		return
	}

	payload, err := json.Marshal(queue.EventPayload{
		Type:         event.Kind,
		RoomID:       event.RoomID,
		SenderID:     event.SenderID,
		SenderName:   event.SenderName,
		Content:      event.Content,
		MessageID:    event.MessageID,
		RoomName:     event.RoomName,
		SenderAvatar: event.SenderAvatar,
	})
	if err != nil {
		h.log.Error("publish payload marshal failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: resp.ErrPublishFailed})
		return
	}

	prefix := h.cfg.RabbitPublishPrefix
	if prefix == "" {
		prefix = "room"
	}
	routingKey := prefix + ".message"
	if err := h.pub.Publish(c.Request.Context(), payload, routingKey); err != nil {
		h.log.Error("publish room event failed",
			zap.String("room_id", event.RoomID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: resp.ErrPublishFailed})
		return
	}

	c.JSON(http.StatusAccepted, dto.StatusResponse{Message: resp.MsgQueued})
}

// validated rejects malformed events before any external call is made.
func (h *Handler) validated(c *gin.Context, event model.RoomEvent) bool {
	err := domain.ValidateEvent(event)
	switch {
	case err == nil:
		return true
	case errors.Is(err, domain.ErrInvalidSenderID):
		h.log.Warn("invalid sender uuid received", zap.String("room_id", event.RoomID))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: resp.ErrInvalidSenderID})
	default:
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: resp.ErrMissingIDs})
	}
	return false
}

func (h *Handler) dispatch(c *gin.Context, event model.RoomEvent) {
	summary, err := h.svc.Dispatch(c.Request.Context(), event)
	if err != nil {
		h.log.Error("dispatch failed",
			zap.String("room_id", event.RoomID),
			zap.String("kind", event.Kind),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	switch summary.Outcome {
	case dispatch.OutcomeNoMembers:
		c.JSON(http.StatusOK, dto.StatusResponse{Message: resp.MsgNoMembers})
	case dispatch.OutcomeNoRecipients:
		// The alert endpoint predates the distinct no-recipients copy.
		message := resp.MsgNoRecipients
		if event.Kind == domain.EventTypeRoomAlert {
			message = resp.MsgNoMembers
		}
		c.JSON(http.StatusOK, dto.StatusResponse{Message: message})
	case dispatch.OutcomeNoTokens:
		c.JSON(http.StatusOK, dto.StatusResponse{Message: resp.MsgNoTokens})
	default:
		status := http.StatusOK
		if len(summary.Failures) > 0 {
			status = http.StatusMultiStatus
		}
		c.JSON(status, dto.DispatchResponse{
			Message:         resp.MsgProcessed,
			RecipientsCount: summary.SuccessCount,
			Failures:        summary.Failures,
		})
	}
}
