package fcm

import (
	"context"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"roompush/internal/config"
)

// Client posts one message per device token to the FCM v1 send endpoint.
type Client struct {
	rc  *resty.Client
	log *zap.Logger
}

func NewClient(cfg *config.Config, logger *zap.Logger) *Client {
	rc := resty.New().
		SetBaseURL(cfg.FCMEndpoint).
		SetTimeout(cfg.SendTimeout)
	return &Client{rc: rc, log: logger}
}

type sendRequest struct {
	Message *Message `json:"message"`
}

// Send performs a single delivery attempt. A transport failure is returned
// as err with a zero status; an HTTP error status is returned in status with
// the raw response body, so the caller can attribute it to this token.
func (c *Client) Send(ctx context.Context, accessToken, projectID string, msg *Message) (int, string, error) {
	ctx, span := otel.Tracer("fcm").Start(ctx, "fcm.send")
	span.SetAttributes(attribute.String("fcm.project_id", projectID))
	defer span.End()

	resp, err := c.rc.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetHeader("Content-Type", "application/json").
		SetBody(sendRequest{Message: msg}).
		Post("/v1/projects/" + projectID + "/messages:send")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return 0, "", err
	}

	status := resp.StatusCode()
	body := resp.String()
	if !resp.IsSuccess() {
		span.SetStatus(codes.Error, "send rejected")
		c.log.Warn("fcm send rejected", zap.Int("status", status), zap.String("body", body))
	}
	return status, body, nil
}
