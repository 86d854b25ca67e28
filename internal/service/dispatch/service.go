package dispatch

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"roompush/internal/config"
	"roompush/internal/domain"
	"roompush/internal/fcm"
	"roompush/internal/metrics"
	"roompush/internal/model"
	"roompush/internal/roomdir"
)

// Outcome distinguishes the benign short-circuit paths from a dispatch that
// actually attempted sends. The HTTP layer collapses the short circuits to
// 200, but callers of this package can still tell them apart.
type Outcome int

const (
	OutcomeDelivered Outcome = iota
	OutcomeNoMembers
	OutcomeNoRecipients
	OutcomeNoTokens
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoMembers:
		return "no_members"
	case OutcomeNoRecipients:
		return "no_recipients"
	case OutcomeNoTokens:
		return "no_tokens"
	default:
		return "delivered"
	}
}

type Summary struct {
	Outcome      Outcome
	SuccessCount int
	Failures     []model.DispatchFailure
}

// TokenMinter mints a fresh access token for one dispatch.
type TokenMinter interface {
	Mint(ctx context.Context, sa fcm.ServiceAccount) (string, error)
}

// Sender performs a single delivery attempt for one device token.
type Sender interface {
	Send(ctx context.Context, accessToken, projectID string, msg *fcm.Message) (int, string, error)
}

type Service struct {
	cfg    *config.Config
	dir    roomdir.Directory
	minter TokenMinter
	sender Sender
	log    *zap.Logger
}

func NewService(cfg *config.Config, dir roomdir.Directory, minter TokenMinter, sender Sender, logger *zap.Logger) *Service {
	return &Service{cfg: cfg, dir: dir, minter: minter, sender: sender, log: logger}
}

// Dispatch resolves recipients for a validated event and fans the composed
// message out to every registered device. Per-token delivery failures are
// collected in the summary, never returned as an error; an error return
// means the whole invocation failed before any send could be attributed.
func (s *Service) Dispatch(ctx context.Context, event model.RoomEvent) (Summary, error) {
	ctx, span := otel.Tracer("dispatch").Start(ctx, "dispatch.room_event")
	span.SetAttributes(
		attribute.String("room.id", event.RoomID),
		attribute.String("event.kind", event.Kind),
	)
	defer span.End()

	members, err := s.dir.RoomMembers(ctx, event.RoomID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "room members failed")
		return Summary{}, fmt.Errorf("room members: %w", err)
	}
	if len(members) == 0 {
		return s.shortCircuit(OutcomeNoMembers), nil
	}

	recipients := make([]string, 0, len(members))
	for _, member := range members {
		id := domain.SanitizeUUID(member)
		if id == "" || id == event.SenderID {
			continue
		}
		recipients = append(recipients, id)
	}
	if len(recipients) == 0 {
		return s.shortCircuit(OutcomeNoRecipients), nil
	}

	tokens, err := s.dir.PushTokens(ctx, recipients)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "push tokens failed")
		return Summary{}, fmt.Errorf("push tokens: %w", err)
	}
	if len(tokens) == 0 {
		return s.shortCircuit(OutcomeNoTokens), nil
	}

	if event.Kind == domain.EventTypeRoomMessage && event.RoomName == "" {
		// Lookup failure falls back to the generic room name downstream.
		name, err := s.dir.RoomName(ctx, event.RoomID)
		if err != nil {
			s.log.Warn("room name lookup failed", zap.String("room_id", event.RoomID), zap.Error(err))
		}
		event.RoomName = name
	}

	sa, err := fcm.ParseServiceAccount(s.cfg.FCMServiceAccount)
	if err != nil {
		span.SetStatus(codes.Error, "bad credentials")
		return Summary{}, err
	}
	projectID, err := fcm.ResolveProjectID(sa, s.cfg.FCMProjectID)
	if err != nil {
		span.SetStatus(codes.Error, "missing project id")
		return Summary{}, err
	}

	accessToken, err := s.minter.Mint(ctx, sa)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "mint failed")
		return Summary{}, fmt.Errorf("mint access token: %w", err)
	}

	s.log.Info("dispatching room event",
		zap.String("room_id", event.RoomID),
		zap.String("kind", event.Kind),
		zap.Int("tokens", len(tokens)),
	)

	// One result slot per token: a failed send can never contaminate a
	// neighbour's outcome.
	results := make([]model.DispatchResult, len(tokens))
	group := new(errgroup.Group)
	group.SetLimit(s.sendConcurrency())
	for i, target := range tokens {
		group.Go(func() error {
			sendCtx, cancel := context.WithTimeout(ctx, s.cfg.SendTimeout)
			defer cancel()

			msg := ComposeMessage(event, target.Token)
			status, body, err := s.sender.Send(sendCtx, accessToken, projectID, msg)
			if err != nil {
				results[i] = model.DispatchResult{
					Token:  target.Token,
					UserID: target.UserID,
					Body:   err.Error(),
				}
				return nil
			}
			results[i] = model.DispatchResult{
				Token:  target.Token,
				UserID: target.UserID,
				OK:     status >= 200 && status < 300,
				Status: status,
				Body:   body,
			}
			return nil
		})
	}
	_ = group.Wait()

	summary := Summary{Outcome: OutcomeDelivered, Failures: []model.DispatchFailure{}}
	for _, result := range results {
		if result.OK {
			summary.SuccessCount++
			metrics.SendTotal.WithLabelValues("success").Inc()
			continue
		}
		metrics.SendTotal.WithLabelValues("failure").Inc()
		summary.Failures = append(summary.Failures, model.DispatchFailure{
			Token:  result.Token,
			Status: result.Status,
			Body:   result.Body,
			UserID: result.UserID,
		})
	}
	metrics.DispatchTotal.WithLabelValues(summary.Outcome.String()).Inc()

	if len(summary.Failures) > 0 {
		span.SetStatus(codes.Error, "partial delivery failure")
		s.log.Warn("dispatch completed with failures",
			zap.String("room_id", event.RoomID),
			zap.Int("successes", summary.SuccessCount),
			zap.Int("failures", len(summary.Failures)),
		)
	}
	return summary, nil
}

func (s *Service) shortCircuit(outcome Outcome) Summary {
	metrics.DispatchTotal.WithLabelValues(outcome.String()).Inc()
	return Summary{Outcome: outcome}
}

func (s *Service) sendConcurrency() int {
	if s.cfg.SendConcurrency > 0 {
		return s.cfg.SendConcurrency
	}
	return 1
}
