package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/hoptimisten/hoptimisten-backend/pkg/config"
	"github.com/hoptimisten/hoptimisten-backend/pkg/db/models"
	pkgerrors "github.com/hoptimisten/hoptimisten-backend/pkg/errors"
	"github.com/hoptimisten/hoptimisten-backend/pkg/logger"
)

// SubscribeInput is one browser's push subscription as handed over by the
// frontend's PushManager.
type SubscribeInput struct {
	Endpoint string     `json:"endpoint" validate:"required,url"`
	P256DH   string     `json:"p256dh" validate:"required"`
	Auth     string     `json:"auth" validate:"required"`
	PlayerID *uuid.UUID `json:"playerId"`
}

// Message is the payload pushed to subscribed browsers.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag,omitempty"`
}

// Sender delivers one push message to one subscription endpoint.
type Sender interface {
	Send(ctx context.Context, sub models.PushSubscription, payload []byte) error
}

// Service manages push subscriptions and fans out broadcasts.
type Service interface {
	Subscribe(ctx context.Context, input SubscribeInput) (*models.PushSubscription, error)
	Unsubscribe(ctx context.Context, endpoint string) error
	BroadcastGameCompleted(ctx context.Context, gameID uuid.UUID) error
}

// ServiceParams wires the notification service dependencies.
type ServiceParams struct {
	Repo   Repository
	Sender Sender
	Logger *logger.Logger
}

type service struct {
	repo   Repository
	sender Sender
	logg   *logger.Logger
}

// NewService wires a notification service. A nil sender disables delivery;
// subscriptions are still stored so they are ready once push is configured.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	return &service{
		repo:   params.Repo,
		sender: params.Sender,
		logg:   params.Logger,
	}, nil
}

func (s *service) Subscribe(ctx context.Context, input SubscribeInput) (*models.PushSubscription, error) {
	endpoint := strings.TrimSpace(input.Endpoint)
	if endpoint == "" || input.P256DH == "" || input.Auth == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "endpoint, p256dh and auth are required")
	}

	sub := &models.PushSubscription{
		PlayerID: input.PlayerID,
		Endpoint: endpoint,
		P256DH:   input.P256DH,
		Auth:     input.Auth,
	}
	if err := s.repo.Upsert(ctx, sub); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store push subscription")
	}
	return sub, nil
}

func (s *service) Unsubscribe(ctx context.Context, endpoint string) error {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "endpoint required")
	}
	if err := s.repo.DeleteByEndpoint(ctx, endpoint); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove push subscription")
	}
	return nil
}

// BroadcastGameCompleted pushes the reconciliation announcement to every
// subscription. Individual delivery failures are collected, not fatal; dead
// endpoints are dropped from the store along the way.
func (s *service) BroadcastGameCompleted(ctx context.Context, gameID uuid.UUID) error {
	if s.sender == nil {
		return nil
	}

	subs, err := s.repo.List(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list push subscriptions")
	}
	if len(subs) == 0 {
		return nil
	}

	payload, err := json.Marshal(Message{
		Title: "Spiel abgeschlossen",
		Body:  "Die Strafen wurden abgerechnet. Zeit zu zahlen!",
		Tag:   "game-completed:" + gameID.String(),
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode push payload")
	}

	var deliveryErr error
	delivered := 0
	for _, sub := range subs {
		if err := s.sender.Send(ctx, sub, payload); err != nil {
			if isGone(err) {
				if delErr := s.repo.DeleteByEndpoint(ctx, sub.Endpoint); delErr != nil && s.logg != nil {
					s.logg.Warn(ctx, "failed to drop dead push subscription")
				}
				continue
			}
			deliveryErr = multierr.Append(deliveryErr, fmt.Errorf("push to %s: %w", sub.Endpoint, err))
			continue
		}
		delivered++
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"game_id":   gameID.String(),
			"delivered": delivered,
			"total":     len(subs),
		})
		s.logg.Info(logCtx, "push broadcast sent")
	}

	if deliveryErr != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, deliveryErr, "push broadcast partially failed")
	}
	return nil
}

// goneError marks a permanently dead endpoint.
type goneError struct {
	status int
}

func (e *goneError) Error() string {
	return fmt.Sprintf("push endpoint gone (status %d)", e.status)
}

func isGone(err error) bool {
	var gone *goneError
	return errors.As(err, &gone)
}

// webpushSender delivers messages through the Web Push protocol with VAPID
// authentication.
type webpushSender struct {
	options webpush.Options
}

// NewWebPushSender returns a Sender backed by webpush-go, or nil when the
// VAPID keys are not configured.
func NewWebPushSender(cfg config.PushConfig) Sender {
	if !cfg.Enabled() {
		return nil
	}
	return &webpushSender{
		options: webpush.Options{
			Subscriber:      cfg.Subscriber,
			VAPIDPublicKey:  cfg.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.VAPIDPrivateKey,
			TTL:             cfg.TTLSeconds,
		},
	}
}

func (w *webpushSender) Send(ctx context.Context, sub models.PushSubscription, payload []byte) error {
	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	opts := w.options
	resp, err := webpush.SendNotificationWithContext(ctx, payload, target, &opts)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound:
		return &goneError{status: resp.StatusCode}
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service responded with status %d", resp.StatusCode)
	}
	return nil
}
