package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/liorkima5-coder/CityPulseAI/internal/events"
	"github.com/liorkima5-coder/CityPulseAI/internal/notify"
)

// NotificationService sends submitter-facing confirmations for domain
// events. Every send here is best-effort: failures are logged and absorbed,
// and the triggering operation has already committed by the time handlers run.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     notify.Mailer
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer notify.Mailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		n.logger.Warn("unexpected payload for ticket_created", zap.String("event_id", event.ID))
		return nil
	}
	if n.mailer == nil {
		return nil
	}

	err := n.mailer.Send(ctx, map[string]string{
		"user_email":    payload.Email,
		"full_name":     payload.FullName,
		"phone":         payload.Phone,
		"issue_address": payload.IssueAddress,
		"description":   payload.Description,
	})
	if err != nil {
		if errors.Is(err, notify.ErrNotConfigured) {
			n.logger.Debug("confirmation email skipped, mailer not configured",
				zap.String("ticket_id", payload.TicketID))
			return nil
		}
		n.logger.Warn("confirmation email failed",
			zap.String("ticket_id", payload.TicketID),
			zap.Error(err))
	}
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("ticket status changed",
		zap.String("ticket_id", payload.TicketID),
		zap.String("old_status", string(payload.OldStatus)),
		zap.String("new_status", string(payload.NewStatus)))
	return nil
}
