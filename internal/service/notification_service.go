package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/events"
)

// ToastPusher shows a transient message.
type ToastPusher interface {
	PushToast(text string)
}

// NotificationService turns domain events into log lines and toasts.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	toasts     ToastPusher
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, toasts ToastPusher) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		toasts:     toasts,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.dispatcher.Subscribe(events.EventTicketPriorityChanged, n.handleTicketPriorityChanged)
	n.dispatcher.Subscribe(events.EventTicketAssigned, n.handleTicketAssigned)
	n.dispatcher.Subscribe(events.EventFiltersCleared, n.handleFiltersCleared)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketCreated", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	n.push(fmt.Sprintf("Ticket %s created", event.TicketID))
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketStatusChanged", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	n.push(fmt.Sprintf("%s status set to %s", event.TicketID, payload.NewStatus))
	return nil
}

func (n *NotificationService) handleTicketPriorityChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketPriorityChanged", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	payload, ok := event.Payload.(events.TicketPriorityChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	n.push(fmt.Sprintf("%s priority set to %s", event.TicketID, payload.NewPriority))
	return nil
}

func (n *NotificationService) handleTicketAssigned(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketAssigned", zap.String("ticket_id", event.TicketID), zap.Any("payload", event.Payload))
	payload, ok := event.Payload.(events.TicketAssignedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	if payload.NewAssignee == nil {
		n.push(fmt.Sprintf("%s unassigned", event.TicketID))
		return nil
	}
	n.push(fmt.Sprintf("%s assigned to %s", event.TicketID, *payload.NewAssignee))
	return nil
}

func (n *NotificationService) handleFiltersCleared(ctx context.Context, event events.Event) error {
	n.logger.Debug("FiltersCleared")
	return nil
}

func (n *NotificationService) push(text string) {
	if n.toasts == nil {
		return
	}
	n.toasts.PushToast(text)
}
