package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/events"
)

type recordingPusher struct {
	messages []string
}

func (r *recordingPusher) PushToast(text string) {
	r.messages = append(r.messages, text)
}

func TestNotificationServicePushesToastsForMutations(t *testing.T) {
	h := newHarness(t, false)
	pusher := &recordingPusher{}
	NewNotificationService(h.dispatcher, nil, pusher).RegisterHandlers()
	ctx := context.Background()

	created := h.view.CreateTicket(ctx, NewTicketInput{Title: "New"})
	require.NoError(t, h.view.UpdateStatus(ctx, created.ID, domain.TicketStatusActive))
	require.NoError(t, h.view.UpdatePriority(ctx, created.ID, domain.TicketPriorityCritical))
	require.NoError(t, h.view.UpdateAssignee(ctx, created.ID, domain.StringPtr("AI Bot")))
	require.NoError(t, h.view.UpdateAssignee(ctx, created.ID, nil))
	h.view.ClearAllFilters(ctx)

	assert.Equal(t, []string{
		"Ticket T-1025 created",
		"T-1025 status set to active",
		"T-1025 priority set to critical",
		"T-1025 assigned to AI Bot",
		"T-1025 unassigned",
	}, pusher.messages)
}

func TestNotificationServiceSkipsUnknownTicket(t *testing.T) {
	h := newHarness(t, false)
	pusher := &recordingPusher{}
	NewNotificationService(h.dispatcher, nil, pusher).RegisterHandlers()

	_ = h.view.UpdateStatus(context.Background(), "T-404", domain.TicketStatusEnded)
	assert.Empty(t, pusher.messages)
}

func TestNotificationServiceRejectsWrongPayload(t *testing.T) {
	n := NewNotificationService(nil, nil, &recordingPusher{})
	err := n.handleTicketStatusChanged(context.Background(), events.Event{Type: events.EventTicketStatusChanged, Payload: "bogus"})
	assert.Error(t, err)
}

func TestNotificationServiceFeedsToastStore(t *testing.T) {
	h := newHarness(t, false)
	NewNotificationService(h.dispatcher, nil, h.view).RegisterHandlers()

	h.view.CreateTicket(context.Background(), NewTicketInput{Title: "Toast me"})

	text, ok := h.toasts.Message()
	assert.True(t, ok)
	assert.Equal(t, "Ticket T-1025 created", text)
	require.NotNil(t, h.view.View().Toast)
}
