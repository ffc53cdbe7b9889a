package worker

import (
	"time"

	"github.com/spec-kit/ticket-triage/internal/clock"
	"github.com/spec-kit/ticket-triage/internal/service"
	"github.com/spec-kit/ticket-triage/internal/toast"
)

// StartNotificationWorker registers notification handlers and attaches the
// toast auto-dismiss policy. The returned Dismisser must be stopped on
// teardown.
func StartNotificationWorker(notificationService *service.NotificationService, toasts *toast.Store, clk clock.Clock, ttl time.Duration) *toast.Dismisser {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	return toast.NewDismisser(toasts, clk, ttl)
}
