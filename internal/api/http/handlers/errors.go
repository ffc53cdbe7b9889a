package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/service"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util"
)

// mapServiceError turns view service sentinels into transport errors.
func mapServiceError(err error, ticketID string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrTicketNotFound):
		return apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
	case errors.Is(err, service.ErrUnknownAssignee):
		return apperrors.NewValidationError("assignee is not a team member", map[string]any{
			"teamMembers": domain.TeamMembers,
		})
	default:
		return err
	}
}

// pathParam returns a decoded route parameter ("Sarah%20Johnson" -> "Sarah Johnson").
// fiber params alias the request buffer, which fasthttp reuses; the result
// is copied so it can be kept in store state.
func pathParam(c *fiber.Ctx, name string) (string, error) {
	raw := c.Params(name)
	value, err := url.PathUnescape(raw)
	if err != nil {
		return "", apperrors.NewValidationError("invalid path parameter", map[string]any{name: raw})
	}
	return utils.CopyString(value), nil
}
