package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-triage/internal/api/dto"
	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/service"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util"
)

// TicketsHandler serves ticket reads, edits, creation and the details
// panel/modal toggles.
type TicketsHandler struct {
	view *service.ViewService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(view *service.ViewService) *TicketsHandler {
	return &TicketsHandler{view: view}
}

// GetTicket GET /api/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return err
	}
	ticket, err := h.view.Ticket(id)
	if err != nil {
		return mapServiceError(err, id)
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, h.view.View().CurrentTime)})
}

// CreateTicket POST /api/tickets. Closes the new-ticket modal on success.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.NewTicketInput{
		Title:       req.Title,
		Requester:   req.Requester,
		Email:       req.Email,
		Description: req.Description,
	}
	if missing := input.MissingFields(); len(missing) > 0 {
		return apperrors.NewValidationError(strings.Join(missing, ", ")+" required", map[string]any{"missing": missing})
	}
	if req.Priority != "" {
		priority, err := domain.ParsePriority(req.Priority)
		if err != nil {
			return apperrors.NewValidationError("invalid priority", map[string]any{"priority": req.Priority})
		}
		input.Priority = priority
	}

	ticket := h.view.CreateTicket(c.UserContext(), input)
	h.view.CloseNewTicketModal()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, h.view.View().CurrentTime)})
}

// UpdateStatus PATCH /api/tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		return apperrors.NewValidationError("invalid status", map[string]any{"status": req.Status})
	}
	if err := h.view.UpdateStatus(c.UserContext(), id, status); err != nil {
		return mapServiceError(err, id)
	}
	return h.respondTicket(c, id)
}

// UpdatePriority PATCH /api/tickets/:id/priority.
func (h *TicketsHandler) UpdatePriority(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdatePriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	priority, err := domain.ParsePriority(req.Priority)
	if err != nil {
		return apperrors.NewValidationError("invalid priority", map[string]any{"priority": req.Priority})
	}
	if err := h.view.UpdatePriority(c.UserContext(), id, priority); err != nil {
		return mapServiceError(err, id)
	}
	return h.respondTicket(c, id)
}

// UpdateAssignee PATCH /api/tickets/:id/assignee.
func (h *TicketsHandler) UpdateAssignee(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateAssigneeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	assignee := req.Assignee
	if assignee != nil && *assignee == domain.UnassignedMarker {
		assignee = nil
	}
	if err := h.view.UpdateAssignee(c.UserContext(), id, assignee); err != nil {
		return mapServiceError(err, id)
	}
	return h.respondTicket(c, id)
}

// OpenDetails POST /api/tickets/:id/open.
func (h *TicketsHandler) OpenDetails(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return err
	}
	h.view.OpenTicketDetails(id)
	return c.JSON(fiber.Map{"data": h.view.View()})
}

// CloseDetails DELETE /api/selection.
func (h *TicketsHandler) CloseDetails(c *fiber.Ctx) error {
	h.view.CloseTicketDetails()
	return c.JSON(fiber.Map{"data": h.view.View()})
}

// OpenModal POST /api/modal.
func (h *TicketsHandler) OpenModal(c *fiber.Ctx) error {
	h.view.OpenNewTicketModal()
	return c.JSON(fiber.Map{"data": h.view.View()})
}

// CloseModal DELETE /api/modal.
func (h *TicketsHandler) CloseModal(c *fiber.Ctx) error {
	h.view.CloseNewTicketModal()
	return c.JSON(fiber.Map{"data": h.view.View()})
}

func (h *TicketsHandler) respondTicket(c *fiber.Ctx, id string) error {
	ticket, err := h.view.Ticket(id)
	if err != nil {
		return mapServiceError(err, id)
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket, h.view.View().CurrentTime)})
}
