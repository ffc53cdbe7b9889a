package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-triage/internal/api/dto"
	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/service"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util"
)

// FiltersHandler exposes the toolbar: status tabs, search, sort and the
// tag/priority/assignee facets. Every endpoint answers with the new view.
type FiltersHandler struct {
	view *service.ViewService
}

// NewFiltersHandler constructs handler.
func NewFiltersHandler(view *service.ViewService) *FiltersHandler {
	return &FiltersHandler{view: view}
}

// SetStatus PUT /api/filters/status.
func (h *FiltersHandler) SetStatus(c *fiber.Ctx) error {
	var req dto.StatusFilterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	filter, err := domain.ParseStatusFilter(req.Status)
	if err != nil {
		return apperrors.NewValidationError("invalid status filter", map[string]any{"status": req.Status})
	}
	h.view.SetStatusFilter(filter)
	return h.respond(c)
}

// SetSearch PUT /api/filters/search.
func (h *FiltersHandler) SetSearch(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	h.view.SetSearchTerm(req.Term)
	return h.respond(c)
}

// SetSort PUT /api/filters/sort.
func (h *FiltersHandler) SetSort(c *fiber.Ctx) error {
	var req dto.SortRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	sortBy, err := domain.ParseSortOption(req.SortBy)
	if err != nil {
		return apperrors.NewValidationError("invalid sort option", map[string]any{"sortBy": req.SortBy})
	}
	h.view.SetSortBy(sortBy)
	return h.respond(c)
}

// ToggleTag POST /api/filters/tags/:tag/toggle.
func (h *FiltersHandler) ToggleTag(c *fiber.Ctx) error {
	tag, err := pathParam(c, "tag")
	if err != nil {
		return err
	}
	h.view.ToggleTagFilter(tag)
	return h.respond(c)
}

// TagShortcut POST /api/filters/tags/:tag/shortcut. Selects the tag, never
// deselects it.
func (h *FiltersHandler) TagShortcut(c *fiber.Ctx) error {
	tag, err := pathParam(c, "tag")
	if err != nil {
		return err
	}
	h.view.HandleTagShortcut(tag)
	return h.respond(c)
}

// TogglePriority POST /api/filters/priorities/:priority/toggle.
func (h *FiltersHandler) TogglePriority(c *fiber.Ctx) error {
	raw, err := pathParam(c, "priority")
	if err != nil {
		return err
	}
	priority, err := domain.ParsePriority(raw)
	if err != nil {
		return apperrors.NewValidationError("invalid priority", map[string]any{"priority": raw})
	}
	h.view.TogglePriorityFilter(priority)
	return h.respond(c)
}

// ToggleAssignee POST /api/filters/assignees/:assignee/toggle. The
// "unassigned" marker selects tickets without an assignee.
func (h *FiltersHandler) ToggleAssignee(c *fiber.Ctx) error {
	assignee, err := pathParam(c, "assignee")
	if err != nil {
		return err
	}
	h.view.ToggleAssigneeFilter(assignee)
	return h.respond(c)
}

// ClearAll DELETE /api/filters.
func (h *FiltersHandler) ClearAll(c *fiber.Ctx) error {
	h.view.ClearAllFilters(c.UserContext())
	return h.respond(c)
}

func (h *FiltersHandler) respond(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.view.View()})
}
