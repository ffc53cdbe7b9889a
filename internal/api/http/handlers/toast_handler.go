package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-triage/internal/api/dto"
	"github.com/spec-kit/ticket-triage/internal/service"
	apperrors "github.com/spec-kit/ticket-triage/pkg/util"
)

// ToastHandler pushes and dismisses the transient notification.
type ToastHandler struct {
	view *service.ViewService
}

// NewToastHandler constructs handler.
func NewToastHandler(view *service.ViewService) *ToastHandler {
	return &ToastHandler{view: view}
}

// Push POST /api/toast.
func (h *ToastHandler) Push(c *fiber.Ctx) error {
	var req dto.ToastRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("message required", nil)
	}
	h.view.PushToast(req.Message)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"toast": req.Message}})
}

// Dismiss DELETE /api/toast.
func (h *ToastHandler) Dismiss(c *fiber.Ctx) error {
	h.view.DismissToast()
	return c.SendStatus(fiber.StatusNoContent)
}
