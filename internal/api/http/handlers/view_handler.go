package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/service"
)

const streamKeepAlive = 15 * time.Second

// ViewHandler serves the derived view model, both as a snapshot and as a
// server-sent event stream.
type ViewHandler struct {
	view   *service.ViewService
	logger *zap.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// NewViewHandler constructs handler.
func NewViewHandler(view *service.ViewService, logger *zap.Logger) *ViewHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewHandler{view: view, logger: logger, done: make(chan struct{})}
}

// GetView GET /api/view.
func (h *ViewHandler) GetView(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.view.View()})
}

// GetOptions GET /api/options.
func (h *ViewHandler) GetOptions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": service.Options()})
}

// Stream GET /api/view/stream. The current view is sent first, then every
// change. Only the newest pending view is kept for a slow client.
func (h *ViewHandler) Stream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	updates := make(chan service.ViewModel, 1)
	unsubscribe := h.view.SubscribeFunc(func(v service.ViewModel) {
		offerLatest(updates, v)
	})
	initial := h.view.View()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()

		if err := WriteViewEvent(w, initial); err != nil {
			return
		}
		lastVersion := initial.Version

		keepAlive := time.NewTicker(streamKeepAlive)
		defer keepAlive.Stop()

		for {
			select {
			case v := <-updates:
				if v.Version < lastVersion {
					continue
				}
				lastVersion = v.Version
				if err := WriteViewEvent(w, v); err != nil {
					h.logger.Debug("view stream closed", zap.Error(err))
					return
				}
			case <-keepAlive.C:
				if _, err := w.WriteString(": keep-alive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			case <-h.done:
				return
			}
		}
	}))
	return nil
}

// Close ends every open stream. Call before shutting the app down.
func (h *ViewHandler) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// WriteViewEvent writes v as one server-sent event.
func WriteViewEvent(w *bufio.Writer, v service.ViewModel) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "id: %d\nevent: view\ndata: %s\n\n", v.Version, payload); err != nil {
		return err
	}
	return w.Flush()
}

// offerLatest replaces whatever is buffered in ch with v.
func offerLatest(ch chan service.ViewModel, v service.ViewModel) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
