package handlers

import (
	"bufio"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/soklet/toystore-app-sub001/internal/api/dto"
	"github.com/soklet/toystore-app-sub001/internal/reqctx"
	"github.com/soklet/toystore-app-sub001/internal/service"
	"github.com/soklet/toystore-app-sub001/internal/stream"
)

// EventsHandler exposes the event-stream handshake and its token endpoint.
type EventsHandler struct {
	auth      *service.AuthService
	hub       *stream.Hub
	heartbeat time.Duration
	logger    *zap.Logger
}

// NewEventsHandler constructs the handler.
func NewEventsHandler(authService *service.AuthService, hub *stream.Hub, heartbeat time.Duration, logger *zap.Logger) *EventsHandler {
	if heartbeat <= 0 {
		heartbeat = 25 * time.Second
	}
	return &EventsHandler{auth: authService, hub: hub, heartbeat: heartbeat, logger: logger}
}

// CreateAccessToken handles POST /event-streams/access-tokens. The route
// policy has already required a valid API-audience token; the short-lived
// SSE token minted here is the only credential the handshake accepts,
// because EventSource cannot send an Authorization header.
func (h *EventsHandler) CreateAccessToken(c *fiber.Ctx) error {
	rc := reqctx.MustFromContext(c.UserContext())

	token, err := h.auth.MintStreamToken(rc.Account())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StreamTokenResponse{AccessToken: token}})
}

// Subscribe handles GET /event-streams. The ambient context established at
// handshake time is handed to the hub connection, which keeps it for the
// lifetime of the stream: pushes happening minutes later still format with
// the subscriber's locale and time zone.
func (h *EventsHandler) Subscribe(c *fiber.Ctx) error {
	rc := reqctx.MustFromContext(c.UserContext())
	conn := h.hub.Subscribe(rc)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	heartbeat := h.heartbeat
	hub := h.hub
	logger := h.logger

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer hub.Unsubscribe(conn)

		ticker := time.NewTicker(heartbeat)
		defer ticker.Stop()

		for {
			select {
			case frame, ok := <-conn.Frames():
				if !ok {
					return
				}
				if err := writeFrame(w, frame); err != nil {
					logger.Debug("event-stream write failed", zap.Error(err))
					return
				}
			case <-ticker.C:
				if err := writeFrame(w, stream.Heartbeat); err != nil {
					logger.Debug("event-stream heartbeat failed", zap.Error(err))
					return
				}
			}
		}
	}))
	return nil
}

func writeFrame(w *bufio.Writer, frame []byte) error {
	if _, err := w.Write(frame); err != nil {
		return err
	}
	return w.Flush()
}
