package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/memohai/linehook/internal/bot"
	"github.com/memohai/linehook/internal/config"
	"github.com/memohai/linehook/internal/line"
)

// BatchHandler handles the events of one webhook delivery.
type BatchHandler interface {
	HandleBatch(ctx context.Context, events []json.RawMessage) error
}

// WebhookOptions configures the webhook endpoint.
type WebhookOptions struct {
	Path            string
	MaxBodyBytes    int64
	ChannelSecret   string
	VerifySignature bool
}

// WebhookHandler receives LINE webhook deliveries.
type WebhookHandler struct {
	logger  *slog.Logger
	events  BatchHandler
	options WebhookOptions
}

// NewWebhookHandler creates the webhook endpoint handler.
func NewWebhookHandler(log *slog.Logger, events BatchHandler, opts WebhookOptions) *WebhookHandler {
	if log == nil {
		log = slog.Default()
	}
	if opts.Path == "" {
		opts.Path = config.DefaultWebhookPath
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = config.DefaultMaxBodyBytes
	}
	return &WebhookHandler{
		logger:  log.With(slog.String("handler", "line_webhook")),
		events:  events,
		options: opts,
	}
}

// NewWebhookServerHandler is a DI-friendly constructor for fx.
func NewWebhookServerHandler(log *slog.Logger, cfg config.Config, dispatcher *bot.Dispatcher) *WebhookHandler {
	return NewWebhookHandler(log, dispatcher, WebhookOptions{
		Path:            cfg.Webhook.Path,
		MaxBodyBytes:    cfg.Webhook.MaxBodyBytes,
		ChannelSecret:   cfg.Line.ChannelSecret,
		VerifySignature: cfg.Line.VerifySignature,
	})
}

func (h *WebhookHandler) Register(e *echo.Echo) {
	e.POST(h.options.Path, h.Handle)
}

// Handle answers 200 with an empty body once every event of the delivery has
// been handled, and 500 with an empty body when the body is malformed or any
// event failed.
func (h *WebhookHandler) Handle(c echo.Context) error {
	if h.events == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "webhook dependencies not configured")
	}

	limit := h.options.MaxBodyBytes
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, limit+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("read body: %v", err))
	}
	if int64(len(payload)) > limit {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, fmt.Sprintf("payload too large: max %d bytes", limit))
	}
	if h.options.VerifySignature {
		if err := line.VerifySignature(h.options.ChannelSecret, c.Request().Header.Get(line.SignatureHeader), payload); err != nil {
			h.logger.Warn("rejected webhook", slog.Any("error", err), slog.String("remote_ip", c.RealIP()))
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
	}

	deliveryID := uuid.NewString()
	log := h.logger.With(slog.String("delivery_id", deliveryID))

	callback, err := line.ParseCallback(payload)
	if err != nil {
		log.Error("malformed webhook body", slog.Any("error", err))
		return c.NoContent(http.StatusInternalServerError)
	}
	log.Info("webhook received",
		slog.String("destination", callback.Destination),
		slog.Int("events", len(callback.Events)),
	)

	ctx := bot.WithDeliveryID(context.WithoutCancel(c.Request().Context()), deliveryID)
	if err := h.events.HandleBatch(ctx, callback.Events); err != nil {
		log.Error("webhook handling failed", slog.Any("error", err))
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.NoContent(http.StatusOK)
}
