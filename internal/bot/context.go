package bot

import (
	"context"
	"log/slog"
)

type deliveryIDKey struct{}

// WithDeliveryID tags ctx with the id of the webhook delivery being handled.
func WithDeliveryID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, deliveryIDKey{}, id)
}

// DeliveryIDFromContext returns the delivery id set by WithDeliveryID.
func DeliveryIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(deliveryIDKey{}).(string)
	return id
}

func (d *Dispatcher) log(ctx context.Context) *slog.Logger {
	if id := DeliveryIDFromContext(ctx); id != "" {
		return d.logger.With(slog.String("delivery_id", id))
	}
	return d.logger
}
