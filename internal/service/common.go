package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/auroranet/portal-service/internal/events"
)

// publish fills in event identity fields and dispatches, swallowing
// dispatcher errors so notification failures never fail the request.
func publish(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}

func generateCode(prefix string) string {
	return prefix + "-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
