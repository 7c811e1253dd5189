package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/secmon-lab/isorisk/pkg/utils/logging"
)

// Close closes the closer and logs a failure instead of returning it. Nil is a no-op.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}
