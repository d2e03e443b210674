package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/secmon-lab/pathfinder/pkg/utils/logging"
)

// Close closes closer and logs a failure. A nil closer is ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}

// Write writes data to w and logs a failure, typically for HTTP response
// bodies after the header is committed. A nil writer is ignored.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Error("Failed to write", slog.Any("error", err))
	}
}
