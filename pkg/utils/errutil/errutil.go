package errutil

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/utils/logging"
)

// Handle logs the error with its goerr values and stack and reports it to
// Sentry when a client is configured. The error is returned unchanged.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logging.From(ctx).Error(msg, errorAttrs(err)...)
	capture(ctx, err)
	return err
}

// HandleHTTP logs the error and writes an HTTP error response. Only 5xx
// errors are reported to Sentry; 4xx errors are logged at warn level.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	attrs := append([]any{"status", statusCode}, errorAttrs(err)...)
	if statusCode >= http.StatusInternalServerError {
		logging.From(ctx).Error("HTTP error", attrs...)
		capture(ctx, err)
		http.Error(w, http.StatusText(statusCode), statusCode)
		return
	}

	logging.From(ctx).Warn("HTTP client error", attrs...)
	http.Error(w, PublicMessage(err), statusCode)
}

// PublicMessage returns the outermost message of a wrapped error chain so that
// causes and internal details are not exposed to clients.
func PublicMessage(err error) string {
	msg := err.Error()
	if inner := errors.Unwrap(err); inner != nil {
		if trimmed := strings.TrimSuffix(msg, ": "+inner.Error()); trimmed != "" {
			msg = trimmed
		}
	}
	return msg
}

func errorAttrs(err error) []any {
	var ge *goerr.Error
	if errors.As(err, &ge) {
		return []any{
			slog.String("error", err.Error()),
			slog.Any("values", ge.Values()),
			slog.Any("stack", ge.Stacks()),
		}
	}
	return []any{slog.String("error", err.Error())}
}

func capture(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	var ge *goerr.Error
	if errors.As(err, &ge) {
		hub.WithScope(func(scope *sentry.Scope) {
			if values := ge.Values(); len(values) > 0 {
				scope.SetContext("goerr", sentry.Context(values))
			}
			hub.CaptureException(err)
		})
		return
	}
	hub.CaptureException(err)
}
