package async

import (
	"context"

	"github.com/secmon-lab/pathfinder/pkg/utils/errutil"
	"github.com/secmon-lab/pathfinder/pkg/utils/logging"
)

// Dispatch runs task in a new goroutine detached from the request
// lifetime. The logger of ctx is carried over. Errors and panics are logged
// and reported with the task name.
func Dispatch(ctx context.Context, task string, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx).With("task", task))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async task", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			_ = errutil.Handle(bgCtx, err, "async task failed")
		}
	}()
}
