package errutil_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/pathfinder/pkg/utils/errutil"
)

// newCaptureContext returns a context bound to a Sentry hub whose client
// records events instead of sending them
func newCaptureContext(t *testing.T) (context.Context, *[]*sentry.Event) {
	t.Helper()
	var events []*sentry.Event
	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			events = append(events, event)
			return nil
		},
	})
	gt.NoError(t, err).Required()
	hub := sentry.NewHub(client, sentry.NewScope())
	return sentry.SetHubOnContext(context.Background(), hub), &events
}

func TestHandle(t *testing.T) {
	t.Run("goerr values are attached to the event", func(t *testing.T) {
		ctx, events := newCaptureContext(t)
		err := goerr.New("failed to load", goerr.V("customer_id", "cust1"), goerr.V("count", 3))

		gt.Error(t, errutil.Handle(ctx, err, "load failed")).Is(err)
		gt.Array(t, *events).Length(1).Required()

		values, ok := (*events)[0].Contexts["goerr"]
		gt.Bool(t, ok).True()
		gt.Value(t, values["customer_id"]).Equal(any("cust1"))
		gt.Value(t, values["count"]).Equal(any(3))
	})

	t.Run("plain errors are captured without values", func(t *testing.T) {
		ctx, events := newCaptureContext(t)
		gt.Error(t, errutil.Handle(ctx, errors.New("boom"), "failed"))
		gt.Array(t, *events).Length(1).Required()
		_, ok := (*events)[0].Contexts["goerr"]
		gt.Bool(t, ok).False()
	})

	t.Run("nil error", func(t *testing.T) {
		ctx, events := newCaptureContext(t)
		gt.NoError(t, errutil.Handle(ctx, nil, "unused"))
		gt.Array(t, *events).Length(0)
	})
}

func TestHandleHTTP(t *testing.T) {
	notFound := errors.New("not found")

	t.Run("client errors expose only the outermost message", func(t *testing.T) {
		ctx, events := newCaptureContext(t)
		w := httptest.NewRecorder()
		err := goerr.Wrap(notFound, "failed to get customer", goerr.V("customer_id", "cust1"))

		errutil.HandleHTTP(ctx, w, err, http.StatusNotFound)
		gt.Number(t, w.Code).Equal(http.StatusNotFound)
		gt.Value(t, strings.TrimSpace(w.Body.String())).Equal("failed to get customer")
		gt.Array(t, *events).Length(0)
	})

	t.Run("server errors write the status text and are captured", func(t *testing.T) {
		ctx, events := newCaptureContext(t)
		w := httptest.NewRecorder()
		err := goerr.Wrap(errors.New("connection refused"), "failed to query")

		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		gt.Number(t, w.Code).Equal(http.StatusInternalServerError)
		gt.Value(t, strings.TrimSpace(w.Body.String())).Equal(http.StatusText(http.StatusInternalServerError))
		gt.Array(t, *events).Length(1)
	})
}

func TestPublicMessage(t *testing.T) {
	base := errors.New("not found")
	testCases := map[string]struct {
		err  error
		want string
	}{
		"plain":        {err: base, want: "not found"},
		"wrapped once": {err: goerr.Wrap(base, "failed to get customer"), want: "failed to get customer"},
		"wrapped twice": {
			err:  goerr.Wrap(goerr.Wrap(base, "failed to get customer"), "failed to build report"),
			want: "failed to build report",
		},
		"goerr without cause": {err: goerr.New("name is required"), want: "name is required"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			gt.Value(t, errutil.PublicMessage(tc.err)).Equal(tc.want)
		})
	}
}
