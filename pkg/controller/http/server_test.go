package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/prometheus/client_golang/prometheus"
	httpctrl "github.com/secmon-lab/pathfinder/pkg/controller/http"
	"github.com/secmon-lab/pathfinder/pkg/repository/memory"
	"github.com/secmon-lab/pathfinder/pkg/usecase"
)

func newServer(t *testing.T, opts ...httpctrl.Options) *httpctrl.Server {
	t.Helper()
	return httpctrl.New(usecase.New(memory.New()), opts...)
}

func do(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		data, err := json.Marshal(v)
		gt.NoError(t, err).Required()
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &v)).Required()
	return v
}

type idResponse struct {
	ID string `json:"id"`
}

func TestServer_Survey(t *testing.T) {
	srv := newServer(t)
	w := do(t, srv, http.MethodGet, "/api/survey", nil)
	gt.Number(t, w.Code).Equal(http.StatusOK)

	resp := decode[struct {
		Pages []struct {
			Name      string `json:"name"`
			Questions []struct {
				Key string `json:"key"`
			} `json:"questions"`
		} `json:"pages"`
	}](t, w)
	gt.Bool(t, len(resp.Pages) > 0).True()
	gt.Value(t, resp.Pages[0].Questions[0].Key).Equal("BUSCRIT")
}

func TestServer_AssessmentFlow(t *testing.T) {
	srv := newServer(t)

	w := do(t, srv, http.MethodPost, "/api/customers", map[string]any{
		"name":     "Acme",
		"vertical": "Retail",
	})
	gt.Number(t, w.Code).Equal(http.StatusCreated)
	cust := decode[idResponse](t, w)
	base := "/api/customers/" + cust.ID

	w = do(t, srv, http.MethodPost, base+"/applications", map[string]any{
		"name":       "billing",
		"stereotype": "TARGETAPP",
	})
	gt.Number(t, w.Code).Equal(http.StatusCreated)
	app := decode[idResponse](t, w)

	w = do(t, srv, http.MethodPost, base+"/applications", map[string]any{
		"name":       "database",
		"stereotype": "DEPENDENCY",
	})
	gt.Number(t, w.Code).Equal(http.StatusCreated)
	db := decode[idResponse](t, w)

	appBase := base + "/applications/" + app.ID
	w = do(t, srv, http.MethodPost, appBase+"/assessments", map[string]any{
		"payload": map[string]string{
			"BUSSLA":        "4-RED",
			"BUSCRIT":       "1-GREEN",
			"NOTES":         "move first",
			"NOTESONPAGE1":  "page one",
			"UNKNOWNANSWER": "1-GREEN",
		},
		"depsOUT": []string{db.ID},
	})
	gt.Number(t, w.Code).Equal(http.StatusCreated)
	assessment := decode[idResponse](t, w)

	t.Run("summary in catalog order", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, appBase+"/assessments/"+assessment.ID+"/summary", nil)
		gt.Number(t, w.Code).Equal(http.StatusOK)
		items := decode[[]map[string]string](t, w)
		gt.Array(t, items).Length(2).Required()
		gt.Value(t, items[0]["rating"]).Equal("GREEN")
		gt.Value(t, items[1]["rating"]).Equal("RED")
		gt.Value(t, items[1]["answer"]).Equal("24x7 with zero downtime")
	})

	t.Run("process", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, appBase+"/assessments/"+assessment.ID+"/process", nil)
		gt.Number(t, w.Code).Equal(http.StatusOK)
		resp := decode[struct {
			AssessmentNotes string `json:"assessmentNotes"`
			DependenciesOUT []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"dependenciesOUT"`
		}](t, w)
		gt.Value(t, resp.AssessmentNotes).Equal("move first")
		gt.Array(t, resp.DependenciesOUT).Length(1).Required()
		gt.Value(t, resp.DependenciesOUT[0].Name).Equal("database")
	})

	t.Run("results include dependency lists", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, "/api/assessments/"+assessment.ID+"/results", nil)
		gt.Number(t, w.Code).Equal(http.StatusOK)
		resp := decode[map[string]any](t, w)
		gt.Value(t, resp["BUSSLA"]).Equal(any("4-RED"))
		gt.Value(t, resp["DEPSOUTLIST"]).Equal(any([]any{db.ID}))
		gt.Value(t, resp["DEPSINLIST"]).Equal(any([]any{}))
	})

	t.Run("custom fields", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, appBase+"?custom=customer.vertical,assessment.notes", nil)
		gt.Number(t, w.Code).Equal(http.StatusOK)
		resp := decode[struct {
			CustomFields map[string]string `json:"customFields"`
		}](t, w)
		gt.Value(t, resp.CustomFields).Equal(map[string]string{
			"customer.vertical": "Retail",
			"assessment.notes":  "page one.<br>",
		})
	})

	t.Run("report", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, base+"/report", nil)
		gt.Number(t, w.Code).Equal(http.StatusOK)
		resp := decode[struct {
			AssessmentSummary map[string]int `json:"assessmentSummary"`
			Risks             []struct {
				Question      string   `json:"question"`
				OffendingApps []string `json:"offendingApps"`
			} `json:"risks"`
		}](t, w)
		gt.Value(t, resp.AssessmentSummary).Equal(map[string]int{"Easy": 0, "Medium": 0, "Hard": 1, "Total": 1})
		gt.Array(t, resp.Risks).Length(1).Required()
		gt.Value(t, resp.Risks[0].OffendingApps).Equal([]string{"billing"})
	})

	t.Run("confidence appears after review", func(t *testing.T) {
		type summary struct {
			ID         string `json:"id"`
			Confidence *int   `json:"confidence"`
		}

		w := do(t, srv, http.MethodGet, base+"/application-assessment-summary", nil)
		gt.Number(t, w.Code).Equal(http.StatusOK)
		before := decode[[]summary](t, w)
		gt.Array(t, before).Length(1).Required()
		gt.Value(t, before[0].Confidence).Nil()

		w = do(t, srv, http.MethodPost, appBase+"/review", map[string]any{
			"reviewDecision":   "REHOST",
			"workEffort":       "SMALL",
			"businessPriority": 3,
		})
		gt.Number(t, w.Code).Equal(http.StatusOK)

		w = do(t, srv, http.MethodGet, base+"/application-assessment-summary", nil)
		after := decode[[]summary](t, w)
		gt.Value(t, after[0].Confidence).NotNil()
	})

	t.Run("progress", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, base+"/application-assessment-progress", nil)
		gt.Number(t, w.Code).Equal(http.StatusOK)
		gt.Value(t, decode[map[string]int](t, w)).Equal(map[string]int{
			"appCount":           1,
			"assessed":           1,
			"reviewed":           1,
			"percentageComplete": 100,
		})
	})

	t.Run("dependency tree", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, base+"/dependency-tree?direction=SOUTHBOUND", nil)
		gt.Number(t, w.Code).Equal(http.StatusOK)
		gt.Value(t, decode[[]map[string]string](t, w)).Equal([]map[string]string{{"from": app.ID, "to": db.ID}})

		w = do(t, srv, http.MethodGet, base+"/dependency-tree?direction=SIDEWAYS", nil)
		gt.Number(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("application listing", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, base+"/applications?apptype=TARGETS", nil)
		gt.Number(t, w.Code).Equal(http.StatusOK)
		apps := decode[[]idResponse](t, w)
		gt.Value(t, apps).Equal([]idResponse{{ID: app.ID}})

		w = do(t, srv, http.MethodGet, base+"/applications?exclude="+app.ID, nil)
		gt.Value(t, decode[[]idResponse](t, w)).Equal([]idResponse{{ID: db.ID}})

		w = do(t, srv, http.MethodGet, base+"/applications?apptype=EVERYTHING", nil)
		gt.Number(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("assessment of another application is not found", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, base+"/applications/"+db.ID+"/assessments/"+assessment.ID+"/summary", nil)
		gt.Number(t, w.Code).Equal(http.StatusNotFound)
	})
}

func TestServer_Errors(t *testing.T) {
	srv := newServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"unknown customer", http.MethodGet, "/api/customers/nope", nil, http.StatusNotFound},
		{"unknown customer report", http.MethodGet, "/api/customers/nope/report", nil, http.StatusNotFound},
		{"unknown assessment", http.MethodGet, "/api/assessments/nope/results", nil, http.StatusNotFound},
		{"malformed body", http.MethodPost, "/api/customers", "{", http.StatusBadRequest},
		{"missing name", http.MethodPost, "/api/customers", map[string]any{"vertical": "x"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, srv, tc.method, tc.path, tc.body)
			gt.Number(t, w.Code).Equal(tc.status)
		})
	}

	t.Run("invalid stereotype", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/customers", map[string]any{"name": "Acme"})
		cust := decode[idResponse](t, w)

		w = do(t, srv, http.MethodPost, "/api/customers/"+cust.ID+"/applications", map[string]any{
			"name":       "x",
			"stereotype": "SERVICE",
		})
		gt.Number(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("empty assessment payload", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/customers", map[string]any{"name": "Acme"})
		cust := decode[idResponse](t, w)
		w = do(t, srv, http.MethodPost, "/api/customers/"+cust.ID+"/applications", map[string]any{"name": "x"})
		app := decode[idResponse](t, w)

		w = do(t, srv, http.MethodPost, "/api/customers/"+cust.ID+"/applications/"+app.ID+"/assessments", map[string]any{
			"payload": map[string]string{},
		})
		gt.Number(t, w.Code).Equal(http.StatusBadRequest)
	})
}

type reloader struct {
	calls atomic.Int32
}

func (r *reloader) Reload(ctx context.Context) {
	r.calls.Add(1)
}

func TestServer_SurveyReload(t *testing.T) {
	t.Run("disabled without reloader", func(t *testing.T) {
		w := do(t, newServer(t), http.MethodPost, "/api/survey/reload", nil)
		gt.Number(t, w.Code).Equal(http.StatusNotFound)
	})

	t.Run("reload runs in background", func(t *testing.T) {
		r := &reloader{}
		w := do(t, newServer(t, httpctrl.WithCatalogReloader(r)), http.MethodPost, "/api/survey/reload", nil)
		gt.Number(t, w.Code).Equal(http.StatusAccepted)

		deadline := time.Now().Add(time.Second)
		for r.calls.Load() == 0 && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}
		gt.Number(t, r.calls.Load()).Equal(1)
	})
}

func TestServer_Metrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "pathfinder_test_total"})
	registry.MustRegister(counter)
	counter.Inc()

	w := do(t, newServer(t, httpctrl.WithGatherer(registry)), http.MethodGet, "/metrics", nil)
	gt.Number(t, w.Code).Equal(http.StatusOK)
	gt.Bool(t, strings.Contains(w.Body.String(), "pathfinder_test_total 1")).True()
}
