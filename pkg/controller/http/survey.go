package http

import (
	"context"
	"net/http"

	"github.com/secmon-lab/pathfinder/pkg/utils/async"
)

func (s *Server) getSurvey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.uc.Catalog())
}

// reloadSurvey triggers a catalog reload in the background and returns
// immediately
func (s *Server) reloadSurvey(w http.ResponseWriter, r *http.Request) {
	async.Dispatch(r.Context(), "catalog_reload", func(ctx context.Context) error {
		s.reloader.Reload(ctx)
		return nil
	})
	w.WriteHeader(http.StatusAccepted)
}
