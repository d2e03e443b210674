package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/domain/types"
	"github.com/secmon-lab/pathfinder/pkg/usecase"
)

type createApplicationRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
	Stereotype  string `json:"stereotype" validate:"omitempty,oneof=TARGETAPP DEPENDENCY PROFILE"`
}

type applicationResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	Owner        string            `json:"owner,omitempty"`
	Stereotype   string            `json:"stereotype,omitempty"`
	Review       string            `json:"review,omitempty"`
	Assessments  []string          `json:"assessments"`
	CustomFields map[string]string `json:"customFields,omitempty"`
}

func toApplicationResponse(app *model.Application) applicationResponse {
	resp := applicationResponse{
		ID:          string(app.ID),
		Name:        app.Name,
		Description: app.Description,
		Owner:       app.Owner,
		Stereotype:  string(app.Stereotype),
		Assessments: make([]string, len(app.Assessments)),
	}
	for i, a := range app.Assessments {
		resp.Assessments[i] = string(a.ID)
	}
	if app.Review != nil {
		resp.Review = string(app.Review.ID)
	}
	return resp
}

func applicationID(r *http.Request) model.ApplicationID {
	return model.ApplicationID(chi.URLParam(r, "appId"))
}

func (s *Server) createApplication(w http.ResponseWriter, r *http.Request) {
	var req createApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	app, err := s.uc.Application.CreateApplication(r.Context(), customerID(r), usecase.CreateApplicationInput{
		Name:        req.Name,
		Description: req.Description,
		Owner:       req.Owner,
		Stereotype:  req.Stereotype,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toApplicationResponse(app))
}

func (s *Server) listApplications(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter, err := types.ParseAppTypeFilter(query.Get("apptype"))
	if err != nil {
		handleError(w, r, goerr.Wrap(errBadRequest, err.Error()))
		return
	}

	apps, err := s.uc.Application.ListApplications(r.Context(), customerID(r), filter, model.ApplicationID(query.Get("exclude")))
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make([]applicationResponse, len(apps))
	for i, app := range apps {
		resp[i] = toApplicationResponse(app)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getApplication(w http.ResponseWriter, r *http.Request) {
	var fields []string
	if custom := r.URL.Query().Get("custom"); custom != "" {
		fields = strings.Split(custom, ",")
	}

	view, err := s.uc.Application.GetApplication(r.Context(), customerID(r), applicationID(r), fields)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := toApplicationResponse(view.Application)
	resp.CustomFields = view.CustomFields
	writeJSON(w, r, http.StatusOK, resp)
}

type reviewRequest struct {
	ReviewTimestamp  *time.Time `json:"reviewTimestamp"`
	ReviewDecision   string     `json:"reviewDecision" validate:"required"`
	WorkEffort       string     `json:"workEffort"`
	BusinessPriority int        `json:"businessPriority" validate:"gte=0"`
	WorkPriority     int        `json:"workPriority" validate:"gte=0"`
	ReviewNotes      string     `json:"reviewNotes"`
}

func (s *Server) setReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	input := usecase.ReviewInput{
		Decision:         req.ReviewDecision,
		EstimatedEffort:  req.WorkEffort,
		BusinessPriority: req.BusinessPriority,
		WorkPriority:     req.WorkPriority,
		Notes:            req.ReviewNotes,
	}
	if req.ReviewTimestamp != nil {
		input.ReviewDate = *req.ReviewTimestamp
	}

	app, err := s.uc.Application.SetReview(r.Context(), customerID(r), applicationID(r), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toApplicationResponse(app))
}
