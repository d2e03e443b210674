package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/pathfinder/pkg/domain/model"
	"github.com/secmon-lab/pathfinder/pkg/usecase"
)

const (
	resultKeyDepsIN  = "DEPSINLIST"
	resultKeyDepsOUT = "DEPSOUTLIST"
)

type createAssessmentRequest struct {
	Payload map[string]string `json:"payload" validate:"required,min=1"`
	DepsIN  []string          `json:"depsIN"`
	DepsOUT []string          `json:"depsOUT"`
}

type assessmentResponse struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	Payload   map[string]string `json:"payload"`
	DepsIN    []string          `json:"depsIN"`
	DepsOUT   []string          `json:"depsOUT"`
}

type summaryItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Rating   string `json:"rating"`
}

type dependencyResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type processResponse struct {
	AssessmentNotes  string               `json:"assessmentNotes"`
	BusinessPriority string               `json:"businessPriority"`
	DependenciesIN   []dependencyResponse `json:"dependenciesIN"`
	DependenciesOUT  []dependencyResponse `json:"dependenciesOUT"`
}

func assessmentID(r *http.Request) model.AssessmentID {
	return model.AssessmentID(chi.URLParam(r, "assessId"))
}

func toApplicationIDs(ids []string) []model.ApplicationID {
	if ids == nil {
		return nil
	}
	out := make([]model.ApplicationID, len(ids))
	for i, id := range ids {
		out[i] = model.ApplicationID(id)
	}
	return out
}

func fromApplicationIDs(ids []model.ApplicationID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func toDependencyResponses(refs []usecase.DependencyRef) []dependencyResponse {
	out := make([]dependencyResponse, len(refs))
	for i, ref := range refs {
		out[i] = dependencyResponse{ID: string(ref.ID), Name: ref.Name}
	}
	return out
}

func (s *Server) createAssessment(w http.ResponseWriter, r *http.Request) {
	var req createAssessmentRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	a, err := s.uc.Assessment.CreateAssessment(r.Context(), customerID(r), applicationID(r), usecase.CreateAssessmentInput{
		Answers: req.Payload,
		DepsIN:  toApplicationIDs(req.DepsIN),
		DepsOUT: toApplicationIDs(req.DepsOUT),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, assessmentResponse{
		ID:        string(a.ID),
		CreatedAt: a.CreatedAt,
		Payload:   a.Answers,
		DepsIN:    fromApplicationIDs(a.DepsIN),
		DepsOUT:   fromApplicationIDs(a.DepsOUT),
	})
}

// getAssessmentResults returns the raw answers of an assessment together
// with its dependency lists
func (s *Server) getAssessmentResults(w http.ResponseWriter, r *http.Request) {
	a, err := s.uc.Assessment.GetAssessment(r.Context(), assessmentID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make(map[string]any, len(a.Answers)+2)
	for k, v := range a.Answers {
		resp[k] = v
	}
	resp[resultKeyDepsIN] = fromApplicationIDs(a.DepsIN)
	resp[resultKeyDepsOUT] = fromApplicationIDs(a.DepsOUT)
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getAssessmentSummary(w http.ResponseWriter, r *http.Request) {
	answers, err := s.uc.Assessment.Summary(r.Context(), customerID(r), applicationID(r), assessmentID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make([]summaryItem, len(answers))
	for i, a := range answers {
		resp[i] = summaryItem{
			Question: a.QuestionText,
			Answer:   a.AnswerText,
			Rating:   a.Rating.String(),
		}
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getAssessmentProcess(w http.ResponseWriter, r *http.Request) {
	view, err := s.uc.Assessment.Process(r.Context(), customerID(r), applicationID(r), assessmentID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, processResponse{
		AssessmentNotes:  view.Notes,
		BusinessPriority: view.BusinessPriority,
		DependenciesIN:   toDependencyResponses(view.DependenciesIN),
		DependenciesOUT:  toDependencyResponses(view.DependenciesOUT),
	})
}
