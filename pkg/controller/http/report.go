package http

import (
	"net/http"
	"time"

	"github.com/secmon-lab/pathfinder/pkg/domain/types"
)

const summaryKeyTotal = "Total"

type riskResponse struct {
	Question      string   `json:"question"`
	Answer        string   `json:"answer"`
	OffendingApps []string `json:"offendingApps"`
}

type reportResponse struct {
	AssessmentSummary map[string]int `json:"assessmentSummary"`
	StatusCounts      map[string]int `json:"statusCounts"`
	Risks             []riskResponse `json:"risks"`
}

type applicationSummaryResponse struct {
	ID                     string     `json:"id"`
	Name                   string     `json:"name"`
	Assessed               bool       `json:"assessed"`
	LatestAssessmentID     string     `json:"latestAssessmentId,omitempty"`
	IncompleteAnswersCount int        `json:"incompleteAnswersCount"`
	CompleteAnswersCount   int        `json:"completeAnswersCount"`
	OutboundDeps           []string   `json:"outboundDeps"`
	ReviewDate             *time.Time `json:"reviewDate,omitempty"`
	Decision               string     `json:"decision,omitempty"`
	WorkEffort             string     `json:"workEffort,omitempty"`
	BusinessPriority       int        `json:"businessPriority,omitempty"`
	WorkPriority           int        `json:"workPriority,omitempty"`
	Confidence             *int       `json:"confidence,omitempty"`
}

type progressResponse struct {
	AppCount           int `json:"appCount"`
	Assessed           int `json:"assessed"`
	Reviewed           int `json:"reviewed"`
	PercentageComplete int `json:"percentageComplete"`
}

type dependencyEdgeResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.uc.Report.CustomerReport(r.Context(), customerID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := reportResponse{
		AssessmentSummary: report.StatusCounts.Difficulty(),
		StatusCounts:      make(map[string]int, len(report.StatusCounts)),
		Risks:             make([]riskResponse, len(report.Risks)),
	}
	resp.AssessmentSummary[summaryKeyTotal] = report.Total
	for status, n := range report.StatusCounts {
		resp.StatusCounts[status.String()] = n
	}
	for i, risk := range report.Risks {
		resp.Risks[i] = riskResponse{
			Question:      risk.QuestionText,
			Answer:        risk.AnswerText,
			OffendingApps: risk.Applications,
		}
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getApplicationAssessmentSummary(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.uc.Report.ApplicationAssessmentSummary(r.Context(), customerID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make([]applicationSummaryResponse, len(summaries))
	for i, sum := range summaries {
		resp[i] = applicationSummaryResponse{
			ID:                     string(sum.ID),
			Name:                   sum.Name,
			Assessed:               sum.Assessed,
			LatestAssessmentID:     string(sum.LatestAssessmentID),
			IncompleteAnswersCount: sum.IncompleteAnswersCount,
			CompleteAnswersCount:   sum.CompleteAnswersCount,
			OutboundDeps:           fromApplicationIDs(sum.OutboundDeps),
			ReviewDate:             sum.ReviewDate,
			Decision:               sum.Decision,
			WorkEffort:             sum.WorkEffort,
			BusinessPriority:       sum.BusinessPriority,
			WorkPriority:           sum.WorkPriority,
			Confidence:             sum.Confidence,
		}
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getProgress(w http.ResponseWriter, r *http.Request) {
	p, err := s.uc.Report.Progress(r.Context(), customerID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, progressResponse{
		AppCount:           p.AppCount,
		Assessed:           p.AssessedCount,
		Reviewed:           p.ReviewedCount,
		PercentageComplete: p.PercentComplete,
	})
}

func (s *Server) getDependencyTree(w http.ResponseWriter, r *http.Request) {
	direction := types.Direction(r.URL.Query().Get("direction"))
	edges, err := s.uc.Report.DependencyTree(r.Context(), customerID(r), direction)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make([]dependencyEdgeResponse, len(edges))
	for i, e := range edges {
		resp[i] = dependencyEdgeResponse{From: string(e.From), To: string(e.To)}
	}
	writeJSON(w, r, http.StatusOK, resp)
}
