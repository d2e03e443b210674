package model

import (
	"sort"
	"strings"
	"time"
)

// Well-known answer keys that carry free text rather than rated answers
const (
	AnswerKeyNotes             = "NOTES"
	AnswerKeyBusinessPriority  = "BUSPRIORITY"
	AnswerKeyNotesOnPagePrefix = "NOTESONPAGE"
)

// UnansweredCode is stored for questions the assessor left open
const UnansweredCode = "0-UNKNOWN"

// Assessment is one survey run against an application. Answers maps a
// question key to a raw answer code such as "2-RED".
type Assessment struct {
	ID            AssessmentID
	CustomerID    CustomerID
	ApplicationID ApplicationID
	CreatedAt     time.Time
	Answers       map[string]string
	DepsIN        []ApplicationID
	DepsOUT       []ApplicationID
}

// Answer returns the raw answer for key
func (a *Assessment) Answer(key string) (string, bool) {
	if a == nil || a.Answers == nil {
		return "", false
	}
	v, ok := a.Answers[key]
	return v, ok
}

// IncompleteAnswersCount counts questions answered with UnansweredCode
func (a *Assessment) IncompleteAnswersCount() int {
	if a == nil {
		return 0
	}
	count := 0
	for _, v := range a.Answers {
		if v == UnansweredCode {
			count++
		}
	}
	return count
}

// PageNotes concatenates the per-page note answers, each terminated by ".<br>".
// Keys are visited in sorted order so the output is stable.
func (a *Assessment) PageNotes() string {
	if a == nil {
		return ""
	}
	var keys []string
	for k := range a.Answers {
		if strings.Contains(k, AnswerKeyNotesOnPagePrefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(a.Answers[k])
		b.WriteString(".<br>")
	}
	return b.String()
}

// Copy returns a deep copy of the assessment
func (a *Assessment) Copy() *Assessment {
	if a == nil {
		return nil
	}
	copied := &Assessment{
		ID:            a.ID,
		CustomerID:    a.CustomerID,
		ApplicationID: a.ApplicationID,
		CreatedAt:     a.CreatedAt,
		DepsIN:        append([]ApplicationID(nil), a.DepsIN...),
		DepsOUT:       append([]ApplicationID(nil), a.DepsOUT...),
	}
	if a.Answers != nil {
		copied.Answers = make(map[string]string, len(a.Answers))
		for k, v := range a.Answers {
			copied.Answers[k] = v
		}
	}
	return copied
}
