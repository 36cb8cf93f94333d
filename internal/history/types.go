package history

import (
	"errors"
	"time"

	"github.com/ziadkadry99/sidenav/internal/sidebar"
)

// Run is one recorded validation of a sidebar.
type Run struct {
	ID        string         `json:"id"`
	StartedAt time.Time      `json:"started_at"`
	Source    string         `json:"source"`
	Sidebar   string         `json:"sidebar"`
	Strict    bool           `json:"strict"`
	Resolved  bool           `json:"resolved"`
	Errors    int            `json:"errors"`
	Warnings  int            `json:"warnings"`
	Counts    sidebar.Counts `json:"counts"`
	Findings  []Finding      `json:"findings,omitempty"`
}

// Finding is a stored validation finding.
type Finding struct {
	Severity sidebar.Severity `json:"severity"`
	Code     string           `json:"code"`
	DocID    string           `json:"doc_id,omitempty"`
	Path     []string         `json:"path,omitempty"`
	Message  string           `json:"message"`
}

// NewRun summarizes a validation report for recording. resolved tells
// whether references were checked against a content set.
func NewRun(source, sidebarName string, strict, resolved bool, report *sidebar.Report) Run {
	run := Run{
		Source:   source,
		Sidebar:  sidebarName,
		Strict:   strict,
		Resolved: resolved,
		Counts:   report.Counts,
	}
	for _, f := range report.Findings {
		if f.Severity == sidebar.SeverityError {
			run.Errors++
		} else {
			run.Warnings++
		}
		docID, path := locate(f.Err)
		run.Findings = append(run.Findings, Finding{
			Severity: f.Severity,
			Code:     f.Code(),
			DocID:    docID,
			Path:     path,
			Message:  f.Err.Error(),
		})
	}
	return run
}

// locate extracts the document id and category path a finding refers to.
func locate(err error) (docID string, path []string) {
	var (
		unresolved *sidebar.UnresolvedReferenceError
		invalid    *sidebar.InvalidLinkError
		cycle      *sidebar.CycleError
		dup        *sidebar.DuplicateReferenceError
		empty      *sidebar.EmptyCategoryError
	)
	switch {
	case errors.As(err, &unresolved):
		return unresolved.DocID, unresolved.Path
	case errors.As(err, &invalid):
		return "", invalid.Path
	case errors.As(err, &cycle):
		return "", cycle.Path
	case errors.As(err, &dup):
		if len(dup.Paths) > 0 {
			return dup.DocID, dup.Paths[0]
		}
		return dup.DocID, nil
	case errors.As(err, &empty):
		return "", empty.Path
	}
	return "", nil
}
