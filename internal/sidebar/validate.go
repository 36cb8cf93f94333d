package sidebar

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Resolver reports whether a document id exists in the content set.
type Resolver interface {
	Has(docID string) bool
}

// DefaultSchemes are the URL schemes accepted for external links.
var DefaultSchemes = []string{"http", "https"}

// ValidateOptions controls which checks Validate performs.
type ValidateOptions struct {
	// Resolver checks document references. Nil skips resolution.
	Resolver Resolver
	// AllowedSchemes restricts link schemes; empty means DefaultSchemes.
	AllowedSchemes []string
	// Strict turns duplicate references into errors, except for those
	// listed in KnownDuplicates.
	Strict          bool
	KnownDuplicates []string
	// CheckDormant also resolves references in disabled subtrees.
	CheckDormant bool
}

// Severity grades a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one validation result.
type Finding struct {
	Severity Severity
	Err      error
}

// Code is a stable identifier for the finding's error type.
func (f Finding) Code() string {
	var (
		unresolved *UnresolvedReferenceError
		invalid    *InvalidLinkError
		cycle      *CycleError
		dup        *DuplicateReferenceError
		empty      *EmptyCategoryError
	)
	switch {
	case errors.As(f.Err, &unresolved):
		return "unresolved-reference"
	case errors.As(f.Err, &invalid):
		return "invalid-link"
	case errors.As(f.Err, &cycle):
		return "cycle"
	case errors.As(f.Err, &dup):
		return "duplicate-reference"
	case errors.As(f.Err, &empty):
		return "empty-category"
	default:
		return "error"
	}
}

func (f Finding) String() string {
	return fmt.Sprintf("%s [%s] %v", f.Severity, f.Code(), f.Err)
}

// Report collects the findings of one validation.
type Report struct {
	Findings []Finding
	Counts   Counts
}

// Errors returns the error-severity findings.
func (r *Report) Errors() []Finding { return r.filter(SeverityError) }

// Warnings returns the warning-severity findings.
func (r *Report) Warnings() []Finding { return r.filter(SeverityWarning) }

// Err joins every error-severity finding, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, f := range r.Errors() {
		errs = append(errs, f.Err)
	}
	return errors.Join(errs...)
}

func (r *Report) filter(s Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}

func (r *Report) add(s Severity, err error) {
	r.Findings = append(r.Findings, Finding{Severity: s, Err: err})
}

// Validate checks a sidebar at load time. A cycle stops the walk; duplicate
// detection and counts are skipped in that case.
func Validate(items []Node, opts ValidateOptions) *Report {
	r := &Report{}
	schemes := opts.AllowedSchemes
	if len(schemes) == 0 {
		schemes = DefaultSchemes
	}

	seen := make(map[string][][]string)
	var order []string

	note := func(id string, path []string) {
		if _, ok := seen[id]; !ok {
			order = append(order, id)
		}
		seen[id] = append(seen[id], path)
	}

	err := Walk(items, func(v Visit) error {
		checkRef := v.Active || opts.CheckDormant
		switch n := v.Node.(type) {
		case *Doc:
			if v.Active {
				note(n.ID, v.Path())
			}
			if checkRef && opts.Resolver != nil && !opts.Resolver.Has(n.ID) {
				r.add(SeverityError, &UnresolvedReferenceError{DocID: n.ID, Path: v.Path()})
			}
		case *Category:
			path := append(v.Path(), n.Label)
			if n.Link != "" {
				if v.Active {
					note(n.Link, path)
				}
				if checkRef && opts.Resolver != nil && !opts.Resolver.Has(n.Link) {
					r.add(SeverityError, &UnresolvedReferenceError{DocID: n.Link, Path: path})
				}
			}
			if v.Active && n.Link == "" && !hasActive(n.Items) {
				r.add(SeverityWarning, &EmptyCategoryError{Label: n.Label, Path: v.Path()})
			}
		case *Link:
			if checkRef {
				if reason := checkHref(n.Href, schemes); reason != "" {
					r.add(SeverityError, &InvalidLinkError{Label: n.Label, Href: n.Href, Path: v.Path(), Reason: reason})
				}
			}
		}
		return nil
	})
	if err != nil {
		r.add(SeverityError, err)
		return r
	}

	for _, id := range order {
		paths := seen[id]
		if len(paths) < 2 {
			continue
		}
		sev := SeverityWarning
		if opts.Strict && !slices.Contains(opts.KnownDuplicates, id) {
			sev = SeverityError
		}
		r.add(sev, &DuplicateReferenceError{DocID: id, Paths: paths})
	}

	r.Counts, _ = Count(items)
	return r
}

func hasActive(items []Node) bool {
	for _, item := range items {
		if item.Enabled() {
			return true
		}
	}
	return false
}

// checkHref returns why href is not an acceptable absolute URL, or "".
func checkHref(href string, schemes []string) string {
	if strings.TrimSpace(href) != href {
		return "surrounding whitespace"
	}
	u, err := url.Parse(href)
	if err != nil {
		return err.Error()
	}
	if !u.IsAbs() {
		return "not an absolute URL"
	}
	if !slices.Contains(schemes, strings.ToLower(u.Scheme)) {
		return fmt.Sprintf("scheme %q is not allowed", u.Scheme)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return "missing host"
		}
	default:
		if u.Host == "" && u.Opaque == "" {
			return "missing host"
		}
	}
	return ""
}
