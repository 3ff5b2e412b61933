package domain

import (
	"fmt"
	"strings"
)

// IssueKind classifies where in the pipeline an issue was raised.
type IssueKind string

const (
	KindFilesystem IssueKind = "filesystem"
	KindParse      IssueKind = "parse"
	KindSchema     IssueKind = "schema"
)

// Issue is a single human-readable error recorded against a workflow file.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Message string    `json:"message"`
	Keyword string    `json:"keyword,omitempty"`
	Pointer string    `json:"pointer,omitempty"`
	Line    int       `json:"line,omitempty"`
	Column  int       `json:"column,omitempty"`
}

// FileResult is the validation record for one workflow file. It is built by
// a single validation call and not modified afterwards.
type FileResult struct {
	ID     string  `json:"id"`
	Name   string  `json:"name,omitempty"`
	Issues []Issue `json:"errors"`
}

// Errors returns the issue messages in the order they were recorded.
func (r FileResult) Errors() []string {
	msgs := make([]string, 0, len(r.Issues))
	for _, is := range r.Issues {
		msgs = append(msgs, is.Message)
	}
	return msgs
}

// Failed reports whether the file is invalid.
func (r FileResult) Failed() bool { return len(r.Issues) > 0 }

// FirstLocated returns the first issue carrying a source position.
func (r FileResult) FirstLocated() (Issue, bool) {
	for _, is := range r.Issues {
		if is.Line > 0 {
			return is, true
		}
	}
	return Issue{}, false
}

// FailureLine renders the single report line for a failing file.
func (r FileResult) FailureLine() string {
	return fmt.Sprintf("Errors in %s - %s", r.ID, strings.Join(r.Errors(), ", "))
}

// Outcome is the ordered list of failing files for one run.
type Outcome []FileResult

// Failing keeps only the results that carry at least one error, preserving order.
func Failing(results []FileResult) Outcome {
	out := Outcome{}
	for _, r := range results {
		if r.Failed() {
			out = append(out, r)
		}
	}
	return out
}

// Passed reports whether the run found no invalid files.
func (o Outcome) Passed() bool { return len(o) == 0 }

// JSONPointer renders instance location tokens as an RFC 6901 pointer.
// The document root is the empty string.
func JSONPointer(path []string) string {
	if len(path) == 0 {
		return ""
	}
	var b strings.Builder
	for _, tok := range path {
		b.WriteByte('/')
		tok = strings.ReplaceAll(tok, "~", "~0")
		b.WriteString(strings.ReplaceAll(tok, "/", "~1"))
	}
	return b.String()
}
