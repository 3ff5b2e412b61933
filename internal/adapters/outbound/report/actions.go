// Package report holds the non-interactive report sinks: GitHub Actions
// workflow commands and an in-memory recorder.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/abdidvp/wflint/internal/domain"
)

// ActionsSink writes GitHub Actions workflow commands so that errors become
// annotations on the offending file and the log output is grouped.
type ActionsSink struct {
	w      io.Writer
	failed bool
}

func NewActionsSink(w io.Writer) *ActionsSink {
	return &ActionsSink{w: w}
}

func (s *ActionsSink) StartGroup(title string) {
	fmt.Fprintf(s.w, "::group::%s\n", escapeData(title))
}

func (s *ActionsSink) Error(msg string, at domain.Annotation) {
	fmt.Fprintf(s.w, "::error%s::%s\n", properties(at), escapeData(msg))
}

func (s *ActionsSink) EndGroup() {
	fmt.Fprintln(s.w, "::endgroup::")
}

func (s *ActionsSink) Info(msg string) {
	fmt.Fprintln(s.w, msg)
}

// SetFailed emits the failure as an error annotation. The exit status is
// left to the caller.
func (s *ActionsSink) SetFailed(msg string) {
	s.failed = true
	fmt.Fprintf(s.w, "::error::%s\n", escapeData(msg))
}

func (s *ActionsSink) Failed() bool { return s.failed }

func properties(at domain.Annotation) string {
	if at.File == "" {
		return ""
	}
	props := []string{"file=" + escapeProperty(at.File)}
	if at.Line > 0 {
		props = append(props, fmt.Sprintf("line=%d", at.Line))
		if at.Column > 0 {
			props = append(props, fmt.Sprintf("col=%d", at.Column))
		}
	}
	return " " + strings.Join(props, ",")
}

var (
	dataEscaper     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

func escapeData(s string) string     { return dataEscaper.Replace(s) }
func escapeProperty(s string) string { return propertyEscaper.Replace(s) }
