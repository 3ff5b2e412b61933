package tui

import (
	"fmt"
	"io"

	"github.com/abdidvp/wflint/internal/domain"
)

// ConsoleSink renders a run for a terminal. Failing files are listed with
// their issues below them.
type ConsoleSink struct {
	w       io.Writer
	inGroup bool
	failed  bool
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

func (s *ConsoleSink) StartGroup(title string) {
	fmt.Fprintf(s.w, "\n  %s\n\n", titleStyle.Render(title))
	s.inGroup = true
}

func (s *ConsoleSink) Error(msg string, at domain.Annotation) {
	line := fmt.Sprintf("%s%s %s", s.indent(), failStyle.Render("✗"), msg)
	if at.File != "" && at.Line > 0 {
		line += "  " + fileStyle.Render(fmt.Sprintf("%s:%d:%d", at.File, at.Line, at.Column))
	}
	fmt.Fprintln(s.w, line)
}

// Issue prints one issue of a failing file under its report line.
func (s *ConsoleSink) Issue(_ string, is domain.Issue) {
	tag := string(is.Kind)
	style := warnTagStyle
	if is.Kind == domain.KindSchema && is.Keyword != "" {
		tag = Humanize(is.Keyword)
		style = errorTagStyle
	}

	line := fmt.Sprintf("%s    %s %s", s.indent(), style.Render("["+tag+"]"), is.Message)
	if is.Line > 0 {
		line += "  " + dimStyle.Render(fmt.Sprintf("line %d:%d", is.Line, is.Column))
	}
	fmt.Fprintln(s.w, line)
}

func (s *ConsoleSink) EndGroup() {
	fmt.Fprintln(s.w)
	s.inGroup = false
}

func (s *ConsoleSink) Info(msg string) {
	fmt.Fprintf(s.w, "%s%s %s\n", s.indent(), passStyle.Render("✓"), msg)
}

func (s *ConsoleSink) SetFailed(msg string) {
	s.failed = true
	fmt.Fprintf(s.w, "  %s\n", failStyle.Bold(true).Render(msg))
}

func (s *ConsoleSink) Failed() bool { return s.failed }

func (s *ConsoleSink) indent() string {
	if s.inGroup {
		return "    "
	}
	return "  "
}
