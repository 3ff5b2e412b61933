package report

import "github.com/abdidvp/wflint/internal/domain"

// EntryKind names the sink call an Entry was recorded from.
type EntryKind string

const (
	EntryStartGroup EntryKind = "start_group"
	EntryError      EntryKind = "error"
	EntryEndGroup   EntryKind = "end_group"
	EntryInfo       EntryKind = "info"
	EntryFailed     EntryKind = "failed"
)

// Entry is one recorded sink call.
type Entry struct {
	Kind EntryKind         `json:"kind"`
	Msg  string            `json:"message,omitempty"`
	At   domain.Annotation `json:"-"`
}

// Recorder keeps every sink call in memory. It backs the JSON output mode
// and is handy in tests.
type Recorder struct {
	Entries []Entry
	failed  bool
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) StartGroup(title string) { r.add(EntryStartGroup, title, domain.Annotation{}) }

func (r *Recorder) Error(msg string, at domain.Annotation) { r.add(EntryError, msg, at) }

func (r *Recorder) EndGroup() { r.add(EntryEndGroup, "", domain.Annotation{}) }

func (r *Recorder) Info(msg string) { r.add(EntryInfo, msg, domain.Annotation{}) }

func (r *Recorder) SetFailed(msg string) {
	r.failed = true
	r.add(EntryFailed, msg, domain.Annotation{})
}

func (r *Recorder) Failed() bool { return r.failed }

// Messages returns the messages of entries of the given kind, in order.
func (r *Recorder) Messages(kind EntryKind) []string {
	var out []string
	for _, e := range r.Entries {
		if e.Kind == kind {
			out = append(out, e.Msg)
		}
	}
	return out
}

func (r *Recorder) add(kind EntryKind, msg string, at domain.Annotation) {
	r.Entries = append(r.Entries, Entry{Kind: kind, Msg: msg, At: at})
}
