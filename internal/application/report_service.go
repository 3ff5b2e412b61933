package application

import (
	"fmt"

	"github.com/abdidvp/wflint/internal/domain"
)

// Summary lines written to the sink.
const (
	MsgNoErrors       = "Found no workflows with errors!"
	MsgUnhandledError = "Unhandled error"
)

// ReportService renders an Outcome onto a ReportSink.
type ReportService struct {
	sink domain.ReportSink
}

func NewReportService(sink domain.ReportSink) *ReportService {
	return &ReportService{sink: sink}
}

// Report writes one grouped error line per failing file and marks the run
// failed, or writes a single success line when the outcome is empty.
func (r *ReportService) Report(outcome domain.Outcome) {
	if outcome.Passed() {
		r.sink.Info(MsgNoErrors)
		return
	}

	detail, _ := r.sink.(domain.IssueSink)

	r.sink.StartGroup(fmt.Sprintf("Found %d workflows with errors:", len(outcome)))
	for _, res := range outcome {
		at := domain.Annotation{File: res.ID}
		if is, ok := res.FirstLocated(); ok {
			at.Line, at.Column = is.Line, is.Column
		}
		r.sink.Error(res.FailureLine(), at)
		if detail != nil {
			for _, is := range res.Issues {
				detail.Issue(res.ID, is)
			}
		}
	}
	r.sink.EndGroup()
	r.sink.SetFailed(fmt.Sprintf("Found %d workflows with errors", len(outcome)))
}

// ReportUnhandled surfaces a failure that is not attributable to any file.
func (r *ReportService) ReportUnhandled(err error) {
	r.sink.Error("Unhandled error while validating workflows: "+err.Error(), domain.Annotation{})
	r.sink.SetFailed(MsgUnhandledError)
}
