package application

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/abdidvp/wflint/internal/domain"
)

// Pipeline produces the outcome of one run. Setup (schema compilation) and
// directory listing happen inside it so their failures reach Run's boundary.
type Pipeline func() (domain.Outcome, error)

// Run executes pipeline and reports its result on sink. Any error or panic
// escaping pipeline is converted to *domain.UnhandledError, reported once and
// returned. A completed run with failing files returns an error wrapping
// domain.ErrWorkflowsInvalid.
func Run(sink domain.ReportSink, log zerolog.Logger, pipeline Pipeline) (domain.Outcome, error) {
	report := NewReportService(sink)

	outcome, err := guard(pipeline)
	if err != nil {
		log.Error().Err(err).Msg("unhandled error while validating workflows")
		report.ReportUnhandled(err)
		return nil, err
	}

	report.Report(outcome)
	if !outcome.Passed() {
		return outcome, fmt.Errorf("%w: %d", domain.ErrWorkflowsInvalid, len(outcome))
	}
	return outcome, nil
}

func guard(pipeline Pipeline) (outcome domain.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			var ue *domain.UnhandledError
			if !errors.As(err, &ue) {
				err = &domain.UnhandledError{Err: err}
			}
			outcome = nil
		}
	}()
	return pipeline()
}
