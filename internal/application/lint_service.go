package application

import (
	"errors"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/iter"

	"github.com/abdidvp/wflint/internal/domain"
)

var errNotText = errors.New("content is not valid UTF-8 text")

// LintService runs the validation pipeline:
// discover → read → parse → schema check → keep failing results.
type LintService struct {
	discoverer domain.WorkflowDiscoverer
	parser     domain.DocumentParser
	validator  domain.SchemaValidator
	jobs       int
	log        zerolog.Logger
}

// NewLintService wires the pipeline. jobs == 1 validates files one at a time,
// 0 uses one goroutine per CPU, and larger values fan out across that many
// goroutines.
func NewLintService(
	discoverer domain.WorkflowDiscoverer,
	parser domain.DocumentParser,
	validator domain.SchemaValidator,
	jobs int,
	log zerolog.Logger,
) *LintService {
	return &LintService{
		discoverer: discoverer,
		parser:     parser,
		validator:  validator,
		jobs:       jobs,
		log:        log,
	}
}

// ValidateDir validates every eligible file in dir and returns only the
// failing results, in discovery order. A listing failure is returned as an
// error since no file can be validated.
func (s *LintService) ValidateDir(dir string) (domain.Outcome, error) {
	results, err := s.Results(dir)
	if err != nil {
		return nil, err
	}
	outcome := domain.Failing(results)
	s.log.Info().
		Str("dir", dir).
		Int("files", len(results)).
		Int("failing", len(outcome)).
		Msg("validated workflows")
	return outcome, nil
}

// Results returns one FileResult per discovered file, passing or not.
func (s *LintService) Results(dir string) ([]domain.FileResult, error) {
	paths, err := s.discoverer.Discover(dir)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("dir", dir).Int("files", len(paths)).Msg("discovered workflows")

	if s.jobs == 1 || len(paths) < 2 {
		results := make([]domain.FileResult, 0, len(paths))
		for _, p := range paths {
			results = append(results, s.ValidateFile(p))
		}
		return results, nil
	}

	mapper := iter.Mapper[string, domain.FileResult]{MaxGoroutines: s.jobs}
	return mapper.Map(paths, func(p *string) domain.FileResult {
		return s.ValidateFile(*p)
	}), nil
}

// ValidateFile produces the result for a single file. Read and parse
// failures are recorded as one issue and stop further checks; schema
// violations are all recorded.
func (s *LintService) ValidateFile(path string) domain.FileResult {
	result := domain.FileResult{ID: path}
	log := s.log.With().Str("file", path).Logger()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Debug().Err(err).Msg("read failed")
		result.Issues = append(result.Issues, domain.Issue{Kind: domain.KindFilesystem, Message: err.Error()})
		return result
	}
	if !utf8.Valid(data) {
		log.Debug().Msg("file is not UTF-8")
		result.Issues = append(result.Issues, domain.Issue{
			Kind:    domain.KindFilesystem,
			Message: (&domain.FilesystemError{Op: "read", Path: path, Err: errNotText}).Error(),
		})
		return result
	}

	doc, err := s.parser.Parse(data)
	if err != nil {
		log.Debug().Err(err).Msg("parse failed")
		result.Issues = append(result.Issues, domain.Issue{Kind: domain.KindParse, Message: err.Error()})
		return result
	}

	for _, v := range s.validator.Validate(doc.Value) {
		result.Issues = append(result.Issues, schemaIssue(v, doc.Locator))
	}
	if result.Failed() {
		log.Debug().Int("violations", len(result.Issues)).Msg("schema check failed")
	}
	return result
}

func schemaIssue(v domain.Violation, loc domain.Locator) domain.Issue {
	is := domain.Issue{
		Kind:    domain.KindSchema,
		Keyword: v.Keyword,
		Pointer: domain.JSONPointer(v.Path),
		Message: v.Message,
	}
	if is.Pointer != "" {
		is.Message = is.Pointer + ": " + v.Message
	}
	if loc != nil {
		if pos, ok := loc.Locate(v.Path); ok {
			is.Line, is.Column = pos.Line, pos.Column
		}
	}
	return is
}
