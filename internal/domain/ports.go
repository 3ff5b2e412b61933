package domain

// WorkflowDiscoverer lists the candidate workflow files of a directory.
type WorkflowDiscoverer interface {
	Discover(dir string) ([]string, error)
}

// Position is a 1-based line/column in a source file.
type Position struct {
	Line   int
	Column int
}

// Locator maps an instance location (JSON pointer tokens) back to the
// source position of the node it names.
type Locator interface {
	Locate(path []string) (Position, bool)
}

// Document is a parsed workflow file. Value holds JSON-compatible data
// (map[string]any, []any, string, bool, json.Number, nil).
type Document struct {
	Value   any
	Locator Locator
}

// DocumentParser turns raw file content into a Document. Syntax failures
// are returned as *ParseError.
type DocumentParser interface {
	Parse(data []byte) (Document, error)
}

// Violation is one schema rule the instance does not satisfy.
type Violation struct {
	Path    []string
	Keyword string
	Message string
}

// SchemaValidator checks an instance against a compiled schema. It must be
// safe to call concurrently and must not retain state between calls.
type SchemaValidator interface {
	Validate(v any) []Violation
}

// ConfigLoader loads project configuration rooted at a directory.
type ConfigLoader interface {
	Load(root string) (Config, error)
}

// RepoLocator finds the root of the repository containing a path.
type RepoLocator interface {
	Root(path string) (string, error)
}

// Annotation ties a report line to a file position.
type Annotation struct {
	File   string
	Line   int
	Column int
}

// ReportSink is where run results are surfaced to a human or a CI runner.
type ReportSink interface {
	StartGroup(title string)
	Error(msg string, at Annotation)
	EndGroup()
	Info(msg string)
	SetFailed(msg string)
	Failed() bool
}

// IssueSink is implemented by sinks that can render each issue of a failing
// file individually, below its report line.
type IssueSink interface {
	Issue(file string, is Issue)
}
