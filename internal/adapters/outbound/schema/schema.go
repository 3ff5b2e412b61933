// Package schema compiles the workflow JSON Schema and validates parsed
// workflow documents against it.
package schema

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/abdidvp/wflint/internal/domain"
)

//go:embed github-workflow.json
var workflowSchema []byte

// WorkflowSchemaURL identifies the embedded workflow schema.
const WorkflowSchemaURL = "https://json.schemastore.org/github-workflow.json"

// Resource is a schema document registered with the compiler under URL.
type Resource struct {
	URL  string
	Data []byte
}

// Source is the primary schema plus the auxiliary schemas it depends on.
type Source struct {
	Resource
	MetaSchemas []Resource
}

// Embedded returns the workflow schema shipped with the binary.
func Embedded() Source {
	return Source{Resource: Resource{URL: WorkflowSchemaURL, Data: workflowSchema}}
}

// LoadSource reads the schema at schemaPath (or the embedded schema when
// empty) and every meta-schema in metaPaths. Read failures are setup errors.
func LoadSource(schemaPath string, metaPaths []string) (Source, error) {
	src := Embedded()
	if schemaPath != "" {
		res, err := readResource(schemaPath)
		if err != nil {
			return Source{}, err
		}
		src.Resource = res
	}

	for _, p := range metaPaths {
		res, err := readResource(p)
		if err != nil {
			return Source{}, err
		}
		src.MetaSchemas = append(src.MetaSchemas, res)
	}
	return src, nil
}

func readResource(path string) (Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Resource{}, &domain.SetupError{Msg: "reading schema", Err: &domain.FilesystemError{Op: "read", Path: path, Err: err}}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Resource{}, &domain.SetupError{Msg: "resolving schema path", Err: err}
	}
	return Resource{URL: "file://" + filepath.ToSlash(abs), Data: data}, nil
}

// Validator is a compiled schema. It holds no per-call state and is safe for
// concurrent use.
type Validator struct {
	schema *jsonschema.Schema
}

// Compile registers the meta-schemas, then the primary schema, and compiles
// it. Any failure is returned as *domain.SetupError.
func Compile(src Source, log zerolog.Logger) (*Validator, error) {
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft7)

	for _, meta := range src.MetaSchemas {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(meta.Data))
		if err != nil {
			return nil, &domain.SetupError{Msg: fmt.Sprintf("parsing meta-schema %s", meta.URL), Err: err}
		}
		url := resourceID(doc, meta.URL)
		if isBuiltinDraft(url) {
			log.Debug().Str("url", url).Msg("meta-schema is built in, skipping registration")
			continue
		}
		if err := c.AddResource(url, doc); err != nil {
			return nil, &domain.SetupError{Msg: fmt.Sprintf("registering meta-schema %s", url), Err: err}
		}
		log.Debug().Str("url", url).Msg("registered meta-schema")
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(src.Data))
	if err != nil {
		return nil, &domain.SetupError{Msg: fmt.Sprintf("parsing schema %s", src.URL), Err: err}
	}
	if err := c.AddResource(src.URL, doc); err != nil {
		return nil, &domain.SetupError{Msg: fmt.Sprintf("registering schema %s", src.URL), Err: err}
	}

	sch, err := c.Compile(src.URL)
	if err != nil {
		return nil, &domain.SetupError{Msg: fmt.Sprintf("compiling schema %s", src.URL), Err: err}
	}
	log.Debug().Str("url", src.URL).Msg("compiled workflow schema")
	return &Validator{schema: sch}, nil
}

// resourceID prefers the document's own identifier over the location it was
// read from, so that $schema and $ref lookups by URL resolve to it.
func resourceID(doc any, fallback string) string {
	m, ok := doc.(map[string]any)
	if !ok {
		return fallback
	}
	for _, key := range []string{"$id", "id"} {
		if id, ok := m[key].(string); ok && id != "" {
			return strings.TrimSuffix(id, "#")
		}
	}
	return fallback
}

func isBuiltinDraft(url string) bool {
	return strings.HasPrefix(url, "http://json-schema.org/") || strings.HasPrefix(url, "https://json-schema.org/")
}

// Validate returns every violation of the schema by v, in the order the
// validator reports them. A valid instance yields nil. Failed anyOf/oneOf
// combinators contribute the violations of one branch, not of all of them.
func (v *Validator) Validate(inst any) []domain.Violation {
	err := v.schema.Validate(inst)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []domain.Violation{{Message: err.Error()}}
	}

	p := message.NewPrinter(language.English)
	leaves := collect(ve)
	out := make([]domain.Violation, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, l.violation(p))
	}
	return out
}

// leaf is a single failed keyword at an instance location.
type leaf struct {
	path []string
	ek   jsonschema.ErrorKind
}

func (l leaf) violation(p *message.Printer) domain.Violation {
	var keyword string
	if kp := l.ek.KeywordPath(); len(kp) > 0 {
		keyword = kp[len(kp)-1]
	}
	return domain.Violation{Path: l.path, Keyword: keyword, Message: l.ek.LocalizedString(p)}
}

// collect walks the error tree depth-first. Inner nodes only group their
// causes; leaves are the individual violations.
func collect(ve *jsonschema.ValidationError) []leaf {
	switch k := ve.ErrorKind.(type) {
	case *kind.AnyOf:
		if len(ve.Causes) > 0 {
			return alternatives(ve)
		}
	case *kind.OneOf:
		// Subschemas is nil when no branch matched; otherwise several did
		// and the node itself is the violation.
		if k.Subschemas == nil && len(ve.Causes) > 0 {
			return alternatives(ve)
		}
	}

	if len(ve.Causes) == 0 {
		return []leaf{{path: ve.InstanceLocation, ek: ve.ErrorKind}}
	}
	var out []leaf
	for _, cause := range ve.Causes {
		out = append(out, collect(cause)...)
	}
	return out
}

// alternatives reduces a failed combinator to the violations of the branch
// the instance most likely meant. When every branch only rejected the
// instance's type, the branches merge into one type violation.
func alternatives(ve *jsonschema.ValidationError) []leaf {
	branches := make([][]leaf, 0, len(ve.Causes))
	for _, cause := range ve.Causes {
		branches = append(branches, collect(cause))
	}

	if merged, ok := mergeTypes(ve.InstanceLocation, branches); ok {
		return []leaf{merged}
	}

	best := -1
	for i, b := range branches {
		if len(b) == 0 {
			continue
		}
		if best == -1 || betterBranch(ve.InstanceLocation, b, branches[best]) {
			best = i
		}
	}
	if best == -1 {
		return []leaf{{path: ve.InstanceLocation, ek: ve.ErrorKind}}
	}
	return branches[best]
}

// betterBranch ranks a over b: a branch that got past the type check beats
// one that did not, then deeper violations win, then fewer of them.
func betterBranch(at []string, a, b []leaf) bool {
	aMiss, bMiss := typeMismatchAt(at, a), typeMismatchAt(at, b)
	if aMiss != bMiss {
		return bMiss
	}
	if da, db := maxDepth(a), maxDepth(b); da != db {
		return da > db
	}
	return len(a) < len(b)
}

func mergeTypes(at []string, branches [][]leaf) (leaf, bool) {
	if len(branches) == 0 {
		return leaf{}, false
	}
	merged := &kind.Type{}
	for _, b := range branches {
		if !typeMismatchAt(at, b) {
			return leaf{}, false
		}
		t := b[0].ek.(*kind.Type)
		merged.Got = t.Got
		for _, w := range t.Want {
			if !slices.Contains(merged.Want, w) {
				merged.Want = append(merged.Want, w)
			}
		}
	}
	return leaf{path: at, ek: merged}, true
}

// typeMismatchAt reports whether b is a lone type violation at location at.
func typeMismatchAt(at []string, b []leaf) bool {
	if len(b) != 1 || !slices.Equal(b[0].path, at) {
		return false
	}
	_, ok := b[0].ek.(*kind.Type)
	return ok
}

func maxDepth(b []leaf) int {
	depth := 0
	for _, l := range b {
		depth = max(depth, len(l.path))
	}
	return depth
}
