package parser

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	yamlparser "github.com/goccy/go-yaml/parser"

	"github.com/abdidvp/wflint/internal/domain"
)

// YAMLParser implements domain.DocumentParser for workflow files.
type YAMLParser struct{}

func New() *YAMLParser {
	return &YAMLParser{}
}

// Parse decodes a single YAML document into JSON-compatible values. An empty
// document yields a nil Value. Syntax errors come back as *domain.ParseError.
func (p *YAMLParser) Parse(data []byte) (domain.Document, error) {
	file, err := yamlparser.ParseBytes(data, 0)
	if err != nil {
		return domain.Document{}, parseError(err)
	}

	body := documentBody(file, 0)
	if len(file.Docs) > 1 && documentBody(file, 1) != nil {
		return domain.Document{}, &domain.ParseError{Msg: "expected a single document in the stream, but found more"}
	}

	doc := domain.Document{Locator: &astLocator{body: body}}
	if body == nil {
		return doc, nil
	}

	var raw any
	if err := yaml.NodeToValue(body, &raw); err != nil {
		return domain.Document{}, parseError(err)
	}
	doc.Value = normalize(raw)
	return doc, nil
}

func parseError(err error) *domain.ParseError {
	return &domain.ParseError{Msg: yaml.FormatError(err, false, false), Err: err}
}

func documentBody(file *ast.File, i int) ast.Node {
	if file == nil || i >= len(file.Docs) || file.Docs[i] == nil {
		return nil
	}
	body := file.Docs[i].Body
	if _, isComment := body.(*ast.CommentGroupNode); isComment {
		return nil
	}
	return body
}

// normalize converts decoder output into the value shapes a JSON Schema
// validator understands: string-keyed maps and json.Number for every number.
func normalize(v any) any {
	switch t := v.(type) {
	case nil, string, bool, json.Number:
		return t
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case int:
		return json.Number(strconv.FormatInt(int64(t), 10))
	case int64:
		return json.Number(strconv.FormatInt(t, 10))
	case uint64:
		return json.Number(strconv.FormatUint(t, 10))
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return strconv.FormatFloat(t, 'g', -1, 64)
		}
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64))
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(t)
	}
}
