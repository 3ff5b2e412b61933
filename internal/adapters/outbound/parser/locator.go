package parser

import (
	"strconv"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/token"

	"github.com/abdidvp/wflint/internal/domain"
)

// astLocator resolves instance locations against the parsed YAML syntax tree.
type astLocator struct {
	body ast.Node
}

// Locate walks path from the document root. When a segment cannot be
// resolved it returns the position of the deepest node that was found, so a
// missing property points at its parent key.
func (l *astLocator) Locate(path []string) (domain.Position, bool) {
	if l == nil || l.body == nil || len(path) == 0 {
		return domain.Position{}, false
	}

	node := l.body
	var at *token.Token
	for _, seg := range path {
		next, tk := child(unwrap(node), seg)
		if next == nil {
			break
		}
		node, at = next, tk
	}
	return position(at)
}

func child(node ast.Node, seg string) (ast.Node, *token.Token) {
	switch n := node.(type) {
	case *ast.MappingNode:
		for _, mv := range n.Values {
			if keyMatches(mv, seg) {
				return mv.Value, mv.Key.GetToken()
			}
		}
	case *ast.MappingValueNode:
		if keyMatches(n, seg) {
			return n.Value, n.Key.GetToken()
		}
	case *ast.SequenceNode:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(n.Values) {
			return nil, nil
		}
		item := n.Values[i]
		return item, headToken(unwrap(item))
	}
	return nil, nil
}

func keyMatches(mv *ast.MappingValueNode, seg string) bool {
	if mv == nil || mv.Key == nil {
		return false
	}
	tk := mv.Key.GetToken()
	return tk != nil && tk.Value == seg
}

// headToken is the token a human would point at for a node: the first key
// of a mapping, or the scalar itself.
func headToken(n ast.Node) *token.Token {
	switch v := n.(type) {
	case nil:
		return nil
	case *ast.MappingNode:
		if len(v.Values) > 0 && v.Values[0].Key != nil {
			return v.Values[0].Key.GetToken()
		}
	case *ast.MappingValueNode:
		if v.Key != nil {
			return v.Key.GetToken()
		}
	}
	return n.GetToken()
}

func unwrap(n ast.Node) ast.Node {
	for {
		switch v := n.(type) {
		case *ast.AnchorNode:
			n = v.Value
		case *ast.TagNode:
			n = v.Value
		default:
			return n
		}
	}
}

func position(tk *token.Token) (domain.Position, bool) {
	if tk == nil || tk.Position == nil {
		return domain.Position{}, false
	}
	return domain.Position{Line: tk.Position.Line, Column: tk.Position.Column}, true
}
