package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrUnparseable is returned when the source is not valid Python
var ErrUnparseable = errors.New("source does not parse as python")

// Function is a function definition found in the outline
type Function struct {
	Name   string   `json:"name"`
	Params []string `json:"params"`
	Line   int      `json:"line"`
}

// Signature renders the function as "def name(a, b)"
func (f Function) Signature() string {
	return fmt.Sprintf("def %s(%s)", f.Name, strings.Join(f.Params, ", "))
}

// Outline is the structural summary of a parsed sample.
// Every list is ordered breadth-first by statement nesting, then by source position.
type Outline struct {
	Functions    []Function `json:"functions"`
	Classes      []string   `json:"classes"`
	Loops        []int      `json:"loops"`
	Conditionals []int      `json:"conditionals"`
}

// FunctionNames returns the names of all functions in outline order
func (o *Outline) FunctionNames() []string {
	names := make([]string, 0, len(o.Functions))
	for _, fn := range o.Functions {
		names = append(names, fn.Name)
	}
	return names
}

// transparentNodes do not add a nesting level.
// They hold statement lists that belong directly to their parent statement.
var transparentNodes = map[string]bool{
	"block":                true,
	"decorated_definition": true,
	"else_clause":          true,
	"finally_clause":       true,
}

type visited struct {
	node  *sitter.Node
	depth int
}

// parseOutline parses the source with tree-sitter. A tree containing any
// error node, or a construct Python 3 rejects that the grammar still
// accepts, is rejected so callers can degrade gracefully.
func parseOutline(src string) (*Outline, error) {
	source := []byte(src)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() || rejected(root) {
		return nil, ErrUnparseable
	}

	var nodes []visited
	collect(root, 0, &nodes)
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].depth < nodes[j].depth })

	outline := &Outline{}
	for _, v := range nodes {
		node := v.node
		line := int(node.StartPoint().Row) + 1
		switch node.Type() {
		case "function_definition":
			if isAsync(node) {
				continue
			}
			name := node.ChildByFieldName("name")
			if name == nil {
				continue
			}
			outline.Functions = append(outline.Functions, Function{
				Name:   name.Content(source),
				Params: positionalParams(node.ChildByFieldName("parameters"), source),
				Line:   line,
			})
		case "class_definition":
			if name := node.ChildByFieldName("name"); name != nil {
				outline.Classes = append(outline.Classes, name.Content(source))
			}
		case "for_statement", "while_statement":
			if isAsync(node) {
				continue
			}
			outline.Loops = append(outline.Loops, line)
		case "if_statement", "elif_clause":
			outline.Conditionals = append(outline.Conditionals, line)
		}
	}
	return outline, nil
}

// collect walks the tree depth-first and records each node with its
// statement nesting depth; a stable sort on depth yields breadth-first order.
func collect(node *sitter.Node, depth int, out *[]visited) {
	if node == nil {
		return
	}
	childDepth := depth
	if !transparentNodes[node.Type()] {
		*out = append(*out, visited{node: node, depth: depth})
		childDepth = depth + 1
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		collect(node.NamedChild(i), childDepth, out)
	}
}

// legacyStatements are Python 2 statements the grammar still parses
var legacyStatements = map[string]bool{
	"print_statement": true,
	"exec_statement":  true,
}

// rejected reports syntax that parses without an error node but is not
// valid Python 3.
func rejected(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	if legacyStatements[node.Type()] {
		return true
	}
	if (node.Type() == "parameters" || node.Type() == "lambda_parameters") && defaultBeforeRequired(node) {
		return true
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if rejected(node.NamedChild(i)) {
			return true
		}
	}
	return false
}

// defaultBeforeRequired reports a parameter without a default following one
// with a default. The rule covers positional-only parameters as well and
// ends at the first "*" or "**".
func defaultBeforeRequired(params *sitter.Node) bool {
	seenDefault := false
	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(i)
		switch child.Type() {
		case "default_parameter", "typed_default_parameter":
			seenDefault = true
		case "identifier", "tuple_pattern":
			if seenDefault {
				return true
			}
		case "typed_parameter":
			first := child.NamedChild(0)
			if first != nil && first.Type() != "identifier" {
				return false
			}
			if seenDefault {
				return true
			}
		case "list_splat_pattern", "dictionary_splat_pattern", "keyword_separator":
			return false
		}
	}
	return false
}

func isAsync(node *sitter.Node) bool {
	first := node.Child(0)
	return first != nil && first.Type() == "async"
}

// positionalParams mirrors the regular positional arguments of a def:
// positional-only names before "/" and everything from "*" onwards are left out.
func positionalParams(params *sitter.Node, source []byte) []string {
	if params == nil {
		return nil
	}
	var names []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(i)
		switch child.Type() {
		case "identifier":
			names = append(names, child.Content(source))
		case "default_parameter", "typed_default_parameter":
			if name := child.ChildByFieldName("name"); name != nil {
				names = append(names, name.Content(source))
			}
		case "typed_parameter":
			first := child.NamedChild(0)
			if first == nil || first.Type() != "identifier" {
				return names
			}
			names = append(names, first.Content(source))
		case "positional_separator":
			names = nil
		case "list_splat_pattern", "dictionary_splat_pattern", "keyword_separator":
			return names
		}
	}
	return names
}
