package adapters

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"arxml-inspect/internal/types"
)

// xmlNode is a namespace-stripped element with its source position.
type xmlNode struct {
	name     string
	attrs    map[string]string
	text     strings.Builder
	children []*xmlNode
	loc      types.Location
}

func (n *xmlNode) child(name string) *xmlNode {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (n *xmlNode) childText(name string) string {
	if c := n.child(name); c != nil {
		return c.value()
	}
	return ""
}

// pathText follows a chain of child names, e.g. "DESC", "L-2".
func (n *xmlNode) pathText(names ...string) string {
	current := n
	for _, name := range names {
		current = current.child(name)
		if current == nil {
			return ""
		}
	}
	return current.value()
}

func (n *xmlNode) value() string {
	return strings.TrimSpace(n.text.String())
}

// find returns the first descendant, depth-first, accepted by match.
func (n *xmlNode) find(match func(*xmlNode) bool) *xmlNode {
	for _, c := range n.children {
		if match(c) {
			return c
		}
		if found := c.find(match); found != nil {
			return found
		}
	}
	return nil
}

// decodeXML reads the whole document into a node tree. Syntax errors are
// reported with the decoder position of the offending token.
func decodeXML(r io.Reader, source string) (*xmlNode, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	var root *xmlNode
	var stack []*xmlNode
	for {
		line, col := dec.InputPos()
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, syntaxError(dec, source, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := &xmlNode{
				name:  t.Name.Local,
				attrs: map[string]string{},
				loc:   types.Location{Line: line, Column: col},
			}
			for _, attr := range t.Attr {
				node.attrs[attr.Name.Local] = attr.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, &types.ParseError{Source: source, Line: line, Column: col, Msg: "multiple root elements"}
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}
	if len(stack) > 0 {
		line, col := dec.InputPos()
		return nil, &types.ParseError{Source: source, Line: line, Column: col, Msg: "unexpected end of document: unclosed element " + stack[len(stack)-1].name}
	}
	if root == nil {
		line, col := dec.InputPos()
		return nil, &types.ParseError{Source: source, Line: line, Column: col, Msg: "missing root element"}
	}
	return root, nil
}

func syntaxError(dec *xml.Decoder, source string, err error) error {
	line, col := dec.InputPos()
	var syntax *xml.SyntaxError
	if errors.As(err, &syntax) && syntax.Line > 0 && syntax.Line != line {
		line, col = syntax.Line, 0
	}
	return &types.ParseError{Source: source, Line: line, Column: col, Msg: err.Error(), Err: err}
}
