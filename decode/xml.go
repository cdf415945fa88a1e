package decode

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Node is a generic parsed XML element: name, attributes, accumulated
// character data, and child elements in document order. It is the decoded
// form of entries whose structure is not known ahead of time (manifests,
// result metadata, per-coordinate sub-documents).
type Node struct {
	Name     string
	Attr     map[string]string
	Text     string
	Children []*Node
}

// Find returns the first direct child with the given element name.
func (n *Node) Find(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}

	return nil
}

// FindDescendant returns the first descendant with the given element name,
// searching depth-first in document order.
func (n *Node) FindDescendant(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
		if found := c.FindDescendant(name); found != nil {
			return found
		}
	}

	return nil
}

// FindText returns the whitespace-trimmed text of the first direct child
// with the given name, or "" when the child is absent.
func (n *Node) FindText(name string) string {
	c := n.Find(name)
	if c == nil {
		return ""
	}

	return strings.TrimSpace(c.Text)
}

// ParseNode parses an XML document into its root Node.
func ParseNode(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var root *Node
	var stack []*Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local}
			if len(t.Attr) > 0 {
				n.Attr = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					n.Attr[a.Name.Local] = a.Value
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("parse xml: multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New("parse xml: no root element")
	}

	return root, nil
}

// decodeXMLValue decodes entry bytes as an XML document. The buffer is
// sliced from the first '<' byte (the vendor prefixes documents with
// binary framing), validated as UTF-8, and parsed into a node tree.
func decodeXMLValue(raw []byte) *Value {
	start := bytes.IndexByte(raw, '<')
	if start < 0 {
		return FailedValue(errors.New("decode xml: no document start"))
	}

	body := raw[start:]
	if !utf8.Valid(body) {
		return FailedValue(errors.New("decode xml: invalid UTF-8"))
	}

	root, err := ParseNode(body)
	if err != nil {
		return FailedValue(err)
	}

	return XMLValue(root)
}
