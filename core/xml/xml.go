// Package xml parses corpus XML with XPath queries on top of the
// standard decoder, which never fetches external entities. Check
// additionally refuses documents that rely on internal entity
// definitions, so entity tricks in downloaded corpora fail early.
package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Check scans data for well-formedness without building a tree.
// Internal entities are not expanded, so documents relying on them are
// rejected along with malformed markup. The returned error carries the
// offending line when the decoder reports one.
func Check(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	for {
		if _, err := dec.Token(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// Document is a parsed XML tree queryable by XPath.
type Document struct {
	root *xmlquery.Node
}

// Node wraps one node of a Document.
type Node struct {
	node *xmlquery.Node
}

// Parse builds a queryable Document from data.
func Parse(data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// compile rejects bad XPath expressions before they reach the query
// engine, which reports them less usefully.
func compile(expr string) error {
	if _, err := xpath.Compile(expr); err != nil {
		return fmt.Errorf("invalid xpath: %w", err)
	}
	return nil
}

// XPath returns every node matching expr.
func (d *Document) XPath(expr string) ([]*Node, error) {
	if err := compile(expr); err != nil {
		return nil, err
	}
	nodes, err := xmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = &Node{node: n}
	}
	return out, nil
}

// XPathFirst returns the first node matching expr, or nil when nothing
// matches.
func (d *Document) XPathFirst(expr string) (*Node, error) {
	if err := compile(expr); err != nil {
		return nil, err
	}
	node, err := xmlquery.Query(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}
	if node == nil {
		return nil, nil
	}
	return &Node{node: node}, nil
}

// Root returns the document's root element.
func (d *Document) Root() *Node {
	if d.root == nil {
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

// Name returns the element name.
func (n *Node) Name() string {
	if n.node == nil {
		return ""
	}
	return n.node.Data
}

// InnerText returns the concatenated text of the node and its
// descendants.
func (n *Node) InnerText() string {
	if n.node == nil {
		return ""
	}
	return n.node.InnerText()
}

// IsElement reports whether the node is an element.
func (n *Node) IsElement() bool {
	return n.node != nil && n.node.Type == xmlquery.ElementNode
}

// Next returns the following sibling of any type, or nil at the end.
// Milestone-style markup (paired empty elements bracketing text) is
// traversed by walking siblings until the closing marker.
func (n *Node) Next() *Node {
	if n.node == nil || n.node.NextSibling == nil {
		return nil
	}
	return &Node{node: n.node.NextSibling}
}

// Children returns the element children, skipping text and comments.
func (n *Node) Children() []*Node {
	if n.node == nil {
		return nil
	}
	var out []*Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			out = append(out, &Node{node: child})
		}
	}
	return out
}

// Attributes returns the node's attributes keyed by local name.
func (n *Node) Attributes() map[string]string {
	if n.node == nil {
		return nil
	}
	attrs := make(map[string]string, len(n.node.Attr))
	for _, attr := range n.node.Attr {
		attrs[attr.Name.Local] = attr.Value
	}
	return attrs
}

// Attr returns one attribute value by local name, empty when absent.
func (n *Node) Attr(name string) string {
	if n.node == nil {
		return ""
	}
	return n.node.SelectAttr(name)
}
