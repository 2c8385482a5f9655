// Package derivation models parse trees as a closed sum type and renders
// them as indented text.
//
// A tree is built from two variants: Terminal leaves carrying a matched value
// and Production nodes carrying an ordered list of children. Both implement
// Node; no other type can.
package derivation

import "strings"

// Node is either a *Terminal or a *Production.
type Node interface {
	// Name is the grammar symbol the node was derived from.
	Name() string
	node()
}

// Terminal is a leaf holding the text it matched.
type Terminal struct {
	Symbol string
	Value  string
}

// Production is an interior node expanded into Children, in order.
type Production struct {
	Symbol   string
	Children []Node
}

// Leaf returns a terminal node.
func Leaf(symbol, value string) *Terminal {
	return &Terminal{Symbol: symbol, Value: value}
}

// Expand returns a production node with the given children.
func Expand(symbol string, children ...Node) *Production {
	return &Production{Symbol: symbol, Children: children}
}

func (t *Terminal) Name() string { return t.Symbol }
func (*Terminal) node()          {}

func (p *Production) Name() string { return p.Symbol }
func (*Production) node()          {}

// Append adds children and returns p for chaining.
func (p *Production) Append(children ...Node) *Production {
	p.Children = append(p.Children, children...)
	return p
}

// Render draws the tree with box-drawing connectors, one node per line:
//
//	Token
//	├── Header
//	│   └── Segment: eyJhbGciOiJIUzI1NiJ9
//	└── Signature
//
// The output has no trailing newline. A nil node renders as "".
func Render(n Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(label(n))
	renderChildren(&b, n, "")
	return b.String()
}

func renderChildren(b *strings.Builder, n Node, prefix string) {
	p, ok := n.(*Production)
	if !ok {
		return
	}
	for i, c := range p.Children {
		connector, indent := "├── ", "│   "
		if i == len(p.Children)-1 {
			connector, indent = "└── ", "    "
		}
		b.WriteByte('\n')
		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(label(c))
		renderChildren(b, c, prefix+indent)
	}
}

func label(n Node) string {
	if t, ok := n.(*Terminal); ok {
		return t.Symbol + ": " + t.Value
	}
	return n.Name()
}
