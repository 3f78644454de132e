// Package renderspec describes the visual primitives a formula compiles to,
// decoupled from any live element.
package renderspec

import (
	"sort"
	"strings"

	"formulab/pkg/css"
)

// Node is one primitive in the render specification tree. ID is set only
// on the node that is the primary rendering of a document node; wrappers
// added for layout leave it empty.
type Node struct {
	Tag      Tag
	ID       string
	Class    string
	Style    css.Declarations
	Attrs    map[string]string
	Text     string // glyph text, leaf tags only
	Children []*Node
}

// Walk visits n and its descendants depth first, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// IDs returns the ids carried by the tree in depth-first order.
func (n *Node) IDs() []string {
	var ids []string
	n.Walk(func(x *Node) {
		if x.ID != "" {
			ids = append(ids, x.ID)
		}
	})
	return ids
}

// Find returns the node carrying id, or nil.
func (n *Node) Find(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Equal reports whether two trees are identical, ids included.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Tag != b.Tag || a.ID != b.ID || a.Class != b.Class || a.Text != b.Text ||
		len(a.Children) != len(b.Children) || !sameMap(a.Style, b.Style) || !sameMap(a.Attrs, b.Attrs) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

func sameMap[M ~map[string]string](a, b M) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}

// String serializes the tree as markup. Attributes are sorted, so equal
// trees always produce identical bytes.
func (n *Node) String() string {
	var sb strings.Builder
	serializeNode(&sb, n)
	return sb.String()
}

func serializeNode(sb *strings.Builder, n *Node) {
	sb.WriteByte('<')
	sb.WriteString(n.Tag.String())

	attrs := make(map[string]string, len(n.Attrs)+3)
	for k, v := range n.Attrs {
		attrs[k] = v
	}
	if n.ID != "" {
		attrs["id"] = n.ID
	}
	if n.Class != "" {
		attrs["class"] = n.Class
	}
	if len(n.Style) > 0 {
		attrs["style"] = n.Style.String()
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttr(attrs[k]))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	sb.WriteString(escapeText(n.Text))
	for _, c := range n.Children {
		serializeNode(sb, c)
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag.String())
	sb.WriteByte('>')
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
