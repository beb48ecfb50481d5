// Package dom provides a small mutable XML tree that implements the
// read-only node contract consumed by xaddr. It exists so the CLI and tests
// have a concrete provider; the core works against any implementation of
// xaddr.Node.
package dom

import (
	"strings"

	"github.com/agentic-research/xaddr"
)

// child is implemented by every node type that can appear in a child list.
type child interface {
	xaddr.Node
	setParent(p xaddr.Node)
}

// Document is the root of a tree. Its children are the prolog nodes
// (comments, processing instructions, the doctype) and the root element.
type Document struct {
	children []xaddr.Node
}

func NewDocument() *Document { return &Document{} }

func (d *Document) Kind() xaddr.Kind       { return xaddr.KindDocument }
func (d *Document) Name() string           { return "#document" }
func (d *Document) LocalName() string      { return "" }
func (d *Document) Namespace() string      { return "" }
func (d *Document) Data() string           { return "" }
func (d *Document) Parent() xaddr.Node     { return nil }
func (d *Document) Children() []xaddr.Node { return d.children }

// AppendChild adds n as the document's last child and reparents it.
func (d *Document) AppendChild(n xaddr.Node) {
	if c, ok := n.(child); ok {
		c.setParent(d)
	}
	d.children = append(d.children, n)
}

// Root returns the document element, or nil if none has been added.
func (d *Document) Root() *Element {
	for _, c := range d.children {
		if el, ok := c.(*Element); ok {
			return el
		}
	}
	return nil
}

// Element is an element node with ordered children and named attributes.
type Element struct {
	name      string
	local     string
	namespace string
	attrs     []*Attr
	children  []xaddr.Node
	parent    xaddr.Node
}

// NewElement creates a detached element without a namespace. The name may
// carry a prefix; the local name is derived from it.
func NewElement(name string) *Element {
	return &Element{name: name, local: localOf(name)}
}

// NewElementNS creates a detached element in the given namespace.
func NewElementNS(ns, name string) *Element {
	return &Element{name: name, local: localOf(name), namespace: ns}
}

func (e *Element) Kind() xaddr.Kind       { return xaddr.KindElement }
func (e *Element) Name() string           { return e.name }
func (e *Element) LocalName() string      { return e.local }
func (e *Element) Namespace() string      { return e.namespace }
func (e *Element) Data() string           { return "" }
func (e *Element) Parent() xaddr.Node     { return e.parent }
func (e *Element) Children() []xaddr.Node { return e.children }

func (e *Element) setParent(p xaddr.Node) { e.parent = p }

// AppendChild adds n as the element's last child and reparents it.
func (e *Element) AppendChild(n xaddr.Node) {
	if c, ok := n.(child); ok {
		c.setParent(e)
	}
	e.children = append(e.children, n)
}

// Attributes returns the element's attributes in document order.
func (e *Element) Attributes() []xaddr.Attr {
	attrs := make([]xaddr.Attr, len(e.attrs))
	for i, a := range e.attrs {
		attrs[i] = a
	}
	return attrs
}

// SetAttr sets an attribute without a namespace, replacing any attribute
// with the same name. It returns the attribute node.
func (e *Element) SetAttr(name, value string) *Attr {
	return e.SetAttrNS("", name, value)
}

// SetAttrNS sets a namespaced attribute, replacing any attribute with the
// same namespace and name.
func (e *Element) SetAttrNS(ns, name, value string) *Attr {
	for _, a := range e.attrs {
		if a.name == name && a.namespace == ns {
			a.value = value
			return a
		}
	}
	a := &Attr{name: name, local: localOf(name), namespace: ns, value: value, owner: e}
	e.attrs = append(e.attrs, a)
	return a
}

// Attr returns the attribute with the given full name, or nil.
func (e *Element) Attr(name string) *Attr {
	for _, a := range e.attrs {
		if a.name == name {
			return a
		}
	}
	return nil
}

// Attr is an attribute node. Attributes are not children of their element;
// they are reachable through Attributes and point back via OwnerElement.
type Attr struct {
	name      string
	local     string
	namespace string
	value     string
	owner     *Element
}

// NewAttr creates a detached attribute, not associated with any element.
func NewAttr(name, value string) *Attr {
	return &Attr{name: name, local: localOf(name), value: value}
}

// NewAttrNS creates a detached namespaced attribute.
func NewAttrNS(ns, name, value string) *Attr {
	return &Attr{name: name, local: localOf(name), namespace: ns, value: value}
}

func (a *Attr) Kind() xaddr.Kind       { return xaddr.KindAttribute }
func (a *Attr) Name() string           { return a.name }
func (a *Attr) LocalName() string      { return a.local }
func (a *Attr) Namespace() string      { return a.namespace }
func (a *Attr) Data() string           { return a.value }
func (a *Attr) Parent() xaddr.Node     { return nil }
func (a *Attr) Children() []xaddr.Node { return nil }

func (a *Attr) OwnerElement() xaddr.Node {
	if a.owner == nil {
		return nil
	}
	return a.owner
}

// Text is a text or CDATA node. The XML parser only ever produces plain
// text (encoding/xml folds CDATA sections into character data); CDATA nodes
// are built programmatically via NewCDATA.
type Text struct {
	data   string
	cdata  bool
	parent xaddr.Node
}

func NewText(data string) *Text  { return &Text{data: data} }
func NewCDATA(data string) *Text { return &Text{data: data, cdata: true} }

func (t *Text) Kind() xaddr.Kind {
	if t.cdata {
		return xaddr.KindCDATA
	}
	return xaddr.KindText
}

func (t *Text) Name() string {
	if t.cdata {
		return "#cdata-section"
	}
	return "#text"
}

func (t *Text) LocalName() string      { return "" }
func (t *Text) Namespace() string      { return "" }
func (t *Text) Data() string           { return t.data }
func (t *Text) Parent() xaddr.Node     { return t.parent }
func (t *Text) Children() []xaddr.Node { return nil }

func (t *Text) setParent(p xaddr.Node) { t.parent = p }

// Comment is a comment node.
type Comment struct {
	data   string
	parent xaddr.Node
}

func NewComment(data string) *Comment { return &Comment{data: data} }

func (c *Comment) Kind() xaddr.Kind       { return xaddr.KindComment }
func (c *Comment) Name() string           { return "#comment" }
func (c *Comment) LocalName() string      { return "" }
func (c *Comment) Namespace() string      { return "" }
func (c *Comment) Data() string           { return c.data }
func (c *Comment) Parent() xaddr.Node     { return c.parent }
func (c *Comment) Children() []xaddr.Node { return nil }

func (c *Comment) setParent(p xaddr.Node) { c.parent = p }

// ProcInst is a processing instruction node. Name returns the target.
type ProcInst struct {
	target string
	data   string
	parent xaddr.Node
}

func NewProcInst(target, data string) *ProcInst {
	return &ProcInst{target: target, data: data}
}

func (p *ProcInst) Kind() xaddr.Kind       { return xaddr.KindProcInst }
func (p *ProcInst) Name() string           { return p.target }
func (p *ProcInst) LocalName() string      { return "" }
func (p *ProcInst) Namespace() string      { return "" }
func (p *ProcInst) Data() string           { return p.data }
func (p *ProcInst) Parent() xaddr.Node     { return p.parent }
func (p *ProcInst) Children() []xaddr.Node { return nil }

func (p *ProcInst) setParent(parent xaddr.Node) { p.parent = parent }

// Doctype is a document type declaration. Name returns the declared root
// element name; Data holds the raw declaration body.
type Doctype struct {
	name   string
	data   string
	parent xaddr.Node
}

func NewDoctype(name, data string) *Doctype {
	return &Doctype{name: name, data: data}
}

func (d *Doctype) Kind() xaddr.Kind       { return xaddr.KindDoctype }
func (d *Doctype) Name() string           { return d.name }
func (d *Doctype) LocalName() string      { return "" }
func (d *Doctype) Namespace() string      { return "" }
func (d *Doctype) Data() string           { return d.data }
func (d *Doctype) Parent() xaddr.Node     { return d.parent }
func (d *Doctype) Children() []xaddr.Node { return nil }

func (d *Doctype) setParent(p xaddr.Node) { d.parent = p }

func localOf(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}
