// Package xaddr computes canonical XPath expressions that uniquely address
// nodes inside a parsed XML document tree. Paths use purely positional
// node() steps ("/node()[1]/node()[2]/@attr"), which keeps the logic uniform
// across node kinds at the cost of readability.
//
// The package consumes a read-only tree abstraction (Node) and produces
// strings; it performs no parsing and no I/O. See internal/dom for a
// concrete provider.
package xaddr

import "errors"

// Kind classifies the nodes of the tree view consumed by this package.
type Kind int

const (
	KindElement Kind = iota + 1
	KindAttribute
	KindText
	KindCDATA
	KindComment
	KindProcInst
	KindDocument
	KindDoctype
)

var kindNames = map[Kind]string{
	KindElement:   "element",
	KindAttribute: "attribute",
	KindText:      "text",
	KindCDATA:     "cdata",
	KindComment:   "comment",
	KindProcInst:  "procinst",
	KindDocument:  "document",
	KindDoctype:   "doctype",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Node is the read-only contract a tree provider must satisfy. The tree is
// owned by its provider; this package holds only transient references for
// the duration of a single computation and never mutates the tree.
//
// Implementations must be comparable by identity (pointer receivers), as
// sibling matching relies on interface equality.
type Node interface {
	// Kind reports the node kind.
	Kind() Kind
	// Name returns the node name: the qualified name for elements and
	// attributes, the target for processing instructions. Empty for
	// other kinds.
	Name() string
	// LocalName returns the name without a namespace prefix. May be empty
	// when the tree was built without namespace awareness.
	LocalName() string
	// Namespace returns the namespace URI, or "" if none.
	Namespace() string
	// Data returns the textual content for text, CDATA, comment and
	// processing-instruction nodes, and the value for attributes.
	Data() string
	// Parent returns the parent node, or nil for documents, attributes
	// and detached nodes.
	Parent() Node
	// Children returns the ordered child sequence. Callers must treat the
	// returned slice as read-only.
	Children() []Node
}

// Attr is the extension interface attribute nodes implement.
type Attr interface {
	Node
	// OwnerElement returns the element the attribute belongs to, or nil
	// for a detached attribute.
	OwnerElement() Node
}

// Element is the extension interface element nodes implement. Resolve needs
// it to look up attributes by name.
type Element interface {
	Node
	// Attributes returns the element's attribute nodes.
	Attributes() []Attr
}

// Error kinds surfaced by this package. Every failure is local to the call
// that triggered it; there is no retry or partial result.
var (
	// ErrInvalidArgument reports a nil node, a node lacking required
	// parent context, or a malformed path string.
	ErrInvalidArgument = errors.New("xaddr: invalid argument")

	// ErrUnaddressable reports a document type node: XPath has no
	// construct that identifies one.
	ErrUnaddressable = errors.New("xaddr: document type nodes cannot be addressed")

	// ErrDetachedNode reports an attribute whose owner element cannot be
	// resolved.
	ErrDetachedNode = errors.New("xaddr: attribute has no owner element")
)
