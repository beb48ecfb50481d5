package xaddr

import (
	"fmt"
	"unicode/utf8"
)

// ChildNumber computes the 1-based XPath sibling index of one node under
// node() addressing, together with the 1-based character offset of the
// node's own content within the coalesced text run it belongs to (the
// offset is only meaningful for text-like nodes).
//
// The parent's child list is snapshotted at construction. A ChildNumber
// observed before a tree mutation is stale afterwards; staleness is not
// detected, callers must not interleave index queries with mutation.
type ChildNumber struct {
	node     Node
	siblings []Node

	childNo int
	charPos int
	done    bool
}

// NewChildNumber binds a ChildNumber to n and a snapshot of its parent's
// current child sequence. It fails with ErrInvalidArgument if n is nil or
// has no parent; documents and document type nodes are rejected upstream by
// Path and are never passed here.
func NewChildNumber(n Node) (*ChildNumber, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil node", ErrInvalidArgument)
	}
	parent := n.Parent()
	if parent == nil {
		return nil, fmt.Errorf("%w: node %q has no parent", ErrInvalidArgument, n.Name())
	}
	children := parent.Children()
	snapshot := make([]Node, len(children))
	copy(snapshot, children)
	return &ChildNumber{node: n, siblings: snapshot}, nil
}

// Index returns the XPath child number of the node: its position in the
// logical (coalesced) sibling list an XPath engine would see. The result is
// memoized for the lifetime of the instance.
func (c *ChildNumber) Index() int {
	if !c.done {
		c.resolve()
	}
	return c.childNo
}

// CharPos returns the 1-based character offset of the node's own content
// within the merged text run addressed by Index. It is 1 for nodes that do
// not belong to a text run.
func (c *ChildNumber) CharPos() int {
	if !c.done {
		c.resolve()
	}
	return c.charPos
}

func (c *ChildNumber) resolve() {
	c.charPos = charPos(c.siblings, c.computeChildNumber())
	c.done = true
}

// computeChildNumber scans the sibling snapshot in document order, counting
// only siblings that start a logical node. It returns the node's physical
// position, which the char-offset scan starts from.
func (c *ChildNumber) computeChildNumber() int {
	childNo := 1
	var pos int
	for pos = 0; pos < len(c.siblings); pos++ {
		if c.siblings[pos] == c.node {
			// A non-countable target shares its index with the
			// countable node that starts its coalesced run. With no
			// preceding countable anchor the node is an empty text
			// node, which is not separately addressable; the
			// arithmetic then yields 0 and callers must not rely
			// on it.
			if !countable(c.siblings, pos) {
				childNo--
			}
			break
		}
		if countable(c.siblings, pos) {
			childNo++
		}
	}
	c.childNo = childNo
	return pos
}

// countable reports whether the sibling at position i contributes a logical
// node under XPath's node() test. A text or CDATA sibling that directly
// follows another text-like sibling continues a coalesced run rather than
// starting one; zero-length text nodes and document type declarations are
// invisible to XPath entirely.
func countable(siblings []Node, i int) bool {
	curr := siblings[i]
	if i > 0 && IsText(curr) && IsText(siblings[i-1]) {
		return false
	}
	if IsEmptyText(curr) {
		return false
	}
	return curr.Kind() != KindDoctype
}

// charPos sums the content lengths of the unbroken run of text-like
// siblings directly preceding position pos. Offsets count characters, not
// bytes, matching XPath's substring semantics.
func charPos(siblings []Node, pos int) int {
	offset := 1
	for i := pos - 1; i >= 0; i-- {
		if !IsText(siblings[i]) {
			break
		}
		offset += utf8.RuneCountInString(siblings[i].Data())
	}
	return offset
}
