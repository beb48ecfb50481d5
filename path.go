package xaddr

import (
	"fmt"
	"strconv"
)

// Path returns a canonical XPath expression that uniquely identifies n
// within its document. It is a pure function of the node's position in the
// tree at call time and never mutates the tree.
//
// For a text-like node the returned path addresses the whole coalesced text
// run the node belongs to; use ChildNumber.CharPos to locate the node's own
// content within it.
func Path(n Node) (string, error) {
	if n == nil {
		return "", fmt.Errorf("%w: nil node", ErrInvalidArgument)
	}

	switch n.Kind() {
	case KindAttribute:
		// Attributes have no parent in the sibling sense; they hang off
		// their owner element and are addressed by name. Names are
		// assumed unique per element, so two attributes differing only
		// in namespace produce the same path.
		a, ok := n.(Attr)
		if !ok {
			return "", fmt.Errorf("%w: attribute %q does not expose its owner", ErrDetachedNode, n.Name())
		}
		owner := a.OwnerElement()
		if owner == nil {
			return "", fmt.Errorf("%w: attribute %q", ErrDetachedNode, n.Name())
		}
		ownerPath, err := Path(owner)
		if err != nil {
			return "", err
		}
		return ownerPath + "/@" + n.Name(), nil

	case KindDocument:
		return "/", nil

	case KindDoctype:
		return "", ErrUnaddressable

	case KindElement, KindText, KindCDATA, KindComment, KindProcInst:
		parent := n.Parent()
		if parent == nil {
			return "", fmt.Errorf("%w: node %q has no parent", ErrInvalidArgument, n.Name())
		}
		cn, err := NewChildNumber(n)
		if err != nil {
			return "", err
		}
		step := "/node()[" + strconv.Itoa(cn.Index()) + "]"
		if parent.Kind() == KindDocument {
			return step, nil
		}
		parentPath, err := Path(parent)
		if err != nil {
			return "", err
		}
		return parentPath + step, nil

	default:
		return "", fmt.Errorf("%w: unknown node kind %d", ErrInvalidArgument, int(n.Kind()))
	}
}

// MergedText returns the full content of the coalesced text run containing
// n: the concatenation of the unbroken sequence of text-like siblings
// around it. For a non-text node it returns n's own data.
func MergedText(n Node) string {
	if n == nil {
		return ""
	}
	if !IsText(n) || n.Parent() == nil {
		return n.Data()
	}
	siblings := n.Parent().Children()
	pos := -1
	for i, s := range siblings {
		if s == n {
			pos = i
			break
		}
	}
	if pos < 0 {
		return n.Data()
	}
	start := pos
	for start > 0 && IsText(siblings[start-1]) {
		start--
	}
	var run string
	for i := start; i < len(siblings) && IsText(siblings[i]); i++ {
		run += siblings[i].Data()
	}
	return run
}
