package dom

import (
	"fmt"

	"github.com/agentic-research/xaddr"
)

// Walk visits n and every node beneath it in document order, calling fn for
// each. Element attributes are visited directly after their element. The
// walk stops at the first error, which is returned.
func Walk(n xaddr.Node, fn func(xaddr.Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	if el, ok := n.(xaddr.Element); ok {
		for _, a := range el.Attributes() {
			if err := fn(a); err != nil {
				return err
			}
		}
	}
	for _, c := range n.Children() {
		if err := Walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// WalkAddressable visits every node of the document that owns a distinct
// canonical path, paired with that path. The document itself is skipped
// (its path is always "/"), doctype nodes are unaddressable, and text nodes
// that continue a coalesced run share their anchor's path and are skipped.
func WalkAddressable(doc *Document, fn func(path string, n xaddr.Node) error) error {
	return Walk(doc, func(n xaddr.Node) error {
		switch n.Kind() {
		case xaddr.KindDocument, xaddr.KindDoctype:
			return nil
		}
		if xaddr.IsText(n) && !anchorsRun(n) {
			return nil
		}
		path, err := xaddr.Path(n)
		if err != nil {
			return fmt.Errorf("path of %s node %q: %w", n.Kind(), n.Name(), err)
		}
		return fn(path, n)
	})
}

// anchorsRun reports whether a text-like node starts its coalesced run and
// has content an XPath engine can see. The rule matches the countability
// predicate of the path computation: a text node directly preceded by
// another text-like sibling is a continuation, not an anchor.
func anchorsRun(n xaddr.Node) bool {
	if xaddr.IsEmptyText(n) {
		return false
	}
	parent := n.Parent()
	if parent == nil {
		return false
	}
	siblings := parent.Children()
	for i, s := range siblings {
		if s == n {
			return i == 0 || !xaddr.IsText(siblings[i-1])
		}
	}
	return false
}

// Normalize merges adjacent sibling text nodes and removes zero-length text
// nodes throughout the subtree, mirroring DOM normalize(). CDATA sections
// are left intact. Child numbers computed before normalization remain valid
// afterwards; physical positions and char offsets do not.
func Normalize(n xaddr.Node) {
	switch t := n.(type) {
	case *Document:
		t.children = normalizeChildren(t, t.children)
	case *Element:
		t.children = normalizeChildren(t, t.children)
	}
}

func normalizeChildren(parent xaddr.Node, children []xaddr.Node) []xaddr.Node {
	out := children[:0]
	for _, c := range children {
		txt, ok := c.(*Text)
		if !ok || txt.cdata {
			Normalize(c)
			out = append(out, c)
			continue
		}
		if txt.data == "" {
			txt.parent = nil
			continue
		}
		if len(out) > 0 {
			if prev, ok := out[len(out)-1].(*Text); ok && !prev.cdata {
				prev.data += txt.data
				txt.parent = nil
				continue
			}
		}
		out = append(out, txt)
	}
	return out
}
