// Package xmldiff compares two XML documents by canonical node path. It is
// a minimal consumer of the path computation: every addressable node of one
// document is located in the other via its path, which is the addressing
// scheme a full diff/patch tool would build on.
package xmldiff

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/agentic-research/xaddr"
	"github.com/agentic-research/xaddr/internal/dom"
)

// Op classifies a single change.
type Op int

const (
	// OpChanged reports a node present at the same path in both documents
	// with different kind, name or content.
	OpChanged Op = iota + 1
	// OpMissing reports a path addressable in A that does not resolve in B.
	OpMissing
	// OpAdded reports a path addressable in B that does not resolve in A.
	OpAdded
)

func (o Op) String() string {
	switch o {
	case OpChanged:
		return "changed"
	case OpMissing:
		return "missing"
	case OpAdded:
		return "added"
	default:
		return "unknown"
	}
}

// Change is one difference between the documents.
type Change struct {
	Path string
	Op   Op
	Kind xaddr.Kind
	// A and B carry the compared content where applicable: node data, or
	// the merged run content for text nodes.
	A, B string
	// Edits holds character-level edits for changed text-like content.
	Edits []diffmatchpatch.Diff
}

// Compare diffs two documents by path. Both trees are treated as immutable
// for the duration of the call.
func Compare(a, b *dom.Document) ([]Change, error) {
	var changes []Change

	seen := make(map[string]struct{})
	err := dom.WalkAddressable(a, func(path string, n xaddr.Node) error {
		seen[path] = struct{}{}
		other, err := xaddr.Resolve(b, path)
		if err != nil {
			changes = append(changes, Change{Path: path, Op: OpMissing, Kind: n.Kind(), A: content(n)})
			return nil
		}
		if ch, differs := compareNodes(path, n, other); differs {
			changes = append(changes, ch)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Second pass: anything addressable in b but absent from a.
	err = dom.WalkAddressable(b, func(path string, n xaddr.Node) error {
		if _, ok := seen[path]; ok {
			return nil
		}
		if _, err := xaddr.Resolve(a, path); err != nil {
			changes = append(changes, Change{Path: path, Op: OpAdded, Kind: n.Kind(), B: content(n)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return changes, nil
}

func compareNodes(path string, a, b xaddr.Node) (Change, bool) {
	ch := Change{Path: path, Op: OpChanged, Kind: a.Kind(), A: content(a), B: content(b)}
	if a.Kind() != b.Kind() && !(xaddr.IsText(a) && xaddr.IsText(b)) {
		return ch, true
	}
	if a.Name() != b.Name() && !xaddr.IsText(a) {
		return ch, true
	}
	if ch.A == ch.B {
		return Change{}, false
	}
	dmp := diffmatchpatch.New()
	ch.Edits = dmp.DiffMain(ch.A, ch.B, false)
	return ch, true
}

// content returns what positional addressing compares at a node: merged run
// content for text-like nodes, raw data otherwise.
func content(n xaddr.Node) string {
	if xaddr.IsText(n) {
		return xaddr.MergedText(n)
	}
	return n.Data()
}
