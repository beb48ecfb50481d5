package xaddr

import (
	"fmt"
	"strconv"
	"strings"
)

// Step is one parsed component of a canonical path.
type Step struct {
	// Index is the 1-based node() position. Zero for attribute steps.
	Index int
	// Attr is the attribute name of an "@name" step.
	Attr string
}

// ParsePath parses a path produced by Path into its steps. The accepted
// grammar is exactly what Path emits: "/" or a sequence of "/node()[i]"
// steps optionally ending in "/@name". Anything else fails with
// ErrInvalidArgument.
func ParsePath(path string) ([]Step, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("%w: path %q must start with '/'", ErrInvalidArgument, path)
	}
	if path == "/" {
		return nil, nil
	}
	parts := strings.Split(path[1:], "/")
	steps := make([]Step, 0, len(parts))
	for i, part := range parts {
		switch {
		case strings.HasPrefix(part, "@"):
			if i != len(parts)-1 {
				return nil, fmt.Errorf("%w: attribute step %q must be last in %q", ErrInvalidArgument, part, path)
			}
			if len(part) == 1 {
				return nil, fmt.Errorf("%w: empty attribute name in %q", ErrInvalidArgument, path)
			}
			steps = append(steps, Step{Attr: part[1:]})
		case strings.HasPrefix(part, "node()[") && strings.HasSuffix(part, "]"):
			raw := part[len("node()[") : len(part)-1]
			idx, err := strconv.Atoi(raw)
			if err != nil || idx < 1 || raw != strconv.Itoa(idx) {
				return nil, fmt.Errorf("%w: bad node index %q in %q", ErrInvalidArgument, raw, path)
			}
			steps = append(steps, Step{Index: idx})
		default:
			return nil, fmt.Errorf("%w: bad step %q in %q", ErrInvalidArgument, part, path)
		}
	}
	return steps, nil
}

// Resolve evaluates a canonical path against doc and returns the node it
// addresses. Index steps apply the same coalescing rules as ChildNumber, so
// a step that lands on a text run returns the run's anchor: the first
// physical node of the run. Resolving "/" returns doc itself.
func Resolve(doc Node, path string) (Node, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrInvalidArgument)
	}
	steps, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	cur := doc
	for _, step := range steps {
		if step.Attr != "" {
			attr, err := findAttr(cur, step.Attr)
			if err != nil {
				return nil, fmt.Errorf("%w at %q", err, path)
			}
			return attr, nil
		}
		child, err := logicalChild(cur, step.Index)
		if err != nil {
			return nil, fmt.Errorf("%w at %q", err, path)
		}
		cur = child
	}
	return cur, nil
}

// logicalChild returns the countable child of parent with the given 1-based
// logical index.
func logicalChild(parent Node, index int) (Node, error) {
	siblings := parent.Children()
	count := 0
	for i, child := range siblings {
		if countable(siblings, i) {
			count++
			if count == index {
				return child, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: node()[%d] out of range under %q", ErrInvalidArgument, index, parent.Name())
}

// findAttr looks up an attribute on an element node by its full name,
// falling back to the local name.
func findAttr(n Node, name string) (Node, error) {
	el, ok := n.(Element)
	if !ok {
		return nil, fmt.Errorf("%w: @%s on non-element node", ErrInvalidArgument, name)
	}
	for _, a := range el.Attributes() {
		if a.Name() == name || LocalName(a) == name {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: no attribute %q on element %q", ErrInvalidArgument, name, n.Name())
}
