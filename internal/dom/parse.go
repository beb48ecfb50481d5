package dom

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/agentic-research/xaddr"
)

// Parse builds a Document from XML input. Comments and processing
// instructions are retained as nodes, and a <!DOCTYPE …> declaration in the
// prolog becomes a doctype node, so positional addressing sees the same
// prolog an XPath engine would. The XML declaration itself is not part of
// the tree.
func Parse(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)

	doc := NewDocument()
	var stack []*Element

	appendNode := func(n xaddr.Node) {
		if len(stack) > 0 {
			stack[len(stack)-1].AppendChild(n)
			return
		}
		doc.AppendChild(n)
	}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) == 0 && doc.Root() != nil {
				return nil, fmt.Errorf("parse xml: unexpected element %q after document end", t.Name.Local)
			}
			el := NewElementNS(t.Name.Space, t.Name.Local)
			setAttrs(el, t.Attr)
			appendNode(el)
			stack = append(stack, el)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("parse xml: unexpected end element %q", t.Name.Local)
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				// Only insignificant whitespace may appear outside
				// the root element.
				if !isIgnorable(string(t)) {
					return nil, fmt.Errorf("parse xml: character data outside root element")
				}
				continue
			}
			appendNode(NewText(string(t)))

		case xml.Comment:
			appendNode(NewComment(string(t)))

		case xml.ProcInst:
			if t.Target == "xml" && len(stack) == 0 {
				continue // XML declaration, not a tree node
			}
			appendNode(NewProcInst(t.Target, string(t.Inst)))

		case xml.Directive:
			if dt, ok := doctypeOf(string(t)); ok {
				appendNode(dt)
			}
		}
	}

	if len(stack) != 0 {
		return nil, fmt.Errorf("parse xml: unclosed element %q", stack[len(stack)-1].Name())
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("parse xml: no root element")
	}
	return doc, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// setAttrs converts decoder attributes. The Go decoder resolves attribute
// namespaces to URIs; declarations of prefixed namespaces arrive with the
// literal space "xmlns" and are mapped to the reserved xmlns namespace,
// while a default "xmlns" declaration keeps its plain name, matching a tree
// built without namespace awareness.
func setAttrs(el *Element, attrs []xml.Attr) {
	for _, a := range attrs {
		switch {
		case a.Name.Space == "xmlns":
			el.SetAttrNS(xaddr.XMLNSNamespace, "xmlns:"+a.Name.Local, a.Value)
		default:
			el.SetAttrNS(a.Name.Space, a.Name.Local, a.Value)
		}
	}
}

// doctypeOf recognizes a DOCTYPE directive and converts it to a node.
// Other directives have no DOM representation and are dropped.
func doctypeOf(directive string) (*Doctype, bool) {
	trimmed := strings.TrimSpace(directive)
	if !strings.HasPrefix(trimmed, "DOCTYPE") {
		return nil, false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "DOCTYPE"))
	name := rest
	if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
		name = rest[:i]
	}
	return NewDoctype(name, trimmed), true
}

func isIgnorable(data string) bool {
	for _, r := range data {
		if r == '\uFEFF' { // BOM
			continue
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
