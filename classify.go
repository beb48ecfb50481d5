package xaddr

// XMLNSNamespace is the reserved namespace URI of XML namespace
// declarations.
const XMLNSNamespace = "http://www.w3.org/2000/xmlns/"

// IsText reports whether n is a text or CDATA node. A nil node yields false.
func IsText(n Node) bool {
	if n == nil {
		return false
	}
	k := n.Kind()
	return k == KindText || k == KindCDATA
}

// IsEmptyText reports whether n is a zero-length text node. Such nodes do
// not exist in the XPath data model and are never separately addressable.
func IsEmptyText(n Node) bool {
	return n != nil && n.Kind() == KindText && len(n.Data()) == 0
}

// IsNamespaceAttr reports whether n is a namespace declaration: its
// namespace is the reserved xmlns namespace, its local name is "xmlns", or,
// for trees built without namespace awareness, its full name is "xmlns".
func IsNamespaceAttr(n Node) bool {
	if n == nil {
		return false
	}
	if ns := n.Namespace(); ns != "" {
		return ns == XMLNSNamespace || n.LocalName() == "xmlns"
	}
	return n.Name() == "xmlns"
}

// LocalName returns the node's local name, falling back to its full name
// when the local name is unavailable.
func LocalName(n Node) string {
	if n == nil {
		return ""
	}
	if ln := n.LocalName(); ln != "" {
		return ln
	}
	return n.Name()
}
