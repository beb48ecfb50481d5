package dom

import (
	"fmt"

	"github.com/agentic-research/xaddr"
)

// Copy returns a detached shallow copy of n: for elements the namespace and
// all attributes are preserved but children are not copied; attribute
// copies carry no owner element. Documents cannot be copied.
func Copy(n xaddr.Node) (xaddr.Node, error) {
	if n == nil {
		return nil, fmt.Errorf("copy: nil node")
	}
	switch n.Kind() {
	case xaddr.KindElement:
		cp := NewElementNS(n.Namespace(), n.Name())
		if el, ok := n.(xaddr.Element); ok {
			for _, a := range el.Attributes() {
				cp.SetAttrNS(a.Namespace(), a.Name(), a.Data())
			}
		}
		return cp, nil
	case xaddr.KindAttribute:
		return NewAttrNS(n.Namespace(), n.Name(), n.Data()), nil
	case xaddr.KindText:
		return NewText(n.Data()), nil
	case xaddr.KindCDATA:
		return NewCDATA(n.Data()), nil
	case xaddr.KindComment:
		return NewComment(n.Data()), nil
	case xaddr.KindProcInst:
		return NewProcInst(n.Name(), n.Data()), nil
	case xaddr.KindDoctype:
		return NewDoctype(n.Name(), n.Data()), nil
	default:
		return nil, fmt.Errorf("copy: cannot copy %s node", n.Kind())
	}
}
