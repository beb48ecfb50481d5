package dom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/xaddr"
	"github.com/agentic-research/xaddr/internal/dom"
)

func TestParse_Structure(t *testing.T) {
	doc, err := dom.ParseString("<a>aa<b attr='test'>b<!-- note -->c<c/></b>d</a>")
	require.NoError(t, err)

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "a", root.Name())
	assert.Equal(t, doc, root.Parent())

	children := root.Children()
	require.Len(t, children, 3)
	assert.Equal(t, xaddr.KindText, children[0].Kind())
	assert.Equal(t, "aa", children[0].Data())
	assert.Equal(t, xaddr.KindElement, children[1].Kind())
	assert.Equal(t, xaddr.KindText, children[2].Kind())
	assert.Equal(t, "d", children[2].Data())

	b := children[1].(*dom.Element)
	assert.Equal(t, xaddr.Node(root), b.Parent())

	attr := b.Attr("attr")
	require.NotNil(t, attr)
	assert.Equal(t, "test", attr.Data())
	assert.Equal(t, xaddr.Node(b), attr.OwnerElement())

	inner := b.Children()
	require.Len(t, inner, 4)
	assert.Equal(t, xaddr.KindText, inner[0].Kind())
	assert.Equal(t, xaddr.KindComment, inner[1].Kind())
	assert.Equal(t, " note ", inner[1].Data())
	assert.Equal(t, xaddr.KindText, inner[2].Kind())
	assert.Equal(t, xaddr.KindElement, inner[3].Kind())
}

func TestParse_Prolog(t *testing.T) {
	doc, err := dom.ParseString(
		`<?xml version="1.0"?><!-- top --><?target data?><!DOCTYPE a><a/>`)
	require.NoError(t, err)

	children := doc.Children()
	require.Len(t, children, 4, "the XML declaration is not a tree node")
	assert.Equal(t, xaddr.KindComment, children[0].Kind())
	assert.Equal(t, xaddr.KindProcInst, children[1].Kind())
	assert.Equal(t, "target", children[1].Name())
	assert.Equal(t, "data", children[1].Data())
	assert.Equal(t, xaddr.KindDoctype, children[2].Kind())
	assert.Equal(t, "a", children[2].Name())
	assert.Equal(t, xaddr.KindElement, children[3].Kind())

	for _, c := range children {
		assert.Equal(t, xaddr.Node(doc), c.Parent())
	}
}

func TestParse_DoctypeInternalSubset(t *testing.T) {
	doc, err := dom.ParseString("<!DOCTYPE a [ <!ELEMENT a (#PCDATA)>]><a>text</a>")
	require.NoError(t, err)

	dt := doc.Children()[0]
	require.Equal(t, xaddr.KindDoctype, dt.Kind())
	assert.Equal(t, "a", dt.Name())
	assert.Contains(t, dt.Data(), "ELEMENT")
}

func TestParse_NamespaceAttrs(t *testing.T) {
	doc, err := dom.ParseString(`<a xmlns="http://def" xmlns:d="http://pre" attr="v"/>`)
	require.NoError(t, err)

	attrs := doc.Root().Attributes()
	require.Len(t, attrs, 3)

	byName := map[string]xaddr.Attr{}
	for _, a := range attrs {
		byName[a.Name()] = a
	}

	def, ok := byName["xmlns"]
	require.True(t, ok)
	assert.True(t, xaddr.IsNamespaceAttr(def))

	pre, ok := byName["xmlns:d"]
	require.True(t, ok)
	assert.Equal(t, xaddr.XMLNSNamespace, pre.Namespace())
	assert.True(t, xaddr.IsNamespaceAttr(pre))

	plain, ok := byName["attr"]
	require.True(t, ok)
	assert.False(t, xaddr.IsNamespaceAttr(plain))
}

func TestParse_Errors(t *testing.T) {
	for _, bad := range []string{
		"",
		"   ",
		"x<a/>",
		"<a/><b/>",
		"<a>",
	} {
		_, err := dom.ParseString(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParse_WhitespaceOutsideRootIgnored(t *testing.T) {
	doc, err := dom.ParseString("\n  <a/>\n")
	require.NoError(t, err)
	require.Len(t, doc.Children(), 1)
}

func TestParse_ByteOrderMarkIgnored(t *testing.T) {
	doc, err := dom.ParseString("\uFEFF<a>x</a>")
	require.NoError(t, err)
	require.Len(t, doc.Children(), 1)
	assert.Equal(t, "a", doc.Root().Name())
}
