package xmldiff_test

import (
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/xaddr"
	"github.com/agentic-research/xaddr/internal/dom"
	"github.com/agentic-research/xaddr/internal/xmldiff"
)

func parse(t *testing.T, s string) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(s)
	require.NoError(t, err)
	return doc
}

func TestCompare_EqualDocuments(t *testing.T) {
	a := parse(t, `<r x="1"><a>hello</a><!--c--></r>`)
	b := parse(t, `<r x="1"><a>hello</a><!--c--></r>`)

	changes, err := xmldiff.Compare(a, b)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestCompare_ChangedText(t *testing.T) {
	a := parse(t, `<r><a>hello</a></r>`)
	b := parse(t, `<r><a>hallo</a></r>`)

	changes, err := xmldiff.Compare(a, b)
	require.NoError(t, err)
	require.Len(t, changes, 1)

	ch := changes[0]
	assert.Equal(t, "/node()[1]/node()[1]/node()[1]", ch.Path)
	assert.Equal(t, xmldiff.OpChanged, ch.Op)
	assert.Equal(t, xaddr.KindText, ch.Kind)
	assert.Equal(t, "hello", ch.A)
	assert.Equal(t, "hallo", ch.B)

	var dels, ins int
	for _, e := range ch.Edits {
		switch e.Type {
		case diffmatchpatch.DiffDelete:
			dels++
		case diffmatchpatch.DiffInsert:
			ins++
		}
	}
	assert.Positive(t, dels)
	assert.Positive(t, ins)
}

func TestCompare_ChangedTextAcrossSplitRuns(t *testing.T) {
	// The run content is what gets compared, regardless of how the text is
	// physically split into sibling nodes.
	a := parse(t, `<r>hel<![CDATA[lo]]></r>`)
	b := parse(t, `<r>hello</r>`)

	changes, err := xmldiff.Compare(a, b)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestCompare_MissingNodeAndAttribute(t *testing.T) {
	a := parse(t, `<r x="1"><b/><c/></r>`)
	b := parse(t, `<r x="1"><b/></r>`)

	changes, err := xmldiff.Compare(a, b)
	require.NoError(t, err)
	require.Len(t, changes, 1)

	assert.Equal(t, "/node()[1]/node()[2]", changes[0].Path)
	assert.Equal(t, xmldiff.OpMissing, changes[0].Op)
	assert.Equal(t, xaddr.KindElement, changes[0].Kind)

	a = parse(t, `<r x="1"/>`)
	b = parse(t, `<r/>`)

	changes, err = xmldiff.Compare(a, b)
	require.NoError(t, err)
	require.Len(t, changes, 1)

	assert.Equal(t, "/node()[1]/@x", changes[0].Path)
	assert.Equal(t, xmldiff.OpMissing, changes[0].Op)
	assert.Equal(t, xaddr.KindAttribute, changes[0].Kind)
	assert.Equal(t, "1", changes[0].A)
}

func TestCompare_AddedNode(t *testing.T) {
	a := parse(t, `<r/>`)
	b := parse(t, `<r><c/></r>`)

	changes, err := xmldiff.Compare(a, b)
	require.NoError(t, err)
	require.Len(t, changes, 1)

	assert.Equal(t, "/node()[1]/node()[1]", changes[0].Path)
	assert.Equal(t, xmldiff.OpAdded, changes[0].Op)
	assert.Equal(t, xaddr.KindElement, changes[0].Kind)
}

func TestCompare_ChangedKind(t *testing.T) {
	a := parse(t, `<r><!--note--></r>`)
	b := parse(t, `<r><c/></r>`)

	changes, err := xmldiff.Compare(a, b)
	require.NoError(t, err)
	require.Len(t, changes, 1)

	assert.Equal(t, xmldiff.OpChanged, changes[0].Op)
	assert.Equal(t, xaddr.KindComment, changes[0].Kind)
	assert.Equal(t, "note", changes[0].A)
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "changed", xmldiff.OpChanged.String())
	assert.Equal(t, "missing", xmldiff.OpMissing.String())
	assert.Equal(t, "added", xmldiff.OpAdded.String())
	assert.Equal(t, "unknown", xmldiff.Op(0).String())
}
