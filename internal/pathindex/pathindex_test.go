package pathindex_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/xaddr"
	"github.com/agentic-research/xaddr/internal/dom"
	"github.com/agentic-research/xaddr/internal/pathindex"
)

func buildIndex(t *testing.T, xml string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "index.db")

	w, err := pathindex.Create(dbPath)
	require.NoError(t, err)

	doc, err := dom.ParseString(xml)
	require.NoError(t, err)

	require.NoError(t, w.IndexDocument(doc))
	require.NoError(t, w.Close())
	return dbPath
}

func TestIndexAndLookup(t *testing.T) {
	dbPath := buildIndex(t, `<r x="1"><a>hi</a><a/><!--c--></r>`)

	db, err := pathindex.Open(dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	e, err := pathindex.Lookup(db, "/node()[1]/node()[1]/node()[1]")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, xaddr.KindText, e.Kind)
	assert.Equal(t, "hi", e.Content)

	e, err = pathindex.Lookup(db, "/node()[1]/@x")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, xaddr.KindAttribute, e.Kind)
	assert.Equal(t, "x", e.Name)
	assert.Equal(t, "1", e.Content)

	e, err = pathindex.Lookup(db, "/node()[9]")
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestPathsByName(t *testing.T) {
	dbPath := buildIndex(t, `<r x="1"><a>hi</a><a/><!--c--><b><a/></b></r>`)

	db, err := pathindex.Open(dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	paths, err := pathindex.PathsByName(db, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/node()[1]/node()[1]",
		"/node()[1]/node()[2]",
		"/node()[1]/node()[4]/node()[1]",
	}, paths, "all occurrences, in document order")

	paths, err = pathindex.PathsByName(db, "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"/node()[1]/@x"}, paths)

	// Text and comment nodes carry "#"-prefixed names and are not indexed
	// by name; the paths themselves are still in the nodes table.
	paths, err = pathindex.PathsByName(db, "#text")
	require.NoError(t, err)
	assert.Empty(t, paths)

	paths, err = pathindex.PathsByName(db, "nosuch")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestIndexedTextIsRunContent(t *testing.T) {
	dbPath := buildIndex(t, `<r>hel<![CDATA[lo]]></r>`)

	db, err := pathindex.Open(dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	e, err := pathindex.Lookup(db, "/node()[1]/node()[1]")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "hello", e.Content)
}
