package tree_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/deeds/pkg/arena"
	"github.com/aretw0/deeds/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, doc string) *tree.Navigator {
	t.Helper()
	nav, err := tree.Build(strings.NewReader(doc), tree.FormatAuto)
	require.NoError(t, err)
	return nav
}

func TestBuild_RoundTrip(t *testing.T) {
	nav := build(t, `{"CategoryA": {"Q1": "Answer1"}}`)

	children, err := nav.RootChildren()
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1"}, children)

	children, err = nav.Children("Q1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Answer1"}, children)

	bearing, err := nav.IsAnswerBearing("Q1")
	require.NoError(t, err)
	assert.True(t, bearing)

	bearing, err = nav.IsAnswerBearing("CategoryA")
	require.NoError(t, err)
	assert.False(t, bearing)
}

func TestBuild_DepthFirstOrder(t *testing.T) {
	doc := `{
	"Root": {
		"Zeta": {"Z1": "z-answer"},
		"Alpha": {"A1": "a-answer", "A2": "a2-answer"},
		"Mid": "mid-answer"
	}
}`
	nav := build(t, doc)

	children, err := nav.Children("Root")
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, children, "document order, not sorted")

	children, err = nav.Children("Alpha")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, children)

	// Pre-order: every node id follows its parent and precedes its next sibling subtree.
	var labels []string
	for _, e := range nav.Entries() {
		labels = append(labels, e.Label)
	}
	assert.Equal(t, []string{
		"Root",
		"Zeta", "Z1", "z-answer",
		"Alpha", "A1", "a-answer", "A2", "a2-answer",
		"Mid", "mid-answer",
	}, labels)

	assert.Equal(t, []arena.NodeID{2, 5, 7, 9}, nav.LeafParents())
}

func TestBuild_YAMLKeepsOrder(t *testing.T) {
	doc := `
Support:
  Shipping:
    How long does delivery take?: Three to five days.
  Returns:
    Can I return an item?: "Yes, within 30 days."
`
	nav := build(t, doc)

	children, err := nav.RootChildren()
	require.NoError(t, err)
	assert.Equal(t, []string{"Shipping", "Returns"}, children)

	children, err = nav.Children("Can I return an item?")
	require.NoError(t, err)
	assert.Equal(t, []string{"Yes, within 30 days."}, children)
}

func TestBuild_AutoFormatFallsBackToYAML(t *testing.T) {
	// Both start like JSON but only parse as YAML.
	cases := map[string]string{
		"quoted first key": "\"Payments\":\n  \"How do I pay?\": \"By card.\"\n",
		"flow mapping":     "{Payments: {How do I pay?: By card.}}",
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			nav := build(t, doc)

			children, err := nav.RootChildren()
			require.NoError(t, err)
			assert.Equal(t, []string{"How do I pay?"}, children)

			children, err = nav.Children("How do I pay?")
			require.NoError(t, err)
			assert.Equal(t, []string{"By card."}, children)
		})
	}
}

func TestBuild_AutoFormatKeepsJSONErrors(t *testing.T) {
	_, err := tree.Build(strings.NewReader(`{"A": {"Q": 42}}`), tree.FormatAuto)
	var fe *tree.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "number", fe.Kind)
	assert.Zero(t, fe.Line, "decoded as JSON, which carries no positions")
}

func TestBuild_YAMLDateIsText(t *testing.T) {
	nav := build(t, "Shipping:\n  When?: 2024-01-01\n")

	children, err := nav.Children("When?")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01"}, children)

	bearing, err := nav.IsAnswerBearing("When?")
	require.NoError(t, err)
	assert.True(t, bearing)
}

func TestBuild_FormatErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		kind string
		path []string
	}{
		{"number", `{"A": {"Q": 42}}`, "number", []string{"A", "Q"}},
		{"null", `{"A": null}`, "null", []string{"A"}},
		{"bool", `{"A": {"Q": true}}`, "boolean", []string{"A", "Q"}},
		{"list", `{"A": ["x", "y"]}`, "list", []string{"A"}},
		{"yaml list", "A:\n  - x\n", "list", []string{"A"}},
		{"top-level number", `7`, "number", nil},
		{"empty", ``, "empty document", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nav, err := tree.Build(strings.NewReader(tc.doc), tree.FormatAuto)
			assert.Nil(t, nav, "no partial tree on format errors")
			require.ErrorIs(t, err, tree.ErrFormat)

			var fe *tree.FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.kind, fe.Kind)
			assert.Equal(t, tc.path, fe.Path)
		})
	}
}

func TestBuild_YAMLFormatErrorHasPosition(t *testing.T) {
	_, err := tree.Build(strings.NewReader("A:\n  Q: 3.5\n"), tree.FormatYAML)

	var fe *tree.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 2, fe.Line)
	assert.Contains(t, fe.Error(), `"A > Q"`)
}

func TestBuild_SyntaxErrorIsNotFormatError(t *testing.T) {
	_, err := tree.Build(strings.NewReader(`{"A": `), tree.FormatJSON)
	require.Error(t, err)
	assert.NotErrorIs(t, err, tree.ErrFormat)
}

func TestBuild_TwoTopLevelKeys(t *testing.T) {
	// Each top-level key becomes its own root. The second root used to be reported
	// as id 0; it now gets its real position.
	nav := build(t, `{"CategoryA": "X", "CategoryB": "Y"}`)

	assert.True(t, nav.Contains("CategoryB"))

	id, ok := nav.Lookup("CategoryB")
	require.True(t, ok)
	assert.Equal(t, arena.NodeID(2), id)

	_, hasParent := nav.Parent(id)
	assert.False(t, hasParent)

	children, err := nav.Children("CategoryB")
	require.NoError(t, err)
	assert.Equal(t, []string{"Y"}, children)

	root, err := nav.Root()
	require.NoError(t, err)
	assert.Equal(t, "CategoryA", root, "the first inserted root wins")

	children, err = nav.RootChildren()
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, children)
}

func TestBuilder_AddReturnsRootIDs(t *testing.T) {
	doc, err := tree.Parse(strings.NewReader(`{"CategoryA": "X"}`), tree.FormatJSON)
	require.NoError(t, err)

	b := tree.NewBuilder()
	require.NoError(t, b.Add(doc, arena.NoParent))
	require.NoError(t, b.Add(doc, arena.NoParent))

	nav := b.Navigator()
	assert.Equal(t, 4, nav.Len())
	assert.Equal(t, []arena.NodeID{0, 2}, nav.LeafParents())
}

func TestBuild_TopLevelText(t *testing.T) {
	nav := build(t, `"just an answer"`)

	assert.Equal(t, 1, nav.Len())
	assert.Empty(t, nav.LeafParents())

	children, err := nav.RootChildren()
	require.NoError(t, err)
	assert.Empty(t, children)

	empty, err := nav.EmptyCategories()
	require.NoError(t, err)
	assert.Empty(t, empty, "a text document is not an empty category")
}

func TestBuildFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faq.yml")
	require.NoError(t, os.WriteFile(path, []byte("Help:\n  Hours?: Nine to five.\n"), 0o644))

	nav, err := tree.BuildFile(path)
	require.NoError(t, err)
	assert.True(t, nav.Contains("Nine to five."))

	_, err = tree.BuildFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, tree.FormatJSON, tree.FormatFromPath("db.JSON"))
	assert.Equal(t, tree.FormatYAML, tree.FormatFromPath("faq.yaml"))
	assert.Equal(t, tree.FormatYAML, tree.FormatFromPath("faq.yml"))
	assert.Equal(t, tree.FormatAuto, tree.FormatFromPath("faq"))
}
