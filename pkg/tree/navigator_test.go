package tree_test

import (
	"errors"
	"testing"

	"github.com/aretw0/deeds/pkg/arena"
	"github.com/aretw0/deeds/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const faqDoc = `
FAQ:
  Payments:
    Do you take cards?: "Yes, all major cards."
    Can I pay later?: "No."
  Opening hours: "Nine to five."
  Parking: {}
`

func TestNavigator_UnknownLabel(t *testing.T) {
	nav := build(t, faqDoc)

	children, err := nav.Children("DoesNotExist")
	assert.Nil(t, children)
	require.ErrorIs(t, err, tree.ErrUnknownLabel)

	var ie *tree.IndexError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "DoesNotExist", ie.Label)
	assert.Contains(t, err.Error(), `"DoesNotExist"`)

	bearing, err := nav.IsAnswerBearing("DoesNotExist")
	assert.False(t, bearing)
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "DoesNotExist", ie.Label)
}

func TestNavigator_Contains(t *testing.T) {
	nav := build(t, faqDoc)

	for _, label := range []string{"FAQ", "Payments", "Can I pay later?", "No.", "Parking"} {
		assert.True(t, nav.Contains(label), label)
	}
	assert.False(t, nav.Contains("no."), "labels are case sensitive")
	assert.False(t, nav.Contains(""))
}

func TestNavigator_IsAnswerBearing(t *testing.T) {
	nav := build(t, faqDoc)

	cases := map[string]bool{
		"Do you take cards?": true,
		"Opening hours":      true,
		"Payments":           false,
		"Parking":            false,
		"No.":                false,
	}
	for label, want := range cases {
		got, err := nav.IsAnswerBearing(label)
		require.NoError(t, err, label)
		assert.Equal(t, want, got, label)
	}
}

func TestNavigator_ChildrenOfLeaf(t *testing.T) {
	nav := build(t, faqDoc)

	children, err := nav.Children("Parking")
	require.NoError(t, err)
	assert.Empty(t, children)

	children, err = nav.Children("Yes, all major cards.")
	require.NoError(t, err)
	assert.Empty(t, children)
}

func TestNavigator_IDQueries(t *testing.T) {
	nav := build(t, faqDoc)

	id, ok := nav.Lookup("Payments")
	require.True(t, ok)
	assert.Equal(t, arena.NodeID(1), id)

	parent, ok := nav.Parent(id)
	require.True(t, ok)
	label, ok := nav.Label(parent)
	require.True(t, ok)
	assert.Equal(t, "FAQ", label)

	_, ok = nav.Lookup("DoesNotExist")
	assert.False(t, ok)
	_, ok = nav.Label(arena.NodeID(nav.Len()))
	assert.False(t, ok)
	_, ok = nav.Label(arena.NoParent)
	assert.False(t, ok)
	_, ok = nav.Parent(arena.NodeID(99))
	assert.False(t, ok)
}

func TestNavigator_EmptyTree(t *testing.T) {
	for name, nav := range map[string]*tree.Navigator{
		"empty mapping": build(t, `{}`),
		"nil arena":     tree.NewNavigator(nil, nil),
	} {
		t.Run(name, func(t *testing.T) {
			assert.Zero(t, nav.Len())
			assert.Empty(t, nav.Entries())

			_, err := nav.RootChildren()
			var ie *tree.IndexError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, "root", ie.Label)
			assert.ErrorIs(t, err, tree.ErrUnknownLabel)
		})
	}
}

func TestNavigator_EmptyCategories(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want []string
	}{
		{"none", `{"A": {"Q": "x"}}`, nil},
		{"nested", faqDoc, []string{"Parking"}},
		{"top level", `{"A": "x", "B": {}}`, []string{"B"}},
		{"only key", `{"B": {}}`, []string{"B"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			empty, err := build(t, tc.doc).EmptyCategories()
			require.NoError(t, err)
			assert.Equal(t, tc.want, empty)
		})
	}
}

func TestNavigator_Entries(t *testing.T) {
	nav := build(t, faqDoc)

	entries := nav.Entries()
	require.Len(t, entries, nav.Len())

	first := entries[0]
	assert.Equal(t, tree.Entry{ID: 0, Parent: arena.NoParent, Label: "FAQ"}, first)

	last := entries[len(entries)-1]
	assert.Equal(t, "Parking", last.Label)
	assert.Equal(t, 1, last.Depth)
	assert.True(t, last.Leaf)
	assert.False(t, last.Answer)

	var answers int
	for _, e := range entries {
		if e.Answer {
			answers++
		}
	}
	assert.Equal(t, 3, answers)
}
