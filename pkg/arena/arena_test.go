package arena_test

import (
	"testing"

	"github.com/aretw0/deeds/pkg/arena"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_AddNode_MonotonicIDs(t *testing.T) {
	a := arena.New[string]()

	root, err := a.AddNode("root", arena.NoParent)
	require.NoError(t, err)
	assert.Equal(t, arena.NodeID(0), root)

	for i, label := range []string{"a", "b", "c"} {
		id, err := a.AddNode(label, root)
		require.NoError(t, err)
		assert.Equal(t, arena.NodeID(i+1), id)
	}
	assert.Equal(t, 4, a.Len())
}

func TestArena_AddNode_UnknownParent(t *testing.T) {
	a := arena.New[string]()
	_, err := a.AddNode("root", arena.NoParent)
	require.NoError(t, err)

	for _, parent := range []arena.NodeID{1, 42, -7} {
		_, err := a.AddNode("orphan", parent)
		assert.ErrorIs(t, err, arena.ErrUnknownParent)
	}

	// Failed insertions leave the arena untouched.
	assert.Equal(t, 1, a.Len())
	assert.False(t, a.Contains("orphan"))
	children, ok := a.ChildrenByID(0)
	require.True(t, ok)
	assert.Empty(t, children)
}

func TestArena_SecondRootGetsItsRealID(t *testing.T) {
	a := arena.New[string]()

	first, err := a.AddNode("CategoryA", arena.NoParent)
	require.NoError(t, err)
	_, err = a.AddNode("X", first)
	require.NoError(t, err)

	second, err := a.AddNode("CategoryB", arena.NoParent)
	require.NoError(t, err)

	assert.Equal(t, arena.NodeID(2), second)
	got, ok := a.Get(second)
	require.True(t, ok)
	assert.Equal(t, "CategoryB", got)

	rootValue, ok := a.RootValue()
	require.True(t, ok)
	assert.Equal(t, "CategoryA", rootValue, "the first parentless node is the root")
}

func TestArena_ChildrenKeepInsertionOrder(t *testing.T) {
	a := arena.New[string]()
	root, _ := a.AddNode("root", arena.NoParent)
	q1, _ := a.AddNode("q1", root)
	q2, _ := a.AddNode("q2", root)
	ans, _ := a.AddNode("answer", q1)
	q3, _ := a.AddNode("q3", root)

	children, ok := a.ChildrenByValue("root")
	require.True(t, ok)
	assert.Equal(t, []arena.NodeID{q1, q2, q3}, children)

	children, ok = a.ChildrenByID(q1)
	require.True(t, ok)
	assert.Equal(t, []arena.NodeID{ans}, children)

	// Returned slices are copies.
	children[0] = 99
	again, _ := a.ChildrenByID(q1)
	assert.Equal(t, []arena.NodeID{ans}, again)
}

func TestArena_Parent(t *testing.T) {
	a := arena.New[string]()
	root, _ := a.AddNode("root", arena.NoParent)
	child, _ := a.AddNode("child", root)

	p, ok := a.Parent(child)
	assert.True(t, ok)
	assert.Equal(t, root, p)

	_, ok = a.Parent(root)
	assert.False(t, ok, "roots have no parent")

	_, ok = a.Parent(17)
	assert.False(t, ok, "unknown ids are absent")
}

func TestArena_ValueLookupsFirstMatchWins(t *testing.T) {
	a := arena.New[string]()
	root, _ := a.AddNode("root", arena.NoParent)
	dupA, _ := a.AddNode("dup", root)
	other, _ := a.AddNode("other", root)
	_, _ = a.AddNode("dup", other)
	leaf, _ := a.AddNode("leaf", dupA)

	id, ok := a.IDByValue("dup")
	require.True(t, ok)
	assert.Equal(t, dupA, id)

	children, ok := a.ChildrenByValue("dup")
	require.True(t, ok)
	assert.Equal(t, []arena.NodeID{leaf}, children)

	_, ok = a.IDByValue("missing")
	assert.False(t, ok)
	_, ok = a.ChildrenByValue("missing")
	assert.False(t, ok)
}

func TestArena_GetAndContains(t *testing.T) {
	a := arena.New[string]()
	root, _ := a.AddNode("root", arena.NoParent)
	_, _ = a.AddNode("leaf", root)

	v, ok := a.Get(root)
	assert.True(t, ok)
	assert.Equal(t, "root", v)

	_, ok = a.Get(5)
	assert.False(t, ok)
	_, ok = a.Get(-1)
	assert.False(t, ok)

	assert.True(t, a.Contains("root"))
	assert.True(t, a.Contains("leaf"))
	assert.False(t, a.Contains("nope"))
}

func TestArena_Empty(t *testing.T) {
	var a arena.Arena[string]

	_, ok := a.RootValue()
	assert.False(t, ok)
	assert.False(t, a.Contains(""))

	parents, err := a.LeavesParents()
	assert.NoError(t, err)
	assert.Empty(t, parents)
}

func TestArena_LeavesParents(t *testing.T) {
	a := arena.New[string]()
	root, _ := a.AddNode("root", arena.NoParent)
	q1, _ := a.AddNode("q1", root)
	_, _ = a.AddNode("a1", q1)
	cat, _ := a.AddNode("cat", root)
	q2, _ := a.AddNode("q2", cat)
	_, _ = a.AddNode("a2", q2)

	parents, err := a.LeavesParents()
	require.NoError(t, err)
	assert.Equal(t, []arena.NodeID{q1, q2}, parents)
}

func TestArena_LeavesParents_SingleNodeIsFatal(t *testing.T) {
	a := arena.New[string]()
	_, err := a.AddNode("alone", arena.NoParent)
	require.NoError(t, err)

	parents, err := a.LeavesParents()
	assert.ErrorIs(t, err, arena.ErrLeafWithoutParent)
	assert.Nil(t, parents, "the precondition violation must not degrade into an empty result")
}

func TestArena_Each(t *testing.T) {
	a := arena.New[string]()
	root, _ := a.AddNode("root", arena.NoParent)
	_, _ = a.AddNode("a", root)
	_, _ = a.AddNode("b", root)

	var seen []string
	a.Each(func(id, parent arena.NodeID, data string) bool {
		seen = append(seen, data)
		return id < 1
	})
	assert.Equal(t, []string{"root", "a"}, seen)
}
