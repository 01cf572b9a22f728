package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTerminalRoot(t *testing.T) {
	tr := testTree()
	root, err := tr.SetRoot(won(white))
	require.NoError(t, err)

	got, err := tr.Search(100)
	require.NoError(t, err)
	assert.Equal(t, root, got, "a terminal root comes back as-is")
	assert.Empty(t, tr.Children(root), "no children are created")
	assert.False(t, tr.Node(root).HasPolicy())
	assert.EqualValues(t, 0, tr.Node(root).Visits())
}

func TestSearchZeroIterations(t *testing.T) {
	tr := testTree()
	root, err := tr.SetRoot(newCountdown(3))
	require.NoError(t, err)

	got, err := tr.Search(0)
	require.NoError(t, err)
	assert.Equal(t, root, got)
	assert.True(t, tr.Node(root).HasPolicy(), "the root's policy vector is computed even with no budget")
	assert.EqualValues(t, 0, tr.Node(root).Visits())
	for _, kid := range tr.Children(root) {
		assert.EqualValues(t, 0, tr.Node(kid).Visits())
	}
}

func TestSearchVisitAccounting(t *testing.T) {
	const iterations = 5

	tr := testTree()
	root, err := tr.SetRoot(newCountdown(1)) // two legal moves, both terminal
	require.NoError(t, err)

	_, err = tr.Search(iterations)
	require.NoError(t, err)

	kids := tr.Children(root)
	require.Len(t, kids, 2)

	var total uint32
	for _, kid := range kids {
		total += tr.Node(kid).Visits()
	}
	assert.EqualValues(t, iterations, total, "one evaluation per iteration, all through a root child")
	assert.EqualValues(t, iterations, tr.Node(root).Visits())

	checkStatInvariant(t, tr)
}

func TestSearchDescends(t *testing.T) {
	const iterations = 12

	tr := testTree()
	root, err := tr.SetRoot(newCountdown(4))
	require.NoError(t, err)

	_, err = tr.Search(iterations)
	require.NoError(t, err)

	// with that budget the search must have pushed past the root's children
	var expanded int
	for _, kid := range tr.Children(root) {
		if tr.Node(kid).HasPolicy() {
			expanded++
			assert.NotEmpty(t, tr.Children(kid))
		}
	}
	assert.NotZero(t, expanded, "descent must expand below the root")

	var total uint32
	for _, kid := range tr.Children(root) {
		total += tr.Node(kid).Visits()
	}
	assert.EqualValues(t, iterations, total)

	checkStatInvariant(t, tr)
}

func TestSearchNoRoot(t *testing.T) {
	tr := testTree()
	_, err := tr.Search(1)
	require.Error(t, err)
}

func TestBestMove(t *testing.T) {
	tr := testTree()
	root, err := tr.SetRoot(newCountdown(2))
	require.NoError(t, err)

	_, err = tr.Search(9)
	require.NoError(t, err)

	mv, err := tr.BestMove()
	require.NoError(t, err)

	// the reported move belongs to a most-visited child
	var best uint32
	for _, kid := range tr.Children(root) {
		if v := tr.Node(kid).Visits(); v > best {
			best = v
		}
	}
	for _, kid := range tr.Children(root) {
		if tr.Node(kid).Move() == mv {
			assert.Equal(t, best, tr.Node(kid).Visits())
		}
	}
}

func TestBestMoveNoChildren(t *testing.T) {
	tr := testTree()
	_, err := tr.SetRoot(won(white))
	require.NoError(t, err)

	_, err = tr.BestMove()
	require.Error(t, err)
}

func TestSearchNoiseNotPersisted(t *testing.T) {
	tr := testTree()
	root, err := tr.SetRoot(newCountdown(1))
	require.NoError(t, err)

	_, err = tr.Search(0)
	require.NoError(t, err)
	before := append([]float32(nil), tr.Node(root).legalScores...)

	_, err = tr.Search(3)
	require.NoError(t, err)
	assert.Equal(t, before, tr.Node(root).legalScores, "root noise is private to each iteration")
}
