//go:build debug
// +build debug

package mcts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetClearsLog(t *testing.T) {
	tr := testTree()
	_, err := tr.SetRoot(newCountdown(1))
	require.NoError(t, err)

	tr.lumberjack.Buffer.WriteString("leftover from an earlier search")
	tr.Reset()
	assert.Empty(t, tr.Log(), "resetting the tree must also reset the debug log")
}
