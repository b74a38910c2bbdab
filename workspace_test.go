package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smacro/smac/internal/flushio"
)

func TestArenaPushPopBudget(t *testing.T) {
	a := newArena(4, 2)

	require.NoError(t, a.newString())
	require.NoError(t, a.addChar('a'))
	require.NoError(t, a.addChar('b'))
	s, ok := a.currString()
	require.True(t, ok)
	require.Equal(t, "ab", s)

	// Exceeding the byte budget overflows, regardless of string count.
	require.NoError(t, a.addChar('c'))
	require.NoError(t, a.addChar('d'))
	require.Error(t, a.addChar('e'))

	a.clear(1)
	_, ok = a.currString()
	require.False(t, ok)
}

func TestArenaDepthOverflow(t *testing.T) {
	a := newArena(1024, 1)
	require.NoError(t, a.newString())
	require.Error(t, a.newString())
}

func TestWorkspaceSinkPassthrough(t *testing.T) {
	var buf bytes.Buffer
	ws := newWorkspace(flushio.NewWriteFlusher(&buf), defaultArenaLimit, defaultArenaDepth)

	// Arena 0 at depth 0 writes straight through to the sink.
	require.NoError(t, ws.addString(0, "hello"))
	require.Equal(t, "hello", buf.String())
}

func TestWorkspaceArgArena(t *testing.T) {
	var buf bytes.Buffer
	ws := newWorkspace(flushio.NewWriteFlusher(&buf), defaultArenaLimit, defaultArenaDepth)

	require.NoError(t, ws.arenas[1].newString())
	require.NoError(t, ws.addString(1, "arg0"))
	require.Equal(t, "", buf.String())
	require.Equal(t, "arg0", ws.arenas[1].stringAt(0))
}
