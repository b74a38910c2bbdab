package fileinput

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, in *Input) string {
	t.Helper()
	var sb strings.Builder
	for {
		r, _, err := in.ReadRune()
		if err != nil {
			require.Equal(t, io.EOF, err)
			break
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestInputSingleStream(t *testing.T) {
	var in Input
	in.Push(strings.NewReader("hello\nworld"), "main")
	require.Equal(t, "hello\nworld", readAll(t, &in))
	require.Equal(t, "world", in.Last.Buffer.String())
	require.Equal(t, "main", in.Last.Name)
}

func TestInputPushSuspendsAndResumes(t *testing.T) {
	var in Input
	in.Push(strings.NewReader("AB"), "outer")

	r, _, err := in.ReadRune()
	require.NoError(t, err)
	require.Equal(t, 'A', r)
	require.Equal(t, 1, in.Depth())

	in.Push(strings.NewReader("XY"), "inner")
	require.Equal(t, 2, in.Depth())

	// The pushed stream reads to completion before outer resumes.
	r, _, err = in.ReadRune()
	require.NoError(t, err)
	require.Equal(t, 'X', r)
	r, _, err = in.ReadRune()
	require.NoError(t, err)
	require.Equal(t, 'Y', r)
	require.Equal(t, 2, in.Depth()) // EOF on inner isn't detected until the next read

	// inner is now exhausted; outer resumes right where it left off.
	r, _, err = in.ReadRune()
	require.NoError(t, err)
	require.Equal(t, 1, in.Depth())
	require.Equal(t, 'B', r)

	_, _, err = in.ReadRune()
	require.Equal(t, io.EOF, err)
	require.Equal(t, 0, in.Depth())
}

func TestInputCurrentTracksPartialLine(t *testing.T) {
	var in Input
	in.Push(strings.NewReader("abc"), "f")

	// The pushed stream is current before anything is read from it.
	_, ok := in.Current()
	require.True(t, ok)

	_, _, err := in.ReadRune()
	require.NoError(t, err)
	_, _, err = in.ReadRune()
	require.NoError(t, err)

	cur, ok := in.Current()
	require.True(t, ok)
	require.Equal(t, "ab", cur.Buffer.String())
	require.Equal(t, 1, cur.Line)
}

func TestInputQueueConsumedAfterStackEmpties(t *testing.T) {
	var in Input
	in.Queue = []io.Reader{strings.NewReader("second")}
	in.Push(strings.NewReader("first-"), "one")

	require.Equal(t, "first-second", readAll(t, &in))
}

func TestInputLineNumbering(t *testing.T) {
	var in Input
	in.Push(strings.NewReader("a\nb\nc"), "f")
	require.Equal(t, "a\nb\nc", readAll(t, &in))
	require.Equal(t, 3, in.Last.Line)
	require.Equal(t, "c", in.Last.Buffer.String())
}
