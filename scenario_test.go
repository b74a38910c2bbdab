package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/smacro/smac/internal/fileinput"
)

// scenario is one worked example straight out of the expanded specification's
// walkthrough table; TestCoreScenariosRunConcurrently runs every one in
// coreScenarios concurrently to confirm
// Engine instances don't share any state that would make that unsafe.
type scenario struct {
	name string
	src  string
	want string
}

var coreScenarios = []scenario{
	{"S1", "$(set GREET Hello)$(GREET), world", "Hello, world"},
	{"S2", "$(let N 2+3*4)$(N)", "14"},
	{"S3", "$(if 1 yes no)", "yes"},
	{"S4", "$(if 0 yes no)", "no"},
	{"S5", "$(repeat ab !1+2!)", "ababab"},
	{"S6", "$(substring abcdef 2 3)", "bcd"},
	{"S7", "$(string_compare foo <= foo)", "1"},
	{"S8", "$$(x)", "$(x)"},
}

func TestCoreScenariosRunConcurrently(t *testing.T) {
	var g errgroup.Group
	got := make([]string, len(coreScenarios))

	for i, sc := range coreScenarios {
		i, sc := i, sc
		g.Go(func() error {
			var buf bytes.Buffer
			e := New(WithSink(&buf))
			if err := e.Run(context.Background(), bytesReader(sc.src)); err != nil {
				return err
			}
			got[i] = buf.String()
			return nil
		})
	}

	require.NoError(t, g.Wait())
	for i, sc := range coreScenarios {
		require.Equal(t, sc.want, got[i], sc.name)
	}
}

// bytesReader adapts a string to the io.RuneReader Engine.Run wants, without
// pulling fileinput into scenarios that don't need its line bookkeeping.
func bytesReader(s string) *bytes.Reader {
	return bytes.NewReader([]byte(s))
}

func TestScenarioIncludeAndOutput(t *testing.T) {
	dir := t.TempDir()

	incPath := filepath.Join(dir, "foo.smac")
	require.NoError(t, os.WriteFile(incPath, []byte("hi"), 0o644))

	var in fileinput.Input
	in.Push(bytes.NewReader([]byte("$(include "+incPath+")")), "main")
	var buf bytes.Buffer
	e := New(WithSink(&buf))
	installHostBuiltins(e, &in)
	require.NoError(t, e.Run(context.Background(), &in))
	require.Equal(t, "hi", buf.String(), "S9")

	outPath := filepath.Join(dir, "out.txt")
	var in2 fileinput.Input
	in2.Push(bytes.NewReader([]byte("$(output "+outPath+")$(set X 1)")), "main")
	var buf2 bytes.Buffer
	e2 := New(WithSink(&buf2))
	installHostBuiltins(e2, &in2)
	require.NoError(t, e2.Run(context.Background(), &in2))
	require.Equal(t, "", buf2.String(), "S10: nothing further to stdout")

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, "", string(got), "S10: out.txt created empty")
}
