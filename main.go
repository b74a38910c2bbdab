// Command smac is a text macro processor: it expands $(...) invocations in
// its input and writes the resulting byte stream to standard output.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/smacro/smac/internal/fileinput"
	"github.com/smacro/smac/internal/flushio"
	"github.com/smacro/smac/internal/logio"
	"github.com/smacro/smac/internal/runeio"
)

func main() {
	var (
		arenaLimit int
		arenaDepth int
		timeout    time.Duration
		dump       bool
		teePath    string
	)
	flag.IntVar(&arenaLimit, "arena-limit", defaultArenaLimit, "byte budget per argument workspace")
	flag.IntVar(&arenaDepth, "arena-depth", defaultArenaDepth, "nesting depth per argument workspace")
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&dump, "dump", false, "print the macro table after execution")
	flag.StringVar(&teePath, "tee", "", "also write expanded output to this file")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	var in fileinput.Input
	args := flag.Args()
	switch {
	case len(args) == 0 || args[0] == "-":
		in.Push(os.Stdin, "-")
	default:
		f, err := os.Open(args[0])
		if err != nil {
			log.Errorf("%v", err)
			return
		}
		in.Push(f, args[0])
	}

	sink := io.Writer(os.Stdout)
	if teePath != "" {
		teeFile, err := os.Create(teePath)
		if err != nil {
			log.Errorf("%v", err)
			return
		}
		defer teeFile.Close()
		sink = flushio.WriteFlushers(flushio.NewWriteFlusher(os.Stdout), flushio.NewWriteFlusher(teeFile))
	}

	e := New(
		WithLogf(log.Leveledf("TRACE")),
		WithArenaLimit(arenaLimit),
		WithArenaDepth(arenaDepth),
		WithSink(sink),
	)
	installHostBuiltins(e, &in)

	if dump {
		lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
		defer lw.Close()
		defer tableDumper{t: e.table, out: lw}.dump()
	}

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := e.Run(ctx, &in); err != nil {
		printDiagnostic(os.Stderr, &in, err)
		log.Errorf("%v", err)
	}
}

// printDiagnostic renders a caret under the last byte read, the way the
// reference implementation's tr_print_error does: the offending line's
// text followed by a line of spaces and a caret at the read position.
func printDiagnostic(w *os.File, in *fileinput.Input, err error) {
	loc, ok := in.Current()
	if !ok {
		loc = in.Last
	}
	fmt.Fprintf(w, "error in line %v of %v:\n  %v\n", loc.Line, loc.Name, err)

	var rendered []rune
	for _, r := range loc.Buffer.String() {
		if caret := runeio.CaretForm(r); caret != "" {
			rendered = append(rendered, []rune(caret)...)
		} else {
			rendered = append(rendered, r)
		}
	}
	fmt.Fprintln(w, string(rendered))
	for i := 1; i < len(rendered); i++ {
		fmt.Fprint(w, " ")
	}
	fmt.Fprintln(w, "^")
}
