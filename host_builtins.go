package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/smacro/smac/internal/fileinput"
)

// maxIncludeNest bounds nested $(include), matching the reference
// implementation's MAX_INCLUDE_NEST.
const maxIncludeNest = 10

// hostIO wires the include/output/append host built-ins (C6/C7) to an
// Engine: they are not part of the core macro language, but no complete
// processor ships without a way to pull in other files or redirect where
// expanded text lands.
type hostIO struct {
	in     *fileinput.Input
	outCur io.Closer
}

// installHostBuiltins registers include/output/append against e, reading
// further input through in and writing output through whatever sink e
// already has (stdout, by convention, until output/append redirects it).
func installHostBuiltins(e *Engine, in *fileinput.Input) {
	h := &hostIO{in: in}
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(e.DefineBuiltin("include", h.biInclude))
	must(e.DefineBuiltin("output", h.biOutput))
	must(e.DefineBuiltin("append", h.biAppend))
}

// biInclude pushes fname onto the input stack, to be read to completion
// before the including file resumes. "-" means standard input.
func (h *hostIO) biInclude(e *Engine, arg []string) error {
	if len(arg) != 2 {
		return fmt.Errorf("include macro requires exactly 1 argument")
	}
	if h.in.Depth() > maxIncludeNest {
		return fmt.Errorf("too many nested include files")
	}

	fname := arg[1]
	if fname == "-" {
		h.in.Push(os.Stdin, "-")
		return nil
	}
	f, err := os.Open(fname)
	if err != nil {
		return fmt.Errorf("error opening file")
	}
	h.in.Push(f, fname)
	return nil
}

// biOutput redirects the engine's result sink to fname, truncating it, or
// closes the current output (writing nothing further) when called with no
// argument.
func (h *hostIO) biOutput(e *Engine, arg []string) error {
	if len(arg) > 2 {
		return fmt.Errorf("output macro requires 0 or 1 arguments")
	}
	if len(arg) == 1 {
		return h.openOutput(e, "", os.O_WRONLY)
	}
	return h.openOutput(e, arg[1], os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

// biAppend is output, but opens its file for appending rather than
// truncating.
func (h *hostIO) biAppend(e *Engine, arg []string) error {
	if len(arg) > 2 {
		return fmt.Errorf("append macro requires 0 or 1 arguments")
	}
	if len(arg) == 1 {
		return h.openOutput(e, "", os.O_WRONLY)
	}
	return h.openOutput(e, arg[1], os.O_WRONLY|os.O_CREATE|os.O_APPEND)
}

// openOutput closes whatever file output/append previously opened (closing
// stdout is never attempted, since it's never tracked in outCur) and
// retargets the engine's sink at filename, or at nothing when filename is
// empty.
func (h *hostIO) openOutput(e *Engine, filename string, flag int) error {
	if err := e.FlushSink(); err != nil {
		return err
	}
	if h.outCur != nil {
		if err := h.outCur.Close(); err != nil {
			return fmt.Errorf("error closing current output file")
		}
		h.outCur = nil
	}

	if filename == "" {
		return e.SetSink(ioutil.Discard)
	}
	if filename == "-" {
		return e.SetSink(os.Stdout)
	}

	f, err := os.OpenFile(filename, flag, 0644)
	if err != nil {
		return fmt.Errorf("error opening output file")
	}
	h.outCur = f
	return e.SetSink(f)
}
