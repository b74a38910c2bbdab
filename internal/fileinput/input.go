package fileinput

import (
	"bytes"
	"fmt"
	"io"

	"github.com/smacro/smac/internal/runeio"
)

// Location names a line in an Input file.
type Location struct {
	Name string
	Line int
}

// Line combines a Location along with a bytes.Buffer for handling it.
type Line struct {
	Location
	bytes.Buffer
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }
func (il Line) String() string      { return fmt.Sprintf("%v %q", il.Location, il.Buffer.String()) }

// stream is one reader on the include stack, along with the scan state that
// belongs to it. Scan state lives here, not on Input directly, so resuming a
// suspended stream resumes its own line position too.
type stream struct {
	rr   io.RuneReader
	scan Line
}

// Input implements sequential rune reading through a stack of input streams
// on top of a Queue of streams not yet started. Queue is a FIFO: it models a
// CLI's positional file arguments, concatenated one after another. The stack
// is a LIFO on top of that: Push suspends whichever stream is currently
// being read and makes the pushed stream current, resuming the suspended one
// once the pushed stream reaches EOF. This is what lets an include directive
// interrupt the middle of one file, read another to completion, and hand
// control back to the exact point it left off, mirroring the bounded
// include-file stack the reference implementation keeps, rather than simply
// queueing the included file to run after the current one ends.
//
// Both the current and last scanned lines are tracked to facilitate user
// feedback.
type Input struct {
	stack []stream
	Queue []io.Reader
	Last  Line
}

// Push suspends the stream currently being read, if any, and starts reading
// from r instead. The suspended stream resumes automatically once r is
// exhausted. name labels r's lines for diagnostics; if empty, Push falls
// back to r's own Name() method when it has one.
func (in *Input) Push(r io.Reader, name string) {
	if name == "" {
		name = nameOf(r)
	}
	s := stream{rr: runeio.NewReader(r)}
	s.scan.Name = name
	s.scan.Line = 1
	in.stack = append(in.stack, s)
}

// Depth reports how many streams are currently nested via Push.
func (in *Input) Depth() int {
	return len(in.stack)
}

// Current returns the in-progress line of whatever stream is on top of the
// stack -- unlike Last, this includes a partial line not yet terminated by
// a newline, which is what a diagnostic raised mid-line needs to point at.
// ok is false if no stream is current.
func (in *Input) Current() (line Line, ok bool) {
	if top := in.top(); top != nil {
		return top.scan, true
	}
	return Line{}, false
}

func (in *Input) top() *stream {
	if len(in.stack) == 0 {
		return nil
	}
	return &in.stack[len(in.stack)-1]
}

// ReadRune reads one rune from the top of the input stack, appending it into
// that stream's scan line, and rolling it over to Last after a line feed.
func (in *Input) ReadRune() (rune, int, error) {
	if in.top() == nil && !in.nextIn() {
		return 0, 0, io.EOF
	}

	top := in.top()
	r, n, err := top.rr.ReadRune()
	if err != nil {
		if err == io.EOF && in.nextIn() {
			return in.ReadRune()
		}
		return 0, n, err
	}

	if r == '\n' {
		in.nextLine(top)
	} else {
		top.scan.WriteRune(r)
	}
	return r, n, nil
}

func (in *Input) nextLine(top *stream) {
	in.Last.Reset()
	in.Last.Name = top.scan.Name
	in.Last.Line = top.scan.Line
	in.Last.Write(top.scan.Bytes())
	top.scan.Reset()
	top.scan.Line++
}

// nextIn advances past an exhausted top-of-stack stream, closing it if
// possible, and falls back to popping the include stack or, once that's
// empty, pulling the next Queue entry. It reports whether a stream is now
// current.
func (in *Input) nextIn() bool {
	if top := in.top(); top != nil {
		in.nextLine(top)
		if cl, ok := top.rr.(io.Closer); ok {
			cl.Close()
		}
		in.stack = in.stack[:len(in.stack)-1]
		if len(in.stack) > 0 {
			return true
		}
	}
	if len(in.Queue) > 0 {
		r := in.Queue[0]
		in.Queue = in.Queue[1:]
		in.Push(r, "")
		return true
	}
	return false
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
