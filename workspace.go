package main

import (
	"fmt"

	"github.com/smacro/smac/internal/flushio"
)

const (
	defaultArenaLimit = 4096
	defaultArenaDepth = 64
)

var errArenaOverflow = fmt.Errorf("buffer overflow while evaluating macro")

// arena is one of the two symmetric workspaces described by C3: a budget of
// bytes shared across a stack of in-flight strings. The reference
// implementation packs this into one fixed byte array with a bump pointer
// and a parallel pointer stack; here each in-flight string owns its own
// growable slice, which preserves the push/pop lifetime and budget-overflow
// semantics without hand-rolled pointer arithmetic (see DESIGN.md).
type arena struct {
	strings  [][]byte
	used     int
	limit    int
	maxDepth int
}

func newArena(limit, maxDepth int) *arena {
	return &arena{limit: limit, maxDepth: maxDepth}
}

func (a *arena) depth() int { return len(a.strings) }

func (a *arena) newString() error {
	if len(a.strings) >= a.maxDepth {
		return errArenaOverflow
	}
	a.strings = append(a.strings, nil)
	return nil
}

func (a *arena) addChar(c byte) error {
	if a.used+1 > a.limit {
		return errArenaOverflow
	}
	top := len(a.strings) - 1
	a.strings[top] = append(a.strings[top], c)
	a.used++
	return nil
}

func (a *arena) clear(n int) {
	for i := 0; i < n && len(a.strings) > 0; i++ {
		top := len(a.strings) - 1
		a.used -= len(a.strings[top])
		a.strings[top] = nil
		a.strings = a.strings[:top]
	}
}

func (a *arena) currString() (string, bool) {
	if len(a.strings) == 0 {
		return "", false
	}
	return string(a.strings[len(a.strings)-1]), true
}

// stringAt returns the string at the given stack depth (0-based from the
// bottom), used to materialize an argument vector once collection finishes.
func (a *arena) stringAt(depth int) string {
	return string(a.strings[depth])
}

// workspace is the pair of arenas (C3) plus the external result sink that
// arena 0 writes through once its pointer stack runs empty.
type workspace struct {
	arenas [2]*arena
	sink   flushio.WriteFlusher
}

func newWorkspace(sink flushio.WriteFlusher, limit, maxDepth int) *workspace {
	return &workspace{
		arenas: [2]*arena{newArena(limit, maxDepth), newArena(limit, maxDepth)},
		sink:   sink,
	}
}

func (w *workspace) addChar(sel int, c byte) error {
	a := w.arenas[sel]
	if sel == 0 && a.depth() == 0 {
		if _, err := w.sink.Write([]byte{c}); err != nil {
			return err
		}
		return nil
	}
	return a.addChar(c)
}

func (w *workspace) addString(sel int, s string) error {
	for i := 0; i < len(s); i++ {
		if err := w.addChar(sel, s[i]); err != nil {
			return err
		}
	}
	return nil
}
