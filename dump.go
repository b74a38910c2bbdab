package main

import (
	"fmt"
	"io"
	"sort"
)

// tableDumper prints every defined macro name and, for string-bodied
// macros, its replacement text -- the -dump flag's view into C1. Grounded
// on the teacher's vmDumper (struct + out io.Writer + a dump method
// producing a sorted listing); there's no counterpart here to its
// memory/dictionary address walking, since a macro table has no memory
// layout to show.
type tableDumper struct {
	t   *table
	out io.Writer
}

func (d tableDumper) dump() {
	fmt.Fprintf(d.out, "# macro table\n")
	names := d.t.names()
	sort.Strings(names)
	for _, name := range names {
		val, _ := d.t.lookup(name)
		switch v := val.(type) {
		case stringBody:
			fmt.Fprintf(d.out, "  %v = %q\n", name, string(v))
		case builtinFunc:
			fmt.Fprintf(d.out, "  %v <builtin>\n", name)
		}
	}
}
