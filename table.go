package main

import "fmt"

// macroValue is the tagged value a macro name resolves to: either a string
// body or a built-in handle. It deliberately avoids an untagged union.
type macroValue interface {
	isMacroValue()
}

// stringBody is a macro whose replacement text may reference its own
// arguments via $(N).
type stringBody string

func (stringBody) isMacroValue() {}

// builtinFunc is a macro backed by Go code. arg[0] is always the name the
// macro was invoked under; arg[1:] are its evaluated arguments.
type builtinFunc func(e *Engine, arg []string) error

func (builtinFunc) isMacroValue() {}

// table is the macro name -> value mapping (C1).
type table struct {
	entries map[string]macroValue
}

func newTable() *table {
	return &table{entries: make(map[string]macroValue)}
}

// validateName checks the name grammar shared by every define call:
// non-empty, not digit-led, no whitespace, no invocation-close delimiter.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty macro name")
	}
	if name[0] >= '0' && name[0] <= '9' {
		return fmt.Errorf("macro name cannot start with digit")
	}
	for _, c := range []byte(name) {
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			return fmt.Errorf("macro name cannot contain white space")
		case c == ')':
			return fmt.Errorf("macro name cannot contain right delimeter for invocation")
		}
	}
	return nil
}

// defineString installs name as a string-bodied macro. An empty body
// deletes the entry rather than defining it, matching the reference
// processor's convention for undoing a $(set ...).
func (t *table) defineString(name, body string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if body == "" {
		delete(t.entries, name)
		return nil
	}
	t.entries[name] = stringBody(body)
	return nil
}

// defineBuiltin installs name as a built-in macro.
func (t *table) defineBuiltin(name string, fn builtinFunc) error {
	if err := validateName(name); err != nil {
		return err
	}
	t.entries[name] = fn
	return nil
}

// lookup never fails: an unknown name resolves to an absent value, which
// the expansion state machine treats as an empty string body.
func (t *table) lookup(name string) (macroValue, bool) {
	v, ok := t.entries[name]
	return v, ok
}

// names returns the defined macro names, used only by dump.
func (t *table) names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	return names
}
