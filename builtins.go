package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// installBuiltins registers the core built-in macros (C5) into t. These are
// always present; host built-ins (C6/C7) are layered on top by the CLI.
func installBuiltins(t *table) {
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(t.defineBuiltin("set", biSet))
	must(t.defineBuiltin("let", biLet))
	must(t.defineBuiltin("calc", biCalc))
	must(t.defineBuiltin("if", biIf))
	must(t.defineBuiltin("repeat", biRepeat))
	must(t.defineBuiltin("null", biNull))
	must(t.defineBuiltin("index", biIndex))
	must(t.defineBuiltin("length", biLength))
	must(t.defineBuiltin("break", biBreak))
	must(t.defineBuiltin("loop", biLoop))
	must(t.defineBuiltin("substring", biSubstring))
	must(t.defineBuiltin("expand", biExpand))
	must(t.defineBuiltin("error", biError))
	must(t.defineBuiltin("byte", biByte))
	must(t.defineBuiltin("numeric", biNumeric))
	must(t.defineBuiltin("string_compare", biStringCompare))
}

// outnum emits the decimal form of n as literal output.
func outnum(e *Engine, n int64) error {
	return e.EmitString(strconv.FormatInt(n, 10))
}

// biSet associates one or more macro names with a literal body, the last
// argument.
func biSet(e *Engine, arg []string) error {
	if len(arg) < 3 {
		return fmt.Errorf("set macro requires at least 2 arguments")
	}
	last := len(arg) - 1
	body := arg[last]
	for i := 1; i < last; i++ {
		if err := e.Define(arg[i], body); err != nil {
			return err
		}
	}
	return nil
}

// biLet associates one or more macro names with the evaluated result of a
// numeric expression, the last argument.
func biLet(e *Engine, arg []string) error {
	if len(arg) < 3 {
		return fmt.Errorf("let macro requires at least 2 arguments")
	}
	last := len(arg) - 1
	value, err := evalExpr(arg[last])
	if err != nil {
		return err
	}
	body := strconv.FormatInt(value, 10)
	for i := 1; i < last; i++ {
		if err := e.Define(arg[i], body); err != nil {
			return err
		}
	}
	return nil
}

func biCalc(e *Engine, arg []string) error {
	if len(arg) != 2 {
		return fmt.Errorf("calc macro requires exactly 1 argument")
	}
	value, err := evalExpr(arg[1])
	if err != nil {
		return err
	}
	return outnum(e, value)
}

// biExpand re-feeds its argument through the state machine, so quoted
// arguments that were protected from evaluation get a chance to run.
func biExpand(e *Engine, arg []string) error {
	if len(arg) != 2 {
		return fmt.Errorf("expand macro requires exactly 1 argument")
	}
	return e.EmitExpand(arg[1])
}

// biIf evaluates arg[1] as a condition and expands the matching branch.
// It delegates to biExpand exactly as the reference does, just ignoring
// the leading slot biExpand expects to skip.
func biIf(e *Engine, arg []string) error {
	if len(arg) < 3 || len(arg) > 4 {
		return fmt.Errorf("if macro requires 2 or 3 arguments")
	}
	cond, err := evalExpr(arg[1])
	if err != nil {
		return err
	}
	if cond != 0 {
		return biExpand(e, arg[1:3])
	}
	if len(arg) == 4 {
		return biExpand(e, append([]string{arg[0]}, arg[3]))
	}
	return nil
}

// biRepeat emits arg[1] literally (unevaluated) arg[2] times.
func biRepeat(e *Engine, arg []string) error {
	if len(arg) != 3 {
		return fmt.Errorf("repeat macro requires exactly 2 arguments")
	}
	count, err := evalExpr(arg[2])
	if err != nil {
		return err
	}
	for ; count > 0; count-- {
		if err := e.EmitString(arg[1]); err != nil {
			return err
		}
	}
	return nil
}

func biNull(e *Engine, arg []string) error {
	if len(arg) != 2 {
		return fmt.Errorf("null macro requires exactly 1 argument")
	}
	if arg[1] == "" {
		return e.EmitLiteral('1')
	}
	return e.EmitLiteral('0')
}

// biIndex returns the 1-based offset of needle (arg[1]) within haystack
// (arg[2]), or 0 if absent. An empty needle matches at the start of the
// haystack, so it yields 1.
func biIndex(e *Engine, arg []string) error {
	if len(arg) != 3 {
		return fmt.Errorf("index macro requires exactly 2 arguments")
	}
	needle, haystack := arg[1], arg[2]
	if needle == "" {
		return e.EmitLiteral('1')
	}
	if idx := strings.Index(haystack, needle); idx >= 0 {
		return outnum(e, int64(idx+1))
	}
	return e.EmitLiteral('0')
}

func biLength(e *Engine, arg []string) error {
	if len(arg) != 2 {
		return fmt.Errorf("length macro requires exactly 1 argument")
	}
	return outnum(e, int64(len(arg[1])))
}

// biSubstring extracts a 1-based, length-counted slice of arg[1]. Argument
// count defaults to "rest of string" when omitted.
func biSubstring(e *Engine, arg []string) error {
	if len(arg) != 3 && len(arg) != 4 {
		return fmt.Errorf("substring macro requires 2 or 3 arguments")
	}
	s := arg[1]
	length := int64(len(s))

	start, err := evalExpr(arg[2])
	if err != nil {
		return err
	}

	var count int64
	if len(arg) == 4 {
		count, err = evalExpr(arg[3])
		if err != nil {
			return err
		}
	} else {
		count = length - start + 1
	}

	if start < 1 || count < 1 || (start-1+count) > length {
		return fmt.Errorf("illegal substring")
	}
	return e.EmitString(s[start-1 : start-1+count])
}

// biBreak, paired with biLoop via Engine.loopBreak, ends the innermost
// enclosing loop as soon as the loop argument that invoked it finishes
// expanding; that iteration's remaining arguments are not expanded.
func biBreak(e *Engine, arg []string) error {
	if len(arg) != 1 {
		return fmt.Errorf("break macro should have no arguments")
	}
	e.loopBreak = true
	return nil
}

// biLoop round-robins its arguments through biExpand forever, until one of
// them invokes break.
func biLoop(e *Engine, arg []string) error {
	if len(arg) < 2 {
		return fmt.Errorf("loop macro must have at least one argument")
	}
	e.loopBreak = false
	for {
		for i := 1; i < len(arg); i++ {
			if err := biExpand(e, arg[i-1:i+1]); err != nil {
				return err
			}
			if e.loopBreak {
				e.loopBreak = false
				return nil
			}
		}
	}
}

func biNumeric(e *Engine, arg []string) error {
	if len(arg) != 2 {
		return fmt.Errorf("numeric macro requires exactly 1 argument")
	}
	if arg[1] == "" {
		return outnum(e, 0)
	}
	return outnum(e, int64(arg[1][0]))
}

func biByte(e *Engine, arg []string) error {
	if len(arg) != 2 {
		return fmt.Errorf("byte macro requires exactly 1 argument")
	}
	value, err := evalExpr(arg[1])
	if err != nil {
		return err
	}
	return e.EmitLiteral(byte(value))
}

var errBad2ndArg = fmt.Errorf("2nd argument is not =, >, <, <>, <= or >=")

// biStringCompare compares arg[1] and arg[3] per the relation named by
// arg[2] (=, >, <, <>, <=, >=), emitting "1" or "0".
func biStringCompare(e *Engine, arg []string) error {
	if len(arg) != 4 {
		return fmt.Errorf("string_compare requires exactly 3 arguments")
	}
	r := strings.Compare(arg[1], arg[3])
	rel := arg[2]

	var result bool
	switch rel {
	case "=":
		result = r == 0
	case ">":
		result = r > 0
	case "<":
		result = r < 0
	case ">=":
		result = r >= 0
	case "<=":
		result = r <= 0
	case "<>":
		result = r != 0
	default:
		return errBad2ndArg
	}

	if result {
		return e.EmitLiteral('1')
	}
	return e.EmitLiteral('0')
}

func biError(e *Engine, arg []string) error {
	if len(arg) != 2 {
		return fmt.Errorf("error macro requires exactly 1 argument")
	}
	return errors.New(arg[1])
}
