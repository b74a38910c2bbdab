package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvalExpr(t *testing.T) {
	for _, tc := range []struct {
		name string
		expr string
		want int64
	}{
		{"literal", "42", 42},
		{"addsub", "2+3-1", 4},
		{"muldiv precedence", "2+3*4", 14},
		{"parens", "(2+3)*4", 20},
		{"unary minus", "-5+2", -3},
		{"comparison true", "3>2", 1},
		{"comparison false", "3<2", 0},
		{"equal", "3=3", 1},
		{"not equal", "3<>3", 0},
		{"and", "1 and 1", 1},
		{"and short", "1 and 0", 0},
		{"or", "0 or 1", 1},
		{"not", "not 0", 1},
		{"double not collapses to bool", "not not 5", 1},
		{"div truncates", "7/2", 3},
		{"mod", "7 mod 2", 1},
		{"unary minus of not", "-(not 0)", -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := evalExpr(tc.expr)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestEvalExprErrors(t *testing.T) {
	for _, expr := range []string{
		"",
		"2+",
		"(2+3",
		"2 3",
		"@",
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := evalExpr(expr)
			require.Error(t, err)
		})
	}
}
