package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Evaluates(t *testing.T) {
	tests := []struct {
		expr    string
		present []bool
		want    bool
	}{
		{"0", []bool{true}, true},
		{"0", []bool{false}, false},
		{"0 and 1", []bool{true, false}, false},
		{"0 and 1", []bool{true, true}, true},
		{"0 or 1", []bool{false, true}, true},
		{"not 0", []bool{false}, true},
		{"not not 0", []bool{true}, true},
		{"0 and not 1", []bool{true, false}, true},
		{"0 and not 1", []bool{true, true}, false},
		// and binds tighter than or
		{"0 or 1 and 2", []bool{true, false, false}, true},
		{"(0 or 1) and 2", []bool{true, false, false}, false},
		// not binds tighter than and
		{"not 0 and 1", []bool{true, true}, false},
		{"not (0 and 1)", []bool{true, false}, true},
		{"0 AND (1 Or 2)", []bool{true, false, true}, true},
		{"((0))", []bool{true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			x, err := Compile(tt.expr, len(tt.present))
			require.NoError(t, err)
			assert.Equal(t, tt.want, x.Eval(tt.present))
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		n    int
	}{
		{"empty", "", 1},
		{"out of range", "0 and 2", 2},
		{"unknown operator", "0 xor 1", 2},
		{"symbolic operator", "0 && 1", 2},
		{"unbalanced open", "(0 and 1", 2},
		{"unbalanced close", "0 and 1)", 2},
		{"dangling operator", "0 and", 2},
		{"adjacent operands", "0 1", 2},
		{"code injection", "__import__('os')", 1},
		{"operand glued to keyword", "0and1", 2},
		{"keyword glued to operand", "not0", 1},
		{"operand glued to letters", "1x", 2},
		{"invalid utf-8", "0 and \xff", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expr, tt.n)
			var se *SyntaxError
			require.True(t, errors.As(err, &se), "got %v", err)
			assert.Equal(t, tt.expr, se.Expr)
		})
	}
}

func TestCompile_String(t *testing.T) {
	x, err := Compile("0 or not 1 and 2", 3)
	require.NoError(t, err)
	assert.Equal(t, "(0 or (not 1 and 2))", x.String())
}

func TestCompile_ReportsRunes(t *testing.T) {
	_, err := Compile("0 and ∧ 1", 2)
	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 6, se.Pos)
	assert.Contains(t, se.Reason, `'∧'`)

	_, err = Compile("0 ünd 1", 2)
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Reason, `"ünd"`)
}
