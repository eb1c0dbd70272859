package basiclang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visitSource(t *testing.T, src string) (Value, *Error) {
	t.Helper()
	tokens, err := Lex("<interp-test>", src)
	require.Nil(t, err)
	root, perr := Parse(tokens)
	require.Nil(t, perr)

	ctx := NewContext("<main>", nil, Position{})
	ctx.SymbolTable = NewSymbolTable(globalSymbolTable)
	return runStatements(root, ctx)
}

func TestVisitForWithExpressionBodyAccumulatesAList(t *testing.T) {
	v, err := visitSource(t, "for i = 0 to 3 do i * 2")
	require.Nil(t, err)
	assert.Equal(t, "0, 2, 4", v.String())
}

func TestVisitForWithBlockBodyReturnsNull(t *testing.T) {
	v, err := visitSource(t, "for i = 0 to 3 do\n  i\nend")
	require.Nil(t, err)
	assert.Equal(t, "0", v.String())
}

func TestVisitWhileWithExpressionBodyAccumulatesAList(t *testing.T) {
	v, err := visitSource(t, "var i = 0\nwhile i < 3 do var i = i + 1")
	require.Nil(t, err)
	assert.Equal(t, "1, 2, 3", v.String())
}

func TestVisitWhileWithBlockBodyReturnsNull(t *testing.T) {
	v, err := visitSource(t, "var i = 0\nwhile i < 3 do\n  var i = i + 1\nend")
	require.Nil(t, err)
	assert.Equal(t, "0", v.String())
}

func TestVisitIfExpressionFormReturnsTheBranchValue(t *testing.T) {
	v, err := visitSource(t, "if 1 < 2 then 99 else 0")
	require.Nil(t, err)
	assert.Equal(t, "99", v.String())
}

func TestVisitIfBlockFormReturnsNull(t *testing.T) {
	v, err := visitSource(t, "if 1 < 2 then\n  99\nend")
	require.Nil(t, err)
	assert.Equal(t, "0", v.String())
}

func TestVisitVarAccessOfAListAliasesTheElementBuffer(t *testing.T) {
	v, err := visitSource(t, "var xs = [1, 2]\nvar ys = xs\nappend(ys, 3)\nxs")
	require.Nil(t, err)
	assert.Equal(t, "1, 2, 3", v.String(), "ys and xs must share the same backing buffer, per List.Copy semantics")
}

func TestCallValueRejectsNonCallableValues(t *testing.T) {
	_, err := callValue(NewIntNumber(5), nil, Position{}, Position{}, nil)
	require.NotNil(t, err)
	assert.Equal(t, Runtime, err.Kind)
	assert.Equal(t, "Illegal operation", err.Message)
}

func TestListMinusRemovesElementAtIndex(t *testing.T) {
	v, err := visitSource(t, "var xs = [1, 2, 3]\nxs - 1")
	require.Nil(t, err)
	assert.Equal(t, "1, 3", v.String())
}

func TestListTimesListExtends(t *testing.T) {
	v, err := visitSource(t, "[1, 2] * [3, 4]")
	require.Nil(t, err)
	assert.Equal(t, "1, 2, 3, 4", v.String())
}
