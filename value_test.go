package basiclang

import (
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberFormattingMatchesIntVsFloat(t *testing.T) {
	assert.Equal(t, "3", NewIntNumber(3).String())
	assert.Equal(t, "3.5", NewNumber(3.5, false).String())
	assert.Equal(t, "3.0", NewNumber(3, false).String())
}

func TestStrReprQuotesAndEscapes(t *testing.T) {
	assert.Equal(t, "foo", NewStr("foo").String())
	assert.Equal(t, `"foo"`, NewStr("foo").Repr())
	assert.Equal(t, `"a\"b\\c"`, NewStr(`a"b\c`).Repr())
}

func TestListStringVsReprBracketing(t *testing.T) {
	nested := NewList([]Value{NewIntNumber(1), NewList([]Value{NewIntNumber(2), NewIntNumber(3)})})

	assert.Equal(t, "1, 2, 3", nested.String(), "String loses the inner list's brackets")
	assert.Equal(t, "[1, 2, 3]", nested.Repr(), "Repr only brackets the outermost level; elements still join via String")
}

func TestNonNumberNonStringValuesAreAlwaysFalsy(t *testing.T) {
	assert.False(t, NewList([]Value{NewIntNumber(1)}).IsTrue(), "a non-empty list is still falsy")
	assert.False(t, NewFunction("f", true, nil, nil, false).IsTrue())
	assert.False(t, NewBuiltInFunction("print").IsTrue())
}

func TestListCopySharesElementBuffer(t *testing.T) {
	original := NewList([]Value{NewIntNumber(1), NewIntNumber(2)})
	alias := original.Copy().(*List)

	*alias.Elements = append(*alias.Elements, NewIntNumber(3))

	if len(*original.Elements) != 3 {
		t.Fatalf("expected append through a copy to be visible on the original, got %# v", pretty.Formatter(*original.Elements))
	}
}

func TestListDivideReturnsElementByIndex(t *testing.T) {
	l := NewList([]Value{NewIntNumber(10), NewIntNumber(20), NewIntNumber(30)})
	v, err := listIndex(l, NewIntNumber(1), nil)
	require.Nil(t, err)
	assert.Equal(t, "20", v.String())
}

func TestListDivideOutOfBoundsIsRuntimeError(t *testing.T) {
	l := NewList([]Value{NewIntNumber(10)})
	_, err := listIndex(l, NewIntNumber(5), nil)
	require.NotNil(t, err)
	assert.Equal(t, Runtime, err.Kind)
}

func TestStringMultiplyRepeats(t *testing.T) {
	assert.Equal(t, "ababab", repeatString("ab", 3))
	assert.Equal(t, "", repeatString("ab", 0))
	assert.Equal(t, "", repeatString("ab", -2))
}

func TestApplyBinOpIllegalOperationAcrossKinds(t *testing.T) {
	_, err := applyBinOp(Token{Kind: PLUS}, NewIntNumber(1), NewList(nil), nil)
	require.NotNil(t, err)
	assert.Equal(t, "Illegal operation", err.Message)
}

func TestApplyBinOpAndOrFollowPythonicTruthiness(t *testing.T) {
	result, err := applyBinOp(Token{Kind: KEYWORD, Value: "and"}, NewIntNumber(0), NewIntNumber(7), nil)
	require.Nil(t, err)
	assert.Equal(t, "0", result.String())

	result, err = applyBinOp(Token{Kind: KEYWORD, Value: "and"}, NewIntNumber(3), NewIntNumber(7), nil)
	require.Nil(t, err)
	assert.Equal(t, "7", result.String())

	result, err = applyBinOp(Token{Kind: KEYWORD, Value: "or"}, NewIntNumber(0), NewIntNumber(7), nil)
	require.Nil(t, err)
	assert.Equal(t, "7", result.String())
}
