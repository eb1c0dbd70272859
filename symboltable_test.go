package basiclang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolTableGetWalksParentChain(t *testing.T) {
	root := NewSymbolTable(nil)
	root.Set("x", NewIntNumber(1))

	child := NewSymbolTable(root)
	v, ok := child.Get("x")
	assert.True(t, ok)
	assert.Equal(t, "1", v.String())
}

func TestSymbolTableGetDistinguishesUnboundFromFalsy(t *testing.T) {
	table := NewSymbolTable(nil)
	table.Set("zero", NewIntNumber(0))

	v, ok := table.Get("zero")
	assert.True(t, ok, "a falsy value must still report as bound")
	assert.Equal(t, "0", v.String())

	_, ok = table.Get("missing")
	assert.False(t, ok)
}

func TestSymbolTableSetOnlyAffectsCurrentFrame(t *testing.T) {
	root := NewSymbolTable(nil)
	root.Set("x", NewIntNumber(1))

	child := NewSymbolTable(root)
	child.Set("x", NewIntNumber(2))

	rootVal, _ := root.Get("x")
	childVal, _ := child.Get("x")
	assert.Equal(t, "1", rootVal.String())
	assert.Equal(t, "2", childVal.String())
}

func TestSymbolTableRemoveOnlyAffectsCurrentFrame(t *testing.T) {
	root := NewSymbolTable(nil)
	root.Set("x", NewIntNumber(1))
	child := NewSymbolTable(root)

	child.Remove("x")

	_, ok := child.Get("x")
	assert.True(t, ok, "removing from the child must fall through to the parent's binding")
}
