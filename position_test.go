package basiclang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionAdvanceTracksLineAndColumn(t *testing.T) {
	pos := NewPosition("<test>", "ab\ncd")

	pos = pos.Advance(0) // the lexer calls Advance with the char it was sitting on
	pos = pos.Advance('a')
	pos = pos.Advance('b')
	assert.Equal(t, 2, pos.Idx)
	assert.Equal(t, 0, pos.Line)
	assert.Equal(t, 2, pos.Col)

	pos = pos.Advance('\n')
	assert.Equal(t, 1, pos.Line)
	assert.Equal(t, 0, pos.Col)
}

func TestPositionAdvanceReturnsANewValue(t *testing.T) {
	start := NewPosition("<test>", "x")
	next := start.Advance('x')

	assert.Equal(t, -1, start.Idx, "Advance must not mutate the receiver")
	assert.Equal(t, 0, next.Idx)
}
