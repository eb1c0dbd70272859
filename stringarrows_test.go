package basiclang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringWithArrowsUnderlinesSingleLineSpan(t *testing.T) {
	text := "1 + @"
	start := Position{Idx: 4, Line: 0, Col: 4}
	end := Position{Idx: 5, Line: 0, Col: 5}

	out := StringWithArrows(text, start, end)
	lines := strings.Split(out, "\n")

	require := lines[0]
	assert.Equal(t, "1 + @", require)
	assert.Equal(t, "    ^", lines[1])
}

func TestStringWithArrowsUnderlinesSpanOnLaterLine(t *testing.T) {
	text := "var x = 1\nvar y = @"
	start := Position{Idx: 18, Line: 1, Col: 8}
	end := Position{Idx: 19, Line: 1, Col: 9}

	out := StringWithArrows(text, start, end)
	assert.Contains(t, out, "var y = @")
	assert.Contains(t, out, "^")
}
