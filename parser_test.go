package basiclang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, src string) Node {
	t.Helper()
	tokens, err := Lex("<parser-test>", src)
	require.Nil(t, err)
	node, perr := Parse(tokens)
	require.Nil(t, perr)
	return node
}

func TestParsePrecedenceClimbsCorrectly(t *testing.T) {
	root := parseSource(t, "1 + 2 * 3")
	stmts := root.(*ListNode)
	require.Len(t, stmts.Elements, 1)

	bin := stmts.Elements[0].(*BinOpNode)
	assert.Equal(t, PLUS, bin.Op.Kind)
	_, ok := bin.Left.(*NumberNode)
	assert.True(t, ok, "left side of + should be the bare literal 1")

	rightMul, ok := bin.Right.(*BinOpNode)
	require.True(t, ok, "right side of + should be the 2 * 3 subtree")
	assert.Equal(t, MUL, rightMul.Op.Kind)
}

func TestParseIfElseRetainsElseBody(t *testing.T) {
	root := parseSource(t, "if 1 == 2 then 10 else 20")
	stmts := root.(*ListNode)
	ifNode := stmts.Elements[0].(*IfNode)

	require.Len(t, ifNode.Cases, 1)
	require.NotNil(t, ifNode.Else, "else body must survive parsing, not be silently dropped")
}

func TestParseBlockIfWithElifChainsAllCases(t *testing.T) {
	src := "if 1 == 1 then\n  1\nelif 2 == 2 then\n  2\nelse\n  3\nend"
	root := parseSource(t, src)
	stmts := root.(*ListNode)
	ifNode := stmts.Elements[0].(*IfNode)

	require.Len(t, ifNode.Cases, 2)
	require.NotNil(t, ifNode.Else)
}

func TestParseFuncDefBlockFormReferencesItsOwnBody(t *testing.T) {
	src := "func f()\n  1\n  2\nend"
	root := parseSource(t, src)
	stmts := root.(*ListNode)
	fn := stmts.Elements[0].(*FuncDefNode)

	assert.True(t, fn.BodyIsBlock)
	body, ok := fn.Body.(*ListNode)
	require.True(t, ok)
	assert.Len(t, body.Elements, 2)
}

func TestParseInvalidSyntaxOnStrayOperator(t *testing.T) {
	tokens, lerr := Lex("<parser-test>", "* 1")
	require.Nil(t, lerr)
	_, perr := Parse(tokens)
	require.NotNil(t, perr)
	assert.Equal(t, InvalidSyntax, perr.Kind)
}

func TestParseListLiteral(t *testing.T) {
	root := parseSource(t, "[1, 2, 3]")
	stmts := root.(*ListNode)
	list := stmts.Elements[0].(*ListNode)
	assert.Len(t, list.Elements, 3)
}

func TestParseFunctionCallArguments(t *testing.T) {
	root := parseSource(t, "add(1, 2)")
	stmts := root.(*ListNode)
	call := stmts.Elements[0].(*FuncCallNode)
	assert.Len(t, call.Args, 2)
}
