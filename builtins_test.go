package basiclang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callBuiltin(t *testing.T, name string, args map[string]Value) (Value, *Error) {
	t.Helper()
	impl, ok := builtins[name]
	require.True(t, ok, "no builtin registered for %s", name)

	ctx := NewContext(name, nil, Position{})
	ctx.SymbolTable = NewSymbolTable(nil)
	for k, v := range args {
		ctx.SymbolTable.Set(k, v)
	}
	return impl.run(ctx, Position{}, Position{})
}

func TestBuiltinAppendMutatesInPlace(t *testing.T) {
	list := NewList([]Value{NewIntNumber(1)})
	_, err := callBuiltin(t, "append", map[string]Value{"list": list, "value": NewIntNumber(2)})
	require.Nil(t, err)
	assert.Equal(t, "1, 2", list.String())
}

func TestBuiltinAppendRejectsNonList(t *testing.T) {
	_, err := callBuiltin(t, "append", map[string]Value{"list": NewIntNumber(1), "value": NewIntNumber(2)})
	require.NotNil(t, err)
	assert.Equal(t, Runtime, err.Kind)
}

func TestBuiltinPopRemovesAndReturnsTheElement(t *testing.T) {
	list := NewList([]Value{NewIntNumber(1), NewIntNumber(2), NewIntNumber(3)})
	removed, err := callBuiltin(t, "pop", map[string]Value{"list": list, "index": NewIntNumber(1)})
	require.Nil(t, err)
	assert.Equal(t, "2", removed.String())
	assert.Equal(t, "1, 3", list.String())
}

func TestBuiltinPopOutOfBoundsIsRuntimeError(t *testing.T) {
	list := NewList([]Value{NewIntNumber(1)})
	_, err := callBuiltin(t, "pop", map[string]Value{"list": list, "index": NewIntNumber(9)})
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "out of bounds")
}

func TestBuiltinExtendAppendsAllElements(t *testing.T) {
	a := NewList([]Value{NewIntNumber(1)})
	b := NewList([]Value{NewIntNumber(2), NewIntNumber(3)})
	_, err := callBuiltin(t, "extend", map[string]Value{"listA": a, "listB": b})
	require.Nil(t, err)
	assert.Equal(t, "1, 2, 3", a.String())
}

func TestBuiltinIsNumberIsStringIsListIsFunction(t *testing.T) {
	n, _ := callBuiltin(t, "is_number", map[string]Value{"value": NewIntNumber(1)})
	assert.Equal(t, "1", n.String())

	s, _ := callBuiltin(t, "is_string", map[string]Value{"value": NewIntNumber(1)})
	assert.Equal(t, "0", s.String())

	l, _ := callBuiltin(t, "is_list", map[string]Value{"value": NewList(nil)})
	assert.Equal(t, "1", l.String())

	f, _ := callBuiltin(t, "is_function", map[string]Value{"value": NewBuiltInFunction("print")})
	assert.Equal(t, "1", f.String())
}

func TestBuiltinPrintRetReturnsTheStringifiedValue(t *testing.T) {
	v, err := callBuiltin(t, "print_ret", map[string]Value{"value": NewIntNumber(42)})
	require.Nil(t, err)
	assert.Equal(t, "42", v.String())
}
