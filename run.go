package basiclang

import (
	"math"

	"github.com/google/uuid"

	"github.com/SHENSHENZYC/basiclang/internal/rtlog"
)

// globalSymbolTable is the root context's symbol table for every Run
// call, exactly like the original's module-level global_symbol_table:
// top-level `var` assignments and function definitions write directly
// into it, so they are visible to a later Run call in the same
// process, not just within the call that made them. This interpreter
// has no goroutine-safety story and none is promised; concurrent Run
// calls race on any assignment that touches the root frame.
var globalSymbolTable = newGlobalSymbolTable()

func newGlobalSymbolTable() *SymbolTable {
	t := NewSymbolTable(nil)
	t.Set("null", NewIntNumber(0))
	t.Set("false", NewIntNumber(0))
	t.Set("true", NewIntNumber(1))
	t.Set("math_pi", NewNumber(math.Pi, false))

	t.Set("print", NewBuiltInFunction("print"))
	t.Set("print_ret", NewBuiltInFunction("print_ret"))
	t.Set("input", NewBuiltInFunction("input"))
	t.Set("input_int", NewBuiltInFunction("input_int"))
	t.Set("clear", NewBuiltInFunction("clear"))
	t.Set("cls", NewBuiltInFunction("clear"))
	t.Set("is_num", NewBuiltInFunction("is_number"))
	t.Set("is_str", NewBuiltInFunction("is_string"))
	t.Set("is_list", NewBuiltInFunction("is_list"))
	t.Set("is_func", NewBuiltInFunction("is_function"))
	t.Set("append", NewBuiltInFunction("append"))
	t.Set("pop", NewBuiltInFunction("pop"))
	t.Set("extend", NewBuiltInFunction("extend"))

	return t
}

// Run lexes, parses, and evaluates text under fileName, returning
// either the program's result Value or the first Error encountered in
// any stage.
func Run(fileName, text string) (Value, *Error) {
	runID := uuid.New().String()
	log := rtlog.Logger()
	log.Debugf("run %s start file=%s", runID, fileName)

	tokens, err := Lex(fileName, text)
	if err != nil {
		log.Debugf("run %s lex error: %s", runID, err.Message)
		return nil, err
	}

	root, err := Parse(tokens)
	if err != nil {
		log.Debugf("run %s parse error: %s", runID, err.Message)
		return nil, err
	}

	rootCtx := NewContext("<main>", nil, Position{})
	rootCtx.SymbolTable = globalSymbolTable

	result, err := runStatements(root, rootCtx)
	if err != nil {
		log.Debugf("run %s eval error: %s", runID, err.Message)
		return nil, err
	}

	log.Debugf("run %s done", runID)
	return result, nil
}

// runStatements evaluates the program's top-level statement sequence
// and returns the value of the LAST statement, not a List collecting
// every statement's value.
//
// The parser represents both a `[...]` list literal and a top-level
// statement sequence as a ListNode, so a plain Visit(root, ...) would
// hand back a List wrapping every statement's result — correct for a
// literal, not useful as a program's result. Walking the statements
// directly here keeps that literal-list semantics intact everywhere
// else while giving Run() the single value callers actually want.
func runStatements(root Node, ctx *Context) (Value, *Error) {
	stmts, ok := root.(*ListNode)
	if !ok {
		return Visit(root, ctx)
	}

	result := Value(NewIntNumber(0))
	for _, stmtNode := range stmts.Elements {
		v, err := Visit(stmtNode, ctx)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}
