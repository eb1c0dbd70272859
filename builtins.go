package basiclang

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	juju "github.com/juju/errors"
	"github.com/spf13/cast"

	"github.com/SHENSHENZYC/basiclang/internal/rtlog"
)

// builtinImpl pairs a built-in's fixed parameter list with its
// implementation. run reads its arguments from callCtx's symbol table
// (already populated by callValue under those names) exactly the way
// the original binds Function arguments — a built-in and a
// user-defined function share the same calling convention.
type builtinImpl struct {
	argNames []string
	run      func(callCtx *Context, start, end Position) (Value, *Error)
}

var stdin = bufio.NewReader(os.Stdin)

// builtins is the fixed dispatch table backing every BuiltInFunction
// value. The global symbol table in run.go binds several names (print,
// clear/cls, is_num, ...) to the same entries here.
var builtins = map[string]builtinImpl{
	"print":       {argNames: []string{"value"}, run: builtinPrint},
	"print_ret":   {argNames: []string{"value"}, run: builtinPrintRet},
	"input":       {argNames: []string{}, run: builtinInput},
	"input_int":   {argNames: []string{}, run: builtinInputInt},
	"clear":       {argNames: []string{}, run: builtinClear},
	"is_number":   {argNames: []string{"value"}, run: builtinIsNumber},
	"is_string":   {argNames: []string{"value"}, run: builtinIsString},
	"is_list":     {argNames: []string{"value"}, run: builtinIsList},
	"is_function": {argNames: []string{"value"}, run: builtinIsFunction},
	"append":      {argNames: []string{"list", "value"}, run: builtinAppend},
	"pop":         {argNames: []string{"list", "index"}, run: builtinPop},
	"extend":      {argNames: []string{"listA", "listB"}, run: builtinExtend},
}

func builtinPrint(callCtx *Context, start, end Position) (Value, *Error) {
	v, _ := callCtx.SymbolTable.Get("value")
	fmt.Println(v.String())
	return NewIntNumber(0), nil
}

func builtinPrintRet(callCtx *Context, start, end Position) (Value, *Error) {
	v, _ := callCtx.SymbolTable.Get("value")
	return NewStr(v.String()), nil
}

func builtinInput(callCtx *Context, start, end Position) (Value, *Error) {
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return nil, wrapInternal(start, end, callCtx, "reading input", err)
	}
	return NewStr(strings.TrimRight(line, "\r\n")), nil
}

func builtinInputInt(callCtx *Context, start, end Position) (Value, *Error) {
	log := rtlog.Logger()
	for {
		line, readErr := stdin.ReadString('\n')
		if readErr != nil && line == "" {
			return nil, wrapInternal(start, end, callCtx, "reading input_int", readErr)
		}
		line = strings.TrimRight(line, "\r\n")

		n, err := cast.ToInt64E(line)
		if err != nil {
			log.Debugf("input_int rejected %q: %s", line, juju.Annotate(err, "parsing input").Error())
			fmt.Printf("'%s' must be an integer. Try again!\n", line)
			continue
		}
		return NewIntNumber(n), nil
	}
}

func builtinClear(callCtx *Context, start, end Position) (Value, *Error) {
	clearSeq := "\x1b[H\x1b[2J"
	fmt.Print(clearSeq)
	return NewIntNumber(0), nil
}

func builtinIsNumber(callCtx *Context, start, end Position) (Value, *Error) {
	v, _ := callCtx.SymbolTable.Get("value")
	_, ok := v.(*Number)
	return boolNumber(ok), nil
}

func builtinIsString(callCtx *Context, start, end Position) (Value, *Error) {
	v, _ := callCtx.SymbolTable.Get("value")
	_, ok := v.(*Str)
	return boolNumber(ok), nil
}

func builtinIsList(callCtx *Context, start, end Position) (Value, *Error) {
	v, _ := callCtx.SymbolTable.Get("value")
	_, ok := v.(*List)
	return boolNumber(ok), nil
}

func builtinIsFunction(callCtx *Context, start, end Position) (Value, *Error) {
	v, _ := callCtx.SymbolTable.Get("value")
	switch v.(type) {
	case *Function, *BuiltInFunction:
		return boolNumber(true), nil
	default:
		return boolNumber(false), nil
	}
}

func builtinAppend(callCtx *Context, start, end Position) (Value, *Error) {
	listVal, _ := callCtx.SymbolTable.Get("list")
	value, _ := callCtx.SymbolTable.Get("value")

	list, ok := listVal.(*List)
	if !ok {
		return nil, NewRuntimeError(start, end, "First argument must be list", callCtx)
	}
	*list.Elements = append(*list.Elements, value)
	return NewIntNumber(0), nil
}

func builtinPop(callCtx *Context, start, end Position) (Value, *Error) {
	listVal, _ := callCtx.SymbolTable.Get("list")
	indexVal, _ := callCtx.SymbolTable.Get("index")

	list, ok := listVal.(*List)
	if !ok {
		return nil, NewRuntimeError(start, end, "First argument must be list", callCtx)
	}
	index, ok := indexVal.(*Number)
	if !ok {
		return nil, NewRuntimeError(start, end, "Second argument must be number", callCtx)
	}

	i := int(index.Val)
	elems := *list.Elements
	if i < 0 || i >= len(elems) {
		return nil, NewRuntimeError(start, end,
			"Element at this index could not be removed from list because index is out of bounds", callCtx)
	}

	removed := elems[i]
	rest := make([]Value, 0, len(elems)-1)
	rest = append(rest, elems[:i]...)
	rest = append(rest, elems[i+1:]...)
	*list.Elements = rest

	return removed, nil
}

func builtinExtend(callCtx *Context, start, end Position) (Value, *Error) {
	listAVal, _ := callCtx.SymbolTable.Get("listA")
	listBVal, _ := callCtx.SymbolTable.Get("listB")

	listA, ok := listAVal.(*List)
	if !ok {
		return nil, NewRuntimeError(start, end, "First argument must be list", callCtx)
	}
	listB, ok := listBVal.(*List)
	if !ok {
		return nil, NewRuntimeError(start, end, "Second argument must be list", callCtx)
	}

	*listA.Elements = append(*listA.Elements, *listB.Elements...)
	return NewIntNumber(0), nil
}
