package basiclang

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Value is the closed set of runtime values: Number, Str, List,
// Function, BuiltInFunction. Operators and calls are NOT methods on
// Value — they are implemented as exhaustive type switches in
// interpreter.go, matching the evaluator's "dispatch by variant"
// design rather than the open-ended double-dispatch a method-per-op
// interface would invite.
type Value interface {
	Pos() (start, end Position)
	SetPos(start, end Position) Value
	Context() *Context
	SetContext(ctx *Context) Value
	IsTrue() bool
	Copy() Value
	String() string
	Repr() string
}

// valueBase carries the diagnostic position and captured context every
// concrete Value embeds. It is not itself a Value.
type valueBase struct {
	start, end Position
	ctx        *Context
}

func (b valueBase) Pos() (Position, Position) { return b.start, b.end }
func (b valueBase) Context() *Context         { return b.ctx }

// Number is a double-precision value that remembers whether it was
// produced from integer arithmetic, purely so it prints the way the
// source author wrote it (3 vs 3.0) and so the power/divide rules that
// depend on int-ness come out right.
type Number struct {
	valueBase
	Val   float64
	IsInt bool
}

func NewNumber(val float64, isInt bool) *Number {
	return &Number{Val: val, IsInt: isInt}
}

func NewIntNumber(val int64) *Number { return NewNumber(float64(val), true) }

func (n *Number) SetPos(start, end Position) Value {
	n.start, n.end = start, end
	return n
}

func (n *Number) SetContext(ctx *Context) Value {
	n.ctx = ctx
	return n
}

func (n *Number) IsTrue() bool { return n.Val != 0 }

func (n *Number) Copy() Value {
	cp := &Number{valueBase: n.valueBase, Val: n.Val, IsInt: n.IsInt}
	return cp
}

func (n *Number) String() string {
	if n.IsInt {
		return strconv.FormatInt(int64(n.Val), 10)
	}
	s := strconv.FormatFloat(n.Val, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// Repr is identical to String for a Number: there is no quoting or
// bracketing distinction for a bare decimal.
func (n *Number) Repr() string { return n.String() }

// Str is a text value. String renders it unquoted (what print and
// List.String use); Repr renders it double-quoted, the form an
// interactive echo would use. List.Repr renders its elements via
// String, so a string inside a list is never quoted.
type Str struct {
	valueBase
	Val string
}

func NewStr(val string) *Str { return &Str{Val: val} }

func (s *Str) SetPos(start, end Position) Value {
	s.start, s.end = start, end
	return s
}

func (s *Str) SetContext(ctx *Context) Value {
	s.ctx = ctx
	return s
}

func (s *Str) IsTrue() bool   { return len(s.Val) > 0 }
func (s *Str) Copy() Value    { return &Str{valueBase: s.valueBase, Val: s.Val} }
func (s *Str) String() string { return s.Val }

// Repr quotes the string the way Python's repr() does for the plain
// ASCII case this language's source syntax actually produces: wrapped
// in double quotes, with embedded backslashes and double quotes
// escaped.
func (s *Str) Repr() string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s.Val)
	return `"` + escaped + `"`
}

// List is an ordered, reference-semantic sequence: Elements is a
// pointer to the backing slice so that Copy (invoked on every variable
// read and every call return) shares the same buffer as the original,
// and append/pop/extend mutate every live alias at once. This mirrors
// a closure capturing a list by reference rather than by value.
type List struct {
	valueBase
	Elements *[]Value
}

func NewList(elements []Value) *List {
	return &List{Elements: &elements}
}

func (l *List) SetPos(start, end Position) Value {
	l.start, l.end = start, end
	return l
}

func (l *List) SetContext(ctx *Context) Value {
	l.ctx = ctx
	return l
}

// IsTrue is always false: only Number and Str override the base
// falsy default (spec.md's Glossary "Truthy" entry; the original's
// List never overrides Value.is_true()).
func (l *List) IsTrue() bool { return false }

func (l *List) Copy() Value {
	return &List{valueBase: l.valueBase, Elements: l.Elements}
}

func (l *List) String() string {
	parts := lo.Map(*l.Elements, func(v Value, _ int) string { return v.String() })
	return strings.Join(parts, ", ")
}

// Repr brackets the joined elements, each rendered via String, not
// Repr — matching the original's List.__repr__/__str__, which both
// join via str(elem). A nested list or string therefore loses its own
// brackets/quotes beyond the outermost level: repr([1, [2, 3]]) is
// "[1, 2, 3]", not "[1, [2, 3]]".
func (l *List) Repr() string {
	return "[" + l.String() + "]"
}

// Function is a user-defined function value: a name (possibly
// anonymous), parameter names, and the body node to evaluate against a
// fresh child context chained to the context captured at definition
// time.
type Function struct {
	valueBase
	Name        string
	HasName     bool
	ArgNames    []string
	Body        Node
	BodyIsBlock bool
}

func NewFunction(name string, hasName bool, argNames []string, body Node, bodyIsBlock bool) *Function {
	return &Function{Name: name, HasName: hasName, ArgNames: argNames, Body: body, BodyIsBlock: bodyIsBlock}
}

func (f *Function) SetPos(start, end Position) Value {
	f.start, f.end = start, end
	return f
}

func (f *Function) SetContext(ctx *Context) Value {
	f.ctx = ctx
	return f
}

// IsTrue is always false: the base Value default applies, unoverridden
// by BaseFunction/Function in the original.
func (f *Function) IsTrue() bool { return false }

func (f *Function) Copy() Value {
	return &Function{valueBase: f.valueBase, Name: f.Name, HasName: f.HasName,
		ArgNames: f.ArgNames, Body: f.Body, BodyIsBlock: f.BodyIsBlock}
}

func (f *Function) String() string {
	return fmt.Sprintf("<function %s>", f.displayName())
}

func (f *Function) Repr() string { return f.String() }

func (f *Function) displayName() string {
	if f.HasName {
		return f.Name
	}
	return "<anonymous>"
}

// BuiltInFunction is a native function identified by name; its
// behavior lives in builtins.go's dispatch table rather than on the
// value itself, keeping the same "match on variant" discipline the
// rest of the evaluator follows.
type BuiltInFunction struct {
	valueBase
	Name string
}

func NewBuiltInFunction(name string) *BuiltInFunction {
	return &BuiltInFunction{Name: name}
}

func (b *BuiltInFunction) SetPos(start, end Position) Value {
	b.start, b.end = start, end
	return b
}

func (b *BuiltInFunction) SetContext(ctx *Context) Value {
	b.ctx = ctx
	return b
}

// IsTrue is always false, for the same reason as Function.IsTrue.
func (b *BuiltInFunction) IsTrue() bool { return false }

func (b *BuiltInFunction) Copy() Value {
	return &BuiltInFunction{valueBase: b.valueBase, Name: b.Name}
}

func (b *BuiltInFunction) String() string {
	return fmt.Sprintf("<built-in function %s>", b.Name)
}

func (b *BuiltInFunction) Repr() string { return b.String() }

// generateFuncContext builds the child activation record a call into
// fn runs against: a new SymbolTable chained to the context captured
// when fn was defined (or, for built-ins, the context active at the
// call site).
func generateFuncContext(displayName string, captured *Context, entryPos Position) *Context {
	callCtx := NewContext(displayName, captured, entryPos)
	parentTable := (*SymbolTable)(nil)
	if captured != nil {
		parentTable = captured.SymbolTable
	}
	callCtx.SymbolTable = NewSymbolTable(parentTable)
	return callCtx
}

func checkArgCount(name string, argNames []string, args []Value, start, end Position, ctx *Context) *Error {
	if len(args) > len(argNames) {
		return NewRuntimeError(start, end,
			fmt.Sprintf("%d too many arguments passed into %s", len(args)-len(argNames), name), ctx)
	}
	if len(args) < len(argNames) {
		return NewRuntimeError(start, end,
			fmt.Sprintf("%d too few arguments passed into %s", len(argNames)-len(args), name), ctx)
	}
	return nil
}

func populateArgs(argNames []string, args []Value, callCtx *Context) {
	for i, name := range argNames {
		v := args[i].SetContext(callCtx)
		callCtx.SymbolTable.Set(name, v)
	}
}

// numbersOnly reports whether both operands are Number, the
// precondition for every arithmetic and comparison operator below.
func numbersOnly(a, b Value) (*Number, *Number, bool) {
	na, ok1 := a.(*Number)
	nb, ok2 := b.(*Number)
	return na, nb, ok1 && ok2
}

func boolNumber(b bool) *Number {
	if b {
		return NewIntNumber(1)
	}
	return NewIntNumber(0)
}

func truncInt(v float64) *Number {
	return NewIntNumber(int64(math.Trunc(v)))
}
