package basiclang

import (
	"math"

	"github.com/SHENSHENZYC/basiclang/internal/rtlog"
)

// Visit dispatches to an evaluation step by the node's concrete Go
// type — the Go type switch stands in for the name-synthesized
// "visit_<TypeName>" dispatch of a reflection-based evaluator. The
// compiler does not check the switch for exhaustiveness: a node
// variant with no case here reaches the default branch and panics.
func Visit(node Node, ctx *Context) (Value, *Error) {
	switch n := node.(type) {
	case *NumberNode:
		return visitNumber(n, ctx)
	case *StringNode:
		return visitString(n, ctx)
	case *ListNode:
		return visitList(n, ctx)
	case *BinOpNode:
		return visitBinOp(n, ctx)
	case *UnaryOpNode:
		return visitUnaryOp(n, ctx)
	case *VarAssignNode:
		return visitVarAssign(n, ctx)
	case *VarAccessNode:
		return visitVarAccess(n, ctx)
	case *IfNode:
		return visitIf(n, ctx)
	case *ForNode:
		return visitFor(n, ctx)
	case *WhileNode:
		return visitWhile(n, ctx)
	case *FuncDefNode:
		return visitFuncDef(n, ctx)
	case *FuncCallNode:
		return visitFuncCall(n, ctx)
	default:
		panic("basiclang: no Visit case for AST node type")
	}
}

func visitNumber(n *NumberNode, ctx *Context) (Value, *Error) {
	var result Value
	switch v := n.Tok.Value.(type) {
	case int64:
		result = NewNumber(float64(v), true)
	case float64:
		result = NewNumber(v, false)
	}
	result.SetContext(ctx)
	result.SetPos(n.start, n.end)
	return result, nil
}

func visitString(n *StringNode, ctx *Context) (Value, *Error) {
	result := NewStr(n.Tok.Value.(string))
	result.SetContext(ctx)
	result.SetPos(n.start, n.end)
	return result, nil
}

func visitList(n *ListNode, ctx *Context) (Value, *Error) {
	elements := make([]Value, 0, len(n.Elements))
	for _, elemNode := range n.Elements {
		v, err := Visit(elemNode, ctx)
		if err != nil {
			return nil, err
		}
		elements = append(elements, v)
	}
	result := NewList(elements)
	result.SetContext(ctx)
	result.SetPos(n.start, n.end)
	return result, nil
}

func visitBinOp(n *BinOpNode, ctx *Context) (Value, *Error) {
	left, err := Visit(n.Left, ctx)
	if err != nil {
		return nil, err
	}
	right, err := Visit(n.Right, ctx)
	if err != nil {
		return nil, err
	}

	result, opErr := applyBinOp(n.Op, left, right, ctx)
	if opErr != nil {
		return nil, opErr
	}
	result.SetPos(n.start, n.end)
	return result, nil
}

func applyBinOp(op Token, left, right Value, ctx *Context) (Value, *Error) {
	start, end := left.Pos()
	_, rEnd := right.Pos()
	end = rEnd

	switch {
	case op.Kind == PLUS:
		if la, lb, ok := numbersOnly(left, right); ok {
			return NewNumber(la.Val+lb.Val, la.IsInt && lb.IsInt).SetContext(ctx), nil
		}
		if ls, rs, ok := bothStr(left, right); ok {
			return NewStr(ls.Val + rs.Val).SetContext(ctx), nil
		}
		if l, ok := left.(*List); ok {
			return listAppend(l, right, ctx), nil
		}
		return nil, illegalOperation(start, end, ctx)

	case op.Kind == MINUS:
		if la, lb, ok := numbersOnly(left, right); ok {
			return NewNumber(la.Val-lb.Val, la.IsInt && lb.IsInt).SetContext(ctx), nil
		}
		if l, ok := left.(*List); ok {
			if idx, ok := right.(*Number); ok {
				return listRemove(l, idx, ctx)
			}
		}
		return nil, illegalOperation(start, end, ctx)

	case op.Kind == MUL:
		if la, lb, ok := numbersOnly(left, right); ok {
			return NewNumber(la.Val*lb.Val, la.IsInt && lb.IsInt).SetContext(ctx), nil
		}
		if s, ok := left.(*Str); ok {
			if n, ok := right.(*Number); ok {
				return NewStr(repeatString(s.Val, int(n.Val))).SetContext(ctx), nil
			}
		}
		if l, ok := left.(*List); ok {
			if r, ok := right.(*List); ok {
				return listExtend(l, r, ctx), nil
			}
		}
		return nil, illegalOperation(start, end, ctx)

	case op.Kind == DIV:
		if la, lb, ok := numbersOnly(left, right); ok {
			if lb.Val == 0 {
				rStart, rEnd := right.Pos()
				return nil, NewRuntimeError(rStart, rEnd, "Division by zero", ctx)
			}
			return NewNumber(la.Val/lb.Val, false).SetContext(ctx), nil
		}
		if l, ok := left.(*List); ok {
			if idx, ok := right.(*Number); ok {
				return listIndex(l, idx, ctx)
			}
		}
		return nil, illegalOperation(start, end, ctx)

	case op.Kind == POW:
		if la, lb, ok := numbersOnly(left, right); ok {
			val := math.Pow(la.Val, lb.Val)
			isInt := la.IsInt && lb.IsInt && lb.Val >= 0
			if isInt {
				return NewNumber(math.Round(val), true).SetContext(ctx), nil
			}
			return NewNumber(val, false).SetContext(ctx), nil
		}
		return nil, illegalOperation(start, end, ctx)

	case op.Kind == EE:
		return compareOrIllegal(left, right, ctx, start, end, func(a, b float64) bool { return a == b })
	case op.Kind == NE:
		return compareOrIllegal(left, right, ctx, start, end, func(a, b float64) bool { return a != b })
	case op.Kind == LT:
		return compareOrIllegal(left, right, ctx, start, end, func(a, b float64) bool { return a < b })
	case op.Kind == LTE:
		return compareOrIllegal(left, right, ctx, start, end, func(a, b float64) bool { return a <= b })
	case op.Kind == GT:
		return compareOrIllegal(left, right, ctx, start, end, func(a, b float64) bool { return a > b })
	case op.Kind == GTE:
		return compareOrIllegal(left, right, ctx, start, end, func(a, b float64) bool { return a >= b })

	case op.Is(KEYWORD, "and"):
		if la, lb, ok := numbersOnly(left, right); ok {
			chosen := la.Val
			if la.Val != 0 {
				chosen = lb.Val
			}
			return truncInt(chosen).SetContext(ctx), nil
		}
		return nil, illegalOperation(start, end, ctx)

	case op.Is(KEYWORD, "or"):
		if la, lb, ok := numbersOnly(left, right); ok {
			chosen := la.Val
			if la.Val == 0 {
				chosen = lb.Val
			}
			return truncInt(chosen).SetContext(ctx), nil
		}
		return nil, illegalOperation(start, end, ctx)
	}

	return nil, illegalOperation(start, end, ctx)
}

func compareOrIllegal(left, right Value, ctx *Context, start, end Position, cmp func(a, b float64) bool) (Value, *Error) {
	la, lb, ok := numbersOnly(left, right)
	if !ok {
		return nil, illegalOperation(start, end, ctx)
	}
	return boolNumber(cmp(la.Val, lb.Val)).SetContext(ctx), nil
}

func bothStr(a, b Value) (*Str, *Str, bool) {
	sa, ok1 := a.(*Str)
	sb, ok2 := b.(*Str)
	return sa, sb, ok1 && ok2
}

func repeatString(s string, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

func listAppend(l *List, v Value, ctx *Context) Value {
	cp := l.Copy().(*List)
	*cp.Elements = append(*cp.Elements, v)
	return cp.SetContext(ctx)
}

func listExtend(a, b *List, ctx *Context) Value {
	cp := a.Copy().(*List)
	*cp.Elements = append(*cp.Elements, *b.Elements...)
	return cp.SetContext(ctx)
}

func listRemove(l *List, idx *Number, ctx *Context) (Value, *Error) {
	i := int(idx.Val)
	elems := *l.Elements
	if i < 0 || i >= len(elems) {
		iStart, iEnd := idx.Pos()
		return nil, NewRuntimeError(iStart, iEnd,
			"Element at this index could not be removed from list because index is out of bounds", ctx)
	}
	cp := l.Copy().(*List)
	rest := make([]Value, 0, len(elems)-1)
	rest = append(rest, elems[:i]...)
	rest = append(rest, elems[i+1:]...)
	*cp.Elements = rest
	return cp.SetContext(ctx), nil
}

func listIndex(l *List, idx *Number, ctx *Context) (Value, *Error) {
	i := int(idx.Val)
	elems := *l.Elements
	if i < 0 || i >= len(elems) {
		iStart, iEnd := idx.Pos()
		return nil, NewRuntimeError(iStart, iEnd,
			"Element at this index could not be retrieved from list because index is out of bounds", ctx)
	}
	return elems[i], nil
}

func illegalOperation(start, end Position, ctx *Context) *Error {
	return NewRuntimeError(start, end, "Illegal operation", ctx)
}

func visitUnaryOp(n *UnaryOpNode, ctx *Context) (Value, *Error) {
	operand, err := Visit(n.Operand, ctx)
	if err != nil {
		return nil, err
	}

	var result Value
	start, end := operand.Pos()

	switch {
	case n.Op.Kind == MINUS:
		num, ok := operand.(*Number)
		if !ok {
			return nil, illegalOperation(start, end, ctx)
		}
		result = NewNumber(-num.Val, num.IsInt).SetContext(ctx)
	case n.Op.Is(KEYWORD, "not"):
		num, ok := operand.(*Number)
		if !ok {
			return nil, illegalOperation(start, end, ctx)
		}
		result = boolNumber(num.Val == 0).SetContext(ctx)
	default:
		return nil, illegalOperation(start, end, ctx)
	}

	result.SetPos(n.start, n.end)
	return result, nil
}

func visitVarAssign(n *VarAssignNode, ctx *Context) (Value, *Error) {
	name, _ := n.Name.Value.(string)
	value, err := Visit(n.Value, ctx)
	if err != nil {
		return nil, err
	}
	ctx.SymbolTable.Set(name, value)
	return value, nil
}

func visitVarAccess(n *VarAccessNode, ctx *Context) (Value, *Error) {
	name, _ := n.Name.Value.(string)
	value, ok := ctx.SymbolTable.Get(name)
	if !ok {
		return nil, NewRuntimeError(n.start, n.end, "'"+name+"' is not defined", ctx)
	}
	value = value.Copy()
	value.SetPos(n.start, n.end)
	value.SetContext(ctx)
	return value, nil
}

func visitIf(n *IfNode, ctx *Context) (Value, *Error) {
	for _, c := range n.Cases {
		condVal, err := Visit(c.Cond, ctx)
		if err != nil {
			return nil, err
		}
		if condVal.IsTrue() {
			exprVal, err := Visit(c.Body, ctx)
			if err != nil {
				return nil, err
			}
			if c.BodyIsBlock {
				return NewIntNumber(0).SetContext(ctx), nil
			}
			return exprVal, nil
		}
	}

	if n.Else != nil {
		elseVal, err := Visit(n.Else.Body, ctx)
		if err != nil {
			return nil, err
		}
		if n.Else.BodyIsBlock {
			return NewIntNumber(0).SetContext(ctx), nil
		}
		return elseVal, nil
	}

	return NewIntNumber(0).SetContext(ctx), nil
}

func visitFor(n *ForNode, ctx *Context) (Value, *Error) {
	startVal, err := Visit(n.StartNode, ctx)
	if err != nil {
		return nil, err
	}
	endVal, err := Visit(n.EndNode, ctx)
	if err != nil {
		return nil, err
	}
	start, ok := startVal.(*Number)
	if !ok {
		s, e := startVal.Pos()
		return nil, illegalOperation(s, e, ctx)
	}
	end, ok := endVal.(*Number)
	if !ok {
		s, e := endVal.Pos()
		return nil, illegalOperation(s, e, ctx)
	}

	step := 1.0
	stepIsInt := true
	if n.StepNode != nil {
		stepVal, err := Visit(n.StepNode, ctx)
		if err != nil {
			return nil, err
		}
		stepNum, ok := stepVal.(*Number)
		if !ok {
			s, e := stepVal.Pos()
			return nil, illegalOperation(s, e, ctx)
		}
		step = stepNum.Val
		stepIsInt = stepNum.IsInt
	}

	varName, _ := n.VarName.Value.(string)
	var elements []Value
	i := start.Val
	isInt := start.IsInt

	cond := func() bool {
		if step >= 0 {
			return i < end.Val
		}
		return i > end.Val
	}

	for cond() {
		ctx.SymbolTable.Set(varName, NewNumber(i, isInt).SetContext(ctx))
		i += step
		isInt = isInt && stepIsInt

		v, err := Visit(n.Body, ctx)
		if err != nil {
			return nil, err
		}
		elements = append(elements, v)
	}

	if n.BodyIsBlock {
		return NewIntNumber(0).SetContext(ctx), nil
	}
	result := NewList(elements)
	result.SetContext(ctx)
	result.SetPos(n.start, n.end)
	return result, nil
}

func visitWhile(n *WhileNode, ctx *Context) (Value, *Error) {
	var elements []Value

	for {
		condVal, err := Visit(n.Cond, ctx)
		if err != nil {
			return nil, err
		}
		if !condVal.IsTrue() {
			break
		}

		v, err := Visit(n.Body, ctx)
		if err != nil {
			return nil, err
		}
		elements = append(elements, v)
	}

	if n.BodyIsBlock {
		return NewIntNumber(0).SetContext(ctx), nil
	}
	result := NewList(elements)
	result.SetContext(ctx)
	result.SetPos(n.start, n.end)
	return result, nil
}

func visitFuncDef(n *FuncDefNode, ctx *Context) (Value, *Error) {
	argNames := make([]string, len(n.ArgTokens))
	for i, t := range n.ArgTokens {
		argNames[i], _ = t.Value.(string)
	}

	name := ""
	if n.HasName {
		name, _ = n.NameTok.Value.(string)
	}

	fn := NewFunction(name, n.HasName, argNames, n.Body, n.BodyIsBlock)
	fn.SetPos(n.start, n.end)
	fn.SetContext(ctx)

	if n.HasName {
		ctx.SymbolTable.Set(name, fn)
	}
	return fn, nil
}

func visitFuncCall(n *FuncCallNode, ctx *Context) (Value, *Error) {
	callee, err := Visit(n.Callee, ctx)
	if err != nil {
		return nil, err
	}
	callee.SetPos(n.start, n.end)
	callee.SetContext(ctx)

	args := make([]Value, 0, len(n.Args))
	for _, argNode := range n.Args {
		v, err := Visit(argNode, ctx)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	result, callErr := callValue(callee, args, n.start, n.end, ctx)
	if callErr != nil {
		return nil, callErr
	}
	result = result.Copy()
	result.SetPos(n.start, n.end)
	result.SetContext(ctx)
	return result, nil
}

// callValue applies a Function or BuiltInFunction to args. Any other
// Value kind is not callable.
func callValue(callee Value, args []Value, start, end Position, ctx *Context) (Value, *Error) {
	log := rtlog.Logger()

	switch fn := callee.(type) {
	case *Function:
		callCtx := generateFuncContext(fn.displayName(), fn.Context(), start)
		if err := checkArgCount(fn.displayName(), fn.ArgNames, args, start, end, ctx); err != nil {
			return nil, err
		}
		populateArgs(fn.ArgNames, args, callCtx)

		log.Tracef("call function=%s args=%d", fn.displayName(), len(args))
		value, err := Visit(fn.Body, callCtx)
		if err != nil {
			return nil, err
		}
		if fn.BodyIsBlock {
			return NewIntNumber(0), nil
		}
		return value, nil

	case *BuiltInFunction:
		callCtx := generateFuncContext(fn.Name, ctx, start)
		impl, ok := builtins[fn.Name]
		if !ok {
			panic("basiclang: no built-in implementation registered for " + fn.Name)
		}
		if err := checkArgCount(fn.Name, impl.argNames, args, start, end, ctx); err != nil {
			return nil, err
		}
		populateArgs(impl.argNames, args, callCtx)

		log.Tracef("call builtin=%s args=%d", fn.Name, len(args))
		return impl.run(callCtx, start, end)

	default:
		s, e := callee.Pos()
		return nil, illegalOperation(s, e, ctx)
	}
}
