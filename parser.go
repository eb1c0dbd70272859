package basiclang

import (
	"github.com/SHENSHENZYC/basiclang/internal/rtlog"
)

// parseResult is the discipline every production follows: a node (or
// none), an optional error, and a count of tokens the production
// itself advanced past. The count is what lets a caller tell a
// recoverable failure (zero advancement — try another production)
// from a committed one (one or more advancements — propagate).
type parseResult struct {
	node                       Node
	err                        *Error
	advanceCount               int
	lastRegisteredAdvanceCount int
	toReverseCount             int
}

func (r *parseResult) registerAdvancement() {
	r.lastRegisteredAdvanceCount = 1
	r.advanceCount++
}

// register folds another production's result into this one and
// returns its node. If other carries an error, it becomes this
// result's error too (but parsing of other productions continues
// until the caller explicitly checks r.err).
func (r *parseResult) register(other *parseResult) Node {
	r.lastRegisteredAdvanceCount = other.advanceCount
	r.advanceCount += other.advanceCount
	if other.err != nil {
		r.err = other.err
	}
	return other.node
}

// tryRegister is register's speculative counterpart: on error it
// leaves r.err untouched and instead records how far the failed
// attempt advanced, so the caller can reverse() the cursor and try an
// alternative production.
func (r *parseResult) tryRegister(other *parseResult) Node {
	if other.err != nil {
		r.toReverseCount = other.advanceCount
		return nil
	}
	return r.register(other)
}

func (r *parseResult) success(node Node) *parseResult {
	r.node = node
	return r
}

func (r *parseResult) failure(err *Error) *parseResult {
	if r.err == nil || r.lastRegisteredAdvanceCount == 0 {
		r.err = err
	}
	return r
}

// parser is a recursive-descent parser over a fixed token slice. It
// holds no lookahead beyond the single current token; speculative
// productions work by recording an advance count and reversing the
// cursor on failure.
type parser struct {
	tokens     []Token
	tokenIndex int
	cur        Token
}

func newParser(tokens []Token) *parser {
	p := &parser{tokens: tokens, tokenIndex: -1}
	p.advance()
	return p
}

func (p *parser) advance() Token {
	p.tokenIndex++
	if p.tokenIndex >= 0 && p.tokenIndex < len(p.tokens) {
		p.cur = p.tokens[p.tokenIndex]
	}
	return p.cur
}

func (p *parser) reverse(amount int) Token {
	p.tokenIndex -= amount
	if p.tokenIndex >= 0 && p.tokenIndex < len(p.tokens) {
		p.cur = p.tokens[p.tokenIndex]
	}
	return p.cur
}

// Parse builds the root AST node from a token sequence, requiring
// that all tokens (other than a trailing EOF) were consumed.
func Parse(tokens []Token) (Node, *Error) {
	log := rtlog.Logger()
	p := newParser(tokens)
	res := p.statements()
	if res.err == nil && p.cur.Kind != EOF {
		return nil, NewInvalidSyntaxError(p.cur.Start, p.cur.End,
			"Expected '+', '-', '*', '/', '^', '==', '!=', '<', '>', <=', '>=', 'and' or 'or'")
	}
	if res.err != nil {
		log.Debugf("parse error: %s", res.err.Message)
		return nil, res.err
	}
	return res.node, nil
}

func (p *parser) statements() *parseResult {
	res := &parseResult{}
	var statements []Node
	start := p.cur.Start

	for p.cur.Kind == NEWLINE {
		res.registerAdvancement()
		p.advance()
	}

	first := res.register(p.expr())
	if res.err != nil {
		return res
	}
	statements = append(statements, first)

	moreStatements := true
	for {
		newlineCount := 0
		for p.cur.Kind == NEWLINE {
			res.registerAdvancement()
			p.advance()
			newlineCount++
		}
		if newlineCount == 0 {
			moreStatements = false
		}
		if !moreStatements {
			break
		}

		attempt := p.expr()
		stmt := res.tryRegister(attempt)
		if stmt == nil {
			p.reverse(res.toReverseCount)
			moreStatements = false
			continue
		}
		statements = append(statements, stmt)
	}

	return res.success(&ListNode{span: span{start, p.cur.Start}, Elements: statements})
}

func (p *parser) expr() *parseResult {
	res := &parseResult{}

	if p.cur.Is(KEYWORD, "var") {
		res.registerAdvancement()
		p.advance()

		if p.cur.Kind != IDENTIFIER {
			return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected identifier"))
		}
		name := p.cur
		res.registerAdvancement()
		p.advance()

		if p.cur.Kind != EQ {
			return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected '='"))
		}
		res.registerAdvancement()
		p.advance()

		value := res.register(p.expr())
		if res.err != nil {
			return res
		}
		_, end := value.Pos()
		return res.success(&VarAssignNode{span: span{name.Start, end}, Name: name, Value: value})
	}

	node := res.register(p.binOp(p.compExpr, []opMatch{kw("and"), kw("or")}, nil))
	if res.err != nil {
		return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End,
			"Expected 'var', 'if', 'for', 'while', 'func', int, float, identifier, '+', '-', '(', '[', or 'not'"))
	}
	return res.success(node)
}

func (p *parser) compExpr() *parseResult {
	res := &parseResult{}

	if p.cur.Is(KEYWORD, "not") {
		op := p.cur
		res.registerAdvancement()
		p.advance()

		operand := res.register(p.compExpr())
		if res.err != nil {
			return res
		}
		_, end := operand.Pos()
		return res.success(&UnaryOpNode{span: span{op.Start, end}, Op: op, Operand: operand})
	}

	ops := []opMatch{tt(EE), tt(NE), tt(LT), tt(LTE), tt(GT), tt(GTE)}
	node := res.register(p.binOp(p.arithExpr, ops, nil))
	if res.err != nil {
		return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End,
			"Expected int, float, identifier, '+', '-', '(', '[', or 'not'"))
	}
	return res.success(node)
}

func (p *parser) arithExpr() *parseResult {
	return p.binOp(p.term, []opMatch{tt(PLUS), tt(MINUS)}, nil)
}

func (p *parser) term() *parseResult {
	return p.binOp(p.factor, []opMatch{tt(MUL), tt(DIV)}, nil)
}

func (p *parser) factor() *parseResult {
	res := &parseResult{}
	tok := p.cur

	if tok.Kind == PLUS || tok.Kind == MINUS {
		res.registerAdvancement()
		p.advance()
		operand := res.register(p.factor())
		if res.err != nil {
			return res
		}
		_, end := operand.Pos()
		return res.success(&UnaryOpNode{span: span{tok.Start, end}, Op: tok, Operand: operand})
	}

	return p.power()
}

func (p *parser) power() *parseResult {
	return p.binOp(p.call, []opMatch{tt(POW)}, p.factor)
}

func (p *parser) call() *parseResult {
	res := &parseResult{}
	atom := res.register(p.atom())
	if res.err != nil {
		return res
	}

	if p.cur.Kind != LPAREN {
		return res.success(atom)
	}

	res.registerAdvancement()
	p.advance()
	var args []Node

	if p.cur.Kind == RPAREN {
		res.registerAdvancement()
		p.advance()
	} else {
		first := res.register(p.expr())
		if res.err != nil {
			return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End,
				"Expected 'var', 'if', 'for', 'while', 'func', int, float, identifier, '+', '-', '(', ')', '[', or 'not'"))
		}
		args = append(args, first)

		for p.cur.Kind == COMMA {
			res.registerAdvancement()
			p.advance()
			arg := res.register(p.expr())
			if res.err != nil {
				return res
			}
			args = append(args, arg)
		}

		if p.cur.Kind != RPAREN {
			return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected ',' or ')'"))
		}
		res.registerAdvancement()
		p.advance()
	}

	start, _ := atom.Pos()
	return res.success(&FuncCallNode{span: span{start, p.cur.Start}, Callee: atom, Args: args})
}

func (p *parser) atom() *parseResult {
	res := &parseResult{}
	tok := p.cur

	switch {
	case tok.Kind == LPAREN:
		res.registerAdvancement()
		p.advance()
		expr := res.register(p.expr())
		if res.err != nil {
			return res
		}
		if p.cur.Kind != RPAREN {
			return res.failure(NewInvalidSyntaxError(tok.Start, tok.End, "Expected ')'"))
		}
		res.registerAdvancement()
		p.advance()
		return res.success(expr)

	case tok.Kind == INT || tok.Kind == FLOAT:
		res.registerAdvancement()
		p.advance()
		return res.success(&NumberNode{span: span{tok.Start, tok.End}, Tok: tok})

	case tok.Kind == STRING:
		res.registerAdvancement()
		p.advance()
		return res.success(&StringNode{span: span{tok.Start, tok.End}, Tok: tok})

	case tok.Kind == IDENTIFIER:
		res.registerAdvancement()
		p.advance()
		return res.success(&VarAccessNode{span: span{tok.Start, tok.End}, Name: tok})

	case tok.Kind == LSQUARE:
		list := res.register(p.listExpr())
		if res.err != nil {
			return res
		}
		return res.success(list)

	case tok.Is(KEYWORD, "if"):
		ifExpr := res.register(p.ifExpr())
		if res.err != nil {
			return res
		}
		return res.success(ifExpr)

	case tok.Is(KEYWORD, "for"):
		forExpr := res.register(p.forExpr())
		if res.err != nil {
			return res
		}
		return res.success(forExpr)

	case tok.Is(KEYWORD, "while"):
		whileExpr := res.register(p.whileExpr())
		if res.err != nil {
			return res
		}
		return res.success(whileExpr)

	case tok.Is(KEYWORD, "func"):
		funcDef := res.register(p.funcDef())
		if res.err != nil {
			return res
		}
		return res.success(funcDef)
	}

	return res.failure(NewInvalidSyntaxError(tok.Start, tok.End,
		"Expected 'if', 'for', 'while', 'func', int, float, identifier, '+', '-', '(', or '['"))
}

func (p *parser) listExpr() *parseResult {
	res := &parseResult{}
	var elements []Node
	start := p.cur.Start

	if p.cur.Kind != LSQUARE {
		return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected '['"))
	}
	res.registerAdvancement()
	p.advance()

	if p.cur.Kind == RSQUARE {
		res.registerAdvancement()
		p.advance()
	} else {
		first := res.register(p.expr())
		if res.err != nil {
			return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End,
				"Expected 'var', 'if', 'for', 'while', 'func', int, float, identifier, '+', '-', '(', '[', ']', or 'not'"))
		}
		elements = append(elements, first)

		for p.cur.Kind == COMMA {
			res.registerAdvancement()
			p.advance()
			elem := res.register(p.expr())
			if res.err != nil {
				return res
			}
			elements = append(elements, elem)
		}

		if p.cur.Kind != RSQUARE {
			return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected ',' or ']'"))
		}
		res.registerAdvancement()
		p.advance()
	}

	return res.success(&ListNode{span: span{start, p.cur.End}, Elements: elements})
}

func (p *parser) ifExpr() *parseResult {
	res := &parseResult{}
	start := p.cur.Start

	cases, elseCase := res.register2(p.ifExprCases("if"))
	if res.err != nil {
		return res
	}
	return res.success(&IfNode{span: span{start, p.cur.End}, Cases: cases, Else: elseCase})
}

// register2 mirrors register but for productions that bundle two
// return values (cases + else-case) behind the parseResult's single
// node slot via ifCasesBundle.
func (r *parseResult) register2(other *parseResult) ([]IfCase, *ElseCase) {
	node := r.register(other)
	if node == nil {
		return nil, nil
	}
	bundle := node.(*ifCasesBundle)
	return bundle.cases, bundle.elseCase
}

// ifCasesBundle is an internal carrier node (never part of the public
// AST) used to thread (cases, elseCase) pairs through parseResult's
// single-node convention, the way the grammar's elif/else productions
// hand back two values at once.
type ifCasesBundle struct {
	span
	cases    []IfCase
	elseCase *ElseCase
}

func (p *parser) elifExpr() *parseResult {
	return p.ifExprCases("elif")
}

func (p *parser) elseExpr() *parseResult {
	res := &parseResult{}
	var elseCase *ElseCase

	if p.cur.Is(KEYWORD, "else") {
		res.registerAdvancement()
		p.advance()

		if p.cur.Kind == NEWLINE {
			res.registerAdvancement()
			p.advance()

			body := res.register(p.statements())
			if res.err != nil {
				return res
			}
			elseCase = &ElseCase{Body: body, BodyIsBlock: true}

			if !p.cur.Is(KEYWORD, "end") {
				return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected keyword 'end'"))
			}
			res.registerAdvancement()
			p.advance()
		} else {
			body := res.register(p.expr())
			if res.err != nil {
				return res
			}
			elseCase = &ElseCase{Body: body, BodyIsBlock: false}
		}
	}

	return res.success(&ifCasesBundle{elseCase: elseCase})
}

func (p *parser) elifOrElseExpr() *parseResult {
	res := &parseResult{}
	var cases []IfCase
	var elseCase *ElseCase

	if p.cur.Is(KEYWORD, "elif") {
		c, e := res.register2(p.elifExpr())
		if res.err != nil {
			return res
		}
		cases, elseCase = c, e
	} else {
		e := res.register(p.elseExpr())
		if res.err != nil {
			return res
		}
		elseCase = e.(*ifCasesBundle).elseCase
	}

	return res.success(&ifCasesBundle{cases: cases, elseCase: elseCase})
}

func (p *parser) ifExprCases(keyword string) *parseResult {
	res := &parseResult{}
	var cases []IfCase

	if !p.cur.Is(KEYWORD, keyword) {
		return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected keyword '"+keyword+"'"))
	}
	res.registerAdvancement()
	p.advance()

	cond := res.register(p.expr())
	if res.err != nil {
		return res
	}

	if !p.cur.Is(KEYWORD, "then") {
		return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected keyword 'then'"))
	}
	res.registerAdvancement()
	p.advance()

	if p.cur.Kind == NEWLINE {
		res.registerAdvancement()
		p.advance()

		body := res.register(p.statements())
		if res.err != nil {
			return res
		}
		cases = append(cases, IfCase{Cond: cond, Body: body, BodyIsBlock: true})

		var elseCase *ElseCase
		if p.cur.Is(KEYWORD, "end") {
			res.registerAdvancement()
			p.advance()
		} else {
			more, e := res.register2(p.elifOrElseExpr())
			if res.err != nil {
				return res
			}
			cases = append(cases, more...)
			elseCase = e
		}
		return res.success(&ifCasesBundle{cases: cases, elseCase: elseCase})
	}

	body := res.register(p.expr())
	if res.err != nil {
		return res
	}
	cases = append(cases, IfCase{Cond: cond, Body: body, BodyIsBlock: false})

	more, elseCase := res.register2(p.elifOrElseExpr())
	if res.err != nil {
		return res
	}
	cases = append(cases, more...)

	return res.success(&ifCasesBundle{cases: cases, elseCase: elseCase})
}

func (p *parser) forExpr() *parseResult {
	res := &parseResult{}
	start := p.cur.Start

	if !p.cur.Is(KEYWORD, "for") {
		return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected keyword 'for'"))
	}
	res.registerAdvancement()
	p.advance()

	if p.cur.Kind != IDENTIFIER {
		return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected identifier"))
	}
	varName := p.cur
	res.registerAdvancement()
	p.advance()

	if p.cur.Kind != EQ {
		return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected '='"))
	}
	res.registerAdvancement()
	p.advance()

	startValue := res.register(p.expr())
	if res.err != nil {
		return res
	}

	if !p.cur.Is(KEYWORD, "to") {
		return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected keyword 'to'"))
	}
	res.registerAdvancement()
	p.advance()

	endValue := res.register(p.expr())
	if res.err != nil {
		return res
	}

	var stepValue Node
	if p.cur.Is(KEYWORD, "step") {
		res.registerAdvancement()
		p.advance()
		stepValue = res.register(p.expr())
		if res.err != nil {
			return res
		}
	}

	if !p.cur.Is(KEYWORD, "do") {
		return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected keyword 'do'"))
	}
	res.registerAdvancement()
	p.advance()

	if p.cur.Kind == NEWLINE {
		res.registerAdvancement()
		p.advance()

		body := res.register(p.statements())
		if res.err != nil {
			return res
		}
		if !p.cur.Is(KEYWORD, "end") {
			return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected keyword 'end'"))
		}
		res.registerAdvancement()
		p.advance()

		return res.success(&ForNode{span: span{start, p.cur.End}, VarName: varName,
			StartNode: startValue, EndNode: endValue, StepNode: stepValue, Body: body, BodyIsBlock: true})
	}

	body := res.register(p.expr())
	if res.err != nil {
		return res
	}
	return res.success(&ForNode{span: span{start, p.cur.End}, VarName: varName,
		StartNode: startValue, EndNode: endValue, StepNode: stepValue, Body: body, BodyIsBlock: false})
}

func (p *parser) whileExpr() *parseResult {
	res := &parseResult{}
	start := p.cur.Start

	if !p.cur.Is(KEYWORD, "while") {
		return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected keyword 'while'"))
	}
	res.registerAdvancement()
	p.advance()

	cond := res.register(p.expr())
	if res.err != nil {
		return res
	}

	if !p.cur.Is(KEYWORD, "do") {
		return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected keyword 'do'"))
	}
	res.registerAdvancement()
	p.advance()

	if p.cur.Kind == NEWLINE {
		res.registerAdvancement()
		p.advance()

		body := res.register(p.statements())
		if res.err != nil {
			return res
		}
		if !p.cur.Is(KEYWORD, "end") {
			return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected keyword 'end'"))
		}
		res.registerAdvancement()
		p.advance()

		return res.success(&WhileNode{span: span{start, p.cur.End}, Cond: cond, Body: body, BodyIsBlock: true})
	}

	body := res.register(p.expr())
	if res.err != nil {
		return res
	}
	return res.success(&WhileNode{span: span{start, p.cur.End}, Cond: cond, Body: body, BodyIsBlock: false})
}

func (p *parser) funcDef() *parseResult {
	res := &parseResult{}
	start := p.cur.Start

	if !p.cur.Is(KEYWORD, "func") {
		return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected keyword 'func'"))
	}
	res.registerAdvancement()
	p.advance()

	var nameTok Token
	hasName := false

	if p.cur.Kind == IDENTIFIER {
		nameTok = p.cur
		hasName = true
		res.registerAdvancement()
		p.advance()

		if p.cur.Kind != LPAREN {
			return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected '('"))
		}
	} else if p.cur.Kind != LPAREN {
		return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected identifier or '('"))
	}

	res.registerAdvancement()
	p.advance()
	var argTokens []Token

	if p.cur.Kind == IDENTIFIER {
		argTokens = append(argTokens, p.cur)
		res.registerAdvancement()
		p.advance()

		for p.cur.Kind == COMMA {
			res.registerAdvancement()
			p.advance()

			if p.cur.Kind != IDENTIFIER {
				return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected identifier"))
			}
			argTokens = append(argTokens, p.cur)
			res.registerAdvancement()
			p.advance()
		}

		if p.cur.Kind != RPAREN {
			return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected ',' or ')'"))
		}
	} else if p.cur.Kind != RPAREN {
		return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected identifier or ')'"))
	}

	res.registerAdvancement()
	p.advance()

	if p.cur.Kind == ARROW {
		res.registerAdvancement()
		p.advance()

		body := res.register(p.expr())
		if res.err != nil {
			return res
		}
		return res.success(&FuncDefNode{span: span{start, p.cur.End}, NameTok: nameTok, HasName: hasName,
			ArgTokens: argTokens, Body: body, BodyIsBlock: false})
	}

	if p.cur.Kind != NEWLINE {
		return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected '->' or newline character"))
	}
	res.registerAdvancement()
	p.advance()

	body := res.register(p.statements())
	if res.err != nil {
		return res
	}

	if !p.cur.Is(KEYWORD, "end") {
		return res.failure(NewInvalidSyntaxError(p.cur.Start, p.cur.End, "Expected keyword 'end'"))
	}
	res.registerAdvancement()
	p.advance()

	return res.success(&FuncDefNode{span: span{start, p.cur.End}, NameTok: nameTok, HasName: hasName,
		ArgTokens: argTokens, Body: body, BodyIsBlock: true})
}

// opMatch selects one operator a binOp level accepts: by kind alone,
// or by kind plus a keyword literal (for "and"/"or").
type opMatch struct {
	kind    TokenKind
	keyword string
}

func tt(kind TokenKind) opMatch        { return opMatch{kind: kind} }
func kw(keyword string) opMatch        { return opMatch{kind: KEYWORD, keyword: keyword} }
func (m opMatch) matches(t Token) bool {
	if m.keyword == "" {
		return t.Kind == m.kind
	}
	return t.Is(m.kind, m.keyword)
}

// binOp parses a left-associative chain: leftFunc ((op) rightFunc)*.
// When rightFunc is nil, the same production parses both sides
// (matching every level except power, which is right-recursive into
// factor).
func (p *parser) binOp(leftFunc func() *parseResult, ops []opMatch, rightFunc func() *parseResult) *parseResult {
	if rightFunc == nil {
		rightFunc = leftFunc
	}

	res := &parseResult{}
	left := res.register(leftFunc())
	if res.err != nil {
		return res
	}

	for matchesAny(p.cur, ops) {
		op := p.cur
		res.registerAdvancement()
		p.advance()

		right := res.register(rightFunc())
		if res.err != nil {
			return res
		}

		start, _ := left.Pos()
		_, end := right.Pos()
		left = &BinOpNode{span: span{start, end}, Left: left, Op: op, Right: right}
	}

	return res.success(left)
}

func matchesAny(t Token, ops []opMatch) bool {
	for _, m := range ops {
		if m.matches(t) {
			return true
		}
	}
	return false
}
