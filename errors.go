package basiclang

import (
	"fmt"
	"strings"

	juju "github.com/juju/errors"
)

// ErrorKind is the closed taxonomy of errors the pipeline can produce.
type ErrorKind int

const (
	// IllegalCharacter is raised by the lexer on an unrecognized rune.
	IllegalCharacter ErrorKind = iota
	// ExpectedCharacter is raised by the lexer when a multi-character
	// operator is missing its second character (e.g. "!" without "=").
	ExpectedCharacter
	// InvalidSyntax is raised by the parser.
	InvalidSyntax
	// Runtime is raised by the interpreter; it carries a traceback.
	Runtime
)

func (k ErrorKind) String() string {
	switch k {
	case IllegalCharacter:
		return "IllegalCharacter"
	case ExpectedCharacter:
		return "ExpectedCharacter"
	case InvalidSyntax:
		return "InvalidSyntax"
	case Runtime:
		return "Runtime"
	default:
		return "Error"
	}
}

// Error is the single error type produced anywhere in the pipeline.
// Context is only populated for Runtime errors and drives the
// traceback; Cause, when present, is an internal Go error (usually
// annotated via github.com/juju/errors) folded into Message.
type Error struct {
	Kind    ErrorKind
	Start   Position
	End     Position
	Message string
	Context *Context
	Cause   error
}

// NewIllegalCharacterError reports a single unrecognized character.
func NewIllegalCharacterError(start, end Position, message string) *Error {
	return &Error{Kind: IllegalCharacter, Start: start, End: end, Message: message}
}

// NewExpectedCharacterError reports a missing continuation character
// for a multi-character operator.
func NewExpectedCharacterError(start, end Position, message string) *Error {
	return &Error{Kind: ExpectedCharacter, Start: start, End: end, Message: "Expected " + message}
}

// NewInvalidSyntaxError reports a parser-level grammar violation.
func NewInvalidSyntaxError(start, end Position, message string) *Error {
	return &Error{Kind: InvalidSyntax, Start: start, End: end, Message: message}
}

// NewRuntimeError reports an evaluator-level failure, carrying the
// context active at the point of failure so a traceback can be built.
func NewRuntimeError(start, end Position, message string, ctx *Context) *Error {
	return &Error{Kind: Runtime, Start: start, End: end, Message: message, Context: ctx}
}

// wrapInternal annotates an internal Go error (stdlib failure reached
// while servicing a built-in) with juju/errors before it is folded
// into a Runtime error's message. The annotation text becomes part of
// Message; Cause keeps the original error reachable via Unwrap.
func wrapInternal(start, end Position, ctx *Context, verb string, err error) *Error {
	annotated := juju.Annotate(err, verb)
	return &Error{Kind: Runtime, Start: start, End: end, Message: annotated.Error(), Context: ctx, Cause: err}
}

// Unwrap exposes Cause to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Error renders the taxonomy name, the message, a file/line header,
// a caret-underlined source fragment, and — for Runtime errors only —
// a call-chain traceback printed outermost frame first.
func (e *Error) Error() string {
	var b strings.Builder

	if e.Kind == Runtime {
		b.WriteString(e.generateTraceback())
	}

	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	b.WriteString("\n")
	fmt.Fprintf(&b, "File %s, line %d:\n\n", e.Start.FileName, e.Start.Line+1)
	b.WriteString(StringWithArrows(e.Start.FileText, e.Start, e.End))

	return b.String()
}

// generateTraceback walks the Context chain parent-ward from the
// error site, accumulating one "File ..., line ..., in ..." frame per
// call, then prints outermost first.
func (e *Error) generateTraceback() string {
	var frames []string
	pos := e.Start
	ctx := e.Context

	for ctx != nil {
		frames = append(frames, fmt.Sprintf("    File %s, line %d, in %s\n", pos.FileName, pos.Line+1, ctx.DisplayName))
		pos = ctx.ParentEntryPos
		ctx = ctx.Parent
	}

	var b strings.Builder
	b.WriteString("Traceback (most recent call last):\n")
	for i := len(frames) - 1; i >= 0; i-- {
		b.WriteString(frames[i])
	}
	return b.String()
}
