package basiclang

// Context is an activation record: one is allocated per function call
// (plus one root record for the program itself). It threads the
// caller chain needed to build a traceback and owns the SymbolTable
// for its scope.
//
// This is unrelated to the standard library's context.Context — there
// is no cancellation, no deadline, no goroutine fan-out anywhere in
// this interpreter, so that type is never imported here.
type Context struct {
	DisplayName    string
	Parent         *Context
	ParentEntryPos Position
	SymbolTable    *SymbolTable
}

// NewContext allocates a root or nested activation record. parent and
// parentEntryPos are the zero value for the program's root context.
func NewContext(displayName string, parent *Context, parentEntryPos Position) *Context {
	return &Context{DisplayName: displayName, Parent: parent, ParentEntryPos: parentEntryPos}
}
