// Package basiclang implements a small dynamic scripting language: a
// tree-walking interpreter built as a lexer -> parser -> evaluator
// pipeline for an expression-oriented language with numbers, strings,
// lists, variables, conditionals, loops, and first-class functions.
//
// The entry point is Run, which takes a file name and the full source
// text and returns either a Value or an *Error:
//
//	result, err := basiclang.Run("<stdin>", `1 + 2 * 3`)
//
// Reading a REPL loop, a file from disk, or anything beyond a
// (name, text) pair is left to the caller; this package has no I/O
// surface beyond its built-ins: print and clear write to os.Stdout,
// input and input_int read from os.Stdin.
package basiclang
