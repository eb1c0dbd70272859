package basiclang

import "strconv"

// parseInt and parseFloat convert a numeric lexeme already validated by
// the lexer's character class scan. The lexer only ever hands them
// digit/dot sequences it assembled itself, so a parse failure here
// would be a lexer bug, not bad input — it is not surfaced as a
// language-level Error.

func parseInt(lexeme string) int64 {
	n, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		panic("basiclang: lexer produced an invalid int lexeme: " + lexeme)
	}
	return n
}

func parseFloat(lexeme string) float64 {
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		panic("basiclang: lexer produced an invalid float lexeme: " + lexeme)
	}
	return f
}
