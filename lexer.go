package basiclang

import (
	"strings"

	"github.com/SHENSHENZYC/basiclang/internal/rtlog"
)

// eof is the sentinel rune returned once the scan has consumed all of
// the input. -1 can never occur as a real character value.
const eof rune = -1

const (
	numChars     = "0123456789."
	digits       = "0123456789"
	letters      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	identTail    = letters + digits + "_"
	stringQuotes = `"`
)

var escapeChars = map[rune]rune{'n': '\n', 't': '\t', 'r': '\r'}

// lexer converts source text into a token sequence via a single
// forward scan with one-rune lookahead (current). It has no
// backtracking: every decision is made from the current character
// alone, mirroring the spec's context-sensitive-but-linear scan.
type lexer struct {
	fileName string
	text     string
	pos      Position
	current  rune
}

func newLexer(fileName, text string) *lexer {
	l := &lexer{fileName: fileName, text: text, pos: NewPosition(fileName, text)}
	l.advance()
	return l
}

// advance moves the cursor forward by one character, refreshing
// current. Past the end of input current becomes eof.
func (l *lexer) advance() {
	l.pos = l.pos.Advance(l.current)
	if l.pos.Idx < len(l.text) {
		l.current = rune(l.text[l.pos.Idx])
	} else {
		l.current = eof
	}
}

// Lex tokenizes text under the given file name, returning the token
// sequence terminated by EOF, or the IllegalCharacter/ExpectedCharacter
// error encountered along the way.
func Lex(fileName, text string) ([]Token, *Error) {
	log := rtlog.Logger()
	log.Tracef("lex start file=%s bytes=%d", fileName, len(text))

	l := newLexer(fileName, text)
	var tokens []Token

	for l.current != eof {
		switch {
		case l.current == ' ' || l.current == '\t':
			l.advance()
		case strings.ContainsRune(digits, l.current):
			tokens = append(tokens, l.makeNumber())
		case strings.ContainsRune(letters, l.current):
			tokens = append(tokens, l.makeIdentifier())
		case l.current == '+':
			tokens = append(tokens, l.simple(PLUS))
		case l.current == '-':
			tokens = append(tokens, l.makeMinusOrArrow())
		case l.current == '*':
			tokens = append(tokens, l.simple(MUL))
		case l.current == '/':
			tokens = append(tokens, l.simple(DIV))
		case l.current == '^':
			tokens = append(tokens, l.simple(POW))
		case l.current == '(':
			tokens = append(tokens, l.simple(LPAREN))
		case l.current == ')':
			tokens = append(tokens, l.simple(RPAREN))
		case l.current == '=':
			tokens = append(tokens, l.makeEq())
		case l.current == '!':
			tok, err := l.makeNotEquals()
			if err != nil {
				log.Debugf("lex error: %s", err.Message)
				return nil, err
			}
			tokens = append(tokens, tok)
		case l.current == '<':
			tokens = append(tokens, l.makeLessThan())
		case l.current == '>':
			tokens = append(tokens, l.makeGreaterThan())
		case l.current == ',':
			tokens = append(tokens, l.simple(COMMA))
		case l.current == '"':
			tokens = append(tokens, l.makeString())
		case l.current == '[':
			tokens = append(tokens, l.simple(LSQUARE))
		case l.current == ']':
			tokens = append(tokens, l.simple(RSQUARE))
		case l.current == ';' || l.current == '\n':
			tokens = append(tokens, l.simple(NEWLINE))
		default:
			start := l.pos
			bad := l.current
			l.advance()
			return nil, NewIllegalCharacterError(start, l.pos, "'"+string(bad)+"'")
		}
	}

	tokens = append(tokens, Token{Kind: EOF, Start: l.pos, End: l.pos})
	log.Tracef("lex done tokens=%d", len(tokens))
	return tokens, nil
}

// simple emits a single-character token and advances past it.
func (l *lexer) simple(kind TokenKind) Token {
	start := l.pos
	l.advance()
	return Token{Kind: kind, Start: start, End: l.pos}
}

func (l *lexer) makeNumber() Token {
	start := l.pos
	var sb strings.Builder
	dotCount := 0

	for l.current != eof && strings.ContainsRune(numChars, l.current) {
		if l.current == '.' {
			if dotCount == 1 {
				break
			}
			dotCount++
		}
		sb.WriteRune(l.current)
		l.advance()
	}

	if dotCount == 0 {
		n := parseInt(sb.String())
		return Token{Kind: INT, Value: n, Start: start, End: l.pos}
	}
	f := parseFloat(sb.String())
	return Token{Kind: FLOAT, Value: f, Start: start, End: l.pos}
}

func (l *lexer) makeIdentifier() Token {
	start := l.pos
	var sb strings.Builder

	for l.current != eof && strings.ContainsRune(identTail, l.current) {
		sb.WriteRune(l.current)
		l.advance()
	}

	word := sb.String()
	kind := IDENTIFIER
	if isKeyword(word) {
		kind = KEYWORD
	}
	return Token{Kind: kind, Value: word, Start: start, End: l.pos}
}

func (l *lexer) makeEq() Token {
	start := l.pos
	l.advance()
	if l.current != '=' {
		return Token{Kind: EQ, Start: start, End: l.pos}
	}
	l.advance()
	return Token{Kind: EE, Start: start, End: l.pos}
}

func (l *lexer) makeNotEquals() (Token, *Error) {
	start := l.pos
	l.advance()
	if l.current == '=' {
		l.advance()
		return Token{Kind: NE, Start: start, End: l.pos}, nil
	}
	l.advance()
	return Token{}, NewExpectedCharacterError(start, l.pos, "'=' after '!'")
}

func (l *lexer) makeLessThan() Token {
	start := l.pos
	l.advance()
	if l.current != '=' {
		return Token{Kind: LT, Start: start, End: l.pos}
	}
	l.advance()
	return Token{Kind: LTE, Start: start, End: l.pos}
}

func (l *lexer) makeGreaterThan() Token {
	start := l.pos
	l.advance()
	if l.current != '=' {
		return Token{Kind: GT, Start: start, End: l.pos}
	}
	l.advance()
	return Token{Kind: GTE, Start: start, End: l.pos}
}

func (l *lexer) makeMinusOrArrow() Token {
	start := l.pos
	l.advance()
	if l.current != '>' {
		return Token{Kind: MINUS, Start: start, End: l.pos}
	}
	l.advance()
	return Token{Kind: ARROW, Start: start, End: l.pos}
}

// makeString consumes a "-delimited string literal, processing the
// \n, \t, \r escapes and passing any other escaped character through
// literally.
func (l *lexer) makeString() Token {
	start := l.pos
	var sb strings.Builder
	escaping := false
	l.advance() // past opening quote

	for l.current != eof && (l.current != '"' || escaping) {
		if escaping {
			if r, ok := escapeChars[l.current]; ok {
				sb.WriteRune(r)
			} else {
				sb.WriteRune(l.current)
			}
			escaping = false
			l.advance()
			continue
		}

		if l.current == '\\' {
			escaping = true
		} else {
			sb.WriteRune(l.current)
		}
		l.advance()
	}

	l.advance() // past closing quote
	return Token{Kind: STRING, Value: sb.String(), Start: start, End: l.pos}
}
