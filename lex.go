package tinyjs

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// tokenKind enumerates the raw lexical token kinds produced by the lexer,
// before the tokenizer resolves them into the richer preprocessed stream.
type tokenKind int

const (
	tkEOF tokenKind = iota
	tkIdent
	tkKeyword
	tkNumber
	tkString
	tkRegexp
	tkPunct
	tkBad
)

// rawToken is a single lexical element together with its position and the
// derived lineBreakBeforeToken bit the tokenizer needs to implement
// automatic semicolon insertion.
type rawToken struct {
	Kind   tokenKind
	Text   string
	Line   int
	Col    int
	LineBreakBefore bool
	Err    *compileError
}

// lexer is a pull-based scanner: each call to next() returns exactly one
// token, mirroring the reference design's getNextToken() rather than the
// teacher's channel-fed push lexer (the latter's goroutine-per-lex shape
// has no use here: the interpreter is single-threaded end to end).
type lexer struct {
	src  string
	pos  int
	file string
	line int
	col  int

	regexAllowed bool // true when the previous token class permits a following '/' to start a regex literal
}

var keywords = map[string]bool{
	"var": true, "let": true, "const": true, "function": true, "return": true,
	"if": true, "else": true, "while": true, "do": true, "for": true,
	"break": true, "continue": true, "switch": true, "case": true, "default": true,
	"try": true, "catch": true, "finally": true, "throw": true, "new": true,
	"delete": true, "typeof": true, "void": true, "in": true, "instanceof": true,
	"this": true, "null": true, "true": true, "false": true, "with": true,
	"get": true, "set": true,
}

func newLexer(source, file string, startLine int) *lexer {
	return &lexer{src: source, file: file, line: startLine, col: 1, regexAllowed: true}
}

func (l *lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) byteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

// skipSpaceAndComments consumes whitespace and comments, reporting whether
// a line break was crossed - the bit every token needs for automatic
// semicolon insertion and for context-sensitive regex-vs-divide detection.
func (l *lexer) skipSpaceAndComments() bool {
	brokeLine := false
	for l.pos < len(l.src) {
		b := l.peekByte()
		switch {
		case b == '\n':
			brokeLine = true
			l.advance()
		case b == ' ' || b == '\t' || b == '\r':
			l.advance()
		case b == '/' && l.byteAt(1) == '/':
			for l.pos < len(l.src) && l.peekByte() != '\n' {
				l.advance()
			}
		case b == '/' && l.byteAt(1) == '*':
			l.advance()
			l.advance()
			for l.pos < len(l.src) && !(l.peekByte() == '*' && l.byteAt(1) == '/') {
				if l.peekByte() == '\n' {
					brokeLine = true
				}
				l.advance()
			}
			if l.pos < len(l.src) {
				l.advance()
				l.advance()
			}
		default:
			return brokeLine
		}
	}
	return brokeLine
}

// next produces the next raw token. On a lexical error it returns a token
// of kind tkBad carrying a populated Err.
func (l *lexer) next() rawToken {
	brokeLine := l.skipSpaceAndComments()
	startLine, startCol := l.line, l.col
	if l.pos >= len(l.src) {
		return rawToken{Kind: tkEOF, Line: startLine, Col: startCol, LineBreakBefore: brokeLine}
	}
	b := l.peekByte()
	switch {
	case isIdentStart(b):
		return l.lexIdent(startLine, startCol, brokeLine)
	case isDigit(b) || (b == '.' && isDigit(l.byteAt(1))):
		return l.lexNumber(startLine, startCol, brokeLine)
	case b == '"' || b == '\'':
		return l.lexString(startLine, startCol, brokeLine)
	case b == '/' && l.regexAllowed:
		return l.lexRegexp(startLine, startCol, brokeLine)
	default:
		return l.lexPunct(startLine, startCol, brokeLine)
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentPart(b byte) bool { return isIdentStart(b) || isDigit(b) }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func (l *lexer) lexIdent(line, col int, broke bool) rawToken {
	start := l.pos
	for l.pos < len(l.src) && isIdentPart(l.peekByte()) {
		l.advance()
	}
	text := l.src[start:l.pos]
	kind := tkIdent
	if keywords[text] {
		kind = tkKeyword
	}
	l.regexAllowed = kind == tkKeyword && text != "this"
	return rawToken{Kind: kind, Text: text, Line: line, Col: col, LineBreakBefore: broke}
}

func (l *lexer) lexNumber(line, col int, broke bool) rawToken {
	start := l.pos
	if l.peekByte() == '0' && (l.byteAt(1) == 'x' || l.byteAt(1) == 'X') {
		l.advance()
		l.advance()
		for l.pos < len(l.src) && isHexDigit(l.peekByte()) {
			l.advance()
		}
		l.regexAllowed = false
		return rawToken{Kind: tkNumber, Text: l.src[start:l.pos], Line: line, Col: col, LineBreakBefore: broke}
	}
	for l.pos < len(l.src) && isDigit(l.peekByte()) {
		l.advance()
	}
	if l.peekByte() == '.' {
		l.advance()
		for l.pos < len(l.src) && isDigit(l.peekByte()) {
			l.advance()
		}
	}
	if l.peekByte() == 'e' || l.peekByte() == 'E' {
		l.advance()
		if l.peekByte() == '+' || l.peekByte() == '-' {
			l.advance()
		}
		for l.pos < len(l.src) && isDigit(l.peekByte()) {
			l.advance()
		}
	}
	l.regexAllowed = false
	return rawToken{Kind: tkNumber, Text: l.src[start:l.pos], Line: line, Col: col, LineBreakBefore: broke}
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func (l *lexer) lexString(line, col int, broke bool) rawToken {
	quote := l.advance()
	var b strings.Builder
	for l.pos < len(l.src) && l.peekByte() != quote {
		ch := l.peekByte()
		if ch == '\\' {
			l.advance()
			decoded, err := l.decodeEscape()
			if err != nil {
				return rawToken{Kind: tkBad, Line: line, Col: col, Err: err}
			}
			b.WriteString(decoded)
			continue
		}
		if ch == '\n' {
			return rawToken{Kind: tkBad, Line: line, Col: col,
				Err: newCompileError(SyntaxError, l.file, line, col, "unterminated string literal")}
		}
		b.WriteByte(l.advance())
	}
	if l.pos >= len(l.src) {
		return rawToken{Kind: tkBad, Line: line, Col: col,
			Err: newCompileError(SyntaxError, l.file, line, col, "unterminated string literal")}
	}
	l.advance() // closing quote
	l.regexAllowed = false
	return rawToken{Kind: tkString, Text: b.String(), Line: line, Col: col, LineBreakBefore: broke}
}

// decodeEscape decodes a single backslash escape already past the leading
// backslash: \n \t \r \\ \' \" \0, \xHH (Windows-1252 byte), and \uHHHH
// (UTF-16 code unit, re-encoded to UTF-8). The \xHH / \uHHHH paths go
// through golang.org/x/text's charmap/unicode decoders rather than a
// hand-rolled table, the same dependency the reference design's own
// string-escape handling leans on.
func (l *lexer) decodeEscape() (string, *compileError) {
	if l.pos >= len(l.src) {
		return "", newCompileError(SyntaxError, l.file, l.line, l.col, "unterminated escape sequence")
	}
	switch l.peekByte() {
	case 'n':
		l.advance()
		return "\n", nil
	case 't':
		l.advance()
		return "\t", nil
	case 'r':
		l.advance()
		return "\r", nil
	case 'b':
		l.advance()
		return "\b", nil
	case 'f':
		l.advance()
		return "\f", nil
	case 'v':
		l.advance()
		return "\v", nil
	case '0':
		l.advance()
		return "\x00", nil
	case '\\', '\'', '"':
		b := l.advance()
		return string(b), nil
	case '\n':
		l.advance()
		return "", nil
	case 'x':
		l.advance()
		if l.pos+2 > len(l.src) || !isHexDigit(l.byteAt(0)) || !isHexDigit(l.byteAt(1)) {
			return "", newCompileError(SyntaxError, l.file, l.line, l.col, "invalid \\x escape")
		}
		hi, lo := hexVal(l.advance()), hexVal(l.advance())
		raw := byte(hi<<4 | lo)
		decoded, err := charmap.Windows1252.NewDecoder().Bytes([]byte{raw})
		if err != nil {
			return string(raw), nil
		}
		return string(decoded), nil
	case 'u':
		l.advance()
		if l.pos+4 > len(l.src) {
			return "", newCompileError(SyntaxError, l.file, l.line, l.col, "invalid \\u escape")
		}
		var unit uint16
		for i := 0; i < 4; i++ {
			c := l.advance()
			if !isHexDigit(c) {
				return "", newCompileError(SyntaxError, l.file, l.line, l.col, "invalid \\u escape")
			}
			unit = unit<<4 | uint16(hexVal(c))
		}
		raw := []byte{byte(unit), byte(unit >> 8)}
		decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(raw)
		if err != nil || !utf8.Valid(decoded) {
			return string(rune(unit)), nil
		}
		return string(decoded), nil
	default:
		b := l.advance()
		return string(b), nil
	}
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b-'A') + 10
	}
}

func (l *lexer) lexRegexp(line, col int, broke bool) rawToken {
	start := l.pos
	l.advance() // leading /
	inClass := false
	for l.pos < len(l.src) {
		ch := l.peekByte()
		if ch == '\\' {
			l.advance()
			if l.pos < len(l.src) {
				l.advance()
			}
			continue
		}
		if ch == '[' {
			inClass = true
		} else if ch == ']' {
			inClass = false
		} else if ch == '/' && !inClass {
			break
		} else if ch == '\n' {
			return rawToken{Kind: tkBad, Line: line, Col: col,
				Err: newCompileError(SyntaxError, l.file, line, col, "unterminated regular expression")}
		}
		l.advance()
	}
	if l.pos >= len(l.src) {
		return rawToken{Kind: tkBad, Line: line, Col: col,
			Err: newCompileError(SyntaxError, l.file, line, col, "unterminated regular expression")}
	}
	l.advance() // trailing /
	for l.pos < len(l.src) && isIdentPart(l.peekByte()) {
		l.advance()
	}
	l.regexAllowed = false
	return rawToken{Kind: tkRegexp, Text: l.src[start:l.pos], Line: line, Col: col, LineBreakBefore: broke}
}

// puncts lists multi-character punctuators, longest first, so lexPunct's
// greedy scan never mistakes e.g. ">>>=" for ">>" + ">=".
var puncts = []string{
	">>>=", "===", "!==", ">>>", "<<=", ">>=", "**=",
	"==", "!=", "<=", ">=", "&&", "||", "++", "--", "+=", "-=", "*=", "/=", "%=",
	"&=", "|=", "^=", "<<", ">>", "=>",
	"{", "}", "(", ")", "[", "]", ";", ",", ".", "<", ">", "+", "-", "*", "/", "%",
	"&", "|", "^", "!", "~", "?", ":", "=",
}

func (l *lexer) lexPunct(line, col int, broke bool) rawToken {
	rest := l.src[l.pos:]
	for _, p := range puncts {
		if strings.HasPrefix(rest, p) {
			for range p {
				l.advance()
			}
			l.regexAllowed = p != ")" && p != "]"
			return rawToken{Kind: tkPunct, Text: p, Line: line, Col: col, LineBreakBefore: broke}
		}
	}
	bad := l.advance()
	return rawToken{Kind: tkBad, Line: line, Col: col,
		Err: newCompileError(SyntaxError, l.file, line, col, "unexpected character %q", bad)}
}
