// Package zlexer (continued): the scanning loop itself. The
// byte-at-a-time scan with a lookahead rune and per-token dispatch on
// the leading byte is adapted from esbuild's internal/js_lexer.Lexer,
// trimmed to Zinc's much smaller grammar (no regex literals, no JSX,
// no template-literal nesting beyond one level of `#{...}`).
package zlexer

import (
	"strconv"
	"strings"

	"github.com/redodson01/zinc/internal/logger"
)

// Lexer scans one Zinc source file into a flat token stream. It is
// used both for the top-level source and, recursively, for each
// interpolated `#{...}` expression segment the parser re-lexes
// (spec.md §1: "interpolation state-machine ... at parse time").
type Lexer struct {
	src  string
	pos  int
	line int
	log  *logger.Log

	Token Token
}

// NewLexer returns a Lexer positioned before the first token of src.
// Call Next to scan it.
func NewLexer(src string, log *logger.Log) *Lexer {
	l := &Lexer{src: src, pos: 0, line: 1, log: log}
	l.Next()
	return l
}

func (l *Lexer) errorf(format string, args ...interface{}) {
	l.log.AddError(l.line, format, args...)
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

// Next advances past the current token and scans the next one into
// l.Token.
func (l *Lexer) Next() {
	l.skipWhitespaceAndComments()

	startLine := l.line
	if l.pos >= len(l.src) {
		l.Token = Token{Kind: TEOF, Line: startLine}
		return
	}

	c := l.src[l.pos]
	switch {
	case isIdentStart(c):
		l.scanIdentOrKeyword(startLine)
	case c >= '0' && c <= '9':
		l.scanNumber(startLine)
	case c == '"':
		l.scanString(startLine)
	case c == '\'':
		l.scanChar(startLine)
	default:
		l.scanPunctOrOperator(startLine)
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.line++
			l.pos++
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '/' && l.peekByteAt(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (l *Lexer) scanIdentOrKeyword(line int) {
	start := l.pos
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	text := l.src[start:l.pos]
	if kw, ok := keywords[text]; ok {
		l.Token = Token{Kind: kw, Line: line, Text: text}
		return
	}
	l.Token = Token{Kind: TIdent, Line: line, Text: text}
}

func (l *Lexer) scanNumber(line int) {
	start := l.pos
	for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
		l.pos++
	}
	isFloat := false
	if l.peekByte() == '.' && l.peekByteAt(1) >= '0' && l.peekByteAt(1) <= '9' {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
			l.pos++
		}
	}
	text := l.src[start:l.pos]
	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			l.errorf("invalid float literal '%s'", text)
		}
		l.Token = Token{Kind: TFloatLiteral, Line: line, Text: text, FloatValue: v}
		return
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		l.errorf("invalid integer literal '%s'", text)
	}
	l.Token = Token{Kind: TIntLiteral, Line: line, Text: text, IntValue: v}
}

// scanString handles both plain and interpolated string literals. An
// interpolated literal is pre-split into StringSegment runs; the
// parser lexes/parses each IsExpr segment's Text as its own
// sub-expression (spec.md §1).
func (l *Lexer) scanString(line int) {
	l.pos++ // opening quote

	var segs []StringSegment
	var lit strings.Builder
	litStartLine := l.line

	flushLiteral := func() {
		segs = append(segs, StringSegment{IsExpr: false, Text: lit.String(), Line: litStartLine})
		lit.Reset()
		litStartLine = l.line
	}

	for {
		if l.pos >= len(l.src) {
			l.errorf("unterminated string literal")
			break
		}
		c := l.src[l.pos]
		if c == '"' {
			l.pos++
			break
		}
		if c == '\\' {
			l.pos++
			lit.WriteByte(l.decodeEscape())
			continue
		}
		if c == '#' && l.peekByteAt(1) == '{' {
			flushLiteral()
			l.pos += 2
			exprStart := l.pos
			exprLine := l.line
			depth := 1
			for l.pos < len(l.src) && depth > 0 {
				switch l.src[l.pos] {
				case '{':
					depth++
				case '}':
					depth--
					if depth == 0 {
						break
					}
				case '\n':
					l.line++
				}
				if depth > 0 {
					l.pos++
				}
			}
			segs = append(segs, StringSegment{IsExpr: true, Text: l.src[exprStart:l.pos], Line: exprLine})
			if l.pos < len(l.src) {
				l.pos++ // closing '}'
			} else {
				l.errorf("unterminated interpolation in string literal")
			}
			continue
		}
		if c == '\n' {
			l.line++
		}
		lit.WriteByte(c)
		l.pos++
	}
	flushLiteral()

	l.Token = Token{Kind: TStringLiteral, Line: line, Segments: segs}
}

func (l *Lexer) decodeEscape() byte {
	if l.pos >= len(l.src) {
		l.errorf("unterminated escape sequence")
		return '\\'
	}
	c := l.src[l.pos]
	l.pos++
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '"':
		return '"'
	case '\'':
		return '\''
	case '\\':
		return '\\'
	case '0':
		return 0
	default:
		l.errorf("unknown escape sequence '\\%c'", c)
		return c
	}
}

func (l *Lexer) scanChar(line int) {
	l.pos++ // opening quote
	var r rune
	if l.peekByte() == '\\' {
		l.pos++
		r = rune(l.decodeEscape())
	} else if l.pos < len(l.src) {
		r = rune(l.src[l.pos])
		l.pos++
	}
	if l.peekByte() == '\'' {
		l.pos++
	} else {
		l.errorf("unterminated char literal")
	}
	l.Token = Token{Kind: TCharLiteral, Line: line, CharValue: r}
}

// two-byte operator table, tried before singleByteOps so the longest
// match wins.
var multiByteOps = []struct {
	text string
	kind T
}{
	{"++", TPlusPlus}, {"--", TMinusMinus},
	{"==", TEqEq}, {"!=", TNotEq},
	{"<=", TLe}, {">=", TGe},
	{"&&", TAndAnd}, {"||", TOrOr},
	{"+=", TPlusEq}, {"-=", TMinusEq}, {"*=", TStarEq},
	{"/=", TSlashEq}, {"%=", TPercentEq},
	{"->", TArrow},
}

var singleByteOps = map[byte]T{
	'(': TLParen, ')': TRParen,
	'{': TLBrace, '}': TRBrace,
	'[': TLBracket, ']': TRBracket,
	',': TComma, ':': TColon, ';': TSemicolon,
	'.': TDot, '?': TQuestion,
	'+': TPlus, '-': TMinus, '*': TStar, '/': TSlash, '%': TPercent,
	'<': TLt, '>': TGt, '!': TNot, '=': TEq,
}

func (l *Lexer) scanPunctOrOperator(line int) {
	rest := l.src[l.pos:]
	for _, op := range multiByteOps {
		if strings.HasPrefix(rest, op.text) {
			l.pos += len(op.text)
			l.Token = Token{Kind: op.kind, Line: line, Text: op.text}
			return
		}
	}
	c := l.src[l.pos]
	if kind, ok := singleByteOps[c]; ok {
		l.pos++
		l.Token = Token{Kind: kind, Line: line, Text: string(c)}
		return
	}
	l.errorf("unexpected character '%c'", c)
	l.pos++
	l.Token = Token{Kind: TSyntaxError, Line: line, Text: string(c)}
}
