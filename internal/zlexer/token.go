// Package zlexer tokenizes Zinc source text. The token-kind-constant
// layout (one T per lexeme family, grouped with a comment banner) and
// the "keywords resolve through a lookup table built at init time"
// technique are both adapted from esbuild's internal/js_lexer.
package zlexer

type T uint8

const (
	TEOF T = iota
	TSyntaxError

	TIdent
	TIntLiteral
	TFloatLiteral
	TStringLiteral
	TCharLiteral

	// Keywords
	TLet
	TVar
	TIf
	TElse
	TWhile
	TFor
	TUnless
	TUntil
	TBreak
	TContinue
	TReturn
	TFunc
	TClass
	TStruct
	TExtern
	TTrue
	TFalse
	TNil
	TPrint
	TWeak

	// Punctuation
	TLParen
	TRParen
	TLBrace
	TRBrace
	TLBracket
	TRBracket
	TComma
	TColon
	TSemicolon
	TDot
	TQuestion
	TArrow

	// Operators
	TPlus
	TMinus
	TStar
	TSlash
	TPercent
	TPlusPlus
	TMinusMinus
	TEqEq
	TNotEq
	TLt
	TGt
	TLe
	TGe
	TAndAnd
	TOrOr
	TNot
	TEq
	TPlusEq
	TMinusEq
	TStarEq
	TSlashEq
	TPercentEq
)

var tokenToString = map[T]string{
	TEOF:          "end of file",
	TSyntaxError:  "syntax error",
	TIdent:        "identifier",
	TIntLiteral:   "integer literal",
	TFloatLiteral: "float literal",
	TStringLiteral: "string literal",
	TCharLiteral:  "char literal",
	TLet:          "'let'",
	TVar:          "'var'",
	TIf:           "'if'",
	TElse:         "'else'",
	TWhile:        "'while'",
	TFor:          "'for'",
	TUnless:       "'unless'",
	TUntil:        "'until'",
	TBreak:        "'break'",
	TContinue:     "'continue'",
	TReturn:       "'return'",
	TFunc:         "'func'",
	TClass:        "'class'",
	TStruct:       "'struct'",
	TExtern:       "'extern'",
	TTrue:         "'true'",
	TFalse:        "'false'",
	TNil:          "'nil'",
	TPrint:        "'print'",
	TWeak:         "'weak'",
}

func (t T) String() string {
	if s, ok := tokenToString[t]; ok {
		return s
	}
	return "token"
}

var keywords = map[string]T{
	"let": TLet, "var": TVar, "if": TIf, "else": TElse,
	"while": TWhile, "for": TFor, "unless": TUnless, "until": TUntil,
	"break": TBreak, "continue": TContinue, "return": TReturn,
	"func": TFunc, "class": TClass, "struct": TStruct, "extern": TExtern,
	"true": TTrue, "false": TFalse, "nil": TNil, "print": TPrint,
	"weak": TWeak,
}

// StringSegment is one piece of a possibly-interpolated string
// literal: either a literal-text run, or the raw source text of an
// `#{...}` interpolated expression to be lexed and parsed on its own
// (spec.md §1, "interpolation→concat tree" happens at parse time, not
// lex time — the lexer only pre-splits).
type StringSegment struct {
	IsExpr bool
	Text   string
	Line   int
}

// Token is one lexed unit. Line is 1-based, matching zast.Loc so the
// parser can copy it straight across without translation.
type Token struct {
	Kind T
	Line int

	Text       string // identifier name / raw text
	IntValue   int64
	FloatValue float64
	CharValue  rune
	Segments   []StringSegment // populated only for TStringLiteral
}
