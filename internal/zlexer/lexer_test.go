package zlexer

import (
	"testing"

	"github.com/redodson01/zinc/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) ([]Token, *logger.Log) {
	t.Helper()
	var log logger.Log
	l := NewLexer(src, &log)
	var toks []Token
	for l.Token.Kind != TEOF {
		toks = append(toks, l.Token)
		l.Next()
	}
	return toks, &log
}

func kinds(toks []Token) []T {
	out := make([]T, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestKeywordsResolveThroughTable(t *testing.T) {
	toks, log := scanAll(t, "let var if else while for unless until break continue return func class struct extern true false nil print weak")
	require.False(t, log.HasErrors())
	assert.Equal(t, []T{
		TLet, TVar, TIf, TElse, TWhile, TFor, TUnless, TUntil, TBreak, TContinue,
		TReturn, TFunc, TClass, TStruct, TExtern, TTrue, TFalse, TNil, TPrint, TWeak,
	}, kinds(toks))
}

func TestIdentifierNotMistakenForKeywordPrefix(t *testing.T) {
	toks, log := scanAll(t, "iffy")
	require.False(t, log.HasErrors())
	require.Len(t, toks, 1)
	assert.Equal(t, TIdent, toks[0].Kind)
	assert.Equal(t, "iffy", toks[0].Text)
}

func TestIntegerLiteral(t *testing.T) {
	toks, log := scanAll(t, "42")
	require.False(t, log.HasErrors())
	require.Len(t, toks, 1)
	assert.Equal(t, TIntLiteral, toks[0].Kind)
	assert.Equal(t, int64(42), toks[0].IntValue)
}

func TestFloatLiteralRequiresDigitAfterDot(t *testing.T) {
	toks, log := scanAll(t, "3.14")
	require.False(t, log.HasErrors())
	require.Len(t, toks, 1)
	assert.Equal(t, TFloatLiteral, toks[0].Kind)
	assert.Equal(t, 3.14, toks[0].FloatValue)

	// "3." with no trailing digit is an int 3 followed by a dot token,
	// e.g. a method-call-like `3.toString()` shape, not a malformed float.
	toks2, log2 := scanAll(t, "3.toString")
	require.False(t, log2.HasErrors())
	require.Len(t, toks2, 3)
	assert.Equal(t, []T{TIntLiteral, TDot, TIdent}, kinds(toks2))
}

func TestPlainStringLiteralIsSingleLiteralSegment(t *testing.T) {
	toks, log := scanAll(t, `"hello"`)
	require.False(t, log.HasErrors())
	require.Len(t, toks, 1)
	require.Len(t, toks[0].Segments, 1)
	assert.False(t, toks[0].Segments[0].IsExpr)
	assert.Equal(t, "hello", toks[0].Segments[0].Text)
}

func TestInterpolatedStringSplitsLiteralAndExprSegments(t *testing.T) {
	toks, log := scanAll(t, `"a#{1 + 2}b"`)
	require.False(t, log.HasErrors())
	require.Len(t, toks, 1)
	segs := toks[0].Segments
	require.Len(t, segs, 3)
	assert.Equal(t, "a", segs[0].Text)
	assert.True(t, segs[1].IsExpr)
	assert.Equal(t, "1 + 2", segs[1].Text)
	assert.Equal(t, "b", segs[2].Text)
}

func TestStringEscapeSequences(t *testing.T) {
	toks, log := scanAll(t, `"a\nb\tc\\d"`)
	require.False(t, log.HasErrors())
	require.Len(t, toks[0].Segments, 1)
	assert.Equal(t, "a\nb\tc\\d", toks[0].Segments[0].Text)
}

func TestUnterminatedStringIsAnError(t *testing.T) {
	_, log := scanAll(t, `"abc`)
	assert.True(t, log.HasErrors())
}

func TestCharLiteral(t *testing.T) {
	toks, log := scanAll(t, `'x'`)
	require.False(t, log.HasErrors())
	require.Len(t, toks, 1)
	assert.Equal(t, TCharLiteral, toks[0].Kind)
	assert.Equal(t, 'x', toks[0].CharValue)
}

func TestMultiByteOperatorsPreferLongestMatch(t *testing.T) {
	toks, log := scanAll(t, "== != <= >= && || ++ -- += -= *= /= %= ->")
	require.False(t, log.HasErrors())
	assert.Equal(t, []T{
		TEqEq, TNotEq, TLe, TGe, TAndAnd, TOrOr,
		TPlusPlus, TMinusMinus, TPlusEq, TMinusEq, TStarEq, TSlashEq, TPercentEq, TArrow,
	}, kinds(toks))
}

func TestSingleByteOperatorsDoNotSwallowFollowingToken(t *testing.T) {
	toks, log := scanAll(t, "< = a")
	require.False(t, log.HasErrors())
	assert.Equal(t, []T{TLt, TEq, TIdent}, kinds(toks))
}

func TestLineCommentsAreSkipped(t *testing.T) {
	toks, log := scanAll(t, "1 // a comment with a # and #{not interpolation}\n2")
	require.False(t, log.HasErrors())
	require.Len(t, toks, 2)
	assert.Equal(t, int64(1), toks[0].IntValue)
	assert.Equal(t, int64(2), toks[1].IntValue)
	assert.Equal(t, 2, toks[1].Line)
}

func TestUnknownCharacterIsReportedAndSkipped(t *testing.T) {
	toks, log := scanAll(t, "1 ` 2")
	assert.True(t, log.HasErrors())
	require.Len(t, toks, 3)
	assert.Equal(t, TSyntaxError, toks[1].Kind)
}
