// Package zparser turns a Zinc token stream into the zast.Program the
// semantic analyzer and emitters consume. It is a hand-written
// recursive-descent parser with one method per precedence level for
// expressions, the same structure esbuild's internal/js_parser uses
// (a big per-construct method set over a shared token cursor), and
// performs spec.md §1's parse-time desugaring (`unless`→`if !`,
// `until`→`while !`, string interpolation→concat tree) as it builds
// the tree rather than as a later rewrite pass.
package zparser

import (
	"github.com/redodson01/zinc/internal/logger"
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/zlexer"
)

// Parser holds the single-token lookahead cursor over one source file
// (or, recursively, over one interpolated `#{...}` segment) plus the
// logger.Log every diagnostic is recorded into. Parse errors never
// abort the parse; the parser keeps consuming tokens so it can surface
// as many syntax errors as possible in one pass, matching the
// analyzer's "report every error, continue" policy (spec.md §7).
type Parser struct {
	lex *zlexer.Lexer
	log *logger.Log
}

// New returns a Parser ready to parse src. log should be a
// logger.NewParseLog() so its messages carry the "parse error(s)"
// phase label spec.md §6 requires.
func New(src string, log *logger.Log) *Parser {
	return &Parser{lex: zlexer.NewLexer(src, log), log: log}
}

func (p *Parser) tok() zlexer.Token { return p.lex.Token }

func (p *Parser) advance() zlexer.Token {
	t := p.lex.Token
	p.lex.Next()
	return t
}

func (p *Parser) at(k zlexer.T) bool { return p.tok().Kind == k }

func (p *Parser) accept(k zlexer.T) (zlexer.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return zlexer.Token{}, false
}

func (p *Parser) expect(k zlexer.T) zlexer.Token {
	if p.at(k) {
		return p.advance()
	}
	p.log.AddError(p.tok().Line, "expected %s but found %s", k, p.tok().Kind)
	return p.tok()
}

// skipSemis consumes any number of optional trailing statement
// terminators; Zinc statements do not require a terminator between a
// block-ending `}` and the next statement, so these are genuinely
// optional rather than mandatory newlines.
func (p *Parser) skipSemis() {
	for {
		if _, ok := p.accept(zlexer.TSemicolon); !ok {
			return
		}
	}
}

// ParseProgram parses the whole token stream into a top-level
// zast.Program. Lexer and parser errors both land in p.log; callers
// should check log.HasErrors() before proceeding to semantic analysis
// (spec.md §7: "generation runs only over a cleanly analyzed tree").
func (p *Parser) ParseProgram() *zast.Program {
	prog := &zast.Program{}
	p.skipSemis()
	for !p.at(zlexer.TEOF) {
		prog.Stmts = append(prog.Stmts, p.parseStmt())
		p.skipSemis()
	}
	return prog
}

// Parse is the convenience entry point: lex+parse src, recording
// diagnostics into a fresh parse-phase Log, and return both the
// program and the log so the caller can decide whether to proceed.
func Parse(src string) (*zast.Program, *logger.Log) {
	log := logger.NewParseLog()
	p := New(src, log)
	return p.ParseProgram(), log
}

// interpolationSegmentsToExpr desugars a lexed, possibly-interpolated
// string literal into the tree spec.md §1 describes: "interpolation→
// concat tree". A single literal-only segment collapses to a bare
// EString; anything with an interpolated segment becomes a
// left-associative BinAdd chain of EString leaves and recursively
// lexed/parsed sub-expressions.
func (p *Parser) interpolationSegmentsToExpr(line int, segs []zlexer.StringSegment) zast.Expr {
	if len(segs) == 0 {
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EString{Value: ""}}
	}

	var result zast.Expr
	started := false
	appendExpr := func(e zast.Expr) {
		if !started {
			result = e
			started = true
			return
		}
		result = zast.Expr{
			Loc:  result.Loc,
			Data: &zast.EBinary{Op: zast.BinAdd, Left: result, Right: e},
		}
	}

	for _, seg := range segs {
		if !seg.IsExpr {
			if seg.Text == "" && len(segs) > 1 {
				// Skip purely-structural empty literal runs between two
				// adjacent interpolations ("#{a}#{b}") so the concat tree
				// doesn't carry no-op "" leaves.
				continue
			}
			appendExpr(zast.Expr{Loc: zast.Loc{Line: seg.Line}, Data: &zast.EString{Value: seg.Text}})
			continue
		}
		subProg, subLog := Parse(seg.Text + ";")
		for _, m := range subLog.Msgs() {
			p.log.AddError(seg.Line, "%s", m.Text)
		}
		appendExpr(extractSoleExpr(seg.Line, subProg))
	}
	if !started {
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EString{Value: ""}}
	}
	return result
}

// extractSoleExpr pulls the single expression out of a sub-parsed
// interpolation segment's program. A segment is always exactly one
// expression (`#{expr}`), so the segment parser's program should have
// produced exactly one expression statement.
func extractSoleExpr(line int, prog *zast.Program) zast.Expr {
	if len(prog.Stmts) != 1 {
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EString{Value: ""}}
	}
	if es, ok := prog.Stmts[0].Data.(*zast.SExprStmt); ok {
		return es.Value
	}
	return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EString{Value: ""}}
}
