package zparser

import (
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/zlexer"
)

// parseBlock parses a brace-delimited statement sequence. Blocks only
// ever appear after a control-flow/function header, never as a bare
// primary expression, so there is no ambiguity with object-literal
// `{...}` parsing in parsePrimary.
func (p *Parser) parseBlock() zast.Block {
	p.expect(zlexer.TLBrace)
	p.skipSemis()
	var blk zast.Block
	for !p.at(zlexer.TRBrace) && !p.at(zlexer.TEOF) {
		blk.Stmts = append(blk.Stmts, p.parseStmt())
		p.skipSemis()
	}
	p.expect(zlexer.TRBrace)
	return blk
}

// parseIf parses `if cond { ... } (else { ... } | else if ... )?`. An
// `else if` is represented as a single-statement Else block holding
// the nested EIf, matching how a chain of `else if`s naturally nests
// in C.
func (p *Parser) parseIf(line int) zast.Expr {
	cond := p.parseExpr()
	then := p.parseBlock()
	d := &zast.EIf{Cond: cond, Then: then}
	if _, ok := p.accept(zlexer.TElse); ok {
		d.HasElse = true
		if p.at(zlexer.TIf) {
			elseLine := p.tok().Line
			p.advance()
			nested := p.parseIf(elseLine)
			d.Else = zast.Block{Stmts: []zast.Stmt{{Loc: zast.Loc{Line: elseLine}, Data: &zast.SExprStmt{Value: nested}}}}
		} else {
			d.Else = p.parseBlock()
		}
	}
	return zast.Expr{Loc: zast.Loc{Line: line}, Data: d}
}

// parseUnless desugars `unless cond { ... }` to `if !cond { ... }`
// in place, per spec.md §1.
func (p *Parser) parseUnless(line int) zast.Expr {
	cond := p.parseExpr()
	negated := zast.Expr{Loc: cond.Loc, Data: &zast.EUnary{Op: zast.UnaryNot, Operand: cond}}
	then := p.parseBlock()
	d := &zast.EIf{Cond: negated, Then: then}
	if _, ok := p.accept(zlexer.TElse); ok {
		d.HasElse = true
		if p.at(zlexer.TIf) {
			elseLine := p.tok().Line
			p.advance()
			nested := p.parseIf(elseLine)
			d.Else = zast.Block{Stmts: []zast.Stmt{{Loc: zast.Loc{Line: elseLine}, Data: &zast.SExprStmt{Value: nested}}}}
		} else {
			d.Else = p.parseBlock()
		}
	}
	return zast.Expr{Loc: zast.Loc{Line: line}, Data: d}
}

func (p *Parser) parseWhile(line int) zast.Expr {
	cond := p.parseExpr()
	body := p.parseBlock()
	return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EWhile{Cond: cond, Body: body}}
}

// parseUntil desugars `until cond { ... }` to `while !cond { ... }`,
// per spec.md §1. `until false` becomes `while !false`, the
// syntactically-always-true form spec.md §4.3.2 recognizes for
// unconditional-loop typing.
func (p *Parser) parseUntil(line int) zast.Expr {
	cond := p.parseExpr()
	negated := zast.Expr{Loc: cond.Loc, Data: &zast.EUnary{Op: zast.UnaryNot, Operand: cond}}
	body := p.parseBlock()
	return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EWhile{Cond: negated, Body: body}}
}

// parseFor parses `for <init>; <cond>; <post> { ... }`. Any of the
// three clauses may be empty (`for ; cond; { ... }`, `for ;; { ... }`)
// but the two separating semicolons are always required so the parser
// never has to guess which clause is missing.
func (p *Parser) parseFor(line int) zast.Expr {
	d := &zast.EFor{}

	if !p.at(zlexer.TSemicolon) {
		initStmt := p.parseSimpleStmt()
		d.Init = &initStmt
	}
	p.expect(zlexer.TSemicolon)

	if !p.at(zlexer.TSemicolon) {
		d.Cond = p.parseExpr()
	}
	p.expect(zlexer.TSemicolon)

	if !p.at(zlexer.TLBrace) {
		postStmt := p.parseSimpleStmt()
		d.Post = &postStmt
	}

	d.Body = p.parseBlock()
	return zast.Expr{Loc: zast.Loc{Line: line}, Data: d}
}
