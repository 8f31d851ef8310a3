package zparser

import (
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/zlexer"
)

// parseStmt parses one top-level-or-block statement. Anything that is
// not one of the explicit statement-introducing keywords falls through
// to a bare expression statement, which is how if/while/for/etc. are
// used for their side effects rather than their value.
func (p *Parser) parseStmt() zast.Stmt {
	switch p.tok().Kind {
	case zlexer.TLet, zlexer.TVar:
		return p.parseDecl()
	case zlexer.TBreak:
		return p.parseBreak()
	case zlexer.TContinue:
		return p.parseContinue()
	case zlexer.TReturn:
		return p.parseReturn()
	case zlexer.TFunc:
		return p.parseFuncDef()
	case zlexer.TClass:
		return p.parseTypeDef(true)
	case zlexer.TStruct:
		return p.parseTypeDef(false)
	case zlexer.TExtern:
		return p.parseExtern()
	default:
		return p.parseSimpleStmt()
	}
}

// parseSimpleStmt parses the subset of parseStmt valid inside a `for`
// loop's init/post clause: a let/var declaration or a bare expression,
// neither of which can themselves introduce a nested func/class/
// struct/extern declaration.
func (p *Parser) parseSimpleStmt() zast.Stmt {
	if p.at(zlexer.TLet) || p.at(zlexer.TVar) {
		return p.parseDecl()
	}
	line := p.tok().Line
	e := p.parseExpr()
	return zast.Stmt{Loc: zast.Loc{Line: line}, Data: &zast.SExprStmt{Value: e}}
}

func (p *Parser) parseDecl() zast.Stmt {
	line := p.tok().Line
	kind := zast.DeclVar
	if p.at(zlexer.TLet) {
		kind = zast.DeclLet
	}
	p.advance()
	name := p.expect(zlexer.TIdent).Text

	var annotation *zast.TypeInfo
	if _, ok := p.accept(zlexer.TColon); ok {
		annotation = p.parseType()
	}
	p.expect(zlexer.TEq)
	init := p.parseExpr()

	return zast.Stmt{Loc: zast.Loc{Line: line}, Data: &zast.SDecl{
		Kind: kind, Name: name, TypeAnnotation: annotation, Init: init,
	}}
}

func (p *Parser) parseBreak() zast.Stmt {
	line := p.tok().Line
	p.advance()
	d := &zast.SBreak{}
	if p.startsExpr() {
		d.HasValue = true
		d.Value = p.parseExpr()
	}
	return zast.Stmt{Loc: zast.Loc{Line: line}, Data: d}
}

func (p *Parser) parseContinue() zast.Stmt {
	line := p.tok().Line
	p.advance()
	d := &zast.SContinue{}
	if p.startsExpr() {
		d.HasValue = true
		d.Value = p.parseExpr()
	}
	return zast.Stmt{Loc: zast.Loc{Line: line}, Data: d}
}

func (p *Parser) parseReturn() zast.Stmt {
	line := p.tok().Line
	p.advance()
	d := &zast.SReturn{}
	if p.startsExpr() {
		d.HasValue = true
		d.Value = p.parseExpr()
	}
	return zast.Stmt{Loc: zast.Loc{Line: line}, Data: d}
}

// startsExpr reports whether the current token can begin an
// expression, used to decide whether a bare `break`/`continue`/
// `return` carries a trailing value or is immediately followed by a
// statement terminator / block-closing brace.
func (p *Parser) startsExpr() bool {
	switch p.tok().Kind {
	case zlexer.TSemicolon, zlexer.TRBrace, zlexer.TEOF:
		return false
	default:
		return true
	}
}

func (p *Parser) parseParams() []zast.ParamDecl {
	p.expect(zlexer.TLParen)
	var params []zast.ParamDecl
	for !p.at(zlexer.TRParen) && !p.at(zlexer.TEOF) {
		line := p.tok().Line
		name := p.expect(zlexer.TIdent).Text
		p.expect(zlexer.TColon)
		ty := p.parseType()
		params = append(params, zast.ParamDecl{Loc: zast.Loc{Line: line}, Name: name, TypeAnnotation: ty})
		if _, ok := p.accept(zlexer.TComma); !ok {
			break
		}
	}
	p.expect(zlexer.TRParen)
	return params
}

func (p *Parser) parseFuncDef() zast.Stmt {
	line := p.tok().Line
	p.advance()
	name := p.expect(zlexer.TIdent).Text
	params := p.parseParams()

	var ret *zast.TypeInfo
	if _, ok := p.accept(zlexer.TArrow); ok {
		ret = p.parseType()
	}
	body := p.parseBlock()

	return zast.Stmt{Loc: zast.Loc{Line: line}, Data: &zast.SFuncDef{
		Name: name, Params: params, ReturnType: ret, Body: body,
	}}
}

// parseTypeDef parses a `struct` or `class` definition. Field syntax
// is `(weak)? (var|let) name: Type (= default)?`, one per line inside
// the braces.
func (p *Parser) parseTypeDef(isClass bool) zast.Stmt {
	line := p.tok().Line
	p.advance()
	name := p.expect(zlexer.TIdent).Text
	p.expect(zlexer.TLBrace)
	p.skipSemis()

	var fields []zast.StructFieldDecl
	for !p.at(zlexer.TRBrace) && !p.at(zlexer.TEOF) {
		fields = append(fields, p.parseStructFieldDecl())
		p.skipSemis()
	}
	p.expect(zlexer.TRBrace)

	return zast.Stmt{Loc: zast.Loc{Line: line}, Data: &zast.STypeDef{
		Name: name, Fields: fields, IsClass: isClass,
	}}
}

func (p *Parser) parseStructFieldDecl() zast.StructFieldDecl {
	line := p.tok().Line
	isWeak := false
	if p.at(zlexer.TWeak) {
		isWeak = true
		p.advance()
	}
	isConst := p.at(zlexer.TLet)
	if !p.at(zlexer.TLet) && !p.at(zlexer.TVar) {
		p.log.AddError(p.tok().Line, "expected 'var' or 'let' in field declaration, found %s", p.tok().Kind)
	} else {
		p.advance()
	}
	name := p.expect(zlexer.TIdent).Text
	p.expect(zlexer.TColon)
	ty := p.parseType()

	f := zast.StructFieldDecl{Loc: zast.Loc{Line: line}, Name: name, TypeAnnotation: ty, IsConst: isConst, IsWeak: isWeak}
	if _, ok := p.accept(zlexer.TEq); ok {
		f.HasDefault = true
		f.Default = p.parseExpr()
	}
	return f
}

// parseExtern parses either a single extern declaration (`extern func
// ...`, `extern var ...`, `extern let ...`) or a braced block of them
// (`extern { ... }`).
func (p *Parser) parseExtern() zast.Stmt {
	line := p.tok().Line
	p.advance()
	if _, ok := p.accept(zlexer.TLBrace); ok {
		p.skipSemis()
		var decls []zast.Stmt
		for !p.at(zlexer.TRBrace) && !p.at(zlexer.TEOF) {
			decls = append(decls, p.parseExternDecl())
			p.skipSemis()
		}
		p.expect(zlexer.TRBrace)
		return zast.Stmt{Loc: zast.Loc{Line: line}, Data: &zast.SExternBlock{Decls: decls}}
	}
	return p.parseExternDecl()
}

func (p *Parser) parseExternDecl() zast.Stmt {
	line := p.tok().Line
	switch p.tok().Kind {
	case zlexer.TFunc:
		p.advance()
		name := p.expect(zlexer.TIdent).Text
		params := p.parseParams()
		var ret *zast.TypeInfo
		if _, ok := p.accept(zlexer.TArrow); ok {
			ret = p.parseType()
		}
		return zast.Stmt{Loc: zast.Loc{Line: line}, Data: &zast.SExternFunc{Name: name, Params: params, ReturnType: ret}}
	case zlexer.TVar:
		p.advance()
		name := p.expect(zlexer.TIdent).Text
		p.expect(zlexer.TColon)
		ty := p.parseType()
		return zast.Stmt{Loc: zast.Loc{Line: line}, Data: &zast.SExternVar{Name: name, TypeAnnotation: ty}}
	case zlexer.TLet:
		p.advance()
		name := p.expect(zlexer.TIdent).Text
		p.expect(zlexer.TColon)
		ty := p.parseType()
		return zast.Stmt{Loc: zast.Loc{Line: line}, Data: &zast.SExternLet{Name: name, TypeAnnotation: ty}}
	default:
		p.log.AddError(line, "expected 'func', 'var', or 'let' in extern declaration, found %s", p.tok().Kind)
		p.advance()
		return zast.Stmt{Loc: zast.Loc{Line: line}, Data: &zast.SExprStmt{}}
	}
}
