package zparser

import (
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/zlexer"
	"github.com/redodson01/zinc/internal/ztype"
)

var primitiveTypeNames = map[string]ztype.Kind{
	"int":    ztype.Int,
	"float":  ztype.Float,
	"bool":   ztype.Bool,
	"char":   ztype.Char,
	"string": ztype.String,
	"void":   ztype.Void,
}

// parseType parses one type annotation, per spec.md §3's TypeInfo
// shape: a primitive keyword, a struct/class name (resolved later by
// the analyzer), `[T]` / `[K: V]` array/hash brackets, or an inline
// tuple/object composite annotation, any of which may carry a
// trailing `?` marking it optional.
func (p *Parser) parseType() *zast.TypeInfo {
	ti := p.parseTypeAtom()
	if _, ok := p.accept(zlexer.TQuestion); ok {
		ti.IsOptional = true
	}
	return ti
}

func (p *Parser) parseTypeAtom() *zast.TypeInfo {
	switch p.tok().Kind {
	case zlexer.TIdent:
		name := p.advance().Text
		if kind, ok := primitiveTypeNames[name]; ok {
			return &zast.TypeInfo{Kind: kind}
		}
		// Unqualified names resolve against the struct/class registry
		// during semantic analysis; the parser always emits Struct, per
		// spec.md §4.3 ("a name referring to a class resolves to class
		// kind even though the parser emitted struct").
		return &zast.TypeInfo{Kind: ztype.Struct, Name: name}

	case zlexer.TLBracket:
		return p.parseArrayOrHashType()

	case zlexer.TLParen:
		return p.parseTupleType()

	case zlexer.TLBrace:
		return p.parseObjectType()

	default:
		p.log.AddError(p.tok().Line, "expected a type but found %s", p.tok().Kind)
		p.advance()
		return &zast.TypeInfo{Kind: ztype.Unknown}
	}
}

// parseArrayOrHashType handles `[T]` (array of T) and `[K: V]` (hash
// from K to V), disambiguated by whether a `:` follows the first type.
func (p *Parser) parseArrayOrHashType() *zast.TypeInfo {
	p.expect(zlexer.TLBracket)
	first := p.parseType()
	if _, ok := p.accept(zlexer.TColon); ok {
		val := p.parseType()
		p.expect(zlexer.TRBracket)
		return &zast.TypeInfo{Kind: ztype.Hash, Key: first, Elem: val}
	}
	p.expect(zlexer.TRBracket)
	return &zast.TypeInfo{Kind: ztype.Array, Elem: first}
}

// parseTupleType parses an inline tuple annotation: `(int, string)` or
// `(x: int, y: string)`.
func (p *Parser) parseTupleType() *zast.TypeInfo {
	p.expect(zlexer.TLParen)
	var fields []zast.TypeInfoField
	for !p.at(zlexer.TRParen) && !p.at(zlexer.TEOF) {
		fields = append(fields, p.parseTypeInfoField())
		if _, ok := p.accept(zlexer.TComma); !ok {
			break
		}
	}
	p.expect(zlexer.TRParen)
	return &zast.TypeInfo{IsTuple: true, Fields: fields}
}

// parseObjectType parses an inline object-literal-shaped annotation:
// `{x: int, y: string}`. Every field must be named.
func (p *Parser) parseObjectType() *zast.TypeInfo {
	p.expect(zlexer.TLBrace)
	var fields []zast.TypeInfoField
	for !p.at(zlexer.TRBrace) && !p.at(zlexer.TEOF) {
		fields = append(fields, p.parseTypeInfoField())
		if _, ok := p.accept(zlexer.TComma); !ok {
			break
		}
	}
	p.expect(zlexer.TRBrace)
	return &zast.TypeInfo{IsObject: true, Fields: fields}
}

// parseTypeInfoField parses one `name: type` slot, or a bare `type`
// for a positional tuple component.
func (p *Parser) parseTypeInfoField() zast.TypeInfoField {
	if p.at(zlexer.TIdent) && p.peekIsColonAfterIdent() {
		name := p.advance().Text
		p.expect(zlexer.TColon)
		return zast.TypeInfoField{Name: name, Type: p.parseType()}
	}
	return zast.TypeInfoField{Type: p.parseType()}
}

// peekIsColonAfterIdent disambiguates `name: Type` from a bare
// primitive/struct type name by checking one token ahead without
// consuming it, possible because naming a type and naming a field both
// start with an identifier token.
func (p *Parser) peekIsColonAfterIdent() bool {
	save := *p.lex
	name := p.advance().Text
	isColon := p.at(zlexer.TColon)
	*p.lex = save
	_ = name
	return isColon
}
