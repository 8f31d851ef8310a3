package zparser

import (
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/zlexer"
)

// parseExpr is the top-level expression entry point: assignment has
// the lowest precedence, so every other production is reached through
// it.
func (p *Parser) parseExpr() zast.Expr {
	return p.parseAssignment()
}

var compoundAssignOps = map[zlexer.T]zast.BinOp{
	zlexer.TPlusEq:    zast.BinAdd,
	zlexer.TMinusEq:   zast.BinSub,
	zlexer.TStarEq:    zast.BinMul,
	zlexer.TSlashEq:   zast.BinDiv,
	zlexer.TPercentEq: zast.BinMod,
}

func (p *Parser) parseAssignment() zast.Expr {
	left := p.parseLogicalOr()

	if _, ok := p.accept(zlexer.TEq); ok {
		value := p.parseAssignment()
		return zast.Expr{Loc: left.Loc, Data: &zast.EAssign{Target: left, Value: value}}
	}
	if op, ok := compoundAssignOps[p.tok().Kind]; ok {
		p.advance()
		value := p.parseAssignment()
		return zast.Expr{Loc: left.Loc, Data: &zast.ECompoundAssign{Op: op, Target: left, Value: value}}
	}
	return left
}

func (p *Parser) parseLogicalOr() zast.Expr {
	left := p.parseLogicalAnd()
	for {
		if _, ok := p.accept(zlexer.TOrOr); ok {
			right := p.parseLogicalAnd()
			left = zast.Expr{Loc: left.Loc, Data: &zast.EBinary{Op: zast.BinOr, Left: left, Right: right}}
			continue
		}
		return left
	}
}

func (p *Parser) parseLogicalAnd() zast.Expr {
	left := p.parseEquality()
	for {
		if _, ok := p.accept(zlexer.TAndAnd); ok {
			right := p.parseEquality()
			left = zast.Expr{Loc: left.Loc, Data: &zast.EBinary{Op: zast.BinAnd, Left: left, Right: right}}
			continue
		}
		return left
	}
}

var equalityOps = map[zlexer.T]zast.BinOp{
	zlexer.TEqEq:  zast.BinEq,
	zlexer.TNotEq: zast.BinNe,
}

func (p *Parser) parseEquality() zast.Expr {
	left := p.parseRelational()
	for {
		if op, ok := equalityOps[p.tok().Kind]; ok {
			p.advance()
			right := p.parseRelational()
			left = zast.Expr{Loc: left.Loc, Data: &zast.EBinary{Op: op, Left: left, Right: right}}
			continue
		}
		return left
	}
}

var relationalOps = map[zlexer.T]zast.BinOp{
	zlexer.TLt: zast.BinLt, zlexer.TGt: zast.BinGt,
	zlexer.TLe: zast.BinLe, zlexer.TGe: zast.BinGe,
}

func (p *Parser) parseRelational() zast.Expr {
	left := p.parseAdditive()
	for {
		if op, ok := relationalOps[p.tok().Kind]; ok {
			p.advance()
			right := p.parseAdditive()
			left = zast.Expr{Loc: left.Loc, Data: &zast.EBinary{Op: op, Left: left, Right: right}}
			continue
		}
		return left
	}
}

var additiveOps = map[zlexer.T]zast.BinOp{
	zlexer.TPlus: zast.BinAdd, zlexer.TMinus: zast.BinSub,
}

func (p *Parser) parseAdditive() zast.Expr {
	left := p.parseMultiplicative()
	for {
		if op, ok := additiveOps[p.tok().Kind]; ok {
			p.advance()
			right := p.parseMultiplicative()
			left = zast.Expr{Loc: left.Loc, Data: &zast.EBinary{Op: op, Left: left, Right: right}}
			continue
		}
		return left
	}
}

var multiplicativeOps = map[zlexer.T]zast.BinOp{
	zlexer.TStar: zast.BinMul, zlexer.TSlash: zast.BinDiv, zlexer.TPercent: zast.BinMod,
}

func (p *Parser) parseMultiplicative() zast.Expr {
	left := p.parseUnary()
	for {
		if op, ok := multiplicativeOps[p.tok().Kind]; ok {
			p.advance()
			right := p.parseUnary()
			left = zast.Expr{Loc: left.Loc, Data: &zast.EBinary{Op: op, Left: left, Right: right}}
			continue
		}
		return left
	}
}

func (p *Parser) parseUnary() zast.Expr {
	line := p.tok().Line
	switch p.tok().Kind {
	case zlexer.TNot:
		p.advance()
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EUnary{Op: zast.UnaryNot, Operand: p.parseUnary()}}
	case zlexer.TMinus:
		p.advance()
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EUnary{Op: zast.UnaryNeg, Operand: p.parseUnary()}}
	case zlexer.TPlus:
		p.advance()
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EUnary{Op: zast.UnaryPos, Operand: p.parseUnary()}}
	case zlexer.TPlusPlus:
		p.advance()
		target := p.parseUnary()
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EIncDec{Op: zast.Increment, IsPrefix: true, Target: target}}
	case zlexer.TMinusMinus:
		p.advance()
		target := p.parseUnary()
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EIncDec{Op: zast.Decrement, IsPrefix: true, Target: target}}
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() zast.Expr {
	e := p.parsePrimary()
	for {
		switch p.tok().Kind {
		case zlexer.TDot:
			p.advance()
			e = p.parseFieldAccess(e)
		case zlexer.TLBracket:
			p.advance()
			idx := p.parseExpr()
			p.expect(zlexer.TRBracket)
			e = zast.Expr{Loc: e.Loc, Data: &zast.EIndex{Base: e, Index: idx}}
		case zlexer.TQuestion:
			p.advance()
			e = zast.Expr{Loc: e.Loc, Data: &zast.EOptionalCheck{Operand: e}}
		case zlexer.TPlusPlus:
			p.advance()
			e = zast.Expr{Loc: e.Loc, Data: &zast.EIncDec{Op: zast.Increment, IsPrefix: false, Target: e}}
		case zlexer.TMinusMinus:
			p.advance()
			e = zast.Expr{Loc: e.Loc, Data: &zast.EIncDec{Op: zast.Decrement, IsPrefix: false, Target: e}}
		default:
			return e
		}
	}
}

// parseFieldAccess parses the token(s) after a consumed `.`: either a
// bare name (`p.field`) or a tuple's canonical positional accessor
// (`t.0`, `t.1`, ...), which the lexer hands back as an int literal
// token since `.0` looks like a field selector followed by digits, not
// a float.
func (p *Parser) parseFieldAccess(base zast.Expr) zast.Expr {
	if tok, ok := p.accept(zlexer.TIntLiteral); ok {
		return zast.Expr{Loc: base.Loc, Data: &zast.EFieldAccess{Base: base, Field: positionalFieldName(int(tok.IntValue)), IsDotInt: true}}
	}
	name := p.expect(zlexer.TIdent).Text
	return zast.Expr{Loc: base.Loc, Data: &zast.EFieldAccess{Base: base, Field: name}}
}

func positionalFieldName(n int) string {
	digits := "0123456789"
	if n < 10 {
		return "_" + string(digits[n])
	}
	s := ""
	for n > 0 {
		s = string(digits[n%10]) + s
		n /= 10
	}
	return "_" + s
}

func (p *Parser) parsePrimary() zast.Expr {
	line := p.tok().Line
	switch p.tok().Kind {
	case zlexer.TIntLiteral:
		t := p.advance()
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EInt{Value: t.IntValue}}
	case zlexer.TFloatLiteral:
		t := p.advance()
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EFloat{Value: t.FloatValue}}
	case zlexer.TCharLiteral:
		t := p.advance()
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EChar{Value: t.CharValue}}
	case zlexer.TStringLiteral:
		t := p.advance()
		return p.interpolationSegmentsToExpr(line, t.Segments)
	case zlexer.TTrue:
		p.advance()
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EBool{Value: true}}
	case zlexer.TFalse:
		p.advance()
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EBool{Value: false}}
	case zlexer.TNil:
		p.advance()
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.ENil{}}
	case zlexer.TPrint:
		p.advance()
		return p.parseCallArgs(line, "print")
	case zlexer.TIdent:
		name := p.advance().Text
		if p.at(zlexer.TLParen) {
			return p.parseCallArgs(line, name)
		}
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EIdent{Name: name}}
	case zlexer.TLParen:
		return p.parseParenOrTuple(line)
	case zlexer.TLBrace:
		return p.parseObjectLiteral(line)
	case zlexer.TLBracket:
		return p.parseArrayOrHashLiteral(line)
	case zlexer.TIf:
		p.advance()
		return p.parseIf(line)
	case zlexer.TUnless:
		p.advance()
		return p.parseUnless(line)
	case zlexer.TWhile:
		p.advance()
		return p.parseWhile(line)
	case zlexer.TUntil:
		p.advance()
		return p.parseUntil(line)
	case zlexer.TFor:
		p.advance()
		return p.parseFor(line)
	default:
		p.log.AddError(line, "unexpected token %s in expression", p.tok().Kind)
		p.advance()
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EInt{Value: 0}}
	}
}

// parseCallArgs parses the `(args)` of a call (or struct/class
// instantiation — the parser does not distinguish; spec.md §4.3
// leaves that to the analyzer). Arguments may be named (`x: expr`,
// required for struct/class instantiation) or positional.
func (p *Parser) parseCallArgs(line int, callee string) zast.Expr {
	p.expect(zlexer.TLParen)
	var args []zast.Arg
	for !p.at(zlexer.TRParen) && !p.at(zlexer.TEOF) {
		args = append(args, p.parseArg())
		if _, ok := p.accept(zlexer.TComma); !ok {
			break
		}
	}
	p.expect(zlexer.TRParen)
	return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.ECall{Callee: callee, Args: args}}
}

// parseArg parses one call argument or tuple component: `name: expr`
// when a bare identifier is immediately followed by `:`, otherwise a
// plain positional expression.
func (p *Parser) parseArg() zast.Arg {
	line := p.tok().Line
	if p.at(zlexer.TIdent) && p.peekIsColonAfterIdent() {
		name := p.advance().Text
		p.expect(zlexer.TColon)
		return zast.Arg{Loc: zast.Loc{Line: line}, Name: name, Value: p.parseExpr()}
	}
	return zast.Arg{Loc: zast.Loc{Line: line}, Value: p.parseExpr()}
}

// parseParenOrTuple disambiguates plain grouping (`(expr)`) from a
// tuple literal (`(e1, e2)`, `(x: 1, y: 2)`): a single, unnamed
// component with no trailing comma is just parenthesization.
func (p *Parser) parseParenOrTuple(line int) zast.Expr {
	p.expect(zlexer.TLParen)
	if _, ok := p.accept(zlexer.TRParen); ok {
		// `()` has no sensible grouping meaning; treat as an empty tuple.
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.ETuple{}}
	}

	first := p.parseArg()
	if _, ok := p.accept(zlexer.TComma); !ok {
		p.expect(zlexer.TRParen)
		if first.Name == "" {
			return first.Value // plain grouping
		}
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.ETuple{Elements: []zast.Arg{first}}}
	}

	elems := []zast.Arg{first}
	for !p.at(zlexer.TRParen) && !p.at(zlexer.TEOF) {
		elems = append(elems, p.parseArg())
		if _, ok := p.accept(zlexer.TComma); !ok {
			break
		}
	}
	p.expect(zlexer.TRParen)
	return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.ETuple{Elements: elems}}
}

// parseObjectLiteral parses `{name: expr, ...}`. Every field must be
// named, per spec.md §3 ("Object literals are classes").
func (p *Parser) parseObjectLiteral(line int) zast.Expr {
	p.expect(zlexer.TLBrace)
	var fields []zast.Arg
	for !p.at(zlexer.TRBrace) && !p.at(zlexer.TEOF) {
		fieldLine := p.tok().Line
		name := p.expect(zlexer.TIdent).Text
		p.expect(zlexer.TColon)
		fields = append(fields, zast.Arg{Loc: zast.Loc{Line: fieldLine}, Name: name, Value: p.parseExpr()})
		if _, ok := p.accept(zlexer.TComma); !ok {
			break
		}
	}
	p.expect(zlexer.TRBrace)
	return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EObjectLiteral{Fields: fields}}
}

// parseArrayOrHashLiteral parses `[e1, e2, ...]` (array), `[k1: v1,
// ...]` (hash), and the typed-empty forms `[:T]` / `[:K, V]` used when
// an empty collection's element/key/value type cannot be inferred from
// any element (spec.md §4.3, "Typed empty collections take their
// element/key/value types from the annotation").
func (p *Parser) parseArrayOrHashLiteral(line int) zast.Expr {
	p.expect(zlexer.TLBracket)

	if _, ok := p.accept(zlexer.TColon); ok {
		first := p.parseType()
		if _, ok := p.accept(zlexer.TComma); ok {
			val := p.parseType()
			p.expect(zlexer.TRBracket)
			return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.ETypedEmptyHash{KeyType: first, ValType: val}}
		}
		p.expect(zlexer.TRBracket)
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.ETypedEmptyArray{ElemType: first}}
	}

	if _, ok := p.accept(zlexer.TRBracket); ok {
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EArrayLiteral{}}
	}

	first := p.parseExpr()
	if _, ok := p.accept(zlexer.TColon); ok {
		firstVal := p.parseExpr()
		pairs := []zast.HashPair{{Loc: zast.Loc{Line: line}, Key: first, Value: firstVal}}
		for {
			if _, ok := p.accept(zlexer.TComma); !ok {
				break
			}
			if p.at(zlexer.TRBracket) {
				break
			}
			pairLine := p.tok().Line
			k := p.parseExpr()
			p.expect(zlexer.TColon)
			v := p.parseExpr()
			pairs = append(pairs, zast.HashPair{Loc: zast.Loc{Line: pairLine}, Key: k, Value: v})
		}
		p.expect(zlexer.TRBracket)
		return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EHashLiteral{Pairs: pairs}}
	}

	elems := []zast.Expr{first}
	for {
		if _, ok := p.accept(zlexer.TComma); !ok {
			break
		}
		if p.at(zlexer.TRBracket) {
			break
		}
		elems = append(elems, p.parseExpr())
	}
	p.expect(zlexer.TRBracket)
	return zast.Expr{Loc: zast.Loc{Line: line}, Data: &zast.EArrayLiteral{Elements: elems}}
}
