package zparser

import (
	"testing"

	"github.com/redodson01/zinc/internal/zast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOK(t *testing.T, src string) *zast.Program {
	t.Helper()
	prog, log := Parse(src)
	require.False(t, log.HasErrors(), "unexpected parse errors: %v", log.Msgs())
	return prog
}

func soleStmtExpr(t *testing.T, prog *zast.Program) zast.Expr {
	t.Helper()
	require.Len(t, prog.Stmts, 1)
	es, ok := prog.Stmts[0].Data.(*zast.SExprStmt)
	require.True(t, ok, "top-level statement is not an expression statement: %#v", prog.Stmts[0].Data)
	return es.Value
}

func TestBinaryPrecedenceClimbsCorrectly(t *testing.T) {
	prog := parseOK(t, "1 + 2 * 3;")
	e := soleStmtExpr(t, prog)
	top, ok := e.Data.(*zast.EBinary)
	require.True(t, ok)
	assert.Equal(t, zast.BinAdd, top.Op)
	assert.IsType(t, &zast.EInt{}, top.Left.Data)
	mul, ok := top.Right.Data.(*zast.EBinary)
	require.True(t, ok)
	assert.Equal(t, zast.BinMul, mul.Op)
}

func TestUnaryBindsTighterThanBinary(t *testing.T) {
	prog := parseOK(t, "-1 + 2;")
	e := soleStmtExpr(t, prog)
	top, ok := e.Data.(*zast.EBinary)
	require.True(t, ok)
	assert.IsType(t, &zast.EUnary{}, top.Left.Data)
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	prog := parseOK(t, "a = b = 1;")
	e := soleStmtExpr(t, prog)
	outer, ok := e.Data.(*zast.EAssign)
	require.True(t, ok)
	_, ok = outer.Value.Data.(*zast.EAssign)
	assert.True(t, ok, "expected nested assignment on the right")
}

func TestUnlessDesugarsToNegatedIf(t *testing.T) {
	prog := parseOK(t, "unless cond { 1 };")
	e := soleStmtExpr(t, prog)
	ifExpr, ok := e.Data.(*zast.EIf)
	require.True(t, ok)
	neg, ok := ifExpr.Cond.Data.(*zast.EUnary)
	require.True(t, ok)
	assert.Equal(t, zast.UnaryNot, neg.Op)
	assert.IsType(t, &zast.EIdent{}, neg.Operand.Data)
}

func TestUntilDesugarsToNegatedWhile(t *testing.T) {
	prog := parseOK(t, "until cond { 1 };")
	e := soleStmtExpr(t, prog)
	whileExpr, ok := e.Data.(*zast.EWhile)
	require.True(t, ok)
	neg, ok := whileExpr.Cond.Data.(*zast.EUnary)
	require.True(t, ok)
	assert.Equal(t, zast.UnaryNot, neg.Op)
}

func TestElseIfChainsNestAsSingleStatementElseBlocks(t *testing.T) {
	prog := parseOK(t, "if a { 1 } else if b { 2 } else { 3 };")
	e := soleStmtExpr(t, prog)
	outer, ok := e.Data.(*zast.EIf)
	require.True(t, ok)
	require.True(t, outer.HasElse)
	require.Len(t, outer.Else.Stmts, 1)
	innerStmt, ok := outer.Else.Stmts[0].Data.(*zast.SExprStmt)
	require.True(t, ok)
	inner, ok := innerStmt.Value.Data.(*zast.EIf)
	require.True(t, ok)
	assert.True(t, inner.HasElse)
}

func TestForClausesAreAllOptional(t *testing.T) {
	prog := parseOK(t, "for ;; { 1 };")
	e := soleStmtExpr(t, prog)
	forExpr, ok := e.Data.(*zast.EFor)
	require.True(t, ok)
	assert.Nil(t, forExpr.Init)
	assert.Nil(t, forExpr.Cond.Data)
	assert.Nil(t, forExpr.Post)
}

func TestForWithAllThreeClauses(t *testing.T) {
	prog := parseOK(t, "for let i = 0; i < 10; i = i + 1 { i };")
	e := soleStmtExpr(t, prog)
	forExpr, ok := e.Data.(*zast.EFor)
	require.True(t, ok)
	require.NotNil(t, forExpr.Init)
	assert.IsType(t, &zast.SDecl{}, forExpr.Init.Data)
	require.NotNil(t, forExpr.Post)
}

func TestStringInterpolationDesugarsToConcatTree(t *testing.T) {
	prog := parseOK(t, `"a#{1}b#{2}";`)
	e := soleStmtExpr(t, prog)
	// (("a" + 1) + "b") + 2, left-associative.
	top, ok := e.Data.(*zast.EBinary)
	require.True(t, ok)
	assert.Equal(t, zast.BinAdd, top.Op)
	assert.IsType(t, &zast.EInt{}, top.Right.Data)
	mid, ok := top.Left.Data.(*zast.EBinary)
	require.True(t, ok)
	assert.IsType(t, &zast.EString{}, mid.Right.Data)
	inner, ok := mid.Left.Data.(*zast.EBinary)
	require.True(t, ok)
	assert.IsType(t, &zast.EString{}, inner.Left.Data)
	assert.IsType(t, &zast.EInt{}, inner.Right.Data)
}

func TestPlainStringLiteralCollapsesToEString(t *testing.T) {
	prog := parseOK(t, `"hello";`)
	e := soleStmtExpr(t, prog)
	s, ok := e.Data.(*zast.EString)
	require.True(t, ok)
	assert.Equal(t, "hello", s.Value)
}

func TestCallWithNamedArgs(t *testing.T) {
	prog := parseOK(t, "P(n: 1, m: 2);")
	e := soleStmtExpr(t, prog)
	call, ok := e.Data.(*zast.ECall)
	require.True(t, ok)
	assert.Equal(t, "P", call.Callee)
	require.Len(t, call.Args, 2)
	assert.Equal(t, "n", call.Args[0].Name)
	assert.Equal(t, "m", call.Args[1].Name)
}

func TestParenGroupingVsTupleLiteral(t *testing.T) {
	prog := parseOK(t, "(1);")
	e := soleStmtExpr(t, prog)
	assert.IsType(t, &zast.EInt{}, e.Data)

	prog2 := parseOK(t, "(1, 2);")
	e2 := soleStmtExpr(t, prog2)
	tup, ok := e2.Data.(*zast.ETuple)
	require.True(t, ok)
	assert.Len(t, tup.Elements, 2)
}

func TestDotIntIsPositionalTupleAccess(t *testing.T) {
	prog := parseOK(t, "t.0;")
	e := soleStmtExpr(t, prog)
	fa, ok := e.Data.(*zast.EFieldAccess)
	require.True(t, ok)
	assert.True(t, fa.IsDotInt)
	assert.Equal(t, "_0", fa.Field)
}

func TestArrayLiteral(t *testing.T) {
	prog := parseOK(t, "[1, 2, 3];")
	e := soleStmtExpr(t, prog)
	arr, ok := e.Data.(*zast.EArrayLiteral)
	require.True(t, ok)
	assert.Len(t, arr.Elements, 3)
}

func TestHashLiteral(t *testing.T) {
	prog := parseOK(t, `[1: "a", 2: "b"];`)
	e := soleStmtExpr(t, prog)
	h, ok := e.Data.(*zast.EHashLiteral)
	require.True(t, ok)
	assert.Len(t, h.Pairs, 2)
}

func TestTypedEmptyArrayAndHash(t *testing.T) {
	prog := parseOK(t, "[:int];")
	e := soleStmtExpr(t, prog)
	assert.IsType(t, &zast.ETypedEmptyArray{}, e.Data)

	prog2 := parseOK(t, "[:int, string];")
	e2 := soleStmtExpr(t, prog2)
	assert.IsType(t, &zast.ETypedEmptyHash{}, e2.Data)
}

func TestObjectLiteralFieldsAllNamed(t *testing.T) {
	prog := parseOK(t, "{x: 1, y: 2};")
	e := soleStmtExpr(t, prog)
	obj, ok := e.Data.(*zast.EObjectLiteral)
	require.True(t, ok)
	require.Len(t, obj.Fields, 2)
	assert.Equal(t, "x", obj.Fields[0].Name)
}

func TestOptionalCheckPostfix(t *testing.T) {
	prog := parseOK(t, "y?;")
	e := soleStmtExpr(t, prog)
	chk, ok := e.Data.(*zast.EOptionalCheck)
	require.True(t, ok)
	assert.IsType(t, &zast.EIdent{}, chk.Operand.Data)
}

func TestStructDefParsesFieldsWithoutSeparators(t *testing.T) {
	prog, log := Parse("struct Pt { var x: int var y: int }")
	require.False(t, log.HasErrors())
	require.Len(t, prog.Stmts, 1)
	td, ok := prog.Stmts[0].Data.(*zast.STypeDef)
	require.True(t, ok)
	assert.False(t, td.IsClass)
	require.Len(t, td.Fields, 2)
	assert.Equal(t, "x", td.Fields[0].Name)
	assert.Equal(t, "y", td.Fields[1].Name)
}

func TestClassDefWithWeakAndDefaultField(t *testing.T) {
	prog, log := Parse("class Node { weak var parent: Node let label: string = \"n\" }")
	require.False(t, log.HasErrors())
	td := prog.Stmts[0].Data.(*zast.STypeDef)
	assert.True(t, td.IsClass)
	require.Len(t, td.Fields, 2)
	assert.True(t, td.Fields[0].IsWeak)
	assert.True(t, td.Fields[1].IsConst)
	assert.True(t, td.Fields[1].HasDefault)
}

func TestFuncDefWithParamsAndReturnType(t *testing.T) {
	prog, log := Parse("func add(a: int, b: int) -> int { a + b }")
	require.False(t, log.HasErrors())
	fd := prog.Stmts[0].Data.(*zast.SFuncDef)
	assert.Equal(t, "add", fd.Name)
	require.Len(t, fd.Params, 2)
	require.NotNil(t, fd.ReturnType)
	require.Len(t, fd.Body.Stmts, 1)
}

func TestBreakContinueReturnOptionalValue(t *testing.T) {
	prog, log := Parse("func f() { while true { break 1 } while true { continue } return }")
	require.False(t, log.HasErrors())
	fd := prog.Stmts[0].Data.(*zast.SFuncDef)
	require.Len(t, fd.Body.Stmts, 3)

	whileStmt1 := fd.Body.Stmts[0].Data.(*zast.SExprStmt)
	whileExpr1 := whileStmt1.Value.Data.(*zast.EWhile)
	brk := whileExpr1.Body.Stmts[0].Data.(*zast.SBreak)
	assert.True(t, brk.HasValue)

	whileStmt2 := fd.Body.Stmts[1].Data.(*zast.SExprStmt)
	whileExpr2 := whileStmt2.Value.Data.(*zast.EWhile)
	cont := whileExpr2.Body.Stmts[0].Data.(*zast.SContinue)
	assert.False(t, cont.HasValue)

	ret := fd.Body.Stmts[2].Data.(*zast.SReturn)
	assert.False(t, ret.HasValue)
}

func TestExternBlock(t *testing.T) {
	prog, log := Parse("extern { func puts(s: string) -> int var errno: int }")
	require.False(t, log.HasErrors())
	block := prog.Stmts[0].Data.(*zast.SExternBlock)
	require.Len(t, block.Decls, 2)
	assert.IsType(t, &zast.SExternFunc{}, block.Decls[0].Data)
	assert.IsType(t, &zast.SExternVar{}, block.Decls[1].Data)
}

func TestDeclLetVsVar(t *testing.T) {
	prog, log := Parse("let a = 1; var b = 2;")
	require.False(t, log.HasErrors())
	require.Len(t, prog.Stmts, 2)
	d1 := prog.Stmts[0].Data.(*zast.SDecl)
	assert.Equal(t, zast.DeclLet, d1.Kind)
	d2 := prog.Stmts[1].Data.(*zast.SDecl)
	assert.Equal(t, zast.DeclVar, d2.Kind)
}

func TestMalformedInputRecordsParseError(t *testing.T) {
	_, log := Parse("let = ;")
	assert.True(t, log.HasErrors())
}
