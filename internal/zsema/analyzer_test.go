package zsema

import (
	"testing"

	"github.com/redodson01/zinc/internal/logger"
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/zsymbols"
	"github.com/redodson01/zinc/internal/ztype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyzer() (*Analyzer, *logger.Log) {
	var log logger.Log
	return NewAnalyzer(&log, zsymbols.NewRegistry()), &log
}

func exprStmt(loc int, e zast.Expr) zast.Stmt {
	return zast.Stmt{Loc: zast.Loc{Line: loc}, Data: &zast.SExprStmt{Value: e}}
}

func identExpr(loc int, name string) zast.Expr {
	return zast.Expr{Loc: zast.Loc{Line: loc}, Data: &zast.EIdent{Name: name}}
}

func intExpr(loc int, v int64) zast.Expr {
	return zast.Expr{Loc: zast.Loc{Line: loc}, Data: &zast.EInt{Value: v}}
}

// Scenario 1 (spec.md §8): `"hi " + 42` resolves to string, fresh.
func TestStringPlusIntIsFreshString(t *testing.T) {
	a, log := newAnalyzer()
	e := zast.Expr{Data: &zast.EBinary{
		Op:   zast.BinAdd,
		Left: zast.Expr{Data: &zast.EString{Value: "hi "}},
		Right: intExpr(1, 42),
	}}
	a.analyzeExpr(&e)
	require.False(t, log.HasErrors())
	assert.Equal(t, ztype.String, e.ResolvedType.Kind)
	assert.True(t, e.IsFreshAlloc)
}

// Scenario 2: `if true { 1 } else { 2 }` resolves to int (non-optional).
func TestIfElseSameTypeResolvesToThatType(t *testing.T) {
	a, log := newAnalyzer()
	e := zast.Expr{Data: &zast.EIf{
		Cond:    zast.Expr{Data: &zast.EBool{Value: true}},
		Then:    zast.Block{Stmts: []zast.Stmt{exprStmt(1, intExpr(1, 1))}},
		Else:    zast.Block{Stmts: []zast.Stmt{exprStmt(1, intExpr(1, 2))}},
		HasElse: true,
	}}
	a.analyzeExpr(&e)
	require.False(t, log.HasErrors())
	assert.Equal(t, ztype.Int, e.ResolvedType.Kind)
	assert.False(t, e.ResolvedType.IsOptional)
}

// Scenario 3: `if false { 7 }` (no else) is optional int; narrowing
// makes the then-branch's binding non-optional.
func TestIfWithoutElseIsOptionalAndNarrows(t *testing.T) {
	a, log := newAnalyzer()

	decl := zast.Stmt{Data: &zast.SDecl{Kind: zast.DeclLet, Name: "y", Init: zast.Expr{Data: &zast.EIf{
		Cond: zast.Expr{Data: &zast.EBool{Value: false}},
		Then: zast.Block{Stmts: []zast.Stmt{exprStmt(1, intExpr(1, 7))}},
	}}}}
	a.analyzeStmt(&decl)
	require.False(t, log.HasErrors())

	ySym, ok := a.scope.Lookup("y")
	require.True(t, ok)
	assert.Equal(t, ztype.Int, ySym.Type.Kind)
	assert.True(t, ySym.Type.IsOptional)

	check := zast.Expr{Data: &zast.EOptionalCheck{Operand: identExpr(2, "y")}}
	ifExpr := zast.Expr{Data: &zast.EIf{
		Cond: check,
		Then: zast.Block{Stmts: []zast.Stmt{exprStmt(2, identExpr(2, "y"))}},
	}}
	a.analyzeExpr(&ifExpr)
	require.False(t, log.HasErrors())

	thenExprStmt := ifExpr.Data.(*zast.EIf).Then.Stmts[0].Data.(*zast.SExprStmt)
	assert.False(t, thenExprStmt.Value.ResolvedType.IsOptional, "narrowed 'y' must be non-optional inside the then-branch")
}

// Scenario 5: `while true { break 42 }` yields non-optional int.
func TestWhileTrueWithBreakValueIsNonOptional(t *testing.T) {
	a, log := newAnalyzer()
	e := zast.Expr{Data: &zast.EWhile{
		Cond: zast.Expr{Data: &zast.EBool{Value: true}},
		Body: zast.Block{Stmts: []zast.Stmt{
			{Data: &zast.SBreak{HasValue: true, Value: intExpr(1, 42)}},
		}},
	}}
	a.analyzeExpr(&e)
	require.False(t, log.HasErrors())
	assert.Equal(t, ztype.Int, e.ResolvedType.Kind)
	assert.False(t, e.ResolvedType.IsOptional)
}

func TestWhileNonTrivialCondIsOptional(t *testing.T) {
	a, log := newAnalyzer()
	e := zast.Expr{Data: &zast.EWhile{
		Cond: identExpr(1, "cond"),
		Body: zast.Block{Stmts: []zast.Stmt{
			{Data: &zast.SBreak{HasValue: true, Value: intExpr(1, 1)}},
		}},
	}}
	a.scope.Declare("cond", &zsymbols.Symbol{Name: "cond", Type: ztype.New(ztype.Bool)})
	a.analyzeExpr(&e)
	require.False(t, log.HasErrors())
	assert.True(t, e.ResolvedType.IsOptional)
}

func TestForLoopAlwaysOptional(t *testing.T) {
	a, log := newAnalyzer()
	e := zast.Expr{Data: &zast.EFor{
		Cond: zast.Expr{Data: &zast.EBool{Value: true}},
		Body: zast.Block{Stmts: []zast.Stmt{
			{Data: &zast.SBreak{HasValue: true, Value: intExpr(1, 1)}},
		}},
	}}
	a.analyzeExpr(&e)
	require.False(t, log.HasErrors())
	assert.True(t, e.ResolvedType.IsOptional, "for loops always optional-wrap their result")
}

// Scenario 6: `p.x = 5` where `p` is `let`-bound and `Pt` is a value
// struct reports "cannot modify field of immutable variable 'p'".
func TestLetBoundStructFieldMutationIsAnError(t *testing.T) {
	a, log := newAnalyzer()
	a.registry.Register(&zsymbols.StructDef{
		Name: "Pt",
		Fields: []zsymbols.StructFieldDef{
			{Name: "x", Type: ztype.New(ztype.Int)},
			{Name: "y", Type: ztype.New(ztype.Int)},
		},
	})
	decl := zast.Stmt{Data: &zast.SDecl{Kind: zast.DeclLet, Name: "p", Init: zast.Expr{Data: &zast.ECall{
		Callee: "Pt",
		Args: []zast.Arg{
			{Name: "x", Value: intExpr(1, 1)},
			{Name: "y", Value: intExpr(1, 2)},
		},
	}}}}
	a.analyzeStmt(&decl)
	require.False(t, log.HasErrors())

	assign := zast.Expr{Loc: zast.Loc{Line: 2}, Data: &zast.EAssign{
		Target: zast.Expr{Loc: zast.Loc{Line: 2}, Data: &zast.EFieldAccess{Base: identExpr(2, "p"), Field: "x"}},
		Value:  intExpr(2, 5),
	}}
	a.analyzeExpr(&assign)

	require.True(t, log.HasErrors())
	msgs := log.Msgs()
	assert.Contains(t, msgs[0].Text, "immutable variable 'p'")
}

func TestUndefinedVariableIsAnError(t *testing.T) {
	a, log := newAnalyzer()
	e := identExpr(3, "nope")
	a.analyzeExpr(&e)
	require.True(t, log.HasErrors())
	assert.Equal(t, 3, log.Msgs()[0].Loc.Line)
	assert.Equal(t, ztype.Unknown, e.ResolvedType.Kind)
}

func TestTupleLiteralsWithSameShapeDedupe(t *testing.T) {
	a, log := newAnalyzer()
	t1 := zast.Expr{Data: &zast.ETuple{Elements: []zast.Arg{{Value: intExpr(1, 1)}, {Value: zast.Expr{Data: &zast.EFloat{Value: 2}}}}}}
	t2 := zast.Expr{Data: &zast.ETuple{Elements: []zast.Arg{{Value: intExpr(2, 3)}, {Value: zast.Expr{Data: &zast.EFloat{Value: 4}}}}}}
	a.analyzeExpr(&t1)
	a.analyzeExpr(&t2)
	require.False(t, log.HasErrors())
	assert.Equal(t, t1.ResolvedType.Name, t2.ResolvedType.Name)
	assert.Len(t, a.registry.InOrder(), 1)
}

func TestArrayLiteralHeterogeneousElementsIsAnError(t *testing.T) {
	a, log := newAnalyzer()
	e := zast.Expr{Data: &zast.EArrayLiteral{Elements: []zast.Expr{
		intExpr(1, 1),
		{Data: &zast.EFloat{Value: 2}},
	}}}
	a.analyzeExpr(&e)
	assert.True(t, log.HasErrors())
}

func TestArithmeticCoercesToFloat(t *testing.T) {
	a, log := newAnalyzer()
	e := zast.Expr{Data: &zast.EBinary{
		Op:    zast.BinAdd,
		Left:  intExpr(1, 1),
		Right: zast.Expr{Data: &zast.EFloat{Value: 2}},
	}}
	a.analyzeExpr(&e)
	require.False(t, log.HasErrors())
	assert.Equal(t, ztype.Float, e.ResolvedType.Kind)
}

func TestBreakOutsideLoopIsAnError(t *testing.T) {
	a, log := newAnalyzer()
	s := zast.Stmt{Loc: zast.Loc{Line: 9}, Data: &zast.SBreak{}}
	a.analyzeStmt(&s)
	require.True(t, log.HasErrors())
	assert.Equal(t, 9, log.Msgs()[0].Loc.Line)
}

func TestSelfRecursiveFunctionTypeChecks(t *testing.T) {
	a, log := newAnalyzer()
	def := &zast.SFuncDef{
		Name: "loop",
		ReturnType: &zast.TypeInfo{Kind: ztype.Void},
		Body: zast.Block{Stmts: []zast.Stmt{
			exprStmt(1, zast.Expr{Data: &zast.ECall{Callee: "loop"}}),
		}},
	}
	s := zast.Stmt{Data: def}
	a.analyzeStmt(&s)
	assert.False(t, log.HasErrors())
}
