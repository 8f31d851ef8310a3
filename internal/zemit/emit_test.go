package zemit_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/redodson01/zinc/internal/logger"
	"github.com/redodson01/zinc/internal/zast"
	"github.com/redodson01/zinc/internal/zemit"
	"github.com/redodson01/zinc/internal/zsema"
	"github.com/redodson01/zinc/internal/zsymbols"
	"github.com/redodson01/zinc/internal/ztype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzeAndEmit(t *testing.T, prog *zast.Program) zemit.Result {
	t.Helper()
	var log logger.Log
	reg := zsymbols.NewRegistry()
	a := zsema.NewAnalyzer(&log, reg)
	a.Analyze(prog)
	require.False(t, log.HasErrors(), "unexpected analysis errors: %v", log.Msgs())
	return zemit.EmitProgram(prog, reg, "main.zn", "main")
}

func exprStmt(e zast.Expr) zast.Stmt { return zast.Stmt{Data: &zast.SExprStmt{Value: e}} }
func intExpr(v int64) zast.Expr      { return zast.Expr{Data: &zast.EInt{Value: v}} }

// Scenario 2 (spec.md §8): an if/else of matching non-optional type
// lowers to the literal statement-expression shape spec.md §4.4.1
// shows: a declared result temp, ordinary if/else assigning into it,
// the temp yielded last.
func TestEmitIfElseStatementExpression(t *testing.T) {
	prog := &zast.Program{Stmts: []zast.Stmt{
		{Data: &zast.SFuncDef{
			Name: "main",
			Body: zast.Block{Stmts: []zast.Stmt{
				{Data: &zast.SDecl{Kind: zast.DeclLet, Name: "x", Init: zast.Expr{Data: &zast.EIf{
					Cond:    zast.Expr{Data: &zast.EBool{Value: true}},
					Then:    zast.Block{Stmts: []zast.Stmt{exprStmt(intExpr(1))}},
					Else:    zast.Block{Stmts: []zast.Stmt{exprStmt(intExpr(2))}},
					HasElse: true,
				}}}},
				exprStmt(intExpr(0)),
			}},
		}},
	}}
	res := analyzeAndEmit(t, prog)

	assert.Contains(t, res.Source, "int64_t __if_0;")
	assert.Contains(t, res.Source, "if (true) {")
	assert.Contains(t, res.Source, "__if_0 = 1;")
	assert.Contains(t, res.Source, "} else {")
	assert.Contains(t, res.Source, "__if_0 = 2;")
}

// Scenario 1: `"hi " + 42` resolves to a fresh string; the emitter
// coerces the int leaf through __zn_str_from_int and concatenates once.
func TestEmitStringConcatCoercesAndConcatsOnce(t *testing.T) {
	prog := &zast.Program{Stmts: []zast.Stmt{
		{Data: &zast.SFuncDef{
			Name: "main",
			Body: zast.Block{Stmts: []zast.Stmt{
				{Data: &zast.SDecl{Kind: zast.DeclLet, Name: "s", Init: zast.Expr{Data: &zast.EBinary{
					Op:    zast.BinAdd,
					Left:  zast.Expr{Data: &zast.EString{Value: "hi "}},
					Right: intExpr(42),
				}}}},
				exprStmt(zast.Expr{Data: &zast.ECall{Callee: "print", Args: []zast.Arg{{Value: zast.Expr{Data: &zast.EIdent{Name: "s"}}}}}}),
				exprStmt(intExpr(0)),
			}},
		}},
	}}
	res := analyzeAndEmit(t, prog)

	assert.Contains(t, res.Source, "__zn_str_from_int(")
	assert.Equal(t, 1, strings.Count(res.Source, "__zn_str_concat("))
	assert.Contains(t, res.Source, "__zn_print(s)")
	assert.Contains(t, res.Source, "ZnString* s =")
}

// Scenario 3: `let y = if false { 7 }` resolves y to optional int,
// emitted as ZnOpt_int; inside the narrowed then-branch `y` emits as
// `y._val`.
func TestEmitOptionalIntNarrowsToVal(t *testing.T) {
	prog := &zast.Program{Stmts: []zast.Stmt{
		{Data: &zast.SFuncDef{
			Name: "main",
			Body: zast.Block{Stmts: []zast.Stmt{
				{Data: &zast.SDecl{Kind: zast.DeclLet, Name: "y", Init: zast.Expr{Data: &zast.EIf{
					Cond: zast.Expr{Data: &zast.EBool{Value: false}},
					Then: zast.Block{Stmts: []zast.Stmt{exprStmt(intExpr(7))}},
				}}}},
				exprStmt(zast.Expr{Data: &zast.EIf{
					Cond: zast.Expr{Data: &zast.EOptionalCheck{Operand: zast.Expr{Data: &zast.EIdent{Name: "y"}}}},
					Then: zast.Block{Stmts: []zast.Stmt{
						exprStmt(zast.Expr{Data: &zast.EIdent{Name: "y"}}),
						exprStmt(zast.Expr{Data: &zast.ECall{Callee: "print", Args: []zast.Arg{{Value: zast.Expr{Data: &zast.EString{Value: "x"}}}}}}),
					}},
				}}),
				exprStmt(intExpr(0)),
			}},
		}},
	}}
	res := analyzeAndEmit(t, prog)

	assert.Contains(t, res.Source, "ZnOpt_int")
	assert.Contains(t, res.Source, "ZnOpt_int y =")
	assert.Contains(t, res.Source, "y._val")
}

// Scenario 5: `var v = while true { break 42 }` resolves to
// non-optional int; the loop's result temp is set by the break.
func TestEmitWhileTrueBreakValueNonOptional(t *testing.T) {
	prog := &zast.Program{Stmts: []zast.Stmt{
		{Data: &zast.SFuncDef{
			Name: "main",
			Body: zast.Block{Stmts: []zast.Stmt{
				{Data: &zast.SDecl{Kind: zast.DeclVar, Name: "v", Init: zast.Expr{Data: &zast.EWhile{
					Cond: zast.Expr{Data: &zast.EBool{Value: true}},
					Body: zast.Block{Stmts: []zast.Stmt{
						{Data: &zast.SBreak{HasValue: true, Value: intExpr(42)}},
					}},
				}}}},
				exprStmt(intExpr(0)),
			}},
		}},
	}}
	res := analyzeAndEmit(t, prog)

	assert.Contains(t, res.Source, "int64_t __loop_0;")
	assert.Contains(t, res.Source, "__loop_0 = 42;")
	assert.Contains(t, res.Source, "goto __loop_break_")
}

// Scenario 6 is a semantic error (not emitted); covered in
// internal/zsema's analyzer tests instead.

func TestEmitTypeLayoutOrdersValueStructsBeforeClasses(t *testing.T) {
	prog := &zast.Program{Stmts: []zast.Stmt{
		{Data: &zast.STypeDef{Name: "Pt", Fields: []zast.StructFieldDecl{
			{Name: "x", TypeAnnotation: &zast.TypeInfo{Kind: ztype.Int}},
		}}},
		{Data: &zast.STypeDef{Name: "Box", IsClass: true, Fields: []zast.StructFieldDecl{
			{Name: "n", TypeAnnotation: &zast.TypeInfo{Kind: ztype.Int}},
		}}},
		{Data: &zast.SFuncDef{Name: "main", Body: zast.Block{Stmts: []zast.Stmt{exprStmt(intExpr(0))}}}},
	}}
	res := analyzeAndEmit(t, prog)

	ptIdx := strings.Index(res.Header, "} Pt;")
	boxIdx := strings.Index(res.Header, "} Box;")
	require.GreaterOrEqual(t, ptIdx, 0)
	require.GreaterOrEqual(t, boxIdx, 0)
	assert.Less(t, ptIdx, boxIdx, "value-struct typedefs must precede class typedefs (spec.md §4.5 emit order)")

	if diff := cmp.Diff("", ""); diff != "" {
		t.Fatalf("sanity check for go-cmp import: %s", diff)
	}
}
