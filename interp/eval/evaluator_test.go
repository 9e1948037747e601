package eval

import (
	"testing"

	"github.com/loturtle/logocore/interp/parser"
	"github.com/loturtle/logocore/interp/scope"
	"github.com/loturtle/logocore/interp/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// printProc is a minimal command builtin standing in for the real
// `print` (package builtin, not yet built when this test was written):
// it records the stringified form of its single argument.
type printProc struct {
	out *[]string
}

func (p printProc) Params() int { return 1 }
func (p printProc) Call(ev *Evaluator, args []value.Value) (value.Value, bool, error) {
	*p.out = append(*p.out, args[0].String())
	return nil, false, nil
}

// variadicSumProc is a minimal stand-in for the `sum` builtin, declaring
// a minimum arity of 2 and summing however many numeric args it's
// actually given — used to exercise the "(name …)" variadic call form.
type variadicSumProc struct{}

func (variadicSumProc) Params() int { return 2 }
func (variadicSumProc) Call(ev *Evaluator, args []value.Value) (value.Value, bool, error) {
	total := 0.0
	for _, a := range args {
		n, err := ToNumber(a)
		if err != nil {
			return nil, false, err
		}
		total += n
	}
	return value.Number(total), true, nil
}

func newTestEvaluator(t *testing.T, procs map[string]Proc) (*Evaluator, *scope.Context) {
	t.Helper()
	ps := scope.New[Proc](nil)
	for name, p := range procs {
		ps.BindValue(name, p)
	}
	vars := scope.New[value.Value](nil)
	ctx := scope.NewGlobalContext()
	return New(ps, vars, ctx, nil, 0, nil, nil), ctx
}

func evalSource(t *testing.T, ev *Evaluator, src string) (value.Value, bool, error) {
	t.Helper()
	body, sm, err := parser.Parse(src)
	require.NoError(t, err)
	ev.sm = sm
	return ev.Evaluate(body)
}

func TestPrecedenceAndAssociativity(t *testing.T) {
	var out []string
	ev, _ := newTestEvaluator(t, map[string]Proc{"print": printProc{out: &out}})

	_, _, err := evalSource(t, ev, "print 1 + 2 * 3 - 4")
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, out)
}

func TestLeftToRightWithinSamePriority(t *testing.T) {
	var out []string
	ev, _ := newTestEvaluator(t, map[string]Proc{"print": printProc{out: &out}})

	_, _, err := evalSource(t, ev, "print 1 - 2 - 3")
	require.NoError(t, err)
	assert.Equal(t, []string{"-4"}, out)
}

func TestUnaryMinus(t *testing.T) {
	var out []string
	ev, _ := newTestEvaluator(t, map[string]Proc{"print": printProc{out: &out}})

	// "-" binds to the immediately following primary only: -(x) + 1.
	ev.vars.BindValue("x", value.Number(5))
	_, _, err := evalSource(t, ev, `print - :x + 1`)
	require.NoError(t, err)
	assert.Equal(t, []string{"-4"}, out)
}

func TestVariadicCallWithName(t *testing.T) {
	var out []string
	ev, _ := newTestEvaluator(t, map[string]Proc{
		"print": printProc{out: &out},
		"sum":   variadicSumProc{},
	})

	_, _, err := evalSource(t, ev, "print (sum 1 2 3 4)")
	require.NoError(t, err)
	assert.Equal(t, []string{"10"}, out)
}

func TestVariadicCallTooFewArgsIsSyntaxError(t *testing.T) {
	ev, _ := newTestEvaluator(t, map[string]Proc{"sum": variadicSumProc{}})
	_, _, err := evalSource(t, ev, "(sum 1)")
	assert.Error(t, err)
}

func TestVariadicExpressionForm(t *testing.T) {
	var out []string
	ev, _ := newTestEvaluator(t, map[string]Proc{"print": printProc{out: &out}})

	_, _, err := evalSource(t, ev, "print (1 + 2)")
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, out)
}

// outputProc is a minimal stand-in for the real `output` builtin: it
// sets the enclosing activation record's output slot and stops the rest
// of the body, same as the real one will.
type outputProc struct{}

func (outputProc) Params() int { return 1 }
func (outputProc) Call(ev *Evaluator, args []value.Value) (value.Value, bool, error) {
	ev.ctx.SetOutput(args[0])
	return nil, false, nil
}

func TestProcedureDefinitionAndOutput(t *testing.T) {
	var out []string
	ev, _ := newTestEvaluator(t, map[string]Proc{
		"print":  printProc{out: &out},
		"output": outputProc{},
	})

	_, _, err := evalSource(t, ev, "to sq :n output :n * :n end print sq 7")
	require.NoError(t, err)
	assert.Equal(t, []string{"49"}, out)

	_, ok := ev.procScope.Get("sq")
	assert.True(t, ok, "sq should remain defined in the procedure scope after execution")
}

func TestUnboundProcedure(t *testing.T) {
	ev, _ := newTestEvaluator(t, nil)
	_, _, err := evalSource(t, ev, "frobnicate 1 2")
	assert.Error(t, err)
}

func TestUnboundVariable(t *testing.T) {
	var out []string
	ev, _ := newTestEvaluator(t, map[string]Proc{"print": printProc{out: &out}})
	_, _, err := evalSource(t, ev, "print :missing")
	assert.Error(t, err)
}

func TestQuotedWordLiteral(t *testing.T) {
	var out []string
	ev, _ := newTestEvaluator(t, map[string]Proc{"print": printProc{out: &out}})
	_, _, err := evalSource(t, ev, `print "hello`)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, out)
}

func TestExtraInstructionsAfterValueIsSyntaxError(t *testing.T) {
	ev, _ := newTestEvaluator(t, map[string]Proc{"sum": variadicSumProc{}})
	_, _, err := evalSource(t, ev, "(sum 1 2) 3")
	assert.Error(t, err)
}

// TestAdjacentLiteralsAfterStatementIsSyntaxError pins spec.md §8
// scenario 6: "print 3 -4" lexes "-4" as a number (boundary rule), so
// print takes 3 as its one argument and "-4" is left as a second,
// unconsumed top-level statement headed by a bare literal.
func TestAdjacentLiteralsAfterStatementIsSyntaxError(t *testing.T) {
	var out []string
	ev, _ := newTestEvaluator(t, map[string]Proc{"print": printProc{out: &out}})
	_, _, err := evalSource(t, ev, "print 3 -4")
	assert.Error(t, err)
	assert.Equal(t, []string{"3"}, out, "print should still have run before the error")
}

func TestStopShortCircuitsBody(t *testing.T) {
	// stand-in `stop` builtin: sets ctx.Stop without going through the
	// real control-flow builtins (package builtin owns the real one).
	var out []string
	stopProc := procFunc{params: 0, fn: func(ev *Evaluator, args []value.Value) (value.Value, bool, error) {
		ev.ctx.Stop = true
		return nil, false, nil
	}}
	ps := scope.New[Proc](nil)
	ps.BindValue("print", printProc{out: &out})
	ps.BindValue("stop", stopProc)
	vars := scope.New[value.Value](nil)
	ctx := scope.NewContext()
	ev := New(ps, vars, ctx, nil, 0, nil, nil)

	body, _, err := parser.Parse("print 1 stop print 2")
	require.NoError(t, err)
	_, _, err = ev.Evaluate(body)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, out)
}

func TestTemplateProcedureName(t *testing.T) {
	var out []string
	ev, _ := newTestEvaluator(t, map[string]Proc{"print": printProc{out: &out}})
	v, has, err := ev.CallTemplate(value.Word("print"), []value.Value{value.Number(3)})
	require.NoError(t, err)
	assert.False(t, has)
	assert.Nil(t, v)
	assert.Equal(t, []string{"3"}, out)
}

func TestTemplateListInvocation(t *testing.T) {
	ev, _ := newTestEvaluator(t, nil)
	names := value.FromSlice([]value.Value{value.Word("a"), value.Word("b")})
	body, _, err := parser.Parse(":a + :b")
	require.NoError(t, err)
	tmpl := value.New(names, body)

	v, has, err := ev.CallTemplate(tmpl, []value.Value{value.Number(2), value.Number(3)})
	require.NoError(t, err)
	require.True(t, has)
	assert.Equal(t, value.Number(5), v)
}

// procFunc adapts a plain function to the Proc interface for tests that
// need a one-off builtin.
type procFunc struct {
	params int
	fn     func(ev *Evaluator, args []value.Value) (value.Value, bool, error)
}

func (p procFunc) Params() int { return p.params }
func (p procFunc) Call(ev *Evaluator, args []value.Value) (value.Value, bool, error) {
	return p.fn(ev, args)
}
