package builtin

import (
	"testing"
	"time"

	"github.com/loturtle/logocore/interp/eval"
	"github.com/loturtle/logocore/interp/parser"
	"github.com/loturtle/logocore/interp/scope"
	"github.com/loturtle/logocore/interp/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingControl captures print output and every requested Sleep
// duration; its OnCall/OnValue hooks do nothing. Sleep is instant so
// `wait` tests don't actually block.
type recordingControl struct {
	printed []string
	slept   []time.Duration
}

func (c *recordingControl) CheckBreak() error { return nil }
func (c *recordingControl) OnCall(eval.Proc, []value.Value, *value.List, eval.Node) {}
func (c *recordingControl) OnValue(value.Value, *value.List, eval.Node)             {}
func (c *recordingControl) OnPrint(s string)                                        { c.printed = append(c.printed, s) }
func (c *recordingControl) Sleep(d time.Duration) error                             { c.slept = append(c.slept, d); return nil }

func newEvaluator(t *testing.T) (*eval.Evaluator, *recordingControl) {
	t.Helper()
	ps := scope.New[eval.Proc](nil)
	Install(ps)
	vars := scope.New[value.Value](nil)
	ctx := scope.NewGlobalContext()
	ctrl := &recordingControl{}
	return eval.New(ps, vars, ctx, ctrl, 0, nil, nil), ctrl
}

func run(t *testing.T, ev *eval.Evaluator, src string) (value.Value, bool, error) {
	t.Helper()
	body, sm, err := parser.Parse(src)
	require.NoError(t, err)
	_ = sm
	return ev.Evaluate(body)
}

func TestArithmeticPrecedenceThroughBuiltins(t *testing.T) {
	ev, ctrl := newEvaluator(t)
	_, _, err := run(t, ev, "print 1 + 2 * 3 - 4")
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, ctrl.printed)
}

func TestArithmeticNamedProcedures(t *testing.T) {
	ev, ctrl := newEvaluator(t)
	_, _, err := run(t, ev, "print sum 1 2")
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, ctrl.printed)
}

func TestDivisionByZeroIsTypeError(t *testing.T) {
	ev, _ := newEvaluator(t)
	_, _, err := run(t, ev, "print 1 / 0")
	assert.Error(t, err)
}

func TestLogicAndOrNot(t *testing.T) {
	ev, ctrl := newEvaluator(t)
	_, _, err := run(t, ev, "print and true false")
	require.NoError(t, err)
	_, _, err = run(t, ev, "print or true false")
	require.NoError(t, err)
	_, _, err = run(t, ev, "print not true")
	require.NoError(t, err)
	assert.Equal(t, []string{"false", "true", "false"}, ctrl.printed)
}

func TestWordsAndListsOperations(t *testing.T) {
	ev, ctrl := newEvaluator(t)
	_, _, err := run(t, ev, `print word "hello "world`)
	require.NoError(t, err)
	_, _, err = run(t, ev, "print fput 1 [2 3]")
	require.NoError(t, err)
	_, _, err = run(t, ev, "print butfirst [1 2 3]")
	require.NoError(t, err)
	_, _, err = run(t, ev, `print butlast "hello`)
	require.NoError(t, err)
	_, _, err = run(t, ev, "print count [1 [2 3] 4]")
	require.NoError(t, err)
	assert.Equal(t, []string{"helloworld", "1 2 3", "2 3", "hell", "3"}, ctrl.printed)
}

func TestRemoveFiltersByEquality(t *testing.T) {
	ev, ctrl := newEvaluator(t)
	_, _, err := run(t, ev, `print remove 2 [1 2 3 2]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"1 3"}, ctrl.printed)
}

func TestPredicates(t *testing.T) {
	ev, ctrl := newEvaluator(t)
	_, _, err := run(t, ev, "print emptyp []")
	require.NoError(t, err)
	_, _, err = run(t, ev, "print memberp 2 [1 2 3]")
	require.NoError(t, err)
	_, _, err = run(t, ev, `print wordp "hi`)
	require.NoError(t, err)
	_, _, err = run(t, ev, "print numberp 5")
	require.NoError(t, err)
	assert.Equal(t, []string{"true", "true", "true", "true"}, ctrl.printed)
}

func TestVariablesMakeThingPush(t *testing.T) {
	ev, ctrl := newEvaluator(t)
	_, _, err := run(t, ev, `make "x 5`)
	require.NoError(t, err)
	_, _, err = run(t, ev, "print thing \"x")
	require.NoError(t, err)

	_, _, err = run(t, ev, `make "stack [1 2 3]`)
	require.NoError(t, err)
	_, _, err = run(t, ev, `push "stack 0`)
	require.NoError(t, err)
	_, _, err = run(t, ev, `print thing "stack`)
	require.NoError(t, err)

	assert.Equal(t, []string{"5", "0 1 2 3"}, ctrl.printed)
}

func TestControlRepeatStopShortCircuits(t *testing.T) {
	ev, ctrl := newEvaluator(t)
	_, _, err := run(t, ev, "to f repeat 10 [ print 1 stop print 2 ] end f")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ctrl.printed)
}

func TestControlIfelseEvaluatesOneBranch(t *testing.T) {
	ev, ctrl := newEvaluator(t)
	_, _, err := run(t, ev, "ifelse true [ print 1 ] [ print 2 ]")
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ctrl.printed)
}

func TestProcedureOutputAndCall(t *testing.T) {
	ev, ctrl := newEvaluator(t)
	_, _, err := run(t, ev, "to sq :n output :n * :n end print sq 7")
	require.NoError(t, err)
	assert.Equal(t, []string{"49"}, ctrl.printed)
}

func TestTemplateMapAndForeach(t *testing.T) {
	ev, ctrl := newEvaluator(t)
	_, _, err := run(t, ev, `to sqr :x output :x * :x end print map "sqr [1 2 3]`)
	require.NoError(t, err)
	_, _, err = run(t, ev, `to show1 :x print :x end foreach "show1 [1 2]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"1 4 9", "1", "2"}, ctrl.printed)
}

func TestWaitSleepsScaledToFrames(t *testing.T) {
	ev, ctrl := newEvaluator(t)
	_, _, err := run(t, ev, "wait 60")
	require.NoError(t, err)
	require.Len(t, ctrl.slept, 1)
	assert.Equal(t, time.Second, ctrl.slept[0])
}

func TestAliases(t *testing.T) {
	ev, ctrl := newEvaluator(t)
	_, _, err := run(t, ev, "print bf [1 2 3]")
	require.NoError(t, err)
	_, _, err = run(t, ev, "print bl [1 2 3]")
	require.NoError(t, err)
	_, _, err = run(t, ev, "to f op 9 end print f")
	require.NoError(t, err)
	assert.Equal(t, []string{"2 3", "1 2", "9"}, ctrl.printed)
}
