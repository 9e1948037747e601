package builtin

import (
	"strings"
	"time"

	"github.com/loturtle/logocore/interp/eval"
	"github.com/loturtle/logocore/interp/value"
)

// stringifyForOutput renders v the way `print`/`show` do: a bare word or
// number via its own String(), and a list via its own String() with the
// outer brackets stripped when outerBrackets is false (spec.md §9:
// "print/show stringification differs only by the outer-list bracket
// policy; nested lists retain brackets in both").
func stringifyForOutput(v value.Value, outerBrackets bool) string {
	l, ok := v.(*value.List)
	if !ok {
		return v.String()
	}
	if outerBrackets {
		return l.String()
	}
	var parts []string
	for cur := l; !cur.IsEmpty(); cur = cur.Tail {
		parts = append(parts, cur.Head.String())
	}
	return strings.Join(parts, " ")
}

func outputProcs() []*proc {
	return []*proc{
		command("print", 1, func(ev *eval.Evaluator, args []value.Value) error {
			parts := make([]string, len(args))
			for i, a := range args {
				parts[i] = stringifyForOutput(a, false)
			}
			ev.Print(strings.Join(parts, " "))
			return nil
		}),
		command("show", 1, func(ev *eval.Evaluator, args []value.Value) error {
			parts := make([]string, len(args))
			for i, a := range args {
				parts[i] = stringifyForOutput(a, true)
			}
			ev.Print(strings.Join(parts, " "))
			return nil
		}),
		command("wait", 1, func(ev *eval.Evaluator, args []value.Value) error {
			frames, err := asNumber("wait", args[0])
			if err != nil {
				return err
			}
			return ev.Sleep(time.Duration(frames/60.0*float64(time.Second)))
		}),
	}
}
