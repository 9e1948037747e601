package builtin

import (
	"github.com/loturtle/logocore/interp/eval"
	"github.com/loturtle/logocore/interp/value"
)

// lockstep advances each of sources in parallel, yielding one slice of
// heads per step and stopping the moment any source is exhausted
// (spec.md §4.7: "the iteration helper advances the primary source and
// any additional sources in lock-step, terminating when any source is
// exhausted").
func lockstep(sources []*value.List, step func([]value.Value) error) error {
	cursors := append([]*value.List{}, sources...)
	items := make([]value.Value, len(cursors))
	for {
		for _, c := range cursors {
			if c.IsEmpty() {
				return nil
			}
		}
		for i, c := range cursors {
			items[i] = c.Head
		}
		if err := step(items); err != nil {
			return err
		}
		for i, c := range cursors {
			cursors[i] = c.Tail
		}
	}
}

func templateProcs() []*proc {
	return []*proc{
		operator("apply", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			argList, err := asList("apply", args[1])
			if err != nil {
				return nil, err
			}
			v, _, err := ev.CallTemplate(args[0], argList.Values())
			if err != nil {
				return nil, err
			}
			return v, nil
		}),
		operator("invoke", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			v, _, err := ev.CallTemplate(args[0], args[1:])
			if err != nil {
				return nil, err
			}
			return v, nil
		}),
		command("foreach", 2, func(ev *eval.Evaluator, args []value.Value) error {
			tmpl := args[0]
			sources := make([]*value.List, len(args)-1)
			for i, a := range args[1:] {
				l, err := asList("foreach", a)
				if err != nil {
					return err
				}
				sources[i] = l
			}
			return lockstep(sources, func(items []value.Value) error {
				_, _, err := ev.CallTemplate(tmpl, items)
				return err
			})
		}),
		operator("map", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			tmpl := args[0]
			sources := make([]*value.List, len(args)-1)
			for i, a := range args[1:] {
				l, err := asList("map", a)
				if err != nil {
					return nil, err
				}
				sources[i] = l
			}
			var b value.ListBuilder
			err := lockstep(sources, func(items []value.Value) error {
				v, has, err := ev.CallTemplate(tmpl, items)
				if err != nil {
					return err
				}
				if has {
					b.Push(v)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			return b.List(), nil
		}),
	}
}
