// Package turtle is a reference embedder collaborator: a headless,
// recording turtle-graphics implementation of the primitives spec.md
// §6's embedding example lists (cs, forward, back, right, left, up,
// down, seth, setpos, xcor, ycor, heading, pos, color). It exists so
// spec.md §8 scenario 2 ("Repeat with turtle effect") is testable
// without a browser canvas — the canvas renderer itself stays out of
// scope, per spec.md §1's "turtle-graphics canvas renderer ... is out
// of scope as an external collaborator". Nothing under package interp
// imports this package: an embedder wires it in explicitly via
// Install, the same way it would wire in its own canvas-backed turtle.
package turtle

import (
	"math"

	"github.com/loturtle/logocore/interp/eval"
	"github.com/loturtle/logocore/interp/lerr"
	"github.com/loturtle/logocore/interp/scope"
	"github.com/loturtle/logocore/interp/value"
)

// Point is a Cartesian turtle position.
type Point struct{ X, Y float64 }

// Segment is one pen stroke (or pen-up move) the turtle recorded.
type Segment struct {
	From, To Point
	PenDown  bool
}

// Turtle is the recording collaborator's mutable state: position,
// heading (degrees, 0 = facing up the Y axis, increasing clockwise —
// matching UCBLogo's `right`/`left` convention), pen state, color, and
// the full trace of moves it has made since the last `cs`.
type Turtle struct {
	Pos      Point
	Heading  float64
	PenDown  bool
	Color    value.Value
	Segments []Segment
}

// New returns a Turtle at the origin, heading 0, pen down.
func New() *Turtle {
	return &Turtle{PenDown: true}
}

func normalizeHeading(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func (t *Turtle) moveTo(p Point) {
	t.Segments = append(t.Segments, Segment{From: t.Pos, To: p, PenDown: t.PenDown})
	t.Pos = p
}

func (t *Turtle) moveBy(distance float64) {
	rad := t.Heading * math.Pi / 180
	dx := distance * math.Sin(rad)
	dy := distance * math.Cos(rad)
	t.moveTo(Point{X: t.Pos.X + dx, Y: t.Pos.Y + dy})
}

// proc adapts a plain Go function to eval.Proc, the same shape
// package builtin uses for its own registry. The Turtle a proc acts on
// is closed over by command/operator below, not passed by the
// evaluator — turtle.Install binds one Turtle per call.
type proc struct {
	arity int
	fn    func(args []value.Value) (value.Value, bool, error)
}

func (p *proc) Params() int { return p.arity }
func (p *proc) Call(ev *eval.Evaluator, args []value.Value) (value.Value, bool, error) {
	return p.fn(args)
}

func number(procName string, v value.Value) (float64, error) {
	n, err := eval.ToNumber(v)
	if err != nil {
		return 0, &lerr.TypeError{Proc: procName, Msg: err.Error()}
	}
	return n, nil
}

func point(procName string, v value.Value) (Point, error) {
	l, ok := v.(*value.List)
	if !ok {
		return Point{}, &lerr.TypeError{Proc: procName, Msg: "expected a [x y] list"}
	}
	vals := l.Values()
	if len(vals) != 2 {
		return Point{}, &lerr.TypeError{Proc: procName, Msg: "expected a 2-element [x y] list"}
	}
	x, err := number(procName, vals[0])
	if err != nil {
		return Point{}, err
	}
	y, err := number(procName, vals[1])
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

// command registers a side-effecting turtle primitive against t, using
// the same command/operator split package builtin's registry uses.
func command(ps *scope.Scope[eval.Proc], t *Turtle, name string, arity int, fn func(t *Turtle, args []value.Value) error) {
	ps.BindValue(name, &proc{arity: arity, fn: func(args []value.Value) (value.Value, bool, error) {
		if err := fn(t, args); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}})
}

func operator(ps *scope.Scope[eval.Proc], t *Turtle, name string, arity int, fn func(t *Turtle, args []value.Value) (value.Value, error)) {
	ps.BindValue(name, &proc{arity: arity, fn: func(args []value.Value) (value.Value, bool, error) {
		v, err := fn(t, args)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}})
}

// Install registers t's primitives into ps under the names spec.md §6
// lists: cs, forward, back, right, left, up, down, seth, setpos, xcor,
// ycor, heading, pos, color.
func Install(ps *scope.Scope[eval.Proc], t *Turtle) {
	command(ps, t, "cs", 0, func(t *Turtle, args []value.Value) error {
		t.Pos = Point{}
		t.Heading = 0
		t.PenDown = true
		t.Segments = nil
		return nil
	})
	command(ps, t, "forward", 1, func(t *Turtle, args []value.Value) error {
		n, err := number("forward", args[0])
		if err != nil {
			return err
		}
		t.moveBy(n)
		return nil
	})
	command(ps, t, "back", 1, func(t *Turtle, args []value.Value) error {
		n, err := number("back", args[0])
		if err != nil {
			return err
		}
		t.moveBy(-n)
		return nil
	})
	command(ps, t, "right", 1, func(t *Turtle, args []value.Value) error {
		n, err := number("right", args[0])
		if err != nil {
			return err
		}
		t.Heading = normalizeHeading(t.Heading + n)
		return nil
	})
	command(ps, t, "left", 1, func(t *Turtle, args []value.Value) error {
		n, err := number("left", args[0])
		if err != nil {
			return err
		}
		t.Heading = normalizeHeading(t.Heading - n)
		return nil
	})
	command(ps, t, "up", 0, func(t *Turtle, args []value.Value) error {
		t.PenDown = false
		return nil
	})
	command(ps, t, "down", 0, func(t *Turtle, args []value.Value) error {
		t.PenDown = true
		return nil
	})
	command(ps, t, "seth", 1, func(t *Turtle, args []value.Value) error {
		n, err := number("seth", args[0])
		if err != nil {
			return err
		}
		t.Heading = normalizeHeading(n)
		return nil
	})
	command(ps, t, "setpos", 1, func(t *Turtle, args []value.Value) error {
		p, err := point("setpos", args[0])
		if err != nil {
			return err
		}
		t.moveTo(p)
		return nil
	})
	operator(ps, t, "xcor", 0, func(t *Turtle, args []value.Value) (value.Value, error) {
		return value.Number(t.Pos.X), nil
	})
	operator(ps, t, "ycor", 0, func(t *Turtle, args []value.Value) (value.Value, error) {
		return value.Number(t.Pos.Y), nil
	})
	operator(ps, t, "heading", 0, func(t *Turtle, args []value.Value) (value.Value, error) {
		return value.Number(t.Heading), nil
	})
	operator(ps, t, "pos", 0, func(t *Turtle, args []value.Value) (value.Value, error) {
		return value.FromSlice([]value.Value{value.Number(t.Pos.X), value.Number(t.Pos.Y)}), nil
	})
	command(ps, t, "color", 1, func(t *Turtle, args []value.Value) error {
		t.Color = args[0]
		return nil
	})
}
