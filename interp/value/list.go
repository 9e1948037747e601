package value

import (
	"strings"

	"github.com/samber/lo"
)

// List is a singly-linked, functionally-immutable-at-the-tail Logo list.
// Builders construct lists front-to-back without ever mutating structure
// already visible to Logo code; the only internal mutation is a
// ListBuilder's own end-pointer advance.
type List struct {
	Head Value
	Tail *List
}

func (*List) isValue() {}

// Empty is the unique empty-list sentinel. Its Tail points to itself so
// that "one past the end" and "the empty list" are the same object; deep
// traversals (String, Equal) must special-case it to avoid looping
// forever on the self-cycle.
var Empty = &List{}

func init() {
	Empty.Tail = Empty
}

// New builds the single-element list (head . tail). Passing value.Empty
// as tail appends nothing.
func New(head Value, tail *List) *List {
	if tail == nil {
		tail = Empty
	}
	return &List{Head: head, Tail: tail}
}

// IsEmpty reports whether l is the empty-list sentinel.
func (l *List) IsEmpty() bool {
	return l == Empty
}

// Values drains l into a plain Go slice of its heads, in order. Used as
// the bridge into github.com/samber/lo generic slice helpers for Map and
// Filter, rather than hand-rolling a second traversal for every
// transform.
func (l *List) Values() []Value {
	var out []Value
	for cur := l; !cur.IsEmpty(); cur = cur.Tail {
		out = append(out, cur.Head)
	}
	return out
}

// FromSlice builds a list whose heads are vs, in order.
func FromSlice(vs []Value) *List {
	b := &ListBuilder{}
	b.Concat(vs)
	return b.List()
}

// Cursors iterates l yielding each list node itself (so Cursor.Head and
// Cursor.Tail are both available to the caller), stopping before the
// empty sentinel.
func (l *List) Cursors(yield func(*List) bool) {
	for cur := l; !cur.IsEmpty(); cur = cur.Tail {
		if !yield(cur) {
			return
		}
	}
}

// Count returns the number of elements in l.
func (l *List) Count() int {
	n := 0
	for cur := l; !cur.IsEmpty(); cur = cur.Tail {
		n++
	}
	return n
}

// End returns the last non-empty cursor of l, or nil if l is empty.
func (l *List) End() *List {
	if l.IsEmpty() {
		return nil
	}
	cur := l
	for !cur.Tail.IsEmpty() {
		cur = cur.Tail
	}
	return cur
}

// Reverse returns a new list with l's elements in reverse order; l is
// left untouched.
func (l *List) Reverse() *List {
	out := Empty
	for cur := l; !cur.IsEmpty(); cur = cur.Tail {
		out = New(cur.Head, out)
	}
	return out
}

// Map returns a new list obtained by applying f to every element of l.
func (l *List) Map(f func(Value) Value) *List {
	mapped := lo.Map(l.Values(), func(v Value, _ int) Value { return f(v) })
	return FromSlice(mapped)
}

// Filter returns a new list containing the elements of l for which keep
// returns true.
func (l *List) Filter(keep func(Value) bool) *List {
	kept := lo.Filter(l.Values(), func(v Value, _ int) bool { return keep(v) })
	return FromSlice(kept)
}

// Equal reports whether l and o have the same elements in the same
// order, comparing heads recursively via Equal.
func (l *List) Equal(o *List) bool {
	a, b := l, o
	for {
		if a.IsEmpty() || b.IsEmpty() {
			return a.IsEmpty() == b.IsEmpty()
		}
		if !Equal(a.Head, b.Head) {
			return false
		}
		a, b = a.Tail, b.Tail
	}
}

// Delimiters controls the outer bracket pair used by String.
type Delimiters struct {
	Open, Close string
}

// DefaultDelimiters are the brackets Logo source uses: "[" and "]".
var DefaultDelimiters = Delimiters{Open: "[", Close: "]"}

// String renders l with DefaultDelimiters as the outer brackets, space
// separating elements, and atoms rendered via their own String method.
func (l *List) String() string {
	return l.stringify(DefaultDelimiters, nil)
}

// StringWithDelimiters renders l the way String does but with a
// caller-chosen outer bracket pair; nested lists always keep "[" "]".
func (l *List) StringWithDelimiters(d Delimiters) string {
	return l.stringify(d, nil)
}

func isSeen(seen []*List, l *List) bool {
	for _, s := range seen {
		if s == l {
			return true
		}
	}
	return false
}

func (l *List) stringify(d Delimiters, seen []*List) string {
	if isSeen(seen, l) {
		return "<recursive>"
	}
	seen = append(seen, l)

	var b strings.Builder
	b.WriteString(d.Open)
	first := true
	visited := map[*List]bool{}
	for cur := l; !cur.IsEmpty(); cur = cur.Tail {
		if visited[cur] {
			if !first {
				b.WriteByte(' ')
			}
			b.WriteString("<recursive>")
			break
		}
		visited[cur] = true
		if !first {
			b.WriteByte(' ')
		}
		first = false
		switch h := cur.Head.(type) {
		case *List:
			b.WriteString(h.stringify(DefaultDelimiters, seen))
		default:
			b.WriteString(h.String())
		}
	}
	b.WriteString(d.Close)
	return b.String()
}

// ListBuilder appends to a list in amortized O(1) by keeping a pointer to
// the current tail cursor and splicing new single-element lists onto it.
type ListBuilder struct {
	list *List // head of the list under construction; nil until first Push/Attach
	end  *List // last non-empty cursor; nil until first Push/Attach
}

// Push appends a single new element to the end of the list under
// construction and returns the cons cell created for it, so a caller
// (e.g. the parser) can key a side table — a source map — on that exact
// node's identity.
func (b *ListBuilder) Push(v Value) *List {
	node := New(v, Empty)
	b.attachNode(node, node)
	return node
}

// Concat appends each element of vs, in order.
func (b *ListBuilder) Concat(vs []Value) {
	for _, v := range vs {
		b.Push(v)
	}
}

// Attach splices an existing list onto the tail of the list under
// construction, transferring ownership of l's structure and advancing
// the builder's end pointer to l's end. l must not be mutated by the
// caller afterward.
func (b *ListBuilder) Attach(l *List) {
	if l.IsEmpty() {
		return
	}
	end := l.End()
	b.attachNode(l, end)
}

func (b *ListBuilder) attachNode(head, end *List) {
	if b.list == nil {
		b.list = head
		b.end = end
		return
	}
	b.end.Tail = head
	b.end = end
}

// List returns the list built so far. Calling Push/Concat/Attach again
// after List extends the same structure.
func (b *ListBuilder) List() *List {
	if b.list == nil {
		return Empty
	}
	return b.list
}
