package builtin

import (
	"github.com/loturtle/logocore/interp/eval"
	"github.com/loturtle/logocore/interp/scope"
)

// aliases maps an alias name to the canonical builtin it should resolve
// to (spec.md §4.7: "op"→"output", "bf"→"butfirst", "bl"→"butlast").
var aliases = map[string]string{
	"op": "output",
	"bf": "butfirst",
	"bl": "butlast",
}

// Install registers every builtin in spec.md §4.7's categories into ps,
// the procedure scope an Interpreter uses for all procedure-name
// lookups — builtins are otherwise indistinguishable from user-defined
// procedures at the call site.
func Install(ps *scope.Scope[eval.Proc]) {
	var all []*proc
	all = append(all, logicProcs()...)
	all = append(all, wordsAndListsProcs()...)
	all = append(all, outputProcs()...)
	all = append(all, variableProcs()...)
	all = append(all, arithmeticProcs()...)
	all = append(all, predicateProcs()...)
	all = append(all, controlProcs()...)
	all = append(all, templateProcs()...)

	byName := make(map[string]*proc, len(all))
	for _, p := range all {
		byName[p.name] = p
		ps.BindValue(p.name, p)
	}
	for alias, target := range aliases {
		if p, ok := byName[target]; ok {
			ps.BindValue(alias, p)
		}
	}
}
