package generator

import (
	"errors"

	"github.com/ridoystarlord/ddlgen/schema"
)

// ErrCyclicRelations is returned when relations form a cycle and the
// destructive order cannot settle.
var ErrCyclicRelations = errors.New("table relations form a cycle")

// DestructiveOrder computes the table order used for TRUNCATE and DROP.
//
// Starting from declaration order, each pass looks for a table owning a
// relation whose target sits later in the list; the first such table is
// moved to the end and the pass restarts. Once a pass moves nothing,
// every relation target precedes its owner.
//
// A relation cycle has no such order. For cyclic relations the passes stop
// after n*n+n moves and the current order is returned with
// ErrCyclicRelations.
func DestructiveOrder(tables []*schema.Table) ([]string, error) {
	order := make([]string, 0, len(tables))
	targets := make(map[string][]string, len(tables))
	for _, t := range tables {
		order = append(order, t.Name)
		if t.HasRelations() {
			targets[t.Name] = t.RelationTables()
		}
	}

	limit := -1
	if hasCycle(order, targets) {
		limit = len(order)*len(order) + len(order)
	}
	for moves := 0; ; moves++ {
		i := firstUnsettled(order, targets)
		if i < 0 {
			return order, nil
		}
		if moves == limit {
			return order, ErrCyclicRelations
		}
		name := order[i]
		order = append(order[:i], order[i+1:]...)
		order = append(order, name)
	}
}

// firstUnsettled returns the index of the first table that has a relation
// target positioned after it, or -1.
func firstUnsettled(order []string, targets map[string][]string) int {
	position := make(map[string]int, len(order))
	for i, name := range order {
		position[name] = i
	}
	for i, name := range order {
		for _, target := range targets[name] {
			if p, ok := position[target]; ok && p > i {
				return i
			}
		}
	}
	return -1
}

// hasCycle reports whether relations between distinct tables form a cycle.
// A table referencing itself never causes a move and is ignored.
func hasCycle(order []string, targets map[string][]string) bool {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(order))
	var visit func(name string) bool
	visit = func(name string) bool {
		state[name] = visiting
		for _, target := range targets[name] {
			if target == name {
				continue
			}
			switch state[target] {
			case visiting:
				return true
			case unvisited:
				if visit(target) {
					return true
				}
			}
		}
		state[name] = done
		return false
	}
	for _, name := range order {
		if state[name] == unvisited && visit(name) {
			return true
		}
	}
	return false
}

// TruncateStatements renders TRUNCATE TABLE statements in the given order
func TruncateStatements(order []string, opts Options) []string {
	return destructive("TRUNCATE TABLE ", order, opts)
}

// DropStatements renders DROP TABLE statements in the given order
func DropStatements(order []string, opts Options) []string {
	return destructive("DROP TABLE ", order, opts)
}

func destructive(verb string, order []string, opts Options) []string {
	if opts.ExistCheck {
		verb += "IF EXISTS "
	}
	stmts := make([]string, 0, len(order))
	for _, name := range order {
		stmts = append(stmts, opts.keyword(verb)+opts.qualify(name)+";")
	}
	return stmts
}
