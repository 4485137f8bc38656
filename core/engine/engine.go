// Package engine implements the polymorphic constraint-satisfaction engine
// described in spec.md §9: a small finite-domain backtracking solver with
// the minimal primitive set every Constraint Model needs (equality,
// inequality, disjunction, conjunction, implication, at-most-k) plus the Func
// predicate for derived quantities (see constraints.go). No
// CP-SAT/SMT binding exists anywhere in reach of this module, so the model
// is solved from scratch rather than delegated.
package engine

import (
	"context"
	"fmt"
	"sort"
)

// VarID identifies one decision variable.
type VarID int

// Engine holds the posted model: variables with their current domains and
// the constraints that must all hold in a solution.
type Engine struct {
	domains     [][]int // domains[v] is the live domain of variable v
	labels      []string
	constraints []postedConstraint
}

type postedConstraint struct {
	c     Constraint
	label string
}

// New returns an empty engine.
func New() *Engine {
	return &Engine{}
}

// NewIntVar creates a variable with the given candidate domain (deduplicated,
// sorted ascending so search order is deterministic) and returns its ID.
func (e *Engine) NewIntVar(domain []int, label string) VarID {
	d := dedupeSortInts(domain)
	e.domains = append(e.domains, d)
	e.labels = append(e.labels, label)
	return VarID(len(e.domains) - 1)
}

// Domain returns variable v's current (possibly pruned) domain.
func (e *Engine) Domain(v VarID) []int {
	return e.domains[v]
}

// Label returns the human-readable name a variable was created with.
func (e *Engine) Label(v VarID) string {
	return e.labels[v]
}

// NumVars reports how many variables have been created.
func (e *Engine) NumVars() int {
	return len(e.domains)
}

// SnapshotDomains copies every variable's current domain, for later
// restoration by RestoreDomains. Used by the basic-mode objective pass
// (spec.md §9 "Objective") to try and roll back speculative narrowings.
func (e *Engine) SnapshotDomains() [][]int {
	snap := make([][]int, len(e.domains))
	for i, d := range e.domains {
		cp := make([]int, len(d))
		copy(cp, d)
		snap[i] = cp
	}
	return snap
}

// RestoreDomains replaces every variable's domain with a prior snapshot.
func (e *Engine) RestoreDomains(snap [][]int) {
	for i, d := range snap {
		cp := make([]int, len(d))
		copy(cp, d)
		e.domains[i] = cp
	}
}

// ShrinkDomain narrows variable v's live domain to the values <= max.
func (e *Engine) ShrinkDomain(v VarID, max int) {
	var out []int
	for _, val := range e.domains[v] {
		if val <= max {
			out = append(out, val)
		}
	}
	e.domains[v] = out
}

// Post adds a constraint to the model under a debug label (used for
// unsat-core reporting; cheap to compute even outside debug mode).
func (e *Engine) Post(c Constraint, label string) {
	e.constraints = append(e.constraints, postedConstraint{c: c, label: label})
}

// Result is the outcome of Check.
type Result struct {
	Satisfiable bool
	Model       map[VarID]int // assignment, only populated when Satisfiable
	UnsatCore   []string      // approximate: labels of constraints still live when search exhausted
	NodesVisited int
}

// Value reads a variable's value out of a solved Result.
func (r Result) Value(v VarID) int {
	return r.Model[v]
}

var errTimeout = fmt.Errorf("engine: wall-clock deadline exceeded")

// Check runs chronological backtracking search over the posted model,
// trying variables in ID order (the Constraint Model is responsible for
// creating variables in the spec's mandated (template, occurrence, week)
// order so two runs over the same input explore the same tree) and domain
// values ascending, so the engine is deterministic: the same model always
// yields the same solution.
func (e *Engine) Check(ctx context.Context) (Result, error) {
	n := len(e.domains)
	assignment := make([]int, n)
	assigned := make([]bool, n)
	nodes := 0

	// bestAssignment/bestAssigned record the deepest assignment attempt
	// search reached, consistent or not, so a failed search can still
	// report a meaningful unsat core: by the time search(0) returns false,
	// the live assignment/assigned arrays have unwound back to all-false
	// and no longer carry any useful information. Recording the attempt
	// before checking consistency means the very combination that finally
	// broke a constraint is the one preserved.
	bestPos := -1
	bestAssignment := make([]int, n)
	bestAssigned := make([]bool, n)

	timedOut := false
	var search func(pos int) bool
	search = func(pos int) bool {
		if timedOut {
			return false
		}
		nodes++
		if nodes%2048 == 0 {
			select {
			case <-ctx.Done():
				timedOut = true
				return false
			default:
			}
		}
		if pos == n {
			return e.allSatisfied(assignment, assigned)
		}
		for _, val := range e.domains[pos] {
			assignment[pos] = val
			assigned[pos] = true
			if pos+1 > bestPos {
				bestPos = pos + 1
				copy(bestAssignment, assignment)
				copy(bestAssigned, assigned)
			}
			if e.consistentPrefix(assignment, assigned, pos) {
				if search(pos + 1) {
					return true
				}
				if timedOut {
					return false
				}
			}
			assigned[pos] = false
		}
		return false
	}

	ok := search(0)

	select {
	case <-ctx.Done():
		if !ok {
			return Result{Satisfiable: false, UnsatCore: []string{"timed out before a verdict was reached"}, NodesVisited: nodes}, errTimeout
		}
	default:
	}

	if !ok {
		return Result{Satisfiable: false, UnsatCore: e.liveConstraintLabels(bestAssignment, bestAssigned), NodesVisited: nodes}, nil
	}

	model := make(map[VarID]int, n)
	for i, v := range assignment {
		model[VarID(i)] = v
	}
	return Result{Satisfiable: true, Model: model, NodesVisited: nodes}, nil
}

// consistentPrefix reports whether every constraint that only touches
// already-assigned variables up to pos is currently satisfied. Constraints
// that reference an unassigned variable are skipped (they cannot yet be
// violated).
func (e *Engine) consistentPrefix(assignment []int, assigned []bool, pos int) bool {
	for _, pc := range e.constraints {
		if !pc.c.touchesOnly(assigned) {
			continue
		}
		if !pc.c.eval(assignment) {
			return false
		}
	}
	return true
}

func (e *Engine) allSatisfied(assignment []int, assigned []bool) bool {
	for _, pc := range e.constraints {
		if !pc.c.eval(assignment) {
			return false
		}
	}
	return true
}

// liveConstraintLabels returns the labels of constraints that were neither
// satisfied nor vacuously true (due to unassigned variables) at the point
// the search space was exhausted. This is an approximate, practically
// useful unsat core: it names every constraint plausibly responsible for
// the failure, not a minimal subset — a minimal core needs an incremental
// SAT/SMT assumption interface this backtracking engine does not expose.
func (e *Engine) liveConstraintLabels(assignment []int, assigned []bool) []string {
	seen := make(map[string]bool)
	var out []string
	for _, pc := range e.constraints {
		if pc.c.touchesOnly(assigned) && !pc.c.eval(assignment) {
			if !seen[pc.label] {
				seen[pc.label] = true
				out = append(out, pc.label)
			}
		}
	}
	sort.Strings(out)
	return out
}

func dedupeSortInts(vals []int) []int {
	seen := make(map[int]bool, len(vals))
	out := make([]int, 0, len(vals))
	for _, v := range vals {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
