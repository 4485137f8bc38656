package engine

// Constraint is anything the engine can post and later check. Constraint
// Models never see these concrete types; they compose the Eq/Or/And/...
// constructors below.
type Constraint interface {
	vars() []VarID
	eval(assignment []int) bool
	touchesOnly(assigned []bool) bool
}

func touchesOnlyVars(assigned []bool, vs []VarID) bool {
	for _, v := range vs {
		if !assigned[v] {
			return false
		}
	}
	return true
}

// --- atoms -----------------------------------------------------------

type eqConstraint struct {
	v     VarID
	value int
	negate bool
}

func (c eqConstraint) vars() []VarID { return []VarID{c.v} }
func (c eqConstraint) eval(a []int) bool {
	hit := a[c.v] == c.value
	if c.negate {
		return !hit
	}
	return hit
}
func (c eqConstraint) touchesOnly(assigned []bool) bool { return touchesOnlyVars(assigned, c.vars()) }

// Eq builds the atom v == value.
func Eq(v VarID, value int) Constraint { return eqConstraint{v: v, value: value} }

// NotEq builds the atom v != value.
func NotEq(v VarID, value int) Constraint { return eqConstraint{v: v, value: value, negate: true} }

type varPairConstraint struct {
	a, b  VarID
	negate bool
}

func (c varPairConstraint) vars() []VarID { return []VarID{c.a, c.b} }
func (c varPairConstraint) eval(assignment []int) bool {
	hit := assignment[c.a] == assignment[c.b]
	if c.negate {
		return !hit
	}
	return hit
}
func (c varPairConstraint) touchesOnly(assigned []bool) bool {
	return touchesOnlyVars(assigned, c.vars())
}

// VarEq builds the atom a == b.
func VarEq(a, b VarID) Constraint { return varPairConstraint{a: a, b: b} }

// VarNotEq builds the atom a != b.
func VarNotEq(a, b VarID) Constraint { return varPairConstraint{a: a, b: b, negate: true} }

// --- composites --------------------------------------------------------

type orConstraint struct{ operands []Constraint }

func (c orConstraint) vars() []VarID {
	var out []VarID
	for _, o := range c.operands {
		out = append(out, o.vars()...)
	}
	return out
}
func (c orConstraint) eval(assignment []int) bool {
	for _, o := range c.operands {
		if o.eval(assignment) {
			return true
		}
	}
	return false
}
func (c orConstraint) touchesOnly(assigned []bool) bool {
	for _, o := range c.operands {
		if !o.touchesOnly(assigned) {
			return false
		}
	}
	return true
}

// Or builds a disjunction: at least one operand must hold.
func Or(operands ...Constraint) Constraint { return orConstraint{operands: operands} }

type andConstraint struct{ operands []Constraint }

func (c andConstraint) vars() []VarID {
	var out []VarID
	for _, o := range c.operands {
		out = append(out, o.vars()...)
	}
	return out
}
func (c andConstraint) eval(assignment []int) bool {
	for _, o := range c.operands {
		if !o.eval(assignment) {
			return false
		}
	}
	return true
}
func (c andConstraint) touchesOnly(assigned []bool) bool {
	for _, o := range c.operands {
		if !o.touchesOnly(assigned) {
			return false
		}
	}
	return true
}

// And builds a conjunction: every operand must hold.
func And(operands ...Constraint) Constraint { return andConstraint{operands: operands} }

type impliesConstraint struct {
	antecedent, consequent Constraint
}

func (c impliesConstraint) vars() []VarID {
	return append(append([]VarID{}, c.antecedent.vars()...), c.consequent.vars()...)
}
func (c impliesConstraint) eval(assignment []int) bool {
	if !c.antecedent.eval(assignment) {
		return true
	}
	return c.consequent.eval(assignment)
}
func (c impliesConstraint) touchesOnly(assigned []bool) bool {
	return c.antecedent.touchesOnly(assigned) && c.consequent.touchesOnly(assigned)
}

// Implies builds antecedent => consequent.
func Implies(antecedent, consequent Constraint) Constraint {
	return impliesConstraint{antecedent: antecedent, consequent: consequent}
}

// Indicator names one (var == value) proposition, the unit AtMostK counts.
type Indicator struct {
	Var   VarID
	Value int
}

type atMostKConstraint struct {
	k          int
	indicators []Indicator
}

func (c atMostKConstraint) vars() []VarID {
	out := make([]VarID, len(c.indicators))
	for i, ind := range c.indicators {
		out[i] = ind.Var
	}
	return out
}
func (c atMostKConstraint) eval(assignment []int) bool {
	count := 0
	for _, ind := range c.indicators {
		if assignment[ind.Var] == ind.Value {
			count++
			if count > c.k {
				return false
			}
		}
	}
	return true
}
func (c atMostKConstraint) touchesOnly(assigned []bool) bool {
	return touchesOnlyVars(assigned, c.vars())
}

// AtMostK builds "at most k of these (var == value) indicators may hold
// simultaneously" — the primitive behind daily load caps
// (k=maxSessionsPerDay). Resource exclusivity is not posted with it: the
// Constraint Model posts that pairwise with VarNotEq/Implies.
func AtMostK(k int, indicators []Indicator) Constraint {
	return atMostKConstraint{k: k, indicators: indicators}
}

type funcConstraint struct {
	vs []VarID
	fn func(values []int) bool
}

func (c funcConstraint) vars() []VarID { return c.vs }
func (c funcConstraint) eval(assignment []int) bool {
	values := make([]int, len(c.vs))
	for i, v := range c.vs {
		values[i] = assignment[v]
	}
	return c.fn(values)
}
func (c funcConstraint) touchesOnly(assigned []bool) bool { return touchesOnlyVars(assigned, c.vs) }

// Func builds a constraint from an arbitrary predicate over a fixed set of
// variables, evaluated once every variable it names has been assigned.
// This is the escape hatch quantities derived from a variable's value (a
// slot's weekday, start minute, or signature) need: the Constraint Model
// computes the derived quantity inside fn by looking the assigned slot
// index up in its own lookup table, rather than the engine needing to know
// anything about what a "slot" or a "day" is.
func Func(vars []VarID, fn func(values []int) bool) Constraint {
	return funcConstraint{vs: vars, fn: fn}
}
