package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smeggmann99/arrango-scheduler/core/engine"
)

func TestCheckSatisfiesSimpleModel(t *testing.T) {
	e := engine.New()
	a := e.NewIntVar([]int{0, 1, 2}, "a")
	b := e.NewIntVar([]int{0, 1, 2}, "b")
	e.Post(engine.VarNotEq(a, b), "a!=b")

	res, err := e.Check(context.Background())
	require.NoError(t, err)
	require.True(t, res.Satisfiable)
	assert.NotEqual(t, res.Value(a), res.Value(b))
}

func TestCheckReportsUnsatCore(t *testing.T) {
	e := engine.New()
	a := e.NewIntVar([]int{0}, "a")
	b := e.NewIntVar([]int{0}, "b")
	e.Post(engine.VarNotEq(a, b), "impossible")

	res, err := e.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Satisfiable)
	assert.Contains(t, res.UnsatCore, "impossible")
}

func TestAtMostKLimitsIndicators(t *testing.T) {
	e := engine.New()
	vars := make([]engine.VarID, 3)
	for i := range vars {
		vars[i] = e.NewIntVar([]int{0, 1}, "v")
	}
	indicators := make([]engine.Indicator, len(vars))
	for i, v := range vars {
		indicators[i] = engine.Indicator{Var: v, Value: 1}
	}
	e.Post(engine.AtMostK(1, indicators), "at-most-one")

	res, err := e.Check(context.Background())
	require.NoError(t, err)
	require.True(t, res.Satisfiable)

	ones := 0
	for _, v := range vars {
		if res.Value(v) == 1 {
			ones++
		}
	}
	assert.LessOrEqual(t, ones, 1)
}

func TestImpliesHoldsVacuouslyWhenAntecedentFalse(t *testing.T) {
	e := engine.New()
	a := e.NewIntVar([]int{0}, "a")
	b := e.NewIntVar([]int{5}, "b")
	e.Post(engine.Implies(engine.Eq(a, 1), engine.Eq(b, 999)), "vacuous")

	res, err := e.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Satisfiable)
}

func TestFuncConstraintIsEvaluatedOverNamedVars(t *testing.T) {
	e := engine.New()
	a := e.NewIntVar([]int{1, 2, 3}, "a")
	b := e.NewIntVar([]int{1, 2, 3}, "b")
	e.Post(engine.Func([]engine.VarID{a, b}, func(v []int) bool {
		return v[0]+v[1] == 4
	}), "sum-is-four")

	res, err := e.Check(context.Background())
	require.NoError(t, err)
	require.True(t, res.Satisfiable)
	assert.Equal(t, 4, res.Value(a)+res.Value(b))
}

func TestDeterministicAcrossRuns(t *testing.T) {
	build := func() (engine.VarID, engine.VarID, *engine.Engine) {
		e := engine.New()
		a := e.NewIntVar([]int{3, 1, 2}, "a")
		b := e.NewIntVar([]int{3, 1, 2}, "b")
		e.Post(engine.VarNotEq(a, b), "a!=b")
		return a, b, e
	}

	a1, b1, e1 := build()
	r1, err := e1.Check(context.Background())
	require.NoError(t, err)

	a2, b2, e2 := build()
	r2, err := e2.Check(context.Background())
	require.NoError(t, err)

	assert.Equal(t, r1.Value(a1), r2.Value(a2))
	assert.Equal(t, r1.Value(b1), r2.Value(b2))
}
