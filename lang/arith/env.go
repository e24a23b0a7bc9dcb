package arith

import (
	"fmt"
	"math"

	"github.com/npillmayer/gexpr/node"
	"github.com/npillmayer/gexpr/runtime"
)

// Env is an environment for variables. Environments must not be reset while
// an evaluation is using them.
type Env struct {
	rt *runtime.Runtime
}

// NewEnv creates a new environment, holding the pre-defined constants.
func NewEnv() *Env {
	rt := runtime.NewRuntimeEnvironment()
	constants := rt.Globals().Tags()
	for name, v := range map[string]float64{
		"pi":  math.Pi,
		"e":   math.E,
		"phi": math.Phi,
	} {
		constants.InsertTag(runtime.NewTag(name).WithValue(node.New(v)).ReadOnly())
	}
	rt.ScopeTree.PushNewScope("variables")
	return &Env{rt: rt}
}

// Get returns the value of a variable or constant.
func (env *Env) Get(name string) (float64, bool) {
	if env == nil {
		return 0, false
	}
	tag, _ := env.rt.Current().ResolveTag(name)
	if tag == nil {
		return 0, false
	}
	return node.As[float64](tag.Value())
}

// Set assigns a value to a variable. Constants cannot be assigned to.
func (env *Env) Set(name string, v float64) error {
	if env == nil {
		return fmt.Errorf("cannot assign to %s: %w", name, ErrNoEnvironment)
	}
	return env.rt.Current().Assign(name, node.New(v))
}

// Variables returns a copy of all variables, excluding the constants.
func (env *Env) Variables() map[string]float64 {
	vars := make(map[string]float64)
	if env == nil {
		return vars
	}
	env.rt.Current().Tags().Each(func(name string, tag *runtime.Tag) {
		vars[name], _ = node.As[float64](tag.Value())
	})
	return vars
}

// Reset removes all variables.
func (env *Env) Reset() {
	env.rt.ScopeTree.PopScope()
	env.rt.ScopeTree.PushNewScope("variables")
}

// value resolves a variable.
func (env *Env) value(name Name) (float64, error) {
	v, ok := env.Get(string(name))
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUndefinedVariable, name)
	}
	return v, nil
}
