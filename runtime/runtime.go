/*
Package runtime implements a runtime environment for expression languages,
consisting of scopes and symbols (variables and constants).

For a thorough discussion of an interpreter's runtime environment, refer to
"Language Implementation Patterns" by Terence Parr.

Symbol Table and Scope Tree

Symbols are called tags here, as grammars consist of symbols, too. Tags carry
a value of type node.Node, i.e., any value an expression may produce. Tags are
stored in symbol tables, which are attached to scopes. Scopes link to a parent
scope, and symbol lookup proceeds from a scope upwards to the global scope.

Expression languages use scopes to separate pre-defined constants (global
scope) from variables assigned by the user (inner scopes).

Symbol tables are safe for concurrent use. Scope trees are not; they are
expected to be set up by a single goroutine.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package runtime

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gexpr.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("gexpr.runtime")
}

// Runtime is a type implementing a runtime environment for an interpreter.
type Runtime struct {
	ScopeTree *ScopeTree  // collect scopes
	UData     interface{} // extension point
}

// NewRuntimeEnvironment constructs a new runtime environment, initialized
// with a global scope.
func NewRuntimeEnvironment() *Runtime {
	rt := &Runtime{}
	rt.ScopeTree = new(ScopeTree)
	rt.ScopeTree.PushNewScope("globals")
	return rt
}

// Globals is a shortcut for rt.ScopeTree.Globals().
func (rt *Runtime) Globals() *Scope {
	return rt.ScopeTree.Globals()
}

// Current is a shortcut for rt.ScopeTree.Current().
func (rt *Runtime) Current() *Scope {
	return rt.ScopeTree.Current()
}
