package semantic

import (
	"sync"

	"playscript/interpreter-go/pkg/ast"
)

// AnnotatedTree is the result of analysis: every node resolved to a scope,
// a symbol and a static type. The interpreter queries it by node identity
// and never mutates it, except through Log.
type AnnotatedTree struct {
	Program   *ast.Program
	Scopes    *Scopes
	Global    ScopeID
	Classes   []*Class
	Functions []*Function

	scopes        map[ast.Node]ScopeID
	types         map[ast.Node]Type
	symbols       map[ast.Node]Symbol
	freeVariables map[*Function][]*Variable

	mu          sync.Mutex
	diagnostics []Diagnostic
}

// NewAnnotatedTree returns an empty annotation set over program.
func NewAnnotatedTree(program *ast.Program) *AnnotatedTree {
	return &AnnotatedTree{
		Program:       program,
		Scopes:        NewScopes(),
		Global:        NoScope,
		scopes:        make(map[ast.Node]ScopeID),
		types:         make(map[ast.Node]Type),
		symbols:       make(map[ast.Node]Symbol),
		freeVariables: make(map[*Function][]*Variable),
	}
}

// ScopeOf returns the scope a program, block, for, function or class node
// introduces.
func (t *AnnotatedTree) ScopeOf(node ast.Node) (ScopeID, bool) {
	id, ok := t.scopes[node]
	return id, ok
}

func (t *AnnotatedTree) TypeOf(node ast.Node) Type {
	if typ, ok := t.types[node]; ok {
		return typ
	}
	return Unknown
}

func (t *AnnotatedTree) SymbolOf(node ast.Node) Symbol {
	return t.symbols[node]
}

// FreeVariablesOf returns, in first-reference order, the variables fn reads
// or writes that are declared outside its own body.
func (t *AnnotatedTree) FreeVariablesOf(fn *Function) []*Variable {
	return t.freeVariables[fn]
}

// LookupField resolves a field by name against a concrete class.
func (t *AnnotatedTree) LookupField(class *Class, name string) *Variable {
	if class == nil {
		return nil
	}
	return class.LookupField(name)
}

func (t *AnnotatedTree) Promote(left, right Type) Type {
	return Promote(left, right)
}

// SetScope, SetType and SetSymbol record annotations; the analyzer uses them
// and tests may build trees by hand.
func (t *AnnotatedTree) SetScope(node ast.Node, id ScopeID) {
	t.scopes[node] = id
}

func (t *AnnotatedTree) SetType(node ast.Node, typ Type) {
	if typ == nil {
		typ = Void
	}
	t.types[node] = typ
}

func (t *AnnotatedTree) SetSymbol(node ast.Node, sym Symbol) {
	t.symbols[node] = sym
}

// AddFreeVariable appends v to fn's capture list unless already present.
func (t *AnnotatedTree) AddFreeVariable(fn *Function, v *Variable) {
	for _, existing := range t.freeVariables[fn] {
		if existing == v {
			return
		}
	}
	t.freeVariables[fn] = append(t.freeVariables[fn], v)
}
