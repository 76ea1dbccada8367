package semantic

import "playscript/interpreter-go/pkg/ast"

// ScopeID addresses a scope in the Scopes arena.
type ScopeID int

// NoScope is the parent of the program scope.
const NoScope ScopeID = -1

type ScopeKind string

const (
	ScopeProgram  ScopeKind = "program"
	ScopeBlock    ScopeKind = "block"
	ScopeFunction ScopeKind = "function"
	ScopeClass    ScopeKind = "class"
)

type scopeNode struct {
	parent  ScopeID
	kind    ScopeKind
	owner   Symbol
	node    ast.Node
	symbols []Symbol
}

// Scopes is the static scope tree stored as an arena; each entry holds the
// index of its enclosing scope.
type Scopes struct {
	nodes []scopeNode
}

func NewScopes() *Scopes {
	return &Scopes{}
}

// New appends a scope whose enclosing scope is parent.
func (s *Scopes) New(parent ScopeID, kind ScopeKind, node ast.Node) ScopeID {
	s.nodes = append(s.nodes, scopeNode{parent: parent, kind: kind, node: node})
	return ScopeID(len(s.nodes) - 1)
}

func (s *Scopes) valid(id ScopeID) bool {
	return id >= 0 && int(id) < len(s.nodes)
}

func (s *Scopes) Len() int { return len(s.nodes) }

func (s *Scopes) Parent(id ScopeID) ScopeID {
	if !s.valid(id) {
		return NoScope
	}
	return s.nodes[id].parent
}

func (s *Scopes) Kind(id ScopeID) ScopeKind {
	if !s.valid(id) {
		return ""
	}
	return s.nodes[id].kind
}

func (s *Scopes) Node(id ScopeID) ast.Node {
	if !s.valid(id) {
		return nil
	}
	return s.nodes[id].node
}

// Owner returns the function or class a function/class scope belongs to.
func (s *Scopes) Owner(id ScopeID) Symbol {
	if !s.valid(id) {
		return nil
	}
	return s.nodes[id].owner
}

func (s *Scopes) SetOwner(id ScopeID, owner Symbol) {
	if s.valid(id) {
		s.nodes[id].owner = owner
	}
}

// OwnerClass returns the class owning a class scope, or nil.
func (s *Scopes) OwnerClass(id ScopeID) *Class {
	cls, _ := s.Owner(id).(*Class)
	return cls
}

// Declare adds sym to the scope's member list.
func (s *Scopes) Declare(id ScopeID, sym Symbol) {
	if s.valid(id) {
		s.nodes[id].symbols = append(s.nodes[id].symbols, sym)
	}
}

func (s *Scopes) Symbols(id ScopeID) []Symbol {
	if !s.valid(id) {
		return nil
	}
	return s.nodes[id].symbols
}

// Contains reports whether the scope itself declares v.
func (s *Scopes) Contains(id ScopeID, v *Variable) bool {
	return v != nil && v.Scope == id && s.valid(id)
}

// Encloses reports whether outer is inner or one of its enclosing scopes.
func (s *Scopes) Encloses(outer, inner ScopeID) bool {
	for cur := inner; cur != NoScope; cur = s.Parent(cur) {
		if cur == outer {
			return true
		}
	}
	return false
}

// IsLexicalParent reports whether parent is the enclosing scope of child. A
// class scope also counts as the parent of the scopes nested in an ancestor
// class, so inherited members link to the receiver of a subclass.
func (s *Scopes) IsLexicalParent(parent, child ScopeID) bool {
	enclosing := s.Parent(child)
	if enclosing == parent {
		return true
	}
	declaring := s.OwnerClass(enclosing)
	receiver := s.OwnerClass(parent)
	if declaring == nil || receiver == nil {
		return false
	}
	return receiver.IsSubclassOf(declaring)
}

// EnclosingFunction returns the nearest function scope enclosing id,
// including id itself.
func (s *Scopes) EnclosingFunction(id ScopeID) (*Function, ScopeID) {
	for cur := id; cur != NoScope; cur = s.Parent(cur) {
		if s.Kind(cur) == ScopeFunction {
			fn, _ := s.Owner(cur).(*Function)
			return fn, cur
		}
	}
	return nil, NoScope
}
