package runtime

import (
	"sort"

	"playscript/interpreter-go/pkg/semantic"
)

// Container stores variable values keyed by symbol identity. Class
// instances, closures and the local storage of block frames implement it.
type Container interface {
	Get(v *semantic.Variable) (Value, bool)
	Set(v *semantic.Variable, val Value)
	Has(v *semantic.Variable) bool
}

type fieldMap map[*semantic.Variable]Value

func (m fieldMap) get(v *semantic.Variable) (Value, bool) {
	val, ok := m[v]
	return val, ok
}

// names returns the bound variable names in sorted order (for tests and
// tracing).
func (m fieldMap) names() []string {
	out := make([]string, 0, len(m))
	for v := range m {
		out = append(out, v.Name)
	}
	sort.Strings(out)
	return out
}

//-----------------------------------------------------------------------------
// Class instances
//-----------------------------------------------------------------------------

// ClassInstance is a heap object: its runtime class and one slot per field
// declared by the class and all of its ancestors. ID is the allocation
// sequence number within one execution.
type ClassInstance struct {
	Class  *semantic.Class
	Fields map[*semantic.Variable]Value
	ID     uint64
}

func NewClassInstance(class *semantic.Class, id uint64) *ClassInstance {
	return &ClassInstance{
		Class:  class,
		Fields: make(map[*semantic.Variable]Value),
		ID:     id,
	}
}

func (v *ClassInstance) Kind() Kind { return KindClassInstance }

func (v *ClassInstance) Get(variable *semantic.Variable) (Value, bool) {
	return fieldMap(v.Fields).get(variable)
}

func (v *ClassInstance) Set(variable *semantic.Variable, val Value) {
	v.Fields[variable] = val
}

func (v *ClassInstance) Has(variable *semantic.Variable) bool {
	_, ok := v.Fields[variable]
	return ok
}

func (v *ClassInstance) FieldNames() []string {
	return fieldMap(v.Fields).names()
}

//-----------------------------------------------------------------------------
// Closures
//-----------------------------------------------------------------------------

// Closure pairs a function with its captured variables. Captures are filled
// when the closure is returned; parameters are bound into the same map when
// it is invoked.
type Closure struct {
	Function *semantic.Function
	Fields   map[*semantic.Variable]Value
}

func NewClosure(fn *semantic.Function) *Closure {
	return &Closure{Function: fn, Fields: make(map[*semantic.Variable]Value)}
}

func (v *Closure) Kind() Kind { return KindClosure }

func (v *Closure) Get(variable *semantic.Variable) (Value, bool) {
	return fieldMap(v.Fields).get(variable)
}

func (v *Closure) Set(variable *semantic.Variable, val Value) {
	v.Fields[variable] = val
}

func (v *Closure) Has(variable *semantic.Variable) bool {
	_, ok := v.Fields[variable]
	return ok
}

func (v *Closure) FieldNames() []string {
	return fieldMap(v.Fields).names()
}

//-----------------------------------------------------------------------------
// Local storage
//-----------------------------------------------------------------------------

// LocalStorage backs program, block and for-loop frames.
type LocalStorage struct {
	values map[*semantic.Variable]Value
}

func NewLocalStorage() *LocalStorage {
	return &LocalStorage{values: make(map[*semantic.Variable]Value)}
}

func (s *LocalStorage) Get(variable *semantic.Variable) (Value, bool) {
	return fieldMap(s.values).get(variable)
}

func (s *LocalStorage) Set(variable *semantic.Variable, val Value) {
	s.values[variable] = val
}

func (s *LocalStorage) Has(variable *semantic.Variable) bool {
	_, ok := s.values[variable]
	return ok
}

func (s *LocalStorage) Names() []string {
	return fieldMap(s.values).names()
}
