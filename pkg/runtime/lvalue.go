package runtime

import "playscript/interpreter-go/pkg/semantic"

// LValue is a settable reference to a variable's storage. It is only valid
// for the evaluation step that produced it.
type LValue struct {
	Container Container
	Variable  *semantic.Variable
}

// Get reads the variable; storage that was never written reads as Null.
func (l *LValue) Get() Value {
	if val, ok := l.Container.Get(l.Variable); ok && val != nil {
		return val
	}
	return Null
}

func (l *LValue) Set(val Value) {
	if val == nil {
		val = Null
	}
	l.Container.Set(l.Variable, val)
}
