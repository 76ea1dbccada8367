package runtime

import "fmt"

type CompletionKind int

const (
	CompletionNormal CompletionKind = iota
	CompletionBreak
	CompletionReturn
)

func (k CompletionKind) String() string {
	switch k {
	case CompletionNormal:
		return "normal"
	case CompletionBreak:
		return "break"
	case CompletionReturn:
		return "return"
	default:
		return fmt.Sprintf("completion_%d", int(k))
	}
}

// Completion is the result of executing a statement: a plain value, a
// break, or a return carrying its value.
type Completion struct {
	Kind  CompletionKind
	Value Value
}

func NormalCompletion(val Value) Completion {
	return Completion{Kind: CompletionNormal, Value: val}
}

func BreakCompletion() Completion {
	return Completion{Kind: CompletionBreak}
}

func ReturnCompletion(val Value) Completion {
	if val == nil {
		val = Null
	}
	return Completion{Kind: CompletionReturn, Value: val}
}

// Abrupt reports whether the completion stops the enclosing statement list.
func (c Completion) Abrupt() bool {
	return c.Kind != CompletionNormal
}
