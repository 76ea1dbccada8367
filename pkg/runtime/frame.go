package runtime

import (
	"fmt"

	"playscript/interpreter-go/pkg/semantic"
)

// Frame is one active instantiation of a lexical scope. Parent is the
// lexical link fixed at push time; it is not necessarily the caller.
type Frame struct {
	Scope     semantic.ScopeID
	Container Container
	Parent    *Frame
	Receiver  *ClassInstance
}

// Owns reports whether the frame stores v: its scope declares v, or its
// container already holds v (captured variables, inherited fields).
func (f *Frame) Owns(v *semantic.Variable) bool {
	if f == nil || v == nil {
		return false
	}
	return f.Scope == v.Scope || f.Container.Has(v)
}

// FrameChain is the dynamic stack of frames plus the lexical links between
// them.
type FrameChain struct {
	scopes *semantic.Scopes
	stack  []*Frame
}

func NewFrameChain(scopes *semantic.Scopes) *FrameChain {
	return &FrameChain{scopes: scopes}
}

func (c *FrameChain) Top() *Frame {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

func (c *FrameChain) Depth() int {
	return len(c.stack)
}

// Push adds a frame for scope backed by container. Its parent is the top
// frame when the top frame instantiates the lexical parent of scope, and the
// top frame's parent otherwise. The receiver is the container itself when it
// is a class instance, else the receiver of the parent.
func (c *FrameChain) Push(scope semantic.ScopeID, container Container) *Frame {
	frame := &Frame{Scope: scope, Container: container}
	if top := c.Top(); top != nil {
		if c.scopes.IsLexicalParent(top.Scope, scope) {
			frame.Parent = top
		} else {
			frame.Parent = top.Parent
		}
	}
	if inst, ok := container.(*ClassInstance); ok {
		frame.Receiver = inst
	} else if frame.Parent != nil {
		frame.Receiver = frame.Parent.Receiver
	}
	c.stack = append(c.stack, frame)
	return frame
}

// Pop removes the top frame unconditionally.
func (c *FrameChain) Pop() *Frame {
	if len(c.stack) == 0 {
		return nil
	}
	top := c.stack[len(c.stack)-1]
	c.stack[len(c.stack)-1] = nil
	c.stack = c.stack[:len(c.stack)-1]
	return top
}

// Receiver is the class instance the innermost frame executes against.
func (c *FrameChain) Receiver() *ClassInstance {
	if top := c.Top(); top != nil {
		return top.Receiver
	}
	return nil
}

// Resolve returns the container storing v, walking parent links from the
// top frame. Program-level variables stay reachable from frames whose
// lexical ancestors have already been popped.
func (c *FrameChain) Resolve(v *semantic.Variable) (Container, error) {
	if v == nil {
		return nil, fmt.Errorf("resolve: nil variable")
	}
	for frame := c.Top(); frame != nil; frame = frame.Parent {
		if frame.Owns(v) {
			return frame.Container, nil
		}
	}
	if len(c.stack) > 0 && c.stack[0].Owns(v) {
		return c.stack[0].Container, nil
	}
	return nil, fmt.Errorf("variable %s is not reachable from the current frame", v.Name)
}

// LValue binds a read/write handle for v.
func (c *FrameChain) LValue(v *semantic.Variable) (*LValue, error) {
	container, err := c.Resolve(v)
	if err != nil {
		return nil, err
	}
	return &LValue{Container: container, Variable: v}, nil
}
