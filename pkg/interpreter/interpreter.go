package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"

	"playscript/interpreter-go/pkg/ast"
	"playscript/interpreter-go/pkg/runtime"
	"playscript/interpreter-go/pkg/semantic"
)

var log = commonlog.GetLogger("playscript.interpreter")

// Interpreter evaluates an annotated PlayScript program.
type Interpreter struct {
	tree         *semantic.AnnotatedTree
	out          io.Writer
	maxCallDepth int
}

type Option func(*Interpreter)

// WithMaxCallDepth bounds nested function invocations; 0 means unlimited.
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		if depth > 0 {
			i.maxCallDepth = depth
		}
	}
}

// New returns an interpreter writing program output to stdout.
func New(tree *semantic.AnnotatedTree) *Interpreter {
	return NewWithOutput(tree, os.Stdout)
}

// NewWithOutput returns an interpreter writing program output to out.
func NewWithOutput(tree *semantic.AnnotatedTree, out io.Writer, opts ...Option) *Interpreter {
	if out == nil {
		out = io.Discard
	}
	i := &Interpreter{tree: tree, out: out}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Tree returns the analysis result the interpreter queries.
func (i *Interpreter) Tree() *semantic.AnnotatedTree {
	return i.tree
}

// DiagnosticSink records non-fatal diagnostics raised while running.
type DiagnosticSink interface {
	Log(message string, node ast.Node)
}

// ExecContext is the state of one execution: the frame chain, the
// diagnostic sink, the output stream, the current call depth and the
// instance allocation counter. It is passed explicitly through every
// evaluation step.
type ExecContext struct {
	Frames      *runtime.FrameChain
	Diagnostics DiagnosticSink
	Out         io.Writer
	depth       int
	instances   uint64
}

func (i *Interpreter) newContext() *ExecContext {
	return &ExecContext{
		Frames:      runtime.NewFrameChain(i.tree.Scopes),
		Diagnostics: i.tree,
		Out:         i.out,
	}
}

func (ctx *ExecContext) log(node ast.Node, format string, args ...any) {
	ctx.Diagnostics.Log(fmt.Sprintf(format, args...), node)
}

// Execute runs the program's top-level statements in order inside a
// program frame. Diagnostics logged along the way do not make it fail; it
// returns an error only for internal faults and runtime errors such as
// integer division by zero.
func (i *Interpreter) Execute(program *ast.Program) error {
	if program == nil {
		return fmt.Errorf("interpreter: program is nil")
	}
	if i.tree == nil {
		return fmt.Errorf("interpreter: program has not been analyzed")
	}
	scope, ok := i.tree.ScopeOf(program)
	if !ok {
		return internalErrorf(program, "program has no scope")
	}
	ctx := i.newContext()
	ctx.Frames.Push(scope, runtime.NewLocalStorage())
	defer ctx.Frames.Pop()

	for _, stmt := range program.Body {
		completion, err := i.executeStatement(ctx, stmt)
		if err != nil {
			return err
		}
		switch completion.Kind {
		case runtime.CompletionBreak:
			return internalErrorf(stmt, "break outside of a loop")
		case runtime.CompletionReturn:
			log.Debugf("top-level return stops the program")
			return nil
		}
	}
	return nil
}
