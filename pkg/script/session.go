package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"sigil/pkg/binding"
	"sigil/pkg/name"
)

// Session executes a demonstration program statement by statement
// against one resolver and one execution context.
type Session struct {
	program []Statement
	pc      int

	res *binding.Resolver
	ctx *binding.Context

	out io.Writer // output writer for demonstration lines

	maxSteps int // maximum steps (0 = unlimited)
	steps    int // steps executed
}

type Option func(*Session)

// WithWriter sets the output writer for demonstration lines
func WithWriter(w io.Writer) Option {
	return func(s *Session) { s.out = w }
}

// WithMaxSteps sets a maximum number of statements before returning ErrMaxStepsExceeded
func WithMaxSteps(n int) Option {
	return func(s *Session) { s.maxSteps = n }
}

// WithResolver installs a pre-populated resolver instead of a fresh one
func WithResolver(r *binding.Resolver) Option {
	return func(s *Session) {
		s.res = r
		s.ctx = r.NewContext()
	}
}

// NewSession creates a new Session for the given program
func NewSession(program []Statement, opts ...Option) *Session {
	s := &Session{
		program: append([]Statement(nil), program...),
		res:     binding.NewResolver(),
	}

	s.ctx = s.res.NewContext()
	for _, o := range opts {
		o(s)
	}

	if s.out == nil {
		s.out = os.Stdout
	}

	return s
}

// Load replaces the current program, resetting the program counter but
// keeping the resolver's stores and the context.
func (s *Session) Load(program []Statement) {
	s.program = append([]Statement(nil), program...)
	s.pc = 0
	s.steps = 0
}

// Resolver returns the session's resolver.
func (s *Session) Resolver() *binding.Resolver {
	return s.res
}

// Context returns the session's execution context.
func (s *Session) Context() *binding.Context {
	return s.ctx
}

// Output returns the output writer used for demonstration lines
func (s *Session) Output() io.Writer {
	return s.out
}

var ErrMaxStepsExceeded = errors.New("maximum steps exceeded")

// Step executes a single statement, returning (halted, error). The
// statement's output line, if any, is written before a resolution
// error is returned, so an undefined lookup still prints "undefined".
func (s *Session) Step() (bool, error) {
	if s.pc >= len(s.program) {
		return true, nil
	}

	if s.maxSteps > 0 && s.steps >= s.maxSteps {
		return false, ErrMaxStepsExceeded
	}

	st := s.program[s.pc]
	s.pc++
	s.steps++

	out, err := s.Exec(st)
	if out != "" {
		fmt.Fprintln(s.out, out)
	}

	return false, err
}

// Run executes until the end of the program. Statement errors are
// reported through report (if non-nil) and execution continues; only
// the step limit aborts the run.
func (s *Session) Run(report func(error)) error {
	for {
		halted, err := s.Step()
		if err != nil {
			if errors.Is(err, ErrMaxStepsExceeded) {
				return err
			}

			if report != nil {
				report(err)
			}
		}

		if halted {
			return nil
		}
	}
}

// ExecLine parses and executes one source line, returning its output.
// Used by the interactive driver.
func (s *Session) ExecLine(line string) (string, error) {
	st, ok, err := ParseLine(line, 1)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	return s.Exec(st)
}

// Exec dispatches one statement against the resolver and context. It
// returns the demonstration output line (possibly empty) and any
// statement-local error.
func (s *Session) Exec(st Statement) (string, error) {
	switch st.Op {
	case OpClassify:
		kind, err := name.Classify(st.Name)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", st.Line, err)
		}

		label, _ := kind.Label()
		return label, nil

	case OpDefine:
		ref, err := name.ParseRef(st.Name)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", st.Line, err)
		}

		v, err := binding.ParseLiteral(st.Arg)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", st.Line, err)
		}

		if err := s.res.Define(ref, v, s.ctx); err != nil {
			return "", fmt.Errorf("line %d: %w", st.Line, err)
		}

		return v.String(), nil

	case OpResolve:
		ref, err := name.ParseRef(st.Name)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", st.Line, err)
		}

		v, err := s.res.Resolve(ref, s.ctx)
		if err != nil {
			return v.String(), fmt.Errorf("line %d: %w", st.Line, err)
		}

		return v.String(), nil

	case OpAppend:
		ref, err := name.ParseRef(st.Name)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", st.Line, err)
		}

		elem, err := binding.ParseLiteral(st.Arg)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", st.Line, err)
		}

		cur, err := s.res.Resolve(ref, s.ctx)
		if err != nil {
			return cur.String(), fmt.Errorf("line %d: %w", st.Line, err)
		}

		next, err := cur.Append(elem)
		if err != nil {
			return "", fmt.Errorf("line %d: %w", st.Line, err)
		}

		if err := s.res.Define(ref, next, s.ctx); err != nil {
			return "", fmt.Errorf("line %d: %w", st.Line, err)
		}

		return next.String(), nil

	case OpBegin:
		s.ctx.PushFrame(st.Name)
		return fmt.Sprintf("begin %s", st.Name), nil

	case OpEnd:
		f := s.ctx.PopFrame()
		if f == nil {
			return "", fmt.Errorf("line %d: end without an active frame", st.Line)
		}

		return fmt.Sprintf("end %s", f.Callable), nil

	case OpModule:
		s.ctx.Enter(st.Name, binding.KindModule)
		return fmt.Sprintf("module %s", st.Name), nil

	case OpClass:
		s.ctx.Enter(st.Name, binding.KindClass)
		return fmt.Sprintf("class %s", st.Name), nil

	case OpClose:
		left := s.ctx.Namespace()
		if !s.ctx.Exit() {
			return "", fmt.Errorf("line %d: close at root namespace", st.Line)
		}

		return fmt.Sprintf("close %s", left.Name), nil

	case OpNew:
		node, err := s.lookupClass(st.Name, st.Line)
		if err != nil {
			return "", err
		}

		s.ctx.SetReceiver(node.NewInstance())
		return fmt.Sprintf("new %s", node.Path()), nil

	case OpDetach:
		s.ctx.SetReceiver(nil)
		return "detach", nil

	default:
		return "", fmt.Errorf("line %d: unknown op %q", st.Line, st.Op)
	}
}

// lookupClass finds the class namespace a "new" statement names,
// either by qualified path from the root or by walking the lexical
// chain outward like an unqualified constant.
func (s *Session) lookupClass(token string, line int) (*binding.Namespace, error) {
	ref, err := name.ParseRef(token)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", line, err)
	}

	if ref.Qualified() {
		node := s.res.Root()
		for _, seg := range append(append([]string(nil), ref.Path...), ref.Name) {
			next, ok := node.Lookup(seg)
			if !ok {
				return nil, fmt.Errorf("line %d: no namespace %q under %s", line, seg, node.Path())
			}
			node = next
		}

		if node.Kind != binding.KindClass {
			return nil, fmt.Errorf("line %d: %s is a module, not a class", line, node.Path())
		}

		return node, nil
	}

	for node := s.ctx.Namespace(); node != nil; node = node.Parent() {
		if c, ok := node.Lookup(ref.Name); ok && c.Kind == binding.KindClass {
			return c, nil
		}
	}

	return nil, fmt.Errorf("line %d: no class %q in scope", line, ref.Name)
}
