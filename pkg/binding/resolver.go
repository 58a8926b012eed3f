package binding

import (
	"errors"
	"fmt"

	"sigil/pkg/name"
)

// UndefinedBindingError indicates a name that classified fine but has
// no value in the store its kind selects.
type UndefinedBindingError struct {
	Name   string
	Kind   name.Kind
	Reason string
}

func (e *UndefinedBindingError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("undefined %s %q: %s", e.Kind, e.Name, e.Reason)
	}

	return fmt.Sprintf("undefined %s %q", e.Kind, e.Name)
}

// RedefinitionWarning records a constant overwritten at the same
// namespace node. Advisory only; the new value wins.
type RedefinitionWarning struct {
	Name      string
	Namespace string
	Old       Value
	New       Value
}

func (w RedefinitionWarning) String() string {
	return fmt.Sprintf("constant %s already defined at %s (was %s, now %s)",
		w.Name, w.Namespace, w.Old, w.New)
}

var ErrQualifiedDefine = errors.New("cannot define through a qualified path")

// Resolver owns the shared stores (the global table and the namespace
// tree) and implements kind-dispatched resolution and definition.
// Stores hang off the Resolver value, not the package, so each test
// can build an isolated world.
type Resolver struct {
	root     *Namespace
	globals  map[string]Value
	warnings []RedefinitionWarning
}

// NewResolver creates a resolver with an empty root namespace and an
// empty global table.
func NewResolver() *Resolver {
	return &Resolver{
		root:    NewRootNamespace(),
		globals: make(map[string]Value),
	}
}

// Root returns the top-level namespace.
func (r *Resolver) Root() *Namespace {
	return r.root
}

// NewContext creates a context positioned at the resolver's root.
func (r *Resolver) NewContext() *Context {
	return NewContext(r.root)
}

// Warnings returns the redefinition warnings recorded so far.
func (r *Resolver) Warnings() []RedefinitionWarning {
	return r.warnings
}

// TakeWarnings returns and clears the recorded warnings.
func (r *Resolver) TakeWarnings() []RedefinitionWarning {
	w := r.warnings
	r.warnings = nil
	return w
}

// Resolve finds the value bound to a reference in the given context.
// The store searched depends only on the reference's kind:
//
//   - Local: the innermost active frame, and nothing else. Enclosing
//     frames belong to other invocations and are never searched.
//   - Global: the process-wide table; absence is a defined nil value,
//     never an error.
//   - InstanceAttribute: the receiver's own store; no receiver means
//     the name is not accessible.
//   - TypeAttribute: the shared slot on the enclosing class node.
//   - Constant: the lexical chain outward from the current namespace,
//     unless the reference is qualified, in which case a direct path
//     walk from the root (bypassing lexical nesting entirely).
func (r *Resolver) Resolve(ref name.Ref, ctx *Context) (Value, error) {
	switch ref.Kind {
	case name.Local:
		f := ctx.currentFrame()
		if f == nil {
			return Undefined, &UndefinedBindingError{Name: ref.Name, Kind: ref.Kind, Reason: "no active frame"}
		}

		v, ok := f.Locals[ref.Name]
		if !ok {
			return Undefined, &UndefinedBindingError{Name: ref.Name, Kind: ref.Kind}
		}

		return v, nil

	case name.Global:
		if v, ok := r.globals[ref.Name]; ok {
			return v, nil
		}

		return NewNil(), nil

	case name.InstanceAttribute:
		o := ctx.Receiver()
		if o == nil {
			return Undefined, &UndefinedBindingError{Name: ref.Name, Kind: ref.Kind, Reason: "no receiver"}
		}

		v, ok := o.Attr(ref.Name)
		if !ok {
			return Undefined, &UndefinedBindingError{Name: ref.Name, Kind: ref.Kind}
		}

		return v, nil

	case name.TypeAttribute:
		node := ctx.enclosingClass()
		if node == nil {
			return Undefined, &UndefinedBindingError{Name: ref.Name, Kind: ref.Kind, Reason: "no enclosing class"}
		}

		v, ok := node.TypeAttr(ref.Name)
		if !ok {
			return Undefined, &UndefinedBindingError{Name: ref.Name, Kind: ref.Kind}
		}

		return v, nil

	case name.Constant:
		if ref.Qualified() {
			return r.resolvePath(ref)
		}

		v, ok := ctx.Namespace().LookupConstant(ref.Name)
		if !ok {
			return Undefined, &UndefinedBindingError{Name: ref.Name, Kind: ref.Kind}
		}

		return v, nil

	default:
		return Undefined, &name.InvalidNameError{Token: ref.Name}
	}
}

// resolvePath resolves a qualified constant reference by walking the
// namespace tree from the root. No fallback to the lexical chain.
func (r *Resolver) resolvePath(ref name.Ref) (Value, error) {
	node := r.root
	for _, seg := range ref.Path {
		next, ok := node.Lookup(seg)
		if !ok {
			return Undefined, &UndefinedBindingError{
				Name:   ref.String(),
				Kind:   name.Constant,
				Reason: fmt.Sprintf("no namespace %q under %s", seg, node.Path()),
			}
		}

		node = next
	}

	v, ok := node.Constant(ref.Name)
	if !ok {
		return Undefined, &UndefinedBindingError{Name: ref.String(), Kind: name.Constant}
	}

	return v, nil
}

// Define binds a value in the store the reference's kind selects.
// Redefining a constant at the same namespace node overwrites the old
// value and records a RedefinitionWarning.
func (r *Resolver) Define(ref name.Ref, v Value, ctx *Context) error {
	if ref.Qualified() {
		return ErrQualifiedDefine
	}

	switch ref.Kind {
	case name.Local:
		f := ctx.currentFrame()
		if f == nil {
			return &UndefinedBindingError{Name: ref.Name, Kind: ref.Kind, Reason: "no active frame"}
		}

		f.Locals[ref.Name] = v
		return nil

	case name.Global:
		r.globals[ref.Name] = v
		return nil

	case name.InstanceAttribute:
		o := ctx.Receiver()
		if o == nil {
			return &UndefinedBindingError{Name: ref.Name, Kind: ref.Kind, Reason: "no receiver"}
		}

		o.SetAttr(ref.Name, v)
		return nil

	case name.TypeAttribute:
		node := ctx.enclosingClass()
		if node == nil {
			return &UndefinedBindingError{Name: ref.Name, Kind: ref.Kind, Reason: "no enclosing class"}
		}

		node.SetTypeAttr(ref.Name, v)
		return nil

	case name.Constant:
		node := ctx.Namespace()
		if prev, existed := node.SetConstant(ref.Name, v); existed {
			r.warnings = append(r.warnings, RedefinitionWarning{
				Name:      ref.Name,
				Namespace: node.Path(),
				Old:       prev,
				New:       v,
			})
		}

		return nil

	default:
		return &name.InvalidNameError{Token: ref.Name}
	}
}
