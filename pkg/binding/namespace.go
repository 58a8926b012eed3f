package binding

import (
	"strings"
)

type NamespaceKind int

const (
	KindModule NamespaceKind = iota
	KindClass
)

// String returns a string representation of the NamespaceKind.
func (k NamespaceKind) String() string {
	if k == KindClass {
		return "class"
	}

	return "module"
}

// Namespace is a named container in the lexical nesting tree. Each
// node owns its own constant table, and class nodes additionally own
// the class-variable table shared by every instance rooted at the node.
type Namespace struct {
	Name string
	Kind NamespaceKind

	parent   *Namespace
	children map[string]*Namespace

	consts    map[string]Value
	typeAttrs map[string]Value
}

// NewRootNamespace creates the top-level namespace.
func NewRootNamespace() *Namespace {
	return &Namespace{
		Name:      "",
		Kind:      KindModule,
		children:  make(map[string]*Namespace),
		consts:    make(map[string]Value),
		typeAttrs: make(map[string]Value),
	}
}

// Child returns the named child namespace, creating it with the given
// kind if it does not exist yet.
func (n *Namespace) Child(name string, kind NamespaceKind) *Namespace {
	if c, ok := n.children[name]; ok {
		return c
	}

	c := &Namespace{
		Name:      name,
		Kind:      kind,
		parent:    n,
		children:  make(map[string]*Namespace),
		consts:    make(map[string]Value),
		typeAttrs: make(map[string]Value),
	}

	n.children[name] = c
	return c
}

// Lookup returns the named child namespace without creating it.
func (n *Namespace) Lookup(name string) (*Namespace, bool) {
	c, ok := n.children[name]
	return c, ok
}

// Parent returns the enclosing namespace, or nil at the root.
func (n *Namespace) Parent() *Namespace {
	return n.parent
}

// Root walks up to the top-level namespace.
func (n *Namespace) Root() *Namespace {
	r := n
	for r.parent != nil {
		r = r.parent
	}

	return r
}

// Path renders the namespace's position as "Outer::Inner". The root
// renders as "::".
func (n *Namespace) Path() string {
	if n.parent == nil {
		return "::"
	}

	var segs []string
	for c := n; c.parent != nil; c = c.parent {
		segs = append(segs, c.Name)
	}

	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}

	return strings.Join(segs, "::")
}

// Constant returns the constant bound at this node only.
func (n *Namespace) Constant(name string) (Value, bool) {
	v, ok := n.consts[name]
	return v, ok
}

// SetConstant binds a constant at this node, returning the previous
// value if the name was already bound here.
func (n *Namespace) SetConstant(name string, v Value) (Value, bool) {
	prev, existed := n.consts[name]
	n.consts[name] = v
	return prev, existed
}

// LookupConstant walks the lexical chain outward from this node to the
// root, returning the first binding found.
func (n *Namespace) LookupConstant(name string) (Value, bool) {
	for node := n; node != nil; node = node.parent {
		if v, ok := node.consts[name]; ok {
			return v, true
		}
	}

	return Value{}, false
}

// TypeAttr returns the class variable bound at this node.
func (n *Namespace) TypeAttr(name string) (Value, bool) {
	v, ok := n.typeAttrs[name]
	return v, ok
}

// SetTypeAttr binds a class variable at this node. The slot is shared
// across every instance and subtype pointing at the node.
func (n *Namespace) SetTypeAttr(name string, v Value) {
	n.typeAttrs[name] = v
}

// Instance is one object of a class namespace. It owns its own
// instance-variable store, created empty at construction.
type Instance struct {
	class *Namespace
	attrs map[string]Value
}

// NewInstance constructs an instance of the class node.
func (n *Namespace) NewInstance() *Instance {
	return &Instance{
		class: n,
		attrs: make(map[string]Value),
	}
}

// Class returns the namespace node the instance belongs to.
func (o *Instance) Class() *Namespace {
	return o.class
}

// Attr returns the instance variable bound on this object only.
func (o *Instance) Attr(name string) (Value, bool) {
	v, ok := o.attrs[name]
	return v, ok
}

// SetAttr binds an instance variable on this object.
func (o *Instance) SetAttr(name string, v Value) {
	o.attrs[name] = v
}
