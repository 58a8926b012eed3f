package binding

// Context is the execution position a name is resolved against: the
// active frame stack, the current receiver (if any), and the lexical
// namespace position.
type Context struct {
	frames   []*Frame
	receiver *Instance
	ns       *Namespace
}

// NewContext creates a context positioned at the given namespace with
// no frames and no receiver.
func NewContext(ns *Namespace) *Context {
	return &Context{
		frames: make([]*Frame, 0, 8),
		ns:     ns,
	}
}

// PushFrame pushes a new frame for the named callable.
func (c *Context) PushFrame(callable string) *Frame {
	frame := NewFrame(callable)
	c.frames = append(c.frames, frame)
	return frame
}

// PopFrame pops the current frame, destroying its locals.
func (c *Context) PopFrame() *Frame {
	if len(c.frames) == 0 {
		return nil
	}

	f := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	return f
}

// currentFrame returns the innermost active frame, or nil if none.
func (c *Context) currentFrame() *Frame {
	if len(c.frames) == 0 {
		return nil
	}

	return c.frames[len(c.frames)-1]
}

// Depth returns the number of active frames.
func (c *Context) Depth() int {
	return len(c.frames)
}

// Receiver returns the current receiver instance, or nil.
func (c *Context) Receiver() *Instance {
	return c.receiver
}

// SetReceiver installs the receiver for subsequent statements.
func (c *Context) SetReceiver(o *Instance) {
	c.receiver = o
}

// Namespace returns the current lexical namespace position.
func (c *Context) Namespace() *Namespace {
	return c.ns
}

// Enter moves the lexical position into the named child namespace,
// creating it if needed.
func (c *Context) Enter(name string, kind NamespaceKind) *Namespace {
	c.ns = c.ns.Child(name, kind)
	return c.ns
}

// Exit moves the lexical position back to the parent namespace. At the
// root it is a no-op returning false.
func (c *Context) Exit() bool {
	if c.ns.Parent() == nil {
		return false
	}

	c.ns = c.ns.Parent()
	return true
}

// enclosingClass returns the class node a class variable binds to: the
// receiver's class when a receiver exists, otherwise the innermost
// enclosing class namespace.
func (c *Context) enclosingClass() *Namespace {
	if c.receiver != nil {
		return c.receiver.Class()
	}

	for node := c.ns; node != nil; node = node.Parent() {
		if node.Kind == KindClass {
			return node
		}
	}

	return nil
}
