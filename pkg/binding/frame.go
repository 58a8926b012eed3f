package binding

// Frame represents the local-variable storage of one active callable
// invocation. Locals live and die with their frame: once the frame is
// popped they are unreachable, not merely hidden.
type Frame struct {
	Callable string           // callable name for this frame
	Locals   map[string]Value // local variables (name -> value)
}

// NewFrame creates an empty frame for the named callable.
func NewFrame(callable string) *Frame {
	return &Frame{
		Callable: callable,
		Locals:   make(map[string]Value),
	}
}
