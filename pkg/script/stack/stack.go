package stack

// Item is one open block recorded during parsing: the block keyword
// and the line it opened on.
type Item struct {
	Sym  string
	Line int
}

type Stack struct {
	a []Item
	l int
}

// NewStack creates a new stack instance
func NewStack(elm ...Item) *Stack {
	stack := Stack{
		a: make([]Item, 0),
		l: 0,
	}

	for _, e := range elm {
		stack.l++
		stack.a = append(stack.a, e)
	}

	return &stack
}

// Push adds an element to the top of the stack
func (s *Stack) Push(elm Item) {
	s.l++
	s.a = append(s.a, elm)
}

// Pop removes and returns the top element of the stack
func (s *Stack) Pop() (Item, bool) {
	if s.l < 1 {
		return Item{}, false
	}

	s.l--
	elm := s.a[s.l]
	s.a = s.a[:s.l]

	return elm, true
}

// Peek returns the top element of the stack without removing it
func (s *Stack) Peek() (Item, bool) {
	if s.l < 1 {
		return Item{}, false
	}

	return s.a[s.l-1], true
}

// Get the size of the stack
func (s *Stack) Size() int {
	return s.l
}

// Array returns the underlying array of the stack
func (s Stack) Array() []Item {
	return s.a
}
