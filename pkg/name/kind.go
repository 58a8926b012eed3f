package name

import (
	"fmt"
)

type Kind int

const (
	Invalid Kind = iota // token matches no recognized pattern

	Local             // count, _total
	Global            // $debug
	InstanceAttribute // @name
	TypeAttribute     // @@instances
	Constant          // MAX_SIZE, Student
)

// labels are the printable names used in demonstration output.
var labels = map[Kind]string{
	Local:             "local-variable",
	Global:            "global-variable",
	InstanceAttribute: "instance-variable",
	TypeAttribute:     "class variable",
	Constant:          "constant",
}

// Label returns the demonstration-output label for the kind.
func (k Kind) Label() (string, bool) {
	label, ok := labels[k]
	return label, ok
}

// String returns a string representation of the Kind.
func (k Kind) String() string {
	if label, ok := k.Label(); ok {
		return label
	}

	return fmt.Sprintf("INVALID(%d)", int(k))
}

// Shared reports whether bindings of this kind live in storage visible
// beyond a single frame or instance.
func (k Kind) Shared() bool {
	switch k {
	case Global, TypeAttribute, Constant:
		return true
	default:
		return false
	}
}
