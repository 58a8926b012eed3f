package name

import (
	"fmt"
	"strings"
)

// Ref is a parsed name reference. A bare reference ("count", "@name",
// "FILENAME") carries only Name and Kind. A qualified reference
// ("Outer::Inner::FILENAME", "::FILENAME") additionally carries the
// namespace path segments; Rooted marks the leading "::" anchor.
type Ref struct {
	Name   string   // final segment
	Kind   Kind     // kind of the final segment
	Path   []string // namespace segments, outermost first
	Rooted bool     // reference began with "::"
}

// Qualified reports whether the reference carries an explicit path.
func (r Ref) Qualified() bool {
	return r.Rooted || len(r.Path) > 0
}

// String renders the reference back to source form.
func (r Ref) String() string {
	var b strings.Builder
	if r.Rooted {
		b.WriteString("::")
	}

	for _, seg := range r.Path {
		b.WriteString(seg)
		b.WriteString("::")
	}

	b.WriteString(r.Name)
	return b.String()
}

// ParseRef parses a name token, with optional "::" qualification, into
// a Ref. Only constants may be qualified; every path segment must be
// Constant-shaped.
func ParseRef(token string) (Ref, error) {
	if !strings.Contains(token, "::") {
		kind, err := Classify(token)
		if err != nil {
			return Ref{}, err
		}

		return Ref{Name: token, Kind: kind}, nil
	}

	rooted := strings.HasPrefix(token, "::")
	trimmed := strings.TrimPrefix(token, "::")

	segments := strings.Split(trimmed, "::")
	last := segments[len(segments)-1]

	kind, err := Classify(last)
	if err != nil {
		return Ref{}, err
	}

	if kind != Constant {
		return Ref{}, fmt.Errorf("qualified reference %q must end in a constant, got %s", token, kind)
	}

	path := segments[:len(segments)-1]
	for _, seg := range path {
		segKind, err := Classify(seg)
		if err != nil {
			return Ref{}, err
		}

		if segKind != Constant {
			return Ref{}, fmt.Errorf("path segment %q in %q is not a constant name", seg, token)
		}
	}

	return Ref{
		Name:   last,
		Kind:   Constant,
		Path:   path,
		Rooted: rooted,
	}, nil
}
