package script

import (
	"fmt"
	"regexp"
	"strings"

	"sigil/pkg/script/stack"
)

type Op string

const (
	OpClassify Op = "classify" // classify <token>
	OpDefine   Op = "define"   // define <name> = <literal>
	OpResolve  Op = "resolve"  // resolve <name|path>
	OpAppend   Op = "append"   // append <name> <literal>
	OpBegin    Op = "begin"    // begin <callable>
	OpEnd      Op = "end"      // end
	OpModule   Op = "module"   // module <Name>
	OpClass    Op = "class"    // class <Name>
	OpClose    Op = "close"    // close
	OpNew      Op = "new"      // new <ClassName>
	OpDetach   Op = "detach"   // detach
)

// Statement is one parsed demonstration statement.
type Statement struct {
	Op   Op
	Name string // token, reference, callable, or namespace name
	Arg  string // literal text for define/append
	Line int    // 1-based source line
}

// String renders the statement back to source form.
func (s Statement) String() string {
	switch s.Op {
	case OpDefine:
		return fmt.Sprintf("define %s = %s", s.Name, s.Arg)
	case OpAppend:
		return fmt.Sprintf("append %s %s", s.Name, s.Arg)
	case OpEnd, OpClose, OpDetach:
		return string(s.Op)
	default:
		return fmt.Sprintf("%s %s", s.Op, s.Name)
	}
}

type statementRegex struct {
	Pattern *regexp.Regexp
	Raw     string
}

// Statement regex patterns
var statementRegexes = map[Op]statementRegex{
	OpClassify: {regexp.MustCompile(`^classify\s+(\S+)$`), `^classify\s+(\S+)$`},
	OpDefine:   {regexp.MustCompile(`^define\s+(\S+)\s*=\s*(.+)$`), `^define\s+(\S+)\s*=\s*(.+)$`},
	OpResolve:  {regexp.MustCompile(`^resolve\s+(\S+)$`), `^resolve\s+(\S+)$`},
	OpAppend:   {regexp.MustCompile(`^append\s+(\S+)\s+(.+)$`), `^append\s+(\S+)\s+(.+)$`},
	OpBegin:    {regexp.MustCompile(`^begin\s+([a-z_][a-zA-Z0-9_]*)$`), `^begin\s+([a-z_][a-zA-Z0-9_]*)$`},
	OpEnd:      {regexp.MustCompile(`^end$`), `^end$`},
	OpModule:   {regexp.MustCompile(`^module\s+([A-Z][a-zA-Z0-9_]*)$`), `^module\s+([A-Z][a-zA-Z0-9_]*)$`},
	OpClass:    {regexp.MustCompile(`^class\s+([A-Z][a-zA-Z0-9_]*)$`), `^class\s+([A-Z][a-zA-Z0-9_]*)$`},
	OpClose:    {regexp.MustCompile(`^close$`), `^close$`},
	OpNew:      {regexp.MustCompile(`^new\s+((?:::)?[A-Z][a-zA-Z0-9_]*(?:::[A-Z][a-zA-Z0-9_]*)*)$`), `^new\s+((?:::)?[A-Z][a-zA-Z0-9_]*(?:::[A-Z][a-zA-Z0-9_]*)*)$`},
	OpDetach:   {regexp.MustCompile(`^detach$`), `^detach$`},
}

// Statement precedence order for matching (keywords are disjoint, the
// order only fixes the error message for near-misses)
var statementPrecedenceOrder = []Op{
	OpClassify, OpDefine, OpResolve, OpAppend, OpBegin, OpEnd,
	OpModule, OpClass, OpClose, OpNew, OpDetach,
}

// stripComment removes a trailing // comment, ignoring any // inside
// a double-quoted literal.
func stripComment(line string) string {
	inStr := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inStr = !inStr
		case '/':
			if !inStr && i+1 < len(line) && line[i+1] == '/' {
				return line[:i]
			}
		}
	}

	return line
}

// ParseLine parses a single source line into a Statement. Blank lines
// and comment-only lines return ok == false with no error.
func ParseLine(line string, lineNo int) (Statement, bool, error) {
	trimmed := strings.TrimSpace(stripComment(line))
	if trimmed == "" {
		return Statement{}, false, nil
	}

	for _, op := range statementPrecedenceOrder {
		regex, ok := statementRegexes[op]
		if !ok {
			continue
		}

		m := regex.Pattern.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}

		st := Statement{Op: op, Line: lineNo}
		if len(m) > 1 {
			st.Name = m[1]
		}
		if len(m) > 2 {
			st.Arg = strings.TrimSpace(m[2])
		}

		return st, true, nil
	}

	keyword := strings.Fields(trimmed)[0]
	if _, ok := statementRegexes[Op(keyword)]; ok {
		return Statement{}, false, fmt.Errorf("line %d: malformed %s statement: %q", lineNo, keyword, trimmed)
	}

	return Statement{}, false, fmt.Errorf("line %d: unknown statement: %q", lineNo, trimmed)
}

// Parse parses a whole demonstration script. All line errors are
// collected rather than stopping at the first, and begin/end and
// module|class/close nesting is checked with a block stack.
func Parse(src string) ([]Statement, []error) {
	var (
		program []Statement
		errs    []error
	)

	blocks := stack.NewStack()

	for i, line := range strings.Split(src, "\n") {
		lineNo := i + 1

		st, ok, err := ParseLine(line, lineNo)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !ok {
			continue
		}

		switch st.Op {
		case OpBegin:
			blocks.Push(stack.Item{Sym: "begin", Line: lineNo})
		case OpEnd:
			if top, ok := blocks.Peek(); !ok || top.Sym != "begin" {
				errs = append(errs, fmt.Errorf("line %d: end without matching begin", lineNo))
				continue
			}
			blocks.Pop()
		case OpModule, OpClass:
			blocks.Push(stack.Item{Sym: string(st.Op), Line: lineNo})
		case OpClose:
			if top, ok := blocks.Peek(); !ok || (top.Sym != "module" && top.Sym != "class") {
				errs = append(errs, fmt.Errorf("line %d: close without matching module or class", lineNo))
				continue
			}
			blocks.Pop()
		}

		program = append(program, st)
	}

	for _, open := range blocks.Array() {
		errs = append(errs, fmt.Errorf("line %d: unclosed %s block", open.Line, open.Sym))
	}

	return program, errs
}
