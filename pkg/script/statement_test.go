package script_test

import (
	"strings"
	"testing"

	"sigil/pkg/script"
)

func TestParseLineForms(t *testing.T) {
	cases := []struct {
		line string
		op   script.Op
		name string
		arg  string
	}{
		{"classify @@total", script.OpClassify, "@@total", ""},
		{`define FILENAME = "data.txt"`, script.OpDefine, "FILENAME", `"data.txt"`},
		{"define count=10", script.OpDefine, "count", "10"},
		{"resolve ::FILENAME", script.OpResolve, "::FILENAME", ""},
		{`append @@names "ada"`, script.OpAppend, "@@names", `"ada"`},
		{"begin enroll", script.OpBegin, "enroll", ""},
		{"end", script.OpEnd, "", ""},
		{"module Outer", script.OpModule, "Outer", ""},
		{"class Student", script.OpClass, "Student", ""},
		{"close", script.OpClose, "", ""},
		{"new Student", script.OpNew, "Student", ""},
		{"new Outer::Student", script.OpNew, "Outer::Student", ""},
		{"detach", script.OpDetach, "", ""},
		{"  resolve count  // trailing comment", script.OpResolve, "count", ""},
	}

	for _, c := range cases {
		st, ok, err := script.ParseLine(c.line, 1)
		if err != nil {
			t.Errorf("ParseLine(%q): %v", c.line, err)
			continue
		}
		if !ok {
			t.Errorf("ParseLine(%q): expected a statement", c.line)
			continue
		}

		if st.Op != c.op || st.Name != c.name || st.Arg != c.arg {
			t.Errorf("ParseLine(%q): got op=%s name=%q arg=%q", c.line, st.Op, st.Name, st.Arg)
		}
	}
}

func TestParseLineSkipsBlanksAndComments(t *testing.T) {
	for _, line := range []string{"", "   ", "// a comment", "\t// indented"} {
		if _, ok, err := script.ParseLine(line, 1); ok || err != nil {
			t.Errorf("ParseLine(%q): expected skip, got ok=%v err=%v", line, ok, err)
		}
	}
}

func TestParseLineKeepsSlashesInStrings(t *testing.T) {
	st, ok, err := script.ParseLine(`define url = "http://example"`, 1)
	if err != nil || !ok {
		t.Fatalf("ParseLine: ok=%v err=%v", ok, err)
	}

	if st.Arg != `"http://example"` {
		t.Errorf("comment stripping ate a quoted literal: %q", st.Arg)
	}
}

func TestParseLineErrors(t *testing.T) {
	for _, line := range []string{"speak now", "define = 10", "begin Enroll", "module lower"} {
		if _, _, err := script.ParseLine(line, 3); err == nil {
			t.Errorf("ParseLine(%q): expected error", line)
		} else if !strings.Contains(err.Error(), "line 3") {
			t.Errorf("ParseLine(%q): error misses the line number: %v", line, err)
		}
	}
}

func TestParseBalancedBlocks(t *testing.T) {
	src := `
module Outer
class Student
define FILENAME = "HEY"
close
close
begin setup
end
`
	program, errs := script.Parse(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	if len(program) != 7 {
		t.Errorf("expected 7 statements, got %d", len(program))
	}
}

func TestParseUnbalancedBlocks(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"end", "end without matching begin"},
		{"close", "close without matching module or class"},
		{"module Outer", "unclosed module block"},
		{"begin setup\nclass Student\nend", "end without matching begin"},
	}

	for _, c := range cases {
		_, errs := script.Parse(c.src)
		found := false
		for _, err := range errs {
			if strings.Contains(err.Error(), c.want) {
				found = true
			}
		}

		if !found {
			t.Errorf("Parse(%q): expected error containing %q, got %v", c.src, c.want, errs)
		}
	}
}

func TestParseCollectsAllErrors(t *testing.T) {
	_, errs := script.Parse("speak\nresolve count\nalso bad")
	if len(errs) != 2 {
		t.Errorf("expected 2 collected errors, got %d: %v", len(errs), errs)
	}
}
