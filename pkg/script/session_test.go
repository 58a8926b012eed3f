package script_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"sigil/pkg/binding"
	"sigil/pkg/script"
)

func runScript(t *testing.T, src string) (*script.Session, []string, []error) {
	t.Helper()

	program, parseErrs := script.Parse(src)
	if len(parseErrs) != 0 {
		t.Fatalf("parse errors: %v", parseErrs)
	}

	var out bytes.Buffer
	sess := script.NewSession(program, script.WithWriter(&out))

	var stmtErrs []error
	if err := sess.Run(func(err error) { stmtErrs = append(stmtErrs, err) }); err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if out.Len() == 0 {
		lines = nil
	}

	return sess, lines, stmtErrs
}

func TestSessionDemonstration(t *testing.T) {
	src := `
// classification by spelling
classify count
classify $debug
classify @@total
classify @name
classify MAX_SIZE

// constants and shadowing
define FILENAME = "data.txt"
class Student
define FILENAME = "HEY"
resolve FILENAME
resolve ::FILENAME
close

// receivers and frames
new Student
begin enroll
define @name = "ada"
resolve @name
end
`
	_, lines, stmtErrs := runScript(t, src)
	if len(stmtErrs) != 0 {
		t.Fatalf("statement errors: %v", stmtErrs)
	}

	expected := []string{
		"local-variable",
		"global-variable",
		"class variable",
		"instance-variable",
		"constant",
		"data.txt",
		"class Student",
		"HEY",
		"HEY",
		"data.txt",
		"close Student",
		"new Student",
		"begin enroll",
		"ada",
		"ada",
		"end enroll",
	}

	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d: %q", len(expected), len(lines), lines)
	}

	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("line %d: expected %q, got %q", i, want, lines[i])
		}
	}
}

func TestSessionSharedClassVariableList(t *testing.T) {
	src := `
class Student
close
new Student
define @@names = []
append @@names "ada"
new Student
append @@names "bob"
resolve @@names
`
	_, lines, stmtErrs := runScript(t, src)
	if len(stmtErrs) != 0 {
		t.Fatalf("statement errors: %v", stmtErrs)
	}

	if lines[len(lines)-1] != "[ada, bob]" {
		t.Errorf("expected both entries through either instance, got %q", lines[len(lines)-1])
	}
}

func TestSessionReportsAndContinues(t *testing.T) {
	// The undefined reference is reported but the run keeps going,
	// mirroring the comment-out-to-avoid-crash reading flow.
	src := `
resolve Pupil_A
define $after = 1
resolve $after
`
	_, lines, stmtErrs := runScript(t, src)

	if len(stmtErrs) != 1 {
		t.Fatalf("expected one reported error, got %v", stmtErrs)
	}

	var undef *binding.UndefinedBindingError
	if !errors.As(stmtErrs[0], &undef) {
		t.Errorf("expected UndefinedBindingError, got %T", stmtErrs[0])
	}

	want := []string{"undefined", "1", "1"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %q", len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestSessionLocalsNeedFrame(t *testing.T) {
	_, _, stmtErrs := runScript(t, "define count = 1")
	if len(stmtErrs) != 1 || !strings.Contains(stmtErrs[0].Error(), "no active frame") {
		t.Errorf("expected a no-active-frame error, got %v", stmtErrs)
	}
}

func TestSessionMaxSteps(t *testing.T) {
	program, errs := script.Parse("classify a\nclassify b\nclassify c")
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}

	var out bytes.Buffer
	sess := script.NewSession(program, script.WithWriter(&out), script.WithMaxSteps(2))

	err := sess.Run(nil)
	if !errors.Is(err, script.ErrMaxStepsExceeded) {
		t.Errorf("expected ErrMaxStepsExceeded, got %v", err)
	}
}

func TestSessionExecLine(t *testing.T) {
	var out bytes.Buffer
	sess := script.NewSession(nil, script.WithWriter(&out))

	steps := []struct {
		line string
		want string
	}{
		{"classify @@total", "class variable"},
		{"define $mode = \"demo\"", "demo"},
		{"resolve $mode", "demo"},
		{"// just a comment", ""},
	}

	for _, s := range steps {
		got, err := sess.ExecLine(s.line)
		if err != nil {
			t.Fatalf("ExecLine(%q): %v", s.line, err)
		}
		if got != s.want {
			t.Errorf("ExecLine(%q): expected %q, got %q", s.line, s.want, got)
		}
	}

	if _, err := sess.ExecLine("classify 9lives"); err == nil {
		t.Errorf("expected classification error")
	}
}

func TestSessionRedefinitionWarningSurfaces(t *testing.T) {
	sess, _, stmtErrs := runScript(t, "define MAX = 1\ndefine MAX = 2")
	if len(stmtErrs) != 0 {
		t.Fatalf("redefinition must not be an error: %v", stmtErrs)
	}

	warnings := sess.Resolver().TakeWarnings()
	if len(warnings) != 1 || warnings[0].Name != "MAX" {
		t.Errorf("expected one MAX warning, got %v", warnings)
	}
}

func TestSessionWithResolver(t *testing.T) {
	res := binding.NewResolver()
	res.Root().Child("Student", binding.KindClass)

	var out bytes.Buffer
	sess := script.NewSession(nil, script.WithResolver(res), script.WithWriter(&out))

	if _, err := sess.ExecLine("new Student"); err != nil {
		t.Fatalf("pre-populated class should be visible: %v", err)
	}

	if sess.Context().Receiver() == nil {
		t.Errorf("new should install the receiver")
	}
}
