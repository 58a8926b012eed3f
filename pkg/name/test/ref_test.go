package name_test

import (
	"testing"

	"sigil/pkg/name"
)

func TestParseRefBare(t *testing.T) {
	cases := []struct {
		token string
		kind  name.Kind
	}{
		{"count", name.Local},
		{"$debug", name.Global},
		{"@name", name.InstanceAttribute},
		{"@@total", name.TypeAttribute},
		{"FILENAME", name.Constant},
	}

	for _, c := range cases {
		ref, err := name.ParseRef(c.token)
		if err != nil {
			t.Errorf("ParseRef(%q): unexpected error: %v", c.token, err)
			continue
		}

		if ref.Kind != c.kind {
			t.Errorf("ParseRef(%q): expected kind %s, got %s", c.token, c.kind, ref.Kind)
		}

		if ref.Qualified() {
			t.Errorf("ParseRef(%q): bare reference reported as qualified", c.token)
		}

		if ref.String() != c.token {
			t.Errorf("ParseRef(%q): round-trip gave %q", c.token, ref.String())
		}
	}
}

func TestParseRefQualified(t *testing.T) {
	ref, err := name.ParseRef("Outer::Inner::FILENAME")
	if err != nil {
		t.Fatalf("ParseRef: %v", err)
	}

	if !ref.Qualified() || ref.Rooted {
		t.Errorf("expected non-rooted qualified ref, got %+v", ref)
	}

	if ref.Name != "FILENAME" || len(ref.Path) != 2 || ref.Path[0] != "Outer" || ref.Path[1] != "Inner" {
		t.Errorf("unexpected parse: %+v", ref)
	}

	if ref.String() != "Outer::Inner::FILENAME" {
		t.Errorf("round-trip gave %q", ref.String())
	}
}

func TestParseRefRooted(t *testing.T) {
	ref, err := name.ParseRef("::FILENAME")
	if err != nil {
		t.Fatalf("ParseRef: %v", err)
	}

	if !ref.Rooted || !ref.Qualified() {
		t.Errorf("expected rooted ref, got %+v", ref)
	}

	if len(ref.Path) != 0 || ref.Name != "FILENAME" {
		t.Errorf("unexpected parse: %+v", ref)
	}

	if ref.String() != "::FILENAME" {
		t.Errorf("round-trip gave %q", ref.String())
	}
}

func TestParseRefRejects(t *testing.T) {
	for _, token := range []string{
		"Outer::count",   // qualified non-constant
		"Outer::@name",   // qualified sigil
		"lower::NAME",    // lowercase path segment
		"Outer::1::NAME", // invalid path segment
		"::",             // nothing to name
	} {
		if _, err := name.ParseRef(token); err == nil {
			t.Errorf("ParseRef(%q): expected error", token)
		}
	}
}
