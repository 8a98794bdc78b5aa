package colorutil

import "testing"

func TestValidate(t *testing.T) {
	cases := map[string]bool{
		"#fff":      true,
		"#ffffff":   true,
		"#ffffff00": true,
		"#ff":       false,
		"#gggggg":   false,
		"":          false,
		"red":       true,
		"systemred": true,
	}
	for in, want := range cases {
		if got := Validate(in); got != want {
			t.Errorf("Validate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLighten(t *testing.T) {
	if got := Lighten("#000000", 0.5); got != "#7f7f7f" {
		t.Errorf("Lighten(#000000, 0.5) = %s, want #7f7f7f", got)
	}
	if got := Lighten("#ffffff", 0.5); got != "#ffffff" {
		t.Errorf("Lighten(#ffffff, 0.5) = %s, want #ffffff", got)
	}
	if got := Lighten("#fff", 0.0); got != "#ffffff" {
		t.Errorf("Lighten(#fff, 0.0) = %s, want #ffffff", got)
	}
	if got := Lighten("red", 0.5); got != "red" {
		t.Errorf("Lighten(red, 0.5) = %s, want red (non-hex passthrough)", got)
	}
}

func TestLightenMemoized(t *testing.T) {
	a := Lighten("#102030", 0.3)
	b := Lighten("#102030", 0.3)
	if a != b {
		t.Errorf("expected memoized result to be stable, got %s then %s", a, b)
	}
}
