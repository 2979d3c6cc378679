package token

import "testing"

func TestLocationUnknown(t *testing.T) {
	cases := []struct {
		loc  Location
		want bool
	}{
		{Location{}, true},
		{Location{Row: 1, Col: 0, Offset: 0}, true},
		{Location{Row: 0, Col: 1, Offset: 0}, true},
		{Location{Row: 1, Col: 1, Offset: 0}, false},
	}
	for _, c := range cases {
		if got := c.loc.Unknown(); got != c.want {
			t.Errorf("Location(%+v).Unknown() = %t, want %t", c.loc, got, c.want)
		}
	}
}

func TestLocationString(t *testing.T) {
	if got, want := (Location{Row: 3, Col: 7, Offset: 20}).String(), "3:7"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := (Location{}).String(), "?:?"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
