package templates

import "testing"

func TestParseCadence(t *testing.T) {
	cases := []struct {
		in      string
		days    int
		wantErr bool
	}{
		{"daily", 1, false},
		{"Daily", 1, false},
		{"every day", 1, false},
		{"weekly", 7, false},
		{"every 3 days", 3, false},
		{"every 1 day", 1, false},
		{"  every 14 days  ", 14, false},
		{"", 0, true},
		{"every 0 days", 0, true},
		{"every -2 days", 0, true},
		{"every other tuesday", 0, true},
		{"monthly", 0, true},
	}

	for _, c := range cases {
		got, err := ParseCadence(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseCadence(%q): expected error, got %d", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCadence(%q): unexpected error %v", c.in, err)
			continue
		}
		if got != c.days {
			t.Errorf("ParseCadence(%q) = %d, want %d", c.in, got, c.days)
		}
	}
}
