package sequence

import "testing"

func TestParseIndex(t *testing.T) {
	tests := []struct {
		digits    string
		want      Index
		overflows bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"007", 7, false},
		{"1071", 1071, false},
		{"4294967295", 4294967295, false},
		{"4294967296", 0, true},
		{"99999999999", 0, true},
		{"5186601659", 0, true},
	}
	for _, tt := range tests {
		got, overflowed := parseIndex(tt.digits)
		if overflowed != tt.overflows {
			t.Errorf("parseIndex(%q) overflowed = %v, want %v", tt.digits, overflowed, tt.overflows)
			continue
		}
		if !overflowed && got != tt.want {
			t.Errorf("parseIndex(%q) = %d, want %d", tt.digits, got, tt.want)
		}
	}
}

func TestIsDigit(t *testing.T) {
	for b := byte(0); b < 255; b++ {
		want := b >= '0' && b <= '9'
		if isDigit(b) != want {
			t.Errorf("isDigit(%q) = %v, want %v", b, isDigit(b), want)
		}
	}
}
