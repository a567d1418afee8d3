package normalize

import (
	"math"
	"testing"
)

func TestCoerceValue(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want float64
	}{
		{"currency and commas", "$1,200.50", 1200.5},
		{"plain number string", "42", 42},
		{"padded", "  7.25 ", 7.25},
		{"na", "na", 0},
		{"N/A", "N/A", 0},
		{"empty", "", 0},
		{"dash", "-", 0},
		{"whitespace only", "   ", 0},
		{"garbage", "about five", 0},
		{"accounting negative", "(1,200)", 1200},
		{"negative string", "-350", 350},
		{"nan string", "NaN", 0},
		{"inf string", "+Inf", 0},
		{"float passthrough", 1500.75, 1500.75},
		{"negative float", -300.0, 300},
		{"int", 12, 12},
		{"nil", nil, 0},
		{"bool", true, 0},
		{"object", map[string]interface{}{"amount": 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoerceValue(tt.in)
			if got != tt.want {
				t.Errorf("CoerceValue(%#v) = %v, want %v", tt.in, got, tt.want)
			}
			if got < 0 || math.IsNaN(got) || math.IsInf(got, 0) {
				t.Errorf("CoerceValue(%#v) = %v is not finite and non-negative", tt.in, got)
			}
		})
	}
}

func TestCoerceValue_NegativeZero(t *testing.T) {
	if got := CoerceValue(math.Copysign(0, -1)); math.Signbit(got) {
		t.Error("negative zero should be normalized to +0")
	}
}
