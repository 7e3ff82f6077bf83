package duration

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		unit     string
		want     int64
	}{
		{name: "empty quantity defaults to one hour", quantity: "", unit: "h", want: 3600},
		{name: "non numeric quantity", quantity: "abc", unit: "h", want: 3600},
		{name: "zero quantity", quantity: "0", unit: "h", want: 3600},
		{name: "days", quantity: "5", unit: "d", want: 5 * 86400},
		{name: "unknown unit falls back to hours", quantity: "3", unit: "x", want: 3 * 3600},
		{name: "empty unit falls back to hours", quantity: "2", unit: "", want: 2 * 3600},
		{name: "seconds", quantity: "45", unit: "s", want: 45},
		{name: "minutes", quantity: "90", unit: "m", want: 90 * 60},
		{name: "long unit names", quantity: "2", unit: "minutes", want: 120},
		{name: "whitespace tolerated", quantity: " 7 ", unit: " D ", want: 7 * 86400},
		{name: "negative passes through", quantity: "-2", unit: "s", want: -2},
		{name: "everything empty", quantity: "", unit: "", want: 3600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.quantity, tt.unit); got != tt.want {
				t.Errorf("Parse(%q, %q) = %d, want %d", tt.quantity, tt.unit, got, tt.want)
			}
		})
	}
}
