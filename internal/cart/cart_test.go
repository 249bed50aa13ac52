package cart

import "testing"

func TestSubtotal(t *testing.T) {
	cases := []struct {
		name  string
		lines []Line
		want  int64
	}{
		{"empty", nil, 0},
		{"single", []Line{{Quantity: 2, UnitPrice: 50000}}, 100000},
		{"multiple", []Line{
			{Quantity: 1, UnitPrice: 75000},
			{Quantity: 3, UnitPrice: 10000},
		}, 105000},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Subtotal(c.lines); got != c.want {
				t.Errorf("Subtotal = %d, want %d", got, c.want)
			}
		})
	}
}
