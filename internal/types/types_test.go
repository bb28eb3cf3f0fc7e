package types

import "testing"

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{598, "$5.98"},
		{199999, "$1999.99"},
		{-300, "-$3.00"},
	}
	for _, c := range cases {
		if got := FormatPrice(c.cents); got != c.want {
			t.Errorf("FormatPrice(%d) = %s, want %s", c.cents, got, c.want)
		}
	}
}
