package vectorpg

import "testing"

func TestVectorLiteral(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   []float32
		want string
	}{
		{nil, "[]"},
		{[]float32{1}, "[1]"},
		{[]float32{0.5, -2, 3.25}, "[0.5,-2,3.25]"},
	}
	for _, tc := range cases {
		if got := VectorLiteral(tc.in); got != tc.want {
			t.Fatalf("got %q want %q", got, tc.want)
		}
	}
}
