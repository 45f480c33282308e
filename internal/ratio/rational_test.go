package ratio

import "testing"

func TestCmp(t *testing.T) {
	cases := []struct {
		a, b Rational
		want int
	}{
		{New(24000, 1001), New(24, 1), -1},
		{New(1, 1), New(1, 1), 0},
		{New(3, 2), New(1, 1), 1},
		{New(-1, 2), New(1, 2), -1},
	}
	for _, c := range cases {
		if got := Cmp(c.a, c.b); sign(got) != sign(c.want) {
			t.Errorf("Cmp(%v, %v) = %d, want sign %d", c.a, c.b, got, c.want)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func TestReduced(t *testing.T) {
	got := New(48, 2).Reduced()
	if got != New(24, 1) {
		t.Errorf("Reduced() = %v, want 24/1", got)
	}
}

func TestFromEditUnits(t *testing.T) {
	// 72 units at 24/1 Hz is 3 seconds.
	ct := FromEditUnits(72, New(24, 1))
	if ct.Rational != New(3, 1) {
		t.Errorf("FromEditUnits = %v, want 3/1", ct.Rational)
	}
}

func TestAddOverflowSafeCmp(t *testing.T) {
	big1 := New(1<<62, 1)
	big2 := New((1<<62)+1, 1)
	if Cmp(big1, big2) >= 0 {
		t.Errorf("expected big1 < big2")
	}
}
