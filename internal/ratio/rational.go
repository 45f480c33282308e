// Package ratio implements exact rational arithmetic for edit rates and
// composition timestamps. Comparisons never fall back to floating point:
// every Cmp cross-multiplies using arbitrary-precision integers so that
// large edit unit counts never silently lose precision.
package ratio

import "math/big"

// Rational is a signed numerator/denominator pair. It is used both for
// edit rates (Hz) and, embedded in ContentTime, for composition-relative
// seconds.
type Rational struct {
	Num int64
	Den int64
}

// New builds a Rational. It does not reduce or validate the denominator;
// callers that read a Rational off untrusted input should call Valid.
func New(num, den int64) Rational {
	return Rational{Num: num, Den: den}
}

// Valid reports whether the Rational can be used as a rate or divisor.
func (r Rational) Valid() bool {
	return r.Den != 0
}

// Float64 returns the rational as a float64, useful only for logging.
func (r Rational) Float64() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// Inv returns the multiplicative inverse.
func (r Rational) Inv() Rational {
	return Rational{Num: r.Den, Den: r.Num}
}

// Reduced returns r divided by the GCD of its terms, with a positive
// denominator.
func (r Rational) Reduced() Rational {
	if r.Num == 0 {
		return Rational{Num: 0, Den: 1}
	}
	num, den := r.Num, r.Den
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs64(num), abs64(den))
	if g == 0 {
		g = 1
	}
	return Rational{Num: num / g, Den: den / g}
}

// Add returns r + o, reduced.
func (r Rational) Add(o Rational) Rational {
	return Rational{
		Num: r.Num*o.Den + o.Num*r.Den,
		Den: r.Den * o.Den,
	}.Reduced()
}

// Sub returns r - o, reduced.
func (r Rational) Sub(o Rational) Rational {
	return Rational{
		Num: r.Num*o.Den - o.Num*r.Den,
		Den: r.Den * o.Den,
	}.Reduced()
}

// Mul returns r * o, reduced.
func (r Rational) Mul(o Rational) Rational {
	return Rational{
		Num: r.Num * o.Num,
		Den: r.Den * o.Den,
	}.Reduced()
}

// MulInt returns r * n, reduced.
func (r Rational) MulInt(n int64) Rational {
	return Rational{Num: r.Num * n, Den: r.Den}.Reduced()
}

// Cmp compares a and b exactly, cross-multiplying with big.Int so that
// products which would overflow int64 are still compared correctly.
// It returns -1, 0 or 1.
func Cmp(a, b Rational) int {
	lhs := new(big.Int).Mul(big.NewInt(a.Num), big.NewInt(b.Den))
	rhs := new(big.Int).Mul(big.NewInt(b.Num), big.NewInt(a.Den))
	c := lhs.Cmp(rhs)
	if (a.Den < 0) != (b.Den < 0) {
		c = -c
	}
	return c
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// ContentTime is a position on a composition timeline, expressed as a
// Rational number of seconds. It is kept as a distinct type from
// Rational (rather than an alias) so that edit rates and composition
// times are never accidentally interchanged.
type ContentTime struct {
	Rational
}

// Zero is the start of the composition timeline.
func Zero() ContentTime {
	return ContentTime{Rational{Num: 0, Den: 1}}
}

// FromEditUnits converts a count of edit units at editRate into a
// ContentTime, i.e. units/editRate seconds.
func FromEditUnits(units int64, editRate Rational) ContentTime {
	return ContentTime{Rational{Num: units * editRate.Den, Den: editRate.Num}.Reduced()}
}

func (t ContentTime) Add(d Rational) ContentTime {
	return ContentTime{t.Rational.Add(d)}
}

func (t ContentTime) Sub(d Rational) ContentTime {
	return ContentTime{t.Rational.Sub(d)}
}

// CmpContentTime compares two ContentTime values exactly.
func CmpContentTime(a, b ContentTime) int {
	return Cmp(a.Rational, b.Rational)
}
