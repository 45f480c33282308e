package imf

import "github.com/sandflow/ffmpeg-imf/internal/ratio"

// Rational is an ordered (numerator, denominator) pair of signed
// integers representing a rate in Hz. Comparisons cross-multiply
// exactly; they never use floating-point equality.
type Rational = ratio.Rational

// ContentTime is a position on a composition timeline, expressed as a
// Rational number of seconds.
type ContentTime = ratio.ContentTime

// CompareContentTime compares two ContentTime values exactly.
func CompareContentTime(a, b ContentTime) int {
	return ratio.CmpContentTime(a, b)
}

// CompareRational compares two Rational values exactly.
func CompareRational(a, b Rational) int {
	return ratio.Cmp(a, b)
}

// FromEditUnits converts a count of edit units at editRate into a
// ContentTime, i.e. units / editRate seconds.
func FromEditUnits(units uint64, editRate Rational) ContentTime {
	return ratio.FromEditUnits(int64(units), editRate)
}

// ZeroContentTime is the start of the composition timeline.
func ZeroContentTime() ContentTime {
	return ratio.Zero()
}
