package core

import "math"

// Interval is a closed scalar range [Min, Max].
// The empty interval (+Inf, -Inf) is a valid value representing no range.
type Interval struct {
	Min, Max float64
}

// NewInterval creates an interval from its bounds
func NewInterval(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// NewIntervalAB creates an interval from two bounds in any order
func NewIntervalAB(a, b float64) Interval {
	if a <= b {
		return Interval{Min: a, Max: b}
	}
	return Interval{Min: b, Max: a}
}

// EmptyInterval contains nothing
func EmptyInterval() Interval {
	return Interval{Min: math.Inf(1), Max: math.Inf(-1)}
}

// UniverseInterval contains everything
func UniverseInterval() Interval {
	return Interval{Min: math.Inf(-1), Max: math.Inf(1)}
}

// Size returns Max - Min (negative for the empty interval)
func (i Interval) Size() float64 {
	return i.Max - i.Min
}

// IsEmpty reports whether the interval contains no values
func (i Interval) IsEmpty() bool {
	return !(i.Min <= i.Max)
}

// Contains reports whether min <= x <= max
func (i Interval) Contains(x float64) bool {
	return i.Min <= x && x <= i.Max
}

// Surrounds reports whether min < x < max
func (i Interval) Surrounds(x float64) bool {
	return i.Min < x && x < i.Max
}

// Clamp limits x to the interval
func (i Interval) Clamp(x float64) float64 {
	if x < i.Min {
		return i.Min
	}
	if x > i.Max {
		return i.Max
	}
	return x
}

// Expand grows the interval by delta, half on each side
func (i Interval) Expand(delta float64) Interval {
	padding := delta / 2
	return Interval{Min: i.Min - padding, Max: i.Max + padding}
}

// Union returns the smallest interval covering both
func (i Interval) Union(other Interval) Interval {
	return Interval{Min: math.Min(i.Min, other.Min), Max: math.Max(i.Max, other.Max)}
}

// Intersection returns the overlap of both intervals, or the empty interval
func (i Interval) Intersection(other Interval) Interval {
	lo := math.Max(i.Min, other.Min)
	hi := math.Min(i.Max, other.Max)
	if lo <= hi {
		return Interval{Min: lo, Max: hi}
	}
	return EmptyInterval()
}

// Offset shifts both bounds by displacement
func (i Interval) Offset(displacement float64) Interval {
	return Interval{Min: i.Min + displacement, Max: i.Max + displacement}
}
