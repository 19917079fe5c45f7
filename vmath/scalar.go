package vmath

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Approach returns current moved toward target by fraction k (exponential smoothing)
// k is clamped to [0, 1] so the result never overshoots
func Approach(current, target, k float64) float64 {
	k = Clamp(k, 0, 1)
	return current + (target-current)*k
}

// Lerp linearly interpolates between a and b by t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// RandRange returns a value in [lo, hi) from a unit sample u in [0, 1)
func RandRange(u, lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + u*(hi-lo)
}

// Sign returns -1 for negative values, 1 otherwise
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
