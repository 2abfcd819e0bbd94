package fpsmath

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// WrapAngle normalizes an angle into (-π, π].
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// LerpAngle interpolates between two angles along the shortest arc. Used for
// yaw smoothing of remote players so a wrap from +π to -π doesn't spin the
// character the long way around.
func LerpAngle(a, b, t float64) float64 {
	return WrapAngle(a + WrapAngle(b-a)*t)
}
