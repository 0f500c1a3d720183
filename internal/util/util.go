package util

// Pointer simply returns a pointer to the supplied value
func Pointer[T any](v T) *T {
	return &v
}

// Clamp limits v to the inclusive range [lo, hi]
func Clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
