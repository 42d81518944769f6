// Package structs generic helpers
package structs

// Ref returns pointer to a copy of v
func Ref[T any](v T) *T {
	return &v
}

// If returns a when cond is true, b otherwise
func If[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}

// Map applies f to every element of in
func Map[T, R any](in []T, f func(T) R) []R {
	out := make([]R, len(in))
	for i := range in {
		out[i] = f(in[i])
	}
	return out
}

// Deref returns value of p or def when p is nil
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
