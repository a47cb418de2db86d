// Package vector holds the small amount of dense-vector arithmetic shared by
// the feature blender and the similarity index.
package vector

import "math"

// Normalize normalizes a vector to unit length.
// Returns a new vector. If the input is a zero vector, returns a zero vector.
func Normalize(v []float32) []float32 {
	result := make([]float32, len(v))
	norm := Norm(v)
	if norm == 0 {
		return result
	}
	for i, val := range v {
		result[i] = float32(float64(val) / norm)
	}
	return result
}

// Scale multiplies every element of v by w in place.
func Scale(v []float32, w float64) {
	for i := range v {
		v[i] = float32(float64(v[i]) * w)
	}
}

// Dot calculates the dot product of two vectors, accumulating in float64.
// Vectors of different length are compared over the shorter one.
func Dot(a, b []float32) float64 {
	n := min(len(a), len(b))
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// Norm returns the L2 norm of v.
func Norm(v []float32) float64 {
	return math.Sqrt(Dot(v, v))
}

// IsZero reports whether every element of v is zero.
func IsZero(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
