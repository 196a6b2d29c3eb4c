package util

import (
	"github.com/fogleman/ease"
)

// Memoizer caches look-up tables by length.
type Memoizer map[int][]float64

// GenerateLut builds a symmetric look-up table that rises along an in-out quad
// curve from both ends to 1.0 in the middle.
func GenerateLut(length int) []float64 {
	lut := make([]float64, length)
	half := float64(length+1) / 2
	for i, j := 0, length-1; i <= j; i, j = i+1, j-1 {
		value := ease.InOutQuad(float64(i+1) / half)
		lut[i] = value
		lut[j] = value
	}
	return lut
}

// GenerateLutMemoized is GenerateLut backed by a Memoizer. Callers must not
// modify the returned table.
func GenerateLutMemoized(length int, m Memoizer) []float64 {
	if lut, ok := m[length]; ok {
		return lut
	}
	lut := GenerateLut(length)
	m[length] = lut
	return lut
}
