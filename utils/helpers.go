package utils

import (
	"math/rand/v2"
)

// ToIndex maps grid coordinates onto a flat row-major buffer.
func ToIndex(x, y, width int) int {
	return y*width + x
}

// FromIndex is the inverse of ToIndex.
func FromIndex(i, width int) (int, int) {
	return i % width, i / width
}

func WithinBounds(x, y, width, length int) bool {
	return x >= 0 && x < width && y >= 0 && y < length
}

type Point struct {
	X, Y int
}

func (p Point) ToIndex(width int) int {
	return ToIndex(p.X, p.Y, width)
}

func Midpoint(p1, p2 Point) Point {
	return Point{(p1.X + p2.X) / 2, (p1.Y + p2.Y) / 2}
}

func Average(nums ...float32) float32 {
	var total float32 = 0.0
	var count float32 = 0.0
	for _, num := range nums {
		total += num
		count++
	}
	if count == 0 {
		return 0
	}
	return total / count
}

// Jitter shifts value by a uniform amount in [-scale, scale).
func Jitter(rng *rand.Rand, value, scale float32) float32 {
	random := rng.Float32() * scale * 2
	shift := scale - random
	return shift + value
}

func Clamp(value, lo, hi float32) float32 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
