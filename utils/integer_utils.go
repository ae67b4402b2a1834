package utils

import (
	"golang.org/x/exp/constraints"
)

// AbsDiff provides a way of taking the absolute difference between two integers
func AbsDiff[T constraints.Integer](x T, y T) T {
	if x >= y {
		return x - y
	} else {
		return y - x
	}
}
