// Package rounding holds the one-decimal rounding shared by the derived
// projection values and the rendered numbers.
package rounding

import (
	"math"
	"math/big"
)

// Tenths rounds v to one decimal place using the exact binary value of v.
// Exact ties round away from zero, so 0.25 gives 0.3 while 1.15, stored as
// 1.149999..., gives 1.1. The result is the float64 nearest to n/10.
// Infinities, NaN and values too large to carry a fraction are returned
// unchanged.
func Tenths(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= 1<<52 {
		return v
	}
	neg := math.Signbit(v)

	// 128 bits keeps v*10+0.5 exact for every |v| below 2^52.
	x := new(big.Float).SetPrec(128).SetFloat64(math.Abs(v))
	x.Mul(x, big.NewFloat(10))
	x.Add(x, big.NewFloat(0.5))
	n, _ := x.Int(nil) // truncates, which is floor for x >= 0

	f, _ := new(big.Float).SetInt(n).Float64()
	out := f / 10
	if neg {
		out = -out
	}
	return out
}
