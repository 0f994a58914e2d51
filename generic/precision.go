package generic

import (
	"math"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PRECISION - Numeric kinds used for fractional ages
// =============================================================================

// Precision is the arithmetic the fractional-age algorithms need from a
// numeric type. Algorithms are written once against Precision and run in
// whichever representation the caller picks.
//
// Available precisions:
//
//	Decimal  decimal.Decimal (exact decimal, 16 digits on division)
//	Float64  float64
//	Float32  float32 (all intermediate arithmetic in 32 bits)
type Precision[T any] interface {
	// FromInt converts n exactly (for the magnitudes used by dates).
	FromInt(n int) T
	// Ratio returns num/den.
	Ratio(num, den int) T
	Add(a, b T) T
	Sub(a, b T) T
	Neg(a T) T
	MulInt(a T, n int) T
	// Truncate drops the fractional part, rounding toward zero.
	Truncate(a T) T
	// Round rounds to the nearest integer, halves away from zero.
	Round(a T) T
	Abs(a T) T
	Less(a, b T) bool
	Sign(a T) int
	// Int converts the integer part of a to int, saturating at math.MinInt
	// and math.MaxInt. NaN converts to 0.
	Int(a T) int
}

var (
	Decimal Precision[decimal.Decimal] = decimalPrecision{}
	Float64 Precision[float64]         = floatPrecision[float64]{}
	Float32 Precision[float32]         = floatPrecision[float32]{}
)

// =============================================================================
// DECIMAL
// =============================================================================

type decimalPrecision struct{}

var (
	maxIntDecimal = decimal.NewFromInt(math.MaxInt)
	minIntDecimal = decimal.NewFromInt(math.MinInt)
)

func (decimalPrecision) FromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }
func (decimalPrecision) Ratio(num, den int) decimal.Decimal {
	return decimal.NewFromInt(int64(num)).Div(decimal.NewFromInt(int64(den)))
}
func (decimalPrecision) Add(a, b decimal.Decimal) decimal.Decimal { return a.Add(b) }
func (decimalPrecision) Sub(a, b decimal.Decimal) decimal.Decimal { return a.Sub(b) }
func (decimalPrecision) Neg(a decimal.Decimal) decimal.Decimal    { return a.Neg() }
func (decimalPrecision) MulInt(a decimal.Decimal, n int) decimal.Decimal {
	return a.Mul(decimal.NewFromInt(int64(n)))
}
func (decimalPrecision) Truncate(a decimal.Decimal) decimal.Decimal { return a.Truncate(0) }
func (decimalPrecision) Round(a decimal.Decimal) decimal.Decimal    { return a.Round(0) }
func (decimalPrecision) Abs(a decimal.Decimal) decimal.Decimal      { return a.Abs() }
func (decimalPrecision) Less(a, b decimal.Decimal) bool             { return a.LessThan(b) }
func (decimalPrecision) Sign(a decimal.Decimal) int                 { return a.Sign() }

func (decimalPrecision) Int(a decimal.Decimal) int {
	switch {
	case a.GreaterThan(maxIntDecimal):
		return math.MaxInt
	case a.LessThan(minIntDecimal):
		return math.MinInt
	}
	return int(a.IntPart())
}

// =============================================================================
// BINARY FLOATS
// =============================================================================

type floatPrecision[F ~float32 | ~float64] struct{}

func (floatPrecision[F]) FromInt(n int) F        { return F(n) }
func (floatPrecision[F]) Ratio(num, den int) F   { return F(num) / F(den) }
func (floatPrecision[F]) Add(a, b F) F           { return a + b }
func (floatPrecision[F]) Sub(a, b F) F           { return a - b }
func (floatPrecision[F]) Neg(a F) F              { return -a }
func (floatPrecision[F]) MulInt(a F, n int) F    { return a * F(n) }
func (floatPrecision[F]) Truncate(a F) F         { return F(math.Trunc(float64(a))) }
func (floatPrecision[F]) Round(a F) F            { return F(math.Round(float64(a))) }
func (floatPrecision[F]) Abs(a F) F              { return F(math.Abs(float64(a))) }
func (floatPrecision[F]) Less(a, b F) bool       { return a < b }

func (floatPrecision[F]) Sign(a F) int {
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	}
	return 0
}

func (floatPrecision[F]) Int(a F) int {
	f := float64(a)
	switch {
	case math.IsNaN(f):
		return 0
	case f >= float64(math.MaxInt):
		return math.MaxInt
	case f <= float64(math.MinInt):
		return math.MinInt
	}
	return int(f)
}
