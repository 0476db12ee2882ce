package dec128

import (
	"errors"
	"fmt"
	"math"
)

// Int128 represents a signed 128-bit integer in two's complement.
// The zero value is ready to use and represents the number zero.
//
// Int128 is a value type: operations return new values and never mutate
// their operands. Addition, subtraction, and multiplication wrap on
// overflow, like the fixed-width builtin integer types.
type Int128 struct {
	lo uint64
	hi uint64
}

var (
	errDivisionByZero = errors.New("division by zero")
	errInvalidFormat  = errors.New("invalid number format")

	maxInt128 = Int128{lo: math.MaxUint64, hi: 0x7FFF_FFFF_FFFF_FFFF}
	minInt128 = Int128{hi: 0x8000_0000_0000_0000}

	ten = Int128{lo: 10}
)

const (
	maxInt128Digits    = 39
	maxInt128Text      = "170141183460469231731687303715884105727"
	minInt128Magnitude = "170141183460469231731687303715884105728"
)

// MaxInt128 returns the largest representable value, 2^127 - 1.
func MaxInt128() Int128 {
	return maxInt128
}

// MinInt128 returns the smallest representable value, -2^127.
func MinInt128() Int128 {
	return minInt128
}

// Int128FromInt64 converts an int64 to a (sign-extended) Int128.
func Int128FromInt64(v int64) Int128 {
	return Int128{lo: uint64(v), hi: uint64(v >> 63)}
}

// Int128FromUint64 converts a uint64 to a (zero-extended) Int128.
func Int128FromUint64(v uint64) Int128 {
	return Int128{lo: v}
}

// Int128FromWords assembles an Int128 from its raw low and high words.
func Int128FromWords(lo, hi uint64) Int128 {
	return Int128{lo: lo, hi: hi}
}

// Int128FromFloat64 converts a float64 to an Int128, truncating toward zero.
// NaN and infinities convert to zero. Values beyond the representable range
// clamp to [MinInt128] or [MaxInt128].
func Int128FromFloat64(f float64) Int128 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Int128{}
	}
	f = math.Trunc(f)
	switch {
	case f >= 0x1p127:
		return maxInt128
	case f <= -0x1p127:
		return minInt128
	}
	neg := f < 0
	if neg {
		f = -f
	}
	if f < 1 {
		return Int128{}
	}
	b := math.Float64bits(f)
	exp := int(b>>52&0x7FF) - 1023
	mant := b&(1<<52-1) | 1<<52
	var x Int128
	switch sh := exp - 52; {
	case sh < 0:
		x = Int128{lo: mant >> uint(-sh)}
	case sh < 64:
		x = Int128{lo: mant << uint(sh), hi: mant >> uint(64-sh)}
	default:
		x = Int128{hi: mant << uint(sh-64)}
	}
	if neg {
		x = x.Neg()
	}
	return x
}

// Int128FromFloat32 converts a float32 to an Int128, truncating toward zero.
// NaN and infinities convert to zero, out-of-range values clamp.
func Int128FromFloat32(f float32) Int128 {
	return Int128FromFloat64(float64(f))
}

// Int128FromDecimal converts a decimal to an Int128, truncating any
// fractional digits toward zero.
func Int128FromDecimal(d Decimal) Int128 {
	if d.IsZero() {
		return Int128{}
	}
	m := d.mant()
	if d.scale > 0 {
		m, _ = udivmod(m, pow10Int128(int(d.scale)))
	}
	if d.neg {
		m = m.Neg()
	}
	return m
}

// ParseInt128 converts a string to an Int128, accepting an optional leading
// sign followed by decimal digits. Values beyond the 128-bit range and
// malformed input return an error.
func ParseInt128(s string) (Int128, error) {
	if s == "" {
		return Int128{}, fmt.Errorf("empty input: %w", errInvalidFormat)
	}
	pos := 0
	neg := false
	switch s[0] {
	case '-':
		neg = true
		pos = 1
	case '+':
		pos = 1
	}
	if pos == len(s) {
		return Int128{}, fmt.Errorf("no digits: %w", errInvalidFormat)
	}
	digits := s[pos:]
	if len(digits) > maxInt128Digits {
		return Int128{}, fmt.Errorf("%q out of range: %w", s, errInvalidFormat)
	}
	if len(digits) == maxInt128Digits {
		// the limit has exactly 39 digits, so at this length a
		// lexicographic comparison decides the boundary
		limit := maxInt128Text
		if neg {
			limit = minInt128Magnitude
		}
		if digits > limit {
			return Int128{}, fmt.Errorf("%q out of range: %w", s, errInvalidFormat)
		}
	}
	var x Int128
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c < '0' || c > '9' {
			return Int128{}, fmt.Errorf("invalid character %q: %w", c, errInvalidFormat)
		}
		x = x.Mul(ten).Add(Int128{lo: uint64(c - '0')})
	}
	if neg {
		x = x.Neg()
	}
	return x, nil
}

// udivmod divides two values interpreted as unsigned 128-bit magnitudes.
func udivmod(x, y Int128) (q, r Int128) {
	qlo, qhi, rlo, rhi := divmod128(x.lo, x.hi, y.lo, y.hi)
	return Int128{lo: qlo, hi: qhi}, Int128{lo: rlo, hi: rhi}
}

// ucmp compares two values interpreted as unsigned 128-bit magnitudes.
func ucmp(x, y Int128) int {
	return cmp128(x.lo, x.hi, y.lo, y.hi)
}

// Add returns the sum x + y, wrapping on overflow.
func (x Int128) Add(y Int128) Int128 {
	lo, hi := add128(x.lo, x.hi, y.lo, y.hi)
	return Int128{lo: lo, hi: hi}
}

// Sub returns the difference x - y, wrapping on overflow.
func (x Int128) Sub(y Int128) Int128 {
	lo, hi := sub128(x.lo, x.hi, y.lo, y.hi)
	return Int128{lo: lo, hi: hi}
}

// Mul returns the product x * y, keeping the low 128 bits.
func (x Int128) Mul(y Int128) Int128 {
	lo, hi := mul128(x.lo, x.hi, y.lo, y.hi)
	return Int128{lo: lo, hi: hi}
}

// Neg returns the negation -x. Negating [MinInt128] wraps to itself.
func (x Int128) Neg() Int128 {
	lo, hi := sub128(0, 0, x.lo, x.hi)
	return Int128{lo: lo, hi: hi}
}

// Abs returns the absolute value of x. The absolute value of [MinInt128]
// wraps to itself.
func (x Int128) Abs() Int128 {
	if x.IsNeg() {
		return x.Neg()
	}
	return x
}

// Quo returns the quotient x / y truncated toward zero.
func (x Int128) Quo(y Int128) (Int128, error) {
	if y.IsZero() {
		return Int128{}, fmt.Errorf("%v / %v failed: %w", x, y, errDivisionByZero)
	}
	q, _ := quoRem128(x, y)
	return q, nil
}

// Rem returns the remainder x - (x / y) * y. The result takes the sign of
// the dividend.
func (x Int128) Rem(y Int128) (Int128, error) {
	if y.IsZero() {
		return Int128{}, fmt.Errorf("%v %% %v failed: %w", x, y, errDivisionByZero)
	}
	q, _ := quoRem128(x, y)
	return x.Sub(q.Mul(y)), nil
}

// QuoRem returns the quotient and remainder of x / y in one division.
func (x Int128) QuoRem(y Int128) (q, r Int128, err error) {
	if y.IsZero() {
		return Int128{}, Int128{}, fmt.Errorf("%v / %v failed: %w", x, y, errDivisionByZero)
	}
	q, r = quoRem128(x, y)
	return q, r, nil
}

// quoRem128 divides on absolute values and applies the XOR of the operand
// signs to the quotient. The remainder keeps the dividend's sign.
func quoRem128(x, y Int128) (q, r Int128) {
	q, r = udivmod(x.Abs(), y.Abs())
	if x.IsNeg() != y.IsNeg() {
		q = q.Neg()
	}
	if x.IsNeg() {
		r = r.Neg()
	}
	return q, r
}

// Sign returns:
//
//	-1 if x < 0
//	 0 if x == 0
//	+1 if x > 0
func (x Int128) Sign() int {
	switch {
	case x.IsNeg():
		return -1
	case x.IsZero():
		return 0
	}
	return 1
}

// IsZero returns true if x is zero.
func (x Int128) IsZero() bool {
	return x == Int128{}
}

// IsNeg returns true if x is less than zero.
func (x Int128) IsNeg() bool {
	return int64(x.hi) < 0
}

// Cmp compares two values and returns:
//
//	-1 if x < y
//	 0 if x == y
//	+1 if x > y
func (x Int128) Cmp(y Int128) int {
	xh, yh := int64(x.hi), int64(y.hi)
	switch {
	case xh < yh:
		return -1
	case xh > yh:
		return 1
	case x.lo < y.lo:
		return -1
	case x.lo > y.lo:
		return 1
	}
	return 0
}

// CmpInt64 compares x with an int64.
func (x Int128) CmpInt64(v int64) int {
	return x.Cmp(Int128FromInt64(v))
}

// CmpUint64 compares x with a uint64.
func (x Int128) CmpUint64(v uint64) int {
	return x.Cmp(Int128FromUint64(v))
}

// CmpFloat64 compares x with a float64 under the usual floating-point
// ordering. The comparison is unordered (ok is false) when f is NaN.
func (x Int128) CmpFloat64(f float64) (cmp int, ok bool) {
	if math.IsNaN(f) {
		return 0, false
	}
	v := x.Float64()
	switch {
	case v < f:
		return -1, true
	case v > f:
		return 1, true
	}
	return 0, true
}

// CmpDecimal compares x with a decimal, taking fractional digits into
// account exactly.
func (x Int128) CmpDecimal(d Decimal) int {
	return -d.CmpInt128(x)
}

// EqualDecimal reports whether x equals a decimal. A decimal with a nonzero
// scale never equals an integer, even when its fractional digits are zero.
func (x Int128) EqualDecimal(d Decimal) bool {
	if d.scale > 0 {
		return false
	}
	if x.IsNeg() != d.neg {
		return x.IsZero() && d.IsZero()
	}
	return x.Abs() == d.mant()
}

// Float64 returns the nearest float64 to x. Values of large magnitude lose
// precision beyond the 53-bit float64 mantissa.
func (x Int128) Float64() float64 {
	neg := x.IsNeg()
	m := x.Abs()
	f := float64(m.hi)*0x1p64 + float64(m.lo)
	if neg {
		f = -f
	}
	return f
}

// Low returns the low 64 bits of the two's-complement representation.
func (x Int128) Low() uint64 {
	return x.lo
}

// High returns the high 64 bits of the two's-complement representation.
func (x Int128) High() uint64 {
	return x.hi
}

// Bits returns the two's-complement representation as four 32-bit words,
// least significant first.
func (x Int128) Bits() [4]uint32 {
	return [4]uint32{
		uint32(x.lo),
		uint32(x.lo >> 32),
		uint32(x.hi),
		uint32(x.hi >> 32),
	}
}

// String implements the [fmt.Stringer] interface and returns x in decimal
// notation.
func (x Int128) String() string {
	if x.IsZero() {
		return "0"
	}
	if x == minInt128 {
		return "-" + minInt128Magnitude
	}
	var buf [40]byte
	pos := len(buf)
	m := x.Abs()
	for m.hi != 0 {
		q, r := udivmod(m, ten)
		pos--
		buf[pos] = byte('0' + r.lo)
		m = q
	}
	for v := m.lo; v > 0; v /= 10 {
		pos--
		buf[pos] = byte('0' + v%10)
	}
	if x.IsNeg() {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// Format implements the [fmt.Formatter] interface. The following verbs are
// available:
//
//	%s, %v, %d  decimal notation
//	%q          quoted decimal notation
//
// The '-', '+', ' ', and '0' flags and minimum width are supported.
func (x Int128) Format(state fmt.State, verb rune) {
	switch verb {
	case 'd', 's', 'v', 'q':
		body := x.String()
		neg := x.IsNeg()
		if neg {
			body = body[1:]
		}
		writePadded(state, verb, neg, body)
	default:
		fmt.Fprintf(state, "%%!%c(dec128.Int128=%s)", verb, x.String())
	}
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (x Int128) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (x *Int128) UnmarshalText(text []byte) error {
	v, err := ParseInt128(string(text))
	if err != nil {
		return fmt.Errorf("converting text: %w", err)
	}
	*x = v
	return nil
}
