package dec128

import (
	"fmt"
	"math"
	"strings"
)

// Decimal represents an exact decimal floating-point number with a 96-bit
// unsigned mantissa and a scale of 0 to [MaxScale] digits after the decimal
// point. The value of a decimal is
//
//	(-1)^sign * mantissa / 10^scale
//
// The zero value is ready to use and represents the number zero. Decimal is
// a value type: operations return new values and never mutate their
// operands. Results are normalized, so trailing zeros produced by
// arithmetic do not accumulate.
type Decimal struct {
	neg   bool
	scale uint8
	mhi   uint32
	mlo   uint64
}

const (
	// MaxPrec is the maximum number of significant digits in a decimal.
	MaxPrec = 28

	// MaxScale is the maximum number of digits after the decimal point.
	MaxScale = 28

	// quoExtraDigits is the number of extra fractional digits a dividend
	// is given before integer division, capacity permitting.
	quoExtraDigits = 18

	// mul10Guard is the largest high word for which multiplying a
	// magnitude by ten cannot overflow 128 bits.
	mul10Guard = 0x1999_9999_9999_9999
)

// Layout of the flags word in the interchange form returned by
// [Decimal.Bits]: the scale sits in bits 16 to 23, the sign in bit 31.
const (
	flagsScaleShift = 16
	flagsScaleMask  = 0x00FF_0000
	flagsSignMask   = 0x8000_0000
)

// maxMant is the largest 96-bit mantissa, 2^96 - 1.
var maxMant = Int128{lo: math.MaxUint64, hi: math.MaxUint32}

// MaxDecimal returns the largest representable decimal,
// 79228162514264337593543950335.
func MaxDecimal() Decimal {
	return Decimal{mlo: math.MaxUint64, mhi: math.MaxUint32}
}

// MinDecimal returns the smallest positive representable decimal, 10^-28.
func MinDecimal() Decimal {
	return Decimal{scale: MaxScale, mlo: 1}
}

// DecimalFromInt64 converts an int64 to a decimal with a zero scale.
func DecimalFromInt64(v int64) Decimal {
	neg := v < 0
	u := uint64(v)
	if neg {
		u = -u
	}
	return Decimal{neg: neg, mlo: u}
}

// DecimalFromUint64 converts a uint64 to a decimal with a zero scale.
func DecimalFromUint64(v uint64) Decimal {
	return Decimal{mlo: v}
}

// DecimalFromInt128 converts an Int128 to a decimal. Magnitudes beyond the
// 96-bit mantissa capacity clamp to the largest representable magnitude,
// keeping the sign.
func DecimalFromInt128(v Int128) Decimal {
	if v.IsZero() {
		return Decimal{}
	}
	neg := v.IsNeg()
	if v == minInt128 {
		return Decimal{neg: true, mlo: math.MaxUint64, mhi: math.MaxUint32}
	}
	m := v.Abs()
	if m.hi > math.MaxUint32 {
		return Decimal{neg: neg, mlo: math.MaxUint64, mhi: math.MaxUint32}
	}
	return Decimal{neg: neg, mlo: m.lo, mhi: uint32(m.hi)}
}

// DecimalFromFloat64 converts a float64 to a decimal, capturing up to 15
// fractional digits, which is the precision a float64 reliably carries.
// NaN and infinities convert to zero. Integer parts beyond the mantissa
// capacity clamp to the largest representable magnitude.
func DecimalFromFloat64(f float64) Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return Decimal{}
	}
	neg := f < 0
	if neg {
		f = -f
	}
	intPart, fracPart := math.Modf(f)
	if intPart >= 0x1p96 {
		return Decimal{neg: neg, mlo: math.MaxUint64, mhi: math.MaxUint32}
	}
	m := Int128FromFloat64(intPart)
	var scale uint8
	for fracPart > 0 && scale < 15 {
		fracPart *= 10
		digit, rem := math.Modf(fracPart)
		m = m.Mul(ten).Add(Int128{lo: uint64(digit)})
		m.hi = uint64(uint32(m.hi))
		fracPart = rem
		scale++
		if fracPart < 1e-15 {
			break
		}
	}
	return Decimal{neg: neg, scale: scale, mlo: m.lo, mhi: uint32(m.hi)}
}

// DecimalFromFloat32 converts a float32 to a decimal. NaN and infinities
// convert to zero, oversized integer parts clamp.
func DecimalFromFloat32(f float32) Decimal {
	return DecimalFromFloat64(float64(f))
}

// DecimalFromBits assembles a decimal from its four-word interchange form:
// words 0 to 2 hold the mantissa, least significant first, and word 3
// packs the scale and the sign. Reserved bits must be zero and the scale
// must not exceed [MaxScale].
func DecimalFromBits(words [4]uint32) (Decimal, error) {
	flags := words[3]
	if flags&^uint32(flagsScaleMask|flagsSignMask) != 0 {
		return Decimal{}, fmt.Errorf("reserved flag bits set: %w", errInvalidFormat)
	}
	scale := uint8((flags & flagsScaleMask) >> flagsScaleShift)
	if scale > MaxScale {
		return Decimal{}, fmt.Errorf("scale %d out of range: %w", scale, errInvalidFormat)
	}
	return Decimal{
		neg:   flags&flagsSignMask != 0,
		scale: scale,
		mhi:   words[2],
		mlo:   uint64(words[1])<<32 | uint64(words[0]),
	}, nil
}

// ParseDecimal converts a string to a decimal, accepting an optional
// leading sign, decimal digits, and at most one decimal point. Digits
// beyond [MaxPrec] significant digits drop, and fractional digits beyond
// [MaxScale] truncate, so oversized literals never fail. Malformed input
// returns an error.
func ParseDecimal(s string) (Decimal, error) {
	if s == "" {
		return Decimal{}, fmt.Errorf("empty input: %w", errInvalidFormat)
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
		return Decimal{}, fmt.Errorf("no digits: %w", errInvalidFormat)
	}
	dot := -1
	for i := pos; i < len(s); i++ {
		switch {
		case s[i] == '.':
			if dot >= 0 {
				return Decimal{}, fmt.Errorf("multiple decimal points: %w", errInvalidFormat)
			}
			dot = i
		case s[i] < '0' || s[i] > '9':
			return Decimal{}, fmt.Errorf("invalid character %q: %w", s[i], errInvalidFormat)
		}
	}
	if dot >= 0 && len(s)-pos == 1 {
		return Decimal{}, fmt.Errorf("no digits: %w", errInvalidFormat)
	}

	scale := 0
	if dot >= 0 {
		scale = len(s) - dot - 1
		if scale > MaxScale {
			scale = MaxScale
		}
	}
	var m Int128
	sig, frac := 0, 0
	for i := pos; i < len(s); i++ {
		if s[i] == '.' {
			continue
		}
		if sig >= MaxPrec {
			// excess digits drop; the recorded scale counts the
			// fractional digits actually consumed
			if dot >= 0 {
				scale = frac
			}
			break
		}
		digit := uint64(s[i] - '0')
		if digit != 0 || !m.IsZero() || (dot >= 0 && i > dot) {
			sig++
		}
		if dot >= 0 && i > dot {
			frac++
		}
		m = m.Mul(ten).Add(Int128{lo: digit})
	}
	for m.hi > math.MaxUint32 && scale > 0 {
		m, _ = udivmod(m, ten)
		scale--
	}
	for m.hi > math.MaxUint32 {
		m, _ = udivmod(m, ten)
	}
	d := Decimal{neg: neg, scale: uint8(scale), mlo: m.lo, mhi: uint32(m.hi)}
	return d.normalize(), nil
}

// mant returns the mantissa magnitude widened to 128 bits.
func (d Decimal) mant() Int128 {
	return Int128{lo: d.mlo, hi: uint64(d.mhi)}
}

// normalize strips trailing zero fractional digits so equal values share a
// single representation.
func (d Decimal) normalize() Decimal {
	m := d.mant()
	for d.scale > 0 {
		q, r := udivmod(m, ten)
		if !r.IsZero() {
			break
		}
		m = q
		d.scale--
	}
	d.mlo, d.mhi = m.lo, uint32(m.hi)
	return d
}

// split separates the value into its integer quotient and fractional
// remainder, both as unsigned magnitudes.
func (d Decimal) split() (q, r Int128) {
	if d.scale == 0 {
		return d.mant(), Int128{}
	}
	return udivmod(d.mant(), pow10Int128(int(d.scale)))
}

// Scale returns the number of digits after the decimal point.
func (d Decimal) Scale() int {
	return int(d.scale)
}

// DecimalPlaces returns the number of fractional digits in d disregarding
// trailing zeros.
func (d Decimal) DecimalPlaces() int {
	if d.IsZero() {
		return 0
	}
	m := d.mant()
	s := int(d.scale)
	for s > 0 {
		q, r := udivmod(m, ten)
		if !r.IsZero() {
			break
		}
		m = q
		s--
	}
	return s
}

// Sign returns:
//
//	-1 if d < 0
//	 0 if d == 0
//	+1 if d > 0
func (d Decimal) Sign() int {
	switch {
	case d.IsZero():
		return 0
	case d.neg:
		return -1
	}
	return 1
}

// IsZero returns true if the mantissa is zero, regardless of scale or sign.
func (d Decimal) IsZero() bool {
	return d.mlo == 0 && d.mhi == 0
}

// IsNeg returns true if the sign flag is set. A zero mantissa with the
// sign flag set still reports true; use [Decimal.Sign] for the numeric
// sign.
func (d Decimal) IsNeg() bool {
	return d.neg
}

// IsPos returns true if d is greater than zero.
func (d Decimal) IsPos() bool {
	return !d.neg && !d.IsZero()
}

// Neg returns d with the opposite sign.
func (d Decimal) Neg() Decimal {
	d.neg = !d.neg
	return d
}

// Abs returns the absolute value of d.
func (d Decimal) Abs() Decimal {
	d.neg = false
	return d
}

// Add returns the exact sum d + e. Mantissas are aligned to the larger
// scale before the operands combine, and the result is normalized.
func (d Decimal) Add(e Decimal) Decimal {
	if d.IsZero() {
		return e
	}
	if e.IsZero() {
		return d
	}
	dm, em := d.mant(), e.mant()
	scale := d.scale
	switch {
	case d.scale < e.scale:
		dm = dm.Mul(pow10Int128(int(e.scale - d.scale)))
		scale = e.scale
	case e.scale < d.scale:
		em = em.Mul(pow10Int128(int(d.scale - e.scale)))
	}
	var m Int128
	var neg bool
	switch {
	case d.neg == e.neg:
		m = dm.Add(em)
		neg = d.neg
	case ucmp(dm, em) > 0:
		m = dm.Sub(em)
		neg = d.neg
	default:
		m = em.Sub(dm)
		neg = e.neg
	}
	f := Decimal{neg: neg, scale: scale, mlo: m.lo, mhi: uint32(m.hi)}
	return f.normalize()
}

// Sub returns the exact difference d - e.
func (d Decimal) Sub(e Decimal) Decimal {
	return d.Add(e.Neg())
}

// Mul returns the product d * e. The result scale is the sum of the
// operand scales; while the product mantissa exceeds the 96-bit capacity
// or the scale exceeds [MaxScale], the least significant digit drops.
// Dropped digits are discarded, not rounded.
func (d Decimal) Mul(e Decimal) Decimal {
	if d.IsZero() || e.IsZero() {
		return Decimal{}
	}
	m := d.mant().Mul(e.mant())
	scale := int(d.scale) + int(e.scale)
	for ucmp(m, maxMant) > 0 || scale > MaxScale {
		if scale == 0 {
			break
		}
		m, _ = udivmod(m, ten)
		scale--
	}
	f := Decimal{neg: d.neg != e.neg, scale: uint8(scale), mlo: m.lo, mhi: uint32(m.hi)}
	return f.normalize()
}

// Quo returns the quotient d / e. Before the integer division the dividend
// scales up by as many extra digits of precision as its magnitude allows,
// up to 18, so quotients keep a long fractional tail. Digits beyond that
// precision are discarded, not rounded.
func (d Decimal) Quo(e Decimal) (Decimal, error) {
	if e.IsZero() {
		return Decimal{}, fmt.Errorf("%v / %v failed: %w", d, e, errDivisionByZero)
	}
	if d.IsZero() {
		return Decimal{}, nil
	}
	dividend := d.mant()
	scale := int(d.scale) - int(e.scale)
	for i := 0; i < quoExtraDigits; i++ {
		if dividend.hi > mul10Guard {
			break
		}
		dividend = dividend.Mul(ten)
		scale++
	}
	for i := 0; scale < 0 && i < MaxScale; i++ {
		if dividend.hi > mul10Guard {
			break
		}
		dividend = dividend.Mul(ten)
		scale++
	}
	if scale < 0 {
		scale = 0
	}
	q, _ := udivmod(dividend, e.mant())
	for scale > MaxScale {
		q, _ = udivmod(q, ten)
		scale--
	}
	f := Decimal{neg: d.neg != e.neg, scale: uint8(scale), mlo: q.lo, mhi: uint32(q.hi)}
	return f.normalize(), nil
}

// Round returns d rounded to the given number of fractional digits under
// the given rounding mode. Rounding never increases the scale, and the
// result is not normalized: rounding to 2 places yields a scale of exactly
// 2 even when the last digit is zero.
func (d Decimal) Round(places int, mode RoundingMode) Decimal {
	if places < 0 {
		places = 0
	}
	if places >= int(d.scale) || d.IsZero() {
		return d
	}
	remove := int(d.scale) - places
	m := d.mant()
	lead, rest := udivmod(m, pow10Int128(remove-1))
	_, digit := udivmod(lead, ten)
	trunc, _ := udivmod(m, pow10Int128(remove))

	up := false
	switch mode {
	case ToNearest:
		switch {
		case digit.lo > 5:
			up = true
		case digit.lo == 5:
			if !rest.IsZero() {
				up = true
			} else {
				up = trunc.lo&1 == 1
			}
		}
	case ToNearestTiesAway:
		up = digit.lo >= 5
	case ToZero:
		// plain truncation
	case ToPositiveInfinity:
		up = !d.neg && (digit.lo != 0 || !rest.IsZero())
	case ToNegativeInfinity:
		up = d.neg && (digit.lo != 0 || !rest.IsZero())
	}
	if up {
		trunc = trunc.Add(Int128{lo: 1})
	}
	return Decimal{neg: d.neg, scale: uint8(places), mlo: trunc.lo, mhi: uint32(trunc.hi)}
}

// Trunc returns the integer part of d, dropping all fractional digits.
func (d Decimal) Trunc() Decimal {
	return d.Round(0, ToZero)
}

// Floor returns the largest integer less than or equal to d.
func (d Decimal) Floor() Decimal {
	return d.Round(0, ToNegativeInfinity)
}

// Ceil returns the smallest integer greater than or equal to d.
func (d Decimal) Ceil() Decimal {
	return d.Round(0, ToPositiveInfinity)
}

// Cmp compares two decimals exactly and returns:
//
//	-1 if d < e
//	 0 if d == e
//	+1 if d > e
//
// The integer quotients compare first and the fractional remainders break
// ties, so differently scaled operands never overflow the comparison.
func (d Decimal) Cmp(e Decimal) int {
	ds, es := d.Sign(), e.Sign()
	switch {
	case ds < es:
		return -1
	case ds > es:
		return 1
	case ds == 0:
		return 0
	}
	dq, dr := d.split()
	eq, er := e.split()
	c := ucmp(dq, eq)
	if c == 0 {
		smax := d.scale
		if e.scale > smax {
			smax = e.scale
		}
		dr = dr.Mul(pow10Int128(int(smax - d.scale)))
		er = er.Mul(pow10Int128(int(smax - e.scale)))
		c = ucmp(dr, er)
	}
	if ds < 0 {
		c = -c
	}
	return c
}

// Equal reports whether two decimals represent the same value. Zeros are
// equal regardless of sign and scale.
func (d Decimal) Equal(e Decimal) bool {
	return d.Cmp(e) == 0
}

// CmpInt128 compares d with an Int128 exactly.
func (d Decimal) CmpInt128(v Int128) int {
	ds, vs := d.Sign(), v.Sign()
	switch {
	case ds < vs:
		return -1
	case ds > vs:
		return 1
	case ds == 0:
		return 0
	}
	q, r := d.split()
	c := ucmp(q, v.Abs())
	if c == 0 && !r.IsZero() {
		c = 1
	}
	if ds < 0 {
		c = -c
	}
	return c
}

// EqualInt128 reports whether d equals an Int128. A decimal with a nonzero
// scale never equals an integer, even when its fractional digits are zero.
func (d Decimal) EqualInt128(v Int128) bool {
	if d.scale > 0 {
		return false
	}
	if d.neg != v.IsNeg() {
		return d.IsZero() && v.IsZero()
	}
	return d.mant() == v.Abs()
}

// CmpFloat64 compares d with a float64 under the usual floating-point
// ordering. The comparison is unordered (ok is false) when f is NaN.
func (d Decimal) CmpFloat64(f float64) (cmp int, ok bool) {
	if math.IsNaN(f) {
		return 0, false
	}
	v := d.Float64()
	switch {
	case v < f:
		return -1, true
	case v > f:
		return 1, true
	}
	return 0, true
}

// Float64 returns the nearest float64 to d. Mantissas wider than the
// 53-bit float64 mantissa lose precision.
func (d Decimal) Float64() float64 {
	m := d.mant()
	f := float64(m.hi)*0x1p64 + float64(m.lo)
	for i := 0; i < int(d.scale); i++ {
		f /= 10
	}
	if d.neg {
		f = -f
	}
	return f
}

// Bits returns the four-word interchange form of d: words 0 to 2 hold the
// mantissa, least significant first, and word 3 packs the scale in bits 16
// to 23 and the sign in bit 31.
func (d Decimal) Bits() [4]uint32 {
	flags := uint32(d.scale) << flagsScaleShift
	if d.neg {
		flags |= flagsSignMask
	}
	return [4]uint32{
		uint32(d.mlo),
		uint32(d.mlo >> 32),
		d.mhi,
		flags,
	}
}

// String implements the [fmt.Stringer] interface and returns d in its
// canonical text form: an optional minus sign, the integer digits, and,
// for a nonzero scale, a decimal point followed by exactly scale
// fractional digits. A zero mantissa prints as "0".
func (d Decimal) String() string {
	if d.IsZero() {
		return "0"
	}
	var digits [40]byte
	n := 0
	m := d.mant()
	for m.hi != 0 {
		q, r := udivmod(m, ten)
		digits[n] = byte('0' + r.lo)
		n++
		m = q
	}
	for v := m.lo; v > 0; v /= 10 {
		digits[n] = byte('0' + v%10)
		n++
	}
	scale := int(d.scale)
	buf := make([]byte, 0, n+scale+3)
	if d.neg {
		buf = append(buf, '-')
	}
	switch {
	case scale >= n:
		buf = append(buf, '0', '.')
		for i := 0; i < scale-n; i++ {
			buf = append(buf, '0')
		}
		for i := n - 1; i >= 0; i-- {
			buf = append(buf, digits[i])
		}
	case scale > 0:
		for i := n - 1; i >= scale; i-- {
			buf = append(buf, digits[i])
		}
		buf = append(buf, '.')
		for i := scale - 1; i >= 0; i-- {
			buf = append(buf, digits[i])
		}
	default:
		for i := n - 1; i >= 0; i-- {
			buf = append(buf, digits[i])
		}
	}
	return string(buf)
}

// Format implements the [fmt.Formatter] interface. The following verbs are
// available:
//
//	%s, %v  canonical text form
//	%q      quoted canonical text form
//	%f      fixed-point notation; precision selects the number of
//	        fractional digits, padding with zeros or rounding half to
//	        even as needed
//
// The '-', '+', ' ', and '0' flags and minimum width are supported.
func (d Decimal) Format(state fmt.State, verb rune) {
	switch verb {
	case 's', 'v', 'q', 'f', 'F':
		// supported
	default:
		fmt.Fprintf(state, "%%!%c(dec128.Decimal=%s)", verb, d.String())
		return
	}
	e := d
	tzeroes := 0
	if verb == 'f' || verb == 'F' {
		req := e.Scale()
		if p, ok := state.Precision(); ok {
			req = p
		}
		if req < 0 {
			req = 0
		}
		if req < e.Scale() {
			e = e.Round(req, ToNearest)
		}
		printed := e.Scale()
		if e.IsZero() {
			printed = 0
		}
		tzeroes = req - printed
	}
	body := e.String()
	neg := false
	if len(body) > 0 && body[0] == '-' {
		neg = true
		body = body[1:]
	}
	if tzeroes > 0 {
		if !strings.Contains(body, ".") {
			body += "."
		}
		body += strings.Repeat("0", tzeroes)
	}
	writePadded(state, verb, neg, body)
}

// writePadded applies the sign flags, quoting, and width padding shared by
// the Format implementations. body is the unsigned text of the value.
func writePadded(state fmt.State, verb rune, neg bool, body string) {
	sign := ""
	switch {
	case neg:
		sign = "-"
	case state.Flag('+'):
		sign = "+"
	case state.Flag(' '):
		sign = " "
	}
	quote := ""
	if verb == 'q' {
		quote = `"`
	}
	out := quote + sign + body + quote
	if w, ok := state.Width(); ok && w > len(out) {
		switch {
		case state.Flag('-'):
			out += strings.Repeat(" ", w-len(out))
		case state.Flag('0') && quote == "":
			out = sign + strings.Repeat("0", w-len(out)) + body
		default:
			out = strings.Repeat(" ", w-len(out)) + out
		}
	}
	state.Write([]byte(out))
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (d *Decimal) UnmarshalText(text []byte) error {
	v, err := ParseDecimal(string(text))
	if err != nil {
		return fmt.Errorf("converting text: %w", err)
	}
	*d = v
	return nil
}
