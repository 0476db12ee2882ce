package dec128

import "math/bits"

// The primitive layer works on raw (lo, hi) word pairs in two's complement.
// Every operation has a hardware path built on the math/bits wide intrinsics
// and a portable path that breaks the work into 32-bit halves. The build-time
// flag useHardwareWideOps picks the path; both stay compiled.

// add128 calculates x + y with word-wise carry propagation.
func add128(xlo, xhi, ylo, yhi uint64) (lo, hi uint64) {
	if useHardwareWideOps {
		var c uint64
		lo, c = bits.Add64(xlo, ylo, 0)
		hi, _ = bits.Add64(xhi, yhi, c)
		return lo, hi
	}
	return add128Portable(xlo, xhi, ylo, yhi)
}

func add128Portable(xlo, xhi, ylo, yhi uint64) (lo, hi uint64) {
	lo = xlo + ylo
	hi = xhi + yhi
	if lo < xlo {
		hi++
	}
	return lo, hi
}

// sub128 calculates x - y with word-wise borrow propagation.
func sub128(xlo, xhi, ylo, yhi uint64) (lo, hi uint64) {
	if useHardwareWideOps {
		var b uint64
		lo, b = bits.Sub64(xlo, ylo, 0)
		hi, _ = bits.Sub64(xhi, yhi, b)
		return lo, hi
	}
	return sub128Portable(xlo, xhi, ylo, yhi)
}

func sub128Portable(xlo, xhi, ylo, yhi uint64) (lo, hi uint64) {
	lo = xlo - ylo
	hi = xhi - yhi
	if xlo < ylo {
		hi--
	}
	return lo, hi
}

// cmp128 compares two unsigned 128-bit values.
func cmp128(xlo, xhi, ylo, yhi uint64) int {
	switch {
	case xhi < yhi:
		return -1
	case xhi > yhi:
		return 1
	case xlo < ylo:
		return -1
	case xlo > ylo:
		return 1
	}
	return 0
}

// mul64 calculates the full 128-bit product of two 64-bit words.
func mul64(x, y uint64) (lo, hi uint64) {
	if useHardwareWideOps {
		hi, lo = bits.Mul64(x, y)
		return lo, hi
	}
	return mul64Portable(x, y)
}

// mul64Portable is a schoolbook 64x64->128 multiply: both words split into
// 32-bit halves, the four partial products combined with carry folding.
func mul64Portable(x, y uint64) (lo, hi uint64) {
	const mask32 = 1<<32 - 1
	x0, x1 := x&mask32, x>>32
	y0, y1 := y&mask32, y>>32
	p0 := x0 * y0
	p1 := x0 * y1
	p2 := x1 * y0
	p3 := x1 * y1
	carry := ((p0 >> 32) + (p1 & mask32) + (p2 & mask32)) >> 32
	lo = p0 + p1<<32 + p2<<32
	hi = p3 + p1>>32 + p2>>32 + carry
	return lo, hi
}

// mul128 calculates the low 128 bits of x * y. Magnitude held in the high
// words contributes to the result's high word only.
func mul128(xlo, xhi, ylo, yhi uint64) (lo, hi uint64) {
	lo, hi = mul64(xlo, ylo)
	hi += xhi*ylo + xlo*yhi
	return lo, hi
}

// divmod128 calculates the unsigned quotient and remainder of x / y.
// The divisor must be nonzero. There are three tiers: native 64-bit division
// when both operands fit one word, a 128/64 split when only the divisor
// does, and restoring binary long division for the general case.
func divmod128(xlo, xhi, ylo, yhi uint64) (qlo, qhi, rlo, rhi uint64) {
	switch {
	case yhi == 0 && xhi == 0:
		return xlo / ylo, 0, xlo % ylo, 0
	case yhi == 0:
		qhi = xhi / ylo
		hr := xhi % ylo
		if hr == 0 {
			return xlo / ylo, qhi, xlo % ylo, 0
		}
		q, r := div64(hr, xlo, ylo)
		return q, qhi, r, 0
	}
	return divmod128general(xlo, xhi, ylo, yhi)
}

// div64 divides the double word (hi, lo) by y. Requires hi < y.
func div64(hi, lo, y uint64) (q, r uint64) {
	if useHardwareWideOps {
		return bits.Div64(hi, lo, y)
	}
	return div64Portable(hi, lo, y)
}

// div64Portable is two-step 32-bit long division of (hi, lo) by y.
// The divisor is normalized so its top bit is set, then the two quotient
// halves are estimated from the divisor's upper 32 bits and corrected
// downward. Requires hi < y.
func div64Portable(hi, lo, y uint64) (q, r uint64) {
	const b = 1 << 32
	s := uint(bits.LeadingZeros64(y))
	y <<= s
	yn1 := y >> 32
	yn0 := y & (b - 1)
	un32 := hi<<s | lo>>(64-s)
	un10 := lo << s
	un1 := un10 >> 32
	un0 := un10 & (b - 1)

	q1 := un32 / yn1
	rhat := un32 - q1*yn1
	for q1 >= b || q1*yn0 > b*rhat+un1 {
		q1--
		rhat += yn1
		if rhat >= b {
			break
		}
	}
	un21 := un32*b + un1 - q1*y

	q0 := un21 / yn1
	rhat = un21 - q0*yn1
	for q0 >= b || q0*yn0 > b*rhat+un0 {
		q0--
		rhat += yn1
		if rhat >= b {
			break
		}
	}
	return q1*b + q0, (un21*b + un0 - q0*y) >> s
}

// divmod128general is restoring binary long division, one quotient bit per
// iteration, most significant bit first.
func divmod128general(xlo, xhi, ylo, yhi uint64) (qlo, qhi, rlo, rhi uint64) {
	if cmp128(xlo, xhi, ylo, yhi) < 0 {
		return 0, 0, xlo, xhi
	}
	for i := 127; i >= 0; i-- {
		rlo, rhi = add128(rlo, rhi, rlo, rhi)
		if i >= 64 {
			rlo |= (xhi >> (uint(i) - 64)) & 1
		} else {
			rlo |= (xlo >> uint(i)) & 1
		}
		if cmp128(rlo, rhi, ylo, yhi) >= 0 {
			rlo, rhi = sub128(rlo, rhi, ylo, yhi)
			if i >= 64 {
				qhi |= 1 << (uint(i) - 64)
			} else {
				qlo |= 1 << uint(i)
			}
		}
	}
	return qlo, qhi, rlo, rhi
}
