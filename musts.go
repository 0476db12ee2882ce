package dec128

import "fmt"

// MustParseInt128 is like [ParseInt128] but panics if the string cannot be
// parsed. It simplifies the initialization of package-level constants.
func MustParseInt128(s string) Int128 {
	x, err := ParseInt128(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseInt128(%q) failed: %v", s, err))
	}
	return x
}

// MustParseDecimal is like [ParseDecimal] but panics if the string cannot
// be parsed. It simplifies the initialization of package-level constants.
func MustParseDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseDecimal(%q) failed: %v", s, err))
	}
	return d
}

// MustQuo is like [Int128.Quo] but panics on a zero divisor.
func (x Int128) MustQuo(y Int128) Int128 {
	q, err := x.Quo(y)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v) failed: %v", y, err))
	}
	return q
}

// MustRem is like [Int128.Rem] but panics on a zero divisor.
func (x Int128) MustRem(y Int128) Int128 {
	r, err := x.Rem(y)
	if err != nil {
		panic(fmt.Sprintf("MustRem(%v) failed: %v", y, err))
	}
	return r
}

// MustQuo is like [Decimal.Quo] but panics on a zero divisor.
func (d Decimal) MustQuo(e Decimal) Decimal {
	f, err := d.Quo(e)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v) failed: %v", e, err))
	}
	return f
}
