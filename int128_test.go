package dec128

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInt128FromInt64(t *testing.T) {
	for _, v := range []int64{
		0, 1, -1, 42, -42, math.MaxInt64, math.MinInt64,
	} {
		x := Int128FromInt64(v)
		require.Equal(t, strconv.FormatInt(v, 10), x.String(), "Int128FromInt64(%d)", v)
	}
}

func TestInt128FromUint64(t *testing.T) {
	for _, v := range []uint64{0, 1, 42, math.MaxInt64, math.MaxUint64} {
		x := Int128FromUint64(v)
		require.Equal(t, strconv.FormatUint(v, 10), x.String(), "Int128FromUint64(%d)", v)
	}
}

func TestInt128Words(t *testing.T) {
	x := Int128FromWords(0x1122_3344_5566_7788, 0x99AA_BBCC_DDEE_FF00)
	require.Equal(t, uint64(0x1122_3344_5566_7788), x.Low())
	require.Equal(t, uint64(0x99AA_BBCC_DDEE_FF00), x.High())
	require.Equal(t,
		[4]uint32{0x5566_7788, 0x1122_3344, 0xDDEE_FF00, 0x99AA_BBCC},
		x.Bits())
}

func TestParseInt128(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			s    string
			want string
		}{
			{"0", "0"},
			{"-0", "0"},
			{"+42", "42"},
			{"-42", "-42"},
			{"00123", "123"},
			{"123456789012345678901234567890", "123456789012345678901234567890"},
			{"170141183460469231731687303715884105727", "170141183460469231731687303715884105727"},
			{"-170141183460469231731687303715884105728", "-170141183460469231731687303715884105728"},
			{"099999999999999999999999999999999999999", "99999999999999999999999999999999999999"},
		}
		for _, tt := range tests {
			x, err := ParseInt128(tt.s)
			require.NoError(t, err, "ParseInt128(%q)", tt.s)
			require.Equal(t, tt.want, x.String(), "ParseInt128(%q)", tt.s)
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []string{
			"",
			"+",
			"-",
			"12x",
			"1.5",
			" 1",
			"170141183460469231731687303715884105728",
			"-170141183460469231731687303715884105729",
			"9999999999999999999999999999999999999999",
		}
		for _, s := range tests {
			_, err := ParseInt128(s)
			require.Error(t, err, "ParseInt128(%q)", s)
			require.ErrorIs(t, err, errInvalidFormat, "ParseInt128(%q)", s)
		}
	})
}

func TestInt128Limits(t *testing.T) {
	require.Equal(t, maxInt128Text, MaxInt128().String())
	require.Equal(t, "-"+minInt128Magnitude, MinInt128().String())
	require.Equal(t, MinInt128(), MaxInt128().Add(Int128FromInt64(1)))
	require.Equal(t, MaxInt128(), MinInt128().Sub(Int128FromInt64(1)))
	require.Equal(t, MinInt128(), MinInt128().Neg())
	require.Equal(t, MinInt128(), MinInt128().Abs())
}

func TestInt128AddSub(t *testing.T) {
	values := []string{
		"0", "1", "-1", "42", "-42",
		"9223372036854775807", "-9223372036854775808",
		"18446744073709551616",
		"123456789012345678901234567890",
		"-123456789012345678901234567890",
		"170141183460469231731687303715884105727",
		"-170141183460469231731687303715884105728",
	}
	for _, as := range values {
		for _, bs := range values {
			a, b := MustParseInt128(as), MustParseInt128(bs)
			require.Equal(t, a, a.Add(b).Sub(b), "(%s + %s) - %s", as, bs, bs)
			require.Equal(t, a.Sub(b), b.Sub(a).Neg(), "%s - %s", as, bs)
		}
	}
}

func TestInt128Mul(t *testing.T) {
	tests := []struct {
		a, b, want string
	}{
		{"0", "42", "0"},
		{"1", "-42", "-42"},
		{"6", "7", "42"},
		{"-6", "7", "-42"},
		{"-6", "-7", "42"},
		{"123456789012345678901234567890", "2", "246913578024691357802469135780"},
		{"12345678901234567890", "10000000000", "123456789012345678900000000000"},
		{"18446744073709551616", "18446744073709551615", "-18446744073709551616"},
	}
	for _, tt := range tests {
		a, b := MustParseInt128(tt.a), MustParseInt128(tt.b)
		require.Equal(t, tt.want, a.Mul(b).String(), "%s * %s", tt.a, tt.b)
		require.Equal(t, tt.want, b.Mul(a).String(), "%s * %s", tt.b, tt.a)
	}
}

func TestInt128QuoRem(t *testing.T) {
	tests := []struct {
		a, b, q, r string
	}{
		{"7", "3", "2", "1"},
		{"-7", "3", "-2", "-1"},
		{"7", "-3", "-2", "1"},
		{"-7", "-3", "2", "-1"},
		{"0", "3", "0", "0"},
		{"42", "42", "1", "0"},
		{"41", "42", "0", "41"},
		{"123456789012345678901234567890123456789", "7", "17636684144620811271604938270017636684", "1"},
		{"123456789012345678901234567890123456789", "987654321098765432109876543210", "124999998", "850308642085030864208626543209"},
		{"-170141183460469231731687303715884105728", "2", "-85070591730234615865843651857942052864", "0"},
		{"170141183460469231731687303715884105727", "170141183460469231731687303715884105726", "1", "1"},
	}
	for _, tt := range tests {
		a, b := MustParseInt128(tt.a), MustParseInt128(tt.b)

		q, err := a.Quo(b)
		require.NoError(t, err)
		require.Equal(t, tt.q, q.String(), "%s / %s", tt.a, tt.b)

		r, err := a.Rem(b)
		require.NoError(t, err)
		require.Equal(t, tt.r, r.String(), "%s %% %s", tt.a, tt.b)

		q2, r2, err := a.QuoRem(b)
		require.NoError(t, err)
		require.Equal(t, q, q2)
		require.Equal(t, r, r2)

		require.Equal(t, a, q.Mul(b).Add(r), "%s = %s * %s + %s", tt.a, tt.q, tt.b, tt.r)
	}
}

func TestInt128DivisionByZero(t *testing.T) {
	x := Int128FromInt64(42)
	zero := Int128{}

	_, err := x.Quo(zero)
	require.ErrorIs(t, err, errDivisionByZero)

	_, err = x.Rem(zero)
	require.ErrorIs(t, err, errDivisionByZero)

	_, _, err = x.QuoRem(zero)
	require.ErrorIs(t, err, errDivisionByZero)

	require.Panics(t, func() { x.MustQuo(zero) })
	require.Panics(t, func() { x.MustRem(zero) })
}

func TestInt128Cmp(t *testing.T) {
	ordered := []string{
		"-170141183460469231731687303715884105728",
		"-170141183460469231731687303715884105727",
		"-18446744073709551616",
		"-2", "-1", "0", "1", "2",
		"18446744073709551616",
		"170141183460469231731687303715884105726",
		"170141183460469231731687303715884105727",
	}
	for i, as := range ordered {
		for j, bs := range ordered {
			a, b := MustParseInt128(as), MustParseInt128(bs)
			want := 0
			switch {
			case i < j:
				want = -1
			case i > j:
				want = 1
			}
			require.Equal(t, want, a.Cmp(b), "%s cmp %s", as, bs)
		}
	}

	require.Equal(t, 0, Int128FromInt64(42).CmpInt64(42))
	require.Equal(t, -1, Int128FromInt64(-1).CmpInt64(0))
	require.Equal(t, 1, MaxInt128().CmpUint64(math.MaxUint64))
	require.Equal(t, 0, Int128FromUint64(math.MaxUint64).CmpUint64(math.MaxUint64))
}

func TestInt128Sign(t *testing.T) {
	require.Equal(t, 0, Int128{}.Sign())
	require.True(t, Int128{}.IsZero())
	require.Equal(t, 1, Int128FromInt64(5).Sign())
	require.Equal(t, -1, Int128FromInt64(-5).Sign())
	require.True(t, Int128FromInt64(-5).IsNeg())
	require.False(t, Int128FromInt64(5).IsNeg())
	require.Equal(t, Int128FromInt64(5), Int128FromInt64(-5).Abs())
}

func TestInt128Float64(t *testing.T) {
	require.Equal(t, 0.0, Int128{}.Float64())
	require.Equal(t, -1.0, Int128FromInt64(-1).Float64())
	require.Equal(t, 0x1p64, Int128FromWords(0, 1).Float64())
	require.Equal(t, -0x1p127, MinInt128().Float64())

	cmp, ok := Int128FromInt64(5).CmpFloat64(5)
	require.True(t, ok)
	require.Equal(t, 0, cmp)

	cmp, ok = Int128FromInt64(5).CmpFloat64(math.Inf(1))
	require.True(t, ok)
	require.Equal(t, -1, cmp)

	cmp, ok = MinInt128().CmpFloat64(math.Inf(-1))
	require.True(t, ok)
	require.Equal(t, 1, cmp)

	_, ok = Int128FromInt64(5).CmpFloat64(math.NaN())
	require.False(t, ok)
}

func TestInt128FromFloat64(t *testing.T) {
	tests := []struct {
		f    float64
		want string
	}{
		{0, "0"},
		{0.99, "0"},
		{-0.99, "0"},
		{1.9, "1"},
		{-1.9, "-1"},
		{42, "42"},
		{0x1p64, "18446744073709551616"},
		{math.Ldexp(1, 100), "1267650600228229401496703205376"},
		{-math.Ldexp(1, 100), "-1267650600228229401496703205376"},
		{1e30, "1000000000000000019884624838656"},
		{math.NaN(), "0"},
		{math.Inf(1), "0"},
		{math.Inf(-1), "0"},
		{1e39, "170141183460469231731687303715884105727"},
		{-1e39, "-170141183460469231731687303715884105728"},
		{math.Ldexp(1, 127), "170141183460469231731687303715884105727"},
		{-math.Ldexp(1, 127), "-170141183460469231731687303715884105728"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Int128FromFloat64(tt.f).String(), "Int128FromFloat64(%g)", tt.f)
	}
	require.Equal(t, "42", Int128FromFloat32(42.9).String())
	require.Equal(t, "0", Int128FromFloat32(float32(math.NaN())).String())
}

func TestInt128FromDecimal(t *testing.T) {
	tests := []struct {
		d    string
		want string
	}{
		{"0", "0"},
		{"5", "5"},
		{"123.99", "123"},
		{"-123.99", "-123"},
		{"0.5", "0"},
		{"-0.5", "0"},
	}
	for _, tt := range tests {
		d := MustParseDecimal(tt.d)
		require.Equal(t, tt.want, Int128FromDecimal(d).String(), "Int128FromDecimal(%s)", tt.d)
	}
	require.Equal(t, "79228162514264337593543950335", Int128FromDecimal(MaxDecimal()).String())
	require.Equal(t, "-79228162514264337593543950335", Int128FromDecimal(MaxDecimal().Neg()).String())
	require.Equal(t, "0", Int128FromDecimal(MinDecimal()).String())
}

func TestInt128EqualDecimal(t *testing.T) {
	five := Int128FromInt64(5)
	require.True(t, five.EqualDecimal(MustParseDecimal("5")))
	require.False(t, five.EqualDecimal(MustParseDecimal("5.5")))
	require.False(t, five.EqualDecimal(MustParseDecimal("-5")))
	require.True(t, Int128{}.EqualDecimal(MustParseDecimal("0")))
	require.True(t, Int128{}.EqualDecimal(DecimalFromInt64(0).Neg()))

	// a nonzero scale blocks equality even when the value matches,
	// but the exact comparison still reports 0
	fiveScaled := MustParseDecimal("5.01").Round(1, ToZero)
	require.Equal(t, "5.0", fiveScaled.String())
	require.False(t, five.EqualDecimal(fiveScaled))
	require.Equal(t, 0, five.CmpDecimal(fiveScaled))
}

func TestInt128CmpDecimal(t *testing.T) {
	tests := []struct {
		x    string
		d    string
		want int
	}{
		{"0", "0", 0},
		{"5", "5", 0},
		{"5", "5.1", -1},
		{"5", "4.9", 1},
		{"-5", "-5.1", 1},
		{"-5", "-4.9", -1},
		{"-5", "5", -1},
		{"170141183460469231731687303715884105727", "79228162514264337593543950335", 1},
		{"-170141183460469231731687303715884105728", "-79228162514264337593543950335", -1},
	}
	for _, tt := range tests {
		x := MustParseInt128(tt.x)
		d := MustParseDecimal(tt.d)
		require.Equal(t, tt.want, x.CmpDecimal(d), "%s cmp %s", tt.x, tt.d)
		require.Equal(t, -tt.want, d.CmpInt128(x), "%s cmp %s", tt.d, tt.x)
	}
}

func TestInt128Text(t *testing.T) {
	x := MustParseInt128("-123456789012345678901234567890")
	text, err := x.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "-123456789012345678901234567890", string(text))

	var y Int128
	require.NoError(t, y.UnmarshalText(text))
	require.Equal(t, x, y)

	err = y.UnmarshalText([]byte("bogus"))
	require.ErrorIs(t, err, errInvalidFormat)
	require.Equal(t, x, y, "failed unmarshal must not modify the receiver")
}

func TestInt128Format(t *testing.T) {
	x := Int128FromInt64(-42)
	tests := []struct {
		format string
		want   string
	}{
		{"%d", "-42"},
		{"%s", "-42"},
		{"%v", "-42"},
		{"%q", `"-42"`},
		{"%8d", "     -42"},
		{"%-8d", "-42     "},
		{"%08d", "-0000042"},
		{"%x", "%!x(dec128.Int128=-42)"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, fmt.Sprintf(tt.format, x), "format %q", tt.format)
	}
	require.Equal(t, "+42", fmt.Sprintf("%+d", Int128FromInt64(42)))
}

func TestMustParseInt128(t *testing.T) {
	require.Panics(t, func() { MustParseInt128("bogus") })
	require.Equal(t, Int128FromInt64(5), MustParseInt128("5"))
}

func TestInt128ErrorsUnwrap(t *testing.T) {
	_, err := Int128FromInt64(1).Quo(Int128{})
	require.True(t, errors.Is(err, errDivisionByZero))
}
