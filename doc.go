/*
Package dec128 implements two immutable 128-bit numeric value types:
a signed two's-complement integer and an exact decimal floating-point
number. Both are plain 16-byte value types with no heap allocation,
intended for identifiers, counters, and monetary amounts that do not fit
the builtin integer types.

# Int128

[Int128] is a signed 128-bit integer stored as two 64-bit words.
Addition, subtraction, and multiplication wrap on overflow, exactly like
the builtin fixed-width integer types. Division truncates toward zero and
returns an error on a zero divisor.

# Decimal

[Decimal] is a decimal floating-point number with a 96-bit unsigned
mantissa, a sign flag, and a scale of 0 to 28 digits after the decimal
point. The numerical value of a decimal is calculated as:

  - -Mantissa / 10^Scale, if the sign flag is set.
  - Mantissa / 10^Scale, otherwise.

Arithmetic results are normalized: trailing zero fractional digits are
stripped, so equal values produced by arithmetic share one representation.
[Decimal.Round] is the exception and keeps the scale it was asked for.

Special values such as NaN or infinity are not supported. Conversions
from float64 map NaN and infinities to zero, and conversions whose
magnitude exceeds the target capacity clamp to the nearest representable
extreme rather than failing.

# Precision

A decimal carries at most 28 significant digits. Multiplication and
division drop excess low-order digits without rounding, mirroring the
truncating behavior of integer hardware. When rounding is wanted it has
to be requested explicitly through [Decimal.Round] with one of the
[RoundingMode] values.

# Arithmetic backends

The word-level primitives have two interchangeable implementations: one
built on the wide multiply and divide intrinsics of [math/bits], and a
portable one that works in 32-bit halves. The portable backend is
selected with the purego build tag; both produce identical results.

# Errors

Operations that cannot fail return their result directly. [Int128.Quo],
[Int128.Rem], [Decimal.Quo], and the parsing functions return an error
for zero divisors and malformed input. The Must variants panic instead,
which simplifies the initialization of package-level constants.
*/
package dec128
