package dec128

// pow10 is a cache of powers of ten that fit a single word, pow10[n] = 10^n.
var pow10 = [...]uint64{
	1,                          // 10^0
	10,                         // 10^1
	100,                        // 10^2
	1_000,                      // 10^3
	10_000,                     // 10^4
	100_000,                    // 10^5
	1_000_000,                  // 10^6
	10_000_000,                 // 10^7
	100_000_000,                // 10^8
	1_000_000_000,              // 10^9
	10_000_000_000,             // 10^10
	100_000_000_000,            // 10^11
	1_000_000_000_000,          // 10^12
	10_000_000_000_000,         // 10^13
	100_000_000_000_000,        // 10^14
	1_000_000_000_000_000,      // 10^15
	10_000_000_000_000_000,     // 10^16
	100_000_000_000_000_000,    // 10^17
	1_000_000_000_000_000_000,  // 10^18
	10_000_000_000_000_000_000, // 10^19
}

// pow10ext extends the cache to the top of the scale range with two-word
// values, pow10ext[n-20] = 10^n.
var pow10ext = [...]Int128{
	{lo: 0x6BC7_5E2D_6310_0000, hi: 0x5},         // 10^20
	{lo: 0x35C9_ADC5_DEA0_0000, hi: 0x36},        // 10^21
	{lo: 0x19E0_C9BA_B240_0000, hi: 0x21E},       // 10^22
	{lo: 0x02C7_E14A_F680_0000, hi: 0x152D},      // 10^23
	{lo: 0x1BCE_CCED_A100_0000, hi: 0xD3C2},      // 10^24
	{lo: 0x1614_0148_4A00_0000, hi: 0x8_4595},    // 10^25
	{lo: 0xDCC8_0CD2_E400_0000, hi: 0x52_B7D2},   // 10^26
	{lo: 0x9FD0_803C_E800_0000, hi: 0x33B_2E3C},  // 10^27
	{lo: 0x3E25_0261_1000_0000, hi: 0x204F_CE5E}, // 10^28
}

// pow10Int128 returns 10^n. Powers beyond the cached range are derived
// iteratively.
func pow10Int128(n int) Int128 {
	switch {
	case n <= 0:
		return Int128{lo: 1}
	case n < len(pow10):
		return Int128{lo: pow10[n]}
	case n-len(pow10) < len(pow10ext):
		return pow10ext[n-len(pow10)]
	}
	x := Int128{lo: 1}
	for i := 0; i < n; i++ {
		x = x.Mul(ten)
	}
	return x
}
