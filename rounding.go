package dec128

// RoundingMode determines how [Decimal.Round] resolves the digits it
// removes.
type RoundingMode uint8

const (
	// ToNearest rounds to the nearest value, resolving ties toward the
	// even neighbor (banker's rounding).
	ToNearest RoundingMode = iota

	// ToNearestTiesAway rounds to the nearest value, resolving ties away
	// from zero.
	ToNearestTiesAway

	// ToZero truncates toward zero.
	ToZero

	// ToPositiveInfinity rounds up toward positive infinity.
	ToPositiveInfinity

	// ToNegativeInfinity rounds down toward negative infinity.
	ToNegativeInfinity
)

// String implements the [fmt.Stringer] interface.
func (m RoundingMode) String() string {
	switch m {
	case ToNearest:
		return "ToNearest"
	case ToNearestTiesAway:
		return "ToNearestTiesAway"
	case ToZero:
		return "ToZero"
	case ToPositiveInfinity:
		return "ToPositiveInfinity"
	case ToNegativeInfinity:
		return "ToNegativeInfinity"
	}
	return "Unknown"
}
