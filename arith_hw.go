//go:build !purego

package dec128

// useHardwareWideOps selects the wide multiply and divide intrinsics in the
// primitive layer. The portable word-wise path stays compiled either way so
// the two can be tested against each other.
const useHardwareWideOps = true
