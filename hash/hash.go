// Package hash implements the fast modular hash used to draw deterministic row samples
// while boosting.
package hash

// Hash mixes n with the salt s and reduces the result into the range 0 to max-1.
func Hash(n uint32, s uint32, max uint32) uint32 {
	// mixing stage, mix input with salt using subtraction
	var m = uint32(n) - uint32(s)

	// hashing stage, use xor shift with prime coefficients
	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19

	// mixing stage 2, mix input with salt using addition
	m += s

	// modular stage, multiply shift instead of modulo
	// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
	return uint32((uint64(m) * uint64(max)) >> 32)
}

// resolution is the number of buckets Keep draws from
const resolution = 1 << 24

// Salt derives the per round salt from the seed.
func Salt(round, seed uint32) uint32 {
	return Hash(round, seed, 0xFFFFFFFF) ^ seed
}

// Keep reports whether the row takes part in the given boosting round.
// The same row, round, seed and rate always give the same answer.
func Keep(row, round, seed uint32, rate float64) bool {
	if rate >= 1 {
		return true
	}
	if rate <= 0 {
		return false
	}
	return float64(Hash(row, Salt(round, seed), resolution)) < rate*resolution
}
