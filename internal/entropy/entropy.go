// Package entropy provides the deterministic pseudo-random source behind
// movement timing and offsets.
package entropy

// DefaultSeed is the seed a fresh device boots with.
const DefaultSeed uint32 = 12345

// Linear congruential recurrence parameters (ANSI C rand).
const (
	multiplier uint32 = 1103515245
	increment  uint32 = 12345
	rawMask    uint32 = 0x7FFF
)

// Source is a linear congruential generator over a 32-bit seed. Arithmetic
// wraps mod 2^32. Source is not safe for concurrent use.
type Source struct {
	seed uint32
}

// New returns a Source starting at seed.
func New(seed uint32) *Source {
	return &Source{seed: seed}
}

// Seed returns the current generator state.
func (s *Source) Seed() uint32 {
	return s.seed
}

// Reseed replaces the generator state.
func (s *Source) Reseed(seed uint32) {
	s.seed = seed
}

// NextRaw advances the seed and returns a 15-bit value in [0, 32767].
func (s *Source) NextRaw() uint32 {
	s.seed = s.seed*multiplier + increment
	return (s.seed >> 16) & rawMask
}

// Range returns a value in [min, max] inclusive. max must not be less than
// min; the result is meaningless otherwise.
func (s *Source) Range(min, max int32) int32 {
	span := uint32(max-min) + 1
	return min + int32(s.NextRaw()%span)
}

// Perturb mixes an external value, usually a timestamp, into the seed.
func (s *Source) Perturb(extra uint32) {
	s.seed += extra
}
