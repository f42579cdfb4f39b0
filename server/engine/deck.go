package engine

// glibc-lineage LCG constants. The stream must be bit-exact and resumable
// from a single persisted uint64, so this stays hand-rolled instead of
// going through math/rand.
const (
	seedMul = 1103515245
	seedInc = 12345
)

// Draw returns the card for the current deck seed and the seed for the
// next draw. Card identity is seed mod 52; the advance wraps in uint64.
func Draw(seed uint64) (Card, uint64) {
	return Card(seed % 52), seed*seedMul + seedInc
}
