// Package dice provides the randomness abstraction used by battle setup and
// turn resolution.
package dice

// Source is the randomness provider for move generation, enemy selection,
// enemy move choice, and inventory rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
