package rating

import "math"

// KFactor controls how much a single result moves both ratings.
const KFactor = 32

type Outcome int

const (
	// WinA means the first player won.
	WinA Outcome = iota
	// LossA means the first player lost.
	LossA
	// Draw is representable for completeness; the match coordinator
	// only ever reports win/loss.
	Draw
)

// Update computes the Elo deltas for a pair of ratings and an outcome.
// Deltas always sum to zero since both sides share the same K-factor.
func Update(ratingA, ratingB float64, outcome Outcome) (deltaA, deltaB float64) {
	expectedA := 1 / (1 + math.Pow(10, (ratingB-ratingA)/400))
	expectedB := 1 - expectedA

	var scoreA, scoreB float64
	switch outcome {
	case WinA:
		scoreA, scoreB = 1, 0
	case LossA:
		scoreA, scoreB = 0, 1
	case Draw:
		scoreA, scoreB = 0.5, 0.5
	}

	deltaA = KFactor * (scoreA - expectedA)
	deltaB = KFactor * (scoreB - expectedB)
	return deltaA, deltaB
}
