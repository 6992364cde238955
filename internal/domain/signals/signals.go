// Package signals holds the six pure sub-score calculators behind the
// composite match score. Every calculator returns a value in [0,100] plus a
// typed evidence payload; missing data yields the signal's documented
// neutral default, never an error.
package signals

// Evidence is the tagged union of per-signal evidence payloads. Each signal
// has exactly one concrete evidence type, so the scorer's contract stays
// checkable at compile time.
type Evidence interface {
	signalEvidence()
}

// Result is one computed sub-score.
type Result struct {
	Value     float64
	Defaulted bool
	Evidence  Evidence
}

// Neutral defaults per signal, used when the calculator has no data to work
// with. Sustainability sits above the midpoint: an empty history is a new
// student, not a flight risk.
const (
	NeutralTemporal       = 50
	NeutralSkills         = 50
	NeutralSustainability = 60
	NeutralGrowth         = 50
	NeutralTrust          = 50
	NeutralNetwork        = 50
)

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
