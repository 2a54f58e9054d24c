// Package score holds the deterministic scoring math: combining repo
// scorecard dimensions into an overall score and banding fitness scores
// into verdicts.
package score

import "math"

// Fitness verdict bands. Boundaries are inclusive on the lower edge.
const (
	VerdictStrongFit  = "strong_fit"
	VerdictGoodFit    = "good_fit"
	VerdictPartialFit = "partial_fit"
	VerdictWeakFit    = "weak_fit"
)

// Aggregate combines the five scorecard dimension scores into one overall
// score. All dimensions weigh equally: the result is the arithmetic mean
// rounded to one decimal, so recomputing from the same inputs is always
// reproducible.
func Aggregate(codeQuality, testCoverage, complexity, structure, deployment float64) float64 {
	mean := (codeQuality + testCoverage + complexity + structure + deployment) / 5
	return math.Round(mean*10) / 10
}

// Clamp bounds v into [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// VerdictFor maps a 0-100 fitness score onto its verdict band. The model
// also reports a verdict, but the banding here is authoritative: a stored
// verdict always matches the stored score.
func VerdictFor(fitness float64) string {
	switch {
	case fitness >= 80:
		return VerdictStrongFit
	case fitness >= 60:
		return VerdictGoodFit
	case fitness >= 40:
		return VerdictPartialFit
	default:
		return VerdictWeakFit
	}
}
