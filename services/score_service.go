package services

import (
	"math"

	"coliving_server/config"
	"coliving_server/metrics"
	"coliving_server/models"
)

// strengthMessages and considerationMessages are the human-readable tags
// attached per dimension when similarity crosses the configured thresholds.
var strengthMessages = map[string]string{
	models.DimensionBudgetLocation: "Budget and preferred areas align well",
	models.DimensionLifestyle:      "Very similar daily routines and lifestyle habits",
	models.DimensionSocial:         "Great social compatibility",
	models.DimensionPractical:      "Practical constraints line up (pets, timing, lease)",
	models.DimensionValues:         "Shared core values and priorities",
}

var considerationMessages = map[string]string{
	models.DimensionBudgetLocation: "Budget or location expectations differ - worth discussing",
	models.DimensionLifestyle:      "Different daily routines - may need to discuss schedules",
	models.DimensionSocial:         "Different social preferences - communication will be key",
	models.DimensionPractical:      "Practical constraints may clash (pets, timing, lease)",
	models.DimensionValues:         "Few shared values - review priorities together",
}

// ScoreService computes pairwise compatibility between feature vectors.
// Scoring is a pure function of the two vectors: symmetric, never failing
// for valid input, with an explicit insufficient-data sentinel instead of
// a zero score.
type ScoreService struct {
	Scoring config.ScoringConfig
}

// Score compares two feature vectors. Dimensions missing on either side are
// excluded and the remaining weights renormalized to sum to 1; a pair with
// no shared dimension yields Insufficient=true and must be ranked last.
func (ss *ScoreService) Score(a, b *models.FeatureVector) models.CompatibilityScore {
	metrics.ScoresComputed.Inc()

	result := models.CompatibilityScore{
		ProfileA:  a.ProfileID,
		ProfileB:  b.ProfileID,
		Confident: a.Confident && b.Confident,
	}

	// First pass: which dimensions participate, and their total weight.
	totalWeight := 0.0
	for _, name := range models.DimensionOrder {
		dimA, dimB := a.Dimension(name), b.Dimension(name)
		if dimA == nil || dimB == nil || !dimA.Present || !dimB.Present {
			continue
		}
		totalWeight += ss.Scoring.Weights[name]
	}
	if totalWeight <= 0 {
		result.Insufficient = true
		return result
	}

	raw := 0.0
	for _, name := range models.DimensionOrder {
		dimA, dimB := a.Dimension(name), b.Dimension(name)
		if dimA == nil || dimB == nil || !dimA.Present || !dimB.Present {
			continue
		}

		similarity := ss.dimensionSimilarity(dimA, dimB)
		weight := ss.Scoring.Weights[name] / totalWeight
		raw += similarity * weight

		result.Breakdown = append(result.Breakdown, models.DimensionScore{
			Dimension:  name,
			Similarity: similarity,
			Weight:     weight,
		})

		if similarity >= ss.Scoring.StrengthThreshold {
			result.Strengths = append(result.Strengths, strengthMessages[name])
		} else if similarity <= ss.Scoring.ConsiderationThreshold {
			result.Considerations = append(result.Considerations, considerationMessages[name])
		}
	}

	result.Raw = raw * 100
	result.Overall = int(math.Round(result.Raw))
	return result
}

// dimensionSimilarity averages per-feature similarities. A feature absent
// on either side contributes the neutral default so sparse profiles are not
// skewed toward zero.
func (ss *ScoreService) dimensionSimilarity(a, b *models.DimensionVector) float64 {
	if len(a.Features) == 0 {
		return ss.Scoring.NeutralDefault
	}

	total := 0.0
	for i := range a.Features {
		fa := &a.Features[i]
		fb := findFeature(b, fa.Name)
		total += ss.featureSimilarity(fa, fb)
	}
	return clamp(total / float64(len(a.Features)))
}

func (ss *ScoreService) featureSimilarity(a, b *models.Feature) float64 {
	if b == nil || !a.Present || !b.Present {
		return ss.Scoring.NeutralDefault
	}

	switch a.Kind {
	case models.FeatureScalar:
		return clamp(1 - math.Abs(a.Scalar-b.Scalar))
	case models.FeatureSet:
		return jaccard(a.Set, b.Set)
	case models.FeatureSpan:
		return spanOverlap(a.Span, b.Span)
	}
	return ss.Scoring.NeutralDefault
}

func findFeature(dim *models.DimensionVector, name string) *models.Feature {
	for i := range dim.Features {
		if dim.Features[i].Name == name {
			return &dim.Features[i]
		}
	}
	return nil
}

// jaccard is |A∩B| / |A∪B| over lowercased category sets.
func jaccard(a, b []string) float64 {
	union := make(map[string]bool, len(a)+len(b))
	inA := make(map[string]bool, len(a))
	for _, v := range a {
		union[v] = true
		inA[v] = true
	}
	intersection := 0
	seen := make(map[string]bool, len(b))
	for _, v := range b {
		if seen[v] {
			continue
		}
		seen[v] = true
		union[v] = true
		if inA[v] {
			intersection++
		}
	}
	if len(union) == 0 {
		return 0
	}
	return float64(intersection) / float64(len(union))
}

// spanOverlap is the shared range divided by the average range width,
// capped at 1. Two identical point spans are a perfect match; disjoint
// spans score zero.
func spanOverlap(a, b models.Span) float64 {
	overlap := math.Min(a.Hi, b.Hi) - math.Max(a.Lo, b.Lo)
	if overlap < 0 {
		return 0
	}
	avgWidth := (a.Width() + b.Width()) / 2
	if avgWidth == 0 {
		return 1
	}
	return clamp(overlap / avgWidth)
}
