package usecase

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ecoscorefinder/backend/internal/domain"
)

// Similarity weights. A product decision, not derived from data: consumers
// care most about comparable eco-impact and comparable price, with category
// match as a lower-weight relevance gate.
const (
	weightEcoScore = 0.4
	weightPrice    = 0.4
	weightCategory = 0.2

	// neutralSimilarity is the contribution of a term whose inputs are
	// missing or unparseable. Scoring must stay total, so unknowns count
	// as "neither similar nor dissimilar" instead of failing.
	neutralSimilarity = 0.5
)

// decimalRegex extracts the first decimal-looking substring from a price.
var decimalRegex = regexp.MustCompile(`\d+(?:\.\d+)?`)

// SimilarityScore computes a blended similarity in [0,1] between a reference
// product and a candidate, used purely for ranking.
func SimilarityScore(reference, candidate *domain.Product) float64 {
	eco := ecoScoreSimilarity(reference, candidate)
	price := priceSimilarity(reference.Price, candidate.Price)
	category := categorySimilarity(reference.Category, candidate.Category)

	return weightEcoScore*eco + weightPrice*price + weightCategory*category
}

// ecoScoreSimilarity is 1 at equal scores, falling linearly to 0 at a
// 100-point gap. Missing scores use the substituted default.
func ecoScoreSimilarity(reference, candidate *domain.Product) float64 {
	diff := math.Abs(float64(candidate.EcoScoreValue() - reference.EcoScoreValue()))
	return math.Max(0, 1-diff/100)
}

// priceSimilarity is min/max of the two prices when both parse to a positive
// number, else the neutral contribution.
func priceSimilarity(referencePrice, candidatePrice string) float64 {
	p1, ok1 := parsePrice(referencePrice)
	p2, ok2 := parsePrice(candidatePrice)
	if !ok1 || !ok2 {
		return neutralSimilarity
	}
	return math.Min(p1, p2) / math.Max(p1, p2)
}

// parsePrice extracts the first decimal substring from a price string.
// Only positive values count as parsed.
func parsePrice(price string) (float64, bool) {
	match := decimalRegex.FindString(price)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// categorySimilarity is 1.0 when the reference category contains the
// candidate's first taxonomy segment, 0.5 when both are present without
// overlap, and neutral 0.5 when either is absent. The containment check is
// directional by construction, reference to candidate.
func categorySimilarity(referenceCategory, candidateCategory string) float64 {
	if referenceCategory == "" || candidateCategory == "" {
		return neutralSimilarity
	}

	candidateHead := candidateCategory
	if idx := strings.Index(candidateHead, ","); idx >= 0 {
		candidateHead = candidateHead[:idx]
	}
	candidateHead = strings.TrimSpace(strings.ToLower(candidateHead))
	if candidateHead == "" {
		return neutralSimilarity
	}

	if strings.Contains(strings.ToLower(referenceCategory), candidateHead) {
		return 1.0
	}
	return neutralSimilarity
}
