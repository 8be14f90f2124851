package usecase

import (
	"context"
	"log"
	"sort"

	"github.com/ecoscorefinder/backend/internal/domain"
)

const (
	// DefaultMinSimilarity is applied when the caller does not supply a
	// threshold.
	DefaultMinSimilarity = 0.6

	// searchFanout is how many candidates the category search pulls before
	// scoring.
	searchFanout = 30

	// maxAlternatives bounds the ranked result.
	maxAlternatives = 10

	// fallbackSearchKey is used when a reference product has neither
	// category nor brand.
	fallbackSearchKey = "products"
)

// AlternativeService finds ranked, better-or-comparable substitutes for a
// reference product.
type AlternativeService struct {
	source   domain.ProductSource
	products domain.ProductRepository
}

// NewAlternativeService creates an alternative service with dependencies.
func NewAlternativeService(source domain.ProductSource, products domain.ProductRepository) *AlternativeService {
	return &AlternativeService{source: source, products: products}
}

// scoredCandidate pairs a candidate with its similarity for the duration of
// one ranking pass.
type scoredCandidate struct {
	product    domain.Product
	similarity float64
}

// FindAlternatives searches around the reference product's category, scores
// candidates, and returns at most maxAlternatives of them, best first.
// Zero candidates or an all-below-threshold pool yields an empty slice,
// never an error. minSimilarity is not validated; out-of-range values just
// filter everything out.
//
// Every returned alternative is upserted into local storage as a
// write-through side effect.
func (s *AlternativeService) FindAlternatives(ctx context.Context, reference *domain.Product, minSimilarity float64) ([]domain.Product, error) {
	searchKey := reference.Category
	if searchKey == "" {
		searchKey = reference.Brand
	}
	if searchKey == "" {
		searchKey = fallbackSearchKey
	}

	candidates, err := s.source.SearchProducts(ctx, searchKey, searchFanout)
	if err != nil {
		return nil, err
	}

	scored := make([]scoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		// A product is never its own alternative.
		if candidate.Barcode == reference.Barcode {
			continue
		}
		similarity := SimilarityScore(reference, &candidate)
		if similarity < minSimilarity {
			continue
		}
		scored = append(scored, scoredCandidate{product: candidate, similarity: similarity})
	}

	// Rank by eco-score improvement over the reference, best first, with
	// similarity as the tie-break.
	refScore := reference.EcoScoreValue()
	sort.SliceStable(scored, func(i, j int) bool {
		improvementI := scored[i].product.EcoScoreValue() - refScore
		improvementJ := scored[j].product.EcoScoreValue() - refScore
		if improvementI != improvementJ {
			return improvementI > improvementJ
		}
		return scored[i].similarity > scored[j].similarity
	})

	if len(scored) > maxAlternatives {
		scored = scored[:maxAlternatives]
	}

	alternatives := make([]domain.Product, 0, len(scored))
	for _, sc := range scored {
		alternatives = append(alternatives, sc.product)
	}

	// Write-through: persist what we are about to return. Failures don't
	// invalidate the ranked result.
	for i := range alternatives {
		if _, err := s.products.Upsert(ctx, &alternatives[i]); err != nil {
			log.Printf("[ALT] Failed to cache alternative %s: %v", alternatives[i].Barcode, err)
		}
	}

	return alternatives, nil
}
