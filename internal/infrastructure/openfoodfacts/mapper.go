package openfoodfacts

import (
	"math"
	"strings"

	"github.com/ecoscorefinder/backend/internal/domain"
)

// Per-field character budgets imposed by the persistence schema.
const (
	maxNameLen     = 255
	maxBrandLen    = 255
	maxCategoryLen = 255
	maxImageURLLen = 500
	maxCountryLen  = 100
	maxGradeLen    = 10
)

const unknownProductName = "Unknown Product"

// mapProduct normalizes a raw upstream product into the domain shape,
// truncating variable-length fields and deriving sub-scores the source
// does not supply.
func mapProduct(p *offProduct, barcode string) *domain.Product {
	ecoScore := domain.DefaultEcoScore
	var ecoScorePtr *int
	if p.EcoScore != nil {
		ecoScore = int(math.Round(*p.EcoScore))
		ecoScorePtr = &ecoScore
	} else {
		// Substituted default is persisted so scoring stays total.
		v := domain.DefaultEcoScore
		ecoScorePtr = &v
	}

	grade := p.EcoScoreGrade
	if grade == "" {
		grade = domain.DefaultEcoScoreGrade
	}

	name := p.ProductName
	if name == "" {
		name = unknownProductName
	}

	return &domain.Product{
		Barcode:                 barcode,
		Name:                    truncate(name, maxNameLen),
		Brand:                   truncate(p.Brands, maxBrandLen),
		Category:                truncate(p.Categories, maxCategoryLen),
		EcoScore:                ecoScorePtr,
		EcoScoreGrade:           truncate(strings.ToUpper(grade), maxGradeLen),
		EnvironmentalFootprint:  EnvironmentalFootprint(ecoScore),
		PackagingSustainability: PackagingSustainability(ecoScore),
		CarbonImpact:            CarbonImpact(ecoScore),
		ImageURL:                truncate(p.ImageURL, maxImageURLLen),
		Price:                   p.Price,
		Country:                 truncate(p.Countries, maxCountryLen),
	}
}

// EnvironmentalFootprint estimates the footprint sub-score from the
// aggregate eco-score. Not clamped; can exceed 100 by design.
func EnvironmentalFootprint(ecoScore int) int {
	return int(math.Round(float64(ecoScore) * 1.2))
}

// PackagingSustainability estimates the packaging sub-score, clamped to
// [0, 100].
func PackagingSustainability(ecoScore int) int {
	v := ecoScore + 10
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return v
}

// CarbonImpact estimates carbon impact; a lower eco-score means a higher
// carbon impact.
func CarbonImpact(ecoScore int) int {
	return 100 - ecoScore
}

// truncate cuts s to at most max characters, never splitting a rune. Fields
// are never rejected for length, only shortened.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
