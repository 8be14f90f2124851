package usecase

import (
	"math"
	"testing"

	"github.com/ecoscorefinder/backend/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestSimilarityScore_WorkedScenario(t *testing.T) {
	reference := &domain.Product{Barcode: "111", EcoScore: intPtr(40), Price: "5.00", Category: "snacks,chips"}

	t.Run("close candidate scores high", func(t *testing.T) {
		candidate := &domain.Product{Barcode: "222", EcoScore: intPtr(80), Price: "5.50", Category: "snacks,crackers"}

		got := SimilarityScore(reference, candidate)
		want := 0.4*0.6 + 0.4*(5.00/5.50) + 0.2*1.0
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("SimilarityScore = %v, want %v", got, want)
		}
		if got < DefaultMinSimilarity {
			t.Errorf("SimilarityScore = %v, want >= default threshold %v", got, DefaultMinSimilarity)
		}
	})

	t.Run("distant candidate scores low", func(t *testing.T) {
		candidate := &domain.Product{Barcode: "333", EcoScore: intPtr(20), Price: "50.00", Category: "drinks"}

		got := SimilarityScore(reference, candidate)
		want := 0.4*0.8 + 0.4*0.1 + 0.2*0.5
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("SimilarityScore = %v, want %v", got, want)
		}
		if got >= DefaultMinSimilarity {
			t.Errorf("SimilarityScore = %v, want < default threshold %v", got, DefaultMinSimilarity)
		}
	})
}

func TestSimilarityScore_AlwaysInUnitInterval(t *testing.T) {
	products := []*domain.Product{
		{Barcode: "a"},
		{Barcode: "b", EcoScore: intPtr(0), Price: "0.01", Category: "x"},
		{Barcode: "c", EcoScore: intPtr(100), Price: "9999", Category: "y,z"},
		{Barcode: "d", EcoScore: intPtr(50), Price: "not a price"},
		{Barcode: "e", Price: "-3.00", Category: ","},
	}

	for _, ref := range products {
		for _, cand := range products {
			got := SimilarityScore(ref, cand)
			if got < 0 || got > 1 {
				t.Errorf("SimilarityScore(%s, %s) = %v, want in [0,1]", ref.Barcode, cand.Barcode, got)
			}
		}
	}
}

func TestSimilarityScore_EcoAndPriceTermsSymmetric(t *testing.T) {
	a := &domain.Product{Barcode: "a", EcoScore: intPtr(30), Price: "2.50"}
	b := &domain.Product{Barcode: "b", EcoScore: intPtr(70), Price: "5.00"}

	if got, want := ecoScoreSimilarity(a, b), ecoScoreSimilarity(b, a); got != want {
		t.Errorf("ecoScoreSimilarity asymmetric: %v vs %v", got, want)
	}
	if got, want := priceSimilarity(a.Price, b.Price), priceSimilarity(b.Price, a.Price); got != want {
		t.Errorf("priceSimilarity asymmetric: %v vs %v", got, want)
	}
}

func TestPriceSimilarity(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 string
		want   float64
	}{
		{"both parse", "5.00", "10.00", 0.5},
		{"equal prices", "3.99", "3.99", 1.0},
		{"embedded currency text", "EUR 4.50", "4.50", 1.0},
		{"one missing", "", "5.00", neutralSimilarity},
		{"both missing", "", "", neutralSimilarity},
		{"unparseable", "free", "5.00", neutralSimilarity},
		{"zero price is not positive", "0", "5.00", neutralSimilarity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := priceSimilarity(tt.p1, tt.p2)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("priceSimilarity(%q, %q) = %v, want %v", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}

func TestCategorySimilarity(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		candidate string
		want      float64
	}{
		{"candidate head contained", "snacks,chips", "snacks,crackers", 1.0},
		{"case insensitive", "Snacks,Chips", "SNACKS", 1.0},
		{"both present no overlap", "snacks,chips", "drinks", 0.5},
		{"reference absent", "", "drinks", neutralSimilarity},
		{"candidate absent", "snacks", "", neutralSimilarity},
		{"candidate head empty", "snacks", ",chips", neutralSimilarity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categorySimilarity(tt.reference, tt.candidate)
			if got != tt.want {
				t.Errorf("categorySimilarity(%q, %q) = %v, want %v", tt.reference, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestSimilarityScore_MissingEcoScoresUseDefault(t *testing.T) {
	reference := &domain.Product{Barcode: "r"}
	candidate := &domain.Product{Barcode: "c", EcoScore: intPtr(domain.DefaultEcoScore)}

	// Both sides resolve to the substituted default, so the eco term is 1.
	got := SimilarityScore(reference, candidate)
	want := 0.4*1.0 + 0.4*neutralSimilarity + 0.2*neutralSimilarity
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("SimilarityScore = %v, want %v", got, want)
	}
}
