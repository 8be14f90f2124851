package usecase

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/ecoscorefinder/backend/internal/domain"
)

// Fallback copy returned when the language model is unavailable. The
// recommendation surface degrades to canned text, never to an error.
const (
	fallbackRecommendations = "Unable to generate recommendations at this time. Please try again later."
	fallbackTips            = "Unable to generate tips at this time. Please try again later."
	fallbackAnalysis        = "Unable to analyze product at this time."
	fallbackComparison      = "Unable to compare products at this time."

	emptyFavoritesPrompt = "Start by saving your favorite products to get personalized recommendations!"
)

// RecommendationService produces free-text shopping advice via a hosted
// language model.
type RecommendationService struct {
	llm       domain.LLMClient
	favorites domain.FavoriteRepository
}

// NewRecommendationService creates a recommendation service with dependencies.
func NewRecommendationService(llm domain.LLMClient, favorites domain.FavoriteRepository) *RecommendationService {
	return &RecommendationService{llm: llm, favorites: favorites}
}

// ForUser generates personalized recommendations from the user's favorites.
func (s *RecommendationService) ForUser(ctx context.Context, userID uint) (string, error) {
	favorites, err := s.favorites.ListProducts(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(favorites) == 0 {
		return emptyFavoritesPrompt, nil
	}

	var summary strings.Builder
	total := 0
	for _, p := range favorites {
		fmt.Fprintf(&summary, "- %s (Brand: %s, Eco-Score: %d/100)\n",
			p.Name, orUnknown(p.Brand), p.EcoScoreValue())
		total += p.EcoScoreValue()
	}
	average := int(math.Round(float64(total) / float64(len(favorites))))

	content, err := s.llm.Complete(ctx, []domain.ChatMessage{
		{
			Role:    "system",
			Content: "You are an eco-conscious shopping advisor. Analyze the user's saved products and provide personalized recommendations for sustainable shopping. Be encouraging and specific about why certain choices are better for the environment. Keep recommendations concise and actionable.",
		},
		{
			Role: "user",
			Content: fmt.Sprintf(`Here are my saved products:
%s
My average eco-score is %d/100.

Please provide:
1. A brief analysis of my current shopping patterns
2. 2-3 specific eco-friendly shopping tips based on my preferences
3. Suggestions for sustainable alternatives I should consider

Keep the response friendly and motivating!`, summary.String(), average),
		},
	})
	if err != nil {
		log.Printf("[RECO] LLM failure for user %d: %v", userID, err)
		return fallbackRecommendations, nil
	}
	return content, nil
}

// ShoppingTips generates generic eco-friendly shopping tips.
func (s *RecommendationService) ShoppingTips(ctx context.Context) (string, error) {
	content, err := s.llm.Complete(ctx, []domain.ChatMessage{
		{
			Role:    "system",
			Content: "You are an environmental sustainability expert. Provide practical, actionable eco-friendly shopping tips that anyone can implement. Be concise and focus on high-impact changes.",
		},
		{
			Role:    "user",
			Content: "Generate 5 practical eco-friendly shopping tips that can help reduce environmental impact. Format as a numbered list with brief explanations.",
		},
	})
	if err != nil {
		log.Printf("[RECO] LLM failure for tips: %v", err)
		return fallbackTips, nil
	}
	return content, nil
}

// AnalyzeProduct generates a brief sustainability analysis of one product.
func (s *RecommendationService) AnalyzeProduct(ctx context.Context, product *domain.Product) (string, error) {
	content, err := s.llm.Complete(ctx, []domain.ChatMessage{
		{
			Role:    "system",
			Content: "You are a sustainability analyst. Provide a brief, insightful analysis of a product's environmental impact based on its eco-score and components. Be informative but accessible to consumers.",
		},
		{
			Role: "user",
			Content: fmt.Sprintf(`Analyze this product's sustainability:
Product: %s
Brand: %s
Category: %s
Eco-Score: %d/100
Environmental Footprint: %d/100
Packaging Sustainability: %d/100
Carbon Impact: %d/100

Provide a brief analysis (2-3 sentences) of what this score means for the environment and suggest one improvement the manufacturer could make.`,
				product.Name, orUnknown(product.Brand), orUnknown(product.Category),
				product.EcoScoreValue(), product.EnvironmentalFootprint,
				product.PackagingSustainability, product.CarbonImpact),
		},
	})
	if err != nil {
		log.Printf("[RECO] LLM failure analyzing %s: %v", product.Barcode, err)
		return fallbackAnalysis, nil
	}
	return content, nil
}

// CompareProducts generates a two-product sustainability comparison.
func (s *RecommendationService) CompareProducts(ctx context.Context, first, second *domain.Product) (string, error) {
	content, err := s.llm.Complete(ctx, []domain.ChatMessage{
		{
			Role:    "system",
			Content: "You are a sustainability comparison expert. Compare two products and help consumers understand which is more eco-friendly and why. Be clear and objective.",
		},
		{
			Role: "user",
			Content: fmt.Sprintf(`Compare the sustainability of these two products:

Product 1: %s
- Brand: %s
- Eco-Score: %d/100
- Environmental Footprint: %d/100
- Packaging: %d/100
- Carbon: %d/100

Product 2: %s
- Brand: %s
- Eco-Score: %d/100
- Environmental Footprint: %d/100
- Packaging: %d/100
- Carbon: %d/100

Provide a brief comparison (2-3 sentences) explaining which is more sustainable and why.`,
				first.Name, orUnknown(first.Brand), first.EcoScoreValue(),
				first.EnvironmentalFootprint, first.PackagingSustainability, first.CarbonImpact,
				second.Name, orUnknown(second.Brand), second.EcoScoreValue(),
				second.EnvironmentalFootprint, second.PackagingSustainability, second.CarbonImpact),
		},
	})
	if err != nil {
		log.Printf("[RECO] LLM failure comparing %s and %s: %v", first.Barcode, second.Barcode, err)
		return fallbackComparison, nil
	}
	return content, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
