package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
)

// Contribution is product data a user submits back to Open Food Facts.
type Contribution struct {
	Barcode        string `json:"barcode"`
	ProductName    string `json:"productName"`
	Brand          string `json:"brand,omitempty"`
	Category       string `json:"category,omitempty"`
	Ingredients    string `json:"ingredients,omitempty"`
	NutritionFacts string `json:"nutritionFacts,omitempty"`
	Comment        string `json:"comment,omitempty"`
}

// ContributionResult reports the upstream outcome of a contribution.
type ContributionResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ProductURL string `json:"productUrl,omitempty"`
}

// contributionEnvelope is the write endpoint's response shape.
type contributionEnvelope struct {
	Status int    `json:"status"`
	Error  string `json:"error,omitempty"`
}

// SubmitContribution posts product data to the Open Food Facts write
// endpoint. Upstream status 0 means created, 1 means the product already
// existed; both count as accepted.
func (c *Client) SubmitContribution(ctx context.Context, data Contribution) (*ContributionResult, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	form := url.Values{}
	form.Set("code", digitsOnly(data.Barcode))
	form.Set("product_name", data.ProductName)
	if data.Brand != "" {
		form.Set("brands", data.Brand)
	}
	if data.Category != "" {
		form.Set("categories", data.Category)
	}
	if data.Ingredients != "" {
		form.Set("ingredients_text", data.Ingredients)
	}
	if data.NutritionFacts != "" {
		form.Set("nutrition_facts", data.NutritionFacts)
	}
	if data.Comment != "" {
		form.Set("comment", data.Comment)
	}

	reqURL := fmt.Sprintf("%s/cgi/product_jqm2.pl", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ContributionResult{
			Success: false,
			Message: "Failed to submit contribution. Please try again later.",
		}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[OFF] Contribution rejected for %s: status %d", data.Barcode, resp.StatusCode)
		return &ContributionResult{
			Success: false,
			Message: "Failed to submit contribution. Please try again later.",
		}, nil
	}

	var envelope contributionEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &ContributionResult{
			Success: false,
			Message: "Failed to submit contribution. Please try again later.",
		}, nil
	}

	productURL := fmt.Sprintf("%s/product/%s", c.baseURL, digitsOnly(data.Barcode))

	switch envelope.Status {
	case 0:
		return &ContributionResult{
			Success:    true,
			Message:    "Thank you! Your product data has been submitted. It may take a few minutes to appear.",
			ProductURL: productURL,
		}, nil
	case 1:
		return &ContributionResult{
			Success:    true,
			Message:    "Product already exists. Your contribution has been recorded.",
			ProductURL: productURL,
		}, nil
	default:
		msg := envelope.Error
		if msg == "" {
			msg = "Failed to submit contribution. Please try again."
		}
		return &ContributionResult{Success: false, Message: msg}, nil
	}
}

// digitsOnly strips everything but digits from a barcode string.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
