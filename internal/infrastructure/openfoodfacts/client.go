package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ecoscorefinder/backend/internal/domain"
	"golang.org/x/time/rate"
)

// offProduct is the raw upstream product shape. Every field is optional;
// nothing past this boundary sees unvalidated external JSON.
type offProduct struct {
	Code          string   `json:"code"`
	ProductName   string   `json:"product_name"`
	Brands        string   `json:"brands"`
	Categories    string   `json:"categories"`
	ImageURL      string   `json:"image_url"`
	Price         string   `json:"price"`
	Countries     string   `json:"countries"`
	EcoScore      *float64 `json:"ecoscore_score"`
	EcoScoreGrade string   `json:"ecoscore_grade"`
}

// productEnvelope wraps the fetch-by-code response. Product is null when the
// barcode is unknown upstream.
type productEnvelope struct {
	Status  int         `json:"status"`
	Product *offProduct `json:"product"`
}

// searchEnvelope wraps the text search response.
type searchEnvelope struct {
	Products []offProduct `json:"products"`
	Count    int          `json:"count"`
}

// Client handles communication with the Open Food Facts API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *rate.Limiter
}

// NewClient creates a new Open Food Facts API client
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	// Open Food Facts asks for at most ~100 product reads per minute,
	// so roughly 1.6 requests/sec with a small burst.
	limiter := rate.NewLimiter(rate.Limit(1.6), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		userAgent:   userAgent,
		rateLimiter: limiter,
	}
}

// doRequest executes an HTTP GET request with the caller-identifying header.
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	return resp, nil
}

// FetchProduct looks up a single product by barcode. A missing product is
// domain.ErrProductNotFound; transport and parse failures wrap
// domain.ErrSourceUnavailable. The call is never retried here.
func (c *Client) FetchProduct(ctx context.Context, barcode string) (*domain.Product, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, url.PathEscape(barcode))

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Upstream signals unknown barcodes with non-2xx responses.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[OFF] Product not found: %s (status %d)", barcode, resp.StatusCode)
		return nil, domain.ErrProductNotFound
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrSourceUnavailable, err)
	}

	var envelope productEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrSourceUnavailable, err)
	}

	if envelope.Product == nil {
		return nil, domain.ErrProductNotFound
	}

	return mapProduct(envelope.Product, barcode), nil
}

// SearchProducts runs a free-text search and returns at most limit results.
// Entries without both a code and a usable name are dropped. An empty slice
// means the source found nothing; it is not an error.
func (c *Client) SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	params := url.Values{}
	params.Add("search_terms", query)
	params.Add("json", "1")
	params.Add("page_size", strconv.Itoa(limit))

	reqURL := fmt.Sprintf("%s/cgi/search.pl?%s", c.baseURL, params.Encode())

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[OFF] Search failed for %q: status %d", query, resp.StatusCode)
		return []domain.Product{}, nil
	}

	var envelope searchEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrSourceUnavailable, err)
	}

	results := make([]domain.Product, 0, len(envelope.Products))
	for _, p := range envelope.Products {
		if p.Code == "" || p.ProductName == "" {
			continue
		}
		if len(results) >= limit {
			break
		}
		results = append(results, *mapProduct(&p, p.Code))
	}

	log.Printf("[OFF] Search %q returned %d usable products", query, len(results))
	return results, nil
}
