package openfoodfacts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoscorefinder/backend/internal/domain"
)

func TestFetchProduct_Success(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		assert.Equal(t, "/api/v0/product/4006381333931.json", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": 1,
			"product": {
				"code": "4006381333931",
				"product_name": "Test Chips",
				"brands": "Acme",
				"categories": "snacks,chips",
				"ecoscore_score": 72.4,
				"ecoscore_grade": "b",
				"image_url": "https://images.example/chips.jpg",
				"countries": "Germany"
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "TestAgent/1.0", 5*time.Second)
	product, err := client.FetchProduct(context.Background(), "4006381333931")

	require.NoError(t, err)
	assert.Equal(t, "TestAgent/1.0", gotUserAgent)
	assert.Equal(t, "4006381333931", product.Barcode)
	assert.Equal(t, "Test Chips", product.Name)
	assert.Equal(t, "Acme", product.Brand)
	assert.Equal(t, "snacks,chips", product.Category)
	require.NotNil(t, product.EcoScore)
	assert.Equal(t, 72, *product.EcoScore)
	assert.Equal(t, "B", product.EcoScoreGrade)
	assert.Equal(t, "Germany", product.Country)
}

func TestFetchProduct_NonOKStatusMeansNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "TestAgent/1.0", 5*time.Second)
	_, err := client.FetchProduct(context.Background(), "0000000000000")

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestFetchProduct_NullProductMeansNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 0, "product": null}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "TestAgent/1.0", 5*time.Second)
	_, err := client.FetchProduct(context.Background(), "0000000000000")

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestFetchProduct_TransportErrorWrapsSourceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, "TestAgent/1.0", time.Second)
	_, err := client.FetchProduct(context.Background(), "4006381333931")

	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.False(t, errors.Is(err, domain.ErrProductNotFound))
}

func TestFetchProduct_MalformedJSONWrapsSourceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 1, "product": {`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "TestAgent/1.0", 5*time.Second)
	_, err := client.FetchProduct(context.Background(), "4006381333931")

	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestSearchProducts_FiltersUnusableEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cgi/search.pl", r.URL.Path)
		assert.Equal(t, "chips", r.URL.Query().Get("search_terms"))
		assert.Equal(t, "1", r.URL.Query().Get("json"))
		assert.Equal(t, "10", r.URL.Query().Get("page_size"))

		w.Write([]byte(`{
			"count": 4,
			"products": [
				{"code": "4006381333931", "product_name": "Good Chips"},
				{"code": "", "product_name": "No Code"},
				{"code": "73513537", "product_name": ""},
				{"code": "036000291452", "product_name": "Good Crackers"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "TestAgent/1.0", 5*time.Second)
	products, err := client.SearchProducts(context.Background(), "chips", 10)

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Good Chips", products[0].Name)
	assert.Equal(t, "Good Crackers", products[1].Name)
}

func TestSearchProducts_RespectsLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"count": 3,
			"products": [
				{"code": "1", "product_name": "One"},
				{"code": "2", "product_name": "Two"},
				{"code": "3", "product_name": "Three"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "TestAgent/1.0", 5*time.Second)
	products, err := client.SearchProducts(context.Background(), "anything", 2)

	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestSearchProducts_EmptyResultIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": 0, "products": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "TestAgent/1.0", 5*time.Second)
	products, err := client.SearchProducts(context.Background(), "nosuchproduct", 10)

	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestSearchProducts_UpstreamFailureDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "TestAgent/1.0", 5*time.Second)
	products, err := client.SearchProducts(context.Background(), "chips", 10)

	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestSubmitContribution(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		wantSuccess bool
	}{
		{"created", `{"status": 0}`, true},
		{"already exists", `{"status": 1}`, true},
		{"rejected", `{"status": 2, "error": "invalid code"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "POST", r.Method)
				assert.Equal(t, "/cgi/product_jqm2.pl", r.URL.Path)
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "4006381333931", r.PostForm.Get("code"))
				assert.Equal(t, "Test Chips", r.PostForm.Get("product_name"))

				w.Write([]byte(tt.response))
			}))
			defer server.Close()

			client := NewClient(server.URL, "TestAgent/1.0", 5*time.Second)
			result, err := client.SubmitContribution(context.Background(), Contribution{
				Barcode:     "4006-381-333931",
				ProductName: "Test Chips",
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantSuccess, result.Success)
			assert.NotEmpty(t, result.Message)
			if tt.wantSuccess {
				assert.Contains(t, result.ProductURL, "/product/4006381333931")
			}
		})
	}
}

func TestSubmitContribution_TransportFailureIsSoft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "TestAgent/1.0", time.Second)
	result, err := client.SubmitContribution(context.Background(), Contribution{
		Barcode:     "4006381333931",
		ProductName: "Test Chips",
	})

	require.NoError(t, err)
	assert.False(t, result.Success)
}
