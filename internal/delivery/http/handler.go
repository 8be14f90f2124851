package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecoscorefinder/backend/internal/domain"
	"github.com/ecoscorefinder/backend/internal/infrastructure/openfoodfacts"
	"github.com/ecoscorefinder/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products        *usecase.ProductService
	alternatives    *usecase.AlternativeService
	favorites       *usecase.FavoriteService
	comparisons     *usecase.ComparisonService
	shares          *usecase.ShareService
	preferences     *usecase.PreferenceService
	notifications   *usecase.NotificationService
	recommendations *usecase.RecommendationService
	contributions   *openfoodfacts.Client
}

// NewHandler creates a new HTTP handler
func NewHandler(
	products *usecase.ProductService,
	alternatives *usecase.AlternativeService,
	favorites *usecase.FavoriteService,
	comparisons *usecase.ComparisonService,
	shares *usecase.ShareService,
	preferences *usecase.PreferenceService,
	notifications *usecase.NotificationService,
	recommendations *usecase.RecommendationService,
	contributions *openfoodfacts.Client,
) *Handler {
	return &Handler{
		products:        products,
		alternatives:    alternatives,
		favorites:       favorites,
		comparisons:     comparisons,
		shares:          shares,
		preferences:     preferences,
		notifications:   notifications,
		recommendations: recommendations,
		contributions:   contributions,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "ecoscorefinder-backend",
		"version": "1.0.0",
	})
}

// GetProduct resolves a barcode to a product.
func (h *Handler) GetProduct(c *gin.Context) {
	barcode := c.Param("barcode")
	if !usecase.ValidBarcode(barcode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barcode format"})
		return
	}

	product, err := h.products.GetProduct(c.Request.Context(), barcode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// SearchProducts runs a free-text product search.
func (h *Handler) SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	results, err := h.products.SearchProducts(c.Request.Context(), query, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": results, "count": len(results)})
}

// GetAlternatives returns ranked alternatives for a barcode.
func (h *Handler) GetAlternatives(c *gin.Context) {
	barcode := c.Param("barcode")

	minSimilarity := usecase.DefaultMinSimilarity
	if raw := c.Query("min_similarity"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_similarity must be a number"})
			return
		}
		minSimilarity = parsed
	}

	reference, err := h.products.GetProduct(c.Request.Context(), barcode)
	if err != nil {
		respondError(c, err)
		return
	}

	alternatives, err := h.alternatives.FindAlternatives(c.Request.Context(), reference, minSimilarity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alternatives": alternatives, "count": len(alternatives)})
}

// SubmitContribution validates and forwards a product contribution.
func (h *Handler) SubmitContribution(c *gin.Context) {
	var contribution openfoodfacts.Contribution
	if err := c.ShouldBindJSON(&contribution); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if !usecase.ValidBarcode(contribution.Barcode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barcode format"})
		return
	}
	if contribution.ProductName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product name is required"})
		return
	}

	result, err := h.contributions.SubmitContribution(c.Request.Context(), contribution)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListFavorites returns the authenticated user's saved products.
func (h *Handler) ListFavorites(c *gin.Context) {
	products, err := h.favorites.List(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": products})
}

type addFavoriteRequest struct {
	ProductID uint   `json:"productId" binding:"required"`
	Notes     string `json:"notes"`
}

// AddFavorite saves a product to the user's favorites.
func (h *Handler) AddFavorite(c *gin.Context) {
	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.favorites.Add(c.Request.Context(), userID(c), req.ProductID, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// RemoveFavorite drops a product from the user's favorites.
func (h *Handler) RemoveFavorite(c *gin.Context) {
	productID, err := parseUintParam(c, "productId")
	if err != nil {
		return
	}

	if err := h.favorites.Remove(c.Request.Context(), userID(c), productID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// IsFavorite reports whether the user saved the product.
func (h *Handler) IsFavorite(c *gin.Context) {
	productID, err := parseUintParam(c, "productId")
	if err != nil {
		return
	}

	saved, err := h.favorites.IsFavorite(c.Request.Context(), userID(c), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isFavorite": saved})
}

// ListComparisons returns the user's comparisons with product details.
func (h *Handler) ListComparisons(c *gin.Context) {
	comparisons, err := h.comparisons.List(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comparisons": comparisons})
}

type createComparisonRequest struct {
	Name       string `json:"name" binding:"required"`
	ProductIDs []uint `json:"productIds" binding:"required"`
}

// CreateComparison saves a new comparison.
func (h *Handler) CreateComparison(c *gin.Context) {
	var req createComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.comparisons.Create(c.Request.Context(), userID(c), req.Name, req.ProductIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// DeleteComparison removes a comparison owned by the user.
func (h *Handler) DeleteComparison(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return
	}

	if err := h.comparisons.Delete(c.Request.Context(), id, userID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type createShareRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Barcodes    []string   `json:"barcodes" binding:"required"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

// CreateShare mints a public share link for a batch comparison.
func (h *Handler) CreateShare(c *gin.Context) {
	var req createShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	share, err := h.shares.Create(c.Request.Context(), userID(c), usecase.CreateShareInput{
		Title:       req.Title,
		Description: req.Description,
		Barcodes:    req.Barcodes,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, share)
}

// GetSharedBatch resolves a public share token. No authentication.
func (h *Handler) GetSharedBatch(c *gin.Context) {
	share, err := h.shares.GetByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, share)
}

// ListShares returns the user's shares.
func (h *Handler) ListShares(c *gin.Context) {
	shares, err := h.shares.ListByUser(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shares": shares})
}

type updateShareRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateShare overwrites a share's title and description.
func (h *Handler) UpdateShare(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return
	}

	var req updateShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.shares.UpdateMetadata(c.Request.Context(), id, userID(c), req.Title, req.Description); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteShare removes a share owned by the user.
func (h *Handler) DeleteShare(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return
	}

	if err := h.shares.Delete(c.Request.Context(), id, userID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetRecommendations returns personalized LLM recommendations.
func (h *Handler) GetRecommendations(c *gin.Context) {
	text, err := h.recommendations.ForUser(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": text})
}

// GetShoppingTips returns generic eco-shopping tips.
func (h *Handler) GetShoppingTips(c *gin.Context) {
	text, err := h.recommendations.ShoppingTips(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tips": text})
}

// AnalyzeProduct returns an LLM sustainability analysis for a barcode.
func (h *Handler) AnalyzeProduct(c *gin.Context) {
	product, err := h.products.GetProduct(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}

	text, err := h.recommendations.AnalyzeProduct(c.Request.Context(), product)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": text})
}

type compareRequest struct {
	Barcode1 string `json:"barcode1" binding:"required"`
	Barcode2 string `json:"barcode2" binding:"required"`
}

// CompareProducts returns an LLM comparison of two products.
func (h *Handler) CompareProducts(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	first, err := h.products.GetProduct(c.Request.Context(), req.Barcode1)
	if err != nil {
		respondError(c, err)
		return
	}
	second, err := h.products.GetProduct(c.Request.Context(), req.Barcode2)
	if err != nil {
		respondError(c, err)
		return
	}

	text, err := h.recommendations.CompareProducts(c.Request.Context(), first, second)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comparison": text})
}

// GetPreferences returns the user's preferences, creating defaults on first
// access.
func (h *Handler) GetPreferences(c *gin.Context) {
	prefs, err := h.preferences.Get(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

type updatePreferencesRequest struct {
	EnablePriceDropAlerts      *bool    `json:"enablePriceDropAlerts"`
	EnableNewAlternativeAlerts *bool    `json:"enableNewAlternativeAlerts"`
	PriceDropThresholdPercent  *float64 `json:"priceDropThresholdPercent"`
	PreferredCategories        []string `json:"preferredCategories"`
	MinEcoScore                *int     `json:"minEcoScore"`
}

// UpdatePreferences applies a partial preference change.
func (h *Handler) UpdatePreferences(c *gin.Context) {
	var req updatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	prefs, err := h.preferences.Update(c.Request.Context(), userID(c), usecase.PreferenceUpdate{
		EnablePriceDropAlerts:      req.EnablePriceDropAlerts,
		EnableNewAlternativeAlerts: req.EnableNewAlternativeAlerts,
		PriceDropThresholdPercent:  req.PriceDropThresholdPercent,
		PreferredCategories:        req.PreferredCategories,
		MinEcoScore:                req.MinEcoScore,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// ListNotifications returns the user's notifications.
func (h *Handler) ListNotifications(c *gin.Context) {
	unsentOnly := c.Query("unsent") == "true"
	notifications, err := h.notifications.List(c.Request.Context(), userID(c), unsentOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// ProcessNotifications delivers the user's pending notifications and reports
// how many were processed.
func (h *Handler) ProcessNotifications(c *gin.Context) {
	processed, err := h.notifications.ProcessPending(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"processed": processed})
}

// respondError maps domain errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrShareNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidBarcode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSourceUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "product database is unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, err
	}
	return uint(v), nil
}
