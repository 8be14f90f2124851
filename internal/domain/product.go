package domain

import "time"

// Product is one consumer product as known to the system, keyed by barcode.
// Rows are cached copies of Open Food Facts data plus derived sub-scores.
type Product struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Barcode string `json:"barcode" gorm:"size:64;uniqueIndex;not null"`
	Name    string `json:"name" gorm:"size:255;not null"`
	Brand   string `json:"brand,omitempty" gorm:"size:255"`
	// Category is often a comma-separated taxonomy path, e.g. "snacks,chips".
	Category string `json:"category,omitempty" gorm:"size:255"`

	// EcoScore is 0-100. A nil value means the score is unknown, which is
	// distinct from a low score.
	EcoScore      *int   `json:"ecoScore" gorm:"column:eco_score"`
	EcoScoreGrade string `json:"ecoScoreGrade,omitempty" gorm:"size:10"`

	// Derived sub-scores, computed from EcoScore when the upstream source
	// does not supply them. EnvironmentalFootprint is intentionally not
	// clamped and can exceed 100.
	EnvironmentalFootprint  int `json:"environmentalFootprint"`
	PackagingSustainability int `json:"packagingSustainability"`
	CarbonImpact            int `json:"carbonImpact"`

	ImageURL string `json:"imageUrl,omitempty" gorm:"size:500"`
	// Price is a decimal-as-string with unspecified currency, as delivered
	// by the upstream source.
	Price   string `json:"price,omitempty" gorm:"size:32"`
	Country string `json:"country,omitempty" gorm:"size:100"`

	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated" gorm:"autoUpdateTime"`
}

// DefaultEcoScore and DefaultEcoScoreGrade are substituted when the upstream
// source has no eco-score for a product, so that derived scores and
// similarity ranking always have a value to work from.
const (
	DefaultEcoScore      = 50
	DefaultEcoScoreGrade = "C"
)

// EcoScoreValue returns the eco-score, substituting the neutral default
// when the score is unknown.
func (p *Product) EcoScoreValue() int {
	if p.EcoScore == nil {
		return DefaultEcoScore
	}
	return *p.EcoScore
}

// Favorite links a user to a saved product.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index;not null"`
	ProductID uint      `json:"productId" gorm:"index;not null"`
	Notes     string    `json:"notes,omitempty" gorm:"type:text"`
	SavedAt   time.Time `json:"savedAt" gorm:"autoCreateTime"`
}

// Comparison is a named set of products a user compares side by side.
type Comparison struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"userId" gorm:"index;not null"`
	Name       string    `json:"name" gorm:"size:255;not null"`
	ProductIDs IDList    `json:"productIds" gorm:"type:json"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ComparisonWithProducts is a comparison enriched with its product rows.
type ComparisonWithProducts struct {
	Comparison
	Products []Product `json:"products"`
}

// BatchShare is a public, token-addressed snapshot of a batch comparison.
type BatchShare struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"userId" gorm:"index;not null"`
	Token       string     `json:"token" gorm:"size:64;uniqueIndex;not null"`
	Title       string     `json:"title,omitempty" gorm:"size:255"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	Barcodes    StringList `json:"barcodes" gorm:"type:json"`
	ViewCount   int        `json:"viewCount"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Expired reports whether the share has an expiry in the past.
func (s *BatchShare) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

// UserPreferences stores notification and recommendation preferences.
type UserPreferences struct {
	ID                         uint       `json:"id" gorm:"primaryKey"`
	UserID                     uint       `json:"userId" gorm:"uniqueIndex;not null"`
	EnablePriceDropAlerts      bool       `json:"enablePriceDropAlerts" gorm:"default:true"`
	EnableNewAlternativeAlerts bool       `json:"enableNewAlternativeAlerts" gorm:"default:true"`
	PriceDropThresholdPercent  float64    `json:"priceDropThresholdPercent" gorm:"default:10"`
	PreferredCategories        StringList `json:"preferredCategories,omitempty" gorm:"type:json"`
	MinEcoScore                int        `json:"minEcoScore" gorm:"default:50"`
	CreatedAt                  time.Time  `json:"createdAt"`
	UpdatedAt                  time.Time  `json:"updatedAt"`
}

// Notification types.
const (
	NotificationPriceDrop      = "price_drop"
	NotificationNewAlternative = "new_alternative"
	NotificationRecommendation = "recommendation"
)

// Notification is a queued user-facing message.
type Notification struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"userId" gorm:"index;not null"`
	Type      string     `json:"type" gorm:"size:32;not null"`
	ProductID *uint      `json:"productId,omitempty"`
	Message   string     `json:"message" gorm:"type:text;not null"`
	Sent      bool       `json:"sent"`
	SentAt    *time.Time `json:"sentAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
