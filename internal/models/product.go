package models

import (
	"time"
)

// Category is the fixed set of catalog categories.
type Category string

const (
	CategoryClothing    Category = "CLOTHING"
	CategoryHats        Category = "HATS"
	CategoryAccessories Category = "ACCESSORIES"
	CategoryMugs        Category = "MUGS"
)

// ValidCategories returns every category in display order.
func ValidCategories() []Category {
	return []Category{CategoryClothing, CategoryHats, CategoryAccessories, CategoryMugs}
}

// IsValidCategory reports whether s names one of the catalog categories.
func IsValidCategory(s string) bool {
	for _, c := range ValidCategories() {
		if string(c) == s {
			return true
		}
	}
	return false
}

// IsSingleVariant reports whether products of this category carry exactly one
// implicit "One Size" variant instead of a size/color combination.
func (c Category) IsSingleVariant() bool {
	return c == CategoryHats || c == CategoryMugs
}

// Product represents a sellable catalog item synced with the fulfillment provider.
type Product struct {
	ID             string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name           string           `json:"name" gorm:"type:varchar(255);not null"`
	Slug           string           `json:"slug" gorm:"type:varchar(255);index"`
	Description    string           `json:"description" gorm:"type:text;not null"`
	Category       Category         `json:"category" gorm:"type:varchar(20);not null;index"`
	Price          float64          `json:"price" gorm:"not null"`
	Images         []string         `json:"images" gorm:"type:text;serializer:json"`
	PrintfulSyncID int64            `json:"printfulSyncId" gorm:"uniqueIndex;not null"`
	Variants       []ProductVariant `json:"variants" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// ProductVariant is a purchasable configuration of a product. It has no
// existence outside its parent.
type ProductVariant struct {
	ID                string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID         string    `json:"productId" gorm:"type:varchar(36);not null;index"`
	Size              *string   `json:"size" gorm:"type:varchar(50)"`
	Color             *string   `json:"color" gorm:"type:varchar(50)"`
	PrintfulVariantID int64     `json:"printfulVariantId" gorm:"not null"`
	Price             float64   `json:"price" gorm:"not null"`
	Position          int       `json:"-" gorm:"not null;default:0"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// TableName overrides the default pluralized name.
func (ProductVariant) TableName() string { return "product_variants" }

// CatalogStats backs the dashboard cards.
type CatalogStats struct {
	TotalProducts int64              `json:"totalProducts"`
	TotalVariants int64              `json:"totalVariants"`
	AveragePrice  float64            `json:"averagePrice"`
	Categories    int                `json:"categories"`
	PerCategory   map[Category]int64 `json:"perCategory"`
}
