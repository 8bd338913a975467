package models

import (
	"time"
)

// DefaultStockStatusID is the stock status assigned to imported products
// that do not specify one. The schema seeds 7 as "In Stock".
const DefaultStockStatusID = 7

// Product represents a catalog product entity. Localized text lives in
// ProductDescription, category membership in ProductToCategory.
type Product struct {
	ID             uint      `json:"product_id" gorm:"primaryKey;autoIncrement"`
	Model          string    `json:"model" gorm:"type:varchar(64);not null;default:''"`
	SKU            string    `json:"sku" gorm:"type:varchar(64);not null;default:'';index:idx_products_sku"`
	UPC            string    `json:"upc" gorm:"type:varchar(12);not null;default:''"`
	EAN            string    `json:"ean" gorm:"type:varchar(14);not null;default:''"`
	JAN            string    `json:"jan" gorm:"type:varchar(13);not null;default:''"`
	ISBN           string    `json:"isbn" gorm:"type:varchar(17);not null;default:''"`
	MPN            string    `json:"mpn" gorm:"type:varchar(64);not null;default:''"`
	Location       string    `json:"location" gorm:"type:varchar(128);not null;default:''"`
	Quantity       int       `json:"quantity" gorm:"not null;default:0"`
	StockStatusID  int       `json:"stock_status_id" gorm:"not null;default:7"`
	ManufacturerID int64     `json:"manufacturer_id" gorm:"not null;default:0;index"`
	Shipping       bool      `json:"shipping" gorm:"not null;default:true"`
	Price          float64   `json:"price" gorm:"type:decimal(15,4);not null;default:0"`
	Points         int       `json:"points" gorm:"not null;default:0"`
	TaxClassID     int       `json:"tax_class_id" gorm:"not null;default:0"`
	DateAvailable  time.Time `json:"date_available"`
	Weight         float64   `json:"weight" gorm:"type:decimal(15,8);not null;default:0"`
	WeightClassID  int       `json:"weight_class_id" gorm:"not null;default:1"`
	Length         float64   `json:"length" gorm:"type:decimal(15,8);not null;default:0"`
	Width          float64   `json:"width" gorm:"type:decimal(15,8);not null;default:0"`
	Height         float64   `json:"height" gorm:"type:decimal(15,8);not null;default:0"`
	LengthClassID  int       `json:"length_class_id" gorm:"not null;default:1"`
	Subtract       bool      `json:"subtract" gorm:"not null;default:true"`
	Minimum        int       `json:"minimum" gorm:"not null;default:1"`
	SortOrder      int       `json:"sort_order" gorm:"not null;default:0"`
	Status         int       `json:"status" gorm:"not null;default:1"`
	DateAdded      time.Time `json:"date_added" gorm:"autoCreateTime"`
	DateModified   time.Time `json:"date_modified" gorm:"autoUpdateTime"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// ProductDescription holds the localized text for a product,
// keyed by (product_id, language_id).
type ProductDescription struct {
	ProductID       uint   `json:"product_id" gorm:"primaryKey;autoIncrement:false"`
	LanguageID      int    `json:"language_id" gorm:"primaryKey;autoIncrement:false"`
	Name            string `json:"name" gorm:"type:varchar(255);not null"`
	Description     string `json:"description" gorm:"type:text;not null"`
	Tag             string `json:"tag" gorm:"type:text;not null"`
	MetaTitle       string `json:"meta_title" gorm:"type:varchar(255);not null;default:''"`
	MetaDescription string `json:"meta_description" gorm:"type:varchar(255);not null;default:''"`
	MetaKeyword     string `json:"meta_keyword" gorm:"type:varchar(255);not null;default:''"`
}

// TableName returns the table name for the ProductDescription model
func (ProductDescription) TableName() string {
	return "product_descriptions"
}

// ProductToCategory links a product to a category. Associations are
// replaced wholesale whenever an import record supplies a category.
type ProductToCategory struct {
	ProductID  uint  `json:"product_id" gorm:"primaryKey;autoIncrement:false"`
	CategoryID int64 `json:"category_id" gorm:"primaryKey;autoIncrement:false"`
}

// TableName returns the table name for the ProductToCategory model
func (ProductToCategory) TableName() string {
	return "product_to_categories"
}

// ProductAttributeValue holds a localized attribute text for a product.
type ProductAttributeValue struct {
	ProductID   uint   `json:"product_id" gorm:"primaryKey;autoIncrement:false"`
	AttributeID int64  `json:"attribute_id" gorm:"primaryKey;autoIncrement:false"`
	LanguageID  int    `json:"language_id" gorm:"primaryKey;autoIncrement:false"`
	Text        string `json:"text" gorm:"type:text;not null"`
}

// TableName returns the table name for the ProductAttributeValue model
func (ProductAttributeValue) TableName() string {
	return "product_attributes"
}

// Category represents a catalog category
type Category struct {
	ID           uint      `json:"category_id" gorm:"primaryKey;autoIncrement"`
	ParentID     uint      `json:"parent_id" gorm:"not null;default:0;index"`
	Status       int       `json:"status" gorm:"not null;default:1"`
	SortOrder    int       `json:"sort_order" gorm:"not null;default:0"`
	DateAdded    time.Time `json:"date_added" gorm:"autoCreateTime"`
	DateModified time.Time `json:"date_modified" gorm:"autoUpdateTime"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// CategoryDescription holds the localized text for a category,
// keyed by (category_id, language_id).
type CategoryDescription struct {
	CategoryID      uint   `json:"category_id" gorm:"primaryKey;autoIncrement:false"`
	LanguageID      int    `json:"language_id" gorm:"primaryKey;autoIncrement:false"`
	Name            string `json:"name" gorm:"type:varchar(255);not null"`
	Description     string `json:"description" gorm:"type:text;not null"`
	MetaTitle       string `json:"meta_title" gorm:"type:varchar(255);not null;default:''"`
	MetaDescription string `json:"meta_description" gorm:"type:varchar(255);not null;default:''"`
	MetaKeyword     string `json:"meta_keyword" gorm:"type:varchar(255);not null;default:''"`
}

// TableName returns the table name for the CategoryDescription model
func (CategoryDescription) TableName() string {
	return "category_descriptions"
}

// Manufacturer represents a manufacturer (read-only for import reference checks)
type Manufacturer struct {
	ID        int64  `json:"manufacturer_id" gorm:"primaryKey;autoIncrement"`
	Name      string `json:"name" gorm:"type:varchar(64);not null"`
	SortOrder int    `json:"sort_order" gorm:"not null;default:0"`
}

// TableName returns the table name for the Manufacturer model
func (Manufacturer) TableName() string {
	return "manufacturers"
}

// APIToken is an access token for the import API. Only tokens with
// status=1 are accepted.
type APIToken struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Token     string    `json:"-" gorm:"type:varchar(255);not null;uniqueIndex"`
	Name      string    `json:"name" gorm:"type:varchar(64);not null;default:''"`
	Status    int       `json:"status" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name for the APIToken model
func (APIToken) TableName() string {
	return "api_tokens"
}

// CategorySummary is a flattened category row for listings, including
// how many products are linked to it.
type CategorySummary struct {
	CategoryID   uint   `json:"category_id"`
	Name         string `json:"name"`
	ParentID     uint   `json:"parent_id"`
	Status       int    `json:"status"`
	ProductCount int64  `json:"product_count"`
}

// CategoryDetail is a category with its localized descriptions and
// direct children.
type CategoryDetail struct {
	Category     Category              `json:"category"`
	Descriptions []CategoryDescription `json:"descriptions"`
	Children     []Category            `json:"children"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	ParentID    uint   `json:"parent_id"`
	Description string `json:"description"`
	Status      *int   `json:"status"`
}

// UpdateCategoryRequest represents a partial category update; nil fields
// are left untouched.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	ParentID    *uint   `json:"parent_id"`
	Description *string `json:"description"`
	Status      *int    `json:"status"`
	SortOrder   *int    `json:"sort_order"`
}
