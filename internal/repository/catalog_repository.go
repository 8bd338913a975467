package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"catalog-import-service/internal/models"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// CatalogRepositoryInterface defines the interface for catalog operations
type CatalogRepositoryInterface interface {
	FindProductBySKU(ctx context.Context, sku string) (*models.Product, error)
	SKUExists(ctx context.Context, sku string, excludeProductID uint) (bool, error)
	CategoryExists(ctx context.Context, categoryID int64) (bool, error)
	ManufacturerExists(ctx context.Context, manufacturerID int64) (bool, error)
	CreateProduct(ctx context.Context, rec *models.ImportRecord, languageID int) (uint, error)
	UpdateProduct(ctx context.Context, productID uint, rec *models.ImportRecord, languageID int) error

	ListCategories(ctx context.Context, languageID int) ([]models.CategorySummary, error)
	GetCategory(ctx context.Context, categoryID uint) (*models.CategoryDetail, error)
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest, languageID int) (uint, error)
	UpdateCategory(ctx context.Context, categoryID uint, req *models.UpdateCategoryRequest, languageID int) error
	DeleteCategory(ctx context.Context, categoryID uint) error
}

// CatalogRepository implements CatalogRepositoryInterface backed by gorm
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// FindProductBySKU looks up a product by its SKU. Callers must not pass
// an empty SKU; an empty SKU never identifies an existing product.
func (r *CatalogRepository) FindProductBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// SKUExists reports whether any product other than excludeProductID
// carries the given SKU.
func (r *CatalogRepository) SKUExists(ctx context.Context, sku string, excludeProductID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Product{}).Where("sku = ?", sku)
	if excludeProductID > 0 {
		query = query.Where("id != ?", excludeProductID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CategoryExists reports whether a category with the given ID exists.
func (r *CatalogRepository) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ManufacturerExists reports whether a manufacturer with the given ID
// exists. Zero means "no manufacturer" and is always accepted.
func (r *CatalogRepository) ManufacturerExists(ctx context.Context, manufacturerID int64) (bool, error) {
	if manufacturerID == 0 {
		return true, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Manufacturer{}).Where("id = ?", manufacturerID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateProduct inserts a product, its description, and its category link
// in a single transaction. Absent fields fall back to catalog defaults.
func (r *CatalogRepository) CreateProduct(ctx context.Context, rec *models.ImportRecord, languageID int) (uint, error) {
	product := models.Product{
		StockStatusID: models.DefaultStockStatusID,
		Shipping:      true,
		Subtract:      true,
		Minimum:       1,
		Status:        1,
		WeightClassID: 1,
		LengthClassID: 1,
		DateAvailable: time.Now(),
	}
	if rec.Model != nil {
		product.Model = *rec.Model
	}
	if rec.SKU != nil {
		product.SKU = *rec.SKU
	}
	if rec.Price != nil {
		product.Price = *rec.Price
	}
	if rec.Quantity != nil {
		product.Quantity = int(*rec.Quantity)
	}
	if rec.ManufacturerID != nil {
		product.ManufacturerID = *rec.ManufacturerID
	}
	if rec.Status != nil {
		product.Status = *rec.Status
	}
	if rec.Weight != nil {
		product.Weight = *rec.Weight
	}
	if rec.Length != nil {
		product.Length = *rec.Length
	}
	if rec.Width != nil {
		product.Width = *rec.Width
	}
	if rec.Height != nil {
		product.Height = *rec.Height
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}

		desc := models.ProductDescription{
			ProductID:  product.ID,
			LanguageID: languageID,
			Name:       rec.NameValue(),
			MetaTitle:  rec.NameValue(),
		}
		if rec.Description != nil {
			desc.Description = *rec.Description
		}
		if rec.MetaTitle != nil {
			desc.MetaTitle = *rec.MetaTitle
		}
		if rec.MetaDescription != nil {
			desc.MetaDescription = *rec.MetaDescription
		}
		if rec.MetaKeyword != nil {
			desc.MetaKeyword = *rec.MetaKeyword
		}
		if rec.Tag != nil {
			desc.Tag = *rec.Tag
		}
		if err := tx.Create(&desc).Error; err != nil {
			return err
		}

		if rec.CategoryID != nil && *rec.CategoryID > 0 {
			link := models.ProductToCategory{ProductID: product.ID, CategoryID: *rec.CategoryID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		for _, attr := range rec.Attributes {
			value := models.ProductAttributeValue{
				ProductID:   product.ID,
				AttributeID: attr.AttributeID,
				LanguageID:  languageID,
				Text:        attr.Text,
			}
			if err := tx.Create(&value).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}
	return product.ID, nil
}

// productUpdateColumns builds the column map for a partial product
// update. Absent record fields produce no entry.
func productUpdateColumns(rec *models.ImportRecord) map[string]interface{} {
	updates := map[string]interface{}{}
	if rec.Model != nil {
		updates["model"] = *rec.Model
	}
	if rec.SKU != nil {
		updates["sku"] = *rec.SKU
	}
	if rec.Quantity != nil {
		updates["quantity"] = int(*rec.Quantity)
	}
	if rec.Price != nil {
		updates["price"] = *rec.Price
	}
	if rec.ManufacturerID != nil {
		updates["manufacturer_id"] = *rec.ManufacturerID
	}
	if rec.Status != nil {
		updates["status"] = *rec.Status
	}
	if rec.Weight != nil {
		updates["weight"] = *rec.Weight
	}
	if rec.Length != nil {
		updates["length"] = *rec.Length
	}
	if rec.Width != nil {
		updates["width"] = *rec.Width
	}
	if rec.Height != nil {
		updates["height"] = *rec.Height
	}
	return updates
}

// descriptionUpdateColumns builds the column map for a partial product
// description update. A new name also refreshes meta_title unless the
// record carries an explicit one.
func descriptionUpdateColumns(rec *models.ImportRecord) map[string]interface{} {
	updates := map[string]interface{}{}
	if rec.Name != nil {
		updates["name"] = *rec.Name
		updates["meta_title"] = *rec.Name
	}
	if rec.Description != nil {
		updates["description"] = *rec.Description
	}
	if rec.MetaTitle != nil {
		updates["meta_title"] = *rec.MetaTitle
	}
	if rec.MetaDescription != nil {
		updates["meta_description"] = *rec.MetaDescription
	}
	if rec.MetaKeyword != nil {
		updates["meta_keyword"] = *rec.MetaKeyword
	}
	if rec.Tag != nil {
		updates["tag"] = *rec.Tag
	}
	return updates
}

// categoryLinkChange decides how an update affects category links. When
// replace is true all existing links are dropped; a categoryID above
// zero is then linked, zero leaves the product uncategorized.
func categoryLinkChange(rec *models.ImportRecord) (replace bool, categoryID int64) {
	if rec.CategoryID == nil {
		return false, 0
	}
	return true, *rec.CategoryID
}

// UpdateProduct applies the supplied fields to an existing product in a
// single transaction. Fields absent from the record are left untouched.
// A supplied category replaces all existing category links.
func (r *CatalogRepository) UpdateProduct(ctx context.Context, productID uint, rec *models.ImportRecord, languageID int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := productUpdateColumns(rec)
		if len(updates) > 0 {
			updates["date_modified"] = time.Now()
			if err := tx.Model(&models.Product{}).Where("id = ?", productID).Updates(updates).Error; err != nil {
				return err
			}
		}

		descUpdates := descriptionUpdateColumns(rec)
		if len(descUpdates) > 0 {
			if err := tx.Model(&models.ProductDescription{}).
				Where("product_id = ? AND language_id = ?", productID, languageID).
				Updates(descUpdates).Error; err != nil {
				return err
			}
		}

		if replace, categoryID := categoryLinkChange(rec); replace {
			if err := tx.Where("product_id = ?", productID).Delete(&models.ProductToCategory{}).Error; err != nil {
				return err
			}
			if categoryID > 0 {
				link := models.ProductToCategory{ProductID: productID, CategoryID: categoryID}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}
		}

		for _, attr := range rec.Attributes {
			if err := tx.Where("product_id = ? AND attribute_id = ? AND language_id = ?",
				productID, attr.AttributeID, languageID).
				Delete(&models.ProductAttributeValue{}).Error; err != nil {
				return err
			}
			value := models.ProductAttributeValue{
				ProductID:   productID,
				AttributeID: attr.AttributeID,
				LanguageID:  languageID,
				Text:        attr.Text,
			}
			if err := tx.Create(&value).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// ListCategories returns all categories with their localized name and
// linked product counts.
func (r *CatalogRepository) ListCategories(ctx context.Context, languageID int) ([]models.CategorySummary, error) {
	var summaries []models.CategorySummary
	err := r.db.WithContext(ctx).Model(&models.Category{}).
		Select(`categories.id AS category_id,
			category_descriptions.name AS name,
			categories.parent_id AS parent_id,
			categories.status AS status,
			COUNT(product_to_categories.product_id) AS product_count`).
		Joins("LEFT JOIN category_descriptions ON category_descriptions.category_id = categories.id AND category_descriptions.language_id = ?", languageID).
		Joins("LEFT JOIN product_to_categories ON product_to_categories.category_id = categories.id").
		Group("categories.id, category_descriptions.name, categories.parent_id, categories.status").
		Order("categories.sort_order, category_descriptions.name").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetCategory returns a category with its descriptions and children.
func (r *CatalogRepository) GetCategory(ctx context.Context, categoryID uint) (*models.CategoryDetail, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", categoryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	detail := models.CategoryDetail{Category: category}
	if err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Find(&detail.Descriptions).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("parent_id = ?", categoryID).Order("sort_order").Find(&detail.Children).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreateCategory inserts a category and its description in one transaction.
func (r *CatalogRepository) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest, languageID int) (uint, error) {
	category := models.Category{
		ParentID: req.ParentID,
		Status:   1,
	}
	if req.Status != nil {
		category.Status = *req.Status
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if category.ParentID > 0 {
			var count int64
			if err := tx.Model(&models.Category{}).Where("id = ?", category.ParentID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
		}
		if err := tx.Create(&category).Error; err != nil {
			return err
		}
		desc := models.CategoryDescription{
			CategoryID:  category.ID,
			LanguageID:  languageID,
			Name:        req.Name,
			Description: req.Description,
			MetaTitle:   req.Name,
		}
		return tx.Create(&desc).Error
	})
	if err != nil {
		return 0, err
	}
	return category.ID, nil
}

// UpdateCategory applies the supplied fields to an existing category.
func (r *CatalogRepository) UpdateCategory(ctx context.Context, categoryID uint, req *models.UpdateCategoryRequest, languageID int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}

		updates := map[string]interface{}{}
		if req.ParentID != nil {
			updates["parent_id"] = *req.ParentID
		}
		if req.Status != nil {
			updates["status"] = *req.Status
		}
		if req.SortOrder != nil {
			updates["sort_order"] = *req.SortOrder
		}
		if len(updates) > 0 {
			updates["date_modified"] = time.Now()
			if err := tx.Model(&models.Category{}).Where("id = ?", categoryID).Updates(updates).Error; err != nil {
				return err
			}
		}

		descUpdates := map[string]interface{}{}
		if req.Name != nil {
			descUpdates["name"] = *req.Name
			descUpdates["meta_title"] = *req.Name
		}
		if req.Description != nil {
			descUpdates["description"] = *req.Description
		}
		if len(descUpdates) > 0 {
			if err := tx.Model(&models.CategoryDescription{}).
				Where("category_id = ? AND language_id = ?", categoryID, languageID).
				Updates(descUpdates).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteCategory removes a category, its descriptions, and its product
// links in one transaction. Child categories are reparented to the root.
func (r *CatalogRepository) DeleteCategory(ctx context.Context, categoryID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		if err := tx.Where("category_id = ?", categoryID).Delete(&models.ProductToCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", categoryID).Delete(&models.CategoryDescription{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Category{}).Where("parent_id = ?", categoryID).Update("parent_id", 0).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, "id = ?", categoryID).Error
	})
}
