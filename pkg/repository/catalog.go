package repository

import (
	"context"
	"strings"

	"github.com/example/freshmart/pkg/models"
	"gorm.io/gorm"
)

// ProductFilter narrows a product listing. Empty fields impose no constraint;
// set fields are combined with AND.
type ProductFilter struct {
	// Category matches the joined category name exactly.
	Category string
	// Search matches a substring of the product name only.
	Search string
}

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// likeEscaper escapes LIKE wildcards with '!', an escape character that
// needs no quoting in MySQL, Postgres or SQLite.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (r *CatalogRepository) filtered(ctx context.Context, f ProductFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if f.Category != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.name = ?", f.Category)
	}
	if f.Search != "" {
		query = query.Where("products.name LIKE ? ESCAPE '!'", containsPattern(f.Search))
	}
	return query.Session(&gorm.Session{})
}

// ListProducts returns one page of matching products ordered by id, plus the
// number of matching rows before pagination. An offset past the end yields
// an empty page, not an error.
func (r *CatalogRepository) ListProducts(ctx context.Context, f ProductFilter, limit, offset int) ([]models.Product, int64, error) {
	query := r.filtered(ctx, f)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "count products")
	}

	products := []models.Product{}
	if total == 0 || int64(offset) >= total {
		return products, total, nil
	}

	err := query.
		Select("products.*").
		Preload("Category").
		Order("products.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, 0, translate(err, "list products")
	}
	return products, total, nil
}

// AllProducts returns every product ordered by id.
func (r *CatalogRepository) AllProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Preload("Category").Order("id ASC").Find(&products).Error; err != nil {
		return nil, translate(err, "list products")
	}
	return products, nil
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&product, id).Error; err != nil {
		return nil, translate(err, "product")
	}
	return &product, nil
}

func (r *CatalogRepository) ProductExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate(err, "product")
	}
	return count > 0, nil
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, p *models.Product) error {
	return translate(r.db.WithContext(ctx).Create(p).Error, "create product")
}

// UpdateProduct applies the column/value pairs in fields to product id.
func (r *CatalogRepository) UpdateProduct(ctx context.Context, id uint, fields map[string]interface{}) (*models.Product, error) {
	product, err := r.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&models.Product{ID: id}).Updates(fields).Error; err != nil {
			return nil, translate(err, "update product")
		}
		if product, err = r.GetProduct(ctx, id); err != nil {
			return nil, err
		}
	}
	return product, nil
}

func (r *CatalogRepository) DeleteProduct(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete product")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "product")
	}
	return nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, translate(err, "list categories")
	}
	return categories, nil
}

func (r *CatalogRepository) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translate(err, "category")
	}
	return &category, nil
}

func (r *CatalogRepository) FindCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, translate(err, "category")
	}
	return &category, nil
}

// CreateCategory inserts c, reporting ErrDuplicate when the name is taken.
func (r *CatalogRepository) CreateCategory(ctx context.Context, c *models.Category) error {
	if err := r.nameTaken(ctx, c.Name, 0); err != nil {
		return err
	}
	return translate(r.db.WithContext(ctx).Create(c).Error, "create category")
}

func (r *CatalogRepository) UpdateCategory(ctx context.Context, id uint, fields map[string]interface{}) (*models.Category, error) {
	category, err := r.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if name, ok := fields["name"].(string); ok && name != category.Name {
		if err := r.nameTaken(ctx, name, id); err != nil {
			return nil, err
		}
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(category).Updates(fields).Error; err != nil {
			return nil, translate(err, "update category")
		}
		if category, err = r.GetCategory(ctx, id); err != nil {
			return nil, err
		}
	}
	return category, nil
}

// DeleteCategory removes the category only; its products keep the stale id.
func (r *CatalogRepository) DeleteCategory(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return translate(res.Error, "delete category")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "category")
	}
	return nil
}

func (r *CatalogRepository) nameTaken(ctx context.Context, name string, exceptID uint) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&count).Error
	if err != nil {
		return translate(err, "category")
	}
	if count > 0 {
		return translate(gorm.ErrDuplicatedKey, "category "+name)
	}
	return nil
}
