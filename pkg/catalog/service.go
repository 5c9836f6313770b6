package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/freshmart/pkg/audit"
	"github.com/example/freshmart/pkg/models"
	"github.com/example/freshmart/pkg/repository"
	"go.uber.org/zap"
)

// Store is the persistence the catalog needs; *repository.CatalogRepository
// implements it.
type Store interface {
	ListProducts(ctx context.Context, f repository.ProductFilter, limit, offset int) ([]models.Product, int64, error)
	AllProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, id uint, fields map[string]interface{}) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	UpdateCategory(ctx context.Context, id uint, fields map[string]interface{}) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}

// Cache is an optional read-through cache for category lists and product
// detail; *repository.RedisRepository implements it. Misses are reported
// with repository.ErrCacheMiss.
type Cache interface {
	GetCategories(ctx context.Context, dest interface{}) error
	SetCategories(ctx context.Context, value interface{}) error
	GetProduct(ctx context.Context, id uint, dest interface{}) error
	SetProduct(ctx context.Context, id uint, value interface{}) error
	InvalidateProduct(ctx context.Context, id uint) error
	InvalidateCategories(ctx context.Context) error
	InvalidateAll(ctx context.Context) error
}

type Auditor interface {
	Record(e audit.Event)
}

type Service struct {
	store   Store
	cache   Cache
	auditor Auditor
	limits  Limits
	logger  *zap.Logger
}

type Option func(*Service)

func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

func WithAuditor(a Auditor) Option {
	return func(s *Service) { s.auditor = a }
}

func WithLimits(l Limits) Option {
	return func(s *Service) { s.limits = l }
}

func NewService(store Store, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		limits: DefaultLimits,
		logger: logger.Named("catalog"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListProducts runs a filtered, paginated listing. A page beyond the last
// returns no products with the correct total and page count.
func (s *Service) ListProducts(ctx context.Context, q Query) (*ProductPage, error) {
	q = q.Normalize(s.limits)

	products, total, err := s.store.ListProducts(ctx, repository.ProductFilter{
		Category: q.Category,
		Search:   q.Search,
	}, q.PerPage, q.Offset())
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p))
	}

	return &ProductPage{
		Products:    views,
		Total:       total,
		Pages:       Pages(total, q.PerPage),
		CurrentPage: q.Page,
	}, nil
}

func (s *Service) GetProduct(ctx context.Context, id uint) (*ProductView, error) {
	if s.cache != nil {
		var cached ProductView
		err := s.cache.GetProduct(ctx, id, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, repository.ErrCacheMiss) {
			s.logger.Warn("Product cache read failed", zap.Uint("product_id", id), zap.Error(err))
		}
	}

	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	view := NewProductView(*p)

	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, id, view); err != nil {
			s.logger.Warn("Product cache write failed", zap.Uint("product_id", id), zap.Error(err))
		}
	}
	return &view, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]CategoryView, error) {
	if s.cache != nil {
		var cached []CategoryView
		err := s.cache.GetCategories(ctx, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, repository.ErrCacheMiss) {
			s.logger.Warn("Category cache read failed", zap.Error(err))
		}
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, NewCategoryView(c))
	}

	if s.cache != nil {
		if err := s.cache.SetCategories(ctx, views); err != nil {
			s.logger.Warn("Category cache write failed", zap.Error(err))
		}
	}
	return views, nil
}

type CategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (*CategoryView, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("name required: %w", repository.ErrInvalidInput)
	}

	c := &models.Category{Name: strings.TrimSpace(*in.Name), Description: in.Description}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	s.invalidate(ctx, func(ctx context.Context, c Cache) error { return c.InvalidateCategories(ctx) })
	s.record("create", "category", c.ID, map[string]interface{}{"name": c.Name})

	view := NewCategoryView(*c)
	return &view, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (*CategoryView, error) {
	fields := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("name must not be empty: %w", repository.ErrInvalidInput)
		}
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}

	c, err := s.store.UpdateCategory(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, func(ctx context.Context, c Cache) error { return c.InvalidateAll(ctx) })
	s.record("update", "category", id, fields)

	view := NewCategoryView(*c)
	return &view, nil
}

// DeleteCategory leaves the category's products in place with a dangling
// category id.
func (s *Service) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, func(ctx context.Context, c Cache) error { return c.InvalidateAll(ctx) })
	s.record("delete", "category", id, nil)
	return nil
}

type ProductInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	Image         *string  `json:"image"`
	Brand         *string  `json:"brand"`
	Rating        *float64 `json:"rating"`
	Stock         *int     `json:"stock"`
	CategoryID    *uint    `json:"category_id"`
	CategoryName  *string  `json:"category_name"`
}

// CreateProduct requires name and price. The category is taken from
// category_id, else category_name; when neither resolves the product is
// created without one.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*ProductView, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" || in.Price == nil {
		return nil, fmt.Errorf("name and price required: %w", repository.ErrInvalidInput)
	}

	p := &models.Product{
		Name:          strings.TrimSpace(*in.Name),
		Description:   in.Description,
		Price:         *in.Price,
		OriginalPrice: in.OriginalPrice,
		Image:         in.Image,
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
	}
	if in.Rating != nil {
		p.Rating = *in.Rating
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}

	category, err := s.resolveCategory(ctx, in)
	if err != nil {
		return nil, err
	}
	if category != nil {
		p.CategoryID = &category.ID
		p.Category = category
	}

	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	s.record("create", "product", p.ID, map[string]interface{}{"name": p.Name, "price": p.Price})

	view := NewProductView(*p)
	return &view, nil
}

func (s *Service) resolveCategory(ctx context.Context, in ProductInput) (*models.Category, error) {
	var (
		c   *models.Category
		err error
	)
	switch {
	case in.CategoryID != nil && *in.CategoryID != 0:
		c, err = s.store.GetCategory(ctx, *in.CategoryID)
	case in.CategoryName != nil && *in.CategoryName != "":
		c, err = s.store.FindCategoryByName(ctx, *in.CategoryName)
	default:
		return nil, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return c, err
}

// UpdateProduct applies the supplied fields. A category_id naming a missing
// category is ignored.
func (s *Service) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*ProductView, error) {
	fields := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("name must not be empty: %w", repository.ErrInvalidInput)
		}
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if in.OriginalPrice != nil {
		fields["original_price"] = *in.OriginalPrice
	}
	if in.Image != nil {
		fields["image"] = *in.Image
	}
	if in.Brand != nil {
		fields["brand"] = *in.Brand
	}
	if in.Rating != nil {
		fields["rating"] = *in.Rating
	}
	if in.Stock != nil {
		fields["stock"] = *in.Stock
	}
	if in.CategoryID != nil {
		c, err := s.store.GetCategory(ctx, *in.CategoryID)
		switch {
		case err == nil:
			fields["category_id"] = c.ID
		case !errors.Is(err, repository.ErrNotFound):
			return nil, err
		}
	}

	p, err := s.store.UpdateProduct(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, func(ctx context.Context, c Cache) error { return c.InvalidateProduct(ctx, id) })
	s.record("update", "product", id, fields)

	view := NewProductView(*p)
	return &view, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, func(ctx context.Context, c Cache) error { return c.InvalidateProduct(ctx, id) })
	s.record("delete", "product", id, nil)
	return nil
}

// Invalidate drops every cached catalog entry, e.g. after reseeding.
func (s *Service) Invalidate(ctx context.Context) {
	s.invalidate(ctx, func(ctx context.Context, c Cache) error { return c.InvalidateAll(ctx) })
}

func (s *Service) invalidate(ctx context.Context, fn func(context.Context, Cache) error) {
	if s.cache == nil {
		return
	}
	if err := fn(ctx, s.cache); err != nil {
		s.logger.Warn("Cache invalidation failed", zap.Error(err))
	}
}

func (s *Service) record(action, entity string, id uint, data map[string]interface{}) {
	if s.auditor == nil {
		return
	}
	s.auditor.Record(audit.Event{
		Action:   action,
		Entity:   entity,
		EntityID: strconv.FormatUint(uint64(id), 10),
		Data:     data,
	})
}
