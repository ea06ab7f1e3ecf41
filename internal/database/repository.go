package database

import (
	"context"
	"strings"

	"github.com/corlevo/corlevo/internal/models"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrNameConflict = errors.New("product name already in use")
)

// Repository handles all database operations for products and error logs.
// Every call opens its own session bound to the caller's context.
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) session(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// lowerFunc names the SQL function used to case-fold both sides of a text search.
func (r *Repository) lowerFunc() string {
	if r.db.Dialector.Name() == "sqlite" {
		return unicodeLowerFunc
	}
	return "LOWER"
}

// ListProducts returns every product ordered by name
func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	result := r.session(ctx).Order("name ASC").Find(&products)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to list products")
	}
	return products, nil
}

// SearchProducts applies every filter that is set, combined with AND
func (r *Repository) SearchProducts(ctx context.Context, filter models.SearchFilter) ([]models.Product, error) {
	query := r.session(ctx).Model(&models.Product{})

	if filter.SearchText != "" {
		lower := r.lowerFunc()
		pattern := "%" + escapeLike(filter.SearchText) + "%"
		query = query.Where(lower+"(name) LIKE "+lower+`(?) ESCAPE '\'`, pattern)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var products []models.Product
	if err := query.Order("name ASC").Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}
	return products, nil
}

// GetProduct retrieves a product by its ID
func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	result := r.session(ctx).Where("id = ?", id).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(result.Error, "failed to get product")
	}
	return &product, nil
}

// ProductNameTaken reports whether another product already uses name.
// excludeID may be uuid.Nil.
func (r *Repository) ProductNameTaken(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	query := r.session(ctx).Model(&models.Product{}).Where("name = ?", name)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check product name")
	}
	return count > 0, nil
}

// CreateProduct inserts a new product
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	result := r.session(ctx).Create(product)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrNameConflict
		}
		return errors.Wrap(result.Error, "failed to insert product")
	}
	return nil
}

// SaveProduct writes name and price of an existing product
func (r *Repository) SaveProduct(ctx context.Context, product *models.Product) error {
	result := r.session(ctx).Model(product).Select("name", "price").Updates(product)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrNameConflict
		}
		return errors.Wrap(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product permanently
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	result := r.session(ctx).Where("id = ?", id).Delete(&models.Product{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateErrorLog inserts a new error log into the database
func (r *Repository) CreateErrorLog(ctx context.Context, errorLog *models.ErrorLog) error {
	result := r.session(ctx).Create(errorLog)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert error log")
	}
	return nil
}

// Clear removes all products from the database
func (r *Repository) Clear(ctx context.Context) (int64, error) {
	result := r.session(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Product{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to clear products")
	}
	return result.RowsAffected, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
