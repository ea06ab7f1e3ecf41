package catalog

import (
	"context"
	"math"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/corlevo/corlevo/internal/database"
	"github.com/corlevo/corlevo/internal/models"
)

const MinNameLength = 3

var (
	ErrInvalidName  = errors.New("invalid product name")
	ErrInvalidPrice = errors.New("invalid price")
	ErrNotFound     = database.ErrNotFound
	ErrNameConflict = database.ErrNameConflict
)

// Store is the persistence the product service needs.
type Store interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	SearchProducts(ctx context.Context, filter models.SearchFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ProductNameTaken(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	SaveProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns all products sorted by name. An empty result is not an error.
func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	return s.store.ListProducts(ctx)
}

func (s *Service) Search(ctx context.Context, filter models.SearchFilter) ([]models.Product, error) {
	return s.store.SearchProducts(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.store.GetProduct(ctx, id)
}

// Create validates and stores a new product. The store's unique index backs the
// name pre-check, so concurrent creates with one name still yield ErrNameConflict.
func (s *Service) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	if err := validateName(req.Name); err != nil {
		return nil, err
	}
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}

	taken, err := s.store.ProductNameTaken(ctx, req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNameConflict
	}

	product := &models.Product{Name: req.Name, Price: req.Price}
	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update applies the supplied fields. An empty name leaves the name unchanged.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		if err := validateName(*req.Name); err != nil {
			return nil, err
		}
		taken, err := s.store.ProductNameTaken(ctx, *req.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrNameConflict
		}
		product.Name = *req.Name
	}

	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return nil, err
		}
		product.Price = *req.Price
	}

	if err := s.store.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteProduct(ctx, id)
}

func validateName(name string) error {
	if utf8.RuneCountInString(name) < MinNameLength {
		return ErrInvalidName
	}
	return nil
}

func validatePrice(price float64) error {
	if price < 0 || math.IsNaN(price) {
		return ErrInvalidPrice
	}
	return nil
}

// IsClientError reports whether err is one of the expected outcomes that are
// answered directly instead of being written to the error log.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrNameConflict)
}
