package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"inventario/internal/inventory"
	"inventario/internal/models"
	"inventario/internal/repositories"
)

// ProductService owns the in-memory product collection and keeps it in sync
// with the storage. Every mutation is persisted before it becomes visible.
type ProductService struct {
	storage   repositories.ProductStorage
	validate  *validator.Validate
	seedCount int
	now       func() time.Time
	newID     func() string
	rng       *rand.Rand

	mu       sync.Mutex
	loaded   bool
	products []models.Product
}

// ProductOption configures a ProductService.
type ProductOption func(*ProductService)

// WithSeedCount sets how many products the starter catalog holds.
func WithSeedCount(n int) ProductOption {
	return func(s *ProductService) { s.seedCount = n }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ProductOption {
	return func(s *ProductService) { s.now = now }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(newID func() string) ProductOption {
	return func(s *ProductService) { s.newID = newID }
}

// WithRand makes the starter catalog deterministic.
func WithRand(rng *rand.Rand) ProductOption {
	return func(s *ProductService) { s.rng = rng }
}

// NewProductService creates a new ProductService.
func NewProductService(storage repositories.ProductStorage, opts ...ProductOption) *ProductService {
	s := &ProductService{
		storage:   storage,
		validate:  validator.New(),
		seedCount: inventory.DefaultCatalogSize,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the current time of the service clock.
func (s *ProductService) Now() time.Time {
	return s.now()
}

// errUnreadable marks a failed read of the stored collection.
var errUnreadable = errors.New("stored inventory could not be read")

// Load hydrates the collection from storage. An empty storage is filled with
// a generated starter catalog which is persisted right away. When storage
// cannot be read, a generated catalog is served from memory only and the
// store stays unloaded: the next mutation reads storage again first.
func (s *ProductService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.loadLocked(ctx)
	if errors.Is(err, errUnreadable) {
		log.Printf("Error loading products, using a generated catalog: %v", err)
		s.products = inventory.GenerateCatalog(s.seedCount, s.now(), s.rng)
		return nil
	}
	return err
}

func (s *ProductService) loadLocked(ctx context.Context) error {
	products, err := s.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", errUnreadable, err)
	}
	s.loaded = true
	if len(products) > 0 {
		s.products = products
		return nil
	}

	catalog := inventory.GenerateCatalog(s.seedCount, s.now(), s.rng)
	s.products = catalog
	if err := s.storage.Save(ctx, catalog); err != nil {
		log.Printf("Error saving starter catalog: %v", err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	log.Printf("Seeded %d starter products", len(catalog))
	return nil
}

// ensureLoaded reads storage before a mutation unless a read already
// succeeded. Mutations are refused while storage is unreadable, so a
// fallback catalog never replaces the stored one.
func (s *ProductService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	if err := s.loadLocked(ctx); err != nil {
		if errors.Is(err, errUnreadable) {
			log.Printf("Refusing to save over unreadable storage: %v", err)
			return fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		return err
	}
	return nil
}

// Snapshot returns a copy of the current collection in stored order.
func (s *ProductService) Snapshot() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneAll(s.products)
}

// Get returns the product with the given ID.
func (s *ProductService) Get(id string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return s.products[i].Clone(), nil
}

// Create validates fields, assigns a new ID and appends the product.
// Create is not idempotent: retrying after an error may add a duplicate.
func (s *ProductService) Create(ctx context.Context, fields models.ProductFields) (models.Product, error) {
	fields, err := s.prepare(fields)
	if err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return models.Product{}, err
	}

	id := s.newID()
	for s.indexOf(id) >= 0 {
		id = s.newID()
	}
	product := models.Product{ID: id, History: []models.Movement{}}
	product.Apply(fields)

	next := append(models.CloneAll(s.products), product)
	if err := s.persist(ctx, next); err != nil {
		return models.Product{}, err
	}
	return product.Clone(), nil
}

// Update replaces every editable field of the product with the given ID.
func (s *ProductService) Update(ctx context.Context, id string, fields models.ProductFields) (models.Product, error) {
	fields, err := s.prepare(fields)
	if err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return models.Product{}, err
	}

	i := s.indexOf(id)
	if i < 0 {
		return models.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	next := models.CloneAll(s.products)
	next[i].Apply(fields)

	if err := s.persist(ctx, next); err != nil {
		return models.Product{}, err
	}
	return next[i].Clone(), nil
}

// Delete removes the product with the given ID. Deleting an unknown ID is a no-op.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	next := make([]models.Product, 0, len(s.products)-1)
	next = append(next, models.CloneAll(s.products[:i])...)
	next = append(next, models.CloneAll(s.products[i+1:])...)
	return s.persist(ctx, next)
}

// persist saves next and commits it to memory only if the save succeeded.
func (s *ProductService) persist(ctx context.Context, next []models.Product) error {
	if err := s.storage.Save(ctx, next); err != nil {
		log.Printf("Error saving products: %v", err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	s.products = next
	return nil
}

func (s *ProductService) indexOf(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

// prepare trims text input, drops blank optional values and validates the result.
func (s *ProductService) prepare(fields models.ProductFields) (models.ProductFields, error) {
	fields.Name = strings.TrimSpace(fields.Name)
	fields.ExpirationDate = trimOptional(fields.ExpirationDate)
	fields.Category = trimOptional(fields.Category)
	fields.ImageURI = trimOptional(fields.ImageURI)

	problems := make(map[string]string)
	if err := s.validate.Struct(fields); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return fields, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
		}
		for _, e := range validationErrors {
			problems[jsonFieldName(e.Field())] = fmt.Sprintf("failed on the '%s' rule", e.Tag())
		}
	}
	if fields.Price != nil && fields.Price.IsNegative() {
		problems["price"] = "must not be negative"
	}
	if len(problems) > 0 {
		return fields, &ValidationError{Fields: problems}
	}
	return fields, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

var jsonFieldNames = map[string]string{
	"Name":              "name",
	"Quantity":          "quantity",
	"Price":             "price",
	"ExpirationDate":    "expirationDate",
	"ImageURI":          "imageUri",
	"Category":          "category",
	"LowStockThreshold": "lowStockThreshold",
}

func jsonFieldName(field string) string {
	if name, ok := jsonFieldNames[field]; ok {
		return name
	}
	return field
}
