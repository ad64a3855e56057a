// Package products is an in-memory product catalogue with artificial latency,
// used as the REST demo backend.
package products

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"
)

// Response messages.
const (
	MessageNotFound     = "Product not found"
	MessageInvalid      = "Invalid data"
	MessageNameAndPrice = "Name and price are required"
	MessageCreated      = "Product created successfully"
	MessageUpdated      = "Product updated successfully"
	MessageDeleted      = "Product deleted successfully"
)

// Product is one catalogue entry.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}

// Draft is a product without an id.
type Draft struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}

// Patch holds the fields to change; nil fields are kept.
type Patch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
}

// Latency is the artificial delay per operation.
type Latency struct {
	List   time.Duration
	Get    time.Duration
	Create time.Duration
	Update time.Duration
	Delete time.Duration
}

// DefaultLatency mimics a slow remote API.
var DefaultLatency = Latency{
	List:   500 * time.Millisecond,
	Get:    300 * time.Millisecond,
	Create: 600 * time.Millisecond,
	Update: 500 * time.Millisecond,
	Delete: 400 * time.Millisecond,
}

// Seed returns the initial catalogue.
func Seed() []Product {
	return []Product{
		{ID: 1, Name: "Notebook Dell", Description: "Notebook Dell Inspiron 15", Price: 2999.99, Category: "Eletrônicos", Stock: 10},
		{ID: 2, Name: "Mouse Logitech", Description: "Mouse sem fio Logitech MX Master", Price: 299.99, Category: "Periféricos", Stock: 25},
		{ID: 3, Name: "Teclado Mecânico", Description: "Teclado mecânico RGB", Price: 499.99, Category: "Periféricos", Stock: 15},
	}
}

// Store is a concurrency-safe product catalogue.
type Store struct {
	mu       sync.RWMutex
	products []Product
	nextID   int
	latency  Latency
	sleep    func(context.Context, time.Duration) error
}

// Option customizes a Store.
type Option func(*Store)

// WithLatency overrides the per-operation delays.
func WithLatency(latency Latency) Option {
	return func(s *Store) {
		s.latency = latency
	}
}

// WithProducts replaces the seeded catalogue.
func WithProducts(products []Product) Option {
	return func(s *Store) {
		s.products = slices.Clone(products)
	}
}

// NewStore returns a store seeded with Seed and DefaultLatency.
func NewStore(opts ...Option) *Store {
	s := &Store{products: Seed(), latency: DefaultLatency, sleep: sleepContext}
	for _, opt := range opts {
		opt(s)
	}
	s.nextID = 1
	for _, p := range s.products {
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	return s
}

// List returns every product.
func (s *Store) List(ctx context.Context) (Result[[]Product], error) {
	if err := s.sleep(ctx, s.latency.List); err != nil {
		return Result[[]Product]{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Ok(http.StatusOK, slices.Clone(s.products), ""), nil
}

// Get returns the product with id.
func (s *Store) Get(ctx context.Context, id int) (Result[Product], error) {
	if err := s.sleep(ctx, s.latency.Get); err != nil {
		return Result[Product]{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(id)
	if i < 0 {
		return notFound[Product](), nil
	}
	return Ok(http.StatusOK, s.products[i], ""), nil
}

// Create adds a product; name and a positive price are required.
func (s *Store) Create(ctx context.Context, draft Draft) (Result[Product], error) {
	if err := s.sleep(ctx, s.latency.Create); err != nil {
		return Result[Product]{}, err
	}
	if apiErr := validateDraft(draft); apiErr != nil {
		return Err[Product](apiErr), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	product := Product{
		ID:          s.nextID,
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
		Category:    draft.Category,
		Stock:       draft.Stock,
	}
	s.nextID++
	s.products = append(s.products, product)
	return Ok(http.StatusCreated, product, MessageCreated), nil
}

// Update merges patch into the product with id.
func (s *Store) Update(ctx context.Context, id int, patch Patch) (Result[Product], error) {
	if err := s.sleep(ctx, s.latency.Update); err != nil {
		return Result[Product]{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return notFound[Product](), nil
	}
	product := &s.products[i]
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}
	return Ok(http.StatusOK, *product, MessageUpdated), nil
}

// Replace overwrites every field of the product with id; the draft must be
// valid for Create.
func (s *Store) Replace(ctx context.Context, id int, draft Draft) (Result[Product], error) {
	if err := s.sleep(ctx, s.latency.Update); err != nil {
		return Result[Product]{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return notFound[Product](), nil
	}
	if apiErr := validateDraft(draft); apiErr != nil {
		return Err[Product](apiErr), nil
	}
	s.products[i] = Product{
		ID:          id,
		Name:        draft.Name,
		Description: draft.Description,
		Price:       draft.Price,
		Category:    draft.Category,
		Stock:       draft.Stock,
	}
	return Ok(http.StatusOK, s.products[i], MessageUpdated), nil
}

// Delete removes the product with id.
func (s *Store) Delete(ctx context.Context, id int) (Result[struct{}], error) {
	if err := s.sleep(ctx, s.latency.Delete); err != nil {
		return Result[struct{}]{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return notFound[struct{}](), nil
	}
	s.products = slices.Delete(s.products, i, i+1)
	return Ok(http.StatusOK, struct{}{}, MessageDeleted), nil
}

func validateDraft(draft Draft) *APIError {
	if strings.TrimSpace(draft.Name) == "" || draft.Price <= 0 {
		return &APIError{
			Status:  http.StatusBadRequest,
			Message: MessageInvalid,
			Errors:  []string{MessageNameAndPrice},
		}
	}
	return nil
}

func (s *Store) indexLocked(id int) int {
	return slices.IndexFunc(s.products, func(p Product) bool { return p.ID == id })
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
