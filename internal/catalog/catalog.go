package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"shopfront/internal/domain"
	"shopfront/internal/fixture"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
)

// SortKey selects the ordering of a product listing
type SortKey string

const (
	SortNewest    SortKey = "createdAt"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// DefaultPageSize is used when a caller passes a non-positive page size.
const DefaultPageSize = 8

// ListParams describes a paginated product query. Page is 1-indexed.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
	Sort     SortKey
}

// ProductPage is one page of a product listing plus its pagination metadata.
type ProductPage struct {
	Data       []*domain.Product `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
}

// Store owns the in-memory collections of users, categories, and products.
// Every operation waits out a fixed artificial latency before touching the
// collections, so callers exercise the same asynchronous contract a real
// backend would impose. Mutations serialize behind a single writer lock;
// reads return deep copies so catalog state never escapes the store.
//
// Users and categories are read-only after construction. Products may be
// created, updated, and deleted at runtime.
type Store struct {
	mu         sync.RWMutex
	users      []*domain.User
	categories []*domain.Category
	products   []*domain.Product

	latency time.Duration
}

// New builds a store from seed data. The seed is deep-copied so the caller
// cannot alias the store's collections. latency <= 0 disables the artificial
// delay, which is what tests want.
func New(data *fixture.Data, latency time.Duration) *Store {
	s := &Store{latency: latency}
	for _, u := range data.Users {
		s.users = append(s.users, u.Clone())
	}
	for _, c := range data.Categories {
		s.categories = append(s.categories, c.Clone())
	}
	for _, p := range data.Products {
		s.products = append(s.products, p.Clone())
	}
	return s
}

// wait blocks for the configured artificial latency or until ctx is done.
func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Authenticate matches email case-sensitively against the user collection.
// There is no credential check; this is the demo's mock login.
func (s *Store) Authenticate(ctx context.Context, email string) (*domain.User, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return nil, ErrUserNotFound
}

// ListProducts filters the catalog by case-insensitive substring match of
// Search against the product name (empty search matches all), sorts by the
// requested key, and returns the 1-indexed page.
//
// An unknown sort key falls back to newest-first. A page past the end returns
// an empty slice with the full metadata, not an error. Sorting is stable so
// repeated paged reads partition the collection exactly even when prices tie.
func (s *Store) ListProducts(ctx context.Context, params ListParams) (*ProductPage, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(params.Search)
	matched := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if search == "" || strings.Contains(strings.ToLower(p.Name), search) {
			matched = append(matched, p)
		}
	}

	switch params.Sort {
	case SortPriceAsc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price < matched[j].Price })
	case SortPriceDesc:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Price > matched[j].Price })
	default:
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	}

	total := len(matched)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	data := make([]*domain.Product, 0, end-start)
	for _, p := range matched[start:end] {
		data = append(data, p.Clone())
	}

	return &ProductPage{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// GetProduct retrieves a product by ID
func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return nil, ErrProductNotFound
}

// ListProductsBySeller returns every product owned by the seller, active or
// not, in storage order. Creates prepend, so storage order is
// most-recently-created first.
func (s *Store) ListProductsBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Product, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	products := []*domain.Product{}
	for _, p := range s.products {
		if p.SellerID == sellerID {
			products = append(products, p.Clone())
		}
	}
	return products, nil
}

// SaveProduct upserts a product.
//
// With a non-nil draft ID it merges the draft onto the existing record: set
// fields overwrite, unset fields are preserved, UpdatedAt is bumped, and Slug
// and CreatedAt stay untouched. Updating an ID with no match returns
// ErrProductNotFound.
//
// With a nil draft ID it creates the product: a fresh ID, a slug derived from
// the name plus a unique suffix, both timestamps set to now, and the record
// inserted at the front of the collection.
//
// The store performs no field validation; that belongs to the transport layer.
func (s *Store) SaveProduct(ctx context.Context, draft ProductDraft) (*domain.Product, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	if draft.ID != uuid.Nil {
		for _, p := range s.products {
			if p.ID == draft.ID {
				draft.apply(p)
				p.UpdatedAt = now
				return p.Clone(), nil
			}
		}
		return nil, ErrProductNotFound
	}

	created := &domain.Product{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		IsActive:  true,
	}
	draft.apply(created)
	created.Slug = slugify(created.Name)
	s.products = append([]*domain.Product{created}, s.products...)
	return created.Clone(), nil
}

// DeleteProduct removes the product with the given ID. It reports whether a
// record was removed, so a second delete of the same ID returns false.
func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := s.wait(ctx); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListCategories returns the full category collection
func (s *Store) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]*domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, c.Clone())
	}
	return categories, nil
}

// slugify derives a URL-safe slug from the product name: lowercased,
// whitespace collapsed to hyphens, with a uuid-derived suffix for uniqueness
// under rapid successive creates.
func slugify(name string) string {
	base := strings.Join(strings.Fields(strings.ToLower(name)), "-")
	suffix := uuid.NewString()[:8]
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
