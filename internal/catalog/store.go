// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"

	"github.com/taibuivan/shophub/pkg/pagination"
)

// # Data Access

// CategoryRepository defines the data access contract for categories.
type CategoryRepository interface {
	// Create persists a new category.
	Create(context context.Context, category *Category) error

	// List returns one page of categories, newest first, plus the total count.
	List(context context.Context, params pagination.Params) ([]*Category, int, error)
}

// ProductRepository defines the data access contract for products.
type ProductRepository interface {
	// Create persists a product together with its extra images.
	Create(context context.Context, product *Product) error

	// List returns one page of products, newest first, plus the total count.
	List(context context.Context, params pagination.Params) ([]*Product, int, error)
}

// # Listing Cache

// Page is one cached listing page.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// PageCache stores listing pages between writes.
//
// Every Invalidate starts a new generation. A page is saved under the
// generation observed by the Load that preceded the store read, so a list
// that raced a write can never be served after that write.
type PageCache[T any] interface {
	// Load returns the cached page, or a nil page on a miss, along with
	// the current generation.
	Load(context context.Context, params pagination.Params) (*Page[T], int64, error)

	// Save stores a page read under generation until it expires.
	Save(context context.Context, params pagination.Params, generation int64, page *Page[T]) error

	// Invalidate starts a new generation and drops every cached page.
	Invalidate(context context.Context) error
}
