// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/taibuivan/shophub/internal/catalog"
	"github.com/taibuivan/shophub/internal/platform/media"
	"github.com/taibuivan/shophub/pkg/pagination"
)

// memoryStore implements both repositories; newest entries come first.
type memoryStore struct {
	mu         sync.Mutex
	categories []*catalog.Category
	products   []*catalog.Product
	listCalls  int
}

func (store *memoryStore) Create(_ context.Context, category *catalog.Category) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.categories = append([]*catalog.Category{category}, store.categories...)
	return nil
}

func (store *memoryStore) List(_ context.Context, params pagination.Params) ([]*catalog.Category, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.listCalls++
	return pageOf(store.categories, params), len(store.categories), nil
}

// productStore adapts memoryStore to ProductRepository.
type productStore struct{ *memoryStore }

func (store productStore) Create(_ context.Context, product *catalog.Product) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.products = append([]*catalog.Product{product}, store.products...)
	return nil
}

func (store productStore) List(_ context.Context, params pagination.Params) ([]*catalog.Product, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.listCalls++
	return pageOf(store.products, params), len(store.products), nil
}

func pageOf[T any](items []T, params pagination.Params) []T {
	start := min(params.Offset(), len(items))
	end := min(start+params.Limit, len(items))
	return append([]T{}, items[start:end]...)
}

// fakeUploader records uploads and returns predictable assets.
type fakeUploader struct {
	mu      sync.Mutex
	folders []string
	failOn  string
}

func (uploader *fakeUploader) Upload(_ context.Context, folder string, image media.Image) (media.Asset, error) {
	if uploader.failOn != "" && image.Filename == uploader.failOn {
		return media.Asset{}, errors.New("media host unavailable")
	}

	uploader.mu.Lock()
	defer uploader.mu.Unlock()
	uploader.folders = append(uploader.folders, folder)

	key := fmt.Sprintf("%s/%s", folder, image.Filename)
	return media.Asset{URL: "https://cdn.test/" + key, PublicID: key}, nil
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func pngImage(name string) media.Image {
	return media.Image{Filename: name, ContentType: "image/png", Data: pngHeader}
}
