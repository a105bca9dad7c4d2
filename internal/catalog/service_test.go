// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shophub/internal/catalog"
	"github.com/taibuivan/shophub/internal/platform/apperr"
	"github.com/taibuivan/shophub/internal/platform/media"
	"github.com/taibuivan/shophub/pkg/pagination"
)

type serviceFixture struct {
	store    *memoryStore
	uploader *fakeUploader
	service  *catalog.Service
}

func newServiceFixture(opts ...catalog.Option) *serviceFixture {
	store := &memoryStore{}
	uploader := &fakeUploader{}
	return &serviceFixture{
		store:    store,
		uploader: uploader,
		service:  catalog.NewService(store, productStore{store}, uploader, opts...),
	}
}

func newRedisCaches(t *testing.T) (catalog.Option, *miniredis.Miniredis) {
	t.Helper()

	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return catalog.WithCaches(
		catalog.NewRedisPageCache[*catalog.Category](client, "test:categories:", time.Minute),
		catalog.NewRedisPageCache[*catalog.Product](client, "test:products:", time.Minute),
	), mini
}

var firstPage = pagination.Params{Page: 1, Limit: 20}

/*
TestService_CreateCategory uploads into the category folder and persists.
*/
func TestService_CreateCategory(t *testing.T) {
	f := newServiceFixture()
	image := pngImage("shoes.png")

	category, err := f.service.CreateCategory(context.Background(), "  Shoes ", &image)
	require.NoError(t, err)

	assert.Equal(t, "Shoes", category.Category)
	assert.Equal(t, "shophub/data/website/productCategory/shoes.png", category.ImagePublicID)
	assert.Equal(t, []string{"shophub/data/website/productCategory"}, f.uploader.folders)
	require.Len(t, f.store.categories, 1)
}

/*
TestService_CreateCategoryValidation rejects a missing name or file.
*/
func TestService_CreateCategoryValidation(t *testing.T) {
	f := newServiceFixture()
	image := pngImage("shoes.png")

	_, err := f.service.CreateCategory(context.Background(), " ", &image)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "Product category is required.", ae.Message)

	_, err = f.service.CreateCategory(context.Background(), "Shoes", nil)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.Empty(t, f.uploader.folders)
}

/*
TestService_CreateProduct applies defaults and keeps image order.
*/
func TestService_CreateProduct(t *testing.T) {
	f := newServiceFixture()
	base := pngImage("base.png")
	extras := []media.Image{pngImage("1.png"), pngImage("2.png"), pngImage("3.png")}

	product, err := f.service.CreateProduct(context.Background(), catalog.ProductInput{
		Name:        "Café Runner",
		Price:       49.5,
		IsAvailable: true,
	}, &base, extras)
	require.NoError(t, err)

	assert.Equal(t, "N/A", product.Colour)
	assert.Equal(t, []string{}, product.SizesAvailable)
	assert.Equal(t, []string{}, product.Tags)
	assert.True(t, product.IsAvailable)
	assert.Equal(t, "shophub/data/website/products/cafe-runner/base.png", product.ImagePublicID)

	require.Len(t, product.Images, 3)
	for i, name := range []string{"1.png", "2.png", "3.png"} {
		assert.True(t, strings.HasSuffix(product.Images[i].PublicID, "/"+name))
	}
}

/*
TestService_CreateProductCleansLists trims list entries and drops blanks.
*/
func TestService_CreateProductCleansLists(t *testing.T) {
	f := newServiceFixture()
	base := pngImage("base.png")

	product, err := f.service.CreateProduct(context.Background(), catalog.ProductInput{
		Name:           "Runner",
		SizesAvailable: []string{" S ", "", "M"},
		Tags:           []string{"  "},
	}, &base, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"S", "M"}, product.SizesAvailable)
	assert.Equal(t, []string{}, product.Tags)
}

/*
TestService_CreateProductValidation covers base image, image count and ranges.
*/
func TestService_CreateProductValidation(t *testing.T) {
	f := newServiceFixture()
	base := pngImage("base.png")
	valid := catalog.ProductInput{Name: "Runner"}

	_, err := f.service.CreateProduct(context.Background(), valid, nil, nil)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "Base image is required!", ae.Message)

	six := make([]media.Image, 6)
	for i := range six {
		six[i] = pngImage("x.png")
	}
	_, err = f.service.CreateProduct(context.Background(), valid, &base, six)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = f.service.CreateProduct(context.Background(), catalog.ProductInput{Name: "Runner", Rating: 7}, &base, nil)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = f.service.CreateProduct(context.Background(), catalog.ProductInput{Name: "Runner", Price: -1}, &base, nil)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	assert.Empty(t, f.uploader.folders)
	assert.Empty(t, f.store.products)
}

/*
TestService_CreateProductUploadFailure surfaces host errors as 500 and stores nothing.
*/
func TestService_CreateProductUploadFailure(t *testing.T) {
	f := newServiceFixture()
	f.uploader.failOn = "2.png"
	base := pngImage("base.png")

	_, err := f.service.CreateProduct(context.Background(), catalog.ProductInput{Name: "Runner"}, &base,
		[]media.Image{pngImage("1.png"), pngImage("2.png")})
	require.Error(t, err)
	assert.Nil(t, apperr.As(err))
	assert.Empty(t, f.store.products)
}

/*
TestService_ListingsWithoutCache always read the store.
*/
func TestService_ListingsWithoutCache(t *testing.T) {
	f := newServiceFixture()

	for i := 0; i < 2; i++ {
		_, _, err := f.service.ListProducts(context.Background(), firstPage)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, f.store.listCalls)
}

/*
TestService_ListingCache serves repeat reads from Redis until a create.
*/
func TestService_ListingCache(t *testing.T) {
	caches, mini := newRedisCaches(t)
	f := newServiceFixture(caches)
	ctx := context.Background()
	image := pngImage("a.png")

	_, err := f.service.CreateCategory(ctx, "Shoes", &image)
	require.NoError(t, err)

	categories, total, err := f.service.ListCategories(ctx, firstPage)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, categories, 1)

	categories, _, err = f.service.ListCategories(ctx, firstPage)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Shoes", categories[0].Category)
	assert.Equal(t, 1, f.store.listCalls)
	assert.True(t, mini.Exists("test:categories:page:1:1:20"))

	_, err = f.service.CreateCategory(ctx, "Hats", &image)
	require.NoError(t, err)
	assert.False(t, mini.Exists("test:categories:page:1:1:20"))

	categories, total, err = f.service.ListCategories(ctx, firstPage)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "Hats", categories[0].Category)
	assert.Equal(t, 2, f.store.listCalls)
}

/*
TestService_ListingCacheOutage falls back to the store when Redis is down.
*/
func TestService_ListingCacheOutage(t *testing.T) {
	caches, mini := newRedisCaches(t)
	f := newServiceFixture(caches)
	mini.Close()

	products, total, err := f.service.ListProducts(context.Background(), firstPage)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Zero(t, total)
	assert.Equal(t, 1, f.store.listCalls)
}
