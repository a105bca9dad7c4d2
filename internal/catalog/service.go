// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/shophub/internal/platform/constants"
	"github.com/taibuivan/shophub/internal/platform/ctxutil"
	"github.com/taibuivan/shophub/internal/platform/media"
	"github.com/taibuivan/shophub/internal/platform/metrics"
	"github.com/taibuivan/shophub/internal/platform/validate"
	"github.com/taibuivan/shophub/pkg/pagination"
	"github.com/taibuivan/shophub/pkg/slice"
	"github.com/taibuivan/shophub/pkg/slug"
	"github.com/taibuivan/shophub/pkg/uuid"
)

// Metric labels for the two listings and upload targets.
const (
	labelCategories = "categories"
	labelProducts   = "products"
)

// uploadConcurrency bounds parallel uploads of a product's extra images.
const uploadConcurrency = 3

// # Definitions & Constructors

// Service implements the catalogue use cases.
type Service struct {
	categories    CategoryRepository
	products      ProductRepository
	uploader      media.Uploader
	categoryCache PageCache[*Category]
	productCache  PageCache[*Product]
	recorder      metrics.Recorder
}

// Option customises a [Service].
type Option func(*Service)

// WithCaches enables listing caches. Nil caches leave caching off.
func WithCaches(categories PageCache[*Category], products PageCache[*Product]) Option {
	return func(service *Service) {
		service.categoryCache = categories
		service.productCache = products
	}
}

// WithRecorder reports uploads and cache lookups to recorder.
func WithRecorder(recorder metrics.Recorder) Option {
	return func(service *Service) {
		if recorder != nil {
			service.recorder = recorder
		}
	}
}

// NewService constructs a new catalogue [Service].
func NewService(categories CategoryRepository, products ProductRepository, uploader media.Uploader, opts ...Option) *Service {
	service := &Service{
		categories: categories,
		products:   products,
		uploader:   uploader,
		recorder:   (*metrics.Collector)(nil),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// # Category Use Cases

/*
CreateCategory uploads the cover image and persists a new category.

Returns:
  - *Category: Created entity
  - error: Validation (missing name or file), Internal (upload or storage)
*/
func (service *Service) CreateCategory(context context.Context, name string, image *media.Image) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validate.RequiredError(FieldCategory, msgCategoryRequired)
	}
	if image == nil {
		return nil, validate.RequiredError(FieldCategoryFile, msgCategoryFile)
	}

	asset, err := service.upload(context, labelCategories, constants.CategoryFolder, *image)
	if err != nil {
		return nil, err
	}

	category := &Category{
		ID:            uuid.New(),
		Category:      name,
		ImageURL:      asset.URL,
		ImagePublicID: asset.PublicID,
	}
	if err := service.categories.Create(context, category); err != nil {
		return nil, fmt.Errorf("catalog_service_create_category_failed: %w", err)
	}

	invalidate(context, service.categoryCache, labelCategories)
	return category, nil
}

// ListCategories returns one page of categories, newest first.
func (service *Service) ListCategories(context context.Context, params pagination.Params) ([]*Category, int, error) {
	return cachedList(context, service.categoryCache, service.recorder, labelCategories, params, service.categories.List)
}

// # Product Use Cases

// ProductInput holds the parsed, typed product fields.
type ProductInput struct {
	Category           string
	Name               string
	Price              float64
	Description        string
	Quantity           int
	Colour             string
	SizesAvailable     []string
	Tags               []string
	DiscountPercentage float64
	Length             float64
	Breadth            float64
	Height             float64
	Weight             float64
	LikeCount          int
	Rating             float64
	IsAvailable        bool
}

// Validate checks ranges that the form parser cannot express.
func (input ProductInput) Validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		NonNegative(FieldPrice, input.Price).
		NonNegative(FieldQuantity, float64(input.Quantity)).
		Between(FieldDiscountPercentage, input.DiscountPercentage, 0, 100).
		NonNegative(FieldLength, input.Length).
		NonNegative(FieldBreadth, input.Breadth).
		NonNegative(FieldHeight, input.Height).
		NonNegative(FieldWeight, input.Weight).
		NonNegative(FieldLikeCount, float64(input.LikeCount)).
		Between(FieldRating, input.Rating, 0, MaxRating)
	return validator.ErrWithMessage(msgProductInvalid)
}

/*
CreateProduct uploads the base image and up to five extra images into the
product's folder and persists the product.

Returns:
  - *Product: Created entity
  - error: Validation (missing base image, too many images, bad fields),
    Internal (upload or storage)
*/
func (service *Service) CreateProduct(context context.Context, input ProductInput, base *media.Image, extras []media.Image) (*Product, error) {
	if base == nil {
		return nil, validate.RequiredError(FieldImageBase, msgBaseImageRequired)
	}

	validator := &validate.Validator{}
	validator.MaxCount(FieldImages, len(extras), constants.MaxProductImages)
	if err := validator.Err(); err != nil {
		return nil, err
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	folder := constants.ProductFolder + "/" + slug.FromOr(input.Name, "unnamed")

	baseAsset, err := service.upload(context, labelProducts, folder, *base)
	if err != nil {
		return nil, err
	}

	images, err := service.uploadAll(context, folder, extras)
	if err != nil {
		return nil, err
	}

	product := &Product{
		ID:                 uuid.New(),
		Category:           strings.TrimSpace(input.Category),
		ImageURL:           baseAsset.URL,
		ImagePublicID:      baseAsset.PublicID,
		Images:             images,
		Name:               strings.TrimSpace(input.Name),
		Price:              input.Price,
		Description:        input.Description,
		Quantity:           input.Quantity,
		Colour:             input.Colour,
		SizesAvailable:     cleanList(input.SizesAvailable),
		Tags:               cleanList(input.Tags),
		DiscountPercentage: input.DiscountPercentage,
		Length:             input.Length,
		Breadth:            input.Breadth,
		Height:             input.Height,
		Weight:             input.Weight,
		LikeCount:          input.LikeCount,
		Rating:             input.Rating,
		IsAvailable:        input.IsAvailable,
	}
	if product.Colour == "" {
		product.Colour = DefaultColour
	}

	if err := service.products.Create(context, product); err != nil {
		return nil, fmt.Errorf("catalog_service_create_product_failed: %w", err)
	}

	invalidate(context, service.productCache, labelProducts)
	ctxutil.Logger(context).InfoContext(context, "product_created",
		slog.String("product_id", product.ID),
		slog.Int("images", len(images)),
	)
	return product, nil
}

// ListProducts returns one page of products, newest first.
func (service *Service) ListProducts(context context.Context, params pagination.Params) ([]*Product, int, error) {
	return cachedList(context, service.productCache, service.recorder, labelProducts, params, service.products.List)
}

// # Internal Helpers

func (service *Service) upload(context context.Context, label, folder string, image media.Image) (media.Asset, error) {
	asset, err := service.uploader.Upload(context, folder, image)
	if err != nil {
		service.recorder.RecordUpload(label, metrics.OutcomeFailure)
		return media.Asset{}, fmt.Errorf("catalog_service_upload_failed: %w", err)
	}
	service.recorder.RecordUpload(label, metrics.OutcomeSuccess)
	return asset, nil
}

// uploadAll uploads images concurrently and returns their assets in input order.
func (service *Service) uploadAll(context context.Context, folder string, images []media.Image) ([]media.Asset, error) {
	assets := make([]media.Asset, len(images))
	if len(images) == 0 {
		return assets, nil
	}

	group, groupContext := errgroup.WithContext(context)
	group.SetLimit(uploadConcurrency)

	for index, image := range images {
		group.Go(func() error {
			asset, err := service.upload(groupContext, labelProducts, folder, image)
			if err != nil {
				return err
			}
			assets[index] = asset
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return assets, nil
}

// cachedList serves a listing page from cache when possible and fills the
// cache on a miss. Cache failures are logged and never fail the request.
func cachedList[T any](
	context context.Context,
	cache PageCache[T],
	recorder metrics.Recorder,
	label string,
	params pagination.Params,
	load func(context.Context, pagination.Params) ([]T, int, error),
) ([]T, int, error) {
	logger := ctxutil.Logger(context)

	// The generation is read before the store so a concurrent write's
	// Invalidate orphans the page saved below.
	cacheable := false
	var generation int64
	if cache != nil {
		page, observed, err := cache.Load(context, params)
		switch {
		case err != nil:
			logger.WarnContext(context, "catalog_cache_load_failed", slog.String("cache", label), slog.Any("error", err))
		case page != nil:
			recorder.RecordCacheLookup(label, metrics.OutcomeHit)
			return page.Items, page.Total, nil
		default:
			cacheable, generation = true, observed
		}
		recorder.RecordCacheLookup(label, metrics.OutcomeMiss)
	}

	items, total, err := load(context, params)
	if err != nil {
		return nil, 0, fmt.Errorf("catalog_service_list_%s_failed: %w", label, err)
	}

	if cacheable {
		if err := cache.Save(context, params, generation, &Page[T]{Items: items, Total: total}); err != nil {
			logger.WarnContext(context, "catalog_cache_save_failed", slog.String("cache", label), slog.Any("error", err))
		}
	}

	return items, total, nil
}

func invalidate[T any](context context.Context, cache PageCache[T], label string) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(context); err != nil {
		ctxutil.Logger(context).WarnContext(context, "catalog_cache_invalidate_failed",
			slog.String("cache", label),
			slog.Any("error", err),
		)
	}
}

// cleanList trims entries and drops blank ones. The result is never nil.
func cleanList(values []string) []string {
	cleaned := slice.Filter(slice.Map(values, strings.TrimSpace), func(value string) bool {
		return value != ""
	})
	if cleaned == nil {
		return []string{}
	}
	return cleaned
}

// compile-time checks
var (
	_ PageCache[*Category] = (*RedisPageCache[*Category])(nil)
	_ PageCache[*Product]  = (*RedisPageCache[*Product])(nil)
)
