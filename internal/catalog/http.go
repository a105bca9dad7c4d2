// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shophub/internal/platform/constants"
	requestutil "github.com/taibuivan/shophub/internal/platform/request"
	"github.com/taibuivan/shophub/internal/platform/respond"
	"github.com/taibuivan/shophub/internal/platform/validate"
	"github.com/taibuivan/shophub/pkg/convert"
	"github.com/taibuivan/shophub/pkg/pagination"
	"github.com/taibuivan/shophub/pkg/query"
)

// # Definitions & Constructors

// Handler implements the catalogue HTTP endpoints.
type Handler struct {
	catalogService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{catalogService: service}
}

// Routes returns the public, read-only catalogue routes.
//
// # Endpoints
//   - GET /products   : Paginated products, newest first.
//   - GET /categories : Paginated categories, newest first.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/products", handler.listProducts)
	router.Get("/categories", handler.listCategories)
	return router
}

// ProtectedRoutes returns the catalogue routes served behind the access gate.
//
// # Endpoints
//   - POST /products   : multipart image_base, images (at most 5) and product fields.
//   - POST /categories : multipart file and category.
//   - GET  /products, /categories : Same listings as the public routes.
func (handler *Handler) ProtectedRoutes() chi.Router {
	router := handler.Routes()
	router.Post("/products", handler.createProduct)
	router.Post("/categories", handler.createCategory)
	return router
}

/*
listProducts returns a page of products.

GET /api/catalog/products?page=&limit=
*/
func (handler *Handler) listProducts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	products, total, err := handler.catalogService.ListProducts(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, msgProductsFetched, products, pagination.NewMeta(params, total))
}

/*
listCategories returns a page of categories.

GET /api/catalog/categories?page=&limit=
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	categories, total, err := handler.catalogService.ListCategories(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, msgCategoriesFetched, categories, pagination.NewMeta(params, total))
}

/*
createCategory uploads a category image and stores the category.

POST /api/protected/catalog/categories

Response:
  - 201: {message, status, data: Category}
  - 400: Missing name or file, or the file is not an image
  - 413: Body larger than one image plus form fields
*/
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseMultipart(writer, request, constants.MaxCategoryBody); err != nil {
		respond.Error(writer, request, err)
		return
	}

	image, err := requestutil.FormImage(request, FieldCategoryFile)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.catalogService.CreateCategory(request.Context(),
		requestutil.FormValue(request, FieldCategory), image)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, msgCategoryCreated, category)
}

/*
createProduct uploads the product images and stores the product.

POST /api/protected/catalog/products

Response:
  - 201: {message, status, data: Product}
  - 400: Missing base image, more than five extra images, or bad fields
  - 413: Body larger than six images plus form fields
*/
func (handler *Handler) createProduct(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseMultipart(writer, request, constants.MaxProductBody); err != nil {
		respond.Error(writer, request, err)
		return
	}

	base, err := requestutil.FormImage(request, FieldImageBase)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if base == nil {
		respond.Error(writer, request, validate.RequiredError(FieldImageBase, msgBaseImageRequired))
		return
	}

	extras, err := requestutil.FormImages(request, FieldImages, constants.MaxProductImages)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, err := parseProductForm(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.catalogService.CreateProduct(request.Context(), input, base, extras)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, msgProductCreated, product)
}

// parseProductForm converts the multipart text fields into a [ProductInput].
// Blank fields take their defaults; unparsable numbers are reported per field.
func parseProductForm(request *http.Request) (ProductInput, error) {
	validator := &validate.Validator{}
	value := func(field string) string { return requestutil.FormValue(request, field) }

	number := func(field string, def float64) float64 {
		parsed, err := convert.ToFloat64D(value(field), def)
		validator.Custom(field, err != nil, "must be a number")
		return parsed
	}
	integer := func(field string, def int) int {
		parsed, err := convert.ToIntD(value(field), def)
		validator.Custom(field, err != nil, "must be a whole number")
		return parsed
	}

	isAvailable, err := convert.ToBoolD(value(FieldIsAvailable), true)
	validator.Custom(FieldIsAvailable, err != nil, "must be true or false")

	input := ProductInput{
		Category:           value(FieldCategory),
		Name:               value(FieldName),
		Price:              number(FieldPrice, 0),
		Description:        value(FieldDescription),
		Quantity:           integer(FieldQuantity, 0),
		Colour:             convert.StringD(value(FieldColour), DefaultColour),
		SizesAvailable:     query.StringSlice(value(FieldSizes)),
		Tags:               query.StringSlice(value(FieldTags)),
		DiscountPercentage: number(FieldDiscountPercentage, 0),
		Length:             number(FieldLength, 0),
		Breadth:            number(FieldBreadth, 0),
		Height:             number(FieldHeight, 0),
		Weight:             number(FieldWeight, 0),
		LikeCount:          integer(FieldLikeCount, 0),
		Rating:             number(FieldRating, 0),
		IsAvailable:        isAvailable,
	}

	if validator.HasErrors() {
		return ProductInput{}, validator.ErrWithMessage(msgProductInvalid)
	}
	return input, nil
}
