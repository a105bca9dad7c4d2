// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog manages product categories and products.

Creating either entity uploads its images to the media host first and then
persists the returned references. Listings are served newest first and, when
Redis is configured, cached per page until the next create.
*/
package catalog

import (
	"time"

	"github.com/taibuivan/shophub/internal/platform/media"
)

// # Domain Entities

// Category groups products under a name and a cover image.
type Category struct {
	ID            string    `json:"id"`
	Category      string    `json:"category"`
	ImageURL      string    `json:"image_url"`
	ImagePublicID string    `json:"image_public_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Product is a sellable item with a base image and up to five extra images.
type Product struct {
	ID                 string        `json:"id"`
	Category           string        `json:"category"`
	ImageURL           string        `json:"image_url"`
	ImagePublicID      string        `json:"image_public_id"`
	Images             []media.Asset `json:"product_images"`
	Name               string        `json:"product_name"`
	Price              float64       `json:"product_price"`
	Description        string        `json:"product_description"`
	Quantity           int           `json:"product_quantity"`
	Colour             string        `json:"product_colour"`
	SizesAvailable     []string      `json:"product_size_available"`
	Tags               []string      `json:"product_tags"`
	DiscountPercentage float64       `json:"product_discount_percentage"`
	Length             float64       `json:"product_length"`
	Breadth            float64       `json:"product_breadth"`
	Height             float64       `json:"product_height"`
	Weight             float64       `json:"product_weight"`
	LikeCount          int           `json:"product_like_count"`
	Rating             float64       `json:"product_rating"`
	IsAvailable        bool          `json:"is_available"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// # Defaults

const (
	DefaultColour = "N/A"
	MaxRating     = 5.0
)

// # Field Identifiers

const (
	FieldCategory           = "category"
	FieldCategoryFile       = "file"
	FieldImageBase          = "image_base"
	FieldImages             = "images"
	FieldName               = "product_name"
	FieldPrice              = "product_price"
	FieldDescription        = "product_description"
	FieldQuantity           = "product_quantity"
	FieldColour             = "product_colour"
	FieldSizes              = "product_size_available"
	FieldTags               = "product_tags"
	FieldDiscountPercentage = "product_discount_percentage"
	FieldLength             = "product_length"
	FieldBreadth            = "product_breadth"
	FieldHeight             = "product_height"
	FieldWeight             = "product_weight"
	FieldLikeCount          = "product_like_count"
	FieldRating             = "product_rating"
	FieldIsAvailable        = "is_available"
)

// # Client Messages

const (
	msgCategoryRequired  = "Product category is required."
	msgCategoryFile      = "No file uploaded"
	msgCategoryCreated   = "Product category created successfully."
	msgCategoriesFetched = "Product category fetched successfully."
	msgBaseImageRequired = "Base image is required!"
	msgProductInvalid    = "Invalid product details."
	msgProductCreated    = "Product created successfully!"
	msgProductsFetched   = "Products fetched successfully."
)
