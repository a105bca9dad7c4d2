// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuer and header names.
  - Media: Upload limits and storage folders.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "shophub-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Multipart uploads carry up to six images, so this is wider than a JSON-only API needs.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 45 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "shophub.app"

	// BearerScheme is the expected scheme of the Authorization header.
	BearerScheme = "bearer"
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderContentType   = "Content-Type"
	ContentTypeJSON     = "application/json; charset=utf-8"
)

// # Media

const (
	// MaxUploadMemory is the in-memory budget for multipart parsing. Larger parts spill to disk.
	MaxUploadMemory = 32 << 20

	// MaxImageSize is the largest single image accepted.
	MaxImageSize = 10 << 20

	// MaxProductImages is the number of extra gallery images accepted per product.
	MaxProductImages = 5

	// formBodySlack covers multipart boundaries, headers and text fields.
	formBodySlack = 1 << 20

	// MaxCategoryBody caps a category upload request: one image plus fields.
	MaxCategoryBody = MaxImageSize + formBodySlack

	// MaxProductBody caps a product upload request: base and extra images plus fields.
	MaxProductBody = (MaxProductImages+1)*MaxImageSize + formBodySlack

	// MediaRootFolder is the prefix every uploaded object is stored under.
	MediaRootFolder = "shophub/data/website"

	// ProductFolder holds per-product image folders.
	ProductFolder = MediaRootFolder + "/products"

	// CategoryFolder holds category cover images.
	CategoryFolder = MediaRootFolder + "/productCategory"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaShop = "shop"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixProducts   = "catalog:products:"
	RedisPrefixCategories = "catalog:categories:"

	// CatalogCacheTTL bounds how stale a cached listing may be.
	CatalogCacheTTL = 2 * time.Minute
)
