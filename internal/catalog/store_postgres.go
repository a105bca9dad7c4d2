// Copyright (c) 2026 ShopHub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/shophub/internal/platform/database/schema"
	"github.com/taibuivan/shophub/internal/platform/dberr"
	"github.com/taibuivan/shophub/internal/platform/media"
	"github.com/taibuivan/shophub/pkg/pagination"
)

// # Category Repository

// PostgresCategoryRepository implements [CategoryRepository] on shop.productcategory.
type PostgresCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new PostgreSQL implementation of the CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{pool: pool}
}

var categoryColumns = strings.Join(schema.ShopProductCategory.Columns(), ", ")

/*
Create inserts a category row.
*/
func (repository *PostgresCategoryRepository) Create(context context.Context, category *Category) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.ShopProductCategory.Table, categoryColumns)

	stampTimes(&category.CreatedAt, &category.UpdatedAt)

	_, err := repository.pool.Exec(context, query,
		category.ID,
		category.Category,
		category.ImageURL,
		category.ImagePublicID,
		category.CreatedAt,
		category.UpdatedAt,
	)
	return dberr.Wrap(err, "Product category", "postgres_category_repo_create_failed")
}

/*
List returns a page of categories ordered by creation time, newest first.
*/
func (repository *PostgresCategoryRepository) List(context context.Context, params pagination.Params) ([]*Category, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s DESC, %s DESC
		LIMIT $1 OFFSET $2`,
		categoryColumns,
		schema.ShopProductCategory.Table,
		schema.ShopProductCategory.CreatedAt,
		schema.ShopProductCategory.ID,
	)

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Product category", "postgres_category_repo_list_failed")
	}
	defer rows.Close()

	categories := []*Category{}
	var totalCount int

	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(
			&category.ID,
			&category.Category,
			&category.ImageURL,
			&category.ImagePublicID,
			&category.CreatedAt,
			&category.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Product category", "postgres_category_repo_scan_failed")
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Product category", "postgres_category_repo_list_failed")
	}

	return categories, totalCount, nil
}

// # Product Repository

// PostgresProductRepository implements [ProductRepository] on shop.product
// and shop.productimage.
type PostgresProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new PostgreSQL implementation of the ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) *PostgresProductRepository {
	return &PostgresProductRepository{pool: pool}
}

var productColumns = strings.Join(schema.ShopProduct.Columns(), ", ")

/*
Create inserts the product row and copies its extra images in one transaction.
*/
func (repository *PostgresProductRepository) Create(context context.Context, product *Product) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		schema.ShopProduct.Table, productColumns)

	stampTimes(&product.CreatedAt, &product.UpdatedAt)

	err := pgx.BeginFunc(context, repository.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(context, query,
			product.ID,
			product.Category,
			product.ImageURL,
			product.ImagePublicID,
			product.Name,
			product.Price,
			product.Description,
			product.Quantity,
			product.Colour,
			product.SizesAvailable,
			product.Tags,
			product.DiscountPercentage,
			product.Length,
			product.Breadth,
			product.Height,
			product.Weight,
			product.LikeCount,
			product.Rating,
			product.IsAvailable,
			product.CreatedAt,
			product.UpdatedAt,
		); err != nil {
			return err
		}

		if len(product.Images) == 0 {
			return nil
		}

		rows := make([][]any, len(product.Images))
		for position, image := range product.Images {
			rows[position] = []any{product.ID, position, image.URL, image.PublicID}
		}

		_, err := tx.CopyFrom(context,
			pgx.Identifier(schema.ShopProductImage.Identifier()),
			schema.ShopProductImage.Columns(),
			pgx.CopyFromRows(rows),
		)
		return err
	})

	return dberr.Wrap(err, "Product", "postgres_product_repo_create_failed")
}

/*
List returns a page of products ordered by creation time, newest first, with
their extra images attached in upload order.
*/
func (repository *PostgresProductRepository) List(context context.Context, params pagination.Params) ([]*Product, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s DESC, %s DESC
		LIMIT $1 OFFSET $2`,
		productColumns,
		schema.ShopProduct.Table,
		schema.ShopProduct.CreatedAt,
		schema.ShopProduct.ID,
	)

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Product", "postgres_product_repo_list_failed")
	}
	defer rows.Close()

	products := []*Product{}
	byID := make(map[string]*Product)
	var totalCount int

	for rows.Next() {
		product := &Product{Images: []media.Asset{}}
		if err := rows.Scan(
			&product.ID,
			&product.Category,
			&product.ImageURL,
			&product.ImagePublicID,
			&product.Name,
			&product.Price,
			&product.Description,
			&product.Quantity,
			&product.Colour,
			&product.SizesAvailable,
			&product.Tags,
			&product.DiscountPercentage,
			&product.Length,
			&product.Breadth,
			&product.Height,
			&product.Weight,
			&product.LikeCount,
			&product.Rating,
			&product.IsAvailable,
			&product.CreatedAt,
			&product.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Product", "postgres_product_repo_scan_failed")
		}
		products = append(products, product)
		byID[product.ID] = product
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Product", "postgres_product_repo_list_failed")
	}

	if len(products) == 0 {
		return products, totalCount, nil
	}

	if err := repository.attachImages(context, byID); err != nil {
		return nil, 0, err
	}

	return products, totalCount, nil
}

// attachImages loads the extra images of every product in byID.
func (repository *PostgresProductRepository) attachImages(context context.Context, byID map[string]*Product) error {
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s, %s`,
		schema.ShopProductImage.ProductID,
		schema.ShopProductImage.URL,
		schema.ShopProductImage.PublicID,
		schema.ShopProductImage.Table,
		schema.ShopProductImage.ProductID,
		schema.ShopProductImage.ProductID,
		schema.ShopProductImage.Position,
	)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "Product image", "postgres_product_repo_images_failed")
	}
	defer rows.Close()

	for rows.Next() {
		var productID string
		var image media.Asset
		if err := rows.Scan(&productID, &image.URL, &image.PublicID); err != nil {
			return dberr.Wrap(err, "Product image", "postgres_product_repo_images_scan_failed")
		}
		if product, ok := byID[productID]; ok {
			product.Images = append(product.Images, image)
		}
	}
	return dberr.Wrap(rows.Err(), "Product image", "postgres_product_repo_images_failed")
}

// stampTimes initialises creation and update timestamps.
func stampTimes(createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}
