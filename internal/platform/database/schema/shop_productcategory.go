package schema

// ShopProductCategoryTable represents the 'shop.productcategory' table
type ShopProductCategoryTable struct {
	Table         string
	ID            string
	Category      string
	ImageURL      string
	ImagePublicID string
	CreatedAt     string
	UpdatedAt     string
}

// ShopProductCategory is the schema definition for shop.productcategory
var ShopProductCategory = ShopProductCategoryTable{
	Table:         "shop.productcategory",
	ID:            "id",
	Category:      "category",
	ImageURL:      "imageurl",
	ImagePublicID: "imagepublicid",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

// Columns returns all standard column names
func (t ShopProductCategoryTable) Columns() []string {
	return []string{t.ID, t.Category, t.ImageURL, t.ImagePublicID, t.CreatedAt, t.UpdatedAt}
}
