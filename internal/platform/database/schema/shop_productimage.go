package schema

import "strings"

// ShopProductImageTable represents the 'shop.productimage' table
type ShopProductImageTable struct {
	Table     string
	ProductID string
	Position  string
	URL       string
	PublicID  string
}

// ShopProductImage is the schema definition for shop.productimage
var ShopProductImage = ShopProductImageTable{
	Table:     "shop.productimage",
	ProductID: "productid",
	Position:  "position",
	URL:       "url",
	PublicID:  "publicid",
}

// Columns returns all standard column names
func (t ShopProductImageTable) Columns() []string {
	return []string{t.ProductID, t.Position, t.URL, t.PublicID}
}

// Identifier returns the schema-qualified name split for COPY FROM
func (t ShopProductImageTable) Identifier() []string {
	return strings.SplitN(t.Table, ".", 2)
}
