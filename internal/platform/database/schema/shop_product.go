package schema

// ShopProductTable represents the 'shop.product' table
type ShopProductTable struct {
	Table              string
	ID                 string
	Category           string
	ImageURL           string
	ImagePublicID      string
	Name               string
	Price              string
	Description        string
	Quantity           string
	Colour             string
	SizesAvailable     string
	Tags               string
	DiscountPercentage string
	Length             string
	Breadth            string
	Height             string
	Weight             string
	LikeCount          string
	Rating             string
	IsAvailable        string
	CreatedAt          string
	UpdatedAt          string
}

// ShopProduct is the schema definition for shop.product
var ShopProduct = ShopProductTable{
	Table:              "shop.product",
	ID:                 "id",
	Category:           "category",
	ImageURL:           "imageurl",
	ImagePublicID:      "imagepublicid",
	Name:               "name",
	Price:              "price",
	Description:        "description",
	Quantity:           "quantity",
	Colour:             "colour",
	SizesAvailable:     "sizesavailable",
	Tags:               "tags",
	DiscountPercentage: "discountpercentage",
	Length:             "length",
	Breadth:            "breadth",
	Height:             "height",
	Weight:             "weight",
	LikeCount:          "likecount",
	Rating:             "rating",
	IsAvailable:        "isavailable",
	CreatedAt:          "createdat",
	UpdatedAt:          "updatedat",
}

// Columns returns all standard column names
func (t ShopProductTable) Columns() []string {
	return []string{
		t.ID, t.Category, t.ImageURL, t.ImagePublicID, t.Name, t.Price,
		t.Description, t.Quantity, t.Colour, t.SizesAvailable, t.Tags,
		t.DiscountPercentage, t.Length, t.Breadth, t.Height, t.Weight,
		t.LikeCount, t.Rating, t.IsAvailable, t.CreatedAt, t.UpdatedAt,
	}
}
