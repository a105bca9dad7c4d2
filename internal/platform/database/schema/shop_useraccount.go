package schema

// ShopUserAccountTable represents the 'shop.useraccount' table
type ShopUserAccountTable struct {
	Table     string
	ID        string
	Username  string
	Email     string
	Password  string
	CreatedAt string
	UpdatedAt string
}

// ShopUserAccount is the schema definition for shop.useraccount
var ShopUserAccount = ShopUserAccountTable{
	Table:     "shop.useraccount",
	ID:        "id",
	Username:  "username",
	Email:     "email",
	Password:  "passwordhash",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t ShopUserAccountTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.Password, t.CreatedAt, t.UpdatedAt}
}
