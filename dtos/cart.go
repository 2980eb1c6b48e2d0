package dtos

// ProductNameRequest selects a product or line item by name. It binds from
// both JSON bodies and storefront form posts.
type ProductNameRequest struct {
	Name string `json:"name" form:"name" binding:"required"`
}

// ChangeQuantityRequest carries a signed quantity change, typically +1 or -1.
type ChangeQuantityRequest struct {
	Delta int `json:"delta" binding:"ne=0,min=-1000,max=1000"`
}
