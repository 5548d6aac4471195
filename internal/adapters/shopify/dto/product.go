package dto

type ProductsResponse struct {
	Products []ProductDto `json:"products"`
}

type ProductDto struct {
	ID       int64        `json:"id"`
	Title    string       `json:"title,omitempty"`
	Variants []VariantDto `json:"variants,omitempty"`
}

type VariantDto struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id,omitempty"`
	Sku       string `json:"sku,omitempty"`
	Price     string `json:"price,omitempty"`
}

type VariantUpdateRequest struct {
	Variant struct {
		ID    int64  `json:"id"`
		Price string `json:"price"`
	} `json:"variant"`
}
