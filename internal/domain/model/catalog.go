package model

type Product struct {
	ID    int64
	Title string
}

type Variant struct {
	ID    int64
	Sku   string
	Price string
}

// CatalogEntry is one storefront variant together with its parent product,
// the unit the sync pipeline works on.
type CatalogEntry struct {
	Product Product
	Variant Variant
}
