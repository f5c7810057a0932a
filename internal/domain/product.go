package domain

type Product struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	ImageKey string `json:"image_key,omitempty"`
}

type PricelistItem struct {
	PricelistID int32   `json:"pricelist_id"`
	ProductID   int32   `json:"product_id"`
	MinQuantity float64 `json:"min_quantity"`
	FixedPrice  float64 `json:"fixed_price"`
}

// OrderMessage is a note posted to an order's activity feed.
type OrderMessage struct {
	ID        int32  `json:"id"`
	OrderID   int32  `json:"order_id"`
	Body      string `json:"body"`
	CreatedOn string `json:"created_on"`
}
