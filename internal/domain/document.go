package domain

// OrderDocument is the printable view of a sale order.
type OrderDocument struct {
	OrderID     int32          `json:"order_id"`
	OrderName   string         `json:"order_name"`
	CompanyName string         `json:"company_name"`
	PrintImage  bool           `json:"print_image"`
	ImageSize   ImageSize      `json:"image_size"`
	Lines       []DocumentLine `json:"lines"`
	Total       float64        `json:"total"`
}

type DocumentLine struct {
	LineID      int32   `json:"line_id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	PriceUnit   float64 `json:"price_unit"`
	Subtotal    float64 `json:"subtotal"`
	// Image is the base64 PNG of the product image, resized to ImageSize.
	Image string `json:"image,omitempty"`
}
