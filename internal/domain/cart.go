package domain

// Cart is the normalized projection of an upstream cart. Lines are a flat
// slice; Cost.TotalTaxAmount is always present, defaulting to zero in the
// cart's own currency when the upstream omits it.
type Cart struct {
	ID            string     `json:"id"`
	CheckoutURL   string     `json:"checkoutUrl"`
	Cost          CartCost   `json:"cost"`
	Lines         []CartLine `json:"lines"`
	TotalQuantity int        `json:"totalQuantity"`
}

type CartCost struct {
	SubtotalAmount Money `json:"subtotalAmount"`
	TotalAmount    Money `json:"totalAmount"`
	TotalTaxAmount Money `json:"totalTaxAmount"`
}

// CartLine freezes a merchandise snapshot at the time of the read or write
// that produced it; it is not a live reference into the catalog.
type CartLine struct {
	ID          string       `json:"id"`
	Quantity    int          `json:"quantity"`
	Cost        CartLineCost `json:"cost"`
	Merchandise Merchandise  `json:"merchandise"`
}

type CartLineCost struct {
	TotalAmount Money `json:"totalAmount"`
}

type Merchandise struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	SelectedOptions []SelectedOption `json:"selectedOptions"`
	Product         CartProduct      `json:"product"`
}

// CartProduct is the slimmed-down product view a cart line carries.
type CartProduct struct {
	ID            string `json:"id"`
	Handle        string `json:"handle"`
	Title         string `json:"title"`
	FeaturedImage Image  `json:"featuredImage"`
}

// CartLineInput is the delta a cart mutation applies.
type CartLineInput struct {
	ID            string `json:"id,omitempty"`
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}
