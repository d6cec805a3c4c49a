package model

import "time"

// CartItem is a stored cart line. Prices are not stored; they are read at display and checkout time.
type CartItem struct {
	ProductID string `json:"product_id"`
	StallID   string `json:"stall_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}

// Cart is the server-side basket of a user. A cart only holds products of one business.
type Cart struct {
	UserID     string     `json:"user_id"`
	BusinessID string     `json:"business_id,omitempty"`
	Items      []CartItem `json:"items"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Find returns the index of the line for productID, or -1.
func (c *Cart) Find(productID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// Remove drops the line for productID and reports whether it existed.
// The business binding is released once the cart is empty.
func (c *Cart) Remove(productID string) bool {
	i := c.Find(productID)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	if len(c.Items) == 0 {
		c.BusinessID = ""
	}
	return true
}

// CartLine is a cart item priced against the current catalogue.
type CartLine struct {
	CartItem
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	LineTotalCents int64  `json:"line_total_cents"`
	Available      bool   `json:"available"`
}

// CartView is what customers see: priced lines and a subtotal over available lines.
type CartView struct {
	UserID        string     `json:"user_id"`
	BusinessID    string     `json:"business_id,omitempty"`
	Lines         []CartLine `json:"lines"`
	SubtotalCents int64      `json:"subtotal_cents"`
	ItemCount     int        `json:"item_count"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
