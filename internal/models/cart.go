package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	errCartQuantity = errors.New("quantity must be at least 1")
	errCartLine     = errors.New("product is not in the cart")
)

// CartLine is a product and how many of it the customer wants.
type CartLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Cart keeps lines keyed by product id, in the order products were first added.
type Cart struct {
	ID        string     `json:"id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c *Cart) index(productID uuid.UUID) int {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add puts quantity units of the product in the cart. An existing line is incremented.
func (c *Cart) Add(productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return errCartQuantity
	}
	if i := c.index(productID); i >= 0 {
		c.Lines[i].Quantity += quantity
		return nil
	}
	c.Lines = append(c.Lines, CartLine{ProductID: productID, Quantity: quantity})
	return nil
}

// SetQuantity replaces the quantity of an existing line.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return errCartQuantity
	}
	i := c.index(productID)
	if i < 0 {
		return errCartLine
	}
	c.Lines[i].Quantity = quantity
	return nil
}

// Remove drops the product's line. Removing an absent product is a no-op.
func (c *Cart) Remove(productID uuid.UUID) {
	if i := c.index(productID); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

// TotalItems is the number of units across all lines.
func (c *Cart) TotalItems() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// OrderLines converts the cart into checkout input.
func (c *Cart) OrderLines() []OrderLine {
	lines := make([]OrderLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, OrderLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return lines
}

// CartItemView is a cart line priced against the current catalog.
type CartItemView struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	Available bool            `json:"available"`
}

// CartView is what the storefront renders. TotalPrice is advisory; checkout recomputes it.
type CartView struct {
	ID         string          `json:"cart_id"`
	Items      []CartItemView  `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}
