package domain

import (
	"strconv"
	"strings"
	"time"
)

// Product is a catalog entry of one storefront. Prices are whole pesos.
type Product struct {
	ID       string
	Locale   Locale
	Name     string
	Price    int64
	Icon     string
	Category string
}

type CartItem struct {
	Product  Product
	Quantity int
}

// Subtotal is price times quantity.
func (i CartItem) Subtotal() int64 {
	return i.Product.Price * int64(i.Quantity)
}

// Cart is an ordered list of lines, one per product.
type Cart struct {
	Items []CartItem
}

// Add puts one unit of p in the cart, bumping the line if it exists.
func (c *Cart) Add(p Product) {
	for i := range c.Items {
		if c.Items[i].Product.ID == p.ID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, CartItem{Product: p, Quantity: 1})
}

// AddQuantity puts qty units of p in the cart. Non-positive qty is ignored.
func (c *Cart) AddQuantity(p Product, qty int) {
	if qty <= 0 {
		return
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == p.ID {
			c.Items[i].Quantity += qty
			return
		}
	}
	c.Items = append(c.Items, CartItem{Product: p, Quantity: qty})
}

// UpdateQuantity shifts a line's quantity by delta. A change that would
// leave the line below one unit is ignored; use Remove to drop a line.
func (c *Cart) UpdateQuantity(productID string, delta int) {
	for i := range c.Items {
		if c.Items[i].Product.ID != productID {
			continue
		}
		if q := c.Items[i].Quantity + delta; q > 0 {
			c.Items[i].Quantity = q
		}
		return
	}
}

func (c *Cart) Remove(productID string) {
	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.Product.ID != productID {
			kept = append(kept, it)
		}
	}
	c.Items = kept
}

func (c *Cart) Total() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.Subtotal()
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Sale is a checked-out cart.
type Sale struct {
	ID        string
	UserID    string
	Username  string
	Locale    Locale
	Items     []CartItem
	Total     int64
	Timestamp time.Time
}

// FormatPesos renders a peso amount with dot thousand separators, the way
// es-CL writes money: 15000 -> "15.000".
func FormatPesos(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return b.String()
}
