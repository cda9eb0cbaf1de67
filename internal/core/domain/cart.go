package domain

// A CartItem is one cart line: a product snapshot, the chosen size and a
// quantity of at least 1. At most one item exists per (product id, size).
type CartItem struct {
	Product  Product
	Size     string
	Quantity int
}

func (i CartItem) Subtotal() float64 {
	return i.Product.EffectivePrice() * float64(i.Quantity)
}

// A Cart is the ordered sequence of line items. Insertion order is kept for
// display only.
type Cart []CartItem

// Total is the sum of effective unit price times quantity over all items.
func (c Cart) Total() (total float64) {
	for _, it := range c {
		total += it.Subtotal()
	}
	return total
}

// Count is the total unit count, not the number of lines.
func (c Cart) Count() (n int) {
	for _, it := range c {
		n += it.Quantity
	}
	return n
}

func (c Cart) indexOf(productID, size string) int {
	for i, it := range c {
		if it.Product.ID == productID && it.Size == size {
			return i
		}
	}
	return -1
}

// Add merges quantity into an existing (product id, size) line or appends a
// new one at the end. Quantities below 1 are treated as 1, an item with a
// non-positive quantity must never exist.
func (c Cart) Add(p Product, size string, quantity int) Cart {
	if quantity < 1 {
		quantity = 1
	}
	if i := c.indexOf(p.ID, size); i >= 0 {
		c[i].Quantity += quantity
		return c
	}
	return append(c, CartItem{Product: p, Size: size, Quantity: quantity})
}

// Remove drops the line matching both keys. Removing an absent line is a
// no-op, not an error.
func (c Cart) Remove(productID, size string) Cart {
	i := c.indexOf(productID, size)
	if i < 0 {
		return c
	}
	return append(c[:i], c[i+1:]...)
}

// SetQuantity replaces the quantity of the matching line. A quantity of zero
// or below removes the line. Absent line is a no-op.
func (c Cart) SetQuantity(productID, size string, quantity int) Cart {
	if quantity <= 0 {
		return c.Remove(productID, size)
	}
	if i := c.indexOf(productID, size); i >= 0 {
		c[i].Quantity = quantity
	}
	return c
}
