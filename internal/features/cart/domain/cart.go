package domain

// Item represents one product line in the cart, keyed by product id.
type Item struct {
	// ID is the product identifier and the line's unique key.
	ID string `json:"id"`
	// Name is the product display name.
	Name string `json:"name"`
	// Slug is the product page slug.
	Slug string `json:"slug,omitempty"`
	// Price is the per-unit price.
	Price float64 `json:"price"`
	// Quantity is the number of units. Always >= 1 while the line exists.
	Quantity int `json:"quantity"`
	// Image is an optional product image reference.
	Image string `json:"image,omitempty"`
	// Unit is an optional display unit (e.g., "1pc").
	Unit string `json:"unit,omitempty"`
}

// Subtotal returns price x quantity for this line.
func (i Item) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart holds the ordered line items of a session together with derived
// totals. Totals are always a pure function of Items: every mutation
// rebuilds them with a full reduce. Cart sizes are small, so the O(n)
// recompute per mutation costs nothing and leaves no incremental
// bookkeeping to get wrong.
type Cart struct {
	// Items is the ordered list of lines, unique by product id.
	Items []Item `json:"items"`
	// TotalItems is the sum of quantities across all lines.
	TotalItems int `json:"total_items"`
	// TotalUniqueItems is the number of lines.
	TotalUniqueItems int `json:"total_unique_items"`
	// Total is the sum of price x quantity across all lines.
	Total float64 `json:"total"`
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{Items: []Item{}}
}

// AddItem merges the item into the cart. An existing line with the same
// id has its quantity incremented by the incoming quantity (default 1);
// otherwise the item is appended, preserving insertion order.
func (c *Cart) AddItem(item Item) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	for i := range c.Items {
		if c.Items[i].ID == item.ID {
			c.Items[i].Quantity += item.Quantity
			c.recalculate()
			return
		}
	}

	c.Items = append(c.Items, item)
	c.recalculate()
}

// RemoveItem drops the line with the given id. Removing an absent id
// leaves the cart unchanged.
func (c *Cart) RemoveItem(id string) {
	filtered := c.Items[:0]
	for _, item := range c.Items {
		if item.ID != id {
			filtered = append(filtered, item)
		}
	}
	c.Items = filtered
	c.recalculate()
}

// UpdateItem sets the quantity of the line with the given id. A quantity
// of zero or less removes the line entirely.
func (c *Cart) UpdateItem(id string, quantity int) {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].Quantity = quantity
			break
		}
	}
	c.dropEmptyLines()
	c.recalculate()
}

// Clear resets the cart to the empty state.
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.recalculate()
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Find returns the line with the given id, or nil.
func (c *Cart) Find(id string) *Item {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) dropEmptyLines() {
	filtered := c.Items[:0]
	for _, item := range c.Items {
		if item.Quantity > 0 {
			filtered = append(filtered, item)
		}
	}
	c.Items = filtered
}

// recalculate rebuilds every derived total from the item list.
func (c *Cart) recalculate() {
	if c.Items == nil {
		c.Items = []Item{}
	}

	totalItems := 0
	total := 0.0
	for _, item := range c.Items {
		totalItems += item.Quantity
		total += item.Subtotal()
	}

	c.TotalItems = totalItems
	c.TotalUniqueItems = len(c.Items)
	c.Total = total
}
