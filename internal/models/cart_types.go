package models

import "slices"

// CartEntry is one product line of a session cart.
type CartEntry struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Cart is the pending purchase of one browser session. It is a value: every
// operation returns a new Cart and leaves the receiver untouched, so callers
// decide when the result is written back to the session.
//
// A Cart holds at most one entry per product and every entry has Quantity >= 1.
type Cart struct {
	Entries []CartEntry `json:"entries"`
}

// Add increments the entry for productID, or appends a new entry with
// quantity 1 when the product is not in the cart yet.
func (c Cart) Add(productID int64) Cart {
	entries := slices.Clone(c.Entries)
	for i := range entries {
		if entries[i].ProductID == productID {
			entries[i].Quantity++
			return Cart{Entries: entries}
		}
	}
	return Cart{Entries: append(entries, CartEntry{ProductID: productID, Quantity: 1})}
}

// Remove drops every entry for productID. Removing an absent product is a no-op.
func (c Cart) Remove(productID int64) Cart {
	entries := slices.DeleteFunc(slices.Clone(c.Entries), func(e CartEntry) bool {
		return e.ProductID == productID
	})
	return Cart{Entries: entries}
}

// IsEmpty reports whether the cart has no entries.
func (c Cart) IsEmpty() bool {
	return len(c.Entries) == 0
}

// Quantity returns the quantity held for productID, 0 if absent.
func (c Cart) Quantity(productID int64) int {
	for _, e := range c.Entries {
		if e.ProductID == productID {
			return e.Quantity
		}
	}
	return 0
}

// ItemCount is the sum of all entry quantities.
func (c Cart) ItemCount() int {
	n := 0
	for _, e := range c.Entries {
		n += e.Quantity
	}
	return n
}
