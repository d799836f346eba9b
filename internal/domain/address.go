// Package domain defines the library's core entities: addresses, customers,
// media and borrowings, together with the borrowing lifecycle rules.
package domain

import "time"

// Address is a postal address referenced by customers.
// Multiple customers may share one address; the (streetandnum, city) pair
// is unique across all addresses.
type Address struct {
	ID           string    `json:"id"`
	StreetAndNum string    `json:"streetandnum"`
	City         string    `json:"city"`
	PLZ          string    `json:"plz,omitempty"` // postal code
	CreatedAt    time.Time `json:"created_at,omitzero"`
	UpdatedAt    time.Time `json:"updated_at,omitzero"`
}
