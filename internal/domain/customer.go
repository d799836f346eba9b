package domain

import "time"

// Customer is a library patron. Every customer lives at exactly one address;
// the (firstname, lastname, birthdate) triple is unique across all customers.
type Customer struct {
	ID        string    `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Birthdate Date      `json:"birthdate,omitzero"`
	Email     string    `json:"email,omitempty"`
	AddressID string    `json:"address_id,omitempty"`
	Address   *Address  `json:"address,omitempty"` // embedded on reads
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// FullName returns "Firstname Lastname" for logs and seed output.
func (c *Customer) FullName() string {
	return c.Firstname + " " + c.Lastname
}
