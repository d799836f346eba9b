package domain

import "time"

// Media is a catalog item, e.g. a book. Titles are not unique: the catalog
// may hold several copies of the same work, each with its own ID.
type Media struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author,omitempty"`
	Genre     string    `json:"genre,omitempty"`
	Rating    int       `json:"rating,omitempty"` // 1-5 stars
	ISBN      *int64    `json:"isbn,omitempty"`
	ShelfCode string    `json:"shelf_code,omitempty"` // physical location in the library
	FSK       string    `json:"fsk,omitempty"`        // age rating code
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}
