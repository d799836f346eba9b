package api

import (
	"time"

	"github.com/lesezeit/lesezeit-server/internal/domain"
)

// === Response DTOs ===

// AddressResponse contains address data in API responses.
type AddressResponse struct {
	ID           string    `json:"id" doc:"Address ID"`
	StreetAndNum string    `json:"streetandnum" doc:"Street and house number"`
	City         string    `json:"city" doc:"City"`
	PLZ          string    `json:"plz,omitempty" doc:"Postal code"`
	CreatedAt    time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time `json:"updated_at" doc:"Last update time"`
}

// CustomerResponse contains customer data with the address embedded.
type CustomerResponse struct {
	ID        string           `json:"id" doc:"Customer ID"`
	Firstname string           `json:"firstname" doc:"First name"`
	Lastname  string           `json:"lastname" doc:"Last name"`
	Birthdate domain.Date      `json:"birthdate,omitzero" doc:"Date of birth"`
	Email     string           `json:"email,omitempty" doc:"Email address"`
	Address   *AddressResponse `json:"address,omitempty" doc:"Home address"`
	CreatedAt time.Time        `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time        `json:"updated_at" doc:"Last update time"`
}

// MediaResponse contains catalog item data in API responses.
type MediaResponse struct {
	ID        string    `json:"id" doc:"Media ID"`
	Title     string    `json:"title" doc:"Title"`
	Author    string    `json:"author,omitempty" doc:"Author"`
	Genre     string    `json:"genre,omitempty" doc:"Genre"`
	Rating    int       `json:"rating" doc:"Rating from 0 to 5"`
	ISBN      *int64    `json:"isbn,omitempty" doc:"ISBN"`
	ShelfCode string    `json:"shelf_code,omitempty" doc:"Shelf location code"`
	FSK       string    `json:"fsk,omitempty" doc:"Age rating"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

// BorrowingResponse contains loan data with customer and media embedded.
// DueStatus is derived against today at read time.
type BorrowingResponse struct {
	ID           string            `json:"id" doc:"Borrowing ID"`
	Dateborrowed domain.Date       `json:"dateborrowed" doc:"Start of the loan"`
	Duedate      domain.Date       `json:"duedate" doc:"Return deadline"`
	ExtendedOn   domain.Date       `json:"extended_on,omitzero" doc:"Date the loan was extended"`
	DueStatus    domain.DueStatus  `json:"due_status" doc:"ON_TIME, DUE_TODAY or OVERDUE"`
	Customer     *CustomerResponse `json:"customer,omitempty" doc:"Borrowing customer"`
	Media        *MediaResponse    `json:"media,omitempty" doc:"Borrowed media item"`
	CreatedAt    time.Time         `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time         `json:"updated_at" doc:"Last update time"`
}

// === Converters ===

func toAddressResponse(a *domain.Address) *AddressResponse {
	if a == nil {
		return nil
	}
	return &AddressResponse{
		ID:           a.ID,
		StreetAndNum: a.StreetAndNum,
		City:         a.City,
		PLZ:          a.PLZ,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toAddressResponses(addrs []*domain.Address) []AddressResponse {
	out := make([]AddressResponse, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, *toAddressResponse(a))
	}
	return out
}

func toCustomerResponse(c *domain.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID:        c.ID,
		Firstname: c.Firstname,
		Lastname:  c.Lastname,
		Birthdate: c.Birthdate,
		Email:     c.Email,
		Address:   toAddressResponse(c.Address),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCustomerResponses(customers []*domain.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, *toCustomerResponse(c))
	}
	return out
}

func toMediaResponse(m *domain.Media) *MediaResponse {
	if m == nil {
		return nil
	}
	return &MediaResponse{
		ID:        m.ID,
		Title:     m.Title,
		Author:    m.Author,
		Genre:     m.Genre,
		Rating:    m.Rating,
		ISBN:      m.ISBN,
		ShelfCode: m.ShelfCode,
		FSK:       m.FSK,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toMediaResponses(media []*domain.Media) []MediaResponse {
	out := make([]MediaResponse, 0, len(media))
	for _, m := range media {
		out = append(out, *toMediaResponse(m))
	}
	return out
}

func toBorrowingResponse(b *domain.Borrowing) *BorrowingResponse {
	if b == nil {
		return nil
	}
	return &BorrowingResponse{
		ID:           b.ID,
		Dateborrowed: b.Dateborrowed,
		Duedate:      b.Duedate,
		ExtendedOn:   b.ExtendedOn,
		DueStatus:    b.DueStatus(domain.Today()),
		Customer:     toCustomerResponse(b.Customer),
		Media:        toMediaResponse(b.Media),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func toBorrowingResponses(borrowings []*domain.Borrowing) []BorrowingResponse {
	out := make([]BorrowingResponse, 0, len(borrowings))
	for _, b := range borrowings {
		out = append(out, *toBorrowingResponse(b))
	}
	return out
}
