// Package main provides a tool to seed the database with sample library data.
//
// It creates a handful of addresses, customers, media items, and open loans
// so the API has something to serve during development.
//
// Usage:
//
//	DATABASE_PATH=~/Lesezeit/lesezeit.db go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lesezeit/lesezeit-server/internal/domain"
	"github.com/lesezeit/lesezeit-server/internal/service"
	"github.com/lesezeit/lesezeit-server/internal/store/sqlite"
)

func main() {
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, "Lesezeit", "lesezeit.db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	s, err := sqlite.Open(dbPath, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	addresses := service.NewAddressService(s, logger)
	customers := service.NewCustomerService(s, logger)
	media := service.NewMediaService(s, logger)
	borrowings := service.NewBorrowingService(s, logger)

	ctx := context.Background()

	addr, err := addresses.CreateAddress(ctx, service.CreateAddressRequest{
		StreetAndNum: "Bahnhofstrasse 12",
		City:         "Zürich",
		PLZ:          "8001",
	})
	if err != nil {
		log.Fatalf("Failed to create address: %v", err)
	}
	fmt.Printf("Created address %s (%s, %s)\n", addr.ID, addr.StreetAndNum, addr.City)

	customer, err := customers.CreateCustomer(ctx, service.CreateCustomerRequest{
		Firstname: "Anna",
		Lastname:  "Keller",
		Birthdate: domain.NewDate(1990, time.May, 10),
		Email:     "anna.keller@example.ch",
		AddressID: addr.ID,
	})
	if err != nil {
		log.Fatalf("Failed to create customer: %v", err)
	}
	fmt.Printf("Created customer %s (%s %s)\n", customer.ID, customer.Firstname, customer.Lastname)

	// A second customer with an inline address.
	_, err = customers.CreateCustomer(ctx, service.CreateCustomerRequest{
		Firstname: "Luca",
		Lastname:  "Meier",
		Birthdate: domain.NewDate(1985, time.November, 2),
		Email:     "luca.meier@example.ch",
		Address: &service.CreateAddressRequest{
			StreetAndNum: "Seestrasse 4",
			City:         "Luzern",
			PLZ:          "6003",
		},
	})
	if err != nil {
		log.Fatalf("Failed to create customer: %v", err)
	}

	isbn := int64(9783161484100)
	samples := []service.CreateMediaRequest{
		{Title: "Der Steppenwolf", Author: "Hermann Hesse", Genre: "Roman", Rating: 5, ISBN: &isbn, ShelfCode: "R3", FSK: "12"},
		{Title: "Heidi", Author: "Johanna Spyri", Genre: "Kinderbuch", Rating: 4, ShelfCode: "K1", FSK: "0"},
		{Title: "Homo Faber", Author: "Max Frisch", Genre: "Roman", Rating: 4, ShelfCode: "R7", FSK: "16"},
	}

	var first *domain.Media
	for _, req := range samples {
		m, err := media.CreateMedia(ctx, req)
		if err != nil {
			log.Fatalf("Failed to create media %q: %v", req.Title, err)
		}
		fmt.Printf("Created media %s (%s)\n", m.ID, m.Title)
		if first == nil {
			first = m
		}
	}

	loan, err := borrowings.CreateBorrowing(ctx, service.CreateBorrowingRequest{
		Duedate:    domain.Today().AddDays(14),
		CustomerID: customer.ID,
		MediaID:    first.ID,
	})
	if err != nil {
		log.Fatalf("Failed to create borrowing: %v", err)
	}
	fmt.Printf("Created borrowing %s (due %s)\n", loan.ID, loan.Duedate)

	fmt.Println("Seed complete.")
}
