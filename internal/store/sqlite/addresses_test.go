package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lesezeit/lesezeit-server/internal/domain"
	"github.com/lesezeit/lesezeit-server/internal/id"
	"github.com/lesezeit/lesezeit-server/internal/store"
)

func TestCreateAddress(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	addr := seedAddress(t, s, "Hauptstrasse 1", "Zürich")

	got, err := s.GetAddress(ctx, addr.ID)
	if err != nil {
		t.Fatalf("get address: %v", err)
	}
	if got.StreetAndNum != "Hauptstrasse 1" {
		t.Errorf("expected Hauptstrasse 1, got %s", got.StreetAndNum)
	}
	if got.City != "Zürich" {
		t.Errorf("expected Zürich, got %s", got.City)
	}
	if got.PLZ != "8000" {
		t.Errorf("expected 8000, got %s", got.PLZ)
	}
}

func TestCreateAddressDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedAddress(t, s, "Hauptstrasse 1", "Zürich")

	dup := &domain.Address{
		ID:           id.MustGenerate("addr"),
		StreetAndNum: "Hauptstrasse 1",
		City:         "Zürich",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	err := s.CreateAddress(ctx, dup)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	// Same street in another city is fine.
	other := &domain.Address{
		ID:           id.MustGenerate("addr"),
		StreetAndNum: "Hauptstrasse 1",
		City:         "Bern",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.CreateAddress(ctx, other); err != nil {
		t.Fatalf("create address in other city: %v", err)
	}
}

func TestGetAddressNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetAddress(context.Background(), "addr-missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAddresses(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := seedAddress(t, s, "Hauptstrasse 1", "Zürich")
	second := seedAddress(t, s, "Bahnhofplatz 3", "Bern")

	all, err := s.ListAddresses(ctx)
	if err != nil {
		t.Fatalf("list addresses: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 addresses, got %d", len(all))
	}
	if all[0].ID != first.ID || all[1].ID != second.ID {
		t.Errorf("expected insertion order %s, %s; got %s, %s",
			first.ID, second.ID, all[0].ID, all[1].ID)
	}
}

func TestUpdateAddress(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	addr := seedAddress(t, s, "Hauptstrasse 1", "Zürich")

	addr.StreetAndNum = "Hauptstrasse 2"
	addr.PLZ = "8001"
	addr.UpdatedAt = time.Now()
	if err := s.UpdateAddress(ctx, addr); err != nil {
		t.Fatalf("update address: %v", err)
	}

	got, err := s.GetAddress(ctx, addr.ID)
	if err != nil {
		t.Fatalf("get address: %v", err)
	}
	if got.StreetAndNum != "Hauptstrasse 2" {
		t.Errorf("expected Hauptstrasse 2, got %s", got.StreetAndNum)
	}
	if got.PLZ != "8001" {
		t.Errorf("expected 8001, got %s", got.PLZ)
	}
}

func TestUpdateAddressNotFound(t *testing.T) {
	s := newTestStore(t)

	addr := &domain.Address{
		ID:           "addr-missing",
		StreetAndNum: "Nirgendwo 1",
		City:         "Zürich",
		UpdatedAt:    time.Now(),
	}
	err := s.UpdateAddress(context.Background(), addr)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteAddress(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	addr := seedAddress(t, s, "Hauptstrasse 1", "Zürich")

	if err := s.DeleteAddress(ctx, addr.ID); err != nil {
		t.Fatalf("delete address: %v", err)
	}

	_, err := s.GetAddress(ctx, addr.ID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestFindAddressesByCity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedAddress(t, s, "Hauptstrasse 1", "Zürich")
	seedAddress(t, s, "Seefeldstrasse 9", "Zürich")
	seedAddress(t, s, "Bahnhofplatz 3", "Bern")

	found, err := s.FindAddressesByCity(ctx, "Zürich")
	if err != nil {
		t.Fatalf("find by city: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 addresses in Zürich, got %d", len(found))
	}

	none, err := s.FindAddressesByCity(ctx, "Basel")
	if err != nil {
		t.Fatalf("find by city: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no addresses in Basel, got %d", len(none))
	}
}

func TestFindAddressesByPLZ(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedAddress(t, s, "Hauptstrasse 1", "Zürich")

	found, err := s.FindAddressesByPLZ(ctx, "8000")
	if err != nil {
		t.Fatalf("find by plz: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 address with plz 8000, got %d", len(found))
	}
}
