package services

import (
	"errors"
	"testing"

	"github.com/moom-ugrd-24f/poke-n-pump-server/models"
)

func TestCreateAndListPokes(t *testing.T) {
	setupTestDB(t)
	a := newTestUser(t, "a", nil)
	b := newTestUser(t, "b", nil)

	poke, err := CreatePoke(a.ID, b.ID, models.PokeTypeTrashTalk)
	if err != nil {
		t.Fatalf("CreatePoke: %v", err)
	}
	if poke.Timestamp.IsZero() {
		t.Errorf("timestamp not set on create")
	}

	if _, err := CreatePoke(b.ID, a.ID, models.PokeTypeJoinMe); err != nil {
		t.Fatalf("CreatePoke: %v", err)
	}

	received, err := ListPokes(b.ID)
	if err != nil {
		t.Fatalf("ListPokes: %v", err)
	}
	if len(received) != 1 || received[0].SenderID != a.ID || received[0].PokeType != models.PokeTypeTrashTalk {
		t.Errorf("received = %+v", received)
	}
}

func TestDeletePoke(t *testing.T) {
	setupTestDB(t)
	a := newTestUser(t, "a", nil)
	b := newTestUser(t, "b", nil)

	poke, err := CreatePoke(a.ID, b.ID, models.PokeTypeJustPoke)
	if err != nil {
		t.Fatalf("CreatePoke: %v", err)
	}
	if _, err := DeletePoke(poke.ID); err != nil {
		t.Fatalf("DeletePoke: %v", err)
	}
	if _, err := DeletePoke(poke.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete: err = %v, want ErrNotFound", err)
	}

	remaining, err := ListPokes(b.ID)
	if err != nil {
		t.Fatalf("ListPokes: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("pokes after delete = %+v, want none", remaining)
	}
}
