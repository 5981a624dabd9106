package server

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestCreateRoomDefaults(t *testing.T) {
	store := NewStore()
	room := store.CreateRoom(RoomConfig{ArbiterPlays: true})

	if room.Status != statusLobby {
		t.Fatalf("expected status %q, got %q", statusLobby, room.Status)
	}
	if room.Round != 0 {
		t.Fatalf("expected round 0, got %d", room.Round)
	}
	if room.Letter != "" {
		t.Fatalf("expected no letter, got %q", room.Letter)
	}
	if room.EndMode != endModeAll {
		t.Fatalf("expected end mode %q, got %q", endModeAll, room.EndMode)
	}
	if len(room.Categories) == 0 {
		t.Fatal("expected default categories, got none")
	}
	if len(room.Code) != codeLength {
		t.Fatalf("expected code of length %d, got %q", codeLength, room.Code)
	}
	for _, r := range room.Code {
		if !strings.ContainsRune(codeAlphabet, r) {
			t.Fatalf("code %q contains %q outside the alphabet", room.Code, r)
		}
	}
}

func TestCreateRoomUnknownEndModeFallsBack(t *testing.T) {
	store := NewStore()
	room := store.CreateRoom(RoomConfig{EndMode: "sudden-death"})
	if room.EndMode != endModeAll {
		t.Fatalf("expected end mode %q, got %q", endModeAll, room.EndMode)
	}
}

func TestCreateRoomUniqueCodes(t *testing.T) {
	store := NewStore()
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		room := store.CreateRoom(RoomConfig{})
		if _, dup := seen[room.Code]; dup {
			t.Fatalf("duplicate code %q", room.Code)
		}
		seen[room.Code] = struct{}{}
	}
}

func TestGetRoomNormalizesCode(t *testing.T) {
	store := NewStore()
	room := store.CreateRoom(RoomConfig{})

	if _, ok := store.GetRoom(strings.ToLower(room.Code)); !ok {
		t.Fatalf("lowercase lookup of %q failed", room.Code)
	}
	if _, ok := store.GetRoom("  " + room.Code + " "); !ok {
		t.Fatalf("padded lookup of %q failed", room.Code)
	}
	if _, ok := store.GetRoom("ZZZZ99"); ok {
		t.Fatal("expected unknown code to miss")
	}
}

func TestRemoveRoomIsIdempotent(t *testing.T) {
	store := NewStore()
	room := store.CreateRoom(RoomConfig{})

	store.RemoveRoom(room.Code)
	store.RemoveRoom(room.Code)
	if _, ok := store.GetRoom(room.Code); ok {
		t.Fatal("expected room to be gone")
	}
	if store.RoomCount() != 0 {
		t.Fatalf("expected empty registry, got %d rooms", store.RoomCount())
	}
}

func TestUpdateRoomUnknownCode(t *testing.T) {
	store := NewStore()
	_, err := store.UpdateRoom("NOPE42", func(room *Room) error { return nil })
	if !errors.Is(err, errRoomNotFound) {
		t.Fatalf("expected errRoomNotFound, got %v", err)
	}
}

func TestUpdateRoomRetiresEmptiedRoom(t *testing.T) {
	store := NewStore()
	room := store.CreateRoom(RoomConfig{})
	room.join("a", "Ada", 20, time.Now())

	if _, err := store.UpdateRoom(room.Code, func(room *Room) error {
		room.removePlayer("a")
		return nil
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, ok := store.GetRoom(room.Code); ok {
		t.Fatal("expected emptied room to be removed from the registry")
	}
}

func TestUpdateRoomKeepsFreshEmptyRoom(t *testing.T) {
	store := NewStore()
	room := store.CreateRoom(RoomConfig{})

	if _, err := store.UpdateRoom(room.Code, func(room *Room) error { return nil }); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, ok := store.GetRoom(room.Code); !ok {
		t.Fatal("room with no players yet should survive a no-op update")
	}
}
