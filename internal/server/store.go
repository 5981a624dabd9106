package server

import (
	"errors"
	"slices"
	"strings"
	"sync"
)

var errRoomNotFound = errors.New("room not found")

// Store is the room registry: every live room, keyed by its code.
// All room mutation goes through UpdateRoom, which runs the update
// to completion under the store lock, so no event ever observes a
// half-applied transition.
type Store struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func NewStore() *Store {
	return &Store{
		rooms: make(map[string]*Room),
	}
}

func (s *Store) CreateRoom(cfg RoomConfig) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := newRoomCode()
	for {
		if _, taken := s.rooms[code]; !taken {
			break
		}
		code = newRoomCode()
	}

	categories := slices.Clone(cfg.Categories)
	if len(categories) == 0 {
		categories = slices.Clone(defaultCategories)
	}
	endMode := cfg.EndMode
	if endMode != endModeFirst && endMode != endModeAll {
		endMode = endModeAll
	}

	room := &Room{
		Code:         code,
		Status:       statusLobby,
		Categories:   categories,
		EndMode:      endMode,
		ArbiterPlays: cfg.ArbiterPlays,
		RandomThemes: cfg.RandomThemes,
	}
	s.rooms[code] = room
	return room
}

func (s *Store) GetRoom(code string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[normalizeCode(code)]
	return room, ok
}

// UpdateRoom applies update atomically. A room whose roster drops to
// empty during the update is retired from the registry on the spot,
// so an empty room is never observable to later operations.
func (s *Store) UpdateRoom(code string, update func(room *Room) error) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[normalizeCode(code)]
	if !ok {
		return nil, errRoomNotFound
	}
	before := len(room.Players)
	if err := update(room); err != nil {
		return nil, err
	}
	if before > 0 && len(room.Players) == 0 {
		delete(s.rooms, room.Code)
	}
	return room, nil
}

func (s *Store) RemoveRoom(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, normalizeCode(code))
}

func (s *Store) RoomCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
