package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mcoot/gamerooms/internal/model"
	"github.com/mcoot/gamerooms/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	rooms       map[model.RoomID]*model.Room
	order       []model.RoomID
	memberships map[model.ConnID]model.RoomID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms:       make(map[model.RoomID]*model.Room),
		memberships: make(map[model.ConnID]model.RoomID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID]; !ok {
		s.order = append(s.order, room.ID)
	}
	s.rooms[room.ID] = room
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, id model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return nil
	}
	delete(s.rooms, id)
	s.order = slices.DeleteFunc(s.order, func(r model.RoomID) bool { return r == id })
	return nil
}

func (s *Storage) RoomExists(ctx context.Context, id model.RoomID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[id]
	return ok, nil
}

func (s *Storage) ListRooms(ctx context.Context) ([]*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]*model.Room, 0, len(s.order))
	for _, id := range s.order {
		rooms = append(rooms, s.rooms[id])
	}
	return rooms, nil
}

// Membership operations

func (s *Storage) SetMembership(ctx context.Context, conn model.ConnID, room model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memberships[conn] = room
	return nil
}

func (s *Storage) GetMembership(ctx context.Context, conn model.ConnID) (model.RoomID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.memberships[conn]
	return room, ok, nil
}

func (s *Storage) DeleteMembership(ctx context.Context, conn model.ConnID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.memberships, conn)
	return nil
}
