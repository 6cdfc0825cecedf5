package storage

import (
	"context"

	"github.com/mcoot/gamerooms/internal/model"
)

// Storage holds live rooms and the connection-to-room index. Stored rooms
// are owned by the caller that saved them; implementations do not copy.
type Storage interface {
	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	DeleteRoom(ctx context.Context, id model.RoomID) error
	RoomExists(ctx context.Context, id model.RoomID) (bool, error)
	// ListRooms returns rooms in creation order
	ListRooms(ctx context.Context) ([]*model.Room, error)

	// Membership operations
	SetMembership(ctx context.Context, conn model.ConnID, room model.RoomID) error
	GetMembership(ctx context.Context, conn model.ConnID) (model.RoomID, bool, error)
	DeleteMembership(ctx context.Context, conn model.ConnID) error
}
