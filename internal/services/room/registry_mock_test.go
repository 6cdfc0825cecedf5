package room

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mcoot/gamerooms/internal/dependencies/mocks"
	"github.com/mcoot/gamerooms/internal/model"
	"github.com/mcoot/gamerooms/internal/rules"
	roommocks "github.com/mcoot/gamerooms/internal/services/room/mocks"
	"github.com/mcoot/gamerooms/internal/storage/memory"
	"github.com/mcoot/gamerooms/internal/testutil"
)

func eventOfType(t model.EventType) gomock.Matcher {
	return gomock.Cond(func(ev model.Event) bool { return ev.Type == t })
}

func newMockedRegistry(t *testing.T) (*Registry, *roommocks.MockPublisher, *mocks.MockRandom) {
	ctrl := gomock.NewController(t)
	pub := roommocks.NewMockPublisher(ctrl)
	rnd := mocks.NewMockRandom()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	reg := NewRegistry(memory.New(), pub, rules.Default(), nil, clk, rnd, testutil.NopLogger())
	return reg, pub, rnd
}

func TestRegistry_CreateRoomPublishOrder(t *testing.T) {
	reg, pub, rnd := newMockedRegistry(t)
	rnd.QueueString("ROOM01")

	gomock.InOrder(
		pub.EXPECT().Subscribe(alice, model.RoomID("ROOM01")),
		pub.EXPECT().Send(alice, eventOfType(model.EventRoomCreated)),
		pub.EXPECT().Publish(model.RoomID("ROOM01"), eventOfType(model.EventRoomState)),
		pub.EXPECT().PublishAll(eventOfType(model.EventRoomsList)),
	)

	_, err := reg.CreateRoom(context.Background(), alice, CreateParams{
		GameType: model.GameTypeTrivia, Username: "Alice", MaxPlayers: 2,
	})
	require.NoError(t, err)
}

func TestRegistry_ErrorsOnlyReachSender(t *testing.T) {
	reg, pub, _ := newMockedRegistry(t)

	pub.EXPECT().Send(bob, eventOfType(model.EventError)).Times(1)

	_, err := reg.JoinRoom(context.Background(), bob, JoinParams{RoomID: "NOPE00", Username: "Bob"})
	require.ErrorIs(t, err, model.ErrRoomNotFound)
}

func TestRegistry_LastLeaverClosesGroup(t *testing.T) {
	reg, pub, rnd := newMockedRegistry(t)
	rnd.QueueString("ROOM01")

	pub.EXPECT().Subscribe(gomock.Any(), gomock.Any()).AnyTimes()
	pub.EXPECT().Send(gomock.Any(), gomock.Any()).AnyTimes()
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).AnyTimes()
	pub.EXPECT().PublishAll(gomock.Any()).AnyTimes()

	_, err := reg.CreateRoom(context.Background(), alice, CreateParams{
		GameType: model.GameTypeSpy, Username: "Alice", MaxPlayers: 2,
	})
	require.NoError(t, err)

	gomock.InOrder(
		pub.EXPECT().Unsubscribe(alice, model.RoomID("ROOM01")),
		pub.EXPECT().CloseGroup(model.RoomID("ROOM01")),
	)
	require.NoError(t, reg.Disconnect(context.Background(), alice))
}
