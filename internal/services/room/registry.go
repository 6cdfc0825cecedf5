// Package room owns every live room, membership and player record. All
// mutations run under one writer lock and publish their events before the
// lock is released, so each room's events leave in mutation order.
package room

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/samber/lo"

	"github.com/mcoot/gamerooms/internal/dependencies/clock"
	"github.com/mcoot/gamerooms/internal/dependencies/random"
	"github.com/mcoot/gamerooms/internal/model"
	"github.com/mcoot/gamerooms/internal/moderation"
	"github.com/mcoot/gamerooms/internal/rules"
	"github.com/mcoot/gamerooms/internal/storage"
)

const (
	// IDLength is the length of generated room codes
	IDLength = 6
	// IDAlphabet avoids easily confused characters
	IDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

//go:generate go tool mockgen -destination=mocks/publisher.go -package=mocks github.com/mcoot/gamerooms/internal/services/room Publisher

// Publisher delivers events to connections. Implementations must not block.
type Publisher interface {
	// Send delivers to one connection
	Send(conn model.ConnID, ev model.Event)
	// Publish delivers to every member of a room
	Publish(room model.RoomID, ev model.Event)
	// PublishAll delivers to every connection
	PublishAll(ev model.Event)
	Subscribe(conn model.ConnID, room model.RoomID)
	Unsubscribe(conn model.ConnID, room model.RoomID)
	// CloseGroup releases a deleted room's broadcast group
	CloseGroup(room model.RoomID)
}

// CreateParams are the inputs of CreateRoom
type CreateParams struct {
	RoomName   string
	GameType   model.GameType
	Username   string
	MaxPlayers int
	Settings   model.RoomSettings
}

// JoinParams are the inputs of JoinRoom
type JoinParams struct {
	RoomID   model.RoomID
	Username string
}

// Registry is the single source of truth for lobby state
type Registry struct {
	mu sync.Mutex

	storage   storage.Storage
	publisher Publisher
	rules     *rules.Dispatcher
	censor    moderation.Censor
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger
}

// NewRegistry creates a Registry. censor may be nil to relay chat verbatim.
func NewRegistry(
	storage storage.Storage,
	publisher Publisher,
	dispatcher *rules.Dispatcher,
	censor moderation.Censor,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Registry {
	return &Registry{
		storage:   storage,
		publisher: publisher,
		rules:     dispatcher,
		censor:    censor,
		clock:     clock,
		random:    random,
		logger:    logger.With(slog.String("component", "registry")),
	}
}

// Connect sends the current lobby listing to a new connection
func (r *Registry) Connect(ctx context.Context, conn model.ConnID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	summaries, err := r.summaries(ctx)
	if err != nil {
		return err
	}
	r.publisher.Send(conn, model.NewEvent(model.EventRoomsList, summaries))
	return nil
}

// CreateRoom creates a room hosted by the calling connection. A connection
// that already belongs to a room leaves it first.
func (r *Registry) CreateRoom(ctx context.Context, conn model.ConnID, params CreateParams) (*model.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if params.MaxPlayers < 1 {
		return nil, r.reject(conn, "create-room", fmt.Errorf("%w: maxPlayers must be at least 1", model.ErrInvalidRequest))
	}
	state, err := r.rules.InitialState(params.GameType)
	if err != nil {
		return nil, r.reject(conn, "create-room", err)
	}

	if err := r.leave(ctx, conn); err != nil {
		return nil, r.fail(conn, "create-room", err)
	}

	id, err := r.newRoomID(ctx)
	if err != nil {
		return nil, r.fail(conn, "create-room", err)
	}

	host := model.NewPlayer(conn, params.Username)
	host.IsHost = true
	host.IsReady = true

	settings := maps.Clone(params.Settings)
	if settings == nil {
		settings = model.RoomSettings{}
	}

	room := &model.Room{
		ID:           id,
		Name:         params.RoomName,
		GameType:     params.GameType,
		Host:         params.Username,
		Players:      []*model.Player{host},
		MaxPlayers:   params.MaxPlayers,
		GameState:    state,
		Settings:     settings,
		ExternalGame: model.ExternalGameFromSettings(settings),
		CreatedAt:    r.clock.Now(),
	}

	if err := r.storage.SaveRoom(ctx, room); err != nil {
		return nil, r.fail(conn, "create-room", err)
	}
	if err := r.storage.SetMembership(ctx, conn, id); err != nil {
		return nil, r.fail(conn, "create-room", err)
	}
	r.publisher.Subscribe(conn, id)

	r.publisher.Send(conn, model.NewEvent(model.EventRoomCreated, model.RoomCreatedPayload{RoomID: id, Room: room.Clone()}))
	r.publisher.Publish(id, model.NewEvent(model.EventRoomState, room.Clone()))
	r.broadcastRoomsList(ctx)

	r.logger.Info("room created",
		slog.String("room", string(id)),
		slog.String("game_type", string(params.GameType)),
		slog.String("host", params.Username))
	return room.Clone(), nil
}

// JoinRoom adds the calling connection to a room. Re-joining a room the
// connection already belongs to only resends the room state.
func (r *Registry) JoinRoom(ctx context.Context, conn model.ConnID, params JoinParams) (*model.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, err := r.storage.GetRoom(ctx, params.RoomID)
	if err != nil {
		return nil, r.reject(conn, "join-room", err)
	}
	if room.IsFull() {
		return nil, r.reject(conn, "join-room", model.ErrRoomFull)
	}
	if room.GameStarted {
		return nil, r.reject(conn, "join-room", model.ErrGameAlreadyStarted)
	}
	if room.GetPlayer(conn) != nil {
		r.publisher.Send(conn, model.NewEvent(model.EventRoomState, room.Clone()))
		return room.Clone(), nil
	}

	if err := r.leave(ctx, conn); err != nil {
		return nil, r.fail(conn, "join-room", err)
	}

	player := model.NewPlayer(conn, params.Username)
	room.Players = append(room.Players, player)
	if err := r.storage.SaveRoom(ctx, room); err != nil {
		return nil, r.fail(conn, "join-room", err)
	}
	if err := r.storage.SetMembership(ctx, conn, room.ID); err != nil {
		return nil, r.fail(conn, "join-room", err)
	}
	r.publisher.Subscribe(conn, room.ID)

	snapshot := room.Clone()
	r.publisher.Publish(room.ID, model.NewEvent(model.EventPlayerJoined, model.PlayerEventPayload{
		Player: snapshot.GetPlayer(conn),
		Room:   snapshot,
	}))
	r.publisher.Publish(room.ID, model.NewEvent(model.EventRoomState, room.Clone()))
	r.broadcastRoomsList(ctx)

	r.logger.Info("player joined room",
		slog.String("room", string(room.ID)),
		slog.String("username", params.Username),
		slog.Int("players", len(room.Players)))
	return room.Clone(), nil
}

// LeaveRoom removes the calling connection from its room. It is a no-op
// for connections that are not in a room.
func (r *Registry) LeaveRoom(ctx context.Context, conn model.ConnID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.leave(ctx, conn); err != nil {
		return r.fail(conn, "leave-room", err)
	}
	return nil
}

// Disconnect is LeaveRoom for a closed connection
func (r *Registry) Disconnect(ctx context.Context, conn model.ConnID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.leave(ctx, conn); err != nil {
		r.logger.Error("failed to clean up connection",
			slog.String("conn_id", string(conn)),
			slog.Any("error", err))
		return err
	}
	return nil
}

// leave removes conn from its room. Caller must hold r.mu.
func (r *Registry) leave(ctx context.Context, conn model.ConnID) error {
	roomID, ok, err := r.storage.GetMembership(ctx, conn)
	if err != nil || !ok {
		return err
	}
	if err := r.storage.DeleteMembership(ctx, conn); err != nil {
		return err
	}
	r.publisher.Unsubscribe(conn, roomID)

	room, err := r.storage.GetRoom(ctx, roomID)
	if err != nil {
		// membership pointed at a room that no longer exists
		return nil
	}
	idx := room.PlayerIndex(conn)
	if idx < 0 {
		return nil
	}
	player := room.Players[idx]
	room.Players = append(room.Players[:idx:idx], room.Players[idx+1:]...)

	if len(room.Players) == 0 {
		if err := r.storage.DeleteRoom(ctx, roomID); err != nil {
			return err
		}
		r.publisher.CloseGroup(roomID)
		r.logger.Info("room deleted", slog.String("room", string(roomID)))
	} else {
		if player.IsHost {
			successor := room.Players[0]
			successor.IsHost = true
			room.Host = successor.Username
			r.logger.Info("host reassigned",
				slog.String("room", string(roomID)),
				slog.String("host", successor.Username))
		}
		if err := r.storage.SaveRoom(ctx, room); err != nil {
			return err
		}
		departed := *player
		r.publisher.Publish(roomID, model.NewEvent(model.EventPlayerLeft, model.PlayerEventPayload{
			Player: &departed,
			Room:   room.Clone(),
		}))
		r.publisher.Publish(roomID, model.NewEvent(model.EventRoomState, room.Clone()))
	}

	r.broadcastRoomsList(ctx)
	r.logger.Info("player left room",
		slog.String("room", string(roomID)),
		slog.String("username", player.Username))
	return nil
}

// ToggleReady flips a non-host player's ready flag. Hosts and connections
// outside a room are ignored.
func (r *Registry) ToggleReady(ctx context.Context, conn model.ConnID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, player, err := r.membership(ctx, conn)
	if err != nil {
		return r.fail(conn, "toggle-ready", err)
	}
	if player == nil || player.IsHost {
		return nil
	}

	player.IsReady = !player.IsReady
	if err := r.storage.SaveRoom(ctx, room); err != nil {
		return r.fail(conn, "toggle-ready", err)
	}

	snapshot := room.Clone()
	r.publisher.Publish(room.ID, model.NewEvent(model.EventPlayerReadyChanged, model.PlayerEventPayload{
		Player: snapshot.GetPlayer(conn),
		Room:   snapshot,
	}))
	r.publisher.Publish(room.ID, model.NewEvent(model.EventRoomState, room.Clone()))

	r.logger.Debug("player ready state changed",
		slog.String("room", string(room.ID)),
		slog.String("username", player.Username),
		slog.Bool("ready", player.IsReady))
	return nil
}

// StartGame starts the room's game. Only the host may start, and only once
// every other player is ready. Scores reset to zero. Connections outside a
// room are ignored.
func (r *Registry) StartGame(ctx context.Context, conn model.ConnID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, player, err := r.membership(ctx, conn)
	if err != nil {
		return r.fail(conn, "start-game", err)
	}
	if player == nil {
		return nil
	}
	if !player.IsHost {
		return r.reject(conn, "start-game", model.ErrNotHost)
	}
	if room.GameStarted {
		return r.reject(conn, "start-game", model.ErrGameAlreadyStarted)
	}
	if !room.AllReady() {
		return r.reject(conn, "start-game", model.ErrPlayersNotReady)
	}

	state, err := r.rules.InitialState(room.GameType)
	if err != nil {
		return r.fail(conn, "start-game", err)
	}
	room.GameStarted = true
	room.GameState = state
	for _, p := range room.Players {
		p.Score = 0
	}
	if err := r.storage.SaveRoom(ctx, room); err != nil {
		return r.fail(conn, "start-game", err)
	}

	r.publisher.Publish(room.ID, model.NewEvent(model.EventGameStarted, model.RoomPayload{Room: room.Clone()}))
	r.publisher.Publish(room.ID, model.NewEvent(model.EventRoomState, room.Clone()))
	r.broadcastRoomsList(ctx)

	r.logger.Info("game started",
		slog.String("room", string(room.ID)),
		slog.String("game_type", string(room.GameType)),
		slog.Int("players", len(room.Players)))
	return nil
}

// EndGame returns a started room to the lobby. Non-host players must ready
// up again before the next game. Connections outside a room are ignored.
func (r *Registry) EndGame(ctx context.Context, conn model.ConnID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, player, err := r.membership(ctx, conn)
	if err != nil {
		return r.fail(conn, "end-game", err)
	}
	if player == nil {
		return nil
	}
	if !player.IsHost {
		return r.reject(conn, "end-game", model.ErrNotHost)
	}
	if !room.GameStarted {
		return r.reject(conn, "end-game", model.ErrGameNotStarted)
	}

	state, err := r.rules.InitialState(room.GameType)
	if err != nil {
		return r.fail(conn, "end-game", err)
	}
	room.GameStarted = false
	room.GameState = state
	for _, p := range room.Players {
		if !p.IsHost {
			p.IsReady = false
		}
	}
	if err := r.storage.SaveRoom(ctx, room); err != nil {
		return r.fail(conn, "end-game", err)
	}

	r.publisher.Publish(room.ID, model.NewEvent(model.EventGameEnded, model.RoomPayload{Room: room.Clone()}))
	r.publisher.Publish(room.ID, model.NewEvent(model.EventRoomState, room.Clone()))
	r.broadcastRoomsList(ctx)

	r.logger.Info("game ended", slog.String("room", string(room.ID)))
	return nil
}

// DispatchGameAction hands an action to the room's ruleset. Actions from
// connections outside a room, or before the game starts, are ignored.
func (r *Registry) DispatchGameAction(ctx context.Context, conn model.ConnID, action model.GameAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, player, err := r.membership(ctx, conn)
	if err != nil {
		return r.fail(conn, "game-action", err)
	}
	if player == nil || !room.GameStarted {
		return nil
	}

	// rulesets mutate a scratch copy; a rejected action leaves the room untouched
	scratch := room.Clone()
	events, err := r.rules.HandleAction(scratch.GameType, scratch.GameState, r.play(scratch, conn), action)
	if err != nil {
		return r.reject(conn, "game-action", err)
	}
	room.GameState = scratch.GameState
	room.Players = scratch.Players
	if err := r.storage.SaveRoom(ctx, room); err != nil {
		return r.fail(conn, "game-action", err)
	}

	for _, ev := range events {
		r.publisher.Publish(room.ID, r.stamp(ev))
	}
	r.publisher.Publish(room.ID, model.NewEvent(model.EventGameStateUpdated, model.GameStateUpdatedPayload{
		Room:   room.Clone(),
		Action: action,
	}))
	r.publisher.Publish(room.ID, model.NewEvent(model.EventRoomState, room.Clone()))

	r.logger.Debug("game action processed",
		slog.String("room", string(room.ID)),
		slog.String("username", player.Username),
		slog.String("action", action.Type),
		slog.Int("announcements", len(events)))
	return nil
}

// SendChatMessage relays a chat line to the sender's room and lets the
// ruleset react to it while a game is running
func (r *Registry) SendChatMessage(ctx context.Context, conn model.ConnID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, player, err := r.membership(ctx, conn)
	if err != nil {
		return r.fail(conn, "chat-message", err)
	}
	if player == nil {
		return nil
	}

	relayed := text
	if r.censor != nil {
		relayed = r.censor.Censor(text)
	}
	r.publisher.Publish(room.ID, r.stamp(model.NewEvent(model.EventChatMessage, model.ChatMessage{
		Username: player.Username,
		Message:  relayed,
		Type:     model.ChatMessageUser,
	})))

	if !room.GameStarted {
		return nil
	}
	events := r.rules.HandleChatCommand(room.GameType, room.GameState, r.play(room, conn), text)
	if len(events) == 0 {
		return nil
	}
	if err := r.storage.SaveRoom(ctx, room); err != nil {
		return r.fail(conn, "chat-message", err)
	}
	for _, ev := range events {
		r.publisher.Publish(room.ID, r.stamp(ev))
	}
	return nil
}

// RoomsList returns the lobby listing
func (r *Registry) RoomsList(ctx context.Context) ([]model.RoomSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summaries(ctx)
}

// Room returns a copy of one room
func (r *Registry) Room(ctx context.Context, id model.RoomID) (*model.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, err := r.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	return room.Clone(), nil
}

// membership resolves conn to its room and player. Both are nil when the
// connection is not in a room.
func (r *Registry) membership(ctx context.Context, conn model.ConnID) (*model.Room, *model.Player, error) {
	roomID, ok, err := r.storage.GetMembership(ctx, conn)
	if err != nil || !ok {
		return nil, nil, err
	}
	room, err := r.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, nil, nil
	}
	return room, room.GetPlayer(conn), nil
}

func (r *Registry) play(room *model.Room, conn model.ConnID) rules.Play {
	return rules.Play{
		Player:  room.GetPlayer(conn),
		Players: room.Players,
		Now:     r.clock.Now(),
	}
}

// stamp assigns an id and timestamp to chat announcements
func (r *Registry) stamp(ev model.Event) model.Event {
	msg, ok := ev.Payload.(model.ChatMessage)
	if !ok {
		return ev
	}
	if msg.ID == "" {
		msg.ID = "msg_" + r.random.UUID()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = r.clock.Now()
	}
	ev.Payload = msg
	return ev
}

func (r *Registry) newRoomID(ctx context.Context) (model.RoomID, error) {
	for {
		id := model.RoomID(r.random.String(IDLength, IDAlphabet))
		exists, err := r.storage.RoomExists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
}

func (r *Registry) summaries(ctx context.Context) ([]model.RoomSummary, error) {
	rooms, err := r.storage.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(rooms, func(room *model.Room, _ int) model.RoomSummary {
		return room.Summary()
	}), nil
}

func (r *Registry) broadcastRoomsList(ctx context.Context) {
	summaries, err := r.summaries(ctx)
	if err != nil {
		r.logger.Error("failed to list rooms", slog.Any("error", err))
		return
	}
	r.publisher.PublishAll(model.NewEvent(model.EventRoomsList, summaries))
}

// reject reports a client error to the invoking connection only
func (r *Registry) reject(conn model.ConnID, op string, err error) error {
	r.logger.Warn("operation rejected",
		slog.String("op", op),
		slog.String("conn_id", string(conn)),
		slog.String("code", model.ErrorCode(err)),
		slog.Any("error", err))
	r.publisher.Send(conn, model.NewErrorEvent(err))
	return err
}

// fail reports an internal error without leaking its detail
func (r *Registry) fail(conn model.ConnID, op string, err error) error {
	r.logger.Error("operation failed",
		slog.String("op", op),
		slog.String("conn_id", string(conn)),
		slog.Any("error", err))
	r.publisher.Send(conn, model.NewEvent(model.EventError, model.ErrorPayload{
		Message: "internal error",
		Code:    model.CodeInternalError,
	}))
	return err
}
