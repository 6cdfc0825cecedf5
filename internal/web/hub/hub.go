// Package hub fans encoded events out to connected clients. It tracks every
// live connection plus named broadcast groups (one per room) and a global
// group for lobby-wide events.
//
// Delivery is synchronous with the caller: an event is encoded once and then
// offered to each recipient's buffered queue without blocking. Messages
// published by one goroutine reach every recipient in publish order.
package hub

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/gamerooms/internal/model"
)

// DefaultBufferSize is the per-client queue length
const DefaultBufferSize = 256

// Message is one encoded outbound event
type Message struct {
	Event string
	// Data is the JSON payload
	Data json.RawMessage
	// Frame is the full {"event","data"} envelope
	Frame []byte
}

// Encode encodes an event for delivery
func Encode(ev model.Event) (Message, error) {
	data, err := json.Marshal(ev.Payload)
	if err != nil {
		return Message{}, fmt.Errorf("encoding %s payload: %w", ev.Type, err)
	}
	frame, err := json.Marshal(model.Envelope{Event: string(ev.Type), Data: data})
	if err != nil {
		return Message{}, fmt.Errorf("encoding %s envelope: %w", ev.Type, err)
	}
	return Message{Event: string(ev.Type), Data: data, Frame: frame}, nil
}

// Client is one registered connection's outbound queue
type Client struct {
	id          model.ConnID
	send        chan Message
	connectedAt time.Time
	groups      map[model.RoomID]bool
	global      bool
	// watcher clients are closed along with the group they watch
	watcher bool
	closed  bool
}

// ID returns the connection id
func (c *Client) ID() model.ConnID {
	return c.id
}

// Messages returns the outbound queue. It is closed when the client is
// disconnected or, for watchers, when the watched group closes.
func (c *Client) Messages() <-chan Message {
	return c.send
}

// Manager tracks clients and broadcast groups
type Manager struct {
	mu         sync.RWMutex
	clients    map[model.ConnID]*Client
	groups     map[model.RoomID]map[model.ConnID]*Client
	bufferSize int
	logger     *slog.Logger
}

// NewManager creates a Manager. A non-positive bufferSize uses DefaultBufferSize.
func NewManager(bufferSize int, logger *slog.Logger) *Manager {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Manager{
		clients:    make(map[model.ConnID]*Client),
		groups:     make(map[model.RoomID]map[model.ConnID]*Client),
		bufferSize: bufferSize,
		logger:     logger.With(slog.String("component", "hub")),
	}
}

// Connect registers a client that receives direct sends and global events
func (m *Manager) Connect(id model.ConnID) *Client {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.register(id)
	c.global = true
	m.logger.Info("client connected",
		slog.String("conn_id", string(id)),
		slog.Int("total_clients", len(m.clients)))
	return c
}

// Watch registers a client that only receives one group's broadcasts and
// is closed with the group
func (m *Manager) Watch(id model.ConnID, group model.RoomID) *Client {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.register(id)
	c.watcher = true
	m.join(c, group)
	m.logger.Info("watcher connected",
		slog.String("conn_id", string(id)),
		slog.String("room", string(group)))
	return c
}

func (m *Manager) register(id model.ConnID) *Client {
	if old, ok := m.clients[id]; ok {
		m.remove(old)
	}
	c := &Client{
		id:          id,
		send:        make(chan Message, m.bufferSize),
		connectedAt: time.Now(),
		groups:      make(map[model.RoomID]bool),
	}
	m.clients[id] = c
	return c
}

// Disconnect removes a client from every group and closes its queue
func (m *Manager) Disconnect(id model.ConnID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.clients[id]
	if !ok {
		return
	}
	m.remove(c)
	m.logger.Info("client disconnected",
		slog.String("conn_id", string(id)),
		slog.Duration("connection_duration", time.Since(c.connectedAt)),
		slog.Int("total_clients", len(m.clients)))
}

func (m *Manager) remove(c *Client) {
	for g := range c.groups {
		m.leave(c, g)
	}
	delete(m.clients, c.id)
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Subscribe adds a connected client to a group, creating the group on demand
func (m *Manager) Subscribe(id model.ConnID, group model.RoomID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.clients[id]; ok {
		m.join(c, group)
	}
}

// Unsubscribe removes a client from a group
func (m *Manager) Unsubscribe(id model.ConnID, group model.RoomID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.clients[id]; ok {
		m.leave(c, group)
	}
}

func (m *Manager) join(c *Client, group model.RoomID) {
	members, ok := m.groups[group]
	if !ok {
		members = make(map[model.ConnID]*Client)
		m.groups[group] = members
	}
	members[c.id] = c
	c.groups[group] = true
}

func (m *Manager) leave(c *Client, group model.RoomID) {
	delete(c.groups, group)
	members, ok := m.groups[group]
	if !ok {
		return
	}
	delete(members, c.id)
	if len(members) == 0 {
		delete(m.groups, group)
	}
}

// CloseGroup drops a group. Members stay connected, except watchers which
// are disconnected.
func (m *Manager) CloseGroup(group model.RoomID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	members, ok := m.groups[group]
	if !ok {
		return
	}
	watchers := 0
	for _, c := range members {
		delete(c.groups, group)
		if c.watcher {
			m.remove(c)
			watchers++
		}
	}
	delete(m.groups, group)
	m.logger.Info("group closed",
		slog.String("room", string(group)),
		slog.Int("disconnected_watchers", watchers))
}

// Send delivers an event to one client
func (m *Manager) Send(id model.ConnID, ev model.Event) {
	msg, ok := m.encode(ev)
	if !ok {
		return
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if c, ok := m.clients[id]; ok {
		m.offer(c, msg)
	}
}

// Publish delivers an event to every member of a group
func (m *Manager) Publish(group model.RoomID, ev model.Event) {
	msg, ok := m.encode(ev)
	if !ok {
		return
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	dropped := 0
	for _, c := range m.groups[group] {
		if !m.offer(c, msg) {
			dropped++
		}
	}
	if dropped > 0 {
		m.logger.Warn("broadcast partial failure",
			slog.String("room", string(group)),
			slog.String("event", msg.Event),
			slog.Int("dropped", dropped))
	}
}

// PublishAll delivers an event to every globally connected client
func (m *Manager) PublishAll(ev model.Event) {
	msg, ok := m.encode(ev)
	if !ok {
		return
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	dropped := 0
	for _, c := range m.clients {
		if c.global && !m.offer(c, msg) {
			dropped++
		}
	}
	if dropped > 0 {
		m.logger.Warn("global broadcast partial failure",
			slog.String("event", msg.Event),
			slog.Int("dropped", dropped))
	}
}

func (m *Manager) encode(ev model.Event) (Message, bool) {
	msg, err := Encode(ev)
	if err != nil {
		m.logger.Error("failed to encode event", slog.Any("error", err))
		return Message{}, false
	}
	return msg, true
}

// offer never blocks. A full queue drops the message.
func (m *Manager) offer(c *Client, msg Message) bool {
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		m.logger.Warn("message dropped - client buffer full",
			slog.String("conn_id", string(c.id)),
			slog.String("event", msg.Event))
		return false
	}
}

// ClientCount returns the number of registered clients
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// GroupSize returns the number of members of a group
func (m *Manager) GroupSize(group model.RoomID) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.groups[group])
}
