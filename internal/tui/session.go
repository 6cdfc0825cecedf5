package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/gamerooms/internal/model"
)

const sessionWriteWait = 10 * time.Second

// Sender delivers frames to the server
type Sender interface {
	Send(f Frame) error
}

// Session is a player WebSocket connection
type Session struct {
	conn   *websocket.Conn
	events chan model.Envelope
	done   chan struct{}
	err    error

	writeMu sync.Mutex
}

// Dial connects to the player endpoint
func Dial(ctx context.Context, url string) (*Session, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, http.Header{})
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", url, err)
	}

	s := &Session{
		conn:   conn,
		events: make(chan model.Envelope, 64),
		done:   make(chan struct{}),
	}
	go s.readLoop()
	return s, nil
}

func (s *Session) readLoop() {
	defer close(s.done)
	defer close(s.events)
	for {
		var env model.Envelope
		if err := s.conn.ReadJSON(&env); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.err = err
			}
			return
		}
		s.events <- env
	}
}

// Events yields inbound envelopes until the connection closes
func (s *Session) Events() <-chan model.Envelope {
	return s.events
}

// Err reports why the connection closed; nil for a clean close.
// Only valid once Events is drained.
func (s *Session) Err() error {
	<-s.done
	return s.err
}

// Send writes one frame
func (s *Session) Send(f Frame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(sessionWriteWait))
	return s.conn.WriteMessage(websocket.TextMessage, b)
}

// Close sends a close frame and releases the connection
func (s *Session) Close() error {
	s.writeMu.Lock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	s.writeMu.Unlock()
	return s.conn.Close()
}
