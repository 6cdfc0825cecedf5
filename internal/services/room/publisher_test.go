package room

import (
	"sync"

	"github.com/samber/lo"

	"github.com/mcoot/gamerooms/internal/model"
)

type deliveryKind string

const (
	deliverySend   deliveryKind = "send"
	deliveryRoom   deliveryKind = "room"
	deliveryGlobal deliveryKind = "global"
)

type delivery struct {
	kind   deliveryKind
	target string
	event  model.Event
}

// recordingPublisher records every delivery in call order
type recordingPublisher struct {
	mu            sync.Mutex
	deliveries    []delivery
	subscriptions map[model.ConnID]map[model.RoomID]bool
	closed        []model.RoomID
}

var _ Publisher = (*recordingPublisher)(nil)

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{subscriptions: make(map[model.ConnID]map[model.RoomID]bool)}
}

func (p *recordingPublisher) Send(conn model.ConnID, ev model.Event) {
	p.record(delivery{kind: deliverySend, target: string(conn), event: ev})
}

func (p *recordingPublisher) Publish(room model.RoomID, ev model.Event) {
	p.record(delivery{kind: deliveryRoom, target: string(room), event: ev})
}

func (p *recordingPublisher) PublishAll(ev model.Event) {
	p.record(delivery{kind: deliveryGlobal, event: ev})
}

func (p *recordingPublisher) Subscribe(conn model.ConnID, room model.RoomID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.subscriptions[conn] == nil {
		p.subscriptions[conn] = make(map[model.RoomID]bool)
	}
	p.subscriptions[conn][room] = true
}

func (p *recordingPublisher) Unsubscribe(conn model.ConnID, room model.RoomID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.subscriptions[conn], room)
}

func (p *recordingPublisher) CloseGroup(room model.RoomID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = append(p.closed, room)
	for _, rooms := range p.subscriptions {
		delete(rooms, room)
	}
}

func (p *recordingPublisher) record(d delivery) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deliveries = append(p.deliveries, d)
}

// take returns and clears everything recorded so far
func (p *recordingPublisher) take() []delivery {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.deliveries
	p.deliveries = nil
	return out
}

func (p *recordingPublisher) subscribed(conn model.ConnID, room model.RoomID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.subscriptions[conn][room]
}

func eventTypes(ds []delivery) []model.EventType {
	return lo.Map(ds, func(d delivery, _ int) model.EventType { return d.event.Type })
}

func sentTo(ds []delivery, conn model.ConnID) []delivery {
	return lo.Filter(ds, func(d delivery, _ int) bool {
		return d.kind == deliverySend && d.target == string(conn)
	})
}
