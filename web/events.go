package web

import (
	"sync"
	"time"

	"github.com/neildavis/irblaster/irremote"
	"github.com/neildavis/irblaster/irremote/irprotocol"
)

// FrameEvent describes a frame that has been sent.
type FrameEvent struct {
	Time      time.Time     `json:"time"`
	Protocol  irprotocol.ID `json:"protocol"`
	Frequency uint32        `json:"frequency"`
	Index     int           `json:"index"`
	Truncated bool          `json:"truncated"`
	// Edges in microseconds, negative for spaces
	Edges []int `json:"edges"`
}

func NewFrameEvent(f irremote.Frame) FrameEvent {
	edges := make([]int, len(f.Edges))
	for i, e := range f.Edges {
		us := int(e.Duration() / time.Microsecond)
		if !e.IsMark() {
			us = -us
		}
		edges[i] = us
	}
	return FrameEvent{
		Time:      time.Now(),
		Protocol:  f.Protocol,
		Frequency: f.Frequency,
		Index:     f.Index,
		Truncated: f.Truncated,
		Edges:     edges,
	}
}

// Hub fans frame events out to subscribers. Slow subscribers miss events.
type Hub struct {
	mu   sync.Mutex
	subs map[chan FrameEvent]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan FrameEvent]struct{})}
}

// Subscribe returns a channel of events and the func ending the subscription.
func (h *Hub) Subscribe() (<-chan FrameEvent, func()) {
	ch := make(chan FrameEvent, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
}

// Publish sends f to every subscriber without blocking. It has the
// signature of irremote.Config.OnFrame.
func (h *Hub) Publish(f irremote.Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.subs) == 0 {
		return
	}
	ev := NewFrameEvent(f)
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
