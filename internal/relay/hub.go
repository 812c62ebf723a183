// Package relay propagates row mutations to connected viewers (voter
// and projection screens) so they reflect activation and tally changes
// without polling.
package relay

import (
	"sync"

	"go.uber.org/zap"
)

// Tables whose mutations are published on the hub.
const (
	TablaGrupos     = "grupos_votacion"
	TablaCodigos    = "codigos_acceso"
	TablaVotaciones = "votaciones"
	TablaResultados = "resultados_votacion"
)

const (
	AccionInsert = "INSERT"
	AccionUpdate = "UPDATE"
	AccionDelete = "DELETE"
)

// Event describes one mutation. Subscribers are expected to re-fetch
// whatever state they care about; Payload is a hint, not a diff.
type Event struct {
	Tabla   string      `json:"tabla"`
	Accion  string      `json:"accion"`
	Payload interface{} `json:"payload,omitempty"`
}

// Subscriber receives events on C. Slow subscribers are dropped rather
// than allowed to block publishers.
type Subscriber struct {
	C      chan Event
	tablas map[string]struct{}
}

func (s *Subscriber) wants(tabla string) bool {
	if len(s.tablas) == 0 {
		return true
	}
	_, ok := s.tablas[tabla]
	return ok
}

type Hub struct {
	mu   sync.RWMutex
	subs map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[*Subscriber]struct{}),
	}
}

// Subscribe registers a subscriber for the given tables. With no tables
// given, the subscriber receives every event.
func (h *Hub) Subscribe(tablas ...string) *Subscriber {
	sub := &Subscriber{
		C:      make(chan Event, 16),
		tablas: make(map[string]struct{}, len(tablas)),
	}
	for _, t := range tablas {
		sub.tablas[t] = struct{}{}
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.C)
	}
	h.mu.Unlock()
}

// Publish fans the event out to every interested subscriber. A
// subscriber whose buffer is full misses the event; the next one it
// does receive triggers a full re-fetch anyway.
func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		if !sub.wants(e.Tabla) {
			continue
		}
		select {
		case sub.C <- e:
		default:
			zap.L().Warn("relay subscriber buffer full, event dropped",
				zap.String("tabla", e.Tabla), zap.String("accion", e.Accion))
		}
	}
}
