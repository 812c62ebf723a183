package relay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferdyn/votacion/internal/relay"
)

func TestHub_PublishToSubscriber(t *testing.T) {
	hub := relay.NewHub()

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	hub.Publish(relay.Event{Tabla: relay.TablaGrupos, Accion: relay.AccionInsert})

	event := <-sub.C
	assert.Equal(t, relay.TablaGrupos, event.Tabla)
	assert.Equal(t, relay.AccionInsert, event.Accion)
}

func TestHub_TableFilter(t *testing.T) {
	hub := relay.NewHub()

	sub := hub.Subscribe(relay.TablaResultados)
	defer hub.Unsubscribe(sub)

	hub.Publish(relay.Event{Tabla: relay.TablaGrupos, Accion: relay.AccionUpdate})
	hub.Publish(relay.Event{Tabla: relay.TablaCodigos, Accion: relay.AccionUpdate})
	hub.Publish(relay.Event{Tabla: relay.TablaResultados, Accion: relay.AccionUpdate})

	event := <-sub.C
	assert.Equal(t, relay.TablaResultados, event.Tabla)

	// Nothing else should have been delivered.
	select {
	case extra := <-sub.C:
		t.Fatalf("unexpected event for tabla %v", extra.Tabla)
	default:
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	hub := relay.NewHub()

	sub := hub.Subscribe()
	hub.Unsubscribe(sub)

	_, open := <-sub.C
	assert.False(t, open)

	// A second unsubscribe must be a no-op, not a double close.
	hub.Unsubscribe(sub)
}

func TestHub_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := relay.NewHub()

	sub := hub.Subscribe(relay.TablaResultados)
	defer hub.Unsubscribe(sub)

	// Overflow the buffer; Publish must never block even though nobody
	// is draining the channel.
	for i := 0; i < 100; i++ {
		hub.Publish(relay.Event{Tabla: relay.TablaResultados, Accion: relay.AccionUpdate})
	}

	// The buffered events are still deliverable.
	event := <-sub.C
	require.Equal(t, relay.TablaResultados, event.Tabla)
}
