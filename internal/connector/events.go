package connector

import "sync"

// EventType names one of the closed set of connector events.
type EventType string

const (
	// EventConnect fires once a connector reaches the Connected state.
	EventConnect EventType = "connect"
	// EventDisconnect fires once a connector finished local teardown.
	EventDisconnect EventType = "disconnect"
	// EventChange fires on account or chain changes. The custodial wallet is
	// server-mediated and never changes account or chain on its own, so this
	// only ever fires from explicit calls within this package.
	EventChange EventType = "change"
)

// ConnectPayload is emitted with EventConnect.
type ConnectPayload struct {
	Accounts []string
	ChainID  int64
}

// ChangePayload is emitted with EventChange.
type ChangePayload struct {
	Accounts []string
	ChainID  int64
}

// Hub is a typed event bus over the closed connector event set. Listener
// registration returns an id usable with Off. Emission is serialized, two
// transitions of the same connector never interleave their events.
type Hub struct {
	mu         sync.Mutex
	nextID     int
	connect    map[int]func(ConnectPayload)
	disconnect map[int]func()
	change     map[int]func(ChangePayload)
}

// NewHub creates an empty event hub.
func NewHub() *Hub {
	return &Hub{
		connect:    make(map[int]func(ConnectPayload)),
		disconnect: make(map[int]func()),
		change:     make(map[int]func(ChangePayload)),
	}
}

// OnConnect registers a listener for EventConnect.
func (h *Hub) OnConnect(fn func(ConnectPayload)) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	h.connect[h.nextID] = fn

	return h.nextID
}

// OnDisconnect registers a listener for EventDisconnect.
func (h *Hub) OnDisconnect(fn func()) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	h.disconnect[h.nextID] = fn

	return h.nextID
}

// OnChange registers a listener for EventChange.
func (h *Hub) OnChange(fn func(ChangePayload)) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	h.change[h.nextID] = fn

	return h.nextID
}

// Off removes the listener with the given id from the given event.
func (h *Hub) Off(event EventType, id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch event {
	case EventConnect:
		delete(h.connect, id)
	case EventDisconnect:
		delete(h.disconnect, id)
	case EventChange:
		delete(h.change, id)
	}
}

// EmitConnect notifies all EventConnect listeners.
func (h *Hub) EmitConnect(payload ConnectPayload) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, fn := range h.connect {
		fn(payload)
	}
}

// EmitDisconnect notifies all EventDisconnect listeners.
func (h *Hub) EmitDisconnect() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, fn := range h.disconnect {
		fn()
	}
}

// EmitChange notifies all EventChange listeners.
func (h *Hub) EmitChange(payload ChangePayload) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, fn := range h.change {
		fn(payload)
	}
}
