package netsync

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"ringseq/debug"
	"ringseq/sequencer"
)

// Per-client outbound buffer. A client that falls this far behind starts
// losing messages; the protocol is last-write-wins with no retry.
const sendBuffer = 32

// Hub replicates session state across connected clients. Every recognized
// inbound message is applied to the local engine and relayed to the other
// participants; locally-applied commands fan out to everyone.
type Hub struct {
	manager  *sequencer.Manager
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*client
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a hub and registers itself as the manager's broadcast hook.
func NewHub(m *sequencer.Manager) *Hub {
	h := &Hub{
		manager: m,
		upgrader: websocket.Upgrader{
			// Browser sessions connect from their own origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[string]*client),
	}
	m.SetBroadcast(h.BroadcastCommand)
	return h
}

// ServeWS upgrades the connection, sends the full session snapshot as the
// new participant's baseline, then pumps messages until the client leaves.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		debug.Log("sync", "upgrade failed: %v", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	data, err := json.Marshal(Message{Type: TypeInitState, State: h.manager.Snapshot()})
	if err != nil {
		debug.Log("sync", "snapshot marshal: %v", err)
		conn.Close()
		return
	}
	c.send <- data // fresh buffered channel, cannot block

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	debug.Log("sync", "client %s connected", c.id)

	go c.writePump()
	h.readPump(c)
}

func (h *Hub) readPump(c *client) {
	defer h.remove(c)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			debug.Log("sync", "client %s gone: %v", c.id, err)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			// Malformed message: log, mutate nothing, keep going.
			debug.Log("sync", "malformed message from %s: %v", c.id, err)
			continue
		}

		cmd, ok := ToCommand(msg)
		if !ok {
			debug.Log("sync", "unknown message type %q from %s", msg.Type, c.id)
			continue
		}

		h.manager.ApplyRemote(cmd)
		h.relay(data, c.id)
	}
}

func (c *client) writePump() {
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
	h.mu.Unlock()
	c.conn.Close()
	debug.Log("sync", "client %s removed", c.id)
}

// relay fans a raw message out to every client except the originator.
// Fire-and-forget: a full buffer drops the message.
func (h *Hub) relay(data []byte, exceptID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		if id == exceptID {
			continue
		}
		select {
		case c.send <- data:
		default:
			debug.LogEvery(100, "sync", "client %s lagging, dropped message", id)
		}
	}
}

// BroadcastCommand serializes a locally-applied command and sends it to
// every connected client.
func (h *Hub) BroadcastCommand(cmd sequencer.Command) {
	msg, ok := FromCommand(cmd)
	if !ok {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		debug.Log("sync", "broadcast marshal: %v", err)
		return
	}
	h.relay(data, "")
}

// ClientCount reports how many sessions are connected.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
