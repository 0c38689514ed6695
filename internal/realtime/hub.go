package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ProgressSnapshot is one update emitted while an escalation run is in
// flight: which tier is currently being attempted and how much search it
// has burned so far. Broadcast verbatim to every client watching that run.
type ProgressSnapshot struct {
	Tier       int    `json:"tier"`
	Attempts   int    `json:"attempts"`
	Backtracks int     `json:"backtracks"`
	ElapsedMS  int64   `json:"elapsedMs"`
	Done       bool    `json:"done"`
	Succeeded  bool    `json:"succeeded,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// Client is a single websocket connection subscribed to one generation
// run's progress stream.
type Client struct {
	RunID string
	Conn  *websocket.Conn
	Send  chan []byte
}

// Hub fans progress snapshots for in-flight generation runs out to every
// websocket client watching that run. Repurposed from the teacher's
// room-broadcast hub: the register/unregister channel pattern and the
// per-key client-set bookkeeping survive, but the collaborative-solving
// message protocol (cell updates, cursor moves, chat) is gone, since
// interactive solving is out of scope here.
type Hub struct {
	clients    map[string]map[*Client]bool // runID -> clients watching it
	register   chan *Client
	unregister chan *Client
	broadcast  chan runBroadcast
	mutex      sync.RWMutex
}

type runBroadcast struct {
	RunID string
	Data  []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan runBroadcast, 64),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			if h.clients[client.RunID] == nil {
				h.clients[client.RunID] = make(map[*Client]bool)
			}
			h.clients[client.RunID][client] = true
			h.mutex.Unlock()
			log.Printf("progress client registered: run=%s", client.RunID)

		case client := <-h.unregister:
			h.mutex.Lock()
			if clients, ok := h.clients[client.RunID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.clients, client.RunID)
					}
				}
			}
			h.mutex.Unlock()

		case b := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients[b.RunID] {
				select {
				case client.Send <- b.Data:
				default:
					// channel full, skip this client rather than block the hub
				}
			}
			h.mutex.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Watching reports how many clients are subscribed to a run, mostly
// useful for deciding whether it's worth publishing at all.
func (h *Hub) Watching(runID string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[runID])
}

// Publish broadcasts a progress snapshot to every client watching runID.
// Safe to call from the goroutine driving solver.Escalate.
func (h *Hub) Publish(runID string, snapshot ProgressSnapshot) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	select {
	case h.broadcast <- runBroadcast{RunID: runID, Data: data}:
	default:
		log.Printf("progress broadcast channel full, dropping snapshot for run=%s", runID)
	}
}

// WritePump relays queued snapshots from the client's Send channel to its
// websocket connection until the channel is closed or a write fails.
func (c *Client) WritePump() {
	defer c.Conn.Close()
	for data := range c.Send {
		c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// ReadPump drains and discards client frames, just enough to notice a
// closed connection and release it back to the hub. A progress stream is
// one-directional; this exists only to detect disconnects.
func (c *Client) ReadPump(hub *Hub) {
	defer func() {
		hub.Unregister(c)
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
