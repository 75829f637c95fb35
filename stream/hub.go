package stream

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ob6160/Erosion/erosion"
)

// Frame is what viewers receive after a step.
type Frame struct {
	Type    string `json:"type"`
	Running bool   `json:"running"`
	erosion.Snapshot
}

// Hub fans snapshots out to every connected viewer and collects their
// commands. Commands are only queued here; the owner of the eroder drains
// Commands and applies them on its own goroutine.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *log.Logger

	// A viewer that cannot take a frame within WriteTimeout is dropped.
	WriteTimeout time.Duration

	clientsMutex sync.RWMutex
	clients      map[*websocket.Conn]*sync.Mutex
	latest       *Frame

	commands chan Command
}

func NewHub(queue int, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger:       logger,
		WriteTimeout: 5 * time.Second,
		clients:      make(map[*websocket.Conn]*sync.Mutex),
		commands:     make(chan Command, queue),
	}
}

func (h *Hub) Commands() <-chan Command {
	return h.commands
}

func (h *Hub) Clients() int {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Println("stream: upgrade error:", err)
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	h.clientsMutex.Lock()
	h.clients[conn] = connMutex
	latest := h.latest
	h.clientsMutex.Unlock()
	defer func() {
		h.clientsMutex.Lock()
		delete(h.clients, conn)
		h.clientsMutex.Unlock()
	}()

	// Late joiners get the last frame straight away.
	if latest != nil {
		connMutex.Lock()
		err = h.write(conn, latest)
		connMutex.Unlock()
		if err != nil {
			h.logger.Println("stream: write error:", err)
			return
		}
	}

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Println("stream: read error:", err)
			}
			return
		}
		select {
		case h.commands <- cmd:
		default:
			h.logger.Printf("stream: command queue full, dropping %q", cmd.Type)
		}
	}
}

// Broadcast sends the snapshot to every viewer and drops the ones that fail.
func (h *Hub) Broadcast(snapshot erosion.Snapshot, running bool) {
	var frame = &Frame{Type: "snapshot", Running: running, Snapshot: snapshot}

	h.clientsMutex.Lock()
	h.latest = frame
	h.clientsMutex.Unlock()

	h.clientsMutex.RLock()
	var failed []*websocket.Conn
	for client, mutex := range h.clients {
		mutex.Lock()
		err := h.write(client, frame)
		mutex.Unlock()
		if err != nil {
			h.logger.Println("stream: write error:", err)
			client.Close()
			failed = append(failed, client)
		}
	}
	h.clientsMutex.RUnlock()

	if len(failed) > 0 {
		h.clientsMutex.Lock()
		for _, client := range failed {
			delete(h.clients, client)
		}
		h.clientsMutex.Unlock()
	}
}

func (h *Hub) write(conn *websocket.Conn, v any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(h.WriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()
	for client, mutex := range h.clients {
		mutex.Lock()
		client.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(h.WriteTimeout))
		mutex.Unlock()
		client.Close()
		delete(h.clients, client)
	}
}
