package web

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/FocuswithJustin/havarot/core/havarot"
	"github.com/FocuswithJustin/havarot/internal/logging"
)

var (
	// GlobalHub is the shared WebSocket hub for broadcasting analysis updates.
	GlobalHub *Hub

	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true // Allow all origins for API usage - INSECURE
		},
	}
)

// AnalysisMessage represents an analysis update sent via WebSocket.
type AnalysisMessage struct {
	Type      string                 `json:"type"`   // "analysis", "error"
	Source    string                 `json:"source"` // corpus path or "request"
	Ref       string                 `json:"ref,omitempty"`
	Words     int                    `json:"words"`
	Syllables int                    `json:"syllables"`
	Message   string                 `json:"message,omitempty"`
	Timestamp string                 `json:"timestamp"` // ISO 8601 timestamp
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Client represents a WebSocket client connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains active WebSocket connections and broadcasts messages.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop to handle client registration and broadcasting.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logging.WebSocketEvent("client_connected", h.ClientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			logging.WebSocketEvent("client_disconnected", h.ClientCount())

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client channel full, disconnect
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends an analysis message to all connected clients.
func (h *Hub) Broadcast(msg AnalysisMessage) {
	if msg.Timestamp == "" {
		msg.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	data, err := json.Marshal(msg)
	if err != nil {
		logging.Error("failed to marshal analysis message", "error", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logging.Warn("broadcast channel full, dropping message")
	}
}

// BroadcastAnalysis sends an analysis result to all connected clients.
func BroadcastAnalysis(source, ref string, words, syllables int) {
	if GlobalHub == nil {
		return
	}

	GlobalHub.Broadcast(AnalysisMessage{
		Type:      "analysis",
		Source:    source,
		Ref:       ref,
		Words:     words,
		Syllables: syllables,
	})
}

// BroadcastError sends an error message to all connected clients.
func BroadcastError(source, message string) {
	if GlobalHub == nil {
		return
	}

	GlobalHub.Broadcast(AnalysisMessage{
		Type:    "error",
		Source:  source,
		Message: message,
	})
}

// readPump reads messages from the WebSocket connection. Clients may
// send syllabify requests as JSON frames and receive their analysis
// back on the same connection.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Error("websocket unexpected close", "error", err)
			}
			break
		}
		if len(data) > 0 {
			c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			c.handleRequest(data)
		}
	}
}

// handleRequest syllabifies a client frame and replies on this
// client's send channel only.
func (c *Client) handleRequest(data []byte) {
	var req syllabifyRequest
	if err := json.Unmarshal(data, &req); err != nil {
		c.reply(AnalysisMessage{Type: "error", Source: "ws", Message: "malformed JSON frame"})
		return
	}
	if req.Text == "" {
		c.reply(AnalysisMessage{Type: "error", Source: "ws", Message: "text must not be empty"})
		return
	}

	opts := havarot.DefaultOptions()
	if ServerConfig.Options != nil {
		o := *ServerConfig.Options
		opts = &o
	}
	if req.Schema != "" {
		opts.Schema = req.Schema
	}

	text, err := havarot.NewText(req.Text, opts)
	if err != nil {
		c.reply(AnalysisMessage{Type: "error", Source: "ws", Message: err.Error()})
		return
	}

	c.reply(AnalysisMessage{
		Type:      "analysis",
		Source:    "ws",
		Words:     len(text.Words()),
		Syllables: len(text.Syllables()),
		Data:      map[string]interface{}{"analysis": text},
	})
}

// reply queues a message for this client, dropping it when the send
// buffer is full.
func (c *Client) reply(msg AnalysisMessage) {
	if msg.Timestamp == "" {
		msg.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	data, err := json.Marshal(msg)
	if err != nil {
		logging.Error("failed to marshal analysis message", "error", err)
		return
	}
	select {
	case c.send <- data:
	default:
		logging.Warn("client send buffer full, dropping reply")
	}
}

// writePump writes messages to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Flush any additional queued messages
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleWebSocket upgrades HTTP connections to WebSocket and registers clients.
func handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if GlobalHub == nil {
		http.Error(w, "WebSocket hub not initialized", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:  GlobalHub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	// Start goroutines for reading and writing
	go client.writePump()
	go client.readPump()
}
