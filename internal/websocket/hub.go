package alertws

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	websocket "github.com/gofiber/contrib/websocket"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

// Hub fans freshly computed priority alerts out to connected coaches. One
// coach may hold several connections (phone and laptop); each gets the full
// alert payload.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan *alertEnvelope
}

type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	coachID string
	send    chan []byte
}

type alertFetcher interface {
	GetAlerts(ctx context.Context, coachID int64) ([]models.PriorityAlert, error)
}

type alertEnvelope struct {
	Type    string                 `json:"type"`
	CoachID string                 `json:"-"`
	Alerts  []models.PriorityAlert `json:"alerts"`
	SentAt  string                 `json:"sent_at"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *alertEnvelope, 64),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, coachID string) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		coachID: coachID,
		send:    make(chan []byte, 32),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			set, ok := h.clients[client.coachID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.coachID] = set
			}
			set[client] = struct{}{}
		case client := <-h.unregister:
			set, ok := h.clients[client.coachID]
			if !ok {
				continue
			}
			if _, exists := set[client]; exists {
				delete(set, client)
				close(client.send)
			}
			if len(set) == 0 {
				delete(h.clients, client.coachID)
			}
		case envelope := <-h.broadcast:
			h.deliver(envelope)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// PublishAlerts queues an alert push for a coach. Safe to call from any
// goroutine; the push is dropped when the hub's queue is full rather than
// blocking the caller.
func (h *Hub) PublishAlerts(coachID int64, alerts []models.PriorityAlert) {
	envelope := &alertEnvelope{
		Type:    "alerts",
		CoachID: strconv.FormatInt(coachID, 10),
		Alerts:  alerts,
		SentAt:  time.Now().UTC().Format(time.RFC3339),
	}
	select {
	case h.broadcast <- envelope:
	default:
		log.Printf("alert hub queue full, dropping push for coach %s", envelope.CoachID)
	}
}

func (h *Hub) deliver(envelope *alertEnvelope) {
	encoded, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("alert hub encode: %v", err)
		return
	}
	h.sendToCoach(envelope.CoachID, encoded)
}

func (h *Hub) sendToCoach(coachID string, payload []byte) {
	set, ok := h.clients[coachID]
	if !ok {
		return
	}

	for client := range set {
		select {
		case client.send <- payload:
		default:
			delete(set, client)
			close(client.send)
		}
	}
	if len(set) == 0 {
		delete(h.clients, coachID)
	}
}

// ReadPump serves one coach connection. The only inbound message type is
// "refresh", which recomputes the alert list on demand; anything else gets
// an error frame back.
func (c *Client) ReadPump(service alertFetcher) {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	coachID, err := strconv.ParseInt(c.coachID, 10, 64)
	if err != nil {
		writeError(c, "invalid coach")
		return
	}

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var incoming struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(payload, &incoming); err != nil {
			writeError(c, "invalid message payload")
			continue
		}
		if incoming.Type != "refresh" {
			writeError(c, "unsupported message type")
			continue
		}

		alerts, err := service.GetAlerts(context.Background(), coachID)
		if err != nil {
			writeError(c, "failed to compute alerts")
			continue
		}

		c.hub.broadcast <- &alertEnvelope{
			Type:    "alerts",
			CoachID: c.coachID,
			Alerts:  alerts,
			SentAt:  time.Now().UTC().Format(time.RFC3339),
		}
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

func writeError(client *Client, message string) {
	payload, err := json.Marshal(struct {
		Type   string `json:"type"`
		Error  string `json:"error"`
		SentAt string `json:"sent_at"`
	}{
		Type:   "error",
		Error:  message,
		SentAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	select {
	case client.send <- payload:
	default:
		client.hub.Unregister(client)
	}
}
