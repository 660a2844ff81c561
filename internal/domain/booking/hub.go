package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	slotChannel = "slots_changed"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SlotEvent tells subscribers that open slots changed for one
// instructor on one date.
type SlotEvent struct {
	Type         string `json:"type"`
	InstructorID string `json:"instructor_id"`
	Date         string `json:"date"`
}

func (e SlotEvent) topic() string {
	return e.InstructorID + ":" + e.Date
}

// Hub fans slot-change events out to websocket subscribers. With
// Redis configured, events travel through pub/sub so every instance
// sees them; without it the hub broadcasts locally only.
type Hub struct {
	clients    map[string]map[*client]bool
	register   chan *client
	unregister chan *client
	events     chan SlotEvent
	rdb        *redis.Client
}

// NewHub creates slot-change hub. rdb may be nil.
func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		clients:    make(map[string]map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		events:     make(chan SlotEvent, 64),
		rdb:        rdb,
	}
}

// Run processes registrations and events until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.consumeRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			if h.clients[c.topic] == nil {
				h.clients[c.topic] = make(map[*client]bool)
			}
			h.clients[c.topic][c] = true
		case c := <-h.unregister:
			if subs, ok := h.clients[c.topic]; ok {
				if subs[c] {
					delete(subs, c)
					close(c.send)
					if len(subs) == 0 {
						delete(h.clients, c.topic)
					}
				}
			}
		case event := <-h.events:
			h.deliver(event)
		}
	}
}

// Publish announces a slot change. Goes through Redis when available
// so other instances deliver it too.
func (h *Hub) Publish(ctx context.Context, instructorID uuid.UUID, date time.Time) {
	event := SlotEvent{
		Type:         "slots_changed",
		InstructorID: instructorID.String(),
		Date:         date.Format("2006-01-02"),
	}

	if h.rdb != nil {
		payload, _ := json.Marshal(event)
		if err := h.rdb.Publish(ctx, slotChannel, payload).Err(); err != nil {
			log.Error().Err(err).Msg("publish slot event")
		}
		return
	}

	select {
	case h.events <- event:
	default:
		log.Warn().Msg("slot event channel full, dropping event")
	}
}

func (h *Hub) consumeRedis(ctx context.Context) {
	sub := h.rdb.Subscribe(ctx, slotChannel)
	defer sub.Close()

	for msg := range sub.Channel() {
		var event SlotEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Error().Err(err).Msg("decode slot event")
			continue
		}
		select {
		case h.events <- event:
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) deliver(event SlotEvent) {
	subs := h.clients[event.topic()]
	if len(subs) == 0 {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	for c := range subs {
		select {
		case c.send <- payload:
		default:
			delete(subs, c)
			close(c.send)
		}
	}
}

type client struct {
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	topic string
}

// ServeWS handles GET /ws/slots?instructor_id=...&date=YYYY-MM-DD
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	instructorID, err := uuid.Parse(r.URL.Query().Get("instructor_id"))
	if err != nil {
		http.Error(w, "invalid instructor_id", http.StatusBadRequest)
		return
	}
	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade")
		return
	}

	c := &client{
		hub:   h,
		conn:  conn,
		send:  make(chan []byte, 16),
		topic: instructorID.String() + ":" + date.Format("2006-01-02"),
	}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
