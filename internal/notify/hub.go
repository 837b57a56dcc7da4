package notify

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"vrukshavalli/internal/domain"
)

// Scopes a client can watch. Admins see every order; customers see their own.
const ScopeAdmin = "admin"

func UserScope(email string) string { return "user:" + strings.ToLower(email) }

// Event is a row change on the order collection.
type Event struct {
	Type  string // "insert" | "update"
	Order domain.OrderSummary
}

// Loader fetches the current order list for a scope, used to prime a feed
// the first time a client subscribes to it.
type Loader func(scope string) []domain.OrderSummary

// Client is one websocket subscriber. Send is buffered; a client that
// cannot keep up is dropped rather than blocking the hub.
type Client struct {
	Send  chan []byte
	Scope string
}

// payload is the wire format pushed to clients. A "snapshot" carries the
// current feed on connect; "insert"/"update" carry one order and a
// transient notice for the UI toast.
type payload struct {
	Type   string                `json:"type"`
	Orders []domain.OrderSummary `json:"orders,omitempty"`
	Order  *domain.OrderSummary  `json:"order,omitempty"`
	Notice string                `json:"notice,omitempty"`
}

// Hub fans order events out to scoped subscribers. All feed mutations are
// folded through the single Run goroutine, so the last applied event wins
// deterministically. There is no replay: events missed while disconnected
// are covered by the snapshot sent on the next connect.
type Hub struct {
	load       Loader
	scopes     map[string]map[*Client]bool
	feeds      map[string][]domain.OrderSummary
	primed     map[string]bool
	register   chan *Client
	unregister chan *Client
	events     chan Event
	quit       chan struct{}
}

const feedLimit = 100

func NewHub(load Loader) *Hub {
	if load == nil {
		load = func(string) []domain.OrderSummary { return nil }
	}
	return &Hub{
		load:       load,
		scopes:     make(map[string]map[*Client]bool),
		feeds:      make(map[string][]domain.OrderSummary),
		primed:     make(map[string]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan Event, 64),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Subscribe(c *Client)   { h.register <- c }
func (h *Hub) Unsubscribe(c *Client) { h.unregister <- c }

// Publish enqueues an event; it never blocks order submission.
func (h *Hub) Publish(evt Event) {
	select {
	case h.events <- evt:
	default:
		log.Printf("[notify] dropping %s event for %s: hub backlog full", evt.Type, evt.Order.ID)
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			if h.scopes[c.Scope] == nil {
				h.scopes[c.Scope] = make(map[*Client]bool)
			}
			h.scopes[c.Scope][c] = true
			if !h.primed[c.Scope] {
				h.feeds[c.Scope] = h.load(c.Scope)
				h.primed[c.Scope] = true
			}
			// Reconnect reconciliation: full snapshot before live events.
			if data, err := json.Marshal(payload{Type: "snapshot", Orders: h.feeds[c.Scope]}); err == nil {
				select {
				case c.Send <- data:
				default:
				}
			}

		case c := <-h.unregister:
			if conns := h.scopes[c.Scope]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}

		case evt := <-h.events:
			h.apply(evt)

		case <-h.quit:
			return
		}
	}
}

func (h *Hub) Stop() { close(h.quit) }

// apply merges the event into every scope it belongs to and broadcasts it.
func (h *Hub) apply(evt Event) {
	scopes := []string{ScopeAdmin}
	if evt.Order.CustomerEmail != "" {
		scopes = append(scopes, UserScope(evt.Order.CustomerEmail))
	}
	for _, scope := range scopes {
		h.merge(scope, evt)
		h.broadcast(scope, evt)
	}
}

// merge folds the changed record into the scope's feed: inserts go to the
// head, updates replace by id.
func (h *Hub) merge(scope string, evt Event) {
	feed := h.feeds[scope]
	switch evt.Type {
	case "insert":
		feed = append([]domain.OrderSummary{evt.Order}, feed...)
		if len(feed) > feedLimit {
			feed = feed[:feedLimit]
		}
	case "update":
		for i := range feed {
			if feed[i].ID == evt.Order.ID {
				feed[i] = evt.Order
				break
			}
		}
	}
	h.feeds[scope] = feed
}

func (h *Hub) broadcast(scope string, evt Event) {
	order := evt.Order
	data, err := json.Marshal(payload{
		Type:   evt.Type,
		Order:  &order,
		Notice: noticeFor(evt),
	})
	if err != nil {
		return
	}
	for c := range h.scopes[scope] {
		select {
		case c.Send <- data:
		default:
			close(c.Send)
			delete(h.scopes[scope], c)
		}
	}
}

func noticeFor(evt Event) string {
	if evt.Type == "insert" {
		return fmt.Sprintf("New order %s from %s", evt.Order.ID, evt.Order.CustomerName)
	}
	return fmt.Sprintf("Order %s is now %s", evt.Order.ID, evt.Order.Status)
}
