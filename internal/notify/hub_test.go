package notify

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"vrukshavalli/internal/domain"
)

func recv(t *testing.T, c *Client) payload {
	t.Helper()
	select {
	case data := <-c.Send:
		var p payload
		if err := json.Unmarshal(data, &p); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
		return payload{}
	}
}

func order(id, email string, total int64, status domain.OrderStatus) domain.OrderSummary {
	return domain.OrderSummary{
		ID: id, CustomerName: "Tester", CustomerEmail: email,
		Total: total, Status: status, CreatedAt: "2026-01-02T15:04:05Z",
	}
}

func TestHubSnapshotOnConnect(t *testing.T) {
	hub := NewHub(func(scope string) []domain.OrderSummary {
		if scope == ScopeAdmin {
			return []domain.OrderSummary{order("ORD-1", "a@b.c", 500, domain.StatusPending)}
		}
		return nil
	})
	go hub.Run()
	defer hub.Stop()

	c := &Client{Send: make(chan []byte, 8), Scope: ScopeAdmin}
	hub.Subscribe(c)

	p := recv(t, c)
	if p.Type != "snapshot" || len(p.Orders) != 1 || p.Orders[0].ID != "ORD-1" {
		t.Fatalf("bad snapshot: %+v", p)
	}
}

func TestHubInsertAndUpdate(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	c := &Client{Send: make(chan []byte, 8), Scope: ScopeAdmin}
	hub.Subscribe(c)
	recv(t, c) // empty snapshot

	hub.Publish(Event{Type: "insert", Order: order("ORD-2", "a@b.c", 700, domain.StatusPending)})
	p := recv(t, c)
	if p.Type != "insert" || p.Order == nil || p.Order.ID != "ORD-2" {
		t.Fatalf("bad insert payload: %+v", p)
	}
	if !strings.Contains(p.Notice, "New order ORD-2") {
		t.Fatalf("bad notice: %q", p.Notice)
	}

	hub.Publish(Event{Type: "update", Order: order("ORD-2", "a@b.c", 700, domain.StatusShipped)})
	p = recv(t, c)
	if p.Type != "update" || p.Order.Status != domain.StatusShipped {
		t.Fatalf("bad update payload: %+v", p)
	}
	if !strings.Contains(p.Notice, "is now shipped") {
		t.Fatalf("bad notice: %q", p.Notice)
	}

	// A late subscriber sees the folded feed: the insert at the head with
	// the updated status applied.
	late := &Client{Send: make(chan []byte, 8), Scope: ScopeAdmin}
	hub.Subscribe(late)
	snap := recv(t, late)
	if len(snap.Orders) != 1 || snap.Orders[0].Status != domain.StatusShipped {
		t.Fatalf("bad late snapshot: %+v", snap)
	}
}

func TestHubScopeIsolation(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	mine := &Client{Send: make(chan []byte, 8), Scope: UserScope("Priya@Example.com")}
	other := &Client{Send: make(chan []byte, 8), Scope: UserScope("raj@example.com")}
	admin := &Client{Send: make(chan []byte, 8), Scope: ScopeAdmin}
	for _, c := range []*Client{mine, other, admin} {
		hub.Subscribe(c)
		recv(t, c)
	}

	hub.Publish(Event{Type: "insert", Order: order("ORD-3", "priya@example.com", 900, domain.StatusPending)})

	if p := recv(t, mine); p.Order == nil || p.Order.ID != "ORD-3" {
		t.Fatalf("owner missed own order: %+v", p)
	}
	if p := recv(t, admin); p.Order == nil || p.Order.ID != "ORD-3" {
		t.Fatalf("admin missed order: %+v", p)
	}
	select {
	case data := <-other.Send:
		t.Fatalf("stranger received %s", data)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubInsertGoesToFeedHead(t *testing.T) {
	hub := NewHub(func(string) []domain.OrderSummary {
		return []domain.OrderSummary{order("ORD-OLD", "", 100, domain.StatusDelivered)}
	})
	go hub.Run()
	defer hub.Stop()

	c := &Client{Send: make(chan []byte, 8), Scope: ScopeAdmin}
	hub.Subscribe(c)
	recv(t, c)

	hub.Publish(Event{Type: "insert", Order: order("ORD-NEW", "", 200, domain.StatusPending)})
	recv(t, c)

	late := &Client{Send: make(chan []byte, 8), Scope: ScopeAdmin}
	hub.Subscribe(late)
	snap := recv(t, late)
	if len(snap.Orders) != 2 || snap.Orders[0].ID != "ORD-NEW" || snap.Orders[1].ID != "ORD-OLD" {
		t.Fatalf("bad feed order: %+v", snap.Orders)
	}
}

func TestHubUnsubscribeClosesSend(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	c := &Client{Send: make(chan []byte, 8), Scope: ScopeAdmin}
	hub.Subscribe(c)
	recv(t, c)
	hub.Unsubscribe(c)

	select {
	case _, open := <-c.Send:
		if open {
			t.Fatal("expected closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("send channel never closed")
	}
}
