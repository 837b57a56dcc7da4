package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"vrukshavalli/internal/catalog"
	"vrukshavalli/internal/domain"
	"vrukshavalli/internal/repos"
)

var (
	ErrOutOfStock   = errors.New("plant is out of stock")
	ErrUnknownPlant = errors.New("unknown plant")
)

// Notice is a user-facing toast describing what a cart mutation did.
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CartService is the cart engine. Each session owns one cart, persisted
// in full as a JSON document on every mutation under a fixed key.
type CartService struct {
	Docs    *repos.StorageRepo
	Catalog *catalog.Store
}

func NewCartService(docs *repos.StorageRepo, cat *catalog.Store) *CartService {
	return &CartService{Docs: docs, Catalog: cat}
}

const cartKeyPrefix = "vrukshavalli_cart:"

func cartKey(sessionID string) string { return cartKeyPrefix + sessionID }

// Lines loads the cart for a session. Unparseable stored state is
// discarded for an empty cart; that is logged, never surfaced.
func (s *CartService) Lines(sessionID string) []domain.CartLine {
	raw, found, err := s.Docs.Get(cartKey(sessionID))
	if err != nil {
		log.Printf("[cart] load failed for %s: %v", sessionID, err)
		return nil
	}
	if !found {
		return nil
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		log.Printf("[cart] discarding malformed cart document for %s: %v", sessionID, err)
		return nil
	}
	return lines
}

func (s *CartService) save(sessionID string, lines []domain.CartLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.Docs.Put(cartKey(sessionID), raw)
}

// Add puts qty units of a plant in the cart, incrementing an existing
// line. Out-of-stock plants are rejected without touching the cart.
func (s *CartService) Add(sessionID, plantID string, qty int) (Notice, error) {
	if qty < 1 {
		qty = 1
	}
	p, ok := s.Catalog.Get(plantID)
	if !ok {
		return Notice{}, ErrUnknownPlant
	}
	if !p.InStock {
		return Notice{
			Title:       "Out of Stock",
			Description: fmt.Sprintf("%s is currently out of stock.", p.Name),
		}, ErrOutOfStock
	}

	lines := s.Lines(sessionID)
	for i := range lines {
		if lines[i].PlantID == plantID {
			lines[i].Qty += qty
			if err := s.save(sessionID, lines); err != nil {
				return Notice{}, err
			}
			return Notice{
				Title:       "Cart Updated",
				Description: fmt.Sprintf("Updated %s quantity to %d", p.Name, lines[i].Qty),
			}, nil
		}
	}

	lines = append(lines, domain.CartLine{PlantID: plantID, Qty: qty})
	if err := s.save(sessionID, lines); err != nil {
		return Notice{}, err
	}
	return Notice{
		Title:       "Added to Cart",
		Description: fmt.Sprintf("%s has been added to your cart.", p.Name),
	}, nil
}

// Remove drops a line. Removing an absent plant is a silent no-op.
func (s *CartService) Remove(sessionID, plantID string) (Notice, error) {
	lines := s.Lines(sessionID)
	next := lines[:0]
	var removed string
	for _, ln := range lines {
		if ln.PlantID == plantID {
			if p, ok := s.Catalog.Get(plantID); ok {
				removed = p.Name
			} else {
				removed = plantID
			}
			continue
		}
		next = append(next, ln)
	}
	if removed == "" {
		return Notice{}, nil
	}
	if err := s.save(sessionID, next); err != nil {
		return Notice{}, err
	}
	return Notice{
		Title:       "Removed from Cart",
		Description: fmt.Sprintf("%s has been removed from your cart.", removed),
	}, nil
}

// SetQuantity overwrites a line's quantity; zero or less removes the line.
func (s *CartService) SetQuantity(sessionID, plantID string, qty int) (Notice, error) {
	if qty <= 0 {
		return s.Remove(sessionID, plantID)
	}
	lines := s.Lines(sessionID)
	for i := range lines {
		if lines[i].PlantID == plantID {
			lines[i].Qty = qty
			if err := s.save(sessionID, lines); err != nil {
				return Notice{}, err
			}
			name := plantID
			if p, ok := s.Catalog.Get(plantID); ok {
				name = p.Name
			}
			return Notice{
				Title:       "Cart Updated",
				Description: fmt.Sprintf("Updated %s quantity to %d", name, qty),
			}, nil
		}
	}
	return Notice{}, nil
}

// Clear drops the session's cart document entirely; an absent document
// reads back as an empty cart.
func (s *CartService) Clear(sessionID string) (Notice, error) {
	if err := s.Docs.Delete(cartKey(sessionID)); err != nil {
		return Notice{}, err
	}
	return Notice{
		Title:       "Cart Cleared",
		Description: "All items have been removed from your cart.",
	}, nil
}

// TotalItems sums the live line quantities.
func (s *CartService) TotalItems(sessionID string) int {
	total := 0
	for _, ln := range s.Lines(sessionID) {
		total += ln.Qty
	}
	return total
}

// TotalPrice sums quantity times the current catalog price. Prices are
// not snapshotted while items sit in the cart; that happens at checkout.
func (s *CartService) TotalPrice(sessionID string) int64 {
	var total int64
	for _, ln := range s.Lines(sessionID) {
		if p, ok := s.Catalog.Get(ln.PlantID); ok {
			total += p.Price * int64(ln.Qty)
		}
	}
	return total
}

// CartView is the enriched cart returned to clients.
type CartView struct {
	Items      []CartViewItem `json:"items"`
	TotalItems int            `json:"totalItems"`
	TotalPrice int64          `json:"totalPrice"`
}

type CartViewItem struct {
	Plant    domain.Plant `json:"plant"`
	Qty      int          `json:"qty"`
	Subtotal int64        `json:"subtotal"`
}

func (s *CartService) View(sessionID string) CartView {
	view := CartView{Items: []CartViewItem{}}
	for _, ln := range s.Lines(sessionID) {
		p, ok := s.Catalog.Get(ln.PlantID)
		if !ok {
			continue
		}
		view.Items = append(view.Items, CartViewItem{
			Plant:    p,
			Qty:      ln.Qty,
			Subtotal: p.Price * int64(ln.Qty),
		})
		view.TotalItems += ln.Qty
		view.TotalPrice += p.Price * int64(ln.Qty)
	}
	return view
}
