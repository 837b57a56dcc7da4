package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"vrukshavalli/internal/domain"
	"vrukshavalli/internal/repos"
)

// DocKey is the fixed storage key holding the full catalog document.
const DocKey = "vrukshavalli_plants"

var ErrNotFound = errors.New("plant not found")

// Store serves the plant catalog. Reads come from an in-memory copy;
// admin edits persist the entire collection back as one JSON document.
// A missing or unparseable stored document falls back to the seed list.
type Store struct {
	docs *repos.StorageRepo

	mu     sync.RWMutex
	plants []domain.Plant
}

func NewStore(docs *repos.StorageRepo) *Store {
	s := &Store{docs: docs, plants: Seed()}
	raw, found, err := docs.Get(DocKey)
	if err != nil {
		log.Printf("[catalog] load failed, using seed data: %v", err)
		return s
	}
	if !found {
		return s
	}
	var stored []domain.Plant
	if err := json.Unmarshal(raw, &stored); err != nil {
		log.Printf("[catalog] discarding malformed catalog document: %v", err)
		return s
	}
	s.plants = stored
	return s
}

// List returns plants, optionally filtered by category and a search
// keyword, ordered by the given sort key (name | price-low | price-high |
// rating). The keyword matches name, description, category and features,
// case-insensitive.
func (s *Store) List(category domain.Category, sortBy, q string) []domain.Plant {
	q = strings.ToLower(strings.TrimSpace(q))
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Plant, 0, len(s.plants))
	for _, p := range s.plants {
		if category != "" && p.Category != category {
			continue
		}
		if q != "" && !matches(p, q) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		switch sortBy {
		case "price-low":
			return out[i].Price < out[j].Price
		case "price-high":
			return out[i].Price > out[j].Price
		case "rating":
			return out[i].Rating > out[j].Rating
		default: // name
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		}
	})
	return out
}

// matches reports whether a lowercased keyword hits any searchable field.
func matches(p domain.Plant, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(string(p.Category), q) {
		return true
	}
	for _, f := range p.Features {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func (s *Store) Get(id string) (domain.Plant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.plants {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Plant{}, false
}

// Validate enforces the admin form rules.
func Validate(p domain.Plant) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return errors.New("description is required")
	}
	if p.Price <= 0 {
		return errors.New("price must be positive")
	}
	if p.OriginalPrice != 0 && p.OriginalPrice <= p.Price {
		return errors.New("original price must exceed price")
	}
	if !p.Category.Valid() {
		return fmt.Errorf("unknown category %q", p.Category)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return errors.New("rating must be between 0 and 5")
	}
	if p.Reviews < 0 {
		return errors.New("reviews cannot be negative")
	}
	return nil
}

func (s *Store) Create(p domain.Plant) error {
	if err := Validate(p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.plants {
		if existing.ID == p.ID {
			return fmt.Errorf("plant %s already exists", p.ID)
		}
	}
	next := append(append([]domain.Plant{}, s.plants...), p)
	if err := s.persist(next); err != nil {
		return err
	}
	s.plants = next
	return nil
}

// Update replaces the plant matching p.ID.
func (s *Store) Update(p domain.Plant) error {
	if err := Validate(p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := append([]domain.Plant{}, s.plants...)
	for i, existing := range next {
		if existing.ID == p.ID {
			next[i] = p
			if err := s.persist(next); err != nil {
				return err
			}
			s.plants = next
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]domain.Plant, 0, len(s.plants))
	found := false
	for _, p := range s.plants {
		if p.ID == id {
			found = true
			continue
		}
		next = append(next, p)
	}
	if !found {
		return ErrNotFound
	}
	if err := s.persist(next); err != nil {
		return err
	}
	s.plants = next
	return nil
}

// persist writes the whole collection; callers hold the write lock.
func (s *Store) persist(plants []domain.Plant) error {
	raw, err := json.Marshal(plants)
	if err != nil {
		return err
	}
	return s.docs.Put(DocKey, raw)
}
