package catalog_test

import (
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"vrukshavalli/internal/catalog"
	"vrukshavalli/internal/domain"
	"vrukshavalli/internal/repos"
)

func storageDB(t *testing.T) *repos.StorageRepo {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE storage(
	  key TEXT PRIMARY KEY,
	  value TEXT NOT NULL,
	  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return repos.NewStorageRepo(db)
}

func TestStoreSeedsWhenEmpty(t *testing.T) {
	store := catalog.NewStore(storageDB(t))

	all := store.List("", "", "")
	if len(all) != 8 {
		t.Fatalf("want 8 seed plants, got %d", len(all))
	}
	p, ok := store.Get("1")
	if !ok || p.Name != "Monstera Deliciosa" || p.Price != 899 {
		t.Fatalf("bad seed plant: %+v", p)
	}
}

func TestStoreListFilterAndSort(t *testing.T) {
	store := catalog.NewStore(storageDB(t))

	indoor := store.List(domain.CategoryIndoor, "", "")
	if len(indoor) != 3 {
		t.Fatalf("want 3 indoor plants, got %d", len(indoor))
	}
	for _, p := range indoor {
		if p.Category != domain.CategoryIndoor {
			t.Fatalf("filter leaked %s", p.Category)
		}
	}

	byPrice := store.List("", "price-low", "")
	for i := 1; i < len(byPrice); i++ {
		if byPrice[i-1].Price > byPrice[i].Price {
			t.Fatalf("price-low not sorted at %d: %d > %d", i, byPrice[i-1].Price, byPrice[i].Price)
		}
	}

	byRating := store.List("", "rating", "")
	for i := 1; i < len(byRating); i++ {
		if byRating[i-1].Rating < byRating[i].Rating {
			t.Fatalf("rating not sorted at %d", i)
		}
	}
}

func TestStoreSearch(t *testing.T) {
	store := catalog.NewStore(storageDB(t))

	byName := store.List("", "", "MONSTERA")
	if len(byName) != 1 || byName[0].ID != "1" {
		t.Fatalf("name search: %+v", byName)
	}

	// "low light" appears in the Snake Plant's features.
	byFeature := store.List("", "", "low light")
	if len(byFeature) == 0 {
		t.Fatal("feature search found nothing")
	}
	for _, p := range byFeature {
		hit := false
		for _, f := range p.Features {
			if strings.Contains(strings.ToLower(f), "low light") {
				hit = true
			}
		}
		if !hit {
			t.Fatalf("plant %s matched without the feature", p.ID)
		}
	}

	byCategory := store.List("", "", "exotic")
	if len(byCategory) != 3 {
		t.Fatalf("category keyword should hit 3 plants, got %d", len(byCategory))
	}

	// Keyword and category filter compose.
	both := store.List(domain.CategoryIndoor, "", "air")
	for _, p := range both {
		if p.Category != domain.CategoryIndoor {
			t.Fatalf("filter leaked %s", p.Category)
		}
	}

	if got := store.List("", "", "no such plant anywhere"); len(got) != 0 {
		t.Fatalf("bogus keyword matched %d plants", len(got))
	}
}

func TestStoreValidate(t *testing.T) {
	good := domain.Plant{
		ID: "x", Name: "Test Fern", Category: domain.CategoryIndoor,
		Price: 100, Description: "a fern", InStock: true, Rating: 4,
	}
	if err := catalog.Validate(good); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		mut  func(*domain.Plant)
	}{
		{"empty name", func(p *domain.Plant) { p.Name = " " }},
		{"empty description", func(p *domain.Plant) { p.Description = "" }},
		{"zero price", func(p *domain.Plant) { p.Price = 0 }},
		{"original below price", func(p *domain.Plant) { p.OriginalPrice = 50 }},
		{"bad category", func(p *domain.Plant) { p.Category = "aquatic" }},
		{"rating too high", func(p *domain.Plant) { p.Rating = 5.5 }},
		{"negative reviews", func(p *domain.Plant) { p.Reviews = -1 }},
	}
	for _, tc := range cases {
		p := good
		tc.mut(&p)
		if err := catalog.Validate(p); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestStoreCRUDPersists(t *testing.T) {
	docs := storageDB(t)
	store := catalog.NewStore(docs)

	fern := domain.Plant{
		ID: "9", Name: "Boston Fern", Category: domain.CategoryIndoor,
		Price: 449, Description: "Lush trailing fronds", InStock: true,
		Rating: 4.2, Reviews: 41,
	}
	if err := store.Create(fern); err != nil {
		t.Fatal(err)
	}
	if err := store.Create(fern); err == nil {
		t.Fatal("duplicate id should be rejected")
	}

	fern.Price = 399
	if err := store.Update(fern); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete("1"); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete("1"); err != catalog.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	// A fresh store over the same storage sees every edit.
	reload := catalog.NewStore(docs)
	if _, ok := reload.Get("1"); ok {
		t.Fatal("deleted plant survived reload")
	}
	p, ok := reload.Get("9")
	if !ok || p.Price != 399 {
		t.Fatalf("bad reloaded plant: %+v", p)
	}
	if got := len(reload.List("", "", "")); got != 8 {
		t.Fatalf("want 8 plants after edits, got %d", got)
	}
}

func TestStoreRecoversFromMalformedDocument(t *testing.T) {
	docs := storageDB(t)
	if err := docs.Put(catalog.DocKey, []byte(`{"oops"`)); err != nil {
		t.Fatal(err)
	}

	store := catalog.NewStore(docs)
	if got := len(store.List("", "", "")); got != 8 {
		t.Fatalf("malformed document should fall back to seed, got %d plants", got)
	}
}
