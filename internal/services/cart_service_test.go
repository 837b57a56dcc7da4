package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"vrukshavalli/internal/catalog"
	"vrukshavalli/internal/repos"
	"vrukshavalli/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
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
	CREATE TABLE orders(
	  id TEXT PRIMARY KEY, session_id TEXT,
	  customer_name TEXT NOT NULL, customer_phone TEXT NOT NULL,
	  customer_email TEXT NOT NULL, customer_address TEXT NOT NULL,
	  notes TEXT, payment_method TEXT NOT NULL DEFAULT 'cod',
	  subtotal INTEGER NOT NULL, shipping INTEGER NOT NULL,
	  tax INTEGER NOT NULL, total INTEGER NOT NULL,
	  status TEXT NOT NULL DEFAULT 'pending'
	    CHECK (status IN ('pending','processing','shipped','delivered')),
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE order_items(
	  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	  line_no INTEGER NOT NULL,
	  plant_id TEXT NOT NULL, name TEXT NOT NULL,
	  qty INTEGER NOT NULL CHECK (qty >= 1),
	  price_at_time INTEGER NOT NULL,
	  PRIMARY KEY (order_id, plant_id)
	);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func cartFixture(t *testing.T) (*sqlx.DB, *repos.StorageRepo, *catalog.Store, *services.CartService) {
	t.Helper()
	db := memdb(t)
	docs := repos.NewStorageRepo(db)
	store := catalog.NewStore(docs)
	return db, docs, store, services.NewCartService(docs, store)
}

func TestCartAddIncrementRemove(t *testing.T) {
	_, _, _, cart := cartFixture(t)
	sid := "test-session"

	n, err := cart.Add(sid, "1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if n.Title != "Added to Cart" {
		t.Fatalf("want add notice, got %+v", n)
	}

	// Adding the same plant again increments the existing line.
	n, err = cart.Add(sid, "1", 1)
	if err != nil {
		t.Fatal(err)
	}
	if n.Title != "Cart Updated" {
		t.Fatalf("want update notice, got %+v", n)
	}

	if _, err := cart.Add(sid, "3", 1); err != nil {
		t.Fatal(err)
	}

	if got := cart.TotalItems(sid); got != 4 {
		t.Fatalf("total items = %d, want 4", got)
	}
	// 3 Monsteras at 899 plus one Snake Plant at 599.
	if got := cart.TotalPrice(sid); got != 3*899+599 {
		t.Fatalf("total price = %d, want %d", got, 3*899+599)
	}

	if _, err := cart.Remove(sid, "1"); err != nil {
		t.Fatal(err)
	}
	if got := cart.TotalPrice(sid); got != 599 {
		t.Fatalf("total after remove = %d, want 599", got)
	}

	// Removing a plant that is not in the cart is a silent no-op.
	n, err = cart.Remove(sid, "1")
	if err != nil {
		t.Fatal(err)
	}
	if n.Title != "" {
		t.Fatalf("expected empty notice, got %+v", n)
	}
}

func TestCartAddUnknownPlant(t *testing.T) {
	_, _, _, cart := cartFixture(t)

	if _, err := cart.Add("s", "nope", 1); err != services.ErrUnknownPlant {
		t.Fatalf("want ErrUnknownPlant, got %v", err)
	}
	if got := cart.TotalItems("s"); got != 0 {
		t.Fatalf("cart should stay empty, has %d items", got)
	}
}

func TestCartAddOutOfStockNeverMutates(t *testing.T) {
	_, _, store, cart := cartFixture(t)
	sid := "s"

	p, _ := store.Get("1")
	p.InStock = false
	if err := store.Update(p); err != nil {
		t.Fatal(err)
	}

	n, err := cart.Add(sid, "1", 1)
	if err != services.ErrOutOfStock {
		t.Fatalf("want ErrOutOfStock, got %v", err)
	}
	if n.Title != "Out of Stock" {
		t.Fatalf("want out-of-stock notice, got %+v", n)
	}
	if got := cart.TotalItems(sid); got != 0 {
		t.Fatalf("cart mutated on out-of-stock add: %d items", got)
	}
}

func TestCartSetQuantity(t *testing.T) {
	_, _, _, cart := cartFixture(t)
	sid := "s"

	if _, err := cart.Add(sid, "2", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := cart.SetQuantity(sid, "2", 5); err != nil {
		t.Fatal(err)
	}
	if got := cart.TotalItems(sid); got != 5 {
		t.Fatalf("total items = %d, want 5", got)
	}

	// Zero quantity behaves exactly like remove.
	if _, err := cart.SetQuantity(sid, "2", 0); err != nil {
		t.Fatal(err)
	}
	if got := cart.TotalItems(sid); got != 0 {
		t.Fatalf("total items = %d, want 0", got)
	}
}

func TestCartPersistsAcrossServices(t *testing.T) {
	_, docs, store, cart := cartFixture(t)
	sid := "s"

	if _, err := cart.Add(sid, "4", 2); err != nil {
		t.Fatal(err)
	}
	if _, err := cart.Add(sid, "5", 1); err != nil {
		t.Fatal(err)
	}

	// A fresh service over the same storage sees the same cart, in
	// insertion order.
	cart2 := services.NewCartService(docs, store)
	lines := cart2.Lines(sid)
	if len(lines) != 2 || lines[0].PlantID != "4" || lines[1].PlantID != "5" {
		t.Fatalf("bad reloaded cart: %+v", lines)
	}
	if got := cart2.TotalPrice(sid); got != 2*799+699 {
		t.Fatalf("reloaded total = %d", got)
	}
}

func TestCartClearRemovesDocument(t *testing.T) {
	_, docs, store, cart := cartFixture(t)
	sid := "s"

	if _, err := cart.Add(sid, "1", 2); err != nil {
		t.Fatal(err)
	}
	n, err := cart.Clear(sid)
	if err != nil {
		t.Fatal(err)
	}
	if n.Title != "Cart Cleared" {
		t.Fatalf("want clear notice, got %+v", n)
	}

	if _, found, err := docs.Get("vrukshavalli_cart:" + sid); err != nil || found {
		t.Fatalf("cart document should be gone, found=%v err=%v", found, err)
	}
	cart2 := services.NewCartService(docs, store)
	if got := cart2.TotalItems(sid); got != 0 {
		t.Fatalf("cleared cart reloads %d items", got)
	}
}

func TestCartDiscardsMalformedDocument(t *testing.T) {
	_, docs, _, cart := cartFixture(t)
	sid := "s"

	if err := docs.Put("vrukshavalli_cart:"+sid, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	if lines := cart.Lines(sid); lines != nil {
		t.Fatalf("malformed document should read as empty, got %+v", lines)
	}

	// The next mutation starts from a clean cart.
	if _, err := cart.Add(sid, "1", 1); err != nil {
		t.Fatal(err)
	}
	if got := cart.TotalItems(sid); got != 1 {
		t.Fatalf("total items = %d, want 1", got)
	}
}
