package catalog

import (
	"testing"
	"time"

	"gotest.tools/assert"

	"github.com/team2shop/storefront/internal/domain"
	"github.com/team2shop/storefront/internal/notify"
)

func testSeed() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Aurora Headphones", Price: 129.9, Category: "Audio"},
		{ID: "2", Name: "Pulse Speaker", Price: 59.5, Category: "Audio"},
		{ID: "3", Name: "Nimbus Running Shoes", Price: 89, Category: "Shoes"},
		{ID: "4", Name: "Trailblazer Boots", Price: 139, Category: "Shoes"},
		{ID: "p-5", Name: "Metro Sneakers", Price: 49.9, Category: "Shoes"},
		{ID: "6", Name: "Vista Watch", Price: 199, Category: "Wearables"},
		{ID: "7", Name: "Stride Band", Price: 39.9, Category: ""},
	}
}

func newTestStore() *Store {
	return NewStore(NewMemoryBackend(), testSeed(), nil)
}

func TestQueryCategoryPaging(t *testing.T) {
	s := newTestStore()

	page := s.Query(domain.ProductQuery{Category: "Shoes", Page: 1, PageSize: 2})
	assert.Equal(t, 2, len(page.Items))
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.PageSize)
	assert.Equal(t, "Shoes", page.Items[0].Category)
	assert.Equal(t, "Shoes", page.Items[1].Category)

	page = s.Query(domain.ProductQuery{Category: "Shoes", Page: 2, PageSize: 2})
	assert.Equal(t, 1, len(page.Items))
	assert.Equal(t, 3, page.Total)

	// out of range pages return empty items, not an error
	page = s.Query(domain.ProductQuery{Category: "Shoes", Page: 9, PageSize: 2})
	assert.Equal(t, 0, len(page.Items))
	assert.Equal(t, 3, page.Total)
}

func TestQuerySearch(t *testing.T) {
	s := newTestStore()

	page := s.Query(domain.ProductQuery{Q: "  nIMBUS "})
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "Nimbus Running Shoes", page.Items[0].Name)

	// search composes with the category filter
	page = s.Query(domain.ProductQuery{Q: "s", Category: "Audio"})
	assert.Equal(t, 2, page.Total)

	// items never exceed the page size or the total
	page = s.Query(domain.ProductQuery{PageSize: 3})
	assert.Assert(t, len(page.Items) <= 3)
	assert.Assert(t, len(page.Items) <= page.Total)

	// defaults: page 1, page size 6
	page = s.Query(domain.ProductQuery{})
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, 6, len(page.Items))
}

func TestCategories(t *testing.T) {
	s := newTestStore()
	// sorted, deduplicated, empty category dropped, All prepended
	assert.DeepEqual(t, []string{"All", "Audio", "Shoes", "Wearables"}, s.Categories())
}

func TestGetByID(t *testing.T) {
	s := newTestStore()

	p := s.GetByID("p-3")
	assert.Assert(t, p != nil)
	assert.Equal(t, "Nimbus Running Shoes", p.Name)

	p = s.GetByID(5)
	assert.Assert(t, p != nil)
	assert.Equal(t, "Metro Sneakers", p.Name)

	assert.Assert(t, s.GetByID("nope") == nil)
	assert.Assert(t, s.GetByID(42) == nil)
}

func TestAdd(t *testing.T) {
	s := newTestStore()

	added := s.Add(domain.ProductInput{Name: "  Drift Keyboard ", Price: "109.5", Image: "img"})
	assert.Equal(t, "8", string(added.ID)) // max normalized id is 7
	assert.Equal(t, "Drift Keyboard", added.Name)
	assert.Equal(t, 109.5, added.Price)
	assert.Equal(t, CategoryDefault, added.Category)

	got := s.GetByID(added.ID)
	assert.Assert(t, got != nil)
	assert.DeepEqual(t, added, *got)

	// new item is prepended
	page := s.Query(domain.ProductQuery{PageSize: 1})
	assert.Equal(t, added.ID, page.Items[0].ID)

	// a newly introduced category shows up in Categories
	s.Add(domain.ProductInput{Name: "Lumen Lamp", Category: "Home"})
	cats := s.Categories()
	assert.Assert(t, contains(cats, "Home"))
	assert.Assert(t, contains(cats, CategoryDefault))

	// malformed price coerces to zero
	bad := s.Add(domain.ProductInput{Name: "Freebie", Price: "not-a-number"})
	assert.Equal(t, 0.0, bad.Price)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestAddIntoEmptyCatalog(t *testing.T) {
	s := NewStore(NewMemoryBackend(), []domain.Product{}, nil)
	added := s.Add(domain.ProductInput{Name: "First"})
	assert.Equal(t, "1", string(added.ID))
}

func TestUpdate(t *testing.T) {
	s := newTestStore()

	before := s.GetByID("2")
	assert.Assert(t, before != nil)

	// empty patch keeps the record identical
	same := s.Update("2", map[string]interface{}{})
	assert.Assert(t, same != nil)
	assert.DeepEqual(t, *before, *same)

	// partial patch touches only provided, non-nil keys
	updated := s.Update("p_2", map[string]interface{}{
		"price":       "75.5",
		"description": "refreshed",
		"name":        nil,
	})
	assert.Assert(t, updated != nil)
	assert.Equal(t, before.Name, updated.Name)
	assert.Equal(t, 75.5, updated.Price)
	assert.Equal(t, "refreshed", updated.Description)

	got := s.GetByID(2)
	assert.DeepEqual(t, *updated, *got)

	// unresolvable id is a no-op sentinel
	assert.Assert(t, s.Update("missing", map[string]interface{}{"name": "x"}) == nil)
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := newTestStore()

	s.Remove("p-4")
	assert.Assert(t, s.GetByID(4) == nil)
	total := s.Query(domain.ProductQuery{}).Total
	assert.Equal(t, 6, total)

	s.Remove("p-4")
	assert.Equal(t, total, s.Query(domain.ProductQuery{}).Total)
}

func TestMutationsNotify(t *testing.T) {
	n, err := notify.New(2)
	assert.NilError(t, err)
	defer n.Release()

	s := NewStore(NewMemoryBackend(), testSeed(), n)

	ch := make(chan struct{}, 16)
	unsub := s.OnChange(func() { ch <- struct{}{} })
	defer unsub()

	s.Add(domain.ProductInput{Name: "New"})
	s.Update("1", map[string]interface{}{"price": 1})
	s.Remove("2")

	got := 0
	timeout := time.After(2 * time.Second)
	for got < 3 {
		select {
		case <-ch:
			got++
		case <-timeout:
			t.Fatalf("expected 3 change events, got %d", got)
		}
	}
}

func TestStorageUnavailableDegradesToSeed(t *testing.T) {
	backend := NewMemoryBackend()
	backend.Failing = true
	s := NewStore(backend, testSeed(), nil)

	// reads serve the seed defaults
	page := s.Query(domain.ProductQuery{})
	assert.Equal(t, 7, page.Total)

	// writes are attempted but failures are swallowed; the session keeps
	// a consistent in-memory view
	added := s.Add(domain.ProductInput{Name: "Ghost"})
	got := s.GetByID(added.ID)
	assert.Assert(t, got != nil)
	assert.Equal(t, "Ghost", got.Name)

	// once storage recovers, the next mutation rewrites the full document
	backend.Failing = false
	s.Remove(added.ID)
	raw, ok, err := backend.Load()
	assert.NilError(t, err)
	assert.Assert(t, ok)
	var list []domain.Product
	assert.NilError(t, json.Unmarshal(raw, &list))
	assert.Equal(t, 7, len(list))
}

func TestResetReseeds(t *testing.T) {
	s := newTestStore()
	s.Remove("1")
	assert.Equal(t, 6, s.Query(domain.ProductQuery{}).Total)

	s.Reset()
	assert.Equal(t, 7, s.Query(domain.ProductQuery{}).Total)
}

func TestSeedFixture(t *testing.T) {
	list := SeedProducts()
	assert.Assert(t, len(list) > 0)
	for _, p := range list {
		assert.Assert(t, p.Name != "")
		assert.Assert(t, p.Price >= 0)
	}
}
