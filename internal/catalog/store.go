// Package catalog implements the storefront's mutable product catalog.
// The whole collection lives in one persisted JSON document that is
// seeded from a static fixture on first access, rewritten in full by
// every mutation and purged when the session scope ends.
package catalog

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/btree"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/team2shop/storefront/internal/domain"
	"github.com/team2shop/storefront/internal/ident"
	"github.com/team2shop/storefront/internal/notify"
	"github.com/team2shop/storefront/pkg/metrics"
)

const (
	// DefaultPageSize matches the storefront grid
	DefaultPageSize = 6

	// CategoryAll is the sentinel that disables category filtering
	CategoryAll = "All"

	// CategoryDefault labels products created without a category
	CategoryDefault = "Uncategorized"
)

// Store is the catalog engine. All operations are synchronous full
// read-modify-write passes over the persisted document; concurrent
// mutations are not merged, the last write wins.
type Store struct {
	mu       sync.Mutex
	backend  Backend
	seed     []domain.Product
	notifier *notify.Notifier

	// last successfully decoded collection, served when the backend
	// becomes unavailable mid-session
	mem []domain.Product
}

// NewStore builds a catalog store over backend, seeding from seed on
// first access. notifier may be nil (mutations then fire no events).
func NewStore(backend Backend, seed []domain.Product, notifier *notify.Notifier) *Store {
	return &Store{backend: backend, seed: seed, notifier: notifier}
}

// idxEntry indexes a catalog position by normalized id
type idxEntry struct {
	key int64
	pos int
}

func buildIndex(list []domain.Product) *btree.BTreeG[idxEntry] {
	idx := btree.NewG[idxEntry](2, func(a, b idxEntry) bool { return a.key < b.key })
	for i, p := range list {
		if n, ok := ident.Normalize(string(p.ID)); ok {
			idx.ReplaceOrInsert(idxEntry{key: n, pos: i})
		}
	}
	return idx
}

// load returns the current collection, initializing from seed when the
// store key is absent. Storage failures degrade to the last known copy
// (or the seed) instead of surfacing an error.
func (s *Store) load() []domain.Product {
	raw, ok, err := s.backend.Load()
	if err != nil {
		zap.L().Warn("catalog: storage unavailable, serving degraded copy", zap.Error(err))
		if s.mem != nil {
			return cloneProducts(s.mem)
		}
		return cloneProducts(s.seed)
	}
	if !ok {
		list := cloneProducts(s.seed)
		if data, err := json.Marshal(list); err == nil {
			if err := s.backend.Save(data); err != nil {
				zap.L().Warn("catalog: seed write failed", zap.Error(err))
			}
		}
		s.mem = cloneProducts(list)
		return list
	}
	var list []domain.Product
	if err := json.Unmarshal(raw, &list); err != nil {
		zap.L().Warn("catalog: persisted document corrupt, reseeding", zap.Error(err))
		return cloneProducts(s.seed)
	}
	s.mem = cloneProducts(list)
	return list
}

// persist rewrites the whole document and broadcasts the change. Write
// failures are swallowed; the in-memory copy still advances so the
// session keeps a consistent view.
func (s *Store) persist(list []domain.Product) {
	if data, err := json.Marshal(list); err == nil {
		if err := s.backend.Save(data); err != nil {
			zap.L().Warn("catalog: persist failed", zap.Error(err))
		}
	}
	s.mem = cloneProducts(list)
	metrics.Incr(metrics.CatalogMutation)
	if s.notifier != nil {
		s.notifier.CatalogChanged()
	}
}

func cloneProducts(list []domain.Product) []domain.Product {
	out := make([]domain.Product, len(list))
	copy(out, list)
	return out
}

// Query filters and paginates the catalog. Q is a trimmed
// case-insensitive substring match on the name, Category an exact match
// unless it is the "All" sentinel. Pages are 1-based; an out-of-range
// page yields empty items, never an error.
func (s *Store) Query(q domain.ProductQuery) domain.ProductPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	metrics.Incr(metrics.CatalogQuery)

	list := s.load()

	if q.Category != "" && q.Category != CategoryAll {
		filtered := list[:0:0]
		for _, p := range list {
			if p.Category == q.Category {
				filtered = append(filtered, p)
			}
		}
		list = filtered
	}
	if term := strings.ToLower(strings.TrimSpace(q.Q)); term != "" {
		filtered := list[:0:0]
		for _, p := range list {
			if strings.Contains(strings.ToLower(p.Name), term) {
				filtered = append(filtered, p)
			}
		}
		list = filtered
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := len(list)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return domain.ProductPage{
		Items:    cloneProducts(list[start:end]),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}

// All returns a copy of the full collection in stored order.
func (s *Store) All() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProducts(s.load())
}

// Categories returns the distinct non-empty category values sorted
// lexicographically, with the "All" sentinel prepended.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[string]struct{}{}
	var cats []string
	for _, p := range s.load() {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			cats = append(cats, p.Category)
		}
	}
	sort.Strings(cats)
	return append([]string{CategoryAll}, cats...)
}

// GetByID resolves id through the normalizer and returns the matching
// record, or nil when nothing matches.
func (s *Store) GetByID(id interface{}) *domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load()
	if n, ok := ident.Normalize(id); ok {
		idx := buildIndex(list)
		if e, found := idx.Get(idxEntry{key: n}); found {
			p := list[e.pos]
			return &p
		}
		return nil
	}
	for _, p := range list {
		if ident.Matches(string(p.ID), id) {
			cp := p
			return &cp
		}
	}
	return nil
}

// nextID assigns the integer strictly above the maximum normalized id in
// the collection, starting at 1.
func nextID(list []domain.Product) int64 {
	idx := buildIndex(list)
	if max, ok := idx.Max(); ok {
		return max.key + 1
	}
	return 1
}

// Add inserts a new product at the head of the collection. The category
// defaults to "Uncategorized" and a malformed price coerces to 0.
func (s *Store) Add(in domain.ProductInput) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load()
	category := in.Category
	if category == "" {
		category = CategoryDefault
	}
	item := domain.Product{
		ID:          domain.ProductID(strconv.FormatInt(nextID(list), 10)),
		Name:        strings.TrimSpace(in.Name),
		Price:       cast.ToFloat64(in.Price),
		Image:       in.Image,
		Category:    category,
		Description: in.Description,
	}
	// prepend for most-recent-first visibility
	s.persist(append([]domain.Product{item}, list...))
	return item
}

// Update merges patch into the record resolved by id. Only keys that are
// present and non-nil overwrite fields, with the same coercion rules as
// Add. Returns nil when the id does not resolve.
func (s *Store) Update(id interface{}, patch map[string]interface{}) *domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load()
	pos := -1
	for i, p := range list {
		if ident.Matches(string(p.ID), id) {
			pos = i
			break
		}
	}
	if pos == -1 {
		return nil
	}

	updated := list[pos]
	if v, ok := patch["name"]; ok && v != nil {
		updated.Name = cast.ToString(v)
	}
	if v, ok := patch["price"]; ok && v != nil {
		updated.Price = cast.ToFloat64(v)
	}
	if v, ok := patch["image"]; ok && v != nil {
		updated.Image = cast.ToString(v)
	}
	if v, ok := patch["category"]; ok && v != nil {
		updated.Category = cast.ToString(v)
	}
	if v, ok := patch["description"]; ok && v != nil {
		updated.Description = cast.ToString(v)
	}

	list[pos] = updated
	s.persist(list)
	return &updated
}

// Remove deletes every record matching id under normalized comparison.
// Removing an absent id is not an error; the write and the change event
// still happen.
func (s *Store) Remove(id interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load()
	next := list[:0:0]
	for _, p := range list {
		if !ident.Matches(string(p.ID), id) {
			next = append(next, p)
		}
	}
	s.persist(next)
}

// Reset purges the persisted document so the next access reseeds. This is
// the session-end analog of the browser unload purge.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Reset(); err != nil {
		zap.L().Warn("catalog: reset failed", zap.Error(err))
	}
	s.mem = nil
	if s.notifier != nil {
		s.notifier.CatalogChanged()
	}
}

// OnChange subscribes handler to catalog mutations and returns an
// unsubscribe function.
func (s *Store) OnChange(handler func()) func() {
	if s.notifier == nil {
		return func() {}
	}
	return s.notifier.OnCatalogChange(handler)
}
