// Package cart persists per-session shopping carts. Carts are a
// convenience scope, not an order system: entries are sanitized copies of
// catalog rows, keyed by the visitor session and purged once stale.
package cart

import (
	"encoding/base64"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/team2shop/storefront/internal/domain"
	"github.com/team2shop/storefront/internal/ident"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	bucketName = "carts"

	// keyPrefix versions the cart keyspace
	keyPrefix = "cart_v1:"
)

type entry struct {
	Lines   []domain.CartLine `json:"lines"`
	Touched int64             `json:"touched"`
}

// Store is the cart engine. Failures degrade to an empty cart; no cart
// operation surfaces storage errors to the caller.
type Store struct {
	db  *bolt.DB
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the staleness clock (tests).
func WithClock(fn func() time.Time) Option {
	return func(s *Store) {
		if fn != nil {
			s.now = fn
		}
	}
}

func NewStore(db *bolt.DB, opts ...Option) (*Store, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "cart: create bucket")
	}
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// scopeKey buckets carts per visitor. Empty scopes share the guest cart.
func scopeKey(scope string) []byte {
	if scope == "" {
		return []byte(keyPrefix + "guest")
	}
	return []byte(keyPrefix + base64.StdEncoding.EncodeToString([]byte(scope)))
}

// sanitizeLine applies the cart coercion rules: quantity is a whole
// number of at least 1, price never negative.
func sanitizeLine(l domain.CartLine) domain.CartLine {
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	if l.Price < 0 {
		l.Price = 0
	}
	return l
}

func (s *Store) read(scope string) entry {
	var e entry
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(bucketName)).Get(scopeKey(scope))
		if raw == nil {
			return nil
		}
		return json.Unmarshal(raw, &e)
	})
	if err != nil {
		zap.L().Warn("cart: read failed", zap.Error(err))
		return entry{}
	}
	return e
}

func (s *Store) write(scope string, lines []domain.CartLine) []domain.CartLine {
	clean := make([]domain.CartLine, 0, len(lines))
	for _, l := range lines {
		clean = append(clean, sanitizeLine(l))
	}
	e := entry{Lines: clean, Touched: s.now().Unix()}
	raw, err := json.Marshal(e)
	if err == nil {
		err = s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket([]byte(bucketName)).Put(scopeKey(scope), raw)
		})
	}
	if err != nil {
		zap.L().Warn("cart: write failed", zap.Error(err))
	}
	return clean
}

// Get returns the sanitized cart for scope, empty when absent.
func (s *Store) Get(scope string) []domain.CartLine {
	e := s.read(scope)
	out := make([]domain.CartLine, 0, len(e.Lines))
	for _, l := range e.Lines {
		out = append(out, sanitizeLine(l))
	}
	return out
}

// Put replaces the cart wholesale and returns the sanitized lines.
func (s *Store) Put(scope string, lines []domain.CartLine) []domain.CartLine {
	return s.write(scope, lines)
}

// Add merges line into the cart, summing quantities when the product is
// already present (ids compared through the normalizer).
func (s *Store) Add(scope string, line domain.CartLine) []domain.CartLine {
	line = sanitizeLine(line)
	lines := s.Get(scope)
	merged := false
	for i, l := range lines {
		if ident.Matches(string(l.ID), string(line.ID)) {
			lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, line)
	}
	return s.write(scope, lines)
}

// SetQuantity pins a line's quantity, clamped to at least 1. Unknown ids
// are ignored.
func (s *Store) SetQuantity(scope string, id interface{}, qty int) []domain.CartLine {
	lines := s.Get(scope)
	for i, l := range lines {
		if ident.Matches(string(l.ID), id) {
			if qty < 1 {
				qty = 1
			}
			lines[i].Quantity = qty
			break
		}
	}
	return s.write(scope, lines)
}

// Remove drops every line matching id.
func (s *Store) Remove(scope string, id interface{}) []domain.CartLine {
	lines := s.Get(scope)
	next := lines[:0:0]
	for _, l := range lines {
		if !ident.Matches(string(l.ID), id) {
			next = append(next, l)
		}
	}
	return s.write(scope, next)
}

// Clear drops the whole cart for scope. Used on logout and whenever an
// administrative identity appears: admins never retain a cart.
func (s *Store) Clear(scope string) {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete(scopeKey(scope))
	})
	if err != nil {
		zap.L().Warn("cart: clear failed", zap.Error(err))
	}
}

// PurgeStale removes carts untouched for longer than ttl and reports how
// many were dropped. The scheduler runs this as the session-end analog.
func (s *Store) PurgeStale(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl).Unix()
	purged := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		c := b.Cursor()
		var stale [][]byte
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var e entry
			if err := json.Unmarshal(v, &e); err != nil || e.Touched < cutoff {
				stale = append(stale, append([]byte(nil), k...))
			}
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
			purged++
		}
		return nil
	})
	if err != nil {
		zap.L().Warn("cart: purge failed", zap.Error(err))
	}
	return purged
}
