// Package reviews implements the read-mostly review engine: authored
// seed data when it exists, deterministic synthetic reviews otherwise,
// with keyset pagination and product-level aggregates.
package reviews

import (
	_ "embed"
	"sort"
	"time"

	"github.com/araddon/dateparse"
	"github.com/bwmarrin/snowflake"
	jsoniter "github.com/json-iterator/go"
	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"github.com/team2shop/storefront/internal/domain"
	"github.com/team2shop/storefront/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed data/reviews.json
var seedJSON []byte

const (
	MinLimit     = 1
	MaxLimit     = 20
	DefaultLimit = 5
)

// Store serves per-product review pages. Authored rows come from the
// immutable seed fixture; products without authored rows get a stable
// synthetic set. Nothing here is ever persisted.
type Store struct {
	authored map[string][]domain.Review
	synth    *Synthesizer
	node     *snowflake.Node
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithAuthored replaces the embedded fixture (tests).
func WithAuthored(authored map[string][]domain.Review) StoreOption {
	return func(s *Store) { s.authored = authored }
}

// NewStore builds a review store over the embedded fixture.
func NewStore(synth *Synthesizer, node *snowflake.Node, opts ...StoreOption) *Store {
	s := &Store{synth: synth, node: node}
	if err := json.Unmarshal(seedJSON, &s.authored); err != nil {
		zap.L().Error("reviews: seed fixture corrupt", zap.Error(err))
		s.authored = map[string][]domain.Review{}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// rowsFor returns the source rows for a product. Any authored entry wins,
// even an empty one; only unknown ids fall through to the synthesizer.
func (s *Store) rowsFor(productID string) []domain.Review {
	if rows, ok := s.authored[productID]; ok {
		out := make([]domain.Review, len(rows))
		copy(out, rows)
		return out
	}
	return s.synth.Generate(productID)
}

func parseWhen(v string) time.Time {
	t, err := dateparse.ParseAny(v)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Fetch lists one keyset page of reviews for q.ProductID. The canonical
// order is created_at descending with id as tie-break. Rating and photo
// filters narrow the visible rows; the summary always covers the full
// unfiltered set.
func (s *Store) Fetch(q domain.ReviewQuery) domain.ReviewPage {
	metrics.Incr(metrics.ReviewFetch)

	base := s.rowsFor(q.ProductID)
	sort.SliceStable(base, func(i, j int) bool {
		ti, tj := parseWhen(base[i].CreatedAt), parseWhen(base[j].CreatedAt)
		if ti.Equal(tj) {
			return base[i].ID > base[j].ID
		}
		return ti.After(tj)
	})

	rows := make([]domain.Review, len(base))
	copy(rows, base)

	if q.Rating != 0 {
		filtered := rows[:0:0]
		for _, r := range rows {
			if r.Rating == q.Rating {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}
	if q.WithPhotos {
		filtered := rows[:0:0]
		for _, r := range rows {
			if len(r.Photos) > 0 {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}
	if q.Cursor != "" {
		if boundary, err := dateparse.ParseAny(q.Cursor); err == nil {
			filtered := rows[:0:0]
			for _, r := range rows {
				if parseWhen(r.CreatedAt).Before(boundary) {
					filtered = append(filtered, r)
				}
			}
			rows = filtered
		}
	}

	limit := q.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < MinLimit {
		limit = MinLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	hasMore := len(rows) > limit
	if limit > len(rows) {
		limit = len(rows)
	}
	items := rows[:limit]

	nextCursor := ""
	if hasMore && len(items) > 0 {
		nextCursor = items[len(items)-1].CreatedAt
	}

	return domain.ReviewPage{
		Items:      items,
		Summary:    summarize(base),
		NextCursor: nextCursor,
	}
}

// summarize aggregates the full row set: count, mean rating rounded to
// two decimals, and per-star bucket counts.
func summarize(rows []domain.Review) domain.ReviewSummary {
	sum := domain.ReviewSummary{Count: len(rows)}
	if len(rows) == 0 {
		return sum
	}
	ratings := make([]float64, 0, len(rows))
	for _, r := range rows {
		ratings = append(ratings, float64(r.Rating))
		switch r.Rating {
		case 1:
			sum.S1++
		case 2:
			sum.S2++
		case 3:
			sum.S3++
		case 4:
			sum.S4++
		case 5:
			sum.S5++
		}
	}
	avg, err := stats.Mean(ratings)
	if err != nil {
		return sum
	}
	rounded, err := stats.Round(avg, 2)
	if err != nil {
		rounded = avg
	}
	sum.Avg = rounded
	return sum
}

// Create acknowledges a submitted review without persisting it. Wiring a
// real backend replaces this with an actual insert.
func (s *Store) Create(_ domain.Review) domain.ReviewAck {
	ack := domain.ReviewAck{OK: true}
	if s.node != nil {
		ack.ID = s.node.Generate().String()
	}
	return ack
}
