package catalog

import (
	"math"
	"sort"

	"github.com/team2shop/storefront/internal/domain"
	"github.com/team2shop/storefront/internal/ident"
)

// DefaultRecommendLimit caps the "you may also like" strip
const DefaultRecommendLimit = 4

// Recommend returns up to limit products related to id: same category
// ordered by nearest price first, backfilled with the rest of the
// catalog. An unresolvable id falls back to the catalog head.
func (s *Store) Recommend(id interface{}, limit int) []domain.Product {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}

	s.mu.Lock()
	list := s.load()
	s.mu.Unlock()

	var subject *domain.Product
	for i := range list {
		if ident.Matches(string(list[i].ID), id) {
			subject = &list[i]
			break
		}
	}
	if subject == nil {
		if limit > len(list) {
			limit = len(list)
		}
		return cloneProducts(list[:limit])
	}

	var sameCat, rest []domain.Product
	for _, p := range list {
		if ident.Matches(string(p.ID), string(subject.ID)) {
			continue
		}
		if p.Category == subject.Category {
			sameCat = append(sameCat, p)
		} else {
			rest = append(rest, p)
		}
	}
	sort.SliceStable(sameCat, func(i, j int) bool {
		return math.Abs(sameCat[i].Price-subject.Price) < math.Abs(sameCat[j].Price-subject.Price)
	})

	out := append(sameCat, rest...)
	if limit > len(out) {
		limit = len(out)
	}
	return cloneProducts(out[:limit])
}
