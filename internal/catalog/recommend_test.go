package catalog

import (
	"testing"

	"gotest.tools/assert"
)

func TestRecommendSameCategoryNearestPrice(t *testing.T) {
	s := newTestStore()

	// subject: Nimbus Running Shoes (89, Shoes). Shoe neighbors sorted by
	// price distance: Metro Sneakers (49.9, d=39.1) then Trailblazer
	// Boots (139, d=50).
	recs := s.Recommend("p-3", 3)
	assert.Equal(t, 3, len(recs))
	assert.Equal(t, "Metro Sneakers", recs[0].Name)
	assert.Equal(t, "Trailblazer Boots", recs[1].Name)
	// backfill comes from outside the category
	assert.Assert(t, recs[2].Category != "Shoes")

	// the subject never recommends itself
	for _, r := range recs {
		assert.Assert(t, string(r.ID) != "3")
	}
}

func TestRecommendUnknownIDFallsBack(t *testing.T) {
	s := newTestStore()
	recs := s.Recommend("missing", 4)
	assert.Equal(t, 4, len(recs))
	assert.Equal(t, "Aurora Headphones", recs[0].Name)
}

func TestRecommendLimitClamp(t *testing.T) {
	s := newTestStore()
	recs := s.Recommend("1", 100)
	assert.Equal(t, 6, len(recs))
}
