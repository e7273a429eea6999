package reviews

import (
	"fmt"
	"time"

	"github.com/team2shop/storefront/internal/domain"
	"github.com/team2shop/storefront/pkg/metrics"
)

// isoMillis matches the millisecond ISO-8601 encoding used by the seed
// fixtures, so synthetic and authored cursors compare uniformly.
const isoMillis = "2006-01-02T15:04:05.000Z"

var authorPool = []string{
	"Alice", "Ben", "Cheng", "Dana", "Elena", "Farid", "Gwen", "Hiro", "Ivy", "Jamal",
}

var commentPool = []string{
	"Great quality and fast shipping!",
	"Exactly as described. Love it!",
	"Good value for money.",
	"Average, does the job.",
	"Build quality is excellent for the price.",
	"Battery life could be better but still solid.",
	"Seller was responsive, recommended.",
	"Looks premium and works as expected.",
}

var photoPool = []string{
	"https://picsum.photos/seed/rv1/200",
	"https://picsum.photos/seed/rv2/200",
	"https://picsum.photos/seed/rv3/200",
}

// Synthesizer produces a stable pseudo-random review set per product id.
// The same id always yields the same set: the id string seeds a rolling
// 31-multiplier hash which drives a Mulberry32 generator. The arithmetic
// is fixed to 32-bit unsigned so the sequence is reproducible across
// builds and platforms.
type Synthesizer struct {
	now func() time.Time
}

// SynthOption configures a Synthesizer.
type SynthOption func(*Synthesizer)

// WithClock overrides the timestamp base (useful in tests).
func WithClock(fn func() time.Time) SynthOption {
	return func(s *Synthesizer) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewSynthesizer creates a Synthesizer using the wall clock by default.
func NewSynthesizer(opts ...SynthOption) *Synthesizer {
	s := &Synthesizer{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// seedFor hashes the identifier's string form: h = h*31 + codepoint.
func seedFor(productID string) uint32 {
	var h uint32
	for _, r := range productID {
		h = h*31 + uint32(r)
	}
	return h
}

// mulberry32 returns a generator of floats in [0,1). Unsigned 32-bit
// operations reproduce the reference sequence bit for bit, including the
// extra increment folded into the initial state.
func mulberry32(seed uint32) func() float64 {
	t := seed + 0x6D2B79F5
	return func() float64 {
		t += 0x6D2B79F5
		r := (t ^ (t >> 15)) * (t | 1)
		r ^= r + (r^(r>>7))*(r|61)
		return float64(r^(r>>14)) / 4294967296.0
	}
}

// Generate produces 3-6 reviews for productID: ratings biased to 3-5,
// authors and comments from fixed pools, a 35% chance of one photo, and
// timestamps stepping back exactly one day per item from now.
func (s *Synthesizer) Generate(productID string) []domain.Review {
	rnd := mulberry32(seedFor(productID))

	count := 3 + int(rnd()*4)
	now := s.now()
	items := make([]domain.Review, 0, count)
	for i := 0; i < count; i++ {
		rating := 3 + int(rnd()*3)
		author := authorPool[int(rnd()*float64(len(authorPool)))]
		comment := commentPool[int(rnd()*float64(len(commentPool)))]
		hasPhoto := rnd() < 0.35
		photos := []string{}
		if hasPhoto {
			photos = []string{photoPool[int(rnd()*float64(len(photoPool)))]}
		}
		items = append(items, domain.Review{
			ID:        fmt.Sprintf("mock-%s-%d", productID, i),
			Author:    author,
			Rating:    rating,
			Comment:   comment,
			Photos:    photos,
			CreatedAt: now.Add(-time.Duration(i+1) * 24 * time.Hour).UTC().Format(isoMillis),
		})
	}
	metrics.Incr(metrics.ReviewSynth)
	return items
}
