package reviews

import (
	"testing"
	"time"

	"gotest.tools/assert"
)

func fixedClock() time.Time {
	return time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
}

func TestGenerateIsDeterministic(t *testing.T) {
	g := NewSynthesizer(WithClock(fixedClock))

	a := g.Generate("42")
	b := g.Generate("42")
	assert.DeepEqual(t, a, b)

	// distinct ids yield distinct sets
	c := g.Generate("43")
	differs := len(a) != len(c)
	if !differs {
		for i := range a {
			if a[i].Rating != c[i].Rating || a[i].Author != c[i].Author || a[i].Comment != c[i].Comment {
				differs = true
				break
			}
		}
	}
	assert.Assert(t, differs)
}

func TestGenerateShape(t *testing.T) {
	g := NewSynthesizer(WithClock(fixedClock))

	for _, id := range []string{"1", "42", "p-7", "slug", ""} {
		rows := g.Generate(id)
		assert.Assert(t, len(rows) >= 3 && len(rows) <= 6)
		for i, r := range rows {
			assert.Assert(t, r.Rating >= 3 && r.Rating <= 5)
			assert.Assert(t, r.Author != "")
			assert.Assert(t, r.Comment != "")
			assert.Assert(t, len(r.Photos) <= 1)
			// one day back per item, starting one day before now
			want := fixedClock().Add(-time.Duration(i+1) * 24 * time.Hour).Format(isoMillis)
			assert.Equal(t, want, r.CreatedAt)
		}
	}
}

func TestGenerateTimestampsStrictlyDecrease(t *testing.T) {
	g := NewSynthesizer(WithClock(fixedClock))
	rows := g.Generate("42")
	for i := 1; i < len(rows); i++ {
		prev := parseWhen(rows[i-1].CreatedAt)
		cur := parseWhen(rows[i].CreatedAt)
		assert.Assert(t, cur.Before(prev))
	}
}

// TestGenerateKnownSequence pins the full generated set for one id so any
// drift in the generator state or draw order shows up immediately.
func TestGenerateKnownSequence(t *testing.T) {
	g := NewSynthesizer(WithClock(fixedClock))
	rows := g.Generate("42")

	assert.Equal(t, 6, len(rows))

	wantRatings := []int{5, 5, 4, 3, 5, 5}
	wantAuthors := []string{"Cheng", "Hiro", "Cheng", "Cheng", "Gwen", "Cheng"}
	wantComments := []string{
		"Battery life could be better but still solid.",
		"Looks premium and works as expected.",
		"Good value for money.",
		"Exactly as described. Love it!",
		"Build quality is excellent for the price.",
		"Average, does the job.",
	}
	wantPhotos := [][]string{
		{},
		{},
		{},
		{"https://picsum.photos/seed/rv1/200"},
		{"https://picsum.photos/seed/rv3/200"},
		{"https://picsum.photos/seed/rv1/200"},
	}
	for i, r := range rows {
		assert.Equal(t, wantRatings[i], r.Rating)
		assert.Equal(t, wantAuthors[i], r.Author)
		assert.Equal(t, wantComments[i], r.Comment)
		assert.DeepEqual(t, wantPhotos[i], r.Photos)
	}
}

func TestSeedForStability(t *testing.T) {
	assert.Equal(t, seedFor("42"), seedFor("42"))
	assert.Assert(t, seedFor("42") != seedFor("24"))
	assert.Equal(t, uint32(0), seedFor(""))
}
