package notify

import (
	"testing"
	"time"

	"gotest.tools/assert"
)

func waitFor(t *testing.T, ch chan struct{}, n int) int {
	t.Helper()
	got := 0
	timeout := time.After(2 * time.Second)
	for got < n {
		select {
		case <-ch:
			got++
		case <-timeout:
			return got
		}
	}
	// allow a short grace period for unexpected extra deliveries
	select {
	case <-ch:
		got++
	case <-time.After(50 * time.Millisecond):
	}
	return got
}

func TestCatalogChangeFanout(t *testing.T) {
	n, err := New(4)
	assert.NilError(t, err)
	defer n.Release()

	ch := make(chan struct{}, 16)
	unsub1 := n.OnCatalogChange(func() { ch <- struct{}{} })
	unsub2 := n.OnCatalogChange(func() { ch <- struct{}{} })

	n.CatalogChanged()
	assert.Equal(t, 2, waitFor(t, ch, 2))

	unsub1()
	n.CatalogChanged()
	assert.Equal(t, 1, waitFor(t, ch, 1))

	unsub2()
	n.CatalogChanged()
	assert.Equal(t, 0, waitFor(t, ch, 1))
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	n, err := New(2)
	assert.NilError(t, err)
	defer n.Release()

	unsub := n.OnCatalogChange(func() {})
	unsub()
	unsub()
}
