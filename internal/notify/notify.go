// Package notify is the storefront change broadcast: stores publish a
// topic after every mutation and mounted views re-issue their last query
// on receipt. Delivery is fire-and-forget; there is no payload and no
// dedupe, consumers refetch unconditionally.
package notify

import (
	"github.com/asaskevich/EventBus"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// TopicCatalogChanged fires after any catalog mutation
const TopicCatalogChanged = "catalog.changed"

// Notifier wraps an in-process event bus with a worker pool so publishers
// never block on slow subscribers.
type Notifier struct {
	bus  EventBus.Bus
	pool *ants.Pool
}

// New creates a Notifier with the given fan-out pool size.
func New(poolSize int) (*Notifier, error) {
	if poolSize <= 0 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	return &Notifier{bus: EventBus.New(), pool: pool}, nil
}

// Publish broadcasts topic to all current subscribers.
func (n *Notifier) Publish(topic string) {
	n.bus.Publish(topic)
}

// Subscribe registers handler for topic and returns an unsubscribe
// function. The handler runs on the pool, one submission per event.
func (n *Notifier) Subscribe(topic string, handler func()) func() {
	wrapped := func() {
		if err := n.pool.Submit(handler); err != nil {
			zap.L().Warn("notify: dropped event", zap.String("topic", topic), zap.Error(err))
		}
	}
	if err := n.bus.Subscribe(topic, wrapped); err != nil {
		zap.L().Warn("notify: subscribe failed", zap.String("topic", topic), zap.Error(err))
		return func() {}
	}
	return func() {
		_ = n.bus.Unsubscribe(topic, wrapped)
	}
}

// OnCatalogChange subscribes to catalog mutations.
func (n *Notifier) OnCatalogChange(handler func()) func() {
	return n.Subscribe(TopicCatalogChanged, handler)
}

// CatalogChanged publishes the catalog mutation topic.
func (n *Notifier) CatalogChanged() {
	n.Publish(TopicCatalogChanged)
}

// Release drains the worker pool.
func (n *Notifier) Release() {
	n.pool.Release()
}
