// Package broadcast passes content-type updates from a host to the editors it
// owns without the editors knowing about each other.
package broadcast

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// ContentTypeSource is what an editor subscribes to for content-type updates.
type ContentTypeSource interface {
	Subscribe(fn func(contentType string)) (cancel func())
}

// ContentTypeHub fans a published content type out to its subscribers.
// Delivery is synchronous and happens on the publisher's goroutine, in
// subscription order.
type ContentTypeHub struct {
	mu      sync.Mutex
	order   []string
	subs    map[string]func(string)
	current string
	logger  *slog.Logger
}

// HubOption configures a ContentTypeHub.
type HubOption func(*ContentTypeHub)

// WithLogger sets the hub logger.
func WithLogger(l *slog.Logger) HubOption {
	return func(h *ContentTypeHub) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewContentTypeHub creates an empty hub.
func NewContentTypeHub(opts ...HubOption) *ContentTypeHub {
	h := &ContentTypeHub{
		subs:   make(map[string]func(string)),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe registers fn and returns a function that removes it. Calling the
// cancel function more than once is harmless.
func (h *ContentTypeHub) Subscribe(fn func(contentType string)) (cancel func()) {
	id := uuid.New().String()

	h.mu.Lock()
	h.subs[id] = fn
	h.order = append(h.order, id)
	h.mu.Unlock()

	h.logger.Debug("content type subscriber added", "id", id)

	var once sync.Once
	return func() {
		once.Do(func() {
			h.remove(id)
		})
	}
}

func (h *ContentTypeHub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subs, id)
	for i, existing := range h.order {
		if existing == id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	h.logger.Debug("content type subscriber removed", "id", id)
}

// Publish delivers contentType to every current subscriber.
func (h *ContentTypeHub) Publish(contentType string) {
	h.mu.Lock()
	h.current = contentType
	targets := make([]func(string), 0, len(h.order))
	for _, id := range h.order {
		targets = append(targets, h.subs[id])
	}
	h.mu.Unlock()

	h.logger.Debug("publishing content type", "content_type", contentType, "subscribers", len(targets))
	for _, fn := range targets {
		fn(contentType)
	}
}

// Current returns the last published content type.
func (h *ContentTypeHub) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Len returns the number of subscribers.
func (h *ContentTypeHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
