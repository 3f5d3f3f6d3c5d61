package components

import "github.com/google/uuid"

// Subscription is returned by the Subscribe methods. Cancel removes the
// listener; it is safe to call more than once and on the zero value.
type Subscription struct {
	id     string
	cancel func()
}

// ID returns the subscription identifier.
func (s Subscription) ID() string {
	return s.id
}

// Cancel removes the listener.
func (s Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

// listeners is an ordered set of callbacks. Callbacks run on the caller's
// goroutine; the editor is only touched from the bubbletea update loop.
type listeners[T any] struct {
	order []string
	fns   map[string]func(T)
}

func newListeners[T any]() *listeners[T] {
	return &listeners[T]{fns: make(map[string]func(T))}
}

func (l *listeners[T]) add(fn func(T)) Subscription {
	id := uuid.New().String()
	l.fns[id] = fn
	l.order = append(l.order, id)
	return Subscription{id: id, cancel: func() { l.remove(id) }}
}

func (l *listeners[T]) remove(id string) {
	if _, ok := l.fns[id]; !ok {
		return
	}
	delete(l.fns, id)
	for i, existing := range l.order {
		if existing == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

func (l *listeners[T]) emit(v T) {
	ids := append([]string(nil), l.order...)
	for _, id := range ids {
		if fn, ok := l.fns[id]; ok {
			fn(v)
		}
	}
}
