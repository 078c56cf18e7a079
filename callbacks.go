package nodewire

import "slices"

// --- Handler registry ---

type handler[T any] struct {
	id uint32
	fn func(T)
}

// registry holds listeners for one occurrence type, invoked in registration
// order.
type registry[T any] struct {
	handlers []handler[T]
	nextID   uint32
}

func (r *registry[T]) add(fn func(T)) CallbackHandle {
	r.nextID++
	r.handlers = append(r.handlers, handler[T]{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r}
}

// remove drops the handler with the given id. It builds a new slice so an
// emit already in progress keeps iterating its own snapshot.
func (r *registry[T]) remove(id uint32) {
	for i := range r.handlers {
		if r.handlers[i].id == id {
			r.handlers = slices.Delete(slices.Clone(r.handlers), i, i+1)
			return
		}
	}
}

func (r *registry[T]) emit(v T) {
	for _, h := range r.handlers {
		h.fn(v)
	}
}

func (r *registry[T]) len() int { return len(r.handlers) }

type remover interface {
	remove(id uint32)
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id  uint32
	reg remover
}

// Remove unregisters this callback so it no longer fires. Calling Remove on
// the zero handle or more than once is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.remove(h.id)
}
