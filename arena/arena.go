package arena

// Handle addresses a slot of an Arena.
type Handle uint32

// Nil is the handle which never refers to a live slot.
const Nil Handle = 0

// IsNil reports whether h is the Nil handle.
func (h Handle) IsNil() bool {
	return h == Nil
}

// Arena owns values of type T, each living in a slot addressed by a Handle.
//
// Pointers returned by Get stay valid until the slot is freed, even if the
// arena grows in between. The zero value is an empty arena ready to use.
//
// An Arena is not safe for concurrent use.
type Arena[T any] struct {
	// slots[0] is reserved for Nil and stays nil.
	slots []*T
	// free holds tombstoned handles, reused last-in first-out.
	free []Handle
	live int
}

// New creates an arena with room for capacity values before it has to grow.
func New[T any](capacity int) *Arena[T] {
	if capacity < 0 {
		capacity = 0
	}
	a := &Arena[T]{
		slots: make([]*T, 1, capacity+1),
	}
	return a
}

// Alloc moves v into the arena and returns its handle.
// Tombstoned slots are reused before the arena grows.
func (a *Arena[T]) Alloc(v *T) Handle {
	assert(v != nil, "arena: cannot allocate nil value")
	if len(a.slots) == 0 {
		a.slots = append(a.slots, nil)
	}
	a.live++
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[h] = v
		return h
	}
	a.slots = append(a.slots, v)
	return Handle(len(a.slots) - 1)
}

// Get returns the value stored at h. It panics if h does not address a live
// slot: dereferencing a dead handle is a bug in the caller.
func (a *Arena[T]) Get(h Handle) *T {
	assert(a.IsLive(h), "arena: access to dead or nil handle")
	return a.slots[h]
}

// IsLive reports whether h addresses a live slot.
func (a *Arena[T]) IsLive(h Handle) bool {
	return h != Nil && int(h) < len(a.slots) && a.slots[h] != nil
}

// Free tombstones the slot at h and returns the value it held.
func (a *Arena[T]) Free(h Handle) *T {
	assert(a.IsLive(h), "arena: double free or nil handle")
	v := a.slots[h]
	a.slots[h] = nil
	a.free = append(a.free, h)
	a.live--
	return v
}

// Live returns the number of live slots.
func (a *Arena[T]) Live() int {
	return a.live
}

// Slots returns the number of slots ever allocated, live or tombstoned.
func (a *Arena[T]) Slots() int {
	if len(a.slots) == 0 {
		return 0
	}
	return len(a.slots) - 1
}

// Tombstones returns the number of freed slots waiting for reuse.
func (a *Arena[T]) Tombstones() int {
	return len(a.free)
}

// Each calls fn for every live slot in handle order.
// Iteration stops early if fn returns false.
func (a *Arena[T]) Each(fn func(h Handle, v *T) bool) {
	for i := 1; i < len(a.slots); i++ {
		if a.slots[i] == nil {
			continue
		}
		if !fn(Handle(i), a.slots[i]) {
			return
		}
	}
}

// Reset drops every value and every tombstone. Handles handed out before
// Reset must not be used afterwards.
func (a *Arena[T]) Reset() {
	clear(a.slots)
	a.slots = a.slots[:min(len(a.slots), 1)]
	a.free = a.free[:0]
	a.live = 0
}
