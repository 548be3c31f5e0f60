package stockroom

// SlotHandle addresses one slot of a Pool. A handle stays valid until the
// slot is released.
type SlotHandle int

const noSlot SlotHandle = -1

// Pool is a growable array of reusable slots threaded by a singly linked
// free list. Capacity doubles only when the free list is empty.
type Pool[T any] struct {
	slots    []slot[T]
	freeHead SlotHandle
	live     int
}

type slot[T any] struct {
	data     T
	nextFree SlotHandle
	occupied bool
}

// NewPool returns a pool with capacity free slots chained in index order.
func NewPool[T any](capacity int) *Pool[T] {
	p := &Pool[T]{freeHead: noSlot}
	if capacity > 0 {
		p.grow(capacity)
	}
	return p
}

// Allocate stores value in the head slot of the free list and returns its
// handle, doubling capacity first if no slot is free.
func (p *Pool[T]) Allocate(value T) SlotHandle {
	if p.freeHead == noSlot {
		p.grow(max(len(p.slots), 1))
	}
	h := p.freeHead
	s := &p.slots[h]
	p.freeHead = s.nextFree

	s.data = value
	s.nextFree = noSlot
	s.occupied = true
	p.live++
	return h
}

func (p *Pool[T]) Get(h SlotHandle) (T, error) {
	var zero T
	if err := p.check(h); err != nil {
		return zero, err
	}
	if !p.slots[h].occupied {
		return zero, SlotReleasedError{Handle: h}
	}
	return p.slots[h].data, nil
}

// Set replaces the value held by an occupied slot.
func (p *Pool[T]) Set(h SlotHandle, value T) error {
	if err := p.check(h); err != nil {
		return err
	}
	if !p.slots[h].occupied {
		return SlotReleasedError{Handle: h}
	}
	p.slots[h].data = value
	return nil
}

// Release frees an occupied slot and pushes it onto the free list head.
func (p *Pool[T]) Release(h SlotHandle) error {
	if err := p.check(h); err != nil {
		return err
	}
	s := &p.slots[h]
	if !s.occupied {
		return DoubleReleaseError{Handle: h}
	}
	var zero T
	s.data = zero
	s.occupied = false
	s.nextFree = p.freeHead
	p.freeHead = h
	p.live--
	return nil
}

// Len reports the number of occupied slots.
func (p *Pool[T]) Len() int {
	return p.live
}

func (p *Pool[T]) Cap() int {
	return len(p.slots)
}

func (p *Pool[T]) check(h SlotHandle) error {
	if h < 0 || int(h) >= len(p.slots) {
		return SlotRangeError{Handle: h, Capacity: len(p.slots)}
	}
	return nil
}

// grow appends n slots linked into a fresh chain that becomes the free list.
// Only called when the free list is empty.
func (p *Pool[T]) grow(n int) {
	prev := len(p.slots)
	grown := make([]slot[T], prev+n)
	copy(grown, p.slots)
	for i := prev; i < len(grown)-1; i++ {
		grown[i].nextFree = SlotHandle(i + 1)
	}
	grown[len(grown)-1].nextFree = noSlot
	p.slots = grown
	p.freeHead = SlotHandle(prev)
}
