package stockroom

var _ componentStore = &store[struct{}]{}

type componentStore interface {
	add(id EntityID, value any) error
	remove(id EntityID)
	getAny(id EntityID) (any, bool)
	has(id EntityID) bool
	len() int
}

// store holds at most one T per entity. Each entity keeps the slot it was
// given for as long as the component lives, so removals never move another
// entity's data.
type store[T any] struct {
	comp   Component
	typeID ComponentTypeID
	slots  map[EntityID]SlotHandle
	pool   *Pool[*T]
}

func newStore[T any](comp Component, id ComponentTypeID, capacity int) *store[T] {
	return &store[T]{
		comp:   comp,
		typeID: id,
		slots:  make(map[EntityID]SlotHandle),
		pool:   NewPool[*T](capacity),
	}
}

// add rejects a second component for the same entity. A T is copied, a *T
// is stored as given and nil stores a zero T.
func (s *store[T]) add(id EntityID, value any) error {
	if _, exists := s.slots[id]; exists {
		return ComponentExistsError{Component: s.comp, Entity: id}
	}
	var ptr *T
	switch v := value.(type) {
	case nil:
		ptr = new(T)
	case *T:
		if v == nil {
			v = new(T)
		}
		ptr = v
	case T:
		ptr = &v
	default:
		return ComponentValueError{Component: s.comp, Value: value}
	}
	s.slots[id] = s.pool.Allocate(ptr)
	return nil
}

func (s *store[T]) remove(id EntityID) {
	h, ok := s.slots[id]
	if !ok {
		return
	}
	delete(s.slots, id)
	if err := s.pool.Release(h); err != nil {
		panic(err)
	}
}

func (s *store[T]) get(id EntityID) *T {
	h, ok := s.slots[id]
	if !ok {
		return nil
	}
	ptr, err := s.pool.Get(h)
	if err != nil {
		panic(err)
	}
	return ptr
}

func (s *store[T]) getAny(id EntityID) (any, bool) {
	ptr := s.get(id)
	if ptr == nil {
		return nil, false
	}
	return ptr, true
}

func (s *store[T]) has(id EntityID) bool {
	_, ok := s.slots[id]
	return ok
}

func (s *store[T]) len() int {
	return len(s.slots)
}
