package stockroom

import "github.com/TheBitDrifter/table"

// AccessibleComponent is a typed component handle. The same handle value
// must be used for registration, queries and lookups.
type AccessibleComponent[T any] struct {
	table.ElementType
}

func (c AccessibleComponent[T]) newStore(id ComponentTypeID, capacity int) componentStore {
	return newStore[T](c, id, capacity)
}

// Find returns the entity's component, or nil if it holds none
func (c AccessibleComponent[T]) Find(e Entity) (*T, error) {
	en, ok := e.(*entity)
	if !ok || en == nil {
		return nil, EntityNotFoundError{}
	}
	if !en.alive {
		return nil, EntityNotFoundError{ID: en.id}
	}
	s, _, err := en.w.reg.storeFor(c)
	if err != nil {
		return nil, err
	}
	return s.(*store[T]).get(en.id), nil
}

// Add attaches value to the entity
func (c AccessibleComponent[T]) Add(e Entity, value T) error {
	return e.AddComponentWithValue(c, value)
}

// GetFromResult retrieves the component for the result's entity.
// It returns nil when the entity does not hold one, even if the query
// implied it should.
func (c AccessibleComponent[T]) GetFromResult(r QueryResult) *T {
	if r.entity == nil {
		return nil
	}
	v, err := c.Find(r.entity)
	if err != nil {
		return nil
	}
	return v
}

// GetFromResultSafe reports whether the component was present alongside the value
func (c AccessibleComponent[T]) GetFromResultSafe(r QueryResult) (bool, *T) {
	v := c.GetFromResult(r)
	return v != nil, v
}

// GetFromCursor retrieves the component for the entity at the cursor position
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) *T {
	return c.GetFromResult(cursor.Result())
}
