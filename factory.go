package stockroom

import "github.com/TheBitDrifter/table"

type factory struct{}

var Factory factory

func (f factory) NewWorld() World {
	return newWorld()
}

// NewQuery returns an empty query; with no base, include or exclude sets it
// matches every entity.
func (f factory) NewQuery() Query {
	return Query{}
}

// NewCursor returns a cursor over w. Call Reset when leaving a Next loop
// early, otherwise the world stays locked and never compacts.
func (f factory) NewCursor(query CompiledQuery, w World) *Cursor {
	return newCursor(query, w.(*world))
}

func FactoryNewComponent[T any]() AccessibleComponent[T] {
	return AccessibleComponent[T]{
		ElementType: table.FactoryNewElementType[T](),
	}
}
