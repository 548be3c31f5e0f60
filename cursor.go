package stockroom

import (
	"iter"
)

var _ iCursor = &Cursor{}

// Cursor walks the live entities of a world in creation order, stopping
// on those matching a compiled query. While a cursor is mid-iteration the
// world defers compaction, so entities destroyed along the way are skipped
// rather than shifting the walk.
type Cursor struct {
	query  CompiledQuery
	world  *world
	system System

	entityIndex int
	current     *entity
	initialized bool
}

func newCursor(query CompiledQuery, w *world) *Cursor {
	return &Cursor{
		query: query,
		world: w,
	}
}

// Next advances to the next matching entity. The world stays locked from the
// first call until Next returns false; a loop that exits early must call
// Reset, or iterate with Entities, which resets on break.
func (c *Cursor) Next() bool {
	if !c.initialized {
		c.initialize()
	}
	for c.entityIndex < len(c.world.entities) {
		en := c.world.entities[c.entityIndex]
		c.entityIndex++
		if en == nil || !en.alive {
			continue
		}
		if c.query.Matches(en) {
			c.current = en
			return true
		}
	}
	c.Reset()
	return false
}

func (c *Cursor) Entities() iter.Seq2[int, Entity] {
	return func(yield func(int, Entity) bool) {
		defer c.Reset()
		for i := 0; c.Next(); i++ {
			if !yield(i, c.current) {
				return
			}
		}
	}
}

func (c *Cursor) initialize() {
	c.world.lock()
	c.entityIndex = 0
	c.current = nil
	c.initialized = true
}

// Entity returns the entity the cursor currently rests on
func (c *Cursor) Entity() Entity {
	if c.current == nil {
		return nil
	}
	return c.current
}

func (c *Cursor) Result() QueryResult {
	return QueryResult{
		entity: c.Entity(),
		world:  c.world,
		system: c.system,
	}
}

func (c *Cursor) Reset() {
	if c.initialized {
		c.world.unlock()
	}
	c.entityIndex = 0
	c.current = nil
	c.initialized = false
}

// TotalMatched counts matching live entities without moving the cursor
func (c *Cursor) TotalMatched() int {
	total := 0
	for _, en := range c.world.entities {
		if en != nil && en.alive && c.query.Matches(en) {
			total++
		}
	}
	return total
}
