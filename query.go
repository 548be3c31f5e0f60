package stockroom

import (
	"fmt"
	"slices"

	"github.com/TheBitDrifter/mask"
)

// Query is an immutable component-presence predicate: every base component
// (AND), at least one member of each include group (OR), and no member of
// any exclude group. Builder methods return a new Query.
type Query struct {
	base    []Component
	include [][]Component
	exclude [][]Component
}

// All starts a query requiring every given component.
func All(components ...Component) Query {
	return Query{}.All(components...)
}

// All extends the mandatory set.
func (q Query) All(components ...Component) Query {
	q.base = append(slices.Clip(q.base), components...)
	return q
}

// Include adds one OR group. A call without components adds nothing.
func (q Query) Include(components ...Component) Query {
	if len(components) == 0 {
		return q
	}
	q.include = append(slices.Clip(q.include), slices.Clone(components))
	return q
}

// Exclude adds one OR group whose members must all be absent. A call
// without components adds nothing.
func (q Query) Exclude(components ...Component) Query {
	if len(components) == 0 {
		return q
	}
	q.exclude = append(slices.Clip(q.exclude), slices.Clone(components))
	return q
}

func (q Query) compile(reg *registry) (CompiledQuery, error) {
	base, err := groupMask(reg, q.base)
	if err != nil {
		return CompiledQuery{}, fmt.Errorf("failed to compile base set: %w", err)
	}
	compiled := CompiledQuery{
		base:    base,
		include: make([]mask.Mask, len(q.include)),
		exclude: make([]mask.Mask, len(q.exclude)),
		width:   reg.count(),
	}
	for i, group := range q.include {
		if compiled.include[i], err = groupMask(reg, group); err != nil {
			return CompiledQuery{}, fmt.Errorf("failed to compile include group %d: %w", i, err)
		}
	}
	for i, group := range q.exclude {
		if compiled.exclude[i], err = groupMask(reg, group); err != nil {
			return CompiledQuery{}, fmt.Errorf("failed to compile exclude group %d: %w", i, err)
		}
	}
	return compiled, nil
}

func groupMask(reg *registry, components []Component) (mask.Mask, error) {
	var m mask.Mask
	for _, c := range components {
		id, err := reg.idOf(c)
		if err != nil {
			return mask.Mask{}, err
		}
		m.Mark(uint32(id))
	}
	return m, nil
}

// CompiledQuery is a Query resolved against a frozen registry.
type CompiledQuery struct {
	base    mask.Mask
	include []mask.Mask
	exclude []mask.Mask
	width   int
}

// Width is the registry size the query was compiled against
func (q CompiledQuery) Width() int {
	return q.width
}

// Matches tests an entity's mask. It panics with MaskWidthError if the
// entity was created against a different registry size.
func (q CompiledQuery) Matches(e Entity) bool {
	if e.Width() != q.width {
		panic(MaskWidthError{Entity: e.ID(), EntityBits: e.Width(), QueryBits: q.width})
	}
	return q.MatchesMask(e.Mask())
}

func (q CompiledQuery) MatchesMask(m mask.Mask) bool {
	if !m.ContainsAll(q.base) {
		return false
	}
	for _, group := range q.include {
		if !m.ContainsAny(group) {
			return false
		}
	}
	for _, group := range q.exclude {
		if !m.ContainsNone(group) {
			return false
		}
	}
	return true
}
