package stockroom

import (
	"github.com/TheBitDrifter/mask"
)

var _ Entity = &entity{}

// EntityID values start at 1; zero never names a live entity.
type EntityID uint32

type entity struct {
	w     *world
	id    EntityID
	mask  mask.Mask
	width int
	pos   int
	alive bool
}

func (e *entity) ID() EntityID {
	return e.id
}

func (e *entity) Valid() bool {
	return e.alive
}

// Mask returns the set of component type bits the entity currently owns
func (e *entity) Mask() mask.Mask {
	return e.mask
}

// Width is the number of registered component types when the entity was created
func (e *entity) Width() int {
	return e.width
}

func (e *entity) AddComponent(c Component) error {
	return e.w.AddComponent(e, c, nil)
}

func (e *entity) AddComponentWithValue(c Component, value any) error {
	return e.w.AddComponent(e, c, value)
}

func (e *entity) RemoveComponent(c Component) error {
	return e.w.RemoveComponent(e, c)
}

func (e *entity) HasComponent(c Component) bool {
	id, err := e.w.reg.idOf(c)
	if err != nil {
		return false
	}
	return e.mask.ContainsAll(bitMask(id))
}

// Components lists owned component types in id order
func (e *entity) Components() []Component {
	comps := make([]Component, 0)
	for id, c := range e.w.reg.types {
		if e.mask.ContainsAll(bitMask(ComponentTypeID(id))) {
			comps = append(comps, c)
		}
	}
	return comps
}

func bitMask(id ComponentTypeID) mask.Mask {
	var m mask.Mask
	m.Mark(uint32(id))
	return m
}
