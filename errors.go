package stockroom

import "fmt"

type RegistryFrozenError struct {
	Component Component
}

func (e RegistryFrozenError) Error() string {
	return fmt.Sprintf("component registry is frozen, cannot register: %T", e.Component)
}

type ComponentRegisteredError struct {
	Component Component
	ID        ComponentTypeID
}

func (e ComponentRegisteredError) Error() string {
	return fmt.Sprintf("component already registered with id %d: %T", e.ID, e.Component)
}

type RegistryCapacityError struct {
	Max int
}

func (e RegistryCapacityError) Error() string {
	return fmt.Sprintf("component registry at maximum capacity (%d)", e.Max)
}

type InvalidComponentError struct{}

func (e InvalidComponentError) Error() string {
	return "component handle is nil"
}

type InvalidSystemError struct{}

func (e InvalidSystemError) Error() string {
	return "system is nil"
}

type WorldStartedError struct{}

func (e WorldStartedError) Error() string {
	return "world has already been started"
}

type ComponentNotRegisteredError struct {
	Component Component
}

func (e ComponentNotRegisteredError) Error() string {
	return fmt.Sprintf("component is not registered: %T", e.Component)
}

type ComponentTypeIDError struct {
	ID    ComponentTypeID
	Count int
}

func (e ComponentTypeIDError) Error() string {
	return fmt.Sprintf("component type id %d out of range [0, %d)", e.ID, e.Count)
}

type EntityNotFoundError struct {
	ID EntityID
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %d is not alive in this world", e.ID)
}

type ComponentExistsError struct {
	Component Component
	Entity    EntityID
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already exists on entity %d: %T", e.Entity, e.Component)
}

type ComponentValueError struct {
	Component Component
	Value     any
}

func (e ComponentValueError) Error() string {
	return fmt.Sprintf("value of type %T does not fit component %T", e.Value, e.Component)
}

// SlotRangeError reports a handle beyond the pool's capacity.
type SlotRangeError struct {
	Handle   SlotHandle
	Capacity int
}

func (e SlotRangeError) Error() string {
	return fmt.Sprintf("slot %d out of range (capacity %d)", e.Handle, e.Capacity)
}

// SlotReleasedError reports a read of a slot that is not occupied.
type SlotReleasedError struct {
	Handle SlotHandle
}

func (e SlotReleasedError) Error() string {
	return fmt.Sprintf("slot %d has been released", e.Handle)
}

type DoubleReleaseError struct {
	Handle SlotHandle
}

func (e DoubleReleaseError) Error() string {
	return fmt.Sprintf("slot %d released twice", e.Handle)
}

// MaskWidthError is raised as a panic value, never returned.
type MaskWidthError struct {
	Entity     EntityID
	EntityBits int
	QueryBits  int
}

func (e MaskWidthError) Error() string {
	return fmt.Sprintf("entity %d mask width %d does not match query width %d", e.Entity, e.EntityBits, e.QueryBits)
}
