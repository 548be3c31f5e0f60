package stockroom

import "github.com/TheBitDrifter/mask"

// ComponentTypeID is the bit a component type occupies in entity and query
// masks. IDs are dense in [0, N) and assigned in registration order.
type ComponentTypeID uint32

// MaxComponentTypes is the width of mask.Mask, which depends on the mask
// build tag (64 bits by default).
const MaxComponentTypes = int(mask.MaxBits)

type registry struct {
	types       []Component
	stores      []componentStore
	ids         map[Component]ComponentTypeID
	frozen      bool
	maxCapacity int
	poolCap     int
}

func newRegistry(poolCap int) *registry {
	return &registry{
		ids:         make(map[Component]ComponentTypeID),
		maxCapacity: MaxComponentTypes,
		poolCap:     poolCap,
	}
}

func (r *registry) register(c Component) (ComponentTypeID, error) {
	if c == nil {
		return 0, InvalidComponentError{}
	}
	if r.frozen {
		return 0, RegistryFrozenError{Component: c}
	}
	if id, found := r.ids[c]; found {
		return 0, ComponentRegisteredError{Component: c, ID: id}
	}
	if len(r.types) >= r.maxCapacity {
		return 0, RegistryCapacityError{Max: r.maxCapacity}
	}

	id := ComponentTypeID(len(r.types))
	r.ids[c] = id
	r.types = append(r.types, c)
	r.stores = append(r.stores, c.newStore(id, r.poolCap))
	return id, nil
}

func (r *registry) freeze() {
	r.frozen = true
}

func (r *registry) count() int {
	return len(r.types)
}

func (r *registry) idOf(c Component) (ComponentTypeID, error) {
	if c == nil {
		return 0, InvalidComponentError{}
	}
	id, found := r.ids[c]
	if !found {
		return 0, ComponentNotRegisteredError{Component: c}
	}
	return id, nil
}

func (r *registry) typeOf(id ComponentTypeID) (Component, error) {
	if int(id) >= len(r.types) {
		return nil, ComponentTypeIDError{ID: id, Count: len(r.types)}
	}
	return r.types[id], nil
}

func (r *registry) storeFor(c Component) (componentStore, ComponentTypeID, error) {
	id, err := r.idOf(c)
	if err != nil {
		return nil, 0, err
	}
	return r.stores[id], id, nil
}
