package stockroom

import (
	"iter"

	"github.com/TheBitDrifter/mask"
)

type World interface {
	RegisterComponentType(Component) (ComponentTypeID, error)
	RegisterComponentTypes(...Component) error
	Freeze()
	Frozen() bool
	ComponentTypeCount() int
	ComponentTypeID(Component) (ComponentTypeID, error)
	ComponentType(ComponentTypeID) (Component, error)

	CreateEntity() Entity
	NewEntities(int, ...Component) ([]Entity, error)
	DestroyEntity(Entity) error
	DestroyEntities(...Entity) error
	Entity(EntityID) (Entity, bool)
	Entities() []Entity
	EntityCount() int

	AddComponent(Entity, Component, any) error
	RemoveComponent(Entity, Component) error
	FindComponent(Entity, Component) (any, error)

	RegisterSystem(System) error
	RemoveSystem(System) bool
	Compile(Query) (CompiledQuery, error)

	Start() error
	Update(dt float64) error
	Draw() error
}

type Entity interface {
	ID() EntityID
	Valid() bool
	Mask() mask.Mask
	Width() int
	AddComponent(Component) error
	AddComponentWithValue(Component, any) error
	RemoveComponent(Component) error
	HasComponent(Component) bool
	Components() []Component
}

type System interface {
	Query() Query
}

type Startable interface {
	Start(QueryResult)
}

type Updateable interface {
	Update(QueryResult, float64)
}

type Drawable interface {
	Draw(QueryResult)
}

type iCursor interface {
	Entities() iter.Seq2[int, Entity]
	Next() bool
}
