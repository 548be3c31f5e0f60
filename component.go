package stockroom

import (
	"github.com/TheBitDrifter/table"
)

// Component identifies a component type. Handles are built by
// FactoryNewComponent and registered with a World before use in
// entities or queries.
type Component interface {
	table.ElementType
	newStore(id ComponentTypeID, capacity int) componentStore
}
