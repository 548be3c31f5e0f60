/*
Package stockroom provides a small, frame-stepped Entity-Component-System runtime.

Components are registered explicitly, entities carry a bit mask of the component
types they own, and systems declare a query that is compiled once into masks and
matched against every entity each frame.

Core Concepts:

  - Entity: An identifier plus a mask of owned component types.
  - Component: A plain data value attached to at most one entity per type.
  - Query: Base (AND), include (OR per group) and exclude (NONE per group) sets.
  - System: A query plus any of the Start, Update and Draw hooks.

Basic Usage:

	position := stockroom.FactoryNewComponent[Position]()
	velocity := stockroom.FactoryNewComponent[Velocity]()

	world := stockroom.Factory.NewWorld()
	world.RegisterComponentTypes(position, velocity)

	e := world.CreateEntity()
	position.Add(e, Position{X: 1, Y: 2})
	velocity.Add(e, Velocity{X: 10, Y: 10})

	world.RegisterSystem(&Movement{})
	world.Start()
	world.Update(1.0)

Inside a hook, components are fetched through the handle:

	func (m *Movement) Update(r stockroom.QueryResult, dt float64) {
		pos := position.GetFromResult(r)
		vel := velocity.GetFromResult(r)
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
	}

Systems run in registration order and visit entities in creation order. Changes made
by one hook are visible to every hook that runs after it in the same pass.

Component storage is slot based: each component lives in a Pool slot for its whole
life, so pointers handed out by lookups remain valid until the component is removed.
*/
package stockroom
