package stockroom

// QueryResult binds one matching entity to the world and system being
// dispatched. It is only meaningful for the duration of the hook call.
type QueryResult struct {
	entity Entity
	world  World
	system System
}

func (r QueryResult) Entity() Entity {
	return r.entity
}

func (r QueryResult) World() World {
	return r.world
}

func (r QueryResult) System() System {
	return r.system
}

type systemEntry struct {
	sys      System
	query    CompiledQuery
	compiled bool
}
