package stockroom

import (
	"fmt"
	"log/slog"

	"github.com/TheBitDrifter/mask"
)

var _ World = &world{}

type world struct {
	reg      *registry
	entities []*entity
	byID     map[EntityID]*entity
	nextID   EntityID
	systems  []*systemEntry
	started  bool
	logger   *slog.Logger

	// locks counts in-flight dispatches and cursors. Removals made while
	// locked leave nil holes that are compacted once the count drops to zero.
	locks int
	dirty bool
}

func newWorld() World {
	return &world{
		reg:    newRegistry(Config.poolCapacity),
		byID:   make(map[EntityID]*entity),
		nextID: 1,
		logger: Config.logger,
	}
}

func (w *world) RegisterComponentType(c Component) (ComponentTypeID, error) {
	return w.reg.register(c)
}

// RegisterComponentTypes registers in order and stops at the first failure
func (w *world) RegisterComponentTypes(components ...Component) error {
	for _, c := range components {
		if _, err := w.reg.register(c); err != nil {
			return err
		}
	}
	return nil
}

func (w *world) Freeze() {
	w.reg.freeze()
}

func (w *world) Frozen() bool {
	return w.reg.frozen
}

func (w *world) ComponentTypeCount() int {
	return w.reg.count()
}

func (w *world) ComponentTypeID(c Component) (ComponentTypeID, error) {
	return w.reg.idOf(c)
}

func (w *world) ComponentType(id ComponentTypeID) (Component, error) {
	return w.reg.typeOf(id)
}

func (w *world) CreateEntity() Entity {
	w.reg.freeze()
	en := &entity{
		w:     w,
		id:    w.nextID,
		width: w.reg.count(),
		pos:   len(w.entities),
		alive: true,
	}
	w.nextID++
	w.entities = append(w.entities, en)
	w.byID[en.id] = en
	return en
}

// NewEntities creates n entities, each holding a zero value of every given
// component.
func (w *world) NewEntities(n int, components ...Component) ([]Entity, error) {
	seen := make(map[Component]struct{}, len(components))
	for _, c := range components {
		if _, err := w.reg.idOf(c); err != nil {
			return nil, err
		}
		if _, dup := seen[c]; dup {
			return nil, ComponentExistsError{Component: c}
		}
		seen[c] = struct{}{}
	}

	entities := make([]Entity, 0, max(n, 0))
	for range n {
		en := w.CreateEntity()
		entities = append(entities, en)
		for _, c := range components {
			if err := w.AddComponent(en, c, nil); err != nil {
				// Every entity in the batch is live, so the rollback cannot fail.
				_ = w.DestroyEntities(entities...)
				return nil, fmt.Errorf("failed to add component to new entity %d: %w", en.ID(), err)
			}
		}
	}
	return entities, nil
}

// DestroyEntity removes the entity from every component store, whatever its
// mask says, and drops it from the live set.
func (w *world) DestroyEntity(e Entity) error {
	en, err := w.live(e)
	if err != nil {
		return err
	}
	for _, s := range w.reg.stores {
		s.remove(en.id)
	}
	en.mask = mask.Mask{}
	en.alive = false
	delete(w.byID, en.id)

	w.entities[en.pos] = nil
	w.dirty = true
	if w.locks == 0 {
		w.compact()
	}
	if w.logger != nil {
		w.logger.Debug("destroyed entity", slog.Uint64("entity", uint64(en.id)))
	}
	return nil
}

// DestroyEntities compacts once for the whole batch.
func (w *world) DestroyEntities(entities ...Entity) error {
	w.lock()
	defer w.unlock()
	for _, e := range entities {
		if e == nil {
			continue
		}
		if err := w.DestroyEntity(e); err != nil {
			return fmt.Errorf("failed to destroy entities: %w", err)
		}
	}
	return nil
}

func (w *world) Entity(id EntityID) (Entity, bool) {
	en, ok := w.byID[id]
	if !ok {
		return nil, false
	}
	return en, true
}

// Entities returns the live entities in creation order
func (w *world) Entities() []Entity {
	out := make([]Entity, 0, len(w.byID))
	for _, en := range w.entities {
		if en != nil {
			out = append(out, en)
		}
	}
	return out
}

func (w *world) EntityCount() int {
	return len(w.byID)
}

func (w *world) AddComponent(e Entity, c Component, value any) error {
	en, err := w.live(e)
	if err != nil {
		return err
	}
	s, id, err := w.reg.storeFor(c)
	if err != nil {
		return err
	}
	if err := s.add(en.id, value); err != nil {
		return err
	}
	en.mask.Mark(uint32(id))
	return nil
}

func (w *world) RemoveComponent(e Entity, c Component) error {
	en, err := w.live(e)
	if err != nil {
		return err
	}
	s, id, err := w.reg.storeFor(c)
	if err != nil {
		return err
	}
	s.remove(en.id)
	en.mask.Unmark(uint32(id))
	return nil
}

// FindComponent returns a *T for the component's type, or an untyped nil if
// the entity holds none.
func (w *world) FindComponent(e Entity, c Component) (any, error) {
	en, err := w.live(e)
	if err != nil {
		return nil, err
	}
	s, _, err := w.reg.storeFor(c)
	if err != nil {
		return nil, err
	}
	v, ok := s.getAny(en.id)
	if !ok {
		return nil, nil
	}
	return v, nil
}

// RegisterSystem appends to the dispatch order. Systems registered after
// Start are compiled immediately.
func (w *world) RegisterSystem(s System) error {
	if s == nil {
		return InvalidSystemError{}
	}
	entry := &systemEntry{sys: s}
	if w.started {
		if err := w.compileSystem(entry); err != nil {
			return err
		}
	}
	w.systems = append(w.systems, entry)
	return nil
}

// RemoveSystem drops the first registration of s. Systems are compared
// with ==, so register pointers.
func (w *world) RemoveSystem(s System) bool {
	for i, entry := range w.systems {
		if entry == nil || entry.sys != s {
			continue
		}
		w.systems[i] = nil
		w.dirty = true
		if w.locks == 0 {
			w.compact()
		}
		return true
	}
	return false
}

func (w *world) Compile(q Query) (CompiledQuery, error) {
	w.reg.freeze()
	return q.compile(w.reg)
}

// Start compiles every system's query, then runs the start hooks.
func (w *world) Start() error {
	if w.started {
		return WorldStartedError{}
	}
	if err := w.compileSystems(); err != nil {
		return err
	}
	w.started = true
	if w.logger != nil {
		w.logger.Debug("world started",
			slog.Int("systems", len(w.systems)),
			slog.Int("entities", len(w.byID)),
			slog.Int("types", w.reg.count()),
		)
	}
	return w.dispatch(func(s System) (func(QueryResult), bool) {
		st, ok := s.(Startable)
		if !ok {
			return nil, false
		}
		return st.Start, true
	})
}

func (w *world) Update(dt float64) error {
	return w.dispatch(func(s System) (func(QueryResult), bool) {
		u, ok := s.(Updateable)
		if !ok {
			return nil, false
		}
		return func(r QueryResult) { u.Update(r, dt) }, true
	})
}

func (w *world) Draw() error {
	return w.dispatch(func(s System) (func(QueryResult), bool) {
		d, ok := s.(Drawable)
		if !ok {
			return nil, false
		}
		return d.Draw, true
	})
}

// dispatch runs one pass: systems in registration order, matching entities
// in creation order. Matches are evaluated as the cursor reaches each
// entity, so changes made by earlier hooks are seen by later ones.
func (w *world) dispatch(bind func(System) (func(QueryResult), bool)) error {
	if err := w.compileSystems(); err != nil {
		return err
	}
	w.lock()
	defer w.unlock()

	for i := 0; i < len(w.systems); i++ {
		entry := w.systems[i]
		if entry == nil {
			continue
		}
		hook, ok := bind(entry.sys)
		if !ok {
			continue
		}
		if err := w.compileSystem(entry); err != nil {
			return err
		}
		cursor := newCursor(entry.query, w)
		cursor.system = entry.sys
		for cursor.Next() {
			hook(cursor.Result())
			if w.systems[i] != entry {
				cursor.Reset()
				break
			}
		}
	}
	return nil
}

func (w *world) compileSystems() error {
	for _, entry := range w.systems {
		if entry == nil {
			continue
		}
		if err := w.compileSystem(entry); err != nil {
			return err
		}
	}
	return nil
}

func (w *world) compileSystem(entry *systemEntry) error {
	if entry.compiled {
		return nil
	}
	w.reg.freeze()
	compiled, err := entry.sys.Query().compile(w.reg)
	if err != nil {
		return fmt.Errorf("failed to compile query for system %T: %w", entry.sys, err)
	}
	entry.query = compiled
	entry.compiled = true
	if w.logger != nil {
		w.logger.Debug("compiled system query", slog.String("system", fmt.Sprintf("%T", entry.sys)))
	}
	return nil
}

func (w *world) live(e Entity) (*entity, error) {
	if e == nil {
		return nil, EntityNotFoundError{}
	}
	en, ok := e.(*entity)
	if ok && en == nil {
		return nil, EntityNotFoundError{}
	}
	if !ok || en.w != w || !en.alive {
		return nil, EntityNotFoundError{ID: e.ID()}
	}
	return en, nil
}

func (w *world) lock() {
	w.locks++
}

func (w *world) unlock() {
	w.locks--
	if w.locks == 0 && w.dirty {
		w.compact()
	}
}

// compact closes the holes left by destroyed entities and removed systems
// while keeping relative order.
func (w *world) compact() {
	live := w.entities[:0]
	for _, en := range w.entities {
		if en == nil {
			continue
		}
		en.pos = len(live)
		live = append(live, en)
	}
	clear(w.entities[len(live):])
	w.entities = live

	systems := w.systems[:0]
	for _, entry := range w.systems {
		if entry != nil {
			systems = append(systems, entry)
		}
	}
	clear(w.systems[len(systems):])
	w.systems = systems
	w.dirty = false
}
