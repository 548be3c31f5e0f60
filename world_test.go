package stockroom

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

type movement struct {
	pos AccessibleComponent[Position]
	vel AccessibleComponent[Velocity]
}

func (m *movement) Query() Query {
	return All(m.pos, m.vel)
}

func (m *movement) Update(r QueryResult, dt float64) {
	pos := m.pos.GetFromResult(r)
	vel := m.vel.GetFromResult(r)
	pos.X += vel.X * dt
	pos.Y += vel.Y * dt
}

// recorder logs every hook invocation as "<name>:<hook>:E<id>".
type recorder struct {
	name  string
	query Query
	log   *[]string
}

func (r *recorder) Query() Query {
	return r.query
}

func (r *recorder) record(hook string, res QueryResult) {
	*r.log = append(*r.log, fmt.Sprintf("%s:%s:E%d", r.name, hook, res.Entity().ID()))
}

func (r *recorder) Start(res QueryResult) { r.record("start", res) }

func (r *recorder) Update(res QueryResult, dt float64) { r.record("update", res) }

func (r *recorder) Draw(res QueryResult) { r.record("draw", res) }

type drawOnly struct {
	query Query
	calls int
}

func (d *drawOnly) Query() Query { return d.query }

func (d *drawOnly) Draw(QueryResult) { d.calls++ }

type hookSystem struct {
	query  Query
	update func(QueryResult, float64)
}

func (h *hookSystem) Query() Query { return h.query }

func (h *hookSystem) Update(r QueryResult, dt float64) { h.update(r, dt) }

func TestWorldIntegratesMovement(t *testing.T) {
	f := newFixture(t)
	e := f.world.CreateEntity()
	if err := f.pos.Add(e, Position{X: 1.0, Y: 2.0}); err != nil {
		t.Fatal(err)
	}
	if err := f.vel.Add(e, Velocity{X: 10.0, Y: 10.0}); err != nil {
		t.Fatal(err)
	}
	if err := f.world.RegisterSystem(&movement{pos: f.pos, vel: f.vel}); err != nil {
		t.Fatal(err)
	}

	if err := f.world.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	for range 2 {
		if err := f.world.Update(1.0); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
	}

	pos, _ := f.pos.Find(e)
	if pos.X != 21.0 || pos.Y != 22.0 {
		t.Errorf("Position = {%v, %v}, want {21, 22}", pos.X, pos.Y)
	}
}

func TestWorldDispatchOrder(t *testing.T) {
	f := newFixture(t)
	var log []string
	s1 := &recorder{name: "S1", query: All(f.pos), log: &log}
	s2 := &recorder{name: "S2", query: All(f.pos), log: &log}
	if err := f.world.RegisterSystem(s1); err != nil {
		t.Fatal(err)
	}
	if err := f.world.RegisterSystem(s2); err != nil {
		t.Fatal(err)
	}
	e1 := f.world.CreateEntity()
	e2 := f.world.CreateEntity()
	for _, e := range []Entity{e1, e2} {
		if err := e.AddComponent(f.pos); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		run  func() error
		hook string
	}{
		{"Start", f.world.Start, "start"},
		{"Update", func() error { return f.world.Update(0.016) }, "update"},
		{"Draw", f.world.Draw, "draw"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log = log[:0]
			if err := tt.run(); err != nil {
				t.Fatal(err)
			}
			want := []string{
				fmt.Sprintf("S1:%s:E%d", tt.hook, e1.ID()),
				fmt.Sprintf("S1:%s:E%d", tt.hook, e2.ID()),
				fmt.Sprintf("S2:%s:E%d", tt.hook, e1.ID()),
				fmt.Sprintf("S2:%s:E%d", tt.hook, e2.ID()),
			}
			if strings.Join(log, " ") != strings.Join(want, " ") {
				t.Errorf("hooks = %v, want %v", log, want)
			}
		})
	}
}

func TestWorldCapabilities(t *testing.T) {
	f := newFixture(t)
	if _, err := f.world.NewEntities(3, f.pos); err != nil {
		t.Fatal(err)
	}
	drawer := &drawOnly{query: All(f.pos)}
	var log []string
	starter := &recorder{name: "R", query: All(f.pos), log: &log}
	if err := f.world.RegisterSystem(drawer); err != nil {
		t.Fatal(err)
	}
	if err := f.world.RegisterSystem(starter); err != nil {
		t.Fatal(err)
	}

	if err := f.world.Start(); err != nil {
		t.Fatal(err)
	}
	if err := f.world.Update(1); err != nil {
		t.Fatal(err)
	}
	if drawer.calls != 0 {
		t.Errorf("draw-only system called %d times by Start/Update", drawer.calls)
	}
	if err := f.world.Draw(); err != nil {
		t.Fatal(err)
	}
	if drawer.calls != 3 {
		t.Errorf("Draw() called draw-only system %d times, want 3", drawer.calls)
	}

	starts := 0
	for _, entry := range log {
		if strings.Contains(entry, ":start:") {
			starts++
		}
	}
	if starts != 3 {
		t.Errorf("start hooks ran %d times, want 3", starts)
	}

	var started WorldStartedError
	if err := f.world.Start(); !errors.As(err, &started) {
		t.Errorf("second Start() error = %v, want WorldStartedError", err)
	}
}

func TestWorldMutationVisibleWithinPass(t *testing.T) {
	f := newFixture(t)
	entities, err := f.world.NewEntities(3, f.pos)
	if err != nil {
		t.Fatal(err)
	}

	granter := &hookSystem{
		query: All(f.pos).Exclude(f.health),
		update: func(r QueryResult, _ float64) {
			if err := f.health.Add(r.Entity(), Health{Current: 5, Max: 10}); err != nil {
				t.Errorf("Add() error = %v", err)
			}
		},
	}
	var healed []EntityID
	healer := &hookSystem{
		query: All(f.health),
		update: func(r QueryResult, _ float64) {
			h := f.health.GetFromResult(r)
			h.Current = h.Max
			healed = append(healed, r.Entity().ID())
		},
	}
	if err := f.world.RegisterSystem(granter); err != nil {
		t.Fatal(err)
	}
	if err := f.world.RegisterSystem(healer); err != nil {
		t.Fatal(err)
	}

	if err := f.world.Update(1); err != nil {
		t.Fatal(err)
	}
	if len(healed) != 3 {
		t.Fatalf("second system saw %d entities, want 3", len(healed))
	}
	for _, e := range entities {
		h, _ := f.health.Find(e)
		if h == nil || h.Current != 10 {
			t.Errorf("entity %d health = %v, want Current 10", e.ID(), h)
		}
	}
}

func TestWorldSpawnAndDestroyDuringUpdate(t *testing.T) {
	f := newFixture(t)
	entities, err := f.world.NewEntities(3, f.pos)
	if err != nil {
		t.Fatal(err)
	}

	var visited []EntityID
	spawned := false
	sys := &hookSystem{
		query: All(f.pos),
		update: func(r QueryResult, _ float64) {
			visited = append(visited, r.Entity().ID())
			if r.Entity().ID() != entities[0].ID() {
				return
			}
			if err := r.World().DestroyEntity(entities[1]); err != nil {
				t.Errorf("DestroyEntity() error = %v", err)
			}
			if !spawned {
				spawned = true
				e := r.World().CreateEntity()
				if err := f.pos.Add(e, Position{}); err != nil {
					t.Errorf("Add() error = %v", err)
				}
			}
		},
	}
	if err := f.world.RegisterSystem(sys); err != nil {
		t.Fatal(err)
	}
	if err := f.world.Update(1); err != nil {
		t.Fatal(err)
	}

	if len(visited) != 3 {
		t.Fatalf("visited %v, want first, third and spawned entity", visited)
	}
	if visited[0] != entities[0].ID() || visited[1] != entities[2].ID() {
		t.Errorf("visited %v out of creation order", visited)
	}
	if f.world.EntityCount() != 3 {
		t.Errorf("EntityCount() = %d, want 3", f.world.EntityCount())
	}
	if got := len(f.world.(*world).entities); got != 3 {
		t.Errorf("entity list not compacted: len = %d", got)
	}
}

func TestWorldRemoveSystem(t *testing.T) {
	f := newFixture(t)
	if _, err := f.world.NewEntities(3, f.pos); err != nil {
		t.Fatal(err)
	}

	var log []string
	keep := &recorder{name: "K", query: All(f.pos), log: &log}
	var quitter *hookSystem
	calls := 0
	quitter = &hookSystem{
		query: All(f.pos),
		update: func(r QueryResult, _ float64) {
			calls++
			r.World().RemoveSystem(quitter)
		},
	}
	for _, s := range []System{quitter, keep} {
		if err := f.world.RegisterSystem(s); err != nil {
			t.Fatal(err)
		}
	}

	if err := f.world.Update(1); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("removed system ran %d times, want 1", calls)
	}
	if len(log) != 3 {
		t.Errorf("remaining system ran %d times, want 3", len(log))
	}

	if f.world.RemoveSystem(quitter) {
		t.Errorf("RemoveSystem() of an unregistered system reported true")
	}
	if !f.world.RemoveSystem(keep) {
		t.Errorf("RemoveSystem() = false, want true")
	}
	log = log[:0]
	if err := f.world.Update(1); err != nil {
		t.Fatal(err)
	}
	if len(log) != 0 {
		t.Errorf("removed system still dispatched: %v", log)
	}
}

func TestWorldSystemRegistration(t *testing.T) {
	f := newFixture(t)
	unregistered := FactoryNewComponent[Unregistered]()

	if err := f.world.RegisterSystem(nil); !errors.As(err, &InvalidSystemError{}) {
		t.Errorf("RegisterSystem(nil) error = %v, want InvalidSystemError", err)
	}

	var log []string
	bad := &recorder{name: "B", query: All(unregistered), log: &log}
	if err := f.world.RegisterSystem(bad); err != nil {
		t.Fatalf("RegisterSystem() before Start error = %v", err)
	}
	var notRegistered ComponentNotRegisteredError
	if err := f.world.Start(); !errors.As(err, &notRegistered) {
		t.Fatalf("Start() error = %v, want ComponentNotRegisteredError", err)
	}
	f.world.RemoveSystem(bad)
	if err := f.world.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := f.world.RegisterSystem(&recorder{name: "C", query: All(unregistered), log: &log}); !errors.As(err, &notRegistered) {
		t.Errorf("RegisterSystem() after Start error = %v, want ComponentNotRegisteredError", err)
	}
}

func TestWorldUpdateBeforeStart(t *testing.T) {
	f := newFixture(t)
	if _, err := f.world.NewEntities(2, f.pos); err != nil {
		t.Fatal(err)
	}
	var log []string
	if err := f.world.RegisterSystem(&recorder{name: "R", query: All(f.pos), log: &log}); err != nil {
		t.Fatal(err)
	}
	if err := f.world.Update(1); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(log) != 2 {
		t.Errorf("hooks = %v, want 2 update calls", log)
	}
	for _, entry := range log {
		if strings.Contains(entry, ":start:") {
			t.Errorf("Update() ran a start hook: %s", entry)
		}
	}
}

func TestWorldResultMissingComponent(t *testing.T) {
	f := newFixture(t)
	e := f.world.CreateEntity()
	if err := e.AddComponent(f.pos); err != nil {
		t.Fatal(err)
	}

	var gotNil, gotOK bool
	sys := &hookSystem{
		query: All(f.pos),
		update: func(r QueryResult, _ float64) {
			gotNil = f.vel.GetFromResult(r) == nil
			gotOK, _ = f.vel.GetFromResultSafe(r)
			if r.System() == nil || r.World() != f.world {
				t.Errorf("result not bound to world and system")
			}
		},
	}
	if err := f.world.RegisterSystem(sys); err != nil {
		t.Fatal(err)
	}
	if err := f.world.Update(1); err != nil {
		t.Fatal(err)
	}
	if !gotNil || gotOK {
		t.Errorf("GetFromResult for absent component: nil = %v, ok = %v", gotNil, gotOK)
	}
}

func TestWorldLogging(t *testing.T) {
	var buf bytes.Buffer
	Config.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer Config.SetLogger(nil)

	f := newFixture(t)
	e := f.world.CreateEntity()
	if err := f.world.RegisterSystem(&movement{pos: f.pos, vel: f.vel}); err != nil {
		t.Fatal(err)
	}
	if err := f.world.Start(); err != nil {
		t.Fatal(err)
	}
	if err := f.world.DestroyEntity(e); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"compiled system query", "world started", "destroyed entity"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestWorldPoolCapacityConfig(t *testing.T) {
	Config.SetPoolCapacity(2)
	defer Config.SetPoolCapacity(10)

	f := newFixture(t)
	w := f.world.(*world)
	s := w.reg.stores[0].(*store[Position])
	if s.pool.Cap() != 2 {
		t.Errorf("pool capacity = %d, want 2", s.pool.Cap())
	}
}
