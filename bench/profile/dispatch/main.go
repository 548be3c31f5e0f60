// Profiling:
// go build ./profile/dispatch
// go tool pprof -http=":8000" -nodefraction=0.001 ./dispatch mem.pprof

package main

import (
	"github.com/TheBitDrifter/stockroom"
	"github.com/pkg/profile"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

type adder struct {
	c1 stockroom.AccessibleComponent[comp1]
	c2 stockroom.AccessibleComponent[comp2]
}

func (a *adder) Query() stockroom.Query {
	return stockroom.All(a.c1, a.c2)
}

func (a *adder) Update(r stockroom.QueryResult, _ float64) {
	c1 := a.c1.GetFromResult(r)
	c2 := a.c2.GetFromResult(r)
	c1.V += c2.V
	c1.W += c2.W
}

func main() {
	rounds := 20
	frames := 200
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	if err := run(rounds, frames, entities); err != nil {
		panic(err)
	}
	p.Stop()
}

func run(rounds, frames, numEntities int) error {
	for range rounds {
		sys := &adder{
			c1: stockroom.FactoryNewComponent[comp1](),
			c2: stockroom.FactoryNewComponent[comp2](),
		}
		w := stockroom.Factory.NewWorld()
		if err := w.RegisterComponentTypes(sys.c1, sys.c2); err != nil {
			return err
		}
		if err := w.RegisterSystem(sys); err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}

		for range frames {
			created, err := w.NewEntities(numEntities, sys.c1, sys.c2)
			if err != nil {
				return err
			}
			if err := w.Update(1); err != nil {
				return err
			}
			if err := w.DestroyEntities(created...); err != nil {
				return err
			}
		}
	}
	return nil
}
