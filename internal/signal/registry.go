package signal

import (
	"fmt"
	"sort"
)

// Factory builds a source from parameters.
type Factory func(p Params) (Source, error)

type Registry struct {
	sources map[string]Factory
}

func NewRegistry() *Registry {
	r := &Registry{sources: make(map[string]Factory)}

	r.sources["circle"] = func(p Params) (Source, error) { return NewCircle(p) }
	r.sources["teleport"] = func(p Params) (Source, error) { return NewTeleport(p) }
	r.sources["drag"] = func(p Params) (Source, error) { return NewDrag(p) }
	r.sources["spring"] = func(p Params) (Source, error) { return NewSpring(p) }
	r.sources["replay"] = func(p Params) (Source, error) {
		if len(p.Events) == 0 {
			return nil, fmt.Errorf("%w: replay needs a recorded event log", ErrBadParams)
		}
		return NewReplay(p.Dim, p.Events), nil
	}

	return r
}

// Register adds or replaces a named source.
func (r *Registry) Register(name string, f Factory) {
	r.sources[name] = f
}

func (r *Registry) Get(name string, p Params) (Source, error) {
	fn, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}
	return fn(p)
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
