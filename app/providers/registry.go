package providers

// Registry maps provider names to the adapters implemented for each
// category. It is built explicitly at startup and passed around, so
// test doubles can coexist with the real wiring.
type Registry struct {
	routes     map[string]RouteAdapter
	stays      map[string]StayAdapter
	activities map[string]ActivityAdapter
}

func NewRegistry() *Registry {
	return &Registry{
		routes:     make(map[string]RouteAdapter),
		stays:      make(map[string]StayAdapter),
		activities: make(map[string]ActivityAdapter),
	}
}

func (r *Registry) RegisterRoutes(adapter RouteAdapter) {
	r.routes[adapter.Name()] = adapter
}

func (r *Registry) RegisterStays(adapter StayAdapter) {
	r.stays[adapter.Name()] = adapter
}

func (r *Registry) RegisterActivities(adapter ActivityAdapter) {
	r.activities[adapter.Name()] = adapter
}

// RouteAdapters returns the adapters registered for the given provider
// names, preserving the configured order. Names without a route adapter
// are skipped without error; an empty result is valid.
func (r *Registry) RouteAdapters(names []string) []RouteAdapter {
	adapters := make([]RouteAdapter, 0, len(names))
	for _, name := range names {
		if adapter, ok := r.routes[name]; ok {
			adapters = append(adapters, adapter)
		}
	}
	return adapters
}

func (r *Registry) StayAdapters(names []string) []StayAdapter {
	adapters := make([]StayAdapter, 0, len(names))
	for _, name := range names {
		if adapter, ok := r.stays[name]; ok {
			adapters = append(adapters, adapter)
		}
	}
	return adapters
}

func (r *Registry) ActivityAdapters(names []string) []ActivityAdapter {
	adapters := make([]ActivityAdapter, 0, len(names))
	for _, name := range names {
		if adapter, ok := r.activities[name]; ok {
			adapters = append(adapters, adapter)
		}
	}
	return adapters
}

// Categories reports which categories a provider has adapters for.
func (r *Registry) Categories(name string) []string {
	categories := make([]string, 0, 3)
	if _, ok := r.routes[name]; ok {
		categories = append(categories, "routes")
	}
	if _, ok := r.stays[name]; ok {
		categories = append(categories, "stays")
	}
	if _, ok := r.activities[name]; ok {
		categories = append(categories, "activities")
	}
	return categories
}
