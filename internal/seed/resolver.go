package seed

// Resolver maps entity names to the ids assigned while a load is running.
// It never touches the store and lives only as long as one run.
type Resolver struct {
	ids map[string]uint
}

func NewResolver() *Resolver {
	return &Resolver{ids: make(map[string]uint)}
}

// Register records the id for name. A later registration of the same name
// replaces the earlier one.
func (r *Resolver) Register(name string, id uint) {
	r.ids[name] = id
}

func (r *Resolver) Resolve(name string) (uint, bool) {
	id, ok := r.ids[name]
	return id, ok
}

func (r *Resolver) Len() int {
	return len(r.ids)
}
