package catalog

// Definition describes one catalog the addon exposes. A definition with
// secondary languages is composite: its pages merge the primary
// language listing with classified items from each secondary language
// in priority order.
type Definition struct {
	ID   string
	Name string
	Kind string // tmdb.KindMovie or tmdb.KindSeries

	Language  string   // primary original language
	Territory string   // territory for the classifier's release signal
	MinVotes  int      // optional discover vote floor
	Secondary []string // secondary languages, fixed priority order
}

// Composite reports whether pages are assembled from multiple source
// language variants.
func (d Definition) Composite() bool {
	return len(d.Secondary) > 0
}

// LanguageScoped reports whether results are constrained to a language
// predicate; search results in such a catalog may be classified too.
func (d Definition) LanguageScoped() bool {
	return d.Language != ""
}

// Registry holds the catalog definitions the addon serves, preserving
// registration order for the manifest.
type Registry struct {
	defs  map[string]Definition
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds a definition, replacing any previous one with the same
// kind and id.
func (r *Registry) Register(def Definition) {
	key := def.Kind + "/" + def.ID
	if _, exists := r.defs[key]; !exists {
		r.order = append(r.order, key)
	}
	r.defs[key] = def
}

// Get retrieves a definition by kind and catalog id.
func (r *Registry) Get(kind, id string) (Definition, bool) {
	def, ok := r.defs[kind+"/"+id]
	return def, ok
}

// List returns all definitions in registration order.
func (r *Registry) List() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.defs[key])
	}
	return out
}
