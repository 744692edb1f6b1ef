package route

// A Namespace is a named, ordered collection of handler functions
// and the convention members configuring them.
//
// A Namespace is read, never modified, by resolution.
type Namespace struct {
	name    string
	names   []string
	members map[string]any
}

// NewNamespace constructs an empty Namespace.
func NewNamespace(name string) *Namespace {
	return &Namespace{name: name, members: make(map[string]any)}
}

// Add sets the member name to value.
// Re-adding a name replaces its value and keeps its original position.
func (ns *Namespace) Add(name string, value any) *Namespace {
	if _, ok := ns.members[name]; !ok {
		ns.names = append(ns.names, name)
	}

	ns.members[name] = value
	return ns
}

// Name identifies the Namespace in errors and logs.
func (ns *Namespace) Name() string { return ns.name }

// Member retrieves the value of the member name.
func (ns *Namespace) Member(name string) (any, bool) {
	v, ok := ns.members[name]
	return v, ok
}

// Names lists the members of ns in the order they were added.
func (ns *Namespace) Names() []string {
	names := make([]string, len(ns.names))
	copy(names, ns.names)
	return names
}
