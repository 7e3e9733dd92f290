// Package render holds the closed set of rules used to turn log arguments
// that have no useful default text form into printable text.
package render

// Unrenderable is substituted for a value whose renderer panicked.
const Unrenderable = "<unrenderable>"

// Renderer converts one category of values to text.
type Renderer interface {
	// Render returns the text for v and true if v belongs to the renderer's
	// category. It returns false for values it does not handle.
	// Implementations must not dereference raw addresses or mutate v.
	Render(v any) (string, bool)
}

// entry pairs a renderer with the category name reported by List.
type entry struct {
	name     string
	renderer Renderer
}

// Registry is an ordered, immutable list of renderers. The first renderer
// that claims a value wins. A Registry is safe for concurrent use.
type Registry struct {
	entries []entry
}

// builtin is the registry used by Default. Pointer rules come first so an
// address is never passed to a rule that might call methods on it.
var builtin = &Registry{
	entries: []entry{
		{name: "pointer", renderer: pointerRenderer{}},
		{name: "error-code", renderer: errorCodeRenderer{}},
		{name: "string-view", renderer: stringViewRenderer{}},
	},
}

// Default returns the registry with the built-in renderers.
func Default() *Registry {
	return builtin
}

// Render passes v to each renderer in order and returns the first result.
// If a renderer panics, the panic is recovered and Unrenderable is returned
// as the value's text. ok is false when no renderer claims v.
func (r *Registry) Render(v any) (text string, ok bool) {
	if r == nil || v == nil {
		return "", false
	}
	for _, e := range r.entries {
		if text, ok = safeRender(e.renderer, v); ok {
			return text, true
		}
	}
	return "", false
}

// List returns the category names of the registered renderers in the order
// they are consulted.
func (r *Registry) List() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.name)
	}
	return names
}

// Without returns a copy of r that skips the named categories. Values they
// would have claimed fall through to the remaining renderers, then to fmt.
func (r *Registry) Without(names ...string) *Registry {
	if r == nil {
		return nil
	}
	c := &Registry{entries: make([]entry, 0, len(r.entries))}
outer:
	for _, e := range r.entries {
		for _, n := range names {
			if e.name == n {
				continue outer
			}
		}
		c.entries = append(c.entries, e)
	}
	return c
}

func safeRender(r Renderer, v any) (text string, ok bool) {
	defer func() {
		if recover() != nil {
			text, ok = Unrenderable, true
		}
	}()
	return r.Render(v)
}
