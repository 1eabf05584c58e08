package templates

import "maps"

// Params is the substitution context for one render.
type Params map[string]any

// Merge layers mappings into a new Params; keys in later layers win.
// None of the inputs is modified.
func Merge(layers ...map[string]any) Params {
	size := 0
	for _, l := range layers {
		size += len(l)
	}
	out := make(Params, size)
	for _, l := range layers {
		maps.Copy(out, l)
	}
	return out
}

// With returns a copy of p with key set to value.
func (p Params) With(key string, value any) Params {
	return Merge(p, map[string]any{key: value})
}
