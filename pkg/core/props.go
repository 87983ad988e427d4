package core

import (
	"maps"
	"slices"
)

// Props is the attribute bag handed to components and primitive markup.
type Props map[string]any

// PropsOf reports whether v is mapping-shaped and returns it as Props.
// Both Props and plain map[string]any are accepted; nil maps are not.
func PropsOf(v any) (Props, bool) {
	switch typed := v.(type) {
	case Props:
		return typed, typed != nil
	case map[string]any:
		return Props(typed), typed != nil
	}
	return nil, false
}

// Clone returns a shallow copy. A nil receiver yields an empty, non-nil map.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	maps.Copy(out, p)
	return out
}

// Merge layers the given props left to right; later layers win.
func Merge(layers ...Props) Props {
	size := 0
	for _, layer := range layers {
		size += len(layer)
	}
	out := make(Props, size)
	for _, layer := range layers {
		maps.Copy(out, layer)
	}
	return out
}

// Without returns a copy with key removed, and the removed value.
func (p Props) Without(key string) (Props, any) {
	out := p.Clone()
	value := out[key]
	delete(out, key)
	return out, value
}

// Keys returns the keys in sorted order.
func (p Props) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}

// Has reports whether key is present.
func (p Props) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Text returns the value at key if it is a string.
func (p Props) Text(key string) string {
	s, _ := p[key].(string)
	return s
}
