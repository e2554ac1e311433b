package services

// Layer is one resolver in an ordered override chain. It reports ok=false
// when it has no answer for the key, letting the next layer try.
type Layer[K, V any] func(K) (V, bool)

// ResolveLayered walks the layers in order and returns the first defined
// result. Higher-precedence overrides go earlier in the list, so adding a new
// override layer never touches the consumers of the resolved value.
func ResolveLayered[K, V any](key K, layers ...Layer[K, V]) (V, bool) {
	for _, layer := range layers {
		if v, ok := layer(key); ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}
