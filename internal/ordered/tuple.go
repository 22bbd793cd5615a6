package ordered

// Tuple is used for storing values in Map.
type Tuple[K comparable, V any] struct {
	Key   K
	Value V
}
