package testdata

// Pair is a generic type with two type parameters
//
//faststruct:getters
//faststruct:setters
//faststruct:builder
type Pair[K comparable, V any] struct {
	key    K
	values []V
	index  map[K]V
}
