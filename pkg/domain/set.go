package domain

// OrderedSet keeps unique items in first-insertion order.
type OrderedSet[T comparable] struct {
	elements map[T]struct{} // For O(1) lookup
	order    []T            // For maintaining order
}

func NewOrderedSet[T comparable](elements ...T) *OrderedSet[T] {
	set := &OrderedSet[T]{
		elements: make(map[T]struct{}, len(elements)),
		order:    make([]T, 0, len(elements)),
	}
	set.Add(elements...)
	return set
}

// Add appends items not already in the set.
func (s *OrderedSet[T]) Add(items ...T) {
	for _, item := range items {
		s.Insert(item)
	}
}

// Insert adds item if absent and reports whether it was added.
func (s *OrderedSet[T]) Insert(item T) bool {
	if _, exists := s.elements[item]; exists {
		return false
	}
	s.elements[item] = struct{}{}
	s.order = append(s.order, item)
	return true
}
