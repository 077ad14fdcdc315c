package grammar

import (
	"sort"
	"strings"
)

// Ordered is any type with a total order usable by SortedSet. Symbol, Item,
// and ItemSet itself all implement it.
type Ordered[T any] interface {
	Less(o T) bool
	Equal(o T) bool
}

// SortedSet is a canonical ordered set: elements are kept in ascending order
// at all times so that two sets with the same members always have the same
// internal representation, which in turn makes SortedSet safe to use as a
// map key (via String) and cheap to compare (via Equal/Less).
//
// Add locates the insertion point with a binary search and is O(log n) for
// the search plus O(n) for the slice shift; this is the contract spec.md
// §4.1 asks for and is fine for the "hundreds of productions" scale this
// system targets.
type SortedSet[T Ordered[T]] struct {
	items []T
}

// NewSortedSet returns an empty SortedSet.
func NewSortedSet[T Ordered[T]]() *SortedSet[T] {
	return &SortedSet[T]{}
}

// Singleton returns a SortedSet containing exactly x.
func Singleton[T Ordered[T]](x T) *SortedSet[T] {
	return &SortedSet[T]{items: []T{x}}
}

// Len returns the number of elements in the set.
func (s *SortedSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// search returns the index at which x is present, or at which it should be
// inserted to keep s ordered, along with whether x is already present.
func (s *SortedSet[T]) search(x T) (int, bool) {
	n := len(s.items)
	i := sort.Search(n, func(i int) bool {
		return !s.items[i].Less(x)
	})
	if i < n && s.items[i].Equal(x) {
		return i, true
	}
	return i, false
}

// Contains reports whether x is in the set.
func (s *SortedSet[T]) Contains(x T) bool {
	if s == nil {
		return false
	}
	_, found := s.search(x)
	return found
}

// Add inserts x into the set. It is a no-op if x is already present.
func (s *SortedSet[T]) Add(x T) {
	i, found := s.search(x)
	if found {
		return
	}
	var zero T
	s.items = append(s.items, zero)
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = x
}

// AddAll adds every element of other to s.
func (s *SortedSet[T]) AddAll(other *SortedSet[T]) {
	if other == nil {
		return
	}
	for _, x := range other.items {
		s.Add(x)
	}
}

// Minus returns a new SortedSet containing the elements of s that are not in
// other.
func (s *SortedSet[T]) Minus(other *SortedSet[T]) *SortedSet[T] {
	result := NewSortedSet[T]()
	for _, x := range s.items {
		if other == nil || !other.Contains(x) {
			result.Add(x)
		}
	}
	return result
}

// Iter returns the elements of s in ascending order. The caller must not
// mutate the returned slice.
func (s *SortedSet[T]) Iter() []T {
	if s == nil {
		return nil
	}
	return s.items
}

// Equal reports whether s and other contain exactly the same elements.
// Because both sides are kept in ascending order, this is a single
// element-wise pass from index 0.
func (s *SortedSet[T]) Equal(other *SortedSet[T]) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i := range s.items {
		if !s.items[i].Equal(other.items[i]) {
			return false
		}
	}
	return true
}

// Less orders two sets by length first, then element-wise; used so
// SortedSet[Item] (i.e. ItemSet) itself has a total order, which in turn
// lets ItemSet be compared the same way Symbol is.
func (s *SortedSet[T]) Less(other *SortedSet[T]) bool {
	if s.Len() != other.Len() {
		return s.Len() < other.Len()
	}
	for i := range s.items {
		if s.items[i].Less(other.items[i]) {
			return true
		}
		if other.items[i].Less(s.items[i]) {
			return false
		}
	}
	return false
}

// stringer is implemented by element types that provide their own String
// for use by SortedSet.String below.
type stringer interface {
	String() string
}

// String renders the set's elements in ascending order, giving SortedSet a
// stable string form suitable for use as a map key (e.g. ItemSet -> state
// id in the canonical-collection builder).
func (s *SortedSet[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, x := range s.items {
		if i > 0 {
			sb.WriteString(", ")
		}
		if str, ok := any(x).(stringer); ok {
			sb.WriteString(str.String())
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

// Key returns the canonical string used to key maps on ItemSet identity; an
// alias for String kept separate so call sites documenting "this is a map
// key" read clearly.
func (s *SortedSet[T]) Key() string {
	return s.String()
}
