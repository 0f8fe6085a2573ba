package bitmap

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// VertexSet is a set of vertex indices.
type VertexSet struct {
	rb *roaring.Bitmap
}

var setPool = sync.Pool{
	New: func() any {
		return &VertexSet{rb: roaring.New()}
	},
}

// New creates an empty set.
func New() *VertexSet {
	return &VertexSet{rb: roaring.New()}
}

// Get takes a cleared set from the pool. Call Put when done.
func Get() *VertexSet {
	s := setPool.Get().(*VertexSet)
	s.rb.Clear()
	return s
}

// Put returns a set to the pool.
func Put(s *VertexSet) {
	if s == nil {
		return
	}
	s.rb.Clear()
	setPool.Put(s)
}

// Add inserts v.
func (s *VertexSet) Add(v uint32) {
	s.rb.Add(v)
}

// AddMany inserts every index in vs.
func (s *VertexSet) AddMany(vs []uint32) {
	s.rb.AddMany(vs)
}

// Visit inserts v and reports whether it was absent before.
func (s *VertexSet) Visit(v uint32) bool {
	return s.rb.CheckedAdd(v)
}

// Contains reports whether v is in the set.
func (s *VertexSet) Contains(v uint32) bool {
	return s.rb.Contains(v)
}

// Len returns the number of indices in the set.
func (s *VertexSet) Len() int {
	return int(s.rb.GetCardinality())
}

// IsEmpty reports whether the set is empty.
func (s *VertexSet) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Clear removes every index.
func (s *VertexSet) Clear() {
	s.rb.Clear()
}

// ForEach calls fn for every index in ascending order until fn returns false.
func (s *VertexSet) ForEach(fn func(v uint32) bool) {
	it := s.rb.Iterator()
	for it.HasNext() {
		if !fn(it.Next()) {
			return
		}
	}
}

// ToSlice returns the indices in ascending order.
func (s *VertexSet) ToSlice() []uint32 {
	return s.rb.ToArray()
}
