package flat

import (
	"container/heap"
	"fmt"
	"math"
	"sync"

	"github.com/custodia-labs/semdex/internal/core/domain"
	"github.com/custodia-labs/semdex/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.VectorIndex = (*Index)(nil)

// Index is an in-memory flat L2 index.
// Vectors are stored contiguously in insertion order; vector i lives at
// data[i*dim : (i+1)*dim] and corresponds to document i.
type Index struct {
	mu    sync.RWMutex
	dim   int
	count int
	data  []float32
}

// New creates an empty index. Its dimension is fixed by the first Add.
func New() *Index {
	return &Index{}
}

// Build creates an index from a non-empty batch of equal-length vectors.
// The vectors are copied.
func Build(vectors [][]float32) (*Index, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("flat: build: %w", domain.ErrEmptyInput)
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("flat: build: %w: zero-length vector", domain.ErrDimensionMismatch)
	}

	idx := &Index{
		dim:  dim,
		data: make([]float32, 0, dim*len(vectors)),
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("flat: build: %w: vector %d has length %d, want %d",
				domain.ErrDimensionMismatch, i, len(v), dim)
		}
		if err := checkFinite(v); err != nil {
			return nil, fmt.Errorf("flat: build: vector %d: %w", i, err)
		}
		idx.data = append(idx.data, v...)
		idx.count++
	}
	return idx, nil
}

// Builder adapts Build to driven.VectorIndexBuilder.
func Builder(vectors [][]float32) (driven.VectorIndex, error) {
	idx, err := Build(vectors)
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// Add appends one vector. Its position is the next document ID.
func (x *Index) Add(vector []float32) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.count == 0 && x.dim == 0 {
		if len(vector) == 0 {
			return fmt.Errorf("flat: add: %w: zero-length vector", domain.ErrDimensionMismatch)
		}
		x.dim = len(vector)
	}
	if len(vector) != x.dim {
		return fmt.Errorf("flat: add: %w: length %d, want %d",
			domain.ErrDimensionMismatch, len(vector), x.dim)
	}
	if err := checkFinite(vector); err != nil {
		return fmt.Errorf("flat: add: %w", err)
	}
	x.data = append(x.data, vector...)
	x.count++
	return nil
}

// Search returns the min(k, Len) stored vectors nearest to query under
// squared L2 distance. Equal distances rank the smaller ID first.
func (x *Index) Search(query []float32, k int) ([]domain.SearchResult, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.count == 0 {
		return nil, fmt.Errorf("flat: search: %w: index has no vectors", domain.ErrEmptyInput)
	}
	if len(query) != x.dim {
		return nil, fmt.Errorf("flat: search: %w: query length %d, want %d",
			domain.ErrDimensionMismatch, len(query), x.dim)
	}
	if k <= 0 {
		return nil, fmt.Errorf("flat: search: %w: got %d", domain.ErrInvalidK, k)
	}
	if err := checkFinite(query); err != nil {
		return nil, fmt.Errorf("flat: search: %w", err)
	}

	if k > x.count {
		k = x.count
	}
	h := make(neighbors, 0, k)
	for id := 0; id < x.count; id++ {
		c := neighbor{id: id, distance: x.squaredL2(query, id)}
		if len(h) < k {
			heap.Push(&h, c)
			continue
		}
		if worse(h[0], c) {
			h[0] = c
			heap.Fix(&h, 0)
		}
	}

	// Popping the max-heap yields worst first; fill from the back.
	results := make([]domain.SearchResult, len(h))
	for i := len(h) - 1; i >= 0; i-- {
		n := heap.Pop(&h).(neighbor)
		results[i] = domain.SearchResult{
			Rank:       i + 1,
			DocumentID: n.id,
			Distance:   n.distance,
		}
	}
	return results, nil
}

// Len returns the number of stored vectors.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.count
}

// Dimension returns the fixed vector length, or 0 before the first vector.
func (x *Index) Dimension() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.dim
}

// squaredL2 accumulates in float64 in coordinate order, so repeated
// searches produce bit-identical distances.
func (x *Index) squaredL2(q []float32, id int) float64 {
	v := x.data[id*x.dim : (id+1)*x.dim]
	var sum float64
	for j := range q {
		d := float64(q[j]) - float64(v[j])
		sum += d * d
	}
	return sum
}

func checkFinite(v []float32) error {
	for j, f := range v {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return fmt.Errorf("%w: non-finite component at %d", domain.ErrInvalidInput, j)
		}
	}
	return nil
}
