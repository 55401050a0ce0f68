package flat

// neighbor is a candidate held during a search.
type neighbor struct {
	id       int
	distance float64
}

// worse reports whether a ranks after b: larger distance first, and on
// equal distance the larger id.
func worse(a, b neighbor) bool {
	if a.distance != b.distance {
		return a.distance > b.distance
	}
	return a.id > b.id
}

// neighbors implements heap.Interface as a max-heap on rank, so the root is
// always the worst candidate kept so far.
type neighbors []neighbor

func (h neighbors) Len() int           { return len(h) }
func (h neighbors) Less(i, j int) bool { return worse(h[i], h[j]) }
func (h neighbors) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *neighbors) Push(x any) {
	*h = append(*h, x.(neighbor))
}

func (h *neighbors) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
