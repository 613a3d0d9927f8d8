package watershed

// floodItem is one candidate assignment in the watershed frontier: a target
// voxel, the boundary value it will be popped at, and the label it would
// receive.
type floodItem struct {
	value float64
	seq   uint64
	idx   int
	label uint32
}

// floodQueue is a min-heap of flood candidates ordered by boundary value,
// with insertion sequence as the tie-break. The explicit sequence number
// realizes the "first enqueued wins" rule on plateaus, keeping the flood
// deterministic where many candidates share one boundary value.
type floodQueue []floodItem

func (q floodQueue) Len() int { return len(q) }

func (q floodQueue) Less(i, j int) bool {
	if q[i].value != q[j].value {
		return q[i].value < q[j].value
	}
	return q[i].seq < q[j].seq
}

func (q floodQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *floodQueue) Push(x any) {
	*q = append(*q, x.(floodItem))
}

func (q *floodQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
