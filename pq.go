package tilepath

import "container/heap"

// priorityQueue is the heap.Interface backing openSet. Ordering is ascending
// by cost + heuristic; equal keys come out in insertion order.
type priorityQueue []*node

func (queue priorityQueue) Len() int { return len(queue) }
func (queue priorityQueue) Less(i, j int) bool {
	pi, pj := queue[i].priority(), queue[j].priority()
	if pi != pj {
		return pi < pj
	}
	return queue[i].sequence < queue[j].sequence
}
func (queue priorityQueue) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].indexInQueue = i
	queue[j].indexInQueue = j
}

func (queue *priorityQueue) Push(x any) {
	item := x.(*node)
	item.indexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *priorityQueue) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.indexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}

// openSet is the search frontier. A node's key must not change while it is
// in the set: relaxing an open node is done with remove followed by insert.
type openSet struct {
	queue    priorityQueue
	sequence uint64
}

func (s *openSet) insert(n *node) {
	s.sequence++
	n.sequence = s.sequence
	heap.Push(&s.queue, n)
}

func (s *openSet) remove(n *node) {
	if s.contains(n) {
		heap.Remove(&s.queue, n.indexInQueue)
	}
}

func (s *openSet) contains(n *node) bool {
	i := n.indexInQueue
	return i >= 0 && i < len(s.queue) && s.queue[i] == n
}

func (s *openSet) popMin() *node {
	return heap.Pop(&s.queue).(*node)
}

func (s *openSet) size() int { return len(s.queue) }

func (s *openSet) clear() {
	for i, n := range s.queue {
		n.indexInQueue = -1
		s.queue[i] = nil
	}
	s.queue = s.queue[:0]
	s.sequence = 0
}

// steps lists the open tiles in heap order.
func (s *openSet) steps() []Step {
	steps := make([]Step, 0, len(s.queue))
	for _, n := range s.queue {
		steps = append(steps, Step{X: n.x, Y: n.y})
	}
	return steps
}
