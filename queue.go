package nodewire

// OutputFired is the occurrence of output pin Output on Node producing Payload.
type OutputFired struct {
	Node    NodeID
	Output  int
	Payload Payload
}

// Pin returns the fired output pin.
func (f OutputFired) Pin() OutPinID { return OutPinID{Node: f.Node, Output: f.Output} }

// NodeActivated is the occurrence of Node receiving Payload on input Input.
type NodeActivated struct {
	Node    NodeID
	Input   int
	Payload Payload
}

// queue is a double-buffered FIFO. Items pushed after take are not part of
// the batch take returned; they wait for the next take. This is what delays
// every occurrence by exactly one tick.
type queue[T any] struct {
	pending []T
	spare   []T
}

func (q *queue[T]) push(v T) {
	q.pending = append(q.pending, v)
}

// take returns everything pushed since the previous take, in push order.
// The returned slice is only valid until the next take.
func (q *queue[T]) take() []T {
	batch := q.pending
	clear(q.spare)
	q.pending = q.spare[:0]
	q.spare = batch
	return batch
}

// peek returns the items waiting for the next take. The returned slice MUST
// NOT be mutated.
func (q *queue[T]) peek() []T {
	return q.pending
}

func (q *queue[T]) len() int { return len(q.pending) }
