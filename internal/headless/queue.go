package headless

import "github.com/Veraticus/scanfield/internal/scanner"

// Queue is a FIFO of deferred work, drained explicitly by the owner of the
// event loop.
type Queue struct {
	pending []func()
}

var _ scanner.Scheduler = (*Queue)(nil)

// Defer enqueues fn.
func (q *Queue) Defer(fn func()) {
	q.pending = append(q.pending, fn)
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Drain runs queued tasks, including any they enqueue, until the queue is
// empty. It returns how many ran.
func (q *Queue) Drain() int {
	ran := 0
	for len(q.pending) > 0 {
		fn := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		fn()
		ran++
	}
	return ran
}
