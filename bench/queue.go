package bench

// Queue hands engine work from the goroutine reading commands to the control loop, which runs it
// between ticks so nothing touches the engine while a tick is in progress. Board inputs do not go
// through the queue: a tick can block until they change.
type Queue struct {
	ops chan func()
}

func NewQueue(size int) *Queue {
	return &Queue{ops: make(chan func(), size)}
}

// Do queues f. It reports false and drops f when the queue is full, which happens while a tick is
// blocked in a long wait; the reader must keep reading so a press can still reach the board.
func (q *Queue) Do(f func()) bool {
	select {
	case q.ops <- f:
		return true
	default:
		return false
	}
}

// Drain runs everything queued so far and returns how many ran
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case f := <-q.ops:
			f()
			n++
		default:
			return n
		}
	}
}
