package discovery

import "sync"

// idQueue is a minimal FIFO shared between worker stages.
type idQueue struct {
	mu    sync.Mutex
	items []string
}

func (q *idQueue) push(ids ...string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, ids...)
}

func (q *idQueue) pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return "", false
	}
	id := q.items[0]
	q.items = q.items[1:]
	return id, true
}

// drain removes and returns everything queued.
func (q *idQueue) drain() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}
