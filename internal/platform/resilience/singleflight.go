package resilience

import "sync"

// SingleFlight collapses concurrent calls for the same key into one
// execution. Followers block until the leader finishes and receive its
// result; the third return value tells a caller whether it led or
// followed. The zero value is ready to use.
type SingleFlight struct {
	mu       sync.Mutex
	inflight map[string]*flightResult
}

type flightResult struct {
	done chan struct{}
	val  any
	err  error
}

func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if existing, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		<-existing.done
		return existing.val, existing.err, true
	}

	leader := &flightResult{done: make(chan struct{})}
	if g.inflight == nil {
		g.inflight = make(map[string]*flightResult)
	}
	g.inflight[key] = leader
	g.mu.Unlock()

	leader.val, leader.err = fn()

	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()
	close(leader.done)

	return leader.val, leader.err, false
}
