package core

import "sync"

// PauseGate is the process-wide switch that blocks state-changing ledger
// operations. Setting an already-set flag is not an error.
type PauseGate struct {
	mu     sync.RWMutex
	paused bool
}

func NewPauseGate() *PauseGate {
	return &PauseGate{}
}

func (g *PauseGate) Paused() bool {
	if g == nil {
		return false
	}
	g.mu.RLock()
	paused := g.paused
	g.mu.RUnlock()
	return paused
}

func (g *PauseGate) Set(paused bool) {
	if g == nil {
		return
	}
	g.mu.Lock()
	g.paused = paused
	g.mu.Unlock()
}
