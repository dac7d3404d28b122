package games

import (
	"math/rand"
	"sync"
	"time"
)

// Engine plays single-player wager rounds. It is safe for concurrent use.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine creates an engine; a nil rng is seeded from the clock
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: rng}
}

// withRand runs fn holding the engine's lock, since *rand.Rand is not safe
// for concurrent use
func (e *Engine) withRand(fn func(r *rand.Rand)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.rng)
}
