package generator

import (
	"math/rand/v2"
	"sync"
)

// lockedRandom adapts a *rand.Rand, which is not safe for concurrent use
type lockedRandom struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandom returns a Random drawing from the runtime's randomly seeded source
func NewRandom() Random {
	return globalRandom{}
}

// NewSeededRandom returns a reproducible Random for the given seed
func NewSeededRandom(seed uint64) Random {
	return &lockedRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRandom) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

type globalRandom struct{}

func (globalRandom) Intn(n int) int {
	return rand.IntN(n)
}
