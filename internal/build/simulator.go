package build

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Outcome is one synthesized build result. Nothing is cloned or executed;
// the service models build runs as draws from a fixed distribution.
type Outcome struct {
	Status    string
	DurationS float64
	Logs      string
}

type Simulator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

func NewSimulator() *Simulator {
	return &Simulator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// Simulate draws a duration uniformly from [2.0, 10.0] seconds rounded to
// two decimals, picks success or fail with equal probability, and writes a
// one-line log summary carrying the UTC timestamp.
func (s *Simulator) Simulate() Outcome {
	s.mu.Lock()
	duration := math.Round((2+s.rng.Float64()*8)*100) / 100
	status := "success"
	if s.rng.Intn(2) == 1 {
		status = "fail"
	}
	s.mu.Unlock()
	ts := s.now().UTC().Format(time.RFC3339)
	return Outcome{
		Status:    status,
		DurationS: duration,
		Logs:      fmt.Sprintf("Build simulated at %s. Status: %s", ts, status),
	}
}
