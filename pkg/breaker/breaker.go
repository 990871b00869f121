package breaker

import (
	"errors"
	"sync"
	"time"
)

type state uint8

const (
	closed state = iota + 1
	open
	halfOpen
)

var ErrOpen = errors.New("circuit breaker is open")

type Breaker interface {
	Call(fn func() error) error
	Reset()
}

type breaker struct {
	mu sync.Mutex

	state state
	// sliding window of the last recordLength call outcomes
	window []bool
	pos    int
	// failure ratio over the window that trips the breaker
	threshold float64
	// how long the breaker stays open before probing
	timeout  time.Duration
	openedAt time.Time
	// consecutive successes in half-open needed to close again
	recoveryCalls int
	successCount  int
}

func New(recordLength int, timeout time.Duration, threshold float64, recoveryCalls int) Breaker {
	return &breaker{
		state:         closed,
		window:        make([]bool, recordLength),
		threshold:     threshold,
		timeout:       timeout,
		recoveryCalls: recoveryCalls,
	}
}

func (b *breaker) Call(fn func() error) error {
	b.mu.Lock()
	if b.state == open {
		if time.Since(b.openedAt) <= b.timeout {
			b.mu.Unlock()
			return ErrOpen
		}
		b.state = halfOpen
		b.successCount = 0
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.window[b.pos] = err != nil
	b.pos = (b.pos + 1) % len(b.window)

	if b.state == halfOpen {
		if err != nil {
			b.state = open
			b.successCount = 0
			b.openedAt = time.Now()
		} else {
			b.successCount++
			if b.successCount > b.recoveryCalls {
				b.Reset()
			}
		}
		return err
	}

	fails := 0
	for _, failed := range b.window {
		if failed {
			fails++
		}
	}
	if float64(fails)/float64(len(b.window)) >= b.threshold {
		b.state = open
		b.successCount = 0
		b.openedAt = time.Now()
	}

	return err
}

func (b *breaker) Reset() {
	for i := range b.window {
		b.window[i] = false
	}
	b.successCount = 0
	b.pos = 0
	b.state = closed
}
