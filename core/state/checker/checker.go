package checker

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/commonpot/commonpot-go-node/core/state/bus"
)

// Checker tracks the net value delta of a block. Every balance mutation
// reports its delta here; transitions only move value between accounts, so
// the sum must return to zero before commit.
type Checker struct {
	delta *big.Int

	lock sync.RWMutex
}

func NewChecker(bus *bus.Bus) *Checker {
	checker := &Checker{
		delta: big.NewInt(0),
	}
	bus.SetChecker(checker)

	return checker
}

func (c *Checker) AddDelta(value *big.Int) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.delta.Add(c.delta, value)
}

// Reset resets checker delta data
func (c *Checker) Reset() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.delta = big.NewInt(0)
}

func (c *Checker) Check() error {
	c.lock.RLock()
	defer c.lock.RUnlock()

	if c.delta.Sign() != 0 {
		return fmt.Errorf("invariants error: net value delta is %s", c.delta.String())
	}

	return nil
}
