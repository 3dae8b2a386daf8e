package checker

import (
	"math/big"
	"testing"

	"github.com/commonpot/commonpot-go-node/core/state/bus"
)

func TestCheckerBalancedDeltas(t *testing.T) {
	b := bus.NewBus()
	checker := NewChecker(b)

	b.Checker().AddDelta(big.NewInt(100))
	b.Checker().AddDelta(big.NewInt(-40))
	checker.AddDelta(big.NewInt(-60))

	if err := checker.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestCheckerUnbalancedDeltas(t *testing.T) {
	b := bus.NewBus()
	checker := NewChecker(b)

	checker.AddDelta(big.NewInt(100))
	checker.AddDelta(big.NewInt(-99))

	if err := checker.Check(); err == nil {
		t.Fatal("leaked value must fail the check")
	}

	checker.Reset()

	if err := checker.Check(); err != nil {
		t.Fatal(err)
	}
}
