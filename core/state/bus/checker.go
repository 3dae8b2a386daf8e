package bus

import (
	"math/big"
)

type Checker interface {
	AddDelta(*big.Int)
}
