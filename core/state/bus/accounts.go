package bus

import (
	"math/big"

	"github.com/commonpot/commonpot-go-node/core/types"
)

type Accounts interface {
	AddBalance(types.Address, *big.Int)
}
