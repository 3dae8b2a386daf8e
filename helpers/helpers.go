package helpers

import (
	"fmt"
	"math/big"
)

// StringToBigInt converts string to BigInt, panics on empty strings and errors
func StringToBigInt(s string) *big.Int {
	if s == "" {
		panic("string is empty")
	}

	b, success := big.NewInt(0).SetString(s, 10)
	if !success {
		panic(fmt.Sprintf("Cannot decode %s into big.Int", s))
	}

	return b
}

// IsValidBigInt verifies that string is a valid non-negative int
func IsValidBigInt(s string) bool {
	if s == "" {
		return false
	}

	b, success := big.NewInt(0).SetString(s, 10)
	if !success {
		return false
	}

	if b.Cmp(big.NewInt(0)) == -1 {
		return false
	}

	return true
}

// BigIntToBytes encodes a non-negative big.Int as its big-endian byte form.
// Zero encodes to an empty slice, matching big.Int.Bytes.
func BigIntToBytes(b *big.Int) []byte {
	if b == nil {
		return nil
	}

	return b.Bytes()
}

// BytesToBigInt is the inverse of BigIntToBytes; nil and empty decode to zero.
func BytesToBigInt(b []byte) *big.Int {
	return big.NewInt(0).SetBytes(b)
}
