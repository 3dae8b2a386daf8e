package types

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	// HashLength is the expected length of a keccak256 hash
	HashLength = 32
	// AddressLength is the expected length of an account address
	AddressLength = 20
)

// Hash represents the 32 byte keccak256 hash of arbitrary data.
type Hash [HashLength]byte

func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

func HexToHash(s string) Hash { return BytesToHash(fromHex(s, "Ch")) }

func (h Hash) Bytes() []byte { return h[:] }
func (h Hash) Big() *big.Int { return new(big.Int).SetBytes(h[:]) }

func (h Hash) Hex() string {
	return "Ch" + hex.EncodeToString(h[:])
}

// String implements the stringer interface and is used also by the logger.
func (h Hash) String() string {
	return h.Hex()
}

// SetBytes sets the hash to the value of b. If b is larger than len(h), b is
// cropped from the left.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > len(h) {
		b = b[len(b)-HashLength:]
	}

	copy(h[HashLength-len(b):], b)
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

func (h *Hash) UnmarshalText(input []byte) error {
	return unmarshalFixed("Hash", input, "Ch", h[:])
}

func EmptyHash(h Hash) bool {
	return h == Hash{}
}

/////////// Address

// Address is a 20-byte account identifier. Externally owned addresses are
// derived from a secp256k1 public key; pot, custody and contributor record
// addresses are derived from the deterministic addressing scheme and have no
// corresponding private key.
type Address [AddressLength]byte

func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

func HexToAddress(s string) Address { return BytesToAddress(fromHex(s, "Cx")) }

// IsHexAddress verifies whether a string can represent a valid hex-encoded
// address or not.
func IsHexAddress(s string) bool {
	if strings.HasPrefix(s, "Cx") {
		s = s[2:]
	}
	if len(s) != 2*AddressLength {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func (a Address) Bytes() []byte { return a[:] }
func (a Address) Big() *big.Int { return new(big.Int).SetBytes(a[:]) }
func (a Address) Hash() Hash    { return BytesToHash(a[:]) }

func (a Address) Hex() string {
	return "Cx" + hex.EncodeToString(a[:])
}

// String implements the stringer interface and is used also by the logger.
func (a Address) String() string {
	return a.Hex()
}

// SetBytes sets the address to the value of b. If b is larger than len(a), b
// is cropped from the left.
func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

func (a *Address) UnmarshalText(input []byte) error {
	return unmarshalFixed("Address", input, "Cx", a[:])
}

func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", a.String())), nil
}

func (a *Address) UnmarshalJSON(input []byte) error {
	if len(input) < 2 || input[0] != '"' || input[len(input)-1] != '"' {
		return errors.New("invalid address encoding")
	}
	return a.UnmarshalText(input[1 : len(input)-1])
}

func (a Address) Compare(a2 Address) int {
	return bytes.Compare(a.Bytes(), a2.Bytes())
}

func fromHex(s string, prefix string) []byte {
	if strings.HasPrefix(s, prefix) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}

	h, _ := hex.DecodeString(s)
	return h
}

func unmarshalFixed(typeName string, input []byte, prefix string, out []byte) error {
	raw := string(input)
	if strings.HasPrefix(raw, prefix) {
		raw = raw[2:]
	}
	if len(raw) != 2*len(out) {
		return fmt.Errorf("hex string has length %d, want %d for %s", len(raw), 2*len(out), typeName)
	}

	b, err := hex.DecodeString(raw)
	if err != nil {
		return err
	}

	copy(out, b)
	return nil
}
