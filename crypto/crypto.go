package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"fmt"
	"hash"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"github.com/commonpot/commonpot-go-node/core/types"
	"golang.org/x/crypto/sha3"
)

// SignatureLength is the byte length of a compact secp256k1 signature:
// 32-byte R, 32-byte S and a one-byte recovery id.
const SignatureLength = 65

var (
	secp256k1N     = btcec.S256().Params().N
	secp256k1halfN = new(big.Int).Rsh(secp256k1N, 1)
)

// KeccakState wraps sha3.state and supports Read to get a variable amount of
// data from the hash state.
type KeccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

// Keccak256 calculates and returns the Keccak256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	b := make([]byte, 32)
	d := sha3.NewLegacyKeccak256().(KeccakState)
	for _, chunk := range data {
		d.Write(chunk)
	}
	d.Read(b)
	return b
}

// Keccak256Hash calculates and returns the Keccak256 hash of the input data,
// converting it to an internal Hash data structure.
func Keccak256Hash(data ...[]byte) (h types.Hash) {
	d := sha3.NewLegacyKeccak256().(KeccakState)
	for _, chunk := range data {
		d.Write(chunk)
	}
	d.Read(h[:])
	return h
}

// GenerateKey generates a new secp256k1 private key.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	return ecdsa.GenerateKey(btcec.S256(), rand.Reader)
}

// ToECDSA creates a private key with the given D value.
func ToECDSA(d []byte) (*ecdsa.PrivateKey, error) {
	if len(d) != 32 {
		return nil, errors.New("invalid length, need 256 bits")
	}

	priv := new(ecdsa.PrivateKey)
	priv.PublicKey.Curve = btcec.S256()
	priv.D = new(big.Int).SetBytes(d)
	if priv.D.Cmp(secp256k1N) >= 0 || priv.D.Sign() <= 0 {
		return nil, errors.New("invalid private key")
	}

	priv.PublicKey.X, priv.PublicKey.Y = priv.PublicKey.Curve.ScalarBaseMult(d)
	if priv.PublicKey.X == nil {
		return nil, errors.New("invalid private key")
	}
	return priv, nil
}

// FromECDSA exports a private key into a binary dump.
func FromECDSA(priv *ecdsa.PrivateKey) []byte {
	if priv == nil {
		return nil
	}

	b := priv.D.Bytes()
	padded := make([]byte, 32)
	copy(padded[32-len(b):], b)
	return padded
}

// PubkeyToAddress derives the account address from a secp256k1 public key:
// the last 20 bytes of the keccak256 of the uncompressed key body.
func PubkeyToAddress(p ecdsa.PublicKey) types.Address {
	pubBytes := elliptic.Marshal(btcec.S256(), p.X, p.Y)
	return types.BytesToAddress(Keccak256(pubBytes[1:])[12:])
}

// Sign calculates an ECDSA signature over the given 32-byte hash. The produced
// signature is in the [R || S || V] format where V is 0 or 1.
func Sign(hash []byte, prv *ecdsa.PrivateKey) ([]byte, error) {
	if len(hash) != 32 {
		return nil, fmt.Errorf("hash is required to be exactly 32 bytes (%d)", len(hash))
	}
	if prv.Curve != btcec.S256() {
		return nil, errors.New("private key curve is not secp256k1")
	}

	sig, err := btcec.SignCompact(btcec.S256(), (*btcec.PrivateKey)(prv), hash, false)
	if err != nil {
		return nil, err
	}

	// Convert to the [R || S || V] format expected by Ecrecover.
	v := sig[0] - 27
	copy(sig, sig[1:])
	sig[SignatureLength-1] = v
	return sig, nil
}

// SigToPub returns the public key that created the given signature.
func SigToPub(hash, sig []byte) (*ecdsa.PublicKey, error) {
	if len(sig) != SignatureLength {
		return nil, errors.New("invalid signature length")
	}

	// Convert to btcec compact format with the recovery id up front.
	btcsig := make([]byte, SignatureLength)
	btcsig[0] = sig[SignatureLength-1] + 27
	copy(btcsig[1:], sig)

	pub, _, err := btcec.RecoverCompact(btcec.S256(), btcsig, hash)
	if err != nil {
		return nil, err
	}

	return (*ecdsa.PublicKey)(pub), nil
}

// Ecrecover returns the uncompressed public key that created the given
// signature.
func Ecrecover(hash, sig []byte) ([]byte, error) {
	pub, err := SigToPub(hash, sig)
	if err != nil {
		return nil, err
	}

	return (*btcec.PublicKey)(pub).SerializeUncompressed(), nil
}

// RecoverAddress recovers the signer address from a 32-byte hash and a compact
// signature, rejecting malleable S values.
func RecoverAddress(hash types.Hash, sig []byte) (types.Address, error) {
	if len(sig) != SignatureLength {
		return types.Address{}, errors.New("invalid signature length")
	}

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	if !ValidateSignatureValues(sig[64], r, s) {
		return types.Address{}, errors.New("invalid signature values")
	}

	pub, err := Ecrecover(hash[:], sig)
	if err != nil {
		return types.Address{}, err
	}
	if len(pub) == 0 || pub[0] != 4 {
		return types.Address{}, errors.New("invalid public key")
	}

	return types.BytesToAddress(Keccak256(pub[1:])[12:]), nil
}

// ValidateSignatureValues verifies whether the signature values are valid with
// the given chain rules. The V value must be 0 or 1; S must be in the lower
// half of the curve order.
func ValidateSignatureValues(v byte, r, s *big.Int) bool {
	if r.Sign() < 1 || s.Sign() < 1 {
		return false
	}

	if s.Cmp(secp256k1halfN) > 0 {
		return false
	}

	return r.Cmp(secp256k1N) < 0 && s.Cmp(secp256k1N) < 0 && (v == 0 || v == 1)
}
