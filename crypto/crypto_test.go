package crypto

import (
	"bytes"
	"testing"

	"github.com/commonpot/commonpot-go-node/core/types"
)

func TestKeccak256(t *testing.T) {
	t.Parallel()

	// keccak256 of the empty string
	want := types.HexToHash("Chc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
	if got := Keccak256Hash(); got != want {
		t.Fatalf("empty keccak256 mismatch: got %s, want %s", got.String(), want.String())
	}

	if !bytes.Equal(Keccak256([]byte("ab"), []byte("c")), Keccak256([]byte("abc"))) {
		t.Fatal("chunked input must hash identically to joined input")
	}
}

func TestSignAndRecover(t *testing.T) {
	t.Parallel()

	key, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}

	addr := PubkeyToAddress(key.PublicKey)
	hash := Keccak256Hash([]byte("fund custody transition"))

	sig, err := Sign(hash[:], key)
	if err != nil {
		t.Fatal(err)
	}

	if len(sig) != SignatureLength {
		t.Fatalf("signature length is %d, want %d", len(sig), SignatureLength)
	}

	recovered, err := RecoverAddress(hash, sig)
	if err != nil {
		t.Fatal(err)
	}

	if recovered != addr {
		t.Fatalf("recovered %s, want %s", recovered.String(), addr.String())
	}
}

func TestRecoverRejectsMangledSignature(t *testing.T) {
	t.Parallel()

	key, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}

	hash := Keccak256Hash([]byte("payload"))
	sig, err := Sign(hash[:], key)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := RecoverAddress(hash, sig[:64]); err == nil {
		t.Fatal("truncated signature must not recover")
	}

	mangled := make([]byte, len(sig))
	copy(mangled, sig)
	mangled[64] = 27 // recovery id out of range
	if _, err := RecoverAddress(hash, mangled); err == nil {
		t.Fatal("invalid recovery id must not recover")
	}
}

func TestPrivateKeyRoundTrip(t *testing.T) {
	t.Parallel()

	key, err := GenerateKey()
	if err != nil {
		t.Fatal(err)
	}

	restored, err := ToECDSA(FromECDSA(key))
	if err != nil {
		t.Fatal(err)
	}

	if PubkeyToAddress(restored.PublicKey) != PubkeyToAddress(key.PublicKey) {
		t.Fatal("restored key derives a different address")
	}
}
