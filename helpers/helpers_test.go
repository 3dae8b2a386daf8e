package helpers

import (
	"math/big"
	"testing"
)

func TestIsValidBigInt(t *testing.T) {
	cases := map[string]bool{
		"":   false,
		"1":  true,
		"1s": false,
		"-1": false,
		"123437456298465928764598276349587623948756928764958762934569": true,
	}

	for str, result := range cases {
		if IsValidBigInt(str) != result {
			t.Fail()
		}
	}
}

func TestStringToBigInt(t *testing.T) {
	result := StringToBigInt("10")
	if result.Cmp(big.NewInt(10)) != 0 {
		t.Fail()
	}

	defer func() {
		if recover() == nil {
			t.Fail()
		}
	}()

	StringToBigInt("")
}

func TestBigIntBytesRoundTrip(t *testing.T) {
	for _, v := range []string{"0", "1", "1000000000000000000", "123437456298465928764598276349587623948756928764958762934569"} {
		b := StringToBigInt(v)
		if BytesToBigInt(BigIntToBytes(b)).Cmp(b) != 0 {
			t.Fatalf("round trip failed for %s", v)
		}
	}

	if BytesToBigInt(nil).Sign() != 0 {
		t.Fail()
	}
}
