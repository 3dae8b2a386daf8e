package pots

import (
	"testing"

	"github.com/commonpot/commonpot-go-node/core/types"
)

func TestCreatePotAddress(t *testing.T) {
	t.Parallel()

	owner := types.Address{1}

	addr := CreatePotAddress(owner, "trip")
	if addr != CreatePotAddress(owner, "trip") {
		t.Fatal("pot address derivation is not deterministic")
	}

	if addr == CreatePotAddress(owner, "rent") {
		t.Fatal("pots with different names must not collide")
	}

	if addr == CreatePotAddress(types.Address{2}, "trip") {
		t.Fatal("pots with different owners must not collide")
	}
}

func TestCreateCustodyAddress(t *testing.T) {
	t.Parallel()

	pot := types.Address{1}

	custody := CreateCustodyAddress(pot)
	if custody != CreateCustodyAddress(pot) {
		t.Fatal("custody address derivation is not deterministic")
	}

	if custody == pot {
		t.Fatal("custody address must differ from the pot address")
	}

	if custody == CreateCustodyAddress(types.Address{2}) {
		t.Fatal("custody addresses of different pots must not collide")
	}
}

func TestCreateContributorAddress(t *testing.T) {
	t.Parallel()

	pot := types.Address{1}
	contributor := types.Address{2}

	record := CreateContributorAddress(pot, contributor)
	if record != CreateContributorAddress(pot, contributor) {
		t.Fatal("contributor record derivation is not deterministic")
	}

	if record == CreateContributorAddress(pot, types.Address{3}) {
		t.Fatal("records of different contributors must not collide")
	}

	if record == CreateContributorAddress(types.Address{3}, contributor) {
		t.Fatal("records in different pots must not collide")
	}
}
