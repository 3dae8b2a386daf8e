package types

import (
	"fmt"
	"math/big"

	"github.com/commonpot/commonpot-go-node/helpers"
)

// AppState is the genesis / export representation of the whole application
// state: external balances plus every pot and its contribution audit trail.
type AppState struct {
	Note          string         `json:"note"`
	StartHeight   uint64         `json:"start_height"`
	Accounts      []Account      `json:"accounts,omitempty"`
	Pots          []Pot          `json:"pots,omitempty"`
	Contributions []Contribution `json:"contributions,omitempty"`
}

type Account struct {
	Address Address `json:"address"`
	Balance string  `json:"balance"`
	Nonce   uint64  `json:"nonce"`
}

type Pot struct {
	Address              Address   `json:"address"`
	Owner                Address   `json:"owner"`
	Name                 string    `json:"name"`
	Description          string    `json:"description,omitempty"`
	Target               string    `json:"target"`
	TotalContributed     string    `json:"total_contributed"`
	UnlockTime           uint64    `json:"unlock_time"`
	RequiredApprovals    uint32    `json:"required_approvals"`
	ApprovedContributors []Address `json:"approved_contributors"`
	ReleaseApprovals     []Address `json:"release_approvals,omitempty"`
	Released             bool      `json:"released"`
	Recipient            *Address  `json:"recipient,omitempty"`
}

type Contribution struct {
	Pot         Address `json:"pot"`
	Contributor Address `json:"contributor"`
	Total       string  `json:"total"`
	Count       uint32  `json:"count"`
}

// Verify performs basic consistency checks on the app state before import
func (s *AppState) Verify() error {
	accounts := map[Address]struct{}{}
	for _, acc := range s.Accounts {
		if _, exists := accounts[acc.Address]; exists {
			return fmt.Errorf("duplicated account %s", acc.Address.String())
		}
		accounts[acc.Address] = struct{}{}

		if !helpers.IsValidBigInt(acc.Balance) {
			return fmt.Errorf("balance of account %s is not valid", acc.Address.String())
		}
	}

	pots := map[Address]struct{}{}
	totals := map[Address]*big.Int{}
	for _, pot := range s.Pots {
		if _, exists := pots[pot.Address]; exists {
			return fmt.Errorf("duplicated pot %s", pot.Address.String())
		}
		pots[pot.Address] = struct{}{}

		if len(pot.Name) == 0 || len(pot.Name) > MaxPotNameLength {
			return fmt.Errorf("name of pot %s is out of bounds", pot.Address.String())
		}

		if len(pot.Description) > MaxPotDescriptionLength {
			return fmt.Errorf("description of pot %s is out of bounds", pot.Address.String())
		}

		if !helpers.IsValidBigInt(pot.Target) || !helpers.IsValidBigInt(pot.TotalContributed) {
			return fmt.Errorf("amounts of pot %s are not valid", pot.Address.String())
		}
		totals[pot.Address] = helpers.StringToBigInt(pot.TotalContributed)

		if pot.RequiredApprovals < 1 || pot.RequiredApprovals > MaxPotApprovals {
			return fmt.Errorf("required approvals of pot %s is out of bounds", pot.Address.String())
		}

		if len(pot.ApprovedContributors) > MaxPotContributors {
			return fmt.Errorf("too many approved contributors of pot %s", pot.Address.String())
		}

		approved := map[Address]struct{}{}
		for _, contributor := range pot.ApprovedContributors {
			if _, exists := approved[contributor]; exists {
				return fmt.Errorf("duplicated approved contributor %s of pot %s", contributor.String(), pot.Address.String())
			}
			approved[contributor] = struct{}{}
		}

		if len(pot.ReleaseApprovals) > MaxPotApprovals {
			return fmt.Errorf("too many release approvals of pot %s", pot.Address.String())
		}

		signed := map[Address]struct{}{}
		for _, actor := range pot.ReleaseApprovals {
			if _, exists := signed[actor]; exists {
				return fmt.Errorf("duplicated release approval %s of pot %s", actor.String(), pot.Address.String())
			}
			signed[actor] = struct{}{}

			if _, isApproved := approved[actor]; !isApproved {
				return fmt.Errorf("release approval %s of pot %s is not an approved contributor", actor.String(), pot.Address.String())
			}
		}

		if pot.Released && pot.Recipient == nil {
			return fmt.Errorf("released pot %s has no recipient", pot.Address.String())
		}
	}

	contributed := map[Address]*big.Int{}
	for _, c := range s.Contributions {
		if _, exists := pots[c.Pot]; !exists {
			return fmt.Errorf("contribution to unknown pot %s", c.Pot.String())
		}

		if !helpers.IsValidBigInt(c.Total) {
			return fmt.Errorf("contribution total of %s to pot %s is not valid", c.Contributor.String(), c.Pot.String())
		}

		sum := contributed[c.Pot]
		if sum == nil {
			sum = big.NewInt(0)
		}
		contributed[c.Pot] = sum.Add(sum, helpers.StringToBigInt(c.Total))
	}

	// the pot total must be re-derivable from its contribution records
	for address, total := range totals {
		sum := contributed[address]
		if sum == nil {
			sum = big.NewInt(0)
		}
		if total.Cmp(sum) != 0 {
			return fmt.Errorf("total contributed of pot %s does not match its contribution records", address.String())
		}
	}

	return nil
}
