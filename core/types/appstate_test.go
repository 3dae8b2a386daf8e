package types

import (
	"testing"
)

func TestAppStateVerifyContributionTotals(t *testing.T) {
	t.Parallel()

	owner := Address{1}
	second := Address{2}
	potAddress := Address{3}

	state := AppState{
		Pots: []Pot{
			{
				Address:              potAddress,
				Owner:                owner,
				Name:                 "trip",
				Target:               "500",
				TotalContributed:     "300",
				RequiredApprovals:    1,
				ApprovedContributors: []Address{owner, second},
			},
		},
		Contributions: []Contribution{
			{Pot: potAddress, Contributor: owner, Total: "100", Count: 1},
			{Pot: potAddress, Contributor: second, Total: "200", Count: 2},
		},
	}

	if err := state.Verify(); err != nil {
		t.Fatal(err)
	}

	state.Pots[0].TotalContributed = "301"
	if err := state.Verify(); err == nil {
		t.Fatal("state with a pot total detached from its contribution records is not detected")
	}
}

func TestAppStateVerifyPotWithoutContributionRecords(t *testing.T) {
	t.Parallel()

	state := AppState{
		Pots: []Pot{
			{
				Address:              Address{3},
				Owner:                Address{1},
				Name:                 "trip",
				Target:               "500",
				TotalContributed:     "150",
				RequiredApprovals:    1,
				ApprovedContributors: []Address{{1}},
			},
		},
	}

	if err := state.Verify(); err == nil {
		t.Fatal("pot total without contribution records is not detected")
	}
}

func TestAppStateVerifyReleaseApprovalsBound(t *testing.T) {
	t.Parallel()

	contributors := make([]Address, MaxPotApprovals+1)
	for i := range contributors {
		contributors[i] = Address{byte(i + 1)}
	}

	state := AppState{
		Pots: []Pot{
			{
				Address:              Address{99},
				Owner:                contributors[0],
				Name:                 "trip",
				Target:               "0",
				TotalContributed:     "0",
				RequiredApprovals:    1,
				ApprovedContributors: contributors,
				ReleaseApprovals:     contributors,
			},
		},
	}

	if err := state.Verify(); err == nil {
		t.Fatal("release approvals above the cap are not detected")
	}

	state.Pots[0].ReleaseApprovals = contributors[:MaxPotApprovals]
	if err := state.Verify(); err != nil {
		t.Fatal(err)
	}
}
