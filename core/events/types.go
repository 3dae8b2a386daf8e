package events

import (
	"github.com/commonpot/commonpot-go-node/core/types"
)

// Event type names
const (
	TypePotCreatedEvent   = "commonpot/PotCreatedEvent"
	TypeContributionEvent = "commonpot/ContributionEvent"
	TypeSignReleaseEvent  = "commonpot/SignReleaseEvent"
	TypeReleaseEvent      = "commonpot/ReleaseEvent"
)

type Event interface {
	Type() string
}

type Events []Event

// PotCreatedEvent is fired once per pot, on the block that created it.
type PotCreatedEvent struct {
	Pot               types.Address `json:"pot"`
	Owner             types.Address `json:"owner"`
	Name              string        `json:"name"`
	Target            string        `json:"target"`
	UnlockTime        uint64        `json:"unlock_time"`
	RequiredApprovals uint32        `json:"required_approvals"`
}

func (e *PotCreatedEvent) Type() string {
	return TypePotCreatedEvent
}

// ContributionEvent carries the single contribution amount and the pot total
// after it was applied.
type ContributionEvent struct {
	Pot         types.Address `json:"pot"`
	Contributor types.Address `json:"contributor"`
	Amount      string        `json:"amount"`
	Total       string        `json:"total"`
}

func (e *ContributionEvent) Type() string {
	return TypeContributionEvent
}

type SignReleaseEvent struct {
	Pot       types.Address `json:"pot"`
	Signer    types.Address `json:"signer"`
	Approvals uint32        `json:"approvals"`
}

func (e *SignReleaseEvent) Type() string {
	return TypeSignReleaseEvent
}

type ReleaseEvent struct {
	Pot       types.Address `json:"pot"`
	Recipient types.Address `json:"recipient"`
	Amount    string        `json:"amount"`
}

func (e *ReleaseEvent) Type() string {
	return TypeReleaseEvent
}
