package rules

import (
	"fmt"

	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/common"
)

// SlashingKind used for helpful information upon detection.
type SlashingKind int

const (
	NotSlashable SlashingKind = iota
	DoubleProposal
	DecreasingSlot
	DoubleVote
	SurroundingVote
	DecreasingTarget
	InvalidRange
)

func (k SlashingKind) String() string {
	switch k {
	case NotSlashable:
		return "not_slashable"
	case DoubleProposal:
		return "double_proposal"
	case DecreasingSlot:
		return "decreasing_slot"
	case DoubleVote:
		return "double_vote"
	case SurroundingVote:
		return "surrounding_vote"
	case DecreasingTarget:
		return "decreasing_target"
	case InvalidRange:
		return "invalid_range"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// SlashingError is returned when signing a message would be slashable, or the
// message is malformed. It carries the historical record that caused the denial.
type SlashingError struct {
	Kind                SlashingKind
	ConflictingProposal *common.Proposal
	ConflictingVote     *common.AttestationRecord
}

func (e *SlashingError) Error() string {
	switch {
	case e.ConflictingProposal != nil:
		return fmt.Sprintf("%s: conflicts with signed proposal at %s", description(e.Kind), e.ConflictingProposal)
	case e.ConflictingVote != nil:
		return fmt.Sprintf("%s: conflicts with signed attestation with %s", description(e.Kind), e.ConflictingVote)
	default:
		return description(e.Kind)
	}
}

func description(k SlashingKind) string {
	switch k {
	case DoubleProposal:
		return "attempted to sign a double proposal, block rejected by slashing protection"
	case DecreasingSlot:
		return "attempted to sign a block with a slot lower than the highest signed slot"
	case DoubleVote:
		return "attempted to make slashable double vote"
	case SurroundingVote:
		return "attempted to make slashable surround vote"
	case DecreasingTarget:
		return "attempted to sign an attestation with a target lower than the highest signed target"
	case InvalidRange:
		return "attestation source epoch is greater than its target epoch"
	default:
		return k.String()
	}
}
