// Package rules decides whether signing a block or an attestation is safe given a
// validator's signing history. Every function in this package is pure; callers are
// responsible for reading the history and persisting the accepted message atomically.
package rules

import (
	fieldparams "github.com/prysmaticlabs/prysm-slashing-protection/config/fieldparams"
	types "github.com/prysmaticlabs/prysm-slashing-protection/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/common"
)

// CheckBlock evaluates a proposal at slot with signingRoot against the
// highest-slot proposal signed so far. A nil latest means nothing was signed.
func CheckBlock(latest *common.Proposal, slot types.Slot, signingRoot [fieldparams.RootLength]byte) error {
	if latest == nil {
		return nil
	}
	switch {
	case slot == latest.Slot:
		if latest.MatchesRoot(signingRoot) {
			return nil
		}
		return &SlashingError{Kind: DoubleProposal, ConflictingProposal: latest}
	case slot < latest.Slot:
		return &SlashingError{Kind: DecreasingSlot, ConflictingProposal: latest}
	default:
		return nil
	}
}

// CheckAttestation evaluates a vote (source, target, signingRoot) against every
// vote in history. The order of the checks is significant: any differing or
// root-less vote at the same target is a double vote, an exact repeat is safe,
// then surround votes and finally votes below the highest signed target are rejected.
func CheckAttestation(
	history []*common.AttestationRecord,
	source, target types.Epoch,
	signingRoot [fieldparams.RootLength]byte,
) error {
	if source > target {
		return &SlashingError{Kind: InvalidRange}
	}
	repeat := false
	for _, rec := range history {
		if rec.Target != target {
			continue
		}
		if rec.Source != source || !rec.MatchesRoot(signingRoot) {
			return &SlashingError{Kind: DoubleVote, ConflictingVote: rec}
		}
		repeat = true
	}
	if repeat {
		return nil
	}
	var highest *common.AttestationRecord
	for _, rec := range history {
		if isSurround(rec.Source, rec.Target, source, target) || isSurround(source, target, rec.Source, rec.Target) {
			return &SlashingError{Kind: SurroundingVote, ConflictingVote: rec}
		}
		if highest == nil || rec.Target > highest.Target {
			highest = rec
		}
	}
	if highest != nil && target < highest.Target {
		return &SlashingError{Kind: DecreasingTarget, ConflictingVote: highest}
	}
	return nil
}

// isSurround is true when (outerSource, outerTarget) strictly encloses (innerSource, innerTarget).
func isSurround(outerSource, outerTarget, innerSource, innerTarget types.Epoch) bool {
	return outerSource < innerSource && innerTarget < outerTarget
}

// EffectiveProposal joins the highest stored proposal with the imported block
// lower bound. A bound at or above the highest proposal acts as a proposal with
// an unknown root, so no block at or below it can be signed.
func EffectiveProposal(latest *common.Proposal, bounds *common.LowerBounds) *common.Proposal {
	if bounds == nil || bounds.BlockSlot == nil {
		return latest
	}
	if latest != nil && latest.Slot > *bounds.BlockSlot {
		return latest
	}
	return &common.Proposal{Slot: *bounds.BlockSlot}
}

// EffectiveAttestations appends the imported attestation lower bounds to the
// stored history as a vote with an unknown root.
func EffectiveAttestations(history []*common.AttestationRecord, bounds *common.LowerBounds) []*common.AttestationRecord {
	if bounds == nil || bounds.AttestationSource == nil || bounds.AttestationTarget == nil {
		return history
	}
	withBound := make([]*common.AttestationRecord, len(history), len(history)+1)
	copy(withBound, history)
	return append(withBound, &common.AttestationRecord{
		Source: *bounds.AttestationSource,
		Target: *bounds.AttestationTarget,
	})
}
