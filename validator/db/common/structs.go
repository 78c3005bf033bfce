// Package common defines the records shared by the validator database and the
// slashing protection packages built on top of it.
package common

import (
	"bytes"
	"fmt"

	fieldparams "github.com/prysmaticlabs/prysm-slashing-protection/config/fieldparams"
	types "github.com/prysmaticlabs/prysm-slashing-protection/consensus-types/primitives"
)

// Proposal representation for a validator public key.
// A nil SigningRoot means the proposal is known to exist but its root is not.
type Proposal struct {
	Slot        types.Slot `json:"slot"`
	SigningRoot []byte     `json:"signing_root"`
}

// AttestationRecord which can be represented by these simple values
// for manipulation by database methods.
// A nil SigningRoot means the vote is known to exist but its root is not.
type AttestationRecord struct {
	Source      types.Epoch
	Target      types.Epoch
	SigningRoot []byte
}

// LowerBounds are per-key watermarks raised by minimal interchange imports.
// Each bound is optional; a nil bound was never imported.
type LowerBounds struct {
	BlockSlot         *types.Slot
	AttestationSource *types.Epoch
	AttestationTarget *types.Epoch
}

// ProtectionHistory is the decoded slashing protection data of a single key,
// ready to be merged into the database.
type ProtectionHistory struct {
	PubKey       [fieldparams.BLSPubkeyLength]byte
	Proposals    []*Proposal
	Attestations []*AttestationRecord
	// Bounds is set for minimal interchange entries only.
	Bounds *LowerBounds
}

// HasRoot reports whether the signing root of the proposal is known.
func (p *Proposal) HasRoot() bool {
	return len(p.SigningRoot) == fieldparams.RootLength
}

// MatchesRoot is true only when the proposal has a known root equal to root.
func (p *Proposal) MatchesRoot(root [fieldparams.RootLength]byte) bool {
	return p.HasRoot() && bytes.Equal(p.SigningRoot, root[:])
}

func (p *Proposal) String() string {
	return fmt.Sprintf("slot=%d signingRoot=%s", p.Slot, rootString(p.SigningRoot))
}

// HasRoot reports whether the signing root of the attestation is known.
func (a *AttestationRecord) HasRoot() bool {
	return len(a.SigningRoot) == fieldparams.RootLength
}

// MatchesRoot is true only when the attestation has a known root equal to root.
func (a *AttestationRecord) MatchesRoot(root [fieldparams.RootLength]byte) bool {
	return a.HasRoot() && bytes.Equal(a.SigningRoot, root[:])
}

func (a *AttestationRecord) String() string {
	return fmt.Sprintf("source=%d target=%d signingRoot=%s", a.Source, a.Target, rootString(a.SigningRoot))
}

func rootString(root []byte) string {
	if len(root) == 0 {
		return "unknown"
	}
	return fmt.Sprintf("%#x", root)
}
