// Package format defines methods to parse, import, and export slashing protection data
// from a standard JSON file according to EIP-3076 https://eips.ethereum.org/EIPS/eip-3076. This format
// is critical to allow safe interoperability between eth2 clients.
package format

import (
	"github.com/pkg/errors"
)

// Kind of an interchange document.
type Kind string

const (
	// Minimal documents carry the highest signed slot and epochs per key.
	Minimal Kind = "minimal"
	// Complete documents carry every signed block and attestation per key.
	Complete Kind = "complete"
)

// ParseKind converts the interchange_format field of a document into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Minimal, Complete:
		return Kind(s), nil
	default:
		return "", errors.Errorf("unknown interchange format %q, expected %q or %q", s, Minimal, Complete)
	}
}

func (k Kind) String() string {
	return string(k)
}

// EIPSlashingProtectionFormat is an EIP-3076 interchange document.
type EIPSlashingProtectionFormat struct {
	Metadata Metadata          `json:"metadata"`
	Data     []*ProtectionData `json:"data"`
}

// Metadata of an interchange document.
type Metadata struct {
	InterchangeFormat        string `json:"interchange_format,omitempty"`
	InterchangeFormatVersion string `json:"interchange_format_version"`
	GenesisValidatorsRoot    string `json:"genesis_validators_root"`
}

// ProtectionData field for the standard slashing protection format. Complete
// documents fill SignedBlocks and SignedAttestations, minimal documents fill the
// LastSigned fields. Empty fields are absent.
type ProtectionData struct {
	Pubkey             string               `json:"pubkey"`
	SignedBlocks       []*SignedBlock       `json:"signed_blocks,omitempty"`
	SignedAttestations []*SignedAttestation `json:"signed_attestations,omitempty"`

	LastSignedBlockSlot              string `json:"last_signed_block_slot,omitempty"`
	LastSignedAttestationSourceEpoch string `json:"last_signed_attestation_source_epoch,omitempty"`
	LastSignedAttestationTargetEpoch string `json:"last_signed_attestation_target_epoch,omitempty"`
}

// SignedAttestation in the standard slashing protection format file, including
// a source epoch, target epoch, and an optional signing root.
type SignedAttestation struct {
	SourceEpoch string `json:"source_epoch"`
	TargetEpoch string `json:"target_epoch"`
	SigningRoot string `json:"signing_root,omitempty"`
}

// SignedBlock in the standard slashing protection format, including a slot
// and an optional signing root.
type SignedBlock struct {
	Slot        string `json:"slot"`
	SigningRoot string `json:"signing_root,omitempty"`
}
