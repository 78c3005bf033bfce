package history

import (
	"context"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/prysm-slashing-protection/config/fieldparams"
	"github.com/prysmaticlabs/prysm-slashing-protection/config/params"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/common"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/iface"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/slashing-protection-history/format"
	"go.opencensus.io/trace"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ExportStandardProtectionJSON extracts all slashing protection data from a validator
// database in the requested EIP-3076 format and writes it as indented JSON to w.
func ExportStandardProtectionJSON(
	ctx context.Context,
	validatorDB iface.ValidatorDB,
	kind format.Kind,
	w io.Writer,
) error {
	doc, err := ExportInterchange(ctx, validatorDB, kind)
	if err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not marshal slashing protection JSON")
	}
	if _, err := w.Write(encoded); err != nil {
		return errors.Wrap(err, "could not write slashing protection JSON")
	}
	return nil
}

// ExportInterchange extracts all slashing protection data from a validator database
// into an interchange document of the requested format.
func ExportInterchange(
	ctx context.Context, validatorDB iface.ValidatorDB, kind format.Kind,
) (*format.EIPSlashingProtectionFormat, error) {
	switch kind {
	case format.Minimal:
		return ExportMinimal(ctx, validatorDB)
	case format.Complete:
		return ExportComplete(ctx, validatorDB)
	default:
		return nil, errors.Errorf("unknown interchange format %q", kind)
	}
}

// ExportMinimal packages, for every registered key, the highest signed block slot
// and the highest signed source and target epochs, imported lower bounds included.
// Categories a key never signed are left out.
func ExportMinimal(ctx context.Context, validatorDB iface.ValidatorDB) (*format.EIPSlashingProtectionFormat, error) {
	ctx, span := trace.StartSpan(ctx, "history.ExportMinimal")
	defer span.End()
	doc, pubKeys, err := newDocument(ctx, validatorDB, format.Minimal)
	if err != nil {
		return nil, err
	}
	bar := initializeProgressBar(len(pubKeys), "Exporting minimal slashing protection history")
	for _, pubKey := range pubKeys {
		pubKeyHex, err := pubKeyToHexString(pubKey[:])
		if err != nil {
			return nil, err
		}
		data := &format.ProtectionData{Pubkey: pubKeyHex}
		proposal, exists, err := validatorDB.HighestSignedProposal(ctx, pubKey)
		if err != nil {
			return nil, errors.Wrapf(err, "could not get highest signed proposal for %s", pubKeyHex)
		}
		if exists {
			data.LastSignedBlockSlot = fmt.Sprintf("%d", proposal.Slot)
		}
		source, target, exists, err := validatorDB.AttestationBounds(ctx, pubKey)
		if err != nil {
			return nil, errors.Wrapf(err, "could not get attestation bounds for %s", pubKeyHex)
		}
		if exists {
			data.LastSignedAttestationSourceEpoch = fmt.Sprintf("%d", source)
			data.LastSignedAttestationTargetEpoch = fmt.Sprintf("%d", target)
		}
		doc.Data = append(doc.Data, data)
		incrementProgressBar(bar)
	}
	return doc, nil
}

// ExportComplete packages every stored proposal and attestation of every registered
// key, in ascending slot and target order. Imported lower bounds at or above the
// highest record are exported as a record without a signing root, replacing a record
// at the same slot or target.
func ExportComplete(ctx context.Context, validatorDB iface.ValidatorDB) (*format.EIPSlashingProtectionFormat, error) {
	ctx, span := trace.StartSpan(ctx, "history.ExportComplete")
	defer span.End()
	doc, pubKeys, err := newDocument(ctx, validatorDB, format.Complete)
	if err != nil {
		return nil, err
	}
	bar := initializeProgressBar(len(pubKeys), "Exporting complete slashing protection history")
	for _, pubKey := range pubKeys {
		pubKeyHex, err := pubKeyToHexString(pubKey[:])
		if err != nil {
			return nil, err
		}
		bounds, err := validatorDB.LowerBoundsForPubKey(ctx, pubKey)
		if err != nil {
			return nil, errors.Wrapf(err, "could not get lower bounds for %s", pubKeyHex)
		}
		signedBlocks, err := signedBlocksByPubKey(ctx, validatorDB, pubKey, bounds)
		if err != nil {
			return nil, errors.Wrapf(err, "could not get signed blocks for %s", pubKeyHex)
		}
		signedAttestations, err := signedAttestationsByPubKey(ctx, validatorDB, pubKey, bounds)
		if err != nil {
			return nil, errors.Wrapf(err, "could not get signed attestations for %s", pubKeyHex)
		}
		doc.Data = append(doc.Data, &format.ProtectionData{
			Pubkey:             pubKeyHex,
			SignedBlocks:       signedBlocks,
			SignedAttestations: signedAttestations,
		})
		incrementProgressBar(bar)
	}
	return doc, nil
}

func newDocument(
	ctx context.Context, validatorDB iface.ValidatorDB, kind format.Kind,
) (*format.EIPSlashingProtectionFormat, [][fieldparams.BLSPubkeyLength]byte, error) {
	genesisValidatorsRoot, err := validatorDB.GenesisValidatorsRoot(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not get genesis validators root")
	}
	if len(genesisValidatorsRoot) == 0 {
		return nil, nil, errors.New("genesis validators root is empty, perhaps you are not connected to your beacon node")
	}
	genesisRootHex, err := rootToHexString(genesisValidatorsRoot)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not parse genesis validators root")
	}
	pubKeys, err := validatorDB.RegisteredPublicKeys(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not get registered public keys")
	}
	doc := &format.EIPSlashingProtectionFormat{
		Metadata: format.Metadata{
			InterchangeFormat:        kind.String(),
			InterchangeFormatVersion: fmt.Sprintf("%d", params.SupportedInterchangeFormatVersion),
			GenesisValidatorsRoot:    genesisRootHex,
		},
		Data: make([]*format.ProtectionData, 0, len(pubKeys)),
	}
	return doc, pubKeys, nil
}

func signedBlocksByPubKey(
	ctx context.Context,
	validatorDB iface.ValidatorDB,
	pubKey [fieldparams.BLSPubkeyLength]byte,
	bounds *common.LowerBounds,
) ([]*format.SignedBlock, error) {
	proposals, err := validatorDB.ProposalHistoryForPubKey(ctx, pubKey)
	if err != nil {
		return nil, err
	}
	signedBlocks := make([]*format.SignedBlock, 0, len(proposals)+1)
	for _, proposal := range proposals {
		root, err := rootToHexString(proposal.SigningRoot)
		if err != nil {
			return nil, err
		}
		signedBlocks = append(signedBlocks, &format.SignedBlock{
			Slot:        fmt.Sprintf("%d", proposal.Slot),
			SigningRoot: root,
		})
	}
	if bounds != nil && bounds.BlockSlot != nil {
		bound := &format.SignedBlock{Slot: fmt.Sprintf("%d", *bounds.BlockSlot)}
		switch {
		case len(proposals) == 0 || *bounds.BlockSlot > proposals[len(proposals)-1].Slot:
			signedBlocks = append(signedBlocks, bound)
		case *bounds.BlockSlot == proposals[len(proposals)-1].Slot:
			// The bound wins over a record at the same slot.
			signedBlocks[len(signedBlocks)-1] = bound
		}
	}
	return signedBlocks, nil
}

func signedAttestationsByPubKey(
	ctx context.Context,
	validatorDB iface.ValidatorDB,
	pubKey [fieldparams.BLSPubkeyLength]byte,
	bounds *common.LowerBounds,
) ([]*format.SignedAttestation, error) {
	records, err := validatorDB.AttestationHistoryForPubKey(ctx, pubKey)
	if err != nil {
		return nil, err
	}
	signedAttestations := make([]*format.SignedAttestation, 0, len(records)+1)
	for _, rec := range records {
		root, err := rootToHexString(rec.SigningRoot)
		if err != nil {
			return nil, err
		}
		signedAttestations = append(signedAttestations, &format.SignedAttestation{
			SourceEpoch: fmt.Sprintf("%d", rec.Source),
			TargetEpoch: fmt.Sprintf("%d", rec.Target),
			SigningRoot: root,
		})
	}
	if bounds != nil && bounds.AttestationSource != nil && bounds.AttestationTarget != nil {
		bound := &format.SignedAttestation{
			SourceEpoch: fmt.Sprintf("%d", *bounds.AttestationSource),
			TargetEpoch: fmt.Sprintf("%d", *bounds.AttestationTarget),
		}
		switch {
		case len(records) == 0 || *bounds.AttestationTarget > records[len(records)-1].Target:
			signedAttestations = append(signedAttestations, bound)
		case *bounds.AttestationTarget == records[len(records)-1].Target:
			signedAttestations[len(signedAttestations)-1] = bound
		}
	}
	return signedAttestations, nil
}
