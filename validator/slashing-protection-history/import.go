package history

import (
	"bytes"
	"context"
	"io"

	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/prysm-slashing-protection/config/fieldparams"
	"github.com/prysmaticlabs/prysm-slashing-protection/config/params"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/common"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/iface"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/slashing-protection-history/format"
	"github.com/schollz/progressbar/v3"
	"go.opencensus.io/trace"
)

// ImportStandardProtectionJSON takes in EIP-3076 compliant JSON file used for slashing protection
// by Ethereum validators and imports its data into the validator client's database. For more
// information, see the EIP document here: https://eips.ethereum.org/EIPS/eip-3076.
func ImportStandardProtectionJSON(ctx context.Context, validatorDB iface.ValidatorDB, r io.Reader) error {
	encodedJSON, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "could not read slashing protection JSON file")
	}
	interchangeJSON := &format.EIPSlashingProtectionFormat{}
	if err := json.Unmarshal(encodedJSON, interchangeJSON); err != nil {
		return malformed("could not unmarshal slashing protection JSON file: %v", err)
	}
	return ImportInterchange(ctx, validatorDB, interchangeJSON)
}

// ImportInterchange validates a decoded interchange document and merges it into the
// validator database in a single transaction. Any error leaves the database unchanged.
func ImportInterchange(ctx context.Context, validatorDB iface.ValidatorDB, doc *format.EIPSlashingProtectionFormat) error {
	ctx, span := trace.StartSpan(ctx, "history.ImportInterchange")
	defer span.End()
	if doc == nil {
		return malformed("empty document")
	}
	kind, genesisValidatorsRoot, err := parseMetadata(&doc.Metadata)
	if err != nil {
		return err
	}

	storedRoot, err := validatorDB.GenesisValidatorsRoot(ctx)
	if err != nil {
		return errors.Wrap(err, "could not get genesis validators root from database")
	}
	if storedRoot != nil && !bytes.Equal(storedRoot, genesisValidatorsRoot[:]) {
		return errors.Wrapf(
			ErrGenesisMismatch,
			"document has root %s but database has root %#x", doc.Metadata.GenesisValidatorsRoot, storedRoot,
		)
	}

	// Parse everything before writing anything.
	bar := initializeProgressBar(len(doc.Data), "Importing slashing protection history")
	histories, err := parseProtectionData(kind, doc.Data, bar)
	if err != nil {
		return err
	}

	if err := validatorDB.MergeProtectionHistory(ctx, genesisValidatorsRoot[:], histories); err != nil {
		if errors.Is(err, common.ErrGenesisValidatorsRootMismatch) {
			return errors.Wrap(ErrGenesisMismatch, err.Error())
		}
		return errors.Wrap(err, "could not merge slashing protection history into database")
	}
	log.WithField("numKeys", len(histories)).WithField("format", kind).Info("Imported slashing protection history")
	return nil
}

func parseMetadata(metadata *format.Metadata) (format.Kind, [fieldparams.RootLength]byte, error) {
	var root [fieldparams.RootLength]byte
	version, err := Uint64FromString(metadata.InterchangeFormatVersion)
	if err != nil {
		return "", root, malformed("interchange format version %q is not a number", metadata.InterchangeFormatVersion)
	}
	if version < params.MinInterchangeFormatVersion || version > params.SupportedInterchangeFormatVersion {
		return "", root, errors.Wrapf(
			ErrUnsupportedVersion,
			"version %d, supported versions are %d to %d",
			version, params.MinInterchangeFormatVersion, params.SupportedInterchangeFormatVersion,
		)
	}
	var kind format.Kind
	if metadata.InterchangeFormat == "" && version == params.SupportedInterchangeFormatVersion {
		// Version 5 dropped the interchange_format field in favour of complete documents.
		kind = format.Complete
	} else {
		kind, err = format.ParseKind(metadata.InterchangeFormat)
		if err != nil {
			return "", root, malformed("%v", err)
		}
	}
	root, err = RootFromHex(metadata.GenesisValidatorsRoot)
	if err != nil {
		return "", root, malformed("invalid genesis validators root %q: %v", metadata.GenesisValidatorsRoot, err)
	}
	return kind, root, nil
}

func parseProtectionData(
	kind format.Kind, data []*format.ProtectionData, bar *progressbar.ProgressBar,
) ([]*common.ProtectionHistory, error) {
	histories := make([]*common.ProtectionHistory, 0, len(data))
	byPubKey := make(map[[fieldparams.BLSPubkeyLength]byte]*common.ProtectionHistory, len(data))
	for i, validatorData := range data {
		if validatorData == nil {
			return nil, malformed("data entry %d is empty", i)
		}
		pubKey, err := PubKeyFromHex(validatorData.Pubkey)
		if err != nil {
			return nil, malformed("%q is not a valid public key: %v", validatorData.Pubkey, err)
		}
		switch kind {
		case format.Minimal:
			if _, ok := byPubKey[pubKey]; ok {
				return nil, malformed("public key %s appears more than once", validatorData.Pubkey)
			}
			h, err := parseMinimalData(pubKey, validatorData)
			if err != nil {
				return nil, errors.Wrapf(err, "public key %s", validatorData.Pubkey)
			}
			byPubKey[pubKey] = h
			histories = append(histories, h)
		case format.Complete:
			h, ok := byPubKey[pubKey]
			if !ok {
				// Entries of the same key in a complete document are merged.
				h = &common.ProtectionHistory{PubKey: pubKey}
				byPubKey[pubKey] = h
				histories = append(histories, h)
			}
			if err := parseCompleteData(h, validatorData); err != nil {
				return nil, errors.Wrapf(err, "public key %s", validatorData.Pubkey)
			}
		}
		incrementProgressBar(bar)
	}
	return histories, nil
}

func parseMinimalData(pubKey [fieldparams.BLSPubkeyLength]byte, data *format.ProtectionData) (*common.ProtectionHistory, error) {
	if len(data.SignedBlocks) > 0 || len(data.SignedAttestations) > 0 {
		return nil, malformed("minimal entry carries signed blocks or attestations")
	}
	bounds := &common.LowerBounds{}
	if data.LastSignedBlockSlot != "" {
		slot, err := SlotFromString(data.LastSignedBlockSlot)
		if err != nil {
			return nil, malformed("%q is not a valid slot: %v", data.LastSignedBlockSlot, err)
		}
		bounds.BlockSlot = &slot
	}
	hasSource, hasTarget := data.LastSignedAttestationSourceEpoch != "", data.LastSignedAttestationTargetEpoch != ""
	if hasSource != hasTarget {
		return nil, malformed("attestation source and target epochs must be given together")
	}
	if hasSource {
		source, err := EpochFromString(data.LastSignedAttestationSourceEpoch)
		if err != nil {
			return nil, malformed("%q is not a valid epoch: %v", data.LastSignedAttestationSourceEpoch, err)
		}
		target, err := EpochFromString(data.LastSignedAttestationTargetEpoch)
		if err != nil {
			return nil, malformed("%q is not a valid epoch: %v", data.LastSignedAttestationTargetEpoch, err)
		}
		if source > target {
			return nil, malformed("attestation source epoch %d is greater than target epoch %d", source, target)
		}
		bounds.AttestationSource = &source
		bounds.AttestationTarget = &target
	}
	return &common.ProtectionHistory{PubKey: pubKey, Bounds: bounds}, nil
}

func parseCompleteData(h *common.ProtectionHistory, data *format.ProtectionData) error {
	if data.LastSignedBlockSlot != "" ||
		data.LastSignedAttestationSourceEpoch != "" ||
		data.LastSignedAttestationTargetEpoch != "" {
		return malformed("complete entry carries minimal fields")
	}
	for _, block := range data.SignedBlocks {
		if block == nil {
			return malformed("empty signed block")
		}
		slot, err := SlotFromString(block.Slot)
		if err != nil {
			return malformed("%q is not a valid slot: %v", block.Slot, err)
		}
		signingRoot, err := optionalRoot(block.SigningRoot)
		if err != nil {
			return err
		}
		h.Proposals = append(h.Proposals, &common.Proposal{Slot: slot, SigningRoot: signingRoot})
	}
	for _, att := range data.SignedAttestations {
		if att == nil {
			return malformed("empty signed attestation")
		}
		source, err := EpochFromString(att.SourceEpoch)
		if err != nil {
			return malformed("%q is not a valid epoch: %v", att.SourceEpoch, err)
		}
		target, err := EpochFromString(att.TargetEpoch)
		if err != nil {
			return malformed("%q is not a valid epoch: %v", att.TargetEpoch, err)
		}
		if source > target {
			return malformed("attestation source epoch %d is greater than target epoch %d", source, target)
		}
		signingRoot, err := optionalRoot(att.SigningRoot)
		if err != nil {
			return err
		}
		h.Attestations = append(h.Attestations, &common.AttestationRecord{
			Source:      source,
			Target:      target,
			SigningRoot: signingRoot,
		})
	}
	return nil
}

func optionalRoot(str string) ([]byte, error) {
	if str == "" {
		return nil, nil
	}
	root, err := RootFromHex(str)
	if err != nil {
		return nil, malformed("%q is not a valid signing root: %v", str, err)
	}
	return root[:], nil
}
