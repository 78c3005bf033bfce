// Package local implements mandatory, database backed slashing protection for the
// validator client. Every block and attestation must pass through the service
// before it is signed.
package local

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/prysm-slashing-protection/config/fieldparams"
	types "github.com/prysmaticlabs/prysm-slashing-protection/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-slashing-protection/encoding/bytesutil"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/common"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/db/iface"
	history "github.com/prysmaticlabs/prysm-slashing-protection/validator/slashing-protection-history"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/slashing-protection-history/format"
	"github.com/prysmaticlabs/prysm-slashing-protection/validator/slashing-protection/rules"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

var log = logrus.WithField("prefix", "local-slashing-protection")

const (
	blockLabel       = "block"
	attestationLabel = "attestation"
)

// Service to manage validator slashing protection. Local slashing
// protection is mandatory at runtime.
type Service struct {
	ctx         context.Context
	cancel      context.CancelFunc
	validatorDB iface.ValidatorDB
}

// Config for the slashing protection service.
type Config struct {
	ValidatorDB iface.ValidatorDB
}

// NewService creates a new validator service for the service registry.
func NewService(ctx context.Context, cfg *Config) (*Service, error) {
	if cfg == nil || cfg.ValidatorDB == nil {
		return nil, errors.New("a validator database is required for slashing protection")
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Service{
		ctx:         ctx,
		cancel:      cancel,
		validatorDB: cfg.ValidatorDB,
	}, nil
}

// Start the slashing protection service.
func (s *Service) Start() {
	log.WithField("database", s.validatorDB.DatabasePath()).Info("Starting local slashing protection")
}

// Stop the slashing protection service.
func (s *Service) Stop() error {
	s.cancel()
	return nil
}

// Status of the slashing protection service.
func (s *Service) Status() error {
	if err := s.ctx.Err(); err != nil {
		return errors.Wrap(err, "slashing protection service is stopped")
	}
	return nil
}

// RegisterValidators makes the given keys known to slashing protection. Signing
// with an unregistered key is refused.
func (s *Service) RegisterValidators(ctx context.Context, pubKeys [][fieldparams.BLSPubkeyLength]byte) error {
	_, span := trace.StartSpan(ctx, "local.RegisterValidators")
	defer span.End()
	if err := s.validatorDB.UpdatePublicKeysBuckets(pubKeys); err != nil {
		return errors.Wrap(err, "could not register validator public keys")
	}
	return nil
}

// CheckAndInsertBlock records a block proposal at slot when signing it is safe.
// A nil error means the proposal was durably recorded and may be signed. A
// slashable proposal is refused with a *rules.SlashingError and an unregistered
// key with common.ErrKeyNotRegistered.
func (s *Service) CheckAndInsertBlock(
	ctx context.Context,
	pubKey [fieldparams.BLSPubkeyLength]byte,
	slot types.Slot,
	signingRoot [fieldparams.RootLength]byte,
) error {
	ctx, span := trace.StartSpan(ctx, "local.CheckAndInsertBlock")
	defer span.End()
	err := s.validatorDB.CheckAndInsertBlock(ctx, pubKey, slot, signingRoot)
	if err == nil {
		signingAcceptedTotal.WithLabelValues(blockLabel).Inc()
		return nil
	}
	fields := logrus.Fields{
		"pubKey":      fmt.Sprintf("%#x", bytesutil.Trunc(pubKey[:])),
		"slot":        slot,
		"signingRoot": fmt.Sprintf("%#x", bytesutil.Trunc(signingRoot[:])),
	}
	var slashingErr *rules.SlashingError
	if errors.As(err, &slashingErr) {
		slashableSigningDenialsTotal.WithLabelValues(slashingErr.Kind.String()).Inc()
		fields["kind"] = slashingErr.Kind.String()
		if slashingErr.ConflictingProposal != nil {
			fields["conflictingProposal"] = slashingErr.ConflictingProposal.String()
		}
		log.WithFields(fields).Error("Refusing to sign slashable block")
		return err
	}
	if errors.Is(err, common.ErrKeyNotRegistered) {
		unregisteredKeyDenialsTotal.WithLabelValues(blockLabel).Inc()
		log.WithFields(fields).Error("Refusing to sign block with a public key not registered for slashing protection")
		return err
	}
	protectionErrorsTotal.WithLabelValues(blockLabel).Inc()
	log.WithError(err).WithFields(fields).Error("Could not check block against slashing protection history")
	return errors.Wrap(err, "could not check block against slashing protection history")
}

// CheckAndInsertAttestation records the vote (source, target) when signing it is
// safe. A nil error means the vote was durably recorded and may be signed. A
// slashable vote is refused with a *rules.SlashingError.
func (s *Service) CheckAndInsertAttestation(
	ctx context.Context,
	pubKey [fieldparams.BLSPubkeyLength]byte,
	source, target types.Epoch,
	signingRoot [fieldparams.RootLength]byte,
) error {
	ctx, span := trace.StartSpan(ctx, "local.CheckAndInsertAttestation")
	defer span.End()
	err := s.validatorDB.CheckAndInsertAttestation(ctx, pubKey, source, target, signingRoot)
	if err == nil {
		signingAcceptedTotal.WithLabelValues(attestationLabel).Inc()
		return nil
	}
	fields := logrus.Fields{
		"pubKey":      fmt.Sprintf("%#x", bytesutil.Trunc(pubKey[:])),
		"sourceEpoch": source,
		"targetEpoch": target,
		"signingRoot": fmt.Sprintf("%#x", bytesutil.Trunc(signingRoot[:])),
	}
	var slashingErr *rules.SlashingError
	if errors.As(err, &slashingErr) {
		slashableSigningDenialsTotal.WithLabelValues(slashingErr.Kind.String()).Inc()
		fields["kind"] = slashingErr.Kind.String()
		if slashingErr.ConflictingVote != nil {
			fields["conflictingAttestation"] = slashingErr.ConflictingVote.String()
		}
		log.WithFields(fields).Error("Refusing to sign slashable attestation")
		return err
	}
	if errors.Is(err, common.ErrKeyNotRegistered) {
		unregisteredKeyDenialsTotal.WithLabelValues(attestationLabel).Inc()
		log.WithFields(fields).Error("Refusing to sign attestation with a public key not registered for slashing protection")
		return err
	}
	protectionErrorsTotal.WithLabelValues(attestationLabel).Inc()
	log.WithError(err).WithFields(fields).Error("Could not check attestation against slashing protection history")
	return errors.Wrap(err, "could not check attestation against slashing protection history")
}

// ExportInterchange exports the slashing protection history of every registered key.
func (s *Service) ExportInterchange(ctx context.Context, kind format.Kind) (*format.EIPSlashingProtectionFormat, error) {
	return history.ExportInterchange(ctx, s.validatorDB, kind)
}

// ImportInterchange merges an interchange document into the slashing protection history.
// On error nothing is imported.
func (s *Service) ImportInterchange(ctx context.Context, doc *format.EIPSlashingProtectionFormat) error {
	return history.ImportInterchange(ctx, s.validatorDB, doc)
}
