package common

import "github.com/pkg/errors"

var (
	// ErrKeyNotRegistered is returned when a signing record is read or written for a
	// public key that was never registered in the validator database.
	ErrKeyNotRegistered = errors.New("public key is not registered in the validator database")
	// ErrGenesisValidatorsRootMismatch is returned when a genesis validators root
	// differs from the one the database was created with.
	ErrGenesisValidatorsRootMismatch = errors.New("genesis validators root does not match the one in the database")
)
