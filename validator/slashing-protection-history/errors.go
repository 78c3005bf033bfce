package history

import "github.com/pkg/errors"

var (
	// ErrGenesisMismatch is returned when an interchange document belongs to a
	// different chain than the validator database.
	ErrGenesisMismatch = errors.New("interchange genesis validators root does not match the database")
	// ErrUnsupportedVersion is returned for interchange format versions this client cannot read.
	ErrUnsupportedVersion = errors.New("unsupported interchange format version")
	// ErrMalformedDocument is returned when an interchange document cannot be parsed.
	ErrMalformedDocument = errors.New("malformed interchange document")
)

func malformed(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedDocument, format, args...)
}
