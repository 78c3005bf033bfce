package params

const (
	// SupportedInterchangeFormatVersion is the highest slashing protection interchange
	// format version this client reads, and the version it writes.
	SupportedInterchangeFormatVersion = 5
	// MinInterchangeFormatVersion is the oldest interchange format version that carried
	// the minimal/complete discriminator and that this client still reads.
	MinInterchangeFormatVersion = 4
	// ValidatorDBSchemaVersion is written to the metadata bucket of every validator database.
	ValidatorDBSchemaVersion = 1
)
