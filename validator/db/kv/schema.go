package kv

// Buckets of the validator database. Every registered public key owns a nested
// bucket under pubKeysBucket holding its proposal history, attestation history
// and imported lower bounds.
var (
	// Genesis information and schema metadata.
	genesisInfoBucket = []byte("genesis-info-bucket")

	// Registered public keys.
	pubKeysBucket = []byte("pubkeys-bucket")

	// Nested buckets per public key.
	proposalHistoryBucket    = []byte("proposal-history-bucket")
	attestationHistoryBucket = []byte("attestation-history-bucket")
	lowerBoundsBucket        = []byte("lower-bounds-bucket")
)

var (
	genesisValidatorsRootKey = []byte("genesis-val-root")
	schemaVersionKey         = []byte("schema-version")

	lowestBlockSlotKey         = []byte("lowest-block-slot")
	lowestAttestationSourceKey = []byte("lowest-attestation-source")
	lowestAttestationTargetKey = []byte("lowest-attestation-target")
)
