package params

import (
	"os"
	"time"
)

// IoConfig defines the shared io parameters.
type IoConfig struct {
	ReadWritePermissions        os.FileMode
	ReadWriteExecutePermissions os.FileMode
	BoltTimeout                 time.Duration
}

var defaultIoConfig = &IoConfig{
	ReadWritePermissions:        0600,
	ReadWriteExecutePermissions: 0700,
	BoltTimeout:                 1 * time.Second,
}

// ValidatorIoConfig returns the io config used by the validator database and tooling.
func ValidatorIoConfig() *IoConfig {
	return defaultIoConfig
}
