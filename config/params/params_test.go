package params_test

import (
	"testing"

	"github.com/prysmaticlabs/prysm-slashing-protection/config/params"
	"github.com/stretchr/testify/assert"
)

func TestValidatorIoConfig_Defaults(t *testing.T) {
	cfg := params.ValidatorIoConfig()
	assert.Equal(t, 0600, int(cfg.ReadWritePermissions))
	assert.Equal(t, 0700, int(cfg.ReadWriteExecutePermissions))
	assert.NotZero(t, cfg.BoltTimeout)
}

func TestInterchangeVersions(t *testing.T) {
	assert.GreaterOrEqual(t, params.SupportedInterchangeFormatVersion, params.MinInterchangeFormatVersion)
}
