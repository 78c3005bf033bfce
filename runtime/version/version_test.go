package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	v := Version()
	assert.True(t, strings.HasPrefix(v, "SlashingProtection/"), v)
	assert.Contains(t, v, "Built at:")
}
