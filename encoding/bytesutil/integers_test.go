package bytesutil_test

import (
	"testing"

	types "github.com/prysmaticlabs/prysm-slashing-protection/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-slashing-protection/encoding/bytesutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint64ToBytes_RoundTrip(t *testing.T) {
	for i := uint64(0); i < 10000; i++ {
		b := bytesutil.Uint64ToBytesBigEndian(i)
		if got := bytesutil.BytesToUint64BigEndian(b); got != i {
			t.Error("Round trip did not match original value")
		}
	}
}

func TestBytesToUint64BigEndian_ShortInput(t *testing.T) {
	assert.Equal(t, uint64(0), bytesutil.BytesToUint64BigEndian(nil))
	assert.Equal(t, uint64(0), bytesutil.BytesToUint64BigEndian([]byte{1, 2, 3}))
}

func TestBigEndian_SortsNumerically(t *testing.T) {
	// Bucket cursors rely on big-endian keys ordering like the integers they encode.
	lower := bytesutil.SlotToBytesBigEndian(255)
	higher := bytesutil.SlotToBytesBigEndian(256)
	require.Equal(t, -1, compare(lower, higher))
	assert.Equal(t, types.Slot(256), bytesutil.BytesToSlotBigEndian(higher))
	assert.Equal(t, types.Epoch(7), bytesutil.BytesToEpochBigEndian(bytesutil.EpochToBytesBigEndian(7)))
}

func TestSafeCopyBytes(t *testing.T) {
	assert.Nil(t, bytesutil.SafeCopyBytes(nil))
	input := []byte{1, 2, 3}
	copied := bytesutil.SafeCopyBytes(input)
	input[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, copied)
}

func TestToBytes(t *testing.T) {
	r := bytesutil.ToBytes32([]byte{1, 2})
	assert.Equal(t, byte(1), r[0])
	assert.Equal(t, byte(0), r[31])
	pk := bytesutil.ToBytes48(make([]byte, 60))
	assert.Equal(t, 48, len(pk))
	assert.Equal(t, true, bytesutil.ZeroRoot(r[2:]))
	assert.Equal(t, false, bytesutil.ZeroRoot(r[:]))
	assert.Equal(t, []byte{1, 2, 0, 0, 0, 0}, bytesutil.Trunc(r[:]))
}

func compare(a, b []byte) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
