package history

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/k0kubun/go-ansi"
	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/prysm-slashing-protection/config/fieldparams"
	types "github.com/prysmaticlabs/prysm-slashing-protection/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-slashing-protection/encoding/bytesutil"
	"github.com/schollz/progressbar/v3"
)

func initializeProgressBar(numItems int, msg string) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		numItems,
		progressbar.OptionFullWidth(),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
		progressbar.OptionSetDescription(msg),
	)
}

func incrementProgressBar(bar *progressbar.ProgressBar) {
	if err := bar.Add(1); err != nil {
		log.WithError(err).Debug("Could not increase progress bar percentage")
	}
}

// Uint64FromString converts a decimal string into a uint64.
func Uint64FromString(str string) (uint64, error) {
	return strconv.ParseUint(str, 10, 64)
}

// EpochFromString converts a decimal string into an Epoch.
func EpochFromString(str string) (types.Epoch, error) {
	e, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0, err
	}
	return types.Epoch(e), nil
}

// SlotFromString converts a decimal string into a Slot.
func SlotFromString(str string) (types.Slot, error) {
	s, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0, err
	}
	return types.Slot(s), nil
}

// PubKeyFromHex takes in a 0x prefixed hex string, verifies its length as 48 bytes, and converts that representation.
func PubKeyFromHex(str string) ([fieldparams.BLSPubkeyLength]byte, error) {
	pubKeyBytes, err := hexutil.Decode(str)
	if err != nil {
		return [fieldparams.BLSPubkeyLength]byte{}, err
	}
	if len(pubKeyBytes) != fieldparams.BLSPubkeyLength {
		return [fieldparams.BLSPubkeyLength]byte{}, fmt.Errorf("public key is not correct, 48-byte length: %s", str)
	}
	return bytesutil.ToBytes48(pubKeyBytes), nil
}

// RootFromHex takes in a 0x prefixed hex string, verifies its length as 32 bytes, and converts that representation.
func RootFromHex(str string) ([fieldparams.RootLength]byte, error) {
	rootBytes, err := hexutil.Decode(str)
	if err != nil {
		return [fieldparams.RootLength]byte{}, err
	}
	if len(rootBytes) != fieldparams.RootLength {
		return [fieldparams.RootLength]byte{}, fmt.Errorf("wrong root length, 32-byte length: %s", str)
	}
	return bytesutil.ToBytes32(rootBytes), nil
}

func rootToHexString(root []byte) (string, error) {
	// Nil signing roots are allowed in EIP-3076.
	if len(root) == 0 {
		return "", nil
	}
	if len(root) != fieldparams.RootLength {
		return "", errors.Errorf("wanted length 32, received %d", len(root))
	}
	return hexutil.Encode(root), nil
}

func pubKeyToHexString(pubKey []byte) (string, error) {
	if len(pubKey) != fieldparams.BLSPubkeyLength {
		return "", errors.Errorf("wanted length 48, received %d", len(pubKey))
	}
	return hexutil.Encode(pubKey), nil
}
