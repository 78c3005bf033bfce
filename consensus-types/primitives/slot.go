package types

import (
	"fmt"
)

// Slot represents a single slot.
type Slot uint64

// String returns the decimal representation of the slot.
func (s Slot) String() string {
	return fmt.Sprintf("%d", uint64(s))
}
