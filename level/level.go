// Package level stores compressed level containers in the places the game's
// tooling uses: a standalone .bin file, or a ZIP archive holding one entry per
// editor slot.
package level

import (
	"errors"
	"fmt"
	"regexp"
)

// NumSlots is the number of level slots on one editor page.
const NumSlots = 20

var (
	ErrNotFound    = errors.New("level not found")
	ErrInvalidSlot = errors.New("slot out of range")
)

// slotEntry matches archive entries owned by a slot, compressed or raw.
var slotEntry = regexp.MustCompile(`^(0[1-9]|1\d|20)\.(bin|lvl)$`)

// Level is a location holding one compressed level.
type Level interface {
	// Exists reports whether the level is present.
	Exists() (bool, error)
	// Read returns the decompressed level, or ErrNotFound.
	Read() ([]byte, error)
	// Write compresses data and replaces or creates the level.
	Write(data []byte) error
	// Delete removes the level, or returns ErrNotFound.
	Delete() error
	// Len returns the decompressed size recorded in the container header.
	Len() (int, error)
}

// EntryName returns the archive entry name for a 1-based slot.
func EntryName(slot int) string {
	return fmt.Sprintf("%02d.bin", slot)
}

func checkSlot(slot int) error {
	if slot < 1 || slot > NumSlots {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidSlot, slot, NumSlots)
	}

	return nil
}
