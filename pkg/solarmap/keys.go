package solarmap

import (
	"fmt"
	"strings"
)

// A KeyLookup names the header keywords that may hold a field, in the order
// they are tried. Instruments disagree on the short and long forms.
type KeyLookup struct {
	Primary  string
	Fallback string
}

func (kl KeyLookup) Keys() []string {
	keys := []string{}
	for _, k := range []string{kl.Primary, kl.Fallback} {
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// KeyTable has a KeyLookup for each observation field.
type KeyTable struct {
	B0     KeyLookup
	L0     KeyLookup
	X0     KeyLookup
	Y0     KeyLookup
	ScaleX KeyLookup
	ScaleY KeyLookup
	Rsun   KeyLookup
}

func DefaultKeyTable() KeyTable {
	return KeyTable{
		B0:     KeyLookup{"B0", "OBS_B0"},
		L0:     KeyLookup{"L0", "OBS_L0"},
		X0:     KeyLookup{"X0", "IMG_X0"},
		Y0:     KeyLookup{"Y0", "IMG_Y0"},
		ScaleX: KeyLookup{"CDELT1", "XSCALE"},
		ScaleY: KeyLookup{"CDELT2", "YSCALE"},
		Rsun:   KeyLookup{"RSUN_OBS", "SOLAR_R"},
	}
}

// MissingMetadataError is returned when none of the keywords for a field
// are in the header.
type MissingMetadataError struct {
	Field string
	Keys  []string
}

func (e *MissingMetadataError) Error() string {
	return fmt.Sprintf("missing metadata for %s (tried %s)", e.Field, strings.Join(e.Keys, ", "))
}
