// Package voices provides the catalog of predefined Pocket TTS voices.
// Changing the available voices means editing this list; there is no runtime
// configuration path.
package voices

import (
	"slices"
	"strings"
)

// Default is the voice used by generate_audio when none is given.
const Default = "alba"

// predefined is the ordered list of voices compiled into the engine.
var predefined = []string{
	"alba",
	"marius",
	"javert",
	"jean",
	"fantine",
	"cosette",
	"eponine",
	"azelma",
}

// Predefined returns the predefined voice identifiers in catalog order.
// The returned slice is a copy.
func Predefined() []string {
	return slices.Clone(predefined)
}

// IsPredefined reports whether id names a predefined voice.
func IsPredefined(id string) bool {
	return slices.Contains(predefined, id)
}

// Joined returns the predefined voices as a comma separated list.
func Joined() string {
	return strings.Join(predefined, ", ")
}
