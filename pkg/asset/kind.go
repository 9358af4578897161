// Package asset defines the asset kinds the upgrade engine distinguishes.
package asset

import (
	"fmt"
	"strings"
)

// Kind classifies an image asset. It selects transform parameters and is
// otherwise inert.
type Kind int

const (
	// Image is a generic image (props, backgrounds, UI art).
	Image Kind = iota
	// Icon is a small inventory or UI icon.
	Icon
	// Sheet is a character or effect sprite sheet.
	Sheet
)

// Kinds lists every kind in a stable order.
var Kinds = []Kind{Icon, Sheet, Image}

// String returns the lower-case name used in logs and config files.
func (k Kind) String() string {
	switch k {
	case Icon:
		return "icon"
	case Sheet:
		return "sheet"
	case Image:
		return "image"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind parses a kind name. Registry type names are accepted as
// aliases ("spritesheet" for sheet).
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "icon":
		return Icon, true
	case "sheet", "spritesheet":
		return Sheet, true
	case "image":
		return Image, true
	}
	return Image, false
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("unknown asset kind %q", text)
	}
	*k = parsed
	return nil
}
