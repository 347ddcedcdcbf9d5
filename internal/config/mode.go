package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// VisualMode selects how the bar array is drawn.
type VisualMode int

const (
	ModeCircular VisualMode = iota
	ModeClassic
	ModeMirrored
)

var modeNames = [...]string{
	ModeCircular: "circular",
	ModeClassic:  "classic",
	ModeMirrored: "mirrored",
}

func (m VisualMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("VisualMode(%d)", int(m))
	}
	return modeNames[m]
}

// Mirrored reports whether bars of this mode are laid out as a mirrored
// half-spectrum.
func (m VisualMode) Mirrored() bool { return m == ModeCircular }

// Next cycles through the modes in declaration order.
func (m VisualMode) Next() VisualMode {
	return VisualMode((int(m) + 1) % len(modeNames))
}

// ParseVisualMode accepts a mode name, case-insensitive. "3d" and
// "horizontal" are accepted as aliases.
func ParseVisualMode(s string) (VisualMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "circular", "3d":
		return ModeCircular, nil
	case "classic", "horizontal", "bars":
		return ModeClassic, nil
	case "mirrored", "mirror":
		return ModeMirrored, nil
	default:
		return ModeCircular, fmt.Errorf("%w: unknown visual mode %q", ErrInvalid, s)
	}
}

func (m VisualMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

func (m *VisualMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseVisualMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
