package render

import "fmt"

// Mode selects what a hit pixel shows.
type Mode int

const (
	ModeShaded Mode = iota
	ModeOcclusion
	ModeNormal
	ModeDepth
)

var modeNames = map[Mode]string{
	ModeShaded:    "shaded",
	ModeOcclusion: "ao",
	ModeNormal:    "normal",
	ModeDepth:     "depth",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a display mode name. Empty means shaded.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeShaded, nil
	}
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("render: unknown mode %q", s)
}
