package model

import "github.com/m-mizutani/goerr/v2"

// Mode is the client-only display preference, independent of the asset type
type Mode string

const (
	ModeImage Mode = "image"
	ModeAudio Mode = "audio"
)

// DefaultMode is the mode a new session starts in
const DefaultMode = ModeImage

// ParseMode converts a string into a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeImage, ModeAudio:
		return Mode(s), nil
	default:
		return "", goerr.New("unknown mode", goerr.V("mode", s))
	}
}

// Other returns the opposite mode
func (m Mode) Other() Mode {
	if m == ModeAudio {
		return ModeImage
	}
	return ModeAudio
}

func (m Mode) String() string {
	return string(m)
}
