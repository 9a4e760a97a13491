package panel

import (
	"fmt"

	"textpanel/color"
)

// Status selects the label and highlight of a status banner.
type Status int

const (
	StatusError Status = iota
	StatusSuccess
	StatusWarning
)

func (s Status) String() string {
	switch s {
	case StatusError:
		return "ERROR"
	case StatusSuccess:
		return "SUCCESS"
	case StatusWarning:
		return "WARNING"
	default:
		return "UNKNOWN"
	}
}

func (s Status) highlight() string {
	switch s {
	case StatusSuccess:
		return "GREEN"
	case StatusWarning:
		return "YELLOW"
	default:
		return "RED"
	}
}

// StatusBanner returns a highlighted label followed by message. Banners are
// not bordered and not width-constrained; they are meant for lines printed
// outside a panel.
func StatusBanner(kind Status, message string) (string, error) {
	switch kind {
	case StatusError, StatusSuccess, StatusWarning:
	default:
		return "", fmt.Errorf("%w: unknown status kind %d", ErrInvalid, kind)
	}

	bg, err := color.Highlight(kind.highlight())
	if err != nil {
		return "", err
	}
	fg, err := color.Resolve("BLACK", color.Foreground)
	if err != nil {
		return "", err
	}
	return bg + " " + fg + kind.String() + " " + color.Reset() + " " + message, nil
}

// ErrorMessage is StatusBanner(StatusError, message).
func ErrorMessage(message string) string {
	s, _ := StatusBanner(StatusError, message)
	return s
}

// SuccessMessage is StatusBanner(StatusSuccess, message).
func SuccessMessage(message string) string {
	s, _ := StatusBanner(StatusSuccess, message)
	return s
}

// WarningMessage is StatusBanner(StatusWarning, message).
func WarningMessage(message string) string {
	s, _ := StatusBanner(StatusWarning, message)
	return s
}
