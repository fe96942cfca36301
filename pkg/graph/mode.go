package graph

import "fmt"

// Mode selects which relation a graph is built over.
type Mode string

const (
	ModeAuthor       Mode = "author"
	ModeCiting       Mode = "citing"
	ModeKeyKnowledge Mode = "key_knowledge"
	ModeSimilar      Mode = "similar"
)

// Modes lists every supported mode in a stable order.
func Modes() []Mode {
	return []Mode{ModeAuthor, ModeCiting, ModeKeyKnowledge, ModeSimilar}
}

// ParseMode validates a mode string from the API surface.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAuthor, ModeCiting, ModeKeyKnowledge, ModeSimilar:
		return Mode(s), nil
	}
	return "", &UnsupportedModeError{Mode: s}
}

// NotFoundError reports that the requested center paper does not exist.
// It is one of the two errors Generate can return.
type NotFoundError struct {
	PaperID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("paper %s not found", e.PaperID)
}

// UnsupportedModeError reports a mode outside the supported set.
type UnsupportedModeError struct {
	Mode string
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("unsupported graph mode: %s", e.Mode)
}
