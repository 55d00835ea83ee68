package morse

import "strings"

// Symbol is a single Morse element
type Symbol uint8

const (
	Dot Symbol = iota
	Dash
)

// Mark returns the transcript character for the symbol
func (s Symbol) Mark() byte {
	if s == Dash {
		return '-'
	}
	return '.'
}

// Units returns how many timing units the signal stays on for the symbol
func (s Symbol) Units() int {
	if s == Dash {
		return 3
	}
	return 1
}

func (s Symbol) String() string {
	switch s {
	case Dot:
		return "DOT"
	case Dash:
		return "DASH"
	default:
		return "UNKNOWN"
	}
}

// Notation renders a symbol sequence as dots and dashes, e.g. ".-"
func Notation(symbols []Symbol) string {
	var sb strings.Builder
	for _, s := range symbols {
		sb.WriteByte(s.Mark())
	}
	return sb.String()
}
