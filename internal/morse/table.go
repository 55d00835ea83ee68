package morse

import (
	"errors"
	"fmt"
)

// ErrInvalidSymbol is returned when a byte outside A-Z/a-z reaches the encoder
var ErrInvalidSymbol = errors.New("invalid morse symbol")

// Entry is one row of the encoding table.
//
// Pattern holds the element runs most-significant-bit first: a dot is a single 1,
// a dash is 111, elements are separated by a single 0 and the remainder is zero padded.
type Entry struct {
	Letter  byte
	Pattern uint16
	Symbols []Symbol
}

const (
	dit = Dot
	dah = Dash
)

// Morse Code Encodings (from http://en.wikipedia.org/wiki/Morse_code)
// Index is letter - 'A'.
var codes = [26]Entry{
	{'A', 0xB800, []Symbol{dit, dah}},           // 1011 1
	{'B', 0xEA80, []Symbol{dah, dit, dit, dit}}, // 1110 1010 1
	{'C', 0xEBA0, []Symbol{dah, dit, dah, dit}}, // 1110 1011 101
	{'D', 0xEA00, []Symbol{dah, dit, dit}},      // 1110 101
	{'E', 0x8000, []Symbol{dit}},                // 1
	{'F', 0xAE80, []Symbol{dit, dit, dah, dit}}, // 1010 1110 1
	{'G', 0xEE80, []Symbol{dah, dah, dit}},      // 1110 1110 1
	{'H', 0xAA00, []Symbol{dit, dit, dit, dit}}, // 1010 101
	{'I', 0xA000, []Symbol{dit, dit}},           // 101
	{'J', 0xBBB8, []Symbol{dit, dah, dah, dah}}, // 1011 1011 1011 1
	{'K', 0xEB80, []Symbol{dah, dit, dah}},      // 1110 1011 1
	{'L', 0xBA80, []Symbol{dit, dah, dit, dit}}, // 1011 1010 1
	{'M', 0xEE00, []Symbol{dah, dah}},           // 1110 111
	{'N', 0xE800, []Symbol{dah, dit}},           // 1110 1
	{'O', 0xEEE0, []Symbol{dah, dah, dah}},      // 1110 1110 111
	{'P', 0xBBA0, []Symbol{dit, dah, dah, dit}}, // 1011 1011 101
	{'Q', 0xEEB8, []Symbol{dah, dah, dit, dah}}, // 1110 1110 1011 1
	{'R', 0xBA00, []Symbol{dit, dah, dit}},      // 1011 101
	{'S', 0xA800, []Symbol{dit, dit, dit}},      // 1010 1
	{'T', 0xE000, []Symbol{dah}},                // 111
	{'U', 0xAE00, []Symbol{dit, dit, dah}},      // 1010 111
	{'V', 0xAB80, []Symbol{dit, dit, dit, dah}}, // 1010 1011 1
	{'W', 0xBB80, []Symbol{dit, dah, dah}},      // 1011 1011 1
	{'X', 0xEAE0, []Symbol{dah, dit, dit, dah}}, // 1110 1010 111
	{'Y', 0xEBB8, []Symbol{dah, dit, dah, dah}}, // 1110 1011 1011 1
	{'Z', 0xEEA0, []Symbol{dah, dah, dit, dit}}, // 1110 1110 101
}

// IsLetter reports whether ch is an ASCII letter
func IsLetter(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}

// Fold converts a lower case ASCII letter to upper case; other bytes pass through
func Fold(ch byte) byte {
	if ch >= 'a' && ch <= 'z' {
		return ch - 32
	}
	return ch
}

func index(letter byte) (int, error) {
	if !IsLetter(letter) {
		return 0, fmt.Errorf("%w: 0x%02X", ErrInvalidSymbol, letter)
	}
	return int(Fold(letter) - 'A'), nil
}

// Lookup returns the left-justified bit pattern for a letter
func Lookup(letter byte) (uint16, error) {
	i, err := index(letter)
	if err != nil {
		return 0, err
	}
	return codes[i].Pattern, nil
}

// Symbols returns the element sequence for a letter. The slice is a copy.
func Symbols(letter byte) ([]Symbol, error) {
	i, err := index(letter)
	if err != nil {
		return nil, err
	}
	out := make([]Symbol, len(codes[i].Symbols))
	copy(out, codes[i].Symbols)
	return out, nil
}

// Table returns a copy of the full encoding table in alphabetical order
func Table() []Entry {
	out := make([]Entry, len(codes))
	for i, e := range codes {
		out[i] = Entry{
			Letter:  e.Letter,
			Pattern: e.Pattern,
			Symbols: append([]Symbol(nil), e.Symbols...),
		}
	}
	return out
}
