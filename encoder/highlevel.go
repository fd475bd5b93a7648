package encoder

import (
	"fmt"

	"github.com/fidscan/aztec"
	"github.com/fidscan/aztec/bitutil"
)

// charValue maps a character to its symbol value in each text encoding.
// Built from the same tables the decoder's automaton applies.
var charValue = map[aztec.Encoding]map[rune]int{}

func init() {
	upper := map[rune]int{' ': 1}
	for c := 'A'; c <= 'Z'; c++ {
		upper[c] = int(c-'A') + 2
	}

	lower := map[rune]int{' ': 1}
	for c := 'a'; c <= 'z'; c++ {
		lower[c] = int(c-'a') + 2
	}

	digit := map[rune]int{' ': 1, ',': 12, '.': 13}
	for c := '0'; c <= '9'; c++ {
		digit[c] = int(c-'0') + 2
	}

	mixed := map[rune]int{' ': 1, '@': 20, '\\': 21, '|': 25, '~': 26, 127: 27}
	for v := 2; v <= 14; v++ {
		mixed[rune(v-1)] = v
	}
	for v := 15; v <= 19; v++ {
		mixed[rune(v+8)] = v
	}
	for v := 22; v <= 24; v++ {
		mixed[rune(v+72)] = v
	}

	punct := map[rune]int{'\r': 1, '[': 27, ']': 28, '{': 29, '}': 30}
	for v := 6; v <= 20; v++ {
		punct[rune(v+27)] = v
	}
	for v := 21; v <= 26; v++ {
		punct[rune(v+37)] = v
	}

	charValue[aztec.Upper] = upper
	charValue[aztec.Lower] = lower
	charValue[aztec.Mixed] = mixed
	charValue[aztec.Punct] = punct
	charValue[aztec.Digit] = digit
}

// latchStep is one latch symbol on the way to a target encoding: the
// value to emit and the encoding in effect after it.
type latchStep struct {
	value int
	to    aztec.Encoding
}

// latchPath holds the latch symbols that move the automaton from one
// encoding to another. Not every pair has a direct latch, so some paths
// pass through an intermediate encoding.
var latchPath = map[aztec.Encoding]map[aztec.Encoding][]latchStep{
	aztec.Upper: {
		aztec.Lower: {{28, aztec.Lower}},
		aztec.Mixed: {{29, aztec.Mixed}},
		aztec.Digit: {{30, aztec.Digit}},
		aztec.Punct: {{29, aztec.Mixed}, {30, aztec.Punct}},
	},
	aztec.Lower: {
		aztec.Mixed: {{29, aztec.Mixed}},
		aztec.Digit: {{30, aztec.Digit}},
		aztec.Upper: {{30, aztec.Digit}, {14, aztec.Upper}},
		aztec.Punct: {{29, aztec.Mixed}, {30, aztec.Punct}},
	},
	aztec.Mixed: {
		aztec.Lower: {{28, aztec.Lower}},
		aztec.Upper: {{29, aztec.Upper}},
		aztec.Punct: {{30, aztec.Punct}},
		aztec.Digit: {{29, aztec.Upper}, {30, aztec.Digit}},
	},
	aztec.Punct: {
		aztec.Upper: {{31, aztec.Upper}},
		aztec.Lower: {{31, aztec.Upper}, {28, aztec.Lower}},
		aztec.Mixed: {{31, aztec.Upper}, {29, aztec.Mixed}},
		aztec.Digit: {{31, aztec.Upper}, {30, aztec.Digit}},
	},
	aztec.Digit: {
		aztec.Upper: {{14, aztec.Upper}},
		aztec.Lower: {{14, aztec.Upper}, {28, aztec.Lower}},
		aztec.Mixed: {{14, aztec.Upper}, {29, aztec.Mixed}},
		aztec.Punct: {{14, aztec.Upper}, {29, aztec.Mixed}, {30, aztec.Punct}},
	},
}

// searchOrder fixes which encoding claims a character present in several.
var searchOrder = []aztec.Encoding{
	aztec.Upper, aztec.Lower, aztec.Digit, aztec.Mixed, aztec.Punct,
}

func findEncoding(c rune) (aztec.Encoding, int, bool) {
	for _, e := range searchOrder {
		if v, ok := charValue[e][c]; ok {
			return e, v, true
		}
	}
	return 0, 0, false
}

// highLevelEncode converts text into the five-mode symbol bit stream.
// The strategy is greedy: stay in the current encoding while possible,
// reach isolated punctuation through a one-shot shift, and latch to the
// first encoding that holds the character otherwise. Characters outside
// all five tables are rejected; there is no byte mode.
func highLevelEncode(message string) (*bitutil.PackedBits, error) {
	bits := bitutil.New(len(message) * 8)
	mode := aztec.Upper

	for _, c := range message {
		if v, ok := charValue[mode][c]; ok {
			bits.Append(uint32(v), mode.WordSize())
			continue
		}

		if v, ok := charValue[aztec.Punct][c]; ok && mode != aztec.Punct {
			// one-shot shift; the automaton reverts by itself
			bits.Append(0, mode.WordSize())
			bits.Append(uint32(v), aztec.Punct.WordSize())
			continue
		}

		target, v, ok := findEncoding(c)
		if !ok {
			return nil, fmt.Errorf("%w: %q", aztec.ErrUnsupportedCharacter, c)
		}
		for _, step := range latchPath[mode][target] {
			bits.Append(uint32(step.value), mode.WordSize())
			mode = step.to
		}
		bits.Append(uint32(v), mode.WordSize())
	}

	return bits, nil
}
