package aztec

// Encoding identifies which character table the bit stream is currently
// being read against. Transitions between encodings are either latches
// (permanent until the next transition) or shifts (one symbol only).
type Encoding int

const (
	// Upper case letters. The initial encoding of every message.
	Upper Encoding = iota
	// Lower case letters.
	Lower
	// Mixed control characters and assorted symbols.
	Mixed
	// Punct punctuation, including a few two-character sequences.
	Punct
	// Digit decimal digits, comma and period.
	Digit
	// Byte raw byte literals. Reachable as a target encoding but not
	// decodable by this codec.
	Byte
)

// WordSize returns how many bits one symbol occupies in this encoding.
func (e Encoding) WordSize() int {
	switch e {
	case Digit:
		return 4
	case Byte:
		return 8
	default:
		return 5
	}
}

func (e Encoding) String() string {
	switch e {
	case Upper:
		return "UPPER"
	case Lower:
		return "LOWER"
	case Mixed:
		return "MIXED"
	case Punct:
		return "PUNCT"
	case Digit:
		return "DIGIT"
	case Byte:
		return "BYTE"
	default:
		return "UNKNOWN"
	}
}
