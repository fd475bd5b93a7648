package aztec

// Structure selects between the two Aztec symbol families. They differ in
// how many data layers they may carry and in per-layer bit capacity.
type Structure int

const (
	// StructureCompact symbols carry 1 to 4 data layers.
	StructureCompact Structure = iota
	// StructureFull symbols carry 1 to 32 data layers.
	StructureFull
)

// MaxDataLayers returns the largest legal layer count for the structure.
func (s Structure) MaxDataLayers() int {
	if s == StructureCompact {
		return 4
	}
	return 32
}

func (s Structure) String() string {
	if s == StructureCompact {
		return "COMPACT"
	}
	return "FULL"
}

// Marker describes a single Aztec symbol. The upstream bit extractor
// fills in the structural fields and RawBits; the decoder owns the
// output fields Corrected, TotalBitErrors and Message.
type Marker struct {
	// Structure is the symbol family, which fixes the capacity formula.
	Structure Structure

	// DataLayers is the number of concentric data layers. Must be >= 1.
	DataLayers int

	// MessageWordCount is the number of data words among the symbol's
	// CapacityWords words. The remaining words are parity.
	MessageWordCount int

	// RawBits holds the CapacityBits bits read from the image, packed
	// most-significant-bit first, data words followed by parity words.
	RawBits []byte

	// Corrected holds the error-corrected data words, byte aligned,
	// MessageWordCount*WordBitCount bits long. Valid only after a
	// successful correction step.
	Corrected []byte

	// TotalBitErrors is the number of symbol errors fixed by error
	// correction, for diagnostics.
	TotalBitErrors int

	// Message is the decoded text.
	Message string
}

// WordBitCount returns the codeword width in bits. It is fixed by the
// symbol's layer count.
func (m *Marker) WordBitCount() int {
	switch {
	case m.DataLayers <= 2:
		return 6
	case m.DataLayers <= 8:
		return 8
	case m.DataLayers <= 22:
		return 10
	default:
		return 12
	}
}

// CapacityBits returns the total number of bits stored in the symbol's
// data layers.
func (m *Marker) CapacityBits() int {
	base := 112
	if m.Structure == StructureCompact {
		base = 88
	}
	return (base + 16*m.DataLayers) * m.DataLayers
}

// CapacityWords returns the total number of whole codewords the symbol
// stores. Leftover bits beyond the last whole word are unused.
func (m *Marker) CapacityWords() int {
	return m.CapacityBits() / m.WordBitCount()
}
