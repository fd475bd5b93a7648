// Package encoder builds Aztec markers from text messages.
//
// It runs the decode pipeline in reverse: text is converted into the
// five-mode symbol bit stream, stuffing bits are inserted so no data
// word is all zeros or all ones, a symbol size is chosen, and parity
// words are generated over the width-appropriate Galois field. The
// result is a marker whose RawBits decode back to the original message.
package encoder

import (
	"fmt"

	"github.com/fidscan/aztec"
	"github.com/fidscan/aztec/bitutil"
	"github.com/fidscan/aztec/reedsolomon"
)

// Options configures Encode.
type Options struct {
	// Structure selects compact or full-range symbols.
	Structure aztec.Structure

	// DataLayers forces the symbol size. Zero selects the smallest
	// layer count that fits the message.
	DataLayers int

	// MinECCPercent is the minimum parity overhead as a percentage of
	// the message bits. Zero means 25.
	MinECCPercent int
}

// DefaultOptions returns options for a full-range symbol with automatic
// size selection.
func DefaultOptions() *Options {
	return &Options{Structure: aztec.StructureFull}
}

// Encode builds a marker carrying the given message. All capacity words
// not used by the message become parity words.
func Encode(message string, opts *Options) (*aztec.Marker, error) {
	if message == "" {
		return nil, aztec.ErrEmptyMessage
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	minECC := opts.MinECCPercent
	if minECC == 0 {
		minECC = 25
	}

	bits, err := highLevelEncode(message)
	if err != nil {
		return nil, err
	}
	// reserve the minimum parity share plus a fixed margin, as a cushion
	// against the stuffing overhead computed below
	eccBits := bits.Size()*minECC/100 + 11

	marker := &aztec.Marker{Structure: opts.Structure}
	var stuffed *bitutil.PackedBits

	if opts.DataLayers != 0 {
		if opts.DataLayers < 1 || opts.DataLayers > opts.Structure.MaxDataLayers() {
			return nil, fmt.Errorf("encoder: illegal layer count %d for %v structure", opts.DataLayers, opts.Structure)
		}
		marker.DataLayers = opts.DataLayers
		stuffed = stuffBits(bits, marker.WordBitCount())
		if stuffed.Size()+eccBits > marker.CapacityWords()*marker.WordBitCount() {
			return nil, fmt.Errorf("%w: %d layers", aztec.ErrTooLarge, opts.DataLayers)
		}
	} else {
		found := false
		lastWordBits := 0
		for layers := 1; layers <= opts.Structure.MaxDataLayers(); layers++ {
			marker.DataLayers = layers
			w := marker.WordBitCount()
			if w != lastWordBits {
				stuffed = stuffBits(bits, w)
				lastWordBits = w
			}
			if stuffed.Size()+eccBits <= marker.CapacityWords()*w {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: any %v symbol", aztec.ErrTooLarge, opts.Structure)
		}
	}

	wordBits := marker.WordBitCount()
	marker.MessageWordCount = stuffed.Size() / wordBits
	numParity := marker.CapacityWords() - marker.MessageWordCount

	dataWords := make([]int, marker.MessageWordCount)
	for i := range dataWords {
		dataWords[i] = stuffed.Read(i*wordBits, wordBits)
	}

	corrector := reedsolomon.NewCorrector(reedsolomon.FieldForWordBits(wordBits))
	parity := corrector.Parity(dataWords, numParity)

	raw := bitutil.New(marker.CapacityBits())
	for _, v := range dataWords {
		raw.Append(uint32(v), wordBits)
	}
	for _, v := range parity {
		raw.Append(uint32(v), wordBits)
	}
	// leftover capacity beyond the last whole word stays zero
	for raw.Size() < marker.CapacityBits() {
		raw.AppendBit(false)
	}

	marker.RawBits = raw.Bytes()
	marker.Message = message
	return marker, nil
}

// stuffBits inserts a one bit after wordBits-1 leading zeros and a zero
// bit after wordBits-1 leading ones, so that no data word comes out all
// zeros or all ones. The final partial word is padded with ones; after
// destuffing those pad bits decode only as mode shifts.
func stuffBits(bits *bitutil.PackedBits, wordBits int) *bitutil.PackedBits {
	out := bitutil.New(bits.Size() + bits.Size()/wordBits + wordBits)
	n := bits.Size()
	mask := (1 << uint(wordBits)) - 2

	for i := 0; i < n; i += wordBits {
		word := 0
		for j := 0; j < wordBits; j++ {
			if i+j >= n || bits.Get(i+j) {
				word |= 1 << uint(wordBits-1-j)
			}
		}
		switch {
		case word&mask == mask:
			// leading bits all ones: emit them with a zero stuffed in,
			// reconsume the displaced bit next iteration
			out.Append(uint32(word&mask), wordBits)
			i--
		case word&mask == 0:
			// leading bits all zeros: stuff a one
			out.Append(uint32(word|1), wordBits)
			i--
		default:
			out.Append(uint32(word), wordBits)
		}
	}
	return out
}
