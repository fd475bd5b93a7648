package encoder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fidscan/aztec"
	"github.com/fidscan/aztec/bitutil"
)

func TestHighLevelEncodeUpper(t *testing.T) {
	r := require.New(t)

	bits, err := highLevelEncode("AB")
	r.NoError(err)
	r.Equal(10, bits.Size())
	r.Equal(2, bits.Read(0, 5))
	r.Equal(3, bits.Read(5, 5))
}

func TestHighLevelEncodeLatch(t *testing.T) {
	r := require.New(t)

	// latch to lower, then stay there
	bits, err := highLevelEncode("ab")
	r.NoError(err)
	r.Equal(15, bits.Size())
	r.Equal(28, bits.Read(0, 5))
	r.Equal(2, bits.Read(5, 5))
	r.Equal(3, bits.Read(10, 5))
}

func TestHighLevelEncodeDigitWidth(t *testing.T) {
	r := require.New(t)

	// digit symbols are four bits wide after the latch
	bits, err := highLevelEncode("07")
	r.NoError(err)
	r.Equal(13, bits.Size())
	r.Equal(30, bits.Read(0, 5))
	r.Equal(2, bits.Read(5, 4))
	r.Equal(9, bits.Read(9, 4))
}

func TestHighLevelEncodePunctShift(t *testing.T) {
	r := require.New(t)

	// '!' is reached through a one-shot shift, ' ' back in upper
	bits, err := highLevelEncode("! A")
	r.NoError(err)
	r.Equal(20, bits.Size())
	r.Equal(0, bits.Read(0, 5))
	r.Equal(6, bits.Read(5, 5))
	r.Equal(1, bits.Read(10, 5))
	r.Equal(2, bits.Read(15, 5))
}

func TestHighLevelEncodeUnsupported(t *testing.T) {
	r := require.New(t)

	_, err := highLevelEncode("héllo")
	r.ErrorIs(err, aztec.ErrUnsupportedCharacter)
}

func TestLatchPathsTerminate(t *testing.T) {
	r := require.New(t)

	modes := []aztec.Encoding{aztec.Upper, aztec.Lower, aztec.Mixed, aztec.Punct, aztec.Digit}
	for _, from := range modes {
		for _, to := range modes {
			if from == to {
				continue
			}
			steps := latchPath[from][to]
			r.NotEmpty(steps, "no latch path %v -> %v", from, to)
			r.Equal(to, steps[len(steps)-1].to, "path %v -> %v ends elsewhere", from, to)
		}
	}
}

func TestStuffBits(t *testing.T) {
	r := require.New(t)

	// ten zero bits at width six: two stuffed words of value one
	bits := bitutil.New(10)
	bits.Append(0, 5)
	bits.Append(0, 5)

	stuffed := stuffBits(bits, 6)
	r.Equal(12, stuffed.Size())
	r.Equal(1, stuffed.Read(0, 6))
	r.Equal(1, stuffed.Read(6, 6))
}

func TestStuffBitsAllOnes(t *testing.T) {
	r := require.New(t)

	bits := bitutil.New(10)
	bits.Append(0x1F, 5)
	bits.Append(0x1F, 5)

	stuffed := stuffBits(bits, 6)
	r.Equal(12, stuffed.Size())
	r.Equal(62, stuffed.Read(0, 6))
	r.Equal(62, stuffed.Read(6, 6))
}

func TestStuffBitsPassThrough(t *testing.T) {
	r := require.New(t)

	bits := bitutil.New(12)
	bits.Append(0b000101, 6)
	bits.Append(0b110010, 6)

	stuffed := stuffBits(bits, 6)
	r.Equal(12, stuffed.Size())
	r.Equal(0b000101, stuffed.Read(0, 6))
	r.Equal(0b110010, stuffed.Read(6, 6))
}

func TestStuffBitsFinalWordPadding(t *testing.T) {
	r := require.New(t)

	// ten bits leave a four-bit tail that gets padded with ones
	bits := bitutil.New(10)
	bits.Append(0b00010, 5)
	bits.Append(0b00011, 5)

	stuffed := stuffBits(bits, 6)
	r.Equal(12, stuffed.Size())
	r.Equal(0b000100, stuffed.Read(0, 6))
	r.Equal(0b001111, stuffed.Read(6, 6))
}

func TestEncodeBuildsDecodableWords(t *testing.T) {
	r := require.New(t)

	marker, err := Encode("AB", nil)
	r.NoError(err)
	r.Equal(aztec.StructureFull, marker.Structure)
	r.Equal(1, marker.DataLayers)
	r.Equal(2, marker.MessageWordCount)
	r.Equal("AB", marker.Message)
	r.Len(marker.RawBits, (marker.CapacityBits()+7)/8)

	raw := bitutil.Wrap(marker.RawBits, marker.CapacityBits())
	r.Equal(0b000100, raw.Read(0, 6))
	r.Equal(0b001111, raw.Read(6, 6))
}

func TestEncodeForcedLayers(t *testing.T) {
	r := require.New(t)

	marker, err := Encode("FORCED", &Options{Structure: aztec.StructureFull, DataLayers: 3})
	r.NoError(err)
	r.Equal(3, marker.DataLayers)
	r.Equal(8, marker.WordBitCount())

	_, err = Encode("X", &Options{Structure: aztec.StructureCompact, DataLayers: 5})
	r.Error(err)
}

func TestEncodeTooLarge(t *testing.T) {
	r := require.New(t)

	long := make([]byte, 0, 600)
	for i := 0; i < 600; i++ {
		long = append(long, byte('A'+i%26))
	}

	_, err := Encode(string(long), &Options{Structure: aztec.StructureFull, DataLayers: 1})
	r.ErrorIs(err, aztec.ErrTooLarge)
}

func TestEncodeEmptyMessage(t *testing.T) {
	r := require.New(t)

	_, err := Encode("", nil)
	r.ErrorIs(err, aztec.ErrEmptyMessage)

	_, err = Encode("", &Options{Structure: aztec.StructureCompact, DataLayers: 2})
	r.ErrorIs(err, aztec.ErrEmptyMessage)
}

func TestEncodeLayerSelectionGrows(t *testing.T) {
	r := require.New(t)

	small, err := Encode("HI", nil)
	r.NoError(err)

	long := make([]byte, 0, 200)
	for i := 0; i < 200; i++ {
		long = append(long, byte('A'+i%26))
	}
	big, err := Encode(string(long), nil)
	r.NoError(err)

	r.Greater(big.DataLayers, small.DataLayers)
}
