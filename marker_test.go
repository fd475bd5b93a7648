package aztec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordBitCount(t *testing.T) {
	r := require.New(t)

	cases := map[int]int{
		1: 6, 2: 6,
		3: 8, 8: 8,
		9: 10, 22: 10,
		23: 12, 32: 12,
	}
	for layers, want := range cases {
		m := &Marker{Structure: StructureFull, DataLayers: layers}
		r.Equal(want, m.WordBitCount(), "layers=%d", layers)
	}
}

func TestCapacity(t *testing.T) {
	r := require.New(t)

	compact := &Marker{Structure: StructureCompact, DataLayers: 1}
	r.Equal(104, compact.CapacityBits())
	r.Equal(17, compact.CapacityWords())

	full := &Marker{Structure: StructureFull, DataLayers: 2}
	r.Equal(288, full.CapacityBits())
	r.Equal(48, full.CapacityWords())

	big := &Marker{Structure: StructureFull, DataLayers: 32}
	r.Equal(19968, big.CapacityBits())
	r.Equal(1664, big.CapacityWords())
}

func TestStructure(t *testing.T) {
	r := require.New(t)

	r.Equal(4, StructureCompact.MaxDataLayers())
	r.Equal(32, StructureFull.MaxDataLayers())
	r.Equal("COMPACT", StructureCompact.String())
	r.Equal("FULL", StructureFull.String())
}

func TestEncodingWordSize(t *testing.T) {
	r := require.New(t)

	r.Equal(5, Upper.WordSize())
	r.Equal(5, Lower.WordSize())
	r.Equal(5, Mixed.WordSize())
	r.Equal(5, Punct.WordSize())
	r.Equal(4, Digit.WordSize())
	r.Equal(8, Byte.WordSize())

	r.Equal("UPPER", Upper.String())
	r.Equal("BYTE", Byte.String())
}
