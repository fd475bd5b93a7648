// Package bitutil provides bit buffer utilities for symbol processing.
package bitutil

import "strings"

// PackedBits is a growable array of bits backed by a byte slice. Within
// each byte the most significant bit comes first, and multi-bit appends
// and reads treat the value as most-significant-bit first, matching the
// wire order of Aztec codewords.
//
// A PackedBits can either own its storage (New) or wrap a caller's byte
// slice for reading (Wrap).
type PackedBits struct {
	data []byte
	size int
}

// New creates an empty PackedBits with storage for capacityBits bits.
// The buffer grows as needed on append.
func New(capacityBits int) *PackedBits {
	if capacityBits < 0 {
		capacityBits = 0
	}
	return &PackedBits{data: make([]byte, (capacityBits+7)/8)}
}

// Wrap creates a PackedBits reading the first sizeBits bits of data.
// The slice is not copied.
func Wrap(data []byte, sizeBits int) *PackedBits {
	if sizeBits < 0 || sizeBits > len(data)*8 {
		panic("bitutil: size exceeds wrapped data")
	}
	return &PackedBits{data: data, size: sizeBits}
}

// Size returns the number of bits in the buffer.
func (pb *PackedBits) Size() int {
	return pb.size
}

// Bytes returns the backing storage trimmed to the bytes in use. Bits
// beyond Size in the final byte are zero for buffers built by append.
func (pb *PackedBits) Bytes() []byte {
	return pb.data[:(pb.size+7)/8]
}

// Reset empties the buffer, keeping its storage.
func (pb *PackedBits) Reset() {
	for i := range pb.data {
		pb.data[i] = 0
	}
	pb.size = 0
}

// Get returns bit i.
func (pb *PackedBits) Get(i int) bool {
	if i < 0 || i >= pb.size {
		panic("bitutil: bit index out of range")
	}
	return pb.data[i/8]&(1<<uint(7-i&7)) != 0
}

// AppendBit appends a single bit.
func (pb *PackedBits) AppendBit(bit bool) {
	pb.ensureCapacity(pb.size + 1)
	if bit {
		pb.data[pb.size/8] |= 1 << uint(7-pb.size&7)
	}
	pb.size++
}

// Append appends the least-significant numBits bits of value, from most
// significant to least significant.
func (pb *PackedBits) Append(value uint32, numBits int) {
	if numBits < 0 || numBits > 32 {
		panic("bitutil: numBits must be between 0 and 32")
	}
	pb.ensureCapacity(pb.size + numBits)
	for i := numBits - 1; i >= 0; i-- {
		if value&(1<<uint(i)) != 0 {
			pb.data[pb.size/8] |= 1 << uint(7-pb.size&7)
		}
		pb.size++
	}
}

// Read returns length bits starting at bit location as an integer,
// most-significant-bit first. Panics if the range is out of bounds.
func (pb *PackedBits) Read(location, length int) int {
	if length < 0 || length > 31 || location < 0 || location+length > pb.size {
		panic("bitutil: read out of range")
	}
	value := 0
	for i := location; i < location+length; i++ {
		value <<= 1
		if pb.data[i/8]&(1<<uint(7-i&7)) != 0 {
			value |= 1
		}
	}
	return value
}

// String returns the bits as 'X' and '.' groups of eight, for debugging.
func (pb *PackedBits) String() string {
	var sb strings.Builder
	sb.Grow(pb.size + pb.size/8 + 1)
	for i := 0; i < pb.size; i++ {
		if i&7 == 0 {
			sb.WriteByte(' ')
		}
		if pb.Get(i) {
			sb.WriteByte('X')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

func (pb *PackedBits) ensureCapacity(newSize int) {
	needed := (newSize + 7) / 8
	if needed <= len(pb.data) {
		return
	}
	grown := make([]byte, max(needed, 2*len(pb.data)))
	copy(grown, pb.data)
	pb.data = grown
}
