package bitutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendRead(t *testing.T) {
	r := require.New(t)

	pb := New(0)
	pb.Append(0b101, 3)
	pb.Append(0b000111, 6)
	pb.Append(1, 1)
	r.Equal(10, pb.Size())

	r.Equal(0b101, pb.Read(0, 3))
	r.Equal(0b000111, pb.Read(3, 6))
	r.Equal(1, pb.Read(9, 1))

	// straddles byte boundaries
	r.Equal(0b1010001, pb.Read(0, 7))
	r.Equal(0b0111, pb.Read(5, 4))
}

func TestAppendBitOrder(t *testing.T) {
	r := require.New(t)

	pb := New(8)
	pb.Append(0xA5, 8)
	r.Equal([]byte{0xA5}, pb.Bytes())

	r.True(pb.Get(0))
	r.False(pb.Get(1))
	r.True(pb.Get(7))
}

func TestAppendGrows(t *testing.T) {
	r := require.New(t)

	pb := New(4)
	for i := 0; i < 100; i++ {
		pb.Append(uint32(i&0x3F), 6)
	}
	r.Equal(600, pb.Size())
	for i := 0; i < 100; i++ {
		r.Equal(i&0x3F, pb.Read(i*6, 6))
	}
}

func TestWrap(t *testing.T) {
	r := require.New(t)

	pb := Wrap([]byte{0xF0, 0x0F}, 16)
	r.Equal(16, pb.Size())
	r.Equal(0xF0, pb.Read(0, 8))
	r.Equal(0x00F, pb.Read(8, 8))
	r.Equal(0b00000011, pb.Read(4, 8))

	// wrapping fewer bits than the slice holds
	short := Wrap([]byte{0xFF}, 3)
	r.Equal(3, short.Size())
	r.Equal(0b111, short.Read(0, 3))

	r.Panics(func() { Wrap([]byte{0xFF}, 9) })
}

func TestReadOutOfRange(t *testing.T) {
	r := require.New(t)

	pb := New(0)
	pb.Append(0b10110, 5)
	r.Panics(func() { pb.Read(1, 5) })
	r.Panics(func() { pb.Read(-1, 2) })
	r.Panics(func() { pb.Get(5) })
}

func TestReset(t *testing.T) {
	r := require.New(t)

	pb := New(0)
	pb.Append(0x3F, 6)
	pb.Reset()
	r.Equal(0, pb.Size())
	pb.Append(0, 6)
	r.Equal(0, pb.Read(0, 6))
}

func TestAppendBit(t *testing.T) {
	r := require.New(t)

	pb := New(0)
	for _, b := range []bool{true, false, true, true} {
		pb.AppendBit(b)
	}
	r.Equal(0b1011, pb.Read(0, 4))
}
