// Package decoder converts the raw bit stream extracted from an Aztec
// symbol into its text message.
//
// Decoding runs in three stages:
//  1. Split the raw bits into codewords and apply Reed-Solomon error
//     correction over the Galois field fixed by the codeword width.
//  2. Strip the stuffing bits the encoder inserted to avoid all-zero
//     and all-one data words.
//  3. Feed the destuffed stream through the five-mode character
//     automaton with latch/shift semantics.
package decoder

import (
	"fmt"
	"io"
	"strings"

	"github.com/fidscan/aztec"
	"github.com/fidscan/aztec/bitutil"
	"github.com/fidscan/aztec/reedsolomon"
)

// ErrorCorrector corrects symbol errors in data in place using the
// parity words that followed it, returning the number of symbols fixed,
// or an error when the error count exceeds correction capacity.
//
// It abstracts the Galois-field engine so the field arithmetic can vary
// by codeword width without touching the decode driver.
type ErrorCorrector interface {
	Correct(data, parity []int) (int, error)
}

// Decoder extracts the message from a marker whose raw bits have already
// been sampled from the image.
//
// A Decoder reuses scratch buffers between calls and is not safe for
// concurrent use; give each goroutine its own instance.
type Decoder struct {
	// one corrector per codeword width; which is used depends on how
	// large the marker is
	ecc6  ErrorCorrector
	ecc8  ErrorCorrector
	ecc10 ErrorCorrector
	ecc12 ErrorCorrector

	// codeword scratch storage, reused across calls
	dataWords []int
	eccWords  []int

	// automaton state, reset at the start of every decode
	current       aztec.Encoding
	shiftEncoding aztec.Encoding // encoding to restore after a one-shot shift
	shiftPending  bool
	latched       bool
	work          strings.Builder

	verbose io.Writer
}

// New creates a Decoder with Reed-Solomon correction over the standard
// Aztec fields.
func New() *Decoder {
	return &Decoder{
		ecc6:  reedsolomon.NewCorrector(reedsolomon.Aztec6),
		ecc8:  reedsolomon.NewCorrector(reedsolomon.Aztec8),
		ecc10: reedsolomon.NewCorrector(reedsolomon.Aztec10),
		ecc12: reedsolomon.NewCorrector(reedsolomon.Aztec12),
	}
}

// SetVerbose directs a human-readable trace of the decoding to w. The
// trace is purely observational and never affects the outcome. Pass nil
// to disable.
func (d *Decoder) SetVerbose(w io.Writer) {
	d.verbose = w
}

// Decode extracts the message from the marker, filling in its Corrected,
// TotalBitErrors and Message fields. On failure the marker's Message is
// left untouched.
//
// The marker must arrive well formed: at least one data layer and a
// RawBits buffer covering the symbol's full bit capacity. Violations
// panic, since they indicate a bug in the upstream bit extractor rather
// than a damaged symbol.
func (d *Decoder) Decode(marker *aztec.Marker) error {
	if marker.DataLayers < 1 {
		panic("decoder: marker has no data layers")
	}
	if marker.RawBits == nil || len(marker.RawBits)*8 < marker.CapacityBits() {
		panic("decoder: raw bits shorter than symbol capacity")
	}

	var ecc ErrorCorrector
	switch marker.WordBitCount() {
	case 6:
		ecc = d.ecc6
	case 8:
		ecc = d.ecc8
	case 10:
		ecc = d.ecc10
	case 12:
		ecc = d.ecc12
	default:
		panic("decoder: unexpected word size")
	}

	if err := d.applyECC(marker, ecc); err != nil {
		return err
	}

	padded := bitutil.Wrap(marker.Corrected, marker.MessageWordCount*marker.WordBitCount())
	bits := stripPadding(padded, marker.WordBitCount())
	return d.bitsToMessage(marker, bits)
}

// applyECC splits the raw bits into data and parity words, corrects the
// data portion and repacks it byte aligned into marker.Corrected.
func (d *Decoder) applyECC(marker *aztec.Marker, ecc ErrorCorrector) error {
	wordBits := marker.WordBitCount()
	bits := bitutil.Wrap(marker.RawBits, marker.CapacityBits())

	d.dataWords = resize(d.dataWords, marker.MessageWordCount)
	d.eccWords = resize(d.eccWords, marker.CapacityWords()-marker.MessageWordCount)

	location := 0
	for i := range d.dataWords {
		d.dataWords[i] = bits.Read(location, wordBits)
		location += wordBits
	}
	for i := range d.eccWords {
		d.eccWords[i] = bits.Read(location, wordBits)
		location += wordBits
	}

	// TODO mark all-zero and all-one words as known erasures before
	// correcting; for now they cost regular error capacity

	corrected, err := ecc.Correct(d.dataWords, d.eccWords)
	if err != nil {
		if d.verbose != nil {
			fmt.Fprintln(d.verbose, "ECC failed")
		}
		return fmt.Errorf("%w: %v", aztec.ErrUncorrectable, err)
	}
	marker.TotalBitErrors = corrected

	messageBits := len(d.dataWords) * wordBits
	out := bitutil.New(messageBits)
	for _, w := range d.dataWords {
		out.Append(uint32(w), wordBits)
	}
	marker.Corrected = out.Bytes()

	return nil
}

// stripPadding removes the single stuffing bit the encoder inserted into
// words that would otherwise have been all zeros or all ones. The input
// must contain a whole number of words.
func stripPadding(padded *bitutil.PackedBits, wordBits int) *bitutil.PackedBits {
	if padded.Size()%wordBits != 0 {
		panic("decoder: padded stream is not a whole number of words")
	}
	numWords := padded.Size() / wordBits
	onesMinusOne := (1 << uint(wordBits)) - 2

	bits := bitutil.New(padded.Size())
	for i := 0; i < numWords; i++ {
		value := padded.Read(i*wordBits, wordBits)
		if value == 1 || value == onesMinusOne {
			bits.Append(uint32(value>>1), wordBits-1)
		} else {
			bits.Append(uint32(value), wordBits)
		}
	}
	return bits
}

// bitsToMessage runs the character automaton over the destuffed stream.
func (d *Decoder) bitsToMessage(marker *aztec.Marker, bits *bitutil.PackedBits) error {
	d.latched = false
	d.shiftPending = false
	d.work.Reset()
	d.current = aztec.Upper

	location := 0
	for location+d.current.WordSize() <= bits.Size() {
		value := bits.Read(location, d.current.WordSize())
		if d.verbose != nil {
			fmt.Fprintf(d.verbose, "current=%v latched=%v value=%d\n", d.current, d.latched, value)
		}

		location += d.current.WordSize()
		d.latched = true
		previous := d.current

		var err error
		switch previous {
		case aztec.Upper:
			err = d.handleUpper(value)
		case aztec.Lower:
			err = d.handleLower(value)
		case aztec.Mixed:
			err = d.handleMixed(value)
		case aztec.Punct:
			err = d.handlePunct(value)
		case aztec.Digit:
			err = d.handleDigit(value)
		default:
			if d.verbose != nil {
				fmt.Fprintf(d.verbose, "unhandled encoding: %v\n", previous)
			}
			err = aztec.ErrByteMode
		}
		if err != nil {
			return err
		}

		// A shift scheduled by the previous symbol reverts now. The
		// revert wins over any transition the shifted symbol itself
		// just requested.
		if d.shiftPending {
			d.current = d.shiftEncoding
		}
		d.shiftPending = !d.latched
		if d.shiftPending {
			d.shiftEncoding = previous
		}
	}

	marker.Message = d.work.String()
	return nil
}

func (d *Decoder) handleUpper(value int) error {
	switch {
	case value == 0:
		d.current = aztec.Punct
		d.latched = false
	case value == 1:
		d.work.WriteByte(' ')
	case value <= 27:
		d.work.WriteByte(byte('A' + value - 2))
	case value == 28:
		d.current = aztec.Lower
	case value == 29:
		d.current = aztec.Mixed
	case value == 30:
		d.current = aztec.Digit
	default: // 31
		d.current = aztec.Byte
		d.latched = false
	}
	return nil
}

func (d *Decoder) handleLower(value int) error {
	switch {
	case value == 0:
		d.current = aztec.Punct
		d.latched = false
	case value == 1:
		d.work.WriteByte(' ')
	case value <= 27:
		d.work.WriteByte(byte('a' + value - 2))
	case value == 28:
		d.current = aztec.Upper
		d.latched = false
	case value == 29:
		d.current = aztec.Mixed
	case value == 30:
		d.current = aztec.Digit
	default: // 31
		d.current = aztec.Byte
		d.latched = false
	}
	return nil
}

func (d *Decoder) handleMixed(value int) error {
	switch {
	case value == 0:
		d.current = aztec.Punct
		d.latched = false
	case value == 1:
		d.work.WriteByte(' ')
	case value <= 14:
		d.work.WriteByte(byte(value - 1))
	case value <= 19:
		d.work.WriteByte(byte(value + 8))
	case value == 20:
		d.work.WriteByte('@')
	case value == 21:
		d.work.WriteByte('\\')
	case value <= 24:
		d.work.WriteByte(byte(value + 72))
	case value == 25:
		d.work.WriteByte('|')
	case value == 26:
		d.work.WriteByte('~')
	case value == 27:
		d.work.WriteByte(127)
	case value == 28:
		d.current = aztec.Lower
	case value == 29:
		d.current = aztec.Upper
	case value == 30:
		d.current = aztec.Punct
	default: // 31
		d.current = aztec.Byte
		d.latched = false
	}
	return nil
}

func (d *Decoder) handlePunct(value int) error {
	switch {
	case value == 0:
		if d.verbose != nil {
			fmt.Fprintln(d.verbose, "FLG(n) encountered")
		}
		return aztec.ErrFunctionCode
	case value == 1:
		d.work.WriteByte('\r')
	case value == 2:
		d.work.WriteString("\r\n")
	case value == 3:
		d.work.WriteString(". ")
	case value == 4:
		d.work.WriteString(", ")
	case value == 5:
		d.work.WriteString(": ")
	case value <= 20:
		d.work.WriteByte(byte(value + 27))
	case value <= 26:
		d.work.WriteByte(byte(value + 37))
	case value == 27:
		d.work.WriteByte('[')
	case value == 28:
		d.work.WriteByte(']')
	case value == 29:
		d.work.WriteByte('{')
	case value == 30:
		d.work.WriteByte('}')
	default: // 31
		d.current = aztec.Upper
	}
	return nil
}

func (d *Decoder) handleDigit(value int) error {
	switch {
	case value == 0:
		d.current = aztec.Punct
		d.latched = false
	case value == 1:
		d.work.WriteByte(' ')
	case value <= 11:
		d.work.WriteByte(byte('0' + value - 2))
	case value == 12:
		d.work.WriteByte(',')
	case value == 13:
		d.work.WriteByte('.')
	case value == 14:
		d.current = aztec.Upper
	case value == 15:
		d.current = aztec.Upper
		d.latched = false
	}
	return nil
}

func resize(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}
	return s[:n]
}
