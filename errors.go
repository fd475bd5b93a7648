package aztec

import "errors"

var (
	// ErrUncorrectable is returned when the symbol's errors exceed the
	// Reed-Solomon correction capacity.
	ErrUncorrectable = errors.New("aztec: uncorrectable symbol errors")

	// ErrFunctionCode is returned when the stream contains a FLG(n)
	// function code, which this codec does not support.
	ErrFunctionCode = errors.New("aztec: FLG(n) function codes not supported")

	// ErrByteMode is returned when the stream switches into byte mode,
	// which this codec does not support.
	ErrByteMode = errors.New("aztec: byte mode not supported")

	// ErrUnsupportedCharacter is returned by the encoder for characters
	// outside the five text encodings.
	ErrUnsupportedCharacter = errors.New("aztec: character not encodable in any text mode")

	// ErrTooLarge is returned by the encoder when the message does not
	// fit the requested (or any) symbol size.
	ErrTooLarge = errors.New("aztec: message too large for symbol")

	// ErrEmptyMessage is returned by the encoder when there is no
	// message text to encode.
	ErrEmptyMessage = errors.New("aztec: empty message")
)
