// Package aztec provides the shared data model for Aztec symbol message
// encoding and decoding: the marker descriptor populated by an upstream
// bit extractor, the symbol structure math that follows from its layer
// count, the five-plus-one character encoding modes, and the sentinel
// errors returned by the codec packages.
//
// The actual work happens in the subpackages: decoder turns a marker's
// raw bits into text, encoder builds a marker from text, reedsolomon
// supplies the Galois-field error correction, and bitutil the bit
// buffers everything is plumbed through.
package aztec
