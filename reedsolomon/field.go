// Package reedsolomon implements Reed-Solomon error correction over the
// Galois fields used by Aztec symbol codewords.
package reedsolomon

import "fmt"

// Aztec generator polynomials start at alpha^1.
const generatorBase = 1

// Field represents GF(2^m) arithmetic via exp/log tables.
type Field struct {
	expTable  []int
	logTable  []int
	size      int
	primitive int
	zero      *poly
	one       *poly
}

// The data fields, one per codeword bit width. The primitive polynomials
// are fixed by the Aztec standard.
var (
	Aztec6  = NewField(0x43, 64)
	Aztec8  = NewField(0x12D, 256)
	Aztec10 = NewField(0x409, 1024)
	Aztec12 = NewField(0x1069, 4096)
)

// FieldForWordBits returns the field for the given codeword bit width.
// Panics for widths other than 6, 8, 10 and 12, which indicates a bug in
// the caller rather than bad symbol data.
func FieldForWordBits(bits int) *Field {
	switch bits {
	case 6:
		return Aztec6
	case 8:
		return Aztec8
	case 10:
		return Aztec10
	case 12:
		return Aztec12
	default:
		panic(fmt.Sprintf("reedsolomon: no field for word width %d", bits))
	}
}

// NewField creates a GF(size) using the given primitive polynomial.
func NewField(primitive, size int) *Field {
	f := &Field{
		primitive: primitive,
		size:      size,
		expTable:  make([]int, size),
		logTable:  make([]int, size),
	}

	x := 1
	for i := 0; i < size; i++ {
		f.expTable[i] = x
		x *= 2
		if x >= size {
			x ^= primitive
			x &= size - 1
		}
	}
	for i := 0; i < size-1; i++ {
		f.logTable[f.expTable[i]] = i
	}

	f.zero = newPoly(f, []int{0})
	f.one = newPoly(f, []int{1})

	return f
}

// Size returns the number of field elements.
func (f *Field) Size() int { return f.size }

// Exp returns 2^a in this field.
func (f *Field) Exp(a int) int {
	return f.expTable[a]
}

// Log returns log2(a) in this field.
func (f *Field) Log(a int) int {
	if a == 0 {
		panic("reedsolomon: log(0)")
	}
	return f.logTable[a]
}

// Inverse returns the multiplicative inverse of a.
func (f *Field) Inverse(a int) int {
	if a == 0 {
		panic("reedsolomon: inverse(0)")
	}
	return f.expTable[f.size-f.logTable[a]-1]
}

// Multiply returns a * b in this field.
func (f *Field) Multiply(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return f.expTable[(f.logTable[a]+f.logTable[b])%(f.size-1)]
}

// add computes a XOR b; addition and subtraction coincide in GF(2^m).
func add(a, b int) int {
	return a ^ b
}

// monomial returns coefficient * x^degree.
func (f *Field) monomial(degree, coefficient int) *poly {
	if degree < 0 {
		panic("reedsolomon: negative degree")
	}
	if coefficient == 0 {
		return f.zero
	}
	coefficients := make([]int, degree+1)
	coefficients[0] = coefficient
	return newPoly(f, coefficients)
}

// String returns a string representation.
func (f *Field) String() string {
	return fmt.Sprintf("GF(0x%x,%d)", f.primitive, f.size)
}
