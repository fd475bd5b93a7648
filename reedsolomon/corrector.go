package reedsolomon

import "errors"

// ErrUncorrectable indicates the error count exceeds the correction
// capacity of the parity words.
var ErrUncorrectable = errors.New("reedsolomon: too many symbol errors")

// Corrector applies Reed-Solomon error correction for one field. It
// caches generator polynomials and reuses scratch storage, so a
// Corrector is not safe for concurrent use.
type Corrector struct {
	field      *Field
	generators []*poly
	received   []int
}

// NewCorrector creates a Corrector for the given field.
func NewCorrector(field *Field) *Corrector {
	return &Corrector{
		field:      field,
		generators: []*poly{field.one},
	}
}

// Parity returns the numParity parity words for the given data words.
func (c *Corrector) Parity(data []int, numParity int) []int {
	if numParity <= 0 {
		panic("reedsolomon: no parity words requested")
	}
	if len(data) == 0 {
		panic("reedsolomon: no data words provided")
	}

	coefficients := make([]int, len(data))
	copy(coefficients, data)
	info := newPoly(c.field, coefficients).multiplyByMonomial(numParity, 1)
	_, remainder := info.divide(c.generator(numParity))

	parity := make([]int, numParity)
	leadingZeros := numParity - len(remainder.coefficients)
	if remainder.isZero() {
		leadingZeros = numParity
	}
	copy(parity[leadingZeros:], remainder.coefficients)
	return parity
}

// Correct fixes symbol errors in data in place, using the parity words
// that followed it in the stream. It returns the number of symbols
// corrected, or ErrUncorrectable when the error count exceeds capacity.
// Errors located in the parity region are counted but not written back.
func (c *Corrector) Correct(data, parity []int) (int, error) {
	numParity := len(parity)
	c.received = append(c.received[:0], data...)
	c.received = append(c.received, parity...)

	p := newPoly(c.field, c.received)
	syndromeCoefficients := make([]int, numParity)
	noError := true
	for i := 0; i < numParity; i++ {
		eval := p.evaluateAt(c.field.Exp(i + generatorBase))
		syndromeCoefficients[numParity-1-i] = eval
		if eval != 0 {
			noError = false
		}
	}
	if noError {
		return 0, nil
	}

	syndrome := newPoly(c.field, syndromeCoefficients)
	sigma, omega, err := c.runEuclideanAlgorithm(c.field.monomial(numParity, 1), syndrome, numParity)
	if err != nil {
		return 0, err
	}
	locations, err := c.findErrorLocations(sigma)
	if err != nil {
		return 0, err
	}
	magnitudes := c.findErrorMagnitudes(omega, locations)

	for i := 0; i < len(locations); i++ {
		position := len(c.received) - 1 - c.field.Log(locations[i])
		if position < 0 {
			return 0, ErrUncorrectable
		}
		c.received[position] = add(c.received[position], magnitudes[i])
	}
	copy(data, c.received[:len(data)])
	return len(locations), nil
}

func (c *Corrector) generator(degree int) *poly {
	for d := len(c.generators); d <= degree; d++ {
		next := c.generators[d-1].multiplyPoly(
			newPoly(c.field, []int{1, c.field.Exp(d - 1 + generatorBase)}))
		c.generators = append(c.generators, next)
	}
	return c.generators[degree]
}

func (c *Corrector) runEuclideanAlgorithm(a, b *poly, capacity int) (sigma, omega *poly, err error) {
	if a.degree() < b.degree() {
		a, b = b, a
	}

	rLast := a
	r := b
	tLast := c.field.zero
	t := c.field.one

	for 2*r.degree() >= capacity {
		rLastLast := rLast
		tLastLast := tLast
		rLast = r
		tLast = t

		if rLast.isZero() {
			return nil, nil, ErrUncorrectable
		}
		r = rLastLast
		q := c.field.zero
		inverseLeading := c.field.Inverse(rLast.coefficient(rLast.degree()))
		for r.degree() >= rLast.degree() && !r.isZero() {
			degreeDiff := r.degree() - rLast.degree()
			scale := c.field.Multiply(r.coefficient(r.degree()), inverseLeading)
			q = q.addPoly(c.field.monomial(degreeDiff, scale))
			r = r.addPoly(rLast.multiplyByMonomial(degreeDiff, scale))
		}

		t = q.multiplyPoly(tLast).addPoly(tLastLast)

		if r.degree() >= rLast.degree() {
			return nil, nil, ErrUncorrectable
		}
	}

	sigmaTildeAtZero := t.coefficient(0)
	if sigmaTildeAtZero == 0 {
		return nil, nil, ErrUncorrectable
	}

	inverse := c.field.Inverse(sigmaTildeAtZero)
	return t.multiplyScalar(inverse), r.multiplyScalar(inverse), nil
}

func (c *Corrector) findErrorLocations(errorLocator *poly) ([]int, error) {
	numErrors := errorLocator.degree()
	if numErrors == 1 {
		return []int{errorLocator.coefficient(1)}, nil
	}
	result := make([]int, 0, numErrors)
	for i := 1; i < c.field.Size() && len(result) < numErrors; i++ {
		if errorLocator.evaluateAt(i) == 0 {
			result = append(result, c.field.Inverse(i))
		}
	}
	if len(result) != numErrors {
		return nil, ErrUncorrectable
	}
	return result, nil
}

func (c *Corrector) findErrorMagnitudes(errorEvaluator *poly, locations []int) []int {
	result := make([]int, len(locations))
	for i := range locations {
		xiInverse := c.field.Inverse(locations[i])
		denominator := 1
		for j := range locations {
			if i != j {
				term := c.field.Multiply(locations[j], xiInverse)
				denominator = c.field.Multiply(denominator, add(term, 1))
			}
		}
		result[i] = c.field.Multiply(errorEvaluator.evaluateAt(xiInverse), c.field.Inverse(denominator))
		// generator base is 1, so the magnitude picks up a factor 1/x_i
		result[i] = c.field.Multiply(result[i], xiInverse)
	}
	return result
}
