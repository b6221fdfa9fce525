package biquad

// Chain is an ordered cascade of biquad sections processed in series.
type Chain struct {
	sections []Section
}

// NewChain creates a cascade from one or more coefficient sets.
// Each Coefficients value becomes one Section in the cascade.
func NewChain(coeffs []Coefficients) *Chain {
	c := &Chain{sections: make([]Section, len(coeffs))}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// NumSections returns the number of sections in the cascade.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// Section returns section i for coefficient updates.
func (c *Chain) Section(i int) *Section {
	return &c.sections[i]
}

// SetCoefficients replaces the coefficients of section i, keeping its state.
func (c *Chain) SetCoefficients(i int, coeffs Coefficients) {
	c.sections[i].Coefficients = coeffs
}

// ProcessSample cascades input through all sections in order.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters a block in-place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset clears the state of every section.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}
