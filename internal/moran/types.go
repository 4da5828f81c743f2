package moran

import (
	"fmt"
	"math"
)

type Genotype uint8

const (
	A Genotype = iota
	B
)

func (g Genotype) String() string {
	switch g {
	case A:
		return "A"
	case B:
		return "B"
	}
	return fmt.Sprintf("Genotype(%d)", uint8(g))
}

// Other returns the opposite genotype.
func (g Genotype) Other() Genotype {
	if g == A {
		return B
	}
	return A
}

// Composition is the population state of the counting variants.
type Composition struct {
	A int `json:"count_a"`
	B int `json:"count_b"`
}

// InitialComposition splits size individuals so that A = floor(freqA*size).
func InitialComposition(freqA float64, size int) Composition {
	a := int(math.Floor(freqA * float64(size)))
	if a < 0 {
		a = 0
	}
	if a > size {
		a = size
	}
	return Composition{A: a, B: size - a}
}

func (c Composition) Size() int { return c.A + c.B }

func (c Composition) Count(g Genotype) int {
	if g == A {
		return c.A
	}
	return c.B
}

func (c Composition) with(g Genotype, delta int) Composition {
	if g == A {
		c.A += delta
	} else {
		c.B += delta
	}
	return c
}

func (c Composition) FrequencyA() float64 {
	n := c.Size()
	if n == 0 {
		return 0
	}
	return float64(c.A) / float64(n)
}

// Fixed reports whether one genotype makes up the whole population.
func (c Composition) Fixed() (Genotype, bool) {
	switch {
	case c.Size() == 0:
		return A, false
	case c.B == 0:
		return A, true
	case c.A == 0:
		return B, true
	}
	return A, false
}

func (c Composition) String() string {
	return fmt.Sprintf("(%d,%d)", c.A, c.B)
}
