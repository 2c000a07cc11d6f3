package evo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidShape is returned when a Shape has a non-positive width or a negative layer count.
	ErrInvalidShape = errors.New("invalid genome shape")
	// ErrShapeMismatch is returned when genomes or weight vectors disagree with the expected shape.
	ErrShapeMismatch = errors.New("genome shape mismatch")
)

// Shape fixes the dimensions of every genome in a population.
// It is never stored alongside serialized weights; the loading context supplies it.
type Shape struct {
	Inputs    int // I: width of the raw input vector
	Layers    int // L: number of SxS hidden matrices
	Outputs   int // O: width of the output vector
	Sublayers int // S: width of every hidden layer
}

// Validate reports whether the shape can back a genome.
func (s Shape) Validate() error {
	if s.Inputs <= 0 {
		return fmt.Errorf("%w: inputs must be positive, got %d", ErrInvalidShape, s.Inputs)
	}
	if s.Outputs <= 0 {
		return fmt.Errorf("%w: outputs must be positive, got %d", ErrInvalidShape, s.Outputs)
	}
	if s.Sublayers <= 0 {
		return fmt.Errorf("%w: sublayer width must be positive, got %d", ErrInvalidShape, s.Sublayers)
	}
	if s.Layers < 0 {
		return fmt.Errorf("%w: layer count cannot be negative, got %d", ErrInvalidShape, s.Layers)
	}
	return nil
}

// ParamCount is the number of scalar weights in a genome of this shape.
func (s Shape) ParamCount() int {
	return s.Inputs*s.Sublayers + s.Layers*s.Sublayers*s.Sublayers + s.Sublayers*s.Outputs
}

func (s Shape) String() string {
	return fmt.Sprintf("(I=%d, L=%d, O=%d, S=%d)", s.Inputs, s.Layers, s.Outputs, s.Sublayers)
}
