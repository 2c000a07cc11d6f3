package evo

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Genome is one candidate network: an IxS input projection, L hidden SxS
// matrices applied in order and an SxO output projection.
//
// The matrix shapes never change after construction; only entries and
// Fitness do. Fitness belongs to the caller's evaluation harness and is only
// read by Evolve for ranking.
type Genome struct {
	shape  Shape
	input  *mat.Dense
	hidden []*mat.Dense
	output *mat.Dense

	Fitness float64
}

// NewZeroGenome returns a genome whose weights are all zero.
// It panics if the shape is invalid.
func NewZeroGenome(shape Shape) *Genome {
	mustValidate(shape)
	g := &Genome{
		shape:  shape,
		input:  mat.NewDense(shape.Inputs, shape.Sublayers, nil),
		hidden: make([]*mat.Dense, shape.Layers),
		output: mat.NewDense(shape.Sublayers, shape.Outputs, nil),
	}
	for i := range g.hidden {
		g.hidden[i] = mat.NewDense(shape.Sublayers, shape.Sublayers, nil)
	}
	return g
}

// NewRandomGenome returns a sparse random genome. Each weight is nonzero with
// probability ConnectionProbability, drawn uniformly from ±InitialWeightRange.
// It panics if the shape is invalid.
func NewRandomGenome(shape Shape, rng Rand) *Genome {
	mustValidate(shape)
	g := &Genome{
		shape:  shape,
		input:  randomMatrix(shape.Inputs, shape.Sublayers, rng),
		hidden: make([]*mat.Dense, shape.Layers),
	}
	for i := range g.hidden {
		g.hidden[i] = randomMatrix(shape.Sublayers, shape.Sublayers, rng)
	}
	g.output = randomMatrix(shape.Sublayers, shape.Outputs, rng)
	return g
}

// GenomeFromWeights rebuilds a genome from the flat layout produced by Weights.
func GenomeFromWeights(shape Shape, weights []float64, fitness float64) (*Genome, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(weights) != shape.ParamCount() {
		return nil, fmt.Errorf("%w: shape %s needs %d weights, got %d", ErrShapeMismatch, shape, shape.ParamCount(), len(weights))
	}
	g := NewZeroGenome(shape)
	offset := 0
	for _, m := range g.matrices() {
		raw := m.RawMatrix().Data
		offset += copy(raw, weights[offset:offset+len(raw)])
	}
	g.Fitness = fitness
	return g, nil
}

func mustValidate(shape Shape) {
	if err := shape.Validate(); err != nil {
		panic(err)
	}
}

// Shape returns the dimensions the genome was built with.
func (g *Genome) Shape() Shape { return g.shape }

// matrices lists every weight matrix in slot order: input, hidden..., output.
func (g *Genome) matrices() []*mat.Dense {
	ms := make([]*mat.Dense, 0, len(g.hidden)+2)
	ms = append(ms, g.input)
	ms = append(ms, g.hidden...)
	return append(ms, g.output)
}

// Evaluate runs the forward pass. It is a pure read of the weights and
// panics if len(inputs) differs from the genome's input width.
func (g *Genome) Evaluate(inputs []float64) []float64 {
	if len(inputs) != g.shape.Inputs {
		panic(fmt.Errorf("%w: expected %d inputs, got %d", ErrShapeMismatch, g.shape.Inputs, len(inputs)))
	}
	x := mat.NewDense(1, len(inputs), append([]float64(nil), inputs...))

	h := &mat.Dense{}
	h.Mul(x, g.input)
	h.Apply(applyLeakyReLU, h)

	for _, m := range g.hidden {
		next := &mat.Dense{}
		next.Mul(h, m)
		next.Apply(applyLeakyReLU, next)
		h = next
	}

	out := &mat.Dense{}
	out.Mul(h, g.output)
	out.Apply(applySigmoid, out)
	return mat.Row(nil, 0, out)
}

// EvaluateChecked is Evaluate with an error instead of a panic on bad input width.
func (g *Genome) EvaluateChecked(inputs []float64) ([]float64, error) {
	if len(inputs) != g.shape.Inputs {
		return nil, fmt.Errorf("%w: expected %d inputs, got %d", ErrShapeMismatch, g.shape.Inputs, len(inputs))
	}
	return g.Evaluate(inputs), nil
}

// Similarity is the summed squared difference of every weight. Zero means
// identical weights; larger means more divergent. It panics on genomes of
// different shape.
func (g *Genome) Similarity(other *Genome) float64 {
	if g.shape != other.shape {
		panic(fmt.Errorf("%w: %s vs %s", ErrShapeMismatch, g.shape, other.shape))
	}
	total := squaredDistance(g.input, other.input)
	for i := range g.hidden {
		total += squaredDistance(g.hidden[i], other.hidden[i])
	}
	return total + squaredDistance(g.output, other.output)
}

// Mutate picks one of the L+2 matrices uniformly, then one cell in it, and
// adds a perturbation from ±MutationPower. Exactly one weight changes.
func (g *Genome) Mutate(rng Rand) {
	slot := rng.Intn(len(g.hidden) + 2)
	switch {
	case slot == 0:
		mutateMatrix(g.input, rng)
	case slot == len(g.hidden)+1:
		mutateMatrix(g.output, rng)
	default:
		mutateMatrix(g.hidden[slot-1], rng)
	}
}

// Clone returns a deep copy, fitness included.
func (g *Genome) Clone() *Genome {
	c := &Genome{
		shape:   g.shape,
		input:   mat.DenseCopyOf(g.input),
		hidden:  make([]*mat.Dense, len(g.hidden)),
		output:  mat.DenseCopyOf(g.output),
		Fitness: g.Fitness,
	}
	for i, m := range g.hidden {
		c.hidden[i] = mat.DenseCopyOf(m)
	}
	return c
}

// Weights flattens every matrix in slot order, each row-major.
// The result has Shape().ParamCount() entries.
func (g *Genome) Weights() []float64 {
	out := make([]float64, 0, g.shape.ParamCount())
	for _, m := range g.matrices() {
		out = append(out, m.RawMatrix().Data...)
	}
	return out
}
