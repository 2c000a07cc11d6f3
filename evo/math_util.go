package evo

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Fixed evolution constants. They are shared by every population.
const (
	ConnectionProbability = 0.25 // chance that a fresh weight is nonzero
	InitialWeightRange    = 1.0  // fresh nonzero weights are drawn from [-1, 1)
	MutationPower         = 0.1  // point mutations add a value from [-0.1, 0.1)
	SpeciesThreshold      = 0.5  // similarity below this joins a founder's species
	MaxMutations          = 19   // offspring receive 1..MaxMutations point mutations
)

// Rand is the random source threaded through every stochastic operation.
// *rand.Rand from math/rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// uniform draws from [lo, hi).
func uniform(rng Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// randomMatrix builds a sparse rows x cols matrix, visiting entries in row-major order.
func randomMatrix(rows, cols int, rng Rand) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if rng.Float64() < ConnectionProbability {
				m.Set(i, j, uniform(rng, -InitialWeightRange, InitialWeightRange))
			}
		}
	}
	return m
}

// mutateMatrix perturbs one uniformly chosen cell. No clamping.
func mutateMatrix(m *mat.Dense, rng Rand) {
	rows, cols := m.Dims()
	i := rng.Intn(rows)
	j := rng.Intn(cols)
	m.Set(i, j, m.At(i, j)+uniform(rng, -MutationPower, MutationPower))
}

// squaredDistance is the sum of squared elementwise differences of two
// equally shaped matrices. Both must own contiguous backing storage.
func squaredDistance(a, b *mat.Dense) float64 {
	ra, rb := a.RawMatrix(), b.RawMatrix()
	diff := make([]float64, len(ra.Data))
	floats.SubTo(diff, ra.Data, rb.Data)
	return floats.Dot(diff, diff)
}
