package evo

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testShape = Shape{Inputs: 4, Layers: 1, Outputs: 1, Sublayers: 4}

func TestZeroGenomeEvaluatesToHalf(t *testing.T) {
	g := NewZeroGenome(testShape)
	assert.Equal(t, []float64{0.5}, g.Evaluate([]float64{0, 0, 0, 1}))
}

func TestActivations(t *testing.T) {
	assert.Equal(t, 2.0, LeakyReLU(2))
	assert.Equal(t, -1.0, LeakyReLU(-2))
	assert.Equal(t, 0.0, LeakyReLU(0))

	assert.Equal(t, 0.5, Sigmoid(0))
	assert.Greater(t, Sigmoid(-10), 0.99)
	assert.Less(t, Sigmoid(10), 0.01)
}

func TestEvaluateKnownWeights(t *testing.T) {
	shape := Shape{Inputs: 2, Layers: 1, Outputs: 1, Sublayers: 1}
	// input column (1, -1), hidden 2, output 1
	g, err := GenomeFromWeights(shape, []float64{1, -1, 2, 1}, 0)
	require.NoError(t, err)

	// 1*1 + 3*-1 = -2 -> leaky -1 -> *2 = -2 -> leaky -1 -> *1 = -1
	out := g.Evaluate([]float64{1, 3})
	require.Len(t, out, 1)
	assert.InDelta(t, 1/(1+math.Exp(-1)), out[0], 1e-12)
}

func TestEvaluateWithoutHiddenLayers(t *testing.T) {
	shape := Shape{Inputs: 3, Layers: 0, Outputs: 2, Sublayers: 2}
	g := NewRandomGenome(shape, rand.New(rand.NewSource(3)))
	out := g.Evaluate([]float64{0.1, 0.2, 0.3})
	assert.Len(t, out, 2)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	g := NewRandomGenome(testShape, rand.New(rand.NewSource(7)))
	in := []float64{0.3, -0.2, 0.9, 1}
	first := g.Evaluate(in)
	second := g.Evaluate(in)
	assert.Equal(t, first, second)
	assert.Equal(t, []float64{0.3, -0.2, 0.9, 1}, in, "inputs must not be modified")
}

func TestEvaluateCheckedRejectsWrongWidth(t *testing.T) {
	g := NewZeroGenome(testShape)
	_, err := g.EvaluateChecked([]float64{1, 2})
	assert.ErrorIs(t, err, ErrShapeMismatch)
	assert.Panics(t, func() { g.Evaluate([]float64{1}) })
}

func TestSimilarity(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := NewRandomGenome(testShape, rng)
	b := NewRandomGenome(testShape, rng)

	assert.Equal(t, 0.0, a.Similarity(a))
	assert.Equal(t, 0.0, a.Similarity(a.Clone()))
	assert.Equal(t, a.Similarity(b), b.Similarity(a))

	wa, wb := a.Weights(), b.Weights()
	want := 0.0
	for i := range wa {
		want += (wa[i] - wb[i]) * (wa[i] - wb[i])
	}
	assert.InDelta(t, want, a.Similarity(b), 1e-12)
}

func TestSimilarityPanicsOnShapeMismatch(t *testing.T) {
	other := Shape{Inputs: 4, Layers: 2, Outputs: 1, Sublayers: 4}
	assert.Panics(t, func() { NewZeroGenome(testShape).Similarity(NewZeroGenome(other)) })
}

func TestNewRandomGenomeSparsity(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var nonzero, total int
	for i := 0; i < 2000; i++ {
		g := NewRandomGenome(testShape, rng)
		assert.Equal(t, 0.0, g.Fitness)
		for _, w := range g.Weights() {
			total++
			if w == 0 {
				continue
			}
			nonzero++
			assert.GreaterOrEqual(t, w, -InitialWeightRange)
			assert.LessOrEqual(t, w, InitialWeightRange)
		}
	}
	assert.InDelta(t, ConnectionProbability, float64(nonzero)/float64(total), 0.01)
}

func TestMutateChangesExactlyOneWeight(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	shape := Shape{Inputs: 3, Layers: 2, Outputs: 2, Sublayers: 4}
	g := NewRandomGenome(shape, rng)

	for i := 0; i < 500; i++ {
		before := g.Weights()
		g.Mutate(rng)
		after := g.Weights()

		changed := 0
		for j := range before {
			if before[j] != after[j] {
				changed++
				assert.LessOrEqual(t, math.Abs(after[j]-before[j]), MutationPower+1e-12)
			}
		}
		assert.Equal(t, 1, changed, "mutation %d", i)
	}
}

func TestMutateReachesEverySlot(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	shape := Shape{Inputs: 2, Layers: 3, Outputs: 2, Sublayers: 2}
	g := NewZeroGenome(shape)
	for i := 0; i < 2000; i++ {
		g.Mutate(rng)
	}
	for slot, m := range g.matrices() {
		assert.NotZero(t, squaredDistance(m, NewZeroGenome(shape).matrices()[slot]), "slot %d never mutated", slot)
	}
}

func TestCloneIsDeep(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := NewRandomGenome(testShape, rng)
	g.Fitness = 3.5

	c := g.Clone()
	assert.Equal(t, g.Weights(), c.Weights())
	assert.Equal(t, 3.5, c.Fitness)

	c.Mutate(rng)
	assert.NotEqual(t, g.Weights(), c.Weights())
}

func TestGenomeFromWeights(t *testing.T) {
	g := NewRandomGenome(testShape, rand.New(rand.NewSource(2)))
	weights := g.Weights()
	require.Len(t, weights, testShape.ParamCount())

	restored, err := GenomeFromWeights(testShape, weights, 1.25)
	require.NoError(t, err)
	assert.Equal(t, weights, restored.Weights())
	assert.Equal(t, 1.25, restored.Fitness)
	assert.Equal(t, 0.0, g.Similarity(restored))

	_, err = GenomeFromWeights(testShape, weights[1:], 0)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = GenomeFromWeights(Shape{}, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestShapeValidate(t *testing.T) {
	assert.NoError(t, testShape.Validate())
	assert.NoError(t, Shape{Inputs: 1, Layers: 0, Outputs: 1, Sublayers: 1}.Validate())

	for _, s := range []Shape{
		{Inputs: 0, Layers: 1, Outputs: 1, Sublayers: 1},
		{Inputs: 1, Layers: -1, Outputs: 1, Sublayers: 1},
		{Inputs: 1, Layers: 1, Outputs: 0, Sublayers: 1},
		{Inputs: 1, Layers: 1, Outputs: 1, Sublayers: 0},
	} {
		assert.ErrorIs(t, s.Validate(), ErrInvalidShape, "%s", s)
	}
	assert.Equal(t, 4*4+4*4+4*1, testShape.ParamCount())
}
