package evo

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulateAddsToFitness(t *testing.T) {
	pop, err := NewPopulation(testShape, 25, 3, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	var calls atomic.Int64
	score := func(_ context.Context, g *Genome) (float64, error) {
		calls.Add(1)
		return 1.5, nil
	}

	ctx := context.Background()
	require.NoError(t, Accumulate(ctx, pop.Genomes(), score, 4))
	require.NoError(t, Accumulate(ctx, pop.Genomes(), score, 0))

	assert.Equal(t, int64(50), calls.Load())
	for _, g := range pop.Genomes() {
		assert.Equal(t, 3.0, g.Fitness)
	}
}

func TestAccumulateMatchesSequentialEvaluation(t *testing.T) {
	pop, err := NewPopulation(testShape, 30, 3, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	in := []float64{0.5, 0, 0.25, 1}

	want := make([]float64, len(pop.Genomes()))
	for i, g := range pop.Genomes() {
		want[i] = g.Evaluate(in)[0]
	}

	score := func(_ context.Context, g *Genome) (float64, error) {
		return g.Evaluate(in)[0], nil
	}
	require.NoError(t, Accumulate(context.Background(), pop.Genomes(), score, 8))
	for i, g := range pop.Genomes() {
		assert.Equal(t, want[i], g.Fitness)
	}
}

func TestAccumulateReturnsFirstError(t *testing.T) {
	pop, err := NewPopulation(testShape, 10, 3, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	boom := errors.New("boom")
	score := func(_ context.Context, g *Genome) (float64, error) {
		return 0, boom
	}
	err = Accumulate(context.Background(), pop.Genomes(), score, 1)
	assert.ErrorIs(t, err, boom)
}

func TestAccumulateHonorsCanceledContext(t *testing.T) {
	pop, err := NewPopulation(testShape, 10, 3, rand.New(rand.NewSource(4)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int64
	score := func(_ context.Context, g *Genome) (float64, error) {
		calls.Add(1)
		return 1, nil
	}
	err = Accumulate(ctx, pop.Genomes(), score, 2)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestRunGeneration(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	pop, err := NewPopulation(testShape, 12, 3, rng)
	require.NoError(t, err)
	var out bytes.Buffer
	pop.Log = &out

	score := func(_ context.Context, g *Genome) (float64, error) {
		return -g.Evaluate([]float64{1, 0, 0, 1})[0], nil
	}

	stats, champion, err := pop.RunGeneration(context.Background(), rng, score, 3)
	require.NoError(t, err)
	require.NotNil(t, champion)

	assert.Equal(t, 0, stats.Generation)
	assert.Equal(t, 12, stats.Size)
	assert.Equal(t, stats.Best, champion.Fitness)
	assert.Equal(t, 1, pop.Generation)
	assert.Len(t, pop.Genomes(), 12)
	assert.Equal(t, champion.Weights(), pop.Genomes()[0].Weights())
	assert.Equal(t, 0.0, pop.Genomes()[0].Fitness)
	assert.Contains(t, out.String(), "generation 0: best")
	assert.Contains(t, out.String(), "species")
}

func TestRunGenerationEmpty(t *testing.T) {
	pop := &Population{MaxSize: 1}
	_, _, err := pop.RunGeneration(context.Background(), rand.New(rand.NewSource(1)), nil, 1)
	assert.ErrorIs(t, err, ErrEmptyPopulation)
}
