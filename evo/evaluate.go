package evo

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
)

// FitnessFunc scores one genome. The returned value is added to the genome's
// Fitness, so a harness can call Accumulate several times per generation.
type FitnessFunc func(ctx context.Context, g *Genome) (float64, error)

// Accumulate scores genomes with up to workers concurrent calls to fn.
// Each call only touches its own genome. The first error cancels the
// remaining calls and is returned.
func Accumulate(ctx context.Context, genomes []*Genome, fn FitnessFunc, workers int) error {
	if workers < 1 {
		workers = 1
	}
	p := pool.New().
		WithMaxGoroutines(workers).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for i, g := range genomes {
		i, g := i, g
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			score, err := fn(ctx, g)
			if err != nil {
				return fmt.Errorf("fitness evaluation failed for genome %d: %w", i, err)
			}
			g.Fitness += score
			return nil
		})
	}
	return p.Wait()
}

// RunGeneration evaluates the current genomes, records their stats and
// champion, then evolves. The returned stats and champion describe the
// generation before evolution; the champion is a clone with fitness intact.
func (p *Population) RunGeneration(ctx context.Context, rng Rand, fn FitnessFunc, workers int) (GenerationStats, *Genome, error) {
	if len(p.genomes) == 0 {
		return GenerationStats{}, nil, ErrEmptyPopulation
	}
	if err := Accumulate(ctx, p.genomes, fn, workers); err != nil {
		return GenerationStats{}, nil, fmt.Errorf("generation %d: %w", p.Generation, err)
	}

	stats := p.Stats()
	champion := p.Best().Clone()
	if p.Log != nil {
		fmt.Fprintf(p.Log, "generation %d: best %.4f, mean %.4f, stdev %.4f\n",
			stats.Generation, stats.Best, stats.Mean, stats.Stdev)
	}

	if err := p.Evolve(rng); err != nil {
		return stats, champion, fmt.Errorf("generation %d: %w", stats.Generation, err)
	}
	if p.Log != nil {
		fmt.Fprintf(p.Log, "generation %d: %d species\n", stats.Generation, p.speciesCount)
	}
	return stats, champion, nil
}
