package evo

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
)

// ErrEmptyPopulation is returned when an operation needs at least one genome.
var ErrEmptyPopulation = errors.New("population has no genomes")

// Population owns a fixed-budget collection of same-shaped genomes.
type Population struct {
	MaxSize    int // Target size after every Evolve.
	MaxSpecies int // Species retained as reproduction sources; 0 behaves like 1.
	Generation int // Completed Evolve steps.

	// Log receives one progress line per RunGeneration. Nil keeps the population silent.
	Log io.Writer

	shape        Shape
	genomes      []*Genome
	speciesCount int
}

// NewPopulation creates maxSize random genomes of the given shape with zero fitness.
func NewPopulation(shape Shape, maxSize, maxSpecies int, rng Rand) (*Population, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if maxSize < 1 {
		return nil, fmt.Errorf("population size must be positive, got %d", maxSize)
	}
	if maxSpecies < 0 {
		return nil, fmt.Errorf("max species cannot be negative, got %d", maxSpecies)
	}

	genomes := make([]*Genome, maxSize)
	for i := range genomes {
		genomes[i] = NewRandomGenome(shape, rng)
	}
	return &Population{
		MaxSize:    maxSize,
		MaxSpecies: maxSpecies,
		shape:      shape,
		genomes:    genomes,
	}, nil
}

// NewPopulationFromGenomes adopts previously evolved genomes, e.g. when resuming
// from a snapshot. MaxSize becomes len(genomes). Fitness values are kept as given.
func NewPopulationFromGenomes(maxSpecies int, genomes []*Genome) (*Population, error) {
	if len(genomes) == 0 {
		return nil, ErrEmptyPopulation
	}
	if maxSpecies < 0 {
		return nil, fmt.Errorf("max species cannot be negative, got %d", maxSpecies)
	}
	shape := genomes[0].Shape()
	for i, g := range genomes {
		if g.Shape() != shape {
			return nil, fmt.Errorf("%w: genome %d has shape %s, expected %s", ErrShapeMismatch, i, g.Shape(), shape)
		}
	}
	return &Population{
		MaxSize:    len(genomes),
		MaxSpecies: maxSpecies,
		shape:      shape,
		genomes:    genomes,
	}, nil
}

// Shape returns the dimensions shared by every genome in the population.
func (p *Population) Shape() Shape { return p.shape }

// Genomes returns the current generation. The slice is owned by the
// population; callers may update Fitness on its elements between Evolve calls.
func (p *Population) Genomes() []*Genome { return p.genomes }

// SpeciesCount is the number of species formed by the most recent Evolve.
func (p *Population) SpeciesCount() int { return p.speciesCount }

// Best returns the genome with the highest fitness, or nil for an empty population.
func (p *Population) Best() *Genome {
	var best *Genome
	for _, g := range p.genomes {
		if best == nil || fitter(g, best) {
			best = g
		}
	}
	return best
}

// Evolve replaces the genome collection with the next generation:
// sort by descending fitness, speciate, carry over founders, refill with
// mutated offspring and reset every fitness to zero.
func (p *Population) Evolve(rng Rand) error {
	if len(p.genomes) == 0 {
		return ErrEmptyPopulation
	}
	if p.MaxSize < 1 {
		return fmt.Errorf("population size must be positive, got %d", p.MaxSize)
	}
	if p.MaxSpecies < 0 {
		return fmt.Errorf("max species cannot be negative, got %d", p.MaxSpecies)
	}

	sortByFitness(p.genomes)
	species := Speciate(p.genomes)
	p.speciesCount = len(species)

	p.genomes = reproduce(species, p.MaxSize, p.MaxSpecies, rng)
	p.Generation++
	return nil
}

// sortByFitness orders genomes best first. The sort is stable so a fixed
// random sequence reproduces the same run.
func sortByFitness(genomes []*Genome) {
	sort.SliceStable(genomes, func(i, j int) bool {
		return fitter(genomes[i], genomes[j])
	})
}

// fitter reports whether a ranks strictly ahead of b. NaN ranks last.
func fitter(a, b *Genome) bool {
	aNaN, bNaN := math.IsNaN(a.Fitness), math.IsNaN(b.Fitness)
	if aNaN || bNaN {
		return !aNaN && bNaN
	}
	return a.Fitness > b.Fitness
}
