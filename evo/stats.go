package evo

import "gonum.org/v1/gonum/stat"

// GenerationStats summarizes the fitness of one generation.
type GenerationStats struct {
	Generation int
	Size       int
	Best       float64 // fitness of Best(); NaN only when every fitness is NaN
	Mean       float64
	Stdev      float64 // sample standard deviation; 0 for fewer than two genomes
	Species    int     // species formed by the previous Evolve
}

// Stats summarizes the current fitness values.
func (p *Population) Stats() GenerationStats {
	s := GenerationStats{
		Generation: p.Generation,
		Size:       len(p.genomes),
		Species:    p.speciesCount,
	}
	if len(p.genomes) == 0 {
		return s
	}

	fitnesses := make([]float64, len(p.genomes))
	for i, g := range p.genomes {
		fitnesses[i] = g.Fitness
	}
	s.Best = p.Best().Fitness
	s.Mean = stat.Mean(fitnesses, nil)
	if len(fitnesses) > 1 {
		s.Stdev = stat.StdDev(fitnesses, nil)
	}
	return s
}
