// Package evo evolves fixed-topology feed-forward networks with a
// generational genetic algorithm and greedy similarity speciation.
//
// A Genome is an input projection, a stack of equally sized hidden matrices
// and an output projection. Its shape never changes; evolution only perturbs
// weights. There is no crossover and no gradient training.
//
// Basic usage:
//
//	rng := rand.New(rand.NewSource(1))
//	shape := evo.Shape{Inputs: 4, Layers: 1, Outputs: 1, Sublayers: 4}
//	pop, err := evo.NewPopulation(shape, 100, 20, rng)
//	if err != nil {
//		log.Fatalf("Error creating population: %v", err)
//	}
//
//	for i := 0; i < 1600; i++ {
//		for _, g := range pop.Genomes() {
//			out := g.Evaluate([]float64{0, 0, 0, 1})
//			g.Fitness -= out[0] * out[0]
//		}
//		if err := pop.Evolve(rng); err != nil {
//			log.Fatalf("Error evolving: %v", err)
//		}
//	}
package evo
